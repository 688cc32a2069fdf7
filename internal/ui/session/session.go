// Package session keeps the live gallery pages of connected browsers.
package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/Maxito7/heey_portfolio/internal/ui/gallery"
	"github.com/Maxito7/heey_portfolio/internal/ui/masonry"
	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"
)

var (
	ErrNotFound        = errors.New("session not found")
	ErrClosed          = errors.New("session store closed")
	ErrTooManySessions = errors.New("too many sessions")
)

type Options struct {
	TTL         time.Duration
	MaxSessions int
	LoadTimeout time.Duration
	Page        gallery.Options
}

func DefaultOptions() Options {
	return Options{
		TTL:         30 * time.Minute,
		MaxSessions: 10000,
		LoadTimeout: 30 * time.Second,
		Page:        gallery.DefaultOptions(),
	}
}

type entry struct {
	mu       sync.Mutex
	page     *gallery.Page
	lastSeen time.Time
}

// Store owns page sessions keyed by id. Sessions not touched within the TTL are
// unmounted and dropped by a background sweep.
type Store struct {
	content gallery.Content
	clock   clockwork.Clock
	logger  *zap.Logger
	opts    Options

	mu       sync.RWMutex
	sessions map[string]*entry
	closed   bool

	ctx    context.Context
	cancel context.CancelFunc
	loads  sync.WaitGroup

	stop     chan struct{}
	stopOnce sync.Once
	done     chan struct{}
}

func NewStore(content gallery.Content, clock clockwork.Clock, logger *zap.Logger, opts Options) *Store {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.TTL <= 0 {
		opts.TTL = DefaultOptions().TTL
	}
	ctx, cancel := context.WithCancel(context.Background())
	s := &Store{
		content:  content,
		clock:    clock,
		logger:   logger,
		opts:     opts,
		sessions: make(map[string]*entry),
		ctx:      ctx,
		cancel:   cancel,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}

	go s.cleanupLoop(clock.NewTicker(s.sweepInterval()))

	return s
}

// Create mounts a new page at the given viewport and starts loading its content in
// the background. The returned view shows the loading placeholders.
func (s *Store) Create(vp masonry.Viewport) (gallery.View, error) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return gallery.View{}, ErrClosed
	}
	if s.opts.MaxSessions > 0 && len(s.sessions) >= s.opts.MaxSessions {
		s.mu.Unlock()
		return gallery.View{}, ErrTooManySessions
	}

	id := uuid.NewString()
	page := gallery.NewPage(id, s.content, s.clock, s.logger, s.opts.Page)
	page.Mount(vp)
	e := &entry{page: page, lastSeen: s.clock.Now()}
	s.sessions[id] = e
	s.loads.Add(1)
	s.mu.Unlock()

	go s.load(page)

	s.logger.Debug("page session created", zap.String("session", id))

	e.mu.Lock()
	defer e.mu.Unlock()
	return page.View(), nil
}

func (s *Store) load(page *gallery.Page) {
	defer s.loads.Done()
	ctx := s.ctx
	if s.opts.LoadTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.opts.LoadTimeout)
		defer cancel()
	}
	page.Load(ctx)
}

// View runs whatever is due on the page and returns its snapshot.
func (s *Store) View(id string) (gallery.View, error) {
	e, err := s.get(id)
	if err != nil {
		return gallery.View{}, err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.page.Mounted() {
		return gallery.View{}, ErrNotFound
	}
	e.lastSeen = s.clock.Now()
	e.page.Drain()
	return e.page.View(), nil
}

// Dispatch applies a browser event to the page and returns the new snapshot.
func (s *Store) Dispatch(id string, ev gallery.Event) (gallery.View, error) {
	e, err := s.get(id)
	if err != nil {
		return gallery.View{}, err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.page.Mounted() {
		return gallery.View{}, ErrNotFound
	}
	e.lastSeen = s.clock.Now()
	if _, err := e.page.Dispatch(ev); err != nil {
		return gallery.View{}, err
	}
	return e.page.View(), nil
}

// Delete unmounts and drops a session. It reports whether the session existed.
func (s *Store) Delete(id string) bool {
	s.mu.Lock()
	e, ok := s.sessions[id]
	delete(s.sessions, id)
	s.mu.Unlock()
	if !ok {
		return false
	}
	e.unmount()
	return true
}

// Len returns the number of live sessions.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// Wait blocks until every background load started so far has finished.
func (s *Store) Wait() {
	s.loads.Wait()
}

// Close stops the sweep, cancels in-flight loads and unmounts every page.
func (s *Store) Close() {
	s.mu.Lock()
	s.closed = true
	sessions := s.sessions
	s.sessions = make(map[string]*entry)
	s.mu.Unlock()

	s.stopOnce.Do(func() {
		close(s.stop)
		s.cancel()
	})
	<-s.done
	s.loads.Wait()

	for _, e := range sessions {
		e.unmount()
	}
}

func (s *Store) get(id string) (*entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	return e, nil
}

func (s *Store) cleanupLoop(ticker clockwork.Ticker) {
	defer close(s.done)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.Chan():
			s.cleanup()
		case <-s.stop:
			return
		}
	}
}

// sweepInterval bounds how long an expired session outlives its TTL.
func (s *Store) sweepInterval() time.Duration {
	if d := s.opts.TTL / 4; d > 0 {
		return d
	}
	return time.Millisecond
}

// cleanup unmounts sessions idle for at least the TTL.
func (s *Store) cleanup() {
	now := s.clock.Now()

	s.mu.Lock()
	var expired []*entry
	for id, e := range s.sessions {
		e.mu.Lock()
		idle := now.Sub(e.lastSeen)
		e.mu.Unlock()
		if idle >= s.opts.TTL {
			expired = append(expired, e)
			delete(s.sessions, id)
		}
	}
	s.mu.Unlock()

	for _, e := range expired {
		e.unmount()
	}
	if len(expired) > 0 {
		s.logger.Debug("expired page sessions", zap.Int("count", len(expired)))
	}
}

func (e *entry) unmount() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.page.Unmount()
}
