// Package loop provides the cooperative event loop every page session runs on.
//
// Nothing here executes on its own: posted tasks and due timers run only inside
// Drain, on the caller's goroutine. Page state therefore needs no locks of its own
// as long as a single goroutine drains at a time.
package loop

import (
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

// Timer is a handle to a callback scheduled with AfterFunc.
type Timer struct {
	due     time.Time
	seq     uint64
	fn      func()
	stopped bool
}

// Stop cancels the timer. It reports whether the call prevented the callback from running.
func (t *Timer) Stop() bool {
	if t == nil || t.stopped {
		return false
	}
	t.stopped = true
	return true
}

// Loop is a single logical task queue plus a timer queue.
type Loop struct {
	clock clockwork.Clock

	mu     sync.Mutex
	tasks  []func()
	closed bool

	// timers is only touched from Drain and from callbacks running inside it.
	timers []*Timer
	seq    uint64

	// firing is the due time of the timer whose callback is running, if any.
	firing *time.Time
}

// New creates a loop driven by clock.
func New(clock clockwork.Clock) *Loop {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Loop{clock: clock}
}

// Clock returns the clock the loop measures timers against.
func (l *Loop) Clock() clockwork.Clock {
	return l.clock
}

// Post queues fn for the next Drain. Safe to call from any goroutine.
func (l *Loop) Post(fn func()) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return
	}
	l.tasks = append(l.tasks, fn)
}

// AfterFunc schedules fn to run in the first Drain at or after now+d.
// Inside a timer callback "now" is that timer's due time, so chained timers
// keep their spacing even when a Drain catches up late.
// Must be called from the loop goroutine.
func (l *Loop) AfterFunc(d time.Duration, fn func()) *Timer {
	l.seq++
	base := l.clock.Now()
	if l.firing != nil {
		base = *l.firing
	}
	t := &Timer{due: base.Add(d), seq: l.seq, fn: fn}
	if l.isClosed() {
		t.stopped = true
		return t
	}
	l.timers = append(l.timers, t)
	return t
}

// Pending reports how many live timers are waiting.
func (l *Loop) Pending() int {
	n := 0
	for _, t := range l.timers {
		if !t.stopped {
			n++
		}
	}
	return n
}

// Drain runs queued tasks, then every timer that is due, until nothing runnable is left.
// It returns the number of callbacks executed.
func (l *Loop) Drain() int {
	ran := 0
	for {
		if task := l.nextTask(); task != nil {
			task()
			ran++
			continue
		}
		t := l.nextDue()
		if t == nil {
			return ran
		}
		t.stopped = true
		due := t.due
		l.firing = &due
		t.fn()
		l.firing = nil
		ran++
	}
}

// Close discards pending work. Later Post and AfterFunc calls are ignored.
func (l *Loop) Close() {
	l.mu.Lock()
	l.closed = true
	l.tasks = nil
	l.mu.Unlock()

	for _, t := range l.timers {
		t.stopped = true
	}
	l.timers = nil
}

func (l *Loop) isClosed() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.closed
}

func (l *Loop) nextTask() func() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.tasks) == 0 {
		return nil
	}
	task := l.tasks[0]
	l.tasks[0] = nil
	l.tasks = l.tasks[1:]
	return task
}

// nextDue pops the earliest due timer, compacting stopped ones away.
func (l *Loop) nextDue() *Timer {
	now := l.clock.Now()
	live := l.timers[:0]
	var best *Timer
	for _, t := range l.timers {
		if t.stopped {
			continue
		}
		live = append(live, t)
		if t.due.After(now) {
			continue
		}
		if best == nil || t.due.Before(best.due) || (t.due.Equal(best.due) && t.seq < best.seq) {
			best = t
		}
	}
	for i := len(live); i < len(l.timers); i++ {
		l.timers[i] = nil
	}
	l.timers = live
	return best
}
