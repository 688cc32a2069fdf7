package gallery

import (
	"context"
	"time"

	"github.com/Maxito7/heey_portfolio/internal/ui/hero"
	"github.com/Maxito7/heey_portfolio/internal/ui/loop"
	"github.com/Maxito7/heey_portfolio/internal/ui/masonry"
	"github.com/Maxito7/heey_portfolio/internal/ui/modal"
	"github.com/Maxito7/heey_portfolio/internal/ui/zoom"
	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"
)

type Options struct {
	Grid         GridOptions
	Modal        modal.Options
	Zoom         zoom.Options
	HeroInterval time.Duration
}

func DefaultOptions() Options {
	return Options{
		Grid: GridOptions{
			RowHeight:   10,
			RowGap:      16,
			Debounce:    DefaultDebounce,
			Placeholder: "/placeholder.svg",
		},
		Modal:        modal.DefaultOptions(),
		Zoom:         zoom.DefaultOptions(),
		HeroInterval: hero.DefaultInterval,
	}
}

// Page is one browser page's presentation state. All methods except Load must be
// called from a single goroutine at a time.
type Page struct {
	ID string

	loop    *loop.Loop
	content Content
	logger  *zap.Logger

	grid   *Grid
	modal  *modal.Controller
	hero   *hero.Carousel
	scroll *modal.BodyScroll

	mounted  bool
	viewport masonry.Viewport
}

func NewPage(id string, content Content, clock clockwork.Clock, logger *zap.Logger, opts Options) *Page {
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.With(zap.String("page", id))
	l := loop.New(clock)
	scroll := &modal.BodyScroll{}
	return &Page{
		ID:      id,
		loop:    l,
		content: content,
		logger:  logger,
		grid:    NewGrid(l, content, logger, opts.Grid),
		modal:   modal.NewController(l, scroll, zoom.New(opts.Zoom), logger, opts.Modal),
		hero:    hero.New(l, opts.HeroInterval),
		scroll:  scroll,
	}
}

// Mount renders the page skeleton at the given viewport.
func (p *Page) Mount(vp masonry.Viewport) {
	if p.mounted {
		return
	}
	p.mounted = true
	p.viewport = vp
	p.grid.Mount(vp)
	p.modal.Mount()
	p.hero.Mount()
}

// Load fetches gallery and hero content. It may run on any goroutine.
func (p *Page) Load(ctx context.Context) {
	p.grid.Load(ctx)
	p.hero.Load(ctx, p.content)
}

// Unmount releases everything the page holds: timers, scroll lock, pending results.
func (p *Page) Unmount() {
	if !p.mounted {
		return
	}
	p.mounted = false
	p.modal.Unmount()
	p.grid.Unmount()
	p.hero.Unmount()
	p.loop.Close()
}

func (p *Page) Mounted() bool { return p.mounted }

// Drain runs everything that is due on the page's loop.
func (p *Page) Drain() {
	if p.mounted {
		p.loop.Drain()
	}
}

// Dispatch applies one browser event. It reports whether the event changed anything.
func (p *Page) Dispatch(ev Event) (bool, error) {
	if !p.mounted {
		return false, ErrUnmounted
	}
	if err := ev.Validate(); err != nil {
		return false, err
	}
	p.loop.Drain()
	if ev.Dialog != nil {
		p.modal.ReportDialogSize(*ev.Dialog)
	}

	changed := p.apply(ev)
	p.loop.Drain()
	return changed, nil
}

func (p *Page) apply(ev Event) bool {
	z := p.modal.Zoom()
	switch ev.Type {
	case EventThumbnailLoaded:
		return p.grid.ThumbnailLoaded(ev.ItemID, ev.NaturalWidth, ev.NaturalHeight)
	case EventThumbnailError:
		return p.grid.ThumbnailFailed(ev.ItemID)
	case EventResize:
		p.viewport = *ev.Viewport
		p.grid.Resize(p.viewport)
		return true
	case EventCellClick:
		content, ok := p.grid.Select(ev.ItemID)
		if !ok {
			return false
		}
		return p.modal.Open(content)
	case EventClose:
		return p.modal.Close()
	case EventModalClick:
		return p.modal.Click(ev.Target)
	case EventKeyDown:
		return p.modal.Key(ev.Key)
	case EventDialogSize:
		return true
	case EventImageLoaded:
		return p.modal.ImageLoaded(ev.ItemID)
	case EventVideoError:
		p.modal.VideoFailed(ev.ItemID, ev.Reason)
		return false
	case EventHoverEnter:
		return p.modal.Phase().Showing() && z.HoverEnter(p.viewport.Width, *ev.Box, ev.X, ev.Y)
	case EventHoverMove:
		return p.modal.Phase().Showing() && z.HoverMove(p.viewport.Width, *ev.Box, ev.X, ev.Y)
	case EventHoverLeave:
		return z.HoverLeave(p.viewport.Width)
	case EventTap:
		return p.modal.Phase().Showing() && z.Tap(p.viewport.Width, *ev.Box, ev.X, ev.Y, p.loop.Clock().Now())
	case EventHeroGoto:
		return p.hero.Goto(ev.Slide)
	}
	return false
}

// Grid, Modal and Hero expose the page's parts for inspection.
func (p *Page) Grid() *Grid { return p.grid }
func (p *Page) Modal() *modal.Controller { return p.modal }
func (p *Page) Hero() *hero.Carousel { return p.hero }
