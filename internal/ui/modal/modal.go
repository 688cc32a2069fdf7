// Package modal is the lightbox lifecycle: open and close transitions, dismissal,
// background scroll lock and dialog size freezing while it animates out.
package modal

import (
	"time"

	"github.com/Maxito7/heey_portfolio/internal/ui/loop"
	"github.com/Maxito7/heey_portfolio/internal/ui/zoom"
	"go.uber.org/zap"
)

const (
	DefaultShowDelay     = 10 * time.Millisecond
	DefaultEnterDuration = 300 * time.Millisecond
	DefaultExitDuration  = 300 * time.Millisecond

	KeyEscape = "Escape"
)

// Target identifies which element received a click.
type Target string

const (
	TargetBackdrop Target = "backdrop"
	TargetDialog   Target = "dialog"
)

// Size is a rendered width and height in CSS pixels.
type Size struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Content is what the dialog displays for the selected item.
type Content struct {
	ItemID      int    `json:"item_id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	ImageURL    string `json:"image_url,omitempty"`
	VideoURL    string `json:"video_url,omitempty"`
	PosterURL   string `json:"poster_url,omitempty"`
}

// IsVideo reports whether the dialog plays a video instead of showing an image.
func (c Content) IsVideo() bool {
	return c.VideoURL != ""
}

type Options struct {
	ShowDelay     time.Duration
	EnterDuration time.Duration
	ExitDuration  time.Duration
}

func DefaultOptions() Options {
	return Options{
		ShowDelay:     DefaultShowDelay,
		EnterDuration: DefaultEnterDuration,
		ExitDuration:  DefaultExitDuration,
	}
}

// Controller runs the modal state machine on a page's event loop.
type Controller struct {
	loop   *loop.Loop
	scroll ScrollLock
	zoom   *zoom.State
	logger *zap.Logger
	opts   Options

	mounted bool
	phase   Phase
	visible bool
	shown   bool
	flushes int
	locked  bool

	dialog Size
	frozen *Size

	content *Content
	loading bool

	// gen is bumped on every transition; timers from an older generation are ignored.
	gen   uint64
	timer *loop.Timer
}

func NewController(l *loop.Loop, scroll ScrollLock, z *zoom.State, logger *zap.Logger, opts Options) *Controller {
	if scroll == nil {
		scroll = &BodyScroll{}
	}
	if z == nil {
		z = zoom.New(zoom.DefaultOptions())
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Controller{
		loop:   l,
		scroll: scroll,
		zoom:   z,
		logger: logger,
		opts:   opts,
	}
}

// Mount attaches the controller to its page. Key handling is live from here on.
func (c *Controller) Mount() {
	c.mounted = true
}

// Unmount tears the modal down, stopping timers and giving back the scroll lock.
func (c *Controller) Unmount() {
	if !c.mounted {
		return
	}
	c.stopTimer()
	c.gen++
	c.releaseScroll()
	c.mounted = false
	c.phase = Closed
	c.visible = false
	c.shown = false
	c.frozen = nil
	c.zoom.Enable(false)
}

// Open shows content. It returns false when the modal is already showing.
func (c *Controller) Open(content Content) bool {
	if !c.mounted || c.phase.Showing() {
		return false
	}
	c.stopTimer()
	c.gen++
	gen := c.gen

	c.content = &content
	c.loading = !content.IsVideo()
	c.zoom.Enable(!content.IsVideo())
	c.frozen = nil

	c.phase = Opening
	c.visible = true
	c.flushes++
	if !c.locked {
		c.scroll.Acquire()
		c.locked = true
	}

	c.timer = c.loop.AfterFunc(c.opts.ShowDelay, func() {
		if gen != c.gen {
			return
		}
		c.shown = true
		c.timer = c.loop.AfterFunc(c.opts.EnterDuration, func() {
			if gen != c.gen {
				return
			}
			c.phase = Open
			c.timer = nil
		})
	})
	return true
}

// Close starts the exit transition. Closing an already closing or closed modal does nothing.
func (c *Controller) Close() bool {
	if !c.mounted || !c.phase.Showing() {
		return false
	}

	if c.dialog.Width > 0 && c.dialog.Height > 0 {
		frozen := c.dialog
		c.frozen = &frozen
	}
	c.zoom.ResetInstant()

	c.stopTimer()
	c.gen++
	gen := c.gen
	c.phase = Closing
	c.shown = false

	c.timer = c.loop.AfterFunc(c.opts.ExitDuration, func() {
		if gen != c.gen {
			return
		}
		c.phase = Closed
		c.visible = false
		c.releaseScroll()
		c.frozen = nil
		c.zoom.Enable(false)
		c.timer = nil
	})
	return true
}

// Click handles a click on the modal. Only a click aimed at the backdrop itself closes it.
func (c *Controller) Click(target Target) bool {
	if target != TargetBackdrop {
		return false
	}
	return c.Close()
}

// Key handles a document keydown.
func (c *Controller) Key(key string) bool {
	if !c.mounted || key != KeyEscape || !c.phase.Showing() {
		return false
	}
	return c.Close()
}

// ReportDialogSize records the dialog's current rendered size.
func (c *Controller) ReportDialogSize(s Size) {
	c.dialog = s
}

// ImageLoaded clears the blocking overlay once the original image is decoded.
func (c *Controller) ImageLoaded(itemID int) bool {
	if c.content == nil || c.content.ItemID != itemID || !c.loading {
		return false
	}
	c.loading = false
	return true
}

// VideoFailed is logged only; the player stays on screen.
func (c *Controller) VideoFailed(itemID int, reason string) {
	c.logger.Warn("video playback failed",
		zap.Int("item_id", itemID),
		zap.String("reason", reason))
}

func (c *Controller) Phase() Phase { return c.phase }
func (c *Controller) Zoom() *zoom.State { return c.zoom }
func (c *Controller) Content() *Content { return c.content }
func (c *Controller) Loading() bool { return c.loading }
func (c *Controller) Frozen() *Size { return c.frozen }

func (c *Controller) stopTimer() {
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
}

func (c *Controller) releaseScroll() {
	if c.locked {
		c.scroll.Release()
		c.locked = false
	}
}
