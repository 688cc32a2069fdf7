// Package hero runs the autoplaying image carousel at the top of the page.
package hero

import (
	"context"
	"time"

	"github.com/Maxito7/heey_portfolio/internal/domain"
	"github.com/Maxito7/heey_portfolio/internal/ui/loop"
)

const DefaultInterval = 5 * time.Second

type Slide struct {
	ItemID   int    `json:"item_id,omitempty"`
	Title    string `json:"title"`
	ImageURL string `json:"image_url"`
}

// FallbackSlides are shown until the latest entries load, and when there are none.
func FallbackSlides() []Slide {
	return []Slide{
		{Title: "Slide 1", ImageURL: "/photo1.jpeg"},
		{Title: "Slide 2", ImageURL: "/photo2.jpeg"},
	}
}

// Source is what the carousel needs from the content client.
type Source interface {
	LatestItems(ctx context.Context) []domain.Portfolio
	ResolveAssetURL(ctx context.Context, path string, kind domain.AssetKind) string
}

type View struct {
	Slides []Slide `json:"slides"`
	Index  int     `json:"index"`
}

// Carousel loops through its slides, one every interval.
type Carousel struct {
	loop     *loop.Loop
	interval time.Duration

	mounted bool
	slides  []Slide
	index   int
	timer   *loop.Timer
}

func New(l *loop.Loop, interval time.Duration) *Carousel {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Carousel{loop: l, interval: interval, slides: FallbackSlides()}
}

func (c *Carousel) Mount() {
	c.mounted = true
	c.restart()
}

func (c *Carousel) Unmount() {
	c.mounted = false
	c.stop()
}

// Load resolves the latest entries into slides. Safe from any goroutine.
func (c *Carousel) Load(ctx context.Context, src Source) {
	var slides []Slide
	for _, item := range src.LatestItems(ctx) {
		url := src.ResolveAssetURL(ctx, item.ImagePathOriginal, domain.AssetImage)
		if url == "" {
			continue
		}
		slides = append(slides, Slide{ItemID: item.ID, Title: item.Title, ImageURL: url})
	}
	c.loop.Post(func() { c.SetSlides(slides) })
}

// SetSlides replaces the slides and starts over from the first.
func (c *Carousel) SetSlides(slides []Slide) {
	if !c.mounted {
		return
	}
	if len(slides) == 0 {
		slides = FallbackSlides()
	}
	c.slides = slides
	c.index = 0
	c.restart()
}

// Goto jumps to slide i, wrapping around, and restarts the autoplay delay.
func (c *Carousel) Goto(i int) bool {
	if !c.mounted {
		return false
	}
	n := len(c.slides)
	c.index = ((i % n) + n) % n
	c.restart()
	return true
}

func (c *Carousel) Index() int { return c.index }

func (c *Carousel) View() View {
	return View{Slides: append([]Slide(nil), c.slides...), Index: c.index}
}

func (c *Carousel) restart() {
	c.stop()
	if !c.mounted || len(c.slides) < 2 {
		return
	}
	c.timer = c.loop.AfterFunc(c.interval, c.advance)
}

func (c *Carousel) advance() {
	c.timer = nil
	if !c.mounted {
		return
	}
	c.index = (c.index + 1) % len(c.slides)
	c.timer = c.loop.AfterFunc(c.interval, c.advance)
}

func (c *Carousel) stop() {
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
}
