package hero

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/Maxito7/heey_portfolio/internal/domain"
	"github.com/Maxito7/heey_portfolio/internal/ui/loop"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSource struct {
	items []domain.Portfolio
}

func (s fakeSource) LatestItems(context.Context) []domain.Portfolio { return s.items }

func (s fakeSource) ResolveAssetURL(_ context.Context, path string, _ domain.AssetKind) string {
	switch {
	case path == "missing.jpg":
		return ""
	case strings.HasPrefix(path, "http"):
		return path
	}
	return "https://assets/images/" + path
}

func newCarousel() (*Carousel, *loop.Loop, *clockwork.FakeClock) {
	clock := clockwork.NewFakeClock()
	l := loop.New(clock)
	c := New(l, DefaultInterval)
	c.Mount()
	return c, l, clock
}

func TestAutoplayLoops(t *testing.T) {
	c, l, clock := newCarousel()
	require.Len(t, c.View().Slides, 2)

	clock.Advance(DefaultInterval)
	l.Drain()
	assert.Equal(t, 1, c.Index())

	clock.Advance(DefaultInterval)
	l.Drain()
	assert.Equal(t, 0, c.Index())
}

func TestLoadUsesLatestItems(t *testing.T) {
	c, l, _ := newCarousel()
	src := fakeSource{items: []domain.Portfolio{
		{ID: 3, Title: "C", ImagePathOriginal: "c.jpg"},
		{ID: 2, Title: "B", ImagePathOriginal: "missing.jpg"},
		{ID: 1, Title: "A", ImagePathOriginal: "https://cdn/a.jpg"},
	}}

	c.Load(context.Background(), src)
	l.Drain()

	v := c.View()
	require.Len(t, v.Slides, 2)
	assert.Equal(t, "https://assets/images/c.jpg", v.Slides[0].ImageURL)
	assert.Equal(t, "https://cdn/a.jpg", v.Slides[1].ImageURL)
}

func TestLoadWithoutItemsKeepsFallback(t *testing.T) {
	c, l, _ := newCarousel()
	c.Load(context.Background(), fakeSource{})
	l.Drain()
	assert.Equal(t, FallbackSlides(), c.View().Slides)
}

func TestGotoRestartsAutoplay(t *testing.T) {
	c, l, clock := newCarousel()

	clock.Advance(4 * time.Second)
	l.Drain()
	require.True(t, c.Goto(-1))
	assert.Equal(t, 1, c.Index())

	clock.Advance(4 * time.Second)
	l.Drain()
	assert.Equal(t, 1, c.Index())

	clock.Advance(time.Second)
	l.Drain()
	assert.Equal(t, 0, c.Index())
}

func TestSingleSlideDoesNotAutoplay(t *testing.T) {
	c, l, clock := newCarousel()
	c.SetSlides([]Slide{{Title: "only", ImageURL: "x"}})
	assert.Zero(t, l.Pending())

	clock.Advance(time.Minute)
	l.Drain()
	assert.Equal(t, 0, c.Index())
}

func TestUnmountStopsAutoplay(t *testing.T) {
	c, l, clock := newCarousel()
	c.Unmount()
	assert.False(t, c.Goto(1))

	clock.Advance(time.Minute)
	l.Drain()
	assert.Equal(t, 0, c.Index())
	assert.Zero(t, l.Pending())
}
