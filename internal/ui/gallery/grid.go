// Package gallery holds the masonry gallery grid and the page session that ties the
// grid, the lightbox modal and the hero carousel to one event loop.
package gallery

import (
	"context"
	"strconv"
	"time"

	"github.com/Maxito7/heey_portfolio/internal/application"
	"github.com/Maxito7/heey_portfolio/internal/domain"
	"github.com/Maxito7/heey_portfolio/internal/ui/loop"
	"github.com/Maxito7/heey_portfolio/internal/ui/masonry"
	"github.com/Maxito7/heey_portfolio/internal/ui/modal"
	"go.uber.org/zap"
)

const DefaultDebounce = 100 * time.Millisecond

// Aspect assumed for a thumbnail that failed to load and shows the fallback image.
const (
	fallbackWidth  = 800
	fallbackHeight = 600
)

// Content is what the gallery needs from the content client.
type Content interface {
	ListVisibleItems(ctx context.Context) []domain.Portfolio
	LatestItems(ctx context.Context) []domain.Portfolio
	ResolveAssetURL(ctx context.Context, path string, kind domain.AssetKind) string
}

type GridOptions struct {
	RowHeight   float64
	RowGap      float64
	Debounce    time.Duration
	Placeholder string
	Measurer    masonry.Measurer
}

// Grid is the gallery of portfolio cells laid out by the masonry engine.
type Grid struct {
	loop    *loop.Loop
	content Content
	engine  *masonry.Engine
	logger  *zap.Logger
	opts    GridOptions

	mounted bool
	loading bool
	sample  bool
	items   []domain.Portfolio
	byID    map[int]int
	urls    *application.URLCache
	failed  map[int]bool

	debounce map[string]*loop.Timer
}

func NewGrid(l *loop.Loop, content Content, logger *zap.Logger, opts GridOptions) *Grid {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}
	return &Grid{
		loop:     l,
		content:  content,
		engine:   masonry.NewEngine(nil, opts.Measurer),
		logger:   logger,
		opts:     opts,
		loading:  true,
		urls:     application.NewURLCache(),
		byID:     make(map[int]int),
		failed:   make(map[int]bool),
		debounce: make(map[string]*loop.Timer),
	}
}

// Mount attaches the grid container. Until items arrive the grid shows placeholders.
func (g *Grid) Mount(vp masonry.Viewport) {
	g.mounted = true
	g.engine.Attach(&masonry.Container{
		RowHeight: g.opts.RowHeight,
		RowGap:    g.opts.RowGap,
		Viewport:  vp,
	})
}

// Unmount detaches the container and drops pending layout timers.
func (g *Grid) Unmount() {
	g.mounted = false
	for key, t := range g.debounce {
		t.Stop()
		delete(g.debounce, key)
	}
	g.engine.Attach(nil)
}

// Load fetches the items and their URLs. It may run on any goroutine: results are
// handed to the loop, and dropped if the grid was unmounted meanwhile.
func (g *Grid) Load(ctx context.Context) {
	items := g.content.ListVisibleItems(ctx)
	g.loop.Post(func() { g.setItems(items) })

	urls := application.BuildURLCache(ctx, g.content, items, g.opts.Placeholder)
	g.loop.Post(func() { g.setURLs(urls) })
}

func (g *Grid) setItems(items []domain.Portfolio) {
	if !g.mounted {
		return
	}
	if len(items) == 0 {
		g.logger.Info("no portfolios found, showing sample content")
		items = SampleItems()
		g.sample = true
		g.urls = sampleURLs(items)
		g.loading = false
	}
	g.items = items
	g.byID = make(map[int]int, len(items))
	keys := make([]string, len(items))
	for i, item := range items {
		g.byID[item.ID] = i
		keys[i] = cellKey(item.ID)
	}
	g.engine.SetCells(keys)
}

func (g *Grid) setURLs(urls *application.URLCache) {
	if !g.mounted || g.sample {
		return
	}
	g.urls = urls
	g.loading = false
}

// Loading reports whether placeholders are showing.
func (g *Grid) Loading() bool { return g.loading }

// Sample reports whether the grid fell back to the sample items.
func (g *Grid) Sample() bool { return g.sample }

// Items returns the rendered items in grid order.
func (g *Grid) Items() []domain.Portfolio { return g.items }

// ThumbnailLoaded marks an item's image as decoded and schedules its layout.
func (g *Grid) ThumbnailLoaded(id int, naturalWidth, naturalHeight float64) bool {
	if !g.ready(id) {
		return false
	}
	key := cellKey(id)
	g.engine.MarkLoaded(key, naturalWidth, naturalHeight)
	g.scheduleRecompute(key)
	return true
}

// ThumbnailFailed swaps in the fallback image so the cell leaves its skeleton state.
func (g *Grid) ThumbnailFailed(id int) bool {
	if !g.ready(id) {
		return false
	}
	g.logger.Warn("thumbnail failed to load", zap.Int("item_id", id))
	g.failed[id] = true
	key := cellKey(id)
	g.engine.MarkLoaded(key, fallbackWidth, fallbackHeight)
	g.scheduleRecompute(key)
	return true
}

// Resize recomputes the span of every loaded cell for the new viewport.
func (g *Grid) Resize(vp masonry.Viewport) int {
	return g.engine.Resize(vp)
}

// Select returns the modal content for a clicked cell.
func (g *Grid) Select(id int) (modal.Content, bool) {
	if !g.ready(id) {
		return modal.Content{}, false
	}
	item := g.items[g.byID[id]]
	original, _ := g.urls.Get(id, domain.VariantOriginal)
	content := modal.Content{
		ItemID:      item.ID,
		Title:       item.Title,
		Description: item.Description,
		ImageURL:    original,
	}
	if video, ok := g.urls.Get(id, domain.VariantVideo); ok && video != "" {
		content.VideoURL = video
		content.PosterURL = original
	}
	return content, true
}

func (g *Grid) ready(id int) bool {
	if !g.mounted || g.loading {
		return false
	}
	_, ok := g.byID[id]
	return ok
}

// scheduleRecompute lets the browser finish layout before the cell is measured.
// A newer load of the same cell restarts the delay.
func (g *Grid) scheduleRecompute(key string) {
	if t, ok := g.debounce[key]; ok {
		t.Stop()
	}
	g.debounce[key] = g.loop.AfterFunc(g.opts.Debounce, func() {
		delete(g.debounce, key)
		g.engine.RecomputeCell(key)
	})
}

func (g *Grid) thumbnailURL(id int) string {
	if g.failed[id] {
		return g.opts.Placeholder
	}
	url, _ := g.urls.Get(id, domain.VariantThumbnail)
	return url
}

func cellKey(id int) string {
	return strconv.Itoa(id)
}
