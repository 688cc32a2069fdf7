package application

import (
	"context"
	"sync"

	"github.com/Maxito7/heey_portfolio/internal/domain"
)

type urlKey struct {
	id      int
	variant domain.Variant
}

// URLCache maps (portfolio id, variant) to a resolved URL. It is built once after the
// item list loads and never invalidated; signed URLs may expire in long sessions.
type URLCache struct {
	mu      sync.RWMutex
	entries map[urlKey]string
}

func NewURLCache() *URLCache {
	return &URLCache{entries: make(map[urlKey]string)}
}

// Get returns the URL for an item variant.
func (c *URLCache) Get(id int, variant domain.Variant) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	url, ok := c.entries[urlKey{id, variant}]
	return url, ok
}

// Set stores the URL for an item variant.
func (c *URLCache) Set(id int, variant domain.Variant, url string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[urlKey{id, variant}] = url
}

// Size returns the number of resolved entries.
func (c *URLCache) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Resolver is what BuildURLCache needs from the content client.
type Resolver interface {
	ResolveAssetURL(ctx context.Context, path string, kind domain.AssetKind) string
}

// BuildURLCache resolves every variant of every item. Image variants that fail to
// resolve get the placeholder; a failed video leaves no entry and the item shows its
// image. The returned cache is complete when the function returns.
func BuildURLCache(ctx context.Context, r Resolver, items []domain.Portfolio, placeholder string) *URLCache {
	cache := NewURLCache()
	for _, item := range items {
		cache.Set(item.ID, domain.VariantThumbnail,
			resolveOr(ctx, r, item.ImagePathMin, domain.AssetImage, placeholder))
		cache.Set(item.ID, domain.VariantOriginal,
			resolveOr(ctx, r, item.ImagePathOriginal, domain.AssetImage, placeholder))

		if item.HasVideo() {
			if video := resolveOr(ctx, r, item.VideoPath, domain.AssetVideo, ""); video != "" {
				cache.Set(item.ID, domain.VariantVideo, video)
			}
		}
	}
	return cache
}

func resolveOr(ctx context.Context, r Resolver, path string, kind domain.AssetKind, fallback string) string {
	if path == "" {
		return fallback
	}
	if url := r.ResolveAssetURL(ctx, path, kind); url != "" {
		return url
	}
	return fallback
}
