package application

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/Maxito7/heey_portfolio/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func samplePortfolios() []domain.Portfolio {
	base := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	return []domain.Portfolio{
		{ID: 1, Title: "Villa", ImagePathOriginal: "villa.jpg", ImagePathMin: "villa_thumb.jpg", Visibility: true, SortOrder: 2, CreatedAt: base},
		{ID: 2, Title: "Draft", ImagePathOriginal: "draft.jpg", ImagePathMin: "draft_thumb.jpg", Visibility: false, SortOrder: 0, CreatedAt: base.Add(time.Hour)},
		{ID: 7, Title: "Walkthrough", ImagePathOriginal: "o1.jpg", ImagePathMin: "o1_thumb.jpg", VideoPath: "v1.mp4", Visibility: true, SortOrder: 1, CreatedAt: base.Add(2 * time.Hour)},
	}
}

func TestListVisibleItems(t *testing.T) {
	c := NewContentClient(&fakeRepo{items: samplePortfolios()}, newFakeStore(), nil)
	items := c.ListVisibleItems(context.Background())
	require.Len(t, items, 2)
	assert.Equal(t, 7, items[0].ID)
	assert.Equal(t, 1, items[1].ID)
}

func TestListVisibleItemsSwallowsErrors(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	c := NewContentClient(&fakeRepo{err: errors.New("connection refused")}, newFakeStore(), zap.New(core))

	items := c.ListVisibleItems(context.Background())
	assert.NotNil(t, items)
	assert.Empty(t, items)
	assert.Empty(t, c.LatestItems(context.Background()))
	assert.Nil(t, c.ItemByID(context.Background(), 1))
	assert.Equal(t, 2, logs.FilterMessage("error fetching portfolios").Len()+logs.FilterMessage("error fetching latest portfolios").Len())
}

func TestLatestItems(t *testing.T) {
	c := NewContentClient(&fakeRepo{items: samplePortfolios()}, newFakeStore(), nil)
	items := c.LatestItems(context.Background())
	require.Len(t, items, 2)
	assert.Equal(t, 7, items[0].ID)
}

func TestResolveAssetURL(t *testing.T) {
	store := newFakeStore()
	store.fail["broken.jpg"] = true
	c := NewContentClient(&fakeRepo{}, store, nil)
	ctx := context.Background()

	assert.Equal(t, "http://cdn/x.jpg", c.ResolveAssetURL(ctx, "http://cdn/x.jpg", domain.AssetImage))
	assert.Equal(t, "https://cdn/x.mp4", c.ResolveAssetURL(ctx, "https://cdn/x.mp4", domain.AssetVideo))
	assert.Empty(t, store.resolved)

	assert.Equal(t, "https://assets/images/o1.jpg", c.ResolveAssetURL(ctx, "o1.jpg", domain.AssetImage))
	assert.Equal(t, "https://assets/videos/v1.mp4", c.ResolveAssetURL(ctx, "v1.mp4", domain.AssetVideo))
	assert.Equal(t, "", c.ResolveAssetURL(ctx, "broken.jpg", domain.AssetImage))
	assert.Equal(t, "", c.ResolveAssetURL(ctx, "", domain.AssetImage))
}

func TestUploadAndDeleteAsset(t *testing.T) {
	store := newFakeStore()
	store.fail["taken.jpg"] = true
	c := NewContentClient(&fakeRepo{}, store, nil)
	ctx := context.Background()

	assert.Equal(t, "new.jpg", c.UploadAsset(ctx, strings.NewReader("img"), "new.jpg", "image/jpeg", domain.AssetImage))
	assert.Equal(t, "", c.UploadAsset(ctx, strings.NewReader("img"), "taken.jpg", "image/jpeg", domain.AssetImage))

	assert.True(t, c.DeleteAsset(ctx, "new.jpg", domain.AssetImage))
	assert.False(t, c.DeleteAsset(ctx, "new.jpg", domain.AssetImage))
}

func TestBuildURLCache(t *testing.T) {
	store := newFakeStore()
	store.fail["villa.jpg"] = true
	store.fail["v1.mp4"] = true
	c := NewContentClient(&fakeRepo{}, store, nil)

	items := []domain.Portfolio{
		{ID: 1, ImagePathOriginal: "villa.jpg", ImagePathMin: "villa_thumb.jpg"},
		{ID: 7, ImagePathOriginal: "o1.jpg", ImagePathMin: "https://cdn/o1_thumb.jpg", VideoPath: "v1.mp4"},
		{ID: 8, ImagePathOriginal: "o2.jpg", ImagePathMin: "o2_thumb.jpg", VideoPath: "v2.mp4"},
	}
	cache := BuildURLCache(context.Background(), c, items, "/placeholder.svg")

	get := func(id int, v domain.Variant) string {
		url, _ := cache.Get(id, v)
		return url
	}
	assert.Equal(t, "/placeholder.svg", get(1, domain.VariantOriginal))
	assert.Equal(t, "https://assets/images/villa_thumb.jpg", get(1, domain.VariantThumbnail))
	assert.Equal(t, "https://cdn/o1_thumb.jpg", get(7, domain.VariantThumbnail))
	assert.Equal(t, "https://assets/images/o1.jpg", get(7, domain.VariantOriginal))

	_, ok := cache.Get(7, domain.VariantVideo)
	assert.False(t, ok)
	assert.Equal(t, "https://assets/videos/v2.mp4", get(8, domain.VariantVideo))
	assert.Equal(t, 7, cache.Size())
}
