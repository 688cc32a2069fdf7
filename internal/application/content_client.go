package application

import (
	"context"
	"io"

	"github.com/Maxito7/heey_portfolio/internal/domain"
	"go.uber.org/zap"
)

const LatestLimit = 3

// ContentClient is the read side the gallery pages consume. Collaborator failures
// never reach the caller: they are logged and turned into empty results.
type ContentClient struct {
	repo   domain.PortfolioRepository
	assets domain.AssetStore
	logger *zap.Logger
}

func NewContentClient(repo domain.PortfolioRepository, assets domain.AssetStore, logger *zap.Logger) *ContentClient {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ContentClient{repo: repo, assets: assets, logger: logger}
}

// ListVisibleItems returns the visible entries ordered by sort order, or an empty list.
func (c *ContentClient) ListVisibleItems(ctx context.Context) []domain.Portfolio {
	items, err := c.repo.ListVisible(ctx)
	if err != nil {
		c.logger.Error("error fetching portfolios", zap.Error(err))
		return []domain.Portfolio{}
	}
	if items == nil {
		return []domain.Portfolio{}
	}
	return items
}

// LatestItems returns the newest visible entries for the hero.
func (c *ContentClient) LatestItems(ctx context.Context) []domain.Portfolio {
	items, err := c.repo.ListLatest(ctx, LatestLimit)
	if err != nil {
		c.logger.Error("error fetching latest portfolios", zap.Error(err))
		return []domain.Portfolio{}
	}
	if items == nil {
		return []domain.Portfolio{}
	}
	return items
}

// ItemByID returns one entry, or nil when it does not exist or cannot be read.
func (c *ContentClient) ItemByID(ctx context.Context, id int) *domain.Portfolio {
	item, err := c.repo.GetByID(ctx, id)
	if err != nil {
		c.logger.Warn("error fetching portfolio", zap.Int("id", id), zap.Error(err))
		return nil
	}
	return item
}

// ResolveAssetURL returns a displayable URL for path, or "" when it cannot be resolved.
func (c *ContentClient) ResolveAssetURL(ctx context.Context, path string, kind domain.AssetKind) string {
	if path == "" {
		return ""
	}
	if domain.IsAbsoluteURL(path) {
		return path
	}
	url, err := c.assets.ResolveURL(ctx, path, kind)
	if err != nil {
		c.logger.Error("error creating asset url",
			zap.String("path", path),
			zap.String("kind", string(kind)),
			zap.Error(err))
		return ""
	}
	return url
}

// UploadAsset stores a file and returns its path, or "" on failure.
func (c *ContentClient) UploadAsset(ctx context.Context, body io.Reader, name, contentType string, kind domain.AssetKind) string {
	path, err := c.assets.Upload(ctx, body, name, contentType, kind)
	if err != nil {
		c.logger.Error("error uploading asset",
			zap.String("name", name),
			zap.String("kind", string(kind)),
			zap.Error(err))
		return ""
	}
	return path
}

// DeleteAsset removes a stored file and reports whether it succeeded.
func (c *ContentClient) DeleteAsset(ctx context.Context, path string, kind domain.AssetKind) bool {
	if err := c.assets.Delete(ctx, path, kind); err != nil {
		c.logger.Error("error deleting asset",
			zap.String("path", path),
			zap.String("kind", string(kind)),
			zap.Error(err))
		return false
	}
	return true
}
