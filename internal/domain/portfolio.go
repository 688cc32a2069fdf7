package domain

import (
	"context"
	"errors"
	"time"
)

var (
	ErrNotFound    = errors.New("portfolio not found")
	ErrAssetExists = errors.New("asset already exists")
	ErrInvalidKind = errors.New("invalid asset kind")
)

// Portfolio is one gallery entry. Image paths are relative to the images/ folder of
// the asset bucket, the video path to videos/, unless they are already absolute URLs.
type Portfolio struct {
	ID                int       `json:"id"`
	Title             string    `json:"title"`
	Description       string    `json:"description,omitempty"`
	ImagePathOriginal string    `json:"image_path_original"`
	ImagePathMin      string    `json:"image_path_min"`
	VideoPath         string    `json:"video_path,omitempty"`
	Visibility        bool      `json:"visibility"`
	SortOrder         int       `json:"sort_order"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// HasVideo reports whether the entry plays a video in the lightbox.
func (p Portfolio) HasVideo() bool {
	return p.VideoPath != ""
}

type PortfolioRepository interface {
	ListVisible(ctx context.Context) ([]Portfolio, error)
	ListLatest(ctx context.Context, limit int) ([]Portfolio, error)
	GetByID(ctx context.Context, id int) (*Portfolio, error)
	Create(ctx context.Context, p *Portfolio) error
	Update(ctx context.Context, p *Portfolio) error
	Delete(ctx context.Context, id int) error
}
