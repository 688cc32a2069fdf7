package application

import (
	"context"
	"errors"
	"strings"

	"github.com/Maxito7/heey_portfolio/internal/domain"
)

var ErrInvalidPortfolio = errors.New("invalid portfolio")

type PortfolioService struct {
	repo domain.PortfolioRepository
}

func NewPortfolioService(repo domain.PortfolioRepository) *PortfolioService {
	return &PortfolioService{repo: repo}
}

type PortfolioInput struct {
	Title             string `json:"title"`
	Description       string `json:"description"`
	ImagePathOriginal string `json:"image_path_original"`
	ImagePathMin      string `json:"image_path_min"`
	VideoPath         string `json:"video_path"`
	Visibility        *bool  `json:"visibility"`
	SortOrder         int    `json:"sort_order"`
}

// Validate checks that the entry can be rendered: it needs a title and an original
// image or a video.
func (in PortfolioInput) Validate() error {
	if strings.TrimSpace(in.Title) == "" {
		return errors.Join(ErrInvalidPortfolio, errors.New("title is required"))
	}
	if in.ImagePathOriginal == "" && in.VideoPath == "" {
		return errors.Join(ErrInvalidPortfolio, errors.New("an original image or a video is required"))
	}
	return nil
}

func (in PortfolioInput) apply(p *domain.Portfolio) {
	p.Title = strings.TrimSpace(in.Title)
	p.Description = in.Description
	p.ImagePathOriginal = in.ImagePathOriginal
	p.ImagePathMin = in.ImagePathMin
	if p.ImagePathMin == "" {
		p.ImagePathMin = in.ImagePathOriginal
	}
	p.VideoPath = in.VideoPath
	p.Visibility = in.Visibility == nil || *in.Visibility
	p.SortOrder = in.SortOrder
}

func (s *PortfolioService) Create(ctx context.Context, in PortfolioInput) (*domain.Portfolio, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	p := &domain.Portfolio{}
	in.apply(p)
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *PortfolioService) Update(ctx context.Context, id int, in PortfolioInput) (*domain.Portfolio, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	p := &domain.Portfolio{ID: id}
	in.apply(p)
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *PortfolioService) Delete(ctx context.Context, id int) error {
	return s.repo.Delete(ctx, id)
}
