package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Maxito7/heey_portfolio/internal/domain"
)

const portfolioColumns = `id, title, COALESCE(description, ''), image_path_original, image_path_min,
	COALESCE(video_path, ''), visibility, sort_order, created_at, updated_at`

type PortfolioRepository struct {
	db *sql.DB
}

func NewPortfolioRepository(db *sql.DB) *PortfolioRepository {
	return &PortfolioRepository{db: db}
}

// ListVisible returns the visible entries in gallery order.
func (r *PortfolioRepository) ListVisible(ctx context.Context) ([]domain.Portfolio, error) {
	return r.query(ctx, `
		SELECT `+portfolioColumns+`
		FROM portfolios
		WHERE visibility = true
		ORDER BY sort_order ASC, created_at DESC
	`)
}

// ListLatest returns the most recently added visible entries.
func (r *PortfolioRepository) ListLatest(ctx context.Context, limit int) ([]domain.Portfolio, error) {
	return r.query(ctx, `
		SELECT `+portfolioColumns+`
		FROM portfolios
		WHERE visibility = true
		ORDER BY created_at DESC
		LIMIT $1
	`, limit)
}

func (r *PortfolioRepository) GetByID(ctx context.Context, id int) (*domain.Portfolio, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+portfolioColumns+` FROM portfolios WHERE id = $1`, id)
	p, err := scanPortfolio(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

func (r *PortfolioRepository) Create(ctx context.Context, p *domain.Portfolio) error {
	query := `
		INSERT INTO portfolios (title, description, image_path_original, image_path_min, video_path, visibility, sort_order)
		VALUES ($1, NULLIF($2, ''), $3, $4, NULLIF($5, ''), $6, $7)
		RETURNING id, created_at, updated_at
	`
	return r.db.QueryRowContext(ctx, query,
		p.Title, p.Description, p.ImagePathOriginal, p.ImagePathMin, p.VideoPath, p.Visibility, p.SortOrder,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
}

func (r *PortfolioRepository) Update(ctx context.Context, p *domain.Portfolio) error {
	query := `
		UPDATE portfolios
		SET title = $1, description = NULLIF($2, ''), image_path_original = $3, image_path_min = $4,
			video_path = NULLIF($5, ''), visibility = $6, sort_order = $7, updated_at = NOW()
		WHERE id = $8
		RETURNING created_at, updated_at
	`
	err := r.db.QueryRowContext(ctx, query,
		p.Title, p.Description, p.ImagePathOriginal, p.ImagePathMin, p.VideoPath, p.Visibility, p.SortOrder, p.ID,
	).Scan(&p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrNotFound
	}
	return err
}

func (r *PortfolioRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM portfolios WHERE id = $1", id)
	if err != nil {
		return err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return fmt.Errorf("delete portfolio %d: %w", id, domain.ErrNotFound)
	}
	return nil
}

func (r *PortfolioRepository) query(ctx context.Context, query string, args ...any) ([]domain.Portfolio, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []domain.Portfolio{}
	for rows.Next() {
		p, err := scanPortfolio(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *p)
	}
	return items, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanPortfolio(s scanner) (*domain.Portfolio, error) {
	var p domain.Portfolio
	err := s.Scan(&p.ID, &p.Title, &p.Description, &p.ImagePathOriginal, &p.ImagePathMin,
		&p.VideoPath, &p.Visibility, &p.SortOrder, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
