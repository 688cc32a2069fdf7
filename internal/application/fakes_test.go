package application

import (
	"context"
	"errors"
	"io"
	"sort"

	"github.com/Maxito7/heey_portfolio/internal/domain"
)

type fakeRepo struct {
	items  []domain.Portfolio
	err    error
	nextID int
}

func (r *fakeRepo) ListVisible(context.Context) ([]domain.Portfolio, error) {
	if r.err != nil {
		return nil, r.err
	}
	var out []domain.Portfolio
	for _, p := range r.items {
		if p.Visibility {
			out = append(out, p)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].SortOrder < out[j].SortOrder })
	return out, nil
}

func (r *fakeRepo) ListLatest(_ context.Context, limit int) ([]domain.Portfolio, error) {
	if r.err != nil {
		return nil, r.err
	}
	var out []domain.Portfolio
	for _, p := range r.items {
		if p.Visibility {
			out = append(out, p)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeRepo) GetByID(_ context.Context, id int) (*domain.Portfolio, error) {
	if r.err != nil {
		return nil, r.err
	}
	for _, p := range r.items {
		if p.ID == id {
			p := p
			return &p, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *fakeRepo) Create(_ context.Context, p *domain.Portfolio) error {
	if r.err != nil {
		return r.err
	}
	r.nextID++
	p.ID = r.nextID
	r.items = append(r.items, *p)
	return nil
}

func (r *fakeRepo) Update(_ context.Context, p *domain.Portfolio) error {
	for i := range r.items {
		if r.items[i].ID == p.ID {
			r.items[i] = *p
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r *fakeRepo) Delete(_ context.Context, id int) error {
	for i := range r.items {
		if r.items[i].ID == id {
			r.items = append(r.items[:i], r.items[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

// fakeStore resolves paths to https://assets/<folder>/<path> unless listed in fail.
type fakeStore struct {
	fail     map[string]bool
	resolved []string
	uploads  map[string]string
}

func newFakeStore() *fakeStore {
	return &fakeStore{fail: map[string]bool{}, uploads: map[string]string{}}
}

func (s *fakeStore) ResolveURL(_ context.Context, path string, kind domain.AssetKind) (string, error) {
	s.resolved = append(s.resolved, path)
	if s.fail[path] {
		return "", errors.New("object not found")
	}
	return "https://assets/" + kind.Folder() + "/" + path, nil
}

func (s *fakeStore) Upload(_ context.Context, body io.Reader, name, _ string, kind domain.AssetKind) (string, error) {
	if s.fail[name] {
		return "", domain.ErrAssetExists
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return "", err
	}
	s.uploads[kind.Folder()+"/"+name] = string(data)
	return name, nil
}

func (s *fakeStore) Delete(_ context.Context, path string, kind domain.AssetKind) error {
	key := kind.Folder() + "/" + path
	if _, ok := s.uploads[key]; !ok {
		return errors.New("no such key")
	}
	delete(s.uploads, key)
	return nil
}
