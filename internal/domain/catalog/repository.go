package catalog

import (
	"context"
	"time"

	"handyhub/internal/backend"
)

type ListFilter struct {
	Category   string
	ActiveOnly bool
}

type Repository struct {
	client backend.Client
	now    func() time.Time
}

func NewRepository(client backend.Client) *Repository {
	return &Repository{client: client, now: func() time.Time { return time.Now().UTC() }}
}

func (r *Repository) List(ctx context.Context, f ListFilter) ([]Service, error) {
	var filter backend.Filter
	if f.Category != "" {
		filter = filter.And("category", f.Category)
	}
	if f.ActiveOnly {
		filter = filter.And("is_active", true)
	}

	var rows []Service
	if err := r.client.Select(ctx, Table, filter, backend.Asc("name"), &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *Repository) Get(ctx context.Context, id int64) (*Service, error) {
	var rows []Service
	if err := r.client.Select(ctx, Table, backend.Where(backend.Eq("id", id)), backend.Order{}, &rows); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrServiceNotFound
	}
	return &rows[0], nil
}

func (r *Repository) Create(ctx context.Context, s *Service) error {
	now := r.now()
	s.ID = 0
	s.CreatedAt, s.UpdatedAt = now, now
	return r.client.Insert(ctx, Table, s)
}

func (r *Repository) Update(ctx context.Context, id int64, patch map[string]any) error {
	patch["updated_at"] = r.now()
	n, err := r.client.Update(ctx, Table, patch, backend.Where(backend.Eq("id", id)))
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrServiceNotFound
	}
	return nil
}

func (r *Repository) Delete(ctx context.Context, id int64) error {
	if _, err := r.Get(ctx, id); err != nil {
		return err
	}
	return r.client.Delete(ctx, Table, backend.Where(backend.Eq("id", id)))
}
