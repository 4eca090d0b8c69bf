package handyman

import (
	"context"
	"time"

	"handyhub/internal/backend"
)

type Repository struct {
	client backend.Client
	now    func() time.Time
}

func NewRepository(client backend.Client) *Repository {
	return &Repository{client: client, now: func() time.Time { return time.Now().UTC() }}
}

func (r *Repository) Create(ctx context.Context, p *Profile) error {
	now := r.now()
	p.CreatedAt, p.UpdatedAt = now, now
	return r.client.Insert(ctx, Table, p)
}

func (r *Repository) Get(ctx context.Context, id int64) (*Profile, error) {
	var rows []Profile
	if err := r.client.Select(ctx, Table, backend.Where(backend.Eq("id", id)), backend.Order{}, &rows); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrHandymanNotFound
	}
	return &rows[0], nil
}

func (r *Repository) List(ctx context.Context, filter backend.Filter, order backend.Order) ([]Profile, error) {
	var rows []Profile
	if err := r.client.Select(ctx, Table, filter, order, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *Repository) Update(ctx context.Context, id int64, patch map[string]any) error {
	patch["updated_at"] = r.now()
	n, err := r.client.Update(ctx, Table, patch, backend.Where(backend.Eq("id", id)))
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrHandymanNotFound
	}
	return nil
}
