package profile

import (
	"context"
	"errors"
	"strings"
	"time"

	"handyhub/internal/backend"
	"handyhub/internal/pkg/apperr"
)

type Repository struct {
	client backend.Client
	now    func() time.Time
}

func NewRepository(client backend.Client) *Repository {
	return &Repository{client: client, now: func() time.Time { return time.Now().UTC() }}
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (r *Repository) Create(ctx context.Context, p *Profile) error {
	now := r.now()
	p.ID = 0
	p.Email = NormalizeEmail(p.Email)
	p.CreatedAt, p.UpdatedAt = now, now
	if err := r.client.Insert(ctx, Table, p); err != nil {
		if errors.Is(err, apperr.ErrConflict) {
			return ErrEmailExists
		}
		return err
	}
	return nil
}

func (r *Repository) one(ctx context.Context, filter backend.Filter) (*Profile, error) {
	var rows []Profile
	if err := r.client.Select(ctx, Table, filter, backend.Order{}, &rows); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrProfileNotFound
	}
	return &rows[0], nil
}

func (r *Repository) GetByID(ctx context.Context, id int64) (*Profile, error) {
	return r.one(ctx, backend.Where(backend.Eq("id", id)))
}

func (r *Repository) GetByEmail(ctx context.Context, email string) (*Profile, error) {
	return r.one(ctx, backend.Where(backend.Eq("email", NormalizeEmail(email))))
}

func (r *Repository) Update(ctx context.Context, id int64, patch map[string]any) error {
	patch["updated_at"] = r.now()
	n, err := r.client.Update(ctx, Table, patch, backend.Where(backend.Eq("id", id)))
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrProfileNotFound
	}
	return nil
}

func (r *Repository) Delete(ctx context.Context, id int64) error {
	return r.client.Delete(ctx, Table, backend.Where(backend.Eq("id", id)))
}
