package inquiry

import (
	"context"
	"time"

	"handyhub/internal/backend"
)

// Repository handles inquiry data access
type Repository struct {
	client backend.Client
	now    func() time.Time
}

func NewRepository(client backend.Client) *Repository {
	return &Repository{client: client, now: func() time.Time { return time.Now().UTC() }}
}

// Create inserts a new inquiry
func (r *Repository) Create(ctx context.Context, i *Inquiry) error {
	now := r.now()
	i.ID = 0
	i.CreatedAt, i.UpdatedAt = now, now
	return r.client.Insert(ctx, Table, i)
}

func (r *Repository) GetByID(ctx context.Context, id int64) (*Inquiry, error) {
	var rows []Inquiry
	if err := r.client.Select(ctx, Table, backend.Where(backend.Eq("id", id)), backend.Order{}, &rows); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrInquiryNotFound
	}
	return &rows[0], nil
}

// List returns inquiries newest first, optionally filtered by status
func (r *Repository) List(ctx context.Context, status Status) ([]Inquiry, error) {
	var filter backend.Filter
	if status != "" {
		filter = filter.And("status", status)
	}
	var rows []Inquiry
	if err := r.client.Select(ctx, Table, filter, backend.Desc("created_at"), &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// CompareAndSetStatus moves the inquiry only while it is still in from.
func (r *Repository) CompareAndSetStatus(ctx context.Context, id int64, from, to Status) (bool, error) {
	n, err := r.client.Update(ctx, Table,
		map[string]any{"status": to, "updated_at": r.now()},
		backend.Where(backend.Eq("id", id), backend.Eq("status", from)))
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

// CountByStatus returns inquiry counts per status
func (r *Repository) CountByStatus(ctx context.Context) (map[Status]int64, error) {
	out := make(map[Status]int64, len(Statuses))
	for _, s := range Statuses {
		n, err := r.client.Count(ctx, Table, backend.Where(backend.Eq("status", s)))
		if err != nil {
			return nil, err
		}
		out[s] = n
	}
	return out, nil
}
