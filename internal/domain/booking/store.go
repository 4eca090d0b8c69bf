package booking

import (
	"context"
	"time"

	"handyhub/internal/backend"
)

// Store is the booking entity store. It only speaks the backend table
// contract, so the same code runs on SQL and on PostgREST.
type Store interface {
	Create(ctx context.Context, b *Booking) error
	Get(ctx context.Context, id int64) (*Booking, error)
	List(ctx context.Context, q ListQuery) ([]Booking, error)
	// CompareAndSetStatus moves the booking to `to` only while it is still
	// in `from`. It reports false when another writer got there first.
	CompareAndSetStatus(ctx context.Context, id int64, from, to Status, handymanID *int64, at time.Time) (bool, error)
	// SaveReview stores the rating only while none is recorded yet. It
	// reports false when the booking has already been reviewed.
	SaveReview(ctx context.Context, id int64, rating int, comment string, at time.Time) (bool, error)
	Update(ctx context.Context, id int64, patch map[string]any) error
}

// ListQuery narrows a listing; zero fields do not filter.
type ListQuery struct {
	CustomerID int64
	HandymanID int64
	Status     Status
	Order      backend.Order
}

func (q ListQuery) filter() backend.Filter {
	var f backend.Filter
	if q.CustomerID != 0 {
		f = f.And("customer_id", q.CustomerID)
	}
	if q.HandymanID != 0 {
		f = f.And("handyman_id", q.HandymanID)
	}
	if q.Status != "" {
		f = f.And("status", q.Status)
	}
	return f
}

type TableStore struct {
	client backend.Client
	now    func() time.Time
}

func NewStore(client backend.Client) *TableStore {
	return &TableStore{client: client, now: func() time.Time { return time.Now().UTC() }}
}

func (s *TableStore) Create(ctx context.Context, b *Booking) error {
	now := s.now()
	b.ID = 0
	if b.Status == "" {
		b.Status = StatusPending
	}
	b.CreatedAt, b.UpdatedAt = now, now
	return s.client.Insert(ctx, Table, b)
}

func (s *TableStore) Get(ctx context.Context, id int64) (*Booking, error) {
	var rows []Booking
	if err := s.client.Select(ctx, Table, backend.Where(backend.Eq("id", id)), backend.Order{}, &rows); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrBookingNotFound
	}
	return &rows[0], nil
}

func (s *TableStore) List(ctx context.Context, q ListQuery) ([]Booking, error) {
	var rows []Booking
	if err := s.client.Select(ctx, Table, q.filter(), q.Order, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *TableStore) CompareAndSetStatus(ctx context.Context, id int64, from, to Status, handymanID *int64, at time.Time) (bool, error) {
	patch := map[string]any{
		"status":     to,
		"updated_at": at,
	}
	if handymanID != nil {
		patch["handyman_id"] = *handymanID
	}
	n, err := s.client.Update(ctx, Table, patch, backend.Where(
		backend.Eq("id", id),
		backend.Eq("status", from),
	))
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

func (s *TableStore) SaveReview(ctx context.Context, id int64, rating int, comment string, at time.Time) (bool, error) {
	n, err := s.client.Update(ctx, Table, map[string]any{
		"customer_rating": rating,
		"customer_review": comment,
		"updated_at":      at,
	}, backend.Where(
		backend.Eq("id", id),
		backend.IsNull("customer_rating"),
	))
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

func (s *TableStore) Update(ctx context.Context, id int64, patch map[string]any) error {
	if _, ok := patch["updated_at"]; !ok {
		patch["updated_at"] = s.now()
	}
	n, err := s.client.Update(ctx, Table, patch, backend.Where(backend.Eq("id", id)))
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrBookingNotFound
	}
	return nil
}
