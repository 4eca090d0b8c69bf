package stats

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"handyhub/internal/backend"
	"handyhub/internal/domain/booking"
	"handyhub/internal/pkg/apperr"
)

// Counter reads the raw numbers behind an Overview.
type Counter interface {
	BookingsByStatus(ctx context.Context) (map[booking.Status]int64, error)
	Rows(ctx context.Context, table string) (int64, error)
}

// ClientCounter counts through the backend contract, one query per
// status. It works on every backend.
type ClientCounter struct {
	client backend.Client
}

func NewClientCounter(client backend.Client) *ClientCounter {
	return &ClientCounter{client: client}
}

func (c *ClientCounter) BookingsByStatus(ctx context.Context) (map[booking.Status]int64, error) {
	out := make(map[booking.Status]int64, len(booking.Statuses))
	for _, s := range booking.Statuses {
		n, err := c.client.Count(ctx, booking.Table, backend.Where(backend.Eq("status", s)))
		if err != nil {
			return nil, err
		}
		out[s] = n
	}
	return out, nil
}

func (c *ClientCounter) Rows(ctx context.Context, table string) (int64, error) {
	return c.client.Count(ctx, table, nil)
}

// SQLCounter groups in the database. Only usable with a SQL backend.
type SQLCounter struct {
	db *sqlx.DB
}

func NewSQLCounter(db *sqlx.DB) *SQLCounter {
	return &SQLCounter{db: db}
}

type statusCount struct {
	Status booking.Status `db:"status"`
	N      int64          `db:"n"`
}

func (c *SQLCounter) BookingsByStatus(ctx context.Context) (map[booking.Status]int64, error) {
	var rows []statusCount
	query := `SELECT status, COUNT(*) AS n FROM ` + booking.Table + ` GROUP BY status`
	if err := c.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, apperr.Persistence("count bookings by status", err)
	}

	out := make(map[booking.Status]int64, len(booking.Statuses))
	for _, s := range booking.Statuses {
		out[s] = 0
	}
	for _, r := range rows {
		out[r.Status] = r.N
	}
	return out, nil
}

// Rows counts a whole table. table must be one of the package's own table
// constants, never caller input.
func (c *SQLCounter) Rows(ctx context.Context, table string) (int64, error) {
	var n int64
	if err := c.db.GetContext(ctx, &n, fmt.Sprintf(`SELECT COUNT(*) FROM %s`, table)); err != nil {
		return 0, apperr.Persistence("count "+table, err)
	}
	return n, nil
}
