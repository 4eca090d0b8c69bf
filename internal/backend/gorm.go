package backend

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"handyhub/internal/pkg/apperr"
)

const pgUniqueViolation = "23505"

// Gorm serves the contract from a relational database through gorm.
type Gorm struct {
	db *gorm.DB
}

func NewGorm(db *gorm.DB) *Gorm {
	return &Gorm{db: db}
}

// DB exposes the handle for migrations and hand-written aggregate queries.
func (g *Gorm) DB() *gorm.DB { return g.db }

func (g *Gorm) scoped(ctx context.Context, table string, filter Filter) (*gorm.DB, error) {
	if err := checkIdent("table", table); err != nil {
		return nil, err
	}
	if err := filter.validate(); err != nil {
		return nil, err
	}
	q := g.db.WithContext(ctx).Table(table)
	for _, c := range filter {
		if c.Null {
			q = q.Where(c.clause())
			continue
		}
		q = q.Where(c.clause(), c.Value)
	}
	return q, nil
}

func (g *Gorm) Select(ctx context.Context, table string, filter Filter, order Order, dest any) error {
	q, err := g.scoped(ctx, table, filter)
	if err != nil {
		return apperr.Persistence("select "+table, err)
	}
	if err := order.validate(); err != nil {
		return apperr.Persistence("select "+table, err)
	}
	if order.Column != "" {
		dir := "asc"
		if order.Desc {
			dir = "desc"
		}
		q = q.Order(order.Column + " " + dir).Order("id " + dir)
	}
	return classify("select "+table, q.Find(dest).Error)
}

func (g *Gorm) Insert(ctx context.Context, table string, value any) error {
	if err := checkIdent("table", table); err != nil {
		return apperr.Persistence("insert "+table, err)
	}
	return classify("insert "+table, g.db.WithContext(ctx).Table(table).Create(value).Error)
}

func (g *Gorm) Update(ctx context.Context, table string, patch map[string]any, filter Filter) (int64, error) {
	if len(patch) == 0 {
		return 0, apperr.Persistence("update "+table, errors.New("empty patch"))
	}
	q, err := g.scoped(ctx, table, filter)
	if err != nil {
		return 0, apperr.Persistence("update "+table, err)
	}
	res := q.Updates(patch)
	if err := classify("update "+table, res.Error); err != nil {
		return 0, err
	}
	return res.RowsAffected, nil
}

func (g *Gorm) Delete(ctx context.Context, table string, filter Filter) error {
	if len(filter) == 0 {
		return apperr.Persistence("delete "+table, errors.New("refusing to delete without a filter"))
	}
	if err := checkIdent("table", table); err != nil {
		return apperr.Persistence("delete "+table, err)
	}
	if err := filter.validate(); err != nil {
		return apperr.Persistence("delete "+table, err)
	}

	clauses := make([]string, 0, len(filter))
	args := make([]any, 0, len(filter))
	for _, c := range filter {
		clauses = append(clauses, c.clause())
		if !c.Null {
			args = append(args, c.Value)
		}
	}
	sql := fmt.Sprintf("DELETE FROM %s WHERE %s", table, strings.Join(clauses, " AND "))
	return classify("delete "+table, g.db.WithContext(ctx).Exec(sql, args...).Error)
}

func (g *Gorm) Count(ctx context.Context, table string, filter Filter) (int64, error) {
	q, err := g.scoped(ctx, table, filter)
	if err != nil {
		return 0, apperr.Persistence("count "+table, err)
	}
	var n int64
	if err := classify("count "+table, q.Count(&n).Error); err != nil {
		return 0, err
	}
	return n, nil
}

// classify turns driver errors into apperr kinds. Unique violations become
// conflicts so callers can report duplicates distinctly.
func classify(op string, err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return apperr.Wrap(apperr.ErrConflict, "%s: duplicate %s", op, pgErr.ConstraintName)
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) || strings.Contains(err.Error(), "UNIQUE constraint failed") {
		return apperr.Wrap(apperr.ErrConflict, "%s: duplicate value", op)
	}
	return apperr.Persistence(op, err)
}
