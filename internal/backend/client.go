// Package backend is the table-level contract every repository talks to:
// select, insert, update and delete over named tables, filtered by
// equality or null checks and ordered by a single column.
//
// Two implementations exist. Gorm runs against PostgreSQL or SQLite;
// Supabase runs against a hosted PostgREST endpoint. Both classify every
// failure as apperr.ErrPersistence so callers never see driver types.
package backend

import (
	"context"
	"fmt"
	"regexp"
)

type Client interface {
	// Select decodes matching rows into dest, a pointer to a slice.
	Select(ctx context.Context, table string, filter Filter, order Order, dest any) error
	// Insert writes value (a pointer to a row or a slice of rows) and fills
	// in backend-assigned fields such as id and created_at.
	Insert(ctx context.Context, table string, value any) error
	// Update applies patch to matching rows and reports how many matched.
	Update(ctx context.Context, table string, patch map[string]any, filter Filter) (int64, error)
	// Delete removes matching rows. An empty filter is refused.
	Delete(ctx context.Context, table string, filter Filter) error
	// Count reports the number of matching rows.
	Count(ctx context.Context, table string, filter Filter) (int64, error)
}

// Cond is a single column = value condition, or column IS NULL when Null
// is set. Value is ignored for null checks.
type Cond struct {
	Column string
	Value  any
	Null   bool
}

// Filter is a conjunction of conditions.
type Filter []Cond

func Eq(column string, value any) Cond {
	return Cond{Column: column, Value: value}
}

// IsNull matches rows where column holds no value. Eq(column, nil) does
// not: SQL never considers NULL equal to anything.
func IsNull(column string) Cond {
	return Cond{Column: column, Null: true}
}

func (c Cond) clause() string {
	if c.Null {
		return c.Column + " IS NULL"
	}
	return c.Column + " = ?"
}

func Where(conds ...Cond) Filter {
	return Filter(conds)
}

func (f Filter) And(column string, value any) Filter {
	return append(f, Eq(column, value))
}

// Order sorts by one column. The zero value leaves the order to the backend.
type Order struct {
	Column string
	Desc   bool
}

func Asc(column string) Order  { return Order{Column: column} }
func Desc(column string) Order { return Order{Column: column, Desc: true} }

var identRe = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)

func checkIdent(kind, name string) error {
	if !identRe.MatchString(name) {
		return fmt.Errorf("invalid %s name %q", kind, name)
	}
	return nil
}

func (f Filter) validate() error {
	for _, c := range f {
		if err := checkIdent("column", c.Column); err != nil {
			return err
		}
	}
	return nil
}

func (o Order) validate() error {
	if o.Column == "" {
		return nil
	}
	return checkIdent("column", o.Column)
}
