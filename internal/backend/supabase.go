package backend

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/supabase-community/postgrest-go"
	"github.com/supabase-community/supabase-go"

	"handyhub/internal/pkg/apperr"
)

// Supabase serves the contract from a hosted PostgREST endpoint. The
// postgrest client has no context support, so ctx is only checked before
// each call.
type Supabase struct {
	client *supabase.Client
}

func NewSupabase(client *supabase.Client) *Supabase {
	return &Supabase{client: client}
}

// DialSupabase creates the client from a project URL and service key.
func DialSupabase(url, key string) (*Supabase, error) {
	client, err := supabase.NewClient(url, key, nil)
	if err != nil {
		return nil, fmt.Errorf("init supabase client: %w", err)
	}
	return NewSupabase(client), nil
}

func applyFilter(fb *postgrest.FilterBuilder, filter Filter) *postgrest.FilterBuilder {
	for _, c := range filter {
		if c.Null {
			fb = fb.Is(c.Column, "null")
			continue
		}
		fb = fb.Eq(c.Column, literal(c.Value))
	}
	return fb
}

func literal(v any) string {
	switch x := v.(type) {
	case nil:
		return "null"
	case fmt.Stringer:
		return x.String()
	default:
		return fmt.Sprint(x)
	}
}

func (s *Supabase) Select(ctx context.Context, table string, filter Filter, order Order, dest any) error {
	op := "select " + table
	if err := s.precheck(ctx, table, filter); err != nil {
		return apperr.Persistence(op, err)
	}
	if err := order.validate(); err != nil {
		return apperr.Persistence(op, err)
	}

	fb := applyFilter(s.client.From(table).Select("*", "", false), filter)
	if order.Column != "" {
		fb = fb.Order(order.Column, &postgrest.OrderOpts{Ascending: !order.Desc})
	}
	data, _, err := fb.Execute()
	if err != nil {
		return apperr.Persistence(op, err)
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return apperr.Persistence(op, fmt.Errorf("decode rows: %w", err))
	}
	return nil
}

func (s *Supabase) Insert(ctx context.Context, table string, value any) error {
	op := "insert " + table
	if err := s.precheck(ctx, table, nil); err != nil {
		return apperr.Persistence(op, err)
	}

	data, _, err := s.client.From(table).Insert(value, false, "", "representation", "").Execute()
	if err != nil {
		return supabaseError(op, err)
	}
	if err := decodeReturned(data, value); err != nil {
		return apperr.Persistence(op, err)
	}
	return nil
}

func (s *Supabase) Update(ctx context.Context, table string, patch map[string]any, filter Filter) (int64, error) {
	op := "update " + table
	if len(patch) == 0 {
		return 0, apperr.Persistence(op, errors.New("empty patch"))
	}
	if err := s.precheck(ctx, table, filter); err != nil {
		return 0, apperr.Persistence(op, err)
	}

	data, _, err := applyFilter(s.client.From(table).Update(patch, "representation", ""), filter).Execute()
	if err != nil {
		return 0, supabaseError(op, err)
	}
	var rows []json.RawMessage
	if err := json.Unmarshal(data, &rows); err != nil {
		return 0, apperr.Persistence(op, fmt.Errorf("decode rows: %w", err))
	}
	return int64(len(rows)), nil
}

func (s *Supabase) Delete(ctx context.Context, table string, filter Filter) error {
	op := "delete " + table
	if len(filter) == 0 {
		return apperr.Persistence(op, errors.New("refusing to delete without a filter"))
	}
	if err := s.precheck(ctx, table, filter); err != nil {
		return apperr.Persistence(op, err)
	}

	_, _, err := applyFilter(s.client.From(table).Delete("minimal", ""), filter).Execute()
	return supabaseError(op, err)
}

func (s *Supabase) Count(ctx context.Context, table string, filter Filter) (int64, error) {
	op := "count " + table
	if err := s.precheck(ctx, table, filter); err != nil {
		return 0, apperr.Persistence(op, err)
	}

	_, n, err := applyFilter(s.client.From(table).Select("id", "exact", true), filter).Execute()
	if err != nil {
		return 0, apperr.Persistence(op, err)
	}
	return n, nil
}

func (s *Supabase) precheck(ctx context.Context, table string, filter Filter) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := checkIdent("table", table); err != nil {
		return err
	}
	return filter.validate()
}

// decodeReturned copies the representation PostgREST sends back into value.
// PostgREST always answers with an array, even for a single row.
func decodeReturned(data []byte, value any) error {
	rv := reflect.ValueOf(value)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return fmt.Errorf("insert target must be a non-nil pointer, got %T", value)
	}
	if rv.Elem().Kind() == reflect.Slice {
		return json.Unmarshal(data, value)
	}

	var rows []json.RawMessage
	if err := json.Unmarshal(data, &rows); err != nil {
		return fmt.Errorf("decode rows: %w", err)
	}
	if len(rows) == 0 {
		return errors.New("backend returned no rows")
	}
	return json.Unmarshal(rows[0], value)
}

// supabaseError maps PostgREST's duplicate-key response onto ErrConflict.
func supabaseError(op string, err error) error {
	if err == nil {
		return nil
	}
	if strings.Contains(err.Error(), pgUniqueViolation) || strings.Contains(err.Error(), "duplicate key") {
		return apperr.Wrap(apperr.ErrConflict, "%s: duplicate value", op)
	}
	return apperr.Persistence(op, err)
}
