package backend

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"handyhub/internal/database/dbtest"
	"handyhub/internal/pkg/apperr"
)

type job struct {
	ID        int64      `gorm:"primaryKey" json:"id"`
	Title     string     `gorm:"size:80;uniqueIndex" json:"title"`
	Status    string     `gorm:"size:20;default:open" json:"status"`
	Priority  int        `json:"priority"`
	DoneAt    *time.Time `json:"done_at"`
	CreatedAt time.Time  `json:"created_at"`
}

func (job) TableName() string { return "jobs" }

func newGorm(t *testing.T) *Gorm {
	return NewGorm(dbtest.Open(t, &job{}))
}

func TestGormInsertFillsID(t *testing.T) {
	g := newGorm(t)
	ctx := context.Background()

	j := &job{Title: "fix sink", Priority: 2}
	require.NoError(t, g.Insert(ctx, "jobs", j))
	assert.NotZero(t, j.ID)
	assert.Equal(t, "open", j.Status)
	assert.False(t, j.CreatedAt.IsZero())
}

func TestGormSelectFilterAndOrder(t *testing.T) {
	g := newGorm(t)
	ctx := context.Background()

	for i, title := range []string{"a", "b", "c"} {
		require.NoError(t, g.Insert(ctx, "jobs", &job{Title: title, Priority: i}))
	}
	_, err := g.Update(ctx, "jobs", map[string]any{"status": "done"}, Where(Eq("title", "b")))
	require.NoError(t, err)

	var open []job
	require.NoError(t, g.Select(ctx, "jobs", Where(Eq("status", "open")), Desc("priority"), &open))
	require.Len(t, open, 2)
	assert.Equal(t, "c", open[0].Title)
	assert.Equal(t, "a", open[1].Title)

	var all []job
	require.NoError(t, g.Select(ctx, "jobs", nil, Asc("priority"), &all))
	assert.Len(t, all, 3)
}

func TestGormUpdateReportsMatches(t *testing.T) {
	g := newGorm(t)
	ctx := context.Background()

	j := &job{Title: "paint"}
	require.NoError(t, g.Insert(ctx, "jobs", j))

	n, err := g.Update(ctx, "jobs", map[string]any{"status": "done"}, Where(Eq("id", j.ID), Eq("status", "open")))
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	// the same compare-and-set a second time finds nothing
	n, err = g.Update(ctx, "jobs", map[string]any{"status": "done"}, Where(Eq("id", j.ID), Eq("status", "open")))
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)
}

func TestGormIsNullGuard(t *testing.T) {
	g := newGorm(t)
	ctx := context.Background()

	j := &job{Title: "grout"}
	require.NoError(t, g.Insert(ctx, "jobs", j))
	require.NoError(t, g.Insert(ctx, "jobs", &job{Title: "tile"}))

	// Eq against nil never matches in SQL
	n, err := g.Count(ctx, "jobs", Where(Eq("done_at", nil)))
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)

	n, err = g.Count(ctx, "jobs", Where(IsNull("done_at")))
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	guard := Where(Eq("id", j.ID), IsNull("done_at"))
	n, err = g.Update(ctx, "jobs", map[string]any{"done_at": time.Now()}, guard)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	n, err = g.Update(ctx, "jobs", map[string]any{"done_at": time.Now()}, guard)
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)

	require.NoError(t, g.Delete(ctx, "jobs", Where(IsNull("done_at"))))
	var left []job
	require.NoError(t, g.Select(ctx, "jobs", nil, Order{}, &left))
	require.Len(t, left, 1)
	assert.Equal(t, "grout", left[0].Title)
}

func TestGormCountAndDelete(t *testing.T) {
	g := newGorm(t)
	ctx := context.Background()

	require.NoError(t, g.Insert(ctx, "jobs", &job{Title: "x"}))
	require.NoError(t, g.Insert(ctx, "jobs", &job{Title: "y"}))

	n, err := g.Count(ctx, "jobs", nil)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	require.NoError(t, g.Delete(ctx, "jobs", Where(Eq("title", "x"))))
	n, err = g.Count(ctx, "jobs", nil)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	err = g.Delete(ctx, "jobs", nil)
	assert.ErrorIs(t, err, apperr.ErrPersistence)
}

func TestGormDuplicateIsConflict(t *testing.T) {
	g := newGorm(t)
	ctx := context.Background()

	require.NoError(t, g.Insert(ctx, "jobs", &job{Title: "same"}))
	err := g.Insert(ctx, "jobs", &job{Title: "same"})
	assert.ErrorIs(t, err, apperr.ErrConflict)
}

func TestGormRejectsBadIdentifiers(t *testing.T) {
	g := newGorm(t)
	ctx := context.Background()

	var rows []job
	err := g.Select(ctx, "jobs; drop table jobs", nil, Order{}, &rows)
	assert.ErrorIs(t, err, apperr.ErrPersistence)

	err = g.Select(ctx, "jobs", Where(Eq("title = 1 or 1", 1)), Order{}, &rows)
	assert.ErrorIs(t, err, apperr.ErrPersistence)

	_, err = g.Update(ctx, "jobs", nil, Where(Eq("id", 1)))
	assert.ErrorIs(t, err, apperr.ErrPersistence)
}

func TestGormMissingTableIsPersistenceError(t *testing.T) {
	g := newGorm(t)

	var rows []job
	err := g.Select(context.Background(), "nope", nil, Order{}, &rows)
	assert.ErrorIs(t, err, apperr.ErrPersistence)
}
