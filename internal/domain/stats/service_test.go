package stats

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"handyhub/internal/backend"
	"handyhub/internal/database"
	"handyhub/internal/database/dbtest"
	"handyhub/internal/domain/booking"
	"handyhub/internal/domain/handyman"
	"handyhub/internal/domain/inquiry"
)

func seedDB(t *testing.T) *gorm.DB {
	t.Helper()
	db := dbtest.Open(t, &booking.Booking{}, &handyman.Profile{}, &inquiry.Inquiry{})
	now := time.Now().UTC()
	statuses := []booking.Status{booking.StatusPending, booking.StatusPending, booking.StatusAccepted, booking.StatusCompleted}
	for _, s := range statuses {
		require.NoError(t, db.Create(&booking.Booking{
			CustomerID: 1, ServiceID: 1, Status: s, BookingDate: now, Address: "1 Main St",
			CreatedAt: now, UpdatedAt: now,
		}).Error)
	}
	require.NoError(t, db.Create(&handyman.Profile{ID: 5, BusinessName: "Felix", IsActive: true, CreatedAt: now}).Error)
	require.NoError(t, db.Create(&inquiry.Inquiry{Name: "Dana", Email: "d@x.io", Subject: "hi", Message: "hello there", Status: inquiry.StatusNew, CreatedAt: now}).Error)
	return db
}

func counters(t *testing.T, db *gorm.DB) map[string]Counter {
	t.Helper()
	sx, err := database.SQLX(db)
	require.NoError(t, err)
	return map[string]Counter{
		"client": NewClientCounter(backend.NewGorm(db)),
		"sql":    NewSQLCounter(sx),
	}
}

func TestOverview_CountersAgree(t *testing.T) {
	db := seedDB(t)
	for name, counter := range counters(t, db) {
		t.Run(name, func(t *testing.T) {
			o, err := NewService(counter, nil, time.Minute, nil).Overview(context.Background())
			require.NoError(t, err)
			assert.Equal(t, int64(4), o.TotalBookings)
			assert.Equal(t, int64(2), o.PendingBookings)
			assert.Equal(t, int64(1), o.TotalHandymen)
			assert.Equal(t, int64(1), o.TotalInquiries)
			assert.Equal(t, int64(1), o.ByStatus[booking.StatusCompleted])
			assert.Equal(t, int64(0), o.ByStatus[booking.StatusCancelled])
		})
	}
}

type memCache struct {
	mu          sync.Mutex
	o           *Overview
	invalidated int
}

func (m *memCache) Get(context.Context) (*Overview, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.o, m.o != nil, nil
}

func (m *memCache) Set(_ context.Context, o *Overview, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.o = o
	return nil
}

func (m *memCache) Invalidate(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.o = nil
	m.invalidated++
	return nil
}

type countingCounter struct {
	Counter
	calls int
}

func (c *countingCounter) BookingsByStatus(ctx context.Context) (map[booking.Status]int64, error) {
	c.calls++
	return c.Counter.BookingsByStatus(ctx)
}

func TestOverview_CachedUntilInvalidated(t *testing.T) {
	db := seedDB(t)
	counter := &countingCounter{Counter: NewClientCounter(backend.NewGorm(db))}
	cache := &memCache{}
	svc := NewService(counter, cache, time.Minute, nil)
	ctx := context.Background()

	_, err := svc.Overview(ctx)
	require.NoError(t, err)
	_, err = svc.Overview(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, counter.calls)

	require.NoError(t, db.Table(booking.Table).Where("status = ?", booking.StatusPending).Update("status", booking.StatusCancelled).Error)

	pending, err := svc.RefreshPending(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), pending)
	assert.Equal(t, 1, cache.invalidated)
	assert.Equal(t, 2, counter.calls)

	o, err := svc.Overview(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), o.ByStatus[booking.StatusCancelled])
	assert.Equal(t, 2, counter.calls)
}

func TestOverview_InquiryAndHandymanWritesInvalidate(t *testing.T) {
	db := seedDB(t)
	client := backend.NewGorm(db)
	cache := &memCache{}
	svc := NewService(NewClientCounter(client), cache, time.Minute, nil)
	ctx := context.Background()

	before, err := svc.Overview(ctx)
	require.NoError(t, err)

	inquiries := inquiry.NewService(inquiry.NewRepository(client), svc, nil)
	_, err = inquiries.Submit(ctx, &inquiry.SubmitRequest{
		Name: "Dana", Email: "dana@example.com", Subject: "Hours", Message: "Are you open on Sundays?",
	}, "10.0.0.1", "test-agent")
	require.NoError(t, err)

	o, err := svc.Overview(ctx)
	require.NoError(t, err)
	assert.Equal(t, before.TotalInquiries+1, o.TotalInquiries)

	handymen := handyman.NewService(handyman.NewRepository(client), svc, nil)
	_, err = handymen.Register(ctx, 900, "Night Shift Repairs")
	require.NoError(t, err)

	o, err = svc.Overview(ctx)
	require.NoError(t, err)
	assert.Equal(t, before.TotalHandymen+1, o.TotalHandymen)
	assert.Equal(t, 2, cache.invalidated)
}

func TestOverview_UnreachableRedisDegrades(t *testing.T) {
	db := seedDB(t)
	rdb := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", DialTimeout: 50 * time.Millisecond, MaxRetries: -1})
	t.Cleanup(func() { _ = rdb.Close() })

	svc := NewService(NewClientCounter(backend.NewGorm(db)), NewRedisCache(rdb), time.Minute, nil)
	o, err := svc.Overview(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(2), o.PendingBookings)

	pending, err := svc.RefreshPending(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(2), pending)
}
