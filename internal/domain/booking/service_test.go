package booking

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"handyhub/internal/backend"
	"handyhub/internal/database/dbtest"
	"handyhub/internal/domain"
	"handyhub/internal/pkg/apperr"
)

type fakeServices map[int64]decimal.Decimal

func (f fakeServices) BookablePrice(_ context.Context, id int64) (decimal.Decimal, error) {
	p, ok := f[id]
	if !ok {
		return decimal.Decimal{}, apperr.Wrap(apperr.ErrNotFound, "service not found")
	}
	return p, nil
}

type fakeHandymen map[int64]bool

func (f fakeHandymen) Eligible(_ context.Context, id int64) (bool, error) {
	ok, known := f[id]
	if !known {
		return false, apperr.Wrap(apperr.ErrNotFound, "handyman not found")
	}
	return ok, nil
}

// pendingCounter counts pending rows straight from the backend.
type pendingCounter struct {
	client backend.Client
	calls  int
}

func (p *pendingCounter) RefreshPending(ctx context.Context) (int64, error) {
	p.calls++
	return p.client.Count(ctx, Table, backend.Where(backend.Eq("status", StatusPending)))
}

type event struct {
	booking Booking
	pending int64
}

type recorder struct {
	mu     sync.Mutex
	events []event
}

func (r *recorder) BookingChanged(b Booking, pending int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event{b, pending})
}

func (r *recorder) last() event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.events[len(r.events)-1]
}

type fixture struct {
	svc      *Service
	store    *TableStore
	counter  *pendingCounter
	notifier *recorder
}

var (
	customer   = domain.Actor{ID: 100, Role: domain.RoleCustomer}
	otherCust  = domain.Actor{ID: 101, Role: domain.RoleCustomer}
	handyman   = domain.Actor{ID: 7, Role: domain.RoleHandyman}
	unverified = domain.Actor{ID: 8, Role: domain.RoleHandyman}
	admin      = domain.Actor{ID: 1, Role: domain.RoleAdmin}
)

func newFixture(t *testing.T) *fixture {
	t.Helper()
	client := backend.NewGorm(dbtest.Open(t, &Booking{}))
	store := NewStore(client)
	counter := &pendingCounter{client: client}
	notifier := &recorder{}
	svc := NewService(store,
		fakeServices{1: decimal.RequireFromString("80.00"), 2: decimal.RequireFromString("125.50")},
		fakeHandymen{7: true, 8: false},
		counter, notifier, nil)
	return &fixture{svc: svc, store: store, counter: counter, notifier: notifier}
}

func (f *fixture) book(t *testing.T, serviceID int64) *Booking {
	t.Helper()
	b, err := f.svc.Create(context.Background(), customer, CreateRequest{
		ServiceID:   serviceID,
		BookingDate: time.Now().Add(48 * time.Hour),
		Address:     "12 Elm Street",
		Description: "leaky tap",
	})
	require.NoError(t, err)
	return b
}

func (f *fixture) assign(t *testing.T, id, handymanID int64) {
	t.Helper()
	_, err := f.svc.Assign(context.Background(), admin, id, handymanID)
	require.NoError(t, err)
}

func to(s Status) TransitionRequest { return TransitionRequest{Status: s} }

func TestCreate_CopiesBasePrice(t *testing.T) {
	f := newFixture(t)
	b := f.book(t, 2)

	require.NotZero(t, b.ID)
	assert.Equal(t, StatusPending, b.Status)
	assert.Nil(t, b.HandymanID)
	assert.True(t, b.EstimatedCost.Valid)
	assert.True(t, b.EstimatedCost.Decimal.Equal(decimal.RequireFromString("125.50")))
	assert.False(t, b.ActualCost.Valid)

	ev := f.notifier.last()
	assert.Equal(t, b.ID, ev.booking.ID)
	assert.Equal(t, int64(1), ev.pending)
}

func TestCreate_Rejects(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	req := CreateRequest{ServiceID: 1, BookingDate: time.Now().Add(time.Hour), Address: "12 Elm Street"}

	_, err := f.svc.Create(ctx, handyman, req)
	assert.ErrorIs(t, err, apperr.ErrForbidden)

	missing := req
	missing.ServiceID = 99
	_, err = f.svc.Create(ctx, customer, missing)
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	past := req
	past.BookingDate = time.Now().Add(-time.Hour)
	_, err = f.svc.Create(ctx, customer, past)
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestTransition_AssignedHandymanAccepts(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	b := f.book(t, 1)
	f.book(t, 1)
	f.assign(t, b.ID, handyman.ID)

	got, err := f.svc.Transition(ctx, b.ID, to(StatusAccepted), handyman)
	require.NoError(t, err)
	assert.Equal(t, StatusAccepted, got.Status)

	stored, err := f.store.Get(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusAccepted, stored.Status)

	// two were pending, one left
	assert.Equal(t, int64(1), f.notifier.last().pending)
}

func TestTransition_FullLifecycle(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	b := f.book(t, 1)
	f.assign(t, b.ID, handyman.ID)

	for _, s := range []Status{StatusAccepted, StatusInProgress, StatusCompleted} {
		_, err := f.svc.Transition(ctx, b.ID, to(s), handyman)
		require.NoError(t, err, s)
	}

	for _, s := range Statuses {
		_, err := f.svc.Transition(ctx, b.ID, to(s), admin)
		assert.ErrorIs(t, err, apperr.ErrForbidden, s)
	}
}

func TestTransition_AdminAssignsWhileAccepting(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	b := f.book(t, 1)

	hid := handyman.ID
	got, err := f.svc.Transition(ctx, b.ID, TransitionRequest{Status: StatusAccepted, HandymanID: &hid}, admin)
	require.NoError(t, err)
	require.NotNil(t, got.HandymanID)
	assert.Equal(t, handyman.ID, *got.HandymanID)

	stored, err := f.store.Get(ctx, b.ID)
	require.NoError(t, err)
	assert.True(t, stored.AssignedTo(handyman.ID))
}

func TestTransition_AssignRules(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	b := f.book(t, 1)

	bad := unverified.ID
	_, err := f.svc.Transition(ctx, b.ID, TransitionRequest{Status: StatusAccepted, HandymanID: &bad}, admin)
	assert.ErrorIs(t, err, ErrHandymanNotEligible)

	hid := handyman.ID
	_, err = f.svc.Transition(ctx, b.ID, TransitionRequest{Status: StatusCancelled, HandymanID: &hid}, admin)
	assert.ErrorIs(t, err, apperr.ErrForbidden)

	_, err = f.svc.Assign(ctx, handyman, b.ID, hid)
	assert.ErrorIs(t, err, apperr.ErrForbidden)
}

func TestTransition_AcceptRequiresHandyman(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	b := f.book(t, 1)

	_, err := f.svc.Transition(ctx, b.ID, to(StatusAccepted), admin)
	assert.ErrorIs(t, err, ErrHandymanRequired)

	stored, err := f.store.Get(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusPending, stored.Status)

	// still pending, so it can be assigned and then carried through
	f.assign(t, b.ID, handyman.ID)
	for _, s := range []Status{StatusAccepted, StatusInProgress, StatusCompleted} {
		_, err := f.svc.Transition(ctx, b.ID, to(s), admin)
		require.NoError(t, err, s)
	}
}

func TestTransition_CancelFromInProgress(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	b := f.book(t, 1)
	f.assign(t, b.ID, handyman.ID)
	for _, s := range []Status{StatusAccepted, StatusInProgress} {
		_, err := f.svc.Transition(ctx, b.ID, to(s), handyman)
		require.NoError(t, err)
	}

	_, err := f.svc.Transition(ctx, b.ID, to(StatusCancelled), handyman)
	assert.ErrorIs(t, err, ErrTransitionDenied)

	got, err := f.svc.Transition(ctx, b.ID, to(StatusCancelled), admin)
	require.NoError(t, err)
	assert.Equal(t, StatusCancelled, got.Status)
}

func TestTransition_Denials(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	b := f.book(t, 1)

	_, err := f.svc.Transition(ctx, b.ID, to(StatusAccepted), handyman)
	assert.ErrorIs(t, err, ErrNotAssigned)

	_, err = f.svc.Transition(ctx, b.ID, to(StatusCancelled), customer)
	assert.ErrorIs(t, err, ErrTransitionDenied)

	_, err = f.svc.Transition(ctx, b.ID, to("archived"), admin)
	assert.ErrorIs(t, err, apperr.ErrValidation)

	_, err = f.svc.Transition(ctx, 9999, to(StatusAccepted), admin)
	assert.ErrorIs(t, err, ErrBookingNotFound)

	// assigned but unverified
	require.NoError(t, f.store.Update(ctx, b.ID, map[string]any{"handyman_id": unverified.ID}))
	_, err = f.svc.Transition(ctx, b.ID, to(StatusAccepted), unverified)
	assert.ErrorIs(t, err, ErrHandymanNotEligible)
}

// racingStore lets a competing writer land between the read and the write.
type racingStore struct {
	*TableStore
	race func()
}

func (r *racingStore) CompareAndSetStatus(ctx context.Context, id int64, from, to Status, hid *int64, at time.Time) (bool, error) {
	if r.race != nil {
		race := r.race
		r.race = nil
		race()
	}
	return r.TableStore.CompareAndSetStatus(ctx, id, from, to, hid, at)
}

func (r *racingStore) SaveReview(ctx context.Context, id int64, rating int, comment string, at time.Time) (bool, error) {
	if r.race != nil {
		race := r.race
		r.race = nil
		race()
	}
	return r.TableStore.SaveReview(ctx, id, rating, comment, at)
}

func TestTransition_LosingWriterGetsConflict(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	b := f.book(t, 1)
	f.assign(t, b.ID, handyman.ID)

	rs := &racingStore{TableStore: f.store}
	svc := NewService(rs, fakeServices{}, fakeHandymen{7: true}, f.counter, f.notifier, nil)
	rs.race = func() {
		ok, err := f.store.CompareAndSetStatus(ctx, b.ID, StatusPending, StatusCancelled, nil, time.Now())
		require.NoError(t, err)
		require.True(t, ok)
	}

	_, err := svc.Transition(ctx, b.ID, to(StatusAccepted), handyman)
	assert.ErrorIs(t, err, ErrStaleStatus)
	assert.ErrorIs(t, err, apperr.ErrConflict)

	stored, err := f.store.Get(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusCancelled, stored.Status)
}

func TestSetActualCost_LeavesEstimate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	b := f.book(t, 1)
	f.assign(t, b.ID, handyman.ID)

	_, err := f.svc.SetActualCost(ctx, handyman, b.ID, decimal.RequireFromString("95.25"))
	require.NoError(t, err)

	stored, err := f.store.Get(ctx, b.ID)
	require.NoError(t, err)
	assert.True(t, stored.EstimatedCost.Decimal.Equal(decimal.RequireFromString("80")))
	assert.True(t, stored.ActualCost.Valid)
	assert.True(t, stored.ActualCost.Decimal.Equal(decimal.RequireFromString("95.25")))

	_, err = f.svc.SetActualCost(ctx, customer, b.ID, decimal.NewFromInt(1))
	assert.ErrorIs(t, err, ErrNotOwner)
	_, err = f.svc.SetActualCost(ctx, admin, b.ID, decimal.NewFromInt(-1))
	assert.ErrorIs(t, err, ErrInvalidCost)
}

func TestReview(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	b := f.book(t, 1)
	f.assign(t, b.ID, handyman.ID)
	review := ReviewRequest{Rating: 5, Comment: "fixed it in no time"}

	_, err := f.svc.Review(ctx, customer, b.ID, review)
	assert.ErrorIs(t, err, ErrNotCompleted)

	for _, s := range []Status{StatusAccepted, StatusInProgress, StatusCompleted} {
		_, err := f.svc.Transition(ctx, b.ID, to(s), handyman)
		require.NoError(t, err)
	}

	_, err = f.svc.Review(ctx, otherCust, b.ID, review)
	assert.ErrorIs(t, err, ErrNotOwner)

	got, err := f.svc.Review(ctx, customer, b.ID, review)
	require.NoError(t, err)
	assert.Equal(t, 5, *got.CustomerRating)

	_, err = f.svc.Review(ctx, customer, b.ID, review)
	assert.ErrorIs(t, err, ErrAlreadyReviewed)

	reviews, err := f.svc.Reviews(ctx, handyman.ID)
	require.NoError(t, err)
	require.Len(t, reviews, 1)
	assert.Equal(t, "fixed it in no time", *reviews[0].CustomerReview)
}

func (f *fixture) complete(t *testing.T, id int64) {
	t.Helper()
	f.assign(t, id, handyman.ID)
	for _, s := range []Status{StatusAccepted, StatusInProgress, StatusCompleted} {
		_, err := f.svc.Transition(context.Background(), id, to(s), handyman)
		require.NoError(t, err, s)
	}
}

func TestReview_ConcurrentSecondReviewLoses(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	b := f.book(t, 1)
	f.complete(t, b.ID)

	rs := &racingStore{TableStore: f.store}
	svc := NewService(rs, fakeServices{}, fakeHandymen{7: true}, f.counter, f.notifier, nil)
	rs.race = func() {
		_, err := f.svc.Review(ctx, customer, b.ID, ReviewRequest{Rating: 5, Comment: "great job, on time"})
		require.NoError(t, err)
	}

	_, err := svc.Review(ctx, customer, b.ID, ReviewRequest{Rating: 1, Comment: "changed my mind, bad"})
	assert.ErrorIs(t, err, ErrAlreadyReviewed)
	assert.ErrorIs(t, err, apperr.ErrConflict)

	stored, err := f.store.Get(ctx, b.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.CustomerRating)
	assert.Equal(t, 5, *stored.CustomerRating)
	assert.Equal(t, "great job, on time", *stored.CustomerReview)
}

func TestReview_LengthCheckedAfterTrim(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	b := f.book(t, 1)
	f.complete(t, b.ID)

	_, err := f.svc.Review(ctx, customer, b.ID, ReviewRequest{Rating: 4, Comment: "a         "})
	assert.ErrorIs(t, err, ErrInvalidComment)
	assert.ErrorIs(t, err, apperr.ErrValidation)

	stored, err := f.store.Get(ctx, b.ID)
	require.NoError(t, err)
	assert.False(t, stored.Reviewed())

	got, err := f.svc.Review(ctx, customer, b.ID, ReviewRequest{Rating: 4, Comment: "  tidy and quick  "})
	require.NoError(t, err)
	assert.Equal(t, "tidy and quick", *got.CustomerReview)
}

func TestWritesStampUpdatedAt(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	b := f.book(t, 1)
	f.complete(t, b.ID)

	before, err := f.store.Get(ctx, b.ID)
	require.NoError(t, err)

	later := before.UpdatedAt.Add(time.Hour)
	f.svc.now = func() time.Time { return later }

	got, err := f.svc.SetActualCost(ctx, admin, b.ID, decimal.NewFromInt(90))
	require.NoError(t, err)
	assert.True(t, got.UpdatedAt.Equal(later))
	assert.True(t, f.notifier.last().booking.UpdatedAt.Equal(later))

	stored, err := f.store.Get(ctx, b.ID)
	require.NoError(t, err)
	assert.WithinDuration(t, later, stored.UpdatedAt, time.Second)

	later = later.Add(time.Hour)
	got, err = f.svc.Review(ctx, customer, b.ID, ReviewRequest{Rating: 5, Comment: "fixed it in no time"})
	require.NoError(t, err)
	assert.True(t, got.UpdatedAt.Equal(later))
	assert.True(t, f.notifier.last().booking.UpdatedAt.Equal(later))

	stored, err = f.store.Get(ctx, b.ID)
	require.NoError(t, err)
	assert.WithinDuration(t, later, stored.UpdatedAt, time.Second)
}

func TestGet_HidesOtherBookings(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	b := f.book(t, 1)

	_, err := f.svc.Get(ctx, customer, b.ID)
	assert.NoError(t, err)
	_, err = f.svc.Get(ctx, otherCust, b.ID)
	assert.ErrorIs(t, err, ErrBookingNotFound)
	_, err = f.svc.Get(ctx, handyman, b.ID)
	assert.ErrorIs(t, err, ErrBookingNotFound)
	_, err = f.svc.Get(ctx, admin, b.ID)
	assert.NoError(t, err)
}

func TestEveryWriteRefreshesAggregate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	b := f.book(t, 1)
	f.assign(t, b.ID, handyman.ID)
	_, err := f.svc.Transition(ctx, b.ID, to(StatusAccepted), handyman)
	require.NoError(t, err)
	_, err = f.svc.SetActualCost(ctx, admin, b.ID, decimal.NewFromInt(10))
	require.NoError(t, err)

	assert.Equal(t, 4, f.counter.calls)
	assert.Len(t, f.notifier.events, 4)
}
