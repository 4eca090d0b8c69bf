package profile

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"handyhub/internal/backend"
	"handyhub/internal/database/dbtest"
	"handyhub/internal/domain"
)

func newRepo(t *testing.T) *Repository {
	t.Helper()
	return NewRepository(backend.NewGorm(dbtest.Open(t, &Profile{})))
}

func TestCreateNormalizesEmailAndRejectsDuplicates(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()

	p := &Profile{Email: "  Ana@Example.COM ", PasswordHash: "x", FullName: "Ana", Role: domain.RoleCustomer}
	require.NoError(t, repo.Create(ctx, p))
	assert.NotZero(t, p.ID)
	assert.Equal(t, "ana@example.com", p.Email)

	got, err := repo.GetByEmail(ctx, "ANA@example.com")
	require.NoError(t, err)
	assert.Equal(t, p.ID, got.ID)

	dup := &Profile{Email: "ana@example.com", PasswordHash: "y", FullName: "Other", Role: domain.RoleCustomer}
	assert.ErrorIs(t, repo.Create(ctx, dup), ErrEmailExists)

	_, err = repo.GetByID(ctx, 999)
	assert.ErrorIs(t, err, ErrProfileNotFound)
}

func TestUpdateMe(t *testing.T) {
	repo := newRepo(t)
	svc := NewService(repo)
	ctx := context.Background()

	p := &Profile{Email: "bo@example.com", PasswordHash: "x", FullName: "Bo", Role: domain.RoleCustomer}
	require.NoError(t, repo.Create(ctx, p))

	city := "Austin"
	phone := "555-0100"
	got, err := svc.UpdateMe(ctx, p.ID, UpdateRequest{City: &city, Phone: &phone})
	require.NoError(t, err)
	assert.Equal(t, "Austin", got.City)
	assert.Equal(t, "Bo", got.FullName)

	contact, err := svc.Contact(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, Contact{ID: p.ID, FullName: "Bo", Email: "bo@example.com", Phone: "555-0100"}, contact)

	_, err = svc.UpdateMe(ctx, 999, UpdateRequest{City: &city})
	assert.ErrorIs(t, err, ErrProfileNotFound)
}

func TestPublicHidesPasswordHash(t *testing.T) {
	p := Profile{ID: 1, Email: "a@b.c", PasswordHash: "secret-hash", Role: domain.RoleAdmin}
	raw, err := json.Marshal(p.Public())
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "secret-hash")
	assert.Contains(t, string(raw), `"role":"admin"`)
}
