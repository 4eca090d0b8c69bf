package handyman

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/shopspring/decimal"

	"handyhub/internal/backend"
	"handyhub/internal/pkg/apperr"
)

// Aggregates is told when the handyman total may have changed.
type Aggregates interface {
	Invalidate(ctx context.Context) error
}

type Service struct {
	repo       *Repository
	aggregates Aggregates
	log        *slog.Logger
}

// NewService wires the handyman profiles. aggregates may be nil.
func NewService(repo *Repository, aggregates Aggregates, log *slog.Logger) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{repo: repo, aggregates: aggregates, log: log.With("component", "handyman")}
}

// Register creates the business profile for a new handyman account.
// New handymen start unverified and active.
func (s *Service) Register(ctx context.Context, id int64, businessName string) (*Profile, error) {
	p := &Profile{
		ID:           id,
		BusinessName: strings.TrimSpace(businessName),
		IsActive:     true,
		Rating:       decimal.Zero,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		if errors.Is(err, apperr.ErrConflict) {
			return nil, ErrAlreadyExists
		}
		return nil, err
	}
	if s.aggregates != nil {
		if err := s.aggregates.Invalidate(ctx); err != nil {
			s.log.Warn("invalidate aggregates failed", "handyman_id", p.ID, "error", err)
		}
	}
	return p, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*Profile, error) {
	return s.repo.Get(ctx, id)
}

// ListPublic lists verified, active handymen, best rated first.
func (s *Service) ListPublic(ctx context.Context) ([]Profile, error) {
	return s.repo.List(ctx,
		backend.Where(backend.Eq("is_verified", true), backend.Eq("is_active", true)),
		backend.Desc("rating"))
}

func (s *Service) ListAll(ctx context.Context) ([]Profile, error) {
	return s.repo.List(ctx, nil, backend.Desc("created_at"))
}

// Eligible reports whether the handyman is verified and active. A missing
// profile is reported as ErrHandymanNotFound.
func (s *Service) Eligible(ctx context.Context, id int64) (bool, error) {
	p, err := s.repo.Get(ctx, id)
	if err != nil {
		return false, err
	}
	return p.Eligible(), nil
}

func (s *Service) SetVerified(ctx context.Context, id int64, verified bool) (*Profile, error) {
	if err := s.repo.Update(ctx, id, map[string]any{"is_verified": verified}); err != nil {
		return nil, err
	}
	s.log.Info("handyman verification changed", "handyman_id", id, "verified", verified)
	return s.repo.Get(ctx, id)
}

func (s *Service) SetActive(ctx context.Context, id int64, active bool) (*Profile, error) {
	if err := s.repo.Update(ctx, id, map[string]any{"is_active": active}); err != nil {
		return nil, err
	}
	s.log.Info("handyman activity changed", "handyman_id", id, "active", active)
	return s.repo.Get(ctx, id)
}

// UpdateOwn applies a handyman's edits to their own profile. Verification,
// activity and the rating aggregates are not editable here.
func (s *Service) UpdateOwn(ctx context.Context, id int64, req UpdateRequest) (*Profile, error) {
	patch := map[string]any{}
	if req.BusinessName != nil {
		patch["business_name"] = strings.TrimSpace(*req.BusinessName)
	}
	if req.Bio != nil {
		patch["bio"] = strings.TrimSpace(*req.Bio)
	}
	if req.HourlyRate != nil {
		if req.HourlyRate.IsNegative() {
			return nil, ErrInvalidRate
		}
		patch["hourly_rate"] = decimal.NewNullDecimal(req.HourlyRate.Round(2))
	}
	if req.YearsExperience != nil {
		patch["years_experience"] = *req.YearsExperience
	}
	if req.Availability != nil {
		patch["availability"] = strings.TrimSpace(*req.Availability)
	}
	if len(patch) == 0 {
		return s.repo.Get(ctx, id)
	}
	if err := s.repo.Update(ctx, id, patch); err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, id)
}
