package profile

import (
	"context"
)

// Service handles profile business logic
type Service struct {
	repo *Repository
}

func NewService(repo *Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Get(ctx context.Context, id int64) (*Profile, error) {
	return s.repo.GetByID(ctx, id)
}

// Contact returns the booking-facing summary of a profile.
func (s *Service) Contact(ctx context.Context, id int64) (Contact, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Contact{}, err
	}
	return p.Contact(), nil
}

func (s *Service) UpdateMe(ctx context.Context, id int64, req UpdateRequest) (*Profile, error) {
	if patch := req.patch(); len(patch) > 0 {
		if err := s.repo.Update(ctx, id, patch); err != nil {
			return nil, err
		}
	}
	return s.repo.GetByID(ctx, id)
}
