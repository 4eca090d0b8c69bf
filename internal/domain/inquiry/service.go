package inquiry

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
)

// Aggregates is told when the inquiry total may have changed.
type Aggregates interface {
	Invalidate(ctx context.Context) error
}

// Service handles inquiry business logic
type Service struct {
	repo       *Repository
	aggregates Aggregates
	log        *slog.Logger
}

// NewService wires the inquiry inbox. aggregates may be nil.
func NewService(repo *Repository, aggregates Aggregates, log *slog.Logger) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{repo: repo, aggregates: aggregates, log: log.With("component", "inquiry")}
}

// Submit stores a contact-form submission (public endpoint)
func (s *Service) Submit(ctx context.Context, req *SubmitRequest, ip, userAgent string) (*Inquiry, error) {
	i := &Inquiry{
		Name:      strings.TrimSpace(req.Name),
		Email:     strings.ToLower(strings.TrimSpace(req.Email)),
		Phone:     strings.TrimSpace(req.Phone),
		Subject:   strings.TrimSpace(req.Subject),
		Message:   strings.TrimSpace(req.Message),
		Status:    StatusNew,
		IPAddress: ip,
		UserAgent: userAgent,
	}
	if err := s.repo.Create(ctx, i); err != nil {
		return nil, err
	}
	s.log.Info("inquiry submitted", "inquiry_id", i.ID)
	if s.aggregates != nil {
		if err := s.aggregates.Invalidate(ctx); err != nil {
			s.log.Warn("invalidate aggregates failed", "inquiry_id", i.ID, "error", err)
		}
	}
	return i, nil
}

func (s *Service) GetByID(ctx context.Context, id int64) (*Inquiry, error) {
	return s.repo.GetByID(ctx, id)
}

// List returns inquiries with optional status filter and per-status counts
func (s *Service) List(ctx context.Context, status Status) (*ListResponse, error) {
	if status != "" && !status.Valid() {
		status = ""
	}
	rows, err := s.repo.List(ctx, status)
	if err != nil {
		return nil, err
	}
	counts, err := s.repo.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}
	return &ListResponse{Inquiries: rows, Total: len(rows), ByStatus: counts}, nil
}

// UpdateStatus moves an inquiry along new -> in_progress -> resolved.
func (s *Service) UpdateStatus(ctx context.Context, id int64, to Status) (*Inquiry, error) {
	i, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if i.IsResolved() {
		return nil, ErrAlreadyResolved
	}
	if !CanTransition(i.Status, to) {
		return nil, fmt.Errorf("%w: %s to %s", ErrTransitionDenied, i.Status, to)
	}

	ok, err := s.repo.CompareAndSetStatus(ctx, id, i.Status, to)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrStaleStatus
	}
	return s.repo.GetByID(ctx, id)
}

// Total counts every inquiry regardless of status.
func (s *Service) Total(ctx context.Context) (int64, error) {
	counts, err := s.repo.CountByStatus(ctx)
	if err != nil {
		return 0, err
	}
	var n int64
	for _, c := range counts {
		n += c
	}
	return n, nil
}
