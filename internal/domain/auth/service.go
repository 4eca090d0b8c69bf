package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"handyhub/internal/domain"
	"handyhub/internal/domain/handyman"
	"handyhub/internal/domain/profile"
	"handyhub/internal/pkg/apperr"
	"handyhub/internal/pkg/jwt"
)

// HandymanRegistrar creates the business profile for new handymen.
type HandymanRegistrar interface {
	Register(ctx context.Context, id int64, businessName string) (*handyman.Profile, error)
}

type Service struct {
	profiles *profile.Repository
	handymen HandymanRegistrar
	jwt      *jwt.Service
	log      *slog.Logger
}

func NewService(profiles *profile.Repository, handymen HandymanRegistrar, jwtService *jwt.Service, log *slog.Logger) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{profiles: profiles, handymen: handymen, jwt: jwtService, log: log.With("component", "auth")}
}

// Register creates an account. Admins are never self-registered.
// For handymen the business profile is created too; if that fails the
// account is removed again so a retry can succeed.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (*TokenResponse, error) {
	role, err := domain.ParseRole(req.Role)
	if err != nil || role == domain.RoleAdmin {
		return nil, ErrRoleNotAllowed
	}
	business := strings.TrimSpace(req.BusinessName)
	if role == domain.RoleHandyman && business == "" {
		return nil, ErrBusinessName
	}

	hash, err := HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	p := &profile.Profile{
		Email:        req.Email,
		PasswordHash: hash,
		FullName:     strings.TrimSpace(req.FullName),
		Phone:        strings.TrimSpace(req.Phone),
		Role:         role,
	}
	if err := s.profiles.Create(ctx, p); err != nil {
		return nil, err
	}

	if role == domain.RoleHandyman {
		if _, err := s.handymen.Register(ctx, p.ID, business); err != nil {
			if delErr := s.profiles.Delete(ctx, p.ID); delErr != nil {
				s.log.Error("rollback profile after handyman registration failed", "user_id", p.ID, "error", delErr)
			}
			return nil, err
		}
	}

	s.log.Info("account registered", "user_id", p.ID, "role", role)
	return s.issue(p)
}

func (s *Service) Login(ctx context.Context, req LoginRequest) (*TokenResponse, error) {
	p, err := s.profiles.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if err := CheckPassword(req.Password, p.PasswordHash); err != nil {
		return nil, ErrInvalidCredentials
	}
	return s.issue(p)
}

func (s *Service) issue(p *profile.Profile) (*TokenResponse, error) {
	token, err := s.jwt.GenerateToken(p.ID, string(p.Role))
	if err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}
	return &TokenResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   int64(s.jwt.TTL().Seconds()),
		Profile:     p.Public(),
	}, nil
}
