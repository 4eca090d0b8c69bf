package auth

import "handyhub/internal/domain/profile"

type RegisterRequest struct {
	Email        string `json:"email" validate:"required,email,max=255"`
	Password     string `json:"password" validate:"required,min=8,max=72"`
	FullName     string `json:"full_name" validate:"required,min=2,max=255"`
	Phone        string `json:"phone" validate:"max=50"`
	Role         string `json:"role" validate:"required,oneof=customer handyman"`
	BusinessName string `json:"business_name" validate:"max=255"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type TokenResponse struct {
	AccessToken string         `json:"access_token"`
	TokenType   string         `json:"token_type"`
	ExpiresIn   int64          `json:"expires_in"`
	Profile     profile.Public `json:"profile"`
}
