package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type RegisterRequest struct {
	Name     string `json:"name" validate:"required,min=2"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type VerifyEmailRequest struct {
	UserID uuid.UUID `json:"user_id" validate:"required"`
	OTP    string    `json:"otp" validate:"required,len=6,numeric"`
}

type ResendOTPRequest struct {
	UserID uuid.UUID `json:"user_id" validate:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type UpdateProfileRequest struct {
	Name        string                 `json:"name" validate:"required,min=2"`
	Phone       string                 `json:"phone" validate:"required,min=7,max=20"`
	DateOfBirth string                 `json:"date_of_birth" validate:"required"`
	Gender      string                 `json:"gender" validate:"required"`
	Address     map[string]interface{} `json:"address" validate:"omitempty"`
	ImageURL    string                 `json:"image_url" validate:"omitempty,url"`
}

// Response DTOs

type RegisterResponse struct {
	UserID uuid.UUID `json:"user_id"`
}

type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}

// LoginResponse carries either a token pair or, for an unverified account, a
// verification demand with the user ID to verify against.
type LoginResponse struct {
	Token               *TokenResponse `json:"token,omitempty"`
	RequireVerification bool           `json:"require_verification,omitempty"`
	UserID              *uuid.UUID     `json:"user_id,omitempty"`
}

type UserResponse struct {
	ID          uuid.UUID              `json:"id"`
	Name        string                 `json:"name"`
	Email       string                 `json:"email"`
	Phone       string                 `json:"phone,omitempty"`
	Gender      string                 `json:"gender,omitempty"`
	DateOfBirth string                 `json:"date_of_birth,omitempty"`
	Address     map[string]interface{} `json:"address,omitempty"`
	ImageURL    string                 `json:"image_url,omitempty"`
	IsVerified  bool                   `json:"is_verified"`
	Role        string                 `json:"role"`
	CreatedAt   time.Time              `json:"created_at"`
	UpdatedAt   time.Time              `json:"updated_at"`
}
