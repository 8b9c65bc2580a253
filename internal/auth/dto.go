package auth

import (
	"github.com/orienta-za/orienta-backend/internal/profiles"
	"github.com/orienta-za/orienta-backend/internal/users"
)

// RegisterRequest captures the payload accepted by the register endpoint.
type RegisterRequest struct {
	Email    string         `json:"email" validate:"required,email"`
	Password string         `json:"password" validate:"required"`
	Phone    *string        `json:"phone,omitempty"`
	Role     string         `json:"role,omitempty" validate:"omitempty,oneof=learner parent teacher admin"`
	Consent  map[string]any `json:"consent_flags,omitempty"`
}

// LoginRequest captures the user credentials sent to the login endpoint. The
// email is not shape-checked here; a malformed identifier falls through to the
// credential check and fails as unauthorized.
type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse contains the bearer token and user produced by register/login.
type AuthResponse struct {
	AccessToken string         `json:"access_token"`
	TokenType   string         `json:"token_type"`
	User        *users.UserDTO `json:"user"`
}

// ProfileResponse is returned by the profile endpoint. The profile is present
// only for learner accounts.
type ProfileResponse struct {
	User    *users.UserDTO       `json:"user"`
	Profile *profiles.ProfileDTO `json:"profile,omitempty"`
}
