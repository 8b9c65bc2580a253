package users

import (
	"time"

	"github.com/google/uuid"

	"github.com/orienta-za/orienta-backend/pkg/db/models"
	dbtypes "github.com/orienta-za/orienta-backend/pkg/db/types"
	"github.com/orienta-za/orienta-backend/pkg/enums"
)

// UserDTO is the transport shape that omits sensitive credentials.
type UserDTO struct {
	ID           uuid.UUID      `json:"id"`
	Role         enums.UserRole `json:"role"`
	Email        string         `json:"email"`
	Phone        *string        `json:"phone,omitempty"`
	SchoolID     *uuid.UUID     `json:"school_id,omitempty"`
	ConsentFlags map[string]any `json:"consent_flags"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
}

// CreateUserDTO holds the data required by the repo to persist a new user.
type CreateUserDTO struct {
	Email        string
	PasswordHash string
	Role         enums.UserRole
	Phone        *string
	ConsentFlags map[string]any
}

func FromModel(u *models.User) *UserDTO {
	if u == nil {
		return nil
	}

	flags := map[string]any(u.ConsentFlags)
	if flags == nil {
		flags = map[string]any{}
	}

	return &UserDTO{
		ID:           u.ID,
		Role:         u.Role,
		Email:        u.Email,
		Phone:        u.Phone,
		SchoolID:     u.SchoolID,
		ConsentFlags: flags,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}

func (c CreateUserDTO) ToModel() *models.User {
	role := c.Role
	if role == "" {
		role = enums.UserRoleLearner
	}

	flags := c.ConsentFlags
	if flags == nil {
		flags = map[string]any{}
	}

	return &models.User{
		Email:        c.Email,
		PasswordHash: c.PasswordHash,
		Role:         role,
		Phone:        c.Phone,
		ConsentFlags: dbtypes.JSONMap(flags),
	}
}
