package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	dbtypes "github.com/orienta-za/orienta-backend/pkg/db/types"
	"github.com/orienta-za/orienta-backend/pkg/enums"
)

// User represents the canonical identity entity. The role is fixed at
// registration time.
type User struct {
	ID           uuid.UUID       `gorm:"column:id;type:uuid;primaryKey"`
	Role         enums.UserRole  `gorm:"column:role;type:text;not null;default:'learner'"`
	Email        string          `gorm:"column:email;type:text;not null;uniqueIndex"`
	Phone        *string         `gorm:"column:phone"`
	PasswordHash string          `gorm:"column:password_hash;not null"`
	SchoolID     *uuid.UUID      `gorm:"column:school_id;type:uuid"`
	ConsentFlags dbtypes.JSONMap `gorm:"column:consent_flags;type:jsonb;not null;default:'{}'"`
	CreatedAt    time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}

// BeforeCreate assigns the application-generated identifier.
func (u *User) BeforeCreate(*gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
