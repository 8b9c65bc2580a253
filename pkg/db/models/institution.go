package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/orienta-za/orienta-backend/pkg/enums"
)

// Institution is a seeded tertiary institution reference row. Read-only after
// seeding.
type Institution struct {
	ID                   uuid.UUID             `gorm:"column:id;type:uuid;primaryKey"`
	Name                 string                `gorm:"column:name;type:text;not null"`
	Type                 enums.InstitutionType `gorm:"column:type;type:text;not null"`
	Province             string                `gorm:"column:province;type:text;not null"`
	City                 string                `gorm:"column:city;type:text;not null"`
	ApplicationPortalURL *string               `gorm:"column:application_portal_url"`
	FeeReferenceURL      *string               `gorm:"column:fee_reference_url"`
	CreatedAt            time.Time             `gorm:"column:created_at;autoCreateTime"`
}

// BeforeCreate assigns the application-generated identifier.
func (i *Institution) BeforeCreate(*gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}
