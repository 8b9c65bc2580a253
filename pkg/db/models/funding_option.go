package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	dbtypes "github.com/orienta-za/orienta-backend/pkg/db/types"
	"github.com/orienta-za/orienta-backend/pkg/enums"
)

// FundingOption is a seeded bursary/scholarship/NSFAS reference row.
type FundingOption struct {
	ID                uuid.UUID         `gorm:"column:id;type:uuid;primaryKey"`
	Name              string            `gorm:"column:name;type:text;not null"`
	Type              enums.FundingType `gorm:"column:type;type:text;not null"`
	ProviderName      string            `gorm:"column:provider_name;type:text;not null"`
	IncomeThresholds  dbtypes.JSONMap   `gorm:"column:income_thresholds;type:jsonb;not null;default:'{}'"`
	Eligibility       dbtypes.JSONMap   `gorm:"column:eligibility;type:jsonb;not null;default:'{}'"`
	DeadlineDate      *string           `gorm:"column:deadline_date"`
	ApplicationURL    *string           `gorm:"column:application_url"`
	DocumentsRequired pq.StringArray    `gorm:"column:documents_required;type:text[]"`
	SourceURL         *string           `gorm:"column:source_url"`
	LastVerifiedAt    time.Time         `gorm:"column:last_verified_at"`
	Visible           bool              `gorm:"column:visible;not null;default:true"`
	CreatedAt         time.Time         `gorm:"column:created_at;autoCreateTime"`
}

// BeforeCreate assigns the application-generated identifier.
func (f *FundingOption) BeforeCreate(*gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return nil
}
