package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	dbtypes "github.com/orienta-za/orienta-backend/pkg/db/types"
)

// Programme is a seeded study programme offered by an institution.
type Programme struct {
	ID                 uuid.UUID       `gorm:"column:id;type:uuid;primaryKey"`
	InstitutionID      uuid.UUID       `gorm:"column:institution_id;type:uuid;not null;index"`
	Title              string          `gorm:"column:title;type:text;not null"`
	Faculty            string          `gorm:"column:faculty;type:text;not null"`
	QualificationType  string          `gorm:"column:qualification_type;type:text;not null"`
	Province           string          `gorm:"column:province;type:text;not null"`
	City               string          `gorm:"column:city;type:text;not null"`
	DurationMonths     int             `gorm:"column:duration_months;not null"`
	TotalEstimatedCost decimal.Decimal `gorm:"column:total_estimated_cost;type:numeric(12,2);not null"`
	EntryRequirements  dbtypes.JSONMap `gorm:"column:entry_requirements;type:jsonb;not null;default:'{}'"`
	SourceURL          *string         `gorm:"column:source_url"`
	LastVerifiedAt     time.Time       `gorm:"column:last_verified_at"`
	Visible            bool            `gorm:"column:visible;not null;default:true"`
	CreatedAt          time.Time       `gorm:"column:created_at;autoCreateTime"`
}

// BeforeCreate assigns the application-generated identifier.
func (p *Programme) BeforeCreate(*gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
