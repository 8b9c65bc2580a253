package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	dbtypes "github.com/orienta-za/orienta-backend/pkg/db/types"
	"github.com/orienta-za/orienta-backend/pkg/enums"
)

// Pathway is a scored programme suggestion for a learner.
//
// The shape is modeled for the matching feature, but no route in this codebase
// computes fit scores or writes pathway rows.
type Pathway struct {
	ID               uuid.UUID           `gorm:"column:id;type:uuid;primaryKey"`
	UserID           uuid.UUID           `gorm:"column:user_id;type:uuid;not null;index"`
	ProgrammeID      uuid.UUID           `gorm:"column:programme_id;type:uuid;not null"`
	FitScore         float64             `gorm:"column:fit_score;not null"`
	Rationale        string              `gorm:"column:rationale;type:text;not null"`
	ProjectedCost    decimal.Decimal     `gorm:"column:projected_cost;type:numeric(12,2);not null"`
	FundingShortlist dbtypes.UUIDArray   `gorm:"column:funding_shortlist;type:uuid[];not null;default:ARRAY[]::uuid[]"`
	Status           enums.PathwayStatus `gorm:"column:status;type:text;not null;default:'suggested'"`
	CreatedAt        time.Time           `gorm:"column:created_at;autoCreateTime"`
}

// BeforeCreate assigns the application-generated identifier.
func (p *Pathway) BeforeCreate(*gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
