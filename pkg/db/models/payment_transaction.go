package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/orienta-za/orienta-backend/pkg/enums"
)

// PaymentTransaction records a checkout attempt against the payment provider.
// Rows are created as initiated; nothing in this codebase transitions them.
type PaymentTransaction struct {
	ID          uuid.UUID           `gorm:"column:id;type:uuid;primaryKey"`
	UserID      uuid.UUID           `gorm:"column:user_id;type:uuid;not null;index"`
	Provider    string              `gorm:"column:provider;type:text;not null"`
	AmountCents int64               `gorm:"column:amount_cents;not null"`
	Currency    string              `gorm:"column:currency;type:text;not null"`
	Status      enums.PaymentStatus `gorm:"column:status;type:text;not null;default:'initiated'"`
	ExternalRef *string             `gorm:"column:external_ref"`
	PlanType    enums.PlanType      `gorm:"column:plan_type;type:text;not null"`
	CreatedAt   time.Time           `gorm:"column:created_at;autoCreateTime"`
}

// BeforeCreate assigns the application-generated identifier.
func (t *PaymentTransaction) BeforeCreate(*gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}
