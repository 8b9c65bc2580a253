package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	dbtypes "github.com/orienta-za/orienta-backend/pkg/db/types"
	"github.com/orienta-za/orienta-backend/pkg/enums"
)

// EventRecord is an append-only audit entry. No consumer reads it.
type EventRecord struct {
	ID        uuid.UUID       `gorm:"column:id;type:uuid;primaryKey"`
	UserID    *uuid.UUID      `gorm:"column:user_id;type:uuid;index"`
	EventType enums.EventType `gorm:"column:event_type;type:text;not null"`
	Payload   dbtypes.JSONMap `gorm:"column:payload;type:jsonb;not null;default:'{}'"`
	CreatedAt time.Time       `gorm:"column:created_at;autoCreateTime"`
}

// TableName keeps the audit table's historical name.
func (EventRecord) TableName() string {
	return "events_log"
}

// BeforeCreate assigns the application-generated identifier.
func (e *EventRecord) BeforeCreate(*gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}
