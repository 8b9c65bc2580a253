package events

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/orienta-za/orienta-backend/pkg/db/models"
	dbtypes "github.com/orienta-za/orienta-backend/pkg/db/types"
	"github.com/orienta-za/orienta-backend/pkg/enums"
	"github.com/orienta-za/orienta-backend/pkg/logger"
)

// Recorder appends audit events to the events_log table. Writes are
// best-effort: a failed insert is logged and swallowed so it never fails the
// request that produced it.
type Recorder struct {
	db   *gorm.DB
	logg *logger.Logger
}

// NewRecorder constructs an event recorder bound to the provided GORM DB.
func NewRecorder(db *gorm.DB, logg *logger.Logger) *Recorder {
	return &Recorder{db: db, logg: logg}
}

// Record appends one event row.
func (r *Recorder) Record(ctx context.Context, eventType enums.EventType, userID *uuid.UUID, payload map[string]any) {
	if r == nil || r.db == nil {
		return
	}
	if payload == nil {
		payload = map[string]any{}
	}

	event := &models.EventRecord{
		UserID:    userID,
		EventType: eventType,
		Payload:   dbtypes.JSONMap(payload),
	}

	if err := r.db.WithContext(ctx).Create(event).Error; err != nil && r.logg != nil {
		ctx = r.logg.WithField(ctx, "event_type", string(eventType))
		r.logg.Warn(ctx, "event write failed: "+err.Error())
	}
}
