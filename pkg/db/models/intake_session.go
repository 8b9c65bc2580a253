package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// IntakeResponse is one answered question embedded in a session document.
type IntakeResponse struct {
	QuestionID string         `json:"question_id"`
	Question   string         `json:"question"`
	Answer     datatypes.JSON `json:"answer"`
	Progress   float64        `json:"progress"`
}

// IntakeResponses stores the ordered answer list as a jsonb array.
type IntakeResponses []IntakeResponse

// Value implements driver.Valuer.
func (r IntakeResponses) Value() (driver.Value, error) {
	if r == nil {
		return []byte("[]"), nil
	}
	encoded, err := json.Marshal(r)
	if err != nil {
		return nil, fmt.Errorf("encoding intake responses: %w", err)
	}
	return encoded, nil
}

// Scan implements sql.Scanner.
func (r *IntakeResponses) Scan(src any) error {
	if src == nil {
		*r = IntakeResponses{}
		return nil
	}

	var raw []byte
	switch v := src.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("unsupported intake responses source type %T", src)
	}

	if len(raw) == 0 {
		*r = IntakeResponses{}
		return nil
	}

	decoded := IntakeResponses{}
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return fmt.Errorf("decoding intake responses: %w", err)
	}
	*r = decoded
	return nil
}

// GormDataType tells GORM which column type to use.
func (IntakeResponses) GormDataType() string {
	return "jsonb"
}

// IntakeSession walks a learner through the fixed question list. At most one
// incomplete session exists per user; a completed session is immutable.
type IntakeSession struct {
	ID          uuid.UUID       `gorm:"column:id;type:uuid;primaryKey"`
	UserID      uuid.UUID       `gorm:"column:user_id;type:uuid;not null;index"`
	Responses   IntakeResponses `gorm:"column:responses;type:jsonb;not null;default:'[]'"`
	CurrentStep int             `gorm:"column:current_step;not null;default:0"`
	Completed   bool            `gorm:"column:completed;not null;default:false"`
	CreatedAt   time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}

// BeforeCreate assigns the application-generated identifier.
func (s *IntakeSession) BeforeCreate(*gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
