package intake

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/orienta-za/orienta-backend/pkg/db/models"
	"github.com/orienta-za/orienta-backend/pkg/enums"
)

// AnswerRequest is the payload accepted by the answer endpoint. The answer
// value is carried verbatim; no shape validation is applied against the
// question's declared type.
type AnswerRequest struct {
	QuestionID string          `json:"question_id" validate:"required"`
	Answer     json.RawMessage `json:"answer" validate:"required"`
}

// QuestionDTO is the transport shape of one catalog entry.
type QuestionDTO struct {
	ID       string             `json:"id"`
	Text     string             `json:"text"`
	Type     enums.QuestionType `json:"type"`
	Options  []string           `json:"options,omitempty"`
	Subjects []string           `json:"subjects,omitempty"`
}

// SessionDTO is the transport shape of an intake session.
type SessionDTO struct {
	ID          uuid.UUID               `json:"id"`
	UserID      uuid.UUID               `json:"user_id"`
	Responses   []models.IntakeResponse `json:"responses"`
	CurrentStep int                     `json:"current_step"`
	Completed   bool                    `json:"completed"`
	CreatedAt   time.Time               `json:"created_at"`
	UpdatedAt   time.Time               `json:"updated_at"`
}

// AnswerResponse pairs the updated session with the next question descriptor.
// NextQuestion is nil once the session is completed.
type AnswerResponse struct {
	Session      *SessionDTO  `json:"session"`
	NextQuestion *QuestionDTO `json:"next_question"`
}

// QuestionsResponse wraps the static catalog listing.
type QuestionsResponse struct {
	Questions []QuestionDTO `json:"questions"`
}

func questionToDTO(q Question) QuestionDTO {
	return QuestionDTO{
		ID:       q.ID,
		Text:     q.Text,
		Type:     q.Type,
		Options:  append([]string(nil), q.Options...),
		Subjects: append([]string(nil), q.Subjects...),
	}
}

func sessionToDTO(s *models.IntakeSession) *SessionDTO {
	if s == nil {
		return nil
	}
	responses := make([]models.IntakeResponse, len(s.Responses))
	copy(responses, s.Responses)

	return &SessionDTO{
		ID:          s.ID,
		UserID:      s.UserID,
		Responses:   responses,
		CurrentStep: s.CurrentStep,
		Completed:   s.Completed,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}
