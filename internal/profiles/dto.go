package profiles

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/orienta-za/orienta-backend/pkg/db/models"
)

// ProfileDTO is the transport shape of a learner profile.
type ProfileDTO struct {
	ID              uuid.UUID      `json:"id"`
	UserID          uuid.UUID      `json:"user_id"`
	GradeLevel      any            `json:"grade_level,omitempty"`
	Province        any            `json:"province,omitempty"`
	Subjects        any            `json:"subjects,omitempty"`
	APSBand         *string        `json:"aps_band,omitempty"`
	InterestTags    any            `json:"interest_tags,omitempty"`
	Constraints     map[string]any `json:"constraints"`
	TargetFields    any            `json:"target_fields,omitempty"`
	LanguagePref    *string        `json:"language_pref,omitempty"`
	ReadinessScore  *float64       `json:"readiness_score,omitempty"`
	IntakeCompleted bool           `json:"intake_completed"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
}

func FromModel(p *models.LearnerProfile) *ProfileDTO {
	if p == nil {
		return nil
	}

	constraints := map[string]any(p.Constraints)
	if constraints == nil {
		constraints = map[string]any{}
	}

	return &ProfileDTO{
		ID:              p.ID,
		UserID:          p.UserID,
		GradeLevel:      decodeJSON(p.GradeLevel),
		Province:        decodeJSON(p.Province),
		Subjects:        decodeJSON(p.Subjects),
		APSBand:         p.APSBand,
		InterestTags:    decodeJSON(p.InterestTags),
		Constraints:     constraints,
		TargetFields:    decodeJSON(p.TargetFields),
		LanguagePref:    p.LanguagePref,
		ReadinessScore:  p.ReadinessScore,
		IntakeCompleted: p.IntakeCompleted,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}

func decodeJSON(raw []byte) any {
	if len(raw) == 0 {
		return nil
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil
	}
	return v
}
