package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	dbtypes "github.com/orienta-za/orienta-backend/pkg/db/types"
)

// LearnerProfile is the 1:1 companion document for learner users. It is
// created empty at registration and mutated only by intake completion.
//
// The intake accepts arbitrarily shaped answers, so the answer-mapped columns
// are jsonb and carry whatever the learner submitted verbatim.
type LearnerProfile struct {
	ID              uuid.UUID       `gorm:"column:id;type:uuid;primaryKey"`
	UserID          uuid.UUID       `gorm:"column:user_id;type:uuid;not null;uniqueIndex"`
	GradeLevel      datatypes.JSON  `gorm:"column:grade_level;type:jsonb"`
	Province        datatypes.JSON  `gorm:"column:province;type:jsonb"`
	Subjects        datatypes.JSON  `gorm:"column:subjects;type:jsonb"`
	APSBand         *string         `gorm:"column:aps_band"`
	InterestTags    datatypes.JSON  `gorm:"column:interest_tags;type:jsonb"`
	Constraints     dbtypes.JSONMap `gorm:"column:constraints;type:jsonb;not null;default:'{}'"`
	TargetFields    datatypes.JSON  `gorm:"column:target_fields;type:jsonb"`
	LanguagePref    *string         `gorm:"column:language_pref"`
	ReadinessScore  *float64        `gorm:"column:readiness_score"`
	IntakeCompleted bool            `gorm:"column:intake_completed;not null;default:false"`
	CreatedAt       time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}

// BeforeCreate assigns the application-generated identifier.
func (p *LearnerProfile) BeforeCreate(*gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
