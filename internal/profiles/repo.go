package profiles

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/orienta-za/orienta-backend/pkg/db/models"
	dbtypes "github.com/orienta-za/orienta-backend/pkg/db/types"
)

// Repository exposes learner-profile persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a profiles repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// CreateTx inserts an empty profile for the user inside the supplied transaction.
func (r *Repository) CreateTx(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*models.LearnerProfile, error) {
	profile := &models.LearnerProfile{
		UserID:      userID,
		Constraints: dbtypes.JSONMap{},
	}
	if err := tx.WithContext(ctx).Create(profile).Error; err != nil {
		return nil, err
	}
	return profile, nil
}

// FindByUserID loads the profile belonging to the given user.
func (r *Repository) FindByUserID(ctx context.Context, userID uuid.UUID) (*models.LearnerProfile, error) {
	var profile models.LearnerProfile
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&profile).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

// IntakeUpdate carries the answer values copied into the profile when an
// intake session completes. Nil fields are left untouched.
type IntakeUpdate struct {
	GradeLevel   datatypes.JSON
	Province     datatypes.JSON
	Subjects     datatypes.JSON
	InterestTags datatypes.JSON
	TargetFields datatypes.JSON
	Constraints  map[string]any
}

// ApplyIntakeTx flips intake_completed and copies the answered fields onto the
// profile inside the supplied transaction.
func (r *Repository) ApplyIntakeTx(ctx context.Context, tx *gorm.DB, userID uuid.UUID, update IntakeUpdate) error {
	columns := map[string]any{"intake_completed": true}

	if update.GradeLevel != nil {
		columns["grade_level"] = update.GradeLevel
	}
	if update.Province != nil {
		columns["province"] = update.Province
	}
	if update.Subjects != nil {
		columns["subjects"] = update.Subjects
	}
	if update.InterestTags != nil {
		columns["interest_tags"] = update.InterestTags
	}
	if update.TargetFields != nil {
		columns["target_fields"] = update.TargetFields
	}
	if update.Constraints != nil {
		columns["constraints"] = dbtypes.JSONMap(update.Constraints)
	}

	return tx.WithContext(ctx).
		Model(&models.LearnerProfile{}).
		Where("user_id = ?", userID).
		Updates(columns).Error
}
