package intake

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/orienta-za/orienta-backend/pkg/db/models"
)

// Repository exposes intake-session persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs an intake repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// FindActive returns the user's incomplete session.
func (r *Repository) FindActive(ctx context.Context, userID uuid.UUID) (*models.IntakeSession, error) {
	var session models.IntakeSession
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND completed = ?", userID, false).
		First(&session).Error
	if err != nil {
		return nil, err
	}
	return &session, nil
}

// Create opens a fresh session at step zero.
func (r *Repository) Create(ctx context.Context, userID uuid.UUID) (*models.IntakeSession, error) {
	session := &models.IntakeSession{
		UserID:    userID,
		Responses: models.IntakeResponses{},
	}
	if err := r.db.WithContext(ctx).Create(session).Error; err != nil {
		return nil, err
	}
	return session, nil
}

// Save persists the full session row.
func (r *Repository) Save(ctx context.Context, session *models.IntakeSession) error {
	return r.db.WithContext(ctx).Save(session).Error
}

// SaveTx persists the full session row inside the supplied transaction.
func (r *Repository) SaveTx(ctx context.Context, tx *gorm.DB, session *models.IntakeSession) error {
	return tx.WithContext(ctx).Save(session).Error
}
