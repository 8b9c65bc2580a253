package catalog

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/orienta-za/orienta-backend/pkg/db/models"
)

// Repository exposes read-only access to the seeded catalog tables.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a catalog repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// FirstVisibleProgramme returns the first visible programme by insertion
// order. The preview is deliberately not ranked; id breaks created_at ties so
// the pick is stable for a fixed catalog.
func (r *Repository) FirstVisibleProgramme(ctx context.Context) (*models.Programme, error) {
	var programme models.Programme
	err := r.db.WithContext(ctx).
		Where("visible = ?", true).
		Order("created_at ASC, id ASC").
		First(&programme).Error
	if err != nil {
		return nil, err
	}
	return &programme, nil
}

// FindInstitution loads one institution by id.
func (r *Repository) FindInstitution(ctx context.Context, id uuid.UUID) (*models.Institution, error) {
	var institution models.Institution
	if err := r.db.WithContext(ctx).First(&institution, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &institution, nil
}

// ListInstitutions returns all seeded institutions.
func (r *Repository) ListInstitutions(ctx context.Context) ([]models.Institution, error) {
	var institutions []models.Institution
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&institutions).Error; err != nil {
		return nil, err
	}
	return institutions, nil
}

// ListProgrammes returns all visible programmes.
func (r *Repository) ListProgrammes(ctx context.Context) ([]models.Programme, error) {
	var programmes []models.Programme
	err := r.db.WithContext(ctx).
		Where("visible = ?", true).
		Order("title ASC").
		Find(&programmes).Error
	if err != nil {
		return nil, err
	}
	return programmes, nil
}

// ListFundingOptions returns all visible funding options.
func (r *Repository) ListFundingOptions(ctx context.Context) ([]models.FundingOption, error) {
	var options []models.FundingOption
	err := r.db.WithContext(ctx).
		Where("visible = ?", true).
		Order("name ASC").
		Find(&options).Error
	if err != nil {
		return nil, err
	}
	return options, nil
}
