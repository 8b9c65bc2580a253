package seed

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/orienta-za/orienta-backend/pkg/db/models"
	"github.com/orienta-za/orienta-backend/pkg/logger"
)

// Seeder populates the catalog reference tables on boot. Each table is only
// touched when it is empty, so restarts never duplicate rows.
type Seeder struct {
	db   *gorm.DB
	logg *logger.Logger
}

func New(db *gorm.DB, logg *logger.Logger) *Seeder {
	return &Seeder{db: db, logg: logg}
}

// Run seeds institutions, programmes and funding options in order.
// Programmes depend on institution ids, so institutions go first.
func (s *Seeder) Run(ctx context.Context) error {
	if s == nil || s.db == nil {
		return fmt.Errorf("seeder requires a database handle")
	}

	now := time.Now().UTC()

	if err := s.seedInstitutions(ctx, now); err != nil {
		return fmt.Errorf("seeding institutions: %w", err)
	}
	if err := s.seedProgrammes(ctx, now); err != nil {
		return fmt.Errorf("seeding programmes: %w", err)
	}
	if err := s.seedFundingOptions(ctx, now); err != nil {
		return fmt.Errorf("seeding funding options: %w", err)
	}
	return nil
}

func (s *Seeder) seedInstitutions(ctx context.Context, now time.Time) error {
	empty, err := s.tableEmpty(ctx, &models.Institution{})
	if err != nil || !empty {
		return err
	}

	rows := institutionRows(now)
	if err := s.db.WithContext(ctx).Create(&rows).Error; err != nil {
		return err
	}
	s.logg.Info(s.logg.WithField(ctx, "count", len(rows)), "seeded institutions")
	return nil
}

func (s *Seeder) seedProgrammes(ctx context.Context, now time.Time) error {
	empty, err := s.tableEmpty(ctx, &models.Programme{})
	if err != nil || !empty {
		return err
	}

	var institutions []models.Institution
	if err := s.db.WithContext(ctx).Find(&institutions).Error; err != nil {
		return err
	}

	byName := programmeRows(now)
	var rows []models.Programme
	for _, institution := range institutions {
		for _, programme := range byName[institution.Name] {
			programme.InstitutionID = institution.ID
			programme.Province = institution.Province
			programme.City = institution.City
			rows = append(rows, programme)
		}
	}
	if len(rows) == 0 {
		return nil
	}

	if err := s.db.WithContext(ctx).Create(&rows).Error; err != nil {
		return err
	}
	s.logg.Info(s.logg.WithField(ctx, "count", len(rows)), "seeded programmes")
	return nil
}

func (s *Seeder) seedFundingOptions(ctx context.Context, now time.Time) error {
	empty, err := s.tableEmpty(ctx, &models.FundingOption{})
	if err != nil || !empty {
		return err
	}

	rows := fundingOptionRows(now)
	if err := s.db.WithContext(ctx).Create(&rows).Error; err != nil {
		return err
	}
	s.logg.Info(s.logg.WithField(ctx, "count", len(rows)), "seeded funding options")
	return nil
}

func (s *Seeder) tableEmpty(ctx context.Context, model any) (bool, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(model).Count(&count).Error; err != nil {
		return false, err
	}
	return count == 0, nil
}
