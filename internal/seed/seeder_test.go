package seed

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/orienta-za/orienta-backend/pkg/db/models"
	"github.com/orienta-za/orienta-backend/pkg/logger"
)

func setupSeedTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	institutions := `
CREATE TABLE IF NOT EXISTS institutions (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  type TEXT NOT NULL,
  province TEXT NOT NULL,
  city TEXT NOT NULL,
  application_portal_url TEXT,
  fee_reference_url TEXT,
  created_at DATETIME
);`
	programmes := `
CREATE TABLE IF NOT EXISTS programmes (
  id TEXT PRIMARY KEY,
  institution_id TEXT NOT NULL,
  title TEXT NOT NULL,
  faculty TEXT NOT NULL,
  qualification_type TEXT NOT NULL,
  province TEXT NOT NULL,
  city TEXT NOT NULL,
  duration_months INTEGER NOT NULL,
  total_estimated_cost TEXT NOT NULL,
  entry_requirements TEXT NOT NULL DEFAULT '{}',
  source_url TEXT,
  last_verified_at DATETIME,
  visible INTEGER NOT NULL DEFAULT 1,
  created_at DATETIME
);`
	fundingOptions := `
CREATE TABLE IF NOT EXISTS funding_options (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  type TEXT NOT NULL,
  provider_name TEXT NOT NULL,
  income_thresholds TEXT NOT NULL DEFAULT '{}',
  eligibility TEXT NOT NULL DEFAULT '{}',
  deadline_date TEXT,
  application_url TEXT,
  documents_required TEXT,
  source_url TEXT,
  last_verified_at DATETIME,
  visible INTEGER NOT NULL DEFAULT 1,
  created_at DATETIME
);`

	for _, ddl := range []string{institutions, programmes, fundingOptions} {
		require.NoError(t, db.Exec(ddl).Error)
	}
	return db
}

func TestSeedPopulatesEmptyTables(t *testing.T) {
	db := setupSeedTestDB(t)
	logg := logger.New(logger.Options{ServiceName: "test"})

	require.NoError(t, New(db, logg).Run(context.Background()))

	var institutionCount, programmeCount, fundingCount int64
	require.NoError(t, db.Model(&models.Institution{}).Count(&institutionCount).Error)
	require.NoError(t, db.Model(&models.Programme{}).Count(&programmeCount).Error)
	require.NoError(t, db.Model(&models.FundingOption{}).Count(&fundingCount).Error)

	require.EqualValues(t, 5, institutionCount)
	require.EqualValues(t, 3, programmeCount)
	require.EqualValues(t, 2, fundingCount)
}

func TestSeedAttachesProgrammesToInstitutions(t *testing.T) {
	db := setupSeedTestDB(t)
	logg := logger.New(logger.Options{ServiceName: "test"})

	require.NoError(t, New(db, logg).Run(context.Background()))

	var wits models.Institution
	require.NoError(t, db.Where("name = ?", "University of the Witwatersrand").First(&wits).Error)

	var witsProgrammes int64
	require.NoError(t, db.Model(&models.Programme{}).Where("institution_id = ?", wits.ID).Count(&witsProgrammes).Error)
	require.EqualValues(t, 2, witsProgrammes)

	var uj models.Institution
	require.NoError(t, db.Where("name = ?", "University of Johannesburg").First(&uj).Error)

	var programme models.Programme
	require.NoError(t, db.Where("institution_id = ?", uj.ID).First(&programme).Error)
	require.Equal(t, "Bachelor of Education in Foundation Phase", programme.Title)
	require.Equal(t, uj.Province, programme.Province)
}

func TestSeedIsIdempotent(t *testing.T) {
	db := setupSeedTestDB(t)
	logg := logger.New(logger.Options{ServiceName: "test"})

	require.NoError(t, New(db, logg).Run(context.Background()))
	require.NoError(t, New(db, logg).Run(context.Background()))

	var institutionCount, programmeCount, fundingCount int64
	require.NoError(t, db.Model(&models.Institution{}).Count(&institutionCount).Error)
	require.NoError(t, db.Model(&models.Programme{}).Count(&programmeCount).Error)
	require.NoError(t, db.Model(&models.FundingOption{}).Count(&fundingCount).Error)

	require.EqualValues(t, 5, institutionCount)
	require.EqualValues(t, 3, programmeCount)
	require.EqualValues(t, 2, fundingCount)
}
