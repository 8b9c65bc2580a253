package seed

import (
	"time"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/orienta-za/orienta-backend/pkg/db/models"
	dbtypes "github.com/orienta-za/orienta-backend/pkg/db/types"
	"github.com/orienta-za/orienta-backend/pkg/enums"
)

func strPtr(s string) *string { return &s }

func institutionRows(now time.Time) []models.Institution {
	return []models.Institution{
		{
			Name:                 "University of the Witwatersrand",
			Type:                 enums.InstitutionTypeUniversity,
			Province:             "Gauteng",
			City:                 "Johannesburg",
			ApplicationPortalURL: strPtr("https://www.wits.ac.za/applications"),
			FeeReferenceURL:      strPtr("https://www.wits.ac.za/fees"),
			CreatedAt:            now,
		},
		{
			Name:                 "University of Johannesburg",
			Type:                 enums.InstitutionTypeUniversity,
			Province:             "Gauteng",
			City:                 "Johannesburg",
			ApplicationPortalURL: strPtr("https://www.uj.ac.za/apply"),
			FeeReferenceURL:      strPtr("https://www.uj.ac.za/fees"),
			CreatedAt:            now,
		},
		{
			Name:                 "University of Pretoria",
			Type:                 enums.InstitutionTypeUniversity,
			Province:             "Gauteng",
			City:                 "Pretoria",
			ApplicationPortalURL: strPtr("https://www.up.ac.za/applications"),
			FeeReferenceURL:      strPtr("https://www.up.ac.za/fees"),
			CreatedAt:            now,
		},
		{
			Name:                 "University of South Africa",
			Type:                 enums.InstitutionTypeUniversity,
			Province:             "Gauteng",
			City:                 "Pretoria",
			ApplicationPortalURL: strPtr("https://www.unisa.ac.za/apply"),
			FeeReferenceURL:      strPtr("https://www.unisa.ac.za/fees"),
			CreatedAt:            now,
		},
		{
			Name:                 "Tshwane University of Technology",
			Type:                 enums.InstitutionTypeUniversityOfTechnology,
			Province:             "Gauteng",
			City:                 "Pretoria",
			ApplicationPortalURL: strPtr("https://www.tut.ac.za/apply"),
			FeeReferenceURL:      strPtr("https://www.tut.ac.za/fees"),
			CreatedAt:            now,
		},
	}
}

// programmeRows is keyed by the exact institution name so every row lands on
// a seeded institution.
func programmeRows(now time.Time) map[string][]models.Programme {
	return map[string][]models.Programme{
		"University of the Witwatersrand": {
			{
				Title:              "Bachelor of Engineering in Electrical Engineering",
				Faculty:            "Engineering",
				QualificationType:  "Bachelor's Degree",
				DurationMonths:     48,
				TotalEstimatedCost: decimal.NewFromFloat(280000.0),
				EntryRequirements: dbtypes.JSONMap{
					"aps_min": 38,
					"subject_minima": map[string]any{
						"Mathematics":       6,
						"Physical Sciences": 5,
						"English":           4,
					},
				},
				SourceURL:      strPtr("https://www.wits.ac.za/engineering"),
				LastVerifiedAt: now,
				Visible:        true,
				CreatedAt:      now,
			},
			{
				Title:              "Bachelor of Commerce in Accounting",
				Faculty:            "Commerce",
				QualificationType:  "Bachelor's Degree",
				DurationMonths:     36,
				TotalEstimatedCost: decimal.NewFromFloat(210000.0),
				EntryRequirements: dbtypes.JSONMap{
					"aps_min": 32,
					"subject_minima": map[string]any{
						"Mathematics": 5,
						"English":     4,
						"Accounting":  5,
					},
				},
				SourceURL:      strPtr("https://www.wits.ac.za/commerce"),
				LastVerifiedAt: now,
				Visible:        true,
				CreatedAt:      now,
			},
		},
		"University of Johannesburg": {
			{
				Title:              "Bachelor of Education in Foundation Phase",
				Faculty:            "Education",
				QualificationType:  "Bachelor's Degree",
				DurationMonths:     48,
				TotalEstimatedCost: decimal.NewFromFloat(160000.0),
				EntryRequirements: dbtypes.JSONMap{
					"aps_min": 26,
					"subject_minima": map[string]any{
						"English":     4,
						"Mathematics": 3,
					},
				},
				SourceURL:      strPtr("https://www.uj.ac.za/education"),
				LastVerifiedAt: now,
				Visible:        true,
				CreatedAt:      now,
			},
		},
	}
}

func fundingOptionRows(now time.Time) []models.FundingOption {
	return []models.FundingOption{
		{
			Name:             "NSFAS",
			Type:             enums.FundingTypeNSFAS,
			ProviderName:     "National Student Financial Aid Scheme",
			IncomeThresholds: dbtypes.JSONMap{"household_income": 350000},
			Eligibility: dbtypes.JSONMap{
				"citizenship":    "South African",
				"academic_merit": "APS 23+",
				"fields":         "All",
			},
			DeadlineDate:      strPtr("2024-12-31"),
			ApplicationURL:    strPtr("https://www.nsfas.org.za/apply"),
			DocumentsRequired: pq.StringArray{"ID Document", "Proof of Income", "Academic Records"},
			SourceURL:         strPtr("https://www.nsfas.org.za"),
			LastVerifiedAt:    now,
			Visible:           true,
			CreatedAt:         now,
		},
		{
			Name:             "Funza Lushaka Bursary",
			Type:             enums.FundingTypeBursary,
			ProviderName:     "Department of Basic Education",
			IncomeThresholds: dbtypes.JSONMap{"household_income": 500000},
			Eligibility: dbtypes.JSONMap{
				"field":      "Education",
				"aps_min":    25,
				"commitment": "Teaching for same period as study",
			},
			DeadlineDate:      strPtr("2024-11-30"),
			ApplicationURL:    strPtr("https://www.funzalushaka.doe.gov.za"),
			DocumentsRequired: pq.StringArray{"ID Document", "Academic Records", "Proof of Income"},
			SourceURL:         strPtr("https://www.funzalushaka.doe.gov.za"),
			LastVerifiedAt:    now,
			Visible:           true,
			CreatedAt:         now,
		},
	}
}
