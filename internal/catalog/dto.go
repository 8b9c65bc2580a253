package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/orienta-za/orienta-backend/pkg/db/models"
	"github.com/orienta-za/orienta-backend/pkg/enums"
)

// InstitutionDTO is the transport shape of a seeded institution.
type InstitutionDTO struct {
	ID                   uuid.UUID             `json:"id"`
	Name                 string                `json:"name"`
	Type                 enums.InstitutionType `json:"type"`
	Province             string                `json:"province"`
	City                 string                `json:"city"`
	ApplicationPortalURL *string               `json:"application_portal_url,omitempty"`
	FeeReferenceURL      *string               `json:"fee_reference_url,omitempty"`
}

// ProgrammeDTO is the transport shape of a seeded programme.
type ProgrammeDTO struct {
	ID                 uuid.UUID       `json:"id"`
	InstitutionID      uuid.UUID       `json:"institution_id"`
	Title              string          `json:"title"`
	Faculty            string          `json:"faculty"`
	QualificationType  string          `json:"qualification_type"`
	Province           string          `json:"province"`
	City               string          `json:"city"`
	DurationMonths     int             `json:"duration_months"`
	TotalEstimatedCost decimal.Decimal `json:"total_estimated_cost"`
	EntryRequirements  map[string]any  `json:"entry_requirements"`
	SourceURL          *string         `json:"source_url,omitempty"`
	LastVerifiedAt     time.Time       `json:"last_verified_at"`
	Visible            bool            `json:"visible"`
}

// FundingOptionDTO is the transport shape of a seeded funding option.
type FundingOptionDTO struct {
	ID                uuid.UUID         `json:"id"`
	Name              string            `json:"name"`
	Type              enums.FundingType `json:"type"`
	ProviderName      string            `json:"provider_name"`
	IncomeThresholds  map[string]any    `json:"income_thresholds"`
	Eligibility       map[string]any    `json:"eligibility"`
	DeadlineDate      *string           `json:"deadline_date,omitempty"`
	ApplicationURL    *string           `json:"application_url,omitempty"`
	DocumentsRequired []string          `json:"documents_required"`
	SourceURL         *string           `json:"source_url,omitempty"`
	Visible           bool              `json:"visible"`
}

// PreviewResponse joins the sampled programme with its institution.
type PreviewResponse struct {
	Programme   *ProgrammeDTO   `json:"programme"`
	Institution *InstitutionDTO `json:"institution"`
	PreviewOnly bool            `json:"preview_only"`
	Message     string          `json:"message"`
}

func institutionToDTO(i *models.Institution) *InstitutionDTO {
	if i == nil {
		return nil
	}
	return &InstitutionDTO{
		ID:                   i.ID,
		Name:                 i.Name,
		Type:                 i.Type,
		Province:             i.Province,
		City:                 i.City,
		ApplicationPortalURL: i.ApplicationPortalURL,
		FeeReferenceURL:      i.FeeReferenceURL,
	}
}

func programmeToDTO(p *models.Programme) *ProgrammeDTO {
	if p == nil {
		return nil
	}

	requirements := map[string]any(p.EntryRequirements)
	if requirements == nil {
		requirements = map[string]any{}
	}

	return &ProgrammeDTO{
		ID:                 p.ID,
		InstitutionID:      p.InstitutionID,
		Title:              p.Title,
		Faculty:            p.Faculty,
		QualificationType:  p.QualificationType,
		Province:           p.Province,
		City:               p.City,
		DurationMonths:     p.DurationMonths,
		TotalEstimatedCost: p.TotalEstimatedCost,
		EntryRequirements:  requirements,
		SourceURL:          p.SourceURL,
		LastVerifiedAt:     p.LastVerifiedAt,
		Visible:            p.Visible,
	}
}

func fundingOptionToDTO(f *models.FundingOption) *FundingOptionDTO {
	if f == nil {
		return nil
	}

	thresholds := map[string]any(f.IncomeThresholds)
	if thresholds == nil {
		thresholds = map[string]any{}
	}
	eligibility := map[string]any(f.Eligibility)
	if eligibility == nil {
		eligibility = map[string]any{}
	}

	return &FundingOptionDTO{
		ID:                f.ID,
		Name:              f.Name,
		Type:              f.Type,
		ProviderName:      f.ProviderName,
		IncomeThresholds:  thresholds,
		Eligibility:       eligibility,
		DeadlineDate:      f.DeadlineDate,
		ApplicationURL:    f.ApplicationURL,
		DocumentsRequired: append([]string(nil), f.DocumentsRequired...),
		SourceURL:         f.SourceURL,
		Visible:           f.Visible,
	}
}
