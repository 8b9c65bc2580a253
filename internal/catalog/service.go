package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/orienta-za/orienta-backend/pkg/db/models"
	"github.com/orienta-za/orienta-backend/pkg/enums"
	pkgerrors "github.com/orienta-za/orienta-backend/pkg/errors"
)

const previewMessage = "This is a preview. Unlock full pathway matching for R79."

// Service defines the behavior needed by the catalog and pathway controllers.
type Service interface {
	PreviewPathway(ctx context.Context, userID uuid.UUID, role enums.UserRole) (*PreviewResponse, error)
	ListInstitutions(ctx context.Context) ([]InstitutionDTO, error)
	ListProgrammes(ctx context.Context) ([]ProgrammeDTO, error)
	ListFundingOptions(ctx context.Context) ([]FundingOptionDTO, error)
}

type catalogRepository interface {
	FirstVisibleProgramme(ctx context.Context) (*models.Programme, error)
	FindInstitution(ctx context.Context, id uuid.UUID) (*models.Institution, error)
	ListInstitutions(ctx context.Context) ([]models.Institution, error)
	ListProgrammes(ctx context.Context) ([]models.Programme, error)
	ListFundingOptions(ctx context.Context) ([]models.FundingOption, error)
}

type profileRepository interface {
	FindByUserID(ctx context.Context, userID uuid.UUID) (*models.LearnerProfile, error)
}

type service struct {
	catalog  catalogRepository
	profiles profileRepository
}

// ServiceParams bundles the dependencies required to build a catalog service.
type ServiceParams struct {
	CatalogRepo catalogRepository
	ProfileRepo profileRepository
}

// NewService constructs a catalog service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.CatalogRepo == nil {
		return nil, fmt.Errorf("catalog repository is required")
	}
	if params.ProfileRepo == nil {
		return nil, fmt.Errorf("profile repository is required")
	}
	return &service{
		catalog:  params.CatalogRepo,
		profiles: params.ProfileRepo,
	}, nil
}

func (s *service) PreviewPathway(ctx context.Context, userID uuid.UUID, role enums.UserRole) (*PreviewResponse, error) {
	if role != enums.UserRoleLearner {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "only learners can view pathways")
	}

	profile, err := s.profiles.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "complete intake first")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup profile")
	}
	if !profile.IntakeCompleted {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "complete intake first")
	}

	programme, err := s.catalog.FirstVisibleProgramme(ctx)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "no programmes available")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup programme")
	}

	resp := &PreviewResponse{
		Programme:   programmeToDTO(programme),
		PreviewOnly: true,
		Message:     previewMessage,
	}

	institution, err := s.catalog.FindInstitution(ctx, programme.InstitutionID)
	if err == nil {
		resp.Institution = institutionToDTO(institution)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup institution")
	}

	return resp, nil
}

func (s *service) ListInstitutions(ctx context.Context) ([]InstitutionDTO, error) {
	institutions, err := s.catalog.ListInstitutions(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list institutions")
	}
	out := make([]InstitutionDTO, 0, len(institutions))
	for i := range institutions {
		out = append(out, *institutionToDTO(&institutions[i]))
	}
	return out, nil
}

func (s *service) ListProgrammes(ctx context.Context) ([]ProgrammeDTO, error) {
	programmes, err := s.catalog.ListProgrammes(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list programmes")
	}
	out := make([]ProgrammeDTO, 0, len(programmes))
	for i := range programmes {
		out = append(out, *programmeToDTO(&programmes[i]))
	}
	return out, nil
}

func (s *service) ListFundingOptions(ctx context.Context) ([]FundingOptionDTO, error) {
	options, err := s.catalog.ListFundingOptions(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list funding options")
	}
	out := make([]FundingOptionDTO, 0, len(options))
	for i := range options {
		out = append(out, *fundingOptionToDTO(&options[i]))
	}
	return out, nil
}
