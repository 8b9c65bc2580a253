package catalog

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/orienta-za/orienta-backend/pkg/db/models"
	"github.com/orienta-za/orienta-backend/pkg/enums"
	pkgerrors "github.com/orienta-za/orienta-backend/pkg/errors"
)

type stubCatalogRepo struct {
	programme    *models.Programme
	institutions map[uuid.UUID]*models.Institution
	listed       []models.Programme
}

func (s *stubCatalogRepo) FirstVisibleProgramme(context.Context) (*models.Programme, error) {
	if s.programme == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return s.programme, nil
}

func (s *stubCatalogRepo) FindInstitution(_ context.Context, id uuid.UUID) (*models.Institution, error) {
	if inst, ok := s.institutions[id]; ok {
		return inst, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubCatalogRepo) ListInstitutions(context.Context) ([]models.Institution, error) {
	out := make([]models.Institution, 0, len(s.institutions))
	for _, inst := range s.institutions {
		out = append(out, *inst)
	}
	return out, nil
}

func (s *stubCatalogRepo) ListProgrammes(context.Context) ([]models.Programme, error) {
	return s.listed, nil
}

func (s *stubCatalogRepo) ListFundingOptions(context.Context) ([]models.FundingOption, error) {
	return nil, nil
}

type stubProfileRepo struct {
	profiles map[uuid.UUID]*models.LearnerProfile
}

func (s *stubProfileRepo) FindByUserID(_ context.Context, userID uuid.UUID) (*models.LearnerProfile, error) {
	if profile, ok := s.profiles[userID]; ok {
		return profile, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func newTestService(t *testing.T, catalogRepo *stubCatalogRepo, profileRepo *stubProfileRepo) Service {
	t.Helper()
	svc, err := NewService(ServiceParams{
		CatalogRepo: catalogRepo,
		ProfileRepo: profileRepo,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return svc
}

func errCode(t *testing.T, err error) pkgerrors.Code {
	t.Helper()
	appErr := pkgerrors.As(err)
	if appErr == nil {
		t.Fatalf("expected app error, got %v", err)
	}
	return appErr.Code()
}

func TestPreviewRejectsNonLearner(t *testing.T) {
	svc := newTestService(t, &stubCatalogRepo{}, &stubProfileRepo{})

	_, err := svc.PreviewPathway(context.Background(), uuid.New(), enums.UserRoleTeacher)
	if err == nil {
		t.Fatalf("expected forbidden")
	}
	if code := errCode(t, err); code != pkgerrors.CodeForbidden {
		t.Fatalf("expected forbidden error, got %s", code)
	}
}

func TestPreviewRequiresCompletedIntake(t *testing.T) {
	userID := uuid.New()
	profileRepo := &stubProfileRepo{profiles: map[uuid.UUID]*models.LearnerProfile{
		userID: {UserID: userID, IntakeCompleted: false},
	}}
	svc := newTestService(t, &stubCatalogRepo{}, profileRepo)

	_, err := svc.PreviewPathway(context.Background(), userID, enums.UserRoleLearner)
	if err == nil {
		t.Fatalf("expected validation error")
	}
	if code := errCode(t, err); code != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %s", code)
	}
}

func TestPreviewMissingProfile(t *testing.T) {
	svc := newTestService(t, &stubCatalogRepo{}, &stubProfileRepo{})

	_, err := svc.PreviewPathway(context.Background(), uuid.New(), enums.UserRoleLearner)
	if err == nil {
		t.Fatalf("expected validation error")
	}
	if code := errCode(t, err); code != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %s", code)
	}
}

func TestPreviewNoProgrammes(t *testing.T) {
	userID := uuid.New()
	profileRepo := &stubProfileRepo{profiles: map[uuid.UUID]*models.LearnerProfile{
		userID: {UserID: userID, IntakeCompleted: true},
	}}
	svc := newTestService(t, &stubCatalogRepo{}, profileRepo)

	_, err := svc.PreviewPathway(context.Background(), userID, enums.UserRoleLearner)
	if err == nil {
		t.Fatalf("expected not found")
	}
	if code := errCode(t, err); code != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found error, got %s", code)
	}
}

func TestPreviewReturnsProgrammeWithInstitution(t *testing.T) {
	userID := uuid.New()
	institution := &models.Institution{
		ID:       uuid.New(),
		Name:     "University of the Witwatersrand",
		Type:     enums.InstitutionTypeUniversity,
		Province: "Gauteng",
		City:     "Johannesburg",
	}
	programme := &models.Programme{
		ID:            uuid.New(),
		InstitutionID: institution.ID,
		Title:         "Bachelor of Engineering in Electrical Engineering",
		Visible:       true,
	}
	catalogRepo := &stubCatalogRepo{
		programme:    programme,
		institutions: map[uuid.UUID]*models.Institution{institution.ID: institution},
	}
	profileRepo := &stubProfileRepo{profiles: map[uuid.UUID]*models.LearnerProfile{
		userID: {UserID: userID, IntakeCompleted: true},
	}}
	svc := newTestService(t, catalogRepo, profileRepo)

	resp, err := svc.PreviewPathway(context.Background(), userID, enums.UserRoleLearner)
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if !resp.PreviewOnly {
		t.Fatalf("expected preview_only true")
	}
	if resp.Message != previewMessage {
		t.Fatalf("unexpected message %q", resp.Message)
	}
	if resp.Programme == nil || resp.Programme.ID != programme.ID {
		t.Fatalf("expected programme in response")
	}
	if resp.Institution == nil || resp.Institution.Name != institution.Name {
		t.Fatalf("expected institution joined")
	}
}

func TestPreviewSurvivesMissingInstitution(t *testing.T) {
	userID := uuid.New()
	programme := &models.Programme{
		ID:            uuid.New(),
		InstitutionID: uuid.New(),
		Title:         "Bachelor of Commerce in Accounting",
		Visible:       true,
	}
	catalogRepo := &stubCatalogRepo{programme: programme}
	profileRepo := &stubProfileRepo{profiles: map[uuid.UUID]*models.LearnerProfile{
		userID: {UserID: userID, IntakeCompleted: true},
	}}
	svc := newTestService(t, catalogRepo, profileRepo)

	resp, err := svc.PreviewPathway(context.Background(), userID, enums.UserRoleLearner)
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if resp.Institution != nil {
		t.Fatalf("expected nil institution when lookup misses")
	}
}
