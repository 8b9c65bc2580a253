package auth

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/orienta-za/orienta-backend/internal/users"
	pkgAuth "github.com/orienta-za/orienta-backend/pkg/auth"
	"github.com/orienta-za/orienta-backend/pkg/config"
	"github.com/orienta-za/orienta-backend/pkg/db/models"
	"github.com/orienta-za/orienta-backend/pkg/enums"
	pkgerrors "github.com/orienta-za/orienta-backend/pkg/errors"
	"github.com/orienta-za/orienta-backend/pkg/security"
)

type stubUserRepo struct {
	byEmail map[string]*models.User
	byID    map[uuid.UUID]*models.User
	created []users.CreateUserDTO
}

func (s *stubUserRepo) CreateTx(_ context.Context, _ *gorm.DB, dto users.CreateUserDTO) (*models.User, error) {
	s.created = append(s.created, dto)
	user := &models.User{
		ID:           uuid.New(),
		Role:         dto.Role,
		Email:        dto.Email,
		PasswordHash: dto.PasswordHash,
	}
	return user, nil
}

func (s *stubUserRepo) FindByEmail(_ context.Context, email string) (*models.User, error) {
	if user, ok := s.byEmail[email]; ok {
		return user, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubUserRepo) FindByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	if user, ok := s.byID[id]; ok {
		return user, nil
	}
	return nil, gorm.ErrRecordNotFound
}

type stubProfileRepo struct {
	created  []uuid.UUID
	profiles map[uuid.UUID]*models.LearnerProfile
}

func (s *stubProfileRepo) CreateTx(_ context.Context, _ *gorm.DB, userID uuid.UUID) (*models.LearnerProfile, error) {
	s.created = append(s.created, userID)
	return &models.LearnerProfile{ID: uuid.New(), UserID: userID}, nil
}

func (s *stubProfileRepo) FindByUserID(_ context.Context, userID uuid.UUID) (*models.LearnerProfile, error) {
	if profile, ok := s.profiles[userID]; ok {
		return profile, nil
	}
	return nil, gorm.ErrRecordNotFound
}

type stubTxRunner struct{}

func (stubTxRunner) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return fn(nil)
}

type stubEventRecorder struct {
	types []enums.EventType
}

func (s *stubEventRecorder) Record(_ context.Context, eventType enums.EventType, _ *uuid.UUID, _ map[string]any) {
	s.types = append(s.types, eventType)
}

func errCode(t *testing.T, err error) pkgerrors.Code {
	t.Helper()
	appErr := pkgerrors.As(err)
	if appErr == nil {
		t.Fatalf("expected app error, got %v", err)
	}
	return appErr.Code()
}

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:            "test-secret",
		Issuer:            "orienta",
		ExpirationMinutes: 60,
	}
}

func newTestService(t *testing.T, userRepo *stubUserRepo, profileRepo *stubProfileRepo, recorder *stubEventRecorder) Service {
	t.Helper()
	svc, err := NewService(ServiceParams{
		UserRepo:    userRepo,
		ProfileRepo: profileRepo,
		TxRunner:    stubTxRunner{},
		Events:      recorder,
		JWTConfig:   testJWTConfig(),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return svc
}

func TestRegisterCreatesLearnerWithProfile(t *testing.T) {
	userRepo := &stubUserRepo{byEmail: map[string]*models.User{}}
	profileRepo := &stubProfileRepo{}
	recorder := &stubEventRecorder{}
	svc := newTestService(t, userRepo, profileRepo, recorder)

	resp, err := svc.Register(context.Background(), RegisterRequest{
		Email:    "Learner@Example.COM",
		Password: "sekret-password",
	})
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if resp.TokenType != "bearer" {
		t.Fatalf("expected bearer token type, got %q", resp.TokenType)
	}
	if resp.User.Email != "learner@example.com" {
		t.Fatalf("expected lowercased email, got %q", resp.User.Email)
	}
	if resp.User.Role != enums.UserRoleLearner {
		t.Fatalf("expected learner role default, got %q", resp.User.Role)
	}
	if len(profileRepo.created) != 1 {
		t.Fatalf("expected one learner profile, got %d", len(profileRepo.created))
	}
	if len(recorder.types) != 1 || recorder.types[0] != enums.EventTypeUserRegistered {
		t.Fatalf("expected user_registered event, got %v", recorder.types)
	}

	claims, err := pkgAuth.ParseAccessToken(testJWTConfig(), resp.AccessToken)
	if err != nil {
		t.Fatalf("expected parsable token, got %v", err)
	}
	if claims.UserID != resp.User.ID {
		t.Fatalf("token user id mismatch")
	}
	if claims.Role != enums.UserRoleLearner {
		t.Fatalf("token role mismatch: %q", claims.Role)
	}
}

func TestRegisterNonLearnerSkipsProfile(t *testing.T) {
	userRepo := &stubUserRepo{byEmail: map[string]*models.User{}}
	profileRepo := &stubProfileRepo{}
	svc := newTestService(t, userRepo, profileRepo, &stubEventRecorder{})

	_, err := svc.Register(context.Background(), RegisterRequest{
		Email:    "parent@example.com",
		Password: "sekret-password",
		Role:     "parent",
	})
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if len(profileRepo.created) != 0 {
		t.Fatalf("parent should not get a learner profile")
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	existing := &models.User{ID: uuid.New(), Email: "taken@example.com"}
	userRepo := &stubUserRepo{byEmail: map[string]*models.User{"taken@example.com": existing}}
	svc := newTestService(t, userRepo, &stubProfileRepo{}, &stubEventRecorder{})

	_, err := svc.Register(context.Background(), RegisterRequest{
		Email:    "taken@example.com",
		Password: "sekret-password",
	})
	if err == nil {
		t.Fatalf("expected duplicate email error")
	}
	if code := errCode(t, err); code != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %s", code)
	}
	if len(userRepo.created) != 0 {
		t.Fatalf("user should not be created")
	}
}

func TestLoginWrongPassword(t *testing.T) {
	hash, err := security.HashPassword("right-password", config.PasswordConfig{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	user := &models.User{
		ID:           uuid.New(),
		Role:         enums.UserRoleLearner,
		Email:        "learner@example.com",
		PasswordHash: hash,
	}
	userRepo := &stubUserRepo{byEmail: map[string]*models.User{user.Email: user}}
	svc := newTestService(t, userRepo, &stubProfileRepo{}, &stubEventRecorder{})

	_, err = svc.Login(context.Background(), LoginRequest{
		Email:    "learner@example.com",
		Password: "wrong-password",
	})
	if err == nil {
		t.Fatalf("expected invalid credentials")
	}
	if code := errCode(t, err); code != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized error, got %s", code)
	}
}

func TestLoginUnknownEmail(t *testing.T) {
	userRepo := &stubUserRepo{byEmail: map[string]*models.User{}}
	svc := newTestService(t, userRepo, &stubProfileRepo{}, &stubEventRecorder{})

	_, err := svc.Login(context.Background(), LoginRequest{
		Email:    "nobody@example.com",
		Password: "whatever",
	})
	if code := errCode(t, err); code != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized error, got %s", code)
	}
}

func TestLoginSuccess(t *testing.T) {
	hash, err := security.HashPassword("right-password", config.PasswordConfig{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	user := &models.User{
		ID:           uuid.New(),
		Role:         enums.UserRoleLearner,
		Email:        "learner@example.com",
		PasswordHash: hash,
	}
	userRepo := &stubUserRepo{byEmail: map[string]*models.User{user.Email: user}}
	svc := newTestService(t, userRepo, &stubProfileRepo{}, &stubEventRecorder{})

	resp, err := svc.Login(context.Background(), LoginRequest{
		Email:    "Learner@example.com",
		Password: "right-password",
	})
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if resp.AccessToken == "" {
		t.Fatalf("expected access token")
	}
}

func TestProfileAttachesLearnerProfile(t *testing.T) {
	user := &models.User{ID: uuid.New(), Role: enums.UserRoleLearner, Email: "learner@example.com"}
	profile := &models.LearnerProfile{ID: uuid.New(), UserID: user.ID, IntakeCompleted: true}
	userRepo := &stubUserRepo{byID: map[uuid.UUID]*models.User{user.ID: user}}
	profileRepo := &stubProfileRepo{profiles: map[uuid.UUID]*models.LearnerProfile{user.ID: profile}}
	svc := newTestService(t, userRepo, profileRepo, &stubEventRecorder{})

	resp, err := svc.Profile(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if resp.Profile == nil {
		t.Fatalf("expected profile attached")
	}
	if !resp.Profile.IntakeCompleted {
		t.Fatalf("expected intake_completed carried through")
	}
}

func TestProfileUnknownUser(t *testing.T) {
	svc := newTestService(t, &stubUserRepo{}, &stubProfileRepo{}, &stubEventRecorder{})

	_, err := svc.Profile(context.Background(), uuid.New())
	if err == nil {
		t.Fatalf("expected not found")
	}
	if code := errCode(t, err); code != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found error, got %s", code)
	}
}
