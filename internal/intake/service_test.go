package intake

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/orienta-za/orienta-backend/internal/profiles"
	"github.com/orienta-za/orienta-backend/pkg/db/models"
	"github.com/orienta-za/orienta-backend/pkg/enums"
	pkgerrors "github.com/orienta-za/orienta-backend/pkg/errors"
)

type stubSessionRepo struct {
	active    *models.IntakeSession
	created   int
	createErr error
	saved     *models.IntakeSession
	savedTx   *models.IntakeSession
}

func (s *stubSessionRepo) FindActive(_ context.Context, userID uuid.UUID) (*models.IntakeSession, error) {
	if s.active != nil && s.active.UserID == userID && !s.active.Completed {
		return s.active, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubSessionRepo) Create(_ context.Context, userID uuid.UUID) (*models.IntakeSession, error) {
	s.created++
	if s.createErr != nil {
		return nil, s.createErr
	}
	s.active = &models.IntakeSession{
		ID:        uuid.New(),
		UserID:    userID,
		Responses: models.IntakeResponses{},
		CreatedAt: time.Now().UTC(),
	}
	return s.active, nil
}

func (s *stubSessionRepo) Save(_ context.Context, session *models.IntakeSession) error {
	s.saved = session
	return nil
}

func (s *stubSessionRepo) SaveTx(_ context.Context, _ *gorm.DB, session *models.IntakeSession) error {
	s.savedTx = session
	return nil
}

type stubProfileRepo struct {
	applied *profiles.IntakeUpdate
	userID  uuid.UUID
}

func (s *stubProfileRepo) ApplyIntakeTx(_ context.Context, _ *gorm.DB, userID uuid.UUID, update profiles.IntakeUpdate) error {
	s.applied = &update
	s.userID = userID
	return nil
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

func newTestService(t *testing.T, sessions *stubSessionRepo, profileRepo *stubProfileRepo, recorder *stubEventRecorder) Service {
	t.Helper()
	svc, err := NewService(ServiceParams{
		SessionRepo: sessions,
		ProfileRepo: profileRepo,
		TxRunner:    stubTxRunner{},
		Events:      recorder,
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

func TestStartCreatesSessionForLearner(t *testing.T) {
	sessions := &stubSessionRepo{}
	recorder := &stubEventRecorder{}
	svc := newTestService(t, sessions, &stubProfileRepo{}, recorder)

	userID := uuid.New()
	session, err := svc.StartOrResume(context.Background(), userID, enums.UserRoleLearner)
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if session.CurrentStep != 0 || session.Completed {
		t.Fatalf("expected fresh session, got step=%d completed=%v", session.CurrentStep, session.Completed)
	}
	if sessions.created != 1 {
		t.Fatalf("expected one create, got %d", sessions.created)
	}
	if len(recorder.types) != 1 || recorder.types[0] != enums.EventTypeIntakeStarted {
		t.Fatalf("expected intake_started event, got %v", recorder.types)
	}
}

func TestStartDeletedUserReturnsNotFound(t *testing.T) {
	sessions := &stubSessionRepo{
		createErr: errors.New(`insert or update on table "intake_sessions" violates foreign key constraint "fk_intake_sessions_user"`),
	}
	svc := newTestService(t, sessions, &stubProfileRepo{}, &stubEventRecorder{})

	_, err := svc.StartOrResume(context.Background(), uuid.New(), enums.UserRoleLearner)
	if err == nil {
		t.Fatal("expected error for deleted user")
	}
	if code := errCode(t, err); code != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %s", code)
	}
}

func TestStartResumesExistingSession(t *testing.T) {
	userID := uuid.New()
	sessions := &stubSessionRepo{active: &models.IntakeSession{
		ID:          uuid.New(),
		UserID:      userID,
		CurrentStep: 3,
	}}
	recorder := &stubEventRecorder{}
	svc := newTestService(t, sessions, &stubProfileRepo{}, recorder)

	session, err := svc.StartOrResume(context.Background(), userID, enums.UserRoleLearner)
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if session.CurrentStep != 3 {
		t.Fatalf("expected resumed session at step 3, got %d", session.CurrentStep)
	}
	if sessions.created != 0 {
		t.Fatalf("resume should not create a session")
	}
	if len(recorder.types) != 0 {
		t.Fatalf("resume should not emit events")
	}
}

func TestStartRejectsNonLearner(t *testing.T) {
	svc := newTestService(t, &stubSessionRepo{}, &stubProfileRepo{}, &stubEventRecorder{})

	_, err := svc.StartOrResume(context.Background(), uuid.New(), enums.UserRoleParent)
	if err == nil {
		t.Fatalf("expected forbidden")
	}
	if code := errCode(t, err); code != pkgerrors.CodeForbidden {
		t.Fatalf("expected forbidden error, got %s", code)
	}
}

func TestAnswerWithoutSession(t *testing.T) {
	svc := newTestService(t, &stubSessionRepo{}, &stubProfileRepo{}, &stubEventRecorder{})

	_, err := svc.Answer(context.Background(), uuid.New(), AnswerRequest{
		QuestionID: "grade",
		Answer:     json.RawMessage(`"Grade 12"`),
	})
	if err == nil {
		t.Fatalf("expected not found")
	}
	if code := errCode(t, err); code != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found error, got %s", code)
	}
}

func TestAnswerUnknownQuestion(t *testing.T) {
	userID := uuid.New()
	sessions := &stubSessionRepo{active: &models.IntakeSession{ID: uuid.New(), UserID: userID}}
	svc := newTestService(t, sessions, &stubProfileRepo{}, &stubEventRecorder{})

	_, err := svc.Answer(context.Background(), userID, AnswerRequest{
		QuestionID: "favourite_colour",
		Answer:     json.RawMessage(`"blue"`),
	})
	if err == nil {
		t.Fatalf("expected not found")
	}
	if code := errCode(t, err); code != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found error, got %s", code)
	}
}

func TestAnswerAdvancesStepAndProgress(t *testing.T) {
	userID := uuid.New()
	sessions := &stubSessionRepo{active: &models.IntakeSession{ID: uuid.New(), UserID: userID}}
	svc := newTestService(t, sessions, &stubProfileRepo{}, &stubEventRecorder{})

	resp, err := svc.Answer(context.Background(), userID, AnswerRequest{
		QuestionID: "grade",
		Answer:     json.RawMessage(`"Grade 12"`),
	})
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if resp.Session.CurrentStep != 1 {
		t.Fatalf("expected step 1, got %d", resp.Session.CurrentStep)
	}
	if len(resp.Session.Responses) != 1 {
		t.Fatalf("expected one response, got %d", len(resp.Session.Responses))
	}
	got := resp.Session.Responses[0].Progress
	want := float64(1) / float64(QuestionCount) * 100
	if got != want {
		t.Fatalf("expected progress %.4f, got %.4f", want, got)
	}
	if resp.NextQuestion == nil || resp.NextQuestion.ID != "province" {
		t.Fatalf("expected province as next question, got %+v", resp.NextQuestion)
	}
	if sessions.saved == nil {
		t.Fatalf("expected session persisted")
	}
}

func TestFullWalkCompletesAndCopiesProfile(t *testing.T) {
	userID := uuid.New()
	sessions := &stubSessionRepo{active: &models.IntakeSession{ID: uuid.New(), UserID: userID}}
	profileRepo := &stubProfileRepo{}
	recorder := &stubEventRecorder{}
	svc := newTestService(t, sessions, profileRepo, recorder)

	answers := map[string]json.RawMessage{
		"grade":     json.RawMessage(`"Grade 12"`),
		"province":  json.RawMessage(`"Gauteng"`),
		"subjects":  json.RawMessage(`{"Mathematics": 6, "English": 5}`),
		"interests": json.RawMessage(`["Engineering", "Technology"]`),
		"budget":    json.RawMessage(`"R20,000 - R50,000"`),
		"location":  json.RawMessage(`"Same province"`),
		"fields":    json.RawMessage(`["Engineering", "Science & Technology"]`),
	}

	var last *AnswerResponse
	for _, q := range Questions() {
		resp, err := svc.Answer(context.Background(), userID, AnswerRequest{
			QuestionID: q.ID,
			Answer:     answers[q.ID],
		})
		if err != nil {
			t.Fatalf("answer %s: %v", q.ID, err)
		}
		last = resp
	}

	if !last.Session.Completed {
		t.Fatalf("expected completed session")
	}
	if last.Session.CurrentStep != QuestionCount {
		t.Fatalf("expected step %d, got %d", QuestionCount, last.Session.CurrentStep)
	}
	if last.NextQuestion != nil {
		t.Fatalf("expected no next question after completion")
	}
	if last.Session.Responses[len(last.Session.Responses)-1].Progress != 100 {
		t.Fatalf("expected final progress 100")
	}

	if sessions.savedTx == nil {
		t.Fatalf("expected completion saved inside transaction")
	}
	if profileRepo.applied == nil {
		t.Fatalf("expected profile update applied")
	}
	if profileRepo.userID != userID {
		t.Fatalf("profile update applied to wrong user")
	}
	if string(profileRepo.applied.GradeLevel) != `"Grade 12"` {
		t.Fatalf("expected grade copied verbatim, got %s", profileRepo.applied.GradeLevel)
	}
	if profileRepo.applied.Constraints["fees_band"] != "R20,000 - R50,000" {
		t.Fatalf("expected budget under constraints.fees_band, got %v", profileRepo.applied.Constraints["fees_band"])
	}
	if profileRepo.applied.Constraints["distance_km"] != "Same province" {
		t.Fatalf("expected location under constraints.distance_km, got %v", profileRepo.applied.Constraints["distance_km"])
	}

	if len(recorder.types) != 1 || recorder.types[0] != enums.EventTypeIntakeCompleted {
		t.Fatalf("expected intake_completed event, got %v", recorder.types)
	}
}

func TestQuestionsListsFullCatalog(t *testing.T) {
	svc := newTestService(t, &stubSessionRepo{}, &stubProfileRepo{}, &stubEventRecorder{})

	resp := svc.Questions(context.Background())
	if len(resp.Questions) != QuestionCount {
		t.Fatalf("expected %d questions, got %d", QuestionCount, len(resp.Questions))
	}
	if resp.Questions[0].ID != "grade" || resp.Questions[QuestionCount-1].ID != "fields" {
		t.Fatalf("unexpected catalog order")
	}
	if resp.Questions[2].Type != enums.QuestionTypeSubjects {
		t.Fatalf("expected subjects question type, got %s", resp.Questions[2].Type)
	}
}
