package intake

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/orienta-za/orienta-backend/internal/profiles"
	"github.com/orienta-za/orienta-backend/pkg/db"
	"github.com/orienta-za/orienta-backend/pkg/db/models"
	"github.com/orienta-za/orienta-backend/pkg/enums"
	pkgerrors "github.com/orienta-za/orienta-backend/pkg/errors"
)

// Service defines the behavior needed by the intake controller.
type Service interface {
	StartOrResume(ctx context.Context, userID uuid.UUID, role enums.UserRole) (*SessionDTO, error)
	Answer(ctx context.Context, userID uuid.UUID, req AnswerRequest) (*AnswerResponse, error)
	Questions(ctx context.Context) *QuestionsResponse
}

type sessionRepository interface {
	FindActive(ctx context.Context, userID uuid.UUID) (*models.IntakeSession, error)
	Create(ctx context.Context, userID uuid.UUID) (*models.IntakeSession, error)
	Save(ctx context.Context, session *models.IntakeSession) error
	SaveTx(ctx context.Context, tx *gorm.DB, session *models.IntakeSession) error
}

type profileRepository interface {
	ApplyIntakeTx(ctx context.Context, tx *gorm.DB, userID uuid.UUID, update profiles.IntakeUpdate) error
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type eventRecorder interface {
	Record(ctx context.Context, eventType enums.EventType, userID *uuid.UUID, payload map[string]any)
}

type service struct {
	sessions sessionRepository
	profiles profileRepository
	tx       txRunner
	events   eventRecorder
}

// ServiceParams bundles the dependencies required to build an intake service.
type ServiceParams struct {
	SessionRepo sessionRepository
	ProfileRepo profileRepository
	TxRunner    txRunner
	Events      eventRecorder
}

// NewService constructs an intake service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.SessionRepo == nil {
		return nil, fmt.Errorf("session repository is required")
	}
	if params.ProfileRepo == nil {
		return nil, fmt.Errorf("profile repository is required")
	}
	if params.TxRunner == nil {
		return nil, fmt.Errorf("transaction runner is required")
	}
	return &service{
		sessions: params.SessionRepo,
		profiles: params.ProfileRepo,
		tx:       params.TxRunner,
		events:   params.Events,
	}, nil
}

func (s *service) StartOrResume(ctx context.Context, userID uuid.UUID, role enums.UserRole) (*SessionDTO, error) {
	if role != enums.UserRoleLearner {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "only learners can take intake")
	}

	session, err := s.sessions.FindActive(ctx, userID)
	if err == nil {
		return sessionToDTO(session), nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup intake session")
	}

	session, err = s.sessions.Create(ctx, userID)
	if err != nil {
		// The partial unique index serializes concurrent starts; the loser
		// resumes the session the winner created.
		if db.IsUniqueViolation(err, "idx_intake_sessions_active_user") {
			existing, findErr := s.sessions.FindActive(ctx, userID)
			if findErr == nil {
				return sessionToDTO(existing), nil
			}
		}
		// A valid token for a deleted user fails the user_id foreign key.
		if db.IsForeignKeyViolation(err) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "user not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create intake session")
	}

	if s.events != nil {
		s.events.Record(ctx, enums.EventTypeIntakeStarted, &userID, map[string]any{
			"user_id": userID.String(),
		})
	}

	return sessionToDTO(session), nil
}

func (s *service) Answer(ctx context.Context, userID uuid.UUID, req AnswerRequest) (*AnswerResponse, error) {
	session, err := s.sessions.FindActive(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "no active intake session")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup intake session")
	}

	question, ok := QuestionByID(req.QuestionID)
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "question not found")
	}

	progress := float64(session.CurrentStep+1) / float64(QuestionCount) * 100

	session.Responses = append(session.Responses, models.IntakeResponse{
		QuestionID: question.ID,
		Question:   question.Text,
		Answer:     datatypes.JSON(req.Answer),
		Progress:   progress,
	})
	session.CurrentStep++

	if session.CurrentStep >= QuestionCount {
		if err := s.complete(ctx, session); err != nil {
			return nil, err
		}
	} else if err := s.sessions.Save(ctx, session); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "save intake session")
	}

	resp := &AnswerResponse{Session: sessionToDTO(session)}
	if next, ok := QuestionAt(session.CurrentStep); ok {
		dto := questionToDTO(next)
		resp.NextQuestion = &dto
	}
	return resp, nil
}

func (s *service) Questions(context.Context) *QuestionsResponse {
	catalog := Questions()
	out := make([]QuestionDTO, 0, len(catalog))
	for _, q := range catalog {
		out = append(out, questionToDTO(q))
	}
	return &QuestionsResponse{Questions: out}
}

// complete flips the session terminal and copies the answers onto the learner
// profile in one transaction.
func (s *service) complete(ctx context.Context, session *models.IntakeSession) error {
	session.Completed = true

	update := profiles.IntakeUpdate{}
	for _, response := range session.Responses {
		applyAnswer(&update, response.QuestionID, []byte(response.Answer))
	}

	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		if err := s.sessions.SaveTx(ctx, tx, session); err != nil {
			return err
		}
		return s.profiles.ApplyIntakeTx(ctx, tx, session.UserID, update)
	})
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "complete intake")
	}

	if s.events != nil {
		s.events.Record(ctx, enums.EventTypeIntakeCompleted, &session.UserID, map[string]any{
			"user_id": session.UserID.String(),
		})
	}
	return nil
}
