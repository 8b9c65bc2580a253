package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/orienta-za/orienta-backend/internal/profiles"
	"github.com/orienta-za/orienta-backend/internal/users"
	pkgAuth "github.com/orienta-za/orienta-backend/pkg/auth"
	"github.com/orienta-za/orienta-backend/pkg/config"
	"github.com/orienta-za/orienta-backend/pkg/db"
	"github.com/orienta-za/orienta-backend/pkg/db/models"
	"github.com/orienta-za/orienta-backend/pkg/enums"
	pkgerrors "github.com/orienta-za/orienta-backend/pkg/errors"
	"github.com/orienta-za/orienta-backend/pkg/security"
)

const (
	invalidCredentialsMessage = "invalid credentials"
	bearerTokenType           = "bearer"
)

// Service defines the behavior needed by the auth and profile controllers.
type Service interface {
	Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error)
	Login(ctx context.Context, req LoginRequest) (*AuthResponse, error)
	Profile(ctx context.Context, userID uuid.UUID) (*ProfileResponse, error)
}

type userRepository interface {
	CreateTx(ctx context.Context, tx *gorm.DB, dto users.CreateUserDTO) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

type profileRepository interface {
	CreateTx(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*models.LearnerProfile, error)
	FindByUserID(ctx context.Context, userID uuid.UUID) (*models.LearnerProfile, error)
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type eventRecorder interface {
	Record(ctx context.Context, eventType enums.EventType, userID *uuid.UUID, payload map[string]any)
}

type service struct {
	users    userRepository
	profiles profileRepository
	tx       txRunner
	events   eventRecorder
	pwCfg    config.PasswordConfig
	jwtCfg   config.JWTConfig
}

// ServiceParams bundles the dependencies required to build an auth service.
type ServiceParams struct {
	UserRepo       userRepository
	ProfileRepo    profileRepository
	TxRunner       txRunner
	Events         eventRecorder
	PasswordConfig config.PasswordConfig
	JWTConfig      config.JWTConfig
}

// NewService constructs an identity service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.UserRepo == nil {
		return nil, fmt.Errorf("user repository is required")
	}
	if params.ProfileRepo == nil {
		return nil, fmt.Errorf("profile repository is required")
	}
	if params.TxRunner == nil {
		return nil, fmt.Errorf("transaction runner is required")
	}
	return &service{
		users:    params.UserRepo,
		profiles: params.ProfileRepo,
		tx:       params.TxRunner,
		events:   params.Events,
		pwCfg:    params.PasswordConfig,
		jwtCfg:   params.JWTConfig,
	}, nil
}

func (s *service) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "email is required")
	}

	role := enums.UserRoleLearner
	if req.Role != "" {
		parsed, err := enums.ParseUserRole(req.Role)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid role")
		}
		role = parsed
	}

	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "email already registered")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup user")
	}

	hash, err := security.HashPassword(req.Password, s.pwCfg)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}

	var user *models.User
	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		created, err := s.users.CreateTx(ctx, tx, users.CreateUserDTO{
			Email:        email,
			PasswordHash: hash,
			Role:         role,
			Phone:        req.Phone,
			ConsentFlags: req.Consent,
		})
		if err != nil {
			return err
		}
		user = created

		if role == enums.UserRoleLearner {
			if _, err := s.profiles.CreateTx(ctx, tx, created.ID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		// The unique index on email closes the check-then-create race.
		if db.IsUniqueViolation(err, "idx_users_email") || db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "email already registered")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create user")
	}

	if s.events != nil {
		s.events.Record(ctx, enums.EventTypeUserRegistered, &user.ID, map[string]any{
			"user_id": user.ID.String(),
			"role":    string(user.Role),
		})
	}

	return s.issueToken(user)
}

func (s *service) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup user")
	}

	valid, err := security.VerifyPassword(req.Password, user.PasswordHash)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "verify password")
	}
	if !valid {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
	}

	return s.issueToken(user)
}

func (s *service) Profile(ctx context.Context, userID uuid.UUID) (*ProfileResponse, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup user")
	}

	resp := &ProfileResponse{User: users.FromModel(user)}

	if user.Role == enums.UserRoleLearner {
		profile, err := s.profiles.FindByUserID(ctx, user.ID)
		if err == nil {
			resp.Profile = profiles.FromModel(profile)
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup profile")
		}
	}

	return resp, nil
}

func (s *service) issueToken(user *models.User) (*AuthResponse, error) {
	token, err := pkgAuth.MintAccessToken(s.jwtCfg, time.Now().UTC(), pkgAuth.AccessTokenPayload{
		UserID: user.ID,
		Role:   user.Role,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint jwt")
	}

	return &AuthResponse{
		AccessToken: token,
		TokenType:   bearerTokenType,
		User:        users.FromModel(user),
	}, nil
}
