package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/orienta-za/orienta-backend/api/middleware"
	"github.com/orienta-za/orienta-backend/pkg/enums"
	pkgerrors "github.com/orienta-za/orienta-backend/pkg/errors"
)

// actorFromRequest resolves the authenticated user id and role seeded by the
// auth middleware.
func actorFromRequest(r *http.Request) (uuid.UUID, enums.UserRole, error) {
	raw := middleware.UserIDFromContext(r.Context())
	if raw == "" {
		return uuid.Nil, "", pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials")
	}

	userID, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, "", pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid user id")
	}

	role, err := enums.ParseUserRole(middleware.RoleFromContext(r.Context()))
	if err != nil {
		return uuid.Nil, "", pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid role")
	}

	return userID, role, nil
}
