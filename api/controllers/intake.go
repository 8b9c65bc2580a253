package controllers

import (
	"net/http"

	"github.com/orienta-za/orienta-backend/api/responses"
	"github.com/orienta-za/orienta-backend/api/validators"
	"github.com/orienta-za/orienta-backend/internal/intake"
	pkgerrors "github.com/orienta-za/orienta-backend/pkg/errors"
	"github.com/orienta-za/orienta-backend/pkg/logger"
)

// IntakeStart wires the start/resume endpoint into the HTTP layer.
func IntakeStart(svc intake.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			err := pkgerrors.New(pkgerrors.CodeInternal, "intake service unavailable")
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		userID, role, err := actorFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.StartOrResume(r.Context(), userID, role)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}

// IntakeAnswer wires the answer-submission endpoint into the HTTP layer.
func IntakeAnswer(svc intake.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			err := pkgerrors.New(pkgerrors.CodeInternal, "intake service unavailable")
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		userID, _, err := actorFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body intake.AnswerRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Answer(r.Context(), userID, body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}

// IntakeQuestions serves the static question catalog.
func IntakeQuestions(svc intake.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			err := pkgerrors.New(pkgerrors.CodeInternal, "intake service unavailable")
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, svc.Questions(r.Context()))
	}
}
