package controllers

import (
	"net/http"

	"github.com/orienta-za/orienta-backend/api/responses"
	"github.com/orienta-za/orienta-backend/api/validators"
	"github.com/orienta-za/orienta-backend/internal/payments"
	pkgerrors "github.com/orienta-za/orienta-backend/pkg/errors"
	"github.com/orienta-za/orienta-backend/pkg/logger"
)

// PaymentsCreateCheckout starts a hosted checkout session for the unlock plans.
func PaymentsCreateCheckout(svc payments.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			err := pkgerrors.New(pkgerrors.CodeInternal, "payment service unavailable")
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		userID, _, err := actorFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body payments.CreateCheckoutRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.CreateCheckout(r.Context(), userID, body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}
