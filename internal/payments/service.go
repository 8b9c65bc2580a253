package payments

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v84"

	"github.com/orienta-za/orienta-backend/pkg/db"
	"github.com/orienta-za/orienta-backend/pkg/db/models"
	"github.com/orienta-za/orienta-backend/pkg/enums"
	pkgerrors "github.com/orienta-za/orienta-backend/pkg/errors"
	"github.com/orienta-za/orienta-backend/pkg/logger"
)

const providerStripe = "stripe"

// Service defines the behavior needed by the payments controller.
type Service interface {
	CreateCheckout(ctx context.Context, userID uuid.UUID, req CreateCheckoutRequest) (*CreateCheckoutResponse, error)
}

type transactionRepository interface {
	HasSucceeded(ctx context.Context, userID uuid.UUID) (bool, error)
	Create(ctx context.Context, transaction *models.PaymentTransaction) error
}

type eventRecorder interface {
	Record(ctx context.Context, eventType enums.EventType, userID *uuid.UUID, payload map[string]any)
}

type service struct {
	transactions transactionRepository
	checkout     CheckoutClient
	events       eventRecorder
	logg         *logger.Logger
	baseURL      string
}

// ServiceParams bundles the dependencies required to build a payment service.
// Checkout may be nil, in which case every request fails as unconfigured.
type ServiceParams struct {
	TransactionRepo transactionRepository
	Checkout        CheckoutClient
	Events          eventRecorder
	Logger          *logger.Logger
	BaseURL         string
}

// NewService constructs a payment service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.TransactionRepo == nil {
		return nil, fmt.Errorf("transaction repository is required")
	}
	return &service{
		transactions: params.TransactionRepo,
		checkout:     params.Checkout,
		events:       params.Events,
		logg:         params.Logger,
		baseURL:      strings.TrimRight(params.BaseURL, "/"),
	}, nil
}

func (s *service) CreateCheckout(ctx context.Context, userID uuid.UUID, req CreateCheckoutRequest) (*CreateCheckoutResponse, error) {
	if s.checkout == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "payment system not configured")
	}

	unlocked, err := s.transactions.HasSucceeded(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup transactions")
	}
	if unlocked {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "access already unlocked")
	}

	planType, err := enums.ParsePlanType(req.PlanType)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid plan type")
	}
	plan, ok := PlanFor(planType)
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid plan type")
	}

	session, err := s.checkout.CreateCheckoutSession(ctx, s.buildSessionParams(userID, plan))
	if err != nil {
		if s.logg != nil {
			s.logg.Error(ctx, "checkout session creation failed", err)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to create payment session")
	}

	externalRef := session.ID
	transaction := &models.PaymentTransaction{
		UserID:      userID,
		Provider:    providerStripe,
		AmountCents: plan.AmountCents(),
		Currency:    plan.Currency,
		Status:      enums.PaymentStatusInitiated,
		ExternalRef: &externalRef,
		PlanType:    plan.Type,
	}
	if err := s.transactions.Create(ctx, transaction); err != nil {
		// A valid token for a deleted user fails the user_id foreign key.
		if db.IsForeignKeyViolation(err) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "user not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "record transaction")
	}

	if s.events != nil {
		s.events.Record(ctx, enums.EventTypeCheckoutCreated, &userID, map[string]any{
			"user_id":   userID.String(),
			"plan_type": string(plan.Type),
			"session":   session.ID,
		})
	}

	return &CreateCheckoutResponse{
		CheckoutURL: session.URL,
		SessionID:   session.ID,
	}, nil
}

func (s *service) buildSessionParams(userID uuid.UUID, plan Plan) *stripe.CheckoutSessionParams {
	return &stripe.CheckoutSessionParams{
		Mode: stripe.String(string(stripe.CheckoutSessionModePayment)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				Quantity: stripe.Int64(1),
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency:   stripe.String(strings.ToLower(plan.Currency)),
					UnitAmount: stripe.Int64(plan.AmountCents()),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String(plan.Name),
					},
				},
			},
		},
		SuccessURL:        stripe.String(s.baseURL + "/?session_id={CHECKOUT_SESSION_ID}"),
		CancelURL:         stripe.String(s.baseURL + "/"),
		ClientReferenceID: stripe.String(userID.String()),
		Metadata: map[string]string{
			"user_id":   userID.String(),
			"plan_type": string(plan.Type),
		},
	}
}
