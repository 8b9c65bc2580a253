package payments

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v84"

	"github.com/orienta-za/orienta-backend/pkg/db/models"
	"github.com/orienta-za/orienta-backend/pkg/enums"
	pkgerrors "github.com/orienta-za/orienta-backend/pkg/errors"
)

type stubTransactionRepo struct {
	succeeded bool
	created   []*models.PaymentTransaction
	createErr error
}

func (s *stubTransactionRepo) HasSucceeded(context.Context, uuid.UUID) (bool, error) {
	return s.succeeded, nil
}

func (s *stubTransactionRepo) Create(_ context.Context, transaction *models.PaymentTransaction) error {
	if s.createErr != nil {
		return s.createErr
	}
	s.created = append(s.created, transaction)
	return nil
}

type stubCheckoutClient struct {
	session *stripe.CheckoutSession
	err     error
	params  *stripe.CheckoutSessionParams
}

func (s *stubCheckoutClient) CreateCheckoutSession(_ context.Context, params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error) {
	s.params = params
	if s.err != nil {
		return nil, s.err
	}
	return s.session, nil
}

type stubEventRecorder struct {
	types []enums.EventType
}

func (s *stubEventRecorder) Record(_ context.Context, eventType enums.EventType, _ *uuid.UUID, _ map[string]any) {
	s.types = append(s.types, eventType)
}

func newTestService(t *testing.T, repo *stubTransactionRepo, checkout CheckoutClient, recorder *stubEventRecorder) Service {
	t.Helper()
	svc, err := NewService(ServiceParams{
		TransactionRepo: repo,
		Checkout:        checkout,
		Events:          recorder,
		BaseURL:         "https://orienta.example/",
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

func TestCreateCheckoutUnconfigured(t *testing.T) {
	svc := newTestService(t, &stubTransactionRepo{}, nil, &stubEventRecorder{})

	_, err := svc.CreateCheckout(context.Background(), uuid.New(), CreateCheckoutRequest{PlanType: "learner"})
	if err == nil {
		t.Fatalf("expected unconfigured error")
	}
	if code := errCode(t, err); code != pkgerrors.CodeInternal {
		t.Fatalf("expected internal error, got %s", code)
	}
}

func TestCreateCheckoutAlreadyUnlocked(t *testing.T) {
	repo := &stubTransactionRepo{succeeded: true}
	svc := newTestService(t, repo, &stubCheckoutClient{}, &stubEventRecorder{})

	_, err := svc.CreateCheckout(context.Background(), uuid.New(), CreateCheckoutRequest{PlanType: "learner"})
	if err == nil {
		t.Fatalf("expected already unlocked error")
	}
	if code := errCode(t, err); code != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %s", code)
	}
	if len(repo.created) != 0 {
		t.Fatalf("no transaction should be recorded")
	}
}

func TestCreateCheckoutInvalidPlan(t *testing.T) {
	svc := newTestService(t, &stubTransactionRepo{}, &stubCheckoutClient{}, &stubEventRecorder{})

	_, err := svc.CreateCheckout(context.Background(), uuid.New(), CreateCheckoutRequest{PlanType: "platinum"})
	if err == nil {
		t.Fatalf("expected invalid plan error")
	}
	if code := errCode(t, err); code != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %s", code)
	}
}

func TestCreateCheckoutProviderFailure(t *testing.T) {
	repo := &stubTransactionRepo{}
	checkout := &stubCheckoutClient{err: errors.New("stripe down")}
	svc := newTestService(t, repo, checkout, &stubEventRecorder{})

	_, err := svc.CreateCheckout(context.Background(), uuid.New(), CreateCheckoutRequest{PlanType: "learner"})
	if err == nil {
		t.Fatalf("expected provider error")
	}
	if code := errCode(t, err); code != pkgerrors.CodeInternal {
		t.Fatalf("expected internal error, got %s", code)
	}
	if len(repo.created) != 0 {
		t.Fatalf("no transaction should be recorded on provider failure")
	}
}

func TestCreateCheckoutRecordsInitiatedTransaction(t *testing.T) {
	userID := uuid.New()
	repo := &stubTransactionRepo{}
	checkout := &stubCheckoutClient{session: &stripe.CheckoutSession{
		ID:  "cs_test_123",
		URL: "https://checkout.stripe.com/c/pay/cs_test_123",
	}}
	recorder := &stubEventRecorder{}
	svc := newTestService(t, repo, checkout, recorder)

	resp, err := svc.CreateCheckout(context.Background(), userID, CreateCheckoutRequest{PlanType: "learner"})
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if resp.SessionID != "cs_test_123" || resp.CheckoutURL == "" {
		t.Fatalf("unexpected response %+v", resp)
	}

	if len(repo.created) != 1 {
		t.Fatalf("expected one transaction, got %d", len(repo.created))
	}
	tx := repo.created[0]
	if tx.Status != enums.PaymentStatusInitiated {
		t.Fatalf("expected initiated status, got %s", tx.Status)
	}
	if tx.AmountCents != 7900 {
		t.Fatalf("expected 7900 cents, got %d", tx.AmountCents)
	}
	if tx.Currency != "ZAR" {
		t.Fatalf("expected ZAR, got %s", tx.Currency)
	}
	if tx.ExternalRef == nil || *tx.ExternalRef != "cs_test_123" {
		t.Fatalf("expected external ref to carry the session id")
	}
	if tx.PlanType != enums.PlanTypeLearner {
		t.Fatalf("expected learner plan, got %s", tx.PlanType)
	}

	params := checkout.params
	if params == nil || len(params.LineItems) != 1 {
		t.Fatalf("expected one line item")
	}
	item := params.LineItems[0]
	if *item.PriceData.UnitAmount != 7900 {
		t.Fatalf("expected unit amount 7900, got %d", *item.PriceData.UnitAmount)
	}
	if *item.PriceData.Currency != "zar" {
		t.Fatalf("expected lowercase currency, got %s", *item.PriceData.Currency)
	}
	if *params.SuccessURL != "https://orienta.example/?session_id={CHECKOUT_SESSION_ID}" {
		t.Fatalf("unexpected success url %s", *params.SuccessURL)
	}
	if *params.CancelURL != "https://orienta.example/" {
		t.Fatalf("unexpected cancel url %s", *params.CancelURL)
	}

	if len(recorder.types) != 1 || recorder.types[0] != enums.EventTypeCheckoutCreated {
		t.Fatalf("expected checkout_created event, got %v", recorder.types)
	}
}

func TestCreateCheckoutDeletedUserReturnsNotFound(t *testing.T) {
	repo := &stubTransactionRepo{
		createErr: errors.New(`insert or update on table "payment_transactions" violates foreign key constraint "fk_payment_transactions_user"`),
	}
	checkout := &stubCheckoutClient{session: &stripe.CheckoutSession{ID: "cs_test_123", URL: "https://checkout.stripe.com/pay/cs_test_123"}}
	svc := newTestService(t, repo, checkout, &stubEventRecorder{})

	_, err := svc.CreateCheckout(context.Background(), uuid.New(), CreateCheckoutRequest{PlanType: "learner"})
	if err == nil {
		t.Fatal("expected error for deleted user")
	}
	if code := errCode(t, err); code != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %s", code)
	}
}

func TestPremiumPlanPricing(t *testing.T) {
	plan, ok := PlanFor(enums.PlanTypePremium)
	if !ok {
		t.Fatalf("expected premium plan")
	}
	if plan.AmountCents() != 12900 {
		t.Fatalf("expected 12900 cents, got %d", plan.AmountCents())
	}
}
