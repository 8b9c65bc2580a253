package payments

// CreateCheckoutRequest is the payload accepted by the checkout endpoint.
type CreateCheckoutRequest struct {
	PlanType string `json:"plan_type" validate:"required"`
}

// CreateCheckoutResponse returns the provider-hosted checkout location.
type CreateCheckoutResponse struct {
	CheckoutURL string `json:"checkout_url"`
	SessionID   string `json:"session_id"`
}
