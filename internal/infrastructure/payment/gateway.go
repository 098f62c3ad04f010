package payment

import "context"

// OrderRequest describes a payment to collect. Amount is in the currency's
// minor units. Reference carries the appointment ID and is round-tripped
// through the provider so verification can locate the appointment.
type OrderRequest struct {
	Amount      int64
	Currency    string
	Reference   string
	Description string
	SuccessURL  string
	CancelURL   string
}

// Order is the provider-side handle for a created payment.
type Order struct {
	ID          string
	CheckoutURL string
	Amount      int64
	Currency    string
}

// Status is the provider's answer for a payment handle.
type Status struct {
	Paid      bool
	Reference string
}

// Gateway is a hosted payment provider. The two implementations (Razorpay
// orders, Stripe checkout sessions) are interchangeable behind this
// interface; callers perform no retries — a failed verification is reported
// and the client re-invokes it.
type Gateway interface {
	CreateOrder(ctx context.Context, req OrderRequest) (*Order, error)
	FetchStatus(ctx context.Context, handle string) (*Status, error)
}
