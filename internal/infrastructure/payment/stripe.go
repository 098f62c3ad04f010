package payment

import (
	"context"
	"fmt"

	"healthsphere-api/config"

	stripe "github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/checkout/session"
)

type stripeGateway struct{}

// NewStripeGateway returns a Gateway backed by Stripe hosted checkout
// sessions.
func NewStripeGateway(cfg config.StripeConfig) Gateway {
	stripe.Key = cfg.SecretKey
	return &stripeGateway{}
}

func (g *stripeGateway) CreateOrder(ctx context.Context, req OrderRequest) (*Order, error) {
	params := &stripe.CheckoutSessionParams{
		Mode:              stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL:        stripe.String(req.SuccessURL),
		CancelURL:         stripe.String(req.CancelURL),
		ClientReferenceID: stripe.String(req.Reference),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency: stripe.String(req.Currency),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String(req.Description),
					},
					UnitAmount: stripe.Int64(req.Amount),
				},
				Quantity: stripe.Int64(1),
			},
		},
	}
	params.Context = ctx

	s, err := session.New(params)
	if err != nil {
		return nil, fmt.Errorf("stripe session create: %w", err)
	}

	return &Order{
		ID:          s.ID,
		CheckoutURL: s.URL,
		Amount:      req.Amount,
		Currency:    req.Currency,
	}, nil
}

func (g *stripeGateway) FetchStatus(ctx context.Context, handle string) (*Status, error) {
	params := &stripe.CheckoutSessionParams{}
	params.Context = ctx

	s, err := session.Get(handle, params)
	if err != nil {
		return nil, fmt.Errorf("stripe session get: %w", err)
	}

	return &Status{
		Paid:      s.PaymentStatus == stripe.CheckoutSessionPaymentStatusPaid,
		Reference: s.ClientReferenceID,
	}, nil
}
