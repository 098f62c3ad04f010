package payment

import (
	"context"
	"fmt"

	"healthsphere-api/config"

	razorpay "github.com/razorpay/razorpay-go"
)

type razorpayGateway struct {
	client *razorpay.Client
}

// NewRazorpayGateway returns a Gateway backed by Razorpay orders.
func NewRazorpayGateway(cfg config.RazorpayConfig) Gateway {
	return &razorpayGateway{
		client: razorpay.NewClient(cfg.KeyID, cfg.KeySecret),
	}
}

func (g *razorpayGateway) CreateOrder(ctx context.Context, req OrderRequest) (*Order, error) {
	data := map[string]interface{}{
		"amount":   req.Amount,
		"currency": req.Currency,
		"receipt":  req.Reference,
	}

	body, err := g.client.Order.Create(data, nil)
	if err != nil {
		return nil, fmt.Errorf("razorpay order create: %w", err)
	}

	orderID, ok := body["id"].(string)
	if !ok || orderID == "" {
		return nil, fmt.Errorf("razorpay order create: missing order id in response")
	}

	return &Order{
		ID:       orderID,
		Amount:   req.Amount,
		Currency: req.Currency,
	}, nil
}

func (g *razorpayGateway) FetchStatus(ctx context.Context, handle string) (*Status, error) {
	body, err := g.client.Order.Fetch(handle, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("razorpay order fetch: %w", err)
	}

	status, _ := body["status"].(string)
	receipt, _ := body["receipt"].(string)

	return &Status{
		Paid:      status == "paid",
		Reference: receipt,
	}, nil
}
