package dto

import "github.com/google/uuid"

// Request DTOs

type CreatePaymentRequest struct {
	AppointmentID uuid.UUID `json:"appointment_id" validate:"required"`
}

type VerifyRazorpayRequest struct {
	OrderID string `json:"order_id" validate:"required"`
}

type VerifyStripeRequest struct {
	SessionID string `json:"session_id" validate:"required"`
}

// Response DTOs

type RazorpayOrderResponse struct {
	OrderID  string `json:"order_id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

type CheckoutSessionResponse struct {
	SessionID  string `json:"session_id"`
	SessionURL string `json:"session_url"`
}
