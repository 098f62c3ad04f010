package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"healthsphere-api/internal/delivery/dto"
	"healthsphere-api/internal/domain/entity"
	"healthsphere-api/internal/usecase"
	"healthsphere-api/pkg/validator"

	"github.com/google/uuid"
)

type stubPaymentUsecase struct {
	orderResult   *dto.RazorpayOrderResponse
	sessionResult *dto.CheckoutSessionResponse
	err           error
}

func (s *stubPaymentUsecase) CreateRazorpayOrder(ctx context.Context, appointmentID uuid.UUID) (*dto.RazorpayOrderResponse, error) {
	return s.orderResult, s.err
}

func (s *stubPaymentUsecase) VerifyRazorpayPayment(ctx context.Context, orderID string) error {
	return s.err
}

func (s *stubPaymentUsecase) CreateStripeSession(ctx context.Context, appointmentID uuid.UUID) (*dto.CheckoutSessionResponse, error) {
	return s.sessionResult, s.err
}

func (s *stubPaymentUsecase) VerifyStripePayment(ctx context.Context, sessionID string) error {
	return s.err
}

func TestCreateRazorpayOrder(t *testing.T) {
	body := func() *bytes.Buffer {
		raw, _ := json.Marshal(dto.CreatePaymentRequest{AppointmentID: uuid.New()})
		return bytes.NewBuffer(raw)
	}

	tests := []struct {
		name       string
		stub       *stubPaymentUsecase
		wantStatus int
	}{
		{
			name:       "order created",
			stub:       &stubPaymentUsecase{orderResult: &dto.RazorpayOrderResponse{OrderID: "order_123", Amount: 50000, Currency: "INR"}},
			wantStatus: http.StatusCreated,
		},
		{
			name:       "appointment not found",
			stub:       &stubPaymentUsecase{err: usecase.ErrAppointmentNotFound},
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "appointment cancelled",
			stub:       &stubPaymentUsecase{err: entity.ErrAppointmentCancelled},
			wantStatus: http.StatusConflict,
		},
		{
			name:       "gateway unreachable",
			stub:       &stubPaymentUsecase{err: usecase.ErrGatewayUnavailable},
			wantStatus: http.StatusBadGateway,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewPaymentHandler(tt.stub, validator.NewValidator())

			req := httptest.NewRequest(http.MethodPost, "/api/v1/payments/razorpay", body())
			rec := httptest.NewRecorder()
			h.CreateRazorpayOrder(rec, req)

			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
		})
	}
}

func TestVerifyPayment(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"payment confirmed", nil, http.StatusOK},
		{"gateway reports unpaid", usecase.ErrPaymentNotCompleted, http.StatusBadRequest},
		{"cancelled before confirmation", entity.ErrAppointmentCancelled, http.StatusConflict},
		{"gateway unreachable", usecase.ErrGatewayUnavailable, http.StatusBadGateway},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewPaymentHandler(&stubPaymentUsecase{err: tt.err}, validator.NewValidator())

			raw, _ := json.Marshal(dto.VerifyStripeRequest{SessionID: "cs_test_123"})
			req := httptest.NewRequest(http.MethodPost, "/api/v1/payments/stripe/verify", bytes.NewBuffer(raw))
			rec := httptest.NewRecorder()
			h.VerifyStripePayment(rec, req)

			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
		})
	}
}
