package handler

import (
	"encoding/json"
	"net/http"

	"healthsphere-api/internal/delivery/dto"
	"healthsphere-api/internal/domain/entity"
	"healthsphere-api/internal/usecase"
	"healthsphere-api/pkg/response"
	"healthsphere-api/pkg/validator"
)

type PaymentHandler struct {
	paymentUsecase usecase.PaymentUsecase
	validator      *validator.CustomValidator
}

func NewPaymentHandler(paymentUsecase usecase.PaymentUsecase, validator *validator.CustomValidator) *PaymentHandler {
	return &PaymentHandler{
		paymentUsecase: paymentUsecase,
		validator:      validator,
	}
}

// CreateRazorpayOrder handles Razorpay order creation
// @Summary Create a Razorpay order
// @Description Create a gateway order for an appointment's fee
// @Tags Payments
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.CreatePaymentRequest true "Create Payment Request"
// @Success 201 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 502 {object} response.Response
// @Router /payments/razorpay [post]
func (h *PaymentHandler) CreateRazorpayOrder(w http.ResponseWriter, r *http.Request) {
	var req dto.CreatePaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	order, err := h.paymentUsecase.CreateRazorpayOrder(r.Context(), req.AppointmentID)
	if err != nil {
		h.writePaymentError(w, err, "Failed to create payment order")
		return
	}

	response.Success(w, http.StatusCreated, "Payment order created", order)
}

// VerifyRazorpayPayment handles Razorpay payment verification
// @Summary Verify a Razorpay payment
// @Description Confirm payment against the gateway's reported order status
// @Tags Payments
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.VerifyRazorpayRequest true "Verify Razorpay Request"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 502 {object} response.Response
// @Router /payments/razorpay/verify [post]
func (h *PaymentHandler) VerifyRazorpayPayment(w http.ResponseWriter, r *http.Request) {
	var req dto.VerifyRazorpayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	if err := h.paymentUsecase.VerifyRazorpayPayment(r.Context(), req.OrderID); err != nil {
		h.writePaymentError(w, err, "Failed to verify payment")
		return
	}

	response.Success(w, http.StatusOK, "Payment confirmed", nil)
}

// CreateStripeSession handles Stripe checkout session creation
// @Summary Create a Stripe checkout session
// @Description Create a hosted checkout session for an appointment's fee
// @Tags Payments
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.CreatePaymentRequest true "Create Payment Request"
// @Success 201 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 502 {object} response.Response
// @Router /payments/stripe [post]
func (h *PaymentHandler) CreateStripeSession(w http.ResponseWriter, r *http.Request) {
	var req dto.CreatePaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	session, err := h.paymentUsecase.CreateStripeSession(r.Context(), req.AppointmentID)
	if err != nil {
		h.writePaymentError(w, err, "Failed to create checkout session")
		return
	}

	response.Success(w, http.StatusCreated, "Checkout session created", session)
}

// VerifyStripePayment handles Stripe payment verification
// @Summary Verify a Stripe payment
// @Description Confirm payment against the gateway's reported session status
// @Tags Payments
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.VerifyStripeRequest true "Verify Stripe Request"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 502 {object} response.Response
// @Router /payments/stripe/verify [post]
func (h *PaymentHandler) VerifyStripePayment(w http.ResponseWriter, r *http.Request) {
	var req dto.VerifyStripeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	if err := h.paymentUsecase.VerifyStripePayment(r.Context(), req.SessionID); err != nil {
		h.writePaymentError(w, err, "Failed to verify payment")
		return
	}

	response.Success(w, http.StatusOK, "Payment confirmed", nil)
}

// writePaymentError maps payment usecase errors onto the response envelope.
func (h *PaymentHandler) writePaymentError(w http.ResponseWriter, err error, fallback string) {
	switch err {
	case usecase.ErrAppointmentNotFound:
		response.NotFound(w, "Appointment not found")
	case entity.ErrAppointmentCancelled:
		response.Conflict(w, "Appointment is cancelled")
	case usecase.ErrPaymentNotCompleted:
		response.BadRequest(w, "Payment not completed")
	case usecase.ErrGatewayUnavailable:
		response.ServiceUnavailable(w, "Payment gateway unavailable")
	default:
		response.InternalServerError(w, fallback)
	}
}
