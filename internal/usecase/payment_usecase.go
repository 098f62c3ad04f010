package usecase

import (
	"context"
	"errors"
	"fmt"

	"healthsphere-api/internal/delivery/dto"
	"healthsphere-api/internal/delivery/http/middleware"
	"healthsphere-api/internal/domain/entity"
	"healthsphere-api/internal/domain/repository"
	"healthsphere-api/internal/infrastructure/payment"
	"healthsphere-api/internal/service"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrPaymentNotCompleted = errors.New("payment not completed")
	ErrGatewayUnavailable  = errors.New("payment gateway unavailable")
)

var minorUnitFactor = decimal.NewFromInt(100)

type PaymentUsecase interface {
	CreateRazorpayOrder(ctx context.Context, appointmentID uuid.UUID) (*dto.RazorpayOrderResponse, error)
	VerifyRazorpayPayment(ctx context.Context, orderID string) error
	CreateStripeSession(ctx context.Context, appointmentID uuid.UUID) (*dto.CheckoutSessionResponse, error)
	VerifyStripePayment(ctx context.Context, sessionID string) error
}

type paymentUsecase struct {
	db              *gorm.DB
	log             *logrus.Logger
	appointmentRepo repository.AppointmentRepository
	auditService    service.AuditService
	razorpay        payment.Gateway
	stripe          payment.Gateway
	currency        string
	frontendOrigin  string
}

func NewPaymentUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	appointmentRepo repository.AppointmentRepository,
	auditService service.AuditService,
	razorpayGateway payment.Gateway,
	stripeGateway payment.Gateway,
	currency string,
	frontendOrigin string,
) PaymentUsecase {
	return &paymentUsecase{
		db:              db,
		log:             log,
		appointmentRepo: appointmentRepo,
		auditService:    auditService,
		razorpay:        razorpayGateway,
		stripe:          stripeGateway,
		currency:        currency,
		frontendOrigin:  frontendOrigin,
	}
}

// CreateRazorpayOrder creates a gateway order for the appointment fee. The
// appointment ID rides along as the order receipt so verification can find
// it again.
func (u *paymentUsecase) CreateRazorpayOrder(ctx context.Context, appointmentID uuid.UUID) (*dto.RazorpayOrderResponse, error) {
	appointment, err := u.payableAppointment(ctx, appointmentID)
	if err != nil {
		return nil, err
	}

	order, err := u.razorpay.CreateOrder(ctx, payment.OrderRequest{
		Amount:    appointment.Amount.Mul(minorUnitFactor).IntPart(),
		Currency:  u.currency,
		Reference: appointment.ID.String(),
	})
	if err != nil {
		u.log.Errorf("Razorpay order create failed for appointment %s: %+v", appointmentID, err)
		return nil, ErrGatewayUnavailable
	}

	return &dto.RazorpayOrderResponse{
		OrderID:  order.ID,
		Amount:   order.Amount,
		Currency: order.Currency,
	}, nil
}

// VerifyRazorpayPayment fetches the order from the gateway and flips the
// payment flag when the gateway reports it paid. No retries; a failed
// verification leaves the flag untouched and the caller re-invokes.
func (u *paymentUsecase) VerifyRazorpayPayment(ctx context.Context, orderID string) error {
	status, err := u.razorpay.FetchStatus(ctx, orderID)
	if err != nil {
		u.log.Errorf("Razorpay order fetch failed for order %s: %+v", orderID, err)
		return ErrGatewayUnavailable
	}

	return u.confirmPayment(ctx, status)
}

// CreateStripeSession creates a hosted checkout session for the appointment
// fee, redirecting back to the configured frontend origin.
func (u *paymentUsecase) CreateStripeSession(ctx context.Context, appointmentID uuid.UUID) (*dto.CheckoutSessionResponse, error) {
	appointment, err := u.payableAppointment(ctx, appointmentID)
	if err != nil {
		return nil, err
	}

	order, err := u.stripe.CreateOrder(ctx, payment.OrderRequest{
		Amount:      appointment.Amount.Mul(minorUnitFactor).IntPart(),
		Currency:    u.currency,
		Reference:   appointment.ID.String(),
		Description: "Appointment Fees",
		SuccessURL:  fmt.Sprintf("%s/verify?success=true&appointmentId=%s", u.frontendOrigin, appointment.ID),
		CancelURL:   fmt.Sprintf("%s/verify?success=false&appointmentId=%s", u.frontendOrigin, appointment.ID),
	})
	if err != nil {
		u.log.Errorf("Stripe session create failed for appointment %s: %+v", appointmentID, err)
		return nil, ErrGatewayUnavailable
	}

	return &dto.CheckoutSessionResponse{
		SessionID:  order.ID,
		SessionURL: order.CheckoutURL,
	}, nil
}

// VerifyStripePayment retrieves the checkout session and flips the payment
// flag only when the gateway reports payment_status=paid. The client's own
// success flag is never trusted.
func (u *paymentUsecase) VerifyStripePayment(ctx context.Context, sessionID string) error {
	status, err := u.stripe.FetchStatus(ctx, sessionID)
	if err != nil {
		u.log.Errorf("Stripe session fetch failed for session %s: %+v", sessionID, err)
		return ErrGatewayUnavailable
	}

	return u.confirmPayment(ctx, status)
}

// payableAppointment loads an appointment that can still be paid for.
func (u *paymentUsecase) payableAppointment(ctx context.Context, appointmentID uuid.UUID) (*entity.Appointment, error) {
	appointment, err := u.appointmentRepo.FindByID(u.db.WithContext(ctx), appointmentID)
	if err != nil {
		u.log.Warnf("Failed to find appointment %s: %+v", appointmentID, err)
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}
	if appointment.Cancelled {
		return nil, entity.ErrAppointmentCancelled
	}
	return appointment, nil
}

// confirmPayment sets payment=true for the appointment referenced by the
// gateway status, gated on the gateway reporting paid and the appointment
// not being cancelled.
func (u *paymentUsecase) confirmPayment(ctx context.Context, status *payment.Status) error {
	if !status.Paid {
		return ErrPaymentNotCompleted
	}

	appointmentID, err := uuid.Parse(status.Reference)
	if err != nil {
		u.log.Warnf("Gateway returned malformed appointment reference %q: %+v", status.Reference, err)
		return ErrAppointmentNotFound
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	appointment, err := u.appointmentRepo.FindByID(tx, appointmentID)
	if err != nil {
		u.log.Warnf("Failed to find appointment %s: %+v", appointmentID, err)
		return err
	}
	if appointment == nil {
		return ErrAppointmentNotFound
	}

	if err := appointment.MarkPaid(); err != nil {
		return err
	}

	if err := u.appointmentRepo.UpdateByID(tx, appointment.ID, map[string]interface{}{"payment": true}); err != nil {
		u.log.Warnf("Failed to mark appointment %s paid: %+v", appointment.ID, err)
		return err
	}

	userID, _ := middleware.GetSubjectIDFromContext(ctx)
	if err := u.auditService.LogUpdate(ctx, tx, &userID, entity.AuditActionPaymentConfirm, "appointment", appointment.ID.String(), nil, nil); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}

	u.log.Infof("Payment confirmed: appointment=%s", appointment.ID)
	return nil
}
