package usecase

import (
	"context"
	"errors"

	"healthsphere-api/internal/converter"
	"healthsphere-api/internal/delivery/dto"
	"healthsphere-api/internal/delivery/http/middleware"
	"healthsphere-api/internal/domain/entity"
	"healthsphere-api/internal/domain/repository"
	"healthsphere-api/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrDoctorNotFound              = errors.New("doctor not found")
	ErrDoctorUnavailable           = errors.New("doctor is not available")
	ErrAppointmentNotFound         = errors.New("appointment not found")
	ErrNotAppointmentOwner         = errors.New("appointment does not belong to you")
	ErrAppointmentAlreadyCancelled = errors.New("appointment is already cancelled")
)

type PatientAppointmentUsecase interface {
	BookAppointment(ctx context.Context, req *dto.BookAppointmentRequest) (*dto.AppointmentResponse, error)
	CancelAppointment(ctx context.Context, appointmentID uuid.UUID) error
	GetMyAppointments(ctx context.Context) (*dto.AppointmentListResponse, error)
}

type patientAppointmentUsecase struct {
	db              *gorm.DB
	log             *logrus.Logger
	appointmentRepo repository.AppointmentRepository
	doctorRepo      repository.DoctorRepository
	userRepo        repository.UserRepository
	auditService    service.AuditService
}

func NewPatientAppointmentUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	appointmentRepo repository.AppointmentRepository,
	doctorRepo repository.DoctorRepository,
	userRepo repository.UserRepository,
	auditService service.AuditService,
) PatientAppointmentUsecase {
	return &patientAppointmentUsecase{
		db:              db,
		log:             log,
		appointmentRepo: appointmentRepo,
		doctorRepo:      doctorRepo,
		userRepo:        userRepo,
		auditService:    auditService,
	}
}

// BookAppointment reserves a slot in the doctor's ledger and creates the
// appointment record in the same transaction.
//
// Flow:
// 1. Lock the doctor row (availability check + ledger write must be atomic)
// 2. Verify the doctor accepts bookings
// 3. Reserve the slot (fails with entity.ErrSlotTaken when already booked)
// 4. Create the appointment with denormalized patient/doctor snapshots
// 5. Persist the updated ledger; commit both writes together
func (u *patientAppointmentUsecase) BookAppointment(ctx context.Context, req *dto.BookAppointmentRequest) (*dto.AppointmentResponse, error) {
	patientID, ok := middleware.GetSubjectIDFromContext(ctx)
	if !ok {
		return nil, errors.New("user not found in context")
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	doctor, err := u.doctorRepo.FindByIDForUpdate(tx, req.DoctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor %s: %+v", req.DoctorID, err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}
	if !doctor.IsAvailable() {
		return nil, ErrDoctorUnavailable
	}

	if err := doctor.SlotsBooked.Reserve(req.SlotDate, req.SlotTime); err != nil {
		return nil, err
	}

	patient, err := u.userRepo.FindByID(tx, patientID)
	if err != nil {
		u.log.Warnf("Failed to find patient %s: %+v", patientID, err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrUserNotFound
	}

	appointment := &entity.Appointment{
		PatientID:       patientID,
		DoctorID:        doctor.ID,
		SlotDate:        req.SlotDate,
		SlotTime:        req.SlotTime,
		PatientSnapshot: patient.Snapshot(),
		DoctorSnapshot:  doctor.Snapshot(),
		Amount:          doctor.Fees,
	}

	if err := u.appointmentRepo.Create(tx, appointment); err != nil {
		u.log.Warnf("Failed to create appointment: %+v", err)
		return nil, err
	}

	if err := u.doctorRepo.UpdateSlots(tx, doctor.ID, doctor.SlotsBooked); err != nil {
		u.log.Warnf("Failed to persist slot ledger for doctor %s: %+v", doctor.ID, err)
		return nil, err
	}

	if err := u.auditService.LogCreate(ctx, tx, &patientID, entity.AuditActionAppointmentBook, "appointment", appointment.ID.String(), converter.AppointmentToResponse(appointment)); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
		// Don't fail the transaction for audit log errors
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	u.log.Infof("Appointment booked: id=%s, doctor=%s, slot=%s %s", appointment.ID, doctor.ID, req.SlotDate, req.SlotTime)
	return converter.AppointmentToResponse(appointment), nil
}

// CancelAppointment soft-cancels the patient's own appointment and releases
// the slot back to the doctor's ledger. The appointment record is retained.
func (u *patientAppointmentUsecase) CancelAppointment(ctx context.Context, appointmentID uuid.UUID) error {
	patientID, ok := middleware.GetSubjectIDFromContext(ctx)
	if !ok {
		return errors.New("user not found in context")
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

	// Strict identity match, no admin override on this path
	if appointment.PatientID != patientID {
		return ErrNotAppointmentOwner
	}
	if appointment.Cancelled {
		return ErrAppointmentAlreadyCancelled
	}

	if err := releaseSlotTx(tx, u.log, u.appointmentRepo, u.doctorRepo, appointment); err != nil {
		return err
	}

	if err := u.auditService.LogUpdate(ctx, tx, &patientID, entity.AuditActionAppointmentCancel, "appointment", appointment.ID.String(), nil, nil); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}

	u.log.Infof("Appointment cancelled: id=%s, doctor=%s", appointmentID, appointment.DoctorID)
	return nil
}

// GetMyAppointments returns the logged-in patient's appointments, newest
// first, cancelled ones included.
func (u *patientAppointmentUsecase) GetMyAppointments(ctx context.Context) (*dto.AppointmentListResponse, error) {
	patientID, ok := middleware.GetSubjectIDFromContext(ctx)
	if !ok {
		return nil, errors.New("user not found in context")
	}

	appointments, err := u.appointmentRepo.FindByPatientID(u.db.WithContext(ctx), patientID)
	if err != nil {
		u.log.Warnf("Failed to find appointments for patient %s: %+v", patientID, err)
		return nil, err
	}

	return &dto.AppointmentListResponse{
		Appointments: converter.AppointmentsToResponses(appointments),
		Total:        len(appointments),
	}, nil
}

// releaseSlotTx marks the appointment cancelled and removes its slot from
// the doctor's ledger, all within the caller's transaction. The doctor row
// is locked so the release never clobbers a concurrent reservation. A slot
// already absent from the ledger is a no-op, not an error.
func releaseSlotTx(
	tx *gorm.DB,
	log *logrus.Logger,
	appointmentRepo repository.AppointmentRepository,
	doctorRepo repository.DoctorRepository,
	appointment *entity.Appointment,
) error {
	if err := appointmentRepo.UpdateByID(tx, appointment.ID, map[string]interface{}{"cancelled": true}); err != nil {
		log.Warnf("Failed to cancel appointment %s: %+v", appointment.ID, err)
		return err
	}

	doctor, err := doctorRepo.FindByIDForUpdate(tx, appointment.DoctorID)
	if err != nil {
		log.Warnf("Failed to find doctor %s: %+v", appointment.DoctorID, err)
		return err
	}
	if doctor == nil {
		// Doctor record gone; the appointment is still soft-cancelled
		return nil
	}

	doctor.SlotsBooked.Release(appointment.SlotDate, appointment.SlotTime)
	if err := doctorRepo.UpdateSlots(tx, doctor.ID, doctor.SlotsBooked); err != nil {
		log.Warnf("Failed to persist slot ledger for doctor %s: %+v", doctor.ID, err)
		return err
	}

	return nil
}
