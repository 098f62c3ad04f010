package usecase

import (
	"context"
	"errors"
	"fmt"

	"healthsphere-api/internal/converter"
	"healthsphere-api/internal/delivery/dto"
	"healthsphere-api/internal/delivery/http/middleware"
	"healthsphere-api/internal/domain/entity"
	"healthsphere-api/internal/domain/repository"
	"healthsphere-api/internal/service"
	"healthsphere-api/pkg/jwt"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type DoctorUsecase interface {
	Login(ctx context.Context, req *dto.DoctorLoginRequest) (*dto.TokenResponse, error)
	GetAllDoctors(ctx context.Context) (*dto.DoctorListResponse, error)
	GetProfile(ctx context.Context) (*dto.DoctorResponse, error)
	UpdateProfile(ctx context.Context, req *dto.UpdateDoctorProfileRequest) (*dto.DoctorResponse, error)
	ToggleAvailability(ctx context.Context) error
	GetMyAppointments(ctx context.Context) (*dto.AppointmentListResponse, error)
	CompleteAppointment(ctx context.Context, appointmentID uuid.UUID) error
	CancelAppointment(ctx context.Context, appointmentID uuid.UUID) error
	GetDashboard(ctx context.Context) (*dto.DoctorDashboardResponse, error)
}

type doctorUsecase struct {
	db              *gorm.DB
	log             *logrus.Logger
	doctorRepo      repository.DoctorRepository
	appointmentRepo repository.AppointmentRepository
	auditService    service.AuditService
	jwtService      *jwt.JWTService
	redisClient     *redis.Client
}

func NewDoctorUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	doctorRepo repository.DoctorRepository,
	appointmentRepo repository.AppointmentRepository,
	auditService service.AuditService,
	jwtService *jwt.JWTService,
	redisClient *redis.Client,
) DoctorUsecase {
	return &doctorUsecase{
		db:              db,
		log:             log,
		doctorRepo:      doctorRepo,
		appointmentRepo: appointmentRepo,
		auditService:    auditService,
		jwtService:      jwtService,
		redisClient:     redisClient,
	}
}

// Login authenticates a doctor with their own credentials, separate from
// patient accounts.
func (u *doctorUsecase) Login(ctx context.Context, req *dto.DoctorLoginRequest) (*dto.TokenResponse, error) {
	doctor, err := u.doctorRepo.FindByEmail(u.db.WithContext(ctx), req.Email)
	if err != nil {
		u.log.Warnf("Failed to find doctor by email: %+v", err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(doctor.Password), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return issueTokensFor(ctx, u.log, u.jwtService, u.redisClient, doctor.ID, doctor.Email, entity.RoleIDDoctor)
}

// GetAllDoctors is the public listing. Emails are withheld; the ledger is
// included so clients can grey out taken slots.
func (u *doctorUsecase) GetAllDoctors(ctx context.Context) (*dto.DoctorListResponse, error) {
	doctors, err := u.doctorRepo.FindAll(u.db.WithContext(ctx))
	if err != nil {
		u.log.Warnf("Failed to list doctors: %+v", err)
		return nil, err
	}

	return &dto.DoctorListResponse{
		Doctors: converter.DoctorsToPublicResponses(doctors),
		Total:   len(doctors),
	}, nil
}

func (u *doctorUsecase) GetProfile(ctx context.Context) (*dto.DoctorResponse, error) {
	doctorID, ok := middleware.GetSubjectIDFromContext(ctx)
	if !ok {
		return nil, errors.New("doctor not found in context")
	}

	doctor, err := u.doctorRepo.FindByID(u.db.WithContext(ctx), doctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor %s: %+v", doctorID, err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	return converter.DoctorToResponse(doctor), nil
}

func (u *doctorUsecase) UpdateProfile(ctx context.Context, req *dto.UpdateDoctorProfileRequest) (*dto.DoctorResponse, error) {
	doctorID, ok := middleware.GetSubjectIDFromContext(ctx)
	if !ok {
		return nil, errors.New("doctor not found in context")
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	doctor, err := u.doctorRepo.FindByID(tx, doctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor %s: %+v", doctorID, err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	if req.Fees != nil {
		doctor.Fees = *req.Fees
	}
	if req.About != nil {
		doctor.About = *req.About
	}
	if req.Address != nil {
		doctor.Address = entity.JSON(req.Address)
	}
	if req.Available != nil {
		doctor.Available = req.Available
	}

	if err := u.doctorRepo.Update(tx, doctor); err != nil {
		u.log.Warnf("Failed to update doctor %s: %+v", doctorID, err)
		return nil, err
	}

	if err := u.auditService.LogUpdate(ctx, tx, &doctorID, entity.AuditActionDoctorUpdate, "doctor", doctorID.String(), nil, req); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.DoctorToResponse(doctor), nil
}

// ToggleAvailability flips the doctor's availability flag. While false,
// every booking attempt fails regardless of ledger state.
func (u *doctorUsecase) ToggleAvailability(ctx context.Context) error {
	doctorID, ok := middleware.GetSubjectIDFromContext(ctx)
	if !ok {
		return errors.New("doctor not found in context")
	}

	return toggleAvailabilityTx(ctx, u.db, u.log, u.doctorRepo, u.auditService, doctorID, doctorID)
}

func (u *doctorUsecase) GetMyAppointments(ctx context.Context) (*dto.AppointmentListResponse, error) {
	doctorID, ok := middleware.GetSubjectIDFromContext(ctx)
	if !ok {
		return nil, errors.New("doctor not found in context")
	}

	appointments, err := u.appointmentRepo.FindByDoctorID(u.db.WithContext(ctx), doctorID)
	if err != nil {
		u.log.Warnf("Failed to find appointments for doctor %s: %+v", doctorID, err)
		return nil, err
	}

	return &dto.AppointmentListResponse{
		Appointments: converter.AppointmentsToResponses(appointments),
		Total:        len(appointments),
	}, nil
}

// CompleteAppointment marks one of the doctor's own appointments completed.
// The flag is independent from cancellation in the data model.
func (u *doctorUsecase) CompleteAppointment(ctx context.Context, appointmentID uuid.UUID) error {
	doctorID, ok := middleware.GetSubjectIDFromContext(ctx)
	if !ok {
		return errors.New("doctor not found in context")
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
	if appointment.DoctorID != doctorID {
		return ErrNotAppointmentOwner
	}

	if err := u.appointmentRepo.UpdateByID(tx, appointmentID, map[string]interface{}{"is_completed": true}); err != nil {
		u.log.Warnf("Failed to complete appointment %s: %+v", appointmentID, err)
		return err
	}

	if err := u.auditService.LogUpdate(ctx, tx, &doctorID, entity.AuditActionAppointmentDone, "appointment", appointmentID.String(), nil, nil); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}

	u.log.Infof("Appointment completed: id=%s, doctor=%s", appointmentID, doctorID)
	return nil
}

// CancelAppointment cancels one of the doctor's own appointments and
// releases the slot.
func (u *doctorUsecase) CancelAppointment(ctx context.Context, appointmentID uuid.UUID) error {
	doctorID, ok := middleware.GetSubjectIDFromContext(ctx)
	if !ok {
		return errors.New("doctor not found in context")
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
	if appointment.DoctorID != doctorID {
		return ErrNotAppointmentOwner
	}
	if appointment.Cancelled {
		return ErrAppointmentAlreadyCancelled
	}

	if err := releaseSlotTx(tx, u.log, u.appointmentRepo, u.doctorRepo, appointment); err != nil {
		return err
	}

	if err := u.auditService.LogUpdate(ctx, tx, &doctorID, entity.AuditActionAppointmentCancel, "appointment", appointmentID.String(), nil, nil); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}

	u.log.Infof("Appointment cancelled by doctor: id=%s, doctor=%s", appointmentID, doctorID)
	return nil
}

// GetDashboard aggregates the doctor's earnings and counters. Earnings count
// appointments that are paid or completed; cancelled ones are excluded.
func (u *doctorUsecase) GetDashboard(ctx context.Context) (*dto.DoctorDashboardResponse, error) {
	doctorID, ok := middleware.GetSubjectIDFromContext(ctx)
	if !ok {
		return nil, errors.New("doctor not found in context")
	}

	appointments, err := u.appointmentRepo.FindByDoctorID(u.db.WithContext(ctx), doctorID)
	if err != nil {
		u.log.Warnf("Failed to find appointments for doctor %s: %+v", doctorID, err)
		return nil, err
	}

	earnings := decimal.Zero
	patients := map[uuid.UUID]struct{}{}
	for i := range appointments {
		a := &appointments[i]
		if !a.Cancelled && (a.Payment || a.IsCompleted) {
			earnings = earnings.Add(a.Amount)
		}
		patients[a.PatientID] = struct{}{}
	}

	latest := appointments
	if len(latest) > 5 {
		latest = latest[:5]
	}

	return &dto.DoctorDashboardResponse{
		Earnings:           earnings,
		Appointments:       len(appointments),
		Patients:           len(patients),
		LatestAppointments: converter.AppointmentsToResponses(latest),
	}, nil
}

// issueTokensFor issues and stores a token pair. Shared between patient and
// doctor login paths.
func issueTokensFor(
	ctx context.Context,
	log *logrus.Logger,
	jwtService *jwt.JWTService,
	redisClient *redis.Client,
	subjectID uuid.UUID,
	email string,
	roleID int,
) (*dto.TokenResponse, error) {
	accessToken, accessTokenID, err := jwtService.GenerateAccessToken(subjectID, email, roleID)
	if err != nil {
		log.Warnf("Failed to generate access token: %+v", err)
		return nil, err
	}

	refreshToken, refreshTokenID, err := jwtService.GenerateRefreshToken(subjectID, email, roleID)
	if err != nil {
		log.Warnf("Failed to generate refresh token: %+v", err)
		return nil, err
	}

	accessKey := fmt.Sprintf("access_token:%s:%s", subjectID.String(), accessTokenID)
	refreshKey := fmt.Sprintf("refresh_token:%s:%s", subjectID.String(), refreshTokenID)

	if err := redisClient.Set(ctx, accessKey, "valid", jwtService.GetAccessExpiry()).Err(); err != nil {
		log.Warnf("Failed to store access token in Redis: %+v", err)
		return nil, err
	}
	if err := redisClient.Set(ctx, refreshKey, "valid", jwtService.GetRefreshExpiry()).Err(); err != nil {
		log.Warnf("Failed to store refresh token in Redis: %+v", err)
		return nil, err
	}

	return &dto.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int64(jwtService.GetAccessExpiry().Seconds()),
	}, nil
}

// toggleAvailabilityTx flips the availability flag inside a transaction.
// Shared between the doctor self-service and admin paths.
func toggleAvailabilityTx(
	ctx context.Context,
	db *gorm.DB,
	log *logrus.Logger,
	doctorRepo repository.DoctorRepository,
	auditService service.AuditService,
	actorID uuid.UUID,
	doctorID uuid.UUID,
) error {
	tx := db.WithContext(ctx).Begin()
	defer tx.Rollback()

	doctor, err := doctorRepo.FindByIDForUpdate(tx, doctorID)
	if err != nil {
		log.Warnf("Failed to find doctor %s: %+v", doctorID, err)
		return err
	}
	if doctor == nil {
		return ErrDoctorNotFound
	}

	next := !doctor.IsAvailable()
	if err := doctorRepo.UpdateAvailability(tx, doctorID, next); err != nil {
		log.Warnf("Failed to update availability for doctor %s: %+v", doctorID, err)
		return err
	}

	if err := auditService.LogUpdate(ctx, tx, &actorID, entity.AuditActionDoctorAvailability, "doctor", doctorID.String(), !next, next); err != nil {
		log.Warnf("Failed to create audit log: %+v", err)
	}

	if err := tx.Commit().Error; err != nil {
		log.Warnf("Failed commit transaction: %+v", err)
		return err
	}

	log.Infof("Doctor availability changed: doctor=%s, available=%t", doctorID, next)
	return nil
}
