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
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var ErrDoctorEmailExists = errors.New("doctor email already exists")

type AdminUsecase interface {
	AddDoctor(ctx context.Context, req *dto.AddDoctorRequest) (*dto.DoctorResponse, error)
	GetAllDoctors(ctx context.Context) (*dto.DoctorListResponse, error)
	ToggleAvailability(ctx context.Context, doctorID uuid.UUID) error
	GetAllAppointments(ctx context.Context) (*dto.AppointmentListResponse, error)
	CancelAppointment(ctx context.Context, appointmentID uuid.UUID) error
	GetDashboard(ctx context.Context) (*dto.AdminDashboardResponse, error)
}

type adminUsecase struct {
	db              *gorm.DB
	log             *logrus.Logger
	doctorRepo      repository.DoctorRepository
	appointmentRepo repository.AppointmentRepository
	userRepo        repository.UserRepository
	auditService    service.AuditService
}

func NewAdminUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	doctorRepo repository.DoctorRepository,
	appointmentRepo repository.AppointmentRepository,
	userRepo repository.UserRepository,
	auditService service.AuditService,
) AdminUsecase {
	return &adminUsecase{
		db:              db,
		log:             log,
		doctorRepo:      doctorRepo,
		appointmentRepo: appointmentRepo,
		userRepo:        userRepo,
		auditService:    auditService,
	}
}

// AddDoctor creates a doctor account. Doctors cannot self-register; this is
// the only way a doctor record comes into existence.
func (u *adminUsecase) AddDoctor(ctx context.Context, req *dto.AddDoctorRequest) (*dto.DoctorResponse, error) {
	adminID, ok := middleware.GetSubjectIDFromContext(ctx)
	if !ok {
		return nil, errors.New("admin not found in context")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		u.log.Warnf("Failed to hash password: %+v", err)
		return nil, err
	}

	doctor := &entity.Doctor{
		Name:       req.Name,
		Email:      req.Email,
		Password:   string(hashedPassword),
		Speciality: req.Speciality,
		Degree:     req.Degree,
		Experience: req.Experience,
		About:      req.About,
		Fees:       req.Fees,
		ImageURL:   req.ImageURL,
	}
	if req.Address != nil {
		doctor.Address = entity.JSON(req.Address)
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	if err := u.doctorRepo.Create(tx, doctor); err != nil {
		if isDuplicateKeyError(err, "email") {
			return nil, ErrDoctorEmailExists
		}
		u.log.Warnf("Failed to create doctor: %+v", err)
		return nil, err
	}

	if err := u.auditService.LogCreate(ctx, tx, &adminID, entity.AuditActionDoctorCreate, "doctor", doctor.ID.String(), nil); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	u.log.Infof("Doctor created: id=%s, email=%s", doctor.ID, doctor.Email)
	return converter.DoctorToResponse(doctor), nil
}

// GetAllDoctors is the admin listing; unlike the public one it includes
// emails.
func (u *adminUsecase) GetAllDoctors(ctx context.Context) (*dto.DoctorListResponse, error) {
	doctors, err := u.doctorRepo.FindAll(u.db.WithContext(ctx))
	if err != nil {
		u.log.Warnf("Failed to list doctors: %+v", err)
		return nil, err
	}

	return &dto.DoctorListResponse{
		Doctors: converter.DoctorsToResponses(doctors),
		Total:   len(doctors),
	}, nil
}

func (u *adminUsecase) ToggleAvailability(ctx context.Context, doctorID uuid.UUID) error {
	adminID, ok := middleware.GetSubjectIDFromContext(ctx)
	if !ok {
		return errors.New("admin not found in context")
	}

	return toggleAvailabilityTx(ctx, u.db, u.log, u.doctorRepo, u.auditService, adminID, doctorID)
}

func (u *adminUsecase) GetAllAppointments(ctx context.Context) (*dto.AppointmentListResponse, error) {
	appointments, err := u.appointmentRepo.FindAll(u.db.WithContext(ctx))
	if err != nil {
		u.log.Warnf("Failed to list appointments: %+v", err)
		return nil, err
	}

	return &dto.AppointmentListResponse{
		Appointments: converter.AppointmentsToResponses(appointments),
		Total:        len(appointments),
	}, nil
}

// CancelAppointment cancels any appointment, no ownership check. Slot
// release semantics match the patient path.
func (u *adminUsecase) CancelAppointment(ctx context.Context, appointmentID uuid.UUID) error {
	adminID, ok := middleware.GetSubjectIDFromContext(ctx)
	if !ok {
		return errors.New("admin not found in context")
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
	if appointment.Cancelled {
		return ErrAppointmentAlreadyCancelled
	}

	if err := releaseSlotTx(tx, u.log, u.appointmentRepo, u.doctorRepo, appointment); err != nil {
		return err
	}

	if err := u.auditService.LogUpdate(ctx, tx, &adminID, entity.AuditActionAppointmentCancel, "appointment", appointmentID.String(), nil, nil); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}

	u.log.Infof("Appointment cancelled by admin: id=%s, admin=%s", appointmentID, adminID)
	return nil
}

func (u *adminUsecase) GetDashboard(ctx context.Context) (*dto.AdminDashboardResponse, error) {
	db := u.db.WithContext(ctx)

	doctors, err := u.doctorRepo.Count(db)
	if err != nil {
		u.log.Warnf("Failed to count doctors: %+v", err)
		return nil, err
	}

	patients, err := u.userRepo.Count(db)
	if err != nil {
		u.log.Warnf("Failed to count patients: %+v", err)
		return nil, err
	}

	appointments, err := u.appointmentRepo.Count(db)
	if err != nil {
		u.log.Warnf("Failed to count appointments: %+v", err)
		return nil, err
	}

	latest, err := u.appointmentRepo.FindAll(db)
	if err != nil {
		u.log.Warnf("Failed to list appointments: %+v", err)
		return nil, err
	}
	if len(latest) > 5 {
		latest = latest[:5]
	}

	return &dto.AdminDashboardResponse{
		Doctors:            doctors,
		Patients:           patients,
		Appointments:       appointments,
		LatestAppointments: converter.AppointmentsToResponses(latest),
	}, nil
}
