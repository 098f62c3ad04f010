package handler

import (
	"encoding/json"
	"net/http"

	"healthsphere-api/internal/delivery/dto"
	"healthsphere-api/internal/usecase"
	"healthsphere-api/pkg/response"
	"healthsphere-api/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type AdminHandler struct {
	adminUsecase usecase.AdminUsecase
	validator    *validator.CustomValidator
}

func NewAdminHandler(adminUsecase usecase.AdminUsecase, validator *validator.CustomValidator) *AdminHandler {
	return &AdminHandler{
		adminUsecase: adminUsecase,
		validator:    validator,
	}
}

// AddDoctor handles doctor account creation
// @Summary Add a doctor
// @Description Create a doctor account; doctors cannot self-register
// @Tags Admin
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.AddDoctorRequest true "Add Doctor Request"
// @Success 201 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /admin/doctors [post]
func (h *AdminHandler) AddDoctor(w http.ResponseWriter, r *http.Request) {
	var req dto.AddDoctorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	doctor, err := h.adminUsecase.AddDoctor(r.Context(), &req)
	if err != nil {
		switch err {
		case usecase.ErrDoctorEmailExists:
			response.Error(w, http.StatusConflict, "Doctor email already exists", nil)
		default:
			response.InternalServerError(w, "Failed to add doctor")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Doctor added successfully", doctor)
}

// GetAllDoctors handles the admin doctor listing
// @Summary List all doctors
// @Description List all doctors including emails
// @Tags Admin
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Response
// @Router /admin/doctors [get]
func (h *AdminHandler) GetAllDoctors(w http.ResponseWriter, r *http.Request) {
	doctors, err := h.adminUsecase.GetAllDoctors(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to get doctors")
		return
	}

	response.Success(w, http.StatusOK, "Doctors retrieved successfully", doctors)
}

// ToggleAvailability handles the admin flipping a doctor's availability
// @Summary Toggle doctor availability
// @Description Flip a doctor's availability flag
// @Tags Admin
// @Security BearerAuth
// @Produce json
// @Param id path string true "Doctor ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /admin/doctors/{id}/availability [post]
func (h *AdminHandler) ToggleAvailability(w http.ResponseWriter, r *http.Request) {
	doctorID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.BadRequest(w, "Invalid doctor ID")
		return
	}

	if err := h.adminUsecase.ToggleAvailability(r.Context(), doctorID); err != nil {
		switch err {
		case usecase.ErrDoctorNotFound:
			response.NotFound(w, "Doctor not found")
		default:
			response.InternalServerError(w, "Failed to change availability")
		}
		return
	}

	response.Success(w, http.StatusOK, "Availability changed successfully", nil)
}

// GetAllAppointments handles the admin appointment listing
// @Summary List all appointments
// @Description List every appointment in the system, newest first
// @Tags Admin
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Response
// @Router /admin/appointments [get]
func (h *AdminHandler) GetAllAppointments(w http.ResponseWriter, r *http.Request) {
	appointments, err := h.adminUsecase.GetAllAppointments(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to get appointments")
		return
	}

	response.Success(w, http.StatusOK, "Appointments retrieved successfully", appointments)
}

// CancelAppointment handles the admin cancelling any appointment
// @Summary Cancel any appointment
// @Description Soft-cancel an appointment without an ownership check
// @Tags Admin
// @Security BearerAuth
// @Produce json
// @Param id path string true "Appointment ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /admin/appointments/{id} [delete]
func (h *AdminHandler) CancelAppointment(w http.ResponseWriter, r *http.Request) {
	appointmentID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.BadRequest(w, "Invalid appointment ID")
		return
	}

	if err := h.adminUsecase.CancelAppointment(r.Context(), appointmentID); err != nil {
		switch err {
		case usecase.ErrAppointmentNotFound:
			response.NotFound(w, "Appointment not found")
		case usecase.ErrAppointmentAlreadyCancelled:
			response.Conflict(w, "Appointment is already cancelled")
		default:
			response.InternalServerError(w, "Failed to cancel appointment")
		}
		return
	}

	response.Success(w, http.StatusOK, "Appointment cancelled successfully", nil)
}

// GetDashboard handles the admin dashboard
// @Summary Admin dashboard
// @Description Doctor, patient, and appointment counters plus latest appointments
// @Tags Admin
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Response
// @Router /admin/dashboard [get]
func (h *AdminHandler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	dashboard, err := h.adminUsecase.GetDashboard(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to get dashboard")
		return
	}

	response.Success(w, http.StatusOK, "Dashboard retrieved successfully", dashboard)
}
