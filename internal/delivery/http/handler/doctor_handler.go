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

type DoctorHandler struct {
	doctorUsecase usecase.DoctorUsecase
	validator     *validator.CustomValidator
}

func NewDoctorHandler(doctorUsecase usecase.DoctorUsecase, validator *validator.CustomValidator) *DoctorHandler {
	return &DoctorHandler{
		doctorUsecase: doctorUsecase,
		validator:     validator,
	}
}

// Login handles doctor login
// @Summary Doctor login
// @Description Login with doctor credentials
// @Tags Doctors
// @Accept json
// @Produce json
// @Param request body dto.DoctorLoginRequest true "Doctor Login Request"
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /doctors/login [post]
func (h *DoctorHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.DoctorLoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	tokens, err := h.doctorUsecase.Login(r.Context(), &req)
	if err != nil {
		switch err {
		case usecase.ErrInvalidCredentials:
			response.Error(w, http.StatusUnauthorized, "Invalid email or password", nil)
		default:
			response.InternalServerError(w, "Failed to login")
		}
		return
	}

	response.Success(w, http.StatusOK, "Login successful", tokens)
}

// GetAllDoctors handles the public doctor listing
// @Summary List doctors
// @Description List all doctors with their slot ledgers; emails withheld
// @Tags Doctors
// @Produce json
// @Success 200 {object} response.Response
// @Router /doctors [get]
func (h *DoctorHandler) GetAllDoctors(w http.ResponseWriter, r *http.Request) {
	doctors, err := h.doctorUsecase.GetAllDoctors(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to get doctors")
		return
	}

	response.Success(w, http.StatusOK, "Doctors retrieved successfully", doctors)
}

// GetProfile handles fetching the doctor's own profile
// @Summary Get doctor profile
// @Description Get the authenticated doctor's profile
// @Tags Doctors
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /doctors/profile [get]
func (h *DoctorHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	doctor, err := h.doctorUsecase.GetProfile(r.Context())
	if err != nil {
		switch err {
		case usecase.ErrDoctorNotFound:
			response.NotFound(w, "Doctor not found")
		default:
			response.InternalServerError(w, "Failed to get profile")
		}
		return
	}

	response.Success(w, http.StatusOK, "Profile retrieved successfully", doctor)
}

// UpdateProfile handles doctor profile updates
// @Summary Update doctor profile
// @Description Update fees, about, address, or availability
// @Tags Doctors
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.UpdateDoctorProfileRequest true "Update Doctor Profile Request"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /doctors/profile [put]
func (h *DoctorHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req dto.UpdateDoctorProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	doctor, err := h.doctorUsecase.UpdateProfile(r.Context(), &req)
	if err != nil {
		switch err {
		case usecase.ErrDoctorNotFound:
			response.NotFound(w, "Doctor not found")
		default:
			response.InternalServerError(w, "Failed to update profile")
		}
		return
	}

	response.Success(w, http.StatusOK, "Profile updated successfully", doctor)
}

// ToggleAvailability handles the doctor flipping their availability
// @Summary Toggle availability
// @Description Flip the authenticated doctor's availability flag
// @Tags Doctors
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /doctors/availability [post]
func (h *DoctorHandler) ToggleAvailability(w http.ResponseWriter, r *http.Request) {
	if err := h.doctorUsecase.ToggleAvailability(r.Context()); err != nil {
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

// GetMyAppointments handles listing the doctor's appointments
// @Summary List doctor appointments
// @Description List the authenticated doctor's appointments, newest first
// @Tags Doctors
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Response
// @Router /doctors/appointments [get]
func (h *DoctorHandler) GetMyAppointments(w http.ResponseWriter, r *http.Request) {
	appointments, err := h.doctorUsecase.GetMyAppointments(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to get appointments")
		return
	}

	response.Success(w, http.StatusOK, "Appointments retrieved successfully", appointments)
}

// CompleteAppointment handles marking an appointment completed
// @Summary Complete an appointment
// @Description Mark one of the doctor's own appointments as completed
// @Tags Doctors
// @Security BearerAuth
// @Produce json
// @Param id path string true "Appointment ID"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /doctors/appointments/{id}/complete [post]
func (h *DoctorHandler) CompleteAppointment(w http.ResponseWriter, r *http.Request) {
	appointmentID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.BadRequest(w, "Invalid appointment ID")
		return
	}

	if err := h.doctorUsecase.CompleteAppointment(r.Context(), appointmentID); err != nil {
		switch err {
		case usecase.ErrAppointmentNotFound:
			response.NotFound(w, "Appointment not found")
		case usecase.ErrNotAppointmentOwner:
			response.Forbidden(w, "Appointment does not belong to you")
		default:
			response.InternalServerError(w, "Failed to complete appointment")
		}
		return
	}

	response.Success(w, http.StatusOK, "Appointment completed successfully", nil)
}

// CancelAppointment handles the doctor cancelling an appointment
// @Summary Cancel an appointment
// @Description Soft-cancel one of the doctor's own appointments and release its slot
// @Tags Doctors
// @Security BearerAuth
// @Produce json
// @Param id path string true "Appointment ID"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /doctors/appointments/{id} [delete]
func (h *DoctorHandler) CancelAppointment(w http.ResponseWriter, r *http.Request) {
	appointmentID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.BadRequest(w, "Invalid appointment ID")
		return
	}

	if err := h.doctorUsecase.CancelAppointment(r.Context(), appointmentID); err != nil {
		switch err {
		case usecase.ErrAppointmentNotFound:
			response.NotFound(w, "Appointment not found")
		case usecase.ErrNotAppointmentOwner:
			response.Forbidden(w, "Appointment does not belong to you")
		case usecase.ErrAppointmentAlreadyCancelled:
			response.Conflict(w, "Appointment is already cancelled")
		default:
			response.InternalServerError(w, "Failed to cancel appointment")
		}
		return
	}

	response.Success(w, http.StatusOK, "Appointment cancelled successfully", nil)
}

// GetDashboard handles the doctor dashboard
// @Summary Doctor dashboard
// @Description Earnings, appointment and patient counters, latest appointments
// @Tags Doctors
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Response
// @Router /doctors/dashboard [get]
func (h *DoctorHandler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	dashboard, err := h.doctorUsecase.GetDashboard(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to get dashboard")
		return
	}

	response.Success(w, http.StatusOK, "Dashboard retrieved successfully", dashboard)
}
