package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Request DTOs

type DoctorLoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type AddDoctorRequest struct {
	Name       string                 `json:"name" validate:"required,min=2"`
	Email      string                 `json:"email" validate:"required,email"`
	Password   string                 `json:"password" validate:"required,min=8"`
	Speciality string                 `json:"speciality" validate:"required"`
	Degree     string                 `json:"degree" validate:"required"`
	Experience string                 `json:"experience" validate:"omitempty"`
	About      string                 `json:"about" validate:"omitempty"`
	Fees       decimal.Decimal        `json:"fees" validate:"required"`
	Address    map[string]interface{} `json:"address" validate:"omitempty"`
	ImageURL   string                 `json:"image_url" validate:"omitempty,url"`
}

type UpdateDoctorProfileRequest struct {
	Fees      *decimal.Decimal       `json:"fees" validate:"omitempty"`
	About     *string                `json:"about" validate:"omitempty"`
	Address   map[string]interface{} `json:"address" validate:"omitempty"`
	Available *bool                  `json:"available" validate:"omitempty"`
}

// Response DTOs

type DoctorResponse struct {
	ID          uuid.UUID              `json:"id"`
	Name        string                 `json:"name"`
	Email       string                 `json:"email,omitempty"`
	ImageURL    string                 `json:"image_url,omitempty"`
	Speciality  string                 `json:"speciality"`
	Degree      string                 `json:"degree,omitempty"`
	Experience  string                 `json:"experience,omitempty"`
	About       string                 `json:"about,omitempty"`
	Available   bool                   `json:"available"`
	Fees        decimal.Decimal        `json:"fees"`
	Address     map[string]interface{} `json:"address,omitempty"`
	SlotsBooked map[string][]string    `json:"slots_booked"`
	CreatedAt   time.Time              `json:"created_at"`
}

type DoctorListResponse struct {
	Doctors []DoctorResponse `json:"doctors"`
	Total   int              `json:"total"`
}

type DoctorDashboardResponse struct {
	Earnings           decimal.Decimal       `json:"earnings"`
	Appointments       int                   `json:"appointments"`
	Patients           int                   `json:"patients"`
	LatestAppointments []AppointmentResponse `json:"latest_appointments"`
}
