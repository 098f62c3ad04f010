package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Request DTOs

type BookAppointmentRequest struct {
	DoctorID uuid.UUID `json:"doctor_id" validate:"required"`
	SlotDate string    `json:"slot_date" validate:"required,datekey"`
	SlotTime string    `json:"slot_time" validate:"required,slottime"`
}

// Response DTOs

type AppointmentResponse struct {
	ID              uuid.UUID              `json:"id"`
	PatientID       uuid.UUID              `json:"patient_id"`
	DoctorID        uuid.UUID              `json:"doctor_id"`
	SlotDate        string                 `json:"slot_date"`
	SlotTime        string                 `json:"slot_time"`
	Amount          decimal.Decimal        `json:"amount"`
	Cancelled       bool                   `json:"cancelled"`
	IsCompleted     bool                   `json:"is_completed"`
	Payment         bool                   `json:"payment"`
	Status          string                 `json:"status"`
	PatientSnapshot map[string]interface{} `json:"patient_snapshot,omitempty"`
	DoctorSnapshot  map[string]interface{} `json:"doctor_snapshot,omitempty"`
	CreatedAt       time.Time              `json:"created_at"`
}

type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
	Total        int                   `json:"total"`
}
