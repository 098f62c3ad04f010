package entity

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var ErrAppointmentCancelled = errors.New("appointment is cancelled")

// Appointment display statuses. Cancellation takes priority over completion.
const (
	AppointmentStatusScheduled = "scheduled"
	AppointmentStatusCompleted = "completed"
	AppointmentStatusCancelled = "cancelled"
)

// Appointment represents a booked slot. The record is never deleted:
// cancellation only flips the Cancelled flag, preserving history. The
// (doctor, slot date, slot time) tuple was present in the doctor's slot
// ledger at creation time; cancelling releases it from the ledger.
type Appointment struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	PatientID       uuid.UUID       `gorm:"type:uuid;not null;index" json:"patient_id"`
	DoctorID        uuid.UUID       `gorm:"type:uuid;not null;index" json:"doctor_id"`
	SlotDate        string          `gorm:"type:varchar(12);not null" json:"slot_date"`
	SlotTime        string          `gorm:"type:varchar(5);not null" json:"slot_time"`
	PatientSnapshot JSON            `gorm:"type:jsonb" json:"patient_snapshot,omitempty"`
	DoctorSnapshot  JSON            `gorm:"type:jsonb" json:"doctor_snapshot,omitempty"`
	Amount          decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"amount"`
	Cancelled       bool            `gorm:"not null;default:false" json:"cancelled"`
	IsCompleted     bool            `gorm:"not null;default:false" json:"is_completed"`
	Payment         bool            `gorm:"not null;default:false" json:"payment"`
	CreatedAt       time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time       `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Patient User   `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
	Doctor  Doctor `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
}

func (Appointment) TableName() string {
	return "appointments"
}

// Cancel soft-cancels the appointment. All other fields are preserved.
func (a *Appointment) Cancel() {
	a.Cancelled = true
}

// Complete marks the appointment as completed.
func (a *Appointment) Complete() {
	a.IsCompleted = true
}

// MarkPaid flips the payment flag. Fails when the appointment is cancelled;
// the flag is left untouched in that case.
func (a *Appointment) MarkPaid() error {
	if a.Cancelled {
		return ErrAppointmentCancelled
	}
	a.Payment = true
	return nil
}

// DisplayStatus returns the status shown to clients. The flags are not
// mutually exclusive in the data model; cancellation wins for display.
func (a *Appointment) DisplayStatus() string {
	if a.Cancelled {
		return AppointmentStatusCancelled
	}
	if a.IsCompleted {
		return AppointmentStatusCompleted
	}
	return AppointmentStatusScheduled
}
