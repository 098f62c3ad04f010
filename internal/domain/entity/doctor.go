package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Doctor represents a doctor record. Doctors authenticate with their own
// credentials, separate from patient accounts. The slot ledger lives on the
// doctor row and is the single source of truth for booked slots.
type Doctor struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Name        string          `gorm:"type:varchar(255);not null" json:"name"`
	Email       string          `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Password    string          `gorm:"type:text;not null" json:"-"`
	ImageURL    string          `gorm:"type:text" json:"image_url,omitempty"`
	Speciality  string          `gorm:"type:varchar(100);not null;index" json:"speciality"`
	Degree      string          `gorm:"type:varchar(100)" json:"degree,omitempty"`
	Experience  string          `gorm:"type:varchar(50)" json:"experience,omitempty"`
	About       string          `gorm:"type:text" json:"about,omitempty"`
	Available   *bool           `gorm:"not null;default:true" json:"available"`
	Fees        decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"fees"`
	Address     JSON            `gorm:"type:jsonb" json:"address,omitempty"`
	SlotsBooked SlotLedger      `gorm:"type:jsonb;not null;default:'{}'" json:"slots_booked"`
	CreatedAt   time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Doctor) TableName() string {
	return "doctors"
}

// IsAvailable reports whether the doctor accepts bookings.
func (d *Doctor) IsAvailable() bool {
	return d.Available != nil && *d.Available
}

// Snapshot returns the denormalized doctor data stored on an appointment at
// booking time. The slot ledger is excluded so appointments do not carry the
// doctor's entire booking history; the password never leaves the row.
func (d *Doctor) Snapshot() JSON {
	return JSON{
		"id":         d.ID.String(),
		"name":       d.Name,
		"email":      d.Email,
		"image_url":  d.ImageURL,
		"speciality": d.Speciality,
		"degree":     d.Degree,
		"experience": d.Experience,
		"about":      d.About,
		"fees":       d.Fees.String(),
		"address":    map[string]interface{}(d.Address),
	}
}
