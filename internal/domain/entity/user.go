package entity

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrOTPNotIssued = errors.New("no verification code outstanding")
	ErrOTPExpired   = errors.New("verification code has expired")
	ErrOTPMismatch  = errors.New("verification code does not match")
)

// User represents a patient (or admin) account. Accounts start unverified
// with an outstanding OTP; verification clears the code and expiry.
type User struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	RoleID      int        `gorm:"not null;default:3;index" json:"role_id"`
	Name        string     `gorm:"type:varchar(255);not null" json:"name"`
	Email       string     `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Password    string     `gorm:"type:text;not null" json:"-"`
	Phone       string     `gorm:"type:varchar(20)" json:"phone,omitempty"`
	Gender      string     `gorm:"type:varchar(20)" json:"gender,omitempty"`
	DateOfBirth string     `gorm:"type:varchar(10)" json:"date_of_birth,omitempty"`
	Address     JSON       `gorm:"type:jsonb" json:"address,omitempty"`
	ImageURL    string     `gorm:"type:text" json:"image_url,omitempty"`
	IsVerified  bool       `gorm:"not null;default:false" json:"is_verified"`
	OTP         *string    `gorm:"type:char(6)" json:"-"`
	OTPExpiry   *time.Time `json:"-"`
	CreatedAt   time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Role Role `gorm:"foreignKey:RoleID" json:"role,omitempty"`
}

func (User) TableName() string {
	return "users"
}

// IssueOTP stores code with its expiry, unconditionally overwriting any
// outstanding code.
func (u *User) IssueOTP(code string, expiry time.Time) {
	u.OTP = &code
	u.OTPExpiry = &expiry
}

// VerifyOTP transitions the account to verified when code matches the stored
// code and now is not past the expiry. Expired and mismatched codes fail with
// distinct errors. On success the code and expiry are cleared.
func (u *User) VerifyOTP(code string, now time.Time) error {
	if u.OTP == nil || u.OTPExpiry == nil {
		return ErrOTPNotIssued
	}
	if now.After(*u.OTPExpiry) {
		return ErrOTPExpired
	}
	if *u.OTP != code {
		return ErrOTPMismatch
	}
	u.IsVerified = true
	u.OTP = nil
	u.OTPExpiry = nil
	return nil
}

// Snapshot returns the denormalized patient data stored on an appointment at
// booking time. The password never leaves the row.
func (u *User) Snapshot() JSON {
	return JSON{
		"id":            u.ID.String(),
		"name":          u.Name,
		"email":         u.Email,
		"phone":         u.Phone,
		"gender":        u.Gender,
		"date_of_birth": u.DateOfBirth,
		"address":       map[string]interface{}(u.Address),
		"image_url":     u.ImageURL,
	}
}
