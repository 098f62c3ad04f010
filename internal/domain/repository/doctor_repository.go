package repository

import (
	"healthsphere-api/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DoctorRepository interface {
	Create(db *gorm.DB, doctor *entity.Doctor) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.Doctor, error)
	// FindByIDForUpdate locks the doctor row for the rest of the transaction
	// so the ledger membership check and the ledger write are atomic.
	FindByIDForUpdate(db *gorm.DB, id uuid.UUID) (*entity.Doctor, error)
	FindByEmail(db *gorm.DB, email string) (*entity.Doctor, error)
	FindAll(db *gorm.DB) ([]entity.Doctor, error)
	UpdateSlots(db *gorm.DB, id uuid.UUID, slots entity.SlotLedger) error
	UpdateAvailability(db *gorm.DB, id uuid.UUID, available bool) error
	Update(db *gorm.DB, doctor *entity.Doctor) error
	Count(db *gorm.DB) (int64, error)
}
