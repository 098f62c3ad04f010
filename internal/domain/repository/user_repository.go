package repository

import (
	"healthsphere-api/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserRepository interface {
	Create(db *gorm.DB, user *entity.User) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.User, error)
	FindByEmail(db *gorm.DB, email string) (*entity.User, error)
	UpdateByID(db *gorm.DB, id uuid.UUID, fields map[string]interface{}) error
	Count(db *gorm.DB) (int64, error)
}
