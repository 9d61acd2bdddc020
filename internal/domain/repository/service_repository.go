package repository

import (
	"cronosflow/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ServiceRepository interface {
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.Service, error)
	FindAll(db *gorm.DB) ([]entity.Service, error)
}
