package repository

import (
	"cronosflow/internal/domain/entity"

	"gorm.io/gorm"
)

type ProfessionalRepository interface {
	FindActive(db *gorm.DB) ([]entity.Professional, error)
	FindAll(db *gorm.DB) ([]entity.Professional, error)
}
