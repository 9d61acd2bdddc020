package repository

import (
	"cronosflow/internal/domain/entity"

	"gorm.io/gorm"
)

type CustomerRepository interface {
	Create(db *gorm.DB, customer *entity.Customer) error
	// FindByPhone returns the customer with an exact phone match, or nil.
	FindByPhone(db *gorm.DB, phone string) (*entity.Customer, error)
	FindAll(db *gorm.DB) ([]entity.Customer, error)
}
