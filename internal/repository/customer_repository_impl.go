package repository

import (
	"errors"

	"cronosflow/internal/domain/entity"
	domainRepo "cronosflow/internal/domain/repository"

	"gorm.io/gorm"
)

type customerRepository struct{}

func NewCustomerRepository() domainRepo.CustomerRepository {
	return &customerRepository{}
}

func (r *customerRepository) Create(db *gorm.DB, customer *entity.Customer) error {
	return db.Create(customer).Error
}

func (r *customerRepository) FindByPhone(db *gorm.DB, phone string) (*entity.Customer, error) {
	var customer entity.Customer
	err := db.Where("telefone = ?", phone).First(&customer).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &customer, nil
}

func (r *customerRepository) FindAll(db *gorm.DB) ([]entity.Customer, error) {
	var customers []entity.Customer
	err := db.Order("created_at ASC").Find(&customers).Error
	if err != nil {
		return nil, err
	}
	return customers, nil
}
