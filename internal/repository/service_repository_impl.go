package repository

import (
	"errors"

	"cronosflow/internal/domain/entity"
	domainRepo "cronosflow/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type serviceRepository struct{}

func NewServiceRepository() domainRepo.ServiceRepository {
	return &serviceRepository{}
}

func (r *serviceRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Service, error) {
	var service entity.Service
	err := db.Where("id = ?", id).First(&service).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &service, nil
}

func (r *serviceRepository) FindAll(db *gorm.DB) ([]entity.Service, error) {
	var services []entity.Service
	err := db.Order("nome ASC").Find(&services).Error
	if err != nil {
		return nil, err
	}
	return services, nil
}
