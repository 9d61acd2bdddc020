package repository

import (
	"cronosflow/internal/domain/entity"
	domainRepo "cronosflow/internal/domain/repository"

	"gorm.io/gorm"
)

type professionalRepository struct{}

func NewProfessionalRepository() domainRepo.ProfessionalRepository {
	return &professionalRepository{}
}

func (r *professionalRepository) FindActive(db *gorm.DB) ([]entity.Professional, error) {
	var professionals []entity.Professional
	err := db.Where("ativo = ?", true).Order("nome ASC").Find(&professionals).Error
	if err != nil {
		return nil, err
	}
	return professionals, nil
}

func (r *professionalRepository) FindAll(db *gorm.DB) ([]entity.Professional, error) {
	var professionals []entity.Professional
	err := db.Order("nome ASC").Find(&professionals).Error
	if err != nil {
		return nil, err
	}
	return professionals, nil
}
