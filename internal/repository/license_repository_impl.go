package repository

import (
	"errors"
	"time"

	"cronosflow/internal/domain/entity"
	domainRepo "cronosflow/internal/domain/repository"

	"gorm.io/gorm"
)

type licenseRepository struct{}

func NewLicenseRepository() domainRepo.LicenseRepository {
	return &licenseRepository{}
}

func (r *licenseRepository) FindByKey(db *gorm.DB, key string) (*entity.License, error) {
	var license entity.License
	err := db.Where("chave = ?", key).First(&license).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &license, nil
}

func (r *licenseRepository) MarkActivated(db *gorm.DB, key, activatedBy, email string) (int64, error) {
	now := time.Now()
	result := db.Model(&entity.License{}).
		Where("chave = ? AND status != ?", key, entity.LicenseStatusUsed).
		Updates(map[string]interface{}{
			"status":          entity.LicenseStatusUsed,
			"ativado_por":     activatedBy,
			"email_vinculado": email,
			"data_ativacao":   now,
		})
	return result.RowsAffected, result.Error
}
