package repository

import (
	"cronosflow/internal/domain/entity"

	"gorm.io/gorm"
)

type LicenseRepository interface {
	// FindByKey returns the license with an exact key match, or nil.
	FindByKey(db *gorm.DB, key string) (*entity.License, error)
	// MarkActivated atomically flips an unused key to USADA. Returns affected
	// rows: 1 = activated, 0 = key was already used (prevents double-activation
	// race).
	MarkActivated(db *gorm.DB, key, activatedBy, email string) (int64, error)
}
