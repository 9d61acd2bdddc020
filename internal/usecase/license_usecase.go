package usecase

import (
	"context"
	"errors"

	"cronosflow/internal/delivery/dto"
	"cronosflow/internal/domain/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrLicenseNotFound    = errors.New("license key not found")
	ErrLicenseAlreadyUsed = errors.New("license key already used")
)

type LicenseUsecase interface {
	Activate(ctx context.Context, req *dto.ActivateLicenseRequest) error
}

type licenseUsecase struct {
	db          *gorm.DB
	log         *logrus.Logger
	licenseRepo repository.LicenseRepository
}

func NewLicenseUsecase(db *gorm.DB, log *logrus.Logger, licenseRepo repository.LicenseRepository) LicenseUsecase {
	return &licenseUsecase{
		db:          db,
		log:         log,
		licenseRepo: licenseRepo,
	}
}

func (u *licenseUsecase) Activate(ctx context.Context, req *dto.ActivateLicenseRequest) error {
	license, err := u.licenseRepo.FindByKey(u.db.WithContext(ctx), req.Key)
	if err != nil {
		u.log.Warnf("Failed to look up license key: %+v", err)
		return err
	}
	if license == nil {
		return ErrLicenseNotFound
	}
	if license.IsUsed() {
		return ErrLicenseAlreadyUsed
	}

	// The conditional update closes the lookup/activate race: a concurrent
	// activation of the same key leaves zero affected rows here.
	rows, err := u.licenseRepo.MarkActivated(u.db.WithContext(ctx), req.Key, req.UserID, req.Email)
	if err != nil {
		u.log.Warnf("Failed to activate license key: %+v", err)
		return err
	}
	if rows == 0 {
		return ErrLicenseAlreadyUsed
	}

	u.log.Infof("License activated for user %s", req.UserID)
	return nil
}
