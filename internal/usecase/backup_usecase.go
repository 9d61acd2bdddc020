package usecase

import (
	"context"
	"time"

	"cronosflow/internal/delivery/dto"
	"cronosflow/internal/domain/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type BackupUsecase interface {
	Export(ctx context.Context) (*dto.BackupResponse, error)
}

type backupUsecase struct {
	db               *gorm.DB
	log              *logrus.Logger
	appointmentRepo  repository.AppointmentRepository
	customerRepo     repository.CustomerRepository
	serviceRepo      repository.ServiceRepository
	professionalRepo repository.ProfessionalRepository
}

func NewBackupUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	appointmentRepo repository.AppointmentRepository,
	customerRepo repository.CustomerRepository,
	serviceRepo repository.ServiceRepository,
	professionalRepo repository.ProfessionalRepository,
) BackupUsecase {
	return &backupUsecase{
		db:               db,
		log:              log,
		appointmentRepo:  appointmentRepo,
		customerRepo:     customerRepo,
		serviceRepo:      serviceRepo,
		professionalRepo: professionalRepo,
	}
}

func (u *backupUsecase) Export(ctx context.Context) (*dto.BackupResponse, error) {
	db := u.db.WithContext(ctx)

	appointments, err := u.appointmentRepo.FindAll(db)
	if err != nil {
		u.log.Warnf("Backup: failed to export appointments: %+v", err)
		return nil, err
	}
	customers, err := u.customerRepo.FindAll(db)
	if err != nil {
		u.log.Warnf("Backup: failed to export customers: %+v", err)
		return nil, err
	}
	services, err := u.serviceRepo.FindAll(db)
	if err != nil {
		u.log.Warnf("Backup: failed to export services: %+v", err)
		return nil, err
	}
	professionals, err := u.professionalRepo.FindAll(db)
	if err != nil {
		u.log.Warnf("Backup: failed to export professionals: %+v", err)
		return nil, err
	}

	return &dto.BackupResponse{
		Metadata: dto.BackupMetadata{GeneratedAt: time.Now()},
		Dados: dto.BackupData{
			Appointments:  appointments,
			Customers:     customers,
			Services:      services,
			Professionals: professionals,
		},
	}, nil
}
