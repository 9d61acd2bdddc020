package repository

import (
	"errors"
	"time"

	"cronosflow/internal/domain/entity"
	domainRepo "cronosflow/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type appointmentRepository struct{}

func NewAppointmentRepository() domainRepo.AppointmentRepository {
	return &appointmentRepository{}
}

func (r *appointmentRepository) Create(db *gorm.DB, appointment *entity.Appointment) error {
	return db.Create(appointment).Error
}

func (r *appointmentRepository) FindForDay(db *gorm.DB, date time.Time, professionalID *uuid.UUID) ([]entity.Appointment, error) {
	var appointments []entity.Appointment
	query := db.Where("data = ? AND status != ?", date.Format("2006-01-02"), entity.AppointmentStatusCancelled)
	if professionalID != nil {
		query = query.Where("profissional_id = ?", *professionalID)
	}
	err := query.Order("hora_inicio ASC").Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

func (r *appointmentRepository) FindAtSlot(db *gorm.DB, date time.Time, startTime string, professionalID uuid.UUID) (*entity.Appointment, error) {
	var appointment entity.Appointment
	err := db.Where("data = ? AND hora_inicio = ? AND profissional_id = ? AND status != ?",
		date.Format("2006-01-02"), startTime, professionalID, entity.AppointmentStatusCancelled).
		First(&appointment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &appointment, nil
}

func (r *appointmentRepository) FindAll(db *gorm.DB) ([]entity.Appointment, error) {
	var appointments []entity.Appointment
	err := db.Order("data ASC, hora_inicio ASC").Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}
