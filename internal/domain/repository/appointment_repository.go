package repository

import (
	"time"

	"cronosflow/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AppointmentRepository interface {
	Create(db *gorm.DB, appointment *entity.Appointment) error
	// FindForDay returns non-cancelled appointments for a date. A nil
	// professionalID returns appointments across all professionals.
	FindForDay(db *gorm.DB, date time.Time, professionalID *uuid.UUID) ([]entity.Appointment, error)
	// FindAtSlot returns the non-cancelled appointment at an exact date, start
	// time and professional, or nil when the slot is free.
	FindAtSlot(db *gorm.DB, date time.Time, startTime string, professionalID uuid.UUID) (*entity.Appointment, error)
	FindAll(db *gorm.DB) ([]entity.Appointment, error)
}
