package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	AppointmentStatusScheduled AppointmentStatus = "scheduled"
	AppointmentStatusCancelled AppointmentStatus = "cancelled"
)

// Appointment represents a booked time slot on the clinic calendar.
// Column names follow the external database schema, which is owned by the
// dashboard side and not redesigned here.
type Appointment struct {
	ID             uuid.UUID         `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	CustomerID     *uuid.UUID        `gorm:"column:cliente_id;type:uuid;index" json:"cliente_id,omitempty"`
	CustomerName   string            `gorm:"column:cliente_nome;type:varchar(255)" json:"cliente_nome"`
	CustomerPhone  string            `gorm:"column:cliente_telefone;type:varchar(20)" json:"cliente_telefone,omitempty"`
	Date           time.Time         `gorm:"column:data;type:date;not null;index" json:"data"`
	StartTime      string            `gorm:"column:hora_inicio;type:time;not null" json:"hora_inicio"`
	EndTime        string            `gorm:"column:hora_fim;type:time;not null" json:"hora_fim"`
	ServiceID      *uuid.UUID        `gorm:"column:servico_id;type:uuid;index" json:"servico_id,omitempty"`
	ProfessionalID *uuid.UUID        `gorm:"column:profissional_id;type:uuid;index" json:"profissional_id,omitempty"`
	ChargedValue   decimal.Decimal   `gorm:"column:valor_cobrado;type:decimal(10,2)" json:"valor_cobrado"`
	Status         AppointmentStatus `gorm:"type:varchar(20);not null;default:'scheduled';index" json:"status"`
	Notes          string            `gorm:"column:notas;type:text" json:"notas,omitempty"`
	Origin         string            `gorm:"column:origem;type:varchar(50)" json:"origem"`
	CreatedAt      time.Time         `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time         `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Customer     *Customer     `gorm:"foreignKey:CustomerID" json:"cliente,omitempty"`
	Service      *Service      `gorm:"foreignKey:ServiceID" json:"servico,omitempty"`
	Professional *Professional `gorm:"foreignKey:ProfessionalID" json:"profissional,omitempty"`
}

func (Appointment) TableName() string {
	return "agendamentos"
}

// IsCancelled checks if the appointment is cancelled
func (a *Appointment) IsCancelled() bool {
	return a.Status == AppointmentStatusCancelled
}

// Cancel changes appointment status to cancelled
func (a *Appointment) Cancel() {
	a.Status = AppointmentStatusCancelled
}
