package entity

import (
	"time"

	"github.com/google/uuid"
)

// Professional is externally managed reference data. One designated record is
// the holding queue: a sentinel used to park automated bookings until a human
// redistributes them on the dashboard.
type Professional struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Name      string    `gorm:"column:nome;type:varchar(255);not null" json:"nome"`
	Active    bool      `gorm:"column:ativo;not null;default:true" json:"ativo"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Appointments []Appointment `gorm:"foreignKey:ProfessionalID" json:"agendamentos,omitempty"`
}

func (Professional) TableName() string {
	return "profissionais"
}
