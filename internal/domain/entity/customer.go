package entity

import (
	"time"

	"github.com/google/uuid"
)

// Customer is created lazily on first booking. The phone number is the de
// facto dedup key: a booking with a known phone reuses the existing record.
type Customer struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Name      string    `gorm:"column:nome;type:varchar(255);not null" json:"nome"`
	Phone     string    `gorm:"column:telefone;type:varchar(20);index" json:"telefone,omitempty"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Appointments []Appointment `gorm:"foreignKey:CustomerID" json:"agendamentos,omitempty"`
}

func (Customer) TableName() string {
	return "clientes"
}
