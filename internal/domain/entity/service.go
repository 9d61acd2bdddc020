package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Service is externally managed reference data; read-only here.
type Service struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Name        string          `gorm:"column:nome;type:varchar(255);not null" json:"nome"`
	DurationMin int             `gorm:"column:duracao_min;not null" json:"duracao_min"`
	Price       decimal.Decimal `gorm:"column:valor;type:decimal(10,2)" json:"valor"`
	CreatedAt   time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Service) TableName() string {
	return "servicos"
}
