package entity

import (
	"time"

	"github.com/google/uuid"
)

// LicenseStatus represents the activation state of a license key
type LicenseStatus string

const (
	LicenseStatusAvailable LicenseStatus = "DISPONIVEL"
	LicenseStatusUsed      LicenseStatus = "USADA"
)

// License is an activation key record. Keys are provisioned externally and
// activated exactly once through this service.
type License struct {
	ID          uuid.UUID     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Key         string        `gorm:"column:chave;type:varchar(100);uniqueIndex;not null" json:"chave"`
	Status      LicenseStatus `gorm:"type:varchar(20);not null;default:'DISPONIVEL'" json:"status"`
	ActivatedBy string        `gorm:"column:ativado_por;type:varchar(100)" json:"ativado_por,omitempty"`
	LinkedEmail string        `gorm:"column:email_vinculado;type:varchar(255)" json:"email_vinculado,omitempty"`
	ActivatedAt *time.Time    `gorm:"column:data_ativacao" json:"data_ativacao,omitempty"`
	CreatedAt   time.Time     `gorm:"autoCreateTime" json:"created_at"`
}

func (License) TableName() string {
	return "licencas_broosaas"
}

// IsUsed checks if the key has already been activated
func (l *License) IsUsed() bool {
	return l.Status == LicenseStatusUsed
}
