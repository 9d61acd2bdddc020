package dto

import (
	"time"

	"cronosflow/internal/domain/entity"
)

type BackupMetadata struct {
	GeneratedAt time.Time `json:"gerado_em"`
}

type BackupData struct {
	Appointments  []entity.Appointment  `json:"agendamentos"`
	Customers     []entity.Customer     `json:"clientes"`
	Services      []entity.Service      `json:"servicos"`
	Professionals []entity.Professional `json:"profissionais"`
}

type BackupResponse struct {
	Metadata BackupMetadata `json:"metadata"`
	Dados    BackupData     `json:"dados"`
}
