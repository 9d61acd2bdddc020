package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Request DTOs. Assistant requests are assembled from normalized payload
// fields, so everything arrives as strings and is validated in the usecase.

type AvailabilityRequest struct {
	Date           string
	ProfessionalID string
	ServiceID      string
}

type SlotCheckRequest struct {
	Date      string
	StartTime string
	ServiceID string
}

type BookingRequest struct {
	Date           string
	StartTime      string
	CustomerName   string
	CustomerPhone  string
	ServiceID      string
	ProfessionalID string
}

// Response DTOs. Field names are the wire contract with the bot and the
// dashboard and stay in Portuguese.

type AvailabilityResponse struct {
	Disponiveis []string `json:"disponiveis"`
}

type SlotCheckResponse struct {
	Disponivel          bool   `json:"disponivel"`
	HorarioInicio       string `json:"horario_inicio"`
	HorarioFim          string `json:"horario_fim"`
	ProfissionaisLivres int    `json:"profissionais_livres"`
	TotalProfissionais  int    `json:"total_profissionais"`
}

type AppointmentResponse struct {
	ID             uuid.UUID       `json:"id"`
	ClienteID      *uuid.UUID      `json:"cliente_id,omitempty"`
	ClienteNome    string          `json:"cliente_nome"`
	Data           string          `json:"data"`
	HoraInicio     string          `json:"hora_inicio"`
	HoraFim        string          `json:"hora_fim"`
	ServicoID      *uuid.UUID      `json:"servico_id,omitempty"`
	ProfissionalID *uuid.UUID      `json:"profissional_id,omitempty"`
	ValorCobrado   decimal.Decimal `json:"valor_cobrado"`
	Status         string          `json:"status"`
	Origem         string          `json:"origem"`
	CreatedAt      time.Time       `json:"created_at"`
}

type BookingResult struct {
	Success     bool                 `json:"success"`
	Message     string               `json:"message"`
	Code        string               `json:"code,omitempty"`
	Agendamento *AppointmentResponse `json:"agendamento,omitempty"`
}
