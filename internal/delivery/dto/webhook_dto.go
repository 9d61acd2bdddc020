package dto

// AppointmentRecord is the row snapshot the database webhook delivers on
// updates to the appointments table.
type AppointmentRecord struct {
	ProfissionalID  string `json:"profissional_id"`
	ClienteNome     string `json:"cliente_nome"`
	ClienteTelefone string `json:"cliente_telefone"`
	Data            string `json:"data"`
	HoraInicio      string `json:"hora_inicio"`
}

type ConfirmationWebhookRequest struct {
	Record    AppointmentRecord `json:"record"`
	OldRecord AppointmentRecord `json:"old_record"`
}
