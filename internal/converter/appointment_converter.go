package converter

import (
	"cronosflow/internal/delivery/dto"
	"cronosflow/internal/domain/entity"
)

// AppointmentToResponse converts an Appointment entity to its response DTO
func AppointmentToResponse(appointment *entity.Appointment) *dto.AppointmentResponse {
	if appointment == nil {
		return nil
	}

	return &dto.AppointmentResponse{
		ID:             appointment.ID,
		ClienteID:      appointment.CustomerID,
		ClienteNome:    appointment.CustomerName,
		Data:           appointment.Date.Format("2006-01-02"),
		HoraInicio:     appointment.StartTime,
		HoraFim:        appointment.EndTime,
		ServicoID:      appointment.ServiceID,
		ProfissionalID: appointment.ProfessionalID,
		ValorCobrado:   appointment.ChargedValue,
		Status:         string(appointment.Status),
		Origem:         appointment.Origin,
		CreatedAt:      appointment.CreatedAt,
	}
}
