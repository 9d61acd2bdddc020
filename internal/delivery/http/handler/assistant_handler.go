package handler

import (
	"errors"
	"io"
	"net/http"

	"cronosflow/internal/delivery/dto"
	"cronosflow/internal/payload"
	"cronosflow/internal/usecase"
	"cronosflow/pkg/response"

	"github.com/sirupsen/logrus"
)

// maxBodyBytes caps what the normalizer will chew on. Bot payloads are tiny;
// anything bigger is garbage.
const maxBodyBytes = 1 << 20

// AssistantHandler serves the routes called by the conversational assistant
// through the messaging-bot gateway. The gateway is not consistent about
// where parameters go, so every route accepts them in the query string, the
// body, or both (body wins), on any method.
type AssistantHandler struct {
	availabilityUsecase usecase.AvailabilityUsecase
	bookingUsecase      usecase.BookingUsecase
	normalizer          *payload.Normalizer
	log                 *logrus.Logger
	exposeErrors        bool
}

func NewAssistantHandler(
	availabilityUsecase usecase.AvailabilityUsecase,
	bookingUsecase usecase.BookingUsecase,
	normalizer *payload.Normalizer,
	log *logrus.Logger,
	exposeErrors bool,
) *AssistantHandler {
	return &AssistantHandler{
		availabilityUsecase: availabilityUsecase,
		bookingUsecase:      bookingUsecase,
		normalizer:          normalizer,
		log:                 log,
		exposeErrors:        exposeErrors,
	}
}

func (h *AssistantHandler) Consultar(w http.ResponseWriter, r *http.Request) {
	fields := h.requestFields(r)

	req := &dto.AvailabilityRequest{
		Date:           fields.Get(payload.FieldDate),
		ProfessionalID: fields.Get(payload.FieldProfessionalID),
		ServiceID:      fields.Get(payload.FieldServiceID),
	}

	resp, err := h.availabilityUsecase.AvailableSlots(r.Context(), req)
	if err != nil {
		h.writeError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, resp)
}

func (h *AssistantHandler) Agendar(w http.ResponseWriter, r *http.Request) {
	fields := h.requestFields(r)

	req := &dto.BookingRequest{
		Date:           fields.Get(payload.FieldDate),
		StartTime:      fields.Get(payload.FieldStartTime),
		CustomerName:   fields.Get(payload.FieldCustomerName),
		CustomerPhone:  fields.Get(payload.FieldCustomerPhone),
		ServiceID:      fields.Get(payload.FieldServiceID),
		ProfessionalID: fields.Get(payload.FieldProfessionalID),
	}

	appointment, err := h.bookingUsecase.CreateBooking(r.Context(), req)
	if err != nil {
		h.writeError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, dto.BookingResult{
		Success:     true,
		Message:     "Agendamento realizado!",
		Agendamento: appointment,
	})
}

func (h *AssistantHandler) VerificarDisponibilidade(w http.ResponseWriter, r *http.Request) {
	fields := h.requestFields(r)

	req := &dto.SlotCheckRequest{
		Date:      fields.Get(payload.FieldDate),
		StartTime: fields.Get(payload.FieldStartTime),
		ServiceID: fields.Get(payload.FieldServiceID),
	}

	resp, err := h.availabilityUsecase.CheckSlot(r.Context(), req)
	if err != nil {
		h.writeError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, resp)
}

// requestFields merges query-string parameters with whatever the normalizer
// can salvage from the body.
func (h *AssistantHandler) requestFields(r *http.Request) payload.Fields {
	fields := h.normalizer.FromValues(r.URL.Query())

	if r.Body != nil {
		body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
		if err != nil {
			h.log.Warnf("Failed to read request body: %+v", err)
			return fields
		}
		if len(body) > 0 {
			fields = fields.Merge(h.normalizer.Normalize(body))
		}
	}
	return fields
}

// CodeSlotTaken lets the bot distinguish "slot occupied" from other 400s and
// offer the user a re-query instead of an apology.
const CodeSlotTaken = "horario_ocupado"

func (h *AssistantHandler) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, usecase.ErrMissingDate):
		response.Error(w, http.StatusBadRequest, "Data é obrigatória.", nil)
	case errors.Is(err, usecase.ErrInvalidDate):
		response.Error(w, http.StatusBadRequest, "Data inválida, use o formato YYYY-MM-DD.", nil)
	case errors.Is(err, usecase.ErrMissingStartTime):
		response.Error(w, http.StatusBadRequest, "Horário de início é obrigatório.", nil)
	case errors.Is(err, usecase.ErrInvalidStartTime):
		response.Error(w, http.StatusBadRequest, "Horário inválido, use o formato HH:MM.", nil)
	case errors.Is(err, usecase.ErrMissingCustomerName):
		response.Error(w, http.StatusBadRequest, "Nome do cliente é obrigatório.", nil)
	case errors.Is(err, usecase.ErrMissingServiceID):
		response.Error(w, http.StatusBadRequest, "Serviço é obrigatório.", nil)
	case errors.Is(err, usecase.ErrInvalidServiceID):
		response.Error(w, http.StatusBadRequest, "Serviço inválido.", nil)
	case errors.Is(err, usecase.ErrInvalidProfessionalID):
		response.Error(w, http.StatusBadRequest, "Profissional inválido.", nil)
	case errors.Is(err, usecase.ErrPastMidnight):
		response.Error(w, http.StatusBadRequest, "O serviço ultrapassaria a meia-noite.", nil)
	case errors.Is(err, usecase.ErrSlotTaken):
		response.ErrorWithCode(w, http.StatusBadRequest,
			"Este horário já está ocupado. Consulte os horários disponíveis.", CodeSlotTaken)
	default:
		h.log.Errorf("Assistant request failed: %+v", err)
		if h.exposeErrors {
			response.Error(w, http.StatusInternalServerError, "Falha ao processar a solicitação.", err.Error())
			return
		}
		response.InternalServerError(w, "Falha ao processar a solicitação.")
	}
}
