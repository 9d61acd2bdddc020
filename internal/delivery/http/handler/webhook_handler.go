package handler

import (
	"encoding/json"
	"net/http"

	"cronosflow/internal/delivery/dto"
	"cronosflow/internal/usecase"

	"github.com/sirupsen/logrus"
)

type WebhookHandler struct {
	confirmationUsecase usecase.ConfirmationUsecase
	log                 *logrus.Logger
}

func NewWebhookHandler(confirmationUsecase usecase.ConfirmationUsecase, log *logrus.Logger) *WebhookHandler {
	return &WebhookHandler{
		confirmationUsecase: confirmationUsecase,
		log:                 log,
	}
}

// Confirmar acknowledges every delivery with 200. A non-2xx would make the
// database side retry the webhook, and a confirmation message is not worth a
// retry storm.
func (h *WebhookHandler) Confirmar(w http.ResponseWriter, r *http.Request) {
	var req dto.ConfirmationWebhookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log.Warnf("Unreadable webhook payload: %+v", err)
	} else if err := h.confirmationUsecase.HandleAppointmentMoved(r.Context(), &req); err != nil {
		h.log.Errorf("Webhook handling failed: %+v", err)
	}

	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}
