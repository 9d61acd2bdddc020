package usecase

import (
	"context"
	"fmt"
	"strings"

	"cronosflow/config"
	"cronosflow/internal/delivery/dto"
	"cronosflow/internal/notify"
	"cronosflow/internal/scheduling"

	"github.com/sirupsen/logrus"
)

type ConfirmationUsecase interface {
	// HandleAppointmentMoved reacts to an appointment-row update from the
	// database webhook. Never returns an error for send failures: the webhook
	// must always be acknowledged or the database side retries forever.
	HandleAppointmentMoved(ctx context.Context, req *dto.ConfirmationWebhookRequest) error
}

type confirmationUsecase struct {
	log    *logrus.Logger
	cfg    config.BookingConfig
	sender notify.TextSender
}

func NewConfirmationUsecase(log *logrus.Logger, cfg config.BookingConfig, sender notify.TextSender) ConfirmationUsecase {
	return &confirmationUsecase{
		log:    log,
		cfg:    cfg,
		sender: sender,
	}
}

func (u *confirmationUsecase) HandleAppointmentMoved(ctx context.Context, req *dto.ConfirmationWebhookRequest) error {
	if !u.movedOffHoldingQueue(req) {
		return nil
	}

	record := req.Record
	if record.ClienteTelefone == "" {
		u.log.Warnf("Appointment for %q moved off holding queue but has no phone, skipping confirmation", record.ClienteNome)
		return nil
	}

	message := fmt.Sprintf(
		"Olá, %s! ✨ Passando para confirmar que seu horário foi reservado para o dia %s às %s. Te esperamos! 💖",
		record.ClienteNome, formatBRDate(record.Data), scheduling.HHMM(record.HoraInicio),
	)

	if err := u.sender.SendText(ctx, record.ClienteTelefone, message); err != nil {
		u.log.Errorf("Failed to send confirmation to %s: %+v", record.ClienteTelefone, err)
		return nil
	}

	u.log.Infof("Confirmation sent to %s", record.ClienteNome)
	return nil
}

// movedOffHoldingQueue detects the transition that matters: the dashboard
// dragging an automated booking from the holding queue onto a real
// professional's calendar.
func (u *confirmationUsecase) movedOffHoldingQueue(req *dto.ConfirmationWebhookRequest) bool {
	holding := u.cfg.HoldingProfessionalID
	if holding == "" {
		return false
	}
	return req.OldRecord.ProfissionalID == holding &&
		req.Record.ProfissionalID != holding &&
		req.Record.ProfissionalID != ""
}

// formatBRDate turns YYYY-MM-DD into the DD/MM/YYYY the recipient expects.
func formatBRDate(isoDate string) string {
	parts := strings.Split(isoDate, "-")
	if len(parts) != 3 {
		return isoDate
	}
	return parts[2] + "/" + parts[1] + "/" + parts[0]
}
