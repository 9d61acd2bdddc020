// Package notify sends outbound messages through the WhatsWave gateway.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"cronosflow/config"

	"github.com/sirupsen/logrus"
)

// TextSender sends a plain text message to a phone number.
type TextSender interface {
	SendText(ctx context.Context, number, text string) error
}

type WhatsAppClient struct {
	baseURL    string
	instanceID string
	token      string
	httpClient *http.Client
	log        *logrus.Logger
}

func NewWhatsAppClient(cfg config.WhatsAppConfig, log *logrus.Logger) *WhatsAppClient {
	return &WhatsAppClient{
		baseURL:    cfg.BaseURL,
		instanceID: cfg.InstanceID,
		token:      cfg.Token,
		httpClient: &http.Client{Timeout: 15 * time.Second},
		log:        log,
	}
}

type sendTextRequest struct {
	Number    string `json:"number"`
	Text      string `json:"text"`
	TimeDelay int    `json:"time_delay"`
}

// SendText posts a sendText message to the gateway. The two-second delay makes
// automated confirmations look less robotic to the recipient.
func (c *WhatsAppClient) SendText(ctx context.Context, number, text string) error {
	payload := sendTextRequest{
		Number:    number,
		Text:      text,
		TimeDelay: 2,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal sendText payload: %w", err)
	}

	url := fmt.Sprintf("%s/messages/sendText", c.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build sendText request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send whatsapp message: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("whatsapp gateway returned %d: %s", resp.StatusCode, string(detail))
	}

	c.log.Debugf("WhatsApp message sent to %s", number)
	return nil
}
