package remote

import (
	"context"
	"fmt"
	"net/http"
	"skinwatch/internal/models"
)

type EmailMessage struct {
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

type MailRelayInterface interface {
	SendEmail(ctx context.Context, token string, msg EmailMessage) error
}

func NewMailRelay(c *Client) MailRelayInterface {
	return c
}

func (c *Client) SendEmail(ctx context.Context, token string, msg EmailMessage) error {
	if err := c.do(ctx, http.MethodPost, "/api/send-email", token, msg, nil); err != nil {
		return fmt.Errorf("%w: %w", models.ErrDeliveryFailed, err)
	}
	return nil
}
