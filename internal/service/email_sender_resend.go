package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/resend/resend-go/v2"
)

// ResendEmailSender delivers passcodes through the Resend API.
type ResendEmailSender struct {
	client *resend.Client
	from   string
}

func NewResendEmailSender(apiKey string, from string) *ResendEmailSender {
	if strings.TrimSpace(apiKey) == "" || strings.TrimSpace(from) == "" {
		return &ResendEmailSender{}
	}
	return &ResendEmailSender{
		client: resend.NewClient(apiKey),
		from:   from,
	}
}

func (s *ResendEmailSender) SendPasscodeEmail(ctx context.Context, email string, code string) error {
	if s.client == nil {
		return errors.New("email sender not configured")
	}

	params := &resend.SendEmailRequest{
		From:    s.from,
		To:      []string{email},
		Subject: "Tu código de verificación",
		Html: fmt.Sprintf(
			"<p>Ingresa este código para continuar:</p><p style=\"font-size:28px;letter-spacing:4px\"><strong>%s</strong></p><p>El código expira en 3 minutos. Si no lo solicitaste, ignora este correo.</p>",
			code,
		),
		Text: fmt.Sprintf("Tu código de verificación es %s. Expira en 3 minutos.", code),
	}

	if _, err := s.client.Emails.Send(params); err != nil {
		return err
	}
	return nil
}
