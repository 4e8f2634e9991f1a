package sendgrid

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aaravmahajanofficial/nutricart/internal/models"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

type EmailService interface {
	Send(ctx context.Context, msg *models.EmailMessage) error
}

type emailService struct {
	client    *sendgrid.Client
	fromEmail string
	fromName  string
}

// NewEmailService returns a SendGrid backed sender. With no API key it
// returns a sender that only logs, so local environments run without
// credentials.
func NewEmailService(apiKey string, fromEmail string, fromName string) EmailService {
	if apiKey == "" {
		return logOnlyService{}
	}

	return NewEmailServiceWithClient(sendgrid.NewSendClient(apiKey), fromEmail, fromName)
}

func NewEmailServiceWithClient(client *sendgrid.Client, fromEmail string, fromName string) EmailService {
	return &emailService{client: client, fromEmail: fromEmail, fromName: fromName}
}

func (e *emailService) Send(ctx context.Context, msg *models.EmailMessage) error {
	personalization := mail.NewPersonalization()
	personalization.AddTos(mail.NewEmail("", msg.To))

	for _, cc := range msg.CC {
		personalization.AddCCs(mail.NewEmail("", cc))
	}

	for _, bcc := range msg.BCC {
		personalization.AddBCCs(mail.NewEmail("", bcc))
	}

	personalization.Subject = msg.Subject

	message := mail.NewV3Mail()
	message.SetFrom(mail.NewEmail(e.fromName, e.fromEmail))
	message.AddPersonalizations(personalization)
	message.AddContent(mail.NewContent("text/plain", msg.Content))

	if msg.HTMLContent != "" {
		message.AddContent(mail.NewContent("text/html", msg.HTMLContent))
	}

	response, err := e.client.SendWithContext(ctx, message)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	if response.StatusCode >= 400 {
		return fmt.Errorf("failed to send email, status code: %d", response.StatusCode)
	}

	return nil
}

type logOnlyService struct{}

func (logOnlyService) Send(ctx context.Context, msg *models.EmailMessage) error {
	slog.InfoContext(ctx, "Email delivery disabled, message dropped",
		slog.String("to", msg.To),
		slog.String("subject", msg.Subject),
	)

	return nil
}
