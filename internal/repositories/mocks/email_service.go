package mocks

import (
	"context"

	"github.com/aaravmahajanofficial/nutricart/internal/models"
	"github.com/stretchr/testify/mock"
)

// EmailService stands in for the SendGrid sender.
type EmailService struct {
	mock.Mock
}

func (m *EmailService) Send(ctx context.Context, msg *models.EmailMessage) error {
	return m.Called(ctx, msg).Error(0)
}
