package mocks

import (
	"context"

	repository "github.com/aaravmahajanofficial/nutricart/internal/repositories"
	"github.com/stretchr/testify/mock"
)

type RateLimitRepository struct {
	mock.Mock
}

func (m *RateLimitRepository) CheckLoginRateLimit(ctx context.Context, email string) (repository.RateLimitResult, error) {
	args := m.Called(ctx, email)
	result, _ := args.Get(0).(repository.RateLimitResult)

	return result, args.Error(1)
}

func (m *RateLimitRepository) ResetLoginAttempts(ctx context.Context, email string) error {
	return m.Called(ctx, email).Error(0)
}
