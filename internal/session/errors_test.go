package session_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/aaravmahajanofficial/nutricart/internal/session"
	"github.com/aaravmahajanofficial/nutricart/pkg/storefront"
	"github.com/stretchr/testify/assert"
)

func TestUserMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{"not authenticated is silent", fmt.Errorf("add: %w", session.ErrNotAuthenticated), ""},
		{"server message verbatim", &storefront.APIError{StatusCode: 409, Code: "INSUFFICIENT_STOCK", Message: "Not enough stock for Rolled Oats"}, "Not enough stock for Rolled Oats"},
		{"server error without message", &storefront.APIError{StatusCode: 502}, session.GenericErrorMessage},
		{"network error", &storefront.NetworkError{Method: "GET", Path: "/cart", Err: errors.New("connection refused")}, session.GenericErrorMessage},
		{"cancelled", context.Canceled, session.GenericErrorMessage},
		{"payment declined", &session.PaymentError{Message: "Your payment could not be completed."}, "Your payment could not be completed."},
		{"invalid tier", session.ErrInvalidTier, "Choose the premium or pro plan to upgrade."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, session.UserMessage(tt.err))
		})
	}
}
