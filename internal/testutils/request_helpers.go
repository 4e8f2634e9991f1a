// Package testutils builds requests for handler tests the way the router and
// auth middleware would hand them over.
package testutils

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"

	"github.com/aaravmahajanofficial/nutricart/internal/api/middleware"
	"github.com/aaravmahajanofficial/nutricart/internal/models"
	"github.com/google/uuid"
)

// TestEmail is the email carried by claims built with AsUser.
const TestEmail = "test@example.com"

type RequestOption func(*http.Request) *http.Request

// AsUser attaches claims for userID, as the auth middleware does after a
// valid bearer token.
func AsUser(userID uuid.UUID) RequestOption {
	return WithClaims(&models.Claims{UserID: userID, Email: TestEmail})
}

func WithClaims(claims *models.Claims) RequestOption {
	return func(r *http.Request) *http.Request {
		return r.WithContext(context.WithValue(r.Context(), middleware.UserContextKey, claims))
	}
}

// WithPathValues sets the wildcards the mux would have matched.
func WithPathValues(values map[string]string) RequestOption {
	return func(r *http.Request) *http.Request {
		for key, value := range values {
			r.SetPathValue(key, value)
		}

		return r
	}
}

// NewRequest returns a request with a discarding logger in its context. It is
// anonymous unless AsUser or WithClaims is given.
func NewRequest(method, target string, body io.Reader, opts ...RequestOption) *http.Request {
	req := httptest.NewRequest(method, target, body)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	req = req.WithContext(context.WithValue(req.Context(), middleware.LoggerKey, logger))

	for _, opt := range opts {
		req = opt(req)
	}

	return req
}
