package session

import (
	"errors"

	"github.com/aaravmahajanofficial/nutricart/pkg/storefront"
)

// GenericErrorMessage is shown for failures that carry no server message.
const GenericErrorMessage = "Something went wrong. Please try again."

var (
	// ErrNotAuthenticated is returned without a network call when no user is
	// signed in. Callers treat it as a silent no-op.
	ErrNotAuthenticated = errors.New("not authenticated")

	ErrInvalidTier = errors.New("upgrade target must be premium or pro")
)

// PaymentError is a declined or failed charge.
type PaymentError struct {
	Message string
	Err     error
}

func (e *PaymentError) Error() string {
	if e.Err != nil {
		return "payment failed: " + e.Err.Error()
	}

	return "payment failed: " + e.Message
}

func (e *PaymentError) Unwrap() error {
	return e.Err
}

// UserMessage converts err into the text shown to the user. It returns "" for
// nil and for ErrNotAuthenticated, which are never surfaced.
func UserMessage(err error) string {
	if err == nil || errors.Is(err, ErrNotAuthenticated) {
		return ""
	}

	var apiErr *storefront.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}

	var payErr *PaymentError
	if errors.As(err, &payErr) && payErr.Message != "" {
		return payErr.Message
	}

	if errors.Is(err, ErrInvalidTier) {
		return "Choose the premium or pro plan to upgrade."
	}

	return GenericErrorMessage
}
