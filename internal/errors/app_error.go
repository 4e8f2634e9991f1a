// Package errors defines the AppError carried from services to the HTTP
// envelope. Code is what clients branch on; StatusCode follows from it.
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

const (
	ErrCodeValidation        = "VALIDATION_ERROR"
	ErrCodeBadRequest        = "BAD_REQUEST"
	ErrCodeNotFound          = "NOT_FOUND"
	ErrCodeUnauthorized      = "UNAUTHORIZED"
	ErrCodeForbidden         = "FORBIDDEN"
	ErrCodeInternal          = "INTERNAL_ERROR"
	ErrCodeDatabaseError     = "DATABASE_ERROR"
	ErrCodeDuplicateEntry    = "DUPLICATE_ENTRY"
	ErrCodeThirdPartyError   = "THIRD_PARTY_ERROR"
	ErrCodeTooManyRequests   = "TOO_MANY_REQUESTS"
	ErrCodeInvalidCoupon     = "INVALID_COUPON"
	ErrCodeInsufficientStock = "INSUFFICIENT_STOCK"
	ErrCodeEmptyCart         = "EMPTY_CART"
)

var statusByCode = map[string]int{
	ErrCodeValidation:        http.StatusBadRequest,
	ErrCodeBadRequest:        http.StatusBadRequest,
	ErrCodeNotFound:          http.StatusNotFound,
	ErrCodeUnauthorized:      http.StatusUnauthorized,
	ErrCodeForbidden:         http.StatusForbidden,
	ErrCodeInternal:          http.StatusInternalServerError,
	ErrCodeDatabaseError:     http.StatusInternalServerError,
	ErrCodeDuplicateEntry:    http.StatusConflict,
	ErrCodeThirdPartyError:   http.StatusBadGateway,
	ErrCodeTooManyRequests:   http.StatusTooManyRequests,
	ErrCodeInvalidCoupon:     http.StatusBadRequest,
	ErrCodeInsufficientStock: http.StatusConflict,
	ErrCodeEmptyCart:         http.StatusBadRequest,
}

type AppError struct {
	Code       string
	Message    string
	Detail     string
	StatusCode int
	Err        error
}

func (e *AppError) Error() string { return e.Message }

func (e *AppError) Unwrap() error { return e.Err }

// WithDetail adds a line to the envelope's details list.
func (e *AppError) WithDetail(detail string) *AppError {
	e.Detail = detail

	return e
}

// WithError keeps the cause for logs and errors.Is; it is never sent to clients.
func (e *AppError) WithError(err error) *AppError {
	e.Err = err

	return e
}

func coded(code, message string) *AppError {
	status, ok := statusByCode[code]
	if !ok {
		status = http.StatusInternalServerError
	}

	return &AppError{Code: code, Message: message, StatusCode: status}
}

func ValidationError(message string) *AppError { return coded(ErrCodeValidation, message) }

func BadRequestError(message string) *AppError { return coded(ErrCodeBadRequest, message) }

func NotFoundError(message string) *AppError { return coded(ErrCodeNotFound, message) }

func UnauthorizedError(message string) *AppError { return coded(ErrCodeUnauthorized, message) }

func ForbiddenError(message string) *AppError { return coded(ErrCodeForbidden, message) }

func InternalError(message string) *AppError { return coded(ErrCodeInternal, message) }

func DatabaseError(message string) *AppError { return coded(ErrCodeDatabaseError, message) }

func DuplicateEntryError(message string) *AppError { return coded(ErrCodeDuplicateEntry, message) }

// ThirdPartyError is for payment and email provider failures.
func ThirdPartyError(message string) *AppError { return coded(ErrCodeThirdPartyError, message) }

func TooManyRequestsError(message string) *AppError { return coded(ErrCodeTooManyRequests, message) }

func InvalidCouponError(message string) *AppError { return coded(ErrCodeInvalidCoupon, message) }

func InsufficientStockError(productName string) *AppError {
	return coded(ErrCodeInsufficientStock, fmt.Sprintf("Not enough stock for %s", productName))
}

func EmptyCartError() *AppError { return coded(ErrCodeEmptyCart, "Your cart is empty") }

func IsAppError(err error) (*AppError, bool) {
	var appError *AppError

	if errors.As(err, &appError) {
		return appError, true
	}

	return nil, false
}

// HasCode reports whether err is an AppError carrying code.
func HasCode(err error, code string) bool {
	appErr, ok := IsAppError(err)

	return ok && appErr.Code == code
}
