package response_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	appErrors "github.com/aaravmahajanofficial/nutricart/internal/errors"
	"github.com/aaravmahajanofficial/nutricart/internal/utils/response"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSuccess(t *testing.T) {
	rr := httptest.NewRecorder()

	response.Success(rr, http.StatusCreated, map[string]string{"id": "42"})

	assert.Equal(t, http.StatusCreated, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"success":true,"data":{"id":"42"}}`, rr.Body.String())
}

func TestError(t *testing.T) {
	t.Run("App error keeps code and message", func(t *testing.T) {
		rr := httptest.NewRecorder()

		response.Error(rr, appErrors.InvalidCouponError("Coupon has expired").WithDetail("SAVE10"))

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		var resp response.APIResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.False(t, resp.Success)
		assert.Equal(t, appErrors.ErrCodeInvalidCoupon, resp.Error.Code)
		assert.Equal(t, "Coupon has expired", resp.Error.Message)
		assert.Equal(t, []string{"SAVE10"}, resp.Error.Details)
	})

	t.Run("Unknown error is opaque", func(t *testing.T) {
		rr := httptest.NewRecorder()

		response.Error(rr, errors.New("pq: connection refused"))

		assert.Equal(t, http.StatusInternalServerError, rr.Code)
		assert.NotContains(t, rr.Body.String(), "pq:")
		assert.Contains(t, rr.Body.String(), appErrors.ErrCodeInternal)
	})
}
