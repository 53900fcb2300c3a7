package dto

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetHTTPStatus(t *testing.T) {
	t.Run("maps known codes", func(t *testing.T) {
		assert.Equal(t, http.StatusNotFound, GetHTTPStatus(ErrCodeNotFound))
		assert.Equal(t, http.StatusBadRequest, GetHTTPStatus(ErrCodeValidation))
		assert.Equal(t, http.StatusUnprocessableEntity, GetHTTPStatus(ErrCodeInvalidState))
		assert.Equal(t, http.StatusServiceUnavailable, GetHTTPStatus(ErrCodeStoreUnavailable))
	})

	t.Run("defaults to 500 for unknown codes", func(t *testing.T) {
		assert.Equal(t, http.StatusInternalServerError, GetHTTPStatus("ERR_SOMETHING_ELSE"))
	})
}

func TestNormalizeErrorCode(t *testing.T) {
	t.Run("maps domain codes", func(t *testing.T) {
		assert.Equal(t, ErrCodeNotFound, NormalizeErrorCode("NOT_FOUND"))
		assert.Equal(t, ErrCodeStoreUnavailable, NormalizeErrorCode("PERSISTENCE_FAILURE"))
		assert.Equal(t, ErrCodeInvalidInput, NormalizeErrorCode("INVALID_STATUS"))
	})

	t.Run("passes unknown codes through", func(t *testing.T) {
		assert.Equal(t, "ERR_CUSTOM", NormalizeErrorCode("ERR_CUSTOM"))
	})
}

func TestNewValidationErrorResponse(t *testing.T) {
	resp := NewValidationErrorResponse("Request validation failed", "req-1", []ValidationDetail{
		{Field: "description", Message: "This field is required"},
	})

	assert.False(t, resp.Success)
	assert.Equal(t, ErrCodeValidation, resp.Error.Code)
	assert.Equal(t, "req-1", resp.Error.RequestID)
	assert.Len(t, resp.Error.Details, 1)
}
