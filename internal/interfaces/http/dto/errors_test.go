package dto

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetHTTPStatus(t *testing.T) {
	t.Run("maps known codes", func(t *testing.T) {
		assert.Equal(t, http.StatusNotFound, GetHTTPStatus(ErrCodeNotFound))
		assert.Equal(t, http.StatusConflict, GetHTTPStatus(ErrCodeAlreadyExists))
		assert.Equal(t, http.StatusUnauthorized, GetHTTPStatus(ErrCodeInvalidCredentials))
		assert.Equal(t, http.StatusForbidden, GetHTTPStatus(ErrCodeAccountInactive))
		assert.Equal(t, http.StatusBadRequest, GetHTTPStatus(ErrCodeInsufficientStock))
		assert.Equal(t, http.StatusNotImplemented, GetHTTPStatus(ErrCodeNotConfigured))
	})

	t.Run("treats domain validation codes as bad request", func(t *testing.T) {
		assert.Equal(t, http.StatusBadRequest, GetHTTPStatus("INVALID_PRODUCT_ID"))
		assert.Equal(t, http.StatusBadRequest, GetHTTPStatus("EMPTY_CHANGE"))
	})

	t.Run("defaults unknown codes to internal error", func(t *testing.T) {
		assert.Equal(t, http.StatusInternalServerError, GetHTTPStatus("SOMETHING_ODD"))
	})
}

func TestNormalizeErrorCode(t *testing.T) {
	assert.Equal(t, ErrCodeNotFound, NormalizeErrorCode("NOT_FOUND"))
	assert.Equal(t, ErrCodeInsufficientStock, NormalizeErrorCode("INSUFFICIENT_STOCK"))
	assert.Equal(t, "INVALID_TITLE", NormalizeErrorCode("INVALID_TITLE"))
	assert.Equal(t, ErrCodeNotFound, NormalizeErrorCode(ErrCodeNotFound))
}
