package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindsAreDistinguishable(t *testing.T) {
	err := NotFound("Order dengan ID 7 tidak ditemukan")
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.False(t, errors.Is(err, ErrForbidden))
	assert.Equal(t, "Order dengan ID 7 tidak ditemukan", err.Error())
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{NotFound("x"), http.StatusNotFound},
		{Forbidden("x"), http.StatusForbidden},
		{Validation("x"), http.StatusBadRequest},
		{IllegalTransition("x"), http.StatusUnprocessableEntity},
		{PreconditionFailed("x"), http.StatusBadRequest},
		{Conflict("x"), http.StatusConflict},
		{Unauthorized("x"), http.StatusUnauthorized},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, HTTPStatus(tt.err))
	}
}

func TestHTTPStatus_WrappedError(t *testing.T) {
	err := fmt.Errorf("creating order: %w", Validation("Menu tidak tersedia"))
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(err))
}
