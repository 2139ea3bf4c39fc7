package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, http.StatusOK},
		{"not found", NotFound("project", nil), http.StatusNotFound},
		{"bad request", BadRequest("bad", nil), http.StatusBadRequest},
		{"invalid", Invalid("bad", map[string]string{"amount": "required"}), http.StatusBadRequest},
		{"unauthorized", Unauthorized(nil), http.StatusUnauthorized},
		{"unavailable", Unavailable("down", nil), http.StatusServiceUnavailable},
		{"internal", Internal("", nil), http.StatusInternalServerError},
		{"plain", stderrors.New("boom"), http.StatusInternalServerError},
		{"wrapped", fmt.Errorf("loading: %w", NotFound("project", nil)), http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HTTPStatus(tt.err))
		})
	}
}

func TestAppErrorMessage(t *testing.T) {
	err := NotFound("notification", stderrors.New("id n-9"))
	assert.Equal(t, "notification not found: id n-9", err.Error())
	assert.Equal(t, "internal server error", Internal("", nil).Error())
	assert.True(t, Is(fmt.Errorf("x: %w", err), ErrNotFound))
	assert.False(t, Is(err, ErrBadRequest))
}
