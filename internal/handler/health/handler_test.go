package health

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func setup(checks map[string]Check) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewHandler(checks).RegisterRoutes(r.Group(""))
	return r
}

func TestLiveness(t *testing.T) {
	w := httptest.NewRecorder()
	setup(nil).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health/live", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"UP"}`, w.Body.String())
}

func TestReadiness(t *testing.T) {
	ok := setup(map[string]Check{"broker": func(context.Context) error { return nil }})
	w := httptest.NewRecorder()
	ok.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health/ready", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	down := setup(map[string]Check{"broker": func(context.Context) error { return errors.New("circuit open") }})
	w = httptest.NewRecorder()
	down.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health/ready", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "broker: circuit open")
}
