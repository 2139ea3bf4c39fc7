package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Handler serves the metrics endpoint
type Handler struct {
	metrics http.Handler
}

// NewHandler creates a new handler instance exposing the given gatherer
func NewHandler(gatherer prometheus.Gatherer) *Handler {
	return &Handler{
		metrics: promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}),
	}
}

func (h *Handler) MetricsHandler(c *gin.Context) {
	h.metrics.ServeHTTP(c.Writer, c.Request)
}
