package http

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsHandler exposes Prometheus metrics
type MetricsHandler struct {
	exporter http.Handler
}

// NewMetricsHandler serves exporter, typically the OpenTelemetry Prometheus
// exporter's registry. A nil exporter serves the default Prometheus
// registry.
func NewMetricsHandler(exporter http.Handler) *MetricsHandler {
	if exporter == nil {
		exporter = promhttp.Handler()
	}
	return &MetricsHandler{exporter: exporter}
}

// ServeHTTP handles GET /metrics
func (h *MetricsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.exporter.ServeHTTP(w, r)
}
