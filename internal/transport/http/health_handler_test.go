package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"drecli/internal/services"
	"drecli/internal/shared/testutil"
	"drecli/pkg/contracts"
)

type staticSource services.StatementInfo

func (s staticSource) Info() services.StatementInfo { return services.StatementInfo(s) }

func TestHealthHandler(t *testing.T) {
	logger, _ := testutil.NewTestLogger(t)
	ready := staticSource{Source: "dre.xlsx", Periods: 12, Accounts: 80, Categories: 20, LoadedAt: time.Now()}

	tests := []struct {
		name           string
		source         services.StatementSource
		handler        func(h *HealthHandler) http.HandlerFunc
		expectedStatus int
		expectedState  string
	}{
		{"health check", ready, func(h *HealthHandler) http.HandlerFunc { return h.HealthCheck }, http.StatusOK, "ok"},
		{"ready", ready, func(h *HealthHandler) http.HandlerFunc { return h.ReadinessCheck }, http.StatusOK, "ready"},
		{"not ready", nil, func(h *HealthHandler) http.HandlerFunc { return h.ReadinessCheck }, http.StatusServiceUnavailable, "not_ready"},
		{"live", nil, func(h *HealthHandler) http.HandlerFunc { return h.LivenessCheck }, http.StatusOK, "alive"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHealthHandler(services.NewHealthService(contracts.BuildInfo{Version: "v1.0.0-test"}, tt.source, logger), logger)

			rec := httptest.NewRecorder()
			tt.handler(h)(rec, httptest.NewRequest(http.MethodGet, "/api/health", nil))
			assert.Equal(t, tt.expectedStatus, rec.Code)

			var body map[string]interface{}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.expectedState, body["status"])
			assert.Equal(t, "v1.0.0-test", body["version"])
		})
	}

	t.Run("version", func(t *testing.T) {
		h := NewHealthHandler(services.NewHealthService(contracts.BuildInfo{Version: "v1.0.0-test", BuildTime: "today"}, ready, logger), logger)
		rec := httptest.NewRecorder()
		h.Version(rec, httptest.NewRequest(http.MethodGet, "/api/version", nil))

		var body map[string]interface{}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "today", body["build_time"])
		assert.Equal(t, "v1.0.0-test", body["version"])
		assert.Contains(t, body, "start_time")
	})
}

func TestMetricsHandler(t *testing.T) {
	registry := prometheus.NewRegistry()
	counter := prometheus.NewCounter(prometheus.CounterOpts{Name: "dre_test_total", Help: "test"})
	registry.MustRegister(counter)
	counter.Inc()

	h := NewMetricsHandler(promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "dre_test_total 1"), rec.Body.String())

	assert.NotNil(t, NewMetricsHandler(nil).exporter)
}
