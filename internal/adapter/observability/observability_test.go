package observability

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fairyhunter13/cv-fit-analyzer/internal/config"
)

func TestSetupLogger(t *testing.T) {
	logger := SetupLogger(config.Config{AppEnv: "dev", ServiceName: "cv-fit-analyzer"})
	require.NotNil(t, logger)
	logger.Info("logger smoke test")
}

func TestHTTPMetricsMiddleware_PassesThrough(t *testing.T) {
	h := HTTPMetricsMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
		_, _ = w.Write([]byte("ok"))
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/analyze", nil))

	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}

func TestObserveAnalysis_NoPanic(t *testing.T) {
	ObserveAnalysis(85, false)
	ObserveAnalysis(0, true)
	ObserveAnalysis(-1, false)
	RejectInput("resume", "too_short")
}
