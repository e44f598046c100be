package app_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	httpserver "github.com/fairyhunter13/cv-fit-analyzer/internal/adapter/httpserver"
	"github.com/fairyhunter13/cv-fit-analyzer/internal/app"
	"github.com/fairyhunter13/cv-fit-analyzer/internal/config"
	"github.com/fairyhunter13/cv-fit-analyzer/internal/domain"
)

type fixedAnalyzer struct{ report domain.Report }

func (f fixedAnalyzer) Analyze(_ context.Context, _, _ string, _ bool) (domain.Report, error) {
	return f.report, nil
}

func (f fixedAnalyzer) AnalyzeFiles(_ context.Context, _ string, _ []byte, _ string, _ []byte, _ bool) (domain.Report, error) {
	return f.report, nil
}

func testRouter(t *testing.T) http.Handler {
	t.Helper()
	cfg := config.Config{MaxUploadMB: 1, RateLimitPerMin: 100, CORSAllowOrigins: "*"}
	srv := httpserver.NewServer(cfg, fixedAnalyzer{report: domain.Report{ID: "r1"}}, nil)
	return app.BuildRouter(cfg, srv)
}

func TestParseOrigins(t *testing.T) {
	t.Parallel()
	assert.Equal(t, []string{"*"}, app.ParseOrigins(""))
	assert.Equal(t, []string{"*"}, app.ParseOrigins("*"))
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, app.ParseOrigins(" https://a.example , https://b.example "))
	assert.Equal(t, []string{"*"}, app.ParseOrigins(" , "))
}

func TestRouter_Healthz(t *testing.T) {
	t.Parallel()
	r := testRouter(t)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
}

func TestRouter_Metrics(t *testing.T) {
	t.Parallel()
	r := testRouter(t)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestRouter_Analyze(t *testing.T) {
	t.Parallel()
	r := testRouter(t)
	body := `{"resume_text":"a","job_text":"b"}`
	req := httptest.NewRequest(http.MethodPost, "/v1/analyze", strings.NewReader(body))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("X-Request-Id"))
	assert.Contains(t, rec.Body.String(), `"id":"r1"`)
}

func TestRouter_MethodNotAllowed(t *testing.T) {
	t.Parallel()
	r := testRouter(t)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/analyze", nil))
	require.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
