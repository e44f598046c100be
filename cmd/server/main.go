// Command server starts the resume/job fit analyzer HTTP server.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	ai "github.com/fairyhunter13/cv-fit-analyzer/internal/adapter/ai"
	httpserver "github.com/fairyhunter13/cv-fit-analyzer/internal/adapter/httpserver"
	"github.com/fairyhunter13/cv-fit-analyzer/internal/adapter/observability"
	"github.com/fairyhunter13/cv-fit-analyzer/internal/adapter/report"
	localext "github.com/fairyhunter13/cv-fit-analyzer/internal/adapter/textextractor/local"
	"github.com/fairyhunter13/cv-fit-analyzer/internal/analyzer"
	"github.com/fairyhunter13/cv-fit-analyzer/internal/app"
	"github.com/fairyhunter13/cv-fit-analyzer/internal/config"
	"github.com/fairyhunter13/cv-fit-analyzer/internal/domain"
	"github.com/fairyhunter13/cv-fit-analyzer/internal/gap"
	"github.com/fairyhunter13/cv-fit-analyzer/internal/scoring"
	"github.com/fairyhunter13/cv-fit-analyzer/internal/usecase"
	"github.com/fairyhunter13/cv-fit-analyzer/internal/validation"
	"github.com/fairyhunter13/cv-fit-analyzer/internal/vocab"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger := observability.SetupLogger(cfg)
	slog.SetDefault(logger)

	// Register all Prometheus metrics once per process so that /metrics
	// exposes HTTP, AI, and analysis instrumentation.
	observability.InitMetrics()

	voc, err := vocab.Default()
	if err != nil {
		slog.Error("vocabulary load failed", slog.Any("error", err))
		os.Exit(1)
	}

	guard := validation.NewGuardrails(validation.Thresholds{
		MinResumeChars: cfg.MinResumeChars,
		MinJobChars:    cfg.MinJobChars,
		Injection:      cfg.InjectionThreshold,
		ResumeShape:    cfg.ResumeShapeMinRatio,
		JobShape:       cfg.JobShapeMinRatio,
		Suspicious:     cfg.SuspiciousThreshold,
	})

	resumes := analyzer.NewResumeExtractor(voc)
	jobs := analyzer.NewJobExtractor(voc, cfg.RequiredSkillsFallback)
	scorer := scoring.NewScorer(scoring.DefaultWeights(), voc.AcademicFriendlyIndustries)
	gaps := gap.NewAnalyzer(voc.AcademicFriendlyIndustries)
	engine := gap.NewEngine()

	// Narrative generation is optional: without an API key only the static
	// fallback runs.
	var narrative domain.NarrativeGenerator
	if cfg.NarrativeEnabled() {
		narrative = ai.New(cfg)
		slog.Info("narrative generator enabled", slog.String("model", cfg.AIModel))
	} else {
		slog.Info("narrative generator disabled, using static fallback only")
	}

	svc := usecase.NewAnalyzeService(
		cfg,
		guard,
		resumes,
		jobs,
		scorer,
		gaps,
		engine,
		localext.New(),
		narrative,
		ai.NewFallback(),
	)

	srv := httpserver.NewServer(cfg, svc, report.RenderMarkdown)
	handler := app.BuildRouter(cfg, srv)

	srvHTTP := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           handler,
		ReadTimeout:       cfg.HTTPReadTimeout,
		WriteTimeout:      cfg.HTTPWriteTimeout,
		IdleTimeout:       cfg.HTTPIdleTimeout,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("http server starting", slog.Int("port", cfg.Port))
		errCh <- srvHTTP.ListenAndServe()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		slog.Info("shutdown signal received", slog.String("signal", sig.String()))
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", slog.Any("error", err))
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ServerShutdownTimeout)
	defer cancel()
	_ = srvHTTP.Shutdown(shutdownCtx)
}
