// Package usecase wires the analysis pipeline: validate, extract, score,
// analyze gaps, recommend, and optionally enrich with narrative content.
package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/fairyhunter13/cv-fit-analyzer/internal/adapter/observability"
	"github.com/fairyhunter13/cv-fit-analyzer/internal/analyzer"
	"github.com/fairyhunter13/cv-fit-analyzer/internal/config"
	"github.com/fairyhunter13/cv-fit-analyzer/internal/domain"
	"github.com/fairyhunter13/cv-fit-analyzer/internal/gap"
	"github.com/fairyhunter13/cv-fit-analyzer/internal/scoring"
	"github.com/fairyhunter13/cv-fit-analyzer/internal/validation"
	"github.com/fairyhunter13/cv-fit-analyzer/pkg/textx"
)

// AnalyzeService runs the full compatibility pipeline. All stages except
// narrative generation are synchronous, pure, and in-process; narrative runs
// under its own timeout and degrades to the static fallback.
type AnalyzeService struct {
	cfg       config.Config
	guard     *validation.Guardrails
	resumes   *analyzer.ResumeExtractor
	jobs      *analyzer.JobExtractor
	scorer    *scoring.Scorer
	gaps      *gap.Analyzer
	engine    *gap.Engine
	extractor domain.TextExtractor
	narrative domain.NarrativeGenerator
	fallback  domain.NarrativeGenerator
}

// NewAnalyzeService constructs the service. narrative may be nil when no
// upstream generator is configured; fallback must not be.
func NewAnalyzeService(
	cfg config.Config,
	guard *validation.Guardrails,
	resumes *analyzer.ResumeExtractor,
	jobs *analyzer.JobExtractor,
	scorer *scoring.Scorer,
	gaps *gap.Analyzer,
	engine *gap.Engine,
	extractor domain.TextExtractor,
	narrative domain.NarrativeGenerator,
	fallback domain.NarrativeGenerator,
) *AnalyzeService {
	return &AnalyzeService{
		cfg:       cfg,
		guard:     guard,
		resumes:   resumes,
		jobs:      jobs,
		scorer:    scorer,
		gaps:      gaps,
		engine:    engine,
		extractor: extractor,
		narrative: narrative,
		fallback:  fallback,
	}
}

// Analyze validates and analyzes raw resume and job posting text.
func (s *AnalyzeService) Analyze(ctx context.Context, resumeText, jobText string, includeNarrative bool) (domain.Report, error) {
	resumeText = textx.SanitizeInput(textx.SanitizeText(resumeText))
	jobText = textx.SanitizeInput(textx.SanitizeText(jobText))

	if res := s.guard.Validate(resumeText, domain.InputResume); !res.Valid {
		observability.RejectInput(string(domain.InputResume), firstIssue(res))
		return domain.Report{}, validation.Reject(res, domain.InputResume)
	}
	if res := s.guard.Validate(jobText, domain.InputJob); !res.Valid {
		observability.RejectInput(string(domain.InputJob), firstIssue(res))
		return domain.Report{}, validation.Reject(res, domain.InputJob)
	}

	resume := s.resumes.Extract(resumeText)
	job := s.jobs.Extract(jobText)

	breakdown := s.scorer.Score(resume, job)
	observability.ObserveAnalysis(breakdown.FinalScore, breakdown.Failed())

	strong, weak, improvements := s.gaps.Analyze(resume, job, breakdown)
	recommendations := s.engine.Generate(resume, job, weak, breakdown)

	report := domain.Report{
		ID:              uuid.NewString(),
		Resume:          resume,
		Job:             job,
		Breakdown:       breakdown,
		StrongPoints:    strong,
		WeakPoints:      weak,
		Improvements:    improvements,
		Recommendations: recommendations,
		CreatedAt:       time.Now().UTC(),
	}

	if includeNarrative {
		n := s.generateNarrative(ctx, resume, job, breakdown)
		report.Narrative = &n
	}

	slog.Info("analysis completed",
		slog.String("report_id", report.ID),
		slog.Int("final_score", breakdown.FinalScore),
		slog.Bool("score_failed", breakdown.Failed()),
		slog.Int("strong_points", len(strong)),
		slog.Int("weak_points", len(weak)),
		slog.Int("recommendations", len(recommendations)))

	return report, nil
}

// AnalyzeFiles extracts plain text from the uploaded documents and then runs
// the text pipeline.
func (s *AnalyzeService) AnalyzeFiles(ctx context.Context, resumeName string, resumeData []byte, jobName string, jobData []byte, includeNarrative bool) (domain.Report, error) {
	resumeText, err := s.extractor.Extract(ctx, resumeName, resumeData)
	if err != nil {
		return domain.Report{}, fmt.Errorf("extract resume: %w", err)
	}
	jobText, err := s.extractor.Extract(ctx, jobName, jobData)
	if err != nil {
		return domain.Report{}, fmt.Errorf("extract job posting: %w", err)
	}
	return s.Analyze(ctx, resumeText, jobText, includeNarrative)
}

// generateNarrative runs the optional enrichment under its own timeout. The
// scoring pipeline has already finished; any upstream failure here only
// downgrades the narrative to the static fallback.
func (s *AnalyzeService) generateNarrative(ctx context.Context, resume domain.ResumeRecord, job domain.JobRecord, b domain.ScoreBreakdown) domain.Narrative {
	if s.narrative != nil && s.cfg.NarrativeEnabled() {
		nctx, cancel := context.WithTimeout(ctx, s.cfg.NarrativeTimeout)
		defer cancel()

		n, err := s.narrative.Generate(nctx, resume, job, b)
		if err == nil {
			return n
		}
		slog.Warn("narrative generator failed, using fallback", slog.Any("error", err))
		observability.NarrativeFallbackTotal.Inc()
	}

	n, err := s.fallback.Generate(ctx, resume, job, b)
	if err != nil {
		// The static generator cannot fail; guard anyway.
		slog.Error("fallback narrative failed", slog.Any("error", err))
		return domain.Narrative{Fallback: true}
	}
	return n
}

func firstIssue(res domain.ValidationResult) string {
	if len(res.Issues) > 0 {
		return res.Issues[0]
	}
	return "invalid"
}
