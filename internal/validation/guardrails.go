// Package validation is the pipeline front door: heuristic checks that input
// text plausibly is a resume or job posting and is free of prompt-injection
// or placeholder content. It runs before extraction; a rejection is a normal
// control-flow outcome carrying a user-facing reason, not an internal fault.
package validation

import (
	"fmt"
	"log/slog"
	"regexp"
	"unicode/utf8"

	"github.com/fairyhunter13/cv-fit-analyzer/internal/domain"
)

// Thresholds are the tunable rejection limits. Deployments adjust them via
// configuration; DefaultThresholds is the standard production set.
type Thresholds struct {
	MinResumeChars int
	MinJobChars    int
	// Injection is the normalized injection-pattern score above which input
	// is rejected.
	Injection float64
	// ResumeShape / JobShape are the minimum fractions of the shape
	// checklists the input must match.
	ResumeShape float64
	JobShape    float64
	// Suspicious is the normalized placeholder-content score above which
	// input is rejected.
	Suspicious float64
}

// DefaultThresholds returns the standard production limits.
func DefaultThresholds() Thresholds {
	return Thresholds{
		MinResumeChars: 100,
		MinJobChars:    150,
		Injection:      0.3,
		ResumeShape:    0.4,
		JobShape:       0.3,
		Suspicious:     0.2,
	}
}

var injectionPatterns = compileAll(
	`ignore\s+(?:previous|all|above|prior)\s+(?:instructions?|prompts?|rules?)`,
	`(?:forget|disregard|bypass)\s+(?:your|the)\s+(?:instructions?|rules?|guidelines?)`,
	`(?:act|pretend|roleplay)\s+(?:as|like)\s+(?:a|an)?\s*(?:different|other)`,
	`you\s+are\s+(?:now|a|an)\s+(?:different|new|other)`,
	`(?:system|admin|root|developer)\s*(?:mode|access|override)`,
	`(?:tell|show|give)\s+me\s+(?:your|the)\s+(?:prompt|instructions?|system)`,
	`what\s+(?:are|were)\s+(?:your|the)\s+(?:original|initial)\s+instructions`,
	`(?:reveal|expose|show)\s+(?:hidden|secret|internal)\s+(?:prompt|instructions?)`,
	`(?:jailbreak|exploit|hack|bypass)\s+(?:the|your)\s+(?:system|ai|model)`,
	`(?:\\n|\\r|\\t|\\\\|/\*|\*/|<script|javascript:|data:)`,
)

// resumeShapePatterns is the checklist of elements a real resume exhibits.
var resumeShapePatterns = compileAll(
	`(?:name|full\s+name)[\s:]+[a-z]+\s+[a-z]+`,
	`(?:email|e-mail)[\s:]*[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`,
	`(?:phone|mobile|tel|telephone)[\s:]*[+]?[\d\s\-()]{8,}`,
	`(?:education|qualifications?|degree|university|college)`,
	`(?:experience|employment|work\s+history|career)`,
	`(?:skills?|competenc|abilit|proficient)`,
	`(?:address|location|city|country)`,
)

var jobShapePatterns = compileAll(
	`(?:position|role|job\s+title|we\s+are\s+(?:looking|seeking|hiring))`,
	`(?:responsibilities?|duties|tasks?|what\s+you.ll\s+do)`,
	`(?:requirements?|qualifications?|ideal\s+candidate|experience)`,
	`(?:company|organization|about\s+us|our\s+(?:company|team))`,
	`(?:location|office|remote|hybrid|work\s+from)`,
	`(?:salary|compensation|package|benefits?|offer)`,
)

var suspiciousPatterns = compileAll(
	`(?:test|testing|example|sample|demo)\s+(?:resume|cv|job)`,
	`lorem\s+ipsum`,
	`placeholder\s+text`,
	`(?:fake|dummy|mock)\s+(?:data|content|information)`,
	`(?:john|jane)\s+doe`,
	`example\s*[@.]`,
	`test\s*[@.]`,
	`(?:123|456|999)[-\s]*(?:123|456|999)`,
)

func compileAll(patterns ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, len(patterns))
	for i, p := range patterns {
		out[i] = regexp.MustCompile(`(?im)` + p)
	}
	return out
}

// Guardrails validates analyzer inputs. The zero value is not useful;
// construct with NewGuardrails. Safe for concurrent use.
type Guardrails struct {
	th Thresholds
}

// NewGuardrails constructs a Guardrails with the given thresholds.
func NewGuardrails(th Thresholds) *Guardrails { return &Guardrails{th: th} }

// Validate checks text against the rules for the given input kind.
func (g *Guardrails) Validate(text string, kind domain.InputKind) domain.ValidationResult {
	if kind == domain.InputResume {
		return g.validateResume(text)
	}
	return g.validateJob(text)
}

func (g *Guardrails) validateResume(text string) domain.ValidationResult {
	// Rune count, not bytes: accented text must not clear the gate early.
	if utf8.RuneCountInString(text) < g.th.MinResumeChars {
		return reject("Resume text is too short. Please provide a complete resume.", 0, "insufficient content length")
	}
	if s := matchScore(injectionPatterns, text, 3); s > g.th.Injection {
		slog.Warn("injection heuristics triggered", slog.String("kind", string(domain.InputResume)), slog.Float64("score", s))
		return reject("Input contains suspicious content. Please provide a legitimate resume.", 0, "potential prompt injection detected")
	}
	shape := matchScore(resumeShapePatterns, text, len(resumeShapePatterns))
	if shape < g.th.ResumeShape {
		return reject("This doesn't appear to be a resume. Please provide a complete CV with personal information, education, experience, and skills.",
			shape*100, "missing essential resume elements")
	}
	if s := matchScore(suspiciousPatterns, text, 2); s > g.th.Suspicious {
		return reject("This appears to be test or placeholder content. Please provide a real resume.",
			(1-s)*100, "suspicious or fake content detected")
	}
	return domain.ValidationResult{Valid: true, Confidence: shape * 100}
}

func (g *Guardrails) validateJob(text string) domain.ValidationResult {
	if utf8.RuneCountInString(text) < g.th.MinJobChars {
		return reject("Job description is too short. Please provide a complete job posting.", 0, "insufficient content length")
	}
	if s := matchScore(injectionPatterns, text, 3); s > g.th.Injection {
		slog.Warn("injection heuristics triggered", slog.String("kind", string(domain.InputJob)), slog.Float64("score", s))
		return reject("Input contains suspicious content. Please provide a legitimate job description.", 0, "potential prompt injection detected")
	}
	shape := matchScore(jobShapePatterns, text, len(jobShapePatterns))
	if shape < g.th.JobShape {
		return reject("This doesn't appear to be a job description. Please provide a complete job posting with role details, requirements, and company information.",
			shape*100, "missing essential job description elements")
	}
	if s := matchScore(suspiciousPatterns, text, 2); s > g.th.Suspicious {
		return reject("This appears to be test or placeholder content. Please provide a real job description.",
			(1-s)*100, "suspicious or fake content detected")
	}
	return domain.ValidationResult{Valid: true, Confidence: shape * 100}
}

// Reject converts an invalid result into the sentinel-wrapped error handlers
// map to a 400 with the validator's reason.
func Reject(res domain.ValidationResult, kind domain.InputKind) error {
	return fmt.Errorf("%w: %s validation failed: %s", domain.ErrInvalidArgument, kind, res.Reason)
}

// matchScore counts patterns matching text and normalizes by norm, capped at 1.
func matchScore(patterns []*regexp.Regexp, text string, norm int) float64 {
	matches := 0
	for _, re := range patterns {
		if re.MatchString(text) {
			matches++
		}
	}
	s := float64(matches) / float64(norm)
	if s > 1 {
		return 1
	}
	return s
}

func reject(reason string, confidence float64, issues ...string) domain.ValidationResult {
	return domain.ValidationResult{Valid: false, Reason: reason, Confidence: confidence, Issues: issues}
}
