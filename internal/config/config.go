// Package config defines configuration parsing and helpers.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
)

// Config holds all application configuration parsed from environment variables.
type Config struct {
	AppEnv      string `env:"APP_ENV" envDefault:"dev"`
	Port        int    `env:"PORT" envDefault:"8080"`
	ServiceName string `env:"SERVICE_NAME" envDefault:"cv-fit-analyzer"`

	// Narrative generation (OpenAI-compatible chat API). Empty API key
	// disables the upstream call entirely; the static fallback is used.
	AIAPIKey            string        `env:"AI_API_KEY"`
	AIBaseURL           string        `env:"AI_BASE_URL" envDefault:"https://api.openai.com/v1"`
	AIModel             string        `env:"AI_MODEL" envDefault:"gpt-4o-mini"`
	AITimeout           time.Duration `env:"AI_TIMEOUT" envDefault:"20s"`
	AIBackoffMaxElapsed time.Duration `env:"AI_BACKOFF_MAX_ELAPSED" envDefault:"15s"`
	AIBackoffInitial    time.Duration `env:"AI_BACKOFF_INITIAL" envDefault:"500ms"`
	AIBackoffMax        time.Duration `env:"AI_BACKOFF_MAX" envDefault:"5s"`
	AIBackoffMultiplier float64       `env:"AI_BACKOFF_MULTIPLIER" envDefault:"1.5"`
	// NarrativeTimeout bounds the optional enrichment step so it can never
	// stall the scoring pipeline.
	NarrativeTimeout time.Duration `env:"NARRATIVE_TIMEOUT" envDefault:"25s"`

	// Input validation thresholds. These are tunables, not hard logic:
	// deployments analyzing shorter postings can lower them.
	MinResumeChars      int     `env:"MIN_RESUME_CHARS" envDefault:"100"`
	MinJobChars         int     `env:"MIN_JOB_CHARS" envDefault:"150"`
	InjectionThreshold  float64 `env:"INJECTION_THRESHOLD" envDefault:"0.3"`
	ResumeShapeMinRatio float64 `env:"RESUME_SHAPE_MIN_RATIO" envDefault:"0.4"`
	JobShapeMinRatio    float64 `env:"JOB_SHAPE_MIN_RATIO" envDefault:"0.3"`
	SuspiciousThreshold float64 `env:"SUSPICIOUS_THRESHOLD" envDefault:"0.2"`

	// RequiredSkillsFallback controls the job extractor policy of treating
	// every vocabulary skill found anywhere in the text as required when no
	// labeled required/preferred section exists. On by default;
	// loosely-worded postings may want it off.
	RequiredSkillsFallback bool `env:"REQUIRED_SKILLS_FALLBACK" envDefault:"true"`

	MaxUploadMB           int64         `env:"MAX_UPLOAD_MB" envDefault:"10"`
	CORSAllowOrigins      string        `env:"CORS_ALLOW_ORIGINS" envDefault:"*"`
	RateLimitPerMin       int           `env:"RATE_LIMIT_PER_MIN" envDefault:"30"`
	ServerShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" envDefault:"30s"`
	HTTPReadTimeout       time.Duration `env:"HTTP_READ_TIMEOUT" envDefault:"15s"`
	HTTPWriteTimeout      time.Duration `env:"HTTP_WRITE_TIMEOUT" envDefault:"30s"`
	HTTPIdleTimeout       time.Duration `env:"HTTP_IDLE_TIMEOUT" envDefault:"60s"`
}

// Load parses environment variables into a Config.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("op=config.Load: %w", err)
	}
	return cfg, nil
}

// IsDev reports whether the app is running in development mode.
func (c Config) IsDev() bool { return strings.ToLower(c.AppEnv) == "dev" }

// IsProd reports whether the app is running in production mode.
func (c Config) IsProd() bool { return strings.ToLower(c.AppEnv) == "prod" }

// IsTest reports whether the app is running in test mode.
func (c Config) IsTest() bool { return strings.ToLower(c.AppEnv) == "test" }

// NarrativeEnabled reports whether the upstream narrative generator should be
// called at all.
func (c Config) NarrativeEnabled() bool { return c.AIAPIKey != "" }
