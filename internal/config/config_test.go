package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fairyhunter13/cv-fit-analyzer/internal/config"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, 100, cfg.MinResumeChars)
	assert.Equal(t, 150, cfg.MinJobChars)
	assert.InDelta(t, 0.3, cfg.InjectionThreshold, 1e-9)
	assert.InDelta(t, 0.4, cfg.ResumeShapeMinRatio, 1e-9)
	assert.True(t, cfg.RequiredSkillsFallback)
	assert.Equal(t, 25*time.Second, cfg.NarrativeTimeout)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("APP_ENV", "prod")
	t.Setenv("MIN_RESUME_CHARS", "400")
	t.Setenv("REQUIRED_SKILLS_FALLBACK", "false")
	cfg, err := config.Load()
	require.NoError(t, err)
	assert.True(t, cfg.IsProd())
	assert.False(t, cfg.IsDev())
	assert.Equal(t, 400, cfg.MinResumeChars)
	assert.False(t, cfg.RequiredSkillsFallback)
}

func TestNarrativeEnabled(t *testing.T) {
	t.Setenv("AI_API_KEY", "sk-test")
	cfg, err := config.Load()
	require.NoError(t, err)
	assert.True(t, cfg.NarrativeEnabled())
}

func TestLoad_InvalidValue(t *testing.T) {
	t.Setenv("PORT", "not-a-number")
	_, err := config.Load()
	require.Error(t, err)
}
