package report

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/fairyhunter13/cv-fit-analyzer/internal/domain"
)

func sampleReport() domain.Report {
	return domain.Report{
		ID:  "4b2f9f1e-0000-4000-8000-000000000000",
		Job: domain.JobRecord{Title: "Data Analyst", JobLevel: domain.LevelMid},
		Breakdown: domain.ScoreBreakdown{
			SkillsMatch:     80,
			ExperienceMatch: 70,
			EducationMatch:  90,
			LanguageMatch:   100,
			LocationMatch:   60,
			FinalScore:      78,
			Explanation:     "Good compatibility (78%). Good match with some areas for improvement.",
		},
		StrongPoints: []domain.Finding{{
			Kind: domain.FindingStrong, Category: "Skills",
			Statement: "Strong technical skills match: Python", Explanation: "exp", Leverage: "lev",
		}},
		WeakPoints: []domain.Finding{{
			Kind: domain.FindingWeak, Category: "Quantification",
			Statement: "Achievements could be more quantified", Explanation: "exp", Impact: "imp",
		}},
		Recommendations: []domain.Finding{{
			Kind: domain.FindingRecommendation, Category: "Keyword Optimization",
			Statement: "Integrate key job terms", Action: "do it",
			Priority: domain.PriorityMedium, Implementation: "example here",
		}},
		CreatedAt: time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestRenderMarkdown(t *testing.T) {
	t.Parallel()

	md := RenderMarkdown(sampleReport())

	assert.True(t, strings.HasPrefix(md, "# Compatibility Report: Data Analyst"))
	assert.Contains(t, md, "## Score: 78/100")
	assert.Contains(t, md, "| Skills match | 80 |")
	assert.Contains(t, md, "- **Strong technical skills match: Python** (Skills): exp")
	assert.Contains(t, md, "How to leverage: lev")
	assert.Contains(t, md, "1. **[Medium] Integrate key job terms** (Keyword Optimization)")
	assert.Contains(t, md, "2026-08-01 12:00 UTC")
	assert.NotContains(t, md, "Interview Preparation", "narrative section omitted when absent")
}

func TestRenderMarkdown_FailedBreakdown(t *testing.T) {
	t.Parallel()

	r := sampleReport()
	r.Breakdown = domain.ScoreBreakdown{Err: "boom"}

	md := RenderMarkdown(r)
	assert.Contains(t, md, "No analysis available")
	assert.NotContains(t, md, "Recommendations")
}

func TestRenderMarkdown_Narrative(t *testing.T) {
	t.Parallel()

	r := sampleReport()
	r.Narrative = &domain.Narrative{
		CompanyAnalysis:    []string{"You're applying for a Data Analyst position"},
		InterviewQuestions: []domain.NarrativeQuestion{{Category: "Technical", Question: "Describe your SQL experience."}},
		StarStories:        []domain.StarStory{{Title: "Team Collaboration", Situation: "s", Task: "t", Action: "a", Result: "r"}},
		SalaryInsights:     []string{"Consider the whole package"},
		Fallback:           true,
	}

	md := RenderMarkdown(r)
	assert.Contains(t, md, "## Interview Preparation")
	assert.Contains(t, md, "rule-based templates")
	assert.Contains(t, md, "**Team Collaboration**")
	assert.Contains(t, md, "- _Technical_: Describe your SQL experience.")
	assert.NotContains(t, md, "Handling Overqualification", "empty tip list omitted")
}

func TestRenderMarkdown_EmptyFindings(t *testing.T) {
	t.Parallel()

	r := sampleReport()
	r.StrongPoints, r.WeakPoints, r.Recommendations = nil, nil, nil

	md := RenderMarkdown(r)
	assert.Equal(t, 3, strings.Count(md, "No findings."))
}
