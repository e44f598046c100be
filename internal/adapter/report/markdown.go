// Package report renders an analysis bundle as a Markdown document.
package report

import (
	"fmt"
	"strings"

	"github.com/fairyhunter13/cv-fit-analyzer/internal/domain"
	"github.com/fairyhunter13/cv-fit-analyzer/pkg/textx"
)

// RenderMarkdown produces a self-contained Markdown report for the bundle.
func RenderMarkdown(r domain.Report) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "# Compatibility Report: %s\n\n", r.Job.Title)
	fmt.Fprintf(&sb, "Report ID: `%s`  \n", r.ID)
	fmt.Fprintf(&sb, "Generated: %s\n\n", r.CreatedAt.UTC().Format("2006-01-02 15:04 UTC"))

	if r.Breakdown.Failed() {
		sb.WriteString("## Score\n\nNo analysis available: the scoring step failed.\n")
		return sb.String()
	}

	fmt.Fprintf(&sb, "## Score: %d/100\n\n%s\n\n", r.Breakdown.FinalScore, r.Breakdown.Explanation)

	sb.WriteString("| Component | Score |\n|---|---|\n")
	fmt.Fprintf(&sb, "| Skills match | %.0f |\n", r.Breakdown.SkillsMatch)
	fmt.Fprintf(&sb, "| Experience match | %.0f |\n", r.Breakdown.ExperienceMatch)
	fmt.Fprintf(&sb, "| Education match | %.0f |\n", r.Breakdown.EducationMatch)
	fmt.Fprintf(&sb, "| Language match | %.0f |\n", r.Breakdown.LanguageMatch)
	fmt.Fprintf(&sb, "| Location match | %.0f |\n", r.Breakdown.LocationMatch)
	fmt.Fprintf(&sb, "| Overqualification penalty | %.0f |\n\n", r.Breakdown.OverqualificationPenalty)

	writeFindings(&sb, "Strong Points", r.StrongPoints)
	writeFindings(&sb, "Weak Points", r.WeakPoints)
	writeRecommendations(&sb, r.Recommendations)
	if len(r.Improvements) > 0 {
		writeFindings(&sb, "Improvement Areas", r.Improvements)
	}

	if r.Narrative != nil {
		writeNarrative(&sb, *r.Narrative)
	}
	return sb.String()
}

func writeFindings(sb *strings.Builder, title string, findings []domain.Finding) {
	fmt.Fprintf(sb, "## %s\n\n", title)
	if len(findings) == 0 {
		sb.WriteString("No findings.\n\n")
		return
	}
	for _, f := range findings {
		fmt.Fprintf(sb, "- **%s** (%s): %s\n", f.Statement, f.Category, f.Explanation)
		if f.Leverage != "" {
			fmt.Fprintf(sb, "  - How to leverage: %s\n", f.Leverage)
		}
		if f.Impact != "" {
			fmt.Fprintf(sb, "  - Impact: %s\n", f.Impact)
		}
	}
	sb.WriteString("\n")
}

func writeRecommendations(sb *strings.Builder, recs []domain.Finding) {
	sb.WriteString("## Recommendations\n\n")
	if len(recs) == 0 {
		sb.WriteString("No findings.\n\n")
		return
	}
	for i, f := range recs {
		fmt.Fprintf(sb, "%d. **[%s] %s** (%s)\n", i+1, f.Priority, f.Statement, f.Category)
		if f.Action != "" {
			fmt.Fprintf(sb, "   - Action: %s\n", f.Action)
		}
		if f.Impact != "" {
			fmt.Fprintf(sb, "   - Impact: %s\n", f.Impact)
		}
		if f.Implementation != "" {
			fmt.Fprintf(sb, "   - %s\n", f.Implementation)
		}
	}
	sb.WriteString("\n")
}

func writeNarrative(sb *strings.Builder, n domain.Narrative) {
	sb.WriteString("## Interview Preparation\n\n")
	if n.Fallback {
		sb.WriteString("_Generated from rule-based templates._\n\n")
	}

	if len(n.CompanyAnalysis) > 0 {
		sb.WriteString("### Company and Role\n\n")
		for _, line := range n.CompanyAnalysis {
			fmt.Fprintf(sb, "- %s\n", line)
		}
		sb.WriteString("\n")
	}

	if len(n.InterviewQuestions) > 0 {
		sb.WriteString("### Likely Interview Questions\n\n")
		for _, q := range n.InterviewQuestions {
			fmt.Fprintf(sb, "- _%s_: %s\n", q.Category, q.Question)
		}
		sb.WriteString("\n")
	}

	if len(n.StarStories) > 0 {
		sb.WriteString("### STAR Story Templates\n\n")
		for _, s := range n.StarStories {
			fmt.Fprintf(sb, "**%s**\n\n", s.Title)
			fmt.Fprintf(sb, "- Situation: %s\n", s.Situation)
			fmt.Fprintf(sb, "- Task: %s\n", s.Task)
			fmt.Fprintf(sb, "- Action: %s\n", s.Action)
			fmt.Fprintf(sb, "- Result: %s\n\n", s.Result)
		}
	}

	if len(n.QuestionsToAsk) > 0 {
		sb.WriteString("### Questions to Ask\n\n")
		for _, q := range n.QuestionsToAsk {
			fmt.Fprintf(sb, "- _%s_: %s\n", q.Category, q.Question)
		}
		sb.WriteString("\n")
	}

	if len(n.SalaryInsights) > 0 {
		sb.WriteString("### Salary Insights\n\n")
		for _, line := range n.SalaryInsights {
			fmt.Fprintf(sb, "- %s\n", line)
		}
		sb.WriteString("\n")
	}

	if len(n.OverqualificationTips) > 0 {
		sb.WriteString("### Handling Overqualification Concerns\n\n")
		for _, tip := range n.OverqualificationTips {
			fmt.Fprintf(sb, "- %s\n", textx.Truncate(tip, 500))
		}
		sb.WriteString("\n")
	}
}
