package gap

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/fairyhunter13/cv-fit-analyzer/internal/domain"
)

const maxRecommendations = 8

// Engine produces prioritized, actionable resume recommendations. Stateless
// and safe for concurrent use.
type Engine struct{}

// NewEngine constructs an Engine.
func NewEngine() *Engine { return &Engine{} }

// Generate evaluates five independent rule groups, prioritizes the results,
// and returns at most eight recommendations. Fail-soft: an internal fault
// yields an empty list. The weak points are part of the contract for renderer
// symmetry; the rules derive everything from the records and the breakdown.
func (e *Engine) Generate(resume domain.ResumeRecord, job domain.JobRecord, weak []domain.Finding, b domain.ScoreBreakdown) (recs []domain.Finding) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("recommendation generation recovered", slog.Any("recover", r))
			recs = nil
		}
	}()

	recs = append(recs, e.skillsRecommendations(resume, job, b)...)
	recs = append(recs, e.experienceRecommendations(resume, b)...)
	if resume.HasPhD {
		recs = append(recs, e.phdRecommendations(resume, job, b)...)
	}
	recs = append(recs, e.keywordRecommendations(job)...)
	recs = append(recs, e.formatRecommendations(resume, job)...)

	prioritize(recs)
	return head(recs, maxRecommendations)
}

func (e *Engine) skillsRecommendations(resume domain.ResumeRecord, job domain.JobRecord, b domain.ScoreBreakdown) []domain.Finding {
	var out []domain.Finding

	if b.SkillsMatch < 70 {
		if missing := MissingSkills(resume, job); len(missing) > 0 {
			out = append(out, domain.Finding{
				Kind:           domain.FindingRecommendation,
				Category:       "Skills Enhancement",
				Statement:      "Add experience with required technologies: " + strings.Join(head(missing, 3), ", "),
				Action:         "Include any exposure to these technologies, even from personal projects, courses, or brief work experience",
				Priority:       domain.PriorityHigh,
				Impact:         "Significantly improves ATS keyword matching and shows technical relevance",
				Implementation: fmt.Sprintf("Example: 'Developed familiarity with %s through [course/project/self-study]'", missing[0]),
			})
		}
	}

	if len(resume.Skills) < 5 {
		out = append(out, domain.Finding{
			Kind:           domain.FindingRecommendation,
			Category:       "Skills Breadth",
			Statement:      "Expand your listed technical skills",
			Action:         "Include tools, frameworks, methodologies, and soft skills relevant to the role",
			Priority:       domain.PriorityMedium,
			Impact:         "Increases keyword density and shows technical versatility",
			Implementation: "Add skills like: project management tools, communication skills, analytical abilities",
		})
	}

	return out
}

func (e *Engine) experienceRecommendations(resume domain.ResumeRecord, b domain.ScoreBreakdown) []domain.Finding {
	var out []domain.Finding

	if b.ExperienceMatch < 60 && len(resume.Experience) < 3 {
		out = append(out, domain.Finding{
			Kind:           domain.FindingRecommendation,
			Category:       "Experience Expansion",
			Statement:      "Include all relevant experience: internships, projects, research",
			Action:         "Add research projects, academic collaborations, consulting work, or significant personal projects",
			Priority:       domain.PriorityHigh,
			Impact:         "Demonstrates practical application of skills and increases perceived experience",
			Implementation: "Format as: '[Role/Project] - [Duration] - [Key achievements with metrics]'",
		})
	}

	if len(resume.Experience) == 0 {
		return out
	}
	out = append(out, domain.Finding{
		Kind:           domain.FindingRecommendation,
		Category:       "Achievement Quantification",
		Statement:      "Add specific metrics and numbers to your achievements",
		Action:         "Include budget sizes, team sizes, performance improvements, timelines, or research outcomes",
		Priority:       domain.PriorityHigh,
		Impact:         "Makes your contributions tangible and impressive to recruiters",
		Implementation: "Examples: 'Led team of 5', 'Improved efficiency by 30%', 'Managed €50K budget', 'Published 3 papers'",
	})

	return out
}

func (e *Engine) phdRecommendations(resume domain.ResumeRecord, job domain.JobRecord, b domain.ScoreBreakdown) []domain.Finding {
	var out []domain.Finding

	if b.OverqualificationPenalty > 15 && (job.JobLevel == domain.LevelJunior || job.JobLevel == domain.LevelMid) {
		out = append(out, domain.Finding{
			Kind:           domain.FindingRecommendation,
			Category:       "PhD Positioning",
			Statement:      "Reframe PhD as business-relevant experience",
			Action:         "Emphasize transferable skills: problem-solving, project management, data analysis, communication",
			Priority:       domain.PriorityHigh,
			Impact:         "Reduces overqualification concerns and highlights business value",
			Implementation: "Focus on: 'Managed complex 3-year research project' rather than 'PhD in X'",
		})
	}

	if resume.HasAcademicBackground {
		out = append(out, domain.Finding{
			Kind:           domain.FindingRecommendation,
			Category:       "Language Adjustment",
			Statement:      "Use business language instead of academic terminology",
			Action:         "Replace academic terms with industry equivalents",
			Priority:       domain.PriorityMedium,
			Impact:         "Makes your background more accessible to non-academic hiring managers",
			Implementation: "Research → Analysis, Publications → Reports, Dissertation → Project, Laboratory → Team",
		})
	}

	return out
}

func (e *Engine) keywordRecommendations(job domain.JobRecord) []domain.Finding {
	var out []domain.Finding

	if keywords := head(job.Keywords, 5); len(keywords) > 0 {
		out = append(out, domain.Finding{
			Kind:           domain.FindingRecommendation,
			Category:       "Keyword Optimization",
			Statement:      "Integrate key job terms: " + strings.Join(keywords, ", "),
			Action:         "Naturally incorporate these terms throughout your resume content",
			Priority:       domain.PriorityMedium,
			Impact:         "Improves ATS parsing and keyword density matching",
			Implementation: "Use variations and context: 'data analysis', 'analyzed data', 'analytical approach'",
		})
	}

	if job.Industry != "" {
		out = append(out, domain.Finding{
			Kind:           domain.FindingRecommendation,
			Category:       "Industry Terminology",
			Statement:      fmt.Sprintf("Include %s industry terminology", job.Industry),
			Action:         "Research and include common terms used in the industry",
			Priority:       domain.PriorityMedium,
			Impact:         "Shows industry awareness and cultural fit",
			Implementation: fmt.Sprintf("Study job postings in %s to identify common phrases and requirements", job.Industry),
		})
	}

	return out
}

func (e *Engine) formatRecommendations(resume domain.ResumeRecord, job domain.JobRecord) []domain.Finding {
	var out []domain.Finding

	if resume.Contact.Email == "" {
		out = append(out, domain.Finding{
			Kind:           domain.FindingRecommendation,
			Category:       "Contact Information",
			Statement:      "Ensure complete contact information is prominently displayed",
			Action:         "Include professional email, phone number, and LinkedIn profile",
			Priority:       domain.PriorityHigh,
			Impact:         "Essential for recruiters to contact you",
			Implementation: "Place contact info at the top: professional email, phone, LinkedIn, location",
		})
	}

	out = append(out, domain.Finding{
		Kind:           domain.FindingRecommendation,
		Category:       "Professional Summary",
		Statement:      "Add a targeted professional summary at the top",
		Action:         "Write 2-3 sentences highlighting your key qualifications for this specific role",
		Priority:       domain.PriorityMedium,
		Impact:         "Immediately communicates your value proposition to hiring managers",
		Implementation: fmt.Sprintf("Example: 'Experienced %s with expertise in [key skills] seeking to apply analytical and technical skills in [industry] environment'", job.Title),
	})

	out = append(out, domain.Finding{
		Kind:           domain.FindingRecommendation,
		Category:       "ATS Optimization",
		Statement:      "Ensure ATS-friendly formatting",
		Action:         "Use standard headings, bullet points, and avoid complex formatting",
		Priority:       domain.PriorityMedium,
		Impact:         "Ensures your resume is properly parsed by applicant tracking systems",
		Implementation: "Use headings like: Professional Experience, Education, Skills, Certifications",
	})

	return out
}

// prioritize stable-sorts recommendations by descending priority score. Ties
// keep generation order, which is already priority-grouped with skills first.
func prioritize(recs []domain.Finding) {
	sort.SliceStable(recs, func(i, j int) bool {
		return PriorityScore(recs[i]) > PriorityScore(recs[j])
	})
}

// PriorityScore is the numeric ordering key: a weight for the declared
// priority plus a bonus for the more impactful categories.
func PriorityScore(f domain.Finding) int {
	score := 0
	switch f.Priority {
	case domain.PriorityHigh:
		score += 100
	case domain.PriorityMedium:
		score += 50
	default:
		score += 10
	}

	category := strings.ToLower(f.Category)
	switch {
	case strings.Contains(category, "skills"):
		score += 30
	case strings.Contains(category, "phd"), strings.Contains(category, "positioning"):
		score += 25
	case strings.Contains(category, "experience"):
		score += 20
	case strings.Contains(category, "keyword"):
		score += 15
	}
	return score
}
