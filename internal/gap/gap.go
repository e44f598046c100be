// Package gap derives strong points, weak points, and improvement findings
// from a score breakdown, plus prioritized resume recommendations.
package gap

import (
	"log/slog"
	"strings"

	"github.com/fairyhunter13/cv-fit-analyzer/internal/domain"
	"github.com/fairyhunter13/cv-fit-analyzer/internal/scoring"
	"github.com/fairyhunter13/cv-fit-analyzer/pkg/textx"
)

const (
	minFindings = 3
	maxFindings = 5
)

// Analyzer turns a breakdown and the two extracted records into findings.
// Stateless and safe for concurrent use.
type Analyzer struct {
	// academicFriendly lists industries where an academic profile is not
	// flagged as a fit risk. Shared with the scorer's penalty term.
	academicFriendly []string
}

// NewAnalyzer constructs an Analyzer.
func NewAnalyzer(academicFriendlyIndustries []string) *Analyzer {
	return &Analyzer{academicFriendly: academicFriendlyIndustries}
}

// Analyze returns strong points, weak points, and improvement findings.
// Fail-soft: any internal fault yields three empty lists, which renderers
// must present as "no findings", not as an error.
func (a *Analyzer) Analyze(resume domain.ResumeRecord, job domain.JobRecord, b domain.ScoreBreakdown) (strong, weak, improvements []domain.Finding) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("gap analysis recovered", slog.Any("recover", r))
			strong, weak, improvements = nil, nil, nil
		}
	}()

	strong = a.strongPoints(resume, job, b)
	weak = a.weakPoints(resume, job, b)
	improvements = a.improvements(resume, job)
	return strong, weak, improvements
}

func (a *Analyzer) strongPoints(resume domain.ResumeRecord, job domain.JobRecord, b domain.ScoreBreakdown) []domain.Finding {
	var points []domain.Finding

	if b.SkillsMatch >= 70 {
		if matching := MatchingSkills(resume, job); len(matching) > 0 {
			points = append(points, domain.Finding{
				Kind:        domain.FindingStrong,
				Category:    "Skills",
				Statement:   "Strong technical skills match: " + strings.Join(head(matching, 3), ", "),
				Explanation: "Your technical expertise aligns well with the job requirements.",
				Leverage:    "Highlight these skills prominently in your resume and mention specific projects where you used them.",
			})
		}
	}

	if b.EducationMatch >= 80 {
		if resume.HasPhD && (job.JobLevel == domain.LevelSenior || job.JobLevel == domain.LevelMid) {
			points = append(points, domain.Finding{
				Kind:        domain.FindingStrong,
				Category:    "Education",
				Statement:   "Advanced academic credentials (PhD)",
				Explanation: "Your PhD demonstrates deep expertise and research capabilities.",
				Leverage:    "Emphasize problem-solving skills, analytical thinking, and ability to work independently.",
			})
		} else if len(resume.Education) > 0 {
			points = append(points, domain.Finding{
				Kind:        domain.FindingStrong,
				Category:    "Education",
				Statement:   "Relevant educational background: " + resume.Education[0].Degree,
				Explanation: "Your educational credentials meet or exceed the job requirements.",
				Leverage:    "Connect your academic learnings to practical business applications.",
			})
		}
	}

	if b.ExperienceMatch >= 70 && len(resume.Experience) >= 3 {
		points = append(points, domain.Finding{
			Kind:        domain.FindingStrong,
			Category:    "Experience",
			Statement:   "Substantial professional experience",
			Explanation: "You have relevant work experience that demonstrates practical skills.",
			Leverage:    "Quantify your achievements and focus on results you delivered.",
		})
	}

	if b.LanguageMatch >= 80 {
		points = append(points, domain.Finding{
			Kind:        domain.FindingStrong,
			Category:    "Languages",
			Statement:   "Language proficiency: " + strings.Join(head(resume.Languages, 2), ", "),
			Explanation: "Your language skills meet the position requirements.",
			Leverage:    "Mention specific contexts where you used these languages professionally.",
		})
	}

	if b.LocationMatch >= 90 {
		points = append(points, domain.Finding{
			Kind:        domain.FindingStrong,
			Category:    "Location",
			Statement:   "Optimal location match",
			Explanation: "Your location aligns perfectly with the job location.",
			Leverage:    "Emphasize your local market knowledge and availability for in-person collaboration.",
		})
	}

	return pad(points, a.genericStrongPoints(resume))
}

func (a *Analyzer) weakPoints(resume domain.ResumeRecord, job domain.JobRecord, b domain.ScoreBreakdown) []domain.Finding {
	var points []domain.Finding

	if b.SkillsMatch < 60 {
		if missing := MissingSkills(resume, job); len(missing) > 0 {
			points = append(points, domain.Finding{
				Kind:        domain.FindingWeak,
				Category:    "Skills",
				Statement:   "Missing key technical skills: " + strings.Join(head(missing, 3), ", "),
				Explanation: "Some required technical skills are not evident in your resume.",
				Impact:      "This may lead to automatic filtering by ATS systems.",
			})
		}
	}

	if b.OverqualificationPenalty > 20 {
		if resume.HasPhD && job.JobLevel == domain.LevelJunior {
			points = append(points, domain.Finding{
				Kind:        domain.FindingWeak,
				Category:    "Overqualification",
				Statement:   "PhD for junior-level position",
				Explanation: "Your advanced degree may be seen as overqualification for this role.",
				Impact:      "Employers might worry about retention, salary expectations, or cultural fit.",
			})
		} else if resume.HasAcademicBackground && !a.isAcademicFriendly(job.Industry) {
			points = append(points, domain.Finding{
				Kind:        domain.FindingWeak,
				Category:    "Industry Fit",
				Statement:   "Academic background for industry role",
				Explanation: "Strong academic background may not align with industry expectations.",
				Impact:      "May be perceived as lacking practical business experience.",
			})
		}
	}

	if b.ExperienceMatch < 50 && job.JobLevel == domain.LevelSenior && len(resume.Experience) < 4 {
		points = append(points, domain.Finding{
			Kind:        domain.FindingWeak,
			Category:    "Experience",
			Statement:   "Limited professional experience for senior role",
			Explanation: "The position requires more extensive industry experience.",
			Impact:      "May not meet minimum experience requirements.",
		})
	}

	if b.LanguageMatch < 50 {
		points = append(points, domain.Finding{
			Kind:        domain.FindingWeak,
			Category:    "Languages",
			Statement:   "Language requirements not clearly met",
			Explanation: "Required language proficiency is not evident in your resume.",
			Impact:      "May be filtered out if language skills are mandatory.",
		})
	}

	if b.EducationMatch < 40 {
		points = append(points, domain.Finding{
			Kind:        domain.FindingWeak,
			Category:    "Education",
			Statement:   "Educational requirements not met",
			Explanation: "Your educational background doesn't match the specified requirements.",
			Impact:      "May not meet minimum qualification criteria.",
		})
	}

	return pad(points, genericWeakPoints())
}

// improvements produces up to five broad-stroke findings. The recommendation
// engine in recommend.go is the finer-grained, prioritized counterpart.
func (a *Analyzer) improvements(resume domain.ResumeRecord, job domain.JobRecord) []domain.Finding {
	var out []domain.Finding

	if missing := MissingSkills(resume, job); len(missing) > 0 {
		out = append(out, domain.Finding{
			Kind:      domain.FindingRecommendation,
			Category:  "Skills Enhancement",
			Statement: "Add experience with: " + strings.Join(head(missing, 3), ", "),
			Action:    "Include any projects, courses, or exposure to these technologies in your resume.",
			Priority:  domain.PriorityHigh,
			Impact:    "Improves ATS keyword matching and demonstrates technical relevance.",
		})
	}

	if resume.HasPhD && (job.JobLevel == domain.LevelJunior || job.JobLevel == domain.LevelMid) {
		out = append(out, domain.Finding{
			Kind:      domain.FindingRecommendation,
			Category:  "PhD Positioning",
			Statement: "Reframe PhD as practical problem-solving experience",
			Action:    "Focus on transferable skills: analytical thinking, project management, communication.",
			Priority:  domain.PriorityHigh,
			Impact:    "Reduces overqualification concerns and emphasizes business value.",
		})
	}

	if resume.HasAcademicBackground && !a.isAcademicFriendly(job.Industry) {
		out = append(out, domain.Finding{
			Kind:      domain.FindingRecommendation,
			Category:  "Industry Positioning",
			Statement: "Emphasize business impact over academic achievements",
			Action:    "Quantify results, use business language, highlight practical applications.",
			Priority:  domain.PriorityHigh,
			Impact:    "Demonstrates industry readiness and practical value.",
		})
	}

	if len(resume.Experience) > 0 {
		out = append(out, domain.Finding{
			Kind:      domain.FindingRecommendation,
			Category:  "Experience Optimization",
			Statement: "Quantify achievements with specific metrics",
			Action:    "Add numbers: budget managed, team size, performance improvements, etc.",
			Priority:  domain.PriorityMedium,
			Impact:    "Makes your contributions more tangible and impressive.",
		})
	}

	if keywords := head(job.Keywords, 5); len(keywords) > 0 {
		out = append(out, domain.Finding{
			Kind:      domain.FindingRecommendation,
			Category:  "Keyword Optimization",
			Statement: "Include key terms: " + strings.Join(keywords, ", "),
			Action:    "Naturally integrate these terms throughout your resume content.",
			Priority:  domain.PriorityMedium,
			Impact:    "Improves ATS parsing and keyword density scores.",
		})
	}

	return head(out, maxFindings)
}

func (a *Analyzer) genericStrongPoints(resume domain.ResumeRecord) []domain.Finding {
	var out []domain.Finding
	if resume.HasPhD {
		out = append(out, domain.Finding{
			Kind:        domain.FindingStrong,
			Category:    "Research Skills",
			Statement:   "Advanced research and analytical capabilities",
			Explanation: "PhD training provides strong analytical and problem-solving skills.",
			Leverage:    "Emphasize your ability to tackle complex problems systematically.",
		})
	}
	if len(resume.Skills) > 3 {
		out = append(out, domain.Finding{
			Kind:        domain.FindingStrong,
			Category:    "Technical Diversity",
			Statement:   "Diverse technical skill set",
			Explanation: "You demonstrate adaptability across multiple technologies.",
			Leverage:    "Show how you can quickly learn and apply new technologies.",
		})
	}
	if len(resume.Languages) > 1 {
		out = append(out, domain.Finding{
			Kind:        domain.FindingStrong,
			Category:    "Communication",
			Statement:   "Multilingual communication abilities",
			Explanation: "Multiple language skills demonstrate cultural adaptability.",
			Leverage:    "Highlight your ability to work in international environments.",
		})
	}
	return out
}

func genericWeakPoints() []domain.Finding {
	return []domain.Finding{
		{
			Kind:        domain.FindingWeak,
			Category:    "Keyword Optimization",
			Statement:   "Limited keyword alignment with job description",
			Explanation: "Your resume may not contain enough keywords from the job posting.",
			Impact:      "ATS systems might not rank your resume highly.",
		},
		{
			Kind:        domain.FindingWeak,
			Category:    "Quantification",
			Statement:   "Achievements could be more quantified",
			Explanation: "Your accomplishments lack specific metrics and numbers.",
			Impact:      "Makes it harder for recruiters to assess your impact.",
		},
		{
			Kind:        domain.FindingWeak,
			Category:    "Industry Language",
			Statement:   "Could use more industry-specific terminology",
			Explanation: "Your resume might benefit from more business-focused language.",
			Impact:      "May not resonate as strongly with hiring managers.",
		},
	}
}

func (a *Analyzer) isAcademicFriendly(industry string) bool {
	industry = strings.ToLower(industry)
	for _, f := range a.academicFriendly {
		if industry == f {
			return true
		}
	}
	return false
}

// MatchingSkills returns the job skills (required then preferred) that match
// a resume skill under the bidirectional substring test, title-cased, in
// first-seen order.
func MatchingSkills(resume domain.ResumeRecord, job domain.JobRecord) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, js := range append(append([]string{}, job.RequiredSkills...), job.PreferredSkills...) {
		if !scoring.SkillMatches(js, resume.Skills) {
			continue
		}
		titled := textx.TitleCase(strings.ToLower(js))
		if _, dup := seen[titled]; dup {
			continue
		}
		seen[titled] = struct{}{}
		out = append(out, titled)
	}
	return out
}

// MissingSkills returns the required job skills with no resume match,
// title-cased, in requirement order.
func MissingSkills(resume domain.ResumeRecord, job domain.JobRecord) []string {
	var out []string
	for _, js := range job.RequiredSkills {
		if !scoring.SkillMatches(js, resume.Skills) {
			out = append(out, textx.TitleCase(strings.ToLower(js)))
		}
	}
	return out
}

// pad appends filler findings one at a time until the list reaches
// minFindings or the filler runs out, then truncates to maxFindings.
func pad(points, filler []domain.Finding) []domain.Finding {
	for _, f := range filler {
		if len(points) >= minFindings {
			break
		}
		points = append(points, f)
	}
	return head(points, maxFindings)
}

func head[T any](s []T, n int) []T {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
