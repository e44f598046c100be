// Package scoring computes the weighted compatibility score between a
// resume and a job posting.
package scoring

import (
	"fmt"
	"log/slog"
	"math"
	"strings"

	"github.com/fairyhunter13/cv-fit-analyzer/internal/domain"
)

// Weights are the contribution of each sub-score to the final score.
//
// The additive weights deliberately sum to 0.90, with the penalty applied at
// 0.10 against an already 0-50-bounded quantity. Rebalancing to 1.0 would
// silently change scoring outcomes, so don't.
type Weights struct {
	Skills            float64
	Experience        float64
	Education         float64
	Overqualification float64
	Language          float64
	Location          float64
}

// DefaultWeights returns the reference weighting.
func DefaultWeights() Weights {
	return Weights{
		Skills:            0.35,
		Experience:        0.25,
		Education:         0.20,
		Overqualification: 0.10,
		Language:          0.05,
		Location:          0.05,
	}
}

// Scorer is a pure function object: deterministic, stateless, safe for
// concurrent use.
type Scorer struct {
	w Weights
	// academicFriendly lists industries exempt from the academic-background
	// overqualification term.
	academicFriendly []string
}

// NewScorer constructs a Scorer.
func NewScorer(w Weights, academicFriendlyIndustries []string) *Scorer {
	return &Scorer{w: w, academicFriendly: academicFriendlyIndustries}
}

// Score computes the six sub-scores and the weighted final score. It is
// fail-soft: any internal fault yields score 0 with the Err marker set, which
// callers must treat as "no analysis available", not zero compatibility.
func (s *Scorer) Score(resume domain.ResumeRecord, job domain.JobRecord) (b domain.ScoreBreakdown) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("scoring recovered", slog.Any("recover", r))
			b = domain.ScoreBreakdown{Err: fmt.Sprint(r), Explanation: "Error in calculation"}
		}
	}()

	b = domain.ScoreBreakdown{
		SkillsMatch:              s.skillsMatch(resume, job),
		ExperienceMatch:          s.experienceMatch(resume, job),
		EducationMatch:           s.educationMatch(resume, job),
		OverqualificationPenalty: s.overqualificationPenalty(resume, job),
		LanguageMatch:            s.languageMatch(resume, job),
		LocationMatch:            s.locationMatch(resume, job),
	}

	total := b.SkillsMatch*s.w.Skills +
		b.ExperienceMatch*s.w.Experience +
		b.EducationMatch*s.w.Education +
		b.LanguageMatch*s.w.Language +
		b.LocationMatch*s.w.Location -
		b.OverqualificationPenalty*s.w.Overqualification

	b.FinalScore = clamp(int(math.Round(total)), 0, 100)
	b.Explanation = explain(b.FinalScore)
	return b
}

// skillsMatch gives required-skill coverage up to 70 points and preferred
// coverage up to 30. A job with no required skills cannot be evaluated and
// scores a neutral 50. A missing sub-list credits its full allocation.
func (s *Scorer) skillsMatch(resume domain.ResumeRecord, job domain.JobRecord) float64 {
	if len(job.RequiredSkills) == 0 {
		return 50
	}
	requiredScore := coverage(job.RequiredSkills, resume.Skills) * 70
	preferredScore := 30.0
	if len(job.PreferredSkills) > 0 {
		preferredScore = coverage(job.PreferredSkills, resume.Skills) * 30
	}
	return math.Min(100, requiredScore+preferredScore)
}

// experienceMatch is a coarse four-tier step function against a per-level
// target entry count. Deliberately not smooth: entry counts are too noisy
// for false precision.
func (s *Scorer) experienceMatch(resume domain.ResumeRecord, job domain.JobRecord) float64 {
	var target int
	switch job.JobLevel {
	case domain.LevelJunior:
		target = 1
	case domain.LevelMid:
		target = 3
	case domain.LevelSenior:
		target = 5
	default:
		target = 2
	}
	count := float64(len(resume.Experience))
	switch {
	case count >= float64(target):
		return 90
	case count >= float64(target)*0.7:
		return 70
	case count >= float64(target)*0.5:
		return 50
	default:
		return 30
	}
}

func (s *Scorer) educationMatch(resume domain.ResumeRecord, job domain.JobRecord) float64 {
	if len(job.EducationRequired) == 0 {
		return 80
	}
	requirements := strings.ToLower(strings.Join(job.EducationRequired, " "))
	degrees := make([]string, 0, len(resume.Education))
	for _, e := range resume.Education {
		degrees = append(degrees, e.Degree)
	}
	educationText := strings.ToLower(strings.Join(degrees, " "))

	switch {
	case strings.Contains(requirements, "phd") || strings.Contains(requirements, "doctorate"):
		if resume.HasPhD {
			return 100
		}
		return 30
	case strings.Contains(requirements, "master"):
		switch {
		case resume.HasPhD:
			return 95 // exceeds the requirement
		case strings.Contains(educationText, "master"):
			return 90
		default:
			return 40
		}
	case strings.Contains(requirements, "bachelor"):
		switch {
		case resume.HasPhD || strings.Contains(educationText, "master"):
			return 95
		case strings.Contains(educationText, "bachelor"):
			return 85
		default:
			return 30
		}
	}
	return 70 // requirement stated but tier unrecognized
}

// overqualificationPenalty models employer hesitancy toward credentials that
// exceed the role. Higher is worse; it is subtracted, not added.
func (s *Scorer) overqualificationPenalty(resume domain.ResumeRecord, job domain.JobRecord) float64 {
	penalty := 0.0
	if resume.HasPhD {
		switch job.JobLevel {
		case domain.LevelJunior:
			penalty += 40
		case domain.LevelMid:
			penalty += 20
		case domain.LevelSenior:
			penalty += 5
		}
	}
	if resume.HasAcademicBackground && job.Industry != "" && !s.isAcademicFriendly(job.Industry) {
		penalty += 15
	}
	if job.JobLevel == domain.LevelJunior && len(resume.Experience) > 3 {
		penalty += 10
	}
	return math.Min(50, penalty)
}

func (s *Scorer) isAcademicFriendly(industry string) bool {
	industry = strings.ToLower(industry)
	for _, f := range s.academicFriendly {
		if industry == f {
			return true
		}
	}
	return false
}

func (s *Scorer) languageMatch(resume domain.ResumeRecord, job domain.JobRecord) float64 {
	if len(job.Languages) == 0 {
		return 80
	}
	matches := 0
	for _, required := range job.Languages {
		req := strings.ToLower(required)
		for _, have := range resume.Languages {
			if strings.Contains(strings.ToLower(have), req) {
				matches++
				break
			}
		}
	}
	switch {
	case matches == len(job.Languages):
		return 100
	case matches > 0:
		return 70
	default:
		return 30
	}
}

func (s *Scorer) locationMatch(resume domain.ResumeRecord, job domain.JobRecord) float64 {
	if job.Location == "" {
		return 80
	}
	have := strings.ToLower(resume.Contact.Location)
	want := strings.ToLower(job.Location)
	if have == "" {
		return 60
	}
	if strings.Contains(want, have) || strings.Contains(have, want) {
		return 100
	}
	return 40
}

// coverage reports the fraction of job skills found against the resume
// skills, using the case-insensitive bidirectional substring test shared with
// the gap analyzer.
func coverage(jobSkills, resumeSkills []string) float64 {
	if len(jobSkills) == 0 {
		return 0
	}
	matched := 0
	for _, js := range jobSkills {
		if SkillMatches(js, resumeSkills) {
			matched++
		}
	}
	return float64(matched) / float64(len(jobSkills))
}

// SkillMatches reports whether a job skill matches any resume skill: a match
// is a case-insensitive substring containment in either direction.
func SkillMatches(jobSkill string, resumeSkills []string) bool {
	js := strings.ToLower(jobSkill)
	for _, rs := range resumeSkills {
		lrs := strings.ToLower(rs)
		if strings.Contains(lrs, js) || strings.Contains(js, lrs) {
			return true
		}
	}
	return false
}

// explain maps the final score into one of four fixed bands. It must consult
// only the final score, never the sub-scores.
func explain(score int) string {
	var level, detail string
	switch {
	case score >= 80:
		level, detail = "Excellent", "Strong match with most requirements met."
	case score >= 60:
		level, detail = "Good", "Good match with some areas for improvement."
	case score >= 40:
		level, detail = "Moderate", "Moderate match with several gaps to address."
	default:
		level, detail = "Low", "Significant gaps between resume and job requirements."
	}
	return fmt.Sprintf("%s compatibility (%d%%). %s", level, score, detail)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
