package ai

import (
	"fmt"
	"strings"

	"github.com/fairyhunter13/cv-fit-analyzer/internal/domain"
)

const systemPrompt = `You are an interview-preparation coach. Given facts about a candidate and a job posting, respond with a single JSON object and nothing else, using exactly these keys:
"company_analysis" (array of strings), "interview_questions" (array of {"category","question"}), "star_stories" (array of {"title","situation","task","action","result"}), "questions_to_ask" (array of {"category","question"}), "salary_insights" (array of strings), "overqualification_tips" (array of strings).
Keep every string concise and practical. Do not invent facts about the candidate.`

// userPrompt summarizes the extracted records and the score for the model.
// Only derived facts are sent upstream, never the raw documents.
func userPrompt(resume domain.ResumeRecord, job domain.JobRecord, b domain.ScoreBreakdown) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Job: %s", job.Title)
	if job.Company != "" {
		fmt.Fprintf(&sb, " at %s", job.Company)
	}
	fmt.Fprintf(&sb, " (level: %s", job.JobLevel)
	if job.Industry != "" {
		fmt.Fprintf(&sb, ", industry: %s", job.Industry)
	}
	if job.Location != "" {
		fmt.Fprintf(&sb, ", location: %s", job.Location)
	}
	sb.WriteString(")\n")

	if len(job.RequiredSkills) > 0 {
		fmt.Fprintf(&sb, "Required skills: %s\n", strings.Join(job.RequiredSkills, ", "))
	}
	if len(resume.Skills) > 0 {
		fmt.Fprintf(&sb, "Candidate skills: %s\n", strings.Join(resume.Skills, ", "))
	}
	if len(resume.Languages) > 0 {
		fmt.Fprintf(&sb, "Candidate languages: %s\n", strings.Join(resume.Languages, ", "))
	}
	fmt.Fprintf(&sb, "Candidate has PhD: %t, academic background: %t, experience entries: %d\n",
		resume.HasPhD, resume.HasAcademicBackground, len(resume.Experience))
	fmt.Fprintf(&sb, "Compatibility score: %d/100 (skills %.0f, experience %.0f, education %.0f, overqualification penalty %.0f)\n",
		b.FinalScore, b.SkillsMatch, b.ExperienceMatch, b.EducationMatch, b.OverqualificationPenalty)

	sb.WriteString("Produce the interview preparation JSON now.")
	return sb.String()
}
