package ai

import (
	"context"
	"fmt"
	"strings"

	"github.com/fairyhunter13/cv-fit-analyzer/internal/domain"
)

// Fallback is a deterministic, rule-based narrative generator. It is used
// when no API key is configured and whenever the upstream client fails, so
// an analysis always carries interview-prep content.
type Fallback struct{}

// NewFallback constructs a Fallback.
func NewFallback() *Fallback { return &Fallback{} }

// Generate builds the narrative from the extracted records alone. It never
// fails.
func (f *Fallback) Generate(_ context.Context, resume domain.ResumeRecord, job domain.JobRecord, _ domain.ScoreBreakdown) (domain.Narrative, error) {
	return domain.Narrative{
		CompanyAnalysis:       companyAnalysis(job),
		InterviewQuestions:    interviewQuestions(resume, job),
		StarStories:           starStories(resume),
		QuestionsToAsk:        questionsToAsk(job),
		SalaryInsights:        salaryInsights(job),
		OverqualificationTips: overqualificationTips(resume, job),
		Fallback:              true,
	}, nil
}

func companyAnalysis(job domain.JobRecord) []string {
	industry := job.Industry
	if industry == "" {
		industry = "technology"
	}
	out := []string{
		fmt.Sprintf("You're applying for a %s position", job.Title),
		fmt.Sprintf("This role is in the %s industry", industry),
		fmt.Sprintf("This appears to be a %s-level position", job.JobLevel),
		"Focus on demonstrating technical skills and cultural fit",
	}
	if job.Company != "" {
		out = append(out, fmt.Sprintf("Research %s's recent projects, values, and market position", job.Company))
	}
	return out
}

func interviewQuestions(resume domain.ResumeRecord, job domain.JobRecord) []domain.NarrativeQuestion {
	var qs []domain.NarrativeQuestion

	for _, skill := range headStrings(job.RequiredSkills, 3) {
		qs = append(qs, domain.NarrativeQuestion{
			Category: "Technical",
			Question: fmt.Sprintf("Can you describe your experience with %s?", skill),
		})
	}

	for _, q := range []string{
		"Tell me about a challenging project you worked on and how you overcame obstacles.",
		"Describe a time when you had to learn a new technology quickly.",
		"How do you handle conflicting priorities and tight deadlines?",
		"Give an example of how you collaborated with a diverse team.",
		"Describe a situation where you had to explain complex technical concepts to non-technical stakeholders.",
	} {
		qs = append(qs, domain.NarrativeQuestion{Category: "Behavioral", Question: q})
	}

	if resume.HasPhD {
		for _, q := range []string{
			"How do you see your PhD experience translating to this industry role?",
			"What made you decide to transition from academia to industry?",
			"How do you plan to adapt your research skills to business objectives?",
		} {
			qs = append(qs, domain.NarrativeQuestion{Category: "PhD Background", Question: q})
		}
	}

	company := job.Company
	if company == "" {
		company = "our company"
	}
	qs = append(qs,
		domain.NarrativeQuestion{
			Category: "Company Fit",
			Question: fmt.Sprintf("Why are you interested in working for %s?", company),
		},
		domain.NarrativeQuestion{
			Category: "Role Fit",
			Question: fmt.Sprintf("What attracts you to this %s position?", job.Title),
		},
	)
	return qs
}

func starStories(resume domain.ResumeRecord) []domain.StarStory {
	var stories []domain.StarStory

	if len(resume.Skills) > 0 {
		stories = append(stories, domain.StarStory{
			Title:     "Technical Problem Solving",
			Situation: "Describe a challenging technical project or research problem",
			Task:      "Explain your role and what needed to be accomplished",
			Action:    fmt.Sprintf("Detail how you used skills like %s to solve it", strings.Join(headStrings(resume.Skills, 2), ", ")),
			Result:    "Quantify the impact: performance improvement, time saved, problem solved",
		})
	}

	stories = append(stories,
		domain.StarStory{
			Title:     "Team Collaboration",
			Situation: "Think of a time you worked with a diverse team or stakeholders",
			Task:      "What was your role in ensuring project success?",
			Action:    "How did you communicate, coordinate, or resolve conflicts?",
			Result:    "What was achieved through effective collaboration?",
		},
		domain.StarStory{
			Title:     "Learning New Technology/Skill",
			Situation: "Recall when you had to quickly learn something new for a project",
			Task:      "What was the deadline and learning goal?",
			Action:    "How did you approach the learning process?",
			Result:    "How successfully did you apply the new knowledge?",
		},
	)

	if resume.HasPhD {
		stories = append(stories, domain.StarStory{
			Title:     "Research Project Management",
			Situation: "Describe your PhD research or a major research project",
			Task:      "What were the objectives and challenges?",
			Action:    "How did you plan, execute, and manage the research?",
			Result:    "What were the outcomes and broader impact?",
		})
	}
	return stories
}

func questionsToAsk(job domain.JobRecord) []domain.NarrativeQuestion {
	qs := []domain.NarrativeQuestion{
		{Category: "Role Understanding", Question: "What does a typical day/week look like in this role?"},
		{Category: "Team Dynamics", Question: "Can you tell me about the team I'd be working with?"},
		{Category: "Growth Opportunities", Question: "What opportunities are there for professional development and growth?"},
		{Category: "Company Culture", Question: "How would you describe the company culture and values?"},
		{Category: "Success Metrics", Question: "How do you measure success in this position?"},
		{Category: "Challenges", Question: "What are the biggest challenges facing the team/company right now?"},
	}
	if job.Industry != "" {
		qs = append(qs, domain.NarrativeQuestion{
			Category: "Industry Focus",
			Question: fmt.Sprintf("How is the company positioned in the %s market?", job.Industry),
		})
	}
	return qs
}

func salaryInsights(job domain.JobRecord) []string {
	insights := []string{
		"French salary discussions typically happen after initial interest is established",
		"Wait for the employer to bring up compensation, usually in second or third interview",
		"Consider total package: salary, benefits, vacation (5+ weeks standard), training budget",
		"French negotiations tend to be more formal and less aggressive than US style",
	}

	loc := strings.ToLower(job.Location)
	switch {
	case strings.Contains(loc, "paris"):
		insights = append(insights, "Paris salaries are typically 10-20% higher but cost of living is also higher")
	case strings.Contains(loc, "lyon"), strings.Contains(loc, "toulouse"), strings.Contains(loc, "nice"):
		insights = append(insights, "Regional French cities offer good work-life balance with competitive salaries")
	}

	switch job.JobLevel {
	case domain.LevelJunior:
		insights = append(insights, "Focus on learning opportunities and growth potential over immediate salary")
	case domain.LevelSenior:
		insights = append(insights, "Emphasize leadership experience and strategic contributions")
	}
	return insights
}

func overqualificationTips(resume domain.ResumeRecord, job domain.JobRecord) []string {
	var tips []string

	if resume.HasPhD && (job.JobLevel == domain.LevelJunior || job.JobLevel == domain.LevelMid) {
		tips = append(tips,
			`If asked "Why this level of position?": emphasize learning opportunities and the desire to apply your skills in a new context.`,
			`If asked "Won't you leave for a higher position quickly?": show genuine interest in the role and growing with the company.`,
			`If asked about salary expectations: emphasize learning and growth over immediate compensation.`,
		)
	}
	if resume.HasAcademicBackground {
		tips = append(tips,
			`If asked about adapting from academia: highlight that research taught you to work with deadlines, manage projects, and communicate complex ideas clearly.`,
		)
	}
	return tips
}

func headStrings(s []string, n int) []string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
