package httpserver

import (
	"time"

	"github.com/fairyhunter13/cv-fit-analyzer/internal/domain"
)

// Wire representation of a finished analysis. The domain model stays free of
// serialization tags; this mapping is the only place field names are decided.

type reportResponse struct {
	ID              string             `json:"id"`
	CreatedAt       time.Time          `json:"created_at"`
	Resume          resumeSummary      `json:"resume"`
	Job             jobSummary         `json:"job"`
	Score           breakdownResponse  `json:"score"`
	StrongPoints    []findingResponse  `json:"strong_points"`
	WeakPoints      []findingResponse  `json:"weak_points"`
	Improvements    []findingResponse  `json:"improvements"`
	Recommendations []findingResponse  `json:"recommendations"`
	Narrative       *narrativeResponse `json:"narrative,omitempty"`
}

type resumeSummary struct {
	Skills    []string `json:"skills"`
	Languages []string `json:"languages"`
	HasPhD    bool     `json:"has_phd"`
}

type jobSummary struct {
	Title           string   `json:"title"`
	Company         string   `json:"company,omitempty"`
	Level           string   `json:"level"`
	RequiredSkills  []string `json:"required_skills"`
	PreferredSkills []string `json:"preferred_skills"`
}

type breakdownResponse struct {
	FinalScore               int     `json:"final_score"`
	Explanation              string  `json:"explanation"`
	SkillsMatch              float64 `json:"skills_match"`
	ExperienceMatch          float64 `json:"experience_match"`
	EducationMatch           float64 `json:"education_match"`
	OverqualificationPenalty float64 `json:"overqualification_penalty"`
	LanguageMatch            float64 `json:"language_match"`
	LocationMatch            float64 `json:"location_match"`
	Error                    string  `json:"error,omitempty"`
}

type findingResponse struct {
	Category       string `json:"category"`
	Statement      string `json:"statement,omitempty"`
	Explanation    string `json:"explanation,omitempty"`
	Leverage       string `json:"leverage,omitempty"`
	Impact         string `json:"impact,omitempty"`
	Action         string `json:"action,omitempty"`
	Priority       string `json:"priority,omitempty"`
	Implementation string `json:"implementation,omitempty"`
}

type narrativeResponse struct {
	CompanyAnalysis       []string           `json:"company_analysis"`
	InterviewQuestions    []questionResponse `json:"interview_questions"`
	StarStories           []storyResponse    `json:"star_stories"`
	QuestionsToAsk        []questionResponse `json:"questions_to_ask"`
	SalaryInsights        []string           `json:"salary_insights"`
	OverqualificationTips []string           `json:"overqualification_tips,omitempty"`
	Fallback              bool               `json:"fallback"`
}

type questionResponse struct {
	Category string `json:"category"`
	Question string `json:"question"`
}

type storyResponse struct {
	Title     string `json:"title"`
	Situation string `json:"situation"`
	Task      string `json:"task"`
	Action    string `json:"action"`
	Result    string `json:"result"`
}

func toReportResponse(rep domain.Report) reportResponse {
	return reportResponse{
		ID:        rep.ID,
		CreatedAt: rep.CreatedAt,
		Resume: resumeSummary{
			Skills:    rep.Resume.Skills,
			Languages: rep.Resume.Languages,
			HasPhD:    rep.Resume.HasPhD,
		},
		Job: jobSummary{
			Title:           rep.Job.Title,
			Company:         rep.Job.Company,
			Level:           string(rep.Job.JobLevel),
			RequiredSkills:  rep.Job.RequiredSkills,
			PreferredSkills: rep.Job.PreferredSkills,
		},
		Score: breakdownResponse{
			FinalScore:               rep.Breakdown.FinalScore,
			Explanation:              rep.Breakdown.Explanation,
			SkillsMatch:              rep.Breakdown.SkillsMatch,
			ExperienceMatch:          rep.Breakdown.ExperienceMatch,
			EducationMatch:           rep.Breakdown.EducationMatch,
			OverqualificationPenalty: rep.Breakdown.OverqualificationPenalty,
			LanguageMatch:            rep.Breakdown.LanguageMatch,
			LocationMatch:            rep.Breakdown.LocationMatch,
			Error:                    rep.Breakdown.Err,
		},
		StrongPoints:    toFindingResponses(rep.StrongPoints),
		WeakPoints:      toFindingResponses(rep.WeakPoints),
		Improvements:    toFindingResponses(rep.Improvements),
		Recommendations: toFindingResponses(rep.Recommendations),
		Narrative:       toNarrativeResponse(rep.Narrative),
	}
}

func toFindingResponses(in []domain.Finding) []findingResponse {
	out := make([]findingResponse, 0, len(in))
	for _, f := range in {
		out = append(out, findingResponse{
			Category:       f.Category,
			Statement:      f.Statement,
			Explanation:    f.Explanation,
			Leverage:       f.Leverage,
			Impact:         f.Impact,
			Action:         f.Action,
			Priority:       string(f.Priority),
			Implementation: f.Implementation,
		})
	}
	return out
}

func toNarrativeResponse(n *domain.Narrative) *narrativeResponse {
	if n == nil {
		return nil
	}
	return &narrativeResponse{
		CompanyAnalysis:       n.CompanyAnalysis,
		InterviewQuestions:    toQuestionResponses(n.InterviewQuestions),
		StarStories:           toStoryResponses(n.StarStories),
		QuestionsToAsk:        toQuestionResponses(n.QuestionsToAsk),
		SalaryInsights:        n.SalaryInsights,
		OverqualificationTips: n.OverqualificationTips,
		Fallback:              n.Fallback,
	}
}

func toQuestionResponses(in []domain.NarrativeQuestion) []questionResponse {
	out := make([]questionResponse, 0, len(in))
	for _, q := range in {
		out = append(out, questionResponse{Category: q.Category, Question: q.Question})
	}
	return out
}

func toStoryResponses(in []domain.StarStory) []storyResponse {
	out := make([]storyResponse, 0, len(in))
	for _, s := range in {
		out = append(out, storyResponse{Title: s.Title, Situation: s.Situation, Task: s.Task, Action: s.Action, Result: s.Result})
	}
	return out
}
