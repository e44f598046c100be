// Package domain defines the core data model of the resume/job fit analyzer
// and the ports implemented by adapters.
package domain

import (
	"context"
	"errors"
	"time"
)

// Error taxonomy (sentinels)
var (
	ErrInvalidArgument  = errors.New("invalid argument")
	ErrUnsupportedMedia = errors.New("unsupported media type")
	ErrUpstreamTimeout  = errors.New("upstream timeout")
	ErrUnavailable      = errors.New("collaborator unavailable")
	ErrInternal         = errors.New("internal error")
)

// InputKind distinguishes the two text inputs of an analysis.
type InputKind string

const (
	InputResume InputKind = "resume"
	InputJob    InputKind = "job_posting"
)

// ContactInfo holds the optional contact fields extracted from a resume.
// Empty string means not found.
type ContactInfo struct {
	Email    string
	Phone    string
	Location string
}

// EducationEntry is one detected degree mention. Duplicate degree/field pairs
// are kept: the field context differs mention to mention, unlike skills.
type EducationEntry struct {
	Degree string
	Field  string
}

// ExperienceEntry is one detected work-experience line.
type ExperienceEntry struct {
	Title string
}

// ResumeRecord is the structured view of a resume. All slice fields are
// empty, never nil; construction is fail-soft so an unreadable resume yields
// the zero-valued record.
type ResumeRecord struct {
	Contact        ContactInfo
	Education      []EducationEntry
	Experience     []ExperienceEntry // capped at MaxExperienceEntries
	Skills         []string          // deduplicated, title-cased
	Languages      []string
	Publications   []string // capped at MaxPublications
	Certifications []string
	HasPhD         bool
	// HasAcademicBackground is true when at least two academic-context
	// keywords appear, or HasPhD is true.
	HasAcademicBackground bool
}

// Extraction caps keep downstream finding lists bounded.
const (
	MaxExperienceEntries = 5
	MaxPublications      = 3
	MaxKeywords          = 20
)

// JobLevel is the detected seniority of a posting.
type JobLevel string

const (
	LevelJunior JobLevel = "junior"
	LevelMid    JobLevel = "mid"
	LevelSenior JobLevel = "senior"
	// LevelUnknown is only produced on extractor failure, never on an
	// ambiguous-but-readable posting (those default to mid).
	LevelUnknown JobLevel = "unknown"
)

// DefaultJobTitle is used when no title can be extracted.
const DefaultJobTitle = "Position"

// JobRecord is the structured view of a job posting. RequiredSkills and
// PreferredSkills are disjoint: required-section matches win.
type JobRecord struct {
	Title              string
	Company            string
	Location           string
	Industry           string
	CompanySize        string
	RequiredExperience string
	RequiredSkills     []string
	PreferredSkills    []string
	EducationRequired  []string
	Languages          []string
	JobLevel           JobLevel
	// Keywords holds up to MaxKeywords most frequent content words,
	// descending by frequency, ties by first occurrence.
	Keywords []string
}

// ScoreBreakdown carries the six weighted sub-scores and the derived final
// score. Err is the failure marker: when set, FinalScore 0 means "no analysis
// available", not "zero compatibility".
type ScoreBreakdown struct {
	SkillsMatch             float64
	ExperienceMatch         float64
	EducationMatch          float64
	OverqualificationPenalty float64
	LanguageMatch           float64
	LocationMatch           float64
	FinalScore              int
	Explanation             string
	Err                     string
}

// Failed reports whether the breakdown is an error marker rather than a
// legitimate score.
func (b ScoreBreakdown) Failed() bool { return b.Err != "" }

// FindingKind tags the three finding variants.
type FindingKind string

const (
	FindingStrong         FindingKind = "strong_point"
	FindingWeak           FindingKind = "weak_point"
	FindingRecommendation FindingKind = "recommendation"
)

// Priority orders recommendations.
type Priority string

const (
	PriorityHigh   Priority = "High"
	PriorityMedium Priority = "Medium"
	PriorityLow    Priority = "Low"
)

// Finding is a value object produced by the gap analyzer and recommendation
// engine. Kind decides which auxiliary fields are populated: Leverage on
// strong points, Impact on weak points, Action and Priority on
// recommendations. Ordering in lists is significant.
type Finding struct {
	Kind        FindingKind
	Category    string
	Statement   string
	Explanation string
	Leverage    string
	Impact      string
	Action      string
	Priority    Priority
	// Implementation is a concrete example of applying the Action. Set on
	// recommendations only.
	Implementation string
}

// Narrative is the optional interview-preparation content. Fallback marks
// content produced by the static generator instead of the language model.
type Narrative struct {
	CompanyAnalysis       []string
	InterviewQuestions    []NarrativeQuestion
	StarStories           []StarStory
	QuestionsToAsk        []NarrativeQuestion
	SalaryInsights        []string
	OverqualificationTips []string
	Fallback              bool
}

// NarrativeQuestion is a single question with its category.
type NarrativeQuestion struct {
	Category string
	Question string
}

// StarStory is a Situation/Task/Action/Result preparation template.
type StarStory struct {
	Title     string
	Situation string
	Task      string
	Action    string
	Result    string
}

// Report is the full analysis bundle consumed by rendering collaborators.
// It is assembled once per request and never mutated.
type Report struct {
	ID           string
	Resume       ResumeRecord
	Job          JobRecord
	Breakdown    ScoreBreakdown
	StrongPoints []Finding
	WeakPoints   []Finding
	// Improvements are the gap analyzer's broad-stroke suggestions;
	// Recommendations are the engine's prioritized, actionable list.
	Improvements    []Finding
	Recommendations []Finding
	Narrative       *Narrative
	CreatedAt       time.Time
}

// ValidationResult is the outcome of input validation. Invalid input is a
// normal control-flow outcome, not an internal fault; Reason is the
// user-facing explanation.
type ValidationResult struct {
	Valid      bool
	Reason     string
	Confidence float64 // 0-100
	Issues     []string
}

// TextExtractor converts an uploaded file into plain text (port).
type TextExtractor interface {
	Extract(ctx Context, filename string, data []byte) (string, error)
}

// NarrativeGenerator produces optional interview-prep content (port).
// Implementations must honor ctx cancellation; callers substitute a static
// fallback when the generator errors or times out.
type NarrativeGenerator interface {
	Generate(ctx Context, resume ResumeRecord, job JobRecord, breakdown ScoreBreakdown) (Narrative, error)
}

// Context aliases context.Context so the domain package stays decoupled from
// adapter imports while usecases pass standard contexts through.
type Context = context.Context
