package analyzer_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fairyhunter13/cv-fit-analyzer/internal/analyzer"
	"github.com/fairyhunter13/cv-fit-analyzer/internal/domain"
	"github.com/fairyhunter13/cv-fit-analyzer/internal/vocab"
)

const sampleJob = `Position: Data Engineer
Company: StreamWorks

We are building pipelines for analytics at scale.

Required skills: python, sql, aws and docker.
Preferred skills: kubernetes and react would be a bonus.

Minimum 3 years of experience.
Master degree required.
Fluent in English.
Location: Lyon
This fintech scale-up has 120 employees.
`

func newJobExtractor(t *testing.T) *analyzer.JobExtractor {
	t.Helper()
	return analyzer.NewJobExtractor(vocab.MustDefault(), true)
}

func TestJobExtract_TitleAndCompany(t *testing.T) {
	t.Parallel()
	rec := newJobExtractor(t).Extract(sampleJob)
	assert.Equal(t, "Data Engineer", rec.Title)
	assert.Equal(t, "StreamWorks", rec.Company)
}

func TestJobExtract_TitleFirstLineHeuristic(t *testing.T) {
	t.Parallel()
	ex := newJobExtractor(t)
	rec := ex.Extract("Senior Backend Engineer\nJoin our team in Lyon.")
	assert.Equal(t, "Senior Backend Engineer", rec.Title)

	// A long first line without a role keyword falls back to the default.
	long := strings.Repeat("word ", 30) + "\nmore text"
	rec = ex.Extract(long)
	assert.Equal(t, domain.DefaultJobTitle, rec.Title)
}

func TestJobExtract_SkillsSectionsDisjoint(t *testing.T) {
	t.Parallel()
	rec := newJobExtractor(t).Extract(sampleJob)
	assert.ElementsMatch(t, []string{"python", "sql", "aws", "docker"}, rec.RequiredSkills)
	assert.ElementsMatch(t, []string{"react", "kubernetes"}, rec.PreferredSkills)
	for _, p := range rec.PreferredSkills {
		assert.NotContains(t, rec.RequiredSkills, p)
	}
}

func TestJobExtract_RequiredWinsOverPreferred(t *testing.T) {
	t.Parallel()
	text := `Position: Engineer
Required: python and docker.
Preferred: python, react.
` + filler
	rec := newJobExtractor(t).Extract(text)
	assert.Contains(t, rec.RequiredSkills, "python")
	assert.NotContains(t, rec.PreferredSkills, "python")
	assert.Contains(t, rec.PreferredSkills, "react")
}

// filler keeps heuristic-sensitive tests from tripping unrelated extractors.
const filler = "General description text follows here.\n"

func TestJobExtract_FallbackPolicy(t *testing.T) {
	t.Parallel()
	text := "Position: Engineer\nWe use python, docker and kubernetes every day.\n"

	withFallback := analyzer.NewJobExtractor(vocab.MustDefault(), true).Extract(text)
	assert.ElementsMatch(t, []string{"python", "docker", "kubernetes"}, withFallback.RequiredSkills)
	assert.Empty(t, withFallback.PreferredSkills)

	withoutFallback := analyzer.NewJobExtractor(vocab.MustDefault(), false).Extract(text)
	assert.Empty(t, withoutFallback.RequiredSkills)
}

func TestJobExtract_JobLevelPriority(t *testing.T) {
	t.Parallel()
	ex := newJobExtractor(t)
	cases := []struct {
		name string
		text string
		want domain.JobLevel
	}{
		{"senior wins over junior", "Senior role, junior mindset welcome", domain.LevelSenior},
		{"junior", "Graduate entry position for a junior profile", domain.LevelJunior},
		{"mid keyword", "Intermediate level role", domain.LevelMid},
		{"default mid", "A role with no level wording at all", domain.LevelMid},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			rec := ex.Extract(tc.text)
			assert.Equal(t, tc.want, rec.JobLevel)
			assert.NotEqual(t, domain.LevelUnknown, rec.JobLevel)
		})
	}
}

func TestJobExtract_ExperienceEducationLanguageLocation(t *testing.T) {
	t.Parallel()
	rec := newJobExtractor(t).Extract(sampleJob)
	assert.Equal(t, "3 years of experience", rec.RequiredExperience)
	assert.Contains(t, rec.EducationRequired, "master")
	assert.Contains(t, rec.Languages, "english")
	assert.Equal(t, "Lyon", rec.Location)
	// "tech" precedes "fintech" in the vocabulary and wins on substring.
	assert.Equal(t, "Tech", rec.Industry)
	assert.Equal(t, "120 employees", rec.CompanySize)
}

func TestJobExtract_KeywordsOrderedByFrequency(t *testing.T) {
	t.Parallel()
	text := "alpha alpha alpha beta beta gamma delta epsilon " +
		"with the and for " + // stopwords dropped
		"abc " // <=3 chars dropped
	rec := newJobExtractor(t).Extract(text)
	require.NotEmpty(t, rec.Keywords)
	assert.Equal(t, "alpha", rec.Keywords[0])
	assert.Equal(t, "beta", rec.Keywords[1])
	// Ties (gamma/delta/epsilon all count 1) keep first-seen order.
	assert.Equal(t, []string{"gamma", "delta", "epsilon"}, rec.Keywords[2:5])
	assert.NotContains(t, rec.Keywords, "with")
	assert.NotContains(t, rec.Keywords, "abc")
}

func TestJobExtract_KeywordsTokenizeAccentedWords(t *testing.T) {
	t.Parallel()
	text := "expérience expérience développeur développeur données " +
		"dans avec pour " // French stopwords dropped
	rec := newJobExtractor(t).Extract(text)
	assert.Contains(t, rec.Keywords, "expérience")
	assert.Contains(t, rec.Keywords, "développeur")
	assert.Contains(t, rec.Keywords, "données")
	// Accented words must never surface as broken fragments.
	assert.NotContains(t, rec.Keywords, "rience")
	assert.NotContains(t, rec.Keywords, "veloppeur")
	assert.NotContains(t, rec.Keywords, "dans")
}

func TestJobExtract_KeywordsCapped(t *testing.T) {
	t.Parallel()
	var b strings.Builder
	for i := 0; i < 30; i++ {
		b.WriteString("uniqueword")
		b.WriteByte(byte('a' + i))
		b.WriteString(" ")
	}
	rec := newJobExtractor(t).Extract(b.String())
	assert.Len(t, rec.Keywords, domain.MaxKeywords)
}
