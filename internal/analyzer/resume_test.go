package analyzer_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fairyhunter13/cv-fit-analyzer/internal/analyzer"
	"github.com/fairyhunter13/cv-fit-analyzer/internal/vocab"
)

const sampleResume = `Marie Dupont
Email: marie.dupont@lab.fr
Phone: +33 6 12 34 56 78
Based in Paris, France

EDUCATION
PhD in Machine Learning, Université Paris-Saclay
Master in Computer Science

EXPERIENCE
Research Engineer at Acme Labs (2019-2023)
Software Developer at StartCo
Data Analyst internship

SKILLS
Python, SQL, Docker, Machine Learning, Git

LANGUAGES
French, English

Published "Deep Kernel Methods for Time Series" in a journal.
`

func newResumeExtractor(t *testing.T) *analyzer.ResumeExtractor {
	t.Helper()
	return analyzer.NewResumeExtractor(vocab.MustDefault())
}

func TestResumeExtract_Contact(t *testing.T) {
	t.Parallel()
	rec := newResumeExtractor(t).Extract(sampleResume)
	assert.Equal(t, "marie.dupont@lab.fr", rec.Contact.Email)
	assert.Equal(t, "+33 6 12 34 56 78", rec.Contact.Phone)
	assert.Equal(t, "Paris", rec.Contact.Location)
}

func TestResumeExtract_EducationKeepsDuplicates(t *testing.T) {
	t.Parallel()
	rec := newResumeExtractor(t).Extract(sampleResume)
	require.NotEmpty(t, rec.Education)
	// PhD pattern is tried first, so the doctoral entry precedes the master.
	assert.Equal(t, "PhD", rec.Education[0].Degree)
	assert.Contains(t, rec.Education[0].Field, "Machine Learning")
}

func TestResumeExtract_ExperienceCapped(t *testing.T) {
	t.Parallel()
	var b strings.Builder
	for i := 0; i < 10; i++ {
		b.WriteString("Senior Software Engineer at BigCo building services\n")
	}
	rec := newResumeExtractor(t).Extract(b.String())
	assert.Len(t, rec.Experience, 5)
}

func TestResumeExtract_ExperienceIgnoresShortLines(t *testing.T) {
	t.Parallel()
	rec := newResumeExtractor(t).Extract("engineer\nLead Developer at LongEnough Corp\n")
	require.Len(t, rec.Experience, 1)
	assert.Equal(t, "Lead Developer at LongEnough Corp", rec.Experience[0].Title)
}

func TestResumeExtract_SkillsDedupedAndTitleCased(t *testing.T) {
	t.Parallel()
	rec := newResumeExtractor(t).Extract("python PYTHON python sql machine learning experience of an engineer at a firm")
	assert.Contains(t, rec.Skills, "Python")
	assert.Contains(t, rec.Skills, "Machine Learning")
	counts := map[string]int{}
	for _, s := range rec.Skills {
		counts[s]++
	}
	assert.Equal(t, 1, counts["Python"])
}

func TestResumeExtract_PhDKeywordLaw(t *testing.T) {
	t.Parallel()
	ex := newResumeExtractor(t)
	for _, kw := range vocab.MustDefault().PhDKeywords {
		rec := ex.Extract("Candidate profile mentioning " + strings.ToUpper(kw) + " somewhere.")
		assert.True(t, rec.HasPhD, "keyword %q must set HasPhD", kw)
	}
	rec := ex.Extract("An ordinary sales profile with no advanced signals at all.")
	assert.False(t, rec.HasPhD)
}

func TestResumeExtract_AcademicBackgroundThreshold(t *testing.T) {
	t.Parallel()
	ex := newResumeExtractor(t)
	// One academic keyword is not enough.
	one := ex.Extract("Worked near a university campus for years as a barista somewhere far away.")
	assert.False(t, one.HasAcademicBackground)
	// Two keywords cross the threshold.
	two := ex.Extract("University lecturer, member of the faculty council for three years running.")
	assert.True(t, two.HasAcademicBackground)
	// PhD alone implies an academic background.
	phd := ex.Extract("Completed a doctorate far from any campus or institution in particular.")
	assert.True(t, phd.HasAcademicBackground)
}

func TestResumeExtract_PublicationsCapped(t *testing.T) {
	t.Parallel()
	text := strings.Repeat("Published \"A Result\" in a famous journal.\n", 6)
	rec := newResumeExtractor(t).Extract(text)
	assert.Len(t, rec.Publications, 3)
}

func TestResumeExtract_EmptyInput(t *testing.T) {
	t.Parallel()
	rec := newResumeExtractor(t).Extract("")
	assert.False(t, rec.HasPhD)
	assert.False(t, rec.HasAcademicBackground)
	assert.NotNil(t, rec.Skills)
	assert.Empty(t, rec.Skills)
	assert.NotNil(t, rec.Education)
	assert.Empty(t, rec.Education)
	assert.NotNil(t, rec.Experience)
	assert.Empty(t, rec.Experience)
	assert.NotNil(t, rec.Publications)
	assert.Empty(t, rec.Publications)
}

func TestResumeExtract_CustomVocabulary(t *testing.T) {
	t.Parallel()
	voc, err := vocab.Parse([]byte("resume_skills: [fortran]\nrole_keywords: [wrangler]\n"))
	require.NoError(t, err)
	rec := analyzer.NewResumeExtractor(voc).Extract("Data Wrangler with deep fortran experience")
	assert.Equal(t, []string{"Fortran"}, rec.Skills)
	require.Len(t, rec.Experience, 1)
}
