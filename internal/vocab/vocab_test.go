package vocab_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fairyhunter13/cv-fit-analyzer/internal/vocab"
)

func TestDefault_LoadsEmbedded(t *testing.T) {
	t.Parallel()
	v, err := vocab.Default()
	require.NoError(t, err)
	assert.Contains(t, v.PhDKeywords, "phd")
	assert.Contains(t, v.JobSkills, "kubernetes")
	assert.Contains(t, v.Cities, "paris")
	assert.Contains(t, v.AcademicFriendlyIndustries, "research")
	assert.NotEmpty(t, v.Stopwords)
}

func TestParse_CustomVocabulary(t *testing.T) {
	t.Parallel()
	v, err := vocab.Parse([]byte("phd_keywords: [doktor]\nstopwords: [und, der]\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"doktor"}, v.PhDKeywords)
	set := v.StopwordSet()
	_, ok := set["und"]
	assert.True(t, ok)
}

func TestParse_Invalid(t *testing.T) {
	t.Parallel()
	_, err := vocab.Parse([]byte("phd_keywords: {broken"))
	require.Error(t, err)
}
