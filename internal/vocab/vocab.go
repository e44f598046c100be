// Package vocab holds the fixed keyword vocabularies used by the extractors
// and scorer. Vocabularies are immutable configuration injected at
// construction time, not hardcoded globals, so tests can substitute small
// lists and deployments can localize to other job markets.
package vocab

import (
	_ "embed"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed vocab.yaml
var defaultYAML []byte

// Vocabulary groups every keyword list the analyzers consult. All lists are
// matched case-insensitively against lowercased input.
type Vocabulary struct {
	PhDKeywords      []string `yaml:"phd_keywords"`
	AcademicKeywords []string `yaml:"academic_keywords"`
	ResumeSkills     []string `yaml:"resume_skills"`
	JobSkills        []string `yaml:"job_skills"`
	Languages        []string `yaml:"languages"`
	Certifications   []string `yaml:"certifications"`
	RoleKeywords     []string `yaml:"role_keywords"`
	Cities           []string `yaml:"cities"`
	Industries       []string `yaml:"industries"`
	// AcademicFriendlyIndustries lists industries where an academic profile
	// carries no overqualification penalty.
	AcademicFriendlyIndustries []string `yaml:"academic_friendly_industries"`
	SeniorKeywords             []string `yaml:"senior_keywords"`
	JuniorKeywords             []string `yaml:"junior_keywords"`
	MidKeywords                []string `yaml:"mid_keywords"`
	Stopwords                  []string `yaml:"stopwords"`
}

var (
	defaultOnce sync.Once
	defaultVoc  Vocabulary
	defaultErr  error
)

// Default returns the embedded vocabulary. Parsing happens once per process;
// the returned value is safe for concurrent sharing because callers never
// mutate it.
func Default() (Vocabulary, error) {
	defaultOnce.Do(func() {
		defaultVoc, defaultErr = Parse(defaultYAML)
	})
	return defaultVoc, defaultErr
}

// MustDefault is Default for wiring paths where the embedded file is known
// good; it panics only on a build defect.
func MustDefault() Vocabulary {
	v, err := Default()
	if err != nil {
		panic(err)
	}
	return v
}

// Parse decodes a YAML vocabulary document.
func Parse(data []byte) (Vocabulary, error) {
	var v Vocabulary
	if err := yaml.Unmarshal(data, &v); err != nil {
		return Vocabulary{}, fmt.Errorf("op=vocab.Parse: %w", err)
	}
	return v, nil
}

// StopwordSet returns the stopwords as a membership set.
func (v Vocabulary) StopwordSet() map[string]struct{} {
	set := make(map[string]struct{}, len(v.Stopwords))
	for _, w := range v.Stopwords {
		set[w] = struct{}{}
	}
	return set
}
