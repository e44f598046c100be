// Package analyzer turns raw resume and job-posting text into the structured
// records the scorer consumes. Extraction is keyword/regex based by design:
// no language model is involved, so results are deterministic and cheap.
//
// Both extractors are fail-soft: they never return an error to the caller.
// A resume that cannot be processed yields the all-empty record, a job
// posting yields the distinct unknown-level record.
package analyzer

import (
	"log/slog"
	"regexp"
	"strings"

	"github.com/fairyhunter13/cv-fit-analyzer/internal/domain"
	"github.com/fairyhunter13/cv-fit-analyzer/internal/vocab"
	"github.com/fairyhunter13/cv-fit-analyzer/pkg/textx"
)

var (
	emailRe = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)
	// French phone formats, +33 first.
	phoneRes = []*regexp.Regexp{
		regexp.MustCompile(`\+33\s?[1-9](?:[\s.-]?\d{2}){4}`),
		regexp.MustCompile(`0[1-9](?:[\s.-]?\d{2}){4}`),
	}
	// Degree patterns, most specific first: a PhD mention must not be
	// swallowed by the bachelor pattern. The field capture runs to the next
	// comma or line break.
	degreeRes = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(phd|ph\.d|doctorate|doctoral|doctor of philosophy)\s*(?:in\s+)?([^\n,]+)`),
		regexp.MustCompile(`(?i)(master|m\.s|m\.a|msc|ma)\s*(?:in\s+)?([^\n,]+)`),
		regexp.MustCompile(`(?i)(bachelor|b\.s|b\.a|bsc|ba)\s*(?:in\s+)?([^\n,]+)`),
		regexp.MustCompile(`(?i)(engineering degree|diplôme d'ingénieur)\s*(?:in\s+)?([^\n,]+)`),
	}
	publicationRes = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(?:published|publication|paper|article|journal).*["']([^"']+)["']`),
		regexp.MustCompile(`(?i)(\d{4}).*(?:published|journal|conference).*([^\n]+)`),
	}
)

// ResumeExtractor extracts a ResumeRecord from raw resume text. Vocabularies
// are fixed at construction; the extractor itself is stateless and safe for
// concurrent use.
type ResumeExtractor struct {
	voc vocab.Vocabulary
}

// NewResumeExtractor constructs a ResumeExtractor over the given vocabulary.
func NewResumeExtractor(voc vocab.Vocabulary) *ResumeExtractor {
	return &ResumeExtractor{voc: voc}
}

// Extract analyzes resume text. It never fails: empty or garbage input
// produces the empty record.
func (e *ResumeExtractor) Extract(text string) (rec domain.ResumeRecord) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("resume extraction recovered", slog.Any("recover", r))
			rec = emptyResumeRecord()
		}
	}()
	rec = emptyResumeRecord()
	if strings.TrimSpace(text) == "" {
		return rec
	}
	lower := strings.ToLower(text)

	rec.Contact = e.extractContact(text, lower)
	rec.Education = extractEducation(text)
	rec.Experience = e.extractExperience(text)
	rec.Skills = matchVocabulary(lower, e.voc.ResumeSkills)
	rec.Languages = matchVocabulary(lower, e.voc.Languages)
	rec.Certifications = matchVocabulary(lower, e.voc.Certifications)
	rec.Publications = extractPublications(text)
	rec.HasPhD = containsAny(lower, e.voc.PhDKeywords)
	rec.HasAcademicBackground = rec.HasPhD || countHits(lower, e.voc.AcademicKeywords) >= 2
	return rec
}

func emptyResumeRecord() domain.ResumeRecord {
	return domain.ResumeRecord{
		Education:      []domain.EducationEntry{},
		Experience:     []domain.ExperienceEntry{},
		Skills:         []string{},
		Languages:      []string{},
		Publications:   []string{},
		Certifications: []string{},
	}
}

func (e *ResumeExtractor) extractContact(text, lower string) domain.ContactInfo {
	var c domain.ContactInfo
	if m := emailRe.FindString(text); m != "" {
		c.Email = m
	}
	for _, re := range phoneRes {
		if m := re.FindString(text); m != "" {
			c.Phone = m
			break
		}
	}
	for _, city := range e.voc.Cities {
		if strings.Contains(lower, city) {
			c.Location = textx.TitleCase(city)
			break
		}
	}
	return c
}

// extractEducation keeps duplicate degree/field pairs on purpose: the field
// context differs mention to mention, unlike the deduplicated skill set.
func extractEducation(text string) []domain.EducationEntry {
	entries := []domain.EducationEntry{}
	for _, re := range degreeRes {
		for _, m := range re.FindAllStringSubmatch(text, -1) {
			entry := domain.EducationEntry{Degree: m[1]}
			if len(m) > 2 {
				entry.Field = strings.TrimSpace(m[2])
			}
			entries = append(entries, entry)
		}
	}
	return entries
}

func (e *ResumeExtractor) extractExperience(text string) []domain.ExperienceEntry {
	entries := []domain.ExperienceEntry{}
	for _, line := range textx.CollapseLines(text) {
		trimmed := strings.TrimSpace(line)
		if len(trimmed) <= 10 {
			continue
		}
		lower := strings.ToLower(line)
		for _, kw := range e.voc.RoleKeywords {
			if strings.Contains(lower, kw) {
				entries = append(entries, domain.ExperienceEntry{Title: trimmed})
				break
			}
		}
		if len(entries) == domain.MaxExperienceEntries {
			break
		}
	}
	return entries
}

func extractPublications(text string) []string {
	pubs := []string{}
	for _, re := range publicationRes {
		for _, m := range re.FindAllString(text, -1) {
			pubs = append(pubs, strings.TrimSpace(m))
			if len(pubs) == domain.MaxPublications {
				return pubs
			}
		}
	}
	return pubs
}

// matchVocabulary returns the title-cased, insertion-ordered set of
// vocabulary terms present in the lowered text.
func matchVocabulary(lower string, terms []string) []string {
	found := []string{}
	seen := map[string]struct{}{}
	for _, term := range terms {
		if !strings.Contains(lower, term) {
			continue
		}
		display := textx.TitleCase(term)
		if _, dup := seen[display]; dup {
			continue
		}
		seen[display] = struct{}{}
		found = append(found, display)
	}
	return found
}

func containsAny(lower string, terms []string) bool {
	for _, t := range terms {
		if strings.Contains(lower, t) {
			return true
		}
	}
	return false
}

func countHits(lower string, terms []string) int {
	n := 0
	for _, t := range terms {
		if strings.Contains(lower, t) {
			n++
		}
	}
	return n
}
