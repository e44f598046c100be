package analyzer

import (
	"log/slog"
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/fairyhunter13/cv-fit-analyzer/internal/domain"
	"github.com/fairyhunter13/cv-fit-analyzer/internal/vocab"
	"github.com/fairyhunter13/cv-fit-analyzer/pkg/textx"
)

var (
	titleRes = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(?:job title|position|poste|titre)[\s:]*([^\n]+)`),
		regexp.MustCompile(`(?i)(?:we are looking for|nous recherchons)\s*([^\n]+)`),
	}
	companyRes = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(?:company|société|entreprise)[\s:]*([^\n]+)`),
		regexp.MustCompile(`(?i)(?:at|chez)\s+([A-Z][^\n,]+)`),
	}
	requiredSectionRe  = regexp.MustCompile(`(?i)(?:required|must have|essential|obligatoire)[\s\w]*:?\s*([^.]+)`)
	preferredSectionRe = regexp.MustCompile(`(?i)(?:preferred|nice to have|bonus|souhaité)[\s\w]*:?\s*([^.]+)`)
	experienceReqRes   = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(\d+)(?:\+|\s*to\s*\d+)?\s*years?\s*(?:of\s*)?experience`),
		regexp.MustCompile(`(?i)(?:minimum|at least)\s*(\d+)\s*years?`),
		regexp.MustCompile(`(?i)(\d+)(?:\+|-\d+)?\s*ans?\s*d['’"]expérience`),
	}
	educationReqRes = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(bachelor|master|phd|doctorate|degree|diploma)`),
		regexp.MustCompile(`(?i)(bac\+\d+|licence|master|doctorat)`),
	}
	languageReqRes = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(?:fluent|native|proficient|bilingual)\s+(?:in\s+)?(\w+)`),
		regexp.MustCompile(`(?i)(\w+)\s+(?:fluency|proficiency|speaker)`),
		regexp.MustCompile(`(?i)(?:français|anglais|espagnol|allemand|italien)`),
		regexp.MustCompile(`(?i)(?:french|english|spanish|german|italian)`),
	}
	locationRes = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(?:location|lieu|localisation)[\s:]*([^\n]+)`),
		regexp.MustCompile(`(?i)(?:based in|situé à|basé à)\s+([^\n,]+)`),
	}
	companySizeRes = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(\d+)(?:\+|\s*to\s*\d+)?\s*(?:employees|people|personnes)`),
		regexp.MustCompile(`(?i)(?:startup|start-up|scale-up)`),
		regexp.MustCompile(`(?i)(?:sme|pme|large company|grande entreprise)`),
	}
	// \w is ASCII-only in Go regexps and would split accented French words,
	// so word tokens are matched by Unicode letter/digit classes instead.
	wordRe = regexp.MustCompile(`[\p{L}\p{N}_]+`)
)

// JobExtractor extracts a JobRecord from raw posting text.
//
// requiredSkillsFallback controls the policy applied when a posting labels
// neither a required nor a preferred section: when true, every vocabulary
// skill found anywhere in the text is treated as required, so required skills
// are never empty if any skill keyword is present. That makes loosely-worded
// postings skills-constrained, hence the explicit switch.
type JobExtractor struct {
	voc                    vocab.Vocabulary
	requiredSkillsFallback bool
}

// NewJobExtractor constructs a JobExtractor over the given vocabulary.
func NewJobExtractor(voc vocab.Vocabulary, requiredSkillsFallback bool) *JobExtractor {
	return &JobExtractor{voc: voc, requiredSkillsFallback: requiredSkillsFallback}
}

// Extract analyzes posting text. It never fails: on an internal fault it
// returns the failure record with JobLevel unknown, which is distinguishable
// from the always-mid default of a readable but ambiguous posting.
func (e *JobExtractor) Extract(text string) (rec domain.JobRecord) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("job extraction recovered", slog.Any("recover", r))
			rec = failedJobRecord()
		}
	}()
	lower := strings.ToLower(text)

	required, preferred := e.extractSkills(text, lower)
	rec = domain.JobRecord{
		Title:              e.extractTitle(text),
		Company:            firstCapture(companyRes, text),
		Location:           e.extractLocation(text, lower),
		Industry:           e.extractIndustry(lower),
		CompanySize:        firstMatch(companySizeRes, text),
		RequiredExperience: firstMatch(experienceReqRes, text),
		RequiredSkills:     required,
		PreferredSkills:    preferred,
		EducationRequired:  allMatches(educationReqRes, text),
		Languages:          allMatches(languageReqRes, text),
		JobLevel:           e.determineJobLevel(lower),
		Keywords:           extractKeywords(lower, e.voc.StopwordSet()),
	}
	return rec
}

func failedJobRecord() domain.JobRecord {
	return domain.JobRecord{
		Title:             "Unknown " + domain.DefaultJobTitle,
		RequiredSkills:    []string{},
		PreferredSkills:   []string{},
		EducationRequired: []string{},
		Languages:         []string{},
		JobLevel:          domain.LevelUnknown,
		Keywords:          []string{},
	}
}

func (e *JobExtractor) extractTitle(text string) string {
	for _, re := range titleRes {
		if m := re.FindStringSubmatch(text); m != nil {
			return strings.TrimSpace(m[1])
		}
	}
	// First line qualifies as title when short and role-like.
	firstLine := strings.TrimSpace(strings.SplitN(text, "\n", 2)[0])
	if len(firstLine) < 100 && containsAny(strings.ToLower(firstLine), e.voc.RoleKeywords) {
		return firstLine
	}
	return domain.DefaultJobTitle
}

// extractSkills is two-pass: labeled required sections first, then labeled
// preferred sections. Required wins on overlap, keeping the two sets
// disjoint. If neither section matched anything, the fallback policy may
// classify every skill found anywhere in the text as required.
func (e *JobExtractor) extractSkills(text, lower string) (required, preferred []string) {
	required = []string{}
	preferred = []string{}
	requiredSeen := map[string]struct{}{}

	for _, m := range requiredSectionRe.FindAllStringSubmatch(text, -1) {
		section := strings.ToLower(m[1])
		for _, skill := range e.voc.JobSkills {
			if _, dup := requiredSeen[skill]; dup {
				continue
			}
			if strings.Contains(section, skill) {
				requiredSeen[skill] = struct{}{}
				required = append(required, skill)
			}
		}
	}
	preferredSeen := map[string]struct{}{}
	for _, m := range preferredSectionRe.FindAllStringSubmatch(text, -1) {
		section := strings.ToLower(m[1])
		for _, skill := range e.voc.JobSkills {
			if _, dup := preferredSeen[skill]; dup {
				continue
			}
			if _, req := requiredSeen[skill]; req {
				continue
			}
			if strings.Contains(section, skill) {
				preferredSeen[skill] = struct{}{}
				preferred = append(preferred, skill)
			}
		}
	}

	if len(required) == 0 && len(preferred) == 0 && e.requiredSkillsFallback {
		for _, skill := range e.voc.JobSkills {
			if strings.Contains(lower, skill) {
				required = append(required, skill)
			}
		}
	}
	return required, preferred
}

func (e *JobExtractor) extractLocation(text, lower string) string {
	if m := firstCapture(locationRes, text); m != "" {
		return m
	}
	for _, city := range e.voc.Cities {
		if strings.Contains(lower, city) {
			return textx.TitleCase(city)
		}
	}
	return ""
}

func (e *JobExtractor) extractIndustry(lower string) string {
	for _, industry := range e.voc.Industries {
		if strings.Contains(lower, industry) {
			return textx.TitleCase(industry)
		}
	}
	return ""
}

// determineJobLevel scans in fixed priority: senior keywords win over junior,
// junior over mid. Absence of all three defaults to mid.
func (e *JobExtractor) determineJobLevel(lower string) domain.JobLevel {
	switch {
	case containsAny(lower, e.voc.SeniorKeywords):
		return domain.LevelSenior
	case containsAny(lower, e.voc.JuniorKeywords):
		return domain.LevelJunior
	case containsAny(lower, e.voc.MidKeywords):
		return domain.LevelMid
	}
	return domain.LevelMid
}

// extractKeywords returns the top MaxKeywords content words by descending
// frequency. Ties keep first-occurrence order (stable sort over the
// first-seen enumeration).
func extractKeywords(lower string, stopwords map[string]struct{}) []string {
	counts := map[string]int{}
	order := []string{}
	for _, w := range wordRe.FindAllString(lower, -1) {
		if utf8.RuneCountInString(w) <= 3 {
			continue
		}
		if _, stop := stopwords[w]; stop {
			continue
		}
		if _, seen := counts[w]; !seen {
			order = append(order, w)
		}
		counts[w]++
	}
	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})
	if len(order) > domain.MaxKeywords {
		order = order[:domain.MaxKeywords]
	}
	return order
}

func firstCapture(res []*regexp.Regexp, text string) string {
	for _, re := range res {
		if m := re.FindStringSubmatch(text); m != nil {
			return strings.TrimSpace(m[1])
		}
	}
	return ""
}

func firstMatch(res []*regexp.Regexp, text string) string {
	for _, re := range res {
		if m := re.FindString(text); m != "" {
			return strings.TrimSpace(m)
		}
	}
	return ""
}

func allMatches(res []*regexp.Regexp, text string) []string {
	out := []string{}
	seen := map[string]struct{}{}
	for _, re := range res {
		for _, m := range re.FindAllString(text, -1) {
			m = strings.ToLower(strings.TrimSpace(m))
			if _, dup := seen[m]; dup {
				continue
			}
			seen[m] = struct{}{}
			out = append(out, m)
		}
	}
	return out
}
