// Package textx provides small text utilities used across the project.
package textx

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// MaxInputBytes caps sanitized input length; larger texts are truncated.
const MaxInputBytes = 50_000

var (
	scriptTagRe  = regexp.MustCompile(`(?is)<script[^>]*>.*?</script>`)
	jsSchemeRe   = regexp.MustCompile(`(?i)javascript:`)
	dataSchemeRe = regexp.MustCompile(`(?i)data:`)
	spaceRunRe   = regexp.MustCompile(`[ \t]+`)
	blankRunRe   = regexp.MustCompile(`\n{3,}`)
)

// SanitizeText removes control characters except tab/newline/CR and trims spaces.
func SanitizeText(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r == '\n' || r == '\r' || r == '\t' || (r >= 32 && r != 127) {
			b.WriteRune(r)
		}
	}
	return strings.TrimSpace(b.String())
}

// SanitizeInput prepares untrusted user text for analysis: strips script tags
// and javascript:/data: schemes, collapses space runs within lines, and
// truncates to MaxInputBytes. Newlines survive so the line-oriented
// extraction passes still see document structure.
func SanitizeInput(s string) string {
	if s == "" {
		return ""
	}
	s = scriptTagRe.ReplaceAllString(s, "")
	s = jsSchemeRe.ReplaceAllString(s, "")
	s = dataSchemeRe.ReplaceAllString(s, "")
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = spaceRunRe.ReplaceAllString(s, " ")
	s = blankRunRe.ReplaceAllString(s, "\n\n")
	if len(s) > MaxInputBytes {
		cut := MaxInputBytes
		for cut > 0 && !utf8.RuneStart(s[cut]) {
			cut--
		}
		s = s[:cut]
	}
	return strings.TrimSpace(s)
}

// CollapseLines normalizes CRLF to LF and drops blank-only lines, preserving
// line structure for line-oriented extraction passes.
func CollapseLines(s string) []string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	raw := strings.Split(s, "\n")
	out := make([]string, 0, len(raw))
	for _, l := range raw {
		if strings.TrimSpace(l) != "" {
			out = append(out, l)
		}
	}
	return out
}

// Truncate shortens s to max bytes, appending an ellipsis when cut.
func Truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	if max <= 3 {
		return s[:max]
	}
	return s[:max-3] + "..."
}

// TitleCase upper-cases the first letter of each space-separated word. Unlike
// strings.Title it does not touch letters inside a word, so "ci/cd" stays
// recognizable as "Ci/cd".
func TitleCase(s string) string {
	words := strings.Fields(strings.ToLower(s))
	for i, w := range words {
		r, size := utf8.DecodeRuneInString(w)
		words[i] = string(unicode.ToUpper(r)) + w[size:]
	}
	return strings.Join(words, " ")
}
