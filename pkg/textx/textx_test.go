// Package textx contains tests for the text utilities.
package textx

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestSanitizeText(t *testing.T) {
	in := "he\x00llo\nwo\x7frld\t!"
	got := SanitizeText(in)
	if got != "hello\nworld\t!" {
		t.Fatalf("unexpected: %q", got)
	}
}

func TestSanitizeInput_StripsScripts(t *testing.T) {
	in := "before <script>alert(1)</script> after javascript:void(0)"
	got := SanitizeInput(in)
	if strings.Contains(got, "script") || strings.Contains(got, "javascript:") {
		t.Fatalf("dangerous content survived: %q", got)
	}
	if got != "before after void(0)" {
		t.Fatalf("unexpected: %q", got)
	}
}

func TestSanitizeInput_TruncatesLongInput(t *testing.T) {
	in := strings.Repeat("a", MaxInputBytes+100)
	if got := SanitizeInput(in); len(got) > MaxInputBytes {
		t.Fatalf("not truncated: %d bytes", len(got))
	}
}

func TestSanitizeInput_TruncatesAtRuneBoundary(t *testing.T) {
	in := "a" + strings.Repeat("é", MaxInputBytes)
	got := SanitizeInput(in)
	if len(got) > MaxInputBytes {
		t.Fatalf("not truncated: %d bytes", len(got))
	}
	if !utf8.ValidString(got) {
		t.Fatalf("truncation split a rune")
	}
}

func TestSanitizeInput_KeepsLineStructure(t *testing.T) {
	in := "Name: Jane Dupont\r\n\n\n\nSkills:  Python\tSQL"
	got := SanitizeInput(in)
	if got != "Name: Jane Dupont\n\nSkills: Python SQL" {
		t.Fatalf("unexpected: %q", got)
	}
}

func TestSanitizeInput_Empty(t *testing.T) {
	if got := SanitizeInput(""); got != "" {
		t.Fatalf("unexpected: %q", got)
	}
}

func TestCollapseLines(t *testing.T) {
	got := CollapseLines("a\r\n\r\n  \nb\nc")
	if len(got) != 3 || got[0] != "a" || got[2] != "c" {
		t.Fatalf("unexpected: %#v", got)
	}
}

func TestTruncate(t *testing.T) {
	if got := Truncate("hello world", 8); got != "hello..." {
		t.Fatalf("unexpected: %q", got)
	}
	if got := Truncate("hi", 8); got != "hi" {
		t.Fatalf("unexpected: %q", got)
	}
}

func TestTitleCase(t *testing.T) {
	if got := TitleCase("machine learning"); got != "Machine Learning" {
		t.Fatalf("unexpected: %q", got)
	}
	if got := TitleCase("PYTHON"); got != "Python" {
		t.Fatalf("unexpected: %q", got)
	}
	if got := TitleCase("français courant"); got != "Français Courant" {
		t.Fatalf("unexpected: %q", got)
	}
}
