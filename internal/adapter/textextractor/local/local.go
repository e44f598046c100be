// Package local extracts plain text from uploaded resume and job posting
// files in-process. PDF, DOCX, and plain text are supported; anything else
// is rejected as unsupported media.
package local

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"

	"github.com/fairyhunter13/cv-fit-analyzer/internal/domain"
	"github.com/fairyhunter13/cv-fit-analyzer/pkg/textx"
)

// Extractor implements domain.TextExtractor without an external service.
type Extractor struct{}

// New constructs an Extractor.
func New() *Extractor { return &Extractor{} }

// Extract sniffs the payload type and returns sanitized plain text.
func (e *Extractor) Extract(ctx context.Context, filename string, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if len(data) == 0 {
		return "", fmt.Errorf("%w: empty file", domain.ErrInvalidArgument)
	}

	var (
		text string
		err  error
	)
	switch kind(filename, data) {
	case "pdf":
		text, err = extractPDF(data)
	case "docx":
		text, err = extractDocx(data)
	case "text":
		text = string(data)
	default:
		return "", fmt.Errorf("%w: %s", domain.ErrUnsupportedMedia, filepath.Ext(filename))
	}
	if err != nil {
		return "", err
	}
	return textx.SanitizeText(text), nil
}

// kind classifies the payload by content sniffing, falling back to the file
// extension for formats the sniffer reports generically (docx is a zip).
func kind(filename string, data []byte) string {
	mime := mimetype.Detect(data)
	ext := strings.ToLower(filepath.Ext(filename))
	switch {
	case mime.Is("application/pdf") || ext == ".pdf":
		return "pdf"
	case mime.Is("application/vnd.openxmlformats-officedocument.wordprocessingml.document") ||
		(mime.Is("application/zip") && ext == ".docx") || ext == ".docx":
		return "docx"
	case strings.HasPrefix(mime.String(), "text/") || ext == ".txt" || ext == ".md":
		return "text"
	}
	return ""
}

func extractPDF(data []byte) (string, error) {
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("%w: read pdf: %v", domain.ErrInvalidArgument, err)
	}
	var sb strings.Builder
	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			// A single unreadable page should not sink the document.
			continue
		}
		sb.WriteString(text)
		sb.WriteString("\n")
	}
	if sb.Len() == 0 {
		return "", fmt.Errorf("%w: no extractable text in pdf", domain.ErrInvalidArgument)
	}
	return sb.String(), nil
}

func extractDocx(data []byte) (string, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("%w: read docx: %v", domain.ErrInvalidArgument, err)
	}
	defer func() { _ = doc.Close() }()

	content := doc.Editable().GetContent()
	// The raw document body is WordprocessingML; strip the markup and keep
	// paragraph boundaries as newlines.
	content = strings.ReplaceAll(content, "</w:p>", "\n")
	content = stripTags(content)
	if strings.TrimSpace(content) == "" {
		return "", fmt.Errorf("%w: no extractable text in docx", domain.ErrInvalidArgument)
	}
	return content, nil
}

func stripTags(s string) string {
	var sb strings.Builder
	inTag := false
	for _, r := range s {
		switch {
		case r == '<':
			inTag = true
		case r == '>':
			inTag = false
		case !inTag:
			sb.WriteRune(r)
		}
	}
	return sb.String()
}
