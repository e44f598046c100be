package local

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fairyhunter13/cv-fit-analyzer/internal/domain"
)

func TestExtract_PlainText(t *testing.T) {
	t.Parallel()
	e := New()

	text, err := e.Extract(context.Background(), "resume.txt", []byte("Jane Doe\nData Analyst\n\x00"))
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe\nData Analyst", text)
}

func TestExtract_MarkdownTreatedAsText(t *testing.T) {
	t.Parallel()
	e := New()

	text, err := e.Extract(context.Background(), "resume.md", []byte("# Jane Doe\nEngineer"))
	require.NoError(t, err)
	assert.Contains(t, text, "Jane Doe")
}

func TestExtract_EmptyFile(t *testing.T) {
	t.Parallel()
	e := New()

	_, err := e.Extract(context.Background(), "resume.txt", nil)
	require.ErrorIs(t, err, domain.ErrInvalidArgument)
}

func TestExtract_UnsupportedMedia(t *testing.T) {
	t.Parallel()
	e := New()

	// PNG magic bytes.
	_, err := e.Extract(context.Background(), "photo.png", []byte("\x89PNG\r\n\x1a\n...."))
	require.ErrorIs(t, err, domain.ErrUnsupportedMedia)
}

func TestExtract_CorruptPDF(t *testing.T) {
	t.Parallel()
	e := New()

	_, err := e.Extract(context.Background(), "resume.pdf", []byte("%PDF-1.4 truncated"))
	require.ErrorIs(t, err, domain.ErrInvalidArgument)
}

func TestExtract_CorruptDocx(t *testing.T) {
	t.Parallel()
	e := New()

	_, err := e.Extract(context.Background(), "resume.docx", []byte("not a zip archive"))
	require.ErrorIs(t, err, domain.ErrInvalidArgument)
}

func TestExtract_CancelledContext(t *testing.T) {
	t.Parallel()
	e := New()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := e.Extract(ctx, "resume.txt", []byte("hello"))
	require.ErrorIs(t, err, context.Canceled)
}

func TestKind(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		filename string
		data     []byte
		want     string
	}{
		{"pdf by magic", "anything.bin", []byte("%PDF-1.7\n"), "pdf"},
		{"pdf by extension", "resume.pdf", []byte("no magic here"), "pdf"},
		{"docx by extension", "resume.docx", []byte("PK\x03\x04rest-of-zip"), "docx"},
		{"plain text", "resume.txt", []byte("hello world"), "text"},
		{"unknown binary", "blob.bin", []byte{0x00, 0x01, 0x02, 0xff}, ""},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, kind(tc.filename, tc.data))
		})
	}
}
