package httpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"sync"

	"github.com/gabriel-vasile/mimetype"
	"github.com/go-playground/validator/v10"

	"github.com/fairyhunter13/cv-fit-analyzer/internal/config"
	"github.com/fairyhunter13/cv-fit-analyzer/internal/domain"
)

// Analyzer is the usecase surface the handlers need.
type Analyzer interface {
	Analyze(ctx context.Context, resumeText, jobText string, includeNarrative bool) (domain.Report, error)
	AnalyzeFiles(ctx context.Context, resumeName string, resumeData []byte, jobName string, jobData []byte, includeNarrative bool) (domain.Report, error)
}

// Server aggregates handler dependencies.
type Server struct {
	Cfg      config.Config
	Analyzer Analyzer
	Render   func(domain.Report) string
}

// NewServer constructs an HTTP server with all handlers wired. render turns a
// report into its markdown form for clients that ask for it.
func NewServer(cfg config.Config, analyzer Analyzer, render func(domain.Report) string) *Server {
	return &Server{Cfg: cfg, Analyzer: analyzer, Render: render}
}

var (
	vldOnce sync.Once
	vld     *validator.Validate
)

func getValidator() *validator.Validate {
	vldOnce.Do(func() { vld = validator.New() })
	return vld
}

// wantsMarkdown reports whether the client asked for the markdown rendering,
// either via ?format=markdown or an Accept header.
func wantsMarkdown(r *http.Request) bool {
	if strings.EqualFold(r.URL.Query().Get("format"), "markdown") {
		return true
	}
	return strings.Contains(r.Header.Get("Accept"), "text/markdown")
}

func (s *Server) writeReport(w http.ResponseWriter, r *http.Request, rep domain.Report) {
	if wantsMarkdown(r) && s.Render != nil {
		w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = io.WriteString(w, s.Render(rep))
		return
	}
	writeJSON(w, http.StatusOK, toReportResponse(rep))
}

// AnalyzeHandler runs an analysis over raw resume and job-posting text.
func (s *Server) AnalyzeHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1MB
		// The max tags mirror textx.MaxInputBytes so oversized documents are
		// rejected up front instead of silently truncated downstream.
		var req struct {
			ResumeText       string `json:"resume_text" validate:"required,max=50000"`
			JobText          string `json:"job_text" validate:"required,max=50000"`
			IncludeNarrative bool   `json:"include_narrative"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, r, fmt.Errorf("%w: invalid json", domain.ErrInvalidArgument), nil)
			return
		}
		if err := getValidator().Struct(req); err != nil {
			verrs := map[string]string{}
			if ve, ok := err.(validator.ValidationErrors); ok {
				for _, fe := range ve {
					verrs[strings.ToLower(fe.Field())] = fe.Tag()
				}
			}
			writeError(w, r, fmt.Errorf("%w: validation failed", domain.ErrInvalidArgument), verrs)
			return
		}
		rep, err := s.Analyzer.Analyze(r.Context(), req.ResumeText, req.JobText, req.IncludeNarrative)
		if err != nil {
			writeError(w, r, err, nil)
			return
		}
		s.writeReport(w, r, rep)
	}
}

// allowedExt enforces an allowlist for uploads: .txt, .md, .pdf, .docx.
func allowedExt(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".txt", ".md", ".pdf", ".docx":
		return true
	}
	return false
}

func allowedMIMEFor(m string, filename string) bool {
	m = strings.ToLower(m)
	// Some detectors misclassify rich plain text; trust text/* for .txt and .md.
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".txt", ".md":
		if strings.HasPrefix(m, "text/") {
			return true
		}
	}
	if strings.HasPrefix(m, "text/plain") { // allow parameters such as charset
		return true
	}
	return m == "application/pdf" || m == "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
}

// checkUploadedFile enforces the extension and content-sniffing allowlists.
func checkUploadedFile(field, filename string, data []byte) error {
	if !allowedExt(filename) {
		return fmt.Errorf("%w: %s extension not allowed: %s", domain.ErrUnsupportedMedia, field, filepath.Ext(filename))
	}
	if m := mimetype.Detect(data); !allowedMIMEFor(m.String(), filename) {
		return fmt.Errorf("%w: %s content type not allowed: %s", domain.ErrUnsupportedMedia, field, m.String())
	}
	return nil
}

// UploadHandler runs an analysis over uploaded resume and job-posting files.
func (s *Server) UploadHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !strings.Contains(r.Header.Get("Content-Type"), "multipart/form-data") {
			writeError(w, r, fmt.Errorf("%w: content-type must be multipart/form-data", domain.ErrInvalidArgument), nil)
			return
		}
		maxBytes := s.Cfg.MaxUploadMB * 1024 * 1024
		r.Body = http.MaxBytesReader(w, r.Body, maxBytes*2)
		if err := r.ParseMultipartForm(maxBytes * 2); err != nil {
			if strings.Contains(strings.ToLower(err.Error()), "too large") {
				writeJSON(w, http.StatusRequestEntityTooLarge, errorEnvelope{Error: apiError{
					Code:    "PAYLOAD_TOO_LARGE",
					Message: "payload too large",
					Details: map[string]any{"max_mb": s.Cfg.MaxUploadMB},
				}})
				return
			}
			writeError(w, r, fmt.Errorf("%w: %v", domain.ErrInvalidArgument, err), nil)
			return
		}
		resumeBytes, resumeName, err := readFormFile(r, "resume")
		if err != nil {
			writeError(w, r, err, map[string]string{"field": "resume"})
			return
		}
		jobBytes, jobName, err := readFormFile(r, "job")
		if err != nil {
			writeError(w, r, err, map[string]string{"field": "job"})
			return
		}
		if err := checkUploadedFile("resume", resumeName, resumeBytes); err != nil {
			writeError(w, r, err, map[string]string{"filename": resumeName})
			return
		}
		if err := checkUploadedFile("job", jobName, jobBytes); err != nil {
			writeError(w, r, err, map[string]string{"filename": jobName})
			return
		}
		includeNarrative := strings.EqualFold(r.FormValue("include_narrative"), "true")
		rep, err := s.Analyzer.AnalyzeFiles(r.Context(), resumeName, resumeBytes, jobName, jobBytes, includeNarrative)
		if err != nil {
			writeError(w, r, err, nil)
			return
		}
		s.writeReport(w, r, rep)
	}
}

func readFormFile(r *http.Request, field string) ([]byte, string, error) {
	f, h, err := r.FormFile(field)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %s file required", domain.ErrInvalidArgument, field)
	}
	defer func() { _ = f.Close() }()
	data, err := io.ReadAll(f)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %s read: %v", domain.ErrInvalidArgument, field, err)
	}
	return data, h.Filename, nil
}

// HealthzHandler reports liveness.
func (s *Server) HealthzHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
