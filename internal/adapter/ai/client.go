// Package ai generates interview-preparation narrative content through an
// OpenAI-compatible chat API, with a static rule-based fallback for when the
// upstream is unconfigured or unavailable.
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	backoff "github.com/cenkalti/backoff/v4"

	"github.com/fairyhunter13/cv-fit-analyzer/internal/adapter/observability"
	"github.com/fairyhunter13/cv-fit-analyzer/internal/config"
	"github.com/fairyhunter13/cv-fit-analyzer/internal/domain"
)

// Client implements domain.NarrativeGenerator against a chat-completions API.
type Client struct {
	cfg config.Config
	hc  *http.Client
}

// New constructs a Client with the configured request timeout.
func New(cfg config.Config) *Client {
	return &Client{
		cfg: cfg,
		hc:  &http.Client{Timeout: cfg.AITimeout},
	}
}

func (c *Client) backoffConfig() *backoff.ExponentialBackOff {
	expo := backoff.NewExponentialBackOff()
	expo.MaxElapsedTime = c.cfg.AIBackoffMaxElapsed
	expo.InitialInterval = c.cfg.AIBackoffInitial
	expo.MaxInterval = c.cfg.AIBackoffMax
	expo.Multiplier = c.cfg.AIBackoffMultiplier
	return expo
}

// Generate asks the model for the narrative sections as JSON and parses them.
// Any failure is returned to the caller, which substitutes the static
// fallback; this method never degrades silently.
func (c *Client) Generate(ctx context.Context, resume domain.ResumeRecord, job domain.JobRecord, b domain.ScoreBreakdown) (domain.Narrative, error) {
	if c.cfg.AIAPIKey == "" {
		return domain.Narrative{}, fmt.Errorf("%w: AI_API_KEY missing", domain.ErrUnavailable)
	}

	content, err := c.chatJSON(ctx, systemPrompt, userPrompt(resume, job, b))
	if err != nil {
		return domain.Narrative{}, err
	}

	narrative, err := parseNarrative(content)
	if err != nil {
		slog.Warn("narrative response unparseable",
			slog.String("model", c.cfg.AIModel), slog.Any("error", err))
		return domain.Narrative{}, err
	}
	return narrative, nil
}

// chatJSON posts a chat-completions request and returns the first choice's
// message content. Retries with exponential backoff; 4xx responses other than
// 429 are permanent.
func (c *Client) chatJSON(ctx context.Context, system, user string) (string, error) {
	body := map[string]any{
		"model":       c.cfg.AIModel,
		"temperature": 0.2,
		"messages": []map[string]string{
			{"role": "system", "content": system},
			{"role": "user", "content": user},
		},
	}
	payload, _ := json.Marshal(body)
	endpoint := c.cfg.AIBaseURL + "/chat/completions"

	var out struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	op := func() error {
		start := time.Now()
		// Recreate request each attempt to avoid reusing consumed bodies
		r, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
		if err != nil {
			return backoff.Permanent(err)
		}
		r.Header.Set("Authorization", "Bearer "+c.cfg.AIAPIKey)
		r.Header.Set("Content-Type", "application/json")

		resp, err := c.hc.Do(r)
		observability.AIRequestsTotal.WithLabelValues("openai", "chat").Inc()
		observability.AIRequestDuration.WithLabelValues("openai", "chat").Observe(time.Since(start).Seconds())
		if err != nil {
			return err
		}
		defer func() { _ = resp.Body.Close() }()

		bodyBytes, err := io.ReadAll(resp.Body)
		if err != nil {
			return err
		}
		switch {
		case resp.StatusCode == http.StatusTooManyRequests:
			slog.Warn("ai provider rate limited",
				slog.String("op", "chat"), slog.Int("status", resp.StatusCode))
			return fmt.Errorf("rate limited: 429")
		case resp.StatusCode >= 400 && resp.StatusCode < 500:
			slog.Warn("ai provider 4xx",
				slog.String("op", "chat"), slog.Int("status", resp.StatusCode),
				slog.String("endpoint", endpoint), slog.String("body", snippet(bodyBytes)))
			return backoff.Permanent(fmt.Errorf("chat status %d", resp.StatusCode))
		case resp.StatusCode < 200 || resp.StatusCode >= 300:
			slog.Error("ai provider non-2xx",
				slog.String("op", "chat"), slog.Int("status", resp.StatusCode),
				slog.String("endpoint", endpoint), slog.String("body", snippet(bodyBytes)))
			return fmt.Errorf("chat status %d", resp.StatusCode)
		}
		if err := json.Unmarshal(bodyBytes, &out); err != nil {
			return err
		}
		return nil
	}

	bo := backoff.WithContext(c.backoffConfig(), ctx)
	if err := backoff.Retry(op, bo); err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return "", fmt.Errorf("%w: narrative generation", domain.ErrUpstreamTimeout)
		}
		return "", fmt.Errorf("%w: %v", domain.ErrUnavailable, err)
	}
	if len(out.Choices) == 0 {
		return "", fmt.Errorf("%w: empty choices", domain.ErrUnavailable)
	}
	return out.Choices[0].Message.Content, nil
}

func snippet(b []byte) string {
	const max = 512
	if len(b) > max {
		b = b[:max]
	}
	return string(b)
}

// cleanJSON strips markdown code fences that chat models wrap around JSON.
func cleanJSON(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```json") {
		s = strings.TrimPrefix(s, "```json")
	} else if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```")
	}
	s = strings.TrimLeft(s, "\r\n")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

type narrativePayload struct {
	CompanyAnalysis    []string `json:"company_analysis"`
	InterviewQuestions []struct {
		Category string `json:"category"`
		Question string `json:"question"`
	} `json:"interview_questions"`
	StarStories []struct {
		Title     string `json:"title"`
		Situation string `json:"situation"`
		Task      string `json:"task"`
		Action    string `json:"action"`
		Result    string `json:"result"`
	} `json:"star_stories"`
	QuestionsToAsk []struct {
		Category string `json:"category"`
		Question string `json:"question"`
	} `json:"questions_to_ask"`
	SalaryInsights        []string `json:"salary_insights"`
	OverqualificationTips []string `json:"overqualification_tips"`
}

func parseNarrative(content string) (domain.Narrative, error) {
	var p narrativePayload
	if err := json.Unmarshal([]byte(cleanJSON(content)), &p); err != nil {
		return domain.Narrative{}, fmt.Errorf("decode narrative: %w", err)
	}
	if len(p.InterviewQuestions) == 0 && len(p.StarStories) == 0 {
		return domain.Narrative{}, errors.New("narrative missing interview content")
	}

	n := domain.Narrative{
		CompanyAnalysis:       p.CompanyAnalysis,
		SalaryInsights:        p.SalaryInsights,
		OverqualificationTips: p.OverqualificationTips,
	}
	for _, q := range p.InterviewQuestions {
		n.InterviewQuestions = append(n.InterviewQuestions, domain.NarrativeQuestion{Category: q.Category, Question: q.Question})
	}
	for _, s := range p.StarStories {
		n.StarStories = append(n.StarStories, domain.StarStory{
			Title: s.Title, Situation: s.Situation, Task: s.Task, Action: s.Action, Result: s.Result,
		})
	}
	for _, q := range p.QuestionsToAsk {
		n.QuestionsToAsk = append(n.QuestionsToAsk, domain.NarrativeQuestion{Category: q.Category, Question: q.Question})
	}
	return n, nil
}
