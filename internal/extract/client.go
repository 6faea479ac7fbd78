// Package extract calls the external language-model extraction service and
// normalizes its response into the same candidate shape the local parser
// produces. It speaks the OpenAI-compatible chat completions wire format
// over plain HTTP.
package extract

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

	"github.com/giubellucas/calendario-inteligente/internal/model"
)

const (
	defaultBaseURL = "https://api.openai.com/v1"
	defaultModel   = "gpt-4o"
	defaultTimeout = 30 * time.Second

	temperature = 0.4
)

// Config configures the extraction client.
type Config struct {
	APIKey  string
	BaseURL string        // default https://api.openai.com/v1
	Model   string        // default gpt-4o
	Timeout time.Duration // default 30s
}

// Client is the remote extraction adapter.
type Client struct {
	apiKey     string
	baseURL    string
	model      string
	httpClient *http.Client
	logger     *slog.Logger
}

// New creates an extraction client. A missing API key is not an error here;
// Extract reports it as a service_unavailable failure so the caller can
// fall back to the local parser.
func New(cfg Config, logger *slog.Logger) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = defaultModel
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		apiKey:     cfg.APIKey,
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		model:      cfg.Model,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		logger:     logger,
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model          string        `json:"model"`
	Messages       []chatMessage `json:"messages"`
	Temperature    float64       `json:"temperature"`
	ResponseFormat struct {
		Type string `json:"type"`
	} `json:"response_format"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// wireCandidate is the JSON object the model is instructed to emit.
type wireCandidate struct {
	Title        string   `json:"title"`
	Date         *string  `json:"date"`
	Description  string   `json:"description"`
	Category     string   `json:"category"`
	Priority     string   `json:"priority"`
	Location     string   `json:"location"`
	Participants []string `json:"participants"`
	Entities     []string `json:"entities"`
	Intent       string   `json:"intent"`
	Sentiment    string   `json:"sentiment"`
	Keywords     []string `json:"keywords"`
}

// Extract sends the raw utterance plus the current instant to the model
// service and returns the normalized candidate. Every failure carries a
// distinct Kind; none is silently coerced into a default candidate.
func (c *Client) Extract(ctx context.Context, message string, now time.Time) (*model.Candidate, error) {
	if c.apiKey == "" {
		return nil, &Error{Kind: KindUnavailable, Msg: "extraction backend not configured (missing API key)"}
	}

	reqBody := chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: buildSystemPrompt(now)},
			{Role: "user", Content: message},
		},
		Temperature: temperature,
	}
	reqBody.ResponseFormat.Type = "json_object"

	body, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(ctx.Err(), context.Canceled) {
			return nil, &Error{Kind: KindCanceled, Msg: "extraction canceled", Err: err}
		}
		return nil, &Error{Kind: KindUnavailable, Msg: "extraction request failed", Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, &Error{Kind: KindUnavailable, Msg: "read response", Err: err}
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, &Error{Kind: KindAuth, Msg: fmt.Sprintf("credential rejected (status %d)", resp.StatusCode)}
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, &Error{Kind: KindRateLimited, Msg: "rate limited"}
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return nil, &Error{Kind: KindUnavailable, Msg: fmt.Sprintf("unexpected status %d", resp.StatusCode)}
	}

	var chat chatResponse
	if err := json.Unmarshal(respBody, &chat); err != nil {
		return nil, &Error{Kind: KindMalformed, Msg: "unparsable response body", Err: err}
	}
	if len(chat.Choices) == 0 || chat.Choices[0].Message.Content == "" {
		return nil, &Error{Kind: KindMalformed, Msg: "response has no content"}
	}

	var wire wireCandidate
	if err := json.Unmarshal([]byte(chat.Choices[0].Message.Content), &wire); err != nil {
		c.logger.Warn("unparsable extraction payload", "err", err)
		return nil, &Error{Kind: KindMalformed, Msg: "unparsable extraction payload", Err: err}
	}
	if wire.Title == "" {
		return nil, &Error{Kind: KindMissingTitle, Msg: "extraction response lacks title"}
	}

	return normalize(wire), nil
}

// normalize converts the wire object into a model candidate. An unparsable
// date is coerced to absent, not an error.
func normalize(w wireCandidate) *model.Candidate {
	cand := &model.Candidate{
		Title:        w.Title,
		Description:  w.Description,
		Category:     model.Category(strings.ToLower(w.Category)),
		Priority:     model.Priority(strings.ToLower(w.Priority)),
		Location:     w.Location,
		Participants: w.Participants,
		Entities:     w.Entities,
		Keywords:     w.Keywords,
		Intent:       normalizeIntent(w.Intent),
		Sentiment:    normalizeSentiment(w.Sentiment),
	}
	if !cand.Priority.IsValid() {
		cand.Priority = ""
	}
	if w.Date != nil {
		if at, ok := parseDate(*w.Date); ok {
			cand.Date = &at
		}
	}
	return cand
}

// dateLayouts are the timestamp shapes models actually emit.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func parseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if at, err := time.Parse(layout, s); err == nil {
			return at, true
		}
	}
	return time.Time{}, false
}

// normalizeIntent maps the service's intent label onto the fixed
// vocabulary, tolerating the Portuguese labels older prompts produced.
func normalizeIntent(s string) model.Intent {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "create_event", "criar_evento":
		return model.IntentCreateEvent
	case "reminder", "lembrete":
		return model.IntentReminder
	case "task", "tarefa":
		return model.IntentTask
	case "ask_question", "fazer_pergunta":
		return model.IntentAskQuestion
	case "command", "comando":
		return model.IntentCommand
	case "chat", "conversa":
		return model.IntentChat
	}
	return ""
}

func normalizeSentiment(s string) model.Sentiment {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "positive", "positivo":
		return model.SentimentPositive
	case "negative", "negativo":
		return model.SentimentNegative
	case "neutral", "neutro":
		return model.SentimentNeutral
	}
	return ""
}
