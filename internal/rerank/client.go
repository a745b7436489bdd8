// internal/rerank/client.go
package rerank

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"freelance-match/internal/common/logger"
	"freelance-match/internal/models"

	"github.com/xeipuuv/gojsonschema"
)

var (
	// ErrUnavailable means no external capability is configured. Callers
	// degrade to lexical-only scoring.
	ErrUnavailable = errors.New("RERANK_UNAVAILABLE")
	// ErrFailed means the external call ran but returned unusable data.
	// Callers degrade the same way; the two are kept apart for logging.
	ErrFailed = errors.New("RERANK_FAILED")
)

type Config struct {
	BaseURL     string
	APIKey      string
	Model       string
	Temperature float64
	Timeout     time.Duration
}

// Client sends one batched re-ranking request per ranking run to an
// OpenAI-compatible chat-completions endpoint and demands a strict JSON
// reply. It never retries: a ranking run makes at most one external
// round-trip.
type Client struct {
	config Config
	client *http.Client
	logger logger.Logger
}

func NewClient(config Config, log logger.Logger) *Client {
	return &Client{
		config: config,
		// No client-level timeout; the per-call context is the only bound.
		client: &http.Client{},
		logger: log.WithFields(map[string]interface{}{"component": "rerank"}),
	}
}

// Available reports whether an API credential is configured.
func (c *Client) Available() bool {
	return strings.TrimSpace(c.config.APIKey) != ""
}

// Rerank judges all candidates in a single request. The returned map may
// cover only a subset of the input; a missing entry means "no external
// opinion", not a zero score.
func (c *Client) Rerank(ctx context.Context, description string, candidates []models.Candidate) (map[string]Judgment, error) {
	if !c.Available() {
		return nil, ErrUnavailable
	}
	if len(candidates) == 0 {
		return map[string]Judgment{}, nil
	}

	if c.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.config.Timeout)
		defer cancel()
	}

	reqBody := chatRequest{
		Model: c.config.Model,
		Messages: []chatMessage{
			{Role: "system", Content: "You are a helpful recruiter AI that outputs strict JSON only."},
			{Role: "user", Content: c.buildPrompt(description, candidates)},
		},
		Temperature: c.config.Temperature,
	}

	body, _ := json.Marshal(reqBody)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.BaseURL+"/v1/chat/completions", bytes.NewBuffer(body))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailed, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.config.APIKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("%w: status %d: %s", ErrFailed, resp.StatusCode, snippet)
	}

	var chatResp chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chatResp); err != nil {
		return nil, fmt.Errorf("%w: decode error: %v", ErrFailed, err)
	}
	if len(chatResp.Choices) == 0 {
		return nil, fmt.Errorf("%w: empty completion", ErrFailed)
	}

	judgments, err := parseJudgments(chatResp.Choices[0].Message.Content)
	if err != nil {
		return nil, err
	}

	c.logger.Info("rerank completed", map[string]interface{}{
		"candidates": len(candidates),
		"judged":     len(judgments),
	})

	return judgments, nil
}

// parseJudgments validates the message content against the judgment schema
// and folds it into a per-freelancer map.
func parseJudgments(content string) (map[string]Judgment, error) {
	content = trimCodeFence(content)

	var raw interface{}
	if err := json.Unmarshal([]byte(content), &raw); err != nil {
		return nil, fmt.Errorf("%w: reply is not JSON: %v", ErrFailed, err)
	}

	result, err := gojsonschema.Validate(
		gojsonschema.NewGoLoader(judgmentSchema),
		gojsonschema.NewGoLoader(raw),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: schema validation error: %v", ErrFailed, err)
	}
	if !result.Valid() {
		msgs := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			msgs = append(msgs, e.String())
		}
		return nil, fmt.Errorf("%w: reply shape invalid: %s", ErrFailed, strings.Join(msgs, "; "))
	}

	var items []candidateJudgment
	if err := json.Unmarshal([]byte(content), &items); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailed, err)
	}

	judgments := make(map[string]Judgment, len(items))
	for _, item := range items {
		judgments[item.ID] = Judgment{Score: item.Score, Rationale: item.Rationale}
	}
	return judgments, nil
}

func (c *Client) buildPrompt(description string, candidates []models.Candidate) string {
	var parts []string

	parts = append(parts, "Given the project description and a list of freelancers with skills, rate each freelancer from 0-1 and provide a one sentence rationale. Return JSON array [{id, score, rationale}]. Be concise.")
	parts = append(parts, fmt.Sprintf("\nDescription: %s", description))
	parts = append(parts, "\nFreelancers:")
	for _, cand := range candidates {
		f := cand.Freelancer
		rating := "n/a"
		if f.Rating != nil {
			rating = fmt.Sprintf("%.1f", *f.Rating)
		}
		parts = append(parts, fmt.Sprintf("- id:%s, name:%s, skills:%s, rating:%s", f.ID, f.Name, f.Skills, rating))
	}

	return strings.Join(parts, "\n")
}

// trimCodeFence strips a markdown ```json fence some models wrap around the
// reply even when asked for raw JSON.
func trimCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
