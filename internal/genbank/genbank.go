// Package genbank drafts question-bank documents with an
// OpenAI-compatible model. It is an authoring tool: output is
// validated against the same schema the catalog enforces and written
// to a file for human review, never loaded directly into a session.
package genbank

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/rahulj/mockmate/internal/bank"
)

// Config selects the API endpoint and model.
type Config struct {
	BaseURL string // empty means the default OpenAI endpoint
	APIKey  string
	Model   string
}

// Client wraps an OpenAI-compatible API client.
type Client struct {
	api    *openai.Client
	model  string
	logger *slog.Logger
}

// New creates a bank-authoring client.
func New(cfg Config, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	apiCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		apiCfg.BaseURL = cfg.BaseURL
	}
	return &Client{
		api:    openai.NewClientWithConfig(apiCfg),
		model:  cfg.Model,
		logger: logger,
	}
}

// Generate drafts a bank document for the domain with count questions,
// numbered from startID. The returned bytes are schema-valid,
// pretty-printed JSON ready to write to a bank file.
func (c *Client) Generate(ctx context.Context, domain string, count, startID int) ([]byte, error) {
	if count <= 0 {
		return nil, fmt.Errorf("count must be positive, got %d", count)
	}

	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: buildSystemPrompt(domain, count)},
			{Role: openai.ChatMessageRoleUser, Content: fmt.Sprintf("Generate the %d-question bank for %q now.", count, domain)},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Temperature: 0.7,
	})
	if err != nil {
		return nil, fmt.Errorf("bank generation API call: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("model returned no choices")
	}

	raw := resp.Choices[0].Message.Content
	c.logger.Debug("bank draft received", "domain", domain, "bytes", len(raw))

	doc, err := normalize([]byte(raw), domain, startID)
	if err != nil {
		return nil, fmt.Errorf("model output rejected: %w", err)
	}
	return doc, nil
}

// buildSystemPrompt describes the exact document shape the catalog
// accepts, including the roughly one-third subjective mix the session
// generator expects to find in every bank.
func buildSystemPrompt(domain string, count int) string {
	subjective := count / 3
	if subjective < 1 {
		subjective = 1
	}
	var b strings.Builder
	fmt.Fprintf(&b, `You are an interview question author. Produce a JSON object with exactly two keys:
"domain" (the string %q) and "questions" (an array of %d questions).

Each question object has:
- "text": the question, one or two sentences
- "topic": a short topic label such as "Networking" or "HR"
- "difficulty": one of "easy", "medium", "hard"
- for multiple-choice questions: "options" (2 to 6 strings) and "correct_index"
  (0-based index of the right option)
- for open-ended questions: omit "options" and "correct_index" entirely

Make about %d of the questions open-ended (behavioral or explain-style) and the
rest multiple-choice. Cover a spread of topics and difficulties appropriate for
a %s interview. Output only the JSON object, no surrounding text.`,
		domain, count, subjective, domain)
	return b.String()
}

// document mirrors the bank file shape for normalization.
type document struct {
	Domain    string          `json:"domain"`
	Questions []bank.Question `json:"questions"`
}

// normalize parses a model draft, fills the domain, renumbers IDs
// sequentially from startID, and validates the result against the
// bank schema. Models are unreliable about IDs, so theirs are always
// discarded.
func normalize(raw []byte, domain string, startID int) ([]byte, error) {
	var doc document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parse draft: %w", err)
	}
	if doc.Domain == "" {
		doc.Domain = domain
	}
	if len(doc.Questions) == 0 {
		return nil, fmt.Errorf("draft has no questions")
	}
	if startID < 1 {
		startID = 1
	}
	for i := range doc.Questions {
		doc.Questions[i].ID = startID + i
	}

	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}
	if err := bank.ValidateDocument(out); err != nil {
		return nil, err
	}
	for _, q := range doc.Questions {
		if err := q.Validate(); err != nil {
			return nil, err
		}
	}
	return append(out, '\n'), nil
}
