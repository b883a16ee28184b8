package summarizer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/spec-kit/mood-journal/internal/config"
)

const defaultModel = "gemini-2.0-flash"

var outputSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"trendSummary": {
			Type:        genai.TypeString,
			Description: "A summary of the overall trends in the user's mood based on the mood logs and notes.",
		},
	},
	Required: []string{"trendSummary"},
}

// contentGenerator is the slice of *genai.Models the summarizer needs.
type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// Gemini summarizes moods with Google's Gemini API.
type Gemini struct {
	models contentGenerator
	model  string
}

// New returns the configured remote summarizer. Without an API key it
// returns ErrNotConfigured and callers run with analysis disabled.
func New(ctx context.Context, cfg config.SummarizerConfig) (Summarizer, error) {
	if cfg.APIKey == "" {
		return nil, ErrNotConfigured
	}
	g, err := NewGemini(ctx, cfg.APIKey, cfg.Model)
	if err != nil {
		return nil, err
	}
	return g, nil
}

// NewGemini creates a Gemini-backed summarizer.
func NewGemini(ctx context.Context, apiKey, model string) (*Gemini, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("%w: API key is required", ErrNotConfigured)
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}
	return newGemini(client.Models, model), nil
}

func newGemini(models contentGenerator, model string) *Gemini {
	if model == "" {
		model = defaultModel
	}
	return &Gemini{models: models, model: model}
}

// Summarize renders the prompt, requests a JSON response matching Output and
// validates it.
func (g *Gemini) Summarize(ctx context.Context, in Input) (Output, error) {
	if err := in.Validate(); err != nil {
		return Output{}, fmt.Errorf("invalid input: %w", err)
	}
	prompt, err := RenderPrompt(in)
	if err != nil {
		return Output{}, fmt.Errorf("render prompt: %w", err)
	}

	resp, err := g.models.GenerateContent(ctx, g.model, genai.Text(prompt), &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   outputSchema,
	})
	if err != nil {
		return Output{}, fmt.Errorf("GenAI generate failed: %w", err)
	}

	text := responseText(resp)
	if text == "" {
		return Output{}, errors.New("empty response from model")
	}

	var out Output
	if err := json.Unmarshal([]byte(text), &out); err != nil {
		return Output{}, fmt.Errorf("decode model output: %w", err)
	}
	if err := out.Validate(); err != nil {
		return Output{}, fmt.Errorf("invalid output: %w", err)
	}
	return out, nil
}

// Name returns the summarizer name.
func (g *Gemini) Name() string {
	return fmt.Sprintf("genai:%s", g.model)
}

func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 {
		return ""
	}
	content := resp.Candidates[0].Content
	if content == nil {
		return ""
	}
	var b strings.Builder
	for _, part := range content.Parts {
		if part == nil || part.Thought {
			continue
		}
		b.WriteString(part.Text)
	}
	return strings.TrimSpace(b.String())
}
