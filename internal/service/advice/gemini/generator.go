package gemini

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"github.com/zhouzirui/skillsetter/backend/internal/service/advice"
)

// DefaultModel is used when no model name is configured.
const DefaultModel = "gemini-3-flash-preview"

// Generator sends advice requests to the Gemini API.
type Generator struct {
	client *genai.Client
	model  string
}

// Option customises the underlying GenAI client.
type Option func(*genai.ClientConfig)

// WithBaseURL points the client at another endpoint, e.g. a proxy.
func WithBaseURL(baseURL string) Option {
	return func(cfg *genai.ClientConfig) { cfg.HTTPOptions.BaseURL = baseURL }
}

// New creates a Gemini-backed generator.
func New(ctx context.Context, apiKey, model string, opts ...Option) (*Generator, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}
	if model == "" {
		model = DefaultModel
	}

	cfg := &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}

	return &Generator{client: client, model: model}, nil
}

// Model returns the configured model name.
func (g *Generator) Model() string {
	return g.model
}

// Generate implements advice.Generator.
func (g *Generator) Generate(ctx context.Context, req advice.Request) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.model, toContents(req.Turns), toConfig(req))
	if err != nil {
		return "", fmt.Errorf("gemini generate content: %w", err)
	}
	if resp == nil {
		return "", nil
	}
	return resp.Text(), nil
}

func toContents(turns []advice.Turn) []*genai.Content {
	contents := make([]*genai.Content, 0, len(turns))
	for _, turn := range turns {
		var role genai.Role = genai.RoleUser
		if turn.Role == advice.RoleModel {
			role = genai.RoleModel
		}
		contents = append(contents, genai.NewContentFromText(turn.Text, role))
	}
	return contents
}

func toConfig(req advice.Request) *genai.GenerateContentConfig {
	cfg := &genai.GenerateContentConfig{
		ResponseMIMEType: req.ResponseMIMEType,
	}
	if req.SystemInstruction != "" {
		cfg.SystemInstruction = genai.NewContentFromText(req.SystemInstruction, genai.RoleUser)
	}
	if req.Temperature != nil {
		cfg.Temperature = genai.Ptr(*req.Temperature)
	}
	return cfg
}
