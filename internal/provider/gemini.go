package provider

import (
	"context"
	stderrors "errors"
	"fmt"
	"net/http"
	"strings"

	"google.golang.org/genai"

	"github.com/felixgeelhaar/promptplay/internal/errors"
)

// DefaultGeminiModel is used when neither the config nor GEMINI_MODEL names one.
const DefaultGeminiModel = "gemini-2.0-flash-exp"

// GeminiClient talks to the Gemini API through the official genai client.
type GeminiClient struct {
	cli       *genai.Client
	model     string
	maxTokens int
}

// NewGeminiClient creates a client from resolved settings.
func NewGeminiClient(ctx context.Context, s Settings) (*GeminiClient, error) {
	if s.APIKey == "" {
		return nil, errors.NewProviderAuthError("gemini", stderrors.New("api key is empty"))
	}

	cfg := &genai.ClientConfig{
		APIKey:  s.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if s.BaseURL != "" {
		cfg.HTTPOptions = genai.HTTPOptions{BaseURL: s.BaseURL}
	}

	cli, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, errors.NewProviderAPIError("gemini", err)
	}

	model := s.Model
	if model == "" {
		model = DefaultGeminiModel
	}
	maxTokens := s.MaxTokens
	if maxTokens <= 0 {
		maxTokens = DefaultMaxTokens
	}

	return &GeminiClient{cli: cli, model: model, maxTokens: maxTokens}, nil
}

// Name implements Named.
func (g *GeminiClient) Name() string { return "gemini" }

// Model returns the model requests are sent to.
func (g *GeminiClient) Model() string { return g.model }

// Chat implements ChatClient. The system prompt becomes the system
// instruction and assistant turns are sent with the "model" role.
func (g *GeminiClient) Chat(ctx context.Context, systemPrompt string, messages []Message) (string, error) {
	resp, err := g.cli.Models.GenerateContent(ctx, g.model, geminiContents(messages), geminiConfig(systemPrompt, g.maxTokens))
	if err != nil {
		return "", classifyGeminiError(err)
	}
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", errors.NewProviderAPIError("gemini", fmt.Errorf("model %s returned no candidates", g.model))
	}

	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if part != nil {
			b.WriteString(part.Text)
		}
	}
	return b.String(), nil
}

func geminiContents(messages []Message) []*genai.Content {
	contents := make([]*genai.Content, 0, len(messages))
	for _, m := range messages {
		role := genai.Role(genai.RoleUser)
		if m.Role == RoleAssistant {
			role = genai.RoleModel
		}
		contents = append(contents, genai.NewContentFromText(m.Content, role))
	}
	return contents
}

func geminiConfig(systemPrompt string, maxTokens int) *genai.GenerateContentConfig {
	cfg := &genai.GenerateContentConfig{
		MaxOutputTokens: int32(maxTokens),
	}
	if systemPrompt != "" {
		cfg.SystemInstruction = genai.NewContentFromText(systemPrompt, genai.RoleUser)
	}
	return cfg
}

func classifyGeminiError(err error) error {
	var apiErr genai.APIError
	if stderrors.As(err, &apiErr) {
		if apiErr.Code == http.StatusUnauthorized || apiErr.Code == http.StatusForbidden {
			return errors.NewProviderAuthError("gemini", err)
		}
	}
	return errors.NewProviderAPIError("gemini", err)
}
