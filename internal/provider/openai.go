package provider

import (
	"context"
	stderrors "errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/felixgeelhaar/promptplay/internal/errors"
)

// DefaultOpenAIModel is used when neither the config nor OPENAI_MODEL names one.
const DefaultOpenAIModel = "gpt-4o"

// OpenAIClient talks to the OpenAI chat completions API or any server
// compatible with it.
type OpenAIClient struct {
	client    *openai.Client
	model     string
	maxTokens int
}

// NewOpenAIClient creates a client from resolved settings.
func NewOpenAIClient(s Settings) (*OpenAIClient, error) {
	if s.APIKey == "" {
		return nil, errors.NewProviderAuthError("openai", stderrors.New("api key is empty"))
	}

	cfg := openai.DefaultConfig(s.APIKey)
	if s.BaseURL != "" {
		cfg.BaseURL = strings.TrimRight(s.BaseURL, "/")
	}
	cfg.HTTPClient = &http.Client{Timeout: 120 * time.Second}

	model := s.Model
	if model == "" {
		model = DefaultOpenAIModel
	}
	maxTokens := s.MaxTokens
	if maxTokens <= 0 {
		maxTokens = DefaultMaxTokens
	}

	return &OpenAIClient{
		client:    openai.NewClientWithConfig(cfg),
		model:     model,
		maxTokens: maxTokens,
	}, nil
}

// Name implements Named.
func (c *OpenAIClient) Name() string { return "openai" }

// Model returns the model requests are sent to.
func (c *OpenAIClient) Model() string { return c.model }

// Chat implements ChatClient. The system prompt is sent as the first message.
func (c *OpenAIClient) Chat(ctx context.Context, systemPrompt string, messages []Message) (string, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:     c.model,
		Messages:  openAIMessages(systemPrompt, messages),
		MaxTokens: c.maxTokens,
	})
	if err != nil {
		return "", classifyOpenAIError(err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.NewProviderAPIError("openai", fmt.Errorf("model %s returned no choices", c.model))
	}
	return resp.Choices[0].Message.Content, nil
}

func openAIMessages(systemPrompt string, messages []Message) []openai.ChatCompletionMessage {
	out := make([]openai.ChatCompletionMessage, 0, len(messages)+1)
	out = append(out, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleSystem, Content: systemPrompt})
	for _, m := range messages {
		out = append(out, openai.ChatCompletionMessage{Role: string(m.Role), Content: m.Content})
	}
	return out
}

func classifyOpenAIError(err error) error {
	var apiErr *openai.APIError
	if stderrors.As(err, &apiErr) {
		if apiErr.HTTPStatusCode == http.StatusUnauthorized || apiErr.HTTPStatusCode == http.StatusForbidden {
			return errors.NewProviderAuthError("openai", err)
		}
	}
	return errors.NewProviderAPIError("openai", err)
}
