package provider

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"

	"github.com/felixgeelhaar/promptplay/internal/errors"
)

func TestGeminiContents(t *testing.T) {
	contents := geminiContents([]Message{
		UserMessage("hello"),
		AssistantMessage("hi"),
	})

	require.Len(t, contents, 2)
	assert.Equal(t, genai.RoleUser, contents[0].Role)
	assert.Equal(t, genai.RoleModel, contents[1].Role)
	assert.Equal(t, "hi", contents[1].Parts[0].Text)
}

func TestGeminiConfig(t *testing.T) {
	cfg := geminiConfig("system rules", 1024)
	assert.Equal(t, int32(1024), cfg.MaxOutputTokens)
	require.NotNil(t, cfg.SystemInstruction)
	assert.Equal(t, "system rules", cfg.SystemInstruction.Parts[0].Text)

	assert.Nil(t, geminiConfig("", 10).SystemInstruction)
}

func TestClassifyGeminiError(t *testing.T) {
	auth := classifyGeminiError(genai.APIError{Code: http.StatusForbidden, Message: "denied"})
	assert.True(t, errors.HasCode(auth, errors.ErrCodeProviderAuth))

	other := classifyGeminiError(genai.APIError{Code: http.StatusTooManyRequests, Message: "slow down"})
	assert.True(t, errors.HasCode(other, errors.ErrCodeProviderAPI))
}

func TestGeminiClientChat(t *testing.T) {
	var body map[string]any
	srv := newTestServer(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasSuffix(r.URL.Path, "models/gemini-test:generateContent"), r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"role":"model","parts":[{"text":"{\"a\":"},{"text":"1}"}]}}]}`))
	}))

	client, err := NewGeminiClient(context.Background(), Settings{
		APIKey:  "g-test",
		BaseURL: srv.URL,
		Model:   "gemini-test",
	})
	require.NoError(t, err)
	assert.Equal(t, "gemini", NameOf(client))

	reply, err := client.Chat(context.Background(), "sys", []Message{UserMessage("go")})
	require.NoError(t, err)
	assert.Equal(t, `{"a":1}`, reply)
	assert.Contains(t, body, "systemInstruction")
}

func TestNewGeminiClientRequiresKey(t *testing.T) {
	_, err := NewGeminiClient(context.Background(), Settings{})
	assert.True(t, errors.HasCode(err, errors.ErrCodeProviderAuth))
}
