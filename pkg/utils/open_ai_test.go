package utils

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	openai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"devtutor/internal/chatbot"
)

func newTestOpenAIClient(baseURL string) *OpenAIClient {
	cfg := openai.DefaultConfig("test-key")
	cfg.BaseURL = baseURL + "/v1"
	return &OpenAIClient{
		client:         openai.NewClientWithConfig(cfg),
		model:          openai.GPT4oMini,
		embeddingModel: openai.SmallEmbedding3,
	}
}

func TestOpenAIInvoke_NoChoicesIsUnexpectedBehavior(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"x","object":"chat.completion","choices":[]}`))
	}))
	defer server.Close()

	client := newTestOpenAIClient(server.URL)
	_, err := client.Invoke(context.Background(), []chatbot.Message{{Role: chatbot.RoleUser, Content: "hi"}})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnexpectedBehaviorOfAI)
}

func TestOpenAIGetEmbedding_NoDataIsUnexpectedBehavior(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"object":"list","data":[]}`))
	}))
	defer server.Close()

	client := newTestOpenAIClient(server.URL)
	_, err := client.GetEmbedding(context.Background(), "some text")

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnexpectedBehaviorOfAI)
}
