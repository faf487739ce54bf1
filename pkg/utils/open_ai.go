package utils

import (
	"context"
	"fmt"
	"time"

	"github.com/pgvector/pgvector-go"
	openai "github.com/sashabaranov/go-openai"

	"devtutor/internal/chatbot"
)

// EmbeddingClientInterface turns text into vectors for the document store.
type EmbeddingClientInterface interface {
	GetEmbedding(ctx context.Context, text string) (pgvector.Vector, error)
}

const llmCallTimeout = 60 * time.Second

// OpenAIClient implements both chat invocation and embeddings on the OpenAI
// API. Safe for concurrent use.
type OpenAIClient struct {
	client         *openai.Client
	model          string
	embeddingModel openai.EmbeddingModel
}

func NewOpenAIClient(apiKey, model string) *OpenAIClient {
	if model == "" {
		model = openai.GPT4oMini
	}
	return &OpenAIClient{
		client:         openai.NewClient(apiKey),
		model:          model,
		embeddingModel: openai.SmallEmbedding3,
	}
}

func (c *OpenAIClient) Invoke(ctx context.Context, messages []chatbot.Message) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, llmCallTimeout)
	defer cancel()

	chatMessages := make([]openai.ChatCompletionMessage, 0, len(messages))
	for _, msg := range messages {
		chatMessages = append(chatMessages, openai.ChatCompletionMessage{
			Role:    msg.Role,
			Content: msg.Content,
		})
	}

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.model,
		Messages:    chatMessages,
		Temperature: 0.7,
	})
	if err != nil {
		return "", fmt.Errorf("openai chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("openai returned no choices: %w", ErrUnexpectedBehaviorOfAI)
	}
	return resp.Choices[0].Message.Content, nil
}

func (c *OpenAIClient) GetEmbedding(ctx context.Context, text string) (pgvector.Vector, error) {
	ctx, cancel := context.WithTimeout(ctx, llmCallTimeout)
	defer cancel()

	resp, err := c.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Input: []string{text},
		Model: c.embeddingModel,
	})
	if err != nil {
		return pgvector.Vector{}, fmt.Errorf("openai embeddings: %w", err)
	}
	if len(resp.Data) == 0 {
		return pgvector.Vector{}, fmt.Errorf("openai returned no embedding data: %w", ErrUnexpectedBehaviorOfAI)
	}
	return pgvector.NewVector(resp.Data[0].Embedding), nil
}
