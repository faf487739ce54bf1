package utils

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"devtutor/internal/chatbot"
)

// GeminiClient implements chat invocation on Google's Gemini models.
type GeminiClient struct {
	client *genai.Client
	model  string
}

func NewGeminiClient(apiKey, model string) (*GeminiClient, error) {
	if model == "" {
		model = "gemini-1.5-flash" // free tier model
	}

	client, err := genai.NewClient(context.Background(), option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiClient{client: client, model: model}, nil
}

func (c *GeminiClient) Invoke(ctx context.Context, messages []chatbot.Message) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, llmCallTimeout)
	defer cancel()

	m := c.client.GenerativeModel(c.model)
	m.SetTemperature(0.7)

	// Gemini carries the system prompt separately from the turn contents.
	var systemParts []string
	var prompt strings.Builder
	for _, msg := range messages {
		switch msg.Role {
		case chatbot.RoleSystem:
			systemParts = append(systemParts, msg.Content)
		case chatbot.RoleAssistant:
			fmt.Fprintf(&prompt, "Assistant: %s\n", msg.Content)
		default:
			fmt.Fprintf(&prompt, "User: %s\n", msg.Content)
		}
	}
	if len(systemParts) > 0 {
		m.SystemInstruction = &genai.Content{
			Parts: []genai.Part{genai.Text(strings.Join(systemParts, "\n\n"))},
		}
	}

	resp, err := m.GenerateContent(ctx, genai.Text(prompt.String()))
	if err != nil {
		return "", fmt.Errorf("gemini: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("gemini returned no content: %w", ErrUnexpectedBehaviorOfAI)
	}
	return fmt.Sprintf("%v", resp.Candidates[0].Content.Parts[0]), nil
}

func (c *GeminiClient) Close() error {
	return c.client.Close()
}

// NewLLMClient selects the chat provider by name. Embeddings always go
// through OpenAI regardless of the chat provider; see NewOpenAIClient.
func NewLLMClient(provider, apiKey, model string) (chatbot.LLMClient, error) {
	switch strings.ToLower(provider) {
	case "openai":
		return NewOpenAIClient(apiKey, model), nil
	case "gemini":
		return NewGeminiClient(apiKey, model)
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s. Use 'openai' or 'gemini'", provider)
	}
}
