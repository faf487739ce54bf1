package chatbot_fx

import (
	"fmt"
	"log"
	"os"
	"strings"

	"go.uber.org/fx"
	"gorm.io/gorm"

	"devtutor/internal/chatbot"
	"devtutor/internal/repositories"
	"devtutor/internal/services"
	"devtutor/pkg/memcache"
	"devtutor/pkg/utils"
)

var Module = fx.Provide(
	ProvideLLMClient,
	ProvideEmbeddingClient,
	ProvideDocumentRepository,
	ProvideRAGService,
	ProvideWebSearchService,
	ProvideEngine,
	memcache.NewConversationLocks,
)

// LLMConfig holds configuration for the chat model client
type LLMConfig struct {
	Provider string
	APIKey   string
	Model    string
}

func ProvideLLMClient() (chatbot.LLMClient, error) {
	config := getLLMConfig()

	log.Printf("Initializing %s LLM client with model: %s", config.Provider, config.Model)

	client, err := utils.NewLLMClient(config.Provider, config.APIKey, config.Model)
	if err != nil {
		return nil, fmt.Errorf("failed to create LLM client: %w", err)
	}
	return client, nil
}

// ProvideEmbeddingClient always uses OpenAI embeddings regardless of the
// chat provider; the document store is dimensioned for them.
func ProvideEmbeddingClient() utils.EmbeddingClientInterface {
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		log.Fatal("OPENAI_API_KEY is required for embeddings")
	}
	return utils.NewOpenAIClient(apiKey, getEnvWithDefault("OPENAI_MODEL", ""))
}

func ProvideDocumentRepository(db *gorm.DB) repositories.DocumentRepository {
	return repositories.NewDocumentRepository(db)
}

func ProvideRAGService(
	embeddings utils.EmbeddingClientInterface,
	documentRepo repositories.DocumentRepository,
) services.RAGServiceInterface {
	return services.NewRAGService(embeddings, documentRepo)
}

func ProvideWebSearchService() *services.WebSearchService {
	return services.NewWebSearchService(getEnvWithDefault("WEB_SEARCH_URL", "http://localhost:3000"))
}

func ProvideEngine(
	llm chatbot.LLMClient,
	ragService services.RAGServiceInterface,
	webSearch *services.WebSearchService,
) *chatbot.Engine {
	return chatbot.NewEngine(llm, ragService, webSearch)
}

func getLLMConfig() LLMConfig {
	provider := getEnvWithDefault("LLM_PROVIDER", "openai")

	var apiKey, model string
	switch strings.ToLower(provider) {
	case "openai":
		apiKey = os.Getenv("OPENAI_API_KEY")
		model = getEnvWithDefault("OPENAI_MODEL", "gpt-4o-mini")
		if apiKey == "" {
			log.Fatal("OPENAI_API_KEY is required when using OpenAI provider")
		}
	case "gemini":
		apiKey = os.Getenv("GEMINI_API_KEY")
		model = getEnvWithDefault("GEMINI_MODEL", "gemini-1.5-flash")
		if apiKey == "" {
			log.Fatal("GEMINI_API_KEY is required when using Gemini provider")
		}
	}

	return LLMConfig{
		Provider: provider,
		APIKey:   apiKey,
		Model:    model,
	}
}

func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
