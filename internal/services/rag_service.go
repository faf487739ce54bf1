package services

import (
	"context"
	"fmt"
	"strings"

	"devtutor/internal/chatbot"
	"devtutor/internal/models/db_models"
	"devtutor/internal/repositories"
	"devtutor/pkg/utils"
)

type RAGServiceInterface interface {
	// Search implements chatbot.DocumentSearcher.
	Search(ctx context.Context, query string, limit int) ([]chatbot.SearchResult, error)
	AddDocument(ctx context.Context, title, content, topic string) error
}

type RAGService struct {
	embeddings   utils.EmbeddingClientInterface
	documentRepo repositories.DocumentRepository
}

func NewRAGService(embeddings utils.EmbeddingClientInterface, documentRepo repositories.DocumentRepository) RAGServiceInterface {
	return &RAGService{
		embeddings:   embeddings,
		documentRepo: documentRepo,
	}
}

func (r *RAGService) Search(ctx context.Context, query string, limit int) ([]chatbot.SearchResult, error) {
	vector, err := r.embeddings.GetEmbedding(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	matches, err := r.documentRepo.SearchByVector(ctx, vector, limit)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	results := make([]chatbot.SearchResult, 0, len(matches))
	for _, m := range matches {
		results = append(results, chatbot.SearchResult{
			Title:      m.Title,
			Content:    m.Content,
			Similarity: m.Similarity,
		})
	}
	return results, nil
}

// Long source documents are chunked on blank lines before embedding so a
// single page does not dominate the similarity space.
const maxChunkSize = 1000

func (r *RAGService) AddDocument(ctx context.Context, title, content, topic string) error {
	chunks := splitContent(content)

	for i, chunk := range chunks {
		chunkTitle := title
		if len(chunks) > 1 {
			chunkTitle = fmt.Sprintf("%s - Part %d", title, i+1)
		}

		vector, err := r.embeddings.GetEmbedding(ctx, chunk)
		if err != nil {
			return fmt.Errorf("embed document chunk: %w", err)
		}

		doc := db_models.Document{
			Title:     chunkTitle,
			Content:   chunk,
			Topic:     topic,
			Embedding: vector,
		}
		if err := r.documentRepo.Insert(ctx, &doc); err != nil {
			return utils.ErrDatabaseError
		}
	}
	return nil
}

func splitContent(content string) []string {
	if len(content) <= maxChunkSize {
		return []string{content}
	}

	var chunks []string
	var current strings.Builder
	for _, para := range strings.Split(content, "\n\n") {
		if current.Len() > 0 && current.Len()+len(para) > maxChunkSize {
			chunks = append(chunks, strings.TrimSpace(current.String()))
			current.Reset()
		}
		current.WriteString(para)
		current.WriteString("\n\n")
	}
	if strings.TrimSpace(current.String()) != "" {
		chunks = append(chunks, strings.TrimSpace(current.String()))
	}
	return chunks
}
