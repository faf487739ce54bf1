package chatbot

import (
	"context"
	"fmt"
	"log"
	"strings"
)

// DocumentSearcher is the document store's similarity-search capability.
// Results come back ordered by descending similarity.
type DocumentSearcher interface {
	Search(ctx context.Context, query string, limit int) ([]SearchResult, error)
}

// WebSearcher is the best-effort web search capability.
type WebSearcher interface {
	Search(ctx context.Context, query string, maxResults int) ([]SearchResult, error)
}

// Quality bar the engine applies on top of the store's ranking.
const (
	ragResultLimit         = 5
	ragSimilarityThreshold = 0.7
	ragMinResults          = 2
	ragMinAvgSimilarity    = 0.75
	ragMinBestSimilarity   = 0.80
	webSearchMaxResults    = 5
)

// SearchContext bundles the retrieval output of one turn.
type SearchContext struct {
	RAGResults []SearchResult
	WebResults []SearchResult
	Concepts   string
}

// SearchOrchestrator runs document retrieval and decides when the result
// quality warrants falling back to web search.
type SearchOrchestrator struct {
	documents DocumentSearcher
	web       WebSearcher
	llm       LLMClient
}

func NewSearchOrchestrator(documents DocumentSearcher, web WebSearcher, llm LLMClient) *SearchOrchestrator {
	return &SearchOrchestrator{documents: documents, web: web, llm: llm}
}

// ExtractSearchConcepts strips conversational filler from a raw query into a
// compact technical phrase. Falls back to the raw query on error.
func (s *SearchOrchestrator) ExtractSearchConcepts(ctx context.Context, query, topic string) string {
	resp, err := s.llm.Invoke(ctx, []Message{
		{Role: RoleSystem, Content: conceptExtractionPrompt},
		{Role: RoleUser, Content: fmt.Sprintf("Topic context: %s\nUser query: %s", topic, query)},
	})
	if err != nil {
		log.Printf("concept extraction failed, using raw query: %v", err)
		return query
	}
	return strings.Trim(strings.TrimSpace(resp), "'\"")
}

// RAGSearch queries the document store and applies the similarity threshold.
// It over-fetches 2x the limit so that the engine, not the store, owns the
// quality bar.
func (s *SearchOrchestrator) RAGSearch(ctx context.Context, concepts string) []SearchResult {
	raw, err := s.documents.Search(ctx, concepts, ragResultLimit*2)
	if err != nil {
		log.Printf("document search failed: %v", err)
		return nil
	}

	var filtered []SearchResult
	for _, r := range raw {
		if r.Similarity >= ragSimilarityThreshold {
			filtered = append(filtered, r)
		}
		if len(filtered) == ragResultLimit {
			break
		}
	}
	return filtered
}

// ShouldUseWebSearch is the fixed-order fallback policy, short-circuiting on
// the first matching condition.
func (s *SearchOrchestrator) ShouldUseWebSearch(ragResults []SearchResult, query string) bool {
	if len(ragResults) == 0 {
		log.Printf("no document results for %q, web search needed", truncate(query, 50))
		return true
	}
	if len(ragResults) < ragMinResults {
		log.Printf("only %d document results (need %d), web search needed", len(ragResults), ragMinResults)
		return true
	}

	var sum, best float64
	for _, r := range ragResults {
		sum += r.Similarity
		if r.Similarity > best {
			best = r.Similarity
		}
	}
	avg := sum / float64(len(ragResults))

	if avg < ragMinAvgSimilarity {
		log.Printf("average similarity %.3f below %.2f, web search needed", avg, ragMinAvgSimilarity)
		return true
	}
	if best < ragMinBestSimilarity {
		log.Printf("best similarity %.3f below %.2f, web search needed", best, ragMinBestSimilarity)
		return true
	}
	return false
}

// WebSearch enriches thin document results from the web. It never returns an
// error: web search is best-effort, not a required dependency.
func (s *SearchOrchestrator) WebSearch(ctx context.Context, topic, concepts string, ragResults []SearchResult, query string) []SearchResult {
	if !s.ShouldUseWebSearch(ragResults, query) {
		return nil
	}

	results, err := s.web.Search(ctx, fmt.Sprintf("%s %s", topic, concepts), webSearchMaxResults)
	if err != nil {
		log.Printf("web search failed: %v", err)
		return nil
	}
	return results
}

// SearchWithFallback composes concept extraction, document search and the
// conditional web fallback into the unit the coordinator uses.
func (s *SearchOrchestrator) SearchWithFallback(ctx context.Context, query, topic string) SearchContext {
	concepts := s.ExtractSearchConcepts(ctx, query, topic)
	ragResults := s.RAGSearch(ctx, concepts)
	webResults := s.WebSearch(ctx, topic, concepts, ragResults, query)

	return SearchContext{
		RAGResults: ragResults,
		WebResults: webResults,
		Concepts:   concepts,
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
