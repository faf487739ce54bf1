package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"devtutor/internal/chatbot"
)

// WebSearchService talks to the external search sidecar. Its timeout is
// independent of the LLM calls so a slow web search cannot stall validation
// work that already completed.
type WebSearchService struct {
	baseURL string
	client  *http.Client
}

func NewWebSearchService(baseURL string) *WebSearchService {
	return &WebSearchService{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

type webSearchRequest struct {
	Query      string `json:"query"`
	MaxResults int    `json:"max_results"`
}

type webSearchResponse struct {
	Results []struct {
		Title   string `json:"title"`
		Snippet string `json:"snippet"`
		URL     string `json:"url"`
	} `json:"results"`
}

// Search implements chatbot.WebSearcher.
func (w *WebSearchService) Search(ctx context.Context, query string, maxResults int) ([]chatbot.SearchResult, error) {
	body, err := json.Marshal(webSearchRequest{Query: query, MaxResults: maxResults})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.baseURL+"/search", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := w.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("web search request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("web search returned status %d", resp.StatusCode)
	}

	var payload webSearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode web search response: %w", err)
	}

	results := make([]chatbot.SearchResult, 0, len(payload.Results))
	for _, r := range payload.Results {
		results = append(results, chatbot.SearchResult{
			Title:   r.Title,
			Content: r.Snippet,
			URL:     r.URL,
		})
	}
	return results, nil
}
