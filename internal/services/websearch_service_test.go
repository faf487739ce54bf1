package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWebSearchService_Search(t *testing.T) {
	var received webSearchRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/search", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))

		json.NewEncoder(w).Encode(map[string]any{
			"results": []map[string]string{
				{"title": "Docker docs", "snippet": "Containers explained", "url": "https://docs.docker.com"},
			},
		})
	}))
	defer server.Close()

	svc := NewWebSearchService(server.URL)
	results, err := svc.Search(context.Background(), "Docker Containers networking", 5)

	require.NoError(t, err)
	assert.Equal(t, "Docker Containers networking", received.Query)
	assert.Equal(t, 5, received.MaxResults)
	require.Len(t, results, 1)
	assert.Equal(t, "Docker docs", results[0].Title)
	assert.Equal(t, "Containers explained", results[0].Content)
	assert.Equal(t, "https://docs.docker.com", results[0].URL)
}

func TestWebSearchService_NonOKStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	svc := NewWebSearchService(server.URL)
	_, err := svc.Search(context.Background(), "query", 5)

	assert.ErrorContains(t, err, "502")
}

func TestWebSearchService_UnreachableSidecar(t *testing.T) {
	svc := NewWebSearchService("http://127.0.0.1:1")

	_, err := svc.Search(context.Background(), "query", 5)

	assert.Error(t, err)
}
