package chatbot

import (
	"context"
	"strings"
	"sync"
)

// fakeLLM is a scripted model. If handler is set it decides every response;
// otherwise responses are popped in order. All invocations are recorded.
type fakeLLM struct {
	mu        sync.Mutex
	handler   func(messages []Message) (string, error)
	responses []string
	err       error
	calls     [][]Message
}

func (f *fakeLLM) Invoke(_ context.Context, messages []Message) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls = append(f.calls, messages)

	if f.handler != nil {
		return f.handler(messages)
	}
	if f.err != nil {
		return "", f.err
	}
	if len(f.responses) == 0 {
		return "", nil
	}
	resp := f.responses[0]
	f.responses = f.responses[1:]
	return resp, nil
}

func (f *fakeLLM) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func systemContent(messages []Message) string {
	for _, m := range messages {
		if m.Role == RoleSystem {
			return m.Content
		}
	}
	return ""
}

// fakeDocumentSearcher records the requested limit and serves canned results.
type fakeDocumentSearcher struct {
	results   []SearchResult
	err       error
	lastQuery string
	lastLimit int
}

func (f *fakeDocumentSearcher) Search(_ context.Context, query string, limit int) ([]SearchResult, error) {
	f.lastQuery = query
	f.lastLimit = limit
	if f.err != nil {
		return nil, f.err
	}
	return f.results, nil
}

type fakeWebSearcher struct {
	results   []SearchResult
	err       error
	lastQuery string
	called    bool
}

func (f *fakeWebSearcher) Search(_ context.Context, query string, _ int) ([]SearchResult, error) {
	f.called = true
	f.lastQuery = query
	if f.err != nil {
		return nil, f.err
	}
	return f.results, nil
}

// promptRouter builds a handler that answers based on recognizable fragments
// of the system prompt, mimicking each model role the engine exercises.
func promptRouter(routes map[string]string) func(messages []Message) (string, error) {
	return func(messages []Message) (string, error) {
		system := systemContent(messages)
		for fragment, response := range routes {
			if strings.Contains(system, fragment) {
				return response, nil
			}
		}
		return "yes", nil
	}
}

func scoredResults(similarities ...float64) []SearchResult {
	results := make([]SearchResult, 0, len(similarities))
	for _, s := range similarities {
		results = append(results, SearchResult{Title: "doc", Content: "content", Similarity: s})
	}
	return results
}
