package chatbot

import (
	"context"
	"fmt"
	"log"
	"strings"
)

// ContentGenerator produces the first-turn lesson and follow-up answers.
type ContentGenerator struct {
	llm LLMClient
}

func NewContentGenerator(llm LLMClient) *ContentGenerator {
	return &ContentGenerator{llm: llm}
}

// GenerateLesson builds a structured lesson for a conversation's first
// accepted turn.
func (g *ContentGenerator) GenerateLesson(ctx context.Context, messages []Message, topic string, ragResults, webResults []SearchResult) string {
	contextBlock := buildContextBlock(ragResults, webResults)

	resp, err := g.llm.Invoke(ctx, []Message{
		{Role: RoleSystem, Content: lessonSystemPrompt + contextBlock},
		{Role: RoleUser, Content: "Create a lesson about: " + messages[len(messages)-1].Content},
	})
	if err != nil {
		log.Printf("lesson generation failed for topic %q: %v", topic, err)
		return apologyMessage
	}
	return resp
}

// GenerateResponse answers a follow-up turn, or emits one of the two canned
// deflections without touching the model.
func (g *ContentGenerator) GenerateResponse(ctx context.Context, messages []Message, topic string, ragResults, webResults []SearchResult,
	isValid, topicCategoryValid, isFirstMessage bool) string {

	if isFirstMessage && !topicCategoryValid {
		return categoryRejectionMessage
	}
	if !isFirstMessage && !isValid {
		return fmt.Sprintf("I'm focused on helping you learn about %s. Please ask questions related to this topic. If you'd like to explore a different topic, please start a new conversation.", topic)
	}

	systemPrompt := fmt.Sprintf(`You are a helpful learning assistant focused on %s.
Use the provided context to give accurate and educational responses.
Answer the user's question directly and provide practical insights.
Stay focused on %s and related concepts.

Context:
%s`, topic, topic, buildContextBlock(ragResults, webResults))

	llmMessages := []Message{{Role: RoleSystem, Content: systemPrompt}}
	for _, msg := range messages[:len(messages)-1] {
		if msg.Role == RoleUser || msg.Role == RoleAssistant {
			llmMessages = append(llmMessages, msg)
		}
	}
	llmMessages = append(llmMessages, Message{Role: RoleUser, Content: messages[len(messages)-1].Content})

	resp, err := g.llm.Invoke(ctx, llmMessages)
	if err != nil {
		log.Printf("response generation failed for topic %q: %v", topic, err)
		return apologyMessage
	}
	return resp
}

// buildContextBlock assembles up to 3 document and 3 web results into the
// reference block both generators feed to the model.
func buildContextBlock(ragResults, webResults []SearchResult) string {
	var parts []string

	if len(ragResults) > 0 {
		parts = append(parts, "From our knowledge base:")
		for _, r := range capResults(ragResults, 3) {
			parts = append(parts, "- "+r.Content)
		}
	}
	if len(webResults) > 0 {
		parts = append(parts, "\nFrom web search:")
		for _, r := range capResults(webResults, 3) {
			parts = append(parts, "- "+r.Content)
		}
	}

	if len(parts) == 0 {
		return "No specific context found."
	}
	return strings.Join(parts, "\n")
}

func capResults(results []SearchResult, n int) []SearchResult {
	if len(results) > n {
		return results[:n]
	}
	return results
}
