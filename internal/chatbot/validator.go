package chatbot

import (
	"context"
	"fmt"
	"log"
	"strings"
)

// LLMClient is the single capability the engine needs from a language model.
// Implementations must be safe for concurrent use and carry their own
// timeouts.
type LLMClient interface {
	Invoke(ctx context.Context, messages []Message) (string, error)
}

// TopicValidator classifies topics and judges topical relevance.
//
// The defaults on error are deliberately asymmetric: admitting an off-topic
// conversation breaks the product's scope promise, so entry is fail-closed;
// a mid-conversation check that errors must not brick a working session, so
// continuation is fail-open.
type TopicValidator struct {
	llm LLMClient
}

func NewTopicValidator(llm LLMClient) *TopicValidator {
	return &TopicValidator{llm: llm}
}

const defaultTopic = "General"

// ValidateFirstMessageTopic decides whether a would-be conversation is within
// the Programming/DevOps/AI scope. Returns (allowed, topic, reason).
func (v *TopicValidator) ValidateFirstMessageTopic(ctx context.Context, message string) (bool, string, string) {
	topic, err := v.labelTopic(ctx, message)
	if err != nil {
		log.Printf("first message topic labeling failed: %v", err)
		return false, "Unknown", fmt.Sprintf("Validation error: %v", err)
	}

	ok, err := v.checkCategory(ctx, topic, message)
	if err != nil {
		log.Printf("first message category check failed: %v", err)
		return false, "Unknown", fmt.Sprintf("Validation error: %v", err)
	}

	if !ok {
		return false, topic, "Topic is not related to Programming, DevOps, or AI/Machine Learning"
	}
	return true, topic, "Topic is within allowed categories"
}

// ExtractTopic returns the established topic unchanged when one exists; the
// engine trusts upstream validation and never re-classifies. Only a first
// message without a topic triggers a labeling call.
func (v *TopicValidator) ExtractTopic(ctx context.Context, messages []Message, isFirstMessage bool, existingTopic string) string {
	if existingTopic != "" {
		return existingTopic
	}
	if !isFirstMessage {
		return defaultTopic
	}

	topic, err := v.labelTopic(ctx, messages[len(messages)-1].Content)
	if err != nil {
		log.Printf("topic extraction failed, defaulting to %q: %v", defaultTopic, err)
		return defaultTopic
	}
	return topic
}

// ValidateTopicCategory checks that the topic is within scope. First messages
// arriving with a non-default topic were already validated at conversation
// creation and short-circuit to true.
func (v *TopicValidator) ValidateTopicCategory(ctx context.Context, topic, message string, isFirstMessage bool) bool {
	if !isFirstMessage {
		// Category was settled when the conversation was admitted.
		return true
	}
	if topic != "" && topic != defaultTopic {
		return true
	}

	ok, err := v.checkCategory(ctx, topic, message)
	if err != nil {
		// Fail-open: do not lock users out of an admitted conversation.
		log.Printf("category validation failed, defaulting to valid: %v", err)
		return true
	}
	return ok
}

// ValidateTopicRelevance asks whether a subsequent message stays on the
// established topic. Fail-open on error.
func (v *TopicValidator) ValidateTopicRelevance(ctx context.Context, message, topic string) bool {
	resp, err := v.llm.Invoke(ctx, []Message{
		{Role: RoleSystem, Content: fmt.Sprintf("Determine if the user's message is related to the topic '%s'. Respond with 'yes' or 'no' only.", topic)},
		{Role: RoleUser, Content: message},
	})
	if err != nil {
		log.Printf("relevance validation failed, defaulting to valid: %v", err)
		return true
	}
	return strings.EqualFold(strings.TrimSpace(resp), "yes")
}

func (v *TopicValidator) labelTopic(ctx context.Context, message string) (string, error) {
	resp, err := v.llm.Invoke(ctx, []Message{
		{Role: RoleSystem, Content: topicNamePrompt},
		{Role: RoleUser, Content: message},
	})
	if err != nil {
		return "", err
	}
	return strings.Trim(strings.TrimSpace(resp), "'\""), nil
}

func (v *TopicValidator) checkCategory(ctx context.Context, topic, message string) (bool, error) {
	resp, err := v.llm.Invoke(ctx, []Message{
		{Role: RoleSystem, Content: categoryCheckPrompt},
		{Role: RoleUser, Content: fmt.Sprintf("Topic: %s\nUser message: %s", topic, message)},
	})
	if err != nil {
		return false, err
	}
	return strings.EqualFold(strings.TrimSpace(resp), "yes"), nil
}
