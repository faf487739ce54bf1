package response_models

import "devtutor/internal/chatbot"

type ChatResponse struct {
	Response       string             `json:"response"`
	ConversationID string             `json:"conversation_id"`
	Topic          string             `json:"topic"`
	QuizState      *chatbot.QuizState `json:"quiz_state,omitempty"`
}

type MessageResponse struct {
	ID        string `json:"id"`
	Role      string `json:"role"`
	Content   string `json:"content"`
	CreatedAt int64  `json:"created_at"`
}
