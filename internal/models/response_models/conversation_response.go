package response_models

type ConversationResponse struct {
	ID         string `json:"id"`
	Topic      string `json:"topic"`
	IsQuizMode bool   `json:"is_quiz_mode"`
	CreatedAt  int64  `json:"created_at"`
	UpdatedAt  int64  `json:"updated_at"`
}
