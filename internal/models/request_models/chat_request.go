package request_models

type ChatRequest struct {
	Message        string `json:"message" binding:"required,min=1,max=5000"`
	ConversationID string `json:"conversation_id,omitempty"`
	IsQuizMode     bool   `json:"is_quiz_mode,omitempty"`
}

type CreateConversationRequest struct {
	Message string `json:"message" binding:"required,min=1,max=5000"`
}

type AddDocumentRequest struct {
	Title   string `json:"title" binding:"required"`
	Content string `json:"content" binding:"required"`
	Topic   string `json:"topic" binding:"required"`
}
