package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"devtutor/internal/models/request_models"
	"devtutor/internal/services"
	"devtutor/pkg/utils"
)

type ChatController struct {
	chatService services.ChatServiceInterface
	ragService  services.RAGServiceInterface
}

func NewChatController(chatService services.ChatServiceInterface, ragService services.RAGServiceInterface) *ChatController {
	return &ChatController{
		chatService: chatService,
		ragService:  ragService,
	}
}

func (ch *ChatController) SendHandler(c *gin.Context) {
	var req request_models.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}
	if req.ConversationID == "" {
		utils.RespondError(c, http.StatusBadRequest, "conversation_id is required")
		return
	}

	resp, err := ch.chatService.ProcessChatMessage(
		c.Request.Context(),
		c.GetString("user_id"),
		req.ConversationID,
		req.Message,
		req.IsQuizMode,
	)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, resp, "")
}

// AddDocumentHandler seeds the knowledge base the RAG search draws from.
func (ch *ChatController) AddDocumentHandler(c *gin.Context) {
	var req request_models.AddDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := ch.ragService.AddDocument(c.Request.Context(), req.Title, req.Content, req.Topic); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Document added")
}
