package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"devtutor/internal/models/request_models"
	"devtutor/internal/services"
	"devtutor/pkg/utils"
)

type ConversationController struct {
	conversationService services.ConversationServiceInterface
}

func NewConversationController(conversationService services.ConversationServiceInterface) *ConversationController {
	return &ConversationController{conversationService: conversationService}
}

// CreateHandler admits a conversation only when the first message passes the
// topic gate; off-topic openers get a 422 and no conversation row.
func (cc *ConversationController) CreateHandler(c *gin.Context) {
	var req request_models.CreateConversationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	conversation, err := cc.conversationService.Create(c.Request.Context(), c.GetString("user_id"), req.Message)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, conversation, "Conversation created")
}

func (cc *ConversationController) ListHandler(c *gin.Context) {
	conversations, err := cc.conversationService.List(c.Request.Context(), c.GetString("user_id"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, conversations, "")
}

func (cc *ConversationController) MessagesHandler(c *gin.Context) {
	conversationID := c.Param("id")
	if conversationID == "" {
		utils.RespondError(c, http.StatusBadRequest, "conversation id is required")
		return
	}

	messages, err := cc.conversationService.GetMessages(c.Request.Context(), c.GetString("user_id"), conversationID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, messages, "")
}
