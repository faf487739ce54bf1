package services

import (
	"context"
	"log"

	"github.com/google/uuid"

	"devtutor/internal/chatbot"
	"devtutor/internal/models/db_models"
	"devtutor/internal/models/response_models"
	"devtutor/internal/repositories"
	"devtutor/pkg/utils"
)

type ConversationServiceInterface interface {
	Create(ctx context.Context, accountID, firstMessage string) (*response_models.ConversationResponse, error)
	List(ctx context.Context, accountID string) ([]response_models.ConversationResponse, error)
	GetMessages(ctx context.Context, accountID, conversationID string) ([]response_models.MessageResponse, error)
}

type ConversationService struct {
	engine           *chatbot.Engine
	conversationRepo repositories.ConversationRepository
	messageRepo      repositories.MessageRepository
}

func NewConversationService(
	engine *chatbot.Engine,
	conversationRepo repositories.ConversationRepository,
	messageRepo repositories.MessageRepository,
) ConversationServiceInterface {
	return &ConversationService{
		engine:           engine,
		conversationRepo: conversationRepo,
		messageRepo:      messageRepo,
	}
}

// Create admits a new conversation only when its first message is within the
// Programming/DevOps/AI scope. The validated topic is fixed for the
// conversation's lifetime.
func (c *ConversationService) Create(ctx context.Context, accountID, firstMessage string) (*response_models.ConversationResponse, error) {
	allowed, topic, reason := c.engine.ValidateFirstMessageTopic(ctx, firstMessage)
	if !allowed {
		log.Printf("rejected conversation for account %s: %s", accountID, reason)
		return nil, utils.ErrOffTopicConversation
	}

	accountUUID, err := uuid.Parse(accountID)
	if err != nil {
		return nil, utils.ErrInvalidInput
	}

	conversation := db_models.Conversation{
		AccountID: accountUUID,
		Topic:     topic,
	}
	if err := c.conversationRepo.Insert(ctx, &conversation); err != nil {
		return nil, utils.ErrDatabaseError
	}

	return toConversationResponse(&conversation), nil
}

func (c *ConversationService) List(ctx context.Context, accountID string) ([]response_models.ConversationResponse, error) {
	conversations, err := c.conversationRepo.ListByAccount(ctx, accountID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	responses := make([]response_models.ConversationResponse, 0, len(conversations))
	for i := range conversations {
		responses = append(responses, *toConversationResponse(&conversations[i]))
	}
	return responses, nil
}

func (c *ConversationService) GetMessages(ctx context.Context, accountID, conversationID string) ([]response_models.MessageResponse, error) {
	conversation, err := c.conversationRepo.FindByID(ctx, conversationID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if conversation == nil || conversation.AccountID.String() != accountID {
		return nil, utils.ErrConversationNotFound
	}

	messages, err := c.messageRepo.ListByConversation(ctx, conversationID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	responses := make([]response_models.MessageResponse, 0, len(messages))
	for _, m := range messages {
		responses = append(responses, response_models.MessageResponse{
			ID:        m.ID.String(),
			Role:      m.Role,
			Content:   m.Content,
			CreatedAt: m.CreatedAt,
		})
	}
	return responses, nil
}

func toConversationResponse(c *db_models.Conversation) *response_models.ConversationResponse {
	return &response_models.ConversationResponse{
		ID:         c.ID.String(),
		Topic:      c.Topic,
		IsQuizMode: c.IsQuizMode,
		CreatedAt:  c.CreatedAt,
		UpdatedAt:  c.UpdatedAt,
	}
}
