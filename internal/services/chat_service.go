package services

import (
	"context"
	"encoding/json"
	"log"

	"devtutor/internal/chatbot"
	"devtutor/internal/models/db_models"
	"devtutor/internal/models/response_models"
	"devtutor/internal/repositories"
	"devtutor/pkg/memcache"
	"devtutor/pkg/utils"
)

type ChatServiceInterface interface {
	ProcessChatMessage(ctx context.Context, accountID, conversationID, message string, isQuizMode bool) (*response_models.ChatResponse, error)
}

// ChatService choreographs one turn: load session state, append the user
// message, run the workflow engine, persist the assistant message and the
// updated quiz state. The engine itself holds no durable state.
type ChatService struct {
	engine           *chatbot.Engine
	conversationRepo repositories.ConversationRepository
	messageRepo      repositories.MessageRepository
	locks            *memcache.ConversationLocks
}

func NewChatService(
	engine *chatbot.Engine,
	conversationRepo repositories.ConversationRepository,
	messageRepo repositories.MessageRepository,
	locks *memcache.ConversationLocks,
) ChatServiceInterface {
	return &ChatService{
		engine:           engine,
		conversationRepo: conversationRepo,
		messageRepo:      messageRepo,
		locks:            locks,
	}
}

func (c *ChatService) ProcessChatMessage(ctx context.Context, accountID, conversationID, message string, isQuizMode bool) (*response_models.ChatResponse, error) {
	// The whole read-modify-write on the conversation row, quiz state
	// included, runs under the per-conversation lock; loading outside it would
	// let two concurrent answers grade the same question. See DESIGN.md for
	// the multi-instance caveat (last-write-wins).
	unlock := c.locks.Lock(conversationID)
	defer unlock()

	conversation, err := c.conversationRepo.FindByID(ctx, conversationID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if conversation == nil || conversation.AccountID.String() != accountID {
		return nil, utils.ErrConversationNotFound
	}

	userMessage := db_models.Message{
		ConversationID: conversation.ID,
		Role:           chatbot.RoleUser,
		Content:        message,
	}
	if err := c.messageRepo.Insert(ctx, &userMessage); err != nil {
		return nil, utils.ErrDatabaseError
	}

	stored, err := c.messageRepo.ListByConversation(ctx, conversationID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	history := make([]chatbot.Message, 0, len(stored))
	for _, m := range stored {
		history = append(history, chatbot.Message{Role: m.Role, Content: m.Content})
	}

	quizMode := isQuizMode || conversation.IsQuizMode
	var quizState *chatbot.QuizState
	if quizMode {
		quizState = loadQuizState(conversation)
	}

	result := c.engine.ProcessTurn(ctx, history, conversationID, conversation.Topic, quizMode, quizState)

	assistantMessage := db_models.Message{
		ConversationID: conversation.ID,
		Role:           chatbot.RoleAssistant,
		Content:        result.Response,
	}
	if err := c.messageRepo.Insert(ctx, &assistantMessage); err != nil {
		return nil, utils.ErrDatabaseError
	}

	if result.QuizState != nil {
		saveQuizState(conversation, result.QuizState)
	}
	if err := c.conversationRepo.Update(ctx, conversation); err != nil {
		return nil, utils.ErrDatabaseError
	}

	return &response_models.ChatResponse{
		Response:       result.Response,
		ConversationID: conversationID,
		Topic:          conversation.Topic,
		QuizState:      result.QuizState,
	}, nil
}

// storedQuizState is the jsonb shape of the in-progress quiz. Used questions
// live in their own text[] column so they survive quiz completion.
type storedQuizState struct {
	Questions    []chatbot.QuizQuestion `json:"questions"`
	CurrentIndex *int                   `json:"current_index"`
	Scores       []chatbot.QuizScore    `json:"scores"`
}

func loadQuizState(conversation *db_models.Conversation) *chatbot.QuizState {
	state := &chatbot.QuizState{
		UsedQuestions: conversation.UsedQuizQuestions,
		IsActive:      conversation.IsQuizMode,
	}

	if len(conversation.QuizStateJSON) > 0 {
		var stored storedQuizState
		if err := json.Unmarshal(conversation.QuizStateJSON, &stored); err != nil {
			log.Printf("discarding malformed quiz state for conversation %s: %v", conversation.ID, err)
			return state
		}
		state.Questions = stored.Questions
		state.CurrentIndex = stored.CurrentIndex
		state.Scores = stored.Scores
	}
	return state
}

func saveQuizState(conversation *db_models.Conversation, state *chatbot.QuizState) {
	conversation.IsQuizMode = state.IsActive
	conversation.UsedQuizQuestions = state.UsedQuestions

	if !state.IsActive {
		conversation.QuizStateJSON = nil
		return
	}

	raw, err := json.Marshal(storedQuizState{
		Questions:    state.Questions,
		CurrentIndex: state.CurrentIndex,
		Scores:       state.Scores,
	})
	if err != nil {
		log.Printf("failed to serialize quiz state for conversation %s: %v", conversation.ID, err)
		return
	}
	conversation.QuizStateJSON = raw
}
