package repositories

import (
	"context"

	"gorm.io/gorm"

	"devtutor/internal/models/db_models"
)

type MessageRepository interface {
	Insert(ctx context.Context, message *db_models.Message) error
	ListByConversation(ctx context.Context, conversationID string) ([]db_models.Message, error)
}

type messageRepository struct {
	db *gorm.DB
}

func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &messageRepository{db: db}
}

func (m *messageRepository) Insert(ctx context.Context, message *db_models.Message) error {
	return m.db.WithContext(ctx).Create(message).Error
}

func (m *messageRepository) ListByConversation(ctx context.Context, conversationID string) ([]db_models.Message, error) {
	var messages []db_models.Message
	err := m.db.WithContext(ctx).
		Where("conversation_id = ?", conversationID).
		Order("created_at ASC, id ASC").
		Find(&messages).Error
	if err != nil {
		return nil, err
	}
	return messages, nil
}
