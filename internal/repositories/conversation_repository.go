package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"devtutor/internal/models/db_models"
)

type ConversationRepository interface {
	Insert(ctx context.Context, conversation *db_models.Conversation) error
	FindByID(ctx context.Context, id string) (*db_models.Conversation, error)
	ListByAccount(ctx context.Context, accountID string) ([]db_models.Conversation, error)
	Update(ctx context.Context, conversation *db_models.Conversation) error
}

type conversationRepository struct {
	db *gorm.DB
}

func NewConversationRepository(db *gorm.DB) ConversationRepository {
	return &conversationRepository{db: db}
}

func (c *conversationRepository) Insert(ctx context.Context, conversation *db_models.Conversation) error {
	return c.db.WithContext(ctx).Create(conversation).Error
}

func (c *conversationRepository) FindByID(ctx context.Context, id string) (*db_models.Conversation, error) {
	var conversation db_models.Conversation
	err := c.db.WithContext(ctx).First(&conversation, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &conversation, nil
}

func (c *conversationRepository) ListByAccount(ctx context.Context, accountID string) ([]db_models.Conversation, error) {
	var conversations []db_models.Conversation
	err := c.db.WithContext(ctx).
		Where("account_id = ?", accountID).
		Order("updated_at DESC").
		Find(&conversations).Error
	if err != nil {
		return nil, err
	}
	return conversations, nil
}

func (c *conversationRepository) Update(ctx context.Context, conversation *db_models.Conversation) error {
	return c.db.WithContext(ctx).Save(conversation).Error
}
