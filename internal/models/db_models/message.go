package db_models

import "github.com/google/uuid"

type Message struct {
	BaseModel
	ConversationID uuid.UUID `gorm:"type:uuid;index"`
	Role           string    // "user", "assistant" or "system"
	Content        string    `gorm:"type:text"`
}
