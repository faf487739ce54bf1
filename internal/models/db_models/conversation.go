package db_models

import (
	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Conversation carries the per-conversation session state the chat engine
// reads and writes once per turn. Topic is set once at creation and never
// re-derived afterwards.
type Conversation struct {
	BaseModel
	AccountID  uuid.UUID `gorm:"type:uuid;index"`
	Topic      string
	IsQuizMode bool
	// QuizStateJSON holds the serialized in-progress quiz (questions, index,
	// scores). Empty outside a quiz session.
	QuizStateJSON []byte `gorm:"type:jsonb"`
	// UsedQuizQuestions accumulates every question text ever asked in this
	// conversation; it never shrinks, even across quiz restarts.
	UsedQuizQuestions pq.StringArray `gorm:"type:text[]"`

	Messages []Message `gorm:"foreignKey:ConversationID"`
}
