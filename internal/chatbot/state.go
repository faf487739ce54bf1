package chatbot

// Message is one role-tagged entry of a conversation history, passed by
// value into the engine by the caller.
type Message struct {
	Role    string `json:"role"` // "user", "assistant" or "system"
	Content string `json:"content"`
}

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleSystem    = "system"
)

// Question types produced by the quiz generator.
const (
	QuestionMultipleChoice = "multiple_choice"
	QuestionTrueFalse      = "true_false"
	QuestionShortAnswer    = "short_answer"
)

type QuizQuestion struct {
	Question string `json:"question"`
	Type     string `json:"type"`
	// Options are plain text, never letter-prefixed. Only set for
	// multiple_choice questions.
	Options []string `json:"options,omitempty"`
	// CorrectAnswer is a single letter (A-D) for multiple_choice after the
	// options have been shuffled, free text otherwise.
	CorrectAnswer string `json:"correct_answer"`
	Explanation   string `json:"explanation"`
}

type QuizScore struct {
	QuestionIndex int    `json:"question_index"`
	Correct       bool   `json:"correct"`
	UserAnswer    string `json:"user_answer"`
}

// QuizState is the quiz portion of the persisted session state. CurrentIndex
// is nil outside an active quiz; UsedQuestions only ever grows and survives
// quiz restarts within the same conversation.
type QuizState struct {
	Questions     []QuizQuestion `json:"quiz_questions"`
	CurrentIndex  *int           `json:"current_quiz_index"`
	Scores        []QuizScore    `json:"quiz_scores"`
	UsedQuestions []string       `json:"used_quiz_questions"`
	IsActive      bool           `json:"is_active"`
}

// SearchResult is a scored document or web snippet. Similarity is only
// meaningful for document-store results; web results carry zero.
type SearchResult struct {
	Title      string  `json:"title"`
	Content    string  `json:"content"`
	URL        string  `json:"url,omitempty"`
	Similarity float64 `json:"similarity,omitempty"`
}

// TurnResult is what ProcessTurn hands back to the caller for persistence.
// QuizState is nil unless the turn ran in quiz mode.
type TurnResult struct {
	Response  string     `json:"response"`
	QuizState *QuizState `json:"quiz_state,omitempty"`
}

// turnState threads the per-turn working data through the workflow nodes.
// Unlike the usual grab-bag map, every field is named and typed; "not yet
// computed" is the zero value or an explicit nil.
type turnState struct {
	messages       []Message
	conversationID string

	topic              string
	isFirstMessage     bool
	topicCategoryValid bool
	isValid            bool

	searchConcepts string
	ragResults     []SearchResult
	webResults     []SearchResult

	isQuizMode    bool
	quizQuestions []QuizQuestion
	quizIndex     *int
	quizScores    []QuizScore
	usedQuestions []string

	response string
}

// lastUserMessage returns the content of the most recent message. The caller
// guarantees a non-empty history; an empty one yields "".
func (s *turnState) lastUserMessage() string {
	if len(s.messages) == 0 {
		return ""
	}
	return s.messages[len(s.messages)-1].Content
}

func intPtr(v int) *int { return &v }
