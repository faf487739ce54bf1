package chatbot

import (
	"context"
	"fmt"
	"log"
)

// node identifies one step of the per-turn workflow. The graph from the
// conversational design is spelled out as an explicit routing function over
// these identifiers instead of a generic graph-execution framework.
type node int

const (
	nodeTopicExtraction node = iota
	nodeCategoryValidation
	nodeTopicValidation
	nodeRAGSearch
	nodeWebSearch
	nodeGenerateLesson
	nodeGenerateResponse
	nodeGenerateQuiz
	nodeProcessQuizAnswer
	nodeEnd
)

// Engine is the conversational workflow coordinator. It holds no durable
// state between invocations: each turn is a function of (history, session
// state) -> (response, new session state), with the LLM calls as the only
// non-determinism. Safe for concurrent use across conversations.
type Engine struct {
	validator *TopicValidator
	search    *SearchOrchestrator
	generator *ContentGenerator
	quiz      *QuizEngine
}

func NewEngine(llm LLMClient, documents DocumentSearcher, web WebSearcher) *Engine {
	return &Engine{
		validator: NewTopicValidator(llm),
		search:    NewSearchOrchestrator(documents, web, llm),
		generator: NewContentGenerator(llm),
		quiz:      NewQuizEngine(llm),
	}
}

// ValidateFirstMessageTopic checks whether a would-be conversation is within
// scope. Exposed for the conversation-creation endpoint.
func (e *Engine) ValidateFirstMessageTopic(ctx context.Context, message string) (bool, string, string) {
	return e.validator.ValidateFirstMessageTopic(ctx, message)
}

// ProcessTurn runs one turn of the workflow. It never panics and never
// returns an empty response: any unrecoverable failure inside the pipeline is
// converted to a user-facing apology here, at the single turn boundary.
func (e *Engine) ProcessTurn(ctx context.Context, messages []Message, conversationID, topic string,
	isQuizMode bool, quizState *QuizState) (result TurnResult) {

	defer func() {
		if r := recover(); r != nil {
			log.Printf("panic processing turn for conversation %s: %v", conversationID, r)
			result = TurnResult{Response: apologyMessage}
		}
	}()

	state := &turnState{
		messages:           messages,
		conversationID:     conversationID,
		topic:              topic,
		topicCategoryValid: topic != "", // pre-validated topics are valid
		isValid:            true,
		isQuizMode:         isQuizMode,
	}
	if quizState != nil {
		state.quizQuestions = quizState.Questions
		state.quizIndex = quizState.CurrentIndex
		state.quizScores = quizState.Scores
		state.usedQuestions = quizState.UsedQuestions
	}

	if err := e.run(ctx, state); err != nil {
		log.Printf("error processing turn for conversation %s: %v", conversationID, err)
		return TurnResult{Response: apologyMessage}
	}

	result = TurnResult{Response: state.response}
	if result.Response == "" {
		result.Response = apologyMessage
	}
	if isQuizMode {
		result.QuizState = &QuizState{
			Questions:     state.quizQuestions,
			CurrentIndex:  state.quizIndex,
			Scores:        state.quizScores,
			UsedQuestions: state.usedQuestions,
			IsActive:      state.isQuizMode,
		}
	}
	return result
}

// run drives the node loop from topic extraction to the terminal marker.
func (e *Engine) run(ctx context.Context, state *turnState) error {
	current := nodeTopicExtraction
	for current != nodeEnd {
		next, err := e.executeNode(ctx, current, state)
		if err != nil {
			return err
		}
		current = next
	}
	return nil
}

func (e *Engine) executeNode(ctx context.Context, n node, state *turnState) (node, error) {
	switch n {
	case nodeTopicExtraction:
		e.extractTopic(ctx, state)
		return nodeCategoryValidation, nil

	case nodeCategoryValidation:
		e.validateTopicCategory(ctx, state)
		return e.routeAfterCategoryValidation(state), nil

	case nodeTopicValidation:
		e.validateTopic(ctx, state)
		return e.routeAfterTopicValidation(state), nil

	case nodeRAGSearch:
		state.searchConcepts = e.search.ExtractSearchConcepts(ctx, state.lastUserMessage(), state.topic)
		state.ragResults = e.search.RAGSearch(ctx, state.searchConcepts)
		return nodeWebSearch, nil

	case nodeWebSearch:
		state.webResults = e.search.WebSearch(ctx, state.topic, state.searchConcepts, state.ragResults, state.lastUserMessage())
		if state.isFirstMessage {
			return nodeGenerateLesson, nil
		}
		return nodeGenerateResponse, nil

	case nodeGenerateLesson:
		state.response = e.generator.GenerateLesson(ctx, state.messages, state.topic, state.ragResults, state.webResults)
		return nodeEnd, nil

	case nodeGenerateResponse:
		state.response = e.generator.GenerateResponse(ctx, state.messages, state.topic, state.ragResults, state.webResults,
			state.isValid, state.topicCategoryValid, state.isFirstMessage)
		return nodeEnd, nil

	case nodeGenerateQuiz:
		if err := e.generateQuizQuestions(ctx, state); err != nil {
			return nodeEnd, err
		}
		return nodeEnd, nil

	case nodeProcessQuizAnswer:
		if err := e.processQuizAnswer(ctx, state); err != nil {
			return nodeEnd, err
		}
		return nodeEnd, nil

	default:
		return nodeEnd, fmt.Errorf("unknown workflow node %d", n)
	}
}

// extractTopic establishes the turn's topic. In quiz mode the topic is
// already set and the node is a no-op beyond the first-message flag.
func (e *Engine) extractTopic(ctx context.Context, state *turnState) {
	state.isFirstMessage = len(state.messages) == 1
	if state.isQuizMode {
		return
	}
	state.topic = e.validator.ExtractTopic(ctx, state.messages, state.isFirstMessage, state.topic)
}

func (e *Engine) validateTopicCategory(ctx context.Context, state *turnState) {
	if state.isQuizMode {
		// Quiz answers are never topic-checked.
		state.topicCategoryValid = true
		return
	}
	state.topicCategoryValid = e.validator.ValidateTopicCategory(ctx, state.topic, state.lastUserMessage(), state.isFirstMessage)
}

func (e *Engine) validateTopic(ctx context.Context, state *turnState) {
	if state.isQuizMode {
		state.isValid = true
		return
	}
	state.isValid = e.validator.ValidateTopicRelevance(ctx, state.lastUserMessage(), state.topic)
}

func (e *Engine) routeAfterCategoryValidation(state *turnState) node {
	if state.isQuizMode {
		if state.quizQuestions != nil && state.quizIndex != nil {
			return nodeProcessQuizAnswer
		}
		return nodeGenerateQuiz
	}
	if !state.topicCategoryValid {
		return nodeGenerateResponse
	}
	if state.isFirstMessage {
		return nodeRAGSearch
	}
	return nodeTopicValidation
}

func (e *Engine) routeAfterTopicValidation(state *turnState) node {
	if state.isQuizMode {
		if state.quizQuestions != nil && state.quizIndex != nil {
			return nodeProcessQuizAnswer
		}
		return nodeGenerateQuiz
	}
	if state.isValid {
		return nodeRAGSearch
	}
	return nodeGenerateResponse
}

// generateQuizQuestions starts a quiz session: a fresh question set, index
// zero, empty scores, and the first question as the turn's response.
func (e *Engine) generateQuizQuestions(ctx context.Context, state *turnState) error {
	questions, err := e.quiz.GenerateQuestions(ctx, state.messages, state.topic, state.usedQuestions)
	if err != nil {
		return err
	}

	state.quizQuestions = questions
	state.quizIndex = intPtr(0)
	state.quizScores = nil
	state.response = e.quiz.FormatQuestion(questions[0], 1, len(questions))

	log.Printf("generated %d quiz questions for conversation %s", len(questions), state.conversationID)
	return nil
}

// processQuizAnswer grades the pending question, then either advances the
// quiz or completes it with a score summary.
func (e *Engine) processQuizAnswer(ctx context.Context, state *turnState) error {
	if len(state.quizQuestions) == 0 || state.quizIndex == nil || *state.quizIndex >= len(state.quizQuestions) {
		state.response = noQuizMessage
		return nil
	}

	index := *state.quizIndex
	userAnswer := state.lastUserMessage()

	eval, err := e.quiz.ProcessAnswer(ctx, state.quizQuestions[index], userAnswer)
	if err != nil {
		return err
	}

	state.quizScores = append(state.quizScores, QuizScore{
		QuestionIndex: index,
		Correct:       eval.IsCorrect,
		UserAnswer:    userAnswer,
	})

	if index+1 >= len(state.quizQuestions) {
		state.response = eval.Feedback + e.completionSummary(state)
		state.isQuizMode = false
		state.quizIndex = nil
		return nil
	}

	next := index + 1
	state.quizIndex = &next
	state.response = eval.Feedback + "\n\n---\n\n" + e.quiz.FormatQuestion(state.quizQuestions[next], next+1, len(state.quizQuestions))
	return nil
}

// completionSummary closes out a quiz session: every asked question becomes
// permanently "used" (asked, not answered correctly) and the score gets a
// tiered encouragement line.
func (e *Engine) completionSummary(state *turnState) string {
	correct := 0
	for _, score := range state.quizScores {
		if score.Correct {
			correct++
		}
	}
	total := len(state.quizScores)

	for _, q := range state.quizQuestions {
		state.usedQuestions = append(state.usedQuestions, q.Question)
	}

	summary := fmt.Sprintf("\n\n🎉 **Quiz Complete!**\nYour score: %d/%d\n", correct, total)
	switch {
	case correct == total:
		summary += "Perfect score! Excellent understanding! 🌟"
	case float64(correct) >= float64(total)*0.8:
		summary += "Great job! You have a strong grasp of the concepts! 💪"
	case float64(correct) >= float64(total)*0.6:
		summary += "Good effort! Keep learning and you'll master these concepts! 📚"
	default:
		summary += "Keep practicing! Review the conversation and try again when ready! 🚀"
	}
	return summary
}
