package chatbot

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fiveQuestionJSON() string {
	var items []string
	for i := 1; i <= 5; i++ {
		items = append(items, fmt.Sprintf(
			`{"question": "Docker question %d?", "type": "short_answer", "correct_answer": "answer %d", "explanation": "because"}`, i, i))
	}
	return "[" + strings.Join(items, ",") + "]"
}

func newTestEngine(llm LLMClient, docs DocumentSearcher, web WebSearcher) *Engine {
	if docs == nil {
		docs = &fakeDocumentSearcher{}
	}
	if web == nil {
		web = &fakeWebSearcher{}
	}
	return NewEngine(llm, docs, web)
}

func TestProcessTurn_FirstMessageProducesLesson(t *testing.T) {
	llm := &fakeLLM{handler: promptRouter(map[string]string{
		"key technical concepts": "Docker containers basics",
		"educational lesson":     "## Docker Basics\nA container is...",
	})}
	docs := &fakeDocumentSearcher{results: scoredResults(0.9, 0.85)}
	web := &fakeWebSearcher{}
	e := newTestEngine(llm, docs, web)

	result := e.ProcessTurn(context.Background(),
		[]Message{{Role: RoleUser, Content: "Teach me about Docker"}},
		"conv-1", "Docker Containers", false, nil)

	assert.Equal(t, "## Docker Basics\nA container is...", result.Response)
	assert.Nil(t, result.QuizState)
	assert.Equal(t, "Docker containers basics", docs.lastQuery)
	// Strong document hits keep the web sidecar out of the turn.
	assert.False(t, web.called)
}

func TestProcessTurn_WeakRAGTriggersWebSearch(t *testing.T) {
	llm := &fakeLLM{handler: promptRouter(map[string]string{
		"key technical concepts": "Docker swarm",
		"educational lesson":     "lesson text",
	})}
	docs := &fakeDocumentSearcher{results: scoredResults(0.71)}
	web := &fakeWebSearcher{results: []SearchResult{{Title: "t", Content: "c"}}}
	e := newTestEngine(llm, docs, web)

	result := e.ProcessTurn(context.Background(),
		[]Message{{Role: RoleUser, Content: "Teach me Docker swarm"}},
		"conv-1", "Docker Containers", false, nil)

	assert.Equal(t, "lesson text", result.Response)
	assert.True(t, web.called)
	assert.Equal(t, "Docker Containers Docker swarm", web.lastQuery)
}

func TestProcessTurn_OnTopicFollowUp(t *testing.T) {
	llm := &fakeLLM{handler: promptRouter(map[string]string{
		"related to the topic":   "yes",
		"key technical concepts": "Docker volumes",
		"learning assistant":     "Volumes persist data.",
	})}
	e := newTestEngine(llm, &fakeDocumentSearcher{results: scoredResults(0.9, 0.85)}, nil)

	result := e.ProcessTurn(context.Background(),
		[]Message{
			{Role: RoleUser, Content: "Teach me Docker"},
			{Role: RoleAssistant, Content: "Docker is..."},
			{Role: RoleUser, Content: "What about volumes?"},
		},
		"conv-1", "Docker Containers", false, nil)

	assert.Equal(t, "Volumes persist data.", result.Response)
}

func TestProcessTurn_OffTopicFollowUpDeflects(t *testing.T) {
	llm := &fakeLLM{handler: promptRouter(map[string]string{
		"related to the topic": "no",
	})}
	docs := &fakeDocumentSearcher{results: scoredResults(0.9)}
	e := newTestEngine(llm, docs, nil)

	result := e.ProcessTurn(context.Background(),
		[]Message{
			{Role: RoleUser, Content: "Teach me Docker"},
			{Role: RoleAssistant, Content: "Docker is..."},
			{Role: RoleUser, Content: "What's for dinner?"},
		},
		"conv-1", "Docker Containers", false, nil)

	assert.Contains(t, result.Response, "I'm focused on helping you learn about Docker Containers")
	// An off-topic turn must not reach retrieval.
	assert.Empty(t, docs.lastQuery)
}

func TestProcessTurn_QuizStartReturnsFirstQuestionAndState(t *testing.T) {
	llm := &fakeLLM{handler: promptRouter(map[string]string{
		"interactive quiz": fiveQuestionJSON(),
	})}
	e := newTestEngine(llm, nil, nil)

	result := e.ProcessTurn(context.Background(), sampleHistory(),
		"conv-1", "Docker Containers", true, nil)

	assert.Contains(t, result.Response, "**Question 1/5:**")
	require.NotNil(t, result.QuizState)
	assert.True(t, result.QuizState.IsActive)
	assert.Len(t, result.QuizState.Questions, 5)
	require.NotNil(t, result.QuizState.CurrentIndex)
	assert.Equal(t, 0, *result.QuizState.CurrentIndex)
	assert.Empty(t, result.QuizState.Scores)
}

func TestProcessTurn_MidQuizAnswerAdvances(t *testing.T) {
	llm := &fakeLLM{handler: promptRouter(map[string]string{
		"Evaluate the user's answer": "CORRECT: Exactly right.",
	})}
	e := newTestEngine(llm, nil, nil)

	state := &QuizState{
		Questions: []QuizQuestion{
			{Question: "Q1?", Type: QuestionShortAnswer, CorrectAnswer: "a1"},
			{Question: "Q2?", Type: QuestionShortAnswer, CorrectAnswer: "a2"},
			{Question: "Q3?", Type: QuestionShortAnswer, CorrectAnswer: "a3"},
		},
		CurrentIndex: intPtr(0),
		IsActive:     true,
	}

	result := e.ProcessTurn(context.Background(),
		[]Message{{Role: RoleUser, Content: "quiz me"}, {Role: RoleAssistant, Content: "**Question 1/3:** Q1?"}, {Role: RoleUser, Content: "a1"}},
		"conv-1", "Docker Containers", true, state)

	assert.Contains(t, result.Response, "CORRECT: Exactly right.")
	assert.Contains(t, result.Response, "---")
	assert.Contains(t, result.Response, "**Question 2/3:** Q2?")
	require.NotNil(t, result.QuizState)
	assert.True(t, result.QuizState.IsActive)
	require.NotNil(t, result.QuizState.CurrentIndex)
	assert.Equal(t, 1, *result.QuizState.CurrentIndex)
	require.Len(t, result.QuizState.Scores, 1)
	assert.True(t, result.QuizState.Scores[0].Correct)
	assert.Equal(t, "a1", result.QuizState.Scores[0].UserAnswer)
}

func TestProcessTurn_FinalAnswerCompletesQuiz(t *testing.T) {
	llm := &fakeLLM{handler: promptRouter(map[string]string{
		"Evaluate the user's answer": "INCORRECT: The correct answer is a2.",
	})}
	e := newTestEngine(llm, nil, nil)

	state := &QuizState{
		Questions: []QuizQuestion{
			{Question: "Q1?", Type: QuestionShortAnswer, CorrectAnswer: "a1"},
			{Question: "Q2?", Type: QuestionShortAnswer, CorrectAnswer: "a2"},
		},
		CurrentIndex: intPtr(1),
		Scores:       []QuizScore{{QuestionIndex: 0, Correct: true, UserAnswer: "a1"}},
		IsActive:     true,
	}

	result := e.ProcessTurn(context.Background(),
		[]Message{{Role: RoleUser, Content: "wrong guess"}},
		"conv-1", "Docker Containers", true, state)

	assert.Contains(t, result.Response, "Quiz Complete!")
	assert.Contains(t, result.Response, "Your score: 1/2")
	require.NotNil(t, result.QuizState)
	assert.False(t, result.QuizState.IsActive)
	assert.Nil(t, result.QuizState.CurrentIndex)
	require.Len(t, result.QuizState.Scores, 2)
	// Every asked question is retired, answered correctly or not.
	assert.Equal(t, []string{"Q1?", "Q2?"}, result.QuizState.UsedQuestions)
}

func TestProcessTurn_ScoreTiers(t *testing.T) {
	tests := []struct {
		correct int
		total   int
		want    string
	}{
		{correct: 5, total: 5, want: "Perfect score"},
		{correct: 4, total: 5, want: "Great job"},
		{correct: 3, total: 5, want: "Good effort"},
		{correct: 1, total: 5, want: "Keep practicing"},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d_of_%d", tt.correct, tt.total), func(t *testing.T) {
			// Prior scores plus the graded final answer must sum to tt.correct.
			verdict := "INCORRECT: no."
			priorCorrect := tt.correct
			if priorCorrect > 0 {
				priorCorrect--
				verdict = "CORRECT: yes."
			}

			llm := &fakeLLM{handler: promptRouter(map[string]string{
				"Evaluate the user's answer": verdict,
			})}
			e := newTestEngine(llm, nil, nil)

			var questions []QuizQuestion
			var scores []QuizScore
			for i := 0; i < tt.total; i++ {
				questions = append(questions, QuizQuestion{Question: fmt.Sprintf("Q%d?", i+1), Type: QuestionShortAnswer, CorrectAnswer: "a"})
			}
			for i := 0; i < tt.total-1; i++ {
				scores = append(scores, QuizScore{QuestionIndex: i, Correct: i < priorCorrect})
			}

			state := &QuizState{Questions: questions, CurrentIndex: intPtr(tt.total - 1), Scores: scores, IsActive: true}
			result := e.ProcessTurn(context.Background(),
				[]Message{{Role: RoleUser, Content: "final answer"}},
				"conv-1", "Docker Containers", true, state)

			assert.Contains(t, result.Response, fmt.Sprintf("Your score: %d/%d", tt.correct, tt.total))
			assert.Contains(t, result.Response, tt.want)
		})
	}
}

func TestProcessTurn_ExhaustedQuizStateSaysNoQuiz(t *testing.T) {
	e := newTestEngine(&fakeLLM{}, nil, nil)

	state := &QuizState{
		Questions:    []QuizQuestion{{Question: "Q1?", Type: QuestionShortAnswer, CorrectAnswer: "a1"}},
		CurrentIndex: intPtr(1),
		IsActive:     true,
	}

	result := e.ProcessTurn(context.Background(),
		[]Message{{Role: RoleUser, Content: "hello?"}},
		"conv-1", "Docker Containers", true, state)

	assert.Equal(t, noQuizMessage, result.Response)
}

func TestProcessTurn_QuizGenerationFailureApologizes(t *testing.T) {
	llm := &fakeLLM{err: errors.New("model unavailable")}
	e := newTestEngine(llm, nil, nil)

	result := e.ProcessTurn(context.Background(), sampleHistory(),
		"conv-1", "Docker Containers", true, nil)

	assert.Equal(t, apologyMessage, result.Response)
}

func TestProcessTurn_NeverEmptyWhenEverythingFails(t *testing.T) {
	llm := &fakeLLM{err: errors.New("everything is down")}
	docs := &fakeDocumentSearcher{err: errors.New("store down")}
	web := &fakeWebSearcher{err: errors.New("sidecar down")}
	e := newTestEngine(llm, docs, web)

	result := e.ProcessTurn(context.Background(),
		[]Message{{Role: RoleUser, Content: "Teach me Docker"}},
		"conv-1", "Docker Containers", false, nil)

	assert.Equal(t, apologyMessage, result.Response)
}

func TestProcessTurn_RecoversFromPanic(t *testing.T) {
	llm := &fakeLLM{handler: func([]Message) (string, error) {
		panic("model client bug")
	}}
	e := newTestEngine(llm, nil, nil)

	result := e.ProcessTurn(context.Background(),
		[]Message{{Role: RoleUser, Content: "Teach me Docker"}},
		"conv-1", "Docker Containers", false, nil)

	assert.Equal(t, apologyMessage, result.Response)
}
