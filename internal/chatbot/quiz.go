package chatbot

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"math/rand"
	"regexp"
	"strings"
)

const quizQuestionCount = 5

// QuizEvaluation is the outcome of grading one answer.
type QuizEvaluation struct {
	IsCorrect bool
	Feedback  string
}

// QuizEngine generates question sets, renders question prompts and grades
// free-form answers.
type QuizEngine struct {
	llm LLMClient
}

func NewQuizEngine(llm LLMClient) *QuizEngine {
	return &QuizEngine{llm: llm}
}

var letterPrefixRe = regexp.MustCompile(`^[A-D]\.\s*`)

// GenerateQuestions asks the model for a fresh 5-question set grounded in the
// conversation so far, avoiding any text in usedQuestions. A malformed model
// response degrades to a single synthetic question rather than failing the
// turn; only a failed model call is an error.
func (q *QuizEngine) GenerateQuestions(ctx context.Context, messages []Message, topic string, usedQuestions []string) ([]QuizQuestion, error) {
	var history []string
	if len(messages) > 0 {
		for _, msg := range messages[:len(messages)-1] { // exclude the quiz trigger
			switch msg.Role {
			case RoleUser:
				history = append(history, "User: "+msg.Content)
			case RoleAssistant:
				history = append(history, "Assistant: "+truncate(msg.Content, 200))
			}
		}
	}

	avoid := "None"
	if len(usedQuestions) > 0 {
		avoid = "- " + strings.Join(usedQuestions, "\n- ")
	}

	resp, err := q.llm.Invoke(ctx, []Message{
		{Role: RoleSystem, Content: quizGenerationPrompt + avoid},
		{Role: RoleUser, Content: fmt.Sprintf("Topic: %s\n\nConversation History:\n%s\n\nGenerate 5 NEW and DIFFERENT quiz questions as JSON:", topic, strings.Join(history, "\n"))},
	})
	if err != nil {
		return nil, fmt.Errorf("quiz generation call: %w", err)
	}

	questions, err := q.parseQuestions(resp, topic)
	if err != nil {
		log.Printf("quiz parsing failed, using fallback question: %v", err)
		return q.fallbackQuestions(topic), nil
	}
	return questions, nil
}

// parseQuestions turns a model response into validated questions. The model
// output is treated as hostile: fences are stripped, the array is located
// inside any surrounding prose, and option lists are cleaned and shuffled.
func (q *QuizEngine) parseQuestions(raw, topic string) ([]QuizQuestion, error) {
	jsonStr := extractJSONArray(raw)
	if jsonStr == "" {
		return nil, fmt.Errorf("no JSON array in response")
	}

	var parsed []struct {
		Question      string   `json:"question"`
		Type          string   `json:"type"`
		Options       []string `json:"options"`
		CorrectAnswer string   `json:"correct_answer"`
		Answer        string   `json:"answer"` // alias some models emit
		Explanation   string   `json:"explanation"`
	}
	if err := json.Unmarshal([]byte(jsonStr), &parsed); err != nil {
		return nil, fmt.Errorf("unmarshal quiz array: %w", err)
	}
	if len(parsed) == 0 {
		return nil, fmt.Errorf("empty question array")
	}
	if len(parsed) > quizQuestionCount {
		parsed = parsed[:quizQuestionCount]
	}

	questions := make([]QuizQuestion, 0, len(parsed))
	for i, p := range parsed {
		if p.Question == "" {
			return nil, fmt.Errorf("question %d missing 'question' field", i+1)
		}
		correct := p.CorrectAnswer
		if correct == "" {
			correct = p.Answer
		}
		if correct == "" {
			return nil, fmt.Errorf("question %d missing answer field", i+1)
		}

		question := QuizQuestion{
			Question:      p.Question,
			Type:          p.Type,
			Options:       p.Options,
			CorrectAnswer: correct,
			Explanation:   p.Explanation,
		}
		if question.Type == "" {
			if len(question.Options) > 0 {
				question.Type = QuestionMultipleChoice
			} else {
				question.Type = QuestionShortAnswer
			}
		}
		if question.Type == QuestionMultipleChoice && len(question.Options) > 0 {
			q.shuffleOptions(&question, i+1)
		}
		if question.Explanation == "" {
			question.Explanation = fmt.Sprintf("This question tests your understanding of the concepts discussed about %s.", topic)
		}
		questions = append(questions, question)
	}
	return questions, nil
}

// shuffleOptions cleans letter prefixes, shuffles the choices and recomputes
// the correct letter. Models left to their own devices put the right answer
// in the same slot across questions, which makes the quiz guessable.
func (q *QuizEngine) shuffleOptions(question *QuizQuestion, number int) {
	correctText := question.CorrectAnswer

	options := make([]string, len(question.Options))
	for i, opt := range question.Options {
		options[i] = letterPrefixRe.ReplaceAllString(strings.TrimSpace(opt), "")
	}

	rand.Shuffle(len(options), func(i, j int) {
		options[i], options[j] = options[j], options[i]
	})

	question.Options = options
	question.CorrectAnswer = ""
	for i, opt := range options {
		if optionMatchesAnswer(opt, correctText) {
			question.CorrectAnswer = string(rune('A' + i))
			break
		}
	}
	if question.CorrectAnswer == "" {
		// Silent-correctness risk inherited from the product decision to
		// never fail a whole generation over one bad option list.
		log.Printf("question %d: no option matches correct answer %q after shuffle, defaulting to A", number, correctText)
		question.CorrectAnswer = "A"
	}
}

func optionMatchesAnswer(option, answer string) bool {
	o := strings.ToLower(strings.TrimSpace(option))
	a := strings.ToLower(strings.TrimSpace(answer))
	return o == a || strings.Contains(o, a) || strings.Contains(a, o)
}

func (q *QuizEngine) fallbackQuestions(topic string) []QuizQuestion {
	return []QuizQuestion{{
		Question:      fmt.Sprintf("Based on our discussion about %s, what is the main benefit of this technology?", topic),
		Type:          QuestionShortAnswer,
		CorrectAnswer: "Various benefits including efficiency, automation, and scalability",
		Explanation:   "This technology provides multiple advantages in modern development and operations.",
	}}
}

// FormatQuestion renders a question prompt for display.
func (q *QuizEngine) FormatQuestion(question QuizQuestion, number, total int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "**Question %d/%d:** %s\n\n", number, total, question.Question)

	switch question.Type {
	case QuestionMultipleChoice:
		for i, opt := range question.Options {
			fmt.Fprintf(&b, "%c. %s\n", 'A'+i, opt)
		}
		b.WriteString("\n*Please enter your answer (A, B, C, or D)*")
	case QuestionTrueFalse:
		b.WriteString("*Please answer True or False*")
	default:
		b.WriteString("*Please provide a brief answer*")
	}
	return b.String()
}

// ProcessAnswer grades one answer. The model receives the canonical answer
// and is asked to judge leniently; its verdict is carried in a mandatory
// CORRECT:/INCORRECT: prefix.
func (q *QuizEngine) ProcessAnswer(ctx context.Context, question QuizQuestion, userAnswer string) (QuizEvaluation, error) {
	questionContext := question.Question
	if question.Type == QuestionMultipleChoice && len(question.Options) > 0 {
		var opts []string
		for i, opt := range question.Options {
			opts = append(opts, fmt.Sprintf("%c. %s", 'A'+i, opt))
		}
		questionContext = fmt.Sprintf("%s\n\nOptions:\n%s", question.Question, strings.Join(opts, "\n"))
	}

	resp, err := q.llm.Invoke(ctx, []Message{
		{Role: RoleSystem, Content: answerEvaluationPrompt},
		{Role: RoleUser, Content: fmt.Sprintf("Question: %s\nQuestion Type: %s\nCorrect Answer: %s\nUser Answer: %s",
			questionContext, question.Type, question.CorrectAnswer, userAnswer)},
	})
	if err != nil {
		return QuizEvaluation{}, fmt.Errorf("answer evaluation call: %w", err)
	}

	feedback := strings.TrimSpace(resp)
	return QuizEvaluation{
		IsCorrect: strings.HasPrefix(strings.ToUpper(feedback), "CORRECT:"),
		Feedback:  feedback,
	}, nil
}

// extractJSONArray recovers the `[...]` payload from a model response that
// may wrap it in code fences or prose.
func extractJSONArray(raw string) string {
	s := strings.TrimSpace(raw)

	s = strings.ReplaceAll(s, "```json", "")
	s = strings.ReplaceAll(s, "```JSON", "")
	s = strings.ReplaceAll(s, "```", "")
	s = strings.TrimSpace(s)

	start := strings.Index(s, "[")
	if start == -1 {
		return ""
	}
	end := findMatchingBracket(s, start)
	if end == -1 {
		return ""
	}
	return s[start : end+1]
}

// findMatchingBracket walks the string from an opening bracket to its
// balancing close, honoring JSON string and escape rules.
func findMatchingBracket(s string, start int) int {
	depth := 0
	inString := false
	escaped := false

	for i := start; i < len(s); i++ {
		c := s[i]

		if escaped {
			escaped = false
			continue
		}
		if c == '\\' && inString {
			escaped = true
			continue
		}
		if c == '"' {
			inString = !inString
			continue
		}
		if inString {
			continue
		}

		switch c {
		case '[':
			depth++
		case ']':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}
