package player

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// Topic identifies a question subject area.
type Topic string

const (
	TopicGeneral                Topic = "general"
	TopicAdditionSubtraction    Topic = "addition_subtraction"
	TopicMultiplicationDivision Topic = "multiplication_division"
	TopicComparison             Topic = "comparison"
	TopicWordProblems           Topic = "word_problems"
	TopicGeometry               Topic = "geometry"
	TopicMeasurement            Topic = "measurement"
	TopicLogic                  Topic = "logic"
	TopicFractions              Topic = "fractions"
)

// QuestionType is the answer format of a question.
type QuestionType string

const (
	MultipleChoice QuestionType = "multiple_choice"
	FillInTheBlank QuestionType = "fill_in_the_blank"
	TrueFalse      QuestionType = "true_false"
)

// ErrInvalidQuestion is returned by Validate for malformed questions.
var ErrInvalidQuestion = errors.New("invalid question")

// Question is the wire shape shared with the question provider and the save file.
type Question struct {
	Question    string       `json:"question"`
	Type        QuestionType `json:"type"`
	Options     []string     `json:"options"`
	Answer      string       `json:"answer"`
	Explanation string       `json:"explanation"`
}

// Validate checks structural invariants. Choice questions must list their answer among the options.
func (q Question) Validate() error {
	if strings.TrimSpace(q.Question) == "" {
		return fmt.Errorf("%w: empty prompt", ErrInvalidQuestion)
	}
	if strings.TrimSpace(q.Answer) == "" {
		return fmt.Errorf("%w: empty answer", ErrInvalidQuestion)
	}
	switch q.Type {
	case MultipleChoice, TrueFalse:
		if len(q.Options) < 2 {
			return fmt.Errorf("%w: %s needs at least two options", ErrInvalidQuestion, q.Type)
		}
		if !slices.Contains(q.Options, q.Answer) {
			return fmt.Errorf("%w: answer %q not among options", ErrInvalidQuestion, q.Answer)
		}
	case FillInTheBlank:
		if len(q.Options) != 0 {
			return fmt.Errorf("%w: fill-in question carries options", ErrInvalidQuestion)
		}
	default:
		return fmt.Errorf("%w: unknown type %q", ErrInvalidQuestion, q.Type)
	}
	return nil
}

// Clone returns a copy with its own options slice.
func (q Question) Clone() Question {
	q.Options = slices.Clone(q.Options)
	return q
}

// AnsweredQuestion records a miss for tutoring and parent analysis.
type AnsweredQuestion struct {
	Question    Question `json:"question"`
	UserAnswer  string   `json:"user_answer"`
	Explanation string   `json:"explanation"`
}

// QuizResult summarizes a finished quiz.
type QuizResult struct {
	Score          int   `json:"score"`
	TotalQuestions int   `json:"total_questions"`
	CorrectAnswers int   `json:"correct_answers"`
	Topic          Topic `json:"topic,omitempty"`
}

// Perfect reports whether every question was answered correctly.
func (r QuizResult) Perfect() bool {
	return r.TotalQuestions > 0 && r.CorrectAnswers == r.TotalQuestions
}
