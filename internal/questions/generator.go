// Package questions talks to the question generation provider and keeps the
// game playable without it: failed or offline requests are served from a
// built-in bank.
package questions

import (
	"context"
	"errors"
	"strings"

	"github.com/vovakirdan/tui-mathquest/internal/player"
)

var (
	// ErrQuotaExceeded signals that the provider refuses work until the quota resets.
	ErrQuotaExceeded = errors.New("questions: provider quota exceeded")
	// ErrOffline means no provider is configured.
	ErrOffline = errors.New("questions: no provider configured")
	// ErrNoContent means the provider answered with nothing usable.
	ErrNoContent = errors.New("questions: provider returned no usable content")
)

// IsQuota reports whether err is a quota signal, either typed or by message.
func IsQuota(err error) bool {
	if err == nil {
		return false
	}
	return errors.Is(err, ErrQuotaExceeded) || strings.Contains(strings.ToLower(err.Error()), "quota")
}

// Request asks for a batch of quiz questions.
type Request struct {
	Grade    int
	Level    int
	Topic    player.Topic
	History  []player.Question
	Mistakes []player.AnsweredQuestion
	Count    int
}

// Generator produces learning content. Implementations may block on the network.
type Generator interface {
	GenerateQuestions(ctx context.Context, req Request) ([]player.Question, error)
	GenerateEventChallenge(ctx context.Context, grade, level int) ([]player.Question, error)
	GenerateRiddle(ctx context.Context, grade int) (player.Question, error)
	GenerateSingleQuestion(ctx context.Context, idea string, grade int) (player.Question, error)
	Hint(ctx context.Context, question string, grade int) (string, error)
	TutorExplanation(ctx context.Context, answered player.AnsweredQuestion, grade int) (string, error)
	ParentalAnalysis(ctx context.Context, grade int, missed []player.AnsweredQuestion) (string, error)
}
