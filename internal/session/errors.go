package session

import (
	"errors"

	"github.com/vovakirdan/tui-mathquest/internal/progression"
	"github.com/vovakirdan/tui-mathquest/internal/questions"
	"github.com/vovakirdan/tui-mathquest/internal/quiz"
)

var (
	// ErrBusy rejects input while a job or transition is in flight.
	ErrBusy = errors.New("session: busy")
	// ErrWrongScreen rejects an action the current screen does not offer.
	ErrWrongScreen = errors.New("session: not available on this screen")
	// ErrNoRound rejects answers when no question is being asked.
	ErrNoRound = errors.New("session: no question in play")
	// ErrHintShown rejects a second hint for the same question.
	ErrHintShown = errors.New("session: hint already shown")
)

// Message returns the text shown to the player for err.
func Message(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrBusy):
		return "One moment, still working..."
	case errors.Is(err, ErrHintShown):
		return "The hint is already on screen."
	case errors.Is(err, ErrWrongScreen), errors.Is(err, ErrNoRound):
		return "That does not work here."
	case errors.Is(err, quiz.ErrAlreadyAnswered):
		return "You already answered. Press enter to continue."
	case errors.Is(err, quiz.ErrNotAnswered):
		return "Answer the question first."
	case errors.Is(err, quiz.ErrRoundOver):
		return "This round is over."
	case errors.Is(err, questions.ErrQuotaExceeded):
		return "The AI helpers are resting for a while. Try again later!"
	case errors.Is(err, questions.ErrOffline):
		return "AI helpers need an API key. Set MATHQUEST_API_KEY to enable them."
	case errors.Is(err, questions.ErrNoContent):
		return "Could not make a question from that. Try another idea!"
	default:
		return progression.Message(err)
	}
}
