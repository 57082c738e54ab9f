package quiz

import (
	"errors"
	"time"

	"github.com/vovakirdan/tui-mathquest/internal/config"
	"github.com/vovakirdan/tui-mathquest/internal/core"
	"github.com/vovakirdan/tui-mathquest/internal/player"
)

var (
	// ErrRoundOver is returned for input after the last question or after the clock ran out.
	ErrRoundOver = errors.New("quiz: round is over")
	// ErrAlreadyAnswered is returned when the current question already has an answer.
	ErrAlreadyAnswered = errors.New("quiz: question already answered")
	// ErrNotAnswered is returned by Next before the current question is answered.
	ErrNotAnswered = errors.New("quiz: question not answered yet")
)

// Mode selects the scoring rules of a round.
type Mode int

const (
	// ModeQuiz scores points with a combo bonus and waits for Next after each answer.
	ModeQuiz Mode = iota
	// ModeLightning only counts correct answers and moves on immediately.
	ModeLightning
)

// Feedback describes the outcome of one answer.
type Feedback struct {
	Correct     bool
	Points      int
	Combo       int
	Answer      string
	Explanation string
	Cue         core.Cue
}

// Round is a single pass over a fixed list of questions.
type Round struct {
	mode      Mode
	topic     player.Topic
	questions []player.Question
	points    int
	bonus     int

	index     int
	answered  bool
	score     int
	correct   int
	combo     int
	remaining time.Duration
	timedOut  bool
	missed    []player.AnsweredQuestion
}

// NewRound creates a scored quiz round over qs.
func NewRound(topic player.Topic, qs []player.Question, rules config.QuizRules) *Round {
	return &Round{
		mode:      ModeQuiz,
		topic:     topic,
		questions: qs,
		points:    rules.PointsPerCorrect,
		bonus:     rules.ComboBonus,
		remaining: rules.TimeLimit(),
	}
}

// NewLightningRound creates a timed round that only counts correct answers.
func NewLightningRound(qs []player.Question, limit time.Duration) *Round {
	return &Round{
		mode:      ModeLightning,
		questions: qs,
		remaining: limit,
	}
}

// Mode returns the round's scoring mode.
func (r *Round) Mode() Mode { return r.mode }

// Topic returns the round's topic.
func (r *Round) Topic() player.Topic { return r.topic }

// Current returns the question being asked.
func (r *Round) Current() (player.Question, bool) {
	if r.Done() {
		return player.Question{}, false
	}
	return r.questions[r.index], true
}

// Position returns the 1-based index of the current question and the total.
func (r *Round) Position() (int, int) {
	return min(r.index+1, len(r.questions)), len(r.questions)
}

// Answered reports whether the current question has been answered.
func (r *Round) Answered() bool { return r.answered }

// Score returns the points earned so far.
func (r *Round) Score() int { return r.score }

// Correct returns the number of correct answers so far.
func (r *Round) Correct() int { return r.correct }

// Combo returns the current run of correct answers.
func (r *Round) Combo() int { return r.combo }

// Remaining returns the time left on the clock.
func (r *Round) Remaining() time.Duration { return max(0, r.remaining) }

// TimedOut reports whether the round ended because the clock ran out.
func (r *Round) TimedOut() bool { return r.timedOut }

// Done reports whether the round has ended.
func (r *Round) Done() bool {
	return r.timedOut || r.index >= len(r.questions)
}

// Answer checks text against the current question. In quiz mode the round
// waits on the answer until Next; in lightning mode it advances at once.
func (r *Round) Answer(text string) (Feedback, error) {
	q, ok := r.Current()
	if !ok {
		return Feedback{}, ErrRoundOver
	}
	if r.answered {
		return Feedback{}, ErrAlreadyAnswered
	}

	fb := Feedback{Answer: q.Answer, Explanation: q.Explanation}
	if Match(text, q.Answer) {
		fb.Correct = true
		fb.Cue = core.CueCorrect
		r.correct++
		if r.mode == ModeQuiz {
			fb.Points = r.points + r.combo*r.bonus
			r.score += fb.Points
		}
		r.combo++
	} else {
		fb.Cue = core.CueIncorrect
		r.combo = 0
		r.missed = append(r.missed, player.AnsweredQuestion{
			Question:    q.Clone(),
			UserAnswer:  text,
			Explanation: q.Explanation,
		})
	}
	fb.Combo = r.combo

	if r.mode == ModeLightning {
		r.index++
		return fb, nil
	}
	r.answered = true
	return fb, nil
}

// Next moves past an answered question.
func (r *Round) Next() error {
	if r.Done() {
		return ErrRoundOver
	}
	if !r.answered {
		return ErrNotAnswered
	}
	r.answered = false
	r.index++
	return nil
}

// Skip moves past the current question without counting it as missed.
// The caller spends the skip power-up first.
func (r *Round) Skip() error {
	if r.Done() {
		return ErrRoundOver
	}
	if r.answered {
		return ErrAlreadyAnswered
	}
	r.index++
	return nil
}

// AddTime extends the clock. The caller spends the time boost first.
func (r *Round) AddTime(d time.Duration) error {
	if r.Done() {
		return ErrRoundOver
	}
	r.remaining += d
	return nil
}

// Tick advances the clock by d and reports whether the round is over.
func (r *Round) Tick(d time.Duration) bool {
	if r.Done() {
		return true
	}
	r.remaining -= d
	if r.remaining <= 0 {
		r.remaining = 0
		r.timedOut = true
	}
	return r.Done()
}

// Finish ends the round early, e.g. when the player leaves.
func (r *Round) Finish() {
	r.index = len(r.questions)
	r.answered = false
}

// Result summarizes the round. Total counts every question in the round,
// so skipped or unreached questions rule out a perfect score.
func (r *Round) Result() player.QuizResult {
	return player.QuizResult{
		Score:          r.score,
		TotalQuestions: len(r.questions),
		CorrectAnswers: r.correct,
		Topic:          r.topic,
	}
}

// Missed returns the wrongly answered questions in order.
func (r *Round) Missed() []player.AnsweredQuestion {
	return r.missed
}

// Served returns the questions the player reached.
func (r *Round) Served() []player.Question {
	n := min(r.index, len(r.questions))
	if r.answered && n < len(r.questions) {
		n++
	}
	out := make([]player.Question, n)
	for i := range n {
		out[i] = r.questions[i].Clone()
	}
	return out
}
