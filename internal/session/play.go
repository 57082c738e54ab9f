package session

import (
	"context"
	"errors"
	"slices"
	"time"

	"github.com/vovakirdan/tui-mathquest/internal/catalog"
	"github.com/vovakirdan/tui-mathquest/internal/core"
	"github.com/vovakirdan/tui-mathquest/internal/player"
	"github.com/vovakirdan/tui-mathquest/internal/progression"
	"github.com/vovakirdan/tui-mathquest/internal/questions"
	"github.com/vovakirdan/tui-mathquest/internal/quiz"
)

// ReviewSummary is what the Review screen shows.
type ReviewSummary struct {
	Result   player.QuizResult
	Outcome  progression.QuizOutcome
	Missed   []player.AnsweredQuestion
	TimedOut bool

	Event        progression.EventKind
	EventLevel   int
	EventCorrect int
	EventBonus   int
	EventBadges  []catalog.Badge
}

// Score is the review's headline score: quiz points plus the event bonus.
func (r ReviewSummary) Score() int {
	return r.Result.Score + r.EventBonus
}

type eventState struct {
	kind   progression.EventKind
	level  int
	round  *quiz.Round
	riddle player.Question
}

// Round returns the running quiz round, or nil.
func (o *Orchestrator) Round() *quiz.Round { return o.round }

// Hint returns the hint shown for the current question.
func (o *Orchestrator) Hint() string { return o.hint }

// Review returns the last finished quiz.
func (o *Orchestrator) Review() ReviewSummary { return o.review }

// LightningRound returns the running lightning round, or nil.
func (o *Orchestrator) LightningRound() *quiz.Round {
	if o.event == nil || o.event.kind != progression.EventLightning {
		return nil
	}
	return o.event.round
}

// Riddle returns the riddle being asked.
func (o *Orchestrator) Riddle() (player.Question, bool) {
	if o.event == nil || o.event.kind != progression.EventRiddle {
		return player.Question{}, false
	}
	return o.event.riddle, true
}

// StartQuiz begins a quiz on topic. A full quiz in the cache is served at
// once; otherwise a fetch job is returned and the quiz starts when it
// completes. A partial cache stays stocked until then.
func (o *Orchestrator) StartQuiz(topic player.Topic) (*Job, error) {
	if err := o.ready(); err != nil {
		return nil, err
	}

	st := o.keeper.State()
	need := o.rules.Quiz.QuestionsFor(st.Identity.Grade)
	if progression.CachedCount(st, topic) >= need {
		var cached []player.Question
		if _, err := o.update(func(s player.State) (player.State, error) {
			next, qs := o.engine.TakeCachedQuestions(s, topic, need)
			cached = qs
			return next, nil
		}); err != nil {
			return nil, err
		}
		o.logger.Debug("quiz served from cache", "topic", topic, "questions", len(cached))
		o.beginRound(topic, cached)
		return nil, nil
	}

	req := questions.Request{
		Grade:    st.Identity.Grade,
		Level:    st.Progression.Level,
		Topic:    topic,
		History:  st.History.Served,
		Mistakes: st.History.Missed,
		Count:    max(need, o.rules.Quiz.FetchBatch),
	}
	svc := o.questions
	return o.start("questions", func(ctx context.Context) Completion {
		return questionsLoaded{topic: topic, need: need, batch: svc.Questions(ctx, req)}
	}), nil
}

// apply takes the stocked questions, tops them up from the batch and stocks
// the surplus in one commit.
func (c questionsLoaded) apply(o *Orchestrator) error {
	o.noteQuota(c.batch.Quota)

	var qs []player.Question
	_, err := o.update(func(s player.State) (player.State, error) {
		next, cached := o.engine.TakeCachedQuestions(s, c.topic, c.need)
		qs = append(slices.Clone(cached), c.batch.Questions...)
		if len(qs) > c.need {
			extra := qs[c.need:]
			qs = qs[:c.need:c.need]
			if !c.batch.Fallback {
				// Offline bank questions are never cached.
				next = o.engine.StockQuestions(next, c.topic, extra)
			}
		}
		if len(cached) == 0 && len(next.QuestionCache[c.topic]) == len(s.QuestionCache[c.topic]) {
			return s, errUnchanged
		}
		return next, nil
	})
	if err != nil {
		return err
	}
	o.beginRound(c.topic, qs)
	return nil
}

func (o *Orchestrator) beginRound(topic player.Topic, qs []player.Question) {
	o.round = quiz.NewRound(topic, qs, o.rules.Quiz)
	o.hint = ""
	o.logger.Info("quiz started", "topic", topic, "questions", len(qs))
	o.route(Playing{})
}

func (o *Orchestrator) playing() (*quiz.Round, error) {
	if _, ok := o.nav.current.(Playing); !ok || o.round == nil {
		return nil, ErrNoRound
	}
	return o.round, nil
}

// Answer checks an answer to the current quiz question.
func (o *Orchestrator) Answer(text string) (quiz.Feedback, error) {
	r, err := o.playing()
	if err != nil {
		return quiz.Feedback{}, err
	}
	fb, err := r.Answer(text)
	if err != nil {
		return quiz.Feedback{}, err
	}
	o.raise(fb.Cue)
	return fb, nil
}

// NextQuestion moves past an answered question. After the last question the
// quiz is credited; a job is returned when a level-up event needs content.
func (o *Orchestrator) NextQuestion() (*Job, error) {
	r, err := o.playing()
	if err != nil {
		return nil, err
	}
	if err := r.Next(); err != nil {
		return nil, err
	}
	o.hint = ""
	if r.Done() {
		return o.finishQuiz()
	}
	return nil, nil
}

// Tick advances the clock of the timed round on screen.
func (o *Orchestrator) Tick(d time.Duration) (*Job, error) {
	if o.pending > 0 {
		return nil, nil
	}
	switch o.nav.current.(type) {
	case Playing:
		if o.round != nil && o.round.Tick(d) {
			return o.finishQuiz()
		}
	case LightningRound:
		if r := o.LightningRound(); r != nil && r.Tick(d) {
			o.resolveEvent(o.engine.LightningBonus(r.Correct()), r.Correct())
		}
	}
	return nil, nil
}

// UsePowerUp spends one power-up on the current question.
func (o *Orchestrator) UsePowerUp(kind player.PowerUp) (*Job, error) {
	if o.pending > 0 {
		return nil, ErrBusy
	}
	r, err := o.playing()
	if err != nil {
		return nil, err
	}
	q, ok := r.Current()
	if !ok {
		return nil, quiz.ErrRoundOver
	}
	if kind != player.PowerUpTimeBoost && r.Answered() {
		return nil, quiz.ErrAlreadyAnswered
	}
	if kind == player.PowerUpHint {
		if err := o.requireAI(); err != nil {
			return nil, err
		}
		if o.hint != "" {
			return nil, ErrHintShown
		}
	}

	st, err := o.keeper.Update(func(s player.State) (player.State, error) {
		return o.engine.ConsumePowerUp(s, kind)
	})
	if err != nil {
		return nil, err
	}

	switch kind {
	case player.PowerUpTimeBoost:
		return nil, r.AddTime(o.rules.Quiz.TimeBoost())
	case player.PowerUpSkip:
		if err := r.Skip(); err != nil {
			return nil, err
		}
		o.hint = ""
		if r.Done() {
			return o.finishQuiz()
		}
		return nil, nil
	default:
		svc, grade := o.questions, st.Identity.Grade
		return o.start("hint", func(ctx context.Context) Completion {
			text, err := svc.Hint(ctx, q.Question, grade)
			return hintLoaded{text: text, err: err}
		}), nil
	}
}

func (c hintLoaded) apply(o *Orchestrator) error {
	o.noteQuota(errors.Is(c.err, questions.ErrQuotaExceeded))
	if c.err != nil {
		o.hint = questions.FallbackHint
		return nil
	}
	o.hint = c.text
	return nil
}

// finishQuiz credits the round in one committed step and routes to the
// level-up event, if one is due, or to Review.
func (o *Orchestrator) finishQuiz() (*Job, error) {
	r := o.round
	o.round, o.hint = nil, ""

	result := r.Result()
	var outcome progression.QuizOutcome
	st, err := o.keeper.Update(func(s player.State) (player.State, error) {
		next, out := o.engine.ApplyQuizResult(s, result, r.Missed(), r.Served())
		outcome = out
		return next, nil
	})
	if err != nil {
		return nil, err
	}
	o.keeper.LogQuiz(result)
	o.review = ReviewSummary{Result: result, Outcome: outcome, Missed: r.Missed(), TimedOut: r.TimedOut()}
	o.raise(outcome.Cue)
	o.logger.Info("quiz finished", "topic", result.Topic, "score", result.Score,
		"correct", result.CorrectAnswers, "total", result.TotalQuestions, "level", outcome.NewLevel)

	if !outcome.LeveledUp {
		o.route(Review{})
		return nil, nil
	}

	level, grade := outcome.NewLevel, st.Identity.Grade
	svc := o.questions
	switch o.engine.PendingEvent(st, level) {
	case progression.EventLightning:
		return o.start("lightning", func(ctx context.Context) Completion {
			return lightningLoaded{level: level, batch: svc.EventChallenge(ctx, grade, level)}
		}), nil
	case progression.EventRiddle:
		if err := o.requireAI(); err != nil {
			o.logger.Debug("riddle skipped", "level", level, "error", err)
			o.route(Review{})
			return nil, nil
		}
		return o.start("riddle", func(ctx context.Context) Completion {
			q, err := svc.Riddle(ctx, grade)
			return riddleLoaded{level: level, question: q, err: err}
		}), nil
	default:
		o.route(Review{})
		return nil, nil
	}
}

func (c lightningLoaded) apply(o *Orchestrator) error {
	o.noteQuota(c.batch.Quota)
	o.event = &eventState{
		kind:  progression.EventLightning,
		level: c.level,
		round: quiz.NewLightningRound(c.batch.Questions, o.rules.Events.LightningLimit()),
	}
	o.route(LightningRound{Level: c.level})
	return nil
}

func (c riddleLoaded) apply(o *Orchestrator) error {
	if c.err != nil {
		o.noteQuota(errors.Is(c.err, questions.ErrQuotaExceeded))
		o.logger.Warn("riddle unavailable, skipping to review", "level", c.level, "error", c.err)
		o.route(Review{})
		return nil
	}
	o.event = &eventState{kind: progression.EventRiddle, level: c.level, riddle: c.question}
	o.route(RiddleChallenge{Level: c.level})
	return nil
}

// AnswerLightning answers the current lightning question. The round resolves
// once the last question is answered or the clock runs out.
func (o *Orchestrator) AnswerLightning(text string) (quiz.Feedback, error) {
	r := o.LightningRound()
	if _, ok := o.nav.current.(LightningRound); !ok || r == nil {
		return quiz.Feedback{}, ErrNoRound
	}
	fb, err := r.Answer(text)
	if err != nil {
		return quiz.Feedback{}, err
	}
	o.raise(fb.Cue)
	if r.Done() {
		o.resolveEvent(o.engine.LightningBonus(r.Correct()), r.Correct())
	}
	return fb, nil
}

// AnswerRiddle checks the riddle answer and resolves the event.
func (o *Orchestrator) AnswerRiddle(text string) (quiz.Feedback, error) {
	q, ok := o.Riddle()
	if _, on := o.nav.current.(RiddleChallenge); !on || !ok {
		return quiz.Feedback{}, ErrNoRound
	}
	fb := quiz.Feedback{Answer: q.Answer, Explanation: q.Explanation, Cue: core.CueIncorrect}
	correct := 0
	if quiz.Match(text, q.Answer) {
		fb.Correct, fb.Cue, correct = true, core.CueCorrect, 1
	}
	o.raise(fb.Cue)
	o.resolveEvent(o.engine.RiddleBonus(fb.Correct), correct)
	return fb, nil
}

// LeaveEvent gives up on the running event. A lightning round pays for the
// answers given so far; an abandoned riddle pays nothing.
func (o *Orchestrator) LeaveEvent() bool {
	if o.event == nil || o.pending > 0 {
		return false
	}
	switch o.event.kind {
	case progression.EventLightning:
		r := o.event.round
		r.Finish()
		o.resolveEvent(o.engine.LightningBonus(r.Correct()), r.Correct())
	default:
		o.resolveEvent(0, 0)
	}
	return true
}

// resolveEvent pays the event bonus, marks the level resolved and enters Review.
func (o *Orchestrator) resolveEvent(bonus, correct int) {
	ev := o.event
	o.event = nil

	var eo progression.EventOutcome
	_, err := o.update(func(s player.State) (player.State, error) {
		next, out := o.engine.ApplyEventBonus(s, bonus, ev.level)
		eo = out
		if !out.Applied {
			return s, errUnchanged
		}
		return next, nil
	})
	if err != nil {
		o.logger.Error("could not apply event bonus", "level", ev.level, "error", err)
	}

	o.review.Event = ev.kind
	o.review.EventLevel = ev.level
	o.review.EventCorrect = correct
	o.review.EventBonus = eo.Bonus
	o.review.EventBadges = eo.Badges
	if len(eo.Badges) > 0 {
		o.raise(core.CueAchievement)
	}
	o.logger.Info("event resolved", "event", ev.kind, "level", ev.level, "bonus", eo.Bonus)
	o.route(Review{})
}
