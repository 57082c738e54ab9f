package session

import (
	"context"
	"errors"

	"github.com/vovakirdan/tui-mathquest/internal/core"
	"github.com/vovakirdan/tui-mathquest/internal/player"
	"github.com/vovakirdan/tui-mathquest/internal/questions"
	"github.com/vovakirdan/tui-mathquest/internal/quiz"
	"github.com/vovakirdan/tui-mathquest/internal/storage"
)

// recentQuizLimit bounds the quiz history on the parent dashboard.
const recentQuizLimit = 10

// CreativeQuestion is the question made from the player's idea.
type CreativeQuestion struct {
	Idea     string
	Question player.Question
	Feedback *quiz.Feedback
}

// Creative returns the creative mode question, if one was made.
func (o *Orchestrator) Creative() (CreativeQuestion, bool) {
	if o.creative == nil {
		return CreativeQuestion{}, false
	}
	return *o.creative, true
}

// Analysis returns the parent analysis text.
func (o *Orchestrator) Analysis() string { return o.analysis }

// Explanation returns the last tutor explanation.
func (o *Orchestrator) Explanation() string { return o.explanation }

// SubmitIdea asks for a word problem built on idea.
func (o *Orchestrator) SubmitIdea(idea string) (*Job, error) {
	if err := o.ready(); err != nil {
		return nil, err
	}
	if _, ok := o.nav.current.(CreativeMode); !ok {
		return nil, ErrWrongScreen
	}
	if err := o.requireAI(); err != nil {
		return nil, err
	}
	svc, grade := o.questions, o.keeper.State().Identity.Grade
	return o.start("creative", func(ctx context.Context) Completion {
		q, err := svc.SingleQuestion(ctx, idea, grade)
		return creativeLoaded{idea: idea, question: q, err: err}
	}), nil
}

func (c creativeLoaded) apply(o *Orchestrator) error {
	if c.err != nil {
		o.noteQuota(errors.Is(c.err, questions.ErrQuotaExceeded))
		return c.err
	}
	_, err := o.update(func(s player.State) (player.State, error) {
		next, awarded := o.engine.RecordCreativeUse(s)
		if len(awarded) > 0 {
			o.raise(core.CueAchievement)
		}
		return next, nil
	})
	if err != nil {
		return err
	}
	o.creative = &CreativeQuestion{Idea: c.idea, Question: c.question}
	return nil
}

// AnswerCreative checks the answer to the creative mode question. It earns
// no points.
func (o *Orchestrator) AnswerCreative(text string) (quiz.Feedback, error) {
	if o.creative == nil {
		return quiz.Feedback{}, ErrNoRound
	}
	if o.creative.Feedback != nil {
		return quiz.Feedback{}, quiz.ErrAlreadyAnswered
	}
	q := o.creative.Question
	fb := quiz.Feedback{Answer: q.Answer, Explanation: q.Explanation, Cue: core.CueIncorrect}
	if quiz.Match(text, q.Answer) {
		fb.Correct, fb.Cue = true, core.CueCorrect
	}
	o.creative.Feedback = &fb
	o.raise(fb.Cue)
	return fb, nil
}

// Explain asks the tutor to walk through a missed question.
func (o *Orchestrator) Explain(missed player.AnsweredQuestion) (*Job, error) {
	if err := o.ready(); err != nil {
		return nil, err
	}
	if err := o.requireAI(); err != nil {
		return nil, err
	}
	svc, grade := o.questions, o.keeper.State().Identity.Grade
	return o.start("tutor", func(ctx context.Context) Completion {
		text, err := svc.TutorExplanation(ctx, missed, grade)
		return explanationLoaded{text: text, err: err}
	}), nil
}

func (c explanationLoaded) apply(o *Orchestrator) error {
	if c.err != nil {
		o.noteQuota(errors.Is(c.err, questions.ErrQuotaExceeded))
		return c.err
	}
	o.explanation = c.text
	return nil
}

// RequestAnalysis asks for a parent summary of the missed question history.
// An empty history is answered without the provider.
func (o *Orchestrator) RequestAnalysis() (*Job, error) {
	if err := o.ready(); err != nil {
		return nil, err
	}
	if _, ok := o.nav.current.(ParentDashboard); !ok {
		return nil, ErrWrongScreen
	}
	st := o.keeper.State()
	if len(st.History.Missed) > 0 {
		if err := o.requireAI(); err != nil {
			return nil, err
		}
	}
	svc, grade, missed := o.questions, st.Identity.Grade, st.History.Missed
	return o.start("analysis", func(ctx context.Context) Completion {
		text, err := svc.ParentalAnalysis(ctx, grade, missed)
		return analysisLoaded{text: text, err: err}
	}), nil
}

func (c analysisLoaded) apply(o *Orchestrator) error {
	if c.err != nil {
		o.noteQuota(errors.Is(c.err, questions.ErrQuotaExceeded))
		return c.err
	}
	o.analysis = c.text
	return nil
}

// QuizHistory returns quiz log totals and the most recent quizzes.
// Without a quiz log both are empty.
func (o *Orchestrator) QuizHistory() (storage.QuizStats, []storage.QuizEntry, error) {
	if o.stats == nil {
		return storage.QuizStats{}, nil, nil
	}
	stats, err := o.stats.QuizStats(o.keeper.Key())
	if err != nil {
		return storage.QuizStats{}, nil, err
	}
	recent, err := o.stats.RecentQuizzes(o.keeper.Key(), recentQuizLimit)
	if err != nil {
		return stats, nil, err
	}
	return stats, recent, nil
}
