package questions

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/singleflight"

	"github.com/vovakirdan/tui-mathquest/internal/config"
	"github.com/vovakirdan/tui-mathquest/internal/core"
	"github.com/vovakirdan/tui-mathquest/internal/player"
)

// Texts served when the provider fails for a reason other than quota.
const (
	FallbackHint        = "No hint right now. Read the question once more and try the first step!"
	FallbackExplanation = "The tutor is busy for a moment. Look at the short explanation and try again later!"
	FallbackAnalysis    = "The analysis could not be created right now. Please try again later."
	NoMistakesAnalysis  = "No wrong answers at all. Wonderful work!"
)

// Batch is a set of playable questions. Fallback marks offline bank content,
// which is never stocked into the question cache.
type Batch struct {
	Questions []player.Question
	Fallback  bool
	Quota     bool
}

// Service wraps a Generator with validation, option shuffling and the
// offline bank. A nil generator runs fully offline.
type Service struct {
	gen       Generator
	rng       core.Rand
	logger    *log.Logger
	group     singleflight.Group
	eventSize int
}

// NewService creates a question service. gen and logger may be nil.
func NewService(gen Generator, rng core.Rand, rules config.Rules, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Service{
		gen:       gen,
		rng:       rng,
		logger:    logger,
		eventSize: max(1, rules.Events.LightningQuestions),
	}
}

// Online reports whether a provider is configured.
func (s *Service) Online() bool { return s.gen != nil }

// Questions fetches a quiz batch. Concurrent requests for the same grade and
// topic share one provider call. The batch is never empty.
func (s *Service) Questions(ctx context.Context, req Request) Batch {
	if s.gen == nil {
		return Batch{Questions: fallbackBatch(s.rng, req.Count), Fallback: true}
	}

	key := fmt.Sprintf("questions/%d/%s", req.Grade, req.Topic)
	v, err, _ := s.group.Do(key, func() (any, error) {
		return s.gen.GenerateQuestions(ctx, req)
	})
	if err == nil {
		if qs := s.prepare(v.([]player.Question)); len(qs) > 0 {
			return Batch{Questions: qs}
		}
		err = ErrNoContent
	}

	s.logger.Warn("question generation failed, using offline bank", "topic", req.Topic, "error", err)
	return Batch{Questions: fallbackBatch(s.rng, req.Count), Fallback: true, Quota: IsQuota(err)}
}

// EventChallenge fetches lightning round questions, falling back to the
// first questions of the offline bank.
func (s *Service) EventChallenge(ctx context.Context, grade, level int) Batch {
	if s.gen == nil {
		return Batch{Questions: fallbackBatch(s.rng, s.eventSize), Fallback: true}
	}

	qs, err := s.gen.GenerateEventChallenge(ctx, grade, level)
	if err == nil {
		if qs = s.prepare(qs); len(qs) > 0 {
			return Batch{Questions: qs[:min(len(qs), s.eventSize)]}
		}
		err = ErrNoContent
	}

	s.logger.Warn("event challenge generation failed, using offline bank", "level", level, "error", err)
	return Batch{Questions: fallbackBatch(s.rng, s.eventSize), Fallback: true, Quota: IsQuota(err)}
}

// Riddle fetches one riddle. Unlike quiz batches it has no offline
// substitute; callers skip the riddle on error.
func (s *Service) Riddle(ctx context.Context, grade int) (player.Question, error) {
	if s.gen == nil {
		return player.Question{}, ErrOffline
	}
	q, err := s.gen.GenerateRiddle(ctx, grade)
	return s.single(q, err, "riddle")
}

// SingleQuestion turns a creative mode idea into a question.
func (s *Service) SingleQuestion(ctx context.Context, idea string, grade int) (player.Question, error) {
	if s.gen == nil {
		return player.Question{}, ErrOffline
	}
	idea = strings.TrimSpace(idea)
	if idea == "" {
		return player.Question{}, fmt.Errorf("%w: empty idea", ErrNoContent)
	}
	q, err := s.gen.GenerateSingleQuestion(ctx, idea, grade)
	return s.single(q, err, "creative question")
}

func (s *Service) single(q player.Question, err error, what string) (player.Question, error) {
	if err != nil {
		s.logger.Warn("generation failed", "what", what, "error", err)
		if IsQuota(err) {
			return player.Question{}, ErrQuotaExceeded
		}
		return player.Question{}, err
	}
	qs := s.prepare([]player.Question{q})
	if len(qs) == 0 {
		return player.Question{}, fmt.Errorf("%w: invalid %s", ErrNoContent, what)
	}
	return qs[0], nil
}

// Hint asks for a hint on question.
func (s *Service) Hint(ctx context.Context, question string, grade int) (string, error) {
	if s.gen == nil {
		return "", ErrOffline
	}
	text, err := s.gen.Hint(ctx, question, grade)
	return s.text(text, err, FallbackHint, "hint")
}

// TutorExplanation asks for a detailed explanation of a miss.
func (s *Service) TutorExplanation(ctx context.Context, answered player.AnsweredQuestion, grade int) (string, error) {
	if s.gen == nil {
		return "", ErrOffline
	}
	text, err := s.gen.TutorExplanation(ctx, answered, grade)
	return s.text(text, err, FallbackExplanation, "tutor explanation")
}

// ParentalAnalysis summarizes missed questions for a parent. An empty
// history is praised without calling the provider.
func (s *Service) ParentalAnalysis(ctx context.Context, grade int, missed []player.AnsweredQuestion) (string, error) {
	if len(missed) == 0 {
		return NoMistakesAnalysis, nil
	}
	if s.gen == nil {
		return "", ErrOffline
	}
	text, err := s.gen.ParentalAnalysis(ctx, grade, missed)
	return s.text(text, err, FallbackAnalysis, "parental analysis")
}

func (s *Service) text(text string, err error, fallback, what string) (string, error) {
	if err != nil {
		s.logger.Warn("generation failed", "what", what, "error", err)
		if IsQuota(err) {
			return "", ErrQuotaExceeded
		}
		return fallback, nil
	}
	if strings.TrimSpace(text) == "" {
		return fallback, nil
	}
	return strings.TrimSpace(text), nil
}

// prepare drops invalid questions and shuffles multiple choice options.
func (s *Service) prepare(in []player.Question) []player.Question {
	out := make([]player.Question, 0, len(in))
	for _, q := range in {
		q = q.Clone()
		q.Question = strings.TrimSpace(q.Question)
		q.Answer = strings.TrimSpace(q.Answer)
		for i := range q.Options {
			q.Options[i] = strings.TrimSpace(q.Options[i])
		}
		if q.Type == player.FillInTheBlank && len(q.Options) == 0 {
			q.Options = nil
		}
		if err := q.Validate(); err != nil {
			s.logger.Debug("dropping invalid question", "question", q.Question, "error", err)
			continue
		}
		if q.Type == player.MultipleChoice {
			s.rng.Shuffle(len(q.Options), func(i, j int) { q.Options[i], q.Options[j] = q.Options[j], q.Options[i] })
		}
		out = append(out, q)
	}
	return out
}
