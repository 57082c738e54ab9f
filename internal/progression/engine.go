// Package progression applies scoring, leveling, store and map rules to the
// player state. Every operation returns a new snapshot and leaves its input untouched.
package progression

import (
	"slices"
	"strings"

	"github.com/vovakirdan/tui-mathquest/internal/badges"
	"github.com/vovakirdan/tui-mathquest/internal/catalog"
	"github.com/vovakirdan/tui-mathquest/internal/config"
	"github.com/vovakirdan/tui-mathquest/internal/core"
	"github.com/vovakirdan/tui-mathquest/internal/leaderboard"
	"github.com/vovakirdan/tui-mathquest/internal/missions"
	"github.com/vovakirdan/tui-mathquest/internal/player"
)

// LevelFor derives the level from a lifetime score.
func LevelFor(score, xpPerLevel int) int {
	if score < 0 {
		score = 0
	}
	return score/xpPerLevel + 1
}

// Engine holds the rules and collaborators of every transition.
type Engine struct {
	rules    config.Rules
	badges   badges.Engine
	missions *missions.Engine
	rng      core.Rand
	clock    core.Clock
}

// NewEngine creates a progression engine. rng and clock are the only sources
// of non-determinism.
func NewEngine(rules config.Rules, rng core.Rand, clock core.Clock) *Engine {
	if clock == nil {
		clock = core.SystemClock{}
	}
	return &Engine{
		rules:    rules,
		badges:   badges.New(),
		missions: missions.New(rules.Missions.DailyCount, rng),
		rng:      rng,
		clock:    clock,
	}
}

// Rules returns the rule set the engine was built with.
func (e *Engine) Rules() config.Rules { return e.rules }

// Today returns the current calendar date.
func (e *Engine) Today() string {
	return core.DateString(e.clock.Now())
}

func (e *Engine) relevel(s *player.State) {
	s.Progression.Level = LevelFor(s.Progression.Score, e.rules.Progression.XPPerLevel)
}

// addScore credits lifetime and weekly score together.
func addScore(s *player.State, amount int) {
	if amount <= 0 {
		return
	}
	s.Progression.Score += amount
	s.Progression.WeeklyScore += amount
}

// NewPlayer creates the first-run state.
func (e *Engine) NewPlayer(name string, grade int) (player.State, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return player.State{}, ErrEmptyName
	}
	if grade < player.MinGrade || grade > player.MaxGrade {
		return player.State{}, ErrInvalidGrade
	}
	return player.New(name, grade), nil
}

// QuizOutcome reports what one quiz result changed.
type QuizOutcome struct {
	OldLevel      int
	NewLevel      int
	LeveledUp     bool
	Badges        []catalog.Badge
	Missions      []player.Mission
	MissionReward int
	Cue           core.Cue
}

// ApplyQuizResult credits a finished quiz. Score, level, badges, missions and
// history are all applied to one snapshot, so callers commit it with a single save.
func (e *Engine) ApplyQuizResult(s player.State, result player.QuizResult, missed []player.AnsweredQuestion, served []player.Question) (player.State, QuizOutcome) {
	next := s.Clone()
	out := QuizOutcome{OldLevel: s.Progression.Level}

	addScore(&next, result.Score)
	e.relevel(&next)

	var awarded []catalog.Badge
	next, awarded = e.badges.Evaluate(next, badges.QuizCompleted{Result: result})
	out.Badges = append(out.Badges, awarded...)

	var mo missions.Outcome
	next, mo = e.missions.Apply(next, result, e.Today())
	out.Missions = mo.Completed
	out.MissionReward = mo.Reward
	if mo.Reward > 0 {
		e.relevel(&next)
		next, awarded = e.badges.Evaluate(next, badges.ScoreChanged{})
		out.Badges = append(out.Badges, awarded...)
	}

	for _, m := range missed {
		a := m
		a.Question = m.Question.Clone()
		next.History.Missed = append(next.History.Missed, a)
	}
	next.History.Missed = player.TrimTail(next.History.Missed, e.rules.Progression.MissedHistory)
	for _, q := range served {
		next.History.Served = append(next.History.Served, q.Clone())
	}
	next.History.Served = player.TrimTail(next.History.Served, e.rules.Progression.ServedHistory)

	out.NewLevel = next.Progression.Level
	out.LeveledUp = out.NewLevel > out.OldLevel
	if out.LeveledUp || len(out.Badges) > 0 || len(out.Missions) > 0 {
		out.Cue = core.CueAchievement
	}
	return next, out
}

// EventKind identifies a special map event.
type EventKind int

const (
	EventNone EventKind = iota
	EventLightning
	EventRiddle
)

// String returns a human-readable name for the event kind.
func (k EventKind) String() string {
	switch k {
	case EventLightning:
		return "lightning"
	case EventRiddle:
		return "riddle"
	default:
		return "none"
	}
}

// PendingEvent returns the special event due at level, if it has not been resolved yet.
// Lightning levels take precedence over riddle levels.
func (e *Engine) PendingEvent(s player.State, level int) EventKind {
	if s.Map.CompletedEvents.Has(level) {
		return EventNone
	}
	switch {
	case slices.Contains(e.rules.Events.LightningLevels, level):
		return EventLightning
	case slices.Contains(e.rules.Events.RiddleLevels, level):
		return EventRiddle
	default:
		return EventNone
	}
}

// LightningBonus returns the payout for a lightning round.
func (e *Engine) LightningBonus(correct int) int {
	return max(0, correct) * e.rules.Events.LightningBonusPerCorrect
}

// RiddleBonus returns the payout for a riddle answer.
func (e *Engine) RiddleBonus(correct bool) int {
	if !correct {
		return 0
	}
	return e.rules.Events.RiddleBonus
}

// EventOutcome reports an event resolution.
type EventOutcome struct {
	Applied bool
	Bonus   int
	Badges  []catalog.Badge
}

// ApplyEventBonus resolves the event at level. A level that is already
// resolved leaves the state unchanged, so replays never pay twice.
func (e *Engine) ApplyEventBonus(s player.State, bonus, level int) (player.State, EventOutcome) {
	if s.Map.CompletedEvents.Has(level) {
		return s, EventOutcome{}
	}
	next := s.Clone()
	next.Map.CompletedEvents.Add(level)
	addScore(&next, bonus)
	e.relevel(&next)

	next, awarded := e.badges.Evaluate(next, badges.ScoreChanged{})
	return next, EventOutcome{Applied: true, Bonus: max(0, bonus), Badges: awarded}
}

// ChestStatus is the result of a chest claim.
type ChestStatus int

const (
	ChestOpened ChestStatus = iota
	ChestLocked
	ChestAlreadyClaimed
)

// ChestClaim reports a chest claim. Amount is set only when the chest opened.
type ChestClaim struct {
	Status ChestStatus
	Amount int
	Badges []catalog.Badge
}

// IsChestLevel reports whether the map has a chest at level.
func (e *Engine) IsChestLevel(level int) bool {
	return slices.Contains(e.rules.Map.ChestLevels, level)
}

// ClaimChest opens the chest at level. Locked or already claimed chests are a
// no-op so stale UI state cannot pay twice.
func (e *Engine) ClaimChest(s player.State, level int) (player.State, ChestClaim) {
	if !e.IsChestLevel(level) || level > s.Progression.Level {
		return s, ChestClaim{Status: ChestLocked}
	}
	if s.Map.ClaimedChests.Has(level) {
		return s, ChestClaim{Status: ChestAlreadyClaimed}
	}

	amount := core.IntBetween(e.rng, e.rules.Map.ChestRewardMin, e.rules.Map.ChestRewardMax)
	next := s.Clone()
	next.Map.ClaimedChests.Add(level)
	addScore(&next, amount)
	e.relevel(&next)

	next, awarded := e.badges.Evaluate(next, badges.ScoreChanged{})
	return next, ChestClaim{Status: ChestOpened, Amount: amount, Badges: awarded}
}

// Purchase buys a catalog item. Cost is taken from the lifetime score only;
// weekly standing is not un-earned by spending.
func (e *Engine) Purchase(s player.State, item catalog.Item) (player.State, []catalog.Badge, error) {
	known, ok := catalog.Find(item.Kind, item.ID)
	if !ok {
		return s, nil, ErrUnknownItem
	}
	cat, cosmetic := known.Kind.Category()
	if cosmetic && s.Unlocks.Owned(cat).Has(known.ID) {
		return s, nil, ErrAlreadyOwned
	}
	if s.Progression.Score < known.Cost {
		return s, nil, ErrInsufficientScore
	}

	next := s.Clone()
	next.Progression.Score -= known.Cost
	e.relevel(&next)
	if cosmetic {
		next.Unlocks.Owned(cat).Add(known.ID)
	} else {
		next.Inventory[player.PowerUp(known.ID)] += max(1, known.Quantity)
	}

	next, awarded := e.badges.Evaluate(next, badges.ItemPurchased{Kind: known.Kind})
	return next, awarded, nil
}

// Equip makes an owned cosmetic active.
func (e *Engine) Equip(s player.State, cat player.Category, id string) (player.State, error) {
	owned := s.Unlocks.Owned(cat)
	if owned == nil {
		return s, ErrUnknownItem
	}
	if !owned.Has(id) {
		return s, ErrNotUnlocked
	}
	next := s.Clone()
	next.Unlocks.Active = next.Unlocks.Active.With(cat, id)
	return next, nil
}

// ConsumePowerUp takes one power-up from the inventory. Applying its effect is
// up to the caller.
func (e *Engine) ConsumePowerUp(s player.State, kind player.PowerUp) (player.State, error) {
	if s.Inventory[kind] <= 0 {
		return s, ErrNoPowerUp
	}
	next := s.Clone()
	next.Inventory[kind]--
	return next, nil
}

// UpdateGrade changes the grade and restarts the map at level 1. Score is kept;
// the next score change derives the level from it again.
func (e *Engine) UpdateGrade(s player.State, grade int) (player.State, error) {
	if grade < player.MinGrade || grade > player.MaxGrade {
		return s, ErrInvalidGrade
	}
	next := s.Clone()
	next.Identity.Grade = grade
	next.Progression.Level = 1
	return next, nil
}

// RecordCreativeUse counts one question made in creative mode.
func (e *Engine) RecordCreativeUse(s player.State) (player.State, []catalog.Badge) {
	next := s.Clone()
	next.Stats.CreativeQuestionsGenerated++
	return e.badges.Evaluate(next, badges.CreativeModeUsed{})
}

// Refresh regenerates stale daily missions and applies a due weekly reset.
// It reports whether anything changed.
func (e *Engine) Refresh(s player.State) (player.State, bool) {
	now := e.clock.Now()
	next, regenerated := e.missions.Refresh(s, core.DateString(now))
	next, reset := leaderboard.ResetIfDue(next, now, e.rules.Weekly.StartDay())
	return next, regenerated || reset
}

// TakeCachedQuestions pops up to n questions from the topic's cache queue.
func (e *Engine) TakeCachedQuestions(s player.State, topic player.Topic, n int) (player.State, []player.Question) {
	queue := s.QuestionCache[topic]
	if n <= 0 || len(queue) == 0 {
		return s, nil
	}
	n = min(n, len(queue))
	next := s.Clone()
	taken := next.QuestionCache[topic][:n]
	rest := slices.Clone(next.QuestionCache[topic][n:])
	if len(rest) == 0 {
		delete(next.QuestionCache, topic)
	} else {
		next.QuestionCache[topic] = rest
	}
	return next, taken
}

// StockQuestions appends fetched questions to the topic's cache queue.
func (e *Engine) StockQuestions(s player.State, topic player.Topic, qs []player.Question) player.State {
	if len(qs) == 0 {
		return s
	}
	next := s.Clone()
	for _, q := range qs {
		next.QuestionCache[topic] = append(next.QuestionCache[topic], q.Clone())
	}
	return next
}

// CachedCount returns the number of unused questions stocked for topic.
func CachedCount(s player.State, topic player.Topic) int {
	return len(s.QuestionCache[topic])
}
