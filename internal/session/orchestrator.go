package session

import (
	"errors"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-mathquest/internal/catalog"
	"github.com/vovakirdan/tui-mathquest/internal/config"
	"github.com/vovakirdan/tui-mathquest/internal/core"
	"github.com/vovakirdan/tui-mathquest/internal/leaderboard"
	"github.com/vovakirdan/tui-mathquest/internal/player"
	"github.com/vovakirdan/tui-mathquest/internal/progression"
	"github.com/vovakirdan/tui-mathquest/internal/questions"
	"github.com/vovakirdan/tui-mathquest/internal/quiz"
	"github.com/vovakirdan/tui-mathquest/internal/storage"
)

// QuotaBanner is shown after the provider reports an exhausted quota.
const QuotaBanner = "The AI helpers are resting after hitting their usage limit. Quizzes keep going with built-in questions."

// errUnchanged makes Keeper.Update skip the commit when nothing changed.
var errUnchanged = errors.New("session: unchanged")

// Stats reads the quiz log for the parent dashboard.
type Stats interface {
	QuizStats(key string) (storage.QuizStats, error)
	RecentQuizzes(key string, limit int) ([]storage.QuizEntry, error)
}

// Deps are the collaborators of an Orchestrator. Questions and Board are
// required; Stats, Clock and Logger may be nil.
type Deps struct {
	Keeper    *progression.Keeper
	Questions *questions.Service
	Board     *leaderboard.Service
	Stats     Stats
	Clock     core.Clock
	Logger    *log.Logger
}

// Orchestrator is the state machine of one player session. It is not safe
// for concurrent use: one goroutine owns it and applies job completions.
type Orchestrator struct {
	keeper    *progression.Keeper
	engine    *progression.Engine
	rules     config.Rules
	questions *questions.Service
	board     *leaderboard.Service
	stats     Stats
	clock     core.Clock
	logger    *log.Logger

	nav     transitioner
	pending int
	cue     core.Cue

	quotaUntil time.Time
	banner     string

	round       *quiz.Round
	hint        string
	event       *eventState
	review      ReviewSummary
	creative    *CreativeQuestion
	analysis    string
	explanation string
}

// New creates an orchestrator showing Landing. Call Start to load the save.
func New(d Deps) *Orchestrator {
	logger := d.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	clock := d.Clock
	if clock == nil {
		clock = core.SystemClock{}
	}
	engine := d.Keeper.Engine()
	rules := engine.Rules()
	return &Orchestrator{
		keeper:    d.Keeper,
		engine:    engine,
		rules:     rules,
		questions: d.Questions,
		board:     d.Board,
		stats:     d.Stats,
		clock:     clock,
		logger:    logger,
		nav: transitioner{
			current: Landing{},
			exit:    rules.Transition.Exit(),
			enter:   rules.Transition.Enter(),
		},
	}
}

// Start reads the save and picks the first screen: the hub for a returning
// player, Landing otherwise.
func (o *Orchestrator) Start() Screen {
	if o.keeper.Open() {
		o.nav.current = MainHub{}
	} else {
		o.nav.current = Landing{}
	}
	o.logger.Info("session started", "key", o.keeper.Key(), "screen", o.nav.current.Name())
	return o.nav.current
}

// Screen returns the screen being displayed.
func (o *Orchestrator) Screen() Screen { return o.nav.current }

// Transition returns the in-flight transition. Its Phase is PhaseIdle when none is running.
func (o *Orchestrator) Transition() Transition { return o.nav.active }

// PhaseDuration returns how long the current transition phase lasts.
func (o *Orchestrator) PhaseDuration() time.Duration { return o.nav.duration() }

// Busy reports whether a job is outstanding.
func (o *Orchestrator) Busy() bool { return o.pending > 0 }

// State returns a copy of the player state.
func (o *Orchestrator) State() player.State { return o.keeper.State() }

// Rules returns the game rules in effect.
func (o *Orchestrator) Rules() config.Rules { return o.rules }

// SaveFailed reports whether progress is only held in memory.
func (o *Orchestrator) SaveFailed() bool { return o.keeper.SaveFailed() }

// TakeCue returns and clears the last sound cue.
func (o *Orchestrator) TakeCue() core.Cue {
	c := o.cue
	o.cue = core.CueNone
	return c
}

func (o *Orchestrator) raise(c core.Cue) {
	if c > o.cue {
		o.cue = c
	}
}

// Navigate requests a screen change. It is ignored when a transition or job
// is in flight, when target is already shown, or when target can only be
// reached through play. It reports whether the transition began.
func (o *Orchestrator) Navigate(target Screen) bool {
	if o.pending > 0 || !o.reachable(target) {
		return false
	}
	return o.begin(target)
}

func (o *Orchestrator) reachable(target Screen) bool {
	switch o.nav.current.(type) {
	case LightningRound, RiddleChallenge:
		// Events resolve through LeaveEvent.
		return false
	}
	switch target.(type) {
	case Playing, LightningRound, RiddleChallenge, Review:
		return false
	case Landing, Setup:
		return !o.keeper.HasPlayer()
	default:
		return o.keeper.HasPlayer()
	}
}

func (o *Orchestrator) begin(target Screen) bool {
	if !o.nav.begin(target) {
		return false
	}
	o.logger.Debug("transition", "from", o.nav.active.From.Name(), "to", target.Name())
	if _, leaving := o.nav.active.From.(Playing); leaving && o.round != nil {
		o.logger.Info("quiz abandoned", "topic", o.round.Topic())
		o.round = nil
	}
	return true
}

// route moves to target from inside a flow. A transition still in flight is
// completed first so the flow never stalls.
func (o *Orchestrator) route(target Screen) {
	o.Settle()
	o.begin(target)
}

// Advance finishes the current transition phase and returns the phase now
// running with its duration. The screen swaps between exit and enter.
func (o *Orchestrator) Advance() (Phase, time.Duration) {
	if o.nav.advance() {
		o.entered(o.nav.current)
	}
	return o.nav.active.Phase, o.nav.duration()
}

// Settle runs the current transition to completion.
func (o *Orchestrator) Settle() {
	for o.nav.active.Phase != PhaseIdle {
		o.Advance()
	}
}

// entered runs screen entry effects right after the swap.
func (o *Orchestrator) entered(s Screen) {
	switch s.(type) {
	case MainHub:
		o.event, o.hint = nil, ""
		o.refresh()
	case CreativeMode:
		o.creative = nil
	case ParentDashboard:
		o.analysis, o.explanation = "", ""
	case Review:
		o.explanation = ""
	}
}

// refresh rolls over daily missions and the weekly score.
func (o *Orchestrator) refresh() {
	_, err := o.keeper.Update(func(s player.State) (player.State, error) {
		next, changed := o.engine.Refresh(s)
		if !changed {
			return s, errUnchanged
		}
		return next, nil
	})
	if err != nil && !errors.Is(err, errUnchanged) {
		o.logger.Debug("refresh skipped", "error", err)
	}
}

// ready rejects mutating input while work is in flight or without a player.
func (o *Orchestrator) ready() error {
	if o.pending > 0 || o.nav.active.Phase != PhaseIdle {
		return ErrBusy
	}
	if !o.keeper.HasPlayer() {
		return progression.ErrNoPlayer
	}
	return nil
}

// update commits fn through the keeper, treating errUnchanged as success.
func (o *Orchestrator) update(fn func(player.State) (player.State, error)) (player.State, error) {
	st, err := o.keeper.Update(fn)
	if errors.Is(err, errUnchanged) {
		return st, nil
	}
	return st, err
}

// noteQuota starts the AI cooldown after a quota signal.
func (o *Orchestrator) noteQuota(hit bool) {
	if !hit {
		return
	}
	o.quotaUntil = o.clock.Now().Add(o.rules.Quota.Cooldown())
	o.banner = QuotaBanner
	o.logger.Warn("provider quota exhausted, AI features paused", "until", o.quotaUntil.Format(time.Kitchen))
}

// Banner returns the quota notice, or "" once dismissed.
func (o *Orchestrator) Banner() string { return o.banner }

// DismissBanner hides the quota notice. AI features stay paused until the cooldown ends.
func (o *Orchestrator) DismissBanner() { o.banner = "" }

// AIAvailable reports whether hint, tutor, creative mode and parent analysis may run.
func (o *Orchestrator) AIAvailable() bool {
	return o.questions.Online() && !o.clock.Now().Before(o.quotaUntil)
}

func (o *Orchestrator) requireAI() error {
	if !o.questions.Online() {
		return questions.ErrOffline
	}
	if o.clock.Now().Before(o.quotaUntil) {
		return questions.ErrQuotaExceeded
	}
	return nil
}

// Begin leaves Landing for Setup.
func (o *Orchestrator) Begin() bool {
	if _, ok := o.nav.current.(Landing); !ok {
		return false
	}
	return o.Navigate(Setup{})
}

// CreatePlayer saves a new player from Setup and opens the hub.
func (o *Orchestrator) CreatePlayer(name string, grade int) error {
	if o.pending > 0 || o.nav.active.Phase != PhaseIdle {
		return ErrBusy
	}
	if _, ok := o.nav.current.(Setup); !ok {
		return ErrWrongScreen
	}
	if _, err := o.keeper.Create(name, grade); err != nil {
		return err
	}
	o.route(MainHub{})
	return nil
}

// Reset erases all progress when confirmed and returns to Landing.
func (o *Orchestrator) Reset(confirmed bool) error {
	if o.pending > 0 {
		return ErrBusy
	}
	if err := o.keeper.Reset(confirmed); err != nil {
		return err
	}
	o.round, o.event, o.creative = nil, nil, nil
	o.review = ReviewSummary{}
	o.hint, o.analysis, o.explanation = "", "", ""
	o.route(Landing{})
	return nil
}

// Standings returns the weekly leaderboard.
func (o *Orchestrator) Standings() []leaderboard.Entry {
	return o.board.WeeklyStandings(o.keeper.Key(), o.keeper.State())
}

// Buy purchases a catalog item.
func (o *Orchestrator) Buy(kind catalog.Kind, id string) error {
	if err := o.ready(); err != nil {
		return err
	}
	item, ok := catalog.Find(kind, id)
	if !ok {
		return progression.ErrUnknownItem
	}
	var awarded []catalog.Badge
	_, err := o.keeper.Update(func(s player.State) (player.State, error) {
		next, b, err := o.engine.Purchase(s, item)
		awarded = b
		return next, err
	})
	if err != nil {
		return err
	}
	o.logger.Info("item purchased", "item", item.ID, "cost", item.Cost)
	if len(awarded) > 0 {
		o.raise(core.CueAchievement)
	}
	return nil
}

// Equip activates an owned cosmetic.
func (o *Orchestrator) Equip(cat player.Category, id string) error {
	if err := o.ready(); err != nil {
		return err
	}
	_, err := o.keeper.Update(func(s player.State) (player.State, error) {
		return o.engine.Equip(s, cat, id)
	})
	return err
}

// ChangeGrade updates the player's grade from the profile.
func (o *Orchestrator) ChangeGrade(grade int) error {
	if err := o.ready(); err != nil {
		return err
	}
	_, err := o.keeper.Update(func(s player.State) (player.State, error) {
		return o.engine.UpdateGrade(s, grade)
	})
	return err
}

// ClaimChest opens the map chest at level.
func (o *Orchestrator) ClaimChest(level int) (progression.ChestClaim, error) {
	if err := o.ready(); err != nil {
		return progression.ChestClaim{}, err
	}
	var claim progression.ChestClaim
	_, err := o.update(func(s player.State) (player.State, error) {
		next, c := o.engine.ClaimChest(s, level)
		claim = c
		if c.Status != progression.ChestOpened {
			return s, errUnchanged
		}
		return next, nil
	})
	if err != nil {
		return progression.ChestClaim{}, err
	}
	if claim.Status == progression.ChestOpened {
		o.raise(core.CueAchievement)
	}
	return claim, nil
}
