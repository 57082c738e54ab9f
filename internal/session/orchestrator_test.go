package session

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"testing"
	"time"

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

// Wednesday; the week started on Sunday 2026-10-11.
var testNow = time.Date(2026, 10, 14, 10, 0, 0, 0, time.UTC)

type fakeGen struct {
	questionsErr error
	riddleErr    error
	textErr      error
}

func arithmetic(n int) []player.Question {
	qs := make([]player.Question, n)
	for i := range qs {
		sum := strconv.Itoa(i + 2)
		qs[i] = player.Question{
			Question: fmt.Sprintf("%d + 2 = ?", i), Type: player.MultipleChoice,
			Options: []string{sum, strconv.Itoa(i + 3), strconv.Itoa(i + 4), strconv.Itoa(i + 5)},
			Answer:  sum, Explanation: "Count on by two.",
		}
	}
	return qs
}

func (g *fakeGen) GenerateQuestions(_ context.Context, req questions.Request) ([]player.Question, error) {
	if g.questionsErr != nil {
		return nil, g.questionsErr
	}
	return arithmetic(req.Count), nil
}

func (g *fakeGen) GenerateEventChallenge(context.Context, int, int) ([]player.Question, error) {
	return arithmetic(8), nil
}

func (g *fakeGen) GenerateRiddle(context.Context, int) (player.Question, error) {
	if g.riddleErr != nil {
		return player.Question{}, g.riddleErr
	}
	return player.Question{
		Question: "What has hands but cannot clap?", Type: player.MultipleChoice,
		Options: []string{"A clock", "A dog", "A tree", "A cup"}, Answer: "A clock",
	}, nil
}

func (g *fakeGen) GenerateSingleQuestion(_ context.Context, idea string, _ int) (player.Question, error) {
	if g.textErr != nil {
		return player.Question{}, g.textErr
	}
	return player.Question{Question: "A dragon has 3 eggs and finds 4 more. How many now?", Type: player.FillInTheBlank, Answer: "7"}, nil
}

func (g *fakeGen) Hint(context.Context, string, int) (string, error) {
	return "Start from the bigger number.", g.textErr
}

func (g *fakeGen) TutorExplanation(context.Context, player.AnsweredQuestion, int) (string, error) {
	return "Let us count together.", g.textErr
}

func (g *fakeGen) ParentalAnalysis(context.Context, int, []player.AnsweredQuestion) (string, error) {
	return "Practise carrying in addition.", g.textErr
}

type harness struct {
	t      *testing.T
	o      *Orchestrator
	keeper *progression.Keeper
	store  *storage.Store
	gen    *fakeGen
	now    time.Time
}

type option func(*config.Rules)

func newHarness(t *testing.T, gen *fakeGen, opts ...option) *harness {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "session.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	rules := config.DefaultRules()
	for _, opt := range opts {
		opt(&rules)
	}
	h := &harness{t: t, store: store, gen: gen, now: testNow}
	clock := core.ClockFunc(func() time.Time { return h.now })
	rng := core.NewRand(42)

	engine := progression.NewEngine(rules, rng, clock)
	h.keeper = progression.NewKeeper(engine, store, "", nil)
	var g questions.Generator
	if gen != nil {
		g = gen
	}
	h.o = New(Deps{
		Keeper:    h.keeper,
		Questions: questions.NewService(g, rng, rules, nil),
		Board:     leaderboard.NewService(rules.Leaderboard, store, nil),
		Stats:     store,
		Clock:     clock,
	})
	return h
}

// seed saves a player with score and no missions left for today, then starts the session at the hub.
func (h *harness) seed(grade, score int) {
	h.t.Helper()
	st := player.New("Mai", grade)
	st.Progression.Score = score
	st.Progression.Level = progression.LevelFor(score, 150)
	st.Missions = player.Missions{Date: core.DateString(h.now)}
	if err := h.store.SaveState(storage.DefaultSaveKey, st); err != nil {
		h.t.Fatalf("SaveState() failed: %v", err)
	}
	if s := h.o.Start(); s != (MainHub{}) {
		h.t.Fatalf("Start() = %s, want hub", s.Name())
	}
}

func (h *harness) run(job *Job) {
	h.t.Helper()
	if job == nil {
		h.t.Fatal("expected a job")
	}
	if err := h.o.Complete(job.Run(context.Background())); err != nil {
		h.t.Fatalf("Complete(%s) failed: %v", job.Name, err)
	}
	h.o.Settle()
}

// playPerfectQuiz answers every question correctly and returns the final job, if any.
func (h *harness) playPerfectQuiz(topic player.Topic) *Job {
	h.t.Helper()
	job, err := h.o.StartQuiz(topic)
	if err != nil {
		h.t.Fatalf("StartQuiz() failed: %v", err)
	}
	if job != nil {
		h.run(job)
	}
	if h.o.Screen() != (Playing{}) {
		h.t.Fatalf("screen = %s, want playing", h.o.Screen().Name())
	}
	for {
		q, ok := h.o.Round().Current()
		if !ok {
			h.t.Fatal("round ended early")
		}
		fb, err := h.o.Answer(q.Answer)
		if err != nil || !fb.Correct {
			h.t.Fatalf("Answer(%q) = %+v, %v", q.Answer, fb, err)
		}
		next, err := h.o.NextQuestion()
		if err != nil {
			h.t.Fatalf("NextQuestion() failed: %v", err)
		}
		if h.o.Round() == nil {
			h.o.Settle()
			return next
		}
	}
}

func TestFirstRunFlow(t *testing.T) {
	h := newHarness(t, nil)
	o := h.o

	if s := o.Start(); s != (Landing{}) {
		t.Fatalf("Start() = %s, want landing", s.Name())
	}
	if o.Navigate(MainHub{}) {
		t.Error("hub must not be reachable without a player")
	}
	if !o.Begin() {
		t.Fatal("Begin() was ignored")
	}

	tr := o.Transition()
	if tr.Phase != PhaseExiting || tr.To != (Setup{}) || o.Screen() != (Landing{}) {
		t.Fatalf("after Begin: %+v on %s", tr, o.Screen().Name())
	}
	if o.Navigate(Landing{}) {
		t.Error("a second transition must be ignored while one is in flight")
	}

	if phase, _ := o.Advance(); phase != PhaseEntering || o.Screen() != (Setup{}) {
		t.Fatalf("after exit: phase %s, screen %s", phase, o.Screen().Name())
	}
	if phase, _ := o.Advance(); phase != PhaseIdle {
		t.Fatalf("after enter: phase %s", phase)
	}

	if err := o.CreatePlayer("  ", 2); !errors.Is(err, progression.ErrEmptyName) {
		t.Errorf("CreatePlayer(blank) error = %v", err)
	}
	if err := o.CreatePlayer("Mai", 2); err != nil {
		t.Fatalf("CreatePlayer() failed: %v", err)
	}
	o.Settle()
	if o.Screen() != (MainHub{}) {
		t.Fatalf("screen = %s, want hub", o.Screen().Name())
	}

	st := o.State()
	if st.Missions.Date != "2026-10-14" || len(st.Missions.List) == 0 {
		t.Errorf("hub entry did not refresh missions: %+v", st.Missions)
	}
	if _, err := h.store.LoadState(storage.DefaultSaveKey); err != nil {
		t.Errorf("player was not saved: %v", err)
	}
}

func TestNavigateIgnoresSameAndInFlight(t *testing.T) {
	h := newHarness(t, nil)
	h.seed(2, 0)
	o := h.o

	if o.Navigate(MainHub{}) {
		t.Error("navigating to the current screen must be ignored")
	}
	if !o.Navigate(Store{}) {
		t.Fatal("Navigate(Store) was ignored")
	}
	if o.Navigate(Profile{}) {
		t.Error("request during a transition must be ignored, not queued")
	}
	o.Settle()
	if o.Screen() != (Store{}) {
		t.Errorf("screen = %s, want store", o.Screen().Name())
	}
	if o.Navigate(Review{}) || o.Navigate(Playing{}) {
		t.Error("review and playing are only reachable through play")
	}
}

func TestLevelSevenToEightGoesToReview(t *testing.T) {
	h := newHarness(t, &fakeGen{}, func(r *config.Rules) {
		r.Events.LightningLevels = []int{13, 18}
	})
	h.seed(2, 1000)

	if job := h.playPerfectQuiz(player.TopicAdditionSubtraction); job != nil {
		t.Fatalf("unexpected %s job", job.Name)
	}
	if h.o.Screen() != (Review{}) {
		t.Fatalf("screen = %s, want review", h.o.Screen().Name())
	}

	rv := h.o.Review()
	if rv.Outcome.OldLevel != 7 || rv.Outcome.NewLevel != 8 || !rv.Outcome.LeveledUp {
		t.Errorf("outcome = %+v", rv.Outcome)
	}
	if rv.Result.Score != 190 || rv.Result.CorrectAnswers != 10 || rv.Event != progression.EventNone {
		t.Errorf("review = %+v", rv)
	}

	st := h.o.State()
	if st.Progression.Score != 1190 || st.Progression.Level != 8 {
		t.Errorf("score %d level %d", st.Progression.Score, st.Progression.Level)
	}
	if n := progression.CachedCount(st, player.TopicAdditionSubtraction); n != 10 {
		t.Errorf("cached questions = %d, want 10", n)
	}
	stats, recent, err := h.o.QuizHistory()
	if err != nil || stats.Quizzes != 1 || len(recent) != 1 {
		t.Errorf("QuizHistory() = %+v, %d entries, %v", stats, len(recent), err)
	}

	if !h.o.Navigate(MainHub{}) {
		t.Fatal("Navigate(hub) from review was ignored")
	}
	h.o.Settle()

	// The next quiz is served from the cache without a job.
	job, err := h.o.StartQuiz(player.TopicAdditionSubtraction)
	if err != nil || job != nil {
		t.Fatalf("StartQuiz() = %v, %v; want cached start", job, err)
	}
	h.o.Settle()
	if h.o.Screen() != (Playing{}) {
		t.Errorf("screen = %s, want playing", h.o.Screen().Name())
	}
}

func TestPartialCacheKeptUntilFetchCompletes(t *testing.T) {
	h := newHarness(t, &fakeGen{})
	topic := player.TopicAdditionSubtraction

	stocked := arithmetic(4)
	for i := range stocked {
		stocked[i].Question = "Stocked: " + stocked[i].Question
	}
	st := player.New("Mai", 2)
	st.Missions = player.Missions{Date: core.DateString(h.now)}
	st.QuestionCache = map[player.Topic][]player.Question{topic: stocked}
	if err := h.store.SaveState(storage.DefaultSaveKey, st); err != nil {
		t.Fatalf("SaveState() failed: %v", err)
	}
	h.o.Start()

	job, err := h.o.StartQuiz(topic)
	if err != nil || job == nil {
		t.Fatalf("StartQuiz() = %v, %v; want a fetch job", job, err)
	}

	// Quitting now must not lose the stocked questions.
	reopened := progression.NewKeeper(h.keeper.Engine(), h.store, "", nil)
	if !reopened.Open() {
		t.Fatal("Open() found no save")
	}
	if n := progression.CachedCount(reopened.State(), topic); n != 4 {
		t.Fatalf("saved cache while fetching = %d, want 4", n)
	}

	h.run(job)
	q, ok := h.o.Round().Current()
	if !ok || q.Question != stocked[0].Question {
		t.Errorf("first question = %q, want the stocked %q", q.Question, stocked[0].Question)
	}
	// 4 stocked + 20 fetched, 10 played.
	if n := progression.CachedCount(h.o.State(), topic); n != 14 {
		t.Errorf("cached questions = %d, want 14", n)
	}
	saved, err := h.store.LoadState(storage.DefaultSaveKey)
	if err != nil {
		t.Fatalf("LoadState() failed: %v", err)
	}
	if n := progression.CachedCount(saved, topic); n != 14 {
		t.Errorf("saved cache = %d, want 14", n)
	}
}

func TestLightningRoundAtLevelEight(t *testing.T) {
	h := newHarness(t, &fakeGen{})
	h.seed(2, 1000)

	job := h.playPerfectQuiz(player.TopicGeneral)
	if job == nil || job.Name != "lightning" {
		t.Fatalf("job = %v, want lightning", job)
	}
	h.run(job)
	if h.o.Screen() != (LightningRound{Level: 8}) {
		t.Fatalf("screen = %s, want lightning", h.o.Screen().Name())
	}
	if h.o.Navigate(MainHub{}) {
		t.Error("an event must resolve before leaving")
	}

	r := h.o.LightningRound()
	if _, total := r.Position(); total != 5 {
		t.Errorf("lightning questions = %d, want 5", total)
	}
	for i := 0; i < 4; i++ {
		q, _ := r.Current()
		if _, err := h.o.AnswerLightning(q.Answer); err != nil {
			t.Fatalf("AnswerLightning() failed: %v", err)
		}
	}
	if _, err := h.o.AnswerLightning("wrong"); err != nil {
		t.Fatalf("AnswerLightning() failed: %v", err)
	}
	h.o.Settle()

	if h.o.Screen() != (Review{}) {
		t.Fatalf("screen = %s, want review", h.o.Screen().Name())
	}
	rv := h.o.Review()
	if rv.Event != progression.EventLightning || rv.EventCorrect != 4 || rv.EventBonus != 40 || rv.Score() != 230 {
		t.Errorf("review = %+v", rv)
	}
	st := h.o.State()
	if st.Progression.Score != 1230 || !st.Map.CompletedEvents.Has(8) {
		t.Errorf("score %d, events %v", st.Progression.Score, st.Map.CompletedEvents.Sorted())
	}
}

func TestLightningClockRunsOut(t *testing.T) {
	h := newHarness(t, &fakeGen{})
	h.seed(2, 1000)
	h.run(h.playPerfectQuiz(player.TopicGeneral))

	q, _ := h.o.LightningRound().Current()
	h.o.AnswerLightning(q.Answer) //nolint:errcheck
	if _, err := h.o.Tick(61 * time.Second); err != nil {
		t.Fatalf("Tick() failed: %v", err)
	}
	h.o.Settle()
	if h.o.Screen() != (Review{}) || h.o.Review().EventBonus != 10 {
		t.Errorf("screen %s, bonus %d", h.o.Screen().Name(), h.o.Review().EventBonus)
	}
}

func TestRiddleAtLevelThree(t *testing.T) {
	h := newHarness(t, &fakeGen{})
	h.seed(2, 250)

	job := h.playPerfectQuiz(player.TopicGeneral)
	if job == nil || job.Name != "riddle" {
		t.Fatalf("job = %v, want riddle", job)
	}
	h.run(job)
	if h.o.Screen() != (RiddleChallenge{Level: 3}) {
		t.Fatalf("screen = %s, want riddle", h.o.Screen().Name())
	}

	fb, err := h.o.AnswerRiddle("a CLOCK ")
	if err != nil || !fb.Correct {
		t.Fatalf("AnswerRiddle() = %+v, %v", fb, err)
	}
	h.o.Settle()
	if h.o.Screen() != (Review{}) {
		t.Fatalf("screen = %s, want review", h.o.Screen().Name())
	}
	if rv := h.o.Review(); rv.EventBonus != 75 || rv.Score() != 265 {
		t.Errorf("review = %+v", rv)
	}
	if st := h.o.State(); st.Progression.Score != 515 || !st.Map.CompletedEvents.Has(3) {
		t.Errorf("score %d, events %v", st.Progression.Score, st.Map.CompletedEvents.Sorted())
	}
}

func TestRiddleFailureSkipsToReview(t *testing.T) {
	h := newHarness(t, &fakeGen{riddleErr: errors.New("bad gateway")})
	h.seed(2, 250)

	h.run(h.playPerfectQuiz(player.TopicGeneral))
	if h.o.Screen() != (Review{}) {
		t.Fatalf("screen = %s, want review", h.o.Screen().Name())
	}
	if rv := h.o.Review(); rv.Event != progression.EventNone || rv.EventBonus != 0 {
		t.Errorf("review = %+v", rv)
	}
	if h.o.State().Map.CompletedEvents.Has(3) {
		t.Error("a skipped riddle must not be marked resolved")
	}
}

func TestOfflineRiddleSkipsToReview(t *testing.T) {
	h := newHarness(t, nil)
	h.seed(2, 250)

	if job := h.playPerfectQuiz(player.TopicGeneral); job != nil {
		t.Fatalf("unexpected %s job", job.Name)
	}
	if h.o.Screen() != (Review{}) {
		t.Errorf("screen = %s, want review", h.o.Screen().Name())
	}
}

func TestQuotaDisablesAIFeatures(t *testing.T) {
	gen := &fakeGen{questionsErr: questions.ErrQuotaExceeded}
	h := newHarness(t, gen)
	h.seed(1, 0)
	o := h.o

	if !o.AIAvailable() {
		t.Fatal("AI should start available")
	}
	job, err := o.StartQuiz(player.TopicGeneral)
	if err != nil {
		t.Fatalf("StartQuiz() failed: %v", err)
	}
	h.run(job)

	if o.Banner() != QuotaBanner || o.AIAvailable() {
		t.Fatalf("banner %q, AI available %v", o.Banner(), o.AIAvailable())
	}
	if _, total := o.Round().Position(); total != 5 {
		t.Errorf("quiz length = %d, want 5 for grade 1", total)
	}
	if n := progression.CachedCount(o.State(), player.TopicGeneral); n != 0 {
		t.Errorf("offline questions were cached: %d", n)
	}
	if _, err := o.UsePowerUp(player.PowerUpHint); !errors.Is(err, questions.ErrQuotaExceeded) {
		t.Errorf("UsePowerUp(hint) error = %v, want quota", err)
	}

	o.DismissBanner()
	if o.Banner() != "" || o.AIAvailable() {
		t.Error("dismissing the banner must not end the cooldown")
	}
	h.now = h.now.Add(61 * time.Minute)
	if !o.AIAvailable() {
		t.Error("AI should return after the cooldown")
	}
}

func TestBusyRejectsInput(t *testing.T) {
	h := newHarness(t, &fakeGen{})
	h.seed(2, 500)
	o := h.o

	job, err := o.StartQuiz(player.TopicLogic)
	if err != nil || job == nil {
		t.Fatalf("StartQuiz() = %v, %v", job, err)
	}
	if !o.Busy() {
		t.Fatal("orchestrator should be busy")
	}
	if err := o.Buy(catalog.KindPowerUp, string(player.PowerUpTimeBoost)); !errors.Is(err, ErrBusy) {
		t.Errorf("Buy() while busy error = %v", err)
	}
	if _, err := o.StartQuiz(player.TopicLogic); !errors.Is(err, ErrBusy) {
		t.Errorf("StartQuiz() while busy error = %v", err)
	}
	if o.Navigate(Store{}) {
		t.Error("navigation must wait for the job")
	}

	h.run(job)
	if o.Busy() || o.Screen() != (Playing{}) {
		t.Errorf("busy %v, screen %s", o.Busy(), o.Screen().Name())
	}
}

func TestPowerUps(t *testing.T) {
	h := newHarness(t, &fakeGen{})
	h.seed(2, 500)
	o := h.o

	if err := o.Buy(catalog.KindPowerUp, string(player.PowerUpTimeBoost)); err != nil {
		t.Fatalf("Buy(time boost) failed: %v", err)
	}
	if err := o.Buy(catalog.KindPowerUp, string(player.PowerUpSkip)); err != nil {
		t.Fatalf("Buy(skip) failed: %v", err)
	}
	if err := o.Buy(catalog.KindPowerUp, string(player.PowerUpHint)); err != nil {
		t.Fatalf("Buy(hint) failed: %v", err)
	}
	if got := o.State().Progression.Score; got != 200 {
		t.Errorf("score after purchases = %d, want 200", got)
	}

	h.run(mustJob(t)(o.StartQuiz(player.TopicGeneral)))

	if _, err := o.UsePowerUp(player.PowerUpTimeBoost); err != nil {
		t.Fatalf("UsePowerUp(time) failed: %v", err)
	}
	if got := o.Round().Remaining(); got != 930*time.Second {
		t.Errorf("remaining = %v, want 15m30s", got)
	}
	if _, err := o.UsePowerUp(player.PowerUpTimeBoost); !errors.Is(err, progression.ErrNoPowerUp) {
		t.Errorf("second time boost error = %v", err)
	}

	h.run(mustJob(t)(o.UsePowerUp(player.PowerUpHint)))
	if o.Hint() != "Start from the bigger number." {
		t.Errorf("hint = %q", o.Hint())
	}
	if _, err := o.UsePowerUp(player.PowerUpHint); !errors.Is(err, ErrHintShown) {
		t.Errorf("second hint error = %v", err)
	}

	if _, err := o.UsePowerUp(player.PowerUpSkip); err != nil {
		t.Fatalf("UsePowerUp(skip) failed: %v", err)
	}
	if pos, _ := o.Round().Position(); pos != 2 || o.Hint() != "" {
		t.Errorf("after skip: position %d, hint %q", pos, o.Hint())
	}
	inv := o.State().Inventory
	if inv[player.PowerUpTimeBoost] != 0 || inv[player.PowerUpSkip] != 0 || inv[player.PowerUpHint] != 1 {
		t.Errorf("inventory = %v", inv)
	}
}

func mustJob(t *testing.T) func(*Job, error) *Job {
	return func(job *Job, err error) *Job {
		t.Helper()
		if err != nil {
			t.Fatalf("expected a job, got error: %v", err)
		}
		return job
	}
}

func TestLeavingQuizGivesNoCredit(t *testing.T) {
	h := newHarness(t, &fakeGen{})
	h.seed(2, 0)

	h.run(mustJob(t)(h.o.StartQuiz(player.TopicGeneral)))
	q, _ := h.o.Round().Current()
	h.o.Answer(q.Answer) //nolint:errcheck
	if !h.o.Navigate(MainHub{}) {
		t.Fatal("Navigate(hub) from playing was ignored")
	}
	h.o.Settle()
	if h.o.Round() != nil || h.o.State().Progression.Score != 0 {
		t.Errorf("abandoned quiz was credited: score %d", h.o.State().Progression.Score)
	}
}

func TestCreativeMode(t *testing.T) {
	h := newHarness(t, &fakeGen{})
	h.seed(3, 0)
	o := h.o

	if _, err := o.SubmitIdea("dragons"); !errors.Is(err, ErrWrongScreen) {
		t.Errorf("SubmitIdea() off screen error = %v", err)
	}
	o.Navigate(CreativeMode{})
	o.Settle()

	h.run(mustJob(t)(o.SubmitIdea("dragons")))
	cq, ok := o.Creative()
	if !ok || cq.Question.Answer != "7" || cq.Idea != "dragons" {
		t.Fatalf("Creative() = %+v, %v", cq, ok)
	}
	fb, err := o.AnswerCreative(" 7 ")
	if err != nil || !fb.Correct {
		t.Errorf("AnswerCreative() = %+v, %v", fb, err)
	}
	if _, err := o.AnswerCreative("7"); !errors.Is(err, quiz.ErrAlreadyAnswered) {
		t.Errorf("second answer error = %v", err)
	}
	st := o.State()
	if st.Stats.CreativeQuestionsGenerated != 1 || !st.Achievements.Has("creative_spark") {
		t.Errorf("creative stats %d, badges %v", st.Stats.CreativeQuestionsGenerated, st.Achievements.Sorted())
	}
}

func TestParentDashboard(t *testing.T) {
	gen := &fakeGen{}
	h := newHarness(t, gen)
	h.seed(2, 0)
	o := h.o

	o.Navigate(ParentDashboard{})
	o.Settle()
	h.run(mustJob(t)(o.RequestAnalysis()))
	if o.Analysis() != questions.NoMistakesAnalysis {
		t.Errorf("analysis without misses = %q", o.Analysis())
	}

	st := o.State()
	st.History.Missed = []player.AnsweredQuestion{{Question: arithmetic(1)[0], UserAnswer: "5"}}
	h.keeper.Replace(st)
	h.run(mustJob(t)(o.RequestAnalysis()))
	if o.Analysis() != "Practise carrying in addition." {
		t.Errorf("analysis = %q", o.Analysis())
	}

	gen.textErr = questions.ErrQuotaExceeded
	job := mustJob(t)(o.Explain(st.History.Missed[0]))
	if err := o.Complete(job.Run(context.Background())); !errors.Is(err, questions.ErrQuotaExceeded) {
		t.Errorf("Complete(tutor) error = %v", err)
	}
	if o.Banner() == "" {
		t.Error("quota during tutoring should raise the banner")
	}
	if _, err := o.RequestAnalysis(); !errors.Is(err, questions.ErrQuotaExceeded) {
		t.Errorf("RequestAnalysis() during cooldown error = %v", err)
	}
}

func TestStoreAndProfile(t *testing.T) {
	h := newHarness(t, nil)
	h.seed(2, 40)
	o := h.o

	if err := o.Buy(catalog.KindPowerUp, string(player.PowerUpTimeBoost)); !errors.Is(err, progression.ErrInsufficientScore) {
		t.Errorf("Buy() with 40 < 50 error = %v", err)
	}
	if got := o.State().Progression.Score; got != 40 {
		t.Errorf("rejected purchase changed score to %d", got)
	}
	if err := o.Buy(catalog.KindTheme, "nope"); !errors.Is(err, progression.ErrUnknownItem) {
		t.Errorf("Buy(unknown) error = %v", err)
	}
	if err := o.Equip(player.CategoryTheme, "ocean"); !errors.Is(err, progression.ErrNotUnlocked) {
		t.Errorf("Equip(locked) error = %v", err)
	}
	if err := o.ChangeGrade(9); !errors.Is(err, progression.ErrInvalidGrade) {
		t.Errorf("ChangeGrade(9) error = %v", err)
	}
	if err := o.ChangeGrade(4); err != nil || o.State().Identity.Grade != 4 {
		t.Errorf("ChangeGrade(4) = %v, grade %d", err, o.State().Identity.Grade)
	}

	claim, err := o.ClaimChest(10)
	if err != nil || claim.Status != progression.ChestLocked {
		t.Errorf("ClaimChest(10) at level 1 = %+v, %v", claim, err)
	}

	standings := o.Standings()
	if len(standings) != len(o.Rules().Leaderboard.Rivals)+1 {
		t.Errorf("standings = %d rows", len(standings))
	}
}

func TestReset(t *testing.T) {
	h := newHarness(t, nil)
	h.seed(2, 300)
	o := h.o

	if err := o.Reset(false); !errors.Is(err, progression.ErrResetNotConfirmed) {
		t.Fatalf("Reset(false) error = %v", err)
	}
	if o.State().Progression.Score != 300 {
		t.Error("unconfirmed reset changed state")
	}
	if err := o.Reset(true); err != nil {
		t.Fatalf("Reset(true) failed: %v", err)
	}
	o.Settle()
	if o.Screen() != (Landing{}) {
		t.Errorf("screen = %s, want landing", o.Screen().Name())
	}
	if _, err := h.store.LoadState(storage.DefaultSaveKey); !errors.Is(err, storage.ErrNoSave) {
		t.Errorf("save still present: %v", err)
	}
}

func TestMessage(t *testing.T) {
	if Message(ErrBusy) == "" || Message(nil) != "" {
		t.Error("unexpected Message() results")
	}
	if got, want := Message(progression.ErrNoPowerUp), progression.Message(progression.ErrNoPowerUp); got != want {
		t.Errorf("Message(ErrNoPowerUp) = %q, want %q", got, want)
	}
}
