package progression

import (
	"errors"
	"testing"
	"time"

	"github.com/vovakirdan/tui-mathquest/internal/catalog"
	"github.com/vovakirdan/tui-mathquest/internal/config"
	"github.com/vovakirdan/tui-mathquest/internal/core"
	"github.com/vovakirdan/tui-mathquest/internal/player"
)

var testNow = time.Date(2026, 10, 14, 10, 0, 0, 0, time.UTC)

func newTestEngine() *Engine {
	return NewEngine(config.DefaultRules(), core.NewRand(42), core.ClockFunc(func() time.Time { return testNow }))
}

func hasBadge(list []catalog.Badge, id string) bool {
	for _, b := range list {
		if b.ID == id {
			return true
		}
	}
	return false
}

func TestLevelFor(t *testing.T) {
	tests := []struct {
		score int
		want  int
	}{
		{0, 1},
		{149, 1},
		{150, 2},
		{299, 2},
		{1050, 8},
		{-10, 1},
	}

	for _, tt := range tests {
		if got := LevelFor(tt.score, 150); got != tt.want {
			t.Errorf("LevelFor(%d) = %d, want %d", tt.score, got, tt.want)
		}
	}
}

func TestFirstQuizScenario(t *testing.T) {
	e := newTestEngine()
	s := player.New("An", 2)

	next, out := e.ApplyQuizResult(s, player.QuizResult{Score: 150, TotalQuestions: 10, CorrectAnswers: 10}, nil, nil)

	if next.Progression.Score != 150 || next.Progression.WeeklyScore != 150 {
		t.Errorf("score/weekly = %d/%d, want 150/150", next.Progression.Score, next.Progression.WeeklyScore)
	}
	if next.Progression.Level != 2 || !out.LeveledUp || out.OldLevel != 1 || out.NewLevel != 2 {
		t.Errorf("level = %d, outcome = %+v", next.Progression.Level, out)
	}
	if next.Progression.PerfectScoreStreak != 1 {
		t.Errorf("PerfectScoreStreak = %d, want 1", next.Progression.PerfectScoreStreak)
	}
	if len(out.Badges) != 2 || !hasBadge(out.Badges, catalog.BadgeFirstQuiz) || !hasBadge(out.Badges, catalog.BadgePerfectScore) {
		t.Errorf("badges = %+v, want first_quiz and perfect_score", out.Badges)
	}
	if out.Cue != core.CueAchievement {
		t.Errorf("Cue = %v, want Achievement", out.Cue)
	}
	if s.Progression.Score != 0 || s.Achievements.Len() != 0 {
		t.Error("ApplyQuizResult() mutated its input")
	}
}

func TestApplyQuizResultMissionRewardOnce(t *testing.T) {
	e := newTestEngine()
	s, _ := e.Refresh(player.New("Binh", 3))
	if len(s.Missions.List) != 3 {
		t.Fatalf("Refresh() produced %d missions, want 3", len(s.Missions.List))
	}

	perfect := player.QuizResult{Score: 0, TotalQuestions: 10, CorrectAnswers: 10}

	// Level 1: correct_answers 5 -> 20, perfect_quiz 1 -> 55, complete_quiz 2 -> 30.
	s, out := e.ApplyQuizResult(s, perfect, nil, nil)
	if out.MissionReward != 75 || len(out.Missions) != 2 {
		t.Errorf("first quiz missions = %+v reward %d, want two completed for 75", out.Missions, out.MissionReward)
	}
	s, out = e.ApplyQuizResult(s, perfect, nil, nil)
	if out.MissionReward != 30 {
		t.Errorf("second quiz reward = %d, want 30", out.MissionReward)
	}
	for range 3 {
		s, out = e.ApplyQuizResult(s, perfect, nil, nil)
		if out.MissionReward != 0 {
			t.Fatalf("completed missions paid again: %d", out.MissionReward)
		}
	}

	if s.Progression.Score != 105 || s.Progression.WeeklyScore != 105 {
		t.Errorf("score/weekly = %d/%d, want 105/105", s.Progression.Score, s.Progression.WeeklyScore)
	}
	for _, m := range s.Missions.List {
		if !m.Completed || m.Progress != m.Goal {
			t.Errorf("mission %s = %+v, want completed and clamped", m.ID, m)
		}
	}
}

func TestApplyQuizResultLevelTracksScore(t *testing.T) {
	e := newTestEngine()
	s := player.New("Chi", 1)

	for _, delta := range []int{30, 149, 0, 275, 12, 600} {
		s, _ = e.ApplyQuizResult(s, player.QuizResult{Score: delta, TotalQuestions: 5, CorrectAnswers: 3}, nil, nil)
		if want := s.Progression.Score/150 + 1; s.Progression.Level != want {
			t.Fatalf("score %d gives level %d, want %d", s.Progression.Score, s.Progression.Level, want)
		}
	}
	if s.Progression.PerfectScoreStreak != 0 {
		t.Errorf("streak = %d after imperfect quizzes", s.Progression.PerfectScoreStreak)
	}
}

func TestApplyQuizResultTrimsHistory(t *testing.T) {
	e := newTestEngine()
	s := player.New("Dung", 2)

	var missed []player.AnsweredQuestion
	var served []player.Question
	for i := range 35 {
		q := player.Question{Question: string(rune('a' + i%26)), Type: player.FillInTheBlank, Answer: "1"}
		served = append(served, q)
		if i < 25 {
			missed = append(missed, player.AnsweredQuestion{Question: q, UserAnswer: "2"})
		}
	}

	next, _ := e.ApplyQuizResult(s, player.QuizResult{TotalQuestions: 35}, missed, served)
	if len(next.History.Missed) != 20 {
		t.Errorf("missed history = %d, want 20", len(next.History.Missed))
	}
	if len(next.History.Served) != 30 {
		t.Errorf("served history = %d, want 30", len(next.History.Served))
	}
	if next.History.Served[29].Question != served[34].Question {
		t.Error("newest served question should be kept last")
	}
	if next.History.Missed[0].Question.Question != missed[5].Question.Question {
		t.Error("oldest missed questions should be dropped first")
	}
}

func TestApplyEventBonusOnce(t *testing.T) {
	e := newTestEngine()
	s := player.New("Giang", 2)
	s.Progression.Score, s.Progression.Level = 1100, 8

	next, out := e.ApplyEventBonus(s, 40, 8)
	if !out.Applied || next.Progression.Score != 1140 || !next.Map.CompletedEvents.Has(8) {
		t.Fatalf("first resolution: applied=%v score=%d", out.Applied, next.Progression.Score)
	}
	if !hasBadge(out.Badges, catalog.BadgeScore1000) {
		t.Error("score milestone should be checked after an event bonus")
	}

	again, out := e.ApplyEventBonus(next, 40, 8)
	if out.Applied || again.Progression.Score != 1140 {
		t.Errorf("replay paid again: applied=%v score=%d", out.Applied, again.Progression.Score)
	}
}

func TestPendingEvent(t *testing.T) {
	e := newTestEngine()
	s := player.New("Ha", 1)
	s.Map.CompletedEvents.Add(13)

	tests := []struct {
		level int
		want  EventKind
	}{
		{8, EventLightning},
		{13, EventNone},
		{7, EventRiddle},
		{3, EventRiddle},
		{9, EventNone},
	}
	for _, tt := range tests {
		if got := e.PendingEvent(s, tt.level); got != tt.want {
			t.Errorf("PendingEvent(%d) = %v, want %v", tt.level, got, tt.want)
		}
	}

	if e.LightningBonus(4) != 40 || e.RiddleBonus(true) != 75 || e.RiddleBonus(false) != 0 {
		t.Error("event bonus rules do not match the defaults")
	}
}

func TestClaimChest(t *testing.T) {
	e := newTestEngine()
	s := player.New("Khoa", 3)

	if _, claim := e.ClaimChest(s, 10); claim.Status != ChestLocked {
		t.Errorf("chest above the player's level: status %v, want locked", claim.Status)
	}

	s.Progression.Score, s.Progression.Level = 1400, 10
	next, claim := e.ClaimChest(s, 10)
	if claim.Status != ChestOpened {
		t.Fatalf("status = %v, want opened", claim.Status)
	}
	if claim.Amount < 25 || claim.Amount > 50 {
		t.Errorf("amount = %d, want within [25, 50]", claim.Amount)
	}
	if next.Progression.Score != 1400+claim.Amount || next.Progression.WeeklyScore != claim.Amount {
		t.Errorf("score/weekly = %d/%d", next.Progression.Score, next.Progression.WeeklyScore)
	}

	again, claim := e.ClaimChest(next, 10)
	if claim.Status != ChestAlreadyClaimed || again.Progression.Score != next.Progression.Score {
		t.Errorf("second claim changed state: status %v", claim.Status)
	}

	if _, claim := e.ClaimChest(next, 9); claim.Status != ChestLocked {
		t.Errorf("level without a chest: status %v, want locked", claim.Status)
	}
}

func TestPurchase(t *testing.T) {
	e := newTestEngine()

	t.Run("insufficient score", func(t *testing.T) {
		s := player.New("Lan", 2)
		s.Progression.Score = 40
		item, _ := catalog.Find(catalog.KindPowerUp, string(player.PowerUpTimeBoost))

		next, _, err := e.Purchase(s, item)
		if !errors.Is(err, ErrInsufficientScore) {
			t.Fatalf("Purchase() error = %v, want ErrInsufficientScore", err)
		}
		if next.Progression.Score != 40 || next.Inventory[player.PowerUpTimeBoost] != 0 {
			t.Error("rejected purchase changed state")
		}
	})

	t.Run("theme", func(t *testing.T) {
		s := player.New("Lan", 2)
		s.Progression.Score, s.Progression.WeeklyScore = 400, 400
		item, _ := catalog.Find(catalog.KindTheme, "ocean")

		next, awarded, err := e.Purchase(s, item)
		if err != nil {
			t.Fatalf("Purchase() failed: %v", err)
		}
		if next.Progression.Score != 150 || next.Progression.WeeklyScore != 400 {
			t.Errorf("score/weekly = %d/%d, want 150/400", next.Progression.Score, next.Progression.WeeklyScore)
		}
		if next.Progression.Level != 2 {
			t.Errorf("level = %d, want it derived from the remaining score", next.Progression.Level)
		}
		if !next.Unlocks.Themes.Has("ocean") || !hasBadge(awarded, catalog.BadgeFirstPurchase) {
			t.Errorf("themes = %v, badges = %+v", next.Unlocks.Themes.Sorted(), awarded)
		}

		if _, _, err := e.Purchase(next, item); !errors.Is(err, ErrAlreadyOwned) {
			t.Errorf("second purchase error = %v, want ErrAlreadyOwned", err)
		}
	})

	t.Run("power-up pack", func(t *testing.T) {
		s := player.New("Lan", 2)
		s.Progression.Score = 100
		item, _ := catalog.Find(catalog.KindPowerUp, string(player.PowerUpHint))

		next, _, err := e.Purchase(s, item)
		if err != nil {
			t.Fatalf("Purchase() failed: %v", err)
		}
		if next.Inventory[player.PowerUpHint] != 2 || next.Progression.Score != 0 {
			t.Errorf("hints = %d, score = %d", next.Inventory[player.PowerUpHint], next.Progression.Score)
		}
	})

	t.Run("unknown item", func(t *testing.T) {
		s := player.New("Lan", 2)
		s.Progression.Score = 10000
		_, _, err := e.Purchase(s, catalog.Item{ID: "gold_crown", Kind: catalog.KindAvatar, Cost: 1})
		if !errors.Is(err, ErrUnknownItem) {
			t.Errorf("Purchase() error = %v, want ErrUnknownItem", err)
		}
	})
}

func TestEquip(t *testing.T) {
	e := newTestEngine()
	s := player.New("Mai", 1)

	if _, err := e.Equip(s, player.CategoryPawn, "pawn_robot"); !errors.Is(err, ErrNotUnlocked) {
		t.Errorf("Equip() unowned error = %v, want ErrNotUnlocked", err)
	}

	s.Unlocks.Pawns.Add("pawn_robot")
	next, err := e.Equip(s, player.CategoryPawn, "pawn_robot")
	if err != nil {
		t.Fatalf("Equip() failed: %v", err)
	}
	if next.Unlocks.Active.Pawn != "pawn_robot" || s.Unlocks.Active.Pawn != player.DefaultPawn {
		t.Errorf("active pawn = %q, input pawn = %q", next.Unlocks.Active.Pawn, s.Unlocks.Active.Pawn)
	}
}

func TestConsumePowerUp(t *testing.T) {
	e := newTestEngine()
	s := player.New("Nam", 1)

	if _, err := e.ConsumePowerUp(s, player.PowerUpSkip); !errors.Is(err, ErrNoPowerUp) {
		t.Errorf("ConsumePowerUp() error = %v, want ErrNoPowerUp", err)
	}

	s.Inventory[player.PowerUpSkip] = 1
	next, err := e.ConsumePowerUp(s, player.PowerUpSkip)
	if err != nil {
		t.Fatalf("ConsumePowerUp() failed: %v", err)
	}
	if next.Inventory[player.PowerUpSkip] != 0 || s.Inventory[player.PowerUpSkip] != 1 {
		t.Error("ConsumePowerUp() should decrement a copy")
	}
}

func TestUpdateGrade(t *testing.T) {
	e := newTestEngine()
	s := player.New("Oanh", 2)
	s.Progression.Score, s.Progression.Level = 800, 6

	if _, err := e.UpdateGrade(s, 6); !errors.Is(err, ErrInvalidGrade) {
		t.Errorf("UpdateGrade(6) error = %v, want ErrInvalidGrade", err)
	}

	next, err := e.UpdateGrade(s, 4)
	if err != nil {
		t.Fatalf("UpdateGrade() failed: %v", err)
	}
	if next.Identity.Grade != 4 || next.Progression.Level != 1 || next.Progression.Score != 800 {
		t.Errorf("after grade change: %+v %+v", next.Identity, next.Progression)
	}
}

func TestRecordCreativeUse(t *testing.T) {
	e := newTestEngine()
	s := player.New("Phuc", 3)

	s, awarded := e.RecordCreativeUse(s)
	if !hasBadge(awarded, catalog.BadgeCreativeSpark) {
		t.Errorf("first creative use badges = %+v", awarded)
	}
	for range 9 {
		s, awarded = e.RecordCreativeUse(s)
	}
	if s.Stats.CreativeQuestionsGenerated != 10 || !hasBadge(awarded, catalog.BadgeAICollaborator) {
		t.Errorf("counter = %d, last badges = %+v", s.Stats.CreativeQuestionsGenerated, awarded)
	}
}

func TestRefresh(t *testing.T) {
	e := newTestEngine()
	s := player.New("Quan", 1)
	s.Progression.Score, s.Progression.WeeklyScore = 500, 120

	next, changed := e.Refresh(s)
	if !changed {
		t.Fatal("Refresh() on a fresh state should regenerate missions")
	}
	if next.Missions.Date != "2026-10-14" || next.Progression.LastWeeklyReset != "2026-10-11" {
		t.Errorf("missions date %s, weekly reset %s", next.Missions.Date, next.Progression.LastWeeklyReset)
	}
	if next.Progression.WeeklyScore != 0 || next.Progression.Score != 500 {
		t.Errorf("weekly/score = %d/%d, want 0/500", next.Progression.WeeklyScore, next.Progression.Score)
	}

	if _, changed := e.Refresh(next); changed {
		t.Error("second Refresh() on the same day should be a no-op")
	}
}

func TestQuestionCache(t *testing.T) {
	e := newTestEngine()
	s := player.New("Son", 2)

	qs := make([]player.Question, 5)
	for i := range qs {
		qs[i] = player.Question{Question: string(rune('A' + i)), Type: player.FillInTheBlank, Answer: "x"}
	}
	s = e.StockQuestions(s, player.TopicLogic, qs)
	if CachedCount(s, player.TopicLogic) != 5 {
		t.Fatalf("CachedCount() = %d, want 5", CachedCount(s, player.TopicLogic))
	}

	s, got := e.TakeCachedQuestions(s, player.TopicLogic, 3)
	if len(got) != 3 || got[0].Question != "A" || CachedCount(s, player.TopicLogic) != 2 {
		t.Errorf("took %d starting with %q, %d left", len(got), got[0].Question, CachedCount(s, player.TopicLogic))
	}

	s, got = e.TakeCachedQuestions(s, player.TopicLogic, 10)
	if len(got) != 2 || CachedCount(s, player.TopicLogic) != 0 {
		t.Errorf("draining took %d, %d left", len(got), CachedCount(s, player.TopicLogic))
	}
	if _, got = e.TakeCachedQuestions(s, player.TopicLogic, 1); got != nil {
		t.Error("empty cache should yield nothing")
	}
}

func TestNewPlayer(t *testing.T) {
	e := newTestEngine()

	if _, err := e.NewPlayer("   ", 2); !errors.Is(err, ErrEmptyName) {
		t.Errorf("NewPlayer(blank) error = %v, want ErrEmptyName", err)
	}
	if _, err := e.NewPlayer("Tam", 0); !errors.Is(err, ErrInvalidGrade) {
		t.Errorf("NewPlayer(grade 0) error = %v, want ErrInvalidGrade", err)
	}
	s, err := e.NewPlayer("  Tam ", 5)
	if err != nil {
		t.Fatalf("NewPlayer() failed: %v", err)
	}
	if s.Identity.Name != "Tam" || s.Progression.Level != 1 || s.Progression.Score != 0 {
		t.Errorf("new player = %+v %+v", s.Identity, s.Progression)
	}
}

func TestMessage(t *testing.T) {
	if Message(nil) != "" {
		t.Error("Message(nil) should be empty")
	}
	if got := Message(ErrInsufficientScore); got == Message(errors.New("other")) {
		t.Errorf("Message(ErrInsufficientScore) = %q, want a specific text", got)
	}
}
