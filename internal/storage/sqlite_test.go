package storage

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/vovakirdan/tui-mathquest/internal/leaderboard"
	"github.com/vovakirdan/tui-mathquest/internal/player"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "nested", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Check that the file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestLoadStateMissing(t *testing.T) {
	store := openTestStore(t)

	_, err := store.LoadState(DefaultSaveKey)
	if !errors.Is(err, ErrNoSave) {
		t.Errorf("LoadState() error = %v, want ErrNoSave", err)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	store := openTestStore(t)

	s := player.New("Minh", 3)
	s.Progression = player.Progression{Level: 4, Score: 480, WeeklyScore: 200, LastWeeklyReset: "2026-10-11", PerfectScoreStreak: 1}
	s.Unlocks.Pawns.Add("pawn_robot")
	s.Unlocks.Active.Pawn = "pawn_robot"
	s.Inventory[player.PowerUpHint] = 2
	s.Map.ClaimedChests.Add(10)
	s.Achievements.Add("first_quiz")
	s.QuestionCache[player.TopicGeometry] = []player.Question{
		{Question: "How many sides does a square have?", Type: player.MultipleChoice, Options: []string{"3", "4"}, Answer: "4"},
	}

	if err := store.SaveState(DefaultSaveKey, s); err != nil {
		t.Fatalf("SaveState() failed: %v", err)
	}
	got, err := store.LoadState(DefaultSaveKey)
	if err != nil {
		t.Fatalf("LoadState() failed: %v", err)
	}
	if !reflect.DeepEqual(got, s) {
		t.Errorf("round trip mismatch\n got: %+v\nwant: %+v", got, s)
	}

	// Overwrite replaces the document.
	s.Progression.Score = 500
	if err := store.SaveState(DefaultSaveKey, s); err != nil {
		t.Fatalf("SaveState() overwrite failed: %v", err)
	}
	got, _ = store.LoadState(DefaultSaveKey)
	if got.Progression.Score != 500 {
		t.Errorf("Score after overwrite = %d, want 500", got.Progression.Score)
	}

	saves, err := store.ListSaves()
	if err != nil {
		t.Fatalf("ListSaves() failed: %v", err)
	}
	if len(saves) != 1 || saves[0].Key != DefaultSaveKey {
		t.Errorf("ListSaves() = %+v, want one %q slot", saves, DefaultSaveKey)
	}
}

func TestLoadStateCorrupt(t *testing.T) {
	store := openTestStore(t)

	tests := []struct {
		name string
		doc  string
	}{
		{"not json", "{nope"},
		{"null", "null"},
		{"future version", `{"version": 99}`},
		{"wrong types", `{"version": 1, "progression": "lots"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := store.SaveRaw("k", []byte(tt.doc)); err != nil {
				t.Fatalf("SaveRaw() failed: %v", err)
			}
			_, err := store.LoadState("k")
			if !errors.Is(err, ErrCorruptSave) {
				t.Errorf("LoadState() error = %v, want ErrCorruptSave", err)
			}
		})
	}
}

func TestClearState(t *testing.T) {
	store := openTestStore(t)

	if err := store.SaveState("a", player.New("A", 1)); err != nil {
		t.Fatalf("SaveState() failed: %v", err)
	}
	if _, err := store.LogQuiz("a", player.QuizResult{Score: 50, TotalQuestions: 5, CorrectAnswers: 5}); err != nil {
		t.Fatalf("LogQuiz() failed: %v", err)
	}
	if err := store.SaveState("b", player.New("B", 1)); err != nil {
		t.Fatalf("SaveState() failed: %v", err)
	}

	if err := store.ClearState("a"); err != nil {
		t.Fatalf("ClearState() failed: %v", err)
	}
	if _, err := store.LoadState("a"); !errors.Is(err, ErrNoSave) {
		t.Errorf("LoadState(a) after clear error = %v, want ErrNoSave", err)
	}
	if stats, _ := store.QuizStats("a"); stats.Quizzes != 0 {
		t.Errorf("quiz log survived clear: %d entries", stats.Quizzes)
	}
	if _, err := store.LoadState("b"); err != nil {
		t.Errorf("clearing a touched b: %v", err)
	}
}

func TestQuizLog(t *testing.T) {
	store := openTestStore(t)

	results := []player.QuizResult{
		{Score: 80, TotalQuestions: 10, CorrectAnswers: 7, Topic: player.TopicLogic},
		{Score: 150, TotalQuestions: 10, CorrectAnswers: 10, Topic: player.TopicGeometry},
		{Score: 20, TotalQuestions: 5, CorrectAnswers: 2, Topic: player.TopicLogic},
	}
	for _, r := range results {
		if _, err := store.LogQuiz("me", r); err != nil {
			t.Fatalf("LogQuiz() failed: %v", err)
		}
	}
	// Different save
	if _, err := store.LogQuiz("other", player.QuizResult{Score: 999, TotalQuestions: 1, CorrectAnswers: 1}); err != nil {
		t.Fatalf("LogQuiz() failed: %v", err)
	}

	stats, err := store.QuizStats("me")
	if err != nil {
		t.Fatalf("QuizStats() failed: %v", err)
	}
	if stats.Quizzes != 3 || stats.BestScore != 150 || stats.Correct != 19 || stats.Answered != 25 {
		t.Errorf("QuizStats() = %+v", stats)
	}
	if acc := stats.Accuracy(); acc < 0.75 || acc > 0.77 {
		t.Errorf("Accuracy() = %v, want 0.76", acc)
	}

	recent, err := store.RecentQuizzes("me", 2)
	if err != nil {
		t.Fatalf("RecentQuizzes() failed: %v", err)
	}
	if len(recent) != 2 {
		t.Fatalf("RecentQuizzes() returned %d entries, want 2", len(recent))
	}
	if recent[0].Score != 20 || recent[0].Topic != player.TopicLogic {
		t.Errorf("newest entry = %+v, want the 20-point logic quiz", recent[0])
	}

	empty, err := store.QuizStats("nobody")
	if err != nil || empty.Quizzes != 0 || empty.Accuracy() != 0 {
		t.Errorf("QuizStats(nobody) = %+v, %v", empty, err)
	}
}

func TestLeaderboardCache(t *testing.T) {
	store := openTestStore(t)

	if _, ok, err := store.LoadRivals("progress", "2026-10-11"); ok || err != nil {
		t.Fatalf("LoadRivals() on empty cache = %v, %v", ok, err)
	}

	rivals := []leaderboard.Rival{{Name: "Gia Hân", Score: 310}, {Name: "Tùng Lâm", Score: 120}}
	if err := store.SaveRivals("progress", "2026-10-11", rivals); err != nil {
		t.Fatalf("SaveRivals() failed: %v", err)
	}
	got, ok, err := store.LoadRivals("progress", "2026-10-11")
	if err != nil || !ok || !reflect.DeepEqual(got, rivals) {
		t.Errorf("LoadRivals() = %v, %v, %v", got, ok, err)
	}
	if _, ok, _ := store.LoadRivals("progress:bob", "2026-10-11"); ok {
		t.Error("another save slot sees this slot's rivals")
	}

	other := []leaderboard.Rival{{Name: "Minh Khôi", Score: 2400}}
	if err := store.SaveRivals("progress:bob", "2026-10-11", other); err != nil {
		t.Fatalf("SaveRivals() failed: %v", err)
	}
	if got, _, _ := store.LoadRivals("progress", "2026-10-11"); !reflect.DeepEqual(got, rivals) {
		t.Errorf("slot rivals overwritten by another slot: %v", got)
	}

	if err := store.SaveRivals("progress", "2026-10-18", rivals[:1]); err != nil {
		t.Fatalf("SaveRivals() failed: %v", err)
	}
	if _, ok, _ := store.LoadRivals("progress", "2026-10-11"); ok {
		t.Error("older week should be pruned")
	}
	if _, ok, _ := store.LoadRivals("progress:bob", "2026-10-11"); !ok {
		t.Error("pruning one slot dropped another slot's week")
	}

	if err := store.ClearState("progress:bob"); err != nil {
		t.Fatalf("ClearState() failed: %v", err)
	}
	if _, ok, _ := store.LoadRivals("progress:bob", "2026-10-11"); ok {
		t.Error("ClearState() kept the slot's rivals")
	}
}
