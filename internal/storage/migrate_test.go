package storage

import (
	"testing"

	"github.com/vovakirdan/tui-mathquest/internal/catalog"
	"github.com/vovakirdan/tui-mathquest/internal/player"
)

const legacyDoc = `{
	"name": "Bao",
	"grade": 2,
	"level": 3,
	"score": 320,
	"lastWeeklyReset": "2026-10-04",
	"badges": ["first_quiz", "retired_badge", "math_master"],
	"perfectScoreStreak": 2,
	"incorrectlyAnsweredQuestions": [
		{"question": {"question": "5 + 7 = ?", "type": "fill_in_the_blank", "options": [], "answer": "12", "explanation": ""}, "userAnswer": "11", "explanation": "Count on from 7."}
	],
	"customization": {"activeTheme": "ocean", "activePawn": "pawn_robot", "activeAvatar": "default_avatar"},
	"unlockedThemes": ["default", "ocean"],
	"unlockedPawns": ["default_pawn"],
	"unlockedAvatars": ["default_avatar"],
	"dailyMissions": {
		"lastUpdated": "2026-10-13",
		"missions": [{"id": "complete_quiz_0", "type": "complete_quiz", "description": "Complete 2 challenges.", "goal": 2, "currentProgress": 1, "reward": 30, "isCompleted": false}]
	},
	"creativeQuestionsGenerated": 4,
	"inventory": {"hint": 1},
	"claimedChests": [10],
	"completedEvents": [3, 7]
}`

func TestDecodeLegacy(t *testing.T) {
	st, err := Decode([]byte(legacyDoc))
	if err != nil {
		t.Fatalf("Decode() failed: %v", err)
	}

	if st.Version != player.CurrentVersion || st.Identity.ID == "" {
		t.Errorf("version/id = %d/%q, want current version and a fresh id", st.Version, st.Identity.ID)
	}
	if st.Identity.Name != "Bao" || st.Identity.Grade != 2 {
		t.Errorf("identity = %+v", st.Identity)
	}
	if st.Progression.WeeklyScore != 320 {
		t.Errorf("WeeklyScore = %d, want lifetime score 320 for saves without a weekly field", st.Progression.WeeklyScore)
	}
	if st.Progression.PerfectScoreStreak != 2 || st.Progression.LastWeeklyReset != "2026-10-04" {
		t.Errorf("progression = %+v", st.Progression)
	}

	// Unknown ids are dropped and the master badge needs the full set.
	if !st.Achievements.Has(catalog.BadgeFirstQuiz) {
		t.Error("first_quiz lost in migration")
	}
	if st.Achievements.Has("retired_badge") || st.Achievements.Has(catalog.BadgeMathMaster) {
		t.Errorf("achievements = %v, want only first_quiz", st.Achievements.Sorted())
	}

	// The pawn selection points at an unowned pawn and is repaired.
	if st.Unlocks.Active.Theme != "ocean" || st.Unlocks.Active.Pawn != player.DefaultPawn {
		t.Errorf("active = %+v", st.Unlocks.Active)
	}

	if len(st.Missions.List) != 1 || st.Missions.List[0].Progress != 1 || st.Missions.Date != "2026-10-13" {
		t.Errorf("missions = %+v", st.Missions)
	}
	if len(st.History.Missed) != 1 || st.History.Missed[0].UserAnswer != "11" {
		t.Errorf("missed = %+v", st.History.Missed)
	}
	if !st.Map.ClaimedChests.Has(10) || !st.Map.CompletedEvents.Has(7) {
		t.Errorf("map = %+v", st.Map)
	}
	if st.Inventory[player.PowerUpHint] != 1 || st.Inventory[player.PowerUpSkip] != 0 {
		t.Errorf("inventory = %v", st.Inventory)
	}
	if st.Stats.CreativeQuestionsGenerated != 4 {
		t.Errorf("creative counter = %d, want 4", st.Stats.CreativeQuestionsGenerated)
	}
}

func TestDecodeLegacyKeepsCompleteMasterSet(t *testing.T) {
	ids := append(catalog.BadgeIDsExcept(catalog.BadgeMathMaster), catalog.BadgeMathMaster)
	doc := `{"name": "Vy", "grade": 1, "badges": [`
	for i, id := range ids {
		if i > 0 {
			doc += ","
		}
		doc += `"` + id + `"`
	}
	doc += `]}`

	st, err := Decode([]byte(doc))
	if err != nil {
		t.Fatalf("Decode() failed: %v", err)
	}
	if !st.Achievements.Has(catalog.BadgeMathMaster) {
		t.Error("math_master dropped although every other badge is present")
	}
}

func TestDecodeLegacyWeeklyScore(t *testing.T) {
	st, err := Decode([]byte(`{"name": "Lan", "grade": 3, "score": 500, "weeklyScore": 0}`))
	if err != nil {
		t.Fatalf("Decode() failed: %v", err)
	}
	if st.Progression.WeeklyScore != 0 {
		t.Errorf("WeeklyScore = %d, want the explicit 0", st.Progression.WeeklyScore)
	}
	if st.Progression.Level != 1 || st.Progression.LastWeeklyReset != player.NeverDate {
		t.Errorf("defaults not filled: %+v", st.Progression)
	}
}
