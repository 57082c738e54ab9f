package config

import (
	_ "embed"
)

//go:embed defaults/rules.yaml
var defaultRulesYAML []byte

// DefaultRules returns the built-in rule set. It matches defaults/rules.yaml.
func DefaultRules() Rules {
	return Rules{
		Progression: ProgressionRules{
			XPPerLevel:    150,
			MissedHistory: 20,
			ServedHistory: 30,
		},
		Events: EventRules{
			LightningLevels:          []int{8, 13, 18},
			RiddleLevels:             []int{3, 7, 12, 17},
			LightningBonusPerCorrect: 10,
			RiddleBonus:              75,
			LightningQuestions:       5,
			LightningSeconds:         60,
		},
		Map: MapRules{
			TotalLevels:    20,
			ChestLevels:    []int{10, 20},
			GateLevels:     []int{5, 15},
			ChestRewardMin: 25,
			ChestRewardMax: 50,
		},
		Quiz: QuizRules{
			PointsPerCorrect:    10,
			ComboBonus:          2,
			TimeLimitSeconds:    900,
			TimeBoostSeconds:    30,
			Questions:           10,
			FirstGradeQuestions: 5,
			FetchBatch:          20,
		},
		Missions: MissionRules{DailyCount: 3},
		Weekly:   WeeklyRules{WeekStart: "sunday"},
		Leaderboard: LeaderboardRules{
			Rivals: []string{
				"Minh Anh", "Bảo Châu", "Gia Hân", "Khánh An", "Tùng Lâm",
				"Hoàng Bách", "Quốc Trung", "Phương Linh", "Đức Minh", "Nhật Mai",
				"Thành Long", "Bảo Ngọc", "Thùy Dương", "Gia Bảo", "Mạnh Hùng",
			},
			ScorePerLevel: 40,
			ScorePerGrade: 100,
			Spread:        150,
		},
		Transition: TransitionRules{ExitMS: 400, EnterMS: 400},
		Quota:      QuotaRules{CooldownMinutes: 60},
		Content:    ContentRules{Language: "English"},
		Difficulty: []DifficultyBand{
			{MaxLevel: 3, Description: "Very gentle: single-digit addition and subtraction without carrying, one-step word problems."},
			{MaxLevel: 5, Description: "Gentle: addition and subtraction with carrying up to 20, times tables for 2 and 5."},
			{MaxLevel: 6, Description: "Average: two-digit arithmetic with carrying, times tables 2 to 9, two-step word problems."},
			{MaxLevel: 7, Description: "Good: three-digit numbers, simple fractions such as 1/2 and 1/4, time and money."},
			{MaxLevel: 8, Description: "Strong: all four operations with larger numbers, number patterns, multi-step problems with light distractors."},
			{MaxLevel: 10, Description: "Excellent: multi-fact word problems with distracting information, place-value reasoning."},
			{MaxLevel: 99, Description: "Prodigy: trick questions and easy olympiad problems needing creative multi-step reasoning."},
		},
	}
}
