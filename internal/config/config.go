// Package config provides YAML-based game rule loading and
// environment-based provider settings for mathquest.
package config

import (
	"fmt"
	"strings"
	"time"
)

// Rules contains every tunable constant of the reward and session engines.
type Rules struct {
	Progression ProgressionRules `yaml:"progression"`
	Events      EventRules       `yaml:"events"`
	Map         MapRules         `yaml:"map"`
	Quiz        QuizRules        `yaml:"quiz"`
	Missions    MissionRules     `yaml:"missions"`
	Weekly      WeeklyRules      `yaml:"weekly"`
	Leaderboard LeaderboardRules `yaml:"leaderboard"`
	Transition  TransitionRules  `yaml:"transition"`
	Quota       QuotaRules       `yaml:"quota"`
	Content     ContentRules     `yaml:"content"`
	Difficulty  []DifficultyBand `yaml:"difficulty"`
}

// ProgressionRules defines leveling and history buffers.
type ProgressionRules struct {
	XPPerLevel    int `yaml:"xp_per_level"`
	MissedHistory int `yaml:"missed_history"`
	ServedHistory int `yaml:"served_history"`
}

// EventRules defines the map levels that trigger special events and their payouts.
type EventRules struct {
	LightningLevels          []int `yaml:"lightning_levels"`
	RiddleLevels             []int `yaml:"riddle_levels"`
	LightningBonusPerCorrect int   `yaml:"lightning_bonus_per_correct"`
	RiddleBonus              int   `yaml:"riddle_bonus"`
	LightningQuestions       int   `yaml:"lightning_questions"`
	LightningSeconds         int   `yaml:"lightning_seconds"`
}

// MapRules defines the adventure map layout.
type MapRules struct {
	TotalLevels    int   `yaml:"total_levels"`
	ChestLevels    []int `yaml:"chest_levels"`
	GateLevels     []int `yaml:"gate_levels"`
	ChestRewardMin int   `yaml:"chest_reward_min"`
	ChestRewardMax int   `yaml:"chest_reward_max"`
}

// QuizRules defines in-round scoring and sizing.
type QuizRules struct {
	PointsPerCorrect    int `yaml:"points_per_correct"`
	ComboBonus          int `yaml:"combo_bonus"`
	TimeLimitSeconds    int `yaml:"time_limit_seconds"`
	TimeBoostSeconds    int `yaml:"time_boost_seconds"`
	Questions           int `yaml:"questions"`
	FirstGradeQuestions int `yaml:"first_grade_questions"`
	FetchBatch          int `yaml:"fetch_batch"`
}

// MissionRules defines daily mission generation.
type MissionRules struct {
	DailyCount int `yaml:"daily_count"`
}

// WeeklyRules defines the weekly leaderboard boundary.
type WeeklyRules struct {
	WeekStart string `yaml:"week_start"`
}

// LeaderboardRules defines the simulated rival field.
type LeaderboardRules struct {
	Rivals        []string `yaml:"rivals"`
	ScorePerLevel int      `yaml:"score_per_level"`
	ScorePerGrade int      `yaml:"score_per_grade"`
	Spread        int      `yaml:"spread"`
}

// TransitionRules defines screen animation phases.
type TransitionRules struct {
	ExitMS  int `yaml:"exit_ms"`
	EnterMS int `yaml:"enter_ms"`
}

// QuotaRules defines how long AI features stay disabled after a quota signal.
type QuotaRules struct {
	CooldownMinutes int `yaml:"cooldown_minutes"`
}

// ContentRules defines generated content settings.
type ContentRules struct {
	Language string `yaml:"language"`
}

// DifficultyBand describes question difficulty up to a level.
type DifficultyBand struct {
	MaxLevel    int    `yaml:"max_level"`
	Description string `yaml:"description"`
}

// QuestionsFor returns the quiz length for a grade.
func (q QuizRules) QuestionsFor(grade int) int {
	if grade <= 1 && q.FirstGradeQuestions > 0 {
		return q.FirstGradeQuestions
	}
	return q.Questions
}

// TimeLimit returns the quiz clock.
func (q QuizRules) TimeLimit() time.Duration {
	return time.Duration(q.TimeLimitSeconds) * time.Second
}

// TimeBoost returns the time added by a time boost.
func (q QuizRules) TimeBoost() time.Duration {
	return time.Duration(q.TimeBoostSeconds) * time.Second
}

// LightningLimit returns the lightning round clock.
func (e EventRules) LightningLimit() time.Duration {
	return time.Duration(e.LightningSeconds) * time.Second
}

// Exit returns the exit animation duration.
func (t TransitionRules) Exit() time.Duration {
	return time.Duration(t.ExitMS) * time.Millisecond
}

// Enter returns the enter animation duration.
func (t TransitionRules) Enter() time.Duration {
	return time.Duration(t.EnterMS) * time.Millisecond
}

// Cooldown returns how long AI features stay disabled.
func (q QuotaRules) Cooldown() time.Duration {
	return time.Duration(q.CooldownMinutes) * time.Minute
}

var weekdays = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// StartDay returns the configured first day of the week.
func (w WeeklyRules) StartDay() time.Weekday {
	if d, ok := weekdays[strings.ToLower(strings.TrimSpace(w.WeekStart))]; ok {
		return d
	}
	return time.Sunday
}

// Validate rejects rule sets that would break engine invariants.
func (r Rules) Validate() error {
	if r.Progression.XPPerLevel <= 0 {
		return fmt.Errorf("config: xp_per_level must be positive, got %d", r.Progression.XPPerLevel)
	}
	if r.Map.ChestRewardMin < 0 || r.Map.ChestRewardMax < r.Map.ChestRewardMin {
		return fmt.Errorf("config: invalid chest reward range [%d, %d]", r.Map.ChestRewardMin, r.Map.ChestRewardMax)
	}
	if r.Quiz.Questions <= 0 {
		return fmt.Errorf("config: quiz questions must be positive, got %d", r.Quiz.Questions)
	}
	if r.Missions.DailyCount < 0 || r.Missions.DailyCount > 3 {
		return fmt.Errorf("config: daily_count must be between 0 and 3, got %d", r.Missions.DailyCount)
	}
	if _, ok := weekdays[strings.ToLower(strings.TrimSpace(r.Weekly.WeekStart))]; !ok {
		return fmt.Errorf("config: unknown week_start %q", r.Weekly.WeekStart)
	}
	for _, lvl := range r.Events.LightningLevels {
		for _, riddle := range r.Events.RiddleLevels {
			if lvl == riddle {
				return fmt.Errorf("config: level %d is both a lightning and a riddle level", lvl)
			}
		}
	}
	return nil
}
