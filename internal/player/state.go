// Package player defines the persisted player aggregate.
// Everything the game remembers about a learner lives in State and is saved as one document.
package player

import (
	"maps"
	"slices"

	"github.com/google/uuid"

	"github.com/vovakirdan/tui-mathquest/internal/core"
)

// CurrentVersion is the save document layout written by this build.
const CurrentVersion = 1

// NeverDate is the sentinel for "no reset or refresh has happened yet".
const NeverDate = "2000-01-01"

// Default cosmetic ids, always owned.
const (
	DefaultTheme  = "default"
	DefaultPawn   = "default_pawn"
	DefaultAvatar = "default_avatar"
)

// Grade bounds.
const (
	MinGrade = 1
	MaxGrade = 5
)

// PowerUp is a consumable in-quiz item kind.
type PowerUp string

const (
	PowerUpHint      PowerUp = "hint"
	PowerUpSkip      PowerUp = "skip"
	PowerUpTimeBoost PowerUp = "time_boost"
)

// PowerUps lists every power-up kind in display order.
var PowerUps = []PowerUp{PowerUpTimeBoost, PowerUpHint, PowerUpSkip}

// Category is a cosmetic unlock category.
type Category string

const (
	CategoryTheme  Category = "theme"
	CategoryPawn   Category = "pawn"
	CategoryAvatar Category = "avatar"
)

// Categories lists cosmetic categories in display order.
var Categories = []Category{CategoryTheme, CategoryPawn, CategoryAvatar}

// State is the root aggregate. It is replaced wholesale by named transitions
// and written to storage after every committed change.
type State struct {
	Version       int                  `json:"version"`
	Identity      Identity             `json:"identity"`
	Progression   Progression          `json:"progression"`
	Inventory     map[PowerUp]int      `json:"inventory"`
	Unlocks       Unlocks              `json:"unlocks"`
	Achievements  core.Set[string]     `json:"achievements"`
	Missions      Missions             `json:"missions"`
	History       History              `json:"history"`
	Map           MapState             `json:"map"`
	QuestionCache map[Topic][]Question `json:"question_cache"`
	Stats         Stats                `json:"stats"`
}

// Identity names the learner.
type Identity struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Grade int    `json:"grade"`
}

// Progression tracks experience and standing.
type Progression struct {
	Level              int    `json:"level"`
	Score              int    `json:"score"`
	WeeklyScore        int    `json:"weekly_score"`
	LastWeeklyReset    string `json:"last_weekly_reset"`
	PerfectScoreStreak int    `json:"perfect_score_streak"`
}

// Unlocks holds owned cosmetics and the active selection per category.
type Unlocks struct {
	Themes  core.Set[string] `json:"themes"`
	Pawns   core.Set[string] `json:"pawns"`
	Avatars core.Set[string] `json:"avatars"`
	Active  Selection        `json:"active"`
}

// Selection is the set of equipped cosmetics.
type Selection struct {
	Theme  string `json:"theme"`
	Pawn   string `json:"pawn"`
	Avatar string `json:"avatar"`
}

// MissionType selects the progress rule of a daily mission.
type MissionType string

const (
	MissionCorrectAnswers MissionType = "correct_answers"
	MissionCompleteQuiz   MissionType = "complete_quiz"
	MissionPerfectQuiz    MissionType = "perfect_quiz"
)

// Mission is one daily goal.
type Mission struct {
	ID          string      `json:"id"`
	Type        MissionType `json:"type"`
	Description string      `json:"description"`
	Goal        int         `json:"goal"`
	Progress    int         `json:"progress"`
	Reward      int         `json:"reward"`
	Completed   bool        `json:"completed"`
}

// Missions is the day's mission list and the date it was generated for.
type Missions struct {
	Date string    `json:"date"`
	List []Mission `json:"list"`
}

// History keeps bounded FIFO buffers of past questions.
type History struct {
	Missed []AnsweredQuestion `json:"missed"`
	Served []Question         `json:"served"`
}

// MapState records one-shot adventure map rewards by level number.
type MapState struct {
	ClaimedChests   core.Set[int] `json:"claimed_chests"`
	CompletedEvents core.Set[int] `json:"completed_events"`
}

// Stats are cumulative counters feeding badge predicates.
type Stats struct {
	QuizzesCompleted           int           `json:"quizzes_completed"`
	CreativeQuestionsGenerated int           `json:"creative_questions_generated"`
	PerfectByTopic             map[Topic]int `json:"perfect_by_topic"`
}

// New creates the first-run state for a learner.
func New(name string, grade int) State {
	s := State{
		Version: CurrentVersion,
		Identity: Identity{
			ID:    uuid.NewString(),
			Name:  name,
			Grade: grade,
		},
		Progression: Progression{
			Level:           1,
			LastWeeklyReset: NeverDate,
		},
		Missions: Missions{Date: NeverDate},
	}
	s.Normalize()
	return s
}

// Normalize fills missing collections and repairs selections that point at
// unowned cosmetics. It is applied after every load and migration.
func (s *State) Normalize() {
	if s.Version == 0 {
		s.Version = CurrentVersion
	}
	if s.Identity.ID == "" {
		s.Identity.ID = uuid.NewString()
	}
	if s.Identity.Grade < MinGrade || s.Identity.Grade > MaxGrade {
		s.Identity.Grade = MinGrade
	}
	if s.Progression.Level < 1 {
		s.Progression.Level = 1
	}
	if s.Progression.Score < 0 {
		s.Progression.Score = 0
	}
	if s.Progression.WeeklyScore < 0 {
		s.Progression.WeeklyScore = 0
	}
	if s.Progression.PerfectScoreStreak < 0 {
		s.Progression.PerfectScoreStreak = 0
	}
	if s.Progression.LastWeeklyReset == "" {
		s.Progression.LastWeeklyReset = NeverDate
	}
	if s.Missions.Date == "" {
		s.Missions.Date = NeverDate
	}
	for i := range s.Missions.List {
		m := &s.Missions.List[i]
		if m.Progress > m.Goal {
			m.Progress = m.Goal
		}
		if m.Progress < 0 {
			m.Progress = 0
		}
	}

	if s.Inventory == nil {
		s.Inventory = make(map[PowerUp]int, len(PowerUps))
	}
	for _, p := range PowerUps {
		if s.Inventory[p] < 0 {
			s.Inventory[p] = 0
		}
		if _, ok := s.Inventory[p]; !ok {
			s.Inventory[p] = 0
		}
	}

	if s.Unlocks.Themes == nil {
		s.Unlocks.Themes = core.NewSet[string]()
	}
	if s.Unlocks.Pawns == nil {
		s.Unlocks.Pawns = core.NewSet[string]()
	}
	if s.Unlocks.Avatars == nil {
		s.Unlocks.Avatars = core.NewSet[string]()
	}
	s.Unlocks.Themes.Add(DefaultTheme)
	s.Unlocks.Pawns.Add(DefaultPawn)
	s.Unlocks.Avatars.Add(DefaultAvatar)
	if !s.Unlocks.Themes.Has(s.Unlocks.Active.Theme) {
		s.Unlocks.Active.Theme = DefaultTheme
	}
	if !s.Unlocks.Pawns.Has(s.Unlocks.Active.Pawn) {
		s.Unlocks.Active.Pawn = DefaultPawn
	}
	if !s.Unlocks.Avatars.Has(s.Unlocks.Active.Avatar) {
		s.Unlocks.Active.Avatar = DefaultAvatar
	}

	if s.Achievements == nil {
		s.Achievements = core.NewSet[string]()
	}
	if s.Map.ClaimedChests == nil {
		s.Map.ClaimedChests = core.NewSet[int]()
	}
	if s.Map.CompletedEvents == nil {
		s.Map.CompletedEvents = core.NewSet[int]()
	}
	if s.QuestionCache == nil {
		s.QuestionCache = make(map[Topic][]Question)
	}
	if s.Stats.PerfectByTopic == nil {
		s.Stats.PerfectByTopic = make(map[Topic]int)
	}
}

// Owned returns the unlock set for a category.
func (u Unlocks) Owned(c Category) core.Set[string] {
	switch c {
	case CategoryTheme:
		return u.Themes
	case CategoryPawn:
		return u.Pawns
	case CategoryAvatar:
		return u.Avatars
	default:
		return nil
	}
}

// ActiveID returns the equipped id for a category.
func (s Selection) ActiveID(c Category) string {
	switch c {
	case CategoryTheme:
		return s.Theme
	case CategoryPawn:
		return s.Pawn
	case CategoryAvatar:
		return s.Avatar
	default:
		return ""
	}
}

// With returns a selection with the category's slot set to id.
func (s Selection) With(c Category, id string) Selection {
	switch c {
	case CategoryTheme:
		s.Theme = id
	case CategoryPawn:
		s.Pawn = id
	case CategoryAvatar:
		s.Avatar = id
	}
	return s
}

// Clone returns a deep copy so transitions never alias the previous snapshot.
func (s State) Clone() State {
	out := s
	out.Inventory = maps.Clone(s.Inventory)
	out.Unlocks.Themes = s.Unlocks.Themes.Clone()
	out.Unlocks.Pawns = s.Unlocks.Pawns.Clone()
	out.Unlocks.Avatars = s.Unlocks.Avatars.Clone()
	out.Achievements = s.Achievements.Clone()
	out.Missions.List = slices.Clone(s.Missions.List)
	out.Map.ClaimedChests = s.Map.ClaimedChests.Clone()
	out.Map.CompletedEvents = s.Map.CompletedEvents.Clone()
	out.Stats.PerfectByTopic = maps.Clone(s.Stats.PerfectByTopic)

	if s.History.Missed != nil {
		out.History.Missed = make([]AnsweredQuestion, len(s.History.Missed))
		for i, a := range s.History.Missed {
			a.Question = a.Question.Clone()
			out.History.Missed[i] = a
		}
	}
	out.History.Served = cloneQuestions(s.History.Served)

	if s.QuestionCache != nil {
		out.QuestionCache = make(map[Topic][]Question, len(s.QuestionCache))
		for t, qs := range s.QuestionCache {
			out.QuestionCache[t] = cloneQuestions(qs)
		}
	}
	return out
}

func cloneQuestions(qs []Question) []Question {
	if qs == nil {
		return nil
	}
	out := make([]Question, len(qs))
	for i, q := range qs {
		out[i] = q.Clone()
	}
	return out
}

// TrimTail keeps at most limit trailing elements, dropping the oldest first.
func TrimTail[T any](items []T, limit int) []T {
	if limit <= 0 {
		return nil
	}
	if len(items) <= limit {
		return items
	}
	return slices.Clone(items[len(items)-limit:])
}
