package storage

import (
	"encoding/json"
	"fmt"

	"github.com/vovakirdan/tui-mathquest/internal/catalog"
	"github.com/vovakirdan/tui-mathquest/internal/core"
	"github.com/vovakirdan/tui-mathquest/internal/player"
)

// Decode parses a save document of any known layout into the current State.
//
// Documents without a "version" field are the camelCase layout written by the
// browser edition; they are converted field by field. Unknown badge ids are
// dropped, and the master badge is kept only if the rest of the set is complete.
func Decode(data []byte) (player.State, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return player.State{}, fmt.Errorf("%w: %v", ErrCorruptSave, err)
	}
	if fields == nil {
		return player.State{}, fmt.Errorf("%w: empty document", ErrCorruptSave)
	}

	var version int
	if raw, ok := fields["version"]; ok {
		if err := json.Unmarshal(raw, &version); err != nil {
			return player.State{}, fmt.Errorf("%w: bad version: %v", ErrCorruptSave, err)
		}
	}

	var st player.State
	switch {
	case version == 0:
		var legacy legacyProgress
		if err := json.Unmarshal(data, &legacy); err != nil {
			return player.State{}, fmt.Errorf("%w: %v", ErrCorruptSave, err)
		}
		st = legacy.toState()
	case version == player.CurrentVersion:
		if err := json.Unmarshal(data, &st); err != nil {
			return player.State{}, fmt.Errorf("%w: %v", ErrCorruptSave, err)
		}
	default:
		return player.State{}, fmt.Errorf("%w: unsupported version %d", ErrCorruptSave, version)
	}

	st.Normalize()
	return st, nil
}

// legacyProgress mirrors the browser edition's saved progress object.
type legacyProgress struct {
	Name                         string                             `json:"name"`
	Grade                        int                                `json:"grade"`
	Level                        int                                `json:"level"`
	Score                        int                                `json:"score"`
	WeeklyScore                  *int                               `json:"weeklyScore"`
	LastWeeklyReset              string                             `json:"lastWeeklyReset"`
	Badges                       []string                           `json:"badges"`
	PerfectScoreStreak           int                                `json:"perfectScoreStreak"`
	IncorrectlyAnsweredQuestions []legacyAnswered                   `json:"incorrectlyAnsweredQuestions"`
	Customization                legacyCustomization                `json:"customization"`
	UnlockedThemes               []string                           `json:"unlockedThemes"`
	UnlockedPawns                []string                           `json:"unlockedPawns"`
	UnlockedAvatars              []string                           `json:"unlockedAvatars"`
	DailyMissions                legacyMissions                     `json:"dailyMissions"`
	QuestionHistory              []player.Question                  `json:"questionHistory"`
	CreativeQuestionsGenerated   int                                `json:"creativeQuestionsGenerated"`
	QuestionCache                map[player.Topic][]player.Question `json:"questionCache"`
	Inventory                    map[player.PowerUp]int             `json:"inventory"`
	ClaimedChests                []int                              `json:"claimedChests"`
	CompletedEvents              []int                              `json:"completedEvents"`
}

type legacyCustomization struct {
	ActiveTheme  string `json:"activeTheme"`
	ActivePawn   string `json:"activePawn"`
	ActiveAvatar string `json:"activeAvatar"`
}

type legacyAnswered struct {
	Question    player.Question `json:"question"`
	UserAnswer  string          `json:"userAnswer"`
	Explanation string          `json:"explanation"`
}

type legacyMissions struct {
	Missions    []legacyMission `json:"missions"`
	LastUpdated string          `json:"lastUpdated"`
}

type legacyMission struct {
	ID              string             `json:"id"`
	Type            player.MissionType `json:"type"`
	Description     string             `json:"description"`
	Goal            int                `json:"goal"`
	CurrentProgress int                `json:"currentProgress"`
	Reward          int                `json:"reward"`
	IsCompleted     bool               `json:"isCompleted"`
}

func (l legacyProgress) toState() player.State {
	st := player.State{
		Version: player.CurrentVersion,
		Identity: player.Identity{
			Name:  l.Name,
			Grade: l.Grade,
		},
		Progression: player.Progression{
			Level:              l.Level,
			Score:              l.Score,
			LastWeeklyReset:    l.LastWeeklyReset,
			PerfectScoreStreak: l.PerfectScoreStreak,
		},
		Inventory: l.Inventory,
		Unlocks: player.Unlocks{
			Themes:  core.NewSet(l.UnlockedThemes...),
			Pawns:   core.NewSet(l.UnlockedPawns...),
			Avatars: core.NewSet(l.UnlockedAvatars...),
			Active: player.Selection{
				Theme:  l.Customization.ActiveTheme,
				Pawn:   l.Customization.ActivePawn,
				Avatar: l.Customization.ActiveAvatar,
			},
		},
		Missions: player.Missions{Date: l.DailyMissions.LastUpdated},
		History: player.History{
			Served: l.QuestionHistory,
		},
		Map: player.MapState{
			ClaimedChests:   core.NewSet(l.ClaimedChests...),
			CompletedEvents: core.NewSet(l.CompletedEvents...),
		},
		QuestionCache: l.QuestionCache,
		Stats: player.Stats{
			CreativeQuestionsGenerated: l.CreativeQuestionsGenerated,
		},
	}

	// Older saves predate the weekly board and start from their lifetime score.
	if l.WeeklyScore != nil {
		st.Progression.WeeklyScore = *l.WeeklyScore
	} else {
		st.Progression.WeeklyScore = l.Score
	}

	for _, m := range l.DailyMissions.Missions {
		st.Missions.List = append(st.Missions.List, player.Mission{
			ID:          m.ID,
			Type:        m.Type,
			Description: m.Description,
			Goal:        m.Goal,
			Progress:    m.CurrentProgress,
			Reward:      m.Reward,
			Completed:   m.IsCompleted,
		})
	}
	for _, a := range l.IncorrectlyAnsweredQuestions {
		st.History.Missed = append(st.History.Missed, player.AnsweredQuestion{
			Question:    a.Question,
			UserAnswer:  a.UserAnswer,
			Explanation: a.Explanation,
		})
	}

	st.Achievements = core.NewSet[string]()
	for _, id := range l.Badges {
		if _, ok := catalog.FindBadge(id); ok && id != catalog.BadgeMathMaster {
			st.Achievements.Add(id)
		}
	}
	if core.NewSet(l.Badges...).Has(catalog.BadgeMathMaster) &&
		st.Achievements.ContainsAll(catalog.BadgeIDsExcept(catalog.BadgeMathMaster)) {
		st.Achievements.Add(catalog.BadgeMathMaster)
	}
	return st
}
