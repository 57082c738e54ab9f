package leaderboard

import (
	"hash/fnv"
	"io"
	"math"
	"sort"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-mathquest/internal/config"
	"github.com/vovakirdan/tui-mathquest/internal/core"
	"github.com/vovakirdan/tui-mathquest/internal/player"
)

// Rival is a simulated competitor for one week.
type Rival struct {
	Name  string `json:"name"`
	Score int    `json:"score"`
}

// Entry is one ranked leaderboard row.
type Entry struct {
	Rank     int
	Name     string
	Score    int
	IsPlayer bool
}

// Cache persists the generated rival field per save slot and week.
type Cache interface {
	LoadRivals(key, week string) ([]Rival, bool, error)
	SaveRivals(key, week string, rivals []Rival) error
}

// Service produces weekly standings.
type Service struct {
	rules  config.LeaderboardRules
	cache  Cache
	logger *log.Logger
}

// NewService creates a standings service. cache and logger may be nil.
func NewService(rules config.LeaderboardRules, cache Cache, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Service{rules: rules, cache: cache, logger: logger}
}

// WeeklyStandings ranks the weekly score of the player in save slot key
// against the week's rivals. The week identifier is the player's last weekly
// reset date, so standings reseed exactly when the weekly score resets. Each
// slot keeps its own field, sized to its own level and grade.
func (s *Service) WeeklyStandings(key string, p player.State) []Entry {
	week := p.Progression.LastWeeklyReset
	if week == "" {
		week = player.NeverDate
	}
	rivals := s.rivalsFor(key, week, p)

	entries := make([]Entry, 0, len(rivals)+1)
	for _, r := range rivals {
		entries = append(entries, Entry{Name: r.Name, Score: r.Score})
	}
	entries = append(entries, Entry{Name: p.Identity.Name, Score: p.Progression.WeeklyScore, IsPlayer: true})

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Score > entries[j].Score
	})
	for i := range entries {
		entries[i].Rank = i + 1
	}
	return entries
}

func (s *Service) rivalsFor(key, week string, p player.State) []Rival {
	if s.cache != nil {
		rivals, ok, err := s.cache.LoadRivals(key, week)
		if err != nil {
			s.logger.Warn("could not read leaderboard cache", "key", key, "week", week, "error", err)
		} else if ok && len(rivals) > 0 {
			return rivals
		}
	}

	rivals := GenerateRivals(s.rules, week, p.Progression.Level, p.Identity.Grade)
	if s.cache != nil {
		if err := s.cache.SaveRivals(key, week, rivals); err != nil {
			s.logger.Warn("could not write leaderboard cache", "key", key, "week", week, "error", err)
		}
	}
	return rivals
}

// GenerateRivals builds a plausible rival field around the player's level and
// grade. The same week always yields the same draws.
func GenerateRivals(rules config.LeaderboardRules, week string, level, grade int) []Rival {
	rng := core.NewRand(weekSeed(week))
	base := float64(level*rules.ScorePerLevel + grade*rules.ScorePerGrade)

	rivals := make([]Rival, len(rules.Rivals))
	for i, name := range rules.Rivals {
		spread := (rng.Float64() - 0.4) * base
		bonus := rng.Float64() * float64(rules.Spread)
		score := int(math.Floor(base + spread + bonus))
		rivals[i] = Rival{Name: name, Score: max(0, score)}
	}
	return rivals
}

func weekSeed(week string) int64 {
	h := fnv.New64a()
	h.Write([]byte(week)) //nolint:errcheck // hash writes never fail
	seed := int64(h.Sum64() &^ (1 << 63))
	if seed == 0 {
		seed = 1
	}
	return seed
}
