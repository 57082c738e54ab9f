package tui

import (
	"io"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-mathquest/internal/config"
	"github.com/vovakirdan/tui-mathquest/internal/core"
	"github.com/vovakirdan/tui-mathquest/internal/leaderboard"
	"github.com/vovakirdan/tui-mathquest/internal/progression"
	"github.com/vovakirdan/tui-mathquest/internal/questions"
	"github.com/vovakirdan/tui-mathquest/internal/session"
	"github.com/vovakirdan/tui-mathquest/internal/storage"
)

// Services are the collaborators shared by every player session of a process.
// Sessions on the same save slot share one keeper, so a save has a single
// in-memory owner however many times its player connects.
type Services struct {
	Store     *storage.Store
	Engine    *progression.Engine
	Questions *questions.Service
	Board     *leaderboard.Service
	Clock     core.Clock
	Logger    *log.Logger

	mu      sync.Mutex
	keepers map[string]*progression.Keeper
}

// NewServices wires the engines around an open store. Without a provider key
// the question service runs on the offline bank.
func NewServices(store *storage.Store, rules config.Rules, provider config.ProviderConfig, rt core.RuntimeConfig, logger *log.Logger) *Services {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	clock, rng := rt.Clock(), rt.Rand()

	var gen questions.Generator
	if provider.Online() {
		gen = questions.NewOpenAIGenerator(provider, rules)
		logger.Info("question provider configured", "model", provider.Model, "base_url", provider.BaseURL)
	} else {
		logger.Info("no provider key, running on the offline question bank")
	}

	return &Services{
		Store:     store,
		Engine:    progression.NewEngine(rules, rng, clock),
		Questions: questions.NewService(gen, rng, rules, logger.WithPrefix("questions")),
		Board:     leaderboard.NewService(rules.Leaderboard, store, logger.WithPrefix("leaderboard")),
		Clock:     clock,
		Logger:    logger,
		keepers:   make(map[string]*progression.Keeper),
	}
}

// Keeper returns the keeper of the save slot key, creating it on first use.
func (s *Services) Keeper(key string) *progression.Keeper {
	if key == "" {
		key = storage.DefaultSaveKey
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if k, ok := s.keepers[key]; ok {
		return k
	}
	k := progression.NewKeeper(s.Engine, s.Store, key, s.Logger)
	s.keepers[key] = k
	return k
}

// Session creates the orchestrator of the save slot key.
func (s *Services) Session(key string) *session.Orchestrator {
	return session.New(session.Deps{
		Keeper:    s.Keeper(key),
		Questions: s.Questions,
		Board:     s.Board,
		Stats:     s.Store,
		Clock:     s.Clock,
		Logger:    s.Logger.With("save", key),
	})
}
