package progression

import (
	"errors"
	"io"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-mathquest/internal/player"
	"github.com/vovakirdan/tui-mathquest/internal/storage"
)

// Store is the persistence the Keeper writes through to.
type Store interface {
	LoadState(key string) (player.State, error)
	SaveState(key string, s player.State) error
	ClearState(key string) error
}

// QuizLogger is implemented by stores that keep a per-quiz log.
type QuizLogger interface {
	LogQuiz(key string, r player.QuizResult) (int64, error)
}

// Keeper owns the in-memory state of one player and commits every change to
// the store before returning. Storage failures never block play: the memory
// copy stays authoritative and SaveFailed reports the degraded mode.
type Keeper struct {
	mu         sync.Mutex
	engine     *Engine
	store      Store
	key        string
	logger     *log.Logger
	state      player.State
	loaded     bool
	saveFailed bool
}

// NewKeeper creates a keeper for the save slot key. logger may be nil.
func NewKeeper(engine *Engine, store Store, key string, logger *log.Logger) *Keeper {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if key == "" {
		key = storage.DefaultSaveKey
	}
	return &Keeper{engine: engine, store: store, key: key, logger: logger}
}

// Engine returns the rules engine used for transitions.
func (k *Keeper) Engine() *Engine { return k.engine }

// Key returns the save slot.
func (k *Keeper) Key() string { return k.key }

// Open reads the save once. A missing or unreadable save behaves as a fresh
// install. Stale missions and weekly scores are refreshed and committed.
// It reports whether a player was loaded. A keeper that already holds a
// player keeps its memory copy, so later sessions sharing it never reload a
// stale save.
func (k *Keeper) Open() bool {
	k.mu.Lock()
	defer k.mu.Unlock()

	if k.loaded {
		if next, changed := k.engine.Refresh(k.state); changed {
			k.state = next
			k.commitLocked()
		}
		return true
	}

	st, err := k.store.LoadState(k.key)
	switch {
	case errors.Is(err, storage.ErrNoSave):
		k.logger.Debug("no save found", "key", k.key)
		return false
	case err != nil:
		k.logger.Warn("could not load save, starting fresh", "key", k.key, "error", err)
		return false
	}

	k.state, k.loaded = st, true
	if next, changed := k.engine.Refresh(st); changed {
		k.state = next
		k.commitLocked()
	}
	return true
}

// HasPlayer reports whether a state is loaded or created.
func (k *Keeper) HasPlayer() bool {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.loaded
}

// State returns a copy of the current state.
func (k *Keeper) State() player.State {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.state.Clone()
}

// SaveFailed reports whether the last write to the store failed.
func (k *Keeper) SaveFailed() bool {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.saveFailed
}

// Create installs a first-run state and saves it. It never replaces a
// player that is already loaded.
func (k *Keeper) Create(name string, grade int) (player.State, error) {
	st, err := k.engine.NewPlayer(name, grade)
	if err != nil {
		return player.State{}, err
	}

	k.mu.Lock()
	defer k.mu.Unlock()
	if k.loaded {
		return k.state.Clone(), ErrPlayerExists
	}
	k.state, k.loaded = st, true
	k.commitLocked()
	k.logger.Info("player created", "key", k.key, "name", st.Identity.Name, "grade", grade)
	return st.Clone(), nil
}

// Update applies fn to the current state and commits the result. When fn
// returns an error nothing is changed or written.
func (k *Keeper) Update(fn func(player.State) (player.State, error)) (player.State, error) {
	k.mu.Lock()
	defer k.mu.Unlock()

	if !k.loaded {
		return player.State{}, ErrNoPlayer
	}
	next, err := fn(k.state.Clone())
	if err != nil {
		return k.state.Clone(), err
	}
	k.state = next
	k.commitLocked()
	return next.Clone(), nil
}

// Replace installs st as the current state, e.g. after an import.
func (k *Keeper) Replace(st player.State) {
	st.Normalize()

	k.mu.Lock()
	defer k.mu.Unlock()
	k.state, k.loaded = st, true
	k.commitLocked()
}

// LogQuiz appends a finished quiz to the store's quiz log when it keeps one.
func (k *Keeper) LogQuiz(r player.QuizResult) {
	ql, ok := k.store.(QuizLogger)
	if !ok {
		return
	}
	if _, err := ql.LogQuiz(k.key, r); err != nil {
		k.logger.Warn("could not log quiz", "key", k.key, "error", err)
	}
}

// Reset erases the save. It must be explicitly confirmed.
func (k *Keeper) Reset(confirmed bool) error {
	if !confirmed {
		return ErrResetNotConfirmed
	}

	k.mu.Lock()
	defer k.mu.Unlock()
	if err := k.store.ClearState(k.key); err != nil {
		k.logger.Error("could not clear save", "key", k.key, "error", err)
		return err
	}
	k.state, k.loaded = player.State{}, false
	k.saveFailed = false
	k.logger.Info("progress reset", "key", k.key)
	return nil
}

func (k *Keeper) commitLocked() {
	if err := k.store.SaveState(k.key, k.state); err != nil {
		k.logger.Error("could not save progress", "key", k.key, "error", err)
		k.saveFailed = true
		return
	}
	k.saveFailed = false
}
