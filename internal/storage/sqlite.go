// Package storage provides SQLite-based persistence for player saves.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/tui-mathquest/internal/leaderboard"
	"github.com/vovakirdan/tui-mathquest/internal/player"
)

// DefaultSaveKey is the save slot used by the local client.
const DefaultSaveKey = "progress"

var (
	// ErrNoSave means the key has never been written or was cleared.
	ErrNoSave = errors.New("storage: no save")
	// ErrCorruptSave means the stored document could not be decoded.
	ErrCorruptSave = errors.New("storage: save is corrupt")
)

// Store manages the SQLite database connection for save persistence.
type Store struct {
	db *sql.DB
}

// SaveInfo describes one stored save slot.
type SaveInfo struct {
	Key       string
	UpdatedAt time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS saves (
			key TEXT PRIMARY KEY,
			doc TEXT NOT NULL,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		DROP TABLE IF EXISTS leaderboard_cache;
		CREATE TABLE IF NOT EXISTS rival_cache (
			save_key TEXT NOT NULL,
			week TEXT NOT NULL,
			rivals TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (save_key, week)
		);

		CREATE TABLE IF NOT EXISTS quiz_log (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			save_key TEXT NOT NULL,
			topic TEXT NOT NULL,
			score INTEGER NOT NULL,
			total INTEGER NOT NULL,
			correct INTEGER NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_quiz_log_key ON quiz_log(save_key, created_at DESC);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// LoadRaw returns the stored document for key.
func (s *Store) LoadRaw(key string) ([]byte, error) {
	var doc string
	err := s.db.QueryRow("SELECT doc FROM saves WHERE key = ?", key).Scan(&doc)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNoSave
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot read save: %w", err)
	}
	return []byte(doc), nil
}

// LoadState reads and decodes the save for key, migrating older layouts.
// A missing save returns ErrNoSave; an undecodable one wraps ErrCorruptSave.
func (s *Store) LoadState(key string) (player.State, error) {
	data, err := s.LoadRaw(key)
	if err != nil {
		return player.State{}, err
	}
	return Decode(data)
}

// SaveState writes the whole state for key, replacing any previous document.
func (s *Store) SaveState(key string, st player.State) error {
	data, err := json.Marshal(st)
	if err != nil {
		return fmt.Errorf("storage: cannot encode save: %w", err)
	}
	return s.SaveRaw(key, data)
}

// SaveRaw writes an already encoded document for key.
func (s *Store) SaveRaw(key string, doc []byte) error {
	_, err := s.db.Exec(
		`INSERT INTO saves (key, doc, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(key) DO UPDATE SET doc = excluded.doc, updated_at = CURRENT_TIMESTAMP`,
		key, string(doc),
	)
	if err != nil {
		return fmt.Errorf("storage: cannot write save: %w", err)
	}
	return nil
}

// ClearState deletes the save, quiz log and cached rivals for key.
func (s *Store) ClearState(key string) error {
	if _, err := s.db.Exec("DELETE FROM saves WHERE key = ?", key); err != nil {
		return fmt.Errorf("storage: cannot clear save: %w", err)
	}
	if _, err := s.db.Exec("DELETE FROM quiz_log WHERE save_key = ?", key); err != nil {
		return fmt.Errorf("storage: cannot clear quiz log: %w", err)
	}
	if _, err := s.db.Exec("DELETE FROM rival_cache WHERE save_key = ?", key); err != nil {
		return fmt.Errorf("storage: cannot clear leaderboard cache: %w", err)
	}
	return nil
}

// ListSaves returns every save slot, most recently updated first.
func (s *Store) ListSaves() ([]SaveInfo, error) {
	rows, err := s.db.Query("SELECT key, updated_at FROM saves ORDER BY updated_at DESC, key")
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query saves: %w", err)
	}
	defer rows.Close()

	var out []SaveInfo
	for rows.Next() {
		var info SaveInfo
		var updatedAt any
		if err := rows.Scan(&info.Key, &updatedAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		info.UpdatedAt = parseTimestamp(updatedAt)
		out = append(out, info)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return out, nil
}

// LoadRivals returns the cached rival field of save slot key for week.
func (s *Store) LoadRivals(key, week string) ([]leaderboard.Rival, bool, error) {
	var doc string
	err := s.db.QueryRow("SELECT rivals FROM rival_cache WHERE save_key = ? AND week = ?", key, week).Scan(&doc)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("storage: cannot read leaderboard cache: %w", err)
	}

	var rivals []leaderboard.Rival
	if err := json.Unmarshal([]byte(doc), &rivals); err != nil {
		// A broken cache row is regenerated, not fatal.
		return nil, false, nil
	}
	return rivals, true, nil
}

// SaveRivals caches the rival field of save slot key for week and drops the
// slot's older weeks.
func (s *Store) SaveRivals(key, week string, rivals []leaderboard.Rival) error {
	data, err := json.Marshal(rivals)
	if err != nil {
		return fmt.Errorf("storage: cannot encode leaderboard cache: %w", err)
	}
	if _, err := s.db.Exec(
		`INSERT INTO rival_cache (save_key, week, rivals) VALUES (?, ?, ?)
		 ON CONFLICT(save_key, week) DO UPDATE SET rivals = excluded.rivals`,
		key, week, string(data),
	); err != nil {
		return fmt.Errorf("storage: cannot write leaderboard cache: %w", err)
	}
	if _, err := s.db.Exec("DELETE FROM rival_cache WHERE save_key = ? AND week < ?", key, week); err != nil {
		return fmt.Errorf("storage: cannot prune leaderboard cache: %w", err)
	}
	return nil
}

// parseTimestamp handles both time.Time and string datetime columns.
func parseTimestamp(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
