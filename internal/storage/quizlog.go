package storage

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/vovakirdan/tui-mathquest/internal/player"
)

// QuizEntry is one finished quiz in the log.
type QuizEntry struct {
	ID        int64
	Topic     player.Topic
	Score     int
	Total     int
	Correct   int
	CreatedAt time.Time
}

// QuizStats aggregates the quiz log of one save.
type QuizStats struct {
	Quizzes   int
	BestScore int
	Correct   int
	Answered  int
}

// Accuracy returns the share of correct answers, from 0.0 to 1.0.
func (q QuizStats) Accuracy() float64 {
	if q.Answered == 0 {
		return 0
	}
	return float64(q.Correct) / float64(q.Answered)
}

// LogQuiz records a finished quiz for key.
// Returns the ID of the inserted record.
func (s *Store) LogQuiz(key string, r player.QuizResult) (int64, error) {
	result, err := s.db.Exec(
		"INSERT INTO quiz_log (save_key, topic, score, total, correct) VALUES (?, ?, ?, ?, ?)",
		key, string(r.Topic), r.Score, r.TotalQuestions, r.CorrectAnswers,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot log quiz: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// RecentQuizzes retrieves the latest quizzes for key, newest first.
func (s *Store) RecentQuizzes(key string, limit int) ([]QuizEntry, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, topic, score, total, correct, created_at
		 FROM quiz_log
		 WHERE save_key = ?
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`,
		key, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query quiz log: %w", err)
	}
	defer rows.Close()

	var entries []QuizEntry
	for rows.Next() {
		var e QuizEntry
		var topic string
		var createdAt any
		if err := rows.Scan(&e.ID, &topic, &e.Score, &e.Total, &e.Correct, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.Topic = player.Topic(topic)
		e.CreatedAt = parseTimestamp(createdAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// QuizStats summarizes the log for key. An empty log yields zero stats.
func (s *Store) QuizStats(key string) (QuizStats, error) {
	var stats QuizStats
	var best, correct, total sql.NullInt64
	err := s.db.QueryRow(
		"SELECT COUNT(*), MAX(score), SUM(correct), SUM(total) FROM quiz_log WHERE save_key = ?",
		key,
	).Scan(&stats.Quizzes, &best, &correct, &total)
	if err != nil {
		return QuizStats{}, fmt.Errorf("storage: cannot query quiz stats: %w", err)
	}

	stats.BestScore = int(best.Int64)
	stats.Correct = int(correct.Int64)
	stats.Answered = int(total.Int64)
	return stats, nil
}
