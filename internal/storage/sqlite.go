// Package storage provides SQLite-based persistence for scores, per-level
// outcomes and benchmark runs.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// DefaultPath is where the CLI keeps its database.
const DefaultPath = "~/.robbo/robbo.db"

// Store manages the SQLite database connection.
type Store struct {
	db *sql.DB
}

// ScoreEntry is one finished game.
type ScoreEntry struct {
	ID            int64
	SessionID     string
	LevelSet      string
	Score         int
	LevelReached  int // number of the last level played
	LevelsCleared int
	Deaths        int
	CreatedAt     time.Time
}

// Outcome is how an attempt at a level ended.
type Outcome string

const (
	OutcomeCompleted Outcome = "completed"
	OutcomeFailed    Outcome = "failed"
	OutcomeAbandoned Outcome = "abandoned"
)

// LevelResult is one attempt at one level.
type LevelResult struct {
	ID          int64
	SessionID   string
	LevelSet    string
	LevelNumber int
	Outcome     Outcome
	Frames      int
	Score       int
	CreatedAt   time.Time
}

// LevelStat aggregates attempts at one level.
type LevelStat struct {
	LevelNumber int
	Attempts    int
	Completions int
	Deaths      int
	BestFrames  int // fewest frames of a completed attempt, 0 if never completed
}

// BenchmarkRun is one headless benchmark.
type BenchmarkRun struct {
	ID        int64
	RunID     string
	LevelSet  string
	Frames    int
	Duration  time.Duration
	Render    bool
	Reloads   int
	Hash      uint64
	CreatedAt time.Time
}

// FPS returns the simulated frames per wall-clock second.
func (r BenchmarkRun) FPS() float64 {
	if r.Duration <= 0 {
		return 0
	}
	return float64(r.Frames) / r.Duration.Seconds()
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
		CREATE TABLE IF NOT EXISTS scores (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			session_id TEXT NOT NULL,
			level_set TEXT NOT NULL,
			score INTEGER NOT NULL,
			level_reached INTEGER NOT NULL DEFAULT 0,
			levels_cleared INTEGER NOT NULL DEFAULT 0,
			deaths INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_scores_top ON scores(level_set, score DESC);

		CREATE TABLE IF NOT EXISTS level_results (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			session_id TEXT NOT NULL,
			level_set TEXT NOT NULL,
			level_number INTEGER NOT NULL,
			outcome TEXT NOT NULL,
			frames INTEGER NOT NULL DEFAULT 0,
			score INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_level_results_level ON level_results(level_set, level_number);
		CREATE INDEX IF NOT EXISTS idx_level_results_session ON level_results(session_id);

		CREATE TABLE IF NOT EXISTS benchmark_runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id TEXT NOT NULL UNIQUE,
			level_set TEXT NOT NULL,
			frames INTEGER NOT NULL,
			duration_ns INTEGER NOT NULL,
			render INTEGER NOT NULL DEFAULT 0,
			reloads INTEGER NOT NULL DEFAULT 0,
			hash TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
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

// NewSessionID returns a fresh identifier for a play session.
func NewSessionID() string {
	return uuid.NewString()
}

// parseTime handles both time.Time and the string form sqlite returns for DATETIME columns.
func parseTime(v any) time.Time {
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

// SaveScore records a finished game. A missing session ID is generated.
// Returns the ID of the inserted record.
func (s *Store) SaveScore(e ScoreEntry) (int64, error) {
	if e.SessionID == "" {
		e.SessionID = NewSessionID()
	}
	result, err := s.db.Exec(
		`INSERT INTO scores (session_id, level_set, score, level_reached, levels_cleared, deaths)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		e.SessionID, e.LevelSet, e.Score, e.LevelReached, e.LevelsCleared, e.Deaths,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save score: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	return id, nil
}

// TopScores retrieves the best scores of a level set, highest first.
// An empty level set matches every set.
func (s *Store) TopScores(levelSet string, limit int) ([]ScoreEntry, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, session_id, level_set, score, level_reached, levels_cleared, deaths, created_at
		 FROM scores
		 WHERE ? = '' OR level_set = ?
		 ORDER BY score DESC, id ASC
		 LIMIT ?`,
		levelSet, levelSet, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query scores: %w", err)
	}
	defer rows.Close()

	var entries []ScoreEntry
	for rows.Next() {
		var e ScoreEntry
		var createdAt any
		if err := rows.Scan(&e.ID, &e.SessionID, &e.LevelSet, &e.Score, &e.LevelReached,
			&e.LevelsCleared, &e.Deaths, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.CreatedAt = parseTime(createdAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return entries, nil
}

// HighScore returns the highest score of a level set, or 0 if none exist.
func (s *Store) HighScore(levelSet string) (int, error) {
	var score sql.NullInt64
	err := s.db.QueryRow(
		"SELECT MAX(score) FROM scores WHERE level_set = ?",
		levelSet,
	).Scan(&score)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query high score: %w", err)
	}
	if !score.Valid {
		return 0, nil
	}
	return int(score.Int64), nil
}

// ClearScores deletes all scores and level results of a level set.
func (s *Store) ClearScores(levelSet string) error {
	for _, q := range []string{
		"DELETE FROM scores WHERE level_set = ?",
		"DELETE FROM level_results WHERE level_set = ?",
	} {
		if _, err := s.db.Exec(q, levelSet); err != nil {
			return fmt.Errorf("storage: cannot clear scores: %w", err)
		}
	}
	return nil
}

// SaveLevelResult records one attempt at a level.
func (s *Store) SaveLevelResult(r LevelResult) (int64, error) {
	if r.SessionID == "" {
		return 0, errors.New("storage: level result without session id")
	}
	res, err := s.db.Exec(
		`INSERT INTO level_results (session_id, level_set, level_number, outcome, frames, score)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		r.SessionID, r.LevelSet, r.LevelNumber, string(r.Outcome), r.Frames, r.Score,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save level result: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	return id, nil
}

// SessionResults returns the attempts of one session in the order they were played.
func (s *Store) SessionResults(sessionID string) ([]LevelResult, error) {
	rows, err := s.db.Query(
		`SELECT id, session_id, level_set, level_number, outcome, frames, score, created_at
		 FROM level_results
		 WHERE session_id = ?
		 ORDER BY id ASC`,
		sessionID,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query level results: %w", err)
	}
	defer rows.Close()

	var results []LevelResult
	for rows.Next() {
		var r LevelResult
		var outcome string
		var createdAt any
		if err := rows.Scan(&r.ID, &r.SessionID, &r.LevelSet, &r.LevelNumber, &outcome,
			&r.Frames, &r.Score, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.Outcome = Outcome(outcome)
		r.CreatedAt = parseTime(createdAt)
		results = append(results, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return results, nil
}

// LevelStats aggregates every recorded attempt of a level set, by level number.
func (s *Store) LevelStats(levelSet string) ([]LevelStat, error) {
	rows, err := s.db.Query(
		`SELECT level_number,
		        COUNT(*),
		        COALESCE(SUM(CASE WHEN outcome = 'completed' THEN 1 ELSE 0 END), 0),
		        COALESCE(SUM(CASE WHEN outcome = 'failed' THEN 1 ELSE 0 END), 0),
		        COALESCE(MIN(CASE WHEN outcome = 'completed' THEN frames END), 0)
		 FROM level_results
		 WHERE level_set = ?
		 GROUP BY level_number
		 ORDER BY level_number`,
		levelSet,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get level stats: %w", err)
	}
	defer rows.Close()

	var stats []LevelStat
	for rows.Next() {
		var st LevelStat
		if err := rows.Scan(&st.LevelNumber, &st.Attempts, &st.Completions, &st.Deaths, &st.BestFrames); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		stats = append(stats, st)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return stats, nil
}

// SaveBenchmark records a benchmark run. A missing run ID is generated and returned.
func (s *Store) SaveBenchmark(r BenchmarkRun) (string, error) {
	if r.RunID == "" {
		r.RunID = uuid.NewString()
	}
	render := 0
	if r.Render {
		render = 1
	}
	_, err := s.db.Exec(
		`INSERT INTO benchmark_runs (run_id, level_set, frames, duration_ns, render, reloads, hash)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		r.RunID, r.LevelSet, r.Frames, int64(r.Duration), render, r.Reloads, fmt.Sprintf("%016x", r.Hash),
	)
	if err != nil {
		return "", fmt.Errorf("storage: cannot save benchmark: %w", err)
	}
	return r.RunID, nil
}

// RecentBenchmarks retrieves the most recent benchmark runs, newest first.
func (s *Store) RecentBenchmarks(limit int) ([]BenchmarkRun, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, run_id, level_set, frames, duration_ns, render, reloads, hash, created_at
		 FROM benchmark_runs
		 ORDER BY id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query benchmarks: %w", err)
	}
	defer rows.Close()

	var runs []BenchmarkRun
	for rows.Next() {
		var r BenchmarkRun
		var durationNS int64
		var render int
		var hash string
		var createdAt any
		if err := rows.Scan(&r.ID, &r.RunID, &r.LevelSet, &r.Frames, &durationNS, &render,
			&r.Reloads, &hash, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.Duration = time.Duration(durationNS)
		r.Render = render != 0
		fmt.Sscanf(hash, "%x", &r.Hash)
		r.CreatedAt = parseTime(createdAt)
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return runs, nil
}

// Stats contains aggregated statistics for one level set.
type Stats struct {
	LevelSet   string
	GamesCount int
	HighScore  int
	AvgScore   float64
	LastPlayed time.Time
}

// GetStats retrieves aggregated statistics for every level set that has been played.
func (s *Store) GetStats() ([]Stats, error) {
	rows, err := s.db.Query(
		`SELECT level_set, COUNT(*), MAX(score), AVG(score), MAX(created_at)
		 FROM scores
		 GROUP BY level_set
		 ORDER BY level_set`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get stats: %w", err)
	}
	defer rows.Close()

	var out []Stats
	for rows.Next() {
		var st Stats
		var lastPlayed any
		if err := rows.Scan(&st.LevelSet, &st.GamesCount, &st.HighScore, &st.AvgScore, &lastPlayed); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		st.LastPlayed = parseTime(lastPlayed)
		out = append(out, st)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return out, nil
}
