// Package storage provides SQLite-based persistence for round results.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Store manages the SQLite database connection for round persistence.
type Store struct {
	db *sql.DB
}

// RoundRecord is one finished round: which map, who won, and the shaped
// reward the episode accumulated.
type RoundRecord struct {
	ID        int64
	MapID     string
	Policy    string // "player", "greedy", ...
	Survived  bool
	Ticks     int
	Reward    float64
	CreatedAt time.Time
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

	// Create parent directories
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
		CREATE TABLE IF NOT EXISTS rounds (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			map_id TEXT NOT NULL,
			policy TEXT NOT NULL,
			survived INTEGER NOT NULL,
			ticks INTEGER NOT NULL,
			reward REAL NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_rounds_map_id ON rounds(map_id);
		CREATE INDEX IF NOT EXISTS idx_rounds_recent ON rounds(created_at DESC);
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

// SaveRound records a finished round. Returns the ID of the inserted record.
func (s *Store) SaveRound(rec RoundRecord) (int64, error) {
	result, err := s.db.Exec(
		"INSERT INTO rounds (map_id, policy, survived, ticks, reward) VALUES (?, ?, ?, ?, ?)",
		rec.MapID, rec.Policy, rec.Survived, rec.Ticks, rec.Reward,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save round: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// RecentRounds retrieves the most recent rounds, newest first.
func (s *Store) RecentRounds(limit int) ([]RoundRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, map_id, policy, survived, ticks, reward, created_at
		 FROM rounds
		 ORDER BY id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query rounds: %w", err)
	}
	defer rows.Close()

	var records []RoundRecord
	for rows.Next() {
		rec, err := scanRound(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return records, nil
}

// MapRounds retrieves all rounds played on the given map, newest first.
func (s *Store) MapRounds(mapID string) ([]RoundRecord, error) {
	rows, err := s.db.Query(
		`SELECT id, map_id, policy, survived, ticks, reward, created_at
		 FROM rounds
		 WHERE map_id = ?
		 ORDER BY id DESC`,
		mapID,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query rounds: %w", err)
	}
	defer rows.Close()

	var records []RoundRecord
	for rows.Next() {
		rec, err := scanRound(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return records, nil
}

// BestReward returns the highest episode reward recorded for the given map.
// Returns 0 if no rounds exist.
func (s *Store) BestReward(mapID string) (float64, error) {
	var reward sql.NullFloat64
	err := s.db.QueryRow(
		"SELECT MAX(reward) FROM rounds WHERE map_id = ?",
		mapID,
	).Scan(&reward)

	if err != nil {
		return 0, fmt.Errorf("storage: cannot query best reward: %w", err)
	}

	if !reward.Valid {
		return 0, nil
	}

	return reward.Float64, nil
}

// ClearRounds deletes all rounds for the given map.
func (s *Store) ClearRounds(mapID string) error {
	_, err := s.db.Exec("DELETE FROM rounds WHERE map_id = ?", mapID)
	if err != nil {
		return fmt.Errorf("storage: cannot clear rounds: %w", err)
	}
	return nil
}

// MapStats contains aggregated statistics for one map.
type MapStats struct {
	MapID      string
	Rounds     int
	Wins       int
	AvgTicks   float64
	AvgReward  float64
	BestReward float64
	LastPlayed time.Time
}

// GetMapStats retrieves aggregated statistics for a specific map.
func (s *Store) GetMapStats(mapID string) (*MapStats, error) {
	stats := &MapStats{MapID: mapID}

	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(SUM(survived), 0), COALESCE(AVG(ticks), 0),
		        COALESCE(AVG(reward), 0), COALESCE(MAX(reward), 0)
		 FROM rounds WHERE map_id = ?`,
		mapID,
	).Scan(&stats.Rounds, &stats.Wins, &stats.AvgTicks, &stats.AvgReward, &stats.BestReward)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get map stats: %w", err)
	}

	var lastPlayed any
	err = s.db.QueryRow(
		`SELECT created_at FROM rounds WHERE map_id = ? ORDER BY id DESC LIMIT 1`,
		mapID,
	).Scan(&lastPlayed)
	if err != nil && err != sql.ErrNoRows {
		return nil, fmt.Errorf("storage: cannot get last played: %w", err)
	}
	if err == nil {
		stats.LastPlayed = parseCreatedAt(lastPlayed)
	}

	return stats, nil
}

// GetAllMapStats retrieves statistics for every map that has been played.
func (s *Store) GetAllMapStats() (map[string]*MapStats, error) {
	rows, err := s.db.Query(
		`SELECT map_id, COUNT(*), SUM(survived), AVG(ticks), AVG(reward), MAX(reward), MAX(created_at)
		 FROM rounds
		 GROUP BY map_id`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get all map stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]*MapStats)
	for rows.Next() {
		var m MapStats
		var lastPlayed any
		if err := rows.Scan(&m.MapID, &m.Rounds, &m.Wins, &m.AvgTicks, &m.AvgReward, &m.BestReward, &lastPlayed); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		m.LastPlayed = parseCreatedAt(lastPlayed)
		stats[m.MapID] = &m
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return stats, nil
}

func scanRound(rows *sql.Rows) (RoundRecord, error) {
	var rec RoundRecord
	var createdAt any
	if err := rows.Scan(&rec.ID, &rec.MapID, &rec.Policy, &rec.Survived, &rec.Ticks, &rec.Reward, &createdAt); err != nil {
		return RoundRecord{}, fmt.Errorf("storage: cannot scan row: %w", err)
	}
	rec.CreatedAt = parseCreatedAt(createdAt)
	return rec, nil
}

// parseCreatedAt handles both time.Time and string datetimes; the sqlite
// driver returns either depending on how the column was written.
func parseCreatedAt(v any) time.Time {
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
