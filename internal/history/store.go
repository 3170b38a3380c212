package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"whilec/internal/compiler"
)

// Entry is one recorded compile
type Entry struct {
	ID         string
	Timestamp  time.Time
	Name       string
	Stage      string // empty on success
	OK         bool
	Code       string
	Message    string
	TokenCount int
	Source     string
}

// FromReport builds an entry for a finished compile
func FromReport(report *compiler.Report) Entry {
	entry := Entry{
		Name:       report.Name,
		OK:         report.OK(),
		TokenCount: len(report.Tokens),
		Source:     report.Source,
	}
	if report.Failure != nil {
		entry.Stage = string(report.Failure.Stage)
		entry.Message = report.Failure.Message
		entry.Code = report.Code()
	}
	return entry
}

// Store persists compile outcomes in SQLite
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// Open opens or creates the history database at path
func Open(path string) (*Store, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("failed to create directory: %w", err)
		}
		path += "?_journal_mode=WAL&_synchronous=NORMAL"
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// one connection keeps ":memory:" databases alive across calls
	db.SetMaxOpenConns(1)

	store := &Store{db: db}
	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return store, nil
}

func (s *Store) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS compiles (
		id TEXT PRIMARY KEY,
		timestamp DATETIME NOT NULL,
		name TEXT NOT NULL,
		stage TEXT NOT NULL DEFAULT '',
		ok INTEGER NOT NULL,
		code TEXT NOT NULL DEFAULT '',
		message TEXT NOT NULL DEFAULT '',
		token_count INTEGER NOT NULL DEFAULT 0,
		source TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_compiles_timestamp ON compiles(timestamp DESC);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Record stores entry, filling in ID and Timestamp when they are empty.
// It returns the stored entry.
func (s *Store) Record(ctx context.Context, entry Entry) (Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now()
	}
	entry.Timestamp = entry.Timestamp.UTC()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO compiles (id, timestamp, name, stage, ok, code, message, token_count, source)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		entry.ID, entry.Timestamp, entry.Name, entry.Stage, entry.OK,
		entry.Code, entry.Message, entry.TokenCount, entry.Source)
	if err != nil {
		return entry, fmt.Errorf("failed to record compile: %w", err)
	}

	return entry, nil
}

// List returns the most recent entries, newest first. limit <= 0 returns all.
func (s *Store) List(ctx context.Context, limit int) ([]Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `SELECT id, timestamp, name, stage, ok, code, message, token_count, source
		FROM compiles ORDER BY timestamp DESC, rowid DESC`
	var args []interface{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var entry Entry
		if err := rows.Scan(&entry.ID, &entry.Timestamp, &entry.Name, &entry.Stage, &entry.OK,
			&entry.Code, &entry.Message, &entry.TokenCount, &entry.Source); err != nil {
			return nil, fmt.Errorf("failed to scan history row: %w", err)
		}
		entries = append(entries, entry)
	}

	return entries, rows.Err()
}

// Prune removes entries older than the specified duration
func (s *Store) Prune(ctx context.Context, olderThan time.Duration) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := time.Now().Add(-olderThan).UTC()

	result, err := s.db.ExecContext(ctx, `DELETE FROM compiles WHERE timestamp < ?`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to prune history: %w", err)
	}
	return result.RowsAffected()
}

// Close closes the database connection
func (s *Store) Close() error {
	return s.db.Close()
}
