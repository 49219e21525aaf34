// Package history journals catalog searches to a local SQLite database.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/klauspost/compress/zstd"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"becat/internal/logging"
)

// Record is one journaled search
type Record struct {
	ID         int64     `json:"id"`
	Timestamp  time.Time `json:"timestamp"`
	Path       string    `json:"path"`
	Agent      string    `json:"agent,omitempty"`
	Recurse    bool      `json:"recurse"`
	Success    bool      `json:"success"`
	MatchCount int       `json:"matchCount"`
	DurationMs int64     `json:"durationMs"`
	Error      string    `json:"error,omitempty"`
}

// Store persists search records. Raw shell output is kept alongside each
// record, zstd-compressed, so past searches can be re-examined without
// re-running the shell.
type Store struct {
	conn    *sql.DB
	logger  *logging.Logger
	dbPath  string
	encoder *zstd.Encoder
	decoder *zstd.Decoder
}

// Open opens or creates the journal database at dbPath
func Open(dbPath string, logger *logging.Logger) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create journal directory: %w", err)
	}

	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open journal database: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA temp_store=MEMORY",
	}
	for _, pragma := range pragmas {
		if _, err := conn.Exec(pragma); err != nil {
			conn.Close()
			return nil, fmt.Errorf("failed to set pragma: %w", err)
		}
	}

	encoder, err := zstd.NewWriter(nil)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to create compressor: %w", err)
	}
	decoder, err := zstd.NewReader(nil)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to create decompressor: %w", err)
	}

	s := &Store{
		conn:    conn,
		logger:  logger,
		dbPath:  dbPath,
		encoder: encoder,
		decoder: decoder,
	}

	if err := s.initializeSchema(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to initialize journal schema: %w", err)
	}

	return s, nil
}

// Close closes the journal
func (s *Store) Close() error {
	s.encoder.Close()
	s.decoder.Close()
	if s.conn != nil {
		return s.conn.Close()
	}
	return nil
}

// Path returns the journal database file path
func (s *Store) Path() string {
	return s.dbPath
}

func (s *Store) initializeSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS searches (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		timestamp TEXT NOT NULL,
		path TEXT NOT NULL,
		agent TEXT NOT NULL DEFAULT '',
		recurse INTEGER NOT NULL DEFAULT 0,
		success INTEGER NOT NULL,
		match_count INTEGER NOT NULL DEFAULT 0,
		duration_ms INTEGER NOT NULL DEFAULT 0,
		error TEXT NOT NULL DEFAULT '',
		raw_stdout BLOB
	);
	CREATE INDEX IF NOT EXISTS idx_searches_timestamp ON searches(timestamp);
	CREATE INDEX IF NOT EXISTS idx_searches_path ON searches(path);
	`
	_, err := s.conn.Exec(schema)
	return err
}

// Append journals one completed search. rawStdout may be empty.
func (s *Store) Append(ctx context.Context, rec Record, rawStdout string) (int64, error) {
	var blob []byte
	if rawStdout != "" {
		blob = s.encoder.EncodeAll([]byte(rawStdout), nil)
	}

	result, err := s.conn.ExecContext(ctx, `
		INSERT INTO searches (timestamp, path, agent, recurse, success, match_count, duration_ms, error, raw_stdout)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.Timestamp.UTC().Format(time.RFC3339Nano),
		rec.Path,
		rec.Agent,
		boolToInt(rec.Recurse),
		boolToInt(rec.Success),
		rec.MatchCount,
		rec.DurationMs,
		rec.Error,
		blob,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to journal search: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to journal search: %w", err)
	}
	return id, nil
}

// Recent returns the most recent records, newest first
func (s *Store) Recent(ctx context.Context, limit int) ([]Record, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.conn.QueryContext(ctx, `
		SELECT id, timestamp, path, agent, recurse, success, match_count, duration_ms, error
		FROM searches ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query journal: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// Get returns one record by ID
func (s *Store) Get(ctx context.Context, id int64) (*Record, error) {
	row := s.conn.QueryRowContext(ctx, `
		SELECT id, timestamp, path, agent, recurse, success, match_count, duration_ms, error
		FROM searches WHERE id = ?`, id)

	rec, err := scanRecord(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// RawOutput returns the decompressed shell output for a record, or empty if
// none was kept.
func (s *Store) RawOutput(ctx context.Context, id int64) (string, error) {
	var blob []byte
	err := s.conn.QueryRowContext(ctx, `SELECT raw_stdout FROM searches WHERE id = ?`, id).Scan(&blob)
	if err == sql.ErrNoRows {
		return "", fmt.Errorf("no journal record with id %d", id)
	}
	if err != nil {
		return "", fmt.Errorf("failed to read journal record: %w", err)
	}
	if len(blob) == 0 {
		return "", nil
	}

	data, err := s.decoder.DecodeAll(blob, nil)
	if err != nil {
		return "", fmt.Errorf("failed to decompress journal record: %w", err)
	}
	return string(data), nil
}

// Prune deletes records older than the cutoff and returns how many were removed
func (s *Store) Prune(ctx context.Context, olderThan time.Time) (int64, error) {
	result, err := s.conn.ExecContext(ctx,
		`DELETE FROM searches WHERE timestamp < ?`,
		olderThan.UTC().Format(time.RFC3339Nano))
	if err != nil {
		return 0, fmt.Errorf("failed to prune journal: %w", err)
	}
	return result.RowsAffected()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanRecord(row rowScanner) (Record, error) {
	var rec Record
	var ts string
	var recurse, success int

	err := row.Scan(&rec.ID, &ts, &rec.Path, &rec.Agent, &recurse, &success,
		&rec.MatchCount, &rec.DurationMs, &rec.Error)
	if err != nil {
		return rec, err
	}

	rec.Timestamp, _ = time.Parse(time.RFC3339Nano, ts)
	rec.Recurse = recurse != 0
	rec.Success = success != 0
	return rec, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
