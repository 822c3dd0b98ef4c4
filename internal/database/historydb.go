package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/nao1215/wordlefetch/internal/model"
)

// FileName is the database file created inside the data directory.
const FileName = "wordlefetch.db"

// startedAtLayout is fixed-width so started_at sorts correctly as text.
const startedAtLayout = "2006-01-02T15:04:05.000000000Z07:00"

// HistoryDB provides SQLite-based storage for run summaries.
type HistoryDB struct {
	// db is the underlying SQL database connection.
	db *sql.DB

	// dbPath is the path to the SQLite database file.
	dbPath string
}

// Options configures HistoryDB behavior.
type Options struct {
	// CreateIfNotExists creates the database file if it doesn't exist.
	CreateIfNotExists bool

	// EnableWAL enables Write-Ahead Logging.
	EnableWAL bool
}

// DefaultOptions returns the default database options.
func DefaultOptions() Options {
	return Options{
		CreateIfNotExists: true,
		EnableWAL:         true,
	}
}

// ErrNotFound is returned by Open when the database does not exist and
// CreateIfNotExists is false.
var ErrNotFound = errors.New("history database not found")

// Open opens or creates a HistoryDB in dbDir.
// If CreateIfNotExists is true, the directory and database file are created.
// Otherwise a missing database yields ErrNotFound.
func Open(dbDir string, opts Options) (*HistoryDB, error) {
	dbPath := filepath.Join(dbDir, FileName)

	if !opts.CreateIfNotExists {
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("%w at %s", ErrNotFound, dbPath)
		} else if err != nil {
			return nil, fmt.Errorf("failed to check database path: %w", err)
		}
	} else {
		if err := os.MkdirAll(dbDir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	// mode=rw refuses to create a missing file, mode=rwc allows it.
	var dsn string
	if opts.CreateIfNotExists {
		dsn = dbPath + "?mode=rwc"
	} else {
		dsn = dbPath + "?mode=rw"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(1) // SQLite only supports one writer
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	hdb := &HistoryDB{
		db:     db,
		dbPath: dbPath,
	}

	if opts.EnableWAL {
		if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	if err := hdb.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return hdb, nil
}

// Path returns the database file path.
func (hdb *HistoryDB) Path() string {
	return hdb.dbPath
}

// Close closes the database connection.
func (hdb *HistoryDB) Close() error {
	return hdb.db.Close()
}

// createTables creates the database schema if it doesn't exist.
func (hdb *HistoryDB) createTables() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		base_url TEXT NOT NULL,
		script_url TEXT,
		started_at TEXT NOT NULL,
		duration_ns INTEGER NOT NULL DEFAULT 0,
		status TEXT NOT NULL,
		failed_step TEXT,
		error TEXT,
		secrets_count INTEGER NOT NULL DEFAULT 0,
		secrets_digest TEXT,
		guesses_count INTEGER NOT NULL DEFAULT 0,
		guesses_digest TEXT,
		files TEXT,
		recorded_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_runs_started ON runs(started_at);
	CREATE INDEX IF NOT EXISTS idx_runs_status ON runs(status);
	`

	_, err := hdb.db.ExecContext(context.Background(), schema)
	return err
}

// SaveRun inserts a run summary. Saving the same run ID twice replaces the
// earlier row.
func (hdb *HistoryDB) SaveRun(ctx context.Context, s *model.Summary) error {
	filesJSON, err := json.Marshal(s.Files)
	if err != nil {
		return fmt.Errorf("failed to serialize files: %w", err)
	}

	query := `
	INSERT OR REPLACE INTO runs (
		id, base_url, script_url, started_at, duration_ns, status, failed_step, error,
		secrets_count, secrets_digest, guesses_count, guesses_digest, files
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = hdb.db.ExecContext(ctx, query,
		s.ID,
		s.BaseURL,
		s.ScriptURL,
		s.StartedAt.UTC().Format(startedAtLayout),
		int64(s.Duration),
		s.Status,
		s.FailedStep,
		s.Error,
		s.PossibleSecrets.Count,
		s.PossibleSecrets.Digest,
		s.AllowedGuesses.Count,
		s.AllowedGuesses.Digest,
		string(filesJSON),
	)
	if err != nil {
		return fmt.Errorf("failed to save run: %w", err)
	}

	return nil
}

const selectRuns = `
	SELECT id, base_url, script_url, started_at, duration_ns, status, failed_step, error,
		secrets_count, secrets_digest, guesses_count, guesses_digest, files
	FROM runs
	`

// ListRuns returns up to limit runs, newest first. A limit of zero or less
// returns every run.
func (hdb *HistoryDB) ListRuns(ctx context.Context, limit int) ([]*model.Summary, error) {
	query := selectRuns + ` ORDER BY started_at DESC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := hdb.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []*model.Summary
	for rows.Next() {
		s, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, s)
	}

	return runs, rows.Err()
}

// LatestComplete returns the newest successful run, or nil if there is none.
func (hdb *HistoryDB) LatestComplete(ctx context.Context) (*model.Summary, error) {
	query := selectRuns + ` WHERE status = ? ORDER BY started_at DESC LIMIT 1`

	s, err := scanRun(hdb.db.QueryRowContext(ctx, query, model.StatusComplete))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil //nolint:nilnil // no previous run is not an error
	}
	if err != nil {
		return nil, err
	}
	return s, nil
}

// CountRuns returns the number of stored runs.
func (hdb *HistoryDB) CountRuns(ctx context.Context) (int, error) {
	var n int
	if err := hdb.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM runs`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count runs: %w", err)
	}
	return n, nil
}

// rowScanner is implemented by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (*model.Summary, error) {
	var (
		s          model.Summary
		scriptURL  sql.NullString
		startedAt  string
		durationNS int64
		failedStep sql.NullString
		errText    sql.NullString
		secretsDig sql.NullString
		guessesDig sql.NullString
		filesJSON  sql.NullString
	)

	err := row.Scan(
		&s.ID, &s.BaseURL, &scriptURL, &startedAt, &durationNS, &s.Status, &failedStep, &errText,
		&s.PossibleSecrets.Count, &secretsDig, &s.AllowedGuesses.Count, &guessesDig, &filesJSON,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan run: %w", err)
	}

	s.ScriptURL = scriptURL.String
	s.StartedAt = parseTimestamp(startedAt)
	s.Duration = time.Duration(durationNS)
	s.FailedStep = failedStep.String
	s.Error = errText.String
	s.PossibleSecrets.Digest = secretsDig.String
	s.AllowedGuesses.Digest = guessesDig.String

	if filesJSON.Valid && filesJSON.String != "" && filesJSON.String != "null" {
		if err := json.Unmarshal([]byte(filesJSON.String), &s.Files); err != nil {
			return nil, fmt.Errorf("failed to parse files of run %s: %w", s.ID, err)
		}
	}

	return &s, nil
}

// ListsChanged reports whether either list digest of cur differs from prev.
// It returns false when prev is nil.
func ListsChanged(prev, cur *model.Summary) bool {
	if prev == nil || cur == nil {
		return false
	}
	return prev.PossibleSecrets.Digest != cur.PossibleSecrets.Digest ||
		prev.AllowedGuesses.Digest != cur.AllowedGuesses.Digest
}

// timestampFormats contains the timestamp formats that may be stored.
// The order matters: more specific formats should come first.
var timestampFormats = []string{
	startedAtLayout,
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05.999",
}

// parseTimestamp parses a stored timestamp, returning the zero time if no
// format matches.
func parseTimestamp(s string) time.Time {
	for _, format := range timestampFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
