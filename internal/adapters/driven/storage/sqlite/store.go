package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/framescope/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/custodia-labs/framescope/internal/core/domain"
	"github.com/custodia-labs/framescope/internal/core/ports/driven"
)

// dbFile is the database file name inside the data directory.
const dbFile = "session.db"

// Store is a SQLite database holding per-session client state.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a new SQLite store at the specified data directory.
// If dataDir is empty, defaults to ~/.framescope/data.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".framescope", "data")
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, dbFile)

	// WAL lets a TUI and a CLI invocation share one session file.
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// HistoryStore returns the history of one session.
func (s *Store) HistoryStore(sessionID string) driven.HistoryStore {
	return &historyStore{store: s, sessionID: sessionID}
}

// ExclusionStore returns the excluded frames of one session.
func (s *Store) ExclusionStore(sessionID string) driven.ExclusionStore {
	return &exclusionStore{store: s, sessionID: sessionID}
}

// migrate runs all pending migrations, recording each applied version.
func (s *Store) migrate(fsys fs.FS) error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		if name := entry.Name(); strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// "001_search_history.up.sql" -> 1
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue
		}
		if version <= currentVersion {
			continue
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}
		if err := s.apply(version, string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
	}

	return nil
}

func (s *Store) apply(version int, script string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	if _, err := tx.Exec(script); err != nil {
		return err
	}
	if _, err := tx.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
		return err
	}
	return tx.Commit()
}

// ==================== History Store ====================

// historyStore implements driven.HistoryStore for one session.
type historyStore struct {
	store     *Store
	sessionID string
}

var _ driven.HistoryStore = (*historyStore)(nil)

// Load returns the session's entries, most recent first.
func (s *historyStore) Load(ctx context.Context) ([]domain.SearchContext, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT payload FROM search_history
		WHERE session_id = ?
		ORDER BY position
	`, s.sessionID)
	if err != nil {
		return nil, fmt.Errorf("querying history: %w", err)
	}
	defer rows.Close()

	entries := []domain.SearchContext{}
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("scanning history entry: %w", err)
		}
		var entry domain.SearchContext
		if err := json.Unmarshal([]byte(payload), &entry); err != nil {
			return nil, fmt.Errorf("unmarshaling history entry: %w", err)
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// Save replaces the session's entries in one transaction.
func (s *historyStore) Save(ctx context.Context, entries []domain.SearchContext) error {
	tx, err := s.store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	if _, err := tx.ExecContext(ctx, "DELETE FROM search_history WHERE session_id = ?", s.sessionID); err != nil {
		return fmt.Errorf("clearing history: %w", err)
	}

	for i, entry := range entries {
		payload, err := json.Marshal(entry)
		if err != nil {
			return fmt.Errorf("marshalling history entry: %w", err)
		}
		createdAt := entry.Timestamp
		if createdAt.IsZero() {
			createdAt = time.Now()
		}
		_, err = tx.ExecContext(ctx, `
			INSERT INTO search_history (session_id, position, id, query, query_type, model, payload, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		`, s.sessionID, i, entry.ID, entry.Query, entry.QueryType.String(), entry.Model.String(),
			string(payload), createdAt.UTC())
		if err != nil {
			return fmt.Errorf("inserting history entry: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing history: %w", err)
	}
	return nil
}

// Clear removes the session's history.
func (s *historyStore) Clear(ctx context.Context) error {
	_, err := s.store.db.ExecContext(ctx, "DELETE FROM search_history WHERE session_id = ?", s.sessionID)
	if err != nil {
		return fmt.Errorf("clearing history: %w", err)
	}
	return nil
}

// ==================== Exclusion Store ====================

// exclusionStore implements driven.ExclusionStore for one session.
type exclusionStore struct {
	store     *Store
	sessionID string
}

var _ driven.ExclusionStore = (*exclusionStore)(nil)

// Add appends the frame unless its key is already excluded.
func (s *exclusionStore) Add(ctx context.Context, frame domain.ExcludedFrame) (bool, error) {
	res, err := s.store.db.ExecContext(ctx, `
		INSERT INTO excluded_frames (session_id, position, video_name, frame_name, related_start_frame, related_end_frame)
		VALUES (?, (SELECT COALESCE(MAX(position), -1) + 1 FROM excluded_frames WHERE session_id = ?), ?, ?, ?, ?)
		ON CONFLICT (session_id, video_name, frame_name) DO NOTHING
	`, s.sessionID, s.sessionID, frame.VideoName, frame.FrameName,
		float64(frame.RelatedStartFrame), float64(frame.RelatedEndFrame))
	if err != nil {
		return false, fmt.Errorf("adding exclusion: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("adding exclusion: %w", err)
	}
	return n > 0, nil
}

// RemoveAt removes the entry at position i in insertion order.
func (s *exclusionStore) RemoveAt(ctx context.Context, i int) error {
	if i < 0 {
		return fmt.Errorf("exclusion %d: %w", i, domain.ErrNotFound)
	}

	var video, frame string
	err := s.store.db.QueryRowContext(ctx, `
		SELECT video_name, frame_name FROM excluded_frames
		WHERE session_id = ?
		ORDER BY position
		LIMIT 1 OFFSET ?
	`, s.sessionID, i).Scan(&video, &frame)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("exclusion %d: %w", i, domain.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("finding exclusion: %w", err)
	}

	_, err = s.store.db.ExecContext(ctx, `
		DELETE FROM excluded_frames WHERE session_id = ? AND video_name = ? AND frame_name = ?
	`, s.sessionID, video, frame)
	if err != nil {
		return fmt.Errorf("removing exclusion: %w", err)
	}
	return nil
}

// List returns the entries in insertion order.
func (s *exclusionStore) List(ctx context.Context) ([]domain.ExcludedFrame, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT video_name, frame_name, related_start_frame, related_end_frame
		FROM excluded_frames WHERE session_id = ?
		ORDER BY position
	`, s.sessionID)
	if err != nil {
		return nil, fmt.Errorf("querying exclusions: %w", err)
	}
	defer rows.Close()

	return scanExclusions(rows)
}

// Replace swaps the whole list, keeping the first of any duplicate keys.
func (s *exclusionStore) Replace(ctx context.Context, frames []domain.ExcludedFrame) error {
	tx, err := s.store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	if _, err := tx.ExecContext(ctx, "DELETE FROM excluded_frames WHERE session_id = ?", s.sessionID); err != nil {
		return fmt.Errorf("clearing exclusions: %w", err)
	}

	for i, f := range frames {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO excluded_frames (session_id, position, video_name, frame_name, related_start_frame, related_end_frame)
			VALUES (?, ?, ?, ?, ?, ?)
			ON CONFLICT (session_id, video_name, frame_name) DO NOTHING
		`, s.sessionID, i, f.VideoName, f.FrameName, float64(f.RelatedStartFrame), float64(f.RelatedEndFrame))
		if err != nil {
			return fmt.Errorf("inserting exclusion: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing exclusions: %w", err)
	}
	return nil
}

// Clear removes all of the session's exclusions.
func (s *exclusionStore) Clear(ctx context.Context) error {
	_, err := s.store.db.ExecContext(ctx, "DELETE FROM excluded_frames WHERE session_id = ?", s.sessionID)
	if err != nil {
		return fmt.Errorf("clearing exclusions: %w", err)
	}
	return nil
}

// ==================== Helper Functions ====================

// scanExclusions scans multiple exclusion rows.
func scanExclusions(rows *sql.Rows) ([]domain.ExcludedFrame, error) {
	frames := []domain.ExcludedFrame{}
	for rows.Next() {
		var f domain.ExcludedFrame
		var start, end float64
		if err := rows.Scan(&f.VideoName, &f.FrameName, &start, &end); err != nil {
			return nil, fmt.Errorf("scanning exclusion: %w", err)
		}
		f.RelatedStartFrame = domain.FlexFloat(start)
		f.RelatedEndFrame = domain.FlexFloat(end)
		frames = append(frames, f)
	}
	return frames, rows.Err()
}
