package traffic

import (
	"context"
	"database/sql"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	kerrors "github.com/motorlane/kiosk/errors"
	"github.com/motorlane/kiosk/screen"
)

// SQLiteStore persists traffic session logs locally, one row per kiosk
// session, updated in place as the session's journey grows. The trafficLog
// admin screen and the `kiosk sessions` command read from it.
type SQLiteStore struct {
	db   *sql.DB
	path string
}

// Record is one stored traffic session.
type Record struct {
	SessionID    string
	Screen       screen.ID
	Actions      []string
	CustomerName string
	Data         string // raw customer-data JSON
	RecordedAt   time.Time
}

// NewSQLiteStore opens (creating if needed) the traffic database at dbPath
// with WAL mode enabled.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	dbPath = strings.TrimSpace(dbPath)
	if dbPath == "" {
		return nil, kerrors.New(kerrors.ErrCodeInvalidInput, "sqlite db path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, kerrors.Wrap(err, kerrors.ErrCodeLogStorage, "create db directory")
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, kerrors.Wrap(err, kerrors.ErrCodeLogStorage, "open sqlite")
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			_ = db.Close()
			return nil, kerrors.Wrap(err, kerrors.ErrCodeLogStorage, "exec "+p)
		}
	}

	store := &SQLiteStore{db: db, path: dbPath}
	if err := store.ensureSchema(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

func (s *SQLiteStore) ensureSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS traffic_sessions (
		session_id    TEXT PRIMARY KEY,
		screen        TEXT NOT NULL,
		sub_route     TEXT NOT NULL DEFAULT '',
		actions       TEXT NOT NULL DEFAULT '[]',
		customer_name TEXT NOT NULL DEFAULT '',
		data          TEXT NOT NULL DEFAULT '{}',
		recorded_at   TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_traffic_recorded_at
		ON traffic_sessions(recorded_at);
	`
	if _, err := s.db.Exec(schema); err != nil {
		return kerrors.Wrap(err, kerrors.ErrCodeLogStorage, "ensure schema")
	}
	return nil
}

// LogSession implements Collector. Each emission upserts the session's row:
// the traffic log keeps one record per session describing its latest state,
// not an append-only event stream.
func (s *SQLiteStore) LogSession(ctx context.Context, snap Snapshot) error {
	actions, err := json.Marshal(snap.Actions)
	if err != nil {
		return kerrors.Wrap(err, kerrors.ErrCodeLogStorage, "marshal actions")
	}
	data, err := json.Marshal(snap.Data)
	if err != nil {
		return kerrors.Wrap(err, kerrors.ErrCodeLogStorage, "marshal customer data")
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO traffic_sessions
			(session_id, screen, sub_route, actions, customer_name, data, recorded_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(session_id) DO UPDATE SET
			screen = excluded.screen,
			sub_route = excluded.sub_route,
			actions = excluded.actions,
			customer_name = excluded.customer_name,
			data = excluded.data,
			recorded_at = excluded.recorded_at`,
		snap.SessionID, string(snap.Screen), snap.SubRoute, string(actions),
		snap.CustomerName, string(data), snap.RecordedAt.UTC().Format(time.RFC3339Nano))
	if err != nil {
		return kerrors.Wrap(err, kerrors.ErrCodeLogStorage, "upsert traffic session")
	}
	return nil
}

// Recent returns up to limit sessions, newest first.
func (s *SQLiteStore) Recent(ctx context.Context, limit int) ([]Record, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT session_id, screen, actions, customer_name, data, recorded_at
		FROM traffic_sessions
		ORDER BY recorded_at DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, kerrors.Wrap(err, kerrors.ErrCodeLogStorage, "query traffic sessions")
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		var rec Record
		var scr, actions, recordedAt string
		if err := rows.Scan(&rec.SessionID, &scr, &actions, &rec.CustomerName, &rec.Data, &recordedAt); err != nil {
			return nil, kerrors.Wrap(err, kerrors.ErrCodeLogStorage, "scan traffic session")
		}
		rec.Screen = screen.ID(scr)
		if err := json.Unmarshal([]byte(actions), &rec.Actions); err != nil {
			rec.Actions = nil
		}
		if ts, err := time.Parse(time.RFC3339Nano, recordedAt); err == nil {
			rec.RecordedAt = ts
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// Count returns the number of stored sessions.
func (s *SQLiteStore) Count(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM traffic_sessions`).Scan(&n)
	if err != nil {
		return 0, kerrors.Wrap(err, kerrors.ErrCodeLogStorage, "count traffic sessions")
	}
	return n, nil
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
