package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// FetchRun is one recorded fetch attempt against an origin. The journal
// is operational metadata only; listings themselves stay in memory.
type FetchRun struct {
	ID         int64  `json:"id"`
	Source     string `json:"source"`
	Status     string `json:"status"` // loaded | failed
	Items      int    `json:"items"`
	Error      string `json:"error,omitempty"`
	DurationMs int64  `json:"durationMs"`
	At         string `json:"at"`
}

func Migrate(db *sql.DB) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	var v int
	if err := tx.QueryRow(`PRAGMA user_version;`).Scan(&v); err != nil {
		return err
	}
	if v >= 1 {
		return tx.Commit()
	}

	if _, err := tx.Exec(`
CREATE TABLE IF NOT EXISTS fetch_runs (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  source TEXT NOT NULL,
  status TEXT NOT NULL,
  items INTEGER NOT NULL DEFAULT 0,
  error TEXT NOT NULL DEFAULT '',
  duration_ms INTEGER NOT NULL DEFAULT 0,
  at TEXT NOT NULL
);
`); err != nil {
		return err
	}

	if _, err := tx.Exec(`
CREATE INDEX IF NOT EXISTS idx_fetch_runs_source_at
ON fetch_runs(source, at DESC);
`); err != nil {
		return err
	}

	if _, err := tx.Exec(`PRAGMA user_version = 1;`); err != nil {
		return err
	}

	return tx.Commit()
}

func RecordFetch(ctx context.Context, db *sql.DB, run FetchRun) error {
	if run.At == "" {
		run.At = time.Now().UTC().Format(time.RFC3339)
	}
	_, err := db.ExecContext(ctx, `
INSERT INTO fetch_runs(source, status, items, error, duration_ms, at)
VALUES(?,?,?,?,?,?);`,
		run.Source, run.Status, run.Items, run.Error, run.DurationMs, run.At,
	)
	if err != nil {
		return fmt.Errorf("record fetch: %w", err)
	}
	return nil
}

// ListHistory returns recent runs, newest first, optionally for one
// source.
func ListHistory(ctx context.Context, db *sql.DB, sourceName string, limit int) ([]FetchRun, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}

	query := `
SELECT id, source, status, items, error, duration_ms, at
FROM fetch_runs
`
	args := []any{}
	if sourceName != "" {
		query += "WHERE source = ?\n"
		args = append(args, sourceName)
	}
	query += "ORDER BY id DESC\nLIMIT ?;"
	args = append(args, limit)

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []FetchRun
	for rows.Next() {
		var r FetchRun
		if err := rows.Scan(&r.ID, &r.Source, &r.Status, &r.Items, &r.Error, &r.DurationMs, &r.At); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// CleanupOldRuns drops journal rows older than the retention window.
func CleanupOldRuns(db *sql.DB, retentionDays int) (deleted int64, err error) {
	if retentionDays <= 0 {
		retentionDays = 30
	}
	res, err := db.Exec(fmt.Sprintf(`
DELETE FROM fetch_runs
WHERE at < datetime('now', '-%d days');
`, retentionDays))
	if err != nil {
		return 0, fmt.Errorf("cleanup fetch runs: %w", err)
	}
	n, _ := res.RowsAffected()
	return n, nil
}
