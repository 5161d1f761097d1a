package state

import (
	"context"
	"fmt"
	"time"
)

// BuildRecord is one completed image build.
type BuildRecord struct {
	Tag           string
	DockerfileKey string
	Duration      time.Duration
	CreatedAt     time.Time
}

const buildsSchema = `
CREATE TABLE IF NOT EXISTS builds (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	tag TEXT NOT NULL,
	df_key TEXT NOT NULL,
	duration_ms INTEGER NOT NULL,
	created_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS builds_created_at ON builds(created_at);
`

func (d *DB) ensureBuildsTable(ctx context.Context) error {
	_, err := d.sql.ExecContext(ctx, buildsSchema)
	if err != nil {
		return fmt.Errorf("db: ensure builds table: %w", err)
	}
	return nil
}

// RecordBuild appends one build to the history.
func (d *DB) RecordBuild(ctx context.Context, rec BuildRecord) error {
	if err := d.ensureBuildsTable(ctx); err != nil {
		return err
	}

	createdAt := rec.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	_, err := d.sql.ExecContext(ctx,
		`INSERT INTO builds (tag, df_key, duration_ms, created_at) VALUES (?, ?, ?, ?)`,
		rec.Tag,
		rec.DockerfileKey,
		rec.Duration.Milliseconds(),
		createdAt.Unix(),
	)
	if err != nil {
		return fmt.Errorf("db: record build: %w", err)
	}
	return nil
}

// ListBuilds returns the most recent builds, newest first.
// limit <= 0 means no limit.
func (d *DB) ListBuilds(ctx context.Context, limit int) ([]BuildRecord, error) {
	if err := d.ensureBuildsTable(ctx); err != nil {
		return nil, err
	}

	query := `SELECT tag, df_key, duration_ms, created_at FROM builds ORDER BY created_at DESC, id DESC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := d.sql.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db: list builds: %w", err)
	}
	defer rows.Close()

	var out []BuildRecord
	for rows.Next() {
		var (
			rec        BuildRecord
			durationMS int64
			createdSec int64
		)
		if err := rows.Scan(&rec.Tag, &rec.DockerfileKey, &durationMS, &createdSec); err != nil {
			return nil, fmt.Errorf("db: scan build row: %w", err)
		}
		rec.Duration = time.Duration(durationMS) * time.Millisecond
		rec.CreatedAt = time.Unix(createdSec, 0)
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db: list builds: %w", err)
	}

	return out, nil
}

// PruneBuilds drops all but the newest keep records.
func (d *DB) PruneBuilds(ctx context.Context, keep int) error {
	if keep < 0 {
		keep = 0
	}
	if err := d.ensureBuildsTable(ctx); err != nil {
		return err
	}

	_, err := d.sql.ExecContext(ctx,
		`DELETE FROM builds WHERE id NOT IN (
			SELECT id FROM builds ORDER BY created_at DESC, id DESC LIMIT ?
		)`,
		keep,
	)
	if err != nil {
		return fmt.Errorf("db: prune builds: %w", err)
	}
	return nil
}
