package storage

import (
	"context"
	"database/sql"
)

// DBTX is satisfied by *sql.DB and *sql.Tx.
type DBTX interface {
	ExecContext(context.Context, string, ...interface{}) (sql.Result, error)
	QueryRowContext(context.Context, string, ...interface{}) *sql.Row
}

type Queries struct {
	db DBTX
}

func New(db DBTX) *Queries {
	return &Queries{db: db}
}

const createBuild = `INSERT INTO builds (id, year, started_at) VALUES (?, ?, ?)`

type CreateBuildParams struct {
	ID        string
	Year      int64
	StartedAt int64
}

func (q *Queries) CreateBuild(ctx context.Context, arg CreateBuildParams) error {
	_, err := q.db.ExecContext(ctx, createBuild, arg.ID, arg.Year, arg.StartedAt)
	return err
}

const finishBuild = `UPDATE builds
SET finished_at = ?, records = ?, warnings = ?, pages_written = ?, pages_skipped = ?
WHERE id = ?`

type FinishBuildParams struct {
	FinishedAt   int64
	Records      int64
	Warnings     int64
	PagesWritten int64
	PagesSkipped int64
	ID           string
}

func (q *Queries) FinishBuild(ctx context.Context, arg FinishBuildParams) (int64, error) {
	res, err := q.db.ExecContext(ctx, finishBuild,
		arg.FinishedAt, arg.Records, arg.Warnings, arg.PagesWritten, arg.PagesSkipped, arg.ID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

const getLastFinishedBuild = `SELECT id, year, started_at, finished_at, records, warnings, pages_written, pages_skipped
FROM builds
WHERE finished_at IS NOT NULL
ORDER BY finished_at DESC, started_at DESC
LIMIT 1`

type BuildRow struct {
	ID           string
	Year         int64
	StartedAt    int64
	FinishedAt   sql.NullInt64
	Records      int64
	Warnings     int64
	PagesWritten int64
	PagesSkipped int64
}

func (q *Queries) GetLastFinishedBuild(ctx context.Context) (BuildRow, error) {
	row := q.db.QueryRowContext(ctx, getLastFinishedBuild)
	var b BuildRow
	err := row.Scan(&b.ID, &b.Year, &b.StartedAt, &b.FinishedAt, &b.Records, &b.Warnings, &b.PagesWritten, &b.PagesSkipped)
	return b, err
}

const getPageHash = `SELECT content_hash FROM pages WHERE path = ?`

func (q *Queries) GetPageHash(ctx context.Context, path string) (string, error) {
	var hash string
	err := q.db.QueryRowContext(ctx, getPageHash, path).Scan(&hash)
	return hash, err
}

const upsertPage = `INSERT INTO pages (path, content_hash, build_id, updated_at)
VALUES (?, ?, ?, ?)
ON CONFLICT(path) DO UPDATE SET
    content_hash = excluded.content_hash,
    build_id = excluded.build_id,
    updated_at = excluded.updated_at`

type UpsertPageParams struct {
	Path        string
	ContentHash string
	BuildID     string
	UpdatedAt   int64
}

func (q *Queries) UpsertPage(ctx context.Context, arg UpsertPageParams) error {
	_, err := q.db.ExecContext(ctx, upsertPage, arg.Path, arg.ContentHash, arg.BuildID, arg.UpdatedAt)
	return err
}

const countPagesByBuild = `SELECT COUNT(*) FROM pages WHERE build_id = ?`

func (q *Queries) CountPagesByBuild(ctx context.Context, buildID string) (int64, error) {
	var n int64
	err := q.db.QueryRowContext(ctx, countPagesByBuild, buildID).Scan(&n)
	return n, err
}
