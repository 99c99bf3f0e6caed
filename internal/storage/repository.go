package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"dailyoffice/internal/core"
	"dailyoffice/internal/log"

	_ "modernc.org/sqlite"
)

// SQLiteRepository is the build manifest: it remembers the content hash of
// every page written so unchanged pages can be left alone on the next run.
type SQLiteRepository struct {
	db      *sql.DB
	queries *Queries
	now     func() time.Time
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	// Pages are recorded from several render workers; one connection keeps
	// SQLite from reporting "database is locked".
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	// Run migrations
	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	repo := &SQLiteRepository{
		db:      db,
		queries: New(db),
		now:     time.Now,
	}

	return repo, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// BeginBuild records the start of a generation run.
func (r *SQLiteRepository) BeginBuild(ctx context.Context, id string, year int) error {
	err := r.queries.CreateBuild(ctx, CreateBuildParams{
		ID:        id,
		Year:      int64(year),
		StartedAt: r.now().Unix(),
	})
	if err != nil {
		return fmt.Errorf("create build: %w", err)
	}
	return nil
}

// FinishBuild stores the final counters of a run.
func (r *SQLiteRepository) FinishBuild(ctx context.Context, id string, stats core.BuildStats) error {
	n, err := r.queries.FinishBuild(ctx, FinishBuildParams{
		FinishedAt:   r.now().Unix(),
		Records:      int64(stats.Records),
		Warnings:     int64(stats.Warnings),
		PagesWritten: int64(stats.PagesWritten),
		PagesSkipped: int64(stats.PagesSkipped),
		ID:           id,
	})
	if err != nil {
		return fmt.Errorf("finish build: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("finish build: unknown build %s", id)
	}

	recorded, err := r.PagesInBuild(ctx, id)
	if err != nil {
		return err
	}

	log.FromContext(ctx).WithComponent(log.ComponentStorage).InfoContext(ctx, "Build recorded in manifest",
		log.FieldBuildID, id,
		"pages_written", stats.PagesWritten,
		"pages_skipped", stats.PagesSkipped,
		"pages_recorded", recorded)
	return nil
}

// PageHash returns the stored content hash for an output path.
func (r *SQLiteRepository) PageHash(ctx context.Context, path string) (string, bool, error) {
	hash, err := r.queries.GetPageHash(ctx, path)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get page hash %s: %w", path, err)
	}
	return hash, true, nil
}

// RecordPage stores the content hash written for path by build buildID.
func (r *SQLiteRepository) RecordPage(ctx context.Context, buildID, path, hash string) error {
	err := r.queries.UpsertPage(ctx, UpsertPageParams{
		Path:        path,
		ContentHash: hash,
		BuildID:     buildID,
		UpdatedAt:   r.now().Unix(),
	})
	if err != nil {
		return fmt.Errorf("record page %s: %w", path, err)
	}
	return nil
}

// LastBuild returns the most recent finished build, if any.
func (r *SQLiteRepository) LastBuild(ctx context.Context) (core.Build, bool, error) {
	row, err := r.queries.GetLastFinishedBuild(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Build{}, false, nil
	}
	if err != nil {
		return core.Build{}, false, fmt.Errorf("get last build: %w", err)
	}
	return core.Build{
		ID:         row.ID,
		Year:       int(row.Year),
		StartedAt:  time.Unix(row.StartedAt, 0).UTC(),
		FinishedAt: time.Unix(row.FinishedAt.Int64, 0).UTC(),
		Stats: core.BuildStats{
			Records:      int(row.Records),
			Warnings:     int(row.Warnings),
			PagesWritten: int(row.PagesWritten),
			PagesSkipped: int(row.PagesSkipped),
		},
	}, true, nil
}

// PagesInBuild counts the pages whose latest write belongs to buildID.
func (r *SQLiteRepository) PagesInBuild(ctx context.Context, buildID string) (int, error) {
	n, err := r.queries.CountPagesByBuild(ctx, buildID)
	if err != nil {
		return 0, fmt.Errorf("count pages: %w", err)
	}
	return int(n), nil
}
