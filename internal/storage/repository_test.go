package storage

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"dailyoffice/internal/core"
	"dailyoffice/internal/log"
)

func newTestRepo(t *testing.T) *SQLiteRepository {
	t.Helper()
	repo, err := NewSQLiteRepository(filepath.Join(t.TempDir(), "db", "manifest.db"))
	if err != nil {
		t.Fatalf("new repo: %v", err)
	}
	t.Cleanup(func() { repo.Close() })
	return repo
}

func TestRepository_PageHashes(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	if err := repo.BeginBuild(ctx, "b1", 2026); err != nil {
		t.Fatalf("begin: %v", err)
	}
	if _, ok, err := repo.PageHash(ctx, "index.html"); err != nil || ok {
		t.Fatalf("unknown page: ok=%v err=%v", ok, err)
	}

	if err := repo.RecordPage(ctx, "b1", "index.html", "aaa"); err != nil {
		t.Fatalf("record: %v", err)
	}
	hash, ok, err := repo.PageHash(ctx, "index.html")
	if err != nil || !ok || hash != "aaa" {
		t.Fatalf("hash: %q ok=%v err=%v", hash, ok, err)
	}

	if err := repo.BeginBuild(ctx, "b2", 2026); err != nil {
		t.Fatalf("begin b2: %v", err)
	}
	if err := repo.RecordPage(ctx, "b2", "index.html", "bbb"); err != nil {
		t.Fatalf("re-record: %v", err)
	}
	hash, _, _ = repo.PageHash(ctx, "index.html")
	if hash != "bbb" {
		t.Fatalf("upsert should replace hash, got %q", hash)
	}
	if n, err := repo.PagesInBuild(ctx, "b2"); err != nil || n != 1 {
		t.Fatalf("pages in b2: %d %v", n, err)
	}
	if n, _ := repo.PagesInBuild(ctx, "b1"); n != 0 {
		t.Fatalf("pages in b1 should move to b2, got %d", n)
	}
}

func TestRepository_Builds(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)
	clock := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	repo.now = func() time.Time { return clock }

	if _, ok, err := repo.LastBuild(ctx); err != nil || ok {
		t.Fatalf("empty manifest: ok=%v err=%v", ok, err)
	}

	if err := repo.BeginBuild(ctx, "b1", 2026); err != nil {
		t.Fatalf("begin: %v", err)
	}
	if _, ok, _ := repo.LastBuild(ctx); ok {
		t.Fatal("unfinished build must not be reported")
	}

	clock = clock.Add(time.Minute)
	stats := core.BuildStats{Records: 365, Warnings: 2, PagesWritten: 368, PagesSkipped: 0}
	if err := repo.FinishBuild(ctx, "b1", stats); err != nil {
		t.Fatalf("finish: %v", err)
	}

	b, ok, err := repo.LastBuild(ctx)
	if err != nil || !ok {
		t.Fatalf("last build: ok=%v err=%v", ok, err)
	}
	if b.ID != "b1" || b.Year != 2026 || b.Stats != stats {
		t.Fatalf("unexpected build: %+v", b)
	}
	if !b.FinishedAt.Equal(clock) || !b.StartedAt.Equal(clock.Add(-time.Minute)) {
		t.Fatalf("timestamps: %+v", b)
	}

	if err := repo.FinishBuild(ctx, "nope", stats); err == nil {
		t.Fatal("finishing an unknown build should fail")
	}
}

func TestRepository_ReopenKeepsData(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "manifest.db")

	repo, err := NewSQLiteRepository(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := repo.BeginBuild(ctx, "b1", 2026); err != nil {
		t.Fatalf("begin: %v", err)
	}
	if err := repo.RecordPage(ctx, "b1", "about.html", "h"); err != nil {
		t.Fatalf("record: %v", err)
	}
	repo.Close()

	repo, err = NewSQLiteRepository(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer repo.Close()
	if hash, ok, _ := repo.PageHash(ctx, "about.html"); !ok || hash != "h" {
		t.Fatalf("hash after reopen: %q %v", hash, ok)
	}
}

func TestRepository_FinishBuildLogsRecordedPages(t *testing.T) {
	var buf bytes.Buffer
	logger := log.New(log.Config{Component: log.ComponentApp, Output: &buf})
	ctx := log.NewContext(context.Background(), logger)
	repo := newTestRepo(t)

	if err := repo.BeginBuild(ctx, "b1", 2026); err != nil {
		t.Fatalf("begin: %v", err)
	}
	for _, p := range []string{"index.html", "all.html"} {
		if err := repo.RecordPage(ctx, "b1", p, "h"); err != nil {
			t.Fatalf("record %s: %v", p, err)
		}
	}
	if err := repo.FinishBuild(ctx, "b1", core.BuildStats{PagesWritten: 2}); err != nil {
		t.Fatalf("finish: %v", err)
	}

	out := buf.String()
	for _, want := range []string{"component=storage", "build_id=b1", "pages_recorded=2"} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in %s", want, out)
		}
	}
}
