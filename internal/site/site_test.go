package site

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/util"
)

func TestWriter_WriteAndRead(t *testing.T) {
	mfs := memfs.New()
	w := New(mfs)

	if err := w.WriteFile("2026-01-01.html", []byte("one")); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := w.WriteFile("2026-01-01.html", []byte("two")); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	got, err := util.ReadFile(mfs, "2026-01-01.html")
	if err != nil || string(got) != "two" {
		t.Fatalf("read: %q %v", got, err)
	}

	ok, err := w.Exists("2026-01-01.html")
	if err != nil || !ok {
		t.Fatalf("exists: %v %v", ok, err)
	}
	ok, err = w.Exists("missing.html")
	if err != nil || ok {
		t.Fatalf("missing: %v %v", ok, err)
	}
}

func TestWriter_WriteCreatesDirectories(t *testing.T) {
	w := New(memfs.New())
	if err := w.WriteFile("nested/dir/page.html", []byte("x")); err != nil {
		t.Fatalf("write: %v", err)
	}
	if ok, _ := w.Exists("nested/dir/page.html"); !ok {
		t.Fatal("file not written")
	}
}

func TestWriter_CopyTreeReplacesOldCopy(t *testing.T) {
	mfs := memfs.New()
	w := New(mfs)
	if err := w.WriteFile("static/stale.css", []byte("old")); err != nil {
		t.Fatalf("seed: %v", err)
	}

	src := fstest.MapFS{
		"static/style.css":    {Data: []byte("body{}")},
		"static/img/logo.svg": {Data: []byte("<svg/>")},
	}
	n, err := w.CopyTree(src, "static", StaticDir)
	if err != nil {
		t.Fatalf("copy: %v", err)
	}
	if n != 2 {
		t.Fatalf("copied %d files, want 2", n)
	}
	if ok, _ := w.Exists("static/stale.css"); ok {
		t.Fatal("previous static copy should be removed")
	}
	data, err := util.ReadFile(mfs, "static/img/logo.svg")
	if err != nil || string(data) != "<svg/>" {
		t.Fatalf("nested copy: %q %v", data, err)
	}
}

func TestWriter_CopyTreeMissingSource(t *testing.T) {
	w := New(memfs.New())
	if _, err := w.CopyTree(fstest.MapFS{}, "static", StaticDir); err == nil {
		t.Fatal("expected error for missing source directory")
	}
}

func TestNewDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out", "build")
	w, err := NewDir(dir)
	if err != nil {
		t.Fatalf("NewDir: %v", err)
	}
	if err := w.WriteFile("index.html", []byte("<html></html>")); err != nil {
		t.Fatalf("write: %v", err)
	}
	got, err := os.ReadFile(filepath.Join(dir, "index.html"))
	if err != nil || string(got) != "<html></html>" {
		t.Fatalf("read back: %q %v", got, err)
	}
}

func TestNewDir_ParentIsFile(t *testing.T) {
	parent := filepath.Join(t.TempDir(), "not-a-dir")
	if err := os.WriteFile(parent, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := NewDir(filepath.Join(parent, "build")); err == nil {
		t.Fatal("expected error when the output directory cannot be created")
	}
}

// readOnlyFS refuses every write.
type readOnlyFS struct {
	billy.Filesystem
}

func (readOnlyFS) OpenFile(string, int, os.FileMode) (billy.File, error) {
	return nil, os.ErrPermission
}

func (readOnlyFS) MkdirAll(string, os.FileMode) error {
	return os.ErrPermission
}

func TestWriter_WriteFileError(t *testing.T) {
	w := New(readOnlyFS{memfs.New()})
	err := w.WriteFile("static/style.css", []byte("x"))
	if !errors.Is(err, os.ErrPermission) {
		t.Fatalf("expected permission error, got %v", err)
	}
	err = w.WriteFile("index.html", []byte("x"))
	if !errors.Is(err, os.ErrPermission) {
		t.Fatalf("expected permission error, got %v", err)
	}
}
