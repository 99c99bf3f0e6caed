package csvfile

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParse(t *testing.T) {
	data := "\ufeffDate,Color,Psalm\n" +
		"Jan 1,White,\"Ps 8, 19\"\n" +
		"Jan 2,Green\n" +
		",,\n" +
		"Jan 3,Red,Ps 1,extra\n"

	tbl, err := Parse(strings.NewReader(data))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(tbl.Header) != 3 || tbl.Header[0] != "Date" {
		t.Fatalf("header: %q", tbl.Header)
	}
	if len(tbl.Rows) != 4 {
		t.Fatalf("rows: got %d", len(tbl.Rows))
	}
	if got := tbl.Rows[0]["Psalm"]; got != "Ps 8, 19" {
		t.Fatalf("quoted cell: %q", got)
	}
	if _, ok := tbl.Rows[1]["Psalm"]; ok {
		t.Fatalf("short row should leave Psalm missing")
	}
	if tbl.Rows[2]["Date"] != "" {
		t.Fatalf("blank row date: %q", tbl.Rows[2]["Date"])
	}
	if len(tbl.Rows[3]) != 3 {
		t.Fatalf("extra cells should be dropped: %v", tbl.Rows[3])
	}
}

func TestParse_Empty(t *testing.T) {
	tbl, err := Parse(strings.NewReader(""))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(tbl.Header) != 0 || len(tbl.Rows) != 0 {
		t.Fatalf("expected empty table, got %+v", tbl)
	}
}

func TestReader_ReadTable(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "days.csv")
	if err := os.WriteFile(path, []byte("Date,Color\nFeb 1,Green\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	tbl, err := New(path).ReadTable(context.Background())
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(tbl.Rows) != 1 || tbl.Rows[0]["Color"] != "Green" {
		t.Fatalf("unexpected table: %+v", tbl)
	}
}

func TestReader_MissingFile(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "nope.csv")).ReadTable(context.Background())
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
}
