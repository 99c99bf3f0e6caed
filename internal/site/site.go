package site

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"sync"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-billy/v5/util"
)

const (
	FilePermissions = 0644
	DirPermissions  = 0755

	// StaticDir is where static assets land inside the output directory.
	StaticDir = "static"
)

// Writer puts generated files into an output filesystem. Writes are
// serialized, so pages rendered in parallel can share one Writer.
type Writer struct {
	mu sync.Mutex
	fs billy.Filesystem
}

// New wraps an existing filesystem, typically memfs in tests.
func New(fs billy.Filesystem) *Writer {
	return &Writer{fs: fs}
}

// NewDir creates dir if needed and returns a Writer rooted at it.
func NewDir(dir string) (*Writer, error) {
	if err := os.MkdirAll(dir, DirPermissions); err != nil {
		return nil, fmt.Errorf("create output directory %s: %w", dir, err)
	}
	return New(osfs.New(dir)), nil
}

// WriteFile replaces name with data.
func (w *Writer) WriteFile(name string, data []byte) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if dir := path.Dir(name); dir != "." {
		if err := w.fs.MkdirAll(dir, DirPermissions); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}
	if err := util.WriteFile(w.fs, name, data, FilePermissions); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	return nil
}

// Exists reports whether name is present in the output.
func (w *Writer) Exists(name string) (bool, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	_, err := w.fs.Stat(name)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	return false, err
}

// CopyTree replaces dst with a copy of the src directory of fsys and
// returns the number of files copied.
func (w *Writer) CopyTree(fsys fs.FS, src, dst string) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := util.RemoveAll(w.fs, dst); err != nil {
		return 0, fmt.Errorf("remove %s: %w", dst, err)
	}

	copied := 0
	err := fs.WalkDir(fsys, src, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel := dst
		if p != src {
			rel = path.Join(dst, p[len(src)+1:])
		}
		if d.IsDir() {
			return w.fs.MkdirAll(rel, DirPermissions)
		}
		if err := w.copyFile(fsys, p, rel); err != nil {
			return err
		}
		copied++
		return nil
	})
	if err != nil {
		return copied, fmt.Errorf("copy %s: %w", src, err)
	}
	return copied, nil
}

func (w *Writer) copyFile(fsys fs.FS, src, dst string) error {
	in, err := fsys.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := w.fs.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, FilePermissions)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
