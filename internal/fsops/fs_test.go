package fsops

import (
	"errors"
	"os"
	"path/filepath"
	"syscall"
	"testing"
	"time"
)

func TestRealFS_CopyFile(t *testing.T) {
	fs := NewRealFS()
	dir := t.TempDir()

	src := filepath.Join(dir, "src.jpg")
	if err := os.WriteFile(src, []byte("pixels"), 0o640); err != nil {
		t.Fatal(err)
	}
	mtime := time.Date(2023, 6, 1, 12, 0, 0, 0, time.UTC)
	if err := os.Chtimes(src, mtime, mtime); err != nil {
		t.Fatal(err)
	}

	dst := filepath.Join(dir, "dst.jpg")
	if err := fs.CopyFile(src, dst); err != nil {
		t.Fatalf("CopyFile() error = %v", err)
	}

	data, err := os.ReadFile(dst)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "pixels" {
		t.Errorf("destination content = %q, want %q", data, "pixels")
	}

	info, err := os.Stat(dst)
	if err != nil {
		t.Fatal(err)
	}
	if !info.ModTime().Equal(mtime) {
		t.Errorf("destination mtime = %v, want %v", info.ModTime(), mtime)
	}
	if info.Mode().Perm() != 0o640 {
		t.Errorf("destination mode = %v, want 0640", info.Mode().Perm())
	}

	// the source is retained
	if _, err := os.Stat(src); err != nil {
		t.Errorf("source missing after copy: %v", err)
	}
}

func TestRealFS_CopyFile_Errors(t *testing.T) {
	fs := NewRealFS()
	dir := t.TempDir()

	t.Run("missing source", func(t *testing.T) {
		err := fs.CopyFile(filepath.Join(dir, "nope.jpg"), filepath.Join(dir, "out.jpg"))
		if err == nil {
			t.Error("expected error for missing source, got nil")
		}
	})

	t.Run("directory source", func(t *testing.T) {
		err := fs.CopyFile(dir, filepath.Join(dir, "out.jpg"))
		if err == nil {
			t.Error("expected error for directory source, got nil")
		}
	})
}

func TestRealFS_MoveFile(t *testing.T) {
	fs := NewRealFS()
	dir := t.TempDir()

	src := filepath.Join(dir, "src.jpg")
	if err := os.WriteFile(src, []byte("pixels"), 0o644); err != nil {
		t.Fatal(err)
	}

	dst := filepath.Join(dir, "dst.jpg")
	if err := fs.MoveFile(src, dst); err != nil {
		t.Fatalf("MoveFile() error = %v", err)
	}

	if _, err := os.Stat(src); !os.IsNotExist(err) {
		t.Errorf("source still present after move: %v", err)
	}
	data, err := os.ReadFile(dst)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "pixels" {
		t.Errorf("destination content = %q, want %q", data, "pixels")
	}
}

func TestRealFS_MoveFile_CrossDeviceFallback(t *testing.T) {
	// simulate EXDEV so the copy+remove fallback runs
	fs := &RealFS{rename: func(oldpath, newpath string) error {
		return &os.LinkError{Op: "rename", Old: oldpath, New: newpath, Err: syscall.EXDEV}
	}}
	dir := t.TempDir()

	src := filepath.Join(dir, "src.jpg")
	if err := os.WriteFile(src, []byte("pixels"), 0o644); err != nil {
		t.Fatal(err)
	}

	dst := filepath.Join(dir, "dst.jpg")
	if err := fs.MoveFile(src, dst); err != nil {
		t.Fatalf("MoveFile() error = %v", err)
	}

	if _, err := os.Stat(src); !os.IsNotExist(err) {
		t.Error("source still present after cross-device move")
	}
	if _, err := os.Stat(dst); err != nil {
		t.Errorf("destination missing after cross-device move: %v", err)
	}
}

func TestRealFS_MoveFile_OtherRenameError(t *testing.T) {
	renameErr := errors.New("disk on fire")
	fs := &RealFS{rename: func(oldpath, newpath string) error { return renameErr }}
	dir := t.TempDir()
	src := filepath.Join(dir, "src.jpg")
	if err := os.WriteFile(src, []byte("pixels"), 0o644); err != nil {
		t.Fatal(err)
	}

	err := fs.MoveFile(src, filepath.Join(dir, "dst.jpg"))
	if !errors.Is(err, renameErr) {
		t.Errorf("MoveFile() error = %v, want wrapped rename error", err)
	}
	// non-EXDEV failures must not fall back to copy+remove
	if _, statErr := os.Stat(src); statErr != nil {
		t.Errorf("source missing after failed rename: %v", statErr)
	}
}

func TestRealFS_MkdirAll_Idempotent(t *testing.T) {
	fs := NewRealFS()
	path := filepath.Join(t.TempDir(), "a", "b", "c")

	if err := fs.MkdirAll(path, 0o755); err != nil {
		t.Fatalf("MkdirAll() error = %v", err)
	}
	if err := fs.MkdirAll(path, 0o755); err != nil {
		t.Errorf("MkdirAll() on existing dir error = %v", err)
	}
}

func TestRealFS_Exists(t *testing.T) {
	fs := NewRealFS()
	dir := t.TempDir()

	ok, err := fs.Exists(dir)
	if err != nil || !ok {
		t.Errorf("Exists(%q) = %v, %v, want true, nil", dir, ok, err)
	}

	ok, err = fs.Exists(filepath.Join(dir, "nope"))
	if err != nil || ok {
		t.Errorf("Exists(missing) = %v, %v, want false, nil", ok, err)
	}
}
