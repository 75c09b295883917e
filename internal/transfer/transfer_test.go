package transfer

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/danieljhkim/datasplit/internal/fsops"
	"github.com/danieljhkim/datasplit/internal/planner"
	"github.com/danieljhkim/datasplit/internal/scan"
)

func writeFile(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
}

func singleUnit(classDir, rel string) planner.Unit {
	return planner.Unit{Files: []scan.FileEntry{{
		Path:    filepath.Join(classDir, rel),
		RelPath: rel,
	}}}
}

func TestPool_DefaultWorkers(t *testing.T) {
	p := NewPool(fsops.NewRealFS(), 0)
	if p.Workers() < 1 {
		t.Errorf("Workers() = %d, want at least 1", p.Workers())
	}

	p = NewPool(fsops.NewRealFS(), 3)
	if p.Workers() != 3 {
		t.Errorf("Workers() = %d, want 3", p.Workers())
	}
}

func TestPool_CopiesFiles(t *testing.T) {
	classDir := t.TempDir()
	destDir := t.TempDir()
	writeFile(t, filepath.Join(classDir, "a.jpg"))
	writeFile(t, filepath.Join(classDir, "b.jpg"))

	pool := NewPool(fsops.NewRealFS(), 2)
	results := pool.Run([]Job{
		{Unit: singleUnit(classDir, "a.jpg"), DestDir: destDir},
		{Unit: singleUnit(classDir, "b.jpg"), DestDir: destDir},
	})

	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}
	for _, r := range results {
		if r.Err != nil {
			t.Errorf("job for %q failed: %v", r.Job.Unit.Key(), r.Err)
		}
	}
	for _, name := range []string{"a.jpg", "b.jpg"} {
		if _, err := os.Stat(filepath.Join(destDir, name)); err != nil {
			t.Errorf("destination %q missing: %v", name, err)
		}
		// copy mode retains the source
		if _, err := os.Stat(filepath.Join(classDir, name)); err != nil {
			t.Errorf("source %q missing after copy: %v", name, err)
		}
	}
}

func TestPool_MoveRemovesSource(t *testing.T) {
	classDir := t.TempDir()
	destDir := t.TempDir()
	writeFile(t, filepath.Join(classDir, "a.jpg"))

	pool := NewPool(fsops.NewRealFS(), 1)
	results := pool.Run([]Job{
		{Unit: singleUnit(classDir, "a.jpg"), DestDir: destDir, Move: true},
	})
	if results[0].Err != nil {
		t.Fatalf("move failed: %v", results[0].Err)
	}

	if _, err := os.Stat(filepath.Join(classDir, "a.jpg")); !os.IsNotExist(err) {
		t.Error("source still present after move")
	}
	if _, err := os.Stat(filepath.Join(destDir, "a.jpg")); err != nil {
		t.Errorf("destination missing after move: %v", err)
	}
}

func TestPool_NestedRelPathRecreated(t *testing.T) {
	classDir := t.TempDir()
	destDir := t.TempDir()
	rel := filepath.Join("scans", "2023", "a.jpg")
	writeFile(t, filepath.Join(classDir, rel))

	pool := NewPool(fsops.NewRealFS(), 1)
	results := pool.Run([]Job{
		{Unit: singleUnit(classDir, rel), DestDir: destDir},
	})
	if results[0].Err != nil {
		t.Fatalf("copy failed: %v", results[0].Err)
	}

	if _, err := os.Stat(filepath.Join(destDir, rel)); err != nil {
		t.Errorf("nested destination missing: %v", err)
	}
}

func TestPool_GroupMembersFlattened(t *testing.T) {
	classDir := t.TempDir()
	destDir := t.TempDir()
	relA := filepath.Join("nested", "img001_a.jpg")
	relB := filepath.Join("nested", "img001_b.jpg")
	writeFile(t, filepath.Join(classDir, relA))
	writeFile(t, filepath.Join(classDir, relB))

	unit := planner.Unit{Files: []scan.FileEntry{
		{Path: filepath.Join(classDir, relA), RelPath: relA},
		{Path: filepath.Join(classDir, relB), RelPath: relB},
	}}

	pool := NewPool(fsops.NewRealFS(), 1)
	results := pool.Run([]Job{{Unit: unit, DestDir: destDir}})
	if results[0].Err != nil {
		t.Fatalf("copy failed: %v", results[0].Err)
	}

	// group members land directly in the class dir, without "nested"
	for _, name := range []string{"img001_a.jpg", "img001_b.jpg"} {
		if _, err := os.Stat(filepath.Join(destDir, name)); err != nil {
			t.Errorf("flattened member %q missing: %v", name, err)
		}
	}
	if _, err := os.Stat(filepath.Join(destDir, "nested")); !os.IsNotExist(err) {
		t.Error("group transfer recreated the nested sub-path")
	}
}

func TestPool_FailureIsolation(t *testing.T) {
	classDir := t.TempDir()
	destDir := t.TempDir()
	writeFile(t, filepath.Join(classDir, "ok.jpg"))

	pool := NewPool(fsops.NewRealFS(), 2)
	results := pool.Run([]Job{
		{Unit: singleUnit(classDir, "missing.jpg"), DestDir: destDir},
		{Unit: singleUnit(classDir, "ok.jpg"), DestDir: destDir},
	})

	var failed, succeeded int
	for _, r := range results {
		if r.Err != nil {
			failed++
			var tErr *TransferError
			if !errors.As(r.Err, &tErr) {
				t.Errorf("error type = %T, want *TransferError", r.Err)
			} else {
				if tErr.Src == "" || tErr.Dst == "" {
					t.Errorf("TransferError missing paths: %+v", tErr)
				}
				if tErr.Op != "copy" {
					t.Errorf("TransferError.Op = %q, want copy", tErr.Op)
				}
			}
		} else {
			succeeded++
		}
	}
	if failed != 1 || succeeded != 1 {
		t.Errorf("failed/succeeded = %d/%d, want 1/1", failed, succeeded)
	}

	// the sibling job still completed
	if _, err := os.Stat(filepath.Join(destDir, "ok.jpg")); err != nil {
		t.Errorf("sibling transfer missing: %v", err)
	}
}

func TestDestPath(t *testing.T) {
	single := singleUnit("/data/cats", filepath.Join("nested", "a.jpg"))
	got := DestPath(single, single.Files[0], "/out/train/cats")
	want := filepath.Join("/out/train/cats", "nested", "a.jpg")
	if got != want {
		t.Errorf("DestPath(single) = %q, want %q", got, want)
	}

	grp := planner.Unit{Files: []scan.FileEntry{
		{Path: "/data/cats/n/a_1.jpg", RelPath: "n/a_1.jpg"},
		{Path: "/data/cats/n/a_2.jpg", RelPath: "n/a_2.jpg"},
	}}
	got = DestPath(grp, grp.Files[0], "/out/train/cats")
	want = filepath.Join("/out/train/cats", "a_1.jpg")
	if got != want {
		t.Errorf("DestPath(group) = %q, want %q", got, want)
	}
}
