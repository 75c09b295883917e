// Package transfer materializes a split plan: it dispatches copy or move
// jobs to a bounded worker pool and reports success or failure per job.
package transfer

import (
	"fmt"
	"path/filepath"
	"runtime"
	"sync"

	"github.com/danieljhkim/datasplit/internal/fsops"
	"github.com/danieljhkim/datasplit/internal/planner"
	"github.com/danieljhkim/datasplit/internal/scan"
)

// Job transfers one unit into a destination class directory.
type Job struct {
	// Unit is the file or group to transfer
	Unit planner.Unit

	// DestDir is the destination class directory
	// (output/subset/class), which must already exist
	DestDir string

	// Move removes the source after a successful transfer; otherwise
	// the source is retained
	Move bool
}

// Result is the outcome of one job.
type Result struct {
	Job Job
	Err error
}

// TransferError reports a failed copy or move of a single file.
type TransferError struct {
	// Src and Dst are the file paths involved
	Src string
	Dst string

	// Op is "copy" or "move"
	Op string

	// Err is the underlying cause
	Err error
}

func (e *TransferError) Error() string {
	return fmt.Sprintf("failed to %s %q to %q: %v", e.Op, e.Src, e.Dst, e.Err)
}

func (e *TransferError) Unwrap() error { return e.Err }

// Pool dispatches transfer jobs to a fixed number of workers.
type Pool struct {
	fs      fsops.FS
	workers int
}

// NewPool creates a pool with the given worker count. A count below one
// defaults to the available CPU parallelism.
func NewPool(fs fsops.FS, workers int) *Pool {
	if workers < 1 {
		workers = runtime.NumCPU()
	}
	return &Pool{fs: fs, workers: workers}
}

// Workers returns the pool's worker count.
func (p *Pool) Workers() int {
	return p.workers
}

// Run executes every job and returns one result per job. A failed job
// does not cancel its siblings; the caller decides whether any failure
// fails the batch.
func (p *Pool) Run(jobs []Job) []Result {
	in := make(chan Job)
	out := make(chan Result, len(jobs))

	var wg sync.WaitGroup
	for i := 0; i < p.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for job := range in {
				out <- Result{Job: job, Err: p.transfer(job)}
			}
		}()
	}

	go func() {
		for _, job := range jobs {
			in <- job
		}
		close(in)
		wg.Wait()
		close(out)
	}()

	results := make([]Result, 0, len(jobs))
	for r := range out {
		results = append(results, r)
	}
	return results
}

// DestPath resolves where a unit member lands beneath destDir. Group
// members are flattened directly into the destination directory; a single
// file that lived in a nested subdirectory keeps its relative sub-path.
func DestPath(u planner.Unit, f scan.FileEntry, destDir string) string {
	if u.IsGroup() {
		return filepath.Join(destDir, f.Name())
	}
	return filepath.Join(destDir, f.RelPath)
}

// transfer moves or copies every file of a unit.
func (p *Pool) transfer(job Job) error {
	for _, f := range job.Unit.Files {
		dst := DestPath(job.Unit, f, job.DestDir)
		if dir := filepath.Dir(dst); dir != job.DestDir {
			// MkdirAll is idempotent, so concurrent workers
			// recreating the same sub-path cannot race.
			if err := p.fs.MkdirAll(dir, 0o755); err != nil {
				return &TransferError{Src: f.Path, Dst: dst, Op: op(job.Move), Err: err}
			}
		}

		var err error
		if job.Move {
			err = p.fs.MoveFile(f.Path, dst)
		} else {
			err = p.fs.CopyFile(f.Path, dst)
		}
		if err != nil {
			return &TransferError{Src: f.Path, Dst: dst, Op: op(job.Move), Err: err}
		}
	}
	return nil
}

func op(move bool) string {
	if move {
		return "move"
	}
	return "copy"
}
