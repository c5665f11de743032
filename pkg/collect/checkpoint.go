package collect

import (
	"encoding/gob"
	"fmt"
	"os"
)

// Checkpoint holds state for resuming a long-running solver.Solve walk:
// the solutions found so far and how many of block 0's top-level branches
// have been fully explored (the same coarse, whole-branch granularity the
// teacher's pkg/result.Checkpoint resumes at, rather than an exact
// per-depth cursor snapshot).
type Checkpoint struct {
	Solutions     []Solution
	CompletedTop  int // number of block-0 table entries fully explored
	TotalTop      int // total block-0 table entries, for progress reporting
	Counter, Xors uint64
}

func init() {
	gob.Register(Solution{})
}

// SaveCheckpoint writes ckpt to path as a gob stream.
func SaveCheckpoint(path string, ckpt *Checkpoint) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("collect.SaveCheckpoint: %w", err)
	}
	defer f.Close()
	return gob.NewEncoder(f).Encode(ckpt)
}

// LoadCheckpoint reads a Checkpoint previously written by SaveCheckpoint.
func LoadCheckpoint(path string) (*Checkpoint, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("collect.LoadCheckpoint: %w", err)
	}
	defer f.Close()
	var ckpt Checkpoint
	if err := gob.NewDecoder(f).Decode(&ckpt); err != nil {
		return nil, fmt.Errorf("collect.LoadCheckpoint: %w", err)
	}
	return &ckpt, nil
}
