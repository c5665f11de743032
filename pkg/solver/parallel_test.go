package solver

import (
	"context"
	"sync"
	"testing"

	"github.com/smilkos/mrhs-go/pkg/bitvec"
	"github.com/smilkos/mrhs-go/pkg/mrhs"
)

// TestSolveParallelMatchesSolve covers spec.md §5's permitted external
// parallelization: splitting block 0's top bucket across workers must
// find the same total candidate count as a single-threaded Solve, and
// every goroutine's contribution to the shared counter must land (no
// lost updates under concurrent report calls).
func TestSolveParallelMatchesSolve(t *testing.T) {
	sys, _ := mrhs.CreateFixed(2, 1, 2, 3)
	for i := 0; i < 2; i++ {
		sys.M[0].SetBit(i, i, true)
	}
	sys.S[0].SetRow(0, 0b00)
	sys.S[0].SetRow(1, 0b01)
	sys.S[0].SetRow(2, 0b10)
	mrhs.Echelonize(sys, false)

	tbl, err := Prepare(sys)
	if err != nil {
		t.Fatalf("Prepare: %v", err)
	}

	var mu sync.Mutex
	seen := 0
	count, _, err := SolveParallel(context.Background(), tbl, 2, func(_ uint64, _ *Tables, _ []bitvec.Block) bool {
		mu.Lock()
		seen++
		mu.Unlock()
		return true
	})
	if err != nil {
		t.Fatalf("SolveParallel: %v", err)
	}
	if count != 3 || seen != 3 {
		t.Fatalf("count=%d seen=%d, want 3,3 across 2 workers over 3 branches", count, seen)
	}
}

// TestSolveParallelFallsBackWhenWorkersExceedBranches covers the small-
// input guard: requesting more workers than there are top-level branches
// must still produce the right count via the single-Solve fallback.
func TestSolveParallelFallsBackWhenWorkersExceedBranches(t *testing.T) {
	sys, _ := mrhs.CreateFixed(2, 1, 2, 3)
	for i := 0; i < 2; i++ {
		sys.M[0].SetBit(i, i, true)
	}
	sys.S[0].SetRow(0, 0b00)
	sys.S[0].SetRow(1, 0b01)
	sys.S[0].SetRow(2, 0b10)
	mrhs.Echelonize(sys, false)

	tbl, err := Prepare(sys)
	if err != nil {
		t.Fatalf("Prepare: %v", err)
	}
	count, _, err := SolveParallel(context.Background(), tbl, 32, func(_ uint64, _ *Tables, _ []bitvec.Block) bool {
		return true
	})
	if err != nil {
		t.Fatalf("SolveParallel: %v", err)
	}
	if count != 3 {
		t.Fatalf("count = %d, want 3", count)
	}
}
