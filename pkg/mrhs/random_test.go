package mrhs

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFillSUniqueDistinctRows(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 1))
	sys, _ := CreateFixed(6, 1, 5, 8)
	FillSUnique(rng, sys, 0)
	seen := map[uint64]bool{}
	for r := 0; r < sys.K(0); r++ {
		v := uint64(sys.S[0].Row(r))
		if seen[v] {
			t.Fatalf("duplicate row %d in S after FillSUnique", v)
		}
		seen[v] = true
	}
}

func TestFillSAndTruthTableRejectsWrongShape(t *testing.T) {
	sys, _ := CreateFixed(3, 1, 2, 4)
	if err := FillSAndTruthTable(sys, 0); err == nil {
		t.Fatalf("expected error for non l=3/k=4 block")
	}
}

func TestFillSAndTruthTableValues(t *testing.T) {
	sys, _ := CreateFixed(3, 1, 3, 4)
	if err := FillSAndTruthTable(sys, 0); err != nil {
		t.Fatalf("FillSAndTruthTable: %v", err)
	}
	for i, want := range andTruthTable {
		if sys.S[0].Row(i) != want {
			t.Fatalf("row %d = %#b, want %#b", i, sys.S[0].Row(i), want)
		}
	}
}

// TestEnsureRandomSolutionSatisfiesEveryBlock covers spec invariant 3:
// after ensure_random_solution, the chosen x satisfies x.Mi in rows(Si)
// for every block.
func TestEnsureRandomSolutionSatisfiesEveryBlock(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 9))
	sys, _ := CreateFixed(6, 4, 3, 2)
	for i := 0; i < sys.NBlocks(); i++ {
		FillM(rng, sys, i, MSparseCols)
		FillSUnique(rng, sys, i)
	}
	x := EnsureRandomSolution(rng, sys)
	for i := range sys.M {
		r := sys.M[i].MulRow(x)
		require.Truef(t, sys.S[i].HasRow(r), "block %d: x.M = %#b not present in S after EnsureRandomSolution", i, r)
	}
}

func TestRandomAndSystemPreconditionRefused(t *testing.T) {
	rng := rand.New(rand.NewPCG(2, 3))
	sys, err := RandomAndSystem(rng, 1, 2, 0, 0, 0)
	if err != nil {
		t.Fatalf("RandomAndSystem should refuse silently, not error: %v", err)
	}
	if sys.NBlocks() != 2 || sys.M[0].GetActiveRows().Popcount() != 0 || sys.S[0].GetActiveRows().Popcount() != 0 {
		t.Fatalf("expected unfilled (all-zero) system on precondition violation, got nblocks=%d nonzero M rows=%d nonzero S rows=%d",
			sys.NBlocks(), sys.M[0].GetActiveRows().Popcount(), sys.S[0].GetActiveRows().Popcount())
	}
}

func TestRandomAndSystemBuildsAndGates(t *testing.T) {
	rng := rand.New(rand.NewPCG(4, 5))
	// n == extraK + total - extra with numAndBlocks=2, extra=0, extraK=0: n == 0+2-0 == 2.
	sys, err := RandomAndSystem(rng, 2, 2, 0, 0, 0)
	if err != nil {
		t.Fatalf("RandomAndSystem: %v", err)
	}
	for i := 0; i < 2; i++ {
		if sys.L(i) != 3 || sys.K(i) != 4 {
			t.Fatalf("AND block %d shape = l=%d k=%d, want l=3 k=4", i, sys.L(i), sys.K(i))
		}
		for r, want := range andTruthTable {
			if sys.S[i].Row(r) != want {
				t.Fatalf("block %d row %d = %#b, want %#b", i, r, sys.S[i].Row(r), want)
			}
		}
	}
}
