package mrhs

import (
	"fmt"
	"math/rand/v2"

	"github.com/smilkos/mrhs-go/pkg/bitvec"
	"github.com/smilkos/mrhs-go/pkg/matrix"
)

// MFiller selects which random construction populates a block's M side.
// Mirrors the injected-rng pattern of oisee-z80-optimizer/pkg/stoke's
// Mutator rather than touching a process-global random source.
type MFiller int

const (
	MDense MFiller = iota
	MSparseCols
	MAndCols
	MSparseAndCols
)

// andTruthTable is the 4-row truth table for z = x AND y, rows ordered
// (x,y,z) = (0,0,0) (0,1,0) (1,0,0) (1,1,1).
var andTruthTable = [4]bitvec.Block{0b000, 0b010, 0b100, 0b111}

// RandomAndSystem builds an m-block system where the first m-l blocks
// are l=3/k=4 AND-gate blocks and any remaining blocks are left as plain
// sparse-column/unique-RHS blocks, per spec.md §4.E's AND-filler precondition
// n == k + m - l (here l is the count of non-AND blocks and k their
// uniform RHS size). Violations are refused silently: the system is
// returned unfilled (zero M/S), matching the ShapeError policy of
// spec.md §7 (filler becomes a no-op rather than erroring).
func RandomAndSystem(rng *rand.Rand, n, numAndBlocks, extra, extraL, extraK int) (*System, error) {
	total := numAndBlocks + extra
	ls := make([]int, total)
	ks := make([]int, total)
	for i := 0; i < numAndBlocks; i++ {
		ls[i], ks[i] = 3, 4
	}
	for i := numAndBlocks; i < total; i++ {
		ls[i], ks[i] = extraL, extraK
	}
	if n != extraK+total-extra {
		// Precondition violated: return an empty, unfilled system rather
		// than erroring (spec.md §7 ShapeError policy).
		return CreateVariable(n, total, ls, ks)
	}
	sys, err := CreateVariable(n, total, ls, ks)
	if err != nil {
		return nil, err
	}
	for i := 0; i < numAndBlocks; i++ {
		matrix.RandomSparseCols(rng, sys.M[i])
		for r := 0; r < 4; r++ {
			sys.S[i].SetRow(r, andTruthTable[r])
		}
	}
	for i := numAndBlocks; i < total; i++ {
		matrix.RandomSparseCols(rng, sys.M[i])
		matrix.RandomUnique(rng, sys.S[i])
	}
	return sys, nil
}

// FillM populates block i's M with the given filler strategy.
func FillM(rng *rand.Rand, sys *System, i int, kind MFiller) error {
	switch kind {
	case MDense:
		matrix.Random(rng, sys.M[i])
	case MSparseCols:
		matrix.RandomSparseCols(rng, sys.M[i])
	case MAndCols:
		return matrix.RandomAndCols(sys.M[i], rng.IntN(sys.M[i].Rows()))
	case MSparseAndCols:
		return matrix.RandomSparseAndCols(rng, sys.M[i], rng.IntN(sys.M[i].Rows()))
	default:
		return fmt.Errorf("mrhs.FillM: unknown filler kind %d: %w", kind, ErrShape)
	}
	return nil
}

// FillSUnique populates block i's S with pairwise-distinct random rows.
func FillSUnique(rng *rand.Rand, sys *System, i int) {
	matrix.RandomUnique(rng, sys.S[i])
}

// FillSAndTruthTable populates an l=3/k=4 block's S with the AND truth
// table. Returns an error (no-op) if the block's shape does not match.
func FillSAndTruthTable(sys *System, i int) error {
	if sys.L(i) != 3 || sys.K(i) != 4 {
		return fmt.Errorf("mrhs.FillSAndTruthTable: block %d has shape l=%d k=%d, want l=3 k=4: %w", i, sys.L(i), sys.K(i), ErrShape)
	}
	for r := 0; r < 4; r++ {
		sys.S[i].SetRow(r, andTruthTable[r])
	}
	return nil
}

// EnsureRandomSolution picks a random x in GF(2)^n and, for every block
// i, guarantees x.Mi appears as a row of Si (overwriting a uniformly
// chosen row if absent). Returns the chosen x.
func EnsureRandomSolution(rng *rand.Rand, sys *System) *bitvec.BitVector {
	x := bitvec.New(sys.n)
	for i := 0; i < sys.n; i++ {
		x.SetBit(i, rng.Uint64()&1 == 1)
	}
	for i := range sys.M {
		r := sys.M[i].MulRow(x)
		matrix.EnsureBlockIn(rng, sys.S[i], r)
	}
	return x
}
