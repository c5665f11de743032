package solver

import "github.com/smilkos/mrhs-go/pkg/bitvec"

// ReconstructPivotVector derives the global pivot-row assignment x' from
// one SolutionFunc callback's choice slice: bit PivotStart+b of block i is
// set to bit Li-1-b of choice[i], the column where Echelonize placed the
// block's b-th pivot (the same mapping TableEntry.SMRow's bit b records).
// Rows that never became any block's pivot (when the echelonized system
// is rank-deficient, total pivots < sys.N()) are left 0 — Solve does not
// enumerate a free choice for them, so callers relying on full coverage
// of GF(2)^n need a fully-pivoted system.
//
// Feeding the result through the n x n transform A that mrhs.Echelonize
// returns when called with trackA (via A.MulRow(x')) recovers the
// solution in the system's original variable basis, per spec.md §6's
// "combining with the inverse column permutation" reconstruction step —
// expressed here as the row-transform invariant 4 already records rather
// than a separate inverse-permutation pass, since Echelonize's row XORs
// during elimination make A the sole record of how the original and
// echelonized bases relate.
func ReconstructPivotVector(t *Tables, choice []bitvec.Block) *bitvec.BitVector {
	xp := bitvec.New(t.Sys.N())
	for i, ale := range t.ALEs {
		for b := 0; b < ale.Pi; b++ {
			xp.SetBit(ale.PivotStart+b, choice[i].Bit(ale.Li-1-b))
		}
	}
	return xp
}
