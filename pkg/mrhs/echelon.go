package mrhs

import (
	"github.com/smilkos/mrhs-go/pkg/bbm"
	"github.com/smilkos/mrhs-go/pkg/matrix"
)

// Echelonize performs the joint Gaussian elimination spec.md §4.F.1
// describes: blocks are processed in order; within a block, pivots are
// found by scanning columns left to right among rows at or below the
// current (system-wide) pivot row, swapped to the MSB side of the
// block, and cleared from every other row by XORing the pivot row's
// full joint contents (across every block's M, and the optional
// transform matrix A) into them. The same column swap is applied to the
// block's S so Mi x in Si continues to hold under the new variable
// basis. Returns the total pivot count P (== sum of per-block pivots,
// also recorded in sys.Pivots).
//
// If trackA is true, Echelonize also returns the n x n transform matrix
// A such that applying A's row operations to the original M reproduces
// the echelonized M with its columns mapped back through sys.ColPerm
// (spec.md §8, invariant 4).
func Echelonize(sys *System, trackA bool) (total int, a *matrix.BitMatrix) {
	n := sys.n
	var err error
	if trackA {
		a, err = matrix.Create(n, n)
		if err != nil {
			panic(err) // n is always a valid column width check failure only if n > Width, caller's responsibility
		}
		for i := 0; i < n; i++ {
			a.SetBit(i, i, true)
		}
	}

	// joint is the row-aligned multi-block view the elimination below
	// walks: a pivot row found in one block's column is XORed into the
	// same row across every block's M (and into A), which is exactly
	// what bbm.Join exposes — all per-block matrices sharing sys's n rows.
	joint, err := bbm.Join(sys.M)
	if err != nil {
		panic(err) // sys.M blocks always share n rows by construction
	}

	pivotRow := 0
	for bi := range sys.M {
		mi := sys.M[bi]
		si := sys.S[bi]
		li := mi.Cols()
		hi := li - 1
		col := 0
		pivotsInBlock := 0

		for col <= hi && pivotRow < n {
			pr := findPivotRow(mi, col, pivotRow, n)
			if pr < 0 {
				col++
				continue
			}
			if pr != pivotRow {
				swapRowsEverywhere(joint, a, pr, pivotRow)
			}
			eliminateColumn(joint, a, bi, col, pivotRow, n)
			if col != hi {
				mi.SwapColumns(col, hi)
				si.SwapColumns(col, hi)
				sys.ColPerm[bi][col], sys.ColPerm[bi][hi] = sys.ColPerm[bi][hi], sys.ColPerm[bi][col]
			}
			hi--
			pivotRow++
			pivotsInBlock++
		}
		sys.Pivots[bi] = pivotsInBlock
	}
	total = pivotRow
	return total, a
}

// findPivotRow returns the smallest row index >= from (and < n) with a 1
// in column col of mi, or -1 if none.
func findPivotRow(mi *matrix.BitMatrix, col, from, n int) int {
	for r := from; r < n; r++ {
		if mi.GetBit(r, col) {
			return r
		}
	}
	return -1
}

// swapRowsEverywhere swaps rows a and b across every block's M in the
// joint view (not S — S's rows are RHS candidates, unrelated to the
// shared variable index) and, if present, the transform matrix.
func swapRowsEverywhere(joint *bbm.BBM, trackA *matrix.BitMatrix, a, b int) {
	for i := 0; i < joint.NumBlocks(); i++ {
		mi := joint.Block(i)
		ra, rb := mi.Row(a), mi.Row(b)
		mi.SetRow(a, rb)
		mi.SetRow(b, ra)
	}
	if trackA != nil {
		ra, rb := trackA.Row(a), trackA.Row(b)
		trackA.SetRow(a, rb)
		trackA.SetRow(b, ra)
	}
}

// eliminateColumn clears column col of block bi (the column that just
// became pivotRow's pivot) from every other row by XORing pivotRow's
// full joint row — across every block in joint — into it.
func eliminateColumn(joint *bbm.BBM, trackA *matrix.BitMatrix, bi, col, pivotRow, n int) {
	mi := joint.Block(bi)
	for r := 0; r < n; r++ {
		if r == pivotRow || !mi.GetBit(r, col) {
			continue
		}
		for i := 0; i < joint.NumBlocks(); i++ {
			mj := joint.Block(i)
			mj.SetRow(r, mj.Row(r)^mj.Row(pivotRow))
		}
		if trackA != nil {
			trackA.SetRow(r, trackA.Row(r)^trackA.Row(pivotRow))
		}
	}
}
