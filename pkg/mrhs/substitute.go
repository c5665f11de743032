package mrhs

import "github.com/smilkos/mrhs-go/pkg/bitvec"

// LinearSubstitution implements spec.md §4.F.2: variable row `row` is
// known to equal c.x + rhs (c must have bit `row` itself cleared). For
// every block and every column that depends on `row`, the dependency is
// rewritten in terms of c, and rhs is folded into every candidate RHS
// row of that block's S at the same column. Returns the number of
// columns substituted.
//
// Clearing the dependent bit is never skipped, even when c is the zero
// vector and rhs is false (x_row = 0): the variable is being removed
// from the system, and other blocks must stop referencing it regardless
// of how trivial its defining equation turned out to be. Only the two
// genuinely-no-op sub-steps are skipped: XORing a zero c into a column,
// and flipping rhs into S when rhs is false.
func LinearSubstitution(sys *System, row int, c *bitvec.BitVector, rhs bool) int {
	addC := c.Popcount() != 0
	count := 0
	for i, mi := range sys.M {
		si := sys.S[i]
		for col := 0; col < mi.Cols(); col++ {
			if !mi.GetBit(row, col) {
				continue
			}
			if addC {
				mi.AddColumn(col, c)
			}
			mi.SetBit(row, col, false)
			if rhs {
				for r := 0; r < si.Rows(); r++ {
					si.SetBit(r, col, !si.GetBit(r, col))
				}
			}
			count++
		}
	}
	return count
}

// RemoveLinear implements spec.md §4.F.3: every block with exactly one
// allowed RHS (ki == 1) encodes plain linear equations Mi x = Si[0].
// Each column is extracted as a single-variable substitution (pivoting
// on the lowest-indexed row with a 1 in that column) and folded back
// into the whole system via LinearSubstitution. The block itself is not
// deleted. Returns the total number of substitutions performed.
func RemoveLinear(sys *System) int {
	total := 0
	for i := range sys.M {
		if sys.K(i) != 1 {
			continue
		}
		mi := sys.M[i]
		si := sys.S[i]
		for col := 0; col < mi.Cols(); col++ {
			colVec := mi.GetColumn(col)
			if colVec.Popcount() == 0 {
				continue // 0 = target: no variable to eliminate
			}
			row := bitvec.FindNonzero(colVec, 0)
			c := colVec.Clone()
			c.SetBit(row, false)
			rhs := si.GetBit(0, col)
			total += LinearSubstitution(sys, row, c, rhs)
		}
	}
	return total
}
