package matrix

import (
	"fmt"
	"math/rand/v2"

	"github.com/smilkos/mrhs-go/pkg/bitvec"
)

// Random fills every bit of m independently and uniformly at random.
// rng is injected explicitly (never a process-global source) so tests
// can seed deterministically — see SPEC_FULL.md §4.E.
func Random(rng *rand.Rand, m *BitMatrix) {
	mask := bitvec.Mask(m.ncols)
	for r := 0; r < m.nrows; r++ {
		m.rows[r] = bitvec.Block(rng.Uint64()) & mask
	}
}

// RandomUnique fills m like Random, but redraws any row that collides
// with an earlier one so all nrows rows are pairwise distinct.
// Precondition: m.nrows <= 2^m.ncols.
func RandomUnique(rng *rand.Rand, m *BitMatrix) {
	mask := bitvec.Mask(m.ncols)
	seen := make(map[bitvec.Block]bool, m.nrows)
	for r := 0; r < m.nrows; r++ {
		for {
			v := bitvec.Block(rng.Uint64()) & mask
			if !seen[v] {
				seen[v] = true
				m.rows[r] = v
				break
			}
		}
	}
}

// RandomSparseCols fills every column of m with exactly one 1, placed in
// an independently-chosen row.
func RandomSparseCols(rng *rand.Rand, m *BitMatrix) {
	for r := 0; r < m.nrows; r++ {
		m.rows[r] = 0
	}
	for c := 0; c < m.ncols; c++ {
		r := rng.IntN(m.nrows)
		m.rows[r] = m.rows[r].SetBit(c, true)
	}
}

// RandomAndCols fills m with the fixed row patterns that parameterize an
// AND-of-two-inputs gate with output row r: rows encode the three input
// assignment patterns x, y and the truth value x AND y, for an l=3 block.
// Precondition: m.ncols == 3.
func RandomAndCols(m *BitMatrix, r int) error {
	if m.ncols != 3 {
		return shapeErrf("RandomAndCols requires ncols==3, got %d", m.ncols)
	}
	if r < 0 || r >= m.nrows {
		return shapeErrf("RandomAndCols: row %d out of range [0,%d)", r, m.nrows)
	}
	for row := 0; row < m.nrows; row++ {
		m.rows[row] = 0
	}
	// Column 0 = x, column 1 = y, column 2 = output wire (driven by row r).
	m.SetBit(r, 0, true)
	m.SetBit((r+1)%m.nrows, 1, true)
	m.SetBit(r, 2, true)
	return nil
}

// RandomSparseAndCols combines RandomSparseCols' one-1-per-column shape
// with an AND-gate output wire fixed at row r, for an l=3 block.
func RandomSparseAndCols(rng *rand.Rand, m *BitMatrix, r int) error {
	if m.ncols != 3 {
		return shapeErrf("RandomSparseAndCols requires ncols==3, got %d", m.ncols)
	}
	if r < 0 || r >= m.nrows {
		return shapeErrf("RandomSparseAndCols: row %d out of range [0,%d)", r, m.nrows)
	}
	RandomSparseCols(rng, m)
	for row := 0; row < m.nrows; row++ {
		m.SetBit(row, 2, false)
	}
	m.SetBit(r, 2, true)
	return nil
}

func shapeErrf(format string, args ...any) error {
	return &shapeError{msg: fmt.Sprintf(format, args...)}
}

type shapeError struct{ msg string }

func (e *shapeError) Error() string { return "matrix: " + e.msg }
func (e *shapeError) Unwrap() error { return ErrShape }
