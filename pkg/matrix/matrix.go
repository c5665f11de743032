// Package matrix implements BitMatrix: an nrows x ncols packed matrix
// over GF(2) with ncols <= bitvec.Width, one Block per row.
package matrix

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/smilkos/mrhs-go/pkg/bitvec"
)

// ErrShape is the sentinel wrapped by shape-related constructor errors.
var ErrShape = errors.New("matrix: invalid shape")

// BitMatrix is an nrows x ncols matrix over GF(2); each row is one Block,
// and only the low ncols bits of each row are significant.
type BitMatrix struct {
	nrows, ncols int
	rows         []bitvec.Block
}

// Create allocates a zero-initialized nrows x ncols BitMatrix.
// ncols must fit in a single Block (spec.md's block-width assumption).
func Create(nrows, ncols int) (*BitMatrix, error) {
	if nrows < 0 || ncols < 0 {
		return nil, fmt.Errorf("matrix.Create(%d,%d): %w", nrows, ncols, ErrShape)
	}
	if ncols > bitvec.Width {
		return nil, fmt.Errorf("matrix.Create(%d,%d): ncols exceeds block width %d: %w", nrows, ncols, bitvec.Width, ErrShape)
	}
	return &BitMatrix{nrows: nrows, ncols: ncols, rows: make([]bitvec.Block, nrows)}, nil
}

// Rows returns nrows.
func (m *BitMatrix) Rows() int { return m.nrows }

// Cols returns ncols.
func (m *BitMatrix) Cols() int { return m.ncols }

// Row returns the packed Block for row i.
func (m *BitMatrix) Row(i int) bitvec.Block { return m.rows[i] }

// SetRow overwrites row i, masking to the declared column width.
func (m *BitMatrix) SetRow(i int, v bitvec.Block) {
	m.rows[i] = v & bitvec.Mask(m.ncols)
}

// GetBit returns the bit at (row, col).
func (m *BitMatrix) GetBit(row, col int) bool {
	return m.rows[row].Bit(col)
}

// SetBit sets the bit at (row, col).
func (m *BitMatrix) SetBit(row, col int, val bool) {
	m.rows[row] = m.rows[row].SetBit(col, val)
}

// GetColumn returns the BitVector formed by reading column c down every row.
func (m *BitMatrix) GetColumn(c int) *bitvec.BitVector {
	out := bitvec.New(m.nrows)
	for r := 0; r < m.nrows; r++ {
		out.SetBit(r, m.GetBit(r, c))
	}
	return out
}

// AddColumn XORs vector v (length nrows) into column c.
func (m *BitMatrix) AddColumn(c int, v *bitvec.BitVector) {
	for r := 0; r < m.nrows; r++ {
		if v.Bit(r) {
			m.rows[r] = m.rows[r].SetBit(c, !m.rows[r].Bit(c))
		}
	}
}

// SwapColumns exchanges columns a and b across every row.
func (m *BitMatrix) SwapColumns(a, b int) {
	if a == b {
		return
	}
	for r := 0; r < m.nrows; r++ {
		row := m.rows[r]
		ba, bb := row.Bit(a), row.Bit(b)
		if ba != bb {
			row = row.SetBit(a, bb).SetBit(b, ba)
		}
		m.rows[r] = row
	}
}

// GetActiveRows returns a BitVector flagging rows with any 1 bit set.
func (m *BitMatrix) GetActiveRows() *bitvec.BitVector {
	out := bitvec.New(m.nrows)
	mask := bitvec.Mask(m.ncols)
	for r := 0; r < m.nrows; r++ {
		if m.rows[r]&mask != 0 {
			out.SetBit(r, true)
		}
	}
	return out
}

// RemoveRows compacts m in place, keeping only rows whose bit is set in
// mask, and renumbering nrows accordingly. mask must have length nrows.
func (m *BitMatrix) RemoveRows(mask *bitvec.BitVector) {
	kept := make([]bitvec.Block, 0, m.nrows)
	for r := 0; r < m.nrows; r++ {
		if mask.Bit(r) {
			kept = append(kept, m.rows[r])
		}
	}
	m.rows = kept
	m.nrows = len(kept)
}

// EnsureBlockIn overwrites a uniformly chosen row with v if v is not
// already present as a row of m. rng must be non-nil.
func EnsureBlockIn(rng *rand.Rand, m *BitMatrix, v bitvec.Block) {
	v &= bitvec.Mask(m.ncols)
	for r := 0; r < m.nrows; r++ {
		if m.rows[r] == v {
			return
		}
	}
	if m.nrows == 0 {
		return
	}
	m.rows[rng.IntN(m.nrows)] = v
}

// Clone returns an independent deep copy.
func (m *BitMatrix) Clone() *BitMatrix {
	out := &BitMatrix{nrows: m.nrows, ncols: m.ncols, rows: make([]bitvec.Block, len(m.rows))}
	copy(out.rows, m.rows)
	return out
}

// Equal reports whether m and o have the same shape and rows.
func (m *BitMatrix) Equal(o *BitMatrix) bool {
	if m.nrows != o.nrows || m.ncols != o.ncols {
		return false
	}
	for i := range m.rows {
		if m.rows[i] != o.rows[i] {
			return false
		}
	}
	return true
}

// HasRow reports whether v (masked to ncols) appears as a row of m.
func (m *BitMatrix) HasRow(v bitvec.Block) bool {
	v &= bitvec.Mask(m.ncols)
	for _, r := range m.rows {
		if r == v {
			return true
		}
	}
	return false
}

// MulRow computes x . M for a row vector x of length nrows, returning the
// resulting Block of width ncols: the XOR of every row i where x's bit i is set.
func (m *BitMatrix) MulRow(x *bitvec.BitVector) bitvec.Block {
	var acc bitvec.Block
	for r := 0; r < m.nrows; r++ {
		if x.Bit(r) {
			acc ^= m.rows[r]
		}
	}
	return acc
}
