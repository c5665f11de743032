// Package bbm implements the block bit matrix: a row-oriented layout of
// several BitMatrix values that share the same row count, used to hold
// the joint coefficient or right-hand-side view across all blocks of an
// MRHS system while echelonizing.
package bbm

import (
	"errors"
	"fmt"

	"github.com/smilkos/mrhs-go/pkg/matrix"
)

// ErrShape is the sentinel wrapped by shape-related errors.
var ErrShape = errors.New("bbm: invalid shape")

// BBM is nblocks side-by-side BitMatrix values, all with the same nrows.
type BBM struct {
	nrows  int
	blocks []*matrix.BitMatrix
}

// Join builds a BBM from a slice of per-block matrices that must all
// share the same row count.
func Join(blocks []*matrix.BitMatrix) (*BBM, error) {
	if len(blocks) == 0 {
		return &BBM{}, nil
	}
	nrows := blocks[0].Rows()
	for i, b := range blocks {
		if b.Rows() != nrows {
			return nil, fmt.Errorf("bbm.Join: block %d has %d rows, want %d: %w", i, b.Rows(), nrows, ErrShape)
		}
	}
	return &BBM{nrows: nrows, blocks: blocks}, nil
}

// Split returns the per-block matrices backing the BBM. The returned
// slice aliases the BBM's own storage.
func (j *BBM) Split() []*matrix.BitMatrix { return j.blocks }

// NumBlocks returns nblocks.
func (j *BBM) NumBlocks() int { return len(j.blocks) }

// Rows returns the shared row count.
func (j *BBM) Rows() int { return j.nrows }

// Block returns the i-th per-block matrix.
func (j *BBM) Block(i int) *matrix.BitMatrix { return j.blocks[i] }

// TotalCols returns L = sum of all blocks' column counts.
func (j *BBM) TotalCols() int {
	total := 0
	for _, b := range j.blocks {
		total += b.Cols()
	}
	return total
}

// Clone returns an independent deep copy.
func (j *BBM) Clone() *BBM {
	out := &BBM{nrows: j.nrows, blocks: make([]*matrix.BitMatrix, len(j.blocks))}
	for i, b := range j.blocks {
		out.blocks[i] = b.Clone()
	}
	return out
}
