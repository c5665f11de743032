// Package mrhs implements the MRHS system data model (a sequence of
// (Mi, Si) block pairs over GF(2)) together with the preprocessing
// algebra (echelonization, linear-equation extraction, empty-block
// removal) that spec.md §4.E/§4.F describe.
package mrhs

import (
	"errors"
	"fmt"

	"github.com/smilkos/mrhs-go/pkg/matrix"
)

// ErrShape is the sentinel wrapped by shape-related constructor errors.
var ErrShape = errors.New("mrhs: invalid shape")

// System is a sequence of (Mi, Si) block pairs: Mi has shape n x li
// (n shared across all blocks), Si has shape ki x li (its rows enumerate
// the allowed right-hand-side vectors for block i).
type System struct {
	n int
	M []*matrix.BitMatrix
	S []*matrix.BitMatrix

	// ColPerm[i][c] is the original column index now sitting at column c
	// of block i, maintained by Echelonize so a solution can be mapped
	// back through the column permutation (spec.md §6).
	ColPerm [][]int
	// Pivots[i] is the pivot count found for block i by the most recent
	// Echelonize call (zero before echelonization).
	Pivots []int
}

// CreateFixed builds an empty system with m blocks, all of uniform
// shape: Mi is n x l, Si is k x l.
func CreateFixed(n, m, l, k int) (*System, error) {
	ls := make([]int, m)
	ks := make([]int, m)
	for i := range ls {
		ls[i], ks[i] = l, k
	}
	return CreateVariable(n, m, ls, ks)
}

// CreateVariable builds an empty system with m blocks of individually
// specified shapes. m == 0 yields an empty system with nil M/S slices.
func CreateVariable(n, m int, l, k []int) (*System, error) {
	if n < 0 || m < 0 {
		return nil, fmt.Errorf("mrhs.CreateVariable: negative n or m: %w", ErrShape)
	}
	if m == 0 {
		return &System{n: n}, nil
	}
	if len(l) != m || len(k) != m {
		return nil, fmt.Errorf("mrhs.CreateVariable: l/k length must equal m=%d: %w", m, ErrShape)
	}
	sys := &System{
		n:       n,
		M:       make([]*matrix.BitMatrix, m),
		S:       make([]*matrix.BitMatrix, m),
		ColPerm: make([][]int, m),
		Pivots:  make([]int, m),
	}
	for i := 0; i < m; i++ {
		mi, err := matrix.Create(n, l[i])
		if err != nil {
			return nil, fmt.Errorf("mrhs.CreateVariable: block %d M: %w", i, err)
		}
		si, err := matrix.Create(k[i], l[i])
		if err != nil {
			return nil, fmt.Errorf("mrhs.CreateVariable: block %d S: %w", i, err)
		}
		sys.M[i] = mi
		sys.S[i] = si
		perm := make([]int, l[i])
		for c := range perm {
			perm[c] = c
		}
		sys.ColPerm[i] = perm
	}
	return sys, nil
}

// N returns the shared row dimension (number of variables).
func (s *System) N() int { return s.n }

// SetN overrides the row dimension bookkeeping. RemoveEmpty updates the
// same field directly once rows have been compacted out from under every
// block.
func (s *System) SetN(n int) { s.n = n }

// NBlocks returns the current number of blocks.
func (s *System) NBlocks() int { return len(s.M) }

// L returns block i's column count (li).
func (s *System) L(i int) int { return s.M[i].Cols() }

// K returns block i's RHS row count (ki).
func (s *System) K(i int) int { return s.S[i].Rows() }

// Clone returns an independent deep copy of the system.
func (s *System) Clone() *System {
	out := &System{
		n:       s.n,
		M:       make([]*matrix.BitMatrix, len(s.M)),
		S:       make([]*matrix.BitMatrix, len(s.S)),
		ColPerm: make([][]int, len(s.ColPerm)),
		Pivots:  append([]int(nil), s.Pivots...),
	}
	for i := range s.M {
		out.M[i] = s.M[i].Clone()
		out.S[i] = s.S[i].Clone()
		out.ColPerm[i] = append([]int(nil), s.ColPerm[i]...)
	}
	return out
}

// RemoveBlock deletes block i, shifting later blocks down by one index.
func (s *System) RemoveBlock(i int) {
	s.M = append(s.M[:i], s.M[i+1:]...)
	s.S = append(s.S[:i], s.S[i+1:]...)
	s.ColPerm = append(s.ColPerm[:i], s.ColPerm[i+1:]...)
	s.Pivots = append(s.Pivots[:i], s.Pivots[i+1:]...)
}
