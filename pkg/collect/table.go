// Package collect implements the solution consumers spec.md §6's solver
// callback needs: an in-memory accumulator (Table), JSON/gob persistence,
// and a resumable-search checkpoint, all grounded on the teacher's
// pkg/result.Table and pkg/result.Checkpoint.
package collect

import (
	"sort"
	"sync"
)

// Solution is one reconstructed variable assignment: x[j] is the value of
// the j-th original variable (after mapping the pivot vector back through
// the transform A that mrhs.Echelonize records, see
// solver.ReconstructPivotVector).
type Solution struct {
	X []bool
}

// Table stores the solutions reported by a solver.Solve run.
type Table struct {
	mu        sync.Mutex
	solutions []Solution
}

// NewTable creates an empty table.
func NewTable() *Table {
	return &Table{}
}

// Add appends a solution to the table.
func (t *Table) Add(s Solution) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.solutions = append(t.solutions, s)
}

// Solutions returns a defensive copy of every solution added so far,
// ordered lexicographically by X (variable 0 most significant).
func (t *Table) Solutions() []Solution {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]Solution, len(t.solutions))
	copy(out, t.solutions)
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i].X, out[j].X
		for k := 0; k < len(a) && k < len(b); k++ {
			if a[k] != b[k] {
				return !a[k] && b[k] // false < true
			}
		}
		return len(a) < len(b)
	})
	return out
}

// Len returns the number of solutions added so far.
func (t *Table) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.solutions)
}
