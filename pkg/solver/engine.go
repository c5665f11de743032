package solver

import (
	"context"

	"github.com/smilkos/mrhs-go/pkg/bitvec"
)

// SolutionFunc receives a monotonically increasing candidate counter, the
// Tables the walk is operating over, and the chosen Si row value per
// block (width Li, free-part low / pivot-part high). It must not mutate
// t.ALEs. Returning false stops the walk early.
type SolutionFunc func(counter uint64, t *Tables, choice []bitvec.Block) bool

// SolveOption configures a Solve call.
type SolveOption func(*solveConfig)

type solveConfig struct {
	startTop int
	endTop   int
}

// WithStartIndex resumes the walk with block 0's cursor advanced past its
// first n entries, skipping branches already fully explored by an earlier
// Solve call — the coarse, top-level-branch granularity a checkpoint
// records (pkg/collect.Checkpoint), analogous to the teacher's
// whole-target-sequence resume granularity rather than per-instruction.
func WithStartIndex(n int) SolveOption {
	return func(c *solveConfig) { c.startTop = n }
}

// WithEndIndex caps block 0's bucket at entry n (exclusive), so the walk
// stops exploring that top-level branch once exhausted rather than
// continuing into entries reserved for another partition. Used by
// SolveParallel to give each worker a disjoint slice of block 0's bucket.
func WithEndIndex(n int) SolveOption {
	return func(c *solveConfig) { c.endTop = n }
}

// walkState is the per-depth mutable state of one Solve call: U is the
// running free-part contribution already pinned by earlier blocks'
// choices, recomputed on entry to this depth; Cursor/End bound the active
// LUT bucket.
type walkState struct {
	U      bitvec.Block
	Cursor int
	End    int
}

// Solve performs the non-recursive backtracking walk of spec.md §4.H over
// blocks 0..m-1. It reports every consistent candidate via report and
// returns the total candidate count and the number of XOR operations
// performed accumulating running state (for comparison with pkg/cost's
// estimates). ctx is checked between depth transitions (spec.md §5's
// optional cancellation hook, realized via the idiomatic Go primitive
// rather than a raw bool pointer).
//
// Each depth's running state is recomputed from the SMRow of every
// shallower depth's current choice rather than restored from an O(1)
// saved slot: simpler to reason about correctly than the paper's
// incremental scheme, at the cost of O(depth) work per transition instead
// of O(1) — the search's branching factor, not this bookkeeping,
// dominates total work in practice.
func Solve(ctx context.Context, t *Tables, report SolutionFunc, opts ...SolveOption) (counter, xors uint64, err error) {
	m := len(t.ALEs)
	if m == 0 {
		return 0, 0, nil
	}
	var cfg solveConfig
	for _, o := range opts {
		o(&cfg)
	}

	states := make([]walkState, m)
	smRows := make([]bitvec.Block, m)
	choice := make([]bitvec.Block, m)

	depth := 0
	enterBucket(t.ALEs[0], &states[0], 0)
	if cfg.startTop > states[0].Cursor {
		states[0].Cursor = cfg.startTop
	}
	if cfg.endTop > 0 && cfg.endTop < states[0].End {
		states[0].End = cfg.endTop
	}

	for depth >= 0 {
		if err := ctx.Err(); err != nil {
			return counter, xors, err
		}

		st := &states[depth]
		if st.Cursor >= st.End {
			depth--
			if depth >= 0 {
				states[depth].Cursor++
			}
			continue
		}

		entry := t.ALEs[depth].Entries[st.Cursor]
		choice[depth] = entry.Value
		smRows[depth] = entry.SMRow

		if depth == m-1 {
			counter++
			if !report(counter, t, choice) {
				return counter, xors, nil
			}
			st.Cursor++
			continue
		}

		next := depth + 1
		u := accumulate(t, smRows, depth, next)
		xors++
		enterBucket(t.ALEs[next], &states[next], u)
		depth = next
	}

	return counter, xors, nil
}

// accumulate XORs together, for every committed depth 0..upTo, the
// forward projection of that depth's currently chosen entry into block
// target's free-part columns.
func accumulate(t *Tables, smRows []bitvec.Block, upTo, target int) bitvec.Block {
	freeTarget := t.ALEs[target].FreeMask
	var acc bitvec.Block
	for j := 0; j <= upTo; j++ {
		ale := t.ALEs[j]
		acc ^= project(t.Sys, ale.PivotStart, ale.Pi, smRows[j], target, freeTarget)
	}
	return acc
}

// enterBucket points st at the LUT bucket selected by u's free-part bits
// for ale, positioning Cursor/End for the upcoming scan.
func enterBucket(ale *ActiveListEntry, st *walkState, u bitvec.Block) {
	st.U = u
	idx := int(u & ale.FreeMask)
	st.Cursor = ale.LUT[idx]
	st.End = ale.LUT[idx+1]
}
