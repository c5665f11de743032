// Package solver implements the Raddum-Zajac backtracking search over an
// echelonized mrhs.System: per-block lookup tables (ActiveListEntry) built
// by Prepare, and a non-recursive walk (Solve) that enumerates every
// x consistent with every block's allowed right-hand sides.
package solver

import (
	"sort"

	"github.com/smilkos/mrhs-go/pkg/bitvec"
	"github.com/smilkos/mrhs-go/pkg/mrhs"
)

// TableEntry is one bucketed candidate RHS row for a block.
type TableEntry struct {
	// Value is the full Si row (width li): free-part in the low bits,
	// pivot-part in the high bits, per the MSB-side echelonization layout.
	Value bitvec.Block
	// SMRow is this entry's own pivot-part, width pi, low-aligned: bit b
	// set means choosing this entry pins the block's b-th pivot variable
	// (global row PivotStart+b) to 1. A copied value, not a pointer into
	// the BBM (spec.md §9 "non-owning pointer" resolved as option (a)).
	SMRow bitvec.Block
	// First is the lowest block index > the owning block's index at
	// which this entry's forward projection first diverges from some
	// other entry sharing its bucket — the depth beyond which trying
	// this entry can no longer be distinguished from an equivalent one
	// already explored. nblocks if it never diverges in range.
	First int
}

// ActiveListEntry is the read-only lookup table Prepare builds for one
// block. It is immutable once built and safe to share read-only across
// concurrent Solve invocations (spec.md §5); per-walk mutable state lives
// separately in walkState, one array per Solve call.
type ActiveListEntry struct {
	Li, Pi     int
	PivotStart int
	FreeMask   bitvec.Block
	// Entries is the arena: every block's candidates in one flat slice,
	// sorted by bucket key, replacing the linked-list TableEntry chain
	// spec.md §4.G describes (§9 redesign flag: arena, not a linked list).
	Entries []TableEntry
	// LUT is a CSR-style prefix index: bucket b occupies
	// Entries[LUT[b]:LUT[b+1]]. Length is 2^(Li-Pi) + 1.
	LUT []int
}

func (a *ActiveListEntry) bucket(idx int) []TableEntry {
	return a.Entries[a.LUT[idx]:a.LUT[idx+1]]
}

// Tables bundles the read-only ALE array with the echelonized system it
// was built from; Solve needs the system's M to project a chosen entry's
// pivot bits forward into later blocks' free-part columns.
type Tables struct {
	Sys  *mrhs.System
	ALEs []*ActiveListEntry
}

type prepareConfig struct {
	firstPruning bool
}

// PrepareOption configures Prepare.
type PrepareOption func(*prepareConfig)

// WithFirstPruning toggles computation of TableEntry.First (default on).
// Disabling it keeps every First at nblocks. Solve does not read First, so
// this option changes only the recorded field, not the walk or its counts
// (spec.md §9 open question).
func WithFirstPruning(enabled bool) PrepareOption {
	return func(c *prepareConfig) { c.firstPruning = enabled }
}

// Prepare builds one ActiveListEntry per block of an echelonized system.
// sys.Pivots must already reflect a completed Echelonize call.
func Prepare(sys *mrhs.System, opts ...PrepareOption) (*Tables, error) {
	cfg := prepareConfig{firstPruning: true}
	for _, o := range opts {
		o(&cfg)
	}

	m := sys.NBlocks()
	ales := make([]*ActiveListEntry, m)
	pivotStart := 0
	for i := 0; i < m; i++ {
		li, pi := sys.L(i), sys.Pivots[i]
		free := li - pi
		freeMask := bitvec.Mask(free)

		seen := make(map[bitvec.Block]bool, sys.K(i))
		entries := make([]TableEntry, 0, sys.K(i))
		for r := 0; r < sys.K(i); r++ {
			v := sys.S[i].Row(r)
			if seen[v] { // DuplicateRHS: silently deduplicated (spec.md §7)
				continue
			}
			seen[v] = true
			// Echelonize moves the b-th pivot it finds to column li-1-b.
			var sm bitvec.Block
			for b := 0; b < pi; b++ {
				sm = sm.SetBit(b, v.Bit(li-1-b))
			}
			entries = append(entries, TableEntry{Value: v, SMRow: sm})
		}
		// The bucket key is the free part with the block's own pivot rows'
		// contribution removed, so it equals the running U of earlier blocks.
		key := func(e TableEntry) int {
			return int((e.Value ^ project(sys, pivotStart, pi, e.SMRow, i, freeMask)) & freeMask)
		}
		sort.Slice(entries, func(a, b int) bool { return key(entries[a]) < key(entries[b]) })

		buckets := 1 << uint(free)
		lut := make([]int, buckets+1)
		bi := 0
		for idx := 0; idx < buckets; idx++ {
			lut[idx] = bi
			for bi < len(entries) && key(entries[bi]) == idx {
				bi++
			}
		}
		lut[buckets] = bi

		ale := &ActiveListEntry{
			Li: li, Pi: pi, PivotStart: pivotStart,
			FreeMask: freeMask, Entries: entries, LUT: lut,
		}
		ales[i] = ale
		pivotStart += pi
	}

	if cfg.firstPruning {
		computeFirst(sys, ales)
	} else {
		for _, ale := range ales {
			for e := range ale.Entries {
				ale.Entries[e].First = m
			}
		}
	}

	return &Tables{Sys: sys, ALEs: ales}, nil
}

// computeFirst fills in TableEntry.First for every entry by projecting
// its pivot bits into each later block's free-part columns and comparing
// against every other entry in its own bucket, stopping at the first
// block where at least one bucket-mate's projection differs.
func computeFirst(sys *mrhs.System, ales []*ActiveListEntry) {
	m := len(ales)
	for i, ale := range ales {
		buckets := len(ale.LUT) - 1
		for b := 0; b < buckets; b++ {
			group := ale.bucket(b)
			for gi := range group {
				first := m
				for j := i + 1; j < m; j++ {
					freeJ := ales[j].FreeMask
					mine := project(sys, ale.PivotStart, ale.Pi, group[gi].SMRow, j, freeJ)
					diverged := false
					for gj := range group {
						if gj == gi {
							continue
						}
						other := project(sys, ale.PivotStart, ale.Pi, group[gj].SMRow, j, freeJ)
						if mine != other {
							diverged = true
							break
						}
					}
					if diverged {
						first = j
						break
					}
				}
				group[gi].First = first
			}
		}
	}
}

// project computes the contribution pinning a block's pivot variables
// (selected by smRow, low pi bits, global row range starting at
// pivotStart) makes to block j's free-part columns.
func project(sys *mrhs.System, pivotStart, pi int, smRow bitvec.Block, j int, freeMaskJ bitvec.Block) bitvec.Block {
	if smRow == 0 {
		return 0
	}
	mj := sys.M[j]
	var acc bitvec.Block
	for b := 0; b < pi; b++ {
		if smRow.Bit(b) {
			acc ^= mj.Row(pivotStart + b)
		}
	}
	return acc & freeMaskJ
}

// FreeALEs releases the tables. Go's GC reclaims the arena once
// unreferenced; this call documents the lifecycle boundary spec.md §5
// requires (prepare before solve, solve before destroying the system)
// rather than performing manual deallocation.
func FreeALEs(t *Tables) {
	t.ALEs = nil
	t.Sys = nil
}
