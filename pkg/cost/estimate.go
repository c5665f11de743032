// Package cost implements the Raddum-Zajac closed-form cost estimators of
// spec.md §4.I: analytic predictions of total candidate count and XOR work
// for an echelonized mrhs.System, grounded on the same shape data
// solver.Prepare consumes (block sizes lᵢ, pivot counts pᵢ, |Sᵢ|).
package cost

import (
	"context"
	"math"

	"github.com/smilkos/mrhs-go/pkg/bitvec"
	"github.com/smilkos/mrhs-go/pkg/mrhs"
	"github.com/smilkos/mrhs-go/pkg/solver"
)

// Estimate bundles the three analytic predictions for one echelonized
// system, all expressed as float64 since the underlying products can
// exceed machine-word range (spec.md §4.I).
type Estimate struct {
	Expected float64 // predicted total candidate count (Ntotal)
	Xor1     float64 // upper bound on XOR operations
	Xor2     float64 // effective XOR count accounting for first-pruning
}

// productUpTo returns Πᵢ = Π_{j=1..i-1} |Sⱼ| · 2^(pⱼ-lⱼ), using the 1-indexed i of
// spec.md §4.I (Pi(1) is the empty product, 1).
func productUpTo(sys *mrhs.System, pivots []int, i int) float64 {
	p := 1.0
	for j := 0; j < i-1; j++ {
		sj := float64(sys.K(j))
		pj := float64(pivots[j])
		lj := float64(sys.L(j))
		p *= sj * math.Pow(2, pj-lj)
	}
	return p
}

// Compute computes get_expected, get_xor1 and get_xor2 for sys, given the
// pivot counts pivots produced by mrhs.Echelonize (pivots[i] is pᵢ for
// block i, 0-indexed). sys is not modified.
func Compute(sys *mrhs.System, pivots []int) Estimate {
	m := sys.NBlocks()
	var est Estimate
	for i := 2; i <= m; i++ {
		pii := productUpTo(sys, pivots, i)
		est.Expected += pii
		rem := float64(m - i + 1)
		est.Xor1 += rem * pii
		pPrev := float64(pivots[i-2]) // p_{i-1}, 0-indexed into pivots
		prune := 1 - math.Pow(2, -pPrev)
		est.Xor2 += prune * rem * pii
	}
	return est
}

// Measured is the outcome of actually running the search, for comparing
// against the analytic Estimate (the benchmarking scenario spec.md §8
// invariant 9 calls for).
type Measured struct {
	Count uint64
	Xors  uint64
}

// Measure runs solver.Solve to completion over tbl (counting every
// candidate, reporting none early) and returns the measured (count, xors)
// pair alongside the analytic estimate computed from the same pivots.
func Measure(ctx context.Context, sys *mrhs.System, pivots []int, tbl *solver.Tables) (Measured, Estimate, error) {
	count, xors, err := solver.Solve(ctx, tbl, func(_ uint64, _ *solver.Tables, _ []bitvec.Block) bool {
		return true
	})
	if err != nil {
		return Measured{}, Estimate{}, err
	}
	return Measured{Count: count, Xors: xors}, Compute(sys, pivots), nil
}
