package solver

import (
	"testing"

	"github.com/smilkos/mrhs-go/pkg/mrhs"
)

func TestPrepareBucketsFullyPivotedBlock(t *testing.T) {
	sys, _ := mrhs.CreateFixed(3, 1, 3, 1)
	for i := 0; i < 3; i++ {
		sys.M[0].SetBit(i, i, true)
	}
	total, _ := mrhs.Echelonize(sys, false)
	if total != 3 {
		t.Fatalf("pivots = %d, want 3", total)
	}

	tbl, err := Prepare(sys)
	if err != nil {
		t.Fatalf("Prepare: %v", err)
	}
	ale := tbl.ALEs[0]
	if ale.Pi != 3 || ale.Li != 3 {
		t.Fatalf("ale shape pi=%d li=%d, want 3/3", ale.Pi, ale.Li)
	}
	if len(ale.LUT) != 2 { // 2^(li-pi) + 1 == 2^0 + 1 == 2
		t.Fatalf("LUT length = %d, want 2 for a fully-pivoted block", len(ale.LUT))
	}
}

func TestPrepareDeduplicatesIdenticalRows(t *testing.T) {
	sys, _ := mrhs.CreateFixed(2, 1, 2, 3)
	sys.S[0].SetRow(0, 0b01)
	sys.S[0].SetRow(1, 0b01) // exact duplicate of row 0
	sys.S[0].SetRow(2, 0b10)
	mrhs.Echelonize(sys, false)

	tbl, err := Prepare(sys)
	if err != nil {
		t.Fatalf("Prepare: %v", err)
	}
	if len(tbl.ALEs[0].Entries) != 2 {
		t.Fatalf("entries = %d, want 2 after deduplication", len(tbl.ALEs[0].Entries))
	}
}

func TestWithFirstPruningDisabledLeavesSentinel(t *testing.T) {
	sys, _ := mrhs.CreateFixed(2, 2, 2, 1)
	sys.M[0].SetBit(0, 0, true)
	sys.M[1].SetBit(1, 0, true)
	mrhs.Echelonize(sys, false)

	tbl, err := Prepare(sys, WithFirstPruning(false))
	if err != nil {
		t.Fatalf("Prepare: %v", err)
	}
	for _, ale := range tbl.ALEs {
		for _, e := range ale.Entries {
			if e.First != len(tbl.ALEs) {
				t.Fatalf("First = %d with pruning disabled, want nblocks=%d", e.First, len(tbl.ALEs))
			}
		}
	}
}
