package mrhs

import "testing"

// TestRemoveEmptyDropsZeroBlocks covers spec invariant 7: after
// remove_empty, no surviving block has an all-zero Mi, and n' equals the
// popcount of the OR'd active-rows mask.
func TestRemoveEmptyDropsZeroBlocks(t *testing.T) {
	sys, _ := CreateFixed(4, 3, 2, 1)
	// block 0: active on rows 0,1. block 1: all zero (empty). block 2: active on row 2.
	sys.M[0].SetBit(0, 0, true)
	sys.M[0].SetBit(1, 0, true)
	sys.M[2].SetBit(2, 1, true)

	removed := RemoveEmpty(sys)
	if removed != 1 {
		t.Fatalf("removed = %d, want 1", removed)
	}
	if sys.NBlocks() != 2 {
		t.Fatalf("NBlocks = %d, want 2", sys.NBlocks())
	}
	for i := 0; i < sys.NBlocks(); i++ {
		if sys.M[i].GetActiveRows().Popcount() == 0 {
			t.Fatalf("surviving block %d is still all-zero", i)
		}
	}
	// active rows were {0,1} union {2} = 3 rows.
	if sys.N() != 3 {
		t.Fatalf("N() = %d, want 3", sys.N())
	}
	if sys.M[0].Rows() != 3 || sys.M[1].Rows() != 3 {
		t.Fatalf("surviving blocks were not compacted to the mask's popcount")
	}
}

func TestRemoveEmptyNoOpWhenNoneEmpty(t *testing.T) {
	sys, _ := CreateFixed(2, 2, 2, 1)
	sys.M[0].SetBit(0, 0, true)
	sys.M[1].SetBit(1, 0, true)
	if removed := RemoveEmpty(sys); removed != 0 {
		t.Fatalf("removed = %d, want 0", removed)
	}
	if sys.NBlocks() != 2 {
		t.Fatalf("NBlocks changed unexpectedly")
	}
}
