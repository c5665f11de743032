package mrhs

import "testing"

func TestCreateVariableShapes(t *testing.T) {
	sys, err := CreateVariable(5, 2, []int{3, 2}, []int{4, 2})
	if err != nil {
		t.Fatalf("CreateVariable: %v", err)
	}
	for i := 0; i < sys.NBlocks(); i++ {
		if sys.M[i].Rows() != 5 {
			t.Fatalf("block %d: M rows = %d, want 5", i, sys.M[i].Rows())
		}
	}
	if sys.L(0) != 3 || sys.K(0) != 4 {
		t.Fatalf("block 0 shape = l=%d k=%d, want l=3 k=4", sys.L(0), sys.K(0))
	}
	if sys.L(1) != 2 || sys.K(1) != 2 {
		t.Fatalf("block 1 shape = l=%d k=%d, want l=2 k=2", sys.L(1), sys.K(1))
	}
}

func TestCreateFixedUniform(t *testing.T) {
	sys, err := CreateFixed(4, 3, 2, 2)
	if err != nil {
		t.Fatalf("CreateFixed: %v", err)
	}
	if sys.NBlocks() != 3 {
		t.Fatalf("NBlocks = %d, want 3", sys.NBlocks())
	}
	for i := 0; i < 3; i++ {
		if sys.M[i].Cols() != 2 || sys.S[i].Rows() != 2 || sys.S[i].Cols() != 2 {
			t.Fatalf("block %d has unexpected shape", i)
		}
	}
}

func TestCreateVariableRejectsLengthMismatch(t *testing.T) {
	if _, err := CreateVariable(4, 2, []int{2}, []int{2, 2}); err == nil {
		t.Fatalf("expected error for mismatched l length")
	}
}

func TestCreateVariableZeroBlocks(t *testing.T) {
	sys, err := CreateVariable(4, 0, nil, nil)
	if err != nil {
		t.Fatalf("CreateVariable: %v", err)
	}
	if sys.NBlocks() != 0 || sys.N() != 4 {
		t.Fatalf("unexpected empty system: nblocks=%d n=%d", sys.NBlocks(), sys.N())
	}
}

func TestCloneIndependent(t *testing.T) {
	sys, _ := CreateFixed(3, 1, 2, 2)
	sys.M[0].SetBit(0, 0, true)
	clone := sys.Clone()
	clone.M[0].SetBit(0, 0, false)
	if !sys.M[0].GetBit(0, 0) {
		t.Fatalf("mutating clone affected original")
	}
}

func TestRemoveBlockShiftsDown(t *testing.T) {
	sys, _ := CreateFixed(3, 3, 2, 2)
	sys.M[2].SetBit(0, 0, true)
	sys.RemoveBlock(1)
	if sys.NBlocks() != 2 {
		t.Fatalf("NBlocks = %d, want 2", sys.NBlocks())
	}
	if !sys.M[1].GetBit(0, 0) {
		t.Fatalf("block originally at index 2 did not shift to index 1")
	}
}
