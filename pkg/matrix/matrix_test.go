package matrix

import (
	"math/rand/v2"
	"testing"

	"github.com/smilkos/mrhs-go/pkg/bitvec"
)

func TestCreateShape(t *testing.T) {
	m, err := Create(4, 3)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if m.Rows() != 4 || m.Cols() != 3 {
		t.Fatalf("unexpected shape: %dx%d", m.Rows(), m.Cols())
	}
}

func TestCreateRejectsOversizedCols(t *testing.T) {
	if _, err := Create(1, bitvec.Width+1); err == nil {
		t.Fatalf("expected error for ncols > Width")
	}
}

func TestGetSetBit(t *testing.T) {
	m, _ := Create(3, 3)
	m.SetBit(1, 2, true)
	if !m.GetBit(1, 2) {
		t.Fatalf("bit should be set")
	}
	if m.GetBit(0, 2) || m.GetBit(1, 0) {
		t.Fatalf("unexpected bit set")
	}
}

func TestSwapColumns(t *testing.T) {
	m, _ := Create(2, 3)
	m.SetBit(0, 0, true)
	m.SwapColumns(0, 2)
	if m.GetBit(0, 0) || !m.GetBit(0, 2) {
		t.Fatalf("swap did not move bit")
	}
}

func TestAddColumnGetColumn(t *testing.T) {
	m, _ := Create(3, 2)
	v := bitvec.New(3)
	v.SetBit(0, true)
	v.SetBit(2, true)
	m.AddColumn(1, v)
	col := m.GetColumn(1)
	if !col.Equal(v) {
		t.Fatalf("column mismatch after AddColumn")
	}
}

func TestGetActiveRowsAndRemoveRows(t *testing.T) {
	m, _ := Create(4, 2)
	m.SetBit(1, 0, true)
	m.SetBit(3, 1, true)
	active := m.GetActiveRows()
	want := []bool{false, true, false, true}
	for i, w := range want {
		if active.Bit(i) != w {
			t.Fatalf("active row %d = %v, want %v", i, active.Bit(i), w)
		}
	}
	m.RemoveRows(active)
	if m.Rows() != 2 {
		t.Fatalf("expected 2 rows after RemoveRows, got %d", m.Rows())
	}
}

func TestRandomUniqueRowsDistinct(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	m, _ := Create(8, 4)
	RandomUnique(rng, m)
	seen := map[bitvec.Block]bool{}
	for r := 0; r < m.Rows(); r++ {
		if seen[m.Row(r)] {
			t.Fatalf("duplicate row %d", m.Row(r))
		}
		seen[m.Row(r)] = true
	}
}

func TestRandomSparseColsOneOnePerColumn(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 4))
	m, _ := Create(5, 3)
	RandomSparseCols(rng, m)
	for c := 0; c < m.Cols(); c++ {
		count := 0
		for r := 0; r < m.Rows(); r++ {
			if m.GetBit(r, c) {
				count++
			}
		}
		if count != 1 {
			t.Fatalf("column %d has %d ones, want exactly 1", c, count)
		}
	}
}

func TestEnsureBlockIn(t *testing.T) {
	rng := rand.New(rand.NewPCG(5, 6))
	m, _ := Create(4, 3)
	RandomUnique(rng, m)
	target := bitvec.Block(0b101)
	EnsureBlockIn(rng, m, target)
	if !m.HasRow(target) {
		t.Fatalf("target row not present after EnsureBlockIn")
	}
}

func TestMulRow(t *testing.T) {
	m, _ := Create(2, 2)
	m.SetRow(0, 0b01)
	m.SetRow(1, 0b10)
	x := bitvec.New(2)
	x.SetBit(0, true)
	x.SetBit(1, true)
	if got := m.MulRow(x); got != 0b11 {
		t.Fatalf("MulRow = %#x, want 0b11", got)
	}
}

func TestCloneEqual(t *testing.T) {
	m, _ := Create(2, 2)
	m.SetBit(0, 0, true)
	c := m.Clone()
	if !m.Equal(c) {
		t.Fatalf("clone should equal original")
	}
	c.SetBit(1, 1, true)
	if m.Equal(c) {
		t.Fatalf("mutated clone should differ")
	}
}
