package mrhs

import "github.com/smilkos/mrhs-go/pkg/bitvec"

// RemoveEmpty implements spec.md §4.F.4: a block is empty if every row
// of its Mi is zero. Non-empty blocks contribute their active-rows mask
// to a system-wide OR; empty blocks are dropped (shifting later blocks
// down via RemoveBlock); every surviving Mi is finally compacted to keep
// only the rows flagged in the system-wide mask, and n becomes that
// mask's popcount. Returns the number of blocks removed.
func RemoveEmpty(sys *System) int {
	n := sys.n
	mask := bitvec.New(n)
	removed := 0
	for i := len(sys.M) - 1; i >= 0; i-- {
		active := sys.M[i].GetActiveRows()
		if active.Popcount() == 0 {
			sys.RemoveBlock(i)
			removed++
			continue
		}
		for r := 0; r < n; r++ {
			if active.Bit(r) {
				mask.SetBit(r, true)
			}
		}
	}
	for _, mi := range sys.M {
		mi.RemoveRows(mask)
	}
	sys.n = mask.Popcount()
	return removed
}
