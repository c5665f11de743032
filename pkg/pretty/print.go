// Package pretty implements the spec.md §6 human-readable dump of an MRHS
// system: M's rows side by side by block, a dashed rule, then every
// block's Sᵢ rows underneath, padded out once a block runs out of rows.
package pretty

import (
	"io"
	"strings"

	"github.com/smilkos/mrhs-go/pkg/bitvec"
	"github.com/smilkos/mrhs-go/pkg/mrhs"
)

// Print writes sys in the spec.md §6 pretty-print layout to w.
func Print(w io.Writer, sys *mrhs.System) error {
	m := sys.NBlocks()
	bw, ok := w.(interface{ WriteString(string) (int, error) })
	if !ok {
		bw = &stringWriter{w}
	}

	for row := 0; row < sys.N(); row++ {
		parts := make([]string, m)
		for i := 0; i < m; i++ {
			parts[i] = bitString(sys.M[i].Row(row), sys.L(i))
		}
		if _, err := bw.WriteString(strings.Join(parts, " ") + "\n"); err != nil {
			return err
		}
	}

	ruleWidth := 0
	maxK := 0
	for i := 0; i < m; i++ {
		ruleWidth += sys.L(i) + 1
		if sys.K(i) > maxK {
			maxK = sys.K(i)
		}
	}
	if ruleWidth > 0 {
		ruleWidth--
	}
	if _, err := bw.WriteString(strings.Repeat("-", ruleWidth) + "\n"); err != nil {
		return err
	}

	for row := 0; row < maxK; row++ {
		var line strings.Builder
		for i := 0; i < m; i++ {
			li := sys.L(i)
			if i > 0 {
				line.WriteByte(' ')
			}
			if row < sys.K(i) {
				line.WriteString(padRight(bitString(sys.S[i].Row(row), li), li+1))
			} else {
				line.WriteString(strings.Repeat(" ", li+1))
			}
		}
		if _, err := bw.WriteString(strings.TrimRight(line.String(), " ") + "\n"); err != nil {
			return err
		}
	}

	return nil
}

// padRight pads s with trailing spaces to width chars.
func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}

// bitString renders the low `width` bits of b MSB-first, matching the
// textual format's bit ordering (pkg/format).
func bitString(b bitvec.Block, width int) string {
	buf := make([]byte, width)
	for i := 0; i < width; i++ {
		col := width - 1 - i
		if b.Bit(col) {
			buf[i] = '1'
		} else {
			buf[i] = '0'
		}
	}
	return string(buf)
}

// stringWriter adapts a plain io.Writer to the WriteString-capable
// interface bufio.Writer/strings.Builder/os.File already satisfy.
type stringWriter struct {
	io.Writer
}

func (s *stringWriter) WriteString(str string) (int, error) {
	return s.Write([]byte(str))
}
