// Package format implements the textual MRHS system grammar of spec.md §6:
// a header declaring n/m and each block's (lᵢ, kᵢ), followed by n bracketed
// M rows and, after a blank line, each block's bracketed Sᵢ rows in turn.
package format

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/smilkos/mrhs-go/pkg/bitvec"
	"github.com/smilkos/mrhs-go/pkg/mrhs"
)

// ErrFormat is the sentinel wrapped by every parse error. spec.md §6 calls
// a header/body mismatch "unrecoverable — behavior undefined"; this reader
// strengthens that to a reported error rather than leaving it unspecified
// (SPEC_FULL.md, "EXTERNAL: Textual format").
var ErrFormat = errors.New("format: malformed mrhs text")

// ReadSystem parses the textual grammar of spec.md §6 from r.
func ReadSystem(r io.Reader) (*mrhs.System, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	n, m, err := readHeaderDims(sc)
	if err != nil {
		return nil, err
	}
	ls := make([]int, m)
	ks := make([]int, m)
	for i := 0; i < m; i++ {
		l, k, err := readHeaderDims(sc)
		if err != nil {
			return nil, fmt.Errorf("format: block %d header: %w", i, err)
		}
		ls[i], ks[i] = l, k
	}

	sys, err := mrhs.CreateVariable(n, m, ls, ks)
	if err != nil {
		return nil, fmt.Errorf("format: %w: %v", ErrFormat, err)
	}

	for row := 0; row < n; row++ {
		toks, err := nextBracketTokens(sc)
		if err != nil {
			return nil, fmt.Errorf("format: M row %d: %w", row, err)
		}
		if len(toks) != m {
			return nil, fmt.Errorf("format: M row %d has %d block values, want %d: %w", row, len(toks), m, ErrFormat)
		}
		for bi := 0; bi < m; bi++ {
			v, err := bitStringToBlock(toks[bi], ls[bi])
			if err != nil {
				return nil, fmt.Errorf("format: M row %d block %d: %w", row, bi, err)
			}
			for c := 0; c < ls[bi]; c++ {
				sys.M[bi].SetBit(row, c, v.Bit(c))
			}
		}
	}

	for bi := 0; bi < m; bi++ {
		for r := 0; r < ks[bi]; r++ {
			toks, err := nextBracketTokens(sc)
			if err != nil {
				return nil, fmt.Errorf("format: block %d S row %d: %w", bi, r, err)
			}
			if len(toks) != 1 {
				return nil, fmt.Errorf("format: block %d S row %d has %d values, want 1: %w", bi, r, len(toks), ErrFormat)
			}
			v, err := bitStringToBlock(toks[0], ls[bi])
			if err != nil {
				return nil, fmt.Errorf("format: block %d S row %d: %w", bi, r, err)
			}
			sys.S[bi].SetRow(r, v)
		}
	}

	return sys, sc.Err()
}

// WriteSystem emits sys in the textual grammar of spec.md §6, using the
// l-then-k header column order as canonical (SPEC_FULL.md §9).
func WriteSystem(w io.Writer, sys *mrhs.System) error {
	bw := bufio.NewWriter(w)
	m := sys.NBlocks()

	if _, err := fmt.Fprintf(bw, "%d %d\n", sys.N(), m); err != nil {
		return err
	}
	for i := 0; i < m; i++ {
		if _, err := fmt.Fprintf(bw, "%d %d\n", sys.L(i), sys.K(i)); err != nil {
			return err
		}
	}

	for row := 0; row < sys.N(); row++ {
		parts := make([]string, m)
		for i := 0; i < m; i++ {
			parts[i] = blockToBitString(sys.M[i].Row(row), sys.L(i))
		}
		if _, err := fmt.Fprintf(bw, "[ %s ]\n", strings.Join(parts, " ")); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintln(bw); err != nil {
		return err
	}

	for i := 0; i < m; i++ {
		for r := 0; r < sys.K(i); r++ {
			if _, err := fmt.Fprintf(bw, "[%s]\n", blockToBitString(sys.S[i].Row(r), sys.L(i))); err != nil {
				return err
			}
		}
		if i != m-1 {
			if _, err := fmt.Fprintln(bw); err != nil {
				return err
			}
		}
	}

	return bw.Flush()
}

// readHeaderDims reads the next non-blank line and parses two space
// separated integers from it.
func readHeaderDims(sc *bufio.Scanner) (int, int, error) {
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) != 2 {
			return 0, 0, fmt.Errorf("%w: expected two integers, got %q", ErrFormat, line)
		}
		a, err := strconv.Atoi(fields[0])
		if err != nil {
			return 0, 0, fmt.Errorf("%w: %v", ErrFormat, err)
		}
		b, err := strconv.Atoi(fields[1])
		if err != nil {
			return 0, 0, fmt.Errorf("%w: %v", ErrFormat, err)
		}
		return a, b, nil
	}
	if err := sc.Err(); err != nil {
		return 0, 0, err
	}
	return 0, 0, fmt.Errorf("%w: unexpected end of input", ErrFormat)
}

// nextBracketTokens scans forward (skipping blank/bracket-less lines, per
// spec.md §6's "reader skips any character until `[`") to the next line
// carrying a bracketed value, and splits its interior on whitespace.
func nextBracketTokens(sc *bufio.Scanner) ([]string, error) {
	for sc.Scan() {
		line := sc.Text()
		open := strings.IndexByte(line, '[')
		if open < 0 {
			continue
		}
		closeIdx := strings.LastIndexByte(line, ']')
		if closeIdx < open {
			return nil, fmt.Errorf("%w: unterminated bracket in %q", ErrFormat, line)
		}
		inner := strings.TrimSpace(line[open+1 : closeIdx])
		if inner == "" {
			return nil, fmt.Errorf("%w: empty bracketed value in %q", ErrFormat, line)
		}
		return strings.Fields(inner), nil
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return nil, fmt.Errorf("%w: unexpected end of input", ErrFormat)
}

// bitStringToBlock parses an MSB-first bit string of the given width.
func bitStringToBlock(s string, width int) (bitvec.Block, error) {
	if len(s) != width {
		return 0, fmt.Errorf("%w: bit string %q has length %d, want %d", ErrFormat, s, len(s), width)
	}
	var b bitvec.Block
	for i, ch := range s {
		col := width - 1 - i
		switch ch {
		case '0':
		case '1':
			b = b.SetBit(col, true)
		default:
			return 0, fmt.Errorf("%w: invalid bit character %q in %q", ErrFormat, ch, s)
		}
	}
	return b, nil
}

// blockToBitString renders the low `width` bits of b as an MSB-first
// bit string.
func blockToBitString(b bitvec.Block, width int) string {
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
