package main

import (
	"context"
	"fmt"
	"math/rand/v2"
	"os"

	"github.com/smilkos/mrhs-go/pkg/bitvec"
	"github.com/smilkos/mrhs-go/pkg/collect"
	"github.com/smilkos/mrhs-go/pkg/cost"
	"github.com/smilkos/mrhs-go/pkg/format"
	"github.com/smilkos/mrhs-go/pkg/mrhs"
	"github.com/smilkos/mrhs-go/pkg/pretty"
	"github.com/smilkos/mrhs-go/pkg/solver"
	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "mrhsolve",
		Short: "MRHS (Multiple Right-Hand Sides) GF(2) solver",
	}

	rootCmd.AddCommand(
		newGenerateCmd(),
		newSolveCmd(),
		newBenchCmd(),
		newConvertCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newGenerateCmd() *cobra.Command {
	var n, m, l, k int
	var seed uint64
	var output string
	var ensureSolution bool

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a random MRHS system and write it in the textual format",
		RunE: func(cmd *cobra.Command, args []string) error {
			rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))

			sys, err := mrhs.CreateFixed(n, m, l, k)
			if err != nil {
				return fmt.Errorf("generate: %w", err)
			}
			for i := 0; i < m; i++ {
				if err := mrhs.FillM(rng, sys, i, mrhs.MSparseCols); err != nil {
					return fmt.Errorf("generate: block %d: %w", i, err)
				}
				mrhs.FillSUnique(rng, sys, i)
			}
			if ensureSolution {
				x := mrhs.EnsureRandomSolution(rng, sys)
				fmt.Fprintf(cmd.ErrOrStderr(), "planted solution: %s\n", bitVectorString(x, n))
			}

			w := cmd.OutOrStdout()
			if output != "" {
				f, err := os.Create(output)
				if err != nil {
					return fmt.Errorf("generate: %w", err)
				}
				defer f.Close()
				w = f
			}
			return format.WriteSystem(w, sys)
		},
	}
	cmd.Flags().IntVar(&n, "n", 8, "number of shared variables")
	cmd.Flags().IntVar(&m, "m", 2, "number of blocks")
	cmd.Flags().IntVar(&l, "l", 4, "block width (columns per block)")
	cmd.Flags().IntVar(&k, "k", 4, "allowed right-hand sides per block")
	cmd.Flags().Uint64Var(&seed, "seed", 1, "PRNG seed")
	cmd.Flags().StringVar(&output, "output", "", "output file path (default stdout)")
	cmd.Flags().BoolVar(&ensureSolution, "ensure-solution", true, "plant a guaranteed solution via ensure_random_solution")
	return cmd
}

func newSolveCmd() *cobra.Command {
	var input, output string
	var preprocess bool
	var limit uint64

	cmd := &cobra.Command{
		Use:   "solve [file]",
		Short: "Solve an MRHS system read from file (or stdin)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				input = args[0]
			}
			sys, err := readSystem(input)
			if err != nil {
				return fmt.Errorf("solve: %w", err)
			}

			if preprocess {
				subs := mrhs.RemoveLinear(sys)
				removed := mrhs.RemoveEmpty(sys)
				fmt.Fprintf(cmd.OutOrStdout(), "preprocessing: %d linear substitutions, %d empty blocks removed\n", subs, removed)
			}

			_, a := mrhs.Echelonize(sys, true)

			tbl, err := solver.Prepare(sys)
			if err != nil {
				return fmt.Errorf("solve: %w", err)
			}

			table := collect.NewTable()
			count, xors, err := solver.Solve(context.Background(), tbl, func(counter uint64, t *solver.Tables, choice []bitvec.Block) bool {
				xp := solver.ReconstructPivotVector(t, choice)
				x := a.MulRow(xp)
				table.Add(collect.Solution{X: blockBits(x, sys.N())})
				return limit == 0 || counter < limit
			})
			if err != nil {
				return fmt.Errorf("solve: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "found %d solutions (%d xor operations)\n", count, xors)
			if output != "" {
				if err := collect.WriteJSON(output, table); err != nil {
					return fmt.Errorf("solve: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "written to %s\n", output)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&output, "output", "", "write solutions as JSON to this path")
	cmd.Flags().BoolVar(&preprocess, "preprocess", true, "run remove_linear/remove_empty before echelonizing")
	cmd.Flags().Uint64Var(&limit, "limit", 0, "stop after this many solutions (0 = unbounded)")
	return cmd
}

func newBenchCmd() *cobra.Command {
	var n, m, l, k int
	var seed uint64
	var workers int

	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Compare the analytic cost estimators against a measured solve",
		RunE: func(cmd *cobra.Command, args []string) error {
			rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
			sys, err := mrhs.CreateFixed(n, m, l, k)
			if err != nil {
				return fmt.Errorf("bench: %w", err)
			}
			for i := 0; i < m; i++ {
				if err := mrhs.FillM(rng, sys, i, mrhs.MSparseCols); err != nil {
					return fmt.Errorf("bench: block %d: %w", i, err)
				}
				mrhs.FillSUnique(rng, sys, i)
			}
			mrhs.EnsureRandomSolution(rng, sys)
			mrhs.Echelonize(sys, false)

			tbl, err := solver.Prepare(sys)
			if err != nil {
				return fmt.Errorf("bench: %w", err)
			}

			est := cost.Compute(sys, sys.Pivots)

			count, xors, err := solver.SolveParallel(context.Background(), tbl, workers, func(_ uint64, _ *solver.Tables, _ []bitvec.Block) bool {
				return true
			})
			if err != nil {
				return fmt.Errorf("bench: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "predicted: expected=%.1f xor1=%.1f xor2=%.1f\n", est.Expected, est.Xor1, est.Xor2)
			fmt.Fprintf(cmd.OutOrStdout(), "measured:  count=%d xors=%d (workers=%d)\n", count, xors, workers)
			return nil
		},
	}
	cmd.Flags().IntVar(&n, "n", 8, "number of shared variables")
	cmd.Flags().IntVar(&m, "m", 3, "number of blocks")
	cmd.Flags().IntVar(&l, "l", 4, "block width (columns per block)")
	cmd.Flags().IntVar(&k, "k", 4, "allowed right-hand sides per block")
	cmd.Flags().Uint64Var(&seed, "seed", 1, "PRNG seed")
	cmd.Flags().IntVar(&workers, "workers", 4, "goroutines partitioning block 0's top-level branches")
	return cmd
}

func newConvertCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "convert [file]",
		Short: "Read a textual MRHS system and pretty-print it",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := ""
			if len(args) == 1 {
				input = args[0]
			}
			sys, err := readSystem(input)
			if err != nil {
				return fmt.Errorf("convert: %w", err)
			}
			return pretty.Print(cmd.OutOrStdout(), sys)
		},
	}
	return cmd
}

func readSystem(path string) (*mrhs.System, error) {
	if path == "" {
		return format.ReadSystem(os.Stdin)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return format.ReadSystem(f)
}

// bitVectorString renders a BitVector MSB-first, matching pkg/format's
// on-disk bit-string convention.
func bitVectorString(x *bitvec.BitVector, n int) string {
	buf := make([]byte, n)
	for i := 0; i < n; i++ {
		col := n - 1 - i
		if x.Bit(col) {
			buf[i] = '1'
		} else {
			buf[i] = '0'
		}
	}
	return string(buf)
}

// blockBits unpacks the low n bits of b into a []bool, variable 0 first.
func blockBits(b bitvec.Block, n int) []bool {
	out := make([]bool, n)
	for i := 0; i < n; i++ {
		out[i] = b.Bit(i)
	}
	return out
}
