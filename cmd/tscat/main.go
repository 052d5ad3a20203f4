// Command tscat inspects dumped tree-sequence table files.
package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/genealogic/treeseq"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "tscat",
		Short:         "Inspect dumped tree-sequence table files",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.AddCommand(statsCmd(), rowsCmd(), checkCmd())
	return root
}

func statsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats <file>",
		Short: "Print per-table row counts and sizes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tc, err := treeseq.Load(args[0])
			if err != nil {
				return err
			}
			stats := tc.Stats()
			names := make([]string, 0, len(stats))
			for name := range stats {
				names = append(names, name)
			}
			sort.Strings(names)
			fmt.Printf("sequence length: %v\n", tc.SequenceLength())
			for _, name := range names {
				s := stats[name]
				fmt.Printf("%-12s %8d rows  %10d payload bytes  %10d metadata bytes\n",
					name, s.Rows, s.PayloadBytes, s.MetadataBytes)
			}
			return nil
		},
	}
}

func rowsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rows <file> <table>",
		Short: "Print all rows of one table",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			tc, err := treeseq.Load(args[0])
			if err != nil {
				return err
			}
			switch args[1] {
			case "nodes":
				printRows(tc.Nodes().Iter())
			case "edges":
				printRows(tc.Edges().Iter())
			case "sites":
				printRows(tc.Sites().Iter())
			case "mutations":
				printRows(tc.Mutations().Iter())
			case "individuals":
				printRows(tc.Individuals().Iter())
			case "populations":
				printRows(tc.Populations().Iter())
			case "migrations":
				printRows(tc.Migrations().Iter())
			case "provenances":
				printRows(tc.Provenances().Iter())
			default:
				return fmt.Errorf("unknown table %q", args[1])
			}
			return nil
		},
	}
}

func checkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check <file>",
		Short: "Run the full integrity suite on a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tc, err := treeseq.Load(args[0])
			if err != nil {
				return err
			}
			if !tc.HasIndex() {
				if err := tc.BuildIndex(); err != nil {
					return err
				}
			}
			if err := tc.CheckIntegrity(treeseq.CheckTrees); err != nil {
				return err
			}
			fmt.Println("ok")
			return nil
		},
	}
}

func printRows[R any](it *treeseq.TableIterator[R]) {
	for {
		row, ok := it.Next()
		if !ok {
			return
		}
		fmt.Printf("%+v\n", row)
	}
}
