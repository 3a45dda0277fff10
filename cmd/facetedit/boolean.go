package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/philipparndt/gofacet/pkg/clip"
	"github.com/philipparndt/gofacet/pkg/edit"
)

var (
	booleanOp      string
	booleanReverse bool
)

var booleanCmd = &cobra.Command{
	Use:   "boolean [file]",
	Short: "Combine two coplanar facets",
	Long: `Apply a boolean operation (intersection, union, difference, xor) to two
coplanar facets. Both facets are replaced by the result.`,
	Args: cobra.ExactArgs(1),
	RunE: runBoolean,
}

func init() {
	rootCmd.AddCommand(booleanCmd)

	booleanCmd.Flags().StringVar(&booleanOp, "op", clip.Union.String(), "Operation: intersection, union, difference or xor")
	booleanCmd.Flags().BoolVarP(&booleanReverse, "reverse", "r", false, "Swap the operands (second minus first for difference)")
}

func runBoolean(cmd *cobra.Command, args []string) error {
	op, err := clip.ParseOp(booleanOp)
	if err != nil {
		return err
	}

	return runSession(cmd.Context(), args[0], func(s *session) error {
		ids := s.selection()
		if len(ids) != 2 {
			return fmt.Errorf("%w: boolean needs exactly two facets, got %d", edit.ErrInsufficientSelection, len(ids))
		}
		result, err := s.engine.Boolean(ids[0], ids[1], op, booleanReverse)
		if err != nil {
			return err
		}
		return s.finish(op.String(), result)
	})
}
