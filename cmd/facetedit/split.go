package main

import (
	"github.com/spf13/cobra"

	"github.com/philipparndt/gofacet/pkg/geometry"
)

var (
	splitPoint  geometry.Vector3
	splitNormal geometry.Vector3
)

var splitCmd = &cobra.Command{
	Use:   "split [file]",
	Short: "Split facets by a plane",
	Long:  "Cut the selected facets along a plane given by a point and a normal. Facets the plane misses are left unchanged.",
	Args:  cobra.ExactArgs(1),
	RunE:  runSplit,
}

func init() {
	rootCmd.AddCommand(splitCmd)

	splitCmd.Flags().VarP(newVectorValue(geometry.Vector3{}, &splitPoint), "point", "p", "Point on the cutting plane")
	splitCmd.Flags().VarP(newVectorValue(geometry.NewVector3(0, 0, 1), &splitNormal), "normal", "n", "Normal of the cutting plane")
}

func runSplit(cmd *cobra.Command, args []string) error {
	return runSession(cmd.Context(), args[0], func(s *session) error {
		result, err := s.engine.Split(s.selection(), splitPoint, splitNormal)
		if err != nil {
			return err
		}
		return s.finish("split", result)
	})
}
