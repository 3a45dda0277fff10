package main

import (
	"github.com/spf13/cobra"
)

var intersectCmd = &cobra.Command{
	Use:   "intersect [file]",
	Short: "Cut selected facets by each other",
	Long: `Intersect every selected facet with the other selected facets, keeping
the parts of each facet covered by all the others. Non-planar facets are
skipped.`,
	Args: cobra.ExactArgs(1),
	RunE: runIntersect,
}

func init() {
	rootCmd.AddCommand(intersectCmd)
}

func runIntersect(cmd *cobra.Command, args []string) error {
	return runSession(cmd.Context(), args[0], func(s *session) error {
		result, err := s.engine.Intersect(s.selection())
		if err != nil {
			return err
		}
		return s.finish("intersect", result)
	})
}
