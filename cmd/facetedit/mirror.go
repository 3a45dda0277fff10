package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/philipparndt/gofacet/pkg/analysis"
	"github.com/philipparndt/gofacet/pkg/geometry"
)

var (
	vertexIDs    []int
	mirrorPoint  geometry.Vector3
	mirrorNormal geometry.Vector3
	mirrorFlat   bool
)

var mirrorCmd = &cobra.Command{
	Use:   "mirror [file]",
	Short: "Mirror or project vertices across a plane",
	Long:  "Reflect vertices across a plane, or drop them onto it with --project. Facets using the moved vertices are refreshed.",
	Args:  cobra.ExactArgs(1),
	RunE:  runMirror,
}

func init() {
	rootCmd.AddCommand(mirrorCmd)

	mirrorCmd.Flags().IntSliceVarP(&vertexIDs, "vertices", "v", nil, "Vertex ids to move (default: selected vertices)")
	mirrorCmd.Flags().VarP(newVectorValue(geometry.Vector3{}, &mirrorPoint), "point", "p", "Point on the plane")
	mirrorCmd.Flags().VarP(newVectorValue(geometry.NewVector3(0, 0, 1), &mirrorNormal), "normal", "n", "Normal of the plane")
	mirrorCmd.Flags().BoolVar(&mirrorFlat, "project", false, "Project onto the plane instead of mirroring")
}

func runMirror(cmd *cobra.Command, args []string) error {
	return runSession(cmd.Context(), args[0], func(s *session) error {
		ids := vertexIDs
		if len(ids) == 0 {
			ids = s.model.Geometry.SelectedVertices()
		}

		move := s.engine.MirrorVertices
		name := "mirror"
		if mirrorFlat {
			move = s.engine.ProjectVertices
			name = "project"
		}
		undo, err := move(ids, mirrorPoint, mirrorNormal)
		if err != nil {
			return err
		}

		fmt.Printf("%s: %d vertex(es) moved\n", name, len(undo))
		for _, p := range undo {
			moved := s.model.Geometry.Vertices[p.OriginalVertexID].Position
			fmt.Printf("  #%d: %s -> %s\n", p.OriginalVertexID, analysis.FormatVector(p.OriginalPosition), analysis.FormatVector(moved))
		}
		if dryRun {
			return s.engine.RestoreVertices(undo)
		}
		return s.save()
	})
}
