package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/philipparndt/gofacet/internal/loader"
	"github.com/philipparndt/gofacet/pkg/analysis"
	"github.com/philipparndt/gofacet/pkg/geometry"
)

var nearestPoint geometry.Vector3

var facetsCmd = &cobra.Command{
	Use:   "facets [file]",
	Short: "List facets with their ids, normals and areas",
	Long:  "List the facets of a model so their ids can be passed to --facets. With --near the nearest vertex to a point is reported as well.",
	Args:  cobra.ExactArgs(1),
	RunE:  runFacets,
}

func init() {
	rootCmd.AddCommand(facetsCmd)

	facetsCmd.Flags().Var(newVectorValue(geometry.Vector3{}, &nearestPoint), "near", "Report the vertex nearest to this point")
}

func runFacets(cmd *cobra.Command, args []string) error {
	model, err := loader.Load(cmd.Context(), args[0], log)
	if err != nil {
		return err
	}
	defer model.Close()
	g := model.Geometry

	fmt.Printf("%-6s %-9s %-35s %-15s %s\n", "Id", "Vertices", "Normal", "Area", "Indices")
	fmt.Println("--------------------------------------------------------------------------------------------")
	for id, f := range g.Facets {
		fmt.Printf("%-6d %-9d %-35s %-15.6f %v\n", id, len(f.Indices), analysis.FormatVector(f.Normal), f.Area, f.Indices)
	}

	if cmd.Flags().Changed("near") {
		p := nearestPoint
		id, dist := analysis.FindNearestVertex(g, p)
		if id < 0 {
			fmt.Println("\nModel has no vertices.")
			return nil
		}
		fmt.Printf("\nNearest vertex to %s: #%d %s (distance: %.6f)\n",
			analysis.FormatVector(p), id, analysis.FormatVector(g.Vertices[id].Position), dist)
	}
	return nil
}
