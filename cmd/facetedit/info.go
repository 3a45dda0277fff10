package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/philipparndt/gofacet/internal/loader"
	"github.com/philipparndt/gofacet/pkg/analysis"
)

var infoCmd = &cobra.Command{
	Use:   "info [file]",
	Short: "Display general information about a model",
	Long: `Show dimensions, facet and vertex counts, surface area, edge statistics
and mesh health (open edges, coincident vertices, non-planar facets).`,
	Args: cobra.ExactArgs(1),
	RunE: runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

func runInfo(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	model, err := loader.Load(ctx, args[0], log)
	if err != nil {
		return err
	}
	defer model.Close()

	printInfo(model)
	if !watchMode {
		return nil
	}
	return loader.Watch(ctx, model, watchDebounce, log, printInfo)
}

func printInfo(model *loader.Model) {
	g := model.Geometry
	result := analysis.AnalyzeGeometry(g, planarity)

	fmt.Println("Model Information")
	fmt.Println("=================")
	if g.Name != "" {
		fmt.Printf("Name: %s\n", g.Name)
	}
	fmt.Printf("File: %s\n\n", model.Source)

	fmt.Println("Model Statistics:")
	fmt.Printf("  Facets: %d\n", result.FacetCount)
	fmt.Printf("  Vertices: %d (%d unused)\n", result.VertexCount, result.UnusedVertices)
	fmt.Printf("  Edges: %d\n", result.EdgeCount)
	fmt.Printf("  Surface Area: %s\n\n", analysis.FormatMeasurement(result.SurfaceArea, "square units"))

	if !result.BoundingBox.IsEmpty() {
		fmt.Println("Bounding Box:")
		fmt.Printf("  Min: %s\n", analysis.FormatVector(result.BoundingBox.Min))
		fmt.Printf("  Max: %s\n", analysis.FormatVector(result.BoundingBox.Max))
		fmt.Printf("  Center: %s\n\n", analysis.FormatVector(result.BoundingBox.Center()))

		fmt.Println("Dimensions:")
		fmt.Printf("  Width (X): %s\n", analysis.FormatMeasurement(result.Dimensions.X, ""))
		fmt.Printf("  Depth (Y): %s\n", analysis.FormatMeasurement(result.Dimensions.Y, ""))
		fmt.Printf("  Height (Z): %s\n", analysis.FormatMeasurement(result.Dimensions.Z, ""))
		fmt.Printf("  Diagonal: %s\n\n", analysis.FormatMeasurement(result.BoundingBox.Diagonal(), ""))
	}

	fmt.Println("Edge Lengths:")
	fmt.Printf("  Minimum: %s\n", analysis.FormatMeasurement(result.MinEdgeLength, ""))
	fmt.Printf("  Maximum: %s\n", analysis.FormatMeasurement(result.MaxEdgeLength, ""))
	fmt.Printf("  Average: %s\n\n", analysis.FormatMeasurement(result.AvgEdgeLength, ""))

	fmt.Println("Mesh Health:")
	fmt.Printf("  Watertight: %t\n", result.Watertight())
	fmt.Printf("  Open edges: %d\n", len(result.OpenEdges))
	fmt.Printf("  Coincident vertex pairs: %d\n", len(result.CoincidentVertices))
	fmt.Printf("  Non-planar facets: %d\n", len(result.NonPlanarFacets))
}
