package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/philipparndt/gofacet/internal/loader"
	"github.com/philipparndt/gofacet/pkg/analysis"
)

var (
	edgesCount     int
	edgesLongest   bool
	edgesShortest  bool
	edgesOpen      bool
	edgesMinLength float64
	edgesMaxLength float64
)

var edgesCmd = &cobra.Command{
	Use:   "edges [file]",
	Short: "Analyze and measure edges of a model",
	Long:  "Find and measure edges, including longest, shortest, open edges or edges within a specific length range.",
	Args:  cobra.ExactArgs(1),
	RunE:  runEdges,
}

func init() {
	rootCmd.AddCommand(edgesCmd)

	edgesCmd.Flags().IntVarP(&edgesCount, "count", "n", 10, "Number of edges to display")
	edgesCmd.Flags().BoolVarP(&edgesLongest, "longest", "l", false, "Show longest edges")
	edgesCmd.Flags().BoolVarP(&edgesShortest, "shortest", "s", false, "Show shortest edges")
	edgesCmd.Flags().BoolVar(&edgesOpen, "open", false, "Show edges used by a single facet")
	edgesCmd.Flags().Float64Var(&edgesMinLength, "min", 0.0, "Minimum edge length filter")
	edgesCmd.Flags().Float64Var(&edgesMaxLength, "max", 0.0, "Maximum edge length filter")
}

func runEdges(cmd *cobra.Command, args []string) error {
	model, err := loader.Load(cmd.Context(), args[0], log)
	if err != nil {
		return err
	}
	defer model.Close()

	result := analysis.AnalyzeGeometry(model.Geometry, planarity)

	var edges []analysis.EdgeInfo
	var title string

	switch {
	case edgesOpen:
		edges = result.OpenEdges
		title = fmt.Sprintf("Open Edges (found %d)", len(edges))
	case edgesLongest:
		edges = analysis.FindLongestEdges(result, edgesCount)
		title = fmt.Sprintf("Top %d Longest Edges", len(edges))
	case edgesShortest:
		edges = analysis.FindShortestEdges(result, edgesCount)
		title = fmt.Sprintf("Top %d Shortest Edges", len(edges))
	case edgesMaxLength > 0:
		edges = analysis.FindEdgesByLength(result, edgesMinLength, edgesMaxLength)
		title = fmt.Sprintf("Edges between %.6f and %.6f units (found %d)", edgesMinLength, edgesMaxLength, len(edges))
	default:
		edges = result.AllEdges
		title = fmt.Sprintf("All Edges (showing first %d of %d)", min(edgesCount, len(edges)), len(edges))
	}
	if len(edges) > edgesCount {
		edges = edges[:edgesCount]
	}

	fmt.Println(title)
	fmt.Println("====================")
	fmt.Printf("Total edges in model: %d\n", result.EdgeCount)
	fmt.Printf("Min edge length: %.6f units\n", result.MinEdgeLength)
	fmt.Printf("Max edge length: %.6f units\n", result.MaxEdgeLength)
	fmt.Printf("Avg edge length: %.6f units\n\n", result.AvgEdgeLength)

	if len(edges) == 0 {
		fmt.Println("No edges found matching the criteria.")
		return nil
	}
	fmt.Printf("%-12s %-35s %-35s %-15s %s\n", "Vertices", "Start", "End", "Length", "Facets")
	fmt.Println("--------------------------------------------------------------------------------------------------------------------")
	for _, edge := range edges {
		fmt.Printf("%-12s %-35s %-35s %-15.6f %v\n",
			fmt.Sprintf("%d-%d", edge.A, edge.B),
			analysis.FormatVector(edge.Start),
			analysis.FormatVector(edge.End),
			edge.Length,
			edge.Facets)
	}
	return nil
}
