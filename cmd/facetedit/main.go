package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/philipparndt/gofacet/internal/logging"
	"github.com/philipparndt/gofacet/pkg/edit"
	"github.com/philipparndt/gofacet/version"
)

var (
	tolerance  float64
	planarity  float64
	clipScale  float64
	logLevel   string
	outputFile string
	watchMode  bool
	dryRun     bool
	facetIDs   []int

	log = logging.NamedLogger("facetedit")
)

var rootCmd = &cobra.Command{
	Use:   "facetedit",
	Short: "Planar facet editing for polygon meshes",
	Long: `facetedit splits, intersects and combines the planar facets of STL and
OpenSCAD models. Edited models are written back as ASCII STL.`,
	Version:       version.GetFullVersion(),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level, err := logging.ParseLevel(logLevel)
		if err != nil {
			return err
		}
		log.SetLevel(level)
		return nil
	},
}

func init() {
	defaults := edit.DefaultOptions()
	flags := rootCmd.PersistentFlags()
	flags.Float64Var(&tolerance, "tolerance", defaults.Tolerance, "Distance below which two points are the same vertex")
	flags.Float64Var(&planarity, "planarity", defaults.PlanarityTolerance, "Maximum distance of a vertex from its facet plane")
	flags.Float64Var(&clipScale, "scale", defaults.ClipScale, "Fixed-point scale of the polygon clipper")
	flags.StringVar(&logLevel, "log-level", "info", "Log level (error, warn, info, debug)")
	flags.StringVarP(&outputFile, "output", "o", "", "Write the edited model to this STL file")
	flags.BoolVarP(&watchMode, "watch", "w", false, "Run again whenever the model or its dependencies change")
	flags.BoolVar(&dryRun, "dry-run", false, "Report the edit, then undo it instead of writing the model")
	flags.IntSliceVarP(&facetIDs, "facets", "f", nil, "Facet ids to operate on (default: selected facets)")
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}
