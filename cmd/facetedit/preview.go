package main

import (
	"math"

	"github.com/spf13/cobra"

	"github.com/philipparndt/gofacet/internal/loader"
	"github.com/philipparndt/gofacet/pkg/viewer"
)

var (
	previewFile   string
	previewWidth  int
	previewHeight int
	previewYaw    float64
	previewPitch  float64
	previewLabels bool
)

var previewCmd = &cobra.Command{
	Use:   "preview [file]",
	Short: "Render a shaded PNG preview of a model",
	Long:  "Render the model with facet outlines to a PNG. Selected facets (or those given with --facets) are highlighted.",
	Args:  cobra.ExactArgs(1),
	RunE:  runPreview,
}

func init() {
	rootCmd.AddCommand(previewCmd)

	defaults := viewer.DefaultOptions()
	previewCmd.Flags().StringVar(&previewFile, "png", "preview.png", "PNG file to write")
	previewCmd.Flags().IntVar(&previewWidth, "width", defaults.Width, "Image width in pixels")
	previewCmd.Flags().IntVar(&previewHeight, "height", defaults.Height, "Image height in pixels")
	previewCmd.Flags().Float64Var(&previewYaw, "yaw", defaults.Yaw*180/math.Pi, "Camera yaw in degrees")
	previewCmd.Flags().Float64Var(&previewPitch, "pitch", defaults.Pitch*180/math.Pi, "Camera pitch in degrees")
	previewCmd.Flags().BoolVar(&previewLabels, "labels", false, "Draw facet ids")
}

func runPreview(cmd *cobra.Command, args []string) error {
	model, err := loader.Load(cmd.Context(), args[0], log)
	if err != nil {
		return err
	}
	defer model.Close()

	g := model.Geometry
	for _, id := range facetIDs {
		if id >= 0 && id < len(g.Facets) {
			g.Facets[id].Selected = true
		}
	}

	opts := viewer.DefaultOptions()
	opts.Width, opts.Height = previewWidth, previewHeight
	opts.Yaw = previewYaw * math.Pi / 180
	opts.Pitch = previewPitch * math.Pi / 180
	opts.Labels = previewLabels
	if err := viewer.WritePNG(previewFile, g, opts); err != nil {
		return err
	}
	log.WithField("file", previewFile).Info("preview written")
	return nil
}
