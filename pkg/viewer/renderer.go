// Package viewer renders shaded previews of a geometry to images, so the
// result of an edit can be inspected without a GUI.
package viewer

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"
	"strconv"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/math/fixed"

	"github.com/philipparndt/gofacet/pkg/geometry"
	"github.com/philipparndt/gofacet/pkg/mesh"
	"github.com/philipparndt/gofacet/pkg/stl"
)

// ErrEmptyGeometry is returned when there is nothing to render
var ErrEmptyGeometry = errors.New("geometry has no facets")

// Options controls a preview
type Options struct {
	Width, Height int
	// Yaw and Pitch orbit the camera, in radians
	Yaw, Pitch float64
	// Zoom scales the camera distance; 0 keeps the fitted distance
	Zoom float64
	// Supersample renders at this multiple of the size and scales down
	Supersample int
	// Labels draws facet ids at facet centers
	Labels bool
	// LabelSize is the label font size in points
	LabelSize float64

	Background color.RGBA
	Fill       color.RGBA
	Selected   color.RGBA
	Edge       color.RGBA
}

// DefaultOptions returns a three-quarter view at 800x600
func DefaultOptions() Options {
	return Options{
		Width:       800,
		Height:      600,
		Yaw:         math.Pi / 6,
		Pitch:       math.Pi / 8,
		Supersample: 2,
		LabelSize:   11,
		Background:  color.RGBA{30, 30, 36, 255},
		Fill:        color.RGBA{180, 190, 205, 255},
		Selected:    color.RGBA{240, 150, 40, 255},
		Edge:        color.RGBA{20, 20, 20, 255},
	}
}

// Render draws every facet of g, shaded by its angle to the camera, with
// the facet outlines on top
func Render(g *mesh.Geometry, opts Options) (*image.RGBA, error) {
	if g.FacetCount() == 0 {
		return nil, ErrEmptyGeometry
	}
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, fmt.Errorf("invalid image size %dx%d", opts.Width, opts.Height)
	}
	ss := max(opts.Supersample, 1)
	width, height := float64(opts.Width*ss), float64(opts.Height*ss)

	camera := NewCamera(g.BoundingBox())
	camera.Rotate(opts.Pitch, opts.Yaw)
	camera.Zoom(opts.Zoom)
	forward := camera.Forward()

	c := newCanvas(opts.Width*ss, opts.Height*ss, opts.Background)
	project := func(p geometry.Vector3) [3]float64 {
		x, y, z := camera.Project(p, width, height)
		return [3]float64{x, y, z}
	}

	var labels []label
	for id, f := range g.Facets {
		basis, err := f.Basis(g.Vertices)
		if err != nil || len(f.Indices) < 3 {
			continue
		}
		loop := make([]geometry.Vector2, len(f.Indices))
		screen := make([][3]float64, len(f.Indices))
		for i, idx := range f.Indices {
			p := g.Vertices[idx].Position
			loop[i] = basis.ToPlane2D(p)
			screen[i] = project(p)
		}

		base := opts.Fill
		if f.Selected {
			base = opts.Selected
		}
		col := shade(base, 0.25+0.75*math.Abs(f.Normal.Dot(forward)))
		for _, tri := range stl.Triangulate(loop, f.Indices) {
			c.fillTriangle([3][3]float64{screen[tri[0]], screen[tri[1]], screen[tri[2]]}, col)
		}

		bias := camera.Distance * 1e-3
		for i := range screen {
			c.drawLine(screen[i], screen[(i+1)%len(screen)], bias, opts.Edge)
		}

		if opts.Labels {
			center := project(centroid(f, g.Vertices))
			labels = append(labels, label{x: center[0] / float64(ss), y: center[1] / float64(ss), text: strconv.Itoa(id)})
		}
	}

	img := c.img
	if ss > 1 {
		img = image.NewRGBA(image.Rect(0, 0, opts.Width, opts.Height))
		draw.CatmullRom.Scale(img, img.Bounds(), c.img, c.img.Bounds(), draw.Src, nil)
	}
	if len(labels) > 0 {
		if err := drawLabels(img, labels, opts.LabelSize); err != nil {
			return nil, err
		}
	}
	return img, nil
}

// WritePNG renders g into a PNG file
func WritePNG(filename string, g *mesh.Geometry, opts Options) error {
	img, err := Render(g, opts)
	if err != nil {
		return err
	}
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	if err := png.Encode(file, img); err != nil {
		file.Close()
		return fmt.Errorf("failed to encode PNG: %w", err)
	}
	return file.Close()
}

type label struct {
	x, y float64
	text string
}

// drawLabels centers each label on its point using the Go Regular font
func drawLabels(img *image.RGBA, labels []label, size float64) error {
	ttf, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return fmt.Errorf("failed to parse label font: %w", err)
	}
	if size <= 0 {
		size = 11
	}
	face := truetype.NewFace(ttf, &truetype.Options{Size: size, DPI: 72, Hinting: font.HintingFull})
	defer face.Close()

	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(color.RGBA{255, 255, 255, 255}),
		Face: face,
	}
	ascent := face.Metrics().Ascent
	for _, l := range labels {
		w := d.MeasureString(l.text)
		d.Dot = fixed.Point26_6{
			X: fixed.Int26_6(l.x*64) - w/2,
			Y: fixed.Int26_6(l.y*64) + ascent/2,
		}
		d.DrawString(l.text)
	}
	return nil
}

func centroid(f *mesh.Facet, vertices []mesh.Vertex) geometry.Vector3 {
	var sum geometry.Vector3
	for _, idx := range f.Indices {
		sum = sum.Add(vertices[idx].Position)
	}
	return sum.Mul(1 / float64(len(f.Indices)))
}

func shade(c color.RGBA, k float64) color.RGBA {
	k = math.Max(0, math.Min(1, k))
	return color.RGBA{
		R: uint8(float64(c.R) * k),
		G: uint8(float64(c.G) * k),
		B: uint8(float64(c.B) * k),
		A: c.A,
	}
}
