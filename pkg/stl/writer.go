package stl

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/philipparndt/gofacet/pkg/geometry"
	"github.com/philipparndt/gofacet/pkg/mesh"
)

// WriteFile writes the geometry as ASCII STL
func WriteFile(filename string, g *mesh.Geometry) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	if err := Write(file, g); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

// Write emits the geometry as ASCII STL. Facets are triangulated in their
// own plane; degenerate facets are left out.
func Write(w io.Writer, g *mesh.Geometry) error {
	bw := bufio.NewWriter(w)
	name := g.Name
	if name == "" {
		name = "facetedit"
	}
	fmt.Fprintf(bw, "solid %s\n", name)
	for _, f := range g.Facets {
		basis, err := f.Basis(g.Vertices)
		if err != nil || len(f.Indices) < 3 {
			continue
		}
		loop := make([]geometry.Vector2, len(f.Indices))
		for i, idx := range f.Indices {
			loop[i] = basis.ToPlane2D(g.Vertices[idx].Position)
		}
		for _, tri := range Triangulate(loop, f.Indices) {
			fmt.Fprintf(bw, "  facet normal %g %g %g\n", f.Normal.X, f.Normal.Y, f.Normal.Z)
			fmt.Fprintln(bw, "    outer loop")
			for _, k := range tri {
				p := g.Vertices[f.Indices[k]].Position
				fmt.Fprintf(bw, "      vertex %g %g %g\n", p.X, p.Y, p.Z)
			}
			fmt.Fprintln(bw, "    endloop")
			fmt.Fprintln(bw, "  endfacet")
		}
	}
	fmt.Fprintf(bw, "endsolid %s\n", name)
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to write STL: %w", err)
	}
	return nil
}
