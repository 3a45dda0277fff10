package stl

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/philipparndt/gofacet/pkg/geometry"
	"github.com/philipparndt/gofacet/pkg/mesh"
)

// DefaultWeldTolerance merges STL corners closer than this into one vertex
const DefaultWeldTolerance = 1e-9

// Parse reads an STL file into a geometry with one triangular facet per
// STL facet. It automatically detects whether the file is ASCII or
// binary format.
func Parse(filename string) (*mesh.Geometry, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	g, err := Read(file, DefaultWeldTolerance)
	if err != nil {
		return nil, err
	}
	if g.Name == "" {
		g.Name = strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	}
	return g, nil
}

// Read parses STL data from r, welding corners within weld of each other
func Read(r io.Reader, weld float64) (*mesh.Geometry, error) {
	br := bufio.NewReader(r)
	header, err := br.Peek(5)
	if err != nil && len(header) == 0 {
		return nil, fmt.Errorf("failed to read file header: %w", err)
	}

	b := newBuilder(weld)
	// Binary files may also start with "solid", so require an ASCII facet too
	if string(header) == "solid" {
		probe, _ := br.Peek(512)
		if bytes.Contains(probe, []byte("facet")) || bytes.Contains(probe, []byte("endsolid")) {
			if err := parseASCII(br, b); err != nil {
				return nil, err
			}
			return b.g, nil
		}
	}
	if err := parseBinary(br, b); err != nil {
		return nil, err
	}
	return b.g, nil
}

// parseASCII parses an ASCII STL stream
func parseASCII(reader io.Reader, b *builder) error {
	scanner := bufio.NewScanner(reader)
	var vertices []geometry.Vector3
	line := 0

	for scanner.Scan() {
		line++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "solid":
			if len(fields) > 1 {
				b.g.Name = strings.Join(fields[1:], " ")
			}

		case "vertex":
			if len(fields) < 4 {
				return fmt.Errorf("line %d: vertex needs three coordinates", line)
			}
			var c [3]float64
			for i := range c {
				v, err := strconv.ParseFloat(fields[i+1], 64)
				if err != nil {
					return fmt.Errorf("line %d: failed to parse coordinate: %w", line, err)
				}
				c[i] = v
			}
			vertices = append(vertices, geometry.NewVector3(c[0], c[1], c[2]))

		case "endfacet":
			if len(vertices) >= 3 {
				b.addTriangle(vertices[0], vertices[1], vertices[2])
			}
			vertices = vertices[:0]
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("error reading ASCII STL: %w", err)
	}
	return nil
}

// record is one binary STL triangle
type record struct {
	Normal     [3]float32
	V1, V2, V3 [3]float32
	Attribute  uint16
}

// parseBinary parses a binary STL stream
func parseBinary(reader io.Reader, b *builder) error {
	// Read 80-byte header
	header := make([]byte, 80)
	if _, err := io.ReadFull(reader, header); err != nil {
		return fmt.Errorf("failed to read header: %w", err)
	}
	if name := strings.TrimSpace(string(bytes.TrimRight(header, "\x00"))); name != "" {
		b.g.Name = name
	}

	var triangleCount uint32
	if err := binary.Read(reader, binary.LittleEndian, &triangleCount); err != nil {
		return fmt.Errorf("failed to read triangle count: %w", err)
	}

	for i := uint32(0); i < triangleCount; i++ {
		var rec record
		if err := binary.Read(reader, binary.LittleEndian, &rec); err != nil {
			return fmt.Errorf("failed to read triangle %d: %w", i, err)
		}
		b.addTriangle(vec32(rec.V1), vec32(rec.V2), vec32(rec.V3))
	}
	return nil
}

func vec32(v [3]float32) geometry.Vector3 {
	return geometry.NewVector3(float64(v[0]), float64(v[1]), float64(v[2]))
}
