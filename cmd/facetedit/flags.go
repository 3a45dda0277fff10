package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/philipparndt/gofacet/pkg/geometry"
)

// vectorValue is a pflag.Value holding an "x,y,z" vector
type vectorValue struct {
	v *geometry.Vector3
}

func newVectorValue(def geometry.Vector3, p *geometry.Vector3) *vectorValue {
	*p = def
	return &vectorValue{v: p}
}

func (f *vectorValue) Set(s string) error {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return fmt.Errorf("expected three comma separated values, got %q", s)
	}
	var c [3]float64
	for i, part := range parts {
		x, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return fmt.Errorf("invalid coordinate %q: %w", part, err)
		}
		c[i] = x
	}
	*f.v = geometry.NewVector3(c[0], c[1], c[2])
	return nil
}

func (f *vectorValue) String() string {
	if f.v == nil {
		return ""
	}
	return fmt.Sprintf("%g,%g,%g", f.v.X, f.v.Y, f.v.Z)
}

func (f *vectorValue) Type() string {
	return "x,y,z"
}
