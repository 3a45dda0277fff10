package geometry

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMakeBasisOrthonormal(t *testing.T) {
	normals := []Vector3{
		NewVector3(0, 0, 1),
		NewVector3(1, 0, 0),
		NewVector3(0, -3, 0),
		NewVector3(1, 2, 3),
		NewVector3(-0.2, 0.1, 7),
	}
	for _, n := range normals {
		b, err := MakeBasis(NewVector3(1, 2, 3), n)
		require.NoError(t, err)

		assert.InDelta(t, 1.0, b.U.Length(), 1e-12)
		assert.InDelta(t, 1.0, b.V.Length(), 1e-12)
		assert.InDelta(t, 0.0, b.U.Dot(b.V), 1e-12)
		assert.InDelta(t, 0.0, b.U.Dot(b.N), 1e-12)

		uxv := b.U.Cross(b.V)
		assert.True(t, uxv.Near(b.N, 1e-12), "U x V must equal N for %v", n)
		assert.True(t, b.N.Near(n.Normalize(), 1e-12))
	}
}

func TestMakeBasisDegenerate(t *testing.T) {
	_, err := MakeBasis(NewVector3(0, 0, 0), NewVector3(0, 0, 1e-15))
	assert.True(t, errors.Is(err, ErrDegeneratePlane))
}

func TestNewBasisRejectsNormalDirection(t *testing.T) {
	_, err := NewBasis(Vector3{}, NewVector3(0, 0, 2), NewVector3(0, 0, 1))
	assert.ErrorIs(t, err, ErrDegeneratePlane)
}

func TestProjectionRoundTrip(t *testing.T) {
	b, err := MakeBasis(NewVector3(0.5, -1, 2), NewVector3(1, 1, 1))
	require.NoError(t, err)

	for _, p2 := range []Vector2{{0, 0}, {1, 0}, {-3.5, 2.25}, {1e3, -1e3}} {
		p3 := b.ToWorld3D(p2)
		assert.InDelta(t, 0.0, b.DistanceTo(p3), 1e-9)

		back := b.ToPlane2D(p3)
		assert.True(t, back.Near(p2, 1e-9), "expected %v, got %v", p2, back)
	}
}

func TestNewBasisKeepsDirection(t *testing.T) {
	b, err := NewBasis(NewVector3(0, 0, 0), NewVector3(2, 0, 0.5), NewVector3(0, 0, 1))
	require.NoError(t, err)
	assert.Equal(t, NewVector3(1, 0, 0), b.U)
	assert.Equal(t, NewVector3(0, 1, 0), b.V)
	assert.Equal(t, NewVector2(3, 4), b.ToPlane2D(NewVector3(3, 4, 9)))
}

func TestMirrorAndProject(t *testing.T) {
	b, err := MakeBasis(NewVector3(0.5, 0, 0), NewVector3(1, 0, 0))
	require.NoError(t, err)

	p := NewVector3(2, 1, -1)
	assert.True(t, b.Mirror(p).Near(NewVector3(-1, 1, -1), 1e-12))
	assert.True(t, b.Project(p).Near(NewVector3(0.5, 1, -1), 1e-12))
	assert.InDelta(t, 1.5, b.DistanceTo(p), 1e-12)
}
