package viewer

import (
	"math"

	"github.com/philipparndt/gofacet/pkg/geometry"
)

// Camera orbits a target point
type Camera struct {
	Target    geometry.Vector3
	Up        geometry.Vector3
	FOV       float64 // Field of view in radians
	Distance  float64
	RotationX float64 // Pitch, rotation around the horizontal axis
	RotationY float64 // Yaw, rotation around the vertical axis
}

// NewCamera creates a camera looking down -Z at the center of bbox
func NewCamera(bbox geometry.BoundingBox) *Camera {
	size := bbox.Size()
	distance := math.Max(size.X, math.Max(size.Y, size.Z)) * 2.0
	if distance == 0 {
		distance = 1
	}
	return &Camera{
		Target:   bbox.Center(),
		Up:       geometry.NewVector3(0, 1, 0),
		FOV:      math.Pi / 4,
		Distance: distance,
	}
}

// Position returns the eye position from the orbit angles
func (c *Camera) Position() geometry.Vector3 {
	x := c.Distance * math.Cos(c.RotationX) * math.Sin(c.RotationY)
	y := c.Distance * math.Sin(c.RotationX)
	z := c.Distance * math.Cos(c.RotationX) * math.Cos(c.RotationY)
	return c.Target.Add(geometry.NewVector3(x, y, z))
}

// Rotate turns the camera by the given angles. Pitch is clamped short
// of the poles.
func (c *Camera) Rotate(deltaX, deltaY float64) {
	c.RotationX += deltaX
	c.RotationY += deltaY

	maxAngle := math.Pi/2 - 0.1
	c.RotationX = math.Max(-maxAngle, math.Min(maxAngle, c.RotationX))
}

// Zoom scales the camera distance; positive factors move away
func (c *Camera) Zoom(delta float64) {
	c.Distance *= 1.0 + delta
	if c.Distance < 0.1 {
		c.Distance = 0.1
	}
}

// Forward is the unit viewing direction
func (c *Camera) Forward() geometry.Vector3 {
	return c.Target.Sub(c.Position()).Normalize()
}

// Project maps a point to screen coordinates and its depth along the
// viewing direction
func (c *Camera) Project(point geometry.Vector3, width, height float64) (float64, float64, float64) {
	eye := c.Position()
	forward := c.Target.Sub(eye).Normalize()
	right := forward.Cross(c.Up).Normalize()
	up := right.Cross(forward).Normalize()

	relative := point.Sub(eye)
	x := relative.Dot(right)
	y := relative.Dot(up)
	z := relative.Dot(forward)
	if z <= 0.01 {
		z = 0.01
	}

	aspect := width / height
	fovScale := math.Tan(c.FOV / 2)

	screenX := (x/(z*fovScale*aspect))*(width/2) + width/2
	screenY := (-y/(z*fovScale))*(height/2) + height/2
	return screenX, screenY, z
}
