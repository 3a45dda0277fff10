package viewer

import (
	"image"
	"image/color"
	"math"
)

// canvas is an RGBA image with a depth buffer
type canvas struct {
	img   *image.RGBA
	depth []float64
}

func newCanvas(width, height int, background color.RGBA) *canvas {
	c := &canvas{
		img:   image.NewRGBA(image.Rect(0, 0, width, height)),
		depth: make([]float64, width*height),
	}
	for i := range c.depth {
		c.depth[i] = math.Inf(1)
	}
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			c.img.SetRGBA(x, y, background)
		}
	}
	return c
}

// plot sets a pixel when z is not behind what is already there
func (c *canvas) plot(x, y int, z float64, col color.RGBA) {
	b := c.img.Bounds()
	if x < 0 || y < 0 || x >= b.Max.X || y >= b.Max.Y {
		return
	}
	idx := y*b.Max.X + x
	if z <= c.depth[idx] {
		c.depth[idx] = z
		c.img.SetRGBA(x, y, col)
	}
}

// fillTriangle rasterizes a screen-space triangle with depth testing
func (c *canvas) fillTriangle(p [3][3]float64, col color.RGBA) {
	b := c.img.Bounds()
	minX := int(math.Max(0, math.Floor(math.Min(p[0][0], math.Min(p[1][0], p[2][0])))))
	maxX := int(math.Min(float64(b.Max.X-1), math.Ceil(math.Max(p[0][0], math.Max(p[1][0], p[2][0])))))
	minY := int(math.Max(0, math.Floor(math.Min(p[0][1], math.Min(p[1][1], p[2][1])))))
	maxY := int(math.Min(float64(b.Max.Y-1), math.Ceil(math.Max(p[0][1], math.Max(p[1][1], p[2][1])))))

	area := edge(p[0], p[1], p[2][0], p[2][1])
	if area == 0 {
		return
	}
	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			px, py := float64(x)+0.5, float64(y)+0.5
			w0 := edge(p[1], p[2], px, py) / area
			w1 := edge(p[2], p[0], px, py) / area
			w2 := edge(p[0], p[1], px, py) / area
			if w0 < 0 || w1 < 0 || w2 < 0 {
				continue
			}
			c.plot(x, y, w0*p[0][2]+w1*p[1][2]+w2*p[2][2], col)
		}
	}
}

func edge(a, b [3]float64, x, y float64) float64 {
	return (b[0]-a[0])*(y-a[1]) - (b[1]-a[1])*(x-a[0])
}

// drawLine draws a depth-tested line using Bresenham's algorithm. bias
// pulls the line towards the camera so it wins against its own facet.
func (c *canvas) drawLine(a, b [3]float64, bias float64, col color.RGBA) {
	x1, y1 := int(math.Round(a[0])), int(math.Round(a[1]))
	x2, y2 := int(math.Round(b[0])), int(math.Round(b[1]))

	dx := abs(x2 - x1)
	dy := abs(y2 - y1)
	sx, sy := 1, 1
	if x1 > x2 {
		sx = -1
	}
	if y1 > y2 {
		sy = -1
	}
	steps := max(dx, dy)
	err := dx - dy

	for i := 0; ; i++ {
		t := 0.0
		if steps > 0 {
			t = float64(i) / float64(steps)
		}
		c.plot(x1, y1, a[2]+t*(b[2]-a[2])-bias, col)

		if x1 == x2 && y1 == y2 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x1 += sx
		}
		if e2 < dx {
			err += dx
			y1 += sy
		}
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
