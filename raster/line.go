package raster

import "github.com/swraster/salvia/internal/geomsetup"

// LinePixel is one pixel produced by line rasterization, carrying
// perspective-correct interpolated depth and attributes.
type LinePixel struct {
	X, Y           int
	Depth          float32
	Attributes     [16]float32
	AttributeCount int
}

// LineCallback receives each pixel of a rasterized line.
type LineCallback func(LinePixel)

// RasterizeLine draws a single-sample, single-pixel-wide line between
// two screen-space vertices with a Bresenham/DDA walk. The original
// implementation this core descends from left line rasterization an
// unimplemented stub (EFLIB_ASSERT_UNIMPLEMENTED); spec.md allows but
// does not require it, so this is a minimal implementation scoped to
// one sample and no antialiasing.
func RasterizeLine(v0, v1 geomsetup.ScreenVertex, clip ClipRect, cb LineCallback) {
	x0, y0 := int(v0.X), int(v0.Y)
	x1, y1 := int(v1.X), int(v1.Y)

	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy

	steps := dx
	if -dy > steps {
		steps = -dy
	}
	if steps == 0 {
		steps = 1
	}

	x, y := x0, y0
	for step := 0; ; step++ {
		if clip.contains(x, y) {
			t := float32(step) / float32(steps)
			cb(interpolateLine(v0, v1, t, x, y))
		}
		if x == x1 && y == y1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			if x == x1 {
				break
			}
			err += dy
			x += sx
		}
		if e2 <= dx {
			if y == y1 {
				break
			}
			err += dx
			y += sy
		}
	}
}

func interpolateLine(v0, v1 geomsetup.ScreenVertex, t float32, x, y int) LinePixel {
	w0 := v0.W + (v1.W-v0.W)*t
	p := LinePixel{X: x, Y: y, AttributeCount: v0.AttributeCount}
	if w0 != 0 {
		p.Depth = (v0.Z*v0.W + (v1.Z*v1.W-v0.Z*v0.W)*t) / w0
		for i := 0; i < v0.AttributeCount; i++ {
			a0 := v0.Attributes[i]
			a1 := v1.Attributes[i]
			p.Attributes[i] = (a0 + (a1-a0)*t) / w0
		}
	} else {
		p.Depth = v0.Z + (v1.Z-v0.Z)*t
	}
	return p
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
