package raster

import (
	"github.com/swraster/salvia/internal/geomsetup"
)

// Quad is one 2x2 pixel quad produced by the hierarchical traversal,
// along with its per-sample coverage mask.
type Quad struct {
	X, Y int // screen coordinates of the quad's top-left pixel
	Mask SampleMask
}

// QuadCallback receives each covered quad.
type QuadCallback func(Quad)

// ClipRect bounds rasterization to the active viewport/scissor.
type ClipRect struct {
	MinX, MinY, MaxX, MaxY int // MaxX/MaxY exclusive
}

func (r ClipRect) contains(x, y int) bool {
	return x >= r.MinX && x < r.MaxX && y >= r.MinY && y < r.MaxY
}

// fullSampleMask returns the mask with every sample of every lane set,
// for sampleCount active samples.
func fullSampleMask(sampleCount int) SampleMask {
	var m SampleMask
	for lane := 0; lane < 4; lane++ {
		for s := 0; s < sampleCount; s++ {
			m.Set(lane, s)
		}
	}
	return m
}

// edgeLevel identifies which corner of a square region is the trivial
// accept/reject corner for one edge, based on the edge's coefficient
// signs — the same selection tilebin.newEdgeStep makes, generalized to
// any recursion level's region size.
type edgeLevel struct {
	markX, markY float32
}

func newEdgeLevel(e geomsetup.EdgeFactor) edgeLevel {
	var l edgeLevel
	if e.A >= 0 {
		l.markX = 1
	}
	if e.B >= 0 {
		l.markY = 1
	}
	return l
}

// RasterizeTile runs the hierarchical traversal over one 64x64 tile
// (tilebin.TileSize), dispatching covered quads to cb. accepted
// indicates the tile binner's trivial-accept result: true skips further
// edge testing and treats the whole tile as covered (TVT_FULL); false
// drives the recursive subdivision down to pixel-quad granularity.
func RasterizeTile(info geomsetup.TriangleInfo, tileX, tileY, tileSize, sampleCount int, clip ClipRect, accepted bool, cb QuadCallback) {
	if accepted {
		rasterizeFullTile(tileX, tileY, tileSize, sampleCount, clip, cb)
		return
	}
	subdivide(info, tileX, tileY, tileSize, sampleCount, clip, cb)
}

func rasterizeFullTile(tileX, tileY, tileSize, sampleCount int, clip ClipRect, cb QuadCallback) {
	full := fullSampleMask(sampleCount)
	for y := tileY; y < tileY+tileSize; y += 2 {
		for x := tileX; x < tileX+tileSize; x += 2 {
			emitQuad(x, y, full, sampleCount, clip, cb)
		}
	}
}

// emitQuad clips a quad's mask to the active ClipRect (a tile can
// extend past the framebuffer edge) before invoking cb.
func emitQuad(x, y int, mask SampleMask, sampleCount int, clip ClipRect, cb QuadCallback) {
	if mask == 0 {
		return
	}
	var clipped SampleMask
	for ly := 0; ly < 2; ly++ {
		for lx := 0; lx < 2; lx++ {
			lane := ly*2 + lx
			if !clip.contains(x+lx, y+ly) {
				continue
			}
			for s := 0; s < sampleCount; s++ {
				if mask.Test(lane, s) {
					clipped.Set(lane, s)
				}
			}
		}
	}
	if clipped != 0 {
		cb(Quad{X: x, Y: y, Mask: clipped})
	}
}

// classifyRegion evaluates the 3 edges at a square region's trivial
// reject/accept corner, returning -1 (fully outside), 0 (straddles),
// or 1 (fully inside).
func classifyRegion(info geomsetup.TriangleInfo, x, y, size float32) int {
	allAccept := true
	for _, e := range info.Edges {
		level := newEdgeLevel(e)
		cornerX, cornerY := x, y
		if level.markX != 0 {
			cornerX += size
		}
		if level.markY != 0 {
			cornerY += size
		}
		corner := e.Evaluate(cornerX, cornerY)
		if corner < 0 {
			return -1
		}
		oppX, oppY := x, y
		if level.markX == 0 {
			oppX += size
		}
		if level.markY == 0 {
			oppY += size
		}
		if e.Evaluate(oppX, oppY) < 0 {
			allAccept = false
		}
	}
	if allAccept {
		return 1
	}
	return 0
}

// subdivide recursively splits a tile-sized region into 4 children,
// matching rasterizer.cpp's subdivide_tile, until regions reach
// pixel-quad granularity (size == 2) or are found fully in/out at a
// coarser level.
func subdivide(info geomsetup.TriangleInfo, x, y, size, sampleCount int, clip ClipRect, cb QuadCallback) {
	state := classifyRegion(info, float32(x), float32(y), float32(size))
	if state == -1 {
		return // TVT_EMPTY
	}
	if state == 1 {
		rasterizeFullRegion(x, y, size, sampleCount, clip, cb)
		return // TVT_FULL
	}
	if size == 2 {
		rasterizePixelQuad(info, x, y, sampleCount, clip, cb)
		return // TVT_PIXEL
	}
	half := size / 2
	subdivide(info, x, y, half, sampleCount, clip, cb)
	subdivide(info, x+half, y, half, sampleCount, clip, cb)
	subdivide(info, x, y+half, half, sampleCount, clip, cb)
	subdivide(info, x+half, y+half, half, sampleCount, clip, cb)
}

func rasterizeFullRegion(x, y, size, sampleCount int, clip ClipRect, cb QuadCallback) {
	full := fullSampleMask(sampleCount)
	for qy := y; qy < y+size; qy += 2 {
		for qx := x; qx < x+size; qx += 2 {
			emitQuad(qx, qy, full, sampleCount, clip, cb)
		}
	}
}

// rasterizePixelQuad evaluates per-sample coverage for the 4 lanes of a
// single 2x2 quad, the TVT_PIXEL terminal state of the hierarchical
// traversal.
func rasterizePixelQuad(info geomsetup.TriangleInfo, x, y, sampleCount int, clip ClipRect, cb QuadCallback) {
	pattern := SamplePattern(sampleCount)
	if pattern == nil {
		pattern = SamplePattern(1)
		sampleCount = 1
	}
	var mask SampleMask
	for ly := 0; ly < 2; ly++ {
		for lx := 0; lx < 2; lx++ {
			lane := ly*2 + lx
			px, py := float32(x+lx), float32(y+ly)
			for s, off := range pattern {
				dx, dy := SampleOffset(off)
				sx, sy := px+dx, py+dy
				if sampleCovered(info, sx, sy) {
					mask.Set(lane, s)
				}
			}
		}
	}
	emitQuad(x, y, mask, sampleCount, clip, cb)
}

// sampleCovered applies the edge-function top-left fill rule at one
// sample position.
func sampleCovered(info geomsetup.TriangleInfo, x, y float32) bool {
	for _, e := range info.Edges {
		v := e.Evaluate(x, y)
		if v < 0 {
			return false
		}
		if v == 0 && !isTopLeft(e) {
			return false
		}
	}
	return true
}

// isTopLeft implements the standard top-left fill rule for triangles
// whose inside is the non-negative side of every edge: an edge is "top"
// when horizontal and pointing right (B > 0, A == 0), so the inside lies
// below it, or "left" when it points upward in screen space (A > 0).
func isTopLeft(e geomsetup.EdgeFactor) bool {
	if e.A > 0 {
		return true
	}
	return e.A == 0 && e.B > 0
}
