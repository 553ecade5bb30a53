// Package tilebin implements the Tile Binner: trivial accept/reject of
// triangles against the fixed 64x64 tile grid, producing per-tile bins
// that the rasterizer core consumes.
package tilebin

import (
	"sort"

	"github.com/swraster/salvia/internal/geomsetup"
)

// TileSize is fixed at 64 pixels, per the data model.
const TileSize = 64

// Tile identifies one tile of the framebuffer by its grid coordinates.
type Tile struct {
	TX, TY int
}

// Entry is one triangle's binning result for a tile: whether the tile
// is fully covered (Accepted) or only partially (needs the hierarchical
// traversal in the rasterizer core).
type Entry struct {
	PrimitiveID int
	Accepted    bool
}

// Bin collects the entries binned to one tile.
type Bin struct {
	Tile    Tile
	Entries []Entry
}

// Grid partitions a width x height framebuffer into 64x64 tiles.
type Grid struct {
	Width, Height int
	TilesX, TilesY int
}

// NewGrid builds a Grid covering width x height pixels.
func NewGrid(width, height int) Grid {
	return Grid{
		Width:  width,
		Height: height,
		TilesX: (width + TileSize - 1) / TileSize,
		TilesY: (height + TileSize - 1) / TileSize,
	}
}

// edgeStep holds the precomputed stepping terms for one edge, matching
// spec.md's step_x/step_y/rej_to_acc formulas.
type edgeStep struct {
	stepX, stepY float32
	rejToAcc     float32
	// markX, markY select which tile corner is the "trivial accept"
	// corner for this edge, based on the edge's coefficient signs.
	markX, markY float32
}

func newEdgeStep(e geomsetup.EdgeFactor) edgeStep {
	sx := float32(TileSize) * e.A
	sy := float32(TileSize) * e.B
	abs := func(f float32) float32 {
		if f < 0 {
			return -f
		}
		return f
	}
	s := edgeStep{stepX: sx, stepY: sy, rejToAcc: -abs(sx) - abs(sy)}
	if e.A >= 0 {
		s.markX = 1
	}
	if e.B >= 0 {
		s.markY = 1
	}
	return s
}

// evalue implements spec.md's evalue(tx, ty) formula for the trivial
// reject/accept corner of a tile at grid position (tx, ty).
// geomsetup.EdgeFactor.C is the negation of the original's edge.z
// (EdgeFactor.C is built as a.X*b.Y - b.X*a.Y, the opposite cross
// product order), so it is negated here to recover edge.z.
func (s edgeStep) evalue(e geomsetup.EdgeFactor, tx, ty int) float32 {
	cornerX := float32(tx) + s.markX
	cornerY := float32(ty) + s.markY
	return -e.C - (cornerX*s.stepX + cornerY*s.stepY)
}

// classify returns trivial-reject (-1), partial (0), or trivial-accept
// (1) for a tile against one edge, given the edge's corner evaluation
// and its rejection-to-acceptance span.
func classify(corner, rejToAcc float32) int {
	if corner > 0 {
		return -1
	}
	if rejToAcc >= corner {
		return 1
	}
	return 0
}

// BinTriangle classifies info's bounding tile range against the grid,
// appending an Entry to each tile bin the triangle overlaps. bins is
// indexed by ty*grid.TilesX+tx and must already hold
// grid.TilesX*grid.TilesY bins.
func BinTriangle(grid Grid, info geomsetup.TriangleInfo, primitiveID int, bins []Bin) {
	minX := min3f(info.V0.X, info.V1.X, info.V2.X)
	maxX := max3f(info.V0.X, info.V1.X, info.V2.X)
	minY := min3f(info.V0.Y, info.V1.Y, info.V2.Y)
	maxY := max3f(info.V0.Y, info.V1.Y, info.V2.Y)

	tx0 := clampInt(int(minX)/TileSize, 0, grid.TilesX-1)
	tx1 := clampInt(int(maxX)/TileSize, 0, grid.TilesX-1)
	ty0 := clampInt(int(minY)/TileSize, 0, grid.TilesY-1)
	ty1 := clampInt(int(maxY)/TileSize, 0, grid.TilesY-1)

	steps := [3]edgeStep{
		newEdgeStep(info.Edges[0]),
		newEdgeStep(info.Edges[1]),
		newEdgeStep(info.Edges[2]),
	}

	for ty := ty0; ty <= ty1; ty++ {
		for tx := tx0; tx <= tx1; tx++ {
			allAccept := true
			anyReject := false
			for i, e := range info.Edges {
				corner := steps[i].evalue(e, tx, ty)
				switch classify(corner, steps[i].rejToAcc) {
				case -1:
					anyReject = true
				case 0:
					allAccept = false
				}
			}
			if anyReject {
				continue
			}
			idx := ty*grid.TilesX + tx
			bins[idx].Tile = Tile{TX: tx, TY: ty}
			bins[idx].Entries = append(bins[idx].Entries, Entry{PrimitiveID: primitiveID, Accepted: allAccept})
		}
	}
}

// Merge combines per-worker bin slices (one []Bin per worker, same
// shape) into a single set of bins, sorting each tile's entries by
// primitive ID so rasterization order matches submission order
// regardless of which worker binned which primitive first.
func Merge(grid Grid, perWorker [][]Bin) []Bin {
	merged := make([]Bin, grid.TilesX*grid.TilesY)
	for ty := 0; ty < grid.TilesY; ty++ {
		for tx := 0; tx < grid.TilesX; tx++ {
			idx := ty*grid.TilesX + tx
			merged[idx].Tile = Tile{TX: tx, TY: ty}
			for _, w := range perWorker {
				if idx < len(w) {
					merged[idx].Entries = append(merged[idx].Entries, w[idx].Entries...)
				}
			}
			sort.Slice(merged[idx].Entries, func(i, j int) bool {
				return merged[idx].Entries[i].PrimitiveID < merged[idx].Entries[j].PrimitiveID
			})
		}
	}
	return merged
}

func min3f(a, b, c float32) float32 {
	if b < a {
		a = b
	}
	if c < a {
		a = c
	}
	return a
}

func max3f(a, b, c float32) float32 {
	if b > a {
		a = b
	}
	if c > a {
		a = c
	}
	return a
}

func clampInt(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
