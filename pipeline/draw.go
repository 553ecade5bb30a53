package pipeline

import (
	"fmt"

	"github.com/swraster/salvia/internal/framebuffer"
	"github.com/swraster/salvia/internal/geomsetup"
	"github.com/swraster/salvia/internal/indexfetch"
	"github.com/swraster/salvia/internal/pixelstage"
	"github.com/swraster/salvia/internal/tilebin"
	"github.com/swraster/salvia/internal/vertexcache"
	"github.com/swraster/salvia/internal/vsoutput"
	"github.com/swraster/salvia/internal/workerpool"
	"github.com/swraster/salvia/raster"
	"github.com/swraster/salvia/shader"
)

// DrawCommand is one non-indexed or indexed draw call.
type DrawCommand struct {
	State    RenderState
	Vertices VertexSource
	Indices  indexfetch.IndexSource // nil for non-indexed draws
	Count    int                    // index count, or vertex count if Indices is nil
}

// Draw runs the full pipeline for one draw call against target,
// sequentially: index fetch -> vertex cache -> geometry setup -> tile
// binning -> rasterizer core -> pixel back-end. Tile-level work is
// fanned out across pool.
func Draw(cmd DrawCommand, target *framebuffer.Buffer, pool *workerpool.Pool) error {
	if cmd.State.Program == nil {
		return fmt.Errorf("pipeline: draw with nil shader program: %w", ErrInvalidParameter)
	}
	if cmd.State.SampleCount != 1 && cmd.State.SampleCount != 2 && cmd.State.SampleCount != 4 {
		return fmt.Errorf("pipeline: sample count %d: %w", cmd.State.SampleCount, ErrUnsupportedState)
	}

	infos, lines, err := setupGeometry(cmd)
	if err != nil {
		return err
	}

	clip := raster.ClipRect{MinX: 0, MinY: 0, MaxX: target.Width(), MaxY: target.Height()}
	scratch := cmd.State.Program.NewScratch()

	if len(infos) > 0 {
		grid := tilebin.NewGrid(target.Width(), target.Height())
		bins := make([]tilebin.Bin, grid.TilesX*grid.TilesY)
		for i, info := range infos {
			tilebin.BinTriangle(grid, info, i, bins)
		}

		pool.RunStage(len(bins), 1, func(start, end int) {
			for bi := start; bi < end; bi++ {
				bin := bins[bi]
				for _, e := range bin.Entries {
					info := infos[e.PrimitiveID]
					ps := pixelState(cmd.State)
					ps.FrontFacing = info.FrontFacing
					tileX := bin.Tile.TX * tilebin.TileSize
					tileY := bin.Tile.TY * tilebin.TileSize
					raster.RasterizeTile(info, tileX, tileY, tilebin.TileSize, cmd.State.SampleCount, clip, e.Accepted, func(q raster.Quad) {
						pixelstage.ProcessQuad(q, info, ps, scratch, target)
					})
				}
			}
		})
	}

	if len(lines) > 0 {
		ps := pixelState(cmd.State)
		ps.FrontFacing = true
		pool.RunStage(len(lines), 1, func(start, end int) {
			for i := start; i < end; i++ {
				ln := lines[i]
				raster.RasterizeLine(ln.V0, ln.V1, clip, func(px raster.LinePixel) {
					pixelstage.ProcessLinePixel(px, ps, target)
				})
			}
		})
	}

	return nil
}

// lineSegment is a pair of screen-space vertices produced by geometry
// setup for a line primitive, held back from rasterization until tile
// binning for triangles has run.
type lineSegment struct {
	V0, V1 geomsetup.ScreenVertex
}

// pixelState builds the per-draw portion of pixelstage.State. FrontFacing
// is left at its zero value here; callers must set it per-triangle from
// geomsetup.TriangleInfo.FrontFacing before use.
func pixelState(rs RenderState) pixelstage.State {
	return pixelstage.State{
		Program:      rs.Program,
		Uniforms:     rs.Uniforms,
		DepthStencil: rs.DepthStencil,
		Blend:        rs.Blend,
		SampleCount:  rs.SampleCount,
	}
}

// setupGeometry runs index fetch, the vertex cache, clip, cull, and
// viewport transform for every primitive in the draw. Triangle
// primitives produce fully computed triangle info ready for binning;
// line primitives bypass clipping, culling, and binning entirely and
// are returned as projected segments for direct rasterization.
func setupGeometry(cmd DrawCommand) ([]geomsetup.TriangleInfo, []lineSegment, error) {
	fetcher := indexfetch.New(cmd.Indices, cmd.State.Topology, cmd.Count)
	cache := vertexcache.New(vertexcache.DefaultSize)
	pool := vsoutput.NewPool(cmd.Count)

	shaded := func(index uint32) *shader.VSOutput {
		if h, ok := cache.Lookup(index); ok {
			return pool.Get(h)
		}
		in := cmd.Vertices.Fetch(index)
		out := cmd.State.Program.Vertex(in, cmd.State.Uniforms)
		h := pool.Alloc(out)
		cache.Insert(index, h)
		return pool.Get(h)
	}

	var infos []geomsetup.TriangleInfo
	var lines []lineSegment
	for {
		prim, ok := fetcher.Next()
		if !ok {
			break
		}
		if prim.IsLine {
			v0 := *shaded(prim.I0)
			v1 := *shaded(prim.I1)
			s0 := geomsetup.Project(&v0, cmd.State.Viewport)
			s1 := geomsetup.Project(&v1, cmd.State.Viewport)
			lines = append(lines, lineSegment{V0: s0, V1: s1})
			continue
		}
		v0 := *shaded(prim.I0)
		v1 := *shaded(prim.I1)
		v2 := *shaded(prim.I2)

		poly := geomsetup.ClipPolygon(v0, v1, v2)
		for _, tri := range geomsetup.Triangulate(poly) {
			s0 := geomsetup.Project(&tri[0], cmd.State.Viewport)
			s1 := geomsetup.Project(&tri[1], cmd.State.Viewport)
			s2 := geomsetup.Project(&tri[2], cmd.State.Viewport)

			area := geomsetup.SignedArea2D(s0.X, s0.Y, s1.X, s1.Y, s2.X, s2.Y)
			if geomsetup.ShouldCull(area, cmd.State.CullMode, cmd.State.FrontFace) {
				continue
			}
			// The binner and rasterizer count the non-negative side of
			// every edge as inside, which holds for positive area, so a
			// negative-area triangle is handed over with two vertices
			// swapped. FrontFacing below still uses the original area.
			if area < 0 {
				s1, s2 = s2, s1
			}
			info := geomsetup.Compute(s0, s1, s2)
			info.FrontFacing = !geomsetup.IsBackFacing(area, cmd.State.FrontFace)
			infos = append(infos, info)
		}
	}
	return infos, lines, nil
}
