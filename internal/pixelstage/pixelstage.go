// Package pixelstage implements the Pixel Back-end: per-quad early-Z,
// shader invocation, and late depth/stencil test + blend, grounded on
// the original's draw_full_quad/draw_quad.
package pixelstage

import (
	"github.com/swraster/salvia/internal/dsstate"
	"github.com/swraster/salvia/internal/framebuffer"
	"github.com/swraster/salvia/internal/geomsetup"
	"github.com/swraster/salvia/raster"
	"github.com/swraster/salvia/shader"
)

// State bundles the per-draw pipeline configuration the pixel stage
// needs: the active shader, its uniforms, the depth-stencil and blend
// state, and which face (front/back) is being drawn.
type State struct {
	Program      *shader.Program
	Uniforms     any
	DepthStencil dsstate.State
	Blend        framebuffer.BlendState
	FrontFacing  bool
	SampleCount  int
}

func (s State) face() dsstate.Face {
	if s.FrontFacing {
		return s.DepthStencil.Front
	}
	return s.DepthStencil.Back
}

// ProcessQuad runs one quad through early-Z (when eligible), the pixel
// shader, and late test + blend, writing surviving samples to fb. The
// pixel shader runs once per quad over all four lanes, uncovered ones
// included, so ddx/ddy finite differences are available; partially
// covered lanes of a HasCentroid program take their attributes at the
// mean of their covered sample positions; depth test, stencil op,
// and color write happen once per covered sample, per spec.md §3
// Invariant 7, using per-sample Z offsets from the active sample
// pattern.
func ProcessQuad(quad raster.Quad, info geomsetup.TriangleInfo, state State, scratch *shader.Scratch, fb *framebuffer.Buffer) {
	sampleCount := state.SampleCount
	pattern := raster.SamplePattern(sampleCount)
	if pattern == nil {
		pattern = raster.SamplePattern(1)
		sampleCount = 1
	}

	earlyZ := framebuffer.EarlyZEligible(state.DepthStencil.StencilEnabled, state.Program.OutputsDepth)

	mask := quad.Mask
	var centerDepth [4]float32
	var interp [4]raster.Interpolated
	var sampleDepth [4][raster.MaxSampleCount]float32

	for lane := 0; lane < 4; lane++ {
		lx, ly := quad.X+lane%2, quad.Y+lane/2
		px, py := float32(lx)+0.5, float32(ly)+0.5
		// Uncovered lanes are interpolated too, so the shader sees real
		// neighbour values for ddx/ddy finite differences.
		interp[lane] = raster.Interpolate(info, px, py)
		centerDepth[lane] = interp[lane].Depth
		if !mask.LaneCovered(lane) {
			continue
		}
		if state.Program.HasCentroid {
			var cx, cy float32
			n := 0
			for s, off := range pattern {
				if mask.Test(lane, s) {
					dx, dy := raster.SampleOffset(off)
					cx, cy, n = cx+dx, cy+dy, n+1
				}
			}
			if n > 0 && n < len(pattern) {
				interp[lane].Attributes = raster.Interpolate(info, float32(lx)+cx/float32(n), float32(ly)+cy/float32(n)).Attributes
			}
		}
		for s, off := range pattern {
			if !mask.Test(lane, s) {
				continue
			}
			dx, dy := raster.SampleOffset(off)
			sampleDepth[lane][s] = raster.Interpolate(info, float32(lx)+dx, float32(ly)+dy).Depth
		}
	}

	if earlyZ {
		for lane := 0; lane < 4; lane++ {
			if !mask.LaneCovered(lane) {
				continue
			}
			lx, ly := quad.X+lane%2, quad.Y+lane/2
			for s := 0; s < sampleCount; s++ {
				if !mask.Test(lane, s) {
					continue
				}
				if !framebuffer.RunDepthStencilTest(fb, state.DepthStencil, state.face(), lx, ly, s, sampleDepth[lane][s]) {
					mask.Clear(lane, s)
				}
			}
		}
		if !mask.Any() {
			return
		}
	}

	qin := shader.QuadInput{X: quad.X, Y: quad.Y, AttributeCount: info.AttributeCount}
	for lane := 0; lane < 4; lane++ {
		qin.Mask[lane] = mask.LaneCovered(lane)
		qin.Depth[lane] = centerDepth[lane]
		for a := 0; a < info.AttributeCount; a++ {
			qin.Attributes[a][lane] = interp[lane].Attributes[a]
		}
	}

	outputs := state.Program.Pixel(qin, state.Uniforms)

	for lane := 0; lane < 4; lane++ {
		if !mask.LaneCovered(lane) {
			continue
		}
		out := outputs[lane]
		if out.Discard {
			continue
		}

		lx, ly := quad.X+lane%2, quad.Y+lane/2

		for s := 0; s < sampleCount; s++ {
			if !mask.Test(lane, s) {
				continue
			}
			depth := sampleDepth[lane][s]
			if out.WroteDepth {
				depth = out.Depth
			}

			if !earlyZ {
				if !framebuffer.RunDepthStencilTest(fb, state.DepthStencil, state.face(), lx, ly, s, depth) {
					continue
				}
			}

			dst := fb.GetColor(lx, ly, s)
			fb.SetColor(lx, ly, s, framebuffer.Blend(state.Blend, out.Color, dst))
		}
	}
}

// ProcessLinePixel runs one line pixel through depth/stencil test, the
// pixel shader, and blend. Lines are always single-sample and carry no
// quad neighbors, so only lane 0 of the shader's QuadInput is populated.
func ProcessLinePixel(px raster.LinePixel, state State, fb *framebuffer.Buffer) {
	qin := shader.QuadInput{X: px.X, Y: px.Y, AttributeCount: px.AttributeCount}
	qin.Mask[0] = true
	qin.Depth[0] = px.Depth
	for a := 0; a < px.AttributeCount; a++ {
		qin.Attributes[a][0] = px.Attributes[a]
	}

	earlyZ := framebuffer.EarlyZEligible(state.DepthStencil.StencilEnabled, state.Program.OutputsDepth)
	if earlyZ {
		if !framebuffer.RunDepthStencilTest(fb, state.DepthStencil, state.face(), px.X, px.Y, 0, px.Depth) {
			return
		}
	}

	out := state.Program.Pixel(qin, state.Uniforms)[0]
	if out.Discard {
		return
	}
	depth := px.Depth
	if out.WroteDepth {
		depth = out.Depth
	}

	if !earlyZ {
		if !framebuffer.RunDepthStencilTest(fb, state.DepthStencil, state.face(), px.X, px.Y, 0, depth) {
			return
		}
	}

	dst := fb.GetColor(px.X, px.Y, 0)
	fb.SetColor(px.X, px.Y, 0, framebuffer.Blend(state.Blend, out.Color, dst))
}
