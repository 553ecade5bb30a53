package pixelstage

import (
	"testing"

	"github.com/swraster/salvia/internal/dsstate"
	"github.com/swraster/salvia/internal/framebuffer"
	"github.com/swraster/salvia/internal/geomsetup"
	"github.com/swraster/salvia/raster"
	"github.com/swraster/salvia/shader"
)

func solidTriangle() geomsetup.TriangleInfo {
	v := func(x, y float32) geomsetup.ScreenVertex {
		return geomsetup.ScreenVertex{X: x, Y: y, Z: 0.5, W: 1}
	}
	return geomsetup.Compute(v(0, 0), v(64, 0), v(0, 64))
}

func constColorProgram(color [4]float32) *shader.Program {
	return &shader.Program{
		Pixel: func(in shader.QuadInput, uniforms any) [4]shader.PSOutput {
			var out [4]shader.PSOutput
			for lane := 0; lane < 4; lane++ {
				out[lane] = shader.PSOutput{Color: color}
			}
			return out
		},
	}
}

func fullMask() raster.SampleMask {
	var m raster.SampleMask
	for lane := 0; lane < 4; lane++ {
		m.Set(lane, 0)
	}
	return m
}

// fullMaskSamples marks every one of sampleCount samples covered for
// every lane, matching what rasterizeFullRegion emits for a region the
// hierarchical traversal already found trivially accepted.
func fullMaskSamples(sampleCount int) raster.SampleMask {
	var m raster.SampleMask
	for lane := 0; lane < 4; lane++ {
		for s := 0; s < sampleCount; s++ {
			m.Set(lane, s)
		}
	}
	return m
}

func TestProcessQuadWritesColorOnPass(t *testing.T) {
	fb := framebuffer.NewBuffer(4, 4)
	info := solidTriangle()
	prog := constColorProgram([4]float32{1, 0, 0, 1})
	state := State{
		Program:      prog,
		DepthStencil: dsstate.Default(),
		Blend:        framebuffer.BlendDisabled,
		FrontFacing:  true,
		SampleCount:  1,
	}
	scratch := prog.NewScratch()

	quad := raster.Quad{X: 0, Y: 0, Mask: fullMask()}
	ProcessQuad(quad, info, state, scratch, fb)

	for lane := 0; lane < 4; lane++ {
		lx, ly := lane%2, lane/2
		if got := fb.GetColor(lx, ly, 0); got != ([4]float32{1, 0, 0, 1}) {
			t.Errorf("pixel (%d,%d) = %v, want opaque red", lx, ly, got)
		}
	}
}

func TestProcessQuadDepthFailureLeavesColorUntouched(t *testing.T) {
	fb := framebuffer.NewBuffer(4, 4)
	fb.ClearDepthStencil(0, 0) // existing depth 0, closer than anything drawn
	info := solidTriangle()
	prog := constColorProgram([4]float32{1, 1, 1, 1})
	state := State{
		Program:      prog,
		DepthStencil: dsstate.Default(), // CompareLess: 0.5 < 0 is false
		Blend:        framebuffer.BlendDisabled,
		FrontFacing:  true,
		SampleCount:  1,
	}
	scratch := prog.NewScratch()

	quad := raster.Quad{X: 0, Y: 0, Mask: fullMask()}
	ProcessQuad(quad, info, state, scratch, fb)

	for lane := 0; lane < 4; lane++ {
		lx, ly := lane%2, lane/2
		if got := fb.GetColor(lx, ly, 0); got != ([4]float32{}) {
			t.Errorf("pixel (%d,%d) = %v, want untouched zero color after depth fail", lx, ly, got)
		}
	}
}

func TestProcessQuadDiscardSkipsWrite(t *testing.T) {
	fb := framebuffer.NewBuffer(4, 4)
	info := solidTriangle()
	prog := &shader.Program{
		Pixel: func(in shader.QuadInput, uniforms any) [4]shader.PSOutput {
			var out [4]shader.PSOutput
			for lane := 0; lane < 4; lane++ {
				out[lane] = shader.PSOutput{Discard: true}
			}
			return out
		},
	}
	state := State{
		Program:      prog,
		DepthStencil: dsstate.Default(),
		Blend:        framebuffer.BlendDisabled,
		FrontFacing:  true,
		SampleCount:  1,
	}
	scratch := prog.NewScratch()

	quad := raster.Quad{X: 0, Y: 0, Mask: fullMask()}
	ProcessQuad(quad, info, state, scratch, fb)

	for lane := 0; lane < 4; lane++ {
		lx, ly := lane%2, lane/2
		if got := fb.GetColor(lx, ly, 0); got != ([4]float32{}) {
			t.Errorf("discarded pixel (%d,%d) = %v, want untouched", lx, ly, got)
		}
	}
}

func TestProcessQuadUncoveredLanesUntouched(t *testing.T) {
	fb := framebuffer.NewBuffer(4, 4)
	info := solidTriangle()
	prog := constColorProgram([4]float32{0, 1, 0, 1})
	state := State{
		Program:      prog,
		DepthStencil: dsstate.Default(),
		Blend:        framebuffer.BlendDisabled,
		FrontFacing:  true,
		SampleCount:  1,
	}
	scratch := prog.NewScratch()

	var mask raster.SampleMask
	mask.Set(0, 0) // only lane 0 covered
	quad := raster.Quad{X: 0, Y: 0, Mask: mask}
	ProcessQuad(quad, info, state, scratch, fb)

	if got := fb.GetColor(0, 0, 0); got != ([4]float32{0, 1, 0, 1}) {
		t.Errorf("covered lane (0,0) = %v, want green", got)
	}
	if got := fb.GetColor(1, 0, 0); got != ([4]float32{}) {
		t.Errorf("uncovered lane (1,0) = %v, want untouched", got)
	}
}

// TestProcessQuadMSAAWritesEveryCoveredSample runs a 4x MSAA quad fully
// covered by the triangle and checks that color and depth are written to
// every one of the 4 samples per pixel, not just sample 0.
func TestProcessQuadMSAAWritesEveryCoveredSample(t *testing.T) {
	fb := framebuffer.NewBuffer(4, 4)
	info := solidTriangle()
	prog := constColorProgram([4]float32{1, 0, 0, 1})
	state := State{
		Program:      prog,
		DepthStencil: dsstate.Default(),
		Blend:        framebuffer.BlendDisabled,
		FrontFacing:  true,
		SampleCount:  4,
	}
	scratch := prog.NewScratch()

	quad := raster.Quad{X: 0, Y: 0, Mask: fullMaskSamples(4)}
	ProcessQuad(quad, info, state, scratch, fb)

	for lane := 0; lane < 4; lane++ {
		lx, ly := lane%2, lane/2
		for s := 0; s < 4; s++ {
			if got := fb.GetColor(lx, ly, s); got != ([4]float32{1, 0, 0, 1}) {
				t.Errorf("pixel (%d,%d) sample %d = %v, want opaque red", lx, ly, s, got)
			}
			if got := fb.GetDepthStencil(lx, ly, s).Depth; got != 0.5 {
				t.Errorf("pixel (%d,%d) sample %d depth = %v, want 0.5", lx, ly, s, got)
			}
		}
	}
}

// TestProcessQuadMSAAPartialLaneCoverageWritesOnlyCoveredSamples covers
// only 2 of lane 0's 4 samples and checks the other 2 sample slots of
// that pixel are left untouched, matching spec.md §3 Invariant 7's
// "color is written once per covered sample."
func TestProcessQuadMSAAPartialLaneCoverageWritesOnlyCoveredSamples(t *testing.T) {
	fb := framebuffer.NewBuffer(4, 4)
	info := solidTriangle()
	prog := constColorProgram([4]float32{0, 1, 0, 1})
	state := State{
		Program:      prog,
		DepthStencil: dsstate.Default(),
		Blend:        framebuffer.BlendDisabled,
		FrontFacing:  true,
		SampleCount:  4,
	}
	scratch := prog.NewScratch()

	var mask raster.SampleMask
	mask.Set(0, 0)
	mask.Set(0, 2)
	quad := raster.Quad{X: 0, Y: 0, Mask: mask}
	ProcessQuad(quad, info, state, scratch, fb)

	for s := 0; s < 4; s++ {
		got := fb.GetColor(0, 0, s)
		covered := s == 0 || s == 2
		if covered && got != ([4]float32{0, 1, 0, 1}) {
			t.Errorf("covered sample %d = %v, want green", s, got)
		}
		if !covered && got != ([4]float32{}) {
			t.Errorf("uncovered sample %d = %v, want untouched", s, got)
		}
	}
}

func TestProcessLinePixelWritesColor(t *testing.T) {
	fb := framebuffer.NewBuffer(4, 4)
	prog := constColorProgram([4]float32{0, 0, 1, 1})
	state := State{
		Program:      prog,
		DepthStencil: dsstate.Default(),
		Blend:        framebuffer.BlendDisabled,
		FrontFacing:  true,
	}

	px := raster.LinePixel{X: 2, Y: 1, Depth: 0.3}
	ProcessLinePixel(px, state, fb)

	if got := fb.GetColor(2, 1, 0); got != ([4]float32{0, 0, 1, 1}) {
		t.Errorf("line pixel color = %v, want blue", got)
	}
	if got := fb.GetDepthStencil(2, 1, 0).Depth; got != 0.3 {
		t.Errorf("line pixel depth = %v, want 0.3", got)
	}
}

func TestProcessLinePixelDepthFailureSkipsWrite(t *testing.T) {
	fb := framebuffer.NewBuffer(4, 4)
	fb.SetDepthStencil(2, 1, 0, framebuffer.DepthStencilValue{Depth: 0})
	prog := constColorProgram([4]float32{1, 1, 1, 1})
	state := State{
		Program:      prog,
		DepthStencil: dsstate.Default(),
		Blend:        framebuffer.BlendDisabled,
		FrontFacing:  true,
	}

	px := raster.LinePixel{X: 2, Y: 1, Depth: 0.9}
	ProcessLinePixel(px, state, fb)

	if got := fb.GetColor(2, 1, 0); got != ([4]float32{}) {
		t.Errorf("line pixel color after depth fail = %v, want untouched", got)
	}
}
