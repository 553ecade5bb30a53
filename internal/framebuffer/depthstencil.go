package framebuffer

import "github.com/swraster/salvia/internal/dsstate"

// RunDepthStencilTest runs the combined depth+stencil pipeline for one
// sample at (x, y, sample): stencil test, depth test, then the stencil
// op selected by dsstate.Face.SelectOp, writing back stencil and (if the
// overall test passed and both depth test and depth write are enabled)
// depth. It returns
// whether the sample survives for shading/blending.
func RunDepthStencilTest(fb *Buffer, state dsstate.State, face dsstate.Face, x, y, sample int, newDepth float32) bool {
	current := fb.GetDepthStencil(x, y, sample)

	stencilPassed := true
	if state.StencilEnabled {
		stencilPassed = face.StencilTest(current.Stencil)
	}

	depthPassed := true
	if state.DepthTestEnabled {
		depthPassed = state.DepthCompare.Evaluate(newDepth, current.Depth)
	}

	if state.StencilEnabled {
		op := face.SelectOp(dsstate.Outcome{StencilPassed: stencilPassed, DepthPassed: depthPassed})
		current.Stencil = op.Apply(current.Stencil, face.Reference, face.WriteMask)
	}

	passed := stencilPassed && depthPassed
	if passed && state.DepthTestEnabled && state.DepthWriteEnabled {
		current.Depth = newDepth
	}
	fb.SetDepthStencil(x, y, sample, current)
	return passed
}
