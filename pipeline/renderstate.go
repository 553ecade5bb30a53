// Package pipeline implements the Render state snapshot, the async
// renderer (bounded FIFO + sentinel shutdown), and the top-level draw
// orchestration that wires together index fetching, the vertex cache,
// geometry setup, tile binning, the rasterizer core, and the pixel
// back-end.
package pipeline

import (
	"github.com/gogpu/gputypes"

	"github.com/swraster/salvia/internal/dsstate"
	"github.com/swraster/salvia/internal/framebuffer"
	"github.com/swraster/salvia/internal/geomsetup"
	"github.com/swraster/salvia/shader"
)

// RenderState is an immutable per-draw snapshot of every piece of
// pipeline configuration a draw call needs. It is captured once when a
// draw is recorded and never mutated afterward — workers reading it
// concurrently never race with a caller changing state mid-draw.
type RenderState struct {
	Viewport  geomsetup.Viewport
	Topology  gputypes.PrimitiveTopology
	CullMode  gputypes.CullMode
	FrontFace gputypes.FrontFace

	// SampleCount must be 1, 2, or 4.
	SampleCount int

	Program  *shader.Program
	Uniforms any

	DepthStencil dsstate.State
	Blend        framebuffer.BlendState
}

// VertexSource reads vertex attribute data by index. The rasterizer
// core never owns vertex buffer memory; this is the narrow contract an
// external resource manager satisfies.
type VertexSource interface {
	Fetch(index uint32) shader.VSInput
}
