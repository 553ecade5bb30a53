// Package shader defines the interface the rasterizer core consumes to
// run vertex and pixel shaders. The shaders themselves — their source,
// compilation, and reflection data — are produced by an external front
// end; this package only describes the narrow contract the core needs
// to invoke compiled shader bodies.
package shader

import "github.com/gogpu/naga"

// MaxAttributes bounds the number of interpolated attributes a vertex
// can carry (position is separate). Kept small and fixed so VSOutput can
// be a value type living in a contiguous pool instead of a heap slice.
const MaxAttributes = 16

// VSInput is the per-vertex data read from the vertex buffers by the
// index fetcher before invoking the vertex shader.
type VSInput struct {
	// Index is the vertex's index into the source buffers.
	Index uint32

	// Position is the untransformed object-space position.
	Position [3]float32

	// Attributes holds any remaining per-vertex vertex-buffer data
	// (normals, UVs, colors, ...), passed through to the vertex shader
	// uninterpreted.
	Attributes [MaxAttributes]float32

	// AttributeCount is the number of valid entries in Attributes.
	AttributeCount int
}

// VSOutput is the result of running the vertex shader once. Position is
// homogeneous clip-space (x, y, z, w); Attributes are interpolated
// across the triangle during rasterization.
type VSOutput struct {
	Position       [4]float32
	Attributes     [MaxAttributes]float32
	AttributeCount int
}

// PSOutput is the result of running the pixel shader for one lane (one
// pixel) of a quad; it applies to every covered sample of that pixel.
type PSOutput struct {
	Color      [4]float32
	Depth      float32
	WroteDepth bool
	// Discard, when true, drops this sample without depth/stencil write
	// or blending (matches a shader's discard/clip instruction).
	Discard bool
}

// VertexShaderFunc transforms one vertex. uniforms is an opaque pointer
// to per-draw constant data; the core never interprets it.
type VertexShaderFunc func(in VSInput, uniforms any) VSOutput

// QuadInput carries the four lanes of a 2x2 pixel quad; the pixel
// shader takes ddx/ddy as finite differences between neighbouring lanes.
type QuadInput struct {
	// X, Y are the screen coordinates of the quad's top-left pixel.
	X, Y int

	// Attributes holds the perspective-correct interpolated attributes
	// for each of the 4 lanes, in attribute-major order:
	// Attributes[attrIndex][lane].
	Attributes [MaxAttributes][4]float32

	AttributeCount int

	// Depth holds the interpolated depth for each lane.
	Depth [4]float32

	// Mask marks which of the 4 lanes are covered and should be shaded.
	Mask [4]bool
}

// PixelShaderFunc runs the pixel shader for a quad, returning one output
// per lane. Lanes outside the quad's mask may be left zero-valued.
type PixelShaderFunc func(in QuadInput, uniforms any) [4]PSOutput

// Program is an immutable, shareable shader descriptor — the capability
// set a shader exposes to the core, instead of a virtual-dispatch shader
// interface. Multiple worker goroutines invoke the same Program
// concurrently; per-goroutine scratch state lives in Scratch, not here.
type Program struct {
	Vertex VertexShaderFunc
	Pixel  PixelShaderFunc

	// HasCentroid requests centroid-sampled interpolation for partially
	// covered pixels instead of pixel-center interpolation.
	HasCentroid bool

	// OutputsDepth is true when the pixel shader writes PSOutput.Depth,
	// which disables early-Z (see framebuffer.EarlyZEligible).
	OutputsDepth bool

	// Reflection is an opaque pointer to the IR module an external WGSL
	// front end produced for this shader, carried through for callers
	// that want to introspect bindings or entry points. This package
	// never parses or lowers shader source itself; it only stores the
	// already-compiled module's reflection data.
	Reflection *naga.Module
}

// Scratch holds mutable state for running a Program, instead of cloning
// the shader itself per thread. pipeline.Draw allocates one Scratch per
// draw and hands the same one to every worker; the pixel stage does not
// read or write it.
type Scratch struct {
	// VaryingBuf is reusable storage for attribute interpolation,
	// avoiding an allocation per quad.
	VaryingBuf [MaxAttributes][4]float32
}

// NewScratch allocates a worker-local scratch for this program. The
// returned value does not depend on Program's fields and can be reused
// across draws and across different Programs.
func (p *Program) NewScratch() *Scratch {
	return &Scratch{}
}
