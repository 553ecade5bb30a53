// Package framebuffer implements the Pixel Back-end's target memory:
// color and depth-stencil access, the rg32f depth-stencil packing, and
// early-Z eligibility.
package framebuffer

import (
	"math"
	"sync"

	"github.com/swraster/salvia/raster"
)

// DepthStencilValue is the packed depth+stencil value of one sample,
// stored in the rg32f format spec.md §6.3 specifies: the R channel holds
// depth as a float32 in [0, 1], the G channel holds the stencil byte
// reinterpreted as a float32 bit pattern. spec.md §3 stores one of these
// per sample, not per pixel, so MSAA targets keep independent
// depth/stencil state for each covered sample.
type DepthStencilValue struct {
	Depth   float32
	Stencil uint8
}

// Pack encodes the value as the two float32 channels of an rg32f texel.
func (v DepthStencilValue) Pack() [2]float32 {
	return [2]float32{v.Depth, math.Float32frombits(uint32(v.Stencil))}
}

// Unpack decodes an rg32f texel back into a DepthStencilValue.
func Unpack(texel [2]float32) DepthStencilValue {
	return DepthStencilValue{
		Depth:   texel[0],
		Stencil: uint8(math.Float32bits(texel[1])),
	}
}

// EarlyZEligible reports whether early-Z may run before the pixel
// shader, matching spec.md: early_z = !stencil_enable &&
// !ps_outputs_depth.
func EarlyZEligible(stencilEnabled, psOutputsDepth bool) bool {
	return !stencilEnabled && !psOutputsDepth
}

// Accessor abstracts per-sample target access so the rasterizer core and
// pixel stage never touch target memory layout directly (grounded on
// the original's pixel_accessor).
type Accessor interface {
	Width() int
	Height() int
	GetColor(x, y, sample int) [4]float32
	SetColor(x, y, sample int, c [4]float32)
	GetDepthStencil(x, y, sample int) DepthStencilValue
	SetDepthStencil(x, y, sample int, v DepthStencilValue)
}

// Buffer is a concrete in-memory Accessor: one color target plus one
// depth-stencil target, both guarded by a RWMutex so draw workers can
// read/write concurrently with external readback (grounded on
// raster/depth.go and raster/stencil.go's RWMutex-protected buffers).
// Storage always reserves raster.MaxSampleCount slots per pixel so a
// Buffer can back any draw's SampleCount without reallocating; draws
// with a smaller active count simply leave the higher sample slots
// untouched.
type Buffer struct {
	mu     sync.RWMutex
	width  int
	height int
	color  [][4]float32
	ds     []DepthStencilValue
}

// NewBuffer allocates a width x height framebuffer. Depth initializes
// to 1.0 (far plane) and stencil to 0, color to transparent black, for
// every sample of every pixel.
func NewBuffer(width, height int) *Buffer {
	n := width * height * raster.MaxSampleCount
	b := &Buffer{
		width:  width,
		height: height,
		color:  make([][4]float32, n),
		ds:     make([]DepthStencilValue, n),
	}
	for i := range b.ds {
		b.ds[i].Depth = 1
	}
	return b
}

func (b *Buffer) Width() int  { return b.width }
func (b *Buffer) Height() int { return b.height }

func (b *Buffer) index(x, y, sample int) int {
	return (y*b.width+x)*raster.MaxSampleCount + sample
}

func (b *Buffer) GetColor(x, y, sample int) [4]float32 {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.color[b.index(x, y, sample)]
}

func (b *Buffer) SetColor(x, y, sample int, c [4]float32) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.color[b.index(x, y, sample)] = c
}

func (b *Buffer) GetDepthStencil(x, y, sample int) DepthStencilValue {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.ds[b.index(x, y, sample)]
}

func (b *Buffer) SetDepthStencil(x, y, sample int, v DepthStencilValue) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.ds[b.index(x, y, sample)] = v
}

// ResolveColor averages the first sampleCount samples of pixel (x, y)
// into one color, for presentation or single-sample readback of an MSAA
// target.
func (b *Buffer) ResolveColor(x, y, sampleCount int) [4]float32 {
	b.mu.RLock()
	defer b.mu.RUnlock()
	var sum [4]float32
	for s := 0; s < sampleCount; s++ {
		c := b.color[b.index(x, y, s)]
		sum[0] += c[0]
		sum[1] += c[1]
		sum[2] += c[2]
		sum[3] += c[3]
	}
	inv := 1 / float32(sampleCount)
	return [4]float32{sum[0] * inv, sum[1] * inv, sum[2] * inv, sum[3] * inv}
}

// ClearColor fills every sample of every pixel in the color target
// unconditionally, bypassing blending (spec.md §6.5).
func (b *Buffer) ClearColor(c [4]float32) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i := range b.color {
		b.color[i] = c
	}
}

// ClearDepthStencil fills every sample of every pixel in the
// depth-stencil target unconditionally, bypassing the depth/stencil
// test.
func (b *Buffer) ClearDepthStencil(depth float32, stencil uint8) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i := range b.ds {
		b.ds[i] = DepthStencilValue{Depth: depth, Stencil: stencil}
	}
}
