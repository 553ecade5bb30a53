// Package salvia is the front-end API of a Direct3D-10-class software
// rasterizer: a Device creates resources and render targets, a Queue
// submits draw commands, and the internal pipeline packages implement
// the actual rasterization core. Shader compilation, resource
// management beyond simple byte stores, and swap-chain presentation are
// external collaborators this package only exposes narrow interfaces
// to, per the rasterizer core's scope.
package salvia

import (
	"github.com/gogpu/gputypes"

	"github.com/swraster/salvia/internal/framebuffer"
	"github.com/swraster/salvia/internal/workerpool"
	"github.com/swraster/salvia/pipeline"
)

// Device creates resources, render targets, and queues. It holds no
// mutable rendering state itself — every draw's configuration lives in
// the RenderState snapshot passed through the Queue.
type Device struct {
	poolCfg workerpool.Config
}

// DeviceDescriptor configures a new Device. A zero value selects
// defaults (worker count = runtime.NumCPU()).
type DeviceDescriptor struct {
	Workers int
}

// NewDevice creates a Device.
func NewDevice(desc DeviceDescriptor) *Device {
	return &Device{poolCfg: workerpool.Config{Workers: desc.Workers}}
}

// CreateBuffer allocates a new Buffer resource.
func (d *Device) CreateBuffer(size uint64, usage gputypes.BufferUsage) *Buffer {
	return NewBuffer(size, usage)
}

// CreateTexture allocates a new Texture resource.
func (d *Device) CreateTexture(width, height uint32, format gputypes.TextureFormat) *Texture {
	return NewTexture(width, height, format)
}

// RenderTarget combines a color target and its depth-stencil store in
// one buffer (framebuffer.Buffer packs both), ready to be drawn into by
// a Queue.
type RenderTarget struct {
	Buffer *framebuffer.Buffer
}

// CreateRenderTarget allocates a width x height render target.
func (d *Device) CreateRenderTarget(width, height int) *RenderTarget {
	return &RenderTarget{Buffer: framebuffer.NewBuffer(width, height)}
}

// CreateQueue creates a Queue that submits draws against target.
func (d *Device) CreateQueue(target *RenderTarget, queueDepth int) *Queue {
	return &Queue{
		target:   target,
		renderer: pipeline.NewRenderer(target.Buffer, d.poolCfg, queueDepth),
	}
}
