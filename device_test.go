package salvia

import (
	"testing"

	"github.com/gogpu/gputypes"

	"github.com/swraster/salvia/internal/geomsetup"
	"github.com/swraster/salvia/pipeline"
	"github.com/swraster/salvia/shader"
)

func TestCreateRenderTargetAllocatesBuffer(t *testing.T) {
	d := NewDevice(DeviceDescriptor{Workers: 1})
	rt := d.CreateRenderTarget(32, 16)
	if rt.Buffer.Width() != 32 || rt.Buffer.Height() != 16 {
		t.Errorf("render target size = %dx%d, want 32x16", rt.Buffer.Width(), rt.Buffer.Height())
	}
}

func TestCreateBufferAndTexture(t *testing.T) {
	d := NewDevice(DeviceDescriptor{Workers: 1})
	buf := d.CreateBuffer(16, gputypes.BufferUsageStorage)
	if buf.Len() != 16 {
		t.Errorf("buffer Len() = %d, want 16", buf.Len())
	}
	tex := d.CreateTexture(4, 4, gputypes.TextureFormatRGBA8Unorm)
	if len(tex.GetData()) != 4*4*4 {
		t.Errorf("texture data len = %d, want 64", len(tex.GetData()))
	}
}

func TestQueueSubmitDrawAndWait(t *testing.T) {
	d := NewDevice(DeviceDescriptor{Workers: 1})
	rt := d.CreateRenderTarget(8, 8)
	q := d.CreateQueue(rt, 4)
	defer q.Shutdown()

	prog := &shader.Program{
		Vertex: func(in shader.VSInput, uniforms any) shader.VSOutput {
			return shader.VSOutput{Position: [4]float32{in.Position[0], in.Position[1], in.Position[2], 1}}
		},
		Pixel: func(in shader.QuadInput, uniforms any) [4]shader.PSOutput {
			var out [4]shader.PSOutput
			for lane := 0; lane < 4; lane++ {
				out[lane] = shader.PSOutput{Color: [4]float32{1, 1, 0, 1}}
			}
			return out
		},
	}

	cmd := pipeline.DrawCommand{
		State: pipeline.RenderState{
			Viewport:    geomsetup.Viewport{Width: 8, Height: 8, MaxDepth: 1},
			Topology:    gputypes.PrimitiveTopologyTriangleList,
			CullMode:    gputypes.CullModeNone,
			FrontFace:   gputypes.FrontFaceCCW,
			SampleCount: 1,
			Program:     prog,
		},
		Vertices: fakeQueueVertexSource{{-0.8, -0.8, 0.5}, {0.8, -0.8, 0.5}, {0, 0.8, 0.5}},
		Count:    3,
	}
	q.Submit(cmd)
	q.Wait()

	if err := q.LastError(); err != nil {
		t.Fatalf("unexpected LastError: %v", err)
	}
	if got := rt.Buffer.GetColor(4, 5, 0); got != ([4]float32{1, 1, 0, 1}) {
		t.Errorf("pixel (4,5) = %v, want yellow", got)
	}
}

func TestQueueClearBypassesBlend(t *testing.T) {
	d := NewDevice(DeviceDescriptor{Workers: 1})
	rt := d.CreateRenderTarget(4, 4)
	q := d.CreateQueue(rt, 4)
	defer q.Shutdown()

	q.Clear([4]float32{0, 0, 1, 1}, true, 0.75, 3)
	if got := rt.Buffer.GetColor(0, 0, 0); got != ([4]float32{0, 0, 1, 1}) {
		t.Errorf("cleared color = %v, want blue", got)
	}
	ds := rt.Buffer.GetDepthStencil(0, 0, 0)
	if ds.Depth != 0.75 || ds.Stencil != 3 {
		t.Errorf("cleared depth-stencil = %+v, want Depth=0.75 Stencil=3", ds)
	}
}

type objVertexQ struct{ x, y, z float32 }
type fakeQueueVertexSource []objVertexQ

func (s fakeQueueVertexSource) Fetch(index uint32) shader.VSInput {
	v := s[index]
	return shader.VSInput{Index: index, Position: [3]float32{v.x, v.y, v.z}}
}
