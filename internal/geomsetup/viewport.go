package geomsetup

import "github.com/swraster/salvia/shader"

// Viewport maps normalized device coordinates to screen pixels.
type Viewport struct {
	X, Y          int
	Width, Height int
	MinDepth      float32
	MaxDepth      float32
}

// ScreenVertex is a vertex after perspective divide and viewport
// transform. W stores 1/w from the original clip-space vertex so later
// stages can perspective-correct their interpolation.
type ScreenVertex struct {
	X, Y, Z float32
	W       float32 // 1/w
	Attributes     [shader.MaxAttributes]float32
	AttributeCount int
}

// Project performs the perspective divide and viewport transform of one
// clip-space vertex shader output.
func Project(v *shader.VSOutput, vp Viewport) ScreenVertex {
	w := v.Position[3]
	invW := float32(1)
	if w != 0 {
		invW = 1 / w
	}
	ndcX := v.Position[0] * invW
	ndcY := v.Position[1] * invW
	ndcZ := v.Position[2] * invW

	sv := ScreenVertex{
		X:              (ndcX*0.5 + 0.5) * float32(vp.Width) + float32(vp.X),
		Y:              (1 - (ndcY*0.5 + 0.5)) * float32(vp.Height) + float32(vp.Y),
		Z:              vp.MinDepth + ndcZ*(vp.MaxDepth-vp.MinDepth),
		W:              invW,
		AttributeCount: v.AttributeCount,
	}
	// Attributes are pre-divided by w so that perspective-correct
	// interpolation later is a plain linear interpolation of
	// (attr/w, 1/w) followed by a single division.
	for i := 0; i < v.AttributeCount; i++ {
		sv.Attributes[i] = v.Attributes[i] * invW
	}
	return sv
}
