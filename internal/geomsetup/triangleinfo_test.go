package geomsetup

import (
	"math"
	"testing"
)

func sv2(x, y float32) ScreenVertex {
	return ScreenVertex{X: x, Y: y, Z: 0.5, W: 1}
}

func TestComputeEdgesVanishAtEndpoints(t *testing.T) {
	info := Compute(sv2(0, 0), sv2(10, 0), sv2(0, 10))

	// Edges[0] is opposite V0 (V1->V2); it must evaluate to zero at both
	// of its own endpoints regardless of how Compute reordered vertices.
	if got := info.Edges[0].Evaluate(info.V1.X, info.V1.Y); math.Abs(float64(got)) > 1e-3 {
		t.Errorf("Edges[0] at V1 = %v, want ~0", got)
	}
	if got := info.Edges[0].Evaluate(info.V2.X, info.V2.Y); math.Abs(float64(got)) > 1e-3 {
		t.Errorf("Edges[0] at V2 = %v, want ~0", got)
	}
	if got := info.Edges[1].Evaluate(info.V2.X, info.V2.Y); math.Abs(float64(got)) > 1e-3 {
		t.Errorf("Edges[1] at V2 = %v, want ~0", got)
	}
	if got := info.Edges[2].Evaluate(info.V0.X, info.V0.Y); math.Abs(float64(got)) > 1e-3 {
		t.Errorf("Edges[2] at V0 = %v, want ~0", got)
	}
}

func TestComputeAreaMatchesSignedArea(t *testing.T) {
	v0, v1, v2 := sv2(0, 0), sv2(10, 0), sv2(0, 10)
	want := SignedArea2D(v0.X, v0.Y, v1.X, v1.Y, v2.X, v2.Y)
	info := Compute(v0, v1, v2)

	if math.Abs(float64(info.Area-want)) > 1e-3 {
		t.Errorf("Area = %v, want %v (reordering must preserve signed area)", info.Area, want)
	}
	if info.InvArea == 0 {
		t.Error("InvArea should be nonzero for a non-degenerate triangle")
	}
}

func TestComputeDegenerateTriangleLeavesInvAreaZero(t *testing.T) {
	info := Compute(sv2(0, 0), sv2(5, 5), sv2(10, 10))
	if info.InvArea != 0 {
		t.Errorf("InvArea = %v, want 0 for a colinear (zero-area) triangle", info.InvArea)
	}
	for i, d := range info.DDX {
		if d != 0 {
			t.Errorf("DDX[%d] = %v, want 0 when InvArea is 0", i, d)
		}
	}
}

func TestComputeConstantAttributeHasZeroDerivative(t *testing.T) {
	v0 := ScreenVertex{X: 0, Y: 0, Z: 0.5, W: 1, Attributes: [16]float32{7}, AttributeCount: 1}
	v1 := ScreenVertex{X: 10, Y: 0, Z: 0.5, W: 1, Attributes: [16]float32{7}, AttributeCount: 1}
	v2 := ScreenVertex{X: 0, Y: 10, Z: 0.5, W: 1, Attributes: [16]float32{7}, AttributeCount: 1}

	info := Compute(v0, v1, v2)
	if info.DDX[0] != 0 || info.DDY[0] != 0 {
		t.Errorf("a constant attribute across the triangle should have zero screen-space derivative, got ddx=%v ddy=%v", info.DDX[0], info.DDY[0])
	}
}
