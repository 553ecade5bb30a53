package geomsetup

import (
	"math"
	"testing"

	"github.com/swraster/salvia/shader"
)

func almostEqual(a, b float32) bool {
	return math.Abs(float64(a-b)) < 1e-3
}

func TestProjectCentersClipOrigin(t *testing.T) {
	// Clip-space origin (0,0,0,1) maps to the viewport's center pixel.
	v := shader.VSOutput{Position: [4]float32{0, 0, 0, 1}}
	vp := Viewport{X: 0, Y: 0, Width: 100, Height: 200, MinDepth: 0, MaxDepth: 1}

	sv := Project(&v, vp)
	if !almostEqual(sv.X, 50) {
		t.Errorf("X = %v, want 50", sv.X)
	}
	if !almostEqual(sv.Y, 100) {
		t.Errorf("Y = %v, want 100", sv.Y)
	}
	if !almostEqual(sv.Z, 0) {
		t.Errorf("Z = %v, want 0", sv.Z)
	}
}

func TestProjectFlipsY(t *testing.T) {
	// NDC +Y (up) must land in the top half of the screen (smaller
	// pixel Y), matching the invariant that screen Y increases downward.
	v := shader.VSOutput{Position: [4]float32{0, 1, 0, 1}}
	vp := Viewport{X: 0, Y: 0, Width: 100, Height: 100, MinDepth: 0, MaxDepth: 1}

	sv := Project(&v, vp)
	if sv.Y >= 50 {
		t.Errorf("NDC +Y should map to the top half of the screen, got Y=%v", sv.Y)
	}
}

func TestProjectPerspectiveDivide(t *testing.T) {
	// A clip-space vertex with w=2 halves its NDC position before the
	// viewport transform.
	v := shader.VSOutput{Position: [4]float32{1, 0, 0, 2}, Attributes: [shader.MaxAttributes]float32{4}, AttributeCount: 1}
	vp := Viewport{X: 0, Y: 0, Width: 100, Height: 100, MinDepth: 0, MaxDepth: 1}

	sv := Project(&v, vp)
	// ndcX = 1/2 = 0.5 -> screen X = (0.5*0.5+0.5)*100 = 75
	if !almostEqual(sv.X, 75) {
		t.Errorf("X = %v, want 75", sv.X)
	}
	if !almostEqual(sv.W, 0.5) {
		t.Errorf("W (1/w) = %v, want 0.5", sv.W)
	}
	// Attributes are pre-divided by w: 4 * (1/2) = 2.
	if !almostEqual(sv.Attributes[0], 2) {
		t.Errorf("Attributes[0] = %v, want 2 (pre-divided by w)", sv.Attributes[0])
	}
}
