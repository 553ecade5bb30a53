package vsoutput

import (
	"testing"

	"github.com/swraster/salvia/shader"
)

func TestAllocStartsAtOne(t *testing.T) {
	p := NewPool(4)
	h := p.Alloc(shader.VSOutput{Position: [4]float32{1, 2, 3, 4}})
	if h != 1 {
		t.Errorf("first Alloc returned handle %d, want 1 (0 is reserved)", h)
	}
}

func TestGetRoundTrips(t *testing.T) {
	p := NewPool(4)
	want := shader.VSOutput{Position: [4]float32{1, 2, 3, 1}, AttributeCount: 1}
	want.Attributes[0] = 42
	h := p.Alloc(want)

	got := p.Get(h)
	if *got != want {
		t.Errorf("Get(%d) = %+v, want %+v", h, *got, want)
	}
}

func TestAllocSequentialHandles(t *testing.T) {
	p := NewPool(4)
	h1 := p.Alloc(shader.VSOutput{})
	h2 := p.Alloc(shader.VSOutput{})
	h3 := p.Alloc(shader.VSOutput{})
	if h1 != 1 || h2 != 2 || h3 != 3 {
		t.Errorf("handles = %d,%d,%d, want 1,2,3", h1, h2, h3)
	}
	if p.Len() != 3 {
		t.Errorf("Len() = %d, want 3", p.Len())
	}
}

func TestReset(t *testing.T) {
	p := NewPool(4)
	p.Alloc(shader.VSOutput{})
	p.Alloc(shader.VSOutput{})
	p.Reset()
	if p.Len() != 0 {
		t.Errorf("Len() after Reset = %d, want 0", p.Len())
	}
	h := p.Alloc(shader.VSOutput{})
	if h != 1 {
		t.Errorf("first Alloc after Reset returned handle %d, want 1", h)
	}
}
