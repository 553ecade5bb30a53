// Package vsoutput implements the contiguous-pool redesign for vertex
// shader outputs: instead of a pointer-heavy list of heap-allocated
// vs_output values, callers hand out and dereference 32-bit handles into
// a flat slice. This removes per-vertex heap allocation and makes the
// vertex cache a simple map from source index to Handle.
package vsoutput

import "github.com/swraster/salvia/shader"

// Handle identifies one entry in a Pool. The zero Handle is never
// issued by Alloc, so it is safe to use as a "not present" sentinel.
type Handle uint32

// Pool is a growable, reusable store of shader.VSOutput values. It is
// reset once per draw call (Reset), not per vertex.
type Pool struct {
	entries []shader.VSOutput
}

// NewPool creates a pool with the given initial capacity.
func NewPool(capacity int) *Pool {
	return &Pool{entries: make([]shader.VSOutput, 1, capacity+1)}
}

// Alloc stores v and returns a handle to it. Handles start at 1; 0 is
// reserved to mean "no value".
func (p *Pool) Alloc(v shader.VSOutput) Handle {
	p.entries = append(p.entries, v)
	return Handle(len(p.entries) - 1)
}

// Get dereferences a handle. It panics on the zero handle or an
// out-of-range handle, both of which indicate a caller bug (a missing
// vertex-cache check), not a recoverable runtime condition.
func (p *Pool) Get(h Handle) *shader.VSOutput {
	if h == 0 {
		panic("vsoutput: Get on the zero handle")
	}
	return &p.entries[h]
}

// Reset clears the pool for reuse on the next draw, keeping the
// underlying array's capacity.
func (p *Pool) Reset() {
	p.entries = p.entries[:1]
}

// Len reports how many entries are currently allocated (excluding the
// reserved zero slot).
func (p *Pool) Len() int {
	return len(p.entries) - 1
}
