// Package indexfetch walks a draw call's index buffer (or synthesizes
// sequential indices for non-indexed draws) and yields primitive-sized
// groups of vertex indices according to the active topology.
package indexfetch

import "github.com/gogpu/gputypes"

// IndexSource reads raw index values from an external index buffer.
// The rasterizer core never owns index buffer memory; this interface is
// the narrow contract an external resource manager must satisfy.
type IndexSource interface {
	// Len returns the number of indices available.
	Len() int
	// At returns the index value at position i.
	At(i int) uint32
}

// PrimitiveIndices holds the vertex indices of one primitive. Triangle
// primitives use all three; line primitives use only the first two.
type PrimitiveIndices struct {
	I0, I1, I2 uint32
	IsLine     bool
}

// Fetcher iterates the primitives of one draw call.
type Fetcher struct {
	source   IndexSource
	topology gputypes.PrimitiveTopology
	vertex   int // not read by Next; every topology advances pos
	pos      int // next starting position in the index stream
	count    int // total indices or vertices in the draw
}

// New creates a Fetcher over source with count indices (or, for a
// non-indexed draw, count sequential vertices and source == nil).
func New(source IndexSource, topology gputypes.PrimitiveTopology, count int) *Fetcher {
	return &Fetcher{source: source, topology: topology, count: count}
}

func (f *Fetcher) index(i int) uint32 {
	if f.source != nil {
		return f.source.At(i)
	}
	return uint32(i)
}

// Next returns the next primitive's indices, or false when the draw is
// exhausted.
func (f *Fetcher) Next() (PrimitiveIndices, bool) {
	switch f.topology {
	case gputypes.PrimitiveTopologyTriangleList:
		if f.pos+3 > f.count {
			return PrimitiveIndices{}, false
		}
		p := PrimitiveIndices{
			I0: f.index(f.pos),
			I1: f.index(f.pos + 1),
			I2: f.index(f.pos + 2),
		}
		f.pos += 3
		return p, true

	case gputypes.PrimitiveTopologyTriangleStrip:
		if f.pos+3 > f.count {
			return PrimitiveIndices{}, false
		}
		i0, i1, i2 := f.index(f.pos), f.index(f.pos+1), f.index(f.pos+2)
		// Odd-numbered triangles in a strip have reversed winding;
		// swap the first two indices to preserve the original winding.
		if f.pos%2 == 1 {
			i0, i1 = i1, i0
		}
		f.pos++
		return PrimitiveIndices{I0: i0, I1: i1, I2: i2}, true

	case gputypes.PrimitiveTopologyPointList:
		// Not a rasterizable primitive for this core; callers that
		// need point rendering expand points externally.
		return PrimitiveIndices{}, false

	case gputypes.PrimitiveTopologyLineList:
		if f.pos+2 > f.count {
			return PrimitiveIndices{}, false
		}
		p := PrimitiveIndices{I0: f.index(f.pos), I1: f.index(f.pos + 1), IsLine: true}
		f.pos += 2
		return p, true

	case gputypes.PrimitiveTopologyLineStrip:
		if f.pos+2 > f.count {
			return PrimitiveIndices{}, false
		}
		p := PrimitiveIndices{I0: f.index(f.pos), I1: f.index(f.pos + 1), IsLine: true}
		f.pos++
		return p, true
	}

	return PrimitiveIndices{}, false
}

// fanState tracks a triangle fan's anchor. Fans are fetched by
// FanFetcher rather than Fetcher since gputypes has no
// PrimitiveTopologyTriangleFan constant (WebGPU dropped fans); the
// lineage this module descends from targets a Direct3D-10-class API,
// which does support fans, so NewFan offers it explicitly.
type fanState struct {
	anchor uint32
	have   bool
}

// FanFetcher is a Fetcher specialization for triangle-fan topology,
// kept separate from Fetcher since gputypes.PrimitiveTopology has no
// fan constant to switch on.
type FanFetcher struct {
	source IndexSource
	count  int
	pos    int
	fan    fanState
}

// NewFan creates a triangle-fan fetcher.
func NewFan(source IndexSource, count int) *FanFetcher {
	return &FanFetcher{source: source, count: count}
}

func (f *FanFetcher) index(i int) uint32 {
	if f.source != nil {
		return f.source.At(i)
	}
	return uint32(i)
}

// Next returns the next fan triangle, reusing the fan's anchor vertex.
func (f *FanFetcher) Next() (PrimitiveIndices, bool) {
	if !f.fan.have {
		if f.count < 3 {
			return PrimitiveIndices{}, false
		}
		f.fan.anchor = f.index(0)
		f.fan.have = true
		f.pos = 1
	}
	if f.pos+2 > f.count {
		return PrimitiveIndices{}, false
	}
	p := PrimitiveIndices{
		I0: f.fan.anchor,
		I1: f.index(f.pos),
		I2: f.index(f.pos + 1),
	}
	f.pos++
	return p, true
}
