package dsstate

// StencilOp selects how a stencil value is updated. IncrementWrap and
// DecrementWrap are carried from the lineage's richer StencilOp enum as
// a superset of spec.md's set.
type StencilOp uint8

const (
	StencilKeep StencilOp = iota
	StencilZero
	StencilReplace
	StencilIncrementClamp
	StencilDecrementClamp
	StencilInvert
	StencilIncrementWrap
	StencilDecrementWrap
)

// Apply computes the new stencil value for one of the 8 ops.
func (op StencilOp) Apply(current, reference, writeMask uint8) uint8 {
	var next uint8
	switch op {
	case StencilKeep:
		return current
	case StencilZero:
		next = 0
	case StencilReplace:
		next = reference
	case StencilIncrementClamp:
		if current < 0xFF {
			next = current + 1
		} else {
			next = 0xFF
		}
	case StencilDecrementClamp:
		if current > 0 {
			next = current - 1
		} else {
			next = 0
		}
	case StencilInvert:
		next = ^current
	case StencilIncrementWrap:
		next = current + 1
	case StencilDecrementWrap:
		next = current - 1
	default:
		return current
	}
	return (current &^ writeMask) | (next & writeMask)
}

// Face holds the stencil state for one triangle face (front or back).
type Face struct {
	Compare CompareFunc
	// FailOp fires when the stencil test itself fails.
	FailOp StencilOp
	// DepthFailOp fires when the stencil test passes but the depth test
	// fails.
	DepthFailOp StencilOp
	// PassOp fires when both the stencil test and the depth test pass.
	PassOp StencilOp

	ReadMask, WriteMask uint8
	Reference           uint8
}

// StencilTest reports whether the stencil comparison against current
// passes, using Reference masked by ReadMask.
func (f Face) StencilTest(current uint8) bool {
	return f.Compare.Evaluate(float32(f.Reference&f.ReadMask), float32(current&f.ReadMask))
}

// Outcome is the result of running the stencil+depth pipeline for one
// sample, used to select which of the 3 stencil ops applies.
type Outcome struct {
	StencilPassed bool
	DepthPassed   bool
}

// SelectOp resolves the Open Question the lineage's original
// `!front*3+(!depth_pass)+stencil_pass` packed index left ambiguous:
// sfail fires on stencil failure, dfail fires when stencil passed but
// depth failed, pass fires when both passed. Taking the three booleans
// directly instead of reconstructing a packed index makes the intended
// mapping explicit and unambiguous.
func (f Face) SelectOp(o Outcome) StencilOp {
	if !o.StencilPassed {
		return f.FailOp
	}
	if !o.DepthPassed {
		return f.DepthFailOp
	}
	return f.PassOp
}

// State is the full depth-stencil pipeline state for a draw.
type State struct {
	DepthTestEnabled  bool
	DepthWriteEnabled bool
	DepthCompare      CompareFunc

	StencilEnabled bool
	Front, Back    Face
}

// Default returns a depth-stencil state with depth test/write enabled
// (CompareLess) and stencil disabled, matching a typical opaque-geometry
// default.
func Default() State {
	face := Face{
		Compare:     CompareAlways,
		FailOp:      StencilKeep,
		DepthFailOp: StencilKeep,
		PassOp:      StencilKeep,
		ReadMask:    0xFF,
		WriteMask:   0xFF,
	}
	return State{
		DepthTestEnabled:  true,
		DepthWriteEnabled: true,
		DepthCompare:      CompareLess,
		Front:             face,
		Back:              face,
	}
}
