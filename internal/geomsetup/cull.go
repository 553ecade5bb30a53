package geomsetup

import "github.com/gogpu/gputypes"

// DegenerateAreaEpsilon matches the data-model invariant: a triangle
// with |area| within this epsilon of zero never reaches the rasterizer
// core.
const DegenerateAreaEpsilon = 1e-6

// SignedArea2D returns twice the signed screen-space area of the
// triangle (v0, v1, v2). Positive is counter-clockwise.
func SignedArea2D(x0, y0, x1, y1, x2, y2 float32) float32 {
	return (x1-x0)*(y2-y0) - (x2-x0)*(y1-y0)
}

// IsDegenerate reports whether a triangle's area is within
// DegenerateAreaEpsilon of zero.
func IsDegenerate(area float32) bool {
	if area < 0 {
		area = -area
	}
	return area < DegenerateAreaEpsilon
}

// IsBackFacing reports whether a triangle with the given signed area is
// back-facing under frontFace.
func IsBackFacing(area float32, frontFace gputypes.FrontFace) bool {
	switch frontFace {
	case gputypes.FrontFaceCCW:
		return area < 0
	case gputypes.FrontFaceCW:
		return area > 0
	}
	return false
}

// ShouldCull reports whether a triangle with the given signed area
// should be discarded under cullMode/frontFace.
func ShouldCull(area float32, cullMode gputypes.CullMode, frontFace gputypes.FrontFace) bool {
	if IsDegenerate(area) {
		return true
	}
	switch cullMode {
	case gputypes.CullModeNone:
		return false
	case gputypes.CullModeBack:
		return IsBackFacing(area, frontFace)
	case gputypes.CullModeFront:
		return !IsBackFacing(area, frontFace)
	}
	return false
}
