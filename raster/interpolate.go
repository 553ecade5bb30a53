package raster

import "github.com/swraster/salvia/internal/geomsetup"

// Interpolated holds one pixel's perspective-correct interpolated
// depth and attributes.
type Interpolated struct {
	Depth          float32
	Attributes     [16]float32
	AttributeCount int
}

// Interpolate computes barycentric weights for (x, y) from info's edge
// factors and uses them to perspective-correct interpolate depth and
// attributes. Vertex attributes were pre-divided by w during the
// viewport transform (geomsetup.Project), so recovering the correct
// value is a single division by the interpolated 1/w.
func Interpolate(info geomsetup.TriangleInfo, x, y float32) Interpolated {
	b0 := info.Edges[0].Evaluate(x, y) * info.InvArea
	b1 := info.Edges[1].Evaluate(x, y) * info.InvArea
	b2 := info.Edges[2].Evaluate(x, y) * info.InvArea

	oneOverW := b0*info.V0.W + b1*info.V1.W + b2*info.V2.W

	var out Interpolated
	out.AttributeCount = info.AttributeCount
	if oneOverW == 0 {
		out.Depth = b0*info.V0.Z + b1*info.V1.Z + b2*info.V2.Z
		return out
	}
	out.Depth = (b0*info.V0.Z*info.V0.W + b1*info.V1.Z*info.V1.W + b2*info.V2.Z*info.V2.W) / oneOverW
	for i := 0; i < info.AttributeCount; i++ {
		out.Attributes[i] = (b0*info.V0.Attributes[i] + b1*info.V1.Attributes[i] + b2*info.V2.Attributes[i]) / oneOverW
	}
	return out
}
