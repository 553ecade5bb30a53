package geomsetup

import "github.com/swraster/salvia/shader"

// EdgeFactor is a linear edge equation Ax + By + C, evaluated at a
// pixel center to test which side of the edge the pixel falls on.
type EdgeFactor struct {
	A, B, C float32
}

// Evaluate returns the signed edge value at (x, y).
func (e EdgeFactor) Evaluate(x, y float32) float32 {
	return e.A*x + e.B*y + e.C
}

// TriangleInfo is the geometry setup's per-triangle output consumed by
// the tile binner and rasterizer core: screen-space vertices (reordered
// for precision), edge factors, reciprocal area, and per-attribute
// screen-space derivatives.
type TriangleInfo struct {
	V0, V1, V2 ScreenVertex

	// FrontFacing records which side of the triangle the active
	// FrontFace winding makes the front; set by the caller after
	// Compute, since the winding convention is draw-state, not
	// geometry.
	FrontFacing bool

	// Edges[0] is opposite V0 (V1->V2), Edges[1] opposite V1 (V2->V0),
	// Edges[2] opposite V2 (V0->V1), matching the barycentric convention
	// b0, b1, b2.
	Edges [3]EdgeFactor

	// Area is twice the signed screen-space area; InvArea its
	// reciprocal.
	Area, InvArea float32

	AttributeCount int
	// DDX, DDY are the screen-space partial derivatives of each
	// attribute, for pixel-shader derivative instructions.
	DDX, DDY [shader.MaxAttributes]float32
}

// reorderAnchor returns the index (0, 1, or 2) of the vertex with the
// smallest |x|+|y|, matching the original's tie-break: anchoring edge
// factor computation at the vertex closest to the origin avoids
// precision loss for triangles far from it.
func reorderAnchor(v0, v1, v2 *ScreenVertex) int {
	m := func(v *ScreenVertex) float32 {
		ax, ay := v.X, v.Y
		if ax < 0 {
			ax = -ax
		}
		if ay < 0 {
			ay = -ay
		}
		return ax + ay
	}
	m0, m1, m2 := m(v0), m(v1), m(v2)
	if m0 <= m1 && m0 <= m2 {
		return 0
	}
	if m1 <= m0 && m1 <= m2 {
		return 1
	}
	return 2
}

// Compute builds TriangleInfo from three already screen-space-projected
// vertices, reordering them so the anchor vertex is first.
func Compute(v0, v1, v2 ScreenVertex) TriangleInfo {
	verts := [3]ScreenVertex{v0, v1, v2}
	switch reorderAnchor(&verts[0], &verts[1], &verts[2]) {
	case 1:
		verts[0], verts[1], verts[2] = verts[1], verts[2], verts[0]
	case 2:
		verts[0], verts[1], verts[2] = verts[2], verts[0], verts[1]
	}

	info := TriangleInfo{V0: verts[0], V1: verts[1], V2: verts[2]}
	info.Edges[0] = edgeFactor(verts[1], verts[2])
	info.Edges[1] = edgeFactor(verts[2], verts[0])
	info.Edges[2] = edgeFactor(verts[0], verts[1])

	info.Area = info.Edges[2].Evaluate(verts[2].X, verts[2].Y)
	if info.Area != 0 {
		info.InvArea = 1 / info.Area
	}

	info.AttributeCount = verts[0].AttributeCount
	computeDerivatives(&info)
	return info
}

func edgeFactor(a, b ScreenVertex) EdgeFactor {
	return EdgeFactor{
		A: a.Y - b.Y,
		B: b.X - a.X,
		C: a.X*b.Y - b.X*a.Y,
	}
}

// computeDerivatives solves for the screen-space partial derivative of
// each attribute via the barycentric gradient, the same linear system
// the lineage's compute_triangle_info solves: for attribute f with
// values f0, f1, f2 at the triangle's vertices,
//
//	d(f)/dx = sum_i f_i * d(b_i)/dx
//	d(f)/dy = sum_i f_i * d(b_i)/dy
//
// and d(b_i)/dx, d(b_i)/dy are exactly the edge factor's A, B
// coefficients scaled by InvArea (the barycentric weights are linear in
// screen space with gradient (edge.A, edge.B) * invArea).
func computeDerivatives(info *TriangleInfo) {
	if info.InvArea == 0 {
		return
	}
	gx := [3]float32{
		info.Edges[0].A * info.InvArea,
		info.Edges[1].A * info.InvArea,
		info.Edges[2].A * info.InvArea,
	}
	gy := [3]float32{
		info.Edges[0].B * info.InvArea,
		info.Edges[1].B * info.InvArea,
		info.Edges[2].B * info.InvArea,
	}
	verts := [3]*ScreenVertex{&info.V0, &info.V1, &info.V2}
	for a := 0; a < info.AttributeCount; a++ {
		var dx, dy float32
		for i := 0; i < 3; i++ {
			dx += verts[i].Attributes[a] * gx[i]
			dy += verts[i].Attributes[a] * gy[i]
		}
		info.DDX[a] = dx
		info.DDY[a] = dy
	}
}
