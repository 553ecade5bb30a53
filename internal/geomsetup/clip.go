// Package geomsetup implements the Geometry Setup stage: frustum
// clipping, culling, re-triangulation, viewport transform, and
// per-triangle edge-factor/derivative computation.
package geomsetup

import "github.com/swraster/salvia/shader"

// Plane is a clip plane in the form Ax + By + Cz + Dw >= 0 (inside).
type Plane struct {
	A, B, C, D float32
}

// The 6 standard frustum planes: x and y in [-w, w], z in [0, w].
var (
	PlaneLeft   = Plane{A: 1, D: 1}
	PlaneRight  = Plane{A: -1, D: 1}
	PlaneBottom = Plane{B: 1, D: 1}
	PlaneTop    = Plane{B: -1, D: 1}
	PlaneNear   = Plane{C: 1, D: 0}
	PlaneFar    = Plane{C: -1, D: 1}
)

// FrustumPlanes lists all 6 planes in the order clipping is applied.
var FrustumPlanes = [6]Plane{PlaneNear, PlaneFar, PlaneLeft, PlaneRight, PlaneBottom, PlaneTop}

// distance returns the signed distance of v from the plane; positive is
// inside.
func (p Plane) distance(v *shader.VSOutput) float32 {
	pos := v.Position
	return p.A*pos[0] + p.B*pos[1] + p.C*pos[2] + p.D*pos[3]
}

// lerpVertex linearly interpolates two clip-space vertices at parameter
// t (0 gives a, 1 gives b), including all active attributes.
func lerpVertex(a, b *shader.VSOutput, t float32) shader.VSOutput {
	var out shader.VSOutput
	for i := 0; i < 4; i++ {
		out.Position[i] = a.Position[i] + (b.Position[i]-a.Position[i])*t
	}
	out.AttributeCount = a.AttributeCount
	for i := 0; i < a.AttributeCount; i++ {
		out.Attributes[i] = a.Attributes[i] + (b.Attributes[i]-a.Attributes[i])*t
	}
	return out
}

// clipAgainstPlane runs one Sutherland-Hodgman pass of poly against
// plane, returning the (possibly larger) clipped polygon.
func clipAgainstPlane(poly []shader.VSOutput, plane Plane) []shader.VSOutput {
	if len(poly) == 0 {
		return poly
	}
	out := make([]shader.VSOutput, 0, len(poly)+1)
	prev := &poly[len(poly)-1]
	prevDist := plane.distance(prev)
	prevInside := prevDist >= 0

	for i := range poly {
		cur := &poly[i]
		curDist := plane.distance(cur)
		curInside := curDist >= 0

		switch {
		case curInside && prevInside:
			out = append(out, *cur)
		case curInside && !prevInside:
			t := prevDist / (prevDist - curDist)
			out = append(out, lerpVertex(prev, cur, t))
			out = append(out, *cur)
		case !curInside && prevInside:
			t := prevDist / (prevDist - curDist)
			out = append(out, lerpVertex(prev, cur, t))
		}

		prev, prevDist, prevInside = cur, curDist, curInside
	}
	return out
}

// ClipPolygon clips a convex polygon (wound consistently) against every
// frustum plane in turn. It returns an empty slice when the polygon is
// entirely outside any plane.
func ClipPolygon(v0, v1, v2 shader.VSOutput) []shader.VSOutput {
	poly := []shader.VSOutput{v0, v1, v2}
	for _, plane := range FrustumPlanes {
		poly = clipAgainstPlane(poly, plane)
		if len(poly) == 0 {
			return poly
		}
	}
	return poly
}

// Triangulate fans a convex polygon (as produced by ClipPolygon) into a
// primitive-sized list of triangles, anchored at vertex 0.
func Triangulate(poly []shader.VSOutput) [][3]shader.VSOutput {
	if len(poly) < 3 {
		return nil
	}
	tris := make([][3]shader.VSOutput, 0, len(poly)-2)
	for i := 1; i+1 < len(poly); i++ {
		tris = append(tris, [3]shader.VSOutput{poly[0], poly[i], poly[i+1]})
	}
	return tris
}
