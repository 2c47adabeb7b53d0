// SPDX-License-Identifier: GPL-2.0-or-later

// Package winding implements the polygon operations the lighting pipeline
// runs on a face's boundary: area, centroid, best-fit plane, and the
// axis-aligned clip used both to subdivide a BSP face into surface-light
// sub-polygons and to dice a face into bounce-light patches.
package winding

import (
	"radlight/bsp"
	"radlight/math/vec"
)

// clipEpsilon is the "on the plane" tolerance SubdividePolygon and the
// inward-edge-plane point test use.
const clipEpsilon = 0.1

// MaxPoints bounds a single winding's vertex count; SubdividePolygon
// refuses to emit a fragment larger than this, matching the original
// compiler's hardcoded polygon size limit.
const MaxPoints = 64

// Winding is an ordered, positively-wound list of points bounding a
// convex polygon.
type Winding []vec.Vec3

// FromFace builds the Winding for a BSP face by walking its edge run.
func FromFace(b *bsp.BSP, f *bsp.Face) Winding {
	w := make(Winding, f.NumEdges)
	for i := range w {
		w[i] = b.FacePointAtIndex(f, i)
	}
	return w
}

// Area returns the polygon's area via a triangle fan from vertex 0.
func (w Winding) Area() float32 {
	if len(w) < 3 {
		return 0
	}
	var total float32
	for i := 1; i < len(w)-1; i++ {
		d1 := vec.Sub(w[i], w[0])
		d2 := vec.Sub(w[i+1], w[0])
		c := vec.Cross(d1, d2)
		total += c.Length()
	}
	return total * 0.5
}

// Center returns the unweighted average of the winding's vertices.
func (w Winding) Center() vec.Vec3 {
	var sum vec.Vec3
	for _, p := range w {
		sum = vec.Add(sum, p)
	}
	return sum.Scale(1 / float32(len(w)))
}

// Plane fits a plane to the winding: normal from the first two edges,
// distance from vertex 0. As with BSP faces, the normal faces the side
// from which the winding runs clockwise. Degenerate (fewer than 3 points, or collinear)
// windings return the zero Plane.
func (w Winding) Plane() bsp.Plane {
	if len(w) < 3 {
		return bsp.Plane{}
	}
	e1 := vec.Sub(w[1], w[0])
	e2 := vec.Sub(w[2], w[0])
	normal := vec.Normalize(vec.Cross(e2, e1))
	return bsp.Plane{Normal: normal, Dist: vec.Dot(normal, w[0])}
}

// InwardEdgePlanes returns, for each consecutive edge, the plane whose
// interior half-space contains the polygon; a point lies inside the
// winding iff it has non-negative distance to every one of these. Package
// bounce stores them in each Bouncelight record.
func (w Winding) InwardEdgePlanes() []bsp.Plane {
	faceNormal := w.Plane().Normal
	planes := make([]bsp.Plane, len(w))
	for i := range w {
		v0 := w[i]
		v1 := w[(i+1)%len(w)]
		edge := vec.Normalize(vec.Sub(v1, v0))
		normal := vec.Cross(edge, faceNormal)
		planes[i] = bsp.Plane{Normal: normal, Dist: vec.Dot(normal, v0)}
	}
	return planes
}

// PointInside reports whether point has a distance of at least
// -clipEpsilon to every plane in planes (as returned by InwardEdgePlanes).
func PointInside(planes []bsp.Plane, point vec.Vec3) bool {
	for _, p := range planes {
		if vec.Dot(p.Normal, point)-p.Dist < -clipEpsilon {
			return false
		}
	}
	return true
}
// extents returns, for axis (0=X,1=Y,2=Z), the winding's min and max
// coordinate along that axis.
func (w Winding) extents(axis int) (mins, maxs float32) {
	mins, maxs = w[0].Idx(axis), w[0].Idx(axis)
	for _, p := range w[1:] {
		v := p.Idx(axis)
		if v < mins {
			mins = v
		}
		if v > maxs {
			maxs = v
		}
	}
	return mins, maxs
}
