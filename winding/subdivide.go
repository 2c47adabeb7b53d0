// SPDX-License-Identifier: GPL-2.0-or-later

package winding

import (
	"github.com/chewxy/math32"

	"radlight/conlog"
	"radlight/math/vec"
)

// subdivideMargin is the minimum distance a grid-aligned split point must
// sit from either bound of the axis it splits, below which that axis is
// skipped in favor of the next.
const subdivideMargin = 8

// Subdivide recursively clips w against axis-aligned grid planes spaced
// maxSize apart, from GLQuake's SubdividePolygon: for each axis in turn,
// round the extent's midpoint to the nearest multiple of maxSize and
// split there if the result leaves at least subdivideMargin units of
// polygon on both sides; the first axis that qualifies wins and the
// other two are never tried. A winding with no qualifying axis is a leaf
// and is emitted as-is. Fragments are emitted depth-first, front side
// before back side. A winding past MaxPoints vertices is fatal
// (conlog.Fatalf), mirroring the original's numverts check.
func (w Winding) Subdivide(maxSize float32, emit func(Winding)) {
	w.subdivide(maxSize, emit)
}

func (w Winding) subdivide(maxSize float32, emit func(Winding)) {
	if len(w) < 3 {
		return
	}
	if len(w) > MaxPoints {
		conlog.Fatalf("winding: polygon exceeds MaxPoints (%d) vertices during Subdivide", MaxPoints)
	}

	axis := -1
	var splitDist float32
	for a := 0; a < 3; a++ {
		mins, maxs := w.extents(a)
		mid := maxSize * math32.Floor((mins+maxs)*0.5/maxSize+0.5)
		if maxs-mid < subdivideMargin || mid-mins < subdivideMargin {
			continue
		}
		axis = a
		splitDist = mid
		break
	}
	if axis == -1 {
		emit(w)
		return
	}

	front, back := w.clipByAxisPlane(axis, splitDist)
	front.subdivide(maxSize, emit)
	back.subdivide(maxSize, emit)
}

// Dice chops w into fragments whose bounding extent's longest side is at
// most maxSize, repeatedly splitting the longest remaining axis at its
// midpoint, and invokes fn once per non-degenerate fragment with its
// centroid and area. Unlike Subdivide, which tests axes in a fixed order
// and grid-aligns the split, Dice always picks whichever axis is
// currently longest, so a 100x200 face with maxSize=64 splits on Y
// first.
func Dice(w Winding, maxSize float32, fn func(center vec.Vec3, area float32)) {
	w.dice(maxSize, fn)
}

func (w Winding) dice(maxSize float32, fn func(center vec.Vec3, area float32)) {
	if len(w) < 3 {
		return
	}

	axis, mins, maxs := w.longestAxis()
	if maxs-mins <= maxSize {
		area := w.Area()
		if area <= 0 {
			return
		}
		fn(w.Center(), area)
		return
	}

	mid := (mins + maxs) * 0.5
	front, back := w.clipByAxisPlane(axis, mid)
	front.dice(maxSize, fn)
	back.dice(maxSize, fn)
}

// longestAxis returns the axis (0=X,1=Y,2=Z) with the greatest extent
// along with that extent's bounds.
func (w Winding) longestAxis() (axis int, mins, maxs float32) {
	var bestSpan float32 = -1
	for a := 0; a < 3; a++ {
		lo, hi := w.extents(a)
		if span := hi - lo; span > bestSpan {
			bestSpan, axis, mins, maxs = span, a, lo, hi
		}
	}
	return axis, mins, maxs
}

// clipByAxisPlane splits w against the plane x[axis] == dist, Sutherland-
// Hodgman style: points within clipEpsilon of the plane count as on both
// sides, so a vertex sitting exactly on a grid line is never dropped from
// either fragment.
func (w Winding) clipByAxisPlane(axis int, dist float32) (front, back Winding) {
	n := len(w)
	sides := make([]int, n) // -1 back, 0 on, 1 front
	dists := make([]float32, n)
	for i, p := range w {
		d := p.Idx(axis) - dist
		dists[i] = d
		switch {
		case d > clipEpsilon:
			sides[i] = 1
		case d < -clipEpsilon:
			sides[i] = -1
		default:
			sides[i] = 0
		}
	}

	for i := 0; i < n; i++ {
		p := w[i]
		if sides[i] == 0 {
			front = append(front, p)
			back = append(back, p)
			continue
		}
		if sides[i] == 1 {
			front = append(front, p)
		} else {
			back = append(back, p)
		}

		next := (i + 1) % n
		if sides[next] == 0 || sides[next] == sides[i] {
			continue
		}

		frac := dists[i] / (dists[i] - dists[next])
		mid := vec.Lerp(p, w[next], frac)
		front = append(front, mid)
		back = append(back, mid)
	}

	return front, back
}
