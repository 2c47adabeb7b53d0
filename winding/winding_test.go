// SPDX-License-Identifier: GPL-2.0-or-later

package winding

import (
	"testing"

	"radlight/math/vec"
)

func square(size float32) Winding {
	return Winding{
		{X: 0, Y: 0, Z: 0},
		{X: size, Y: 0, Z: 0},
		{X: size, Y: size, Z: 0},
		{X: 0, Y: size, Z: 0},
	}
}

func TestAreaAndCenter(t *testing.T) {
	w := square(64)
	if got := w.Area(); got != 64*64 {
		t.Errorf("Area() = %v, want %v", got, 64*64)
	}
	c := w.Center()
	if !vec.Equal(c, vec.Vec3{X: 32, Y: 32, Z: 0}) {
		t.Errorf("Center() = %v, want {32 32 0}", c)
	}
}

func TestPlaneNormalPointsUp(t *testing.T) {
	p := square(64).Plane()
	if p.Normal.Z <= 0 {
		t.Errorf("Plane().Normal = %v, want +Z facing", p.Normal)
	}
}

func TestSubdivideSmallWindingPassesThrough(t *testing.T) {
	w := square(32)
	var got []Winding
	w.Subdivide(64, func(frag Winding) { got = append(got, frag) })
	if len(got) != 1 {
		t.Fatalf("got %d fragments, want 1", len(got))
	}
}

func TestSubdivideSplitsLargeWinding(t *testing.T) {
	w := square(128)
	var got []Winding
	w.Subdivide(64, func(frag Winding) { got = append(got, frag) })
	if len(got) < 2 {
		t.Fatalf("got %d fragments, want at least 2", len(got))
	}

	var total float32
	for _, frag := range got {
		for axis := 0; axis < 2; axis++ {
			mins, maxs := frag.extents(axis)
			if maxs-mins > 64+clipEpsilon {
				t.Errorf("fragment extent on axis %d = %v, want <= 64", axis, maxs-mins)
			}
		}
		total += frag.Area()
	}
	if total < 128*128-1 || total > 128*128+1 {
		t.Errorf("fragment areas sum to %v, want ~%v", total, 128*128)
	}
}

func TestDiceSkipsDegenerateFragments(t *testing.T) {
	w := square(96)
	count := 0
	Dice(w, 64, func(center vec.Vec3, area float32) {
		if area <= 0 {
			t.Errorf("Dice invoked fn with non-positive area %v", area)
		}
		count++
	})
	if count == 0 {
		t.Errorf("Dice invoked fn zero times")
	}
}

// TestDicePicksLongestAxis covers the review-cited case: a 100x200 face
// diced at maxSize=64 must split its Y extent first, not X, because Dice
// always chops whichever axis is currently longest.
func TestDicePicksLongestAxis(t *testing.T) {
	w := Winding{
		{X: 0, Y: 0, Z: 0},
		{X: 100, Y: 0, Z: 0},
		{X: 100, Y: 200, Z: 0},
		{X: 0, Y: 200, Z: 0},
	}
	var total float32
	Dice(w, 64, func(center vec.Vec3, area float32) {
		total += area
	})
	if total < 100*200-1 || total > 100*200+1 {
		t.Errorf("fragment areas sum to %v, want ~%v", total, 100*200)
	}

	axis, mins, maxs := w.longestAxis()
	if axis != 1 {
		t.Errorf("longestAxis() = %d, want 1 (Y, the 200-unit side)", axis)
	}
	if maxs-mins != 200 {
		t.Errorf("longestAxis() extent = %v, want 200", maxs-mins)
	}
}

// TestSubdivideSkipsAxisWithinMargin covers the 8-unit margin rule: a
// polygon whose midpoint grid-aligns to within subdivideMargin units of
// one of its bounds must not be split on that axis.
func TestSubdivideSkipsAxisWithinMargin(t *testing.T) {
	// X extent [0,68]: nearest 64-multiple midpoint is 64, leaving only
	// 4 units of margin on the high side -- X must be skipped.
	// Y extent [0,128]: midpoint 64 leaves 64 units of margin both
	// sides -- Y must be the axis actually split on.
	w := Winding{
		{X: 0, Y: 0, Z: 0},
		{X: 68, Y: 0, Z: 0},
		{X: 68, Y: 128, Z: 0},
		{X: 0, Y: 128, Z: 0},
	}
	var got []Winding
	w.Subdivide(64, func(frag Winding) { got = append(got, frag) })
	if len(got) < 2 {
		t.Fatalf("got %d fragments, want at least 2 (split on Y)", len(got))
	}
	for _, frag := range got {
		mins, maxs := frag.extents(0)
		if maxs-mins > 68+clipEpsilon {
			t.Errorf("fragment X extent = %v, want <= 68 (X never split)", maxs-mins)
		}
	}
}
