// SPDX-License-Identifier: GPL-2.0-or-later

package light

import (
	"testing"

	"radlight/math/vec"
)

func TestSampleDirectIgnoresLightBehindSurface(t *testing.T) {
	c := NewContext()
	c.Lights = []*Light{{
		Origin: vec.Vec3{X: 0, Y: 0, Z: -10}, Intensity: 300,
		Color: vec.Vec3{X: 255, Y: 255, Z: 255}, Atten: 1, Formula: Linear,
	}}
	out := c.SampleDirect(vec.Vec3{}, vec.Vec3{X: 0, Y: 0, Z: 1})
	if len(out) != 0 {
		t.Errorf("light behind surface contributed: %v", out)
	}
}

func TestSampleDirectLinearFalloff(t *testing.T) {
	c := NewContext()
	c.Lights = []*Light{{
		Origin: vec.Vec3{X: 0, Y: 0, Z: 1}, Intensity: 300, Style: 0,
		Color: vec.Vec3{X: 255, Y: 255, Z: 255}, Atten: 1, Formula: Linear,
	}}
	out := c.SampleDirect(vec.Vec3{}, vec.Vec3{X: 0, Y: 0, Z: 1})
	if _, ok := out[0]; !ok {
		t.Fatalf("expected style 0 contribution, got %v", out)
	}
}

func TestSampleDirectSunRequiresFacingNormal(t *testing.T) {
	c := NewContext()
	c.Suns = []*Sun{{Direction: vec.Vec3{X: 0, Y: 0, Z: -1}, Intensity: 100, Color: vec.Vec3{X: 255, Y: 255, Z: 255}}}
	out := c.SampleDirect(vec.Vec3{}, vec.Vec3{X: 0, Y: 0, Z: 1})
	if len(out) != 1 {
		t.Fatalf("expected one contribution from downward sun on up-facing surface, got %v", out)
	}
	out2 := c.SampleDirect(vec.Vec3{}, vec.Vec3{X: 0, Y: 0, Z: -1})
	if len(out2) != 0 {
		t.Errorf("expected no contribution on down-facing surface, got %v", out2)
	}
}
