// SPDX-License-Identifier: GPL-2.0-or-later

package light

import (
	"testing"

	"radlight/bsp"
	"radlight/math/vec"
)

func worldspawnPlus(extra string) []byte {
	return []byte(`{
"classname" "worldspawn"
}
` + extra)
}

func TestLoadEntitiesDefaultsIntensityAndAtten(t *testing.T) {
	c := NewContext()
	c.LoadEntities(worldspawnPlus(`{
"classname" "light"
"origin" "0 0 64"
}
`), nil)
	if len(c.Lights) != 1 {
		t.Fatalf("got %d lights, want 1", len(c.Lights))
	}
	l := c.Lights[0]
	if l.Intensity != DefaultLightLevel {
		t.Errorf("Intensity = %v, want %v", l.Intensity, DefaultLightLevel)
	}
	if l.Atten != 1 {
		t.Errorf("Atten = %v, want 1", l.Atten)
	}
	if l.Samples != 1 || l.Deviance != 0 {
		t.Errorf("Samples/Deviance = %v/%v, want 1/0", l.Samples, l.Deviance)
	}
}

func TestLoadEntitiesAssignsSharedStyleByTargetname(t *testing.T) {
	c := NewContext()
	c.LoadEntities(worldspawnPlus(`{
"classname" "light"
"origin" "0 0 0"
"targetname" "switch1"
}
{
"classname" "light"
"origin" "64 0 0"
"targetname" "switch1"
}
`), nil)
	if len(c.Lights) != 2 {
		t.Fatalf("got %d lights, want 2", len(c.Lights))
	}
	if c.Lights[0].Style != c.Lights[1].Style {
		t.Errorf("styles differ: %d vs %d", c.Lights[0].Style, c.Lights[1].Style)
	}
	if c.Lights[0].Style < 32 || c.Lights[0].Style > 63 {
		t.Errorf("style %d out of switchable range [32,63]", c.Lights[0].Style)
	}
}

func TestJitterEntitiesDuplicatesWithinDeviance(t *testing.T) {
	c := NewContext()
	c.LoadEntities(worldspawnPlus(`{
"classname" "light"
"origin" "0 0 0"
"_deviance" "8"
"_samples" "4"
}
`), nil)
	if len(c.Lights) != 1 {
		t.Fatalf("got %d lights before jitter, want 1", len(c.Lights))
	}
	c.JitterEntities()
	if len(c.Lights) != 4 {
		t.Fatalf("got %d lights after jitter, want 4", len(c.Lights))
	}
	for _, l := range c.Lights[1:] {
		if !l.Generated {
			t.Error("jittered duplicate not marked Generated")
		}
		for _, d := range []float32{l.Origin.X, l.Origin.Y, l.Origin.Z} {
			if d < -8 || d > 8 {
				t.Errorf("jittered offset %v outside [-8,8]", d)
			}
		}
	}
}

func TestMatchTargetsWarnsOnUnresolved(t *testing.T) {
	c := NewContext()
	c.LoadEntities(worldspawnPlus(`{
"classname" "light"
"origin" "0 0 0"
"target" "nonexistent"
}
`), nil)
	c.MatchTargets()
	if c.Lights[0].TargetEnt != nil {
		t.Errorf("TargetEnt = %v, want nil for unmatched target", c.Lights[0].TargetEnt)
	}
}

func TestSetupSpotlightsDerivesFromTarget(t *testing.T) {
	c := NewContext()
	c.LoadEntities(worldspawnPlus(`{
"classname" "light"
"origin" "0 0 0"
"target" "t1"
}
{
"classname" "info_null"
"origin" "64 0 0"
"targetname" "t1"
}
`), nil)
	c.MatchTargets()
	c.SetupSpotlights()

	l := c.Lights[0]
	if !l.Spotlight {
		t.Fatal("expected Spotlight true after targeting an entity")
	}
	if l.SpotFalloff >= 0 {
		t.Errorf("SpotFalloff = %v, want negative cosine", l.SpotFalloff)
	}
}

func TestUnknownFormulaDefaultsToLinearWithWarning(t *testing.T) {
	c := NewContext()
	c.LoadEntities(worldspawnPlus(`{
"classname" "light"
"origin" "0 0 0"
"delay" "99"
}
`), nil)
	if c.Lights[0].Formula != Linear {
		t.Errorf("Formula = %v, want Linear for unrecognized delay", c.Lights[0].Formula)
	}
}

func TestColorNormalizationScalesUnitRange(t *testing.T) {
	c := NewContext()
	c.LoadEntities(worldspawnPlus(`{
"classname" "light"
"origin" "0 0 0"
"color" "0.5 0.5 0.5"
}
`), nil)
	got := c.Lights[0].Color
	if got.X < 127 || got.X > 128 {
		t.Errorf("Color.X = %v, want ~127.5", got.X)
	}
}

func TestMakeSurfaceLightsNeutralizesTemplateIntensity(t *testing.T) {
	c := NewContext()
	c.LoadEntities(worldspawnPlus(`{
"classname" "light"
"origin" "0 0 0"
"_surface" "lava1"
"light" "500"
}
`), nil)
	if len(c.Lights) != 1 {
		t.Fatalf("got %d lights, want 1 before MakeSurfaceLights", len(c.Lights))
	}

	b := &bsp.BSP{Models: []bsp.Model{{FirstFace: 0, NumFaces: 0}}}
	c.MakeSurfaceLights(b)

	if len(c.Lights) != 0 {
		t.Errorf("got %d lights after MakeSurfaceLights, want 0 (moved to Templates)", len(c.Lights))
	}
	if len(c.Templates) != 1 {
		t.Fatalf("got %d templates, want 1", len(c.Templates))
	}
	if c.Templates[0].Intensity == 0 {
		t.Error("template copy lost its original intensity")
	}
}

// squareFaceBSP builds a single 64x64 face on a texture named texname,
// referenced by one leaf's marksurface range, enough to drive
// MakeSurfaceLights' leaf traversal end to end.
func squareFaceBSP(texname string, leafContents int32) *bsp.BSP {
	return &bsp.BSP{
		Vertices: []vec.Vec3{
			{X: 0, Y: 0, Z: 0}, {X: 64, Y: 0, Z: 0},
			{X: 64, Y: 64, Z: 0}, {X: 0, Y: 64, Z: 0},
		},
		Edges:     [][2]int32{{0, 1}, {1, 2}, {2, 3}, {3, 0}},
		SurfEdges: []int32{0, 1, 2, 3},
		Planes:    []bsp.Plane{{Normal: vec.Vec3{X: 0, Y: 0, Z: 1}, Dist: 0, Type: 2}},
		Faces:     []bsp.Face{{PlaneNum: 0, FirstEdge: 0, NumEdges: 4, TexInfo: 0}},
		TexInfos:  []bsp.TexInfo{{MipTex: 0}},
		MipTex:    []bsp.MipTex{{Name: texname}},
		Leaves: []bsp.Leaf{
			{Contents: leafContents, FirstMarkSurface: 0, NumMarkSurfaces: 1},
		},
		MarkSurfaces: []int32{0},
		Models:       []bsp.Model{{FirstFace: 0, NumFaces: 1}},
	}
}

func TestMakeSurfaceLightsWalksLeafMarksurfaces(t *testing.T) {
	c := NewContext()
	c.LoadEntities(worldspawnPlus(`{
"classname" "light"
"origin" "0 0 0"
"_surface" "lava1"
"light" "500"
}
`), nil)

	b := squareFaceBSP("lava1", bsp.ContentsEmpty)
	c.MakeSurfaceLights(b)

	if len(c.Lights) == 0 {
		t.Fatal("expected surface lights generated from the leaf's marked face, got none")
	}
	for _, l := range c.Lights {
		if !l.Generated {
			t.Error("surface light not marked Generated")
		}
	}
}

func TestMakeSurfaceLightsSkipsLiquidOnlyWhenUnderwater(t *testing.T) {
	c := NewContext()
	c.LoadEntities(worldspawnPlus(`{
"classname" "light"
"origin" "0 0 0"
"_surface" "*lava1"
"light" "500"
}
`), nil)

	underwater := squareFaceBSP("*lava1", bsp.ContentsLava)
	c.MakeSurfaceLights(underwater)
	if len(c.Lights) != 0 {
		t.Errorf("got %d lights for a liquid face seen from its underwater leaf, want 0", len(c.Lights))
	}

	c2 := NewContext()
	c2.LoadEntities(worldspawnPlus(`{
"classname" "light"
"origin" "0 0 0"
"_surface" "*lava1"
"light" "500"
}
`), nil)
	dry := squareFaceBSP("*lava1", bsp.ContentsEmpty)
	c2.MakeSurfaceLights(dry)
	if len(c2.Lights) == 0 {
		t.Error("expected a liquid face seen only from an empty leaf to still get surface lights")
	}
}
