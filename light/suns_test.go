// SPDX-License-Identifier: GPL-2.0-or-later

package light

import (
	"testing"

	"radlight/bsp"
	"radlight/math/vec"
)

func worldspawnOnly(t *testing.T, extraKeys string) *Context {
	t.Helper()
	c := NewContext()
	c.LoadEntities([]byte(`{
"classname" "worldspawn"
` + extraKeys + `
}
`), nil)
	return c
}

func TestSetupSunsNoSunlightProducesNoSuns(t *testing.T) {
	c := worldspawnOnly(t, "")
	c.SetupSuns()
	if len(c.Suns) != 0 {
		t.Errorf("got %d suns, want 0 with no _sunlight key", len(c.Suns))
	}
}

func TestSetupSunsSingleSampleWithoutPenumbra(t *testing.T) {
	c := worldspawnOnly(t, `"_sunlight" "200"`)
	c.SetupSuns()
	if len(c.Suns) != 1 {
		t.Fatalf("got %d suns, want 1", len(c.Suns))
	}
	if c.Suns[0].Intensity != 200 {
		t.Errorf("Intensity = %v, want 200", c.Suns[0].Intensity)
	}
}

func TestSetupSunsIntensitiesSumToTotal(t *testing.T) {
	c := worldspawnOnly(t, `"_sunlight" "200"
"_sunlight_penumbra" "10"`)
	c.SunSamples = 8
	c.SetupSuns()
	if len(c.Suns) != 8 {
		t.Fatalf("got %d suns, want 8", len(c.Suns))
	}
	var sum float32
	for _, s := range c.Suns {
		sum += s.Intensity
	}
	if sum < 199.9 || sum > 200.1 {
		t.Errorf("sum of sun intensities = %v, want ~200", sum)
	}
}

func TestSetupSkyDomeProducesMirroredHemisphere(t *testing.T) {
	c := worldspawnOnly(t, `"_sunlight2" "100"
"_sunlight2_color" "255 0 0"
"_sunlight3" "50"
"_sunlight3_color" "0 255 0"`)
	c.SunSamples = 16
	c.SetupSkyDome()
	if len(c.Suns) == 0 {
		t.Fatal("expected suns from sky dome")
	}
	// every grid direction should be mirrored, so the count is even.
	if len(c.Suns)%2 != 0 {
		t.Errorf("got %d suns, want an even count (mirrored hemispheres)", len(c.Suns))
	}

	var upperSum, lowerSum float32
	for _, s := range c.Suns {
		switch {
		case s.Color.X == 255 && s.Color.Y == 0:
			upperSum += s.Intensity
		case s.Color.Y == 255 && s.Color.X == 0:
			lowerSum += s.Intensity
		default:
			t.Errorf("sun color %v matches neither hemisphere's configured color", s.Color)
		}
	}
	if upperSum < 99.9 || upperSum > 100.1 {
		t.Errorf("upper hemisphere intensity sum = %v, want ~100 (_sunlight2)", upperSum)
	}
	if lowerSum < 49.9 || lowerSum > 50.1 {
		t.Errorf("lower hemisphere intensity sum = %v, want ~50 (_sunlight3)", lowerSum)
	}
}

func TestSetupSkyDomeSunlight3AloneStillProducesSuns(t *testing.T) {
	c := worldspawnOnly(t, `"_sunlight3" "80"`)
	c.SunSamples = 16
	c.SetupSkyDome()
	if len(c.Suns) == 0 {
		t.Fatal("expected suns from _sunlight3 alone, even with _sunlight2 unset")
	}
	var sum float32
	for _, s := range c.Suns {
		sum += s.Intensity
	}
	if sum < 79.9 || sum > 80.1 {
		t.Errorf("sun intensity sum = %v, want ~80 (_sunlight3 total)", sum)
	}
}

func TestFixLightsOnFacesNudgesOutOfSolid(t *testing.T) {
	c := worldspawnOnly(t, "")
	c.Lights = []*Light{{Origin: vec.Vec3{}, Intensity: 300}}

	b := &bsp.BSP{
		Models: []bsp.Model{{HeadNode: [4]int32{-1, -1, -1, -1}}},
		Leaves: []bsp.Leaf{{Contents: bsp.ContentsSolid}},
	}
	c.FixLightsOnFaces(b)

	if c.Lights[0].Origin == (vec.Vec3{}) {
		t.Error("light origin unchanged, want nudge out of an all-solid world")
	}
}

func TestSetupLightLeafnumsCachesLeaf(t *testing.T) {
	c := worldspawnOnly(t, "")
	c.Lights = []*Light{{Origin: vec.Vec3{}, Leafnum: -1}}

	b := &bsp.BSP{
		Models: []bsp.Model{{HeadNode: [4]int32{-1, -1, -1, -1}}},
		Leaves: []bsp.Leaf{{Contents: bsp.ContentsEmpty}},
	}
	c.SetupLightLeafnums(b)

	if c.Lights[0].Leafnum != 0 {
		t.Errorf("Leafnum = %d, want 0 for the single leaf", c.Lights[0].Leafnum)
	}
}
