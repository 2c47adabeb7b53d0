// SPDX-License-Identifier: GPL-2.0-or-later

package settings

import (
	"testing"

	"radlight/entdict"
	"radlight/math/vec"
)

func TestBindFloatAndVec3(t *testing.T) {
	var g Group
	light := g.AddFloat(300, "light", "_light")
	origin := g.AddVec3(vec.Vec3{}, "origin")
	wait := g.AddFloat(1, "wait")

	d := entdict.Dict{Pairs: []entdict.Pair{
		{Key: "classname", Value: "light"},
		{Key: "light", Value: "500"},
		{Key: "origin", Value: "1 2 3"},
	}}
	g.Bind(&d)

	if light.Value() != 500 || !light.Changed {
		t.Errorf("light = %v changed=%v, want 500 true", light.Value(), light.Changed)
	}
	if !vec.Equal(origin.Value(), vec.Vec3{X: 1, Y: 2, Z: 3}) {
		t.Errorf("origin = %v, want {1 2 3}", origin.Value())
	}
	if wait.Value() != 1 || wait.Changed {
		t.Errorf("wait = %v changed=%v, want default 1 false", wait.Value(), wait.Changed)
	}
}

func TestVec3SingleScalarDuplicated(t *testing.T) {
	var g Group
	color := g.AddVec3(vec.Vec3{X: 255, Y: 255, Z: 255}, "_color")
	d := entdict.Dict{Pairs: []entdict.Pair{{Key: "_color", Value: "128"}}}
	g.Bind(&d)

	want := vec.Vec3{X: 128, Y: 128, Z: 128}
	if !vec.Equal(color.Value(), want) {
		t.Errorf("color = %v, want %v", color.Value(), want)
	}
}

func TestEnumUnrecognizedKeepsDefault(t *testing.T) {
	var g Group
	formula := g.AddEnum([]string{"linear", "inverse", "inverse2"}, 1, "delay")
	d := entdict.Dict{Pairs: []entdict.Pair{{Key: "delay", Value: "bogus"}}}
	g.Bind(&d)

	if formula.Value() != 1 || formula.Changed {
		t.Errorf("formula = %v changed=%v, want default 1 false", formula.Value(), formula.Changed)
	}
}

func TestUnknownKeyIgnored(t *testing.T) {
	var g Group
	light := g.AddFloat(300, "light")
	d := entdict.Dict{Pairs: []entdict.Pair{{Key: "_unknown_key", Value: "999"}}}
	g.Bind(&d)

	if light.Changed {
		t.Errorf("unrelated setting was marked changed by unknown key")
	}
}
