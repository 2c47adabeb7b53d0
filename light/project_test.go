// SPDX-License-Identifier: GPL-2.0-or-later

package light

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"radlight/bsp"
	"radlight/math/vec"
)

func TestCalcFovIsSymmetricForSquareTexture(t *testing.T) {
	got := calcFov(90, 64, 64)
	if got < 89.9 || got > 90.1 {
		t.Errorf("calcFov(90, 64, 64) = %v, want ~90 for a square texture", got)
	}
}

func TestSetupProjectedTextureSwapsFOVAxisWhenTaller(t *testing.T) {
	b := &bsp.BSP{MipTex: []bsp.MipTex{{Name: "proj1", Width: 32, Height: 64}}}

	c := NewContext()
	l := &Light{ProjTexture: "proj1", ProjFOV: 90, Origin: vec.Vec3{}}
	c.setupProjectedTexture(l, b)

	if l.ProjMatrix == (mgl32.Mat4{}) {
		t.Fatal("ProjMatrix left zero for a resolved texture")
	}
}

func TestSetupProjectedTextureMissingWarnsAndLeavesUnprojected(t *testing.T) {
	b := &bsp.BSP{MipTex: []bsp.MipTex{{Name: "other", Width: 32, Height: 32}}}

	c := NewContext()
	l := &Light{ProjTexture: "nonexistent", ProjFOV: 90}
	c.setupProjectedTexture(l, b)

	if l.ProjMatrix != (mgl32.Mat4{}) {
		t.Error("ProjMatrix set despite the texture not resolving")
	}
}
