// SPDX-License-Identifier: GPL-2.0-or-later

package bounce

import (
	"testing"

	"radlight/bsp"
)

func TestMakeTextureColorsDividesByTotalTexelCount(t *testing.T) {
	// Two texels: one opaque white, one fully transparent black. The
	// alpha-gated average divides by the *total* texel count (2), not
	// the opaque count (1), per spec §4.H/§9.
	rgba := []byte{
		255, 255, 255, 255,
		0, 0, 0, 0,
	}
	b := &bsp.BSP{MipTex: []bsp.MipTex{{Name: "wall", RGBA: rgba}}}

	colors := MakeTextureColors(b)
	got := colors.ColorFor("wall")
	want := [3]float32{127.5, 127.5, 127.5}
	if got != want {
		t.Errorf("ColorFor(wall) = %v, want %v", got, want)
	}
}

func TestColorForUnknownTextureIsGray(t *testing.T) {
	colors := MakeTextureColors(&bsp.BSP{})
	if got := colors.ColorFor("missing"); got != [3]float32{127, 127, 127} {
		t.Errorf("ColorFor(missing) = %v, want gray", got)
	}
}
