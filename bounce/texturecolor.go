// SPDX-License-Identifier: GPL-2.0-or-later

// Package bounce generates secondary (indirect) light sources: for every
// lightmapped, non-skip face, it dices the face into patches, samples
// direct lighting at each patch center, and emits an area-weighted,
// texture-tinted bouncelight. It runs after direct lighting data is
// ready and appends into a shared Result under that Result's mutex.
package bounce

import (
	"strings"

	"radlight/bsp"
	"radlight/palette"
)

// alphaCutoff is the half-opaque threshold a texel's alpha must clear to
// count toward the average.
const alphaCutoff = 128

// TextureColors maps a texture name to its average color (0-255 per
// component), as computed by MakeTextureColors.
type TextureColors map[string][3]float32

// MakeTextureColors computes the average RGB color of every texture in
// b.MipTex that carries embedded texel data (RGBA as-is, 8-bit indexed
// data expanded through palette.Decode), skipping miptex entries with
// neither. Per spec §4.H: the divisor is the *total* texel
// count, not the count of texels that passed the alpha test — a
// faithful reproduction of the original's behavior (see DESIGN.md).
func MakeTextureColors(b *bsp.BSP) TextureColors {
	colors := make(TextureColors)
	for _, mt := range b.MipTex {
		rgba := mt.RGBA
		if len(rgba) == 0 && len(mt.Indexed) != 0 {
			rgba = palette.Decode(mt.Indexed)
		}
		if len(rgba) == 0 {
			continue
		}
		colors[mt.Name] = averageColor(rgba)
	}
	return colors
}

func averageColor(rgba []byte) [3]float32 {
	var sum [3]float32
	total := len(rgba) / 4
	for i := 0; i < len(rgba); i += 4 {
		if rgba[i+3] < alphaCutoff {
			continue
		}
		sum[0] += float32(rgba[i])
		sum[1] += float32(rgba[i+1])
		sum[2] += float32(rgba[i+2])
	}
	if total == 0 {
		return [3]float32{127, 127, 127}
	}
	return [3]float32{sum[0] / float32(total), sum[1] / float32(total), sum[2] / float32(total)}
}

// ColorFor returns the texture's average color, or neutral gray (127)
// for a texture with no embedded pixel data.
func (tc TextureColors) ColorFor(name string) [3]float32 {
	if c, ok := tc[name]; ok {
		return c
	}
	return [3]float32{127, 127, 127}
}

// shouldSkipTexture reports whether name is the "no-bounce, no-lightmap"
// sentinel texture.
func shouldSkipTexture(name string) bool {
	return strings.EqualFold(name, "skip")
}
