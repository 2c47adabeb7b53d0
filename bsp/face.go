// SPDX-License-Identifier: GPL-2.0-or-later

package bsp

import (
	"strings"

	"radlight/math/vec"
)

// FacePlane returns the face's plane, negated when face.Side is set, per spec
// §4.B ("Face → plane").
func (b *BSP) FacePlane(f *Face) Plane {
	p := *b.Plane(int(f.PlaneNum))
	if f.Side != 0 {
		return p.Negated()
	}
	return p
}

// FaceNormal is the normal component of FacePlane.
func (b *BSP) FaceNormal(f *Face) vec.Vec3 {
	return b.FacePlane(f).Normal
}

// FaceTextureName returns, in order: the Q1 miptex name at the face's
// texinfo, the Q2 inline texture name, or "" if neither is present. Per
// spec §4.B this covers both the classic Q1 miptex lump and the "extended"
// format some modern compilers use where RGBA texel data replaces the
// indexed miptex lump but the name lookup is the same shape.
func (b *BSP) FaceTextureName(f *Face) string {
	ti := b.TexInfo(int(f.TexInfo))
	if ti == nil {
		return ""
	}
	if b.Dialect == Quake2 {
		return ti.Q2Texture
	}
	if ti.MipTex >= 0 && int(ti.MipTex) < len(b.MipTex) {
		return b.MipTex[ti.MipTex].Name
	}
	return ""
}

// FaceContentsOrSurfaceFlags returns the Q2 texinfo flags as-is for that
// dialect, or a CONTENTS_* classification derived from the texture name's
// prefix for Q1: "sky*" -> sky, "*lava" -> lava, "*slime" -> slime, a
// leading "*" -> water, else solid. Per spec §4.B.
func (b *BSP) FaceContentsOrSurfaceFlags(f *Face) int {
	if b.Dialect == Quake2 {
		ti := b.TexInfo(int(f.TexInfo))
		if ti == nil {
			return 0
		}
		return int(ti.Flags)
	}
	return textureNameContents(b.FaceTextureName(f))
}

func textureNameContents(name string) int {
	lower := strings.ToLower(name)
	switch {
	case strings.HasPrefix(lower, "sky"):
		return ContentsSky
	case strings.HasPrefix(lower, "*lava"):
		return ContentsLava
	case strings.HasPrefix(lower, "*slime"):
		return ContentsSlime
	case strings.HasPrefix(lower, "*"):
		return ContentsWater
	default:
		return ContentsSolid
	}
}

// FaceIsTranslucent classifies a face as translucent per spec §4.B: on Q2,
// any TRANSLUCENT bit set but not both (the fence-flag combo is opaque); on
// Q1, contents classified as water/lava/slime.
func (b *BSP) FaceIsTranslucent(f *Face) bool {
	flags := b.FaceContentsOrSurfaceFlags(f)
	if b.Dialect == Quake2 {
		t := flags & Q2SurfTranslucent
		return t != 0 && t != Q2SurfTranslucent
	}
	switch flags {
	case ContentsWater, ContentsLava, ContentsSlime:
		return true
	default:
		return false
	}
}

// surfIsLightmapped reports whether the given Q2 surface flags denote a
// lightmapped surface: not a sky, warp (liquid), or no-draw surface.
func surfIsLightmapped(flags uint32) bool {
	const skip = Q2SurfSky | Q2SurfWarp | Q2SurfNoDraw
	return flags&skip == 0
}

// FaceIsLightmapped reports whether the face should receive a lightmap at
// all: on Q2 this is a surface-flag predicate, on Q1 a lightmapped face is
// any non-liquid, non-sky face (liquids and sky get no static lightmap).
func (b *BSP) FaceIsLightmapped(f *Face) bool {
	if b.Dialect == Quake2 {
		ti := b.TexInfo(int(f.TexInfo))
		if ti == nil {
			return false
		}
		return surfIsLightmapped(ti.Flags)
	}
	flags := b.FaceContentsOrSurfaceFlags(f)
	return flags != ContentsSky && flags != ContentsWater && flags != ContentsLava && flags != ContentsSlime
}
