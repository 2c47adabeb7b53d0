// SPDX-License-Identifier: GPL-2.0-or-later

package light

import (
	"radlight/math"
	"radlight/math/vec"
)

// SampleDirect returns the direct-light contribution at point (with surface
// normal) from every Light and Sun in the context, keyed by style. It has
// no notion of occlusion: a full solver would trace a visibility ray from
// the sample point to each emitter before adding its contribution, but that
// belongs to the lightmap baker this package feeds, not to the light model
// itself. Bounce-light generation (package bounce) uses this as its
// DirectLighting collaborator.
func (c *Context) SampleDirect(point, normal vec.Vec3) map[int]vec.Vec3 {
	out := make(map[int]vec.Vec3)
	for _, l := range c.Lights {
		if l.Intensity == 0 {
			continue
		}
		if contrib, ok := sampleLight(l, point, normal); ok {
			out[l.Style] = vec.Add(out[l.Style], contrib)
		}
	}
	for _, s := range c.Suns {
		if contrib, ok := sampleSun(s, point, normal); ok {
			out[0] = vec.Add(out[0], contrib)
		}
	}
	return out
}

func sampleLight(l *Light, point, normal vec.Vec3) (vec.Vec3, bool) {
	delta := vec.Sub(l.Origin, point)
	dist := delta.Length()
	if dist < 1 {
		dist = 1
	}
	dir := delta.Scale(1 / dist)

	cos := vec.Dot(dir, normal)
	if cos <= 0 {
		return vec.Vec3{}, false
	}

	scale := attenuate(l.Formula, dist, l.Atten)
	if scale <= 0 {
		return vec.Vec3{}, false
	}

	if l.AngleScale > 0 && l.AngleScale < 1 {
		cos = (1 - l.AngleScale) + l.AngleScale*cos
	}

	if l.Spotlight {
		spotCos := vec.Dot(vec.Negate(dir), l.SpotVec)
		if spotCos < l.SpotFalloff {
			return vec.Vec3{}, false
		}
	}

	intensity := l.Intensity * scale * cos
	if intensity <= 0 {
		return vec.Vec3{}, false
	}
	return l.Color.Scale(intensity / 255), true
}

func sampleSun(s *Sun, point, normal vec.Vec3) (vec.Vec3, bool) {
	dir := vec.Negate(s.Direction)
	cos := vec.Dot(dir, normal)
	if cos <= 0 {
		return vec.Vec3{}, false
	}
	if s.AngleScale > 0 && s.AngleScale < 1 {
		cos = (1 - s.AngleScale) + s.AngleScale*cos
	}
	intensity := s.Intensity * cos
	if intensity <= 0 {
		return vec.Vec3{}, false
	}
	return s.Color.Scale(intensity / 255), true
}

// attenuate returns the distance falloff factor for formula at dist,
// normalized so Linear returns 1 at dist==0.
func attenuate(f Formula, dist, atten float32) float32 {
	switch f {
	case Infinite:
		return 1
	case Inverse, Inverse2A:
		return 1 / (dist * atten / 128)
	case Inverse2:
		d := dist * atten / 128
		return 1 / (d * d)
	case LocalMin:
		return 1 / (dist * atten / 128)
	default: // Linear
		return math.Clamp(float32(0), 1-dist*atten/256, 1)
	}
}
