package vec

import (
	"github.com/chewxy/math32"
)

// Normalize is the value-receiver counterpart of (*Vec3).Normalize, for
// chaining off an expression result (e.g. Normalize(Sub(a, b))) that isn't
// addressable.
func Normalize(v Vec3) Vec3 {
	return v.Normalize()
}

// Negate returns -v.
func Negate(v Vec3) Vec3 {
	return Vec3{-v.X, -v.Y, -v.Z}
}

// Max returns the componentwise maximum of a and b.
func Max(a, b Vec3) Vec3 {
	return Vec3{
		X: math32.Max(a.X, b.X),
		Y: math32.Max(a.Y, b.Y),
		Z: math32.Max(a.Z, b.Z),
	}
}

// MangleToVector converts an id-format mangle triple (yaw, pitch, roll), in
// degrees, to a unit direction vector. This is distinct from AngleVectors:
// mangle's component order and sign convention (no -Z flip) are the ones
// light entities use for "mangle" and "_sun_mangle" keys.
func MangleToVector(mangle Vec3) Vec3 {
	deg := math32.Pi / 180
	yaw := mangle.X * deg
	pitch := mangle.Y * deg
	sy, cy := math32.Sincos(yaw)
	sp, cp := math32.Sincos(pitch)
	return Vec3{cy * cp, sy * cp, sp}
}

// FromArray converts a plain [3]float32, as used when decoding BSP lumps
// that store vectors as flat float triples, to a Vec3.
func FromArray(a [3]float32) Vec3 {
	return Vec3{a[0], a[1], a[2]}
}
