// SPDX-License-Identifier: GPL-2.0-or-later

package light

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"radlight/math/vec"
)

// projNear is the near-plane distance Matrix4x4_CM_Projection_Inf is
// always called with; a projected-texture light has no far plane.
const projNear = 4

// quakeAxisSwap is the fixed basis change the original compiler builds
// its modelview matrix from: (x,y,z) -> (-y,z,-x), putting Z going up.
var quakeAxisSwap = mgl32.Mat4{
	0, 0, -1, 0,
	-1, 0, 0, 0,
	0, 1, 0, 0,
	0, 0, 0, 1,
}

// calcFov derives the FOV along the opposite axis from fovX given the
// texture's width/height, from GLQuake's CalcFov.
func calcFov(fovX, width, height float32) float32 {
	x := math32.Tan(fovX / 360 * math32.Pi)
	x = width / x
	a := math32.Atan(height / x)
	return a * 360 / math32.Pi
}

// projectionInf builds an infinite-far-plane perspective matrix for the
// given horizontal/vertical FOV (degrees), from
// Matrix4x4_CM_Projection_Inf.
func projectionInf(fovx, fovy, near float32) mgl32.Mat4 {
	ymax := near * math32.Tan(fovy*math32.Pi/360)
	ymin := -ymax

	var xmax, xmin float32
	if fovx == fovy {
		xmax, xmin = ymax, ymin
	} else {
		xmax = near * math32.Tan(fovx*math32.Pi/360)
		xmin = -xmax
	}

	return mgl32.Mat4{
		2 * near / (xmax - xmin), 0, 0, 0,
		0, 2 * near / (ymax - ymin), 0, 0,
		(xmax + xmin) / (xmax - xmin), (ymax + ymin) / (ymax - ymin), -float32(1<<21) / float32(1<<22), -1,
		0, 0, -2 * near, 0,
	}
}

// modelViewMatrix builds the camera-space transform for a light at
// origin looking along mangle (yaw, pitch, roll degrees), from
// Matrix4x4_CM_ModelViewMatrix.
func modelViewMatrix(mangle, origin vec.Vec3) mgl32.Mat4 {
	deg2rad := func(d float32) float32 { return d * math32.Pi / 180 }
	return quakeAxisSwap.
		Mul4(mgl32.HomogRotate3DX(deg2rad(-mangle.Z))). // roll
		Mul4(mgl32.HomogRotate3DY(deg2rad(mangle.Y))).  // pitch
		Mul4(mgl32.HomogRotate3DZ(deg2rad(-mangle.X))). // yaw
		Mul4(mgl32.Translate3D(-origin.X, -origin.Y, -origin.Z))
}

// makeModelViewProj combines modelViewMatrix and projectionInf into the
// matrix a projected-texture light samples through, from
// Matrix4x4_CM_MakeModelViewProj.
func makeModelViewProj(mangle, origin vec.Vec3, fovx, fovy float32) mgl32.Mat4 {
	return projectionInf(fovx, fovy, projNear).Mul4(modelViewMatrix(mangle, origin))
}
