// SPDX-License-Identifier: GPL-2.0-or-later

package bounce

import (
	"runtime"
	"sync"
	"sync/atomic"

	"radlight/bsp"
	"radlight/light"
	"radlight/math/vec"
	"radlight/winding"
)

// patchSize is the maximum side length, in world units, of a diced
// bounce patch.
const patchSize = 64

// minTotalArea rejects a face whose diced patches sum to less area than
// this (degenerate slivers).
const minTotalArea = 1

// DirectLightingFunc samples direct lighting at point (with its surface
// normal) and returns the per-style contribution; it's an external
// collaborator this package never implements itself.
type DirectLightingFunc func(point, normal vec.Vec3) map[int]vec.Vec3

// ModelInfoFunc reports, for a given facenum, whether the face casts
// shadows and participates in bounce generation at all; returning
// ok=false means "skip this face", mirroring ModelInfoForFace returning
// nothing in the original.
type ModelInfoFunc func(facenum int) (shadow bool, ok bool)

// VisApproxFunc optionally estimates a world-space AABB a bouncelight is
// visible from, used to cull it early during the direct-lighting pass
// that consumes Bouncelights. Returning ok=false leaves the bouncelight
// unbounded.
type VisApproxFunc func(b *light.Bouncelight) (mins, maxs vec.Vec3, ok bool)

// Options configures Generate.
type Options struct {
	DirectLighting DirectLightingFunc
	ModelInfo      ModelInfoFunc
	VisApprox      VisApproxFunc // nil if novisapprox
	Colors         TextureColors
	ColorScale     float32 // bouncecolorscale, 0..1
	Workers        int     // 0 -> runtime.GOMAXPROCS(0)
}

// Result is the output of Generate: the flat Bouncelights slice plus the
// per-facenum index into it, matching radlights/radlightsByFacenum in
// the original.
type Result struct {
	mu sync.Mutex

	Bouncelights      []*light.Bouncelight
	BouncelightsByFace map[int][]int
}

func (r *Result) append(facenum int, bl *light.Bouncelight) {
	r.mu.Lock()
	defer r.mu.Unlock()
	idx := len(r.Bouncelights)
	r.Bouncelights = append(r.Bouncelights, bl)
	r.BouncelightsByFace[facenum] = append(r.BouncelightsByFace[facenum], idx)
}

// Generate runs the per-face bounce-light pass in parallel across the
// world model's faces, following the work-queue scheduling model of spec
// §4.G/§5: workers share read-only BSP/texture-color state and append to
// a single shared Result only under its mutex.
func Generate(b *bsp.BSP, opt Options) *Result {
	result := &Result{BouncelightsByFace: make(map[int][]int)}

	model := b.WorldModel()
	first := int(model.FirstFace)
	count := int(model.NumFaces)

	workers := opt.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	var next atomic.Int64
	next.Store(int64(first))
	end := int64(first + count)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				facenum := next.Add(1) - 1
				if facenum >= end {
					return
				}
				processFace(b, int(facenum), opt, result)
			}
		}()
	}
	wg.Wait()

	return result
}

func processFace(b *bsp.BSP, facenum int, opt Options, result *Result) {
	if opt.ModelInfo != nil {
		shadow, ok := opt.ModelInfo(facenum)
		if !ok || !shadow {
			return
		}
	}

	face := b.Face(facenum)
	if !b.FaceIsLightmapped(face) {
		return
	}
	texname := b.FaceTextureName(face)
	if shouldSkipTexture(texname) {
		return
	}
	if ti := b.TexInfo(int(face.TexInfo)); ti != nil && ti.ExtendedFlags&bsp.TexInfoNoBounce != 0 {
		return
	}

	w := winding.FromFace(b, face)
	area := w.Area()
	if area <= 0 {
		return
	}

	normal := b.FaceNormal(face)

	sums := make(map[int]vec.Vec3)
	var totalArea float32
	winding.Dice(w, patchSize, func(center vec.Vec3, patchArea float32) {
		if opt.DirectLighting == nil {
			return
		}
		sample := vec.Add(center, normal)
		for style, rgb := range opt.DirectLighting(sample, normal) {
			sums[style] = vec.Add(sums[style], rgb.Scale(patchArea))
		}
		totalArea += patchArea
	})
	if totalArea < minTotalArea {
		return
	}

	texColor := opt.Colors.ColorFor(texname)
	blend := [3]float32{
		opt.ColorScale*texColor[0] + (1-opt.ColorScale)*127,
		opt.ColorScale*texColor[1] + (1-opt.ColorScale)*127,
		opt.ColorScale*texColor[2] + (1-opt.ColorScale)*127,
	}

	colorByStyle := make(map[int]vec.Vec3, len(sums))
	maxColor := vec.Vec3{}
	for style, sum := range sums {
		avg := sum.Scale(1 / totalArea)
		emission := vec.Vec3{
			X: (avg.X / 255) * (blend[0] / 255),
			Y: (avg.Y / 255) * (blend[1] / 255),
			Z: (avg.Z / 255) * (blend[2] / 255),
		}
		colorByStyle[style] = emission
		maxColor = vec.Max(maxColor, emission)
	}

	edgePlanes := w.InwardEdgePlanes()
	normals := make([]vec.Vec3, len(edgePlanes))
	dists := make([]float32, len(edgePlanes))
	for i, p := range edgePlanes {
		normals[i] = p.Normal
		dists[i] = p.Dist
	}

	bl := &light.Bouncelight{
		Poly:         []vec.Vec3(w),
		EdgePlaneN:   normals,
		EdgePlaneD:   dists,
		Pos:          vec.Add(w.Center(), normal),
		ColorByStyle: colorByStyle,
		MaxColor:     maxColor,
		Normal:       normal,
		Area:         area,
	}

	if opt.VisApprox != nil {
		if mins, maxs, ok := opt.VisApprox(bl); ok {
			bl.HasBounds = true
			bl.Mins, bl.Maxs = mins, maxs
		}
	}

	result.append(facenum, bl)
}
