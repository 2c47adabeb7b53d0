// SPDX-License-Identifier: GPL-2.0-or-later

package bounce

import (
	"testing"

	"radlight/bsp"
	"radlight/math/vec"
)

func squareFaceBSP() *bsp.BSP {
	return &bsp.BSP{
		Dialect: bsp.Quake1,
		Vertices: []vec.Vec3{
			{X: 0, Y: 0, Z: 0},
			{X: 64, Y: 0, Z: 0},
			{X: 64, Y: 64, Z: 0},
			{X: 0, Y: 64, Z: 0},
		},
		Edges:     [][2]int32{{0, 1}, {1, 2}, {2, 3}, {3, 0}},
		SurfEdges: []int32{0, 1, 2, 3},
		Planes:    []bsp.Plane{{Normal: vec.Vec3{X: 0, Y: 0, Z: 1}, Dist: 0, Type: 2}},
		Faces:     []bsp.Face{{PlaneNum: 0, Side: 0, FirstEdge: 0, NumEdges: 4, TexInfo: 0}},
		TexInfos:  []bsp.TexInfo{{MipTex: 0}},
		MipTex: []bsp.MipTex{
			{Name: "walltex", RGBA: []byte{255, 255, 255, 255}},
		},
		Models: []bsp.Model{
			{
				Mins:      vec.Vec3{X: 0, Y: 0, Z: 0},
				Maxs:      vec.Vec3{X: 64, Y: 64, Z: 0},
				HeadNode:  [4]int32{-1, -1, -1, -1},
				FirstFace: 0,
				NumFaces:  1,
			},
		},
	}
}

func TestGenerateSingleFaceBouncelight(t *testing.T) {
	b := squareFaceBSP()
	colors := MakeTextureColors(b)

	result := Generate(b, Options{
		DirectLighting: func(point, normal vec.Vec3) map[int]vec.Vec3 {
			return map[int]vec.Vec3{0: {X: 200, Y: 200, Z: 200}}
		},
		Colors:     colors,
		ColorScale: 0,
		Workers:    1,
	})

	if len(result.Bouncelights) != 1 {
		t.Fatalf("got %d bouncelights, want 1", len(result.Bouncelights))
	}
	bl := result.Bouncelights[0]

	wantPos := vec.Vec3{X: 32, Y: 32, Z: 1}
	if !vec.Equal(bl.Pos, wantPos) {
		t.Errorf("Pos = %v, want %v", bl.Pos, wantPos)
	}
	if bl.Area != 64*64 {
		t.Errorf("Area = %v, want %v", bl.Area, 64*64)
	}

	got := bl.ColorByStyle[0]
	want := (200.0 / 255.0) * (127.0 / 255.0)
	const tol = 1e-3
	if abs32(got.X-float32(want)) > tol || abs32(got.Y-float32(want)) > tol || abs32(got.Z-float32(want)) > tol {
		t.Errorf("ColorByStyle[0] = %v, want ~(%v,%v,%v)", got, want, want, want)
	}

	if ids, ok := result.BouncelightsByFace[0]; !ok || len(ids) != 1 || ids[0] != 0 {
		t.Errorf("BouncelightsByFace[0] = %v, want [0]", ids)
	}
}

func abs32(f float32) float32 {
	if f < 0 {
		return -f
	}
	return f
}

func TestGenerateSkipsSkipTexture(t *testing.T) {
	b := squareFaceBSP()
	b.MipTex[0].Name = "skip"

	result := Generate(b, Options{
		DirectLighting: func(point, normal vec.Vec3) map[int]vec.Vec3 {
			return map[int]vec.Vec3{0: {X: 200, Y: 200, Z: 200}}
		},
		Colors:  MakeTextureColors(b),
		Workers: 1,
	})

	if len(result.Bouncelights) != 0 {
		t.Errorf("got %d bouncelights for a skip-textured face, want 0", len(result.Bouncelights))
	}
}
