// SPDX-License-Identifier: GPL-2.0-or-later

// Package bsp is the read-only BSP spatial query layer: indexed accessors
// over a loaded map plus the point-in-solid and face-at-point queries the
// lighting pipeline (package light) and bounce generator (package bounce)
// are built on. It knows nothing about how the map was decoded from disk;
// package bspfile owns that and produces the BSP value this package reads.
package bsp

import "radlight/math/vec"

// Dialect distinguishes Quake 1 content-enum semantics from Quake 2
// surface-flag-bitfield semantics, per spec §3's "game dialect flag".
type Dialect int

const (
	Quake1 Dialect = iota
	Quake2
)

// Content/surface flag values. The Quake 1 values are the classic
// CONTENTS_* enum (negative, mutually exclusive); the Quake 2 values are
// SURF_* bitflags returned as-is by Face_ContentsOrSurfaceFlags for that
// dialect. Both are folded into one int space here since a face's
// "contents or surface flags" result (§4.B) is consumed as an opaque
// classification by callers, never arithmetically combined across dialects.
const (
	ContentsEmpty = -1
	ContentsSolid = -2
	ContentsWater = -3
	ContentsSlime = -4
	ContentsLava  = -5
	ContentsSky   = -6
)

const (
	Q2SurfLight      = 1 << 0
	Q2SurfSlick      = 1 << 1
	Q2SurfSky        = 1 << 2
	Q2SurfWarp       = 1 << 3
	Q2SurfTrans33    = 1 << 4
	Q2SurfTrans66    = 1 << 5
	Q2SurfFlowing    = 1 << 6
	Q2SurfNoDraw     = 1 << 7
	Q2SurfTranslucent = Q2SurfTrans33 | Q2SurfTrans66
)

const (
	Q2ContentsSolid = 1 << 0
)

// Plane is a BSP splitting plane: the set of points p with Dot(Normal,p) ==
// Dist. Type tags axis-aligned planes (0,1,2 == X,Y,Z) the way the on-disk
// format does, so callers can take the cheap axis-compare path.
type Plane struct {
	Normal vec.Vec3
	Dist   float32
	Type   uint8
}

// Negated returns the plane with both normal and distance flipped, i.e. the
// same geometric plane seen from the other side.
func (p Plane) Negated() Plane {
	return Plane{Normal: vec.Negate(p.Normal), Dist: -p.Dist, Type: p.Type}
}

// DistanceTo returns the signed distance from point to the plane.
func (p Plane) DistanceTo(point vec.Vec3) float32 {
	if p.Type < 3 {
		return point.Idx(int(p.Type)) - p.Dist
	}
	return vec.Dot(point, p.Normal) - p.Dist
}

// Face is a planar polygon: a run of face.NumEdges entries starting at
// face.FirstEdge in the surfedges table, plus the plane/texinfo it sits on.
type Face struct {
	PlaneNum  int32
	Side      int32 // nonzero: face normal is planes[PlaneNum] negated
	FirstEdge int32
	NumEdges  int32
	TexInfo   int32
}

// Node is an interior BSP tree node: splits space by Planes[PlaneNum] into
// Children[0] (front) and Children[1] (back). A negative child index c
// encodes leaf number -1-c, per spec §3.
type Node struct {
	PlaneNum  int32
	Children  [2]int32
	FirstFace int32
	NumFaces  int32
}

// Leaf is a terminal BSP volume.
type Leaf struct {
	Contents        int32
	FirstMarkSurface int32
	NumMarkSurfaces  int32
}

// Model is a submodel (hull 0 of model 0 is "the world"); HeadNode is
// indexed per hull (hull 0 = full clipping, 1..3 are the bounding-box hulls
// Quake 1 uses for monster/player collision and aren't used by lighting).
type Model struct {
	Mins, Maxs vec.Vec3
	HeadNode   [4]int32
	FirstFace  int32
	NumFaces   int32
}

// TexInfo is the s/t projection basis for a face's texture, plus the
// dialect-specific flag bitfield (unused by Q1, surface flags by Q2) and a
// reference to the texture (by miptex index for Q1, by name for Q2).
type TexInfo struct {
	Vecs      [2][4]float32 // each row is (s or t basis vec3, offset)
	MipTex    int32
	Flags     uint32
	Q2Texture string // populated only for Dialect == Quake2
	Q2Value   int32

	// ExtendedFlags carries compiler-specific per-face bits not part of
	// either dialect's on-disk texinfo, such as NOBOUNCE; populated from
	// a companion lump when present, zero otherwise.
	ExtendedFlags uint32
}

// TexInfoNoBounce marks a face as excluded from bounce-light generation
// regardless of its surface flags.
const TexInfoNoBounce = 1 << 0

// MipTex is a Quake 1 texture: a name, dimensions, and an optional raw
// texel payload (8-bit indexed, or already-RGBA for the "extended" format
// some modern compilers embed — see package palette for the indexed path).
type MipTex struct {
	Name    string
	Width   uint32
	Height  uint32
	Indexed []byte // len == Width*Height, or nil if not embedded
	RGBA    []byte // len == Width*Height*4, or nil if not embedded
}

// BSP is the read-only, in-memory view the rest of this package (and
// package winding, light, bounce) operate on. It's produced by
// bspfile.Load; nothing in this package mutates it.
type BSP struct {
	Dialect Dialect

	Vertices  []vec.Vec3
	Edges     [][2]int32 // unordered vertex index pairs
	SurfEdges []int32    // signed index into Edges; sign selects endpoint order

	Planes   []Plane
	Faces    []Face
	Nodes    []Node
	Leaves   []Leaf
	Models   []Model
	TexInfos []TexInfo
	MipTex   []MipTex

	MarkSurfaces []int32 // face indices, referenced by Leaf.FirstMarkSurface ranges
}
