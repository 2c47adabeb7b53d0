// SPDX-License-Identifier: GPL-2.0-or-later

// Package bspfile decodes and re-encodes the on-disk BSP29/BSP2 (Quake 1)
// and IBSP38 (Quake 2) lump formats into the package bsp in-memory view.
// It is the file I/O layer spec.md treats as an external collaborator;
// everything else in this repository only ever sees a *bsp.BSP.
package bspfile

// lump is the on-disk (offset, length) directory entry, called lump_t in
// the reference tools.
type lump struct {
	Offset int32
	Length int32
}

// Q1 lump indices, in header order.
const (
	lEntities = iota
	lPlanes
	lTextures
	lVertexes
	lVisibility
	lNodes
	lTexInfo
	lFaces
	lLighting
	lClipNodes
	lLeafs
	lMarkSurfaces
	lEdges
	lSurfEdges
	lModels
	q1LumpCount
)

// Q2 lump indices, in header order; IBSP has more lumps than Q1 (areas,
// visibility format differs, brushes, pop) but only the ones package bsp
// consumes are named here.
const (
	q2LEntities = iota
	q2LPlanes
	q2LVertexes
	q2LVisibility
	q2LNodes
	q2LTexInfo
	q2LFaces
	q2LLighting
	q2LLeafs
	q2LLeafFaces
	q2LLeafBrushes
	q2LEdges
	q2LSurfEdges
	q2LModels
	q2LBrushes
	q2LBrushSides
	q2LPop
	q2LAreas
	q2LAreaPortals
	q2LumpCount
)

const (
	bsp29Version = 29
	bsp2Magic    = "BSP2"
	ibspMagic    = "IBSP"
	ibspVersion  = 38
)

// q1dPlane, q1dFace, etc. are the raw on-disk records, little-endian,
// matching the classic .bsp layout; see DESIGN.md for the reference this
// was grounded on.
type q1dPlane struct {
	Normal   [3]float32
	Dist     float32
	PlaneType int32
}

type q1dFace struct {
	PlaneNum  int16
	Side      int16
	FirstEdge int32
	NumEdges  int16
	TexInfo   int16
	Styles    [4]uint8
	LightOfs  int32
}

// q1dFace2 is the BSP2 (32-bit) extended widths variant of q1dFace.
type q1dFace2 struct {
	PlaneNum  int32
	Side      int32
	FirstEdge int32
	NumEdges  int32
	TexInfo   int32
	Styles    [4]uint8
	LightOfs  int32
}

type q1dEdge struct {
	V [2]uint16
}

type q1dEdge2 struct {
	V [2]uint32
}

type q1dNode struct {
	PlaneNum int32
	Children [2]int16
	Mins     [3]int16
	Maxs     [3]int16
	FirstFace uint16
	NumFaces  uint16
}

type q1dNode2 struct {
	PlaneNum int32
	Children [2]int32
	Mins     [3]float32
	Maxs     [3]float32
	FirstFace uint32
	NumFaces  uint32
}

type q1dLeaf struct {
	Contents     int32
	VisOfs       int32
	Mins, Maxs   [3]int16
	FirstMarkSurf uint16
	NumMarkSurf   uint16
	AmbientLevel [4]uint8
}

type q1dLeaf2 struct {
	Contents     int32
	VisOfs       int32
	Mins, Maxs   [3]float32
	FirstMarkSurf uint32
	NumMarkSurf   uint32
	AmbientLevel [4]uint8
}

type q1dModel struct {
	Mins, Maxs [3]float32
	Origin     [3]float32
	HeadNode   [4]int32
	VisLeafs   int32
	FirstFace  int32
	NumFaces   int32
}

type q1dTexInfo struct {
	Vecs    [2][4]float32
	MipTex  int32
	Flags   int32
}

type q1MipTexHeader struct {
	NumTex int32
}

type q1dMipTex struct {
	Name       [16]byte
	Width      uint32
	Height     uint32
	Offsets    [4]uint32
}

// q2dFace, q2dTexInfo etc. are the IBSP38 counterparts.
type q2dFace struct {
	PlaneNum  uint16
	Side      int16
	FirstEdge int32
	NumEdges  int16
	TexInfo   int16
	Styles    [4]uint8
	LightOfs  int32
}

type q2dEdge struct {
	V [2]uint16
}

type q2dNode struct {
	PlaneNum int32
	Children [2]int32
	Mins, Maxs [3]int16
	FirstFace uint16
	NumFaces  uint16
}

type q2dLeaf struct {
	Contents     int32
	Cluster      int16
	Area         int16
	Mins, Maxs   [3]int16
	FirstLeafFace uint16
	NumLeafFaces  uint16
	FirstLeafBrush uint16
	NumLeafBrushes uint16
}

type q2dModel struct {
	Mins, Maxs [3]float32
	Origin     [3]float32
	HeadNode   int32
	FirstFace  int32
	NumFaces   int32
}

type q2dTexInfo struct {
	Vecs     [2][4]float32
	Flags    int32
	Value    int32
	Texture  [32]byte
	NextTexInfo int32
}
