// SPDX-License-Identifier: GPL-2.0-or-later

package bsp

import (
	"radlight/conlog"
	"radlight/math/vec"
)

// WorldModel returns model 0, the top-level world brush model. Fatal if the
// BSP has no models at all (spec §7: "BSP has no world model").
func (b *BSP) WorldModel() *Model {
	if len(b.Models) < 1 {
		conlog.Fatalf("BSP has no world model")
	}
	return &b.Models[0]
}

// Node returns Nodes[nodenum], bounds-checked.
func (b *BSP) Node(nodenum int) *Node {
	assertf(nodenum >= 0 && nodenum < len(b.Nodes), "bsp: node %d out of range (have %d)", nodenum, len(b.Nodes))
	return &b.Nodes[nodenum]
}

// Leaf returns the leaf for a non-negative leaf number. Per spec §4.B this
// one is a fatal formatted error rather than an assertion: a corrupt node
// child can point at a leaf number that doesn't exist, and that's corrupt
// input, not a programming error.
func (b *BSP) Leaf(leafnum int) *Leaf {
	if leafnum < 0 || leafnum >= len(b.Leaves) {
		conlog.Fatalf("corrupt BSP: leaf %d out of bounds (have %d)", leafnum, len(b.Leaves))
	}
	return &b.Leaves[leafnum]
}

// LeafFromNodeChild decodes a node child index known to be negative (a
// leaf reference) into the leaf it denotes.
func (b *BSP) LeafFromNodeChild(child int32) *Leaf {
	return b.Leaf(int(-1 - child))
}

// Plane returns Planes[planenum], bounds-checked.
func (b *BSP) Plane(planenum int) *Plane {
	assertf(planenum >= 0 && planenum < len(b.Planes), "bsp: plane %d out of range (have %d)", planenum, len(b.Planes))
	return &b.Planes[planenum]
}

// Face returns Faces[facenum], bounds-checked.
func (b *BSP) Face(facenum int) *Face {
	assertf(facenum >= 0 && facenum < len(b.Faces), "bsp: face %d out of range (have %d)", facenum, len(b.Faces))
	return &b.Faces[facenum]
}

// TexInfo returns TexInfos[texinfo], or nil if the index is out of range
// (negative texinfo indices are used by some faces to mean "none").
func (b *BSP) TexInfo(texinfo int) *TexInfo {
	if texinfo < 0 || texinfo >= len(b.TexInfos) {
		return nil
	}
	return &b.TexInfos[texinfo]
}

// Vertex returns Vertices[num], bounds-checked.
func (b *BSP) Vertex(num int) vec.Vec3 {
	assertf(num >= 0 && num < len(b.Vertices), "bsp: vertex %d out of range (have %d)", num, len(b.Vertices))
	return b.Vertices[num]
}

// FaceVertexAtIndex returns the vertex index at position i (0-based, cyclic
// within the face's edge run) of a face's winding. The endpoint selection
// by surfedge sign is load-bearing for winding direction, per spec §4.B.
func (b *BSP) FaceVertexAtIndex(f *Face, i int) int {
	assertf(i >= 0 && i < int(f.NumEdges), "bsp: face vertex index %d out of range (numedges=%d)", i, f.NumEdges)
	se := b.SurfEdges[int(f.FirstEdge)+i]
	if se < 0 {
		return int(b.Edges[-se][1])
	}
	return int(b.Edges[se][0])
}

// FacePointAtIndex is FaceVertexAtIndex followed by a Vertex lookup.
func (b *BSP) FacePointAtIndex(f *Face, i int) vec.Vec3 {
	return b.Vertex(b.FaceVertexAtIndex(f, i))
}
