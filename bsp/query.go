// SPDX-License-Identifier: GPL-2.0-or-later

package bsp

import "radlight/math/vec"

// straddleEpsilon is the "too close to call" band used by the recursive
// descents below; points within this distance of a splitting plane are
// tested on both sides. Spec §4.B/§9: load-bearing for finding faces and
// solid volumes coincident with a node plane.
const straddleEpsilon = 0.1

// PointInSolid reports whether point lies in solid (or, for Q1, sky)
// content of model, using hull 0. Bounded first by the model's AABB, per
// spec §4.B.
func (b *BSP) PointInSolid(model *Model, point vec.Vec3) bool {
	for i := 0; i < 3; i++ {
		if point.Idx(i) < model.Mins.Idx(i) || point.Idx(i) > model.Maxs.Idx(i) {
			return false
		}
	}
	return b.pointInSolidNode(model.HeadNode[0], point)
}

// PointInWorld is PointInSolid against the world model (model 0).
func (b *BSP) PointInWorld(point vec.Vec3) bool {
	return b.PointInSolid(b.WorldModel(), point)
}

func (b *BSP) pointInSolidNode(nodenum int32, point vec.Vec3) bool {
	if nodenum < 0 {
		leaf := b.LeafFromNodeChild(nodenum)
		if b.Dialect == Quake2 {
			return leaf.Contents&Q2ContentsSolid != 0
		}
		return leaf.Contents == ContentsSolid || leaf.Contents == ContentsSky
	}

	node := b.Node(int(nodenum))
	dist := b.Plane(int(node.PlaneNum)).DistanceTo(point)

	if dist > straddleEpsilon {
		return b.pointInSolidNode(node.Children[0], point)
	}
	if dist < -straddleEpsilon {
		return b.pointInSolidNode(node.Children[1], point)
	}
	return b.pointInSolidNode(node.Children[0], point) || b.pointInSolidNode(node.Children[1], point)
}

// faceInwardEdgePlanes builds, for each consecutive edge (v_i, v_{i+1}), the
// plane whose normal is cross(normalize(v_{i+1}-v_i), faceNormal) and whose
// distance is dot(normal, v_i) — "inward" because a convex polygon's
// interior has non-negative distance to every one of these. Spec §4.C.
type edgePlane struct {
	normal vec.Vec3
	dist   float32
}

func (b *BSP) faceInwardEdgePlanes(f *Face) []edgePlane {
	n := int(f.NumEdges)
	planes := make([]edgePlane, n)
	faceNormal := b.FaceNormal(f)
	for i := 0; i < n; i++ {
		v0 := b.FacePointAtIndex(f, i)
		v1 := b.FacePointAtIndex(f, (i+1)%n)
		edge := vec.Normalize(vec.Sub(v1, v0))
		normal := vec.Cross(edge, faceNormal)
		planes[i] = edgePlane{normal: normal, dist: vec.Dot(normal, v0)}
	}
	return planes
}

func edgePlanesPointInside(planes []edgePlane, point vec.Vec3) bool {
	for _, p := range planes {
		if vec.Dot(p.normal, point)-p.dist < 0 {
			return false
		}
	}
	return true
}

// LeafnumAt returns the leaf number containing point under model's hull
// 0 tree, by single-path descent (no straddle epsilon — a point on a
// splitting plane is arbitrarily assigned to the front child).
func (b *BSP) LeafnumAt(model *Model, point vec.Vec3) int {
	nodenum := model.HeadNode[0]
	for nodenum >= 0 {
		node := b.Node(int(nodenum))
		dist := b.Plane(int(node.PlaneNum)).DistanceTo(point)
		if dist >= 0 {
			nodenum = node.Children[0]
		} else {
			nodenum = node.Children[1]
		}
	}
	return int(-1 - nodenum)
}

// FindFaceAtPoint searches for a face of model touching point and facing
// wantedNormal. When two faces coincide (e.g. opposite sides of a thin
// water surface) wantedNormal disambiguates which one the caller means.
// Per spec §4.B: same epsilon descent as PointInSolid; at a straddling
// node, every face on that node is checked (skipping faces whose normal
// points away from wantedNormal) before recursing into both children,
// front first.
func (b *BSP) FindFaceAtPoint(model *Model, point, wantedNormal vec.Vec3) *Face {
	return b.findFaceAtPointNode(model.HeadNode[0], point, wantedNormal)
}

func (b *BSP) findFaceAtPointNode(nodenum int32, point, wantedNormal vec.Vec3) *Face {
	if nodenum < 0 {
		return nil
	}

	node := b.Node(int(nodenum))
	dist := b.Plane(int(node.PlaneNum)).DistanceTo(point)

	if dist > straddleEpsilon {
		return b.findFaceAtPointNode(node.Children[0], point, wantedNormal)
	}
	if dist < -straddleEpsilon {
		return b.findFaceAtPointNode(node.Children[1], point, wantedNormal)
	}

	for i := 0; i < int(node.NumFaces); i++ {
		face := b.Face(int(node.FirstFace) + i)
		if vec.Dot(b.FaceNormal(face), wantedNormal) < 0 {
			continue
		}
		if edgePlanesPointInside(b.faceInwardEdgePlanes(face), point) {
			return face
		}
	}

	if m := b.findFaceAtPointNode(node.Children[0], point, wantedNormal); m != nil {
		return m
	}
	return b.findFaceAtPointNode(node.Children[1], point, wantedNormal)
}
