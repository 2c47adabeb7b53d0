// SPDX-License-Identifier: GPL-2.0-or-later

package bspfile

import (
	"strings"

	"github.com/pkg/errors"

	"radlight/bsp"
	"radlight/math/vec"
)

func (f *File) loadQuake2(data []byte) (*File, error) {
	if len(data) < 8 {
		return nil, errors.New("bspfile: file too small for an IBSP header")
	}
	version := int32LE(data[4:8])
	if version != ibspVersion {
		return nil, errors.Errorf("bspfile: unsupported IBSP version %d", version)
	}
	f.version = version

	lumps, err := readLumps(data, 8, q2LumpCount)
	if err != nil {
		return nil, err
	}
	f.lumps = lumps
	f.dialect = bsp.Quake2
	f.BSP.Dialect = bsp.Quake2

	if err := f.decodePlanesQ2(lumpBytes(data, lumps[q2LPlanes])); err != nil {
		return nil, err
	}
	if err := f.decodeVertexes(lumpBytes(data, lumps[q2LVertexes])); err != nil {
		return nil, err
	}
	if err := f.decodeEdgesQ2(lumpBytes(data, lumps[q2LEdges])); err != nil {
		return nil, err
	}
	if err := f.decodeSurfEdges(lumpBytes(data, lumps[q2LSurfEdges])); err != nil {
		return nil, err
	}
	if err := f.decodeTexInfoQ2(lumpBytes(data, lumps[q2LTexInfo])); err != nil {
		return nil, err
	}
	if err := f.decodeFacesQ2(lumpBytes(data, lumps[q2LFaces])); err != nil {
		return nil, err
	}
	if err := f.decodeNodesQ2(lumpBytes(data, lumps[q2LNodes])); err != nil {
		return nil, err
	}
	if err := f.decodeLeafsQ2(lumpBytes(data, lumps[q2LLeafs])); err != nil {
		return nil, err
	}
	if err := f.decodeModelsQ2(lumpBytes(data, lumps[q2LModels])); err != nil {
		return nil, err
	}
	if err := f.decodeLeafFacesQ2(lumpBytes(data, lumps[q2LLeafFaces])); err != nil {
		return nil, err
	}

	return f, nil
}

func (f *File) decodeLeafFacesQ2(data []byte) error {
	const recSize = 2
	if err := checkRecSize(data, recSize, "leaffaces (ibsp)"); err != nil {
		return err
	}
	n := len(data) / recSize
	recs := make([]uint16, n)
	if err := decodeSlice(data, &recs); err != nil {
		return errors.Wrap(err, "bspfile: decoding leaffaces (ibsp)")
	}
	f.BSP.MarkSurfaces = make([]int32, n)
	for i, r := range recs {
		f.BSP.MarkSurfaces[i] = int32(r)
	}
	return nil
}

func (f *File) decodePlanesQ2(data []byte) error {
	const recSize = 20
	if err := checkRecSize(data, recSize, "planes (ibsp)"); err != nil {
		return err
	}
	n := len(data) / recSize
	recs := make([]q1dPlane, n) // identical layout to Q1's plane_t
	if err := decodeSlice(data, &recs); err != nil {
		return errors.Wrap(err, "bspfile: decoding planes (ibsp)")
	}
	f.BSP.Planes = make([]bsp.Plane, n)
	for i, r := range recs {
		f.BSP.Planes[i] = bsp.Plane{Normal: vec.Vec3{X: r.Normal[0], Y: r.Normal[1], Z: r.Normal[2]}, Dist: r.Dist, Type: uint8(r.PlaneType)}
	}
	return nil
}

func (f *File) decodeEdgesQ2(data []byte) error {
	const recSize = 4
	if err := checkRecSize(data, recSize, "edges (ibsp)"); err != nil {
		return err
	}
	n := len(data) / recSize
	recs := make([]q2dEdge, n)
	if err := decodeSlice(data, &recs); err != nil {
		return errors.Wrap(err, "bspfile: decoding edges (ibsp)")
	}
	f.BSP.Edges = make([][2]int32, n)
	for i, r := range recs {
		f.BSP.Edges[i] = [2]int32{int32(r.V[0]), int32(r.V[1])}
	}
	return nil
}

func (f *File) decodeTexInfoQ2(data []byte) error {
	const recSize = 76
	if err := checkRecSize(data, recSize, "texinfo (ibsp)"); err != nil {
		return err
	}
	n := len(data) / recSize
	recs := make([]q2dTexInfo, n)
	if err := decodeSlice(data, &recs); err != nil {
		return errors.Wrap(err, "bspfile: decoding texinfo (ibsp)")
	}
	f.BSP.TexInfos = make([]bsp.TexInfo, n)
	for i, r := range recs {
		f.BSP.TexInfos[i] = bsp.TexInfo{
			Vecs: r.Vecs, Flags: uint32(r.Flags), Q2Value: r.Value,
			Q2Texture: strings.TrimRight(string(r.Texture[:]), "\x00"),
			MipTex:    -1,
		}
	}
	return nil
}

func (f *File) decodeFacesQ2(data []byte) error {
	const recSize = 20
	if err := checkRecSize(data, recSize, "faces (ibsp)"); err != nil {
		return err
	}
	n := len(data) / recSize
	recs := make([]q2dFace, n)
	if err := decodeSlice(data, &recs); err != nil {
		return errors.Wrap(err, "bspfile: decoding faces (ibsp)")
	}
	f.BSP.Faces = make([]bsp.Face, n)
	for i, r := range recs {
		f.BSP.Faces[i] = bsp.Face{
			PlaneNum: int32(r.PlaneNum), Side: int32(r.Side),
			FirstEdge: r.FirstEdge, NumEdges: int32(r.NumEdges), TexInfo: int32(r.TexInfo),
		}
	}
	return nil
}

func (f *File) decodeNodesQ2(data []byte) error {
	const recSize = 28
	if err := checkRecSize(data, recSize, "nodes (ibsp)"); err != nil {
		return err
	}
	n := len(data) / recSize
	recs := make([]q2dNode, n)
	if err := decodeSlice(data, &recs); err != nil {
		return errors.Wrap(err, "bspfile: decoding nodes (ibsp)")
	}
	f.BSP.Nodes = make([]bsp.Node, n)
	for i, r := range recs {
		f.BSP.Nodes[i] = bsp.Node{PlaneNum: r.PlaneNum, Children: r.Children, FirstFace: int32(r.FirstFace), NumFaces: int32(r.NumFaces)}
	}
	return nil
}

func (f *File) decodeLeafsQ2(data []byte) error {
	const recSize = 28
	if err := checkRecSize(data, recSize, "leafs (ibsp)"); err != nil {
		return err
	}
	n := len(data) / recSize
	recs := make([]q2dLeaf, n)
	if err := decodeSlice(data, &recs); err != nil {
		return errors.Wrap(err, "bspfile: decoding leafs (ibsp)")
	}
	f.BSP.Leaves = make([]bsp.Leaf, n)
	for i, r := range recs {
		// Q2 leaves reference faces indirectly via leaffaces; this view
		// stores the leaf-face range directly in place of Q1's
		// marksurface range so package bsp's accessors stay uniform.
		f.BSP.Leaves[i] = bsp.Leaf{Contents: r.Contents, FirstMarkSurface: int32(r.FirstLeafFace), NumMarkSurfaces: int32(r.NumLeafFaces)}
	}
	return nil
}

func (f *File) decodeModelsQ2(data []byte) error {
	const recSize = 48
	if err := checkRecSize(data, recSize, "models (ibsp)"); err != nil {
		return err
	}
	n := len(data) / recSize
	recs := make([]q2dModel, n)
	if err := decodeSlice(data, &recs); err != nil {
		return errors.Wrap(err, "bspfile: decoding models (ibsp)")
	}
	f.BSP.Models = make([]bsp.Model, n)
	for i, r := range recs {
		f.BSP.Models[i] = bsp.Model{
			Mins: vec.FromArray(r.Mins), Maxs: vec.FromArray(r.Maxs),
			HeadNode: [4]int32{r.HeadNode, -1, -1, -1},
			FirstFace: r.FirstFace, NumFaces: r.NumFaces,
		}
	}
	return nil
}
