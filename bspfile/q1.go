// SPDX-License-Identifier: GPL-2.0-or-later

package bspfile

import (
	"strings"

	"github.com/pkg/errors"

	"radlight/bsp"
	"radlight/math/vec"
)

func (f *File) loadQuake1(data []byte, headerEnd int) (*File, error) {
	lumps, err := readLumps(data, headerEnd, q1LumpCount)
	if err != nil {
		return nil, err
	}
	f.lumps = lumps
	f.dialect = bsp.Quake1
	f.BSP.Dialect = bsp.Quake1

	if err := f.decodePlanes(lumpBytes(data, lumps[lPlanes])); err != nil {
		return nil, err
	}
	if err := f.decodeVertexes(lumpBytes(data, lumps[lVertexes])); err != nil {
		return nil, err
	}
	if err := f.decodeEdges(lumpBytes(data, lumps[lEdges])); err != nil {
		return nil, err
	}
	if err := f.decodeSurfEdges(lumpBytes(data, lumps[lSurfEdges])); err != nil {
		return nil, err
	}
	if err := f.decodeMipTex(lumpBytes(data, lumps[lTextures])); err != nil {
		return nil, err
	}
	if err := f.decodeTexInfoQ1(lumpBytes(data, lumps[lTexInfo])); err != nil {
		return nil, err
	}
	if err := f.decodeFacesQ1(lumpBytes(data, lumps[lFaces])); err != nil {
		return nil, err
	}
	if err := f.decodeNodesQ1(lumpBytes(data, lumps[lNodes])); err != nil {
		return nil, err
	}
	if err := f.decodeLeafsQ1(lumpBytes(data, lumps[lLeafs])); err != nil {
		return nil, err
	}
	if err := f.decodeMarkSurfaces(lumpBytes(data, lumps[lMarkSurfaces])); err != nil {
		return nil, err
	}
	if err := f.decodeModelsQ1(lumpBytes(data, lumps[lModels])); err != nil {
		return nil, err
	}

	return f, nil
}

// EntityString returns the raw entity lump text (NUL-terminated bytes
// trimmed to the first NUL), for entdict.Parse to consume.
func (f *File) EntityString() []byte {
	raw := lumpBytes(f.raw, f.currentLumps()[f.entityLumpIndex()])
	if i := indexByte(raw, 0); i >= 0 {
		return raw[:i]
	}
	return raw
}

func (f *File) entityLumpIndex() int {
	if f.dialect == bsp.Quake2 {
		return q2LEntities
	}
	return lEntities
}

func (f *File) currentLumps() []lump { return f.lumps }

func indexByte(b []byte, c byte) int {
	for i, v := range b {
		if v == c {
			return i
		}
	}
	return -1
}

func (f *File) decodePlanes(data []byte) error {
	const recSize = 20
	if err := checkRecSize(data, recSize, "planes"); err != nil {
		return err
	}
	n := len(data) / recSize
	recs := make([]q1dPlane, n)
	if err := decodeSlice(data, &recs); err != nil {
		return errors.Wrap(err, "bspfile: decoding planes")
	}
	f.BSP.Planes = make([]bsp.Plane, n)
	for i, r := range recs {
		f.BSP.Planes[i] = bsp.Plane{
			Normal: vec.Vec3{X: r.Normal[0], Y: r.Normal[1], Z: r.Normal[2]},
			Dist:   r.Dist,
			Type:   uint8(r.PlaneType),
		}
	}
	return nil
}

func (f *File) decodeVertexes(data []byte) error {
	const recSize = 12
	if err := checkRecSize(data, recSize, "vertexes"); err != nil {
		return err
	}
	n := len(data) / recSize
	recs := make([][3]float32, n)
	if err := decodeSlice(data, &recs); err != nil {
		return errors.Wrap(err, "bspfile: decoding vertexes")
	}
	f.BSP.Vertices = make([]vec.Vec3, n)
	for i, r := range recs {
		f.BSP.Vertices[i] = vec.FromArray(r)
	}
	return nil
}

func (f *File) decodeEdges(data []byte) error {
	if f.bsp2 {
		const recSize = 8
		if err := checkRecSize(data, recSize, "edges (bsp2)"); err != nil {
			return err
		}
		n := len(data) / recSize
		recs := make([]q1dEdge2, n)
		if err := decodeSlice(data, &recs); err != nil {
			return errors.Wrap(err, "bspfile: decoding edges (bsp2)")
		}
		f.BSP.Edges = make([][2]int32, n)
		for i, r := range recs {
			f.BSP.Edges[i] = [2]int32{int32(r.V[0]), int32(r.V[1])}
		}
		return nil
	}
	const recSize = 4
	if err := checkRecSize(data, recSize, "edges"); err != nil {
		return err
	}
	n := len(data) / recSize
	recs := make([]q1dEdge, n)
	if err := decodeSlice(data, &recs); err != nil {
		return errors.Wrap(err, "bspfile: decoding edges")
	}
	f.BSP.Edges = make([][2]int32, n)
	for i, r := range recs {
		f.BSP.Edges[i] = [2]int32{int32(r.V[0]), int32(r.V[1])}
	}
	return nil
}

func (f *File) decodeSurfEdges(data []byte) error {
	const recSize = 4
	if err := checkRecSize(data, recSize, "surfedges"); err != nil {
		return err
	}
	n := len(data) / recSize
	f.BSP.SurfEdges = make([]int32, n)
	return decodeSlice(data, &f.BSP.SurfEdges)
}

func (f *File) decodeMarkSurfaces(data []byte) error {
	if f.bsp2 {
		const recSize = 4
		if err := checkRecSize(data, recSize, "marksurfaces (bsp2)"); err != nil {
			return err
		}
		n := len(data) / recSize
		recs := make([]int32, n)
		if err := decodeSlice(data, &recs); err != nil {
			return errors.Wrap(err, "bspfile: decoding marksurfaces (bsp2)")
		}
		f.BSP.MarkSurfaces = recs
		return nil
	}
	const recSize = 2
	if err := checkRecSize(data, recSize, "marksurfaces"); err != nil {
		return err
	}
	n := len(data) / recSize
	recs := make([]uint16, n)
	if err := decodeSlice(data, &recs); err != nil {
		return errors.Wrap(err, "bspfile: decoding marksurfaces")
	}
	f.BSP.MarkSurfaces = make([]int32, n)
	for i, r := range recs {
		f.BSP.MarkSurfaces[i] = int32(r)
	}
	return nil
}

func (f *File) decodeTexInfoQ1(data []byte) error {
	const recSize = 40
	if err := checkRecSize(data, recSize, "texinfo"); err != nil {
		return err
	}
	n := len(data) / recSize
	recs := make([]q1dTexInfo, n)
	if err := decodeSlice(data, &recs); err != nil {
		return errors.Wrap(err, "bspfile: decoding texinfo")
	}
	f.BSP.TexInfos = make([]bsp.TexInfo, n)
	for i, r := range recs {
		f.BSP.TexInfos[i] = bsp.TexInfo{Vecs: r.Vecs, MipTex: r.MipTex, Flags: uint32(r.Flags)}
	}
	return nil
}

func (f *File) decodeFacesQ1(data []byte) error {
	f.BSP.Faces = make([]bsp.Face, 0)
	if f.bsp2 {
		const recSize = 28
		if err := checkRecSize(data, recSize, "faces (bsp2)"); err != nil {
			return err
		}
		n := len(data) / recSize
		recs := make([]q1dFace2, n)
		if err := decodeSlice(data, &recs); err != nil {
			return errors.Wrap(err, "bspfile: decoding faces (bsp2)")
		}
		f.BSP.Faces = make([]bsp.Face, n)
		for i, r := range recs {
			f.BSP.Faces[i] = bsp.Face{PlaneNum: r.PlaneNum, Side: r.Side, FirstEdge: r.FirstEdge, NumEdges: r.NumEdges, TexInfo: r.TexInfo}
		}
		return nil
	}
	const recSize = 20
	if err := checkRecSize(data, recSize, "faces"); err != nil {
		return err
	}
	n := len(data) / recSize
	recs := make([]q1dFace, n)
	if err := decodeSlice(data, &recs); err != nil {
		return errors.Wrap(err, "bspfile: decoding faces")
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

func (f *File) decodeNodesQ1(data []byte) error {
	if f.bsp2 {
		const recSize = 44
		if err := checkRecSize(data, recSize, "nodes (bsp2)"); err != nil {
			return err
		}
		n := len(data) / recSize
		recs := make([]q1dNode2, n)
		if err := decodeSlice(data, &recs); err != nil {
			return errors.Wrap(err, "bspfile: decoding nodes (bsp2)")
		}
		f.BSP.Nodes = make([]bsp.Node, n)
		for i, r := range recs {
			f.BSP.Nodes[i] = bsp.Node{PlaneNum: r.PlaneNum, Children: r.Children, FirstFace: int32(r.FirstFace), NumFaces: int32(r.NumFaces)}
		}
		return nil
	}
	const recSize = 24
	if err := checkRecSize(data, recSize, "nodes"); err != nil {
		return err
	}
	n := len(data) / recSize
	recs := make([]q1dNode, n)
	if err := decodeSlice(data, &recs); err != nil {
		return errors.Wrap(err, "bspfile: decoding nodes")
	}
	f.BSP.Nodes = make([]bsp.Node, n)
	for i, r := range recs {
		f.BSP.Nodes[i] = bsp.Node{
			PlaneNum: r.PlaneNum,
			Children: [2]int32{int32(r.Children[0]), int32(r.Children[1])},
			FirstFace: int32(r.FirstFace), NumFaces: int32(r.NumFaces),
		}
	}
	return nil
}

func (f *File) decodeLeafsQ1(data []byte) error {
	if f.bsp2 {
		const recSize = 44
		if err := checkRecSize(data, recSize, "leafs (bsp2)"); err != nil {
			return err
		}
		n := len(data) / recSize
		recs := make([]q1dLeaf2, n)
		if err := decodeSlice(data, &recs); err != nil {
			return errors.Wrap(err, "bspfile: decoding leafs (bsp2)")
		}
		f.BSP.Leaves = make([]bsp.Leaf, n)
		for i, r := range recs {
			f.BSP.Leaves[i] = bsp.Leaf{Contents: r.Contents, FirstMarkSurface: int32(r.FirstMarkSurf), NumMarkSurfaces: int32(r.NumMarkSurf)}
		}
		return nil
	}
	const recSize = 28
	if err := checkRecSize(data, recSize, "leafs"); err != nil {
		return err
	}
	n := len(data) / recSize
	recs := make([]q1dLeaf, n)
	if err := decodeSlice(data, &recs); err != nil {
		return errors.Wrap(err, "bspfile: decoding leafs")
	}
	f.BSP.Leaves = make([]bsp.Leaf, n)
	for i, r := range recs {
		f.BSP.Leaves[i] = bsp.Leaf{Contents: r.Contents, FirstMarkSurface: int32(r.FirstMarkSurf), NumMarkSurfaces: int32(r.NumMarkSurf)}
	}
	return nil
}

func (f *File) decodeModelsQ1(data []byte) error {
	const recSize = 64
	if err := checkRecSize(data, recSize, "models"); err != nil {
		return err
	}
	n := len(data) / recSize
	recs := make([]q1dModel, n)
	if err := decodeSlice(data, &recs); err != nil {
		return errors.Wrap(err, "bspfile: decoding models")
	}
	f.BSP.Models = make([]bsp.Model, n)
	for i, r := range recs {
		f.BSP.Models[i] = bsp.Model{
			Mins: vec.FromArray(r.Mins), Maxs: vec.FromArray(r.Maxs),
			HeadNode: r.HeadNode, FirstFace: r.FirstFace, NumFaces: r.NumFaces,
		}
	}
	return nil
}

func (f *File) decodeMipTex(data []byte) error {
	if len(data) < 4 {
		return nil
	}
	numTex := int32LE(data[0:4])
	if numTex <= 0 {
		return nil
	}
	if int64(4)+int64(numTex)*4 > int64(len(data)) {
		return errors.Errorf("bspfile: miptex directory (%d entries) overruns a %d-byte lump", numTex, len(data))
	}
	offsets := make([]int32, numTex)
	for i := range offsets {
		offsets[i] = int32LE(data[4+i*4 : 8+i*4])
	}

	f.BSP.MipTex = make([]bsp.MipTex, numTex)
	for i, off := range offsets {
		if off < 0 {
			continue
		}
		if int64(off)+40 > int64(len(data)) {
			return errors.Errorf("bspfile: miptex %d header at offset %d overruns a %d-byte lump", i, off, len(data))
		}
		rec := data[off : off+40]
		name := strings.TrimRight(string(rec[:16]), "\x00")
		width := uint32LE(rec[16:20])
		height := uint32LE(rec[20:24])
		tex := bsp.MipTex{Name: name, Width: width, Height: height}

		mip0Off := uint32LE(rec[24:28])
		if mip0Off > 0 && uint64(off)+uint64(mip0Off)+uint64(width)*uint64(height) <= uint64(len(data)) {
			start := int(off) + int(mip0Off)
			tex.Indexed = data[start : start+int(width*height)]
		}
		f.BSP.MipTex[i] = tex
	}
	return nil
}

func int32LE(b []byte) int32  { return int32(uint32LE(b)) }
func uint32LE(b []byte) uint32 {
	return uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24
}
