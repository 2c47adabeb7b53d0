// SPDX-License-Identifier: GPL-2.0-or-later

package bspfile

import (
	"bytes"
	"encoding/binary"

	"github.com/pkg/errors"

	"radlight/bsp"
)

// File is a loaded BSP file: the decoded view plus enough of the
// original raw lump bytes to write the file back out with only the
// entity lump changed.
type File struct {
	BSP bsp.BSP

	dialect  bsp.Dialect
	bsp2     bool
	raw      []byte
	lumps    []lump
	version  int32
	magic    [4]byte
}

// Load decodes a Quake 1 (BSP29/BSP2) or Quake 2 (IBSP38) file from data.
func Load(data []byte) (*File, error) {
	if len(data) < 4 {
		return nil, errors.New("bspfile: file too small to contain a header")
	}

	var magic [4]byte
	copy(magic[:], data[:4])

	f := &File{raw: data, magic: magic}

	switch string(magic[:]) {
	case ibspMagic:
		return f.loadQuake2(data)
	case bsp2Magic:
		f.bsp2 = true
		return f.loadQuake1(data, 4)
	default:
		// Q1 BSP29 has no magic, just a little-endian int32 version at
		// offset 0.
		version := int32(binary.LittleEndian.Uint32(data[:4]))
		if version != bsp29Version {
			return nil, errors.Errorf("bspfile: unrecognized header (version=%d, magic=%q)", version, magic)
		}
		f.version = version
		return f.loadQuake1(data, 4)
	}
}

func readLumps(data []byte, offset int, n int) ([]lump, error) {
	lumps := make([]lump, n)
	r := bytes.NewReader(data[offset:])
	for i := 0; i < n; i++ {
		if err := binary.Read(r, binary.LittleEndian, &lumps[i]); err != nil {
			return nil, errors.Wrapf(err, "bspfile: reading lump directory entry %d", i)
		}
		if lumps[i].Offset < 0 || lumps[i].Length < 0 ||
			int64(lumps[i].Offset)+int64(lumps[i].Length) > int64(len(data)) {
			return nil, errors.Errorf("bspfile: lump %d out of bounds (offset=%d length=%d file=%d bytes)",
				i, lumps[i].Offset, lumps[i].Length, len(data))
		}
	}
	return lumps, nil
}

// lumpBytes slices a lump's payload out of data. It's only ever called
// with a lump readLumps has already bounds-checked.
func lumpBytes(data []byte, l lump) []byte {
	return data[l.Offset : l.Offset+l.Length]
}

func decodeSlice(data []byte, out interface{}) error {
	r := bytes.NewReader(data)
	return binary.Read(r, binary.LittleEndian, out)
}

// checkRecSize rejects a lump whose declared length isn't an exact
// multiple of its fixed-size record, which would otherwise either drop a
// truncated trailing record or make decodeSlice read past the intended
// count.
func checkRecSize(data []byte, recSize int, what string) error {
	if len(data)%recSize != 0 {
		return errors.Errorf("bspfile: %s lump size %d is not a multiple of record size %d", what, len(data), recSize)
	}
	return nil
}
