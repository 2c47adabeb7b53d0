// SPDX-License-Identifier: GPL-2.0-or-later

package bspfile

import (
	"bytes"
	"encoding/binary"

	"github.com/pkg/errors"

	"radlight/bsp"
)

// headerSize returns the byte length of this file's fixed header (magic/
// version plus the lump directory), the point at which lump data starts.
func (f *File) headerSize() int {
	base := 4
	if f.dialect == bsp.Quake2 {
		base = 8
	}
	return base + len(f.lumps)*8
}

// Save re-encodes the file with the entity lump replaced by entityText
// (NUL-terminated) and every other lump copied verbatim from the
// original bytes, adjusting the lump directory for the new sizes and
// offsets. This is the only mutation this package performs; everything
// else is decode-only.
func (f *File) Save(entityText string) ([]byte, error) {
	entityIdx := f.entityLumpIndex()
	newEntity := append([]byte(entityText), 0)

	var body bytes.Buffer
	newLumps := make([]lump, len(f.lumps))
	bodyStart := int32(f.headerSize())

	for i, l := range f.lumps {
		data := newEntity
		if i != entityIdx {
			data = lumpBytes(f.raw, l)
		}

		// Lumps are conventionally 4-byte aligned; pad if needed so a
		// re-opened file's integer lumps stay aligned.
		for body.Len()%4 != 0 {
			body.WriteByte(0)
		}

		newLumps[i] = lump{Offset: bodyStart + int32(body.Len()), Length: int32(len(data))}
		if _, err := body.Write(data); err != nil {
			return nil, errors.Wrap(err, "bspfile: writing lump body")
		}
	}

	var out bytes.Buffer
	if f.dialect == bsp.Quake2 {
		out.Write(f.magic[:])
		binary.Write(&out, binary.LittleEndian, f.version)
	} else if f.bsp2 {
		out.Write([]byte(bsp2Magic))
	} else {
		binary.Write(&out, binary.LittleEndian, f.version)
	}

	for _, l := range newLumps {
		binary.Write(&out, binary.LittleEndian, l)
	}
	out.Write(body.Bytes())

	return out.Bytes(), nil
}
