// SPDX-License-Identifier: GPL-2.0-or-later

// Package palette converts Quake 1's 8-bit indexed miptex texels to RGBA.
// Classic idTech1 miptex lumps carry palette indices only; the real color
// table ships as a separate asset (gfx/palette.lmp) that isn't always
// available to a standalone light compiler, so this package falls back to
// a built-in neutral ramp rather than failing outright.
package palette

import "github.com/pkg/errors"

// Table is the active 256-entry RGBA lookup, index*4 -> [r,g,b,a]. It
// starts at Default and is replaced wholesale by Load.
var Table [256 * 4]byte

func init() {
	Table = Default()
}

// Default returns a neutral grayscale ramp, used when no palette asset is
// supplied: texture-color averaging (package bounce) still gets a value
// for every index, just without real texture fidelity.
func Default() [256 * 4]byte {
	var t [256 * 4]byte
	for i := 0; i < 256; i++ {
		v := byte(i)
		t[i*4+0] = v
		t[i*4+1] = v
		t[i*4+2] = v
		t[i*4+3] = 255
	}
	return t
}

// Load replaces Table from a raw gfx/palette.lmp payload: 256 RGB triples,
// alpha forced to 255.
func Load(data []byte) error {
	if len(data) != 256*3 {
		return errors.Errorf("palette: want %d bytes, got %d", 256*3, len(data))
	}
	var t [256 * 4]byte
	for i := 0; i < 256; i++ {
		t[i*4+0] = data[i*3+0]
		t[i*4+1] = data[i*3+1]
		t[i*4+2] = data[i*3+2]
		t[i*4+3] = 255
	}
	Table = t
	return nil
}

// Decode expands 8-bit indexed texel data to RGBA bytes using Table.
func Decode(indexed []byte) []byte {
	out := make([]byte, len(indexed)*4)
	for i, idx := range indexed {
		copy(out[i*4:i*4+4], Table[int(idx)*4:int(idx)*4+4])
	}
	return out
}
