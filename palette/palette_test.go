// SPDX-License-Identifier: GPL-2.0-or-later

package palette

import "testing"

func TestDefaultIsGrayscaleRamp(t *testing.T) {
	d := Default()
	if d[10*4+0] != 10 || d[10*4+1] != 10 || d[10*4+2] != 10 || d[10*4+3] != 255 {
		t.Errorf("Default()[10] = %v, want (10,10,10,255)", d[10*4:10*4+4])
	}
}

func TestLoadRejectsWrongSize(t *testing.T) {
	if err := Load(make([]byte, 10)); err == nil {
		t.Fatal("Load with wrong size: want error, got nil")
	}
}

func TestLoadAndDecode(t *testing.T) {
	data := make([]byte, 256*3)
	data[3*5+0] = 10
	data[3*5+1] = 20
	data[3*5+2] = 30
	if err := Load(data); err != nil {
		t.Fatalf("Load: %v", err)
	}
	defer func() { Table = Default() }()

	out := Decode([]byte{5})
	want := []byte{10, 20, 30, 255}
	for i := range want {
		if out[i] != want[i] {
			t.Errorf("Decode([5]) = %v, want %v", out, want)
			break
		}
	}
}
