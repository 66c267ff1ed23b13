// Copyright 2025 The ROI Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//    https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package ppm

import (
	"bytes"
	"testing"
)

func TestRoundTrip(t *testing.T) {
	want := &Image{
		Width: 3, Height: 2,
		Pix: []byte{
			255, 0, 0, 0, 255, 0, 0, 0, 255,
			10, 20, 30, 40, 50, 60, 70, 80, 90,
		},
	}
	buf := &bytes.Buffer{}
	if err := Encode(buf, want); err != nil {
		t.Fatalf("Encode: %v", err)
	}

	got, err := Decode(buf)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if got.Width != want.Width || got.Height != want.Height {
		t.Fatalf("dims: got %dx%d, want %dx%d", got.Width, got.Height, want.Width, want.Height)
	}
	if !bytes.Equal(got.Pix, want.Pix) {
		t.Fatalf("Pix mismatch: got %v, want %v", got.Pix, want.Pix)
	}
}

func TestDecodeRejectsBadMagic(t *testing.T) {
	if _, err := Decode(bytes.NewReader([]byte("P5\n1 1\n255\n\x00"))); err != ErrNotPPM {
		t.Fatalf("Decode: got %v, want ErrNotPPM", err)
	}
}

func TestDecodeSkipsComments(t *testing.T) {
	data := "P6\n# a comment\n2 1 # trailing comment\n255\n\xff\x00\x00\x00\xff\x00"
	img, err := Decode(bytes.NewReader([]byte(data)))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if img.Width != 2 || img.Height != 1 {
		t.Fatalf("dims: got %dx%d, want 2x1", img.Width, img.Height)
	}
}

func TestDecodeRejectsUnsupportedMaxVal(t *testing.T) {
	data := "P6\n1 1\n65535\n\x00\x00"
	if _, err := Decode(bytes.NewReader([]byte(data))); err != ErrUnsupportedMaxVal {
		t.Fatalf("Decode: got %v, want ErrUnsupportedMaxVal", err)
	}
}
