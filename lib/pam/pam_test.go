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

package pam

import (
	"bytes"
	"testing"
)

func TestRoundTripRGBA(t *testing.T) {
	want := &Image{
		Width: 2, Height: 1, Channels: 4,
		Pix: []byte{255, 0, 0, 128, 0, 255, 0, 255},
	}
	buf := &bytes.Buffer{}
	if err := Encode(buf, want); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	got, err := Decode(buf)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if got.Width != want.Width || got.Height != want.Height || got.Channels != want.Channels {
		t.Fatalf("got %+v, want dims matching %+v", got, want)
	}
	if !bytes.Equal(got.Pix, want.Pix) {
		t.Fatalf("Pix mismatch: got %v, want %v", got.Pix, want.Pix)
	}
}

func TestRoundTripRGB(t *testing.T) {
	want := &Image{
		Width: 1, Height: 1, Channels: 3,
		Pix: []byte{10, 20, 30},
	}
	buf := &bytes.Buffer{}
	if err := Encode(buf, want); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	got, err := Decode(buf)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !bytes.Equal(got.Pix, want.Pix) {
		t.Fatalf("Pix mismatch: got %v, want %v", got.Pix, want.Pix)
	}
}

func TestDecodeRejectsBadMagic(t *testing.T) {
	if _, err := Decode(bytes.NewReader([]byte("P6\n1 1\n255\n\x00\x00\x00"))); err != ErrNotPAM {
		t.Fatalf("Decode: got %v, want ErrNotPAM", err)
	}
}

func TestDecodeRejectsUnsupportedTupleType(t *testing.T) {
	data := "P7\nWIDTH 1\nHEIGHT 1\nDEPTH 1\nMAXVAL 255\nTUPLTYPE GRAYSCALE\nENDHDR\n\x00"
	if _, err := Decode(bytes.NewReader([]byte(data))); err != ErrUnsupportedTupleType {
		t.Fatalf("Decode: got %v, want ErrUnsupportedTupleType", err)
	}
}
