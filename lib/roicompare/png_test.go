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

package roicompare

import (
	"bytes"
	"image/png"
	"testing"

	"github.com/chocolate42/roi/lib/roi"
)

func TestWritePNGDecodesWithStandardLibrary(t *testing.T) {
	h := roi.Header{Width: 4, Height: 3, Channels: 4}
	pix := make([]byte, h.PixelCount()*4)
	for i := range pix {
		pix[i] = byte(i)
	}

	buf := &bytes.Buffer{}
	if err := WritePNG(buf, h, pix); err != nil {
		t.Fatalf("WritePNG: %v", err)
	}

	img, err := png.Decode(buf)
	if err != nil {
		t.Fatalf("png.Decode: %v", err)
	}
	b := img.Bounds()
	if b.Dx() != 4 || b.Dy() != 3 {
		t.Fatalf("decoded bounds: got %v, want 4x3", b)
	}
}

func TestCodecString(t *testing.T) {
	cases := map[Codec]string{CodecPNG: "png", CodecLZ4: "lz4", CodecZstd: "zstd"}
	for c, want := range cases {
		if got := c.String(); got != want {
			t.Errorf("Codec(%d).String(): got %q, want %q", c, got, want)
		}
	}
}
