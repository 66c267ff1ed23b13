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

package roi

import (
	"bytes"
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func mustEncode(t *testing.T, pix []byte, h Header, opts *EncodeOptions) []byte {
	t.Helper()
	out, err := EncodeRaw(pix, h, opts)
	if err != nil {
		t.Fatalf("EncodeRaw: %v", err)
	}
	return out
}

func randomPixels(seed int64, n, channels int) []byte {
	r := rand.New(rand.NewSource(seed))
	pix := make([]byte, n*channels)
	r.Read(pix)
	if channels == 4 {
		// Bias toward opaque (about three pixels in four); the rest take
		// their red byte as alpha, so RGBA opcodes exercise repeated
		// alpha as well as changing alpha, rather than being maximally
		// adversarial.
		for i := 3; i < len(pix); i += 4 {
			switch pix[i] % 4 {
			case 0, 1, 2:
				pix[i] = 255
			default:
				pix[i] = pix[i-3]
			}
		}
	}
	return pix
}

func TestRoundTripScalar(t *testing.T) {
	for _, channels := range []uint8{3, 4} {
		for _, dims := range [][2]uint32{{1, 1}, {7, 5}, {64, 64}, {200, 3}} {
			h := Header{Width: dims[0], Height: dims[1], Channels: channels}
			pix := randomPixels(42, int(h.PixelCount()), int(channels))
			enc := mustEncode(t, pix, h, nil)

			gotH, gotPix, err := DecodeRaw(enc, int(channels), nil)
			if err != nil {
				t.Fatalf("channels=%d dims=%v: DecodeRaw: %v", channels, dims, err)
			}
			if diff := cmp.Diff(h, gotH); diff != "" {
				t.Fatalf("channels=%d dims=%v: header mismatch (-want +got):\n%s", channels, dims, diff)
			}
			if !bytes.Equal(pix, gotPix) {
				t.Fatalf("channels=%d dims=%v: pixel mismatch", channels, dims)
			}
		}
	}
}

func TestRoundTripVectorMatchesScalar(t *testing.T) {
	for _, channels := range []uint8{3, 4} {
		h := Header{Width: 97, Height: 31, Channels: channels}
		pix := randomPixels(7, int(h.PixelCount()), int(channels))

		scalarOut := mustEncode(t, pix, h, &EncodeOptions{Codepath: CodepathScalar})
		vectorOut := mustEncode(t, pix, h, &EncodeOptions{Codepath: CodepathVector})
		if !bytes.Equal(scalarOut, vectorOut) {
			t.Fatalf("channels=%d: vector codepath diverged from scalar codepath", channels)
		}

		_, gotPix, err := DecodeRaw(vectorOut, int(channels), nil)
		if err != nil {
			t.Fatalf("channels=%d: DecodeRaw of vector output: %v", channels, err)
		}
		if !bytes.Equal(pix, gotPix) {
			t.Fatalf("channels=%d: vector round trip mismatch", channels)
		}
	}
}

func TestFlatImageIsAllRuns(t *testing.T) {
	h := Header{Width: 61, Height: 61, Channels: 3}
	pix := make([]byte, h.PixelCount()*3)
	for i := range pix {
		pix[i] = 0x40
	}
	enc := mustEncode(t, pix, h, nil)
	body := enc[HeaderSize:]
	opcodes := body[:len(body)-EndMarkerSize]

	// First pixel differs from the seed (0,0,0) so it needs one diff
	// opcode (a 4-byte RGB op here, since vg = 64 is outside every LUMA
	// range); every subsequent pixel is identical, so the rest must be
	// pure RUN bytes (low 3 bits == 111, and not the RGB/RGBA control
	// bytes).
	if len(opcodes) == 0 {
		t.Fatalf("no opcodes emitted")
	}
	first := colorOpLen(opcodes[0])
	for i, b := range opcodes[first:] {
		if b == tagRGB || b == tagRGBA {
			t.Fatalf("opcode %d: unexpected control byte 0x%02X in flat image", i+first, b)
		}
		if b&tagRUNMask != tagRUNValue {
			t.Fatalf("opcode %d: byte 0x%02X is not a RUN opcode", i+first, b)
		}
	}
}

func TestHeaderRoundTrip(t *testing.T) {
	h := Header{Width: 1920, Height: 1080, Channels: 4, Colorspace: 1}
	var dst []byte
	dst = writeHeader(dst, h)
	if len(dst) != HeaderSize {
		t.Fatalf("writeHeader: got %d bytes, want %d", len(dst), HeaderSize)
	}
	got, rest, err := ParseHeader(dst, nil)
	if err != nil {
		t.Fatalf("ParseHeader: %v", err)
	}
	if got != h {
		t.Fatalf("ParseHeader: got %+v, want %+v", got, h)
	}
	if len(rest) != 0 {
		t.Fatalf("ParseHeader: got %d leftover bytes, want 0", len(rest))
	}
}

func TestParseHeaderRejectsBadMagic(t *testing.T) {
	data := append([]byte("roif"), make([]byte, HeaderSize-4)...)
	data[0] = 'x'
	if _, _, err := ParseHeader(data, nil); err != ErrInvalidHeader {
		t.Fatalf("ParseHeader: got %v, want ErrInvalidHeader", err)
	}
}

func TestParseHeaderRejectsBadChannels(t *testing.T) {
	h := Header{Width: 4, Height: 4, Channels: 5}
	var dst []byte
	dst = writeHeader(dst, h)
	if _, _, err := ParseHeader(dst, nil); err != ErrInvalidHeader {
		t.Fatalf("ParseHeader: got %v, want ErrInvalidHeader", err)
	}
}

func TestParseHeaderColorspaceTolerance(t *testing.T) {
	h := Header{Width: 4, Height: 4, Channels: 3, Colorspace: 2}
	var dst []byte
	dst = writeHeader(dst, h)

	if _, _, err := ParseHeader(dst, nil); err != ErrInvalidHeader {
		t.Fatalf("strict ParseHeader: got %v, want ErrInvalidHeader", err)
	}
	if _, _, err := ParseHeader(dst, &DecodeOptions{AllowLegacyColorspace: true}); err != nil {
		t.Fatalf("legacy ParseHeader: got %v, want nil", err)
	}
}

func TestParseHeaderRejectsOversize(t *testing.T) {
	h := Header{Width: 30000, Height: 30000, Channels: 3}
	var dst []byte
	dst = writeHeader(dst, h)
	if _, _, err := ParseHeader(dst, nil); err != ErrInvalidHeader {
		t.Fatalf("ParseHeader: got %v, want ErrInvalidHeader", err)
	}
}

func TestEncodeRawRejectsBadBufferSize(t *testing.T) {
	h := Header{Width: 4, Height: 4, Channels: 3}
	_, err := EncodeRaw(make([]byte, 10), h, nil)
	if err != ErrBufferSize {
		t.Fatalf("EncodeRaw: got %v, want ErrBufferSize", err)
	}
}

func TestDecodeRejectsTruncation(t *testing.T) {
	h := Header{Width: 16, Height: 16, Channels: 4}
	pix := randomPixels(9, int(h.PixelCount()), 4)
	enc := mustEncode(t, pix, h, nil)

	for cut := 1; cut <= EndMarkerSize+2; cut++ {
		truncated := enc[:len(enc)-cut]
		if _, _, err := DecodeRaw(truncated, 4, nil); err == nil {
			t.Fatalf("cut=%d: DecodeRaw succeeded on truncated input", cut)
		}
	}
}

// TestSeedPixelDiff is the worked "pixel equal to the seed" scenario:
// the very first pixel of an image, when identical to the implicit seed
// pixel (0,0,0,255), is a zero diff and so counts toward a run; at the
// end of the image that run of 1 is flushed as the RUN byte 0x07.
func TestSeedPixelDiff(t *testing.T) {
	h := Header{Width: 1, Height: 1, Channels: 3}
	enc := mustEncode(t, []byte{0, 0, 0}, h, nil)
	body := enc[HeaderSize:]
	if len(body) < 1 {
		t.Fatalf("no opcode byte emitted")
	}
	if got, want := body[0], byte(0x07); got != want {
		t.Fatalf("seed-pixel opcode: got 0x%02X, want 0x%02X", got, want)
	}
}

// TestChannelCoercion exercises requestedChannels not matching the
// stream's own Header.Channels: decoding a 4-channel stream while
// requesting 3 must discard alpha without corrupting RGB, and decoding a
// 3-channel stream while requesting 4 must synthesize alpha 255 for
// every pixel.
func TestChannelCoercion(t *testing.T) {
	h4 := Header{Width: 9, Height: 5, Channels: 4}
	pix4 := randomPixels(23, int(h4.PixelCount()), 4)
	enc4 := mustEncode(t, pix4, h4, nil)

	_, got3, err := DecodeRaw(enc4, 3, nil)
	if err != nil {
		t.Fatalf("DecodeRaw requesting 3 channels from a 4-channel stream: %v", err)
	}
	if len(got3) != int(h4.PixelCount())*3 {
		t.Fatalf("got %d bytes, want %d", len(got3), int(h4.PixelCount())*3)
	}
	for i := uint64(0); i < h4.PixelCount(); i++ {
		want := pix4[i*4 : i*4+3]
		got := got3[i*3 : i*3+3]
		if !bytes.Equal(want, got) {
			t.Fatalf("pixel %d: got %v, want %v (alpha should be discarded, not corrupt RGB)", i, got, want)
		}
	}

	h3 := Header{Width: 9, Height: 5, Channels: 3}
	pix3 := randomPixels(23, int(h3.PixelCount()), 3)
	enc3 := mustEncode(t, pix3, h3, nil)

	_, got4, err := DecodeRaw(enc3, 4, nil)
	if err != nil {
		t.Fatalf("DecodeRaw requesting 4 channels from a 3-channel stream: %v", err)
	}
	if len(got4) != int(h3.PixelCount())*4 {
		t.Fatalf("got %d bytes, want %d", len(got4), int(h3.PixelCount())*4)
	}
	for i := uint64(0); i < h3.PixelCount(); i++ {
		wantRGB := pix3[i*3 : i*3+3]
		got := got4[i*4 : i*4+4]
		if !bytes.Equal(wantRGB, got[:3]) {
			t.Fatalf("pixel %d: got RGB %v, want %v", i, got[:3], wantRGB)
		}
		if got[3] != 255 {
			t.Fatalf("pixel %d: got alpha %d, want 255", i, got[3])
		}
	}
}

// TestOpcodeSelectionMinimality decodes every RGB-family opcode an
// encode emitted and independently re-derives, from the reconstructed
// diff, the smallest opcode that could have encoded it. classifyAndEmit
// always picks LUMA232 before LUMA464 before LUMA777 before RGB, so no
// emitted opcode should ever be wider than the narrowest one whose
// range covers the diff.
func TestOpcodeSelectionMinimality(t *testing.T) {
	for _, channels := range []uint8{3, 4} {
		h := Header{Width: 53, Height: 37, Channels: channels}
		pix := randomPixels(17, int(h.PixelCount()), int(channels))
		enc := mustEncode(t, pix, h, &EncodeOptions{Codepath: CodepathScalar})
		body := enc[HeaderSize : len(enc)-EndMarkerSize]

		prev := seedPixel
		for i := 0; i < len(body); {
			b1 := body[i]
			switch {
			case b1 == tagRGBA:
				// The alpha value itself never affects opcode selection;
				// only the RGB-family opcode that follows does, decoded
				// on the next loop iteration.
				i += 2

			case (b1&tagRUNMask) == tagRUNValue && b1 != tagRGB && b1 != tagRGBA:
				i++

			default:
				n := colorOpLen(b1)
				cur, _ := decodeColorOp(prev, body[i:i+n])

				vr := wrapDiff(cur[0], prev[0])
				vg := wrapDiff(cur[1], prev[1])
				vb := wrapDiff(cur[2], prev[2])
				vgr := vr - vg
				vgb := vb - vg
				ar := foldMagnitude(vgr)
				ab := foldMagnitude(vgb)
				ag := foldMagnitude(vg)
				arb := ar | ab

				wantLen := 4
				switch {
				case arb < 2 && ag < 4:
					wantLen = 1
				case arb < 8 && ag < 32:
					wantLen = 2
				case (arb | ag) < 64:
					wantLen = 3
				}
				if n != wantLen {
					t.Fatalf("channels=%d byte %d: opcode used %d bytes, smallest possible is %d (arb=%d ag=%d)",
						channels, i, n, wantLen, arb, ag)
				}

				prev = cur
				i += n
			}
		}
	}
}

// TestVectorWindowAlphaFallback is the worked "one alpha change inside a
// 16-pixel window" scenario: the 4-pixel group containing the alpha
// change must take encodeGroupScalar's per-pixel fallback instead of
// encodeGroupBranchless's table-driven path, and the vector codepath
// must still match the scalar codepath byte for byte.
func TestVectorWindowAlphaFallback(t *testing.T) {
	h := Header{Width: 16, Height: 1, Channels: 4}
	pix := randomPixels(5, 16, 4)
	for i := 3; i < len(pix); i += 4 {
		pix[i] = 255
	}
	pix[9*4+3] = 128 // lone non-opaque pixel: alpha changes at pixels 9 and 10, both inside the window's third 4-pixel group

	scalarOut := mustEncode(t, pix, h, &EncodeOptions{Codepath: CodepathScalar})
	vectorOut := mustEncode(t, pix, h, &EncodeOptions{Codepath: CodepathVector})
	if !bytes.Equal(scalarOut, vectorOut) {
		t.Fatalf("vector codepath diverged from scalar codepath with a mid-window alpha change")
	}

	_, gotPix, err := DecodeRaw(vectorOut, 4, nil)
	if err != nil {
		t.Fatalf("DecodeRaw: %v", err)
	}
	if !bytes.Equal(pix, gotPix) {
		t.Fatalf("round trip mismatch with a mid-window alpha change")
	}
}

// TestStreamingDecodeByteAtATime is the worked "feed the decoder one
// byte at a time" scenario: the input made available to Decoder.Step
// grows by a single byte per call (bytes it has not yet consumed are
// offered again), with a single pixel's worth of output room per call,
// and it must still reconstruct the image identically to a one-shot
// DecodeRaw.
func TestStreamingDecodeByteAtATime(t *testing.T) {
	h := Header{Width: 23, Height: 11, Channels: 4}
	pix := randomPixels(31, int(h.PixelCount()), 4)
	enc := mustEncode(t, pix, h, nil)

	_, wantPix, err := DecodeRaw(enc, 4, nil)
	if err != nil {
		t.Fatalf("DecodeRaw: %v", err)
	}

	parsedH, body, err := ParseHeader(enc, nil)
	if err != nil {
		t.Fatalf("ParseHeader: %v", err)
	}
	dec, err := NewDecoder(parsedH, 4)
	if err != nil {
		t.Fatalf("NewDecoder: %v", err)
	}

	out := make([]byte, 0, parsedH.PixelCount()*4)
	pixelBuf := make([]byte, 4)
	si, avail := 0, 0
	for !dec.Done() {
		if avail < len(body) {
			avail++
		}
		n, m, stepErr := dec.Step(body[si:avail], pixelBuf)
		if stepErr != nil {
			t.Fatalf("Step: %v", stepErr)
		}
		if n == 0 && m == 0 && avail == len(body) {
			t.Fatalf("ran out of input before decoding finished")
		}
		si += n
		out = append(out, pixelBuf[:m]...)
	}

	if !bytes.Equal(wantPix, out) {
		t.Fatalf("byte-at-a-time streaming decode mismatch")
	}
}

func TestPackLUMA777RoundTrip(t *testing.T) {
	for vg := int8(-64); vg < 63; vg += 7 {
		for vgr := int8(-64); vgr < 63; vgr += 11 {
			for vgb := int8(-64); vgb < 63; vgb += 13 {
				b1, b2, b3 := packLUMA777(vg, vgr, vgb)
				prev := [4]byte{100, 100, 100, 255}
				cur, n := decodeColorOp(prev, []byte{b1, b2, b3, 0})
				if n != 3 {
					t.Fatalf("decodeColorOp: consumed %d bytes, want 3", n)
				}
				gotVg := wrapDiff(cur[1], prev[1])
				gotVr := wrapDiff(cur[0], prev[0]) - gotVg
				gotVb := wrapDiff(cur[2], prev[2]) - gotVg
				if gotVg != vg || gotVr != vgr || gotVb != vgb {
					t.Fatalf("vg=%d vgr=%d vgb=%d: round trip got vg=%d vgr=%d vgb=%d",
						vg, vgr, vgb, gotVg, gotVr, gotVb)
				}
			}
		}
	}
}
