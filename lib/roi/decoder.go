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

// Decoder is a streaming ROI opcode decoder: it holds just enough state
// (the previously-reconstructed pixel, a pending run counter, and a pixel
// cursor) to resume across arbitrarily-sized input and output chunks, so a
// caller can feed it opcode bytes and drain pixel bytes at whatever
// granularity its own buffers allow.
//
// A Decoder never blocks and never errors on "not enough bytes yet": Step
// simply reports how much of src and dst it used, and the caller supplies
// more of each as it becomes available. The only hard decode error is a
// malformed RGBA opcode (one not followed by a recognisable RGB-family
// tag), which cannot be produced by ROI's own encoder and indicates
// corrupt or foreign input.
type Decoder struct {
	Header      Header
	OutChannels int

	prev   [4]byte
	run    uint32
	pixel  uint64
	pixels uint64
}

// NewDecoder returns a Decoder ready to reconstruct h.PixelCount() pixels,
// each emitted as outChannels bytes (3 or 4; 0 means "use h.Channels").
func NewDecoder(h Header, outChannels int) (*Decoder, error) {
	if outChannels == 0 {
		outChannels = int(h.Channels)
	}
	if outChannels != 3 && outChannels != 4 {
		return nil, ErrInvalidChannels
	}
	return &Decoder{
		Header:      h,
		OutChannels: outChannels,
		prev:        seedPixel,
		pixels:      h.PixelCount(),
	}, nil
}

// Done reports whether every pixel the Header describes has been
// produced.
func (d *Decoder) Done() bool {
	return d.pixel >= d.pixels
}

// isColorTag reports whether b1 opens an RGB-family opcode: literal RGB,
// or one of the three LUMA diffs. RUN, RGBA and the (unreachable, given
// the other checks) default case are excluded.
func isColorTag(b1 byte) bool {
	return b1 == tagRGB ||
		(b1&tagLUMA777Mask) == tagLUMA777Value ||
		(b1&tagLUMA464Mask) == tagLUMA464Value ||
		(b1&tagLUMA232Mask) == tagLUMA232Value
}

// colorOpLen returns the number of bytes the RGB-family opcode starting
// with tag b1 occupies.
func colorOpLen(b1 byte) int {
	switch {
	case b1 == tagRGB:
		return 4
	case (b1 & tagLUMA777Mask) == tagLUMA777Value:
		return 3
	case (b1 & tagLUMA464Mask) == tagLUMA464Value:
		return 2
	default:
		return 1
	}
}

// decodeColorOp decodes the RGB-family opcode (RGB or one of the three
// LUMA diffs) starting at src[0], given prev. It assumes the caller has
// already checked len(src) >= colorOpLen(src[0]).
func decodeColorOp(prev [4]byte, src []byte) (cur [4]byte, consumed int) {
	b1 := src[0]
	cur[3] = prev[3]

	switch {
	case b1 == tagRGB:
		cur[0], cur[1], cur[2] = src[1], src[2], src[3]
		return cur, 4

	case (b1 & tagLUMA777Mask) == tagLUMA777Value:
		b2, b3 := src[1], src[2]
		gg7 := ((b2 & 0x03) << 5) | (b1 >> 3)
		rr7 := ((b3 & 0x01) << 6) | (b2 >> 2)
		bb7 := b3 >> 1
		vg := int8(gg7) - 64
		vgr := int8(rr7) - 64
		vgb := int8(bb7) - 64
		cur[0] = prev[0] + byte(vg) + byte(vgr)
		cur[1] = prev[1] + byte(vg)
		cur[2] = prev[2] + byte(vg) + byte(vgb)
		return cur, 3

	case (b1 & tagLUMA464Mask) == tagLUMA464Value:
		b2 := src[1]
		gg6 := b1 >> 2
		rrrr := b2 & 0x0F
		bbbb := b2 >> 4
		vg := int8(gg6) - 32
		vgr := int8(rrrr) - 8
		vgb := int8(bbbb) - 8
		cur[0] = prev[0] + byte(vg) + byte(vgr)
		cur[1] = prev[1] + byte(vg)
		cur[2] = prev[2] + byte(vg) + byte(vgb)
		return cur, 2

	default: // (b1 & tagLUMA232Mask) == tagLUMA232Value
		ggg := (b1 >> 1) & 0x07
		rr := (b1 >> 4) & 0x03
		bb := (b1 >> 6) & 0x03
		vg := int8(ggg) - 4
		vgr := int8(rr) - 2
		vgb := int8(bb) - 2
		cur[0] = prev[0] + byte(vg) + byte(vgr)
		cur[1] = prev[1] + byte(vg)
		cur[2] = prev[2] + byte(vg) + byte(vgb)
		return cur, 1
	}
}

// Step consumes as many whole opcodes from src, and produces as many
// whole pixels into dst, as both buffers allow, stopping when either is
// exhausted, the image is Done, or a malformed opcode is found. It
// returns the number of bytes consumed from src and produced into dst.
func (d *Decoder) Step(src []byte, dst []byte) (consumed, produced int, err error) {
	prev := d.prev
	run := d.run
	pixel := d.pixel
	outChannels := d.OutChannels

	si, di := 0, 0
loop:
	for pixel < d.pixels && di+outChannels <= len(dst) {
		var cur [4]byte

		switch {
		case run > 0:
			run--
			cur = prev

		default:
			if si >= len(src) {
				break loop
			}
			b1 := src[si]

			switch {
			case b1 == tagRGBA:
				if si+1 >= len(src) {
					break loop
				}
				alpha := src[si+1]
				if si+2 >= len(src) {
					break loop
				}
				next := src[si+2]
				if !isColorTag(next) {
					err = ErrTruncated
					break loop
				}
				n := colorOpLen(next)
				if si+2+n > len(src) {
					break loop
				}
				withAlpha := prev
				withAlpha[3] = alpha
				cur, _ = decodeColorOp(withAlpha, src[si+2:si+2+n])
				si += 2 + n

			case (b1 & tagRUNMask) == tagRUNValue && b1 != tagRGB && b1 != tagRGBA:
				x := uint32(b1>>3) & 0x1F
				run = x
				cur = prev
				si++

			default:
				n := colorOpLen(b1)
				if si+n > len(src) {
					break loop
				}
				cur, _ = decodeColorOp(prev, src[si:si+n])
				si += n
			}
		}

		dst[di] = cur[0]
		dst[di+1] = cur[1]
		dst[di+2] = cur[2]
		if outChannels == 4 {
			dst[di+3] = cur[3]
		}
		di += outChannels
		prev = cur
		pixel++
	}

	d.prev = prev
	d.run = run
	d.pixel = pixel
	return si, di, err
}
