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

// ----------------

// Package roi implements the ROI lossless image file format.
//
// ROI is derived from QOI (the "Quite OK Image" format) but uses a
// different opcode set and little-endian multi-byte payloads, chosen to
// admit vectorised encoder implementations on little-endian hardware. See
// the package-level constants below for the wire format.
//
// The ROI specification is informally this package's source: HeaderSize,
// Magic, the opcode tag masks and values (tagLUMA232Mask etc.), and the encoder in
// scalar.go and vector.go are the normative description.
package roi

import (
	"errors"
)

// HeaderSize is the size, in bytes, of a ROI file header.
const HeaderSize = 14

// Magic is the 4-byte signature every ROI stream starts with.
const Magic = "roif"

// EndMarkerSize is the size, in bytes, of the trailing padding that every
// ROI stream ends with.
const EndMarkerSize = 8

// EndMarker is the exact byte sequence every well-formed ROI stream ends
// with.
var EndMarker = [EndMarkerSize]byte{0, 0, 0, 0, 0, 0, 0, 1}

// MaxPixelGuard bounds width*height. A Header whose Width and Height
// multiply to (or past) this bound is rejected: "height >= MaxPixelGuard /
// width" per the format's oversize guard.
const MaxPixelGuard = 400_000_000

// Opcode tag bytes and masks. Multi-byte diffs are little-endian; RUN,
// RGB and RGBA are single control bytes (RGB and RGBA additionally carry a
// fixed-size payload).
const (
	tagLUMA232Mask  = 0x01 // low 1 bit:  0
	tagLUMA232Value = 0x00

	tagLUMA464Mask  = 0x03 // low 2 bits: 01
	tagLUMA464Value = 0x01

	tagLUMA777Mask  = 0x07 // low 3 bits: 011
	tagLUMA777Value = 0x03

	tagRUNMask  = 0x07 // low 3 bits: 111 (but not 0xF7 or 0xFF)
	tagRUNValue = 0x07

	tagRGB  = 0xF7 // 1111_0111
	tagRGBA = 0xFF // 1111_1111
)

// runRepeat30 is the fully-saturated RUN byte, encoding a run of 30 pixels
// (x = 29 in the low-bit-tag scheme). Longer runs chain multiple of these.
const runRepeat30 = byte((29 << 3) | tagRUNValue)

// maxRunPerByte is the longest run a single RUN byte can encode.
const maxRunPerByte = 30

// seedPixel is the implicit pixel an encoder or decoder starts from.
var seedPixel = [4]byte{0, 0, 0, 255}

var (
	// ErrInvalidHeader is returned when a byte stream's header fails magic,
	// dimension, channel or colorspace validation.
	ErrInvalidHeader = errors.New("roi: invalid header")

	// ErrInvalidDescriptor is returned when an in-memory encode is given a
	// Header that does not describe a valid image (zero dimensions, a
	// Colorspace other than 0 or 1, or width*height at or past
	// MaxPixelGuard). A bad channel count is reported as
	// ErrInvalidChannels instead.
	ErrInvalidDescriptor = errors.New("roi: invalid descriptor")

	// ErrInvalidChannels is returned when a channel count (either the
	// Header's or a requested decode channel count) is neither 3 nor 4.
	ErrInvalidChannels = errors.New("roi: invalid channel count")

	// ErrBufferSize is returned when a caller-supplied pixel buffer's
	// length does not match Width*Height*Channels.
	ErrBufferSize = errors.New("roi: pixel buffer has the wrong length")

	// ErrTruncated is returned by a one-shot Decode when the input ends
	// before pixelCnt pixels have been produced, and by Decoder.Step when
	// an RGBA opcode is not followed by an RGB-family opcode.
	ErrTruncated = errors.New("roi: truncated stream")

	// ErrMissingEndMarker is returned by a one-shot Decode when the bytes
	// immediately following the last pixel's opcode are not the expected
	// 8-byte end marker.
	ErrMissingEndMarker = errors.New("roi: missing end marker")

	// ErrBadArgument mirrors the teacher's own sentinel for nil/invalid
	// arguments to the image.Image-facing Encode/Decode functions.
	ErrBadArgument = errors.New("roi: bad argument")
)

// Header is the per-image descriptor: the 14 decoded header bytes, plus
// the invariants placed on them.
//
// Colorspace is informative only (sRGB with linear alpha, or fully
// linear); it never changes how pixels are encoded or decoded.
type Header struct {
	Width      uint32
	Height     uint32
	Channels   uint8
	Colorspace uint8
}

// Codepath selects which kernel implementation EncodeRaw uses. Both
// kernels are defined to produce byte-identical output for identical
// input; Codepath is purely a speed/architecture choice.
type Codepath int

const (
	// CodepathScalar processes one pixel at a time. It is the reference
	// implementation that every other codepath is checked against.
	CodepathScalar Codepath = iota

	// CodepathVector processes pixels in fixed-size batches, emulating the
	// classification-and-pack phases a hardware SIMD kernel would use (see
	// vector.go). It never changes the emitted bytes.
	CodepathVector
)

// EncodeOptions are optional arguments to EncodeRaw and Encode. The zero
// value selects CodepathScalar.
type EncodeOptions struct {
	Codepath Codepath
}

// DecodeOptions are optional arguments to DecodeRaw and ParseHeader.
type DecodeOptions struct {
	// AllowLegacyColorspace widens header validation to accept
	// Colorspace values 0..=3 instead of just 0..=1. Some historical ROI
	// (and QOI) encoders repurposed colorspace bit 1 to flag "no RLE was
	// used"; that usage was dropped, but streams written by those
	// encoders still decode correctly byte-for-byte, since Colorspace is
	// otherwise uninterpreted by the decoder. Off by default.
	AllowLegacyColorspace bool
}

func maxColorspace(opts *DecodeOptions) uint8 {
	if opts != nil && opts.AllowLegacyColorspace {
		return 3
	}
	return 1
}

// ValidateDescriptor reports whether h describes an image the encoder can
// process: non-zero dimensions, channels of 3 or 4, a Colorspace of 0 or
// 1, and width*height staying under MaxPixelGuard.
func ValidateDescriptor(h Header) error {
	if h.Width == 0 || h.Height == 0 {
		return ErrInvalidDescriptor
	}
	if h.Channels != 3 && h.Channels != 4 {
		return ErrInvalidChannels
	}
	if h.Colorspace > 1 {
		return ErrInvalidDescriptor
	}
	if h.Height >= MaxPixelGuard/h.Width {
		return ErrInvalidDescriptor
	}
	return nil
}

// PixelCount returns Width*Height as a uint64, avoiding the uint32
// overflow that Width*Height could hit as a uint32 product.
func (h Header) PixelCount() uint64 {
	return uint64(h.Width) * uint64(h.Height)
}

// worstCaseBytesPerPixel is the encoder's allocation budget per pixel: an
// RGBA opcode (2 bytes) immediately followed by an RGB opcode (4 bytes)
// for 4-channel input, or just an RGB opcode for 3-channel input.
func worstCaseBytesPerPixel(channels uint8) int {
	if channels == 4 {
		return 6
	}
	return 4
}

func putU32BE(b []byte, v uint32) {
	_ = b[3]
	b[0] = byte(v >> 24)
	b[1] = byte(v >> 16)
	b[2] = byte(v >> 8)
	b[3] = byte(v)
}

func getU32BE(b []byte) uint32 {
	_ = b[3]
	return (uint32(b[0]) << 24) | (uint32(b[1]) << 16) | (uint32(b[2]) << 8) | uint32(b[3])
}

// writeHeader appends the 14-byte ROI header for h to dst.
func writeHeader(dst []byte, h Header) []byte {
	dst = append(dst, Magic...)
	var buf [8]byte
	putU32BE(buf[0:4], h.Width)
	putU32BE(buf[4:8], h.Height)
	dst = append(dst, buf[:]...)
	dst = append(dst, h.Channels, h.Colorspace)
	return dst
}

// ParseHeader reads and validates the 14-byte header at the start of data,
// returning the decoded Header and the remaining bytes (the opcode stream
// plus end marker).
func ParseHeader(data []byte, opts *DecodeOptions) (Header, []byte, error) {
	if len(data) < HeaderSize {
		return Header{}, nil, ErrInvalidHeader
	}
	if string(data[0:4]) != Magic {
		return Header{}, nil, ErrInvalidHeader
	}
	h := Header{
		Width:      getU32BE(data[4:8]),
		Height:     getU32BE(data[8:12]),
		Channels:   data[12],
		Colorspace: data[13],
	}
	if h.Width == 0 || h.Height == 0 {
		return Header{}, nil, ErrInvalidHeader
	}
	if h.Channels != 3 && h.Channels != 4 {
		return Header{}, nil, ErrInvalidHeader
	}
	if h.Colorspace > maxColorspace(opts) {
		return Header{}, nil, ErrInvalidHeader
	}
	if h.Height >= MaxPixelGuard/h.Width {
		return Header{}, nil, ErrInvalidHeader
	}
	return h, data[HeaderSize:], nil
}

func foldMagnitude(v int8) uint8 {
	if v >= 0 {
		return uint8(v)
	}
	return uint8(-v - 1)
}

func wrapDiff(a, b byte) int8 {
	return int8(a - b)
}
