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

// encodeWindowPixels is the number of pixels processed per call into the
// scalar or vector kernel. It has no effect on the emitted bytes (both
// kernels carry state across window boundaries via scalarState); it only
// bounds how much of the source buffer a single kernel invocation walks,
// mirroring the teacher's fixed-size-buffer streaming style (lib/uncompng)
// even though, unlike that package, EncodeRaw here takes the whole pixel
// buffer up front rather than being fed incrementally.
const encodeWindowPixels = 1 << 16

// EncodeRaw encodes the raw pixel buffer pix (h.PixelCount()*h.Channels
// bytes, channels interleaved, no padding between rows) into a complete
// ROI byte stream: header, opcodes, end marker.
func EncodeRaw(pix []byte, h Header, opts *EncodeOptions) ([]byte, error) {
	if err := ValidateDescriptor(h); err != nil {
		return nil, err
	}
	channels := int(h.Channels)
	wantLen := h.PixelCount() * uint64(channels)
	if uint64(len(pix)) != wantLen {
		return nil, ErrBufferSize
	}

	codepath := CodepathScalar
	if opts != nil {
		codepath = opts.Codepath
	}

	windowBytes := encodeWindowPixels * channels
	budget := h.PixelCount()*uint64(worstCaseBytesPerPixel(h.Channels)) + HeaderSize + EndMarkerSize
	dst := make([]byte, 0, budget)
	dst = writeHeader(dst, h)

	st := newScalarState()
	for off := 0; off < len(pix); off += windowBytes {
		end := off + windowBytes
		if end > len(pix) {
			end = len(pix)
		}
		window := pix[off:end]
		switch codepath {
		case CodepathVector:
			dst = vectorEncodeWindow(dst, &st, window, channels)
		default:
			dst = scalarEncodeWindow(dst, &st, window, channels)
		}
	}
	if st.run > 0 {
		dst = flushRun(dst, st.run)
	}
	dst = append(dst, EndMarker[:]...)
	return dst, nil
}

// DecodeRaw decodes a complete ROI byte stream into a raw pixel buffer.
// requestedChannels selects the output interleaving (3 or 4); 0 means "use
// the stream's own Header.Channels".
func DecodeRaw(data []byte, requestedChannels int, opts *DecodeOptions) (Header, []byte, error) {
	h, body, err := ParseHeader(data, opts)
	if err != nil {
		return Header{}, nil, err
	}
	dec, err := NewDecoder(h, requestedChannels)
	if err != nil {
		return Header{}, nil, err
	}

	out := make([]byte, h.PixelCount()*uint64(dec.OutChannels))
	si, di := 0, 0
	for !dec.Done() {
		n, m, stepErr := dec.Step(body[si:], out[di:])
		si += n
		di += m
		if stepErr != nil {
			return Header{}, nil, stepErr
		}
		if n == 0 && m == 0 {
			return Header{}, nil, ErrTruncated
		}
	}
	trailer := body[si:]
	if len(trailer) != EndMarkerSize || [EndMarkerSize]byte(trailer) != EndMarker {
		return Header{}, nil, ErrMissingEndMarker
	}
	return h, out, nil
}
