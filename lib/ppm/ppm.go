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

// Package ppm reads and writes the binary (P6) Netpbm color image format,
// as a 3-channel front-end to lib/roi: a PPM file decodes to exactly the
// tightly-packed RGB buffer roi.EncodeRaw wants, and roi.DecodeRaw's
// output re-encodes to PPM with no channel shuffling.
package ppm

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/chocolate42/roi/lib/readerat"
)

var (
	// ErrNotPPM is returned when the input does not start with the P6
	// magic number.
	ErrNotPPM = errors.New("ppm: not a PPM (P6) file")

	// ErrUnsupportedMaxVal is returned for any maxval other than 255: ROI
	// pixels are single bytes per channel, so only 8-bit PPMs round-trip.
	ErrUnsupportedMaxVal = errors.New("ppm: only maxval 255 is supported")

	// ErrMalformedHeader is returned when the three required header
	// integers (width, height, maxval) cannot be parsed.
	ErrMalformedHeader = errors.New("ppm: malformed header")
)

// Image is a decoded PPM: tightly-packed 8-bit RGB pixels, row-major,
// no padding.
type Image struct {
	Width, Height int
	Pix           []byte // len == Width*Height*3
}

// Decode reads a complete P6 PPM image from r.
func Decode(r io.Reader) (*Image, error) {
	br := bufio.NewReader(r)
	width, height, maxVal, err := readHeader(br)
	if err != nil {
		return nil, err
	}
	if maxVal != 255 {
		return nil, ErrUnsupportedMaxVal
	}
	pix := make([]byte, width*height*3)
	if _, err := io.ReadFull(br, pix); err != nil {
		return nil, fmt.Errorf("ppm: reading pixel data: %w", err)
	}
	return &Image{Width: width, Height: height, Pix: pix}, nil
}

// DecodeFile opens name and decodes it, reading through readerat.Open's
// ReadSeeker over the opened *os.File. Each call opens its own file.
func DecodeFile(name string) (*Image, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	rs, err := readerat.Open(f)
	if err != nil {
		return nil, err
	}
	return Decode(rs)
}

// readHeader consumes the "P6\n<width> <height>\n<maxval>\n" header
// (whitespace-flexible, '#' comments skipped, per the Netpbm spec), and
// leaves br positioned at the start of the pixel data.
func readHeader(br *bufio.Reader) (width, height, maxVal int, err error) {
	magic, err := readToken(br)
	if err != nil {
		return 0, 0, 0, err
	}
	if magic != "P6" {
		return 0, 0, 0, ErrNotPPM
	}
	fields := make([]int, 0, 3)
	for len(fields) < 3 {
		tok, err := readToken(br)
		if err != nil {
			return 0, 0, 0, err
		}
		var v int
		if _, scanErr := fmt.Sscanf(tok, "%d", &v); scanErr != nil {
			return 0, 0, 0, ErrMalformedHeader
		}
		fields = append(fields, v)
	}
	if fields[0] <= 0 || fields[1] <= 0 {
		return 0, 0, 0, ErrMalformedHeader
	}
	return fields[0], fields[1], fields[2], nil
}

// readToken returns the next whitespace-delimited token, skipping '#'
// comments (which run to end of line) and leading whitespace. Exactly one
// whitespace byte terminates the token and is consumed.
func readToken(br *bufio.Reader) (string, error) {
	var tok []byte
	inComment := false
	for {
		b, err := br.ReadByte()
		if err != nil {
			return "", err
		}
		if inComment {
			if b == '\n' {
				inComment = false
			}
			continue
		}
		if b == '#' {
			inComment = true
			continue
		}
		isSpace := b == ' ' || b == '\t' || b == '\n' || b == '\r'
		if isSpace {
			if len(tok) > 0 {
				return string(tok), nil
			}
			continue
		}
		tok = append(tok, b)
	}
}

// Encode writes img to w as a P6 PPM.
func Encode(w io.Writer, img *Image) error {
	if len(img.Pix) != img.Width*img.Height*3 {
		return ErrMalformedHeader
	}
	if _, err := fmt.Fprintf(w, "P6\n%d %d\n255\n", img.Width, img.Height); err != nil {
		return err
	}
	_, err := w.Write(img.Pix)
	return err
}
