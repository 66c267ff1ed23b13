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

// Package pam reads and writes the PAM (P7) Netpbm format: unlike PPM,
// PAM's keyword header can describe either RGB (3 channels) or RGB_ALPHA
// (4 channels) data, so it is the container front-end lib/roi uses for
// its 4-channel images.
package pam

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/chocolate42/roi/lib/readerat"
)

var (
	// ErrNotPAM is returned when the input does not start with the P7
	// magic line.
	ErrNotPAM = errors.New("pam: not a PAM (P7) file")

	// ErrMalformedHeader is returned when a header line is not a
	// key/value pair, a numeric field is unparseable, or WIDTH or HEIGHT
	// is missing or not positive. Field order is not checked.
	ErrMalformedHeader = errors.New("pam: malformed header")

	// ErrUnsupportedTupleType is returned for a TUPLTYPE other than
	// RGB or RGB_ALPHA, or a MAXVAL other than 255.
	ErrUnsupportedTupleType = errors.New("pam: unsupported tuple type or maxval")
)

// Image is a decoded PAM: tightly-packed 8-bit pixels, row-major, no
// padding, Channels either 3 (RGB) or 4 (RGB_ALPHA).
type Image struct {
	Width, Height, Channels int
	Pix                     []byte // len == Width*Height*Channels
}

// Decode reads a complete P7 PAM image from r.
func Decode(r io.Reader) (*Image, error) {
	br := bufio.NewReader(r)

	line, err := readLine(br)
	if err != nil {
		return nil, err
	}
	if line != "P7" {
		return nil, ErrNotPAM
	}

	var width, height, depth, maxVal int
	tupleType := ""
	for {
		line, err := readLine(br)
		if err != nil {
			return nil, err
		}
		if line == "ENDHDR" {
			break
		}
		fields := strings.Fields(line)
		if len(fields) != 2 {
			return nil, ErrMalformedHeader
		}
		key, val := fields[0], fields[1]
		switch key {
		case "WIDTH":
			width, err = strconv.Atoi(val)
		case "HEIGHT":
			height, err = strconv.Atoi(val)
		case "DEPTH":
			depth, err = strconv.Atoi(val)
		case "MAXVAL":
			maxVal, err = strconv.Atoi(val)
		case "TUPLTYPE":
			tupleType = val
		default:
			// Unknown keys are ignored, per the PAM spec.
		}
		if err != nil {
			return nil, ErrMalformedHeader
		}
	}

	if width <= 0 || height <= 0 {
		return nil, ErrMalformedHeader
	}
	if maxVal != 255 {
		return nil, ErrUnsupportedTupleType
	}

	var channels int
	switch {
	case tupleType == "RGB_ALPHA" && depth == 4:
		channels = 4
	case tupleType == "RGB" && depth == 3:
		channels = 3
	default:
		return nil, ErrUnsupportedTupleType
	}

	pix := make([]byte, width*height*channels)
	if _, err := io.ReadFull(br, pix); err != nil {
		return nil, fmt.Errorf("pam: reading pixel data: %w", err)
	}
	return &Image{Width: width, Height: height, Channels: channels, Pix: pix}, nil
}

// DecodeFile opens name and decodes it, sharing the *os.File via
// readerat.Open the same way lib/ppm does.
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

func readLine(br *bufio.Reader) (string, error) {
	for {
		line, err := br.ReadString('\n')
		if err != nil && line == "" {
			return "", err
		}
		line = strings.TrimRight(line, "\r\n")
		if strings.HasPrefix(line, "#") || line == "" {
			if err != nil {
				return "", err
			}
			continue
		}
		return line, nil
	}
}

// Encode writes img to w as a P7 PAM.
func Encode(w io.Writer, img *Image) error {
	if img.Channels != 3 && img.Channels != 4 {
		return ErrUnsupportedTupleType
	}
	if len(img.Pix) != img.Width*img.Height*img.Channels {
		return ErrMalformedHeader
	}
	tupleType := "RGB"
	if img.Channels == 4 {
		tupleType = "RGB_ALPHA"
	}
	_, err := fmt.Fprintf(w, "P7\nWIDTH %d\nHEIGHT %d\nDEPTH %d\nMAXVAL 255\nTUPLTYPE %s\nENDHDR\n",
		img.Width, img.Height, img.Channels, tupleType)
	if err != nil {
		return err
	}
	_, err = w.Write(img.Pix)
	return err
}
