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
	"image"
	"image/color"
	"image/draw"
	"io"
)

func init() {
	image.RegisterFormat("roi", Magic, Decode, DecodeConfig)
}

// DecodeConfig returns the width, height and color model of the ROI image
// in r, without decoding the pixel data, matching the image.RegisterFormat
// contract.
func DecodeConfig(r io.Reader) (image.Config, error) {
	var hdr [HeaderSize]byte
	if _, err := io.ReadFull(r, hdr[:]); err != nil {
		return image.Config{}, err
	}
	h, _, err := ParseHeader(hdr[:], nil)
	if err != nil {
		return image.Config{}, err
	}
	// Both 3- and 4-channel streams decode to *image.NRGBA (Decode forces
	// requestedChannels to 4, filling alpha with 255 for 3-channel
	// streams), so DecodeConfig always reports NRGBA.
	return image.Config{
		ColorModel: color.NRGBAModel,
		Width:      int(h.Width),
		Height:     int(h.Height),
	}, nil
}

// Decode reads a complete ROI image from r.
func Decode(r io.Reader) (image.Image, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	h, pix, err := DecodeRaw(data, 4, nil)
	if err != nil {
		return nil, err
	}
	img := &image.NRGBA{
		Pix:    pix,
		Stride: 4 * int(h.Width),
		Rect:   image.Rect(0, 0, int(h.Width), int(h.Height)),
	}
	return img, nil
}

// Encode writes src to w as a complete ROI image. A nil options uses
// CodepathScalar and picks 4 channels only if src is not fully opaque.
func Encode(w io.Writer, src image.Image, options *EncodeOptions) error {
	if src == nil {
		return ErrBadArgument
	}
	b := src.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return ErrInvalidDescriptor
	}

	opaque := isOpaque(src)
	channels := uint8(3)
	if !opaque {
		channels = 4
	}

	var pix []byte
	var stride int
	if channels == 4 {
		nrgba, ok := src.(*image.NRGBA)
		if !ok {
			tmp := image.NewNRGBA(b)
			draw.Draw(tmp, b, src, b.Min, draw.Src)
			nrgba = tmp
		}
		pix, stride = nrgba.Pix, nrgba.Stride
	} else {
		pix, stride = packRGB(src, b)
	}

	h := Header{Width: uint32(b.Dx()), Height: uint32(b.Dy()), Channels: channels}
	if err := ValidateDescriptor(h); err != nil {
		return err
	}

	tight := pix
	if stride != b.Dx()*int(channels) {
		tight = make([]byte, b.Dy()*b.Dx()*int(channels))
		rowBytes := b.Dx() * int(channels)
		for y := 0; y < b.Dy(); y++ {
			copy(tight[y*rowBytes:(y+1)*rowBytes], pix[y*stride:y*stride+rowBytes])
		}
	}

	out, err := EncodeRaw(tight, h, options)
	if err != nil {
		return err
	}
	_, err = w.Write(out)
	return err
}

func isOpaque(src image.Image) bool {
	type opaquer interface {
		Opaque() bool
	}
	if o, ok := src.(opaquer); ok {
		return o.Opaque()
	}
	b := src.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			_, _, _, a := src.At(x, y).RGBA()
			if a != 0xffff {
				return false
			}
		}
	}
	return true
}

// packRGB materialises a tightly-packed 3-channel buffer from any
// image.Image, dropping alpha.
func packRGB(src image.Image, b image.Rectangle) ([]byte, int) {
	w, h := b.Dx(), b.Dy()
	stride := w * 3
	pix := make([]byte, stride*h)
	for y := 0; y < h; y++ {
		row := pix[y*stride : (y+1)*stride]
		for x := 0; x < w; x++ {
			r, g, bl, _ := src.At(b.Min.X+x, b.Min.Y+y).RGBA()
			row[x*3+0] = byte(r >> 8)
			row[x*3+1] = byte(g >> 8)
			row[x*3+2] = byte(bl >> 8)
		}
	}
	return pix, stride
}
