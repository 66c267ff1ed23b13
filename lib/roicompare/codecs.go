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

	"github.com/chocolate42/roi/lib/cgolz4"
	"github.com/chocolate42/roi/lib/cgozstd"
	"github.com/chocolate42/roi/lib/compression"
	"github.com/chocolate42/roi/lib/roi"
)

// Codec names a comparison point: a way of encoding a pixel buffer other
// than ROI's own opcode stream.
type Codec int

const (
	// CodecPNG is the uncompressed PNG baseline in this package.
	CodecPNG Codec = iota
	// CodecLZ4 compresses the raw pixel buffer directly, with no PNG
	// filtering or container overhead, via the cgo "lz4" binding.
	CodecLZ4
	// CodecZstd is CodecLZ4's counterpart for Zstandard.
	CodecZstd
)

func (c Codec) String() string {
	switch c {
	case CodecPNG:
		return "png"
	case CodecLZ4:
		return "lz4"
	case CodecZstd:
		return "zstd"
	default:
		return "unknown"
	}
}

// CompressLZ4 compresses data at the given compression.Level using the
// cgo "lz4" binding. It requires CGO_ENABLED=1 and liblz4 at link time.
func CompressLZ4(data []byte, level compression.Level) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := &cgolz4.Writer{}
	if err := w.Reset(buf, nil, level); err != nil {
		return nil, err
	}
	if _, err := w.Write(data); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// CompressZstd is CompressLZ4's counterpart for Zstandard.
func CompressZstd(data []byte, level compression.Level) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := &cgozstd.Writer{}
	if err := w.Reset(buf, nil, level); err != nil {
		return nil, err
	}
	if _, err := w.Write(data); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Result is one codec's output size for a given image, for tabulating
// alongside ROI's own encoded size.
type Result struct {
	Codec Codec
	Bytes int
	Err   error
}

// Compare runs every Codec in this package against the same raw pixel
// buffer and reports each one's encoded size. Each Result carries its own
// Err, so callers should check Err per Result rather than aborting the
// whole comparison. lib/cgolz4 has a cgo-disabled stub whose Writer.Reset
// returns a "not enabled" sentinel; lib/cgozstd has no such stub, so this
// package only builds with cgo enabled and libzstd available.
func Compare(h roi.Header, pix []byte, level compression.Level) []Result {
	results := make([]Result, 0, 3)

	pngBuf := &bytes.Buffer{}
	err := WritePNG(pngBuf, h, pix)
	results = append(results, Result{Codec: CodecPNG, Bytes: pngBuf.Len(), Err: err})

	lz4Out, err := CompressLZ4(pix, level)
	results = append(results, Result{Codec: CodecLZ4, Bytes: len(lz4Out), Err: err})

	zstdOut, err := CompressZstd(pix, level)
	results = append(results, Result{Codec: CodecZstd, Bytes: len(zstdOut), Err: err})

	return results
}
