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

// roi decodes and encodes the ROI lossless image file format.
package main

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/chocolate42/roi/cmd/roi/cmdflags"
	"github.com/chocolate42/roi/lib/compression"
	"github.com/chocolate42/roi/lib/pam"
	"github.com/chocolate42/roi/lib/ppm"
	"github.com/chocolate42/roi/lib/roi"
	"github.com/chocolate42/roi/lib/roicompare"

	"golang.org/x/sync/errgroup"

	_ "image/gif"
	_ "image/jpeg"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
)

var (
	decodeFlag    = flag.Bool("decode", false, "whether to decode the input")
	encodeFlag    = flag.Bool("encode", false, "whether to encode the input")
	roundtripFlag = flag.Bool("roundtrip", false, "whether to encode-and-decode the input")

	containerFlag = flag.String("container", cmdflags.ContainerDefault, cmdflags.ContainerUsage)
	codepathFlag  = flag.String("codepath", cmdflags.CodepathDefault, cmdflags.CodepathUsage)
	compareFlag   = flag.Bool("compare", cmdflags.CompareDefault, cmdflags.CompareUsage)

	batchFlag            = flag.Bool("batch", cmdflags.BatchDefault, cmdflags.BatchUsage)
	batchConcurrencyFlag = flag.Int("batch-concurrency", cmdflags.BatchConcurrencyDefault, cmdflags.BatchConcurrencyUsage)

	logFileFlag = flag.String("log-file", cmdflags.LogFileDefault, cmdflags.LogFileUsage)
)

const usageStr = `roi decodes and encodes the ROI lossless image file format.

Usage: choose one of

    roi -encode    [path]
    roi -decode    [path]
    roi -roundtrip [path]
    roi -batch -encode [path ...]
    roi -batch -decode [path ...]

The path to the input file is optional in single-file mode. If omitted,
stdin is read and the result is written to stdout. Under -batch, each
path is processed independently and the result is written alongside it
(foo.ppm -> foo.roi, foo.roi -> foo.ppm).

-container selects the raw pixel container for non-ROI data: "ppm", "pam",
"png" (write-only) or "image" (any format image.Decode recognizes). The
default, "auto", guesses from the filename extension.

-codepath selects the encoder kernel: "scalar" or "vector" (default).

-compare additionally reports PNG/LZ4/Zstd sizes for the same pixels.
`

func main() {
	if err := main1(); err != nil {
		os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}
}

func main1() error {
	flag.Usage = func() { os.Stderr.WriteString(usageStr) }
	flag.Parse()

	logger, err := newLogger(*logFileFlag)
	if err != nil {
		return err
	}
	defer logger.Sync()

	codepath, err := cmdflags.ParseCodepath(*codepathFlag)
	if err != nil {
		return err
	}

	mode, err := pickMode()
	if err != nil {
		return err
	}

	if *batchFlag {
		if mode == modeRoundtrip {
			return errors.New("roi: -batch does not support -roundtrip")
		}
		return runBatch(logger, mode, codepath, flag.Args())
	}

	inFile := os.Stdin
	inPath := ""
	switch flag.NArg() {
	case 0:
		// No-op; read from stdin.
	case 1:
		f, err := os.Open(flag.Arg(0))
		if err != nil {
			return err
		}
		defer f.Close()
		inFile = f
		inPath = flag.Arg(0)
	default:
		return errors.New("roi: too many filenames; the maximum is one outside -batch")
	}

	switch mode {
	case modeEncode:
		return encodeOne(logger, codepath, inFile, inPath, os.Stdout)
	case modeDecode:
		return decodeOne(logger, inFile, inPath, os.Stdout)
	case modeRoundtrip:
		return roundtripOne(logger, codepath, inFile, inPath, os.Stdout)
	}
	return errors.New("roi: must specify exactly one of -decode, -encode or -roundtrip")
}

type mode int

const (
	modeNone mode = iota
	modeEncode
	modeDecode
	modeRoundtrip
)

func pickMode() (mode, error) {
	switch {
	case *encodeFlag && !*decodeFlag && !*roundtripFlag:
		return modeEncode, nil
	case !*encodeFlag && *decodeFlag && !*roundtripFlag:
		return modeDecode, nil
	case !*encodeFlag && !*decodeFlag && *roundtripFlag:
		return modeRoundtrip, nil
	default:
		return modeNone, errors.New("roi: must specify exactly one of -decode, -encode or -roundtrip")
	}
}

// newLogger builds a structured logger that writes JSON lines to a
// lumberjack-rotated file, or discards everything when -log-file is
// unset so library callers never pay for logging they didn't ask for.
func newLogger(path string) (*zap.Logger, error) {
	if path == "" {
		return zap.NewNop(), nil
	}
	rotator := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    100, // megabytes
		MaxBackups: 5,
		MaxAge:     28, // days
		Compress:   true,
	}
	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
		zapcore.AddSync(rotator),
		zapcore.InfoLevel,
	)
	return zap.New(core), nil
}

// readPixels loads pix, h from r using the container named by the
// -container flag (or inferred from name); h.Channels always matches the
// interleaving of the returned pix, ready to pass straight to EncodeRaw.
func readPixels(r io.Reader, name string) (roi.Header, []byte, error) {
	c, err := cmdflags.ParseContainer(*containerFlag, name)
	if err != nil {
		return roi.Header{}, nil, err
	}
	switch c {
	case cmdflags.ContainerPAM:
		img, err := pam.Decode(r)
		if err != nil {
			return roi.Header{}, nil, err
		}
		return roi.Header{Width: uint32(img.Width), Height: uint32(img.Height), Channels: uint8(img.Channels)}, img.Pix, nil
	case cmdflags.ContainerImage:
		src, _, err := image.Decode(r)
		if err != nil {
			return roi.Header{}, nil, err
		}
		return headerAndPixFromImage(src), pixFromImage(src), nil
	default:
		img, err := ppm.Decode(r)
		if err != nil {
			return roi.Header{}, nil, err
		}
		return roi.Header{Width: uint32(img.Width), Height: uint32(img.Height), Channels: 3}, img.Pix, nil
	}
}

func headerAndPixFromImage(src image.Image) roi.Header {
	b := src.Bounds()
	return roi.Header{Width: uint32(b.Dx()), Height: uint32(b.Dy()), Channels: 4}
}

func pixFromImage(src image.Image) []byte {
	b := src.Bounds()
	nrgba := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			nrgba.Set(x-b.Min.X, y-b.Min.Y, src.At(x, y))
		}
	}
	return nrgba.Pix
}

// writePixels writes pix (h.Channels per pixel) to w in the container
// named by the -container flag or inferred from name.
func writePixels(w io.Writer, h roi.Header, pix []byte, name string) error {
	c, err := cmdflags.ParseContainer(*containerFlag, name)
	if err != nil {
		return err
	}
	switch c {
	case cmdflags.ContainerPAM:
		return pam.Encode(w, &pam.Image{Width: int(h.Width), Height: int(h.Height), Channels: int(h.Channels), Pix: pix})
	case cmdflags.ContainerPNG:
		return roicompare.WritePNG(w, h, pix)
	case cmdflags.ContainerImage:
		return png.Encode(w, toNRGBA(h, pix))
	default:
		if h.Channels != 3 {
			return fmt.Errorf("roi: -container ppm requires 3 channels, got %d (use -container pam)", h.Channels)
		}
		return ppm.Encode(w, &ppm.Image{Width: int(h.Width), Height: int(h.Height), Pix: pix})
	}
}

// toNRGBA expands 3-channel pixels to 4 (opaque alpha) so every decoded
// stream, regardless of its own Channels, can be handed to image/png.
func toNRGBA(h roi.Header, pix []byte) *image.NRGBA {
	if h.Channels == 4 {
		return &image.NRGBA{Pix: pix, Stride: int(h.Width) * 4, Rect: image.Rect(0, 0, int(h.Width), int(h.Height))}
	}
	out := image.NewNRGBA(image.Rect(0, 0, int(h.Width), int(h.Height)))
	for i, n := 0, int(h.PixelCount()); i < n; i++ {
		copy(out.Pix[i*4:i*4+3], pix[i*3:i*3+3])
		out.Pix[i*4+3] = 255
	}
	return out
}

func encodeOne(logger *zap.Logger, codepath roi.Codepath, r io.Reader, name string, w io.Writer) error {
	h, pix, err := readPixels(r, name)
	if err != nil {
		return err
	}
	out, err := roi.EncodeRaw(pix, h, &roi.EncodeOptions{Codepath: codepath})
	if err != nil {
		return err
	}
	logger.Info("encoded",
		zap.String("file", name),
		zap.Uint32("width", h.Width),
		zap.Uint32("height", h.Height),
		zap.Int("bytes", len(out)),
	)
	if *compareFlag {
		logCompare(logger, name, h, pix)
	}
	_, err = w.Write(out)
	return err
}

func decodeOne(logger *zap.Logger, r io.Reader, name string, w io.Writer) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	h, pix, err := roi.DecodeRaw(data, 0, nil)
	if err != nil {
		return err
	}
	logger.Info("decoded",
		zap.String("file", name),
		zap.Uint32("width", h.Width),
		zap.Uint32("height", h.Height),
	)
	return writePixels(w, h, pix, decodedContainerName(name))
}

func roundtripOne(logger *zap.Logger, codepath roi.Codepath, r io.Reader, name string, w io.Writer) error {
	h, pix, err := readPixels(r, name)
	if err != nil {
		return err
	}
	encoded, err := roi.EncodeRaw(pix, h, &roi.EncodeOptions{Codepath: codepath})
	if err != nil {
		return err
	}
	h2, pix2, err := roi.DecodeRaw(encoded, 0, nil)
	if err != nil {
		return err
	}
	logger.Info("roundtripped", zap.String("file", name), zap.Int("encoded_bytes", len(encoded)))
	return writePixels(w, h2, pix2, decodedContainerName(name))
}

// decodedContainerName swaps a source file's extension for the one the
// chosen -container value implies, so -container auto still guesses
// sensibly when writing the decoded result to a new file in -batch mode.
func decodedContainerName(name string) string {
	if *containerFlag != "" && *containerFlag != "auto" {
		return "out." + *containerFlag
	}
	return swapExt(name, "."+outputExtension())
}

func logCompare(logger *zap.Logger, name string, h roi.Header, pix []byte) {
	for _, r := range roicompare.Compare(h, pix, compression.LevelDefault) {
		if r.Err != nil {
			logger.Warn("compare codec unavailable", zap.String("file", name), zap.String("codec", r.Codec.String()), zap.Error(r.Err))
			continue
		}
		logger.Info("compare", zap.String("file", name), zap.String("codec", r.Codec.String()), zap.Int("bytes", r.Bytes))
	}
}

func runBatch(logger *zap.Logger, m mode, codepath roi.Codepath, paths []string) error {
	if len(paths) == 0 {
		return errors.New("roi: -batch requires at least one path")
	}
	g := &errgroup.Group{}
	g.SetLimit(cmdflags.ClampBatchConcurrency(*batchConcurrencyFlag))
	for _, path := range paths {
		path := path
		g.Go(func() error {
			return batchOne(logger, m, codepath, path)
		})
	}
	return g.Wait()
}

func batchOne(logger *zap.Logger, m mode, codepath roi.Codepath, path string) error {
	in, err := os.Open(path)
	if err != nil {
		return err
	}
	defer in.Close()

	var outPath string
	switch m {
	case modeEncode:
		outPath = swapExt(path, ".roi")
	case modeDecode:
		outPath = swapExt(path, "."+outputExtension())
	default:
		return fmt.Errorf("roi: unsupported -batch mode %d", m)
	}

	buf := &bytes.Buffer{}
	switch m {
	case modeEncode:
		err = encodeOne(logger, codepath, in, path, buf)
	case modeDecode:
		err = decodeOne(logger, in, path, buf)
	}
	if err != nil {
		return fmt.Errorf("roi: %s: %w", path, err)
	}
	return os.WriteFile(outPath, buf.Bytes(), 0o644)
}

func outputExtension() string {
	switch strings.ToLower(*containerFlag) {
	case "pam":
		return "pam"
	case "png":
		return "png"
	case "image":
		return "png"
	default:
		return "ppm"
	}
}

func swapExt(path, newExt string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + newExt
}
