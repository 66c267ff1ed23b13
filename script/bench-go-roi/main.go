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

// +build ignore

package main

// This program exercises lib/roi's two encoder kernels (scalar and
// vector) against a handful of synthetic pixel buffers chosen to stress
// different parts of the opcode selection (flat runs, smooth gradients,
// noise). There is no bundled corpus of real photographs to decode the
// way script/bench-go-png loads PNG test data, so the inputs here are
// generated deterministically instead of loaded from disk.

import (
	"fmt"
	"runtime"
	"time"

	"github.com/chocolate42/roi/lib/roi"
)

const (
	iterscale = 20
	reps      = 5
)

type testCase struct {
	benchname string
	h         roi.Header
	pix       []byte
}

var testCases = []testCase{
	flatCase("go_roi_encode_flat_256x256_8bpp", 256, 256),
	gradientCase("go_roi_encode_gradient_256x256_8bpp", 256, 256),
	noiseCase("go_roi_encode_noise_256x256_8bpp", 256, 256),
	noiseCase("go_roi_encode_noise_1024x1024_8bpp", 1024, 1024),
}

func flatCase(name string, w, h uint32) testCase {
	hdr := roi.Header{Width: w, Height: h, Channels: 3}
	pix := make([]byte, hdr.PixelCount()*3)
	for i := range pix {
		pix[i] = 0x40
	}
	return testCase{name, hdr, pix}
}

func gradientCase(name string, w, h uint32) testCase {
	hdr := roi.Header{Width: w, Height: h, Channels: 3}
	pix := make([]byte, hdr.PixelCount()*3)
	for y := uint32(0); y < h; y++ {
		for x := uint32(0); x < w; x++ {
			i := (y*w + x) * 3
			pix[i+0] = byte(x)
			pix[i+1] = byte(y)
			pix[i+2] = byte(x + y)
		}
	}
	return testCase{name, hdr, pix}
}

func noiseCase(name string, w, h uint32) testCase {
	hdr := roi.Header{Width: w, Height: h, Channels: 3}
	pix := make([]byte, hdr.PixelCount()*3)
	state := uint32(0x9e3779b9)
	for i := range pix {
		// xorshift32, deterministic and allocation-free.
		state ^= state << 13
		state ^= state >> 17
		state ^= state << 5
		pix[i] = byte(state)
	}
	return testCase{name, hdr, pix}
}

func main() {
	fmt.Printf("# Go %s\n", runtime.Version())
	fmt.Printf("#\n")
	fmt.Printf("# The output format, including the \"Benchmark\" prefixes, is compatible with the\n")
	fmt.Printf("# https://godoc.org/golang.org/x/perf/cmd/benchstat tool.\n")

	for _, codepath := range []roi.Codepath{roi.CodepathScalar, roi.CodepathVector} {
		run(codepath)
	}
}

func run(codepath roi.Codepath) {
	suffix := "_scalar"
	if codepath == roi.CodepathVector {
		suffix = "_vector"
	}
	opts := &roi.EncodeOptions{Codepath: codepath}

	for i := -1; i < reps; i++ {
		for _, tc := range testCases {
			runtime.GC()

			iters := uint64(iterscale)
			start := time.Now()
			var numBytes uint64
			for j := uint64(0); j < iters; j++ {
				out, err := roi.EncodeRaw(tc.pix, tc.h, opts)
				if err != nil {
					panic(err.Error())
				}
				numBytes = uint64(len(tc.pix))
				_ = out
			}
			elapsedNanos := time.Since(start)
			kbPerS := numBytes * iters * 1000000 / uint64(elapsedNanos)

			if i < 0 {
				continue // Warm up rep.
			}

			fmt.Printf("Benchmark%-40s %8d %12d ns/op %8d.%03d MB/s\n",
				tc.benchname+suffix, iters, uint64(elapsedNanos)/iters, kbPerS/1000, kbPerS%1000)
		}
	}
}
