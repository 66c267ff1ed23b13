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

// Package cmdflags holds flag defaults and usage messages shared by the
// roi command line tool, plus small helpers to parse and validate them.
package cmdflags

import (
	"fmt"
	"strings"

	"github.com/chocolate42/roi/lib/roi"
)

const (
	CodepathDefault = "vector"
	CodepathUsage   = `which encoder kernel to use: "scalar" or "vector"`

	ContainerDefault = "auto"
	ContainerUsage   = `container for raw pixel I/O: "auto", "ppm" or "pam"`

	CompareDefault = false
	CompareUsage   = `whether to report PNG/LZ4/Zstd comparison sizes alongside the encode`

	BatchDefault = false
	BatchUsage   = `whether the remaining arguments are a list of files to process concurrently`

	BatchConcurrencyDefault = 4
	BatchConcurrencyMin     = 1
	BatchConcurrencyMax     = 256
	BatchConcurrencyUsage   = `maximum number of files processed at once under -batch`

	LogFileDefault = ""
	LogFileUsage   = `path to a rotated log file; if empty, operational logging is disabled`
)

// ParseCodepath maps a -codepath flag value to a roi.Codepath.
func ParseCodepath(s string) (roi.Codepath, error) {
	switch strings.ToLower(s) {
	case "scalar":
		return roi.CodepathScalar, nil
	case "vector", "":
		return roi.CodepathVector, nil
	default:
		return 0, fmt.Errorf("cmdflags: unrecognized -codepath %q", s)
	}
}

// Container names the format used to read or write raw pixels: a native
// Netpbm container, a PNG comparison dump, or any format the standard
// image.Decode registry recognizes (BMP, TIFF, GIF, JPEG, PNG, WEBP, ...
// once their packages are blank-imported).
type Container int

const (
	ContainerAuto Container = iota
	ContainerPPM
	ContainerPAM
	ContainerPNG
	ContainerImage
)

// ParseContainer maps a -container flag value, or a filename extension
// when the value is "auto", to a Container.
func ParseContainer(s string, filename string) (Container, error) {
	switch strings.ToLower(s) {
	case "ppm":
		return ContainerPPM, nil
	case "pam":
		return ContainerPAM, nil
	case "png":
		return ContainerPNG, nil
	case "image":
		return ContainerImage, nil
	case "auto", "":
		lower := strings.ToLower(filename)
		switch {
		case strings.HasSuffix(lower, ".pam"):
			return ContainerPAM, nil
		case strings.HasSuffix(lower, ".ppm") || strings.HasSuffix(lower, ".pnm"):
			return ContainerPPM, nil
		case strings.HasSuffix(lower, ".png"):
			return ContainerPNG, nil
		case filename == "" || filename == "-":
			return ContainerPPM, nil
		default:
			return ContainerImage, nil
		}
	default:
		return 0, fmt.Errorf("cmdflags: unrecognized -container %q", s)
	}
}

func (c Container) String() string {
	switch c {
	case ContainerPPM:
		return "ppm"
	case ContainerPAM:
		return "pam"
	case ContainerPNG:
		return "png"
	case ContainerImage:
		return "image"
	default:
		return "auto"
	}
}

// ClampBatchConcurrency keeps a user-supplied -batch-concurrency within a
// sane range instead of letting 0 or a negative value produce a stuck
// errgroup or an unbounded fan-out.
func ClampBatchConcurrency(n int) int {
	if n < BatchConcurrencyMin {
		return BatchConcurrencyMin
	}
	if n > BatchConcurrencyMax {
		return BatchConcurrencyMax
	}
	return n
}
