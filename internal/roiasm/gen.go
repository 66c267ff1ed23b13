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

//go:build avogen
// +build avogen

// Command roiasm generates the x86 assembly for a 128-bit SIMD helper for
// run-length detection: comparing two 16-byte windows of a single channel
// plane and producing a 16-bit mask of which lanes are equal. Nothing in
// this repository calls the generated helper.
//
// This is a generator, not a library: it is its own package main, gated
// behind the avogen build tag so it is never part of the default build
// (mirroring the way this repository's own code-generation tools, like
// cmd/wuffs-c, are separate programs rather than linked into a library).
// Run it with `go run -tags avogen .` from this directory, then commit the
// emitted .s and .go stub files the way avo's own examples do; nothing in
// the default build regenerates them automatically.
//
// lib/roi's actually-used CodepathVector kernel (see vector.go) is
// deliberately portable Go, not this assembly: a hand-written SSE2 kernel
// cannot be checked into this repository with any confidence of
// correctness without a machine to assemble, link and run it against, so
// it stays a generator that a maintainer can inspect, run and verify on
// real hardware before wiring its output into CodepathVector.
package main

import (
	. "github.com/mmcloughlin/avo/build"
	"github.com/mmcloughlin/avo/operand"
	"github.com/mmcloughlin/avo/reg"
)

func main() {
	genEqualMask16()
	Generate()
}

// genEqualMask16 emits:
//
//	func equalMask16(a, b *[16]byte) uint16
//
// returning, in bit i, whether a[i] == b[i]. The scalar kernel's run
// detection (scalar.go's `cur == prev` check inside scalarEncodeWindow)
// does the same comparison one pixel at a time; this kernel would let a
// hardware-accelerated encoder classify 16 single-channel bytes per
// PCMPEQB+PMOVMSKB pair instead of 16 separate branches, as a first phase
// before the per-lane diff classification vector.go's portable kernel
// already performs.
func genEqualMask16() {
	TEXT("equalMask16", NOSPLIT, "func(a, b *[16]byte) uint16")
	Doc("equalMask16 returns a 16-bit mask where bit i is set iff a[i] == b[i].")

	aPtr := Load(Param("a"), GP64())
	bPtr := Load(Param("b"), GP64())

	va := XMM()
	vb := XMM()
	MOVOU(operand.Mem{Base: aPtr.(reg.GPVirtual)}, va)
	MOVOU(operand.Mem{Base: bPtr.(reg.GPVirtual)}, vb)

	// SIMD PCMPEQB: per-byte equality compare, lane i becomes 0xFF if
	// a[i] == b[i] else 0x00.
	PCMPEQB(vb, va)

	mask := GP64()
	// SIMD PMOVMSKB: one bit per lane's top bit, giving the 16-bit
	// equality mask in the low word of mask.
	PMOVMSKB(va, mask)

	ret := GP16()
	MOVW(mask.As16(), ret)
	Store(ret, ReturnIndex(0))
	RET()
}
