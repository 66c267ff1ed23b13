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

// scalarState carries the running encoder state across pixels: the
// previously-seen pixel (for diffing) and a pending, not-yet-flushed run
// length. It is shared by the scalar and vector kernels so that either one
// can pick up a window where the other left off.
type scalarState struct {
	prev [4]byte
	run  uint32
}

func newScalarState() scalarState {
	return scalarState{prev: seedPixel}
}

// flushRun appends zero or more RUN opcodes encoding run pixels of
// repetition; callers reset their own run counter afterwards. It is only called once a pixel
// breaks the run (or at end of stream); a run in progress is never
// flushed mid-run.
func flushRun(dst []byte, run uint32) []byte {
	for run >= maxRunPerByte {
		dst = append(dst, runRepeat30)
		run -= maxRunPerByte
	}
	if run > 0 {
		dst = append(dst, byte(((run-1)<<3)|tagRUNValue))
	}
	return dst
}

// packLUMA232 returns the single control byte for a diff with
// vg in [-4,3], vg_r in [-2,1], vg_b in [-2,1].
func packLUMA232(vg, vgr, vgb int8) byte {
	ggg := byte(vg+4) & 0x07
	rr := byte(vgr+2) & 0x03
	bb := byte(vgb+2) & 0x03
	return (bb << 6) | (rr << 4) | (ggg << 1) | tagLUMA232Value
}

// packLUMA464 returns the two control bytes for a diff with
// vg in [-32,31], vg_r in [-8,7], vg_b in [-8,7].
func packLUMA464(vg, vgr, vgb int8) (byte, byte) {
	gg6 := byte(vg+32) & 0x3F
	rrrr := byte(vgr+8) & 0x0F
	bbbb := byte(vgb+8) & 0x0F
	b1 := (gg6 << 2) | tagLUMA464Value
	b2 := (bbbb << 4) | rrrr
	return b1, b2
}

// packLUMA777 returns the three control bytes for a diff with
// vg, vg_r, vg_b each in [-64,63].
func packLUMA777(vg, vgr, vgb int8) (byte, byte, byte) {
	gg7 := byte(vg+64) & 0x7F
	rr7 := byte(vgr+64) & 0x7F
	bb7 := byte(vgb+64) & 0x7F
	b1 := ((gg7 & 0x1F) << 3) | tagLUMA777Value
	b2 := (gg7 >> 5) | ((rr7 & 0x3F) << 2)
	b3 := (rr7 >> 6) | (bb7 << 1)
	return b1, b2, b3
}

// classifyAndEmit appends the smallest-containing diff opcode for the
// transition prev -> cur (both already known to differ), and returns the
// updated destination slice. Only the RGB channels are compared; any
// alpha change has already been emitted as an RGBA opcode by the caller.
func classifyAndEmit(dst []byte, prev, cur [4]byte) []byte {
	vr := wrapDiff(cur[0], prev[0])
	vg := wrapDiff(cur[1], prev[1])
	vb := wrapDiff(cur[2], prev[2])
	vgr := vr - vg
	vgb := vb - vg

	ar := foldMagnitude(vgr)
	ab := foldMagnitude(vgb)
	ag := foldMagnitude(vg)
	arb := ar | ab

	switch {
	case arb < 2 && ag < 4:
		dst = append(dst, packLUMA232(vg, vgr, vgb))
	case arb < 8 && ag < 32:
		b1, b2 := packLUMA464(vg, vgr, vgb)
		dst = append(dst, b1, b2)
	case (arb | ag) < 64:
		b1, b2, b3 := packLUMA777(vg, vgr, vgb)
		dst = append(dst, b1, b2, b3)
	default:
		dst = append(dst, tagRGB, cur[0], cur[1], cur[2])
	}
	return dst
}

// scalarEncodeWindow encodes the pixels in window (a contiguous run of
// whole pixels, channels bytes each) one at a time, appending opcodes to
// dst and returning the updated slice and state. It never flushes a
// trailing run that might still extend into the next window; the caller
// flushes the final pending run once the whole image has been processed.
func scalarEncodeWindow(dst []byte, st *scalarState, window []byte, channels int) []byte {
	prev := st.prev
	run := st.run

	for i := 0; i+channels <= len(window); i += channels {
		var cur [4]byte
		cur[0], cur[1], cur[2] = window[i], window[i+1], window[i+2]
		if channels == 4 {
			cur[3] = window[i+3]
		} else {
			cur[3] = prev[3]
		}

		if cur == prev {
			run++
			if run == maxRunPerByte {
				dst = append(dst, runRepeat30)
				run = 0
			}
			continue
		}

		dst = flushRun(dst, run)
		run = 0

		if channels == 4 && cur[3] != prev[3] {
			dst = append(dst, tagRGBA, cur[3])
		}
		dst = classifyAndEmit(dst, prev, cur)
		prev = cur
	}

	st.prev = prev
	st.run = run
	return dst
}
