// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package arith

// Precision selects the working integer width of the interval, in bits.
// Precision32 is canonical and is what cmd/ac and the arithmetic-coded LZW
// mode use. Precision64 is declared for completeness; no tool or test in
// this module uses it.
type Precision uint

const (
	Precision32 Precision = 32
	Precision64 Precision = 64
)

// DefaultPrecision is the precision used when callers do not select one
// explicitly.
const DefaultPrecision = Precision32

// params holds the four interval constants derived from a Precision, so
// that Encoder and Decoder never recompute them mid-stream.
type params struct {
	max, quarter, half, threeQuarters uint64
}

func newParams(p Precision) params {
	max := uint64(1)<<(uint(p)-1) - 1
	quarter := (max + 1) / 4
	return params{
		max:           max,
		quarter:       quarter,
		half:          2 * quarter,
		threeQuarters: 3 * quarter,
	}
}
