// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package arith implements a carry-free, integer arithmetic (range) coder
// driven by a pluggable probability model, along with the two stock models
// (Static and Adaptive) needed to use it.
package arith

import "github.com/gocodecs/accodec/internal/errors"

// maxTotal bounds a model's total frequency. The renormalized coding
// interval is always wider than a quarter of the 31-bit range, so a total
// at or above 2^29 could make the per-symbol step truncate to zero and give
// some symbol an empty sub-interval.
const maxTotal = 1 << 29

// DataModel abstracts a discrete probability distribution over the alphabet
// [0, Size()) via cumulative frequencies. CumFreq(i) returns
// f_0 + f_1 + ... + f_i for 0 <= i < Size(), and CumFreq(-1) is defined as 0
// so that symbol i covers the half-open sub-range
// [CumFreq(i-1), CumFreq(i)).
//
// IncFreq is invoked by the codec after every coded symbol, in the same
// order on the encoder and decoder side; StaticModel implements it as a
// no-op rather than requiring callers to type-switch on model kind.
type DataModel interface {
	Size() int
	CumFreq(sym int) uint64
	IncFreq(sym int)
}

// StaticModel is a DataModel built once from an externally supplied
// frequency vector and never mutated.
type StaticModel struct {
	cum []uint64
}

// NewStaticModel builds a StaticModel from freqs, where freqs[i] is the
// frequency of symbol i. At least one frequency must be non-zero.
func NewStaticModel(freqs []uint32) *StaticModel {
	cum := make([]uint64, len(freqs))
	var running uint64
	for i, f := range freqs {
		running += uint64(f)
		cum[i] = running
	}
	if running == 0 {
		errors.Panicf(errors.Format, "static model has zero total frequency")
	}
	if running >= maxTotal {
		errors.Panicf(errors.Format, "static model total frequency %d exceeds working precision", running)
	}
	return &StaticModel{cum: cum}
}

// Size implements DataModel.
func (m *StaticModel) Size() int { return len(m.cum) }

// CumFreq implements DataModel.
func (m *StaticModel) CumFreq(sym int) uint64 {
	if sym < 0 {
		return 0
	}
	return m.cum[sym]
}

// IncFreq implements DataModel. A StaticModel never adapts.
func (m *StaticModel) IncFreq(int) {}

// AdaptiveModel is a DataModel that starts with every symbol at frequency 1
// (so CumFreq(i) == i+1 and the total equals the alphabet size) and grows
// frequencies as symbols are coded.
type AdaptiveModel struct {
	cum []uint64
}

// NewAdaptiveModel returns an AdaptiveModel over the alphabet [0, n).
func NewAdaptiveModel(n int) *AdaptiveModel {
	m := &AdaptiveModel{cum: make([]uint64, n)}
	m.Reset()
	return m
}

// Reset restores the model to its initial state: every frequency equal to 1.
func (m *AdaptiveModel) Reset() {
	for i := range m.cum {
		m.cum[i] = uint64(i + 1)
	}
}

// Size implements DataModel.
func (m *AdaptiveModel) Size() int { return len(m.cum) }

// CumFreq implements DataModel.
func (m *AdaptiveModel) CumFreq(sym int) uint64 {
	if sym < 0 {
		return 0
	}
	return m.cum[sym]
}

// IncFreq implements DataModel, adding 1 to the frequency of sym (and hence
// to every cumulative frequency at or above it).
func (m *AdaptiveModel) IncFreq(sym int) {
	if m.cum[len(m.cum)-1] >= maxTotal {
		errors.Panicf(errors.Format, "adaptive model total frequency exceeds working precision")
	}
	for j := sym; j < len(m.cum); j++ {
		m.cum[j]++
	}
}
