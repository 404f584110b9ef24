// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package arith

import (
	"io"

	"github.com/gocodecs/accodec/internal/bitio"
	"github.com/gocodecs/accodec/internal/errors"
)

// Decoder mirrors Encoder: it walks the same interval-narrowing state
// machine, driven by a sliding value register filled from a bitio.Source,
// and must be fed symbols from the same sequence of DataModel states the
// encoder used (in particular, the same IncFreq calls in the same order).
type Decoder struct {
	p     params
	low   uint64
	high  uint64
	value uint64
	src   *bitio.Source
}

// NewDecoder returns a Decoder at DefaultPrecision reading from r.
func NewDecoder(r io.Reader) *Decoder {
	return NewDecoderPrecision(r, DefaultPrecision)
}

// NewDecoderPrecision returns a Decoder using the given working precision.
// It must match the precision the corresponding Encoder used.
func NewDecoderPrecision(r io.Reader, prec Precision) *Decoder {
	d := &Decoder{p: newParams(prec), src: bitio.NewSource(r)}
	d.high = d.p.max
	for i := uint(1); i < uint(prec); i++ {
		d.value = 2*d.value + btoi(d.nextBit())
	}
	return d
}

// nextBit reads the next bit from the source, synthesizing a zero bit once
// the underlying stream is exhausted: the encoder's Close emits only enough
// bits to disambiguate the final interval, and the decoder completes the
// last symbols against an implicit tail of zeros.
func (d *Decoder) nextBit() bool {
	bit, err := d.src.ReadBit()
	if err != nil {
		if bitio.IsUnderflow(err) {
			return false
		}
		errors.Panicf(errors.IO, "%v", err)
	}
	return bit
}

func btoi(b bool) uint64 {
	if b {
		return 1
	}
	return 0
}

// Decode decodes the next symbol against m and returns it. It panics with
// an *errors.Error of kind InvalidSymbol if the decoded index falls outside
// [0, m.Size()).
func (d *Decoder) Decode(m DataModel) int {
	total := m.CumFreq(m.Size() - 1)
	rng := d.high - d.low + 1
	step := rng / total

	// The target uses the same truncated step the encoder narrows by, so
	// symbol s is decoded exactly when value-low falls in
	// [step*CumFreq(s-1), step*CumFreq(s)).
	target := (d.value - d.low) / step

	sym := 0
	for sym < m.Size()-1 && m.CumFreq(sym) <= target {
		sym++
	}
	if sym < 0 || sym >= m.Size() {
		errors.Panicf(errors.InvalidSymbol, "decoded symbol %d outside [0,%d)", sym, m.Size())
	}

	oldLow := d.low
	newHigh := oldLow + step*m.CumFreq(sym) - 1
	newLow := oldLow
	if sym > 0 {
		newLow = oldLow + step*m.CumFreq(sym-1)
	}
	d.low, d.high = newLow, newHigh

	d.renormalize()
	m.IncFreq(sym)
	return sym
}

func (d *Decoder) renormalize() {
	for {
		switch {
		case d.high < d.p.half:
			d.low = 2 * d.low
			d.high = 2*d.high + 1
			d.value = 2*d.value + btoi(d.nextBit())
		case d.low >= d.p.half:
			d.low = 2 * (d.low - d.p.half)
			d.high = 2*(d.high-d.p.half) + 1
			d.value = 2*(d.value-d.p.half) + btoi(d.nextBit())
		case d.low >= d.p.quarter && d.high < d.p.threeQuarters:
			d.low = 2 * (d.low - d.p.quarter)
			d.high = 2*(d.high-d.p.quarter) + 1
			d.value = 2*(d.value-d.p.quarter) + btoi(d.nextBit())
		default:
			return
		}
	}
}
