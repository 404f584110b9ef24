// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package arith

import (
	"io"

	"github.com/dsnet/golib/errs"

	"github.com/gocodecs/accodec/internal/bitio"
	"github.com/gocodecs/accodec/internal/errors"
)

// Encoder performs carry-free, integer arithmetic coding of a symbol
// sequence against a caller-supplied DataModel, writing the resulting bit
// stream to an io.Writer via a bitio.Sink.
//
// An Encoder is not reentrant: it processes a single output stream and must
// not be shared between goroutines.
type Encoder struct {
	p       params
	low     uint64
	high    uint64
	pending uint64
	sink    *bitio.Sink
}

// NewEncoder returns an Encoder at DefaultPrecision writing to w.
func NewEncoder(w io.Writer) *Encoder {
	return NewEncoderPrecision(w, DefaultPrecision)
}

// NewEncoderPrecision returns an Encoder using the given working precision.
func NewEncoderPrecision(w io.Writer, prec Precision) *Encoder {
	e := &Encoder{p: newParams(prec), sink: bitio.NewSink(w)}
	e.high = e.p.max
	return e
}

// Encode codes a single symbol against m, narrowing the encoder's interval
// and emitting any bits the narrowing forces out. It panics with an
// *errors.Error if m reports a zero total frequency; callers at a package
// boundary (see cmd/ac) recover this with errors.Recover.
func (e *Encoder) Encode(sym int, m DataModel) {
	total := m.CumFreq(m.Size() - 1)
	errs.Assert(total >= 1, errors.Errorf(errors.Format, "data model total frequency is zero"))

	rng := e.high - e.low + 1
	step := rng / total

	oldLow := e.low
	newHigh := oldLow + step*m.CumFreq(sym) - 1
	newLow := oldLow
	if sym > 0 {
		newLow = oldLow + step*m.CumFreq(sym-1)
	}
	e.low, e.high = newLow, newHigh

	e.renormalize()
	m.IncFreq(sym)
}

func (e *Encoder) renormalize() {
	for {
		switch {
		case e.high < e.p.half:
			e.sink.WriteBit(false)
			e.flushPending(true)
			e.low = 2 * e.low
			e.high = 2*e.high + 1
		case e.low >= e.p.half:
			e.sink.WriteBit(true)
			e.flushPending(false)
			e.low = 2 * (e.low - e.p.half)
			e.high = 2*(e.high-e.p.half) + 1
		case e.low >= e.p.quarter && e.high < e.p.threeQuarters:
			e.low = 2 * (e.low - e.p.quarter)
			e.high = 2*(e.high-e.p.quarter) + 1
			e.pending++
		default:
			return
		}
	}
}

func (e *Encoder) flushPending(bit bool) {
	for i := uint64(0); i < e.pending; i++ {
		e.sink.WriteBit(bit)
	}
	e.pending = 0
}

// Close disambiguates the final interval by emitting enough bits to pin it
// down, then flushes the bit sink. The caller is expected to have just
// coded a distinguished end-of-stream symbol (or otherwise know where the
// decoded sequence ends); Close carries no knowledge of symbols itself.
func (e *Encoder) Close() error {
	e.pending++
	if e.low < e.p.quarter {
		e.sink.WriteBit(false)
		e.flushPending(true)
	} else {
		e.sink.WriteBit(true)
		e.flushPending(false)
	}
	return e.sink.Flush()
}
