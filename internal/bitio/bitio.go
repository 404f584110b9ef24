// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package bitio implements the bit-level I/O primitive shared by the arith
// and lzw packages.
//
// Bits are packed into octets MSB-first (bit 7 of the first octet is the
// first bit written or read), the same order bzip2 uses for its block
// format. Within a multi-bit field passed to WriteBits/ReadBits, the value
// is serialized LSB-first (bit 0 of the field first), matching the
// DEFLATE-style field convention flate.bitReader uses. The two conventions
// operate at different levels and do not conflict: WriteBits decomposes a
// field into individual bits LSB-first and feeds each one to the MSB-first
// octet packer in turn.
package bitio

import (
	"io"

	"github.com/gocodecs/accodec/internal/errors"
)

// Sink packs individual bits into octets and writes them to an io.Writer.
type Sink struct {
	w       io.Writer
	cur     byte
	nBits   uint // number of valid bits accumulated in cur, 0..7
	scratch [1]byte
}

// NewSink returns a Sink that packs bits into octets written to w.
func NewSink(w io.Writer) *Sink {
	return &Sink{w: w}
}

// WriteBit writes a single bit.
func (s *Sink) WriteBit(bit bool) {
	if bit {
		s.cur |= 1 << (7 - s.nBits)
	}
	s.nBits++
	if s.nBits == 8 {
		s.emit()
	}
}

// WriteBits writes the low n bits of value, bit 0 (LSB) first.
func (s *Sink) WriteBits(value uint64, n uint) {
	for i := uint(0); i < n; i++ {
		s.WriteBit((value>>i)&1 != 0)
	}
}

// Flush writes any partially accumulated octet, right-padded with zeros,
// and resets the bit buffer. It is idempotent.
func (s *Sink) Flush() error {
	if s.nBits > 0 {
		s.emit()
	}
	return nil
}

func (s *Sink) emit() {
	s.scratch[0] = s.cur
	if _, err := s.w.Write(s.scratch[:]); err != nil {
		errors.Panicf(errors.IO, "%v", err)
	}
	s.cur, s.nBits = 0, 0
}

// Source consumes bits packed MSB-first within each octet of an io.Reader.
//
// Once the underlying reader is exhausted, ReadBit reports an Underflow
// error; callers for whom an infinite tail of zero bits is valid past
// end-of-stream (the arithmetic decoder's sliding value register) are
// expected to catch that specific error and substitute a zero bit, as
// described by the arithmetic codec's renormalization rules.
type Source struct {
	r       io.Reader
	cur     byte
	nLeft   uint // number of unconsumed bits remaining in cur, 0..7
	scratch [1]byte
}

// NewSource returns a Source that reads bits from r.
func NewSource(r io.Reader) *Source {
	return &Source{r: r}
}

// ReadBit reads a single bit, fetching a fresh octet from the underlying
// reader when the current one is exhausted.
func (s *Source) ReadBit() (bool, error) {
	if s.nLeft == 0 {
		n, err := io.ReadFull(s.r, s.scratch[:])
		if n == 0 && err != nil {
			return false, errors.Errorf(errors.Underflow, "bit source exhausted: %v", err)
		}
		if err != nil {
			return false, errors.Errorf(errors.Underflow, "short octet read: %v", err)
		}
		s.cur = s.scratch[0]
		s.nLeft = 8
	}
	bit := (s.cur>>(s.nLeft-1))&1 != 0
	s.nLeft--
	return bit, nil
}

// ReadBits reads n bits and assembles them into a value, bit 0 (LSB) first,
// mirroring WriteBits.
func (s *Source) ReadBits(n uint) (uint64, error) {
	var value uint64
	for i := uint(0); i < n; i++ {
		bit, err := s.ReadBit()
		if err != nil {
			return 0, err
		}
		if bit {
			value |= 1 << i
		}
	}
	return value, nil
}

// IsUnderflow reports whether err is the Underflow-kind error ReadBit/
// ReadBits produce at end-of-stream.
func IsUnderflow(err error) bool {
	e, ok := err.(*errors.Error)
	return ok && e.Kind == errors.Underflow
}

// MinBits returns the number of bits needed to represent code in unsigned
// binary, i.e. the position of its highest set bit plus one. MinBits(0) is
// defined as 1, matching the LZW variable-width writer's convention that
// every code, including 0, occupies at least one bit.
func MinBits(code uint32) uint {
	n := uint(1)
	for code >>= 1; code != 0; code >>= 1 {
		n++
	}
	return n
}
