// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package lzw

import "github.com/gocodecs/accodec/internal/errors"

// LzwEncoder builds an LZW dictionary over a byte stream and emits codes
// through a CodeWriter strategy: a dictionary keyed by octet sequence,
// grown monotonically, with codes allocated from the writer's own
// Generator.
//
// LzwEncoder is not reentrant: it processes one input stream and must not
// be shared between goroutines.
type LzwEncoder struct {
	w    CodeWriter
	gen  *Generator
	dict map[string]uint32
	cur  []byte // the current longest matched prefix
}

// NewLzwEncoder returns an LzwEncoder writing through cw.
func NewLzwEncoder(cw CodeWriter) *LzwEncoder {
	e := &LzwEncoder{w: cw, gen: cw.Generator()}
	e.rebuild()
	return e
}

func (e *LzwEncoder) rebuild() {
	e.dict = make(map[string]uint32, 256)
	for b := 0; b < 256; b++ {
		e.dict[string([]byte{byte(b)})] = e.gen.Next()
	}
	e.cur = e.cur[:0]
}

// Generator returns the code generator backing this encoder's dictionary.
func (e *LzwEncoder) Generator() *Generator { return e.gen }

// Write feeds p through the encoder. It never returns an error of its own;
// I/O failures from the underlying CodeWriter panic with an *errors.Error,
// which callers at a package boundary turn back into a plain error with
// errors.Recover (Close does this for its own emission; see cmd/lzw for the
// per-byte loop's boundary).
func (e *LzwEncoder) Write(p []byte) (int, error) {
	for _, b := range p {
		e.WriteByte(b)
	}
	return len(p), nil
}

// WriteByte feeds a single input byte through the encoder. Exposed
// separately from Write so callers can apply a reset policy (see
// ResetOnExhaustion) between bytes.
func (e *LzwEncoder) WriteByte(b byte) {
	wb := make([]byte, len(e.cur)+1)
	copy(wb, e.cur)
	wb[len(e.cur)] = b
	if _, ok := e.dict[string(wb)]; ok {
		e.cur = wb
		return
	}
	if len(e.cur) > 0 {
		e.w.WriteCode(e.dict[string(e.cur)])
	}
	if e.gen.HaveNext() {
		e.dict[string(wb)] = e.gen.Next()
	}
	e.cur = append(e.cur[:0], b)
}

// EraseDictionary emits the pending code for the current prefix (if any),
// resets the code generator, rebuilds the dictionary down to its 256
// bootstrap entries, and signals the reset to the reader side. The policy
// for when to call it is caller-driven (see ResetOnExhaustion).
func (e *LzwEncoder) EraseDictionary() {
	if len(e.cur) > 0 {
		e.w.WriteCode(e.dict[string(e.cur)])
	}
	e.gen.Reset()
	e.rebuild()
	e.w.WriteDictReset()
}

// Close emits the final pending code (if any) and flushes the underlying
// CodeWriter. It recovers internal panics (I/O failures, a CodeWidth
// overflow from the variable-width strategy) into a normal error return.
func (e *LzwEncoder) Close() (err error) {
	defer errors.Recover(&err)
	if len(e.cur) > 0 {
		e.w.WriteCode(e.dict[string(e.cur)])
		e.cur = e.cur[:0]
	}
	return e.w.Flush()
}
