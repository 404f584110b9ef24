// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package lzw

import (
	"bufio"
	"fmt"
	"io"
	"strconv"

	"github.com/gocodecs/accodec/arith"
	"github.com/gocodecs/accodec/internal/bitio"
	"github.com/gocodecs/accodec/internal/errors"
)

// CodeWriter is one of the three ways an LzwEncoder can emit dictionary
// codes to an output stream: as decimal text, as variable-width bit
// fields, or as symbols coded through an arithmetic encoder.
type CodeWriter interface {
	// WriteCode emits a single dictionary code.
	WriteCode(code uint32)
	// WriteDictReset signals that the dictionary has been rebuilt from
	// scratch and the reader must do the same.
	WriteDictReset()
	// Flush finalizes any buffered output. It must be called exactly
	// once, after the last WriteCode/WriteDictReset.
	Flush() error
	// Generator returns the code generator this writer allocates from.
	Generator() *Generator
}

// CodeReader is the decode-side counterpart to CodeWriter.
type CodeReader interface {
	// ReadNextCode returns the next code and ok == true, or ok == false
	// once the stream is cleanly exhausted (not a format error).
	ReadNextCode() (code uint32, ok bool)
	// DictResetCode returns the sentinel value ReadNextCode returns to
	// signal a dictionary reset; callers compare against it themselves.
	DictResetCode() uint32
	// Generator returns the code generator this reader allocates from.
	Generator() *Generator
}

// --- Simple (text) strategy -------------------------------------------------

// SimpleCodeWriter writes one decimal integer per line, a human-legible
// format useful for debugging the dictionary builder in isolation from the
// bit-level strategies.
type SimpleCodeWriter struct {
	w   *bufio.Writer
	gen *Generator
}

// NewSimpleCodeWriter returns a SimpleCodeWriter writing to w.
func NewSimpleCodeWriter(w io.Writer) *SimpleCodeWriter {
	return &SimpleCodeWriter{w: bufio.NewWriter(w), gen: NewSimpleGenerator()}
}

func (cw *SimpleCodeWriter) WriteCode(code uint32) {
	if _, err := fmt.Fprintf(cw.w, "%d\n", code); err != nil {
		errors.Panicf(errors.IO, "%v", err)
	}
}

func (cw *SimpleCodeWriter) WriteDictReset() {
	if _, err := cw.w.WriteString("0\n"); err != nil {
		errors.Panicf(errors.IO, "%v", err)
	}
}

func (cw *SimpleCodeWriter) Flush() error { return cw.w.Flush() }

func (cw *SimpleCodeWriter) Generator() *Generator { return cw.gen }

// SimpleCodeReader is the decode-side counterpart of SimpleCodeWriter.
type SimpleCodeReader struct {
	s   *bufio.Scanner
	gen *Generator
}

// NewSimpleCodeReader returns a SimpleCodeReader reading from r.
func NewSimpleCodeReader(r io.Reader) *SimpleCodeReader {
	return &SimpleCodeReader{s: bufio.NewScanner(r), gen: NewSimpleGenerator()}
}

// ReadNextCode parses the next line as a decimal integer. A line that fails
// to parse (including a truncated final line) ends the stream cleanly
// rather than erroring.
func (cr *SimpleCodeReader) ReadNextCode() (uint32, bool) {
	if !cr.s.Scan() {
		return 0, false
	}
	v, err := strconv.ParseUint(cr.s.Text(), 10, 32)
	if err != nil {
		return 0, false
	}
	return uint32(v), true
}

func (cr *SimpleCodeReader) DictResetCode() uint32 { return 0 }

func (cr *SimpleCodeReader) Generator() *Generator { return cr.gen }

// --- Variable-width bits strategy -------------------------------------------

// VariableCodeWriter packs codes as fixed-width bit fields that grow from
// InitCodeWidth to MaxCodeWidth, signaling each growth with CodeMark at the
// old width so the reader widens in lockstep.
type VariableCodeWriter struct {
	sink     *bitio.Sink
	gen      *Generator
	curWidth uint
}

// NewVariableCodeWriter returns a VariableCodeWriter writing to w.
func NewVariableCodeWriter(w io.Writer) *VariableCodeWriter {
	return &VariableCodeWriter{sink: bitio.NewSink(w), gen: NewVariableGenerator(), curWidth: InitCodeWidth}
}

func (cw *VariableCodeWriter) WriteCode(code uint32) {
	if n := bitio.MinBits(code); n > cw.curWidth {
		if n > cw.curWidth+1 {
			errors.Panicf(errors.CodeWidth, "code %d needs %d bits, width is only %d", code, n, cw.curWidth)
		}
		cw.sink.WriteBits(CodeMark, cw.curWidth)
		cw.curWidth++
	}
	cw.sink.WriteBits(uint64(code), cw.curWidth)
}

func (cw *VariableCodeWriter) WriteDictReset() {
	cw.sink.WriteBits(CodeDictReset, cw.curWidth)
	cw.curWidth = InitCodeWidth
}

func (cw *VariableCodeWriter) Flush() error { return cw.sink.Flush() }

func (cw *VariableCodeWriter) Generator() *Generator { return cw.gen }

// VariableCodeReader is the decode-side counterpart of VariableCodeWriter.
type VariableCodeReader struct {
	src      *bitio.Source
	gen      *Generator
	curWidth uint
}

// NewVariableCodeReader returns a VariableCodeReader reading from r.
func NewVariableCodeReader(r io.Reader) *VariableCodeReader {
	return &VariableCodeReader{src: bitio.NewSource(r), gen: NewVariableGenerator(), curWidth: InitCodeWidth}
}

// ReadNextCode reads curWidth bits, transparently consuming and acting on
// any number of leading CodeMark values before returning the real code.
// Stream exhaustion (an Underflow from the bit source) ends the stream
// cleanly.
func (cr *VariableCodeReader) ReadNextCode() (uint32, bool) {
	for {
		v, err := cr.src.ReadBits(cr.curWidth)
		if err != nil {
			if bitio.IsUnderflow(err) {
				return 0, false
			}
			errors.Panicf(errors.IO, "%v", err)
		}
		if v == CodeMark {
			cr.curWidth++
			continue
		}
		if v == CodeDictReset {
			cr.curWidth = InitCodeWidth
		}
		return uint32(v), true
	}
}

func (cr *VariableCodeReader) DictResetCode() uint32 { return CodeDictReset }

func (cr *VariableCodeReader) Generator() *Generator { return cr.gen }

// --- Arithmetic-coded strategy -----------------------------------------------

// ArithCodeWriter encodes each code as a symbol against an AdaptiveModel
// sized to the code generator's alphabet.
type ArithCodeWriter struct {
	enc *arith.Encoder
	m   *arith.AdaptiveModel
	gen *Generator
}

// NewArithCodeWriter returns an ArithCodeWriter writing to w.
func NewArithCodeWriter(w io.Writer) *ArithCodeWriter {
	gen := NewVariableGenerator()
	return &ArithCodeWriter{enc: arith.NewEncoder(w), m: arith.NewAdaptiveModel(int(gen.Max())), gen: gen}
}

func (cw *ArithCodeWriter) WriteCode(code uint32) {
	cw.enc.Encode(int(code), cw.m)
}

// WriteDictReset encodes the CodeDictReset symbol and then resets the
// adaptive model, so the reset itself benefits from whatever statistics
// preceded it but nothing coded afterward is skewed by them.
func (cw *ArithCodeWriter) WriteDictReset() {
	cw.enc.Encode(CodeDictReset, cw.m)
	cw.m.Reset()
}

func (cw *ArithCodeWriter) Flush() error { return cw.enc.Close() }

func (cw *ArithCodeWriter) Generator() *Generator { return cw.gen }

// ArithCodeReader is the decode-side counterpart of ArithCodeWriter.
type ArithCodeReader struct {
	dec *arith.Decoder
	m   *arith.AdaptiveModel
	gen *Generator
}

// NewArithCodeReader returns an ArithCodeReader reading from r.
func NewArithCodeReader(r io.Reader) *ArithCodeReader {
	gen := NewVariableGenerator()
	return &ArithCodeReader{dec: arith.NewDecoder(r), m: arith.NewAdaptiveModel(int(gen.Max())), gen: gen}
}

// ReadNextCode always returns ok == true: the arithmetic-coded strategy has
// no end-of-stream signal of its own (there is no LZW end-of-stream
// symbol), so the caller (LzwDecoder, via an explicit code count or length
// bound carried by the frame) is responsible for knowing when to stop
// calling ReadNextCode.
func (cr *ArithCodeReader) ReadNextCode() (uint32, bool) {
	sym := cr.dec.Decode(cr.m)
	if sym == CodeDictReset {
		cr.m.Reset()
	}
	return uint32(sym), true
}

func (cr *ArithCodeReader) DictResetCode() uint32 { return CodeDictReset }

func (cr *ArithCodeReader) Generator() *Generator { return cr.gen }
