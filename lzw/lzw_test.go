// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package lzw

import (
	"bytes"
	"testing"

	"github.com/gocodecs/accodec/internal/errors"
	"github.com/gocodecs/accodec/internal/testutil"
)

// loremInput is a 118-byte English sentence with enough repeated digraphs
// to grow the dictionary past its bootstrap entries.
const loremInput = "Lorem ipsum dolor sit amet, consectetur adipisici elit, sed do " +
	"eiusmod tempor incidunt ut labore et dolore magna aliqu"

func TestSimpleRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	enc := NewLzwEncoder(NewSimpleCodeWriter(&buf))
	if _, err := enc.Write([]byte(loremInput)); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := enc.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	dec := NewLzwDecoder(NewSimpleCodeReader(&buf))
	var out bytes.Buffer
	if err := dec.Decode(&out, -1); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if out.String() != loremInput {
		t.Errorf("round trip mismatch:\ngot:  %q\nwant: %q", out.String(), loremInput)
	}
}

func TestVariableRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	enc := NewLzwEncoder(NewVariableCodeWriter(&buf))
	if _, err := enc.Write([]byte(loremInput)); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := enc.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	dec := NewLzwDecoder(NewVariableCodeReader(&buf))
	var out bytes.Buffer
	if err := dec.Decode(&out, -1); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if out.String() != loremInput {
		t.Errorf("round trip mismatch:\ngot:  %q\nwant: %q", out.String(), loremInput)
	}
}

// TestVariableRoundTripWithReset invokes EraseDictionary exactly at the
// midpoint byte; the round trip must still reproduce the original.
func TestVariableRoundTripWithReset(t *testing.T) {
	var buf bytes.Buffer
	enc := NewLzwEncoder(NewVariableCodeWriter(&buf))
	mid := len(loremInput) / 2
	for i, b := range []byte(loremInput) {
		enc.WriteByte(b)
		if i == mid {
			enc.EraseDictionary()
		}
	}
	if err := enc.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	dec := NewLzwDecoder(NewVariableCodeReader(&buf))
	var out bytes.Buffer
	if err := dec.Decode(&out, -1); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if out.String() != loremInput {
		t.Errorf("round trip mismatch:\ngot:  %q\nwant: %q", out.String(), loremInput)
	}
}

// TestArithmeticRoundTripLong round-trips 100,000 random ASCII digits
// through the arithmetic-coded strategy.
func TestArithmeticRoundTripLong(t *testing.T) {
	r := testutil.NewRand(1)
	input := make([]byte, 100000)
	for i := range input {
		input[i] = byte('0' + r.Intn(10))
	}

	var codeBuf bytes.Buffer
	cw := &countingCodeWriter{CodeWriter: NewArithCodeWriter(&codeBuf)}
	enc := NewLzwEncoder(cw)
	if _, err := enc.Write(input); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := enc.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	dec := NewLzwDecoder(NewArithCodeReader(&codeBuf))
	var out bytes.Buffer
	if err := dec.Decode(&out, int(cw.n)); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !bytes.Equal(out.Bytes(), input) {
		t.Error("round trip mismatch for 100,000-digit input")
	}
}

// fixedCodeReader hands back a fixed sequence of codes, letting a test drive
// LzwDecoder.Decode with codes that could never come out of a real
// CodeWriter -- in particular, a bootstrap code outside the initial
// single-octet dictionary.
type fixedCodeReader struct {
	codes []uint32
	gen   *Generator
}

func (r *fixedCodeReader) ReadNextCode() (uint32, bool) {
	if len(r.codes) == 0 {
		return 0, false
	}
	c := r.codes[0]
	r.codes = r.codes[1:]
	return c, true
}

func (r *fixedCodeReader) DictResetCode() uint32 { return CodeDictReset }

func (r *fixedCodeReader) Generator() *Generator { return r.gen }

// TestDecodeBootstrapDictionaryError exercises the DictionaryError failure
// mode: the first code a decoder sees must resolve to one of the initial
// 256 single-octet dictionary entries (codes VariableInitCode through
// VariableInitCode+255), and anything else is a corrupt stream.
func TestDecodeBootstrapDictionaryError(t *testing.T) {
	r := &fixedCodeReader{codes: []uint32{VariableInitCode + 256}, gen: NewVariableGenerator()}
	dec := NewLzwDecoder(r)

	var out bytes.Buffer
	err := dec.Decode(&out, -1)
	if err == nil {
		t.Fatal("Decode: expected an error, got nil")
	}
	e, ok := err.(*errors.Error)
	if !ok {
		t.Fatalf("Decode: got error of type %T(%v), want *errors.Error", err, err)
	}
	if e.Kind != errors.Dictionary {
		t.Fatalf("Decode: got error kind %v, want %v", e.Kind, errors.Dictionary)
	}
}

// countingCodeWriter counts every code (including dictionary-reset
// signals) written through it, mirroring cmd/lzw's need to know the exact
// code count up front for the arithmetic-coded frame header.
type countingCodeWriter struct {
	CodeWriter
	n uint64
}

func (c *countingCodeWriter) WriteCode(code uint32) {
	c.n++
	c.CodeWriter.WriteCode(code)
}

func (c *countingCodeWriter) WriteDictReset() {
	c.n++
	c.CodeWriter.WriteDictReset()
}

// TestBoundaryInputs covers the degenerate inputs: empty input, single-byte
// input, and exactly 256 distinct bytes, each through all three strategies.
func TestBoundaryInputs(t *testing.T) {
	all256 := make([]byte, 256)
	for i := range all256 {
		all256[i] = byte(i)
	}

	vectors := []struct {
		desc  string
		input []byte
	}{
		{desc: "empty", input: nil},
		{desc: "single byte", input: []byte{'x'}},
		{desc: "256 distinct bytes", input: all256},
	}

	for _, v := range vectors {
		t.Run(v.desc+"/simple", func(t *testing.T) {
			var buf bytes.Buffer
			enc := NewLzwEncoder(NewSimpleCodeWriter(&buf))
			enc.Write(v.input)
			if err := enc.Close(); err != nil {
				t.Fatalf("Close: %v", err)
			}
			dec := NewLzwDecoder(NewSimpleCodeReader(&buf))
			var out bytes.Buffer
			if err := dec.Decode(&out, -1); err != nil {
				t.Fatalf("Decode: %v", err)
			}
			if !bytes.Equal(out.Bytes(), v.input) {
				t.Errorf("mismatch: got %d bytes, want %d", out.Len(), len(v.input))
			}
		})
		t.Run(v.desc+"/variable", func(t *testing.T) {
			var buf bytes.Buffer
			enc := NewLzwEncoder(NewVariableCodeWriter(&buf))
			enc.Write(v.input)
			if err := enc.Close(); err != nil {
				t.Fatalf("Close: %v", err)
			}
			dec := NewLzwDecoder(NewVariableCodeReader(&buf))
			var out bytes.Buffer
			if err := dec.Decode(&out, -1); err != nil {
				t.Fatalf("Decode: %v", err)
			}
			if !bytes.Equal(out.Bytes(), v.input) {
				t.Errorf("mismatch: got %d bytes, want %d", out.Len(), len(v.input))
			}
		})
		t.Run(v.desc+"/arithmetic", func(t *testing.T) {
			var codeBuf bytes.Buffer
			cw := &countingCodeWriter{CodeWriter: NewArithCodeWriter(&codeBuf)}
			enc := NewLzwEncoder(cw)
			enc.Write(v.input)
			if err := enc.Close(); err != nil {
				t.Fatalf("Close: %v", err)
			}
			dec := NewLzwDecoder(NewArithCodeReader(&codeBuf))
			var out bytes.Buffer
			if err := dec.Decode(&out, int(cw.n)); err != nil {
				t.Fatalf("Decode: %v", err)
			}
			if !bytes.Equal(out.Bytes(), v.input) {
				t.Errorf("mismatch: got %d bytes, want %d", out.Len(), len(v.input))
			}
		})
	}
}
