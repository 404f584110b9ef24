// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

//go:build gofuzz
// +build gofuzz

// Package lzw provides a go-fuzz entry point for the lzw package, exercising
// all three CodeWriter/CodeReader strategies against the same input.
package lzw

import (
	"bytes"

	"github.com/gocodecs/accodec/lzw"
)

func Fuzz(data []byte) int {
	if len(data) == 0 {
		return 0
	}
	testSimple(data)
	testVariable(data)
	testArithmetic(data)
	return 1
}

func testSimple(data []byte) {
	var buf bytes.Buffer
	enc := lzw.NewLzwEncoder(lzw.NewSimpleCodeWriter(&buf))
	if _, err := enc.Write(data); err != nil {
		panic(err)
	}
	if err := enc.Close(); err != nil {
		panic(err)
	}

	var out bytes.Buffer
	dec := lzw.NewLzwDecoder(lzw.NewSimpleCodeReader(&buf))
	if err := dec.Decode(&out, -1); err != nil {
		panic(err)
	}
	if !bytes.Equal(out.Bytes(), data) {
		panic("lzw: simple round trip mismatch")
	}
}

func testVariable(data []byte) {
	var buf bytes.Buffer
	enc := lzw.NewLzwEncoder(lzw.NewVariableCodeWriter(&buf))
	for i, b := range data {
		enc.WriteByte(b)
		if i%4096 == 4095 && lzw.ResetOnExhaustion(enc.Generator()) {
			enc.EraseDictionary()
		}
	}
	if err := enc.Close(); err != nil {
		panic(err)
	}

	var out bytes.Buffer
	dec := lzw.NewLzwDecoder(lzw.NewVariableCodeReader(&buf))
	if err := dec.Decode(&out, -1); err != nil {
		panic(err)
	}
	if !bytes.Equal(out.Bytes(), data) {
		panic("lzw: variable round trip mismatch")
	}
}

func testArithmetic(data []byte) {
	var buf bytes.Buffer
	cw := &countingWriter{CodeWriter: lzw.NewArithCodeWriter(&buf)}
	enc := lzw.NewLzwEncoder(cw)
	for _, b := range data {
		enc.WriteByte(b)
	}
	if err := enc.Close(); err != nil {
		panic(err)
	}

	var out bytes.Buffer
	dec := lzw.NewLzwDecoder(lzw.NewArithCodeReader(&buf))
	if err := dec.Decode(&out, int(cw.n)); err != nil {
		panic(err)
	}
	if !bytes.Equal(out.Bytes(), data) {
		panic("lzw: arithmetic round trip mismatch")
	}
}

type countingWriter struct {
	lzw.CodeWriter
	n uint64
}

func (c *countingWriter) WriteCode(code uint32) {
	c.n++
	c.CodeWriter.WriteCode(code)
}

func (c *countingWriter) WriteDictReset() {
	c.n++
	c.CodeWriter.WriteDictReset()
}
