// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

//go:build gofuzz
// +build gofuzz

// Package arith provides a go-fuzz entry point for the arith package.
//
// There is no second, independent implementation of this codec to
// cross-check against, so the fuzzed property is round-trip fidelity:
// encode then decode and panic on any mismatch.
package arith

import (
	"bytes"

	"github.com/gocodecs/accodec/arith"
)

// Fuzz round-trips data through an AdaptiveModel over the 257-symbol
// alphabet (256 octets plus the end-of-stream symbol cmd/ac uses), and
// separately through a StaticModel built from data's own histogram.
func Fuzz(data []byte) int {
	if len(data) == 0 {
		return 0
	}
	testAdaptive(data)
	testStatic(data)
	return 1
}

func testAdaptive(data []byte) {
	const eos = 256
	var buf bytes.Buffer
	m := arith.NewAdaptiveModel(eos + 1)
	e := arith.NewEncoder(&buf)
	for _, b := range data {
		e.Encode(int(b), m)
	}
	e.Encode(eos, m)
	if err := e.Close(); err != nil {
		panic(err)
	}

	dm := arith.NewAdaptiveModel(eos + 1)
	d := arith.NewDecoder(&buf)
	var out []byte
	for {
		sym := d.Decode(dm)
		if sym == eos {
			break
		}
		out = append(out, byte(sym))
	}
	if !bytes.Equal(out, data) {
		panic("arith: adaptive round trip mismatch")
	}
}

func testStatic(data []byte) {
	freqs := make([]uint32, 256)
	for _, b := range data {
		freqs[b]++
	}
	for i := range freqs {
		if freqs[i] == 0 {
			freqs[i] = 1
		}
	}

	var buf bytes.Buffer
	m := arith.NewStaticModel(freqs)
	e := arith.NewEncoder(&buf)
	for _, b := range data {
		e.Encode(int(b), m)
	}
	if err := e.Close(); err != nil {
		panic(err)
	}

	d := arith.NewDecoder(&buf)
	out := make([]byte, len(data))
	for i := range out {
		out[i] = byte(d.Decode(m))
	}
	if !bytes.Equal(out, data) {
		panic("arith: static round trip mismatch")
	}
}
