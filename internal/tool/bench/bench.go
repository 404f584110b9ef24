// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package bench compares the ratio and throughput of ac/lzw against
// established reference codecs on the same input.
//
// The Encoder/Decoder registry shape here is whole-stream rather than
// streaming: ac and lzw are synchronous, non-reentrant, single-pass codecs,
// so there is no partial-Read contract to expose. klauspost/compress/flate
// and ulikunitz/xz/lzma are adapted to the same whole-stream shape for a
// uniform comparison surface.
package bench

import (
	"bytes"
	"io"
	"io/ioutil"
	"runtime"
	"testing"

	"github.com/klauspost/compress/flate"
	"github.com/ulikunitz/xz/lzma"

	"github.com/gocodecs/accodec/arith"
	"github.com/gocodecs/accodec/frame"
	"github.com/gocodecs/accodec/internal/errors"
	"github.com/gocodecs/accodec/lzw"
)

// Encoder compresses all of input, writing the result to w.
type Encoder func(w io.Writer, input []byte) error

// Decoder decompresses all of r, writing the result to w.
type Decoder func(r io.Reader, w io.Writer) error

var (
	Encoders = map[string]Encoder{}
	Decoders = map[string]Decoder{}
)

// RegisterEncoder adds enc to the named codec registry, overwriting any
// previous registration under the same name.
func RegisterEncoder(name string, enc Encoder) { Encoders[name] = enc }

// RegisterDecoder adds dec to the named codec registry.
func RegisterDecoder(name string, dec Decoder) { Decoders[name] = dec }

func init() {
	RegisterEncoder("ac-adaptive", encodeACAdaptive)
	RegisterDecoder("ac-adaptive", decodeAC)
	RegisterEncoder("ac-static", encodeACStatic)
	RegisterDecoder("ac-static", decodeAC)

	RegisterEncoder("lzw-variable", encodeLZWVariable)
	RegisterDecoder("lzw-variable", decodeLZWVariable)
	RegisterEncoder("lzw-arithmetic", encodeLZWArithmetic)
	RegisterDecoder("lzw-arithmetic", decodeLZWArithmetic)

	RegisterEncoder("flate", func(w io.Writer, input []byte) error {
		zw, err := flate.NewWriter(w, flate.DefaultCompression)
		if err != nil {
			return err
		}
		if _, err := zw.Write(input); err != nil {
			return err
		}
		return zw.Close()
	})
	RegisterDecoder("flate", func(r io.Reader, w io.Writer) error {
		zr := flate.NewReader(r)
		defer zr.Close()
		_, err := io.Copy(w, zr)
		return err
	})

	RegisterEncoder("lzma", func(w io.Writer, input []byte) error {
		zw, err := lzma.NewWriter(w)
		if err != nil {
			return err
		}
		if _, err := zw.Write(input); err != nil {
			return err
		}
		return zw.Close()
	})
	RegisterDecoder("lzma", func(r io.Reader, w io.Writer) error {
		zr, err := lzma.NewReader(r)
		if err != nil {
			return err
		}
		_, err = io.Copy(w, zr)
		return err
	})
}

func encodeACAdaptive(w io.Writer, input []byte) (err error) {
	defer errors.Recover(&err)
	if err := frame.WriteACHeader(w, frame.ACAdaptive, nil); err != nil {
		return err
	}
	m := arith.NewAdaptiveModel(frame.NumACSymbols)
	e := arith.NewEncoder(w)
	for _, b := range input {
		e.Encode(int(b), m)
	}
	e.Encode(frame.EOSSymbol, m)
	return e.Close()
}

func encodeACStatic(w io.Writer, input []byte) (err error) {
	defer errors.Recover(&err)
	freqs := make([]uint32, frame.NumACSymbols)
	for _, b := range input {
		freqs[b]++
	}
	for i := 0; i < 256; i++ {
		if freqs[i] == 0 {
			freqs[i] = 1
		}
	}
	freqs[frame.EOSSymbol] = 1
	if err := frame.WriteACHeader(w, frame.ACStatic, freqs); err != nil {
		return err
	}
	m := arith.NewStaticModel(freqs)
	e := arith.NewEncoder(w)
	for _, b := range input {
		e.Encode(int(b), m)
	}
	e.Encode(frame.EOSSymbol, m)
	return e.Close()
}

func decodeAC(r io.Reader, w io.Writer) (err error) {
	defer errors.Recover(&err)
	mode, freqs, err := frame.ReadACHeader(r)
	if err != nil {
		return err
	}
	var m arith.DataModel
	if mode == frame.ACStatic {
		m = arith.NewStaticModel(freqs)
	} else {
		m = arith.NewAdaptiveModel(frame.NumACSymbols)
	}
	d := arith.NewDecoder(r)
	var buf []byte
	for {
		sym := d.Decode(m)
		if sym == frame.EOSSymbol {
			break
		}
		buf = append(buf, byte(sym))
	}
	_, err = w.Write(buf)
	return err
}

func encodeLZWVariable(w io.Writer, input []byte) (err error) {
	defer errors.Recover(&err)
	if err := frame.WriteLZWHeader(w, frame.LZWVariable, 0); err != nil {
		return err
	}
	enc := lzw.NewLzwEncoder(lzw.NewVariableCodeWriter(w))
	for _, b := range input {
		enc.WriteByte(b)
		if lzw.ResetOnExhaustion(enc.Generator()) {
			enc.EraseDictionary()
		}
	}
	return enc.Close()
}

func decodeLZWVariable(r io.Reader, w io.Writer) error {
	mode, _, err := frame.ReadLZWHeader(r)
	if err != nil {
		return err
	}
	if mode != frame.LZWVariable {
		return io.ErrUnexpectedEOF
	}
	dec := lzw.NewLzwDecoder(lzw.NewVariableCodeReader(r))
	return dec.Decode(w, -1)
}

func encodeLZWArithmetic(w io.Writer, input []byte) (err error) {
	defer errors.Recover(&err)
	var buf bytes.Buffer
	cw := &countingWriter{CodeWriter: lzw.NewArithCodeWriter(&buf)}
	enc := lzw.NewLzwEncoder(cw)
	for _, b := range input {
		enc.WriteByte(b)
		if lzw.ResetOnExhaustion(enc.Generator()) {
			enc.EraseDictionary()
		}
	}
	if err := enc.Close(); err != nil {
		return err
	}
	if err := frame.WriteLZWHeader(w, frame.LZWArithmetic, cw.n); err != nil {
		return err
	}
	_, err = w.Write(buf.Bytes())
	return err
}

func decodeLZWArithmetic(r io.Reader, w io.Writer) error {
	mode, count, err := frame.ReadLZWHeader(r)
	if err != nil {
		return err
	}
	if mode != frame.LZWArithmetic {
		return io.ErrUnexpectedEOF
	}
	dec := lzw.NewLzwDecoder(lzw.NewArithCodeReader(r))
	return dec.Decode(w, int(count))
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

// BenchmarkEncoder benchmarks a single encoder on input and reports the
// result.
func BenchmarkEncoder(input []byte, enc Encoder) testing.BenchmarkResult {
	return testing.Benchmark(func(b *testing.B) {
		b.StopTimer()
		if enc == nil {
			b.Fatalf("unexpected error: nil Encoder")
		}
		runtime.GC()
		b.StartTimer()
		for i := 0; i < b.N; i++ {
			if err := enc(ioutil.Discard, input); err != nil {
				b.Fatalf("unexpected error: %v", err)
			}
			b.SetBytes(int64(len(input)))
		}
	})
}

// BenchmarkDecoder benchmarks a single decoder on pre-compressed input and
// reports the result.
func BenchmarkDecoder(compressed []byte, dec Decoder, rawSize int) testing.BenchmarkResult {
	return testing.Benchmark(func(b *testing.B) {
		b.StopTimer()
		if dec == nil {
			b.Fatalf("unexpected error: nil Decoder")
		}
		runtime.GC()
		b.StartTimer()
		for i := 0; i < b.N; i++ {
			if err := dec(bytes.NewReader(compressed), ioutil.Discard); err != nil {
				b.Fatalf("unexpected error: %v", err)
			}
			b.SetBytes(int64(rawSize))
		}
	})
}

// Ratio returns rawSize/compSize, the standard compression ratio metric.
func Ratio(rawSize, compSize int) float64 {
	if compSize == 0 {
		return 0
	}
	return float64(rawSize) / float64(compSize)
}
