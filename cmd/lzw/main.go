// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Command lzw compresses or decompresses a file with the LZW dictionary
// coder, using either the variable-width bit strategy or the
// arithmetic-coded strategy.
//
//	lzw [-a]           INPUT OUTPUT   // compress (variable-width default, -a arithmetic)
//	lzw  -d             INPUT OUTPUT   // decompress
package main

import (
	"bytes"
	"flag"
	"fmt"
	"os"

	"github.com/gocodecs/accodec/frame"
	"github.com/gocodecs/accodec/internal/errors"
	"github.com/gocodecs/accodec/lzw"
)

func main() {
	arithmetic := flag.Bool("a", false, "use the arithmetic-coded strategy (compress only)")
	decompress := flag.Bool("d", false, "decompress INPUT into OUTPUT")
	flag.Parse()

	if flag.NArg() != 2 {
		fmt.Fprintln(os.Stderr, "usage: lzw [-a|-d] INPUT OUTPUT")
		os.Exit(2)
	}
	in, out := flag.Arg(0), flag.Arg(1)

	var err error
	if *decompress {
		err = runDecompress(in, out)
	} else {
		err = runCompress(in, out, *arithmetic)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "lzw:", err)
		os.Exit(1)
	}
}

// countingWriter wraps a lzw.CodeWriter and counts how many codes pass
// through it (including dictionary-reset signals), so the arithmetic-coded
// frame can record an exact code count for the decoder to bound its reads
// by (see frame.WriteLZWHeader).
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

func runCompress(in, out string, arithmetic bool) error {
	data, err := os.ReadFile(in)
	if err != nil {
		return err
	}
	f, err := os.Create(out)
	if err != nil {
		return err
	}
	defer f.Close()

	if !arithmetic {
		if err := frame.WriteLZWHeader(f, frame.LZWVariable, 0); err != nil {
			return err
		}
		enc := lzw.NewLzwEncoder(lzw.NewVariableCodeWriter(f))
		return encodeWithReset(enc, data)
	}

	// The arithmetic-coded frame needs its code count up front, so the
	// coded payload is built in memory first.
	var buf bytes.Buffer
	cw := &countingWriter{CodeWriter: lzw.NewArithCodeWriter(&buf)}
	enc := lzw.NewLzwEncoder(cw)
	if err := encodeWithReset(enc, data); err != nil {
		return err
	}
	if err := frame.WriteLZWHeader(f, frame.LZWArithmetic, cw.n); err != nil {
		return err
	}
	_, err = f.Write(buf.Bytes())
	return err
}

// encodeWithReset drives the encoder byte-by-byte, erasing the dictionary
// whenever the code generator runs dry. WriteByte and EraseDictionary signal
// I/O and code-width failures by panicking with an *errors.Error, so the
// recovery boundary lives here rather than in LzwEncoder.Close alone.
func encodeWithReset(enc *lzw.LzwEncoder, data []byte) (err error) {
	defer errors.Recover(&err)
	for _, b := range data {
		enc.WriteByte(b)
		if lzw.ResetOnExhaustion(enc.Generator()) {
			enc.EraseDictionary()
		}
	}
	return enc.Close()
}

func runDecompress(in, out string) error {
	data, err := os.ReadFile(in)
	if err != nil {
		return err
	}
	r := bytes.NewReader(data)
	mode, codeCount, err := frame.ReadLZWHeader(r)
	if err != nil {
		return err
	}

	f, err := os.Create(out)
	if err != nil {
		return err
	}
	defer f.Close()

	if mode == frame.LZWVariable {
		dec := lzw.NewLzwDecoder(lzw.NewVariableCodeReader(r))
		return dec.Decode(f, -1)
	}
	dec := lzw.NewLzwDecoder(lzw.NewArithCodeReader(r))
	return dec.Decode(f, int(codeCount))
}
