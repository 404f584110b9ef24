// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Command ac compresses or decompresses a file with the arithmetic coder,
// using either an adaptive or a static per-symbol frequency model.
//
//	ac  [-s]           INPUT OUTPUT   // compress (adaptive default, -s static)
//	ac   -d             INPUT OUTPUT   // decompress (mode detected from header)
package main

import (
	"bytes"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/dsnet/golib/strconv"

	"github.com/gocodecs/accodec/arith"
	"github.com/gocodecs/accodec/frame"
	"github.com/gocodecs/accodec/internal/errors"
)

func main() {
	static := flag.Bool("s", false, "use a static frequency model (compress only)")
	decompress := flag.Bool("d", false, "decompress INPUT into OUTPUT")
	freqFlag := flag.String("freq", "", "comma-separated override of the 257 static frequencies (compress -s only)")
	flag.Parse()

	if flag.NArg() != 2 {
		fmt.Fprintln(os.Stderr, "usage: ac [-s|-d] [-freq f0,f1,...] INPUT OUTPUT")
		os.Exit(2)
	}
	in, out := flag.Arg(0), flag.Arg(1)

	var err error
	if *decompress {
		err = runDecompress(in, out)
	} else {
		err = runCompress(in, out, *static, *freqFlag)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "ac:", err)
		os.Exit(1)
	}
}

// runCompress drives the encoder loop directly (arith.Encoder.Encode has no
// exported error return), so it defers errors.Recover the same way lzw's
// LzwEncoder.Close does: a corrupt or out-of-range frequency table panics
// from within arith, and Recover turns that into a normal error return
// instead of crashing the process.
func runCompress(in, out string, static bool, freqOverride string) (err error) {
	defer errors.Recover(&err)

	data, err := os.ReadFile(in)
	if err != nil {
		return err
	}
	f, err := os.Create(out)
	if err != nil {
		return err
	}
	defer f.Close()

	mode := frame.ACAdaptive
	var freqs []uint32
	if static {
		mode = frame.ACStatic
		if freqOverride != "" {
			freqs, err = parseFreqs(freqOverride)
			if err != nil {
				return err
			}
		} else {
			freqs = histogram(data)
		}
	}
	if err := frame.WriteACHeader(f, mode, freqs); err != nil {
		return err
	}

	var m arith.DataModel
	if static {
		m = arith.NewStaticModel(freqs)
	} else {
		m = arith.NewAdaptiveModel(frame.NumACSymbols)
	}

	enc := arith.NewEncoder(f)
	for _, b := range data {
		enc.Encode(int(b), m)
	}
	enc.Encode(frame.EOSSymbol, m)
	return enc.Close()
}

// runDecompress mirrors runCompress: frame.ReadACHeader performs no
// validation on the 257 frequencies it reads off disk, so a corrupted
// static header (e.g. one summing to zero) reaches arith.NewStaticModel and
// panics. defer errors.Recover(&err) catches that, along with any panic out
// of Decoder.Decode, and turns it into a normal error return.
func runDecompress(in, out string) (err error) {
	defer errors.Recover(&err)

	data, err := os.ReadFile(in)
	if err != nil {
		return err
	}
	r := bytes.NewReader(data)
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

	f, err := os.Create(out)
	if err != nil {
		return err
	}
	defer f.Close()

	dec := arith.NewDecoder(r)
	var buf []byte
	for {
		sym := dec.Decode(m)
		if sym == frame.EOSSymbol {
			break
		}
		buf = append(buf, byte(sym))
	}
	_, err = f.Write(buf)
	return err
}

// histogram builds the 257-entry static frequency table for data: one
// count per octet value (floored at 1, since a zero-frequency symbol
// cannot be coded), with the end-of-stream symbol fixed at 1.
func histogram(data []byte) []uint32 {
	freqs := make([]uint32, frame.NumACSymbols)
	for _, b := range data {
		freqs[b]++
	}
	for i := 0; i < 256; i++ {
		if freqs[i] == 0 {
			freqs[i] = 1
		}
	}
	freqs[frame.EOSSymbol] = 1
	return freqs
}

// parseFreqs parses a comma-separated list of exactly 257 non-negative
// numbers (decimal or a unit-prefixed form like 4KiB) into a static
// frequency table.
func parseFreqs(s string) ([]uint32, error) {
	parts := strings.Split(s, ",")
	if len(parts) != frame.NumACSymbols {
		return nil, fmt.Errorf("-freq must supply exactly %d values, got %d", frame.NumACSymbols, len(parts))
	}
	freqs := make([]uint32, len(parts))
	for i, p := range parts {
		v, err := strconv.ParsePrefix(p, strconv.AutoParse)
		if err != nil {
			return nil, fmt.Errorf("-freq entry %d (%q): %v", i, p, err)
		}
		freqs[i] = uint32(v)
	}
	return freqs, nil
}
