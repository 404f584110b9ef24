// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package lzw

import (
	"io"

	"github.com/gocodecs/accodec/internal/errors"
)

// LzwDecoder mirrors LzwEncoder: it rebuilds the same dictionary in
// lockstep, reading codes through a CodeReader strategy, and handles the
// KwKwK self-reference case (a code referencing the entry being built) as
// well as dictionary-reset signaling.
type LzwDecoder struct {
	r    CodeReader
	gen  *Generator
	dict map[uint32][]byte
}

// NewLzwDecoder returns an LzwDecoder reading through cr.
func NewLzwDecoder(cr CodeReader) *LzwDecoder {
	d := &LzwDecoder{r: cr, gen: cr.Generator()}
	d.rebuild()
	return d
}

func (d *LzwDecoder) rebuild() {
	d.dict = make(map[uint32][]byte, 256)
	for b := 0; b < 256; b++ {
		d.dict[d.gen.Next()] = []byte{byte(b)}
	}
}

// Decode reads codes from the underlying CodeReader and writes the
// decompressed bytes to w.
//
// maxCodes bounds how many codes are consumed: a negative value means
// "until the reader cleanly reports end of stream" (used by the Simple and
// Variable-width strategies, whose underlying bit/text sources are
// naturally bounded). The arithmetic-coded strategy has no such natural
// end -- the caller must supply the exact code count the matching
// LzwEncoder emitted, carried out-of-band by the frame (see the frame
// package).
func (d *LzwDecoder) Decode(w io.Writer, maxCodes int) (err error) {
	defer errors.Recover(&err)

	var (
		started bool
		prev    uint32
		c       byte
		count   int
	)
	for maxCodes < 0 || count < maxCodes {
		code, ok := d.r.ReadNextCode()
		if !ok {
			return nil
		}
		count++

		if code == d.r.DictResetCode() {
			d.gen.Reset()
			d.rebuild()
			started = false
			continue
		}

		if !started {
			out, ok := d.dict[code]
			if !ok {
				errors.Panicf(errors.Dictionary, "bootstrap code %d is not a single-octet entry", code)
			}
			writeAll(w, out)
			prev, c, started = code, out[0], true
			continue
		}

		var out []byte
		if entry, ok := d.dict[code]; ok {
			out = entry
		} else {
			out = append(append([]byte(nil), d.dict[prev]...), c)
		}
		writeAll(w, out)

		if d.gen.HaveNext() {
			entry := append(append([]byte(nil), d.dict[prev]...), out[0])
			d.dict[d.gen.Next()] = entry
		}
		c = out[0]
		prev = code
	}
	return nil
}

func writeAll(w io.Writer, p []byte) {
	if _, err := w.Write(p); err != nil {
		errors.Panicf(errors.IO, "%v", err)
	}
}
