// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package frame implements the small magic-prefixed binary headers that
// precede the ac and lzw tools' coded payloads: a fixed magic plus a mode
// byte at the front of the stream, in the same style as bzip2's file magic
// and level byte.
package frame

import (
	"encoding/binary"
	"io"

	"github.com/gocodecs/accodec/internal/errors"
)

// ACMode selects the arithmetic-coder tool's probability model.
type ACMode byte

const (
	ACAdaptive ACMode = 0x00
	ACStatic   ACMode = 0x01
)

// NumACSymbols is the AC tool's fixed alphabet size: 256 octet values plus
// one end-of-stream symbol at index 256.
const NumACSymbols = 257

// EOSSymbol is the index of the AC tool's end-of-stream symbol.
const EOSSymbol = 256

var acMagic = [2]byte{'A', 'C'}

// WriteACHeader writes the "AC" frame header. For ACStatic, freqs must
// have exactly NumACSymbols entries with freqs[EOSSymbol] == 1; for
// ACAdaptive, freqs is ignored and should be nil.
func WriteACHeader(w io.Writer, mode ACMode, freqs []uint32) error {
	if _, err := w.Write(acMagic[:]); err != nil {
		return errors.Wrap(err, errors.IO)
	}
	if _, err := w.Write([]byte{byte(mode)}); err != nil {
		return errors.Wrap(err, errors.IO)
	}
	if mode == ACStatic {
		if len(freqs) != NumACSymbols {
			errors.Panicf(errors.Format, "static frequency table has %d entries, want %d", len(freqs), NumACSymbols)
		}
		buf := make([]byte, 4*NumACSymbols)
		for i, f := range freqs {
			binary.LittleEndian.PutUint32(buf[4*i:], f)
		}
		if _, err := w.Write(buf); err != nil {
			return errors.Wrap(err, errors.IO)
		}
	}
	return nil
}

// ReadACHeader reads the "AC" frame header. For ACAdaptive, the returned
// freqs is nil.
func ReadACHeader(r io.Reader) (mode ACMode, freqs []uint32, err error) {
	defer errors.Recover(&err)

	var hdr [3]byte
	if _, err := io.ReadFull(r, hdr[:]); err != nil {
		errors.Panicf(errors.Format, "short AC header: %v", err)
	}
	if hdr[0] != acMagic[0] || hdr[1] != acMagic[1] {
		errors.Panicf(errors.Format, "bad AC magic %q", hdr[:2])
	}
	mode = ACMode(hdr[2])
	if mode != ACAdaptive && mode != ACStatic {
		errors.Panicf(errors.Format, "unknown AC mode byte 0x%02x", hdr[2])
	}
	if mode == ACStatic {
		buf := make([]byte, 4*NumACSymbols)
		if _, err := io.ReadFull(r, buf); err != nil {
			errors.Panicf(errors.Format, "short AC frequency table: %v", err)
		}
		freqs = make([]uint32, NumACSymbols)
		for i := range freqs {
			freqs[i] = binary.LittleEndian.Uint32(buf[4*i:])
		}
	}
	return mode, freqs, nil
}

// LZWMode selects the lzw tool's code-emission strategy.
type LZWMode byte

const (
	LZWVariable   LZWMode = 0x00
	LZWArithmetic LZWMode = 0x01
)

var lzwMagic = [3]byte{'L', 'Z', 'W'}

// WriteLZWHeader writes the "LZW" frame header. codeCount is only
// meaningful (and only written) for LZWArithmetic, whose code stream has
// no self-delimiting end-of-stream signal; pass the exact number of codes
// the corresponding LzwEncoder emitted.
func WriteLZWHeader(w io.Writer, mode LZWMode, codeCount uint64) error {
	if _, err := w.Write(lzwMagic[:]); err != nil {
		return errors.Wrap(err, errors.IO)
	}
	if _, err := w.Write([]byte{byte(mode)}); err != nil {
		return errors.Wrap(err, errors.IO)
	}
	if mode == LZWArithmetic {
		var buf [8]byte
		binary.LittleEndian.PutUint64(buf[:], codeCount)
		if _, err := w.Write(buf[:]); err != nil {
			return errors.Wrap(err, errors.IO)
		}
	}
	return nil
}

// ReadLZWHeader reads the "LZW" frame header. codeCount is 0 for
// LZWVariable (the caller should pass a negative maxCodes to
// LzwDecoder.Decode in that case).
func ReadLZWHeader(r io.Reader) (mode LZWMode, codeCount uint64, err error) {
	defer errors.Recover(&err)

	var hdr [4]byte
	if _, err := io.ReadFull(r, hdr[:]); err != nil {
		errors.Panicf(errors.Format, "short LZW header: %v", err)
	}
	if hdr[0] != lzwMagic[0] || hdr[1] != lzwMagic[1] || hdr[2] != lzwMagic[2] {
		errors.Panicf(errors.Format, "bad LZW magic %q", hdr[:3])
	}
	mode = LZWMode(hdr[3])
	if mode != LZWVariable && mode != LZWArithmetic {
		errors.Panicf(errors.Format, "unknown LZW mode byte 0x%02x", hdr[3])
	}
	if mode == LZWArithmetic {
		var buf [8]byte
		if _, err := io.ReadFull(r, buf[:]); err != nil {
			errors.Panicf(errors.Format, "short LZW code count: %v", err)
		}
		codeCount = binary.LittleEndian.Uint64(buf[:])
	}
	return mode, codeCount, nil
}
