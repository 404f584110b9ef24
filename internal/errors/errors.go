// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package errors defines the kind-tagged error type shared by the arith and
// lzw packages, along with the panic/recover plumbing that lets the hot
// encode/decode loops signal failure without threading an error return
// through every call.
package errors

import (
	"fmt"
	"runtime"
)

// Kind identifies the taxonomy of failure a codec can report.
type Kind uint8

const (
	// Format indicates a bad magic header, unknown mode byte, or a
	// frequency table that cannot represent a valid DataModel (zero or
	// overflowing total).
	Format Kind = iota
	// Underflow indicates the bit source was exhausted before the
	// expected number of bits could be read.
	Underflow
	// InvalidSymbol indicates a decoded symbol fell outside the model's
	// alphabet.
	InvalidSymbol
	// CodeWidth indicates the variable-width LZW writer was asked to
	// emit a code wider than curWidth+1.
	CodeWidth
	// Dictionary indicates an LZW decoder dictionary lookup failed, or
	// the bootstrap code did not map to a single-byte entry.
	Dictionary
	// IO indicates the underlying octet stream returned an error.
	IO
)

func (k Kind) String() string {
	switch k {
	case Format:
		return "format error"
	case Underflow:
		return "underflow error"
	case InvalidSymbol:
		return "invalid symbol"
	case CodeWidth:
		return "code width error"
	case Dictionary:
		return "dictionary error"
	case IO:
		return "i/o error"
	default:
		return "error"
	}
}

// Error is the wrapper type for errors produced by this module.
type Error struct {
	Kind Kind
	Msg  string
}

func (e *Error) Error() string {
	if e.Msg == "" {
		return e.Kind.String()
	}
	return e.Kind.String() + ": " + e.Msg
}

// errorf constructs an *Error of the given kind.
func errorf(kind Kind, format string, a ...interface{}) error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, a...)}
}

// Errorf constructs an *Error of the given kind.
func Errorf(kind Kind, format string, a ...interface{}) error {
	return errorf(kind, format, a...)
}

// Panicf panics with an *Error of the given kind. Per-stream entry points
// such as LzwEncoder.Close and LzwDecoder.Decode defer Recover themselves;
// functions that do not (arith.Encoder.Encode, arith.Decoder.Decode,
// LzwEncoder.WriteByte, frame.WriteACHeader, ...) let the panic propagate to
// their caller, and cmd/ac, cmd/lzw and the bench tool defer Recover around
// those calls.
func Panicf(kind Kind, format string, a ...interface{}) {
	panic(errorf(kind, format, a...))
}

// Panic panics with err directly, preserving sentinel values like io.EOF
// that callers above Recover compare against with ==.
func Panic(err error) {
	panic(err)
}

// Recover must be deferred at the top of any exported method that calls
// Panicf/Panic internally. It converts a panic carrying an error value into
// a normal return through *err; any other panic (including a runtime.Error,
// which indicates a bug rather than a data error) is re-raised.
func Recover(err *error) {
	switch ex := recover().(type) {
	case nil:
		// Do nothing.
	case runtime.Error:
		panic(ex)
	case error:
		*err = ex
	default:
		panic(ex)
	}
}

// Wrap ensures err is non-nil and tagged with kind, wrapping it if it is not
// already an *Error.
func Wrap(err error, kind Kind) error {
	if err == nil {
		return nil
	}
	if _, ok := err.(*Error); ok {
		return err
	}
	return &Error{Kind: kind, Msg: err.Error()}
}
