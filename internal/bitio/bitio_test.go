// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package bitio

import (
	"bytes"
	"testing"
)

// TestBitRoundTrip checks that reading after writing a bit sequence yields
// the same sequence, up to the right-zero-padding of the final byte.
func TestBitRoundTrip(t *testing.T) {
	bits := []bool{true, false, true, true, false, false, true, false, true, true, true}

	var buf bytes.Buffer
	s := NewSink(&buf)
	for _, b := range bits {
		s.WriteBit(b)
	}
	if err := s.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}

	src := NewSource(&buf)
	for i, want := range bits {
		got, err := src.ReadBit()
		if err != nil {
			t.Fatalf("ReadBit(%d): %v", i, err)
		}
		if got != want {
			t.Errorf("bit %d = %v, want %v", i, got, want)
		}
	}
}

func TestBitsFieldRoundTrip(t *testing.T) {
	vectors := []struct {
		value uint64
		width uint
	}{
		{0, 1}, {1, 1}, {5, 3}, {255, 8}, {256, 9}, {65535, 16},
	}
	var buf bytes.Buffer
	s := NewSink(&buf)
	for _, v := range vectors {
		s.WriteBits(v.value, v.width)
	}
	if err := s.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}

	src := NewSource(&buf)
	for i, v := range vectors {
		got, err := src.ReadBits(v.width)
		if err != nil {
			t.Fatalf("ReadBits(%d): %v", i, err)
		}
		if got != v.value {
			t.Errorf("field %d = %d, want %d", i, got, v.value)
		}
	}
}

func TestReadBitUnderflow(t *testing.T) {
	src := NewSource(bytes.NewReader(nil))
	if _, err := src.ReadBit(); !IsUnderflow(err) {
		t.Errorf("ReadBit on empty source: err = %v, want an Underflow error", err)
	}
}

func TestMinBits(t *testing.T) {
	vectors := []struct {
		code uint32
		want uint
	}{
		{0, 1}, {1, 1}, {2, 2}, {3, 2}, {4, 3}, {511, 9}, {512, 10}, {65535, 16},
	}
	for _, v := range vectors {
		if got := MinBits(v.code); got != v.want {
			t.Errorf("MinBits(%d) = %d, want %d", v.code, got, v.want)
		}
	}
}
