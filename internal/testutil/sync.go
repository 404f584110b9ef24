// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package testutil

import "github.com/google/go-cmp/cmp"

// ModelSnapshot captures a data model's cumulative-frequency vector for
// comparison. The arith tests use it to assert that two adaptive models
// driven through the same symbol sequence (as an encoder's and a decoder's
// are) stay in lockstep after every symbol, which requires IncFreq to be
// applied in the same order on both sides.
type ModelSnapshot struct {
	Size    int
	CumFreq []uint64
}

// Snapshot walks m's alphabet and records its cumulative frequencies.
func Snapshot(size int, cumFreq func(sym int) uint64) ModelSnapshot {
	s := ModelSnapshot{Size: size, CumFreq: make([]uint64, size)}
	for i := 0; i < size; i++ {
		s.CumFreq[i] = cumFreq(i)
	}
	return s
}

// DiffModels reports a human-readable diff between two model snapshots, or
// the empty string if they are identical.
func DiffModels(want, got ModelSnapshot) string {
	return cmp.Diff(want, got)
}
