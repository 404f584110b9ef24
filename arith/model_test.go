// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package arith

import "testing"

func TestStaticModel(t *testing.T) {
	m := NewStaticModel([]uint32{2, 0, 3, 1})
	if got, want := m.Size(), 4; got != want {
		t.Errorf("Size() = %d, want %d", got, want)
	}
	wantCum := []uint64{2, 2, 5, 6}
	for i, want := range wantCum {
		if got := m.CumFreq(i); got != want {
			t.Errorf("CumFreq(%d) = %d, want %d", i, got, want)
		}
	}
	if got := m.CumFreq(-1); got != 0 {
		t.Errorf("CumFreq(-1) = %d, want 0", got)
	}
	// A StaticModel never adapts.
	m.IncFreq(0)
	if got := m.CumFreq(3); got != 6 {
		t.Errorf("CumFreq(3) after IncFreq = %d, want unchanged 6", got)
	}
}

func TestStaticModelZeroTotal(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("NewStaticModel with all-zero frequencies did not panic")
		}
	}()
	NewStaticModel([]uint32{0, 0, 0})
}

func TestAdaptiveModel(t *testing.T) {
	m := NewAdaptiveModel(4)
	for i := 0; i < 4; i++ {
		if got, want := m.CumFreq(i), uint64(i+1); got != want {
			t.Errorf("initial CumFreq(%d) = %d, want %d", i, got, want)
		}
	}

	m.IncFreq(1)
	want := []uint64{1, 3, 4, 5}
	for i, w := range want {
		if got := m.CumFreq(i); got != w {
			t.Errorf("after IncFreq(1): CumFreq(%d) = %d, want %d", i, got, w)
		}
	}

	m.Reset()
	for i := 0; i < 4; i++ {
		if got, want := m.CumFreq(i), uint64(i+1); got != want {
			t.Errorf("after Reset: CumFreq(%d) = %d, want %d", i, got, want)
		}
	}
}
