// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package lzw

// ResetOnExhaustion is the default dictionary-reset policy used by cmd/lzw:
// it reports true exactly when the generator has no more codes to allocate.
// The policy is deliberately the caller's choice; callers of this package
// directly can substitute their own (e.g. one based on compression ratio).
func ResetOnExhaustion(g *Generator) bool {
	return !g.HaveNext()
}
