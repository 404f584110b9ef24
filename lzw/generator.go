// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package lzw implements the LZW dictionary coder, parameterized by a code
// I/O strategy (simple text, variable-width bits, or arithmetic-coded
// indices), all built on a common code-generator abstraction.
package lzw

const (
	// CodeMark is transmitted by the variable-width writer just before the
	// first code that requires one additional bit to represent.
	CodeMark = 0
	// CodeDictReset is transmitted when the dictionary is reset.
	CodeDictReset = 1

	// VariableInitCode is the first code the variable-width and
	// arithmetic-coded generators hand out, after reserving CodeMark and
	// CodeDictReset.
	VariableInitCode = 2
	// VariableMaxCode is one past the highest code the variable-width
	// generator can allocate; it also doubles as the arithmetic-coded
	// mode's adaptive alphabet size.
	VariableMaxCode = 1<<16 - 1

	// SimpleInitCode reserves code 0 for the simple (text) writer's
	// literal dictionary-reset line.
	SimpleInitCode = 1
	// SimpleMaxCode is one past the highest code the simple generator can
	// allocate.
	SimpleMaxCode = 1<<30 - 1

	// InitCodeWidth is the variable-width code generator's starting
	// bit-width.
	InitCodeWidth = 9
	// MaxCodeWidth is the variable-width code generator's largest
	// bit-width.
	MaxCodeWidth = 16
)

// Generator yields dictionary codes monotonically from init up to (but not
// including) max, and can be rewound to init by Reset. It is the code
// allocation primitive shared by all three CodeWriter/CodeReader
// strategies.
type Generator struct {
	init uint32
	cur  uint32
	max  uint32
}

// NewGenerator returns a Generator producing init, init+1, ..., max-1.
func NewGenerator(init, max uint32) *Generator {
	g := &Generator{init: init, max: max}
	g.Reset()
	return g
}

// NewVariableGenerator returns the generator used by the variable-width and
// arithmetic-coded LZW modes.
func NewVariableGenerator() *Generator {
	return NewGenerator(VariableInitCode, VariableMaxCode)
}

// NewSimpleGenerator returns the generator used by the simple (text) LZW
// mode.
func NewSimpleGenerator() *Generator {
	return NewGenerator(SimpleInitCode, SimpleMaxCode)
}

// HaveNext reports whether Next can still allocate a code.
func (g *Generator) HaveNext() bool { return g.cur < g.max }

// Next allocates and returns the next code. Callers must check HaveNext
// first; Next does not itself guard against exceeding max.
func (g *Generator) Next() uint32 {
	c := g.cur
	g.cur++
	return c
}

// Reset rewinds the generator to its initial code.
func (g *Generator) Reset() { g.cur = g.init }

// Max returns the generator's exclusive upper bound, i.e. the alphabet size
// an arithmetic-coded CodeWriter/CodeReader should use for its adaptive
// model.
func (g *Generator) Max() uint32 { return g.max }
