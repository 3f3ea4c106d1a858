// Copyright 2019 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package colmcore is the embedder-facing facade over the tree,
// construct, match, pattern-table, stream, and printer layers: a host
// program builds a Program, hands it a compiled pattern-node table and
// language-element descriptor table, and drives construction, matching,
// streaming, and printing through the re-exports below.
package colmcore

import (
	"github.com/salikh/colmcore/internal/construct"
	"github.com/salikh/colmcore/internal/langel"
	"github.com/salikh/colmcore/internal/match"
	"github.com/salikh/colmcore/internal/patterntab"
	"github.com/salikh/colmcore/internal/printer"
	"github.com/salikh/colmcore/internal/rtprogram"
	"github.com/salikh/colmcore/internal/streamio"
	"github.com/salikh/colmcore/internal/tree"
)

type (
	// Program is one self-contained runtime instance.
	Program = rtprogram.Program
	// Config bundles pool sizing, RunBuf chunk size, and printer defaults
	// for NewProgramWithConfig.
	Config = rtprogram.Config

	// Tree is a node in the parse forest.
	Tree = tree.Tree
	// Kid is a single child-list cell.
	Kid = tree.Kid
	// VMStack is the explicit work stack the free and print walks use
	// instead of native recursion.
	VMStack = tree.VMStack

	// ID identifies a language element.
	ID = langel.ID
	// Info is a language element's compiler-emitted descriptor.
	Info = langel.Info
	// LangElTable is the language-element descriptor table.
	LangElTable = langel.Table

	// PatternTable is the compiled pattern/constructor node table.
	PatternTable = patterntab.Table
	// PatternNode is one entry of a PatternTable.
	PatternNode = patterntab.Node

	// Bindings is the one-based bindId-to-tree vector construct/match
	// populate and consult.
	Bindings = construct.Bindings

	// Stream is the polymorphic input/output abstraction every source
	// kind (memory, file, pattern, constructor, accumulator) implements.
	Stream = streamio.Stream
	// RunBuf is the fixed-size queuing unit streams exchange.
	RunBuf = streamio.RunBuf

	// Printer is the callback ABI print walks drive.
	Printer = printer.Printer
	// PrintOptions configures a print walk (trim, comment suppression).
	PrintOptions = printer.Options
)

const (
	IDPtr    = langel.IDPtr
	IDStr    = langel.IDStr
	IDIgnore = langel.IDIgnore
	NoIndex  = langel.None
)

// NewProgram returns a fresh, empty runtime instance with default
// configuration (see Config).
func NewProgram() *Program {
	return rtprogram.New()
}

// NewProgramWithConfig is NewProgram with pool pre-sizing, RunBuf chunk
// size, and printer defaults taken from cfg.
func NewProgramWithConfig(cfg Config) *Program {
	return rtprogram.NewWithConfig(cfg)
}

// ConstructTree builds a tree from pattern-table index pat, substituting
// bound subtrees from bindings where the node has a bindId whose binding
// is set, and building the node from the table otherwise.
func ConstructTree(prg *Program, nodes *PatternTable, bindings Bindings, pat int) *Tree {
	return construct.Tree(prg, nodes, nil, bindings, pat)
}

// Match attempts to match pattern-table index pat against kid, filling
// bindings in pre-order traversal order.
func Match(prg *Program, nodes *PatternTable, bindings Bindings, pat int, kid *Kid, checkNext bool) bool {
	return match.Match(prg, nodes, bindings, pat, kid, checkNext)
}

// Downref releases one logical owner of t, freeing it (and any
// exclusively-owned children) through the program's VM stack once the
// count reaches zero.
func Downref(prg *Program, t *Tree) {
	tree.Downref(prg, &prg.VM, t)
}

// Upref adds one logical owner to t.
func Upref(t *Tree) {
	tree.Upref(t)
}

// Split enforces copy-on-write, returning a tree with Refs==1.
func Split(prg *Program, t *Tree) *Tree {
	return tree.Split(prg, t)
}

// Compare is a total order over trees, used for structural equality.
func Compare(prg *Program, a, b *Tree) int {
	return tree.Compare(prg, a, b)
}

// PrintTree reconstructs source text (or a structured rendering) from
// kid, writing through p per opts.
func PrintTree(prg *Program, p Printer, opts PrintOptions, kid *Kid) {
	printer.PrintTree(prg, p, opts, kid)
}
