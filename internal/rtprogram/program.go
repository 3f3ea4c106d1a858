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

// Package rtprogram wires the pool, langel, and patterntab packages into
// a single program value that implements tree.Allocator — the
// "capability" every tree/construct/match/printer call is handed
// explicitly, rather than reaching through a hidden package-level
// singleton. A program owns all of its own pools and tables; two
// programs never share state.
package rtprogram

import (
	"github.com/golang/glog"

	"github.com/salikh/colmcore/internal/langel"
	"github.com/salikh/colmcore/internal/patterntab"
	"github.com/salikh/colmcore/internal/pool"
	"github.com/salikh/colmcore/internal/printer"
	"github.com/salikh/colmcore/internal/streamio"
	"github.com/salikh/colmcore/internal/tree"
)

// Config bundles the pool sizing, RunBuf chunk size, and printer defaults
// an embedder would otherwise have to wire by hand at every call site.
// There is no flag-parsing or environment-variable layer in this core
// (that belongs to whatever embeds it); Config is a plain struct built by
// the caller, following the same explicit-value approach as Program
// itself.
type Config struct {
	// TreePoolSize and KidPoolSize pre-fill the tree/kid pools so the
	// first allocations of a parse don't pay for slab growth.
	TreePoolSize, KidPoolSize int
	// RunBufSize sizes a file-backed stream's read-fill chunk (see
	// streamio.Config.RunBufSize). Zero means streamio.BufSize.
	RunBufSize int
	// PrintTrim and PrintComments become the Trim/PrintIgnore fields of
	// DefaultPrintOptions.
	PrintTrim, PrintComments bool
}

// DefaultConfig returns the Config New() builds a Program with: no
// pool pre-sizing, streamio.BufSize RunBufs, comments printed, no trim.
func DefaultConfig() Config {
	return Config{PrintComments: true}
}

// Program is one self-contained runtime instance: its language-element
// descriptor table, its compiled pattern-node table, its capture-attr
// offset table, and the tree/kid pools every allocation in this program
// draws from.
type Program struct {
	LangEls      langel.Table
	Nodes        patterntab.Table
	CaptureAttrs []int

	Config Config

	trees *pool.Pool[tree.Tree]
	kids  *pool.Pool[tree.Kid]

	// VM is the explicit work stack passed to free/print walks that must
	// not recurse natively.
	VM tree.VMStack
}

// New returns a fresh, empty program with DefaultConfig. Callers populate
// LangEls, Nodes, and CaptureAttrs (normally produced by a compiler front
// end outside this package's scope) before constructing any trees.
func New() *Program {
	return NewWithConfig(DefaultConfig())
}

// NewWithConfig is New with pool pre-sizing, RunBuf chunk size, and printer
// defaults taken from cfg instead of DefaultConfig.
func NewWithConfig(cfg Config) *Program {
	return &Program{
		Config: cfg,
		trees:  pool.NewWithCapacity[tree.Tree](cfg.TreePoolSize),
		kids:   pool.NewWithCapacity[tree.Kid](cfg.KidPoolSize),
	}
}

// StreamConfig returns the streamio.Config a stream opened for this
// program should use, so OpenFileStreamWithConfig picks up the same
// RunBufSize the program was configured with.
func (p *Program) StreamConfig() streamio.Config {
	return streamio.Config{RunBufSize: p.Config.RunBufSize}
}

// DefaultPrintOptions returns the printer.Options this program's Config
// prescribes, for callers that don't need to vary trim/comment behaviour
// per call.
func (p *Program) DefaultPrintOptions() printer.Options {
	return printer.Options{PrintIgnore: p.Config.PrintComments, Trim: p.Config.PrintTrim}
}

var _ tree.Allocator = (*Program)(nil)

func (p *Program) AllocTree() *tree.Tree {
	t := p.trees.Get()
	*t = tree.Tree{}
	return t
}

func (p *Program) FreeTree(t *tree.Tree) {
	p.trees.Put(t)
}

func (p *Program) AllocKid() *tree.Kid {
	k := p.kids.Get()
	*k = tree.Kid{}
	return k
}

func (p *Program) FreeKid(k *tree.Kid) {
	p.kids.Put(k)
}

func (p *Program) LangElInfo(id langel.ID) langel.Info {
	return p.LangEls.Lookup(id)
}

func (p *Program) CaptureAttrOffset(idx int) int {
	if idx < 0 || idx >= len(p.CaptureAttrs) {
		glog.Exitf("structural violation: capture attr index %d out of range [0, %d)", idx, len(p.CaptureAttrs))
	}
	return p.CaptureAttrs[idx]
}

// PoolStats reports current pool occupancy, for the refcount-soundness
// tests: after downref'ing every tree a test built, Outstanding() for
// both pools must read zero.
type PoolStats struct {
	TreesAllocated, TreesOutstanding int
	KidsAllocated, KidsOutstanding   int
}

func (p *Program) Stats() PoolStats {
	return PoolStats{
		TreesAllocated:   p.trees.Allocated(),
		TreesOutstanding: p.trees.Outstanding(),
		KidsAllocated:    p.kids.Allocated(),
		KidsOutstanding:  p.kids.Outstanding(),
	}
}
