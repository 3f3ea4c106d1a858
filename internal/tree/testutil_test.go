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

package tree_test

import (
	"github.com/salikh/colmcore/internal/langel"
	"github.com/salikh/colmcore/internal/pool"
	"github.com/salikh/colmcore/internal/tree"
)

// fakeProgram is a minimal tree.Allocator good enough for the tree
// package's own tests: a couple of language elements with known object
// lengths, and pool-backed alloc/free so refcount-soundness checks have
// something to assert against.
type fakeProgram struct {
	trees *pool.Pool[tree.Tree]
	kids  *pool.Pool[tree.Kid]
	info  map[langel.ID]langel.Info
	attrs []int
}

func newFakeProgram() *fakeProgram {
	return &fakeProgram{
		trees: pool.New[tree.Tree](),
		kids:  pool.New[tree.Kid](),
		info:  map[langel.ID]langel.Info{},
	}
}

func (p *fakeProgram) setInfo(id langel.ID, info langel.Info) { p.info[id] = info }

func (p *fakeProgram) AllocTree() *tree.Tree {
	t := p.trees.Get()
	*t = tree.Tree{}
	return t
}
func (p *fakeProgram) FreeTree(t *tree.Tree) { p.trees.Put(t) }

func (p *fakeProgram) AllocKid() *tree.Kid {
	k := p.kids.Get()
	*k = tree.Kid{}
	return k
}
func (p *fakeProgram) FreeKid(k *tree.Kid) { p.kids.Put(k) }

func (p *fakeProgram) LangElInfo(id langel.ID) langel.Info { return p.info[id] }

func (p *fakeProgram) CaptureAttrOffset(idx int) int { return p.attrs[idx] }

func (p *fakeProgram) outstandingTrees() int { return p.trees.Outstanding() }
func (p *fakeProgram) outstandingKids() int  { return p.kids.Outstanding() }

const (
	idNum  langel.ID = 2
	idExpr langel.ID = 5
)
