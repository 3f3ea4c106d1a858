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
	"testing"

	"github.com/salikh/colmcore/internal/langel"
	"github.com/salikh/colmcore/internal/tree"
)

// TestRefcountSoundness builds a small expr(NUM, NUM) tree and verifies
// that downref'ing it to zero returns every kid and tree to the pool
// (spec.md's refcount-soundness property).
func TestRefcountSoundness(t *testing.T) {
	prg := newFakeProgram()
	prg.setInfo(idExpr, langel.Info{ObjectLength: 2})
	prg.setInfo(idNum, langel.Info{ObjectLength: 0})

	var sp tree.VMStack

	n1 := tree.NewTerm(prg, idNum, []byte("42"))
	n2 := tree.NewTerm(prg, idNum, []byte("7"))
	expr := tree.MakeTree(prg, idExpr, []*tree.Tree{n1, n2})

	tree.Downref(prg, &sp, n1)
	tree.Downref(prg, &sp, n2)

	if got := prg.outstandingTrees(); got != 3 {
		t.Fatalf("outstanding trees before final downref = %d, want 3 (expr and the two NUMs it still holds)", got)
	}

	tree.Downref(prg, &sp, expr)

	if got := prg.outstandingTrees(); got != 0 {
		t.Errorf("outstanding trees after downref to zero = %d, want 0", got)
	}
	if got := prg.outstandingKids(); got != 0 {
		t.Errorf("outstanding kids after downref to zero = %d, want 0", got)
	}
}

// TestFreeRecDeepChain builds a 100,000-deep right-leaning chain and frees
// it through Downref/FreeRec; a native-recursive free would overflow the
// Go stack on an input this deep, which is exactly what the iterative VM
// stack walk exists to avoid.
func TestFreeRecDeepChain(t *testing.T) {
	prg := newFakeProgram()
	prg.setInfo(idExpr, langel.Info{ObjectLength: 1})
	prg.setInfo(idNum, langel.Info{ObjectLength: 0})

	var sp tree.VMStack

	const depth = 100000
	leaf := tree.NewTerm(prg, idNum, []byte("0"))
	top := leaf
	for i := 0; i < depth; i++ {
		next := tree.MakeTree(prg, idExpr, []*tree.Tree{top})
		// MakeTree took its own reference to top; drop the builder's.
		tree.Downref(prg, &sp, top)
		top = next
	}

	tree.Downref(prg, &sp, top)

	if got := prg.outstandingTrees(); got != 0 {
		t.Errorf("outstanding trees after freeing %d-deep chain = %d, want 0", depth, got)
	}
	if got := prg.outstandingKids(); got != 0 {
		t.Errorf("outstanding kids after freeing %d-deep chain = %d, want 0", depth, got)
	}
}

// TestSplitIdempotence checks that splitting a tree with refs==1 returns
// the same pointer, unchanged.
func TestSplitIdempotence(t *testing.T) {
	prg := newFakeProgram()
	prg.setInfo(idNum, langel.Info{ObjectLength: 0})

	n := tree.NewTerm(prg, idNum, []byte("42"))
	got := tree.Split(prg, n)
	if got != n {
		t.Errorf("Split on refs==1 tree returned a different pointer")
	}
	if got.Refs != 1 {
		t.Errorf("Split on refs==1 tree changed Refs to %d, want 1", got.Refs)
	}
}

// TestSplitFidelity checks that splitting a shared tree (refs > 1) yields
// an independent copy with refs==1, decrements the original, and compares
// equal to it (scenario 3).
func TestSplitFidelity(t *testing.T) {
	prg := newFakeProgram()
	prg.setInfo(idNum, langel.Info{ObjectLength: 0})

	var sp tree.VMStack

	t1 := tree.NewTerm(prg, idNum, []byte("42"))
	tree.Upref(t1)

	t2 := tree.Split(prg, t1)
	if t2 == t1 {
		t.Fatalf("Split on shared tree returned the same pointer")
	}
	if t1.Refs != 1 {
		t.Errorf("original Refs after split = %d, want 1", t1.Refs)
	}
	if t2.Refs != 1 {
		t.Errorf("copy Refs after split = %d, want 1", t2.Refs)
	}
	if tree.Compare(prg, t1, t2) != 0 {
		t.Errorf("Compare(t1, t2) != 0 after split of an otherwise-identical tree")
	}

	tree.Downref(prg, &sp, t1)
	tree.Downref(prg, &sp, t2)
}

