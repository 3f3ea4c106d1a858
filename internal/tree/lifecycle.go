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

package tree

import (
	"github.com/salikh/colmcore/internal/langel"

	log "github.com/golang/glog"
)

// Upref adds one logical owner to tree. A nil tree is a no-op, matching
// colm_tree_upref.
func Upref(t *Tree) {
	if t != nil {
		t.Refs++
	}
}

// Downref releases one logical owner. If the count reaches zero the tree
// (and everything it alone owns) is freed through the iterative walk on
// sp. A nil tree is a no-op (colm_tree_downref).
func Downref(prg Allocator, sp *VMStack, t *Tree) {
	if t == nil {
		return
	}
	if t.Refs <= 0 {
		log.Exitf("structural violation: downref of tree with refs=%d", t.Refs)
	}
	t.Refs--
	if t.Refs == 0 {
		log.V(9).Infof("downref: freeing tree id=%d", t.ID)
		FreeRec(prg, sp, t)
	}
}

// FreeRec frees tree and, transitively, every child it exclusively owned,
// without native recursion: children are pushed onto sp, unref'd, and
// drained in a loop, exactly as treeFreeRec does with the C VM stack. This
// is a hard requirement (see design notes): a tree may be megabytes deep.
func FreeRec(prg Allocator, sp *VMStack, t *Tree) {
	top := sp.Len()

	freeOne(prg, sp, t)

	for sp.Len() != top {
		t = sp.Pop()
		if t == nil {
			continue
		}
		if t.Refs <= 0 {
			log.Exitf("structural violation: freeing already-dead tree")
		}
		t.Refs--
		if t.Refs == 0 {
			freeOne(prg, sp, t)
		}
	}
}

// freeOne frees exactly one node's own storage, pushing its owned
// children (if any) onto sp for the caller to drain. It distinguishes
// PTR, STR, IGNORE and generic trees, matching treeFreeRec's switch.
func freeOne(prg Allocator, sp *VMStack, t *Tree) {
	switch t.ID {
	case langel.IDPtr:
		prg.FreeTree(t)
	case langel.IDStr:
		prg.FreeTree(t)
	default:
		if t.ID != langel.IDIgnore {
			// Ignore-wrapper trees carry no tokdata of their own; every
			// other kind frees its head here.
			t.Tokdata = nil
		}
		child := t.Child
		for child != nil {
			next := child.Next
			sp.Push(child.Tree)
			prg.FreeKid(child)
			child = next
		}
		prg.FreeTree(t)
	}
}
