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
	log "github.com/golang/glog"

	"github.com/salikh/colmcore/internal/langel"
)

// CopyKidList duplicates a plain kid list (not an ignore header), upreffing
// each referenced tree (copyKidList). Used by make_tree-adjacent helpers
// that need an independent list of the same trees.
func CopyKidList(prg Allocator, list *Kid) *Kid {
	var first, last *Kid
	for ic := list; ic != nil; ic = ic.Next {
		nk := prg.AllocKid()
		nk.Tree = ic.Tree
		Upref(nk.Tree)
		if last == nil {
			first = nk
		} else {
			last.Next = nk
		}
		last = nk
	}
	return first
}

// CopyRealTree performs the shallow-node / deep-tokdata / upreffed-kid-list
// copy that backs Split (copyRealTree). oldNextDown, if non-nil, is a kid
// pointer inside tree's child list that the caller wants tracked: if the
// copy visits it, the corresponding kid in the new tree is returned as
// newNextDown. This is the two-pointer trick SplitRef relies on.
func CopyRealTree(prg Allocator, t *Tree, oldNextDown *Kid) (newTree *Tree, newNextDown *Kid) {
	nt := prg.AllocTree()
	nt.ID = t.ID
	nt.Tokdata = t.Tokdata.dup()
	nt.ProdNum = t.ProdNum
	nt.Flags |= t.Flags & (LeftIgnore | RightIgnore)

	var last *Kid
	for child := t.Child; child != nil; child = child.Next {
		nk := prg.AllocKid()
		if child == oldNextDown {
			newNextDown = nk
		}
		nk.Tree = child.Tree
		if nk.Tree != nil {
			Upref(nk.Tree)
		}
		if last == nil {
			nt.Child = nk
		} else {
			last.Next = nk
		}
		last = nk
	}
	return nt, newNextDown
}

// CopyTree dispatches on tree kind the way colm_copy_tree does: PTR and
// STR trees are never copied through this path (they have their own
// specialised construction sites and are never split in place), everything
// else goes through CopyRealTree.
func CopyTree(prg Allocator, t *Tree, oldNextDown *Kid) (newTree *Tree, newNextDown *Kid) {
	switch t.ID {
	case langel.IDPtr, langel.IDStr:
		log.Exitf("structural violation: copy_tree on specialised PTR/STR tree")
		return nil, nil
	default:
		nt, nd := CopyRealTree(prg, t, oldNextDown)
		if nt.Refs != 0 {
			log.Exitf("structural violation: freshly copied tree has nonzero refs")
		}
		return nt, nd
	}
}

// Split enforces copy-on-write: if tree.Refs > 1 it allocates an
// independent copy with Refs==1, decrements the original, and returns the
// copy; otherwise it returns tree unchanged. Postcondition: the returned
// tree always has Refs==1 (splitTree).
func Split(prg Allocator, t *Tree) *Tree {
	if t == nil {
		return nil
	}
	if t.Refs < 1 {
		log.Exitf("structural violation: split of tree with refs=%d", t.Refs)
	}
	if t.Refs > 1 {
		log.V(5).Infof("split: copying tree id=%d refs=%d", t.ID, t.Refs)
		nt, _ := CopyTree(prg, t, nil)
		Upref(nt)
		t.Refs--
		t = nt
	}
	return t
}

// CastTree reinterprets tree as a different language element: shallow copy
// with id replaced, prod_num invalidated (-1), ignore kids preserved and
// upreffed, fresh zero-initialised attribute slots sized for the target
// element, and the source's real children relinked with an upref each
// (castTree). The source's and the target's object_length are both looked
// up through prg's descriptor table.
func CastTree(prg Allocator, targetID langel.ID, t *Tree) *Tree {
	nt := prg.AllocTree()
	nt.ID = targetID
	nt.Tokdata = t.Tokdata.dup()
	nt.ProdNum = -1
	nt.Flags |= t.Flags & (LeftIgnore | RightIgnore)

	child := t.Child
	var last *Kid

	ignores := 0
	if t.Flags&LeftIgnore != 0 {
		ignores++
	}
	if t.Flags&RightIgnore != 0 {
		ignores++
	}
	for ; ignores > 0; ignores-- {
		nk := prg.AllocKid()
		nk.Tree = child.Tree
		Upref(nk.Tree)
		if last == nil {
			nt.Child = nk
		} else {
			last.Next = nk
		}
		child = child.Next
		last = nk
	}

	srcLen := prg.LangElInfo(t.ID).ObjectLength
	for ; srcLen > 0; srcLen-- {
		child = child.Next
	}

	dstLen := prg.LangElInfo(targetID).ObjectLength
	for ; dstLen > 0; dstLen-- {
		nk := prg.AllocKid()
		if last == nil {
			nt.Child = nk
		} else {
			last.Next = nk
		}
		last = nk
	}

	for ; child != nil; child = child.Next {
		nk := prg.AllocKid()
		nk.Tree = child.Tree
		Upref(nk.Tree)
		if last == nil {
			nt.Child = nk
		} else {
			last.Next = nk
		}
		last = nk
	}

	return nt
}

// Compare implements a total order over trees used for structural
// equality (colm_cmp_tree): by id, then by embedded payload (PTR's word,
// STR's bytes, or a generic tree's tokdata), then recursively over real
// children in order. Ignore lists are excluded, matching the original's
// semantic-equality intent.
func Compare(prg Allocator, a, b *Tree) int {
	if a == nil {
		if b == nil {
			return 0
		}
		return -1
	}
	if b == nil {
		return 1
	}
	if a.ID < b.ID {
		return -1
	}
	if a.ID > b.ID {
		return 1
	}
	switch a.ID {
	case langel.IDPtr:
		if a.PtrValue < b.PtrValue {
			return -1
		}
		if a.PtrValue > b.PtrValue {
			return 1
		}
	case langel.IDStr:
		if c := compareHead(a.StrValue, b.StrValue); c != 0 {
			return c
		}
	default:
		if c := compareHead(a.Tokdata, b.Tokdata); c != 0 {
			return c
		}
	}

	objLen := prg.LangElInfo(a.ID).ObjectLength
	k1 := Child(a, objLen)
	k2 := Child(b, objLen)
	for {
		switch {
		case k1 == nil && k2 == nil:
			return 0
		case k1 == nil:
			return -1
		case k2 == nil:
			return 1
		default:
			if c := Compare(prg, k1.Tree, k2.Tree); c != 0 {
				return c
			}
		}
		k1 = k1.Next
		k2 = k2.Next
	}
}

func compareHead(a, b *Head) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	}
	na, nb := len(a.Data), len(b.Data)
	n := na
	if nb < n {
		n = nb
	}
	for i := 0; i < n; i++ {
		if a.Data[i] != b.Data[i] {
			if a.Data[i] < b.Data[i] {
				return -1
			}
			return 1
		}
	}
	switch {
	case na < nb:
		return -1
	case na > nb:
		return 1
	default:
		return 0
	}
}
