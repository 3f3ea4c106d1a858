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
)

// InsLeftIgnore prepends ignoreList as tree's left-ignore header kid.
// Precondition: LeftIgnore is unset (insLeftIgnore).
func InsLeftIgnore(prg Allocator, t *Tree, ignoreList *Tree) {
	if t.Flags&LeftIgnore != 0 {
		log.Exitf("structural violation: ins_left_ignore with LeftIgnore already set")
	}
	kid := prg.AllocKid()
	kid.Tree = ignoreList
	Upref(ignoreList)
	kid.Next = t.Child
	t.Child = kid
	t.Flags |= LeftIgnore
}

// InsRightIgnore inserts ignoreList as tree's right-ignore header kid,
// after the left-ignore kid if one is present (insRightIgnore).
func InsRightIgnore(prg Allocator, t *Tree, ignoreList *Tree) {
	if t.Flags&RightIgnore != 0 {
		log.Exitf("structural violation: ins_right_ignore with RightIgnore already set")
	}
	kid := prg.AllocKid()
	kid.Tree = ignoreList
	Upref(ignoreList)
	if t.Flags&LeftIgnore != 0 {
		kid.Next = t.Child.Next
		t.Child.Next = kid
	} else {
		kid.Next = t.Child
		t.Child = kid
	}
	t.Flags |= RightIgnore
}

// remLeftIgnore detaches and downrefs tree's left-ignore kid.
func remLeftIgnore(prg Allocator, sp *VMStack, t *Tree) {
	if t.Flags&LeftIgnore == 0 {
		log.Exitf("structural violation: rem_left_ignore without LeftIgnore set")
	}
	next := t.Child.Next
	Downref(prg, sp, t.Child.Tree)
	prg.FreeKid(t.Child)
	t.Child = next
	t.Flags &^= LeftIgnore
}

// remRightIgnore detaches and downrefs tree's right-ignore kid.
func remRightIgnore(prg Allocator, sp *VMStack, t *Tree) {
	if t.Flags&RightIgnore == 0 {
		log.Exitf("structural violation: rem_right_ignore without RightIgnore set")
	}
	if t.Flags&LeftIgnore != 0 {
		next := t.Child.Next.Next
		Downref(prg, sp, t.Child.Next.Tree)
		prg.FreeKid(t.Child.Next)
		t.Child.Next = next
	} else {
		next := t.Child.Next
		Downref(prg, sp, t.Child.Tree)
		prg.FreeKid(t.Child)
		t.Child = next
	}
	t.Flags &^= RightIgnore
}

// PushRightIgnore merges rightIgnore onto pushTo's right side, nesting any
// existing right-ignore as rightIgnore's own left-ignore so backtracking
// can later pop back to it (push_right_ignore). Splits pushTo first, since
// this mutates it.
func PushRightIgnore(prg Allocator, pushTo, rightIgnore *Tree) *Tree {
	pushTo = Split(prg, pushTo)

	if pushTo.Flags&RightIgnore != 0 {
		curIgnore := RightIgnoreKid(pushTo)
		InsLeftIgnore(prg, rightIgnore, curIgnore.Tree)
		curIgnore.Tree.Refs--
		curIgnore.Tree = rightIgnore
		Upref(rightIgnore)
	} else {
		InsRightIgnore(prg, pushTo, rightIgnore)
	}
	return pushTo
}

// PushLeftIgnore is the mirror of PushRightIgnore for the left side
// (push_left_ignore).
func PushLeftIgnore(prg Allocator, pushTo, leftIgnore *Tree) *Tree {
	pushTo = Split(prg, pushTo)

	if pushTo.Flags&LeftIgnore != 0 {
		curIgnore := LeftIgnoreKid(pushTo)
		InsRightIgnore(prg, leftIgnore, curIgnore.Tree)
		curIgnore.Tree.Refs--
		curIgnore.Tree = leftIgnore
		Upref(leftIgnore)
	} else {
		InsLeftIgnore(prg, pushTo, leftIgnore)
	}
	return pushTo
}

// PopRightIgnore is the inverse of PushRightIgnore: it detaches the
// current right-ignore list and returns it through the out-parameter. If
// that list itself carries a nested left-ignore (the list it displaced),
// that nested list becomes the new current right-ignore (popRightIgnore).
func PopRightIgnore(prg Allocator, sp *VMStack, popFrom *Tree) (tree, rightIgnore *Tree) {
	popFrom = Split(prg, popFrom)

	riKid := RightIgnoreKid(popFrom)
	li := LeftIgnoreKid(riKid.Tree)
	if li != nil {
		Upref(li.Tree)
		remLeftIgnore(prg, sp, riKid.Tree)
		rightIgnore = riKid.Tree
		Upref(rightIgnore)
		riKid.Tree = li.Tree
	} else {
		rightIgnore = riKid.Tree
		Upref(rightIgnore)
		remRightIgnore(prg, sp, popFrom)
	}
	return popFrom, rightIgnore
}

// PopLeftIgnore is the mirror of PopRightIgnore (popLeftIgnore).
func PopLeftIgnore(prg Allocator, sp *VMStack, popFrom *Tree) (tree, leftIgnore *Tree) {
	popFrom = Split(prg, popFrom)

	liKid := LeftIgnoreKid(popFrom)
	ri := RightIgnoreKid(liKid.Tree)
	if ri != nil {
		Upref(ri.Tree)
		remRightIgnore(prg, sp, liKid.Tree)
		leftIgnore = liKid.Tree
		Upref(leftIgnore)
		liKid.Tree = ri.Tree
	} else {
		leftIgnore = liKid.Tree
		Upref(leftIgnore)
		remLeftIgnore(prg, sp, popFrom)
	}
	return popFrom, leftIgnore
}
