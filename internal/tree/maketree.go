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

import "github.com/salikh/colmcore/internal/langel"

// MakeTree is the generic builder used by caller code that already holds
// fully-formed child trees: id plus an ordered list of children, each
// upreffed on attachment (makeTree).
func MakeTree(prg Allocator, id langel.ID, children []*Tree) *Tree {
	t := prg.AllocTree()
	t.ID = id
	t.Refs = 1

	attrs := AllocAttrs(prg, prg.LangElInfo(id).ObjectLength)

	var first, last *Kid
	for _, c := range children {
		kid := prg.AllocKid()
		kid.Tree = c
		Upref(c)
		if last == nil {
			first = kid
		} else {
			last.Next = kid
		}
		last = kid
	}

	t.Child = KidListConcat(attrs, first)
	return t
}

// ConstructToken is the terminal-only builder: a fresh tree with a deep
// copy of the given text, skipping attribute allocation for ignore-tagged
// ids and otherwise allocating object_length attrs and copying any
// supplied attribute values, upreffing each (colm_construct_token).
func ConstructToken(prg Allocator, id langel.ID, text []byte, attrVals []*Tree) *Tree {
	t := prg.AllocTree()
	t.ID = id
	t.Refs = 1
	t.Tokdata = newHead(text)

	info := prg.LangElInfo(id)
	if info.Ignore {
		return t
	}

	t.Child = AllocAttrs(prg, info.ObjectLength)
	for i, v := range attrVals {
		SetAttr(t, i, v)
		Upref(GetAttr(t, i))
	}
	return t
}
