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

// Package construct builds trees from a compiled pattern/constructor node
// table and a bindings vector, mirroring colm_construct_tree /
// constructKid in the original runtime. Casting and single-token
// construction live in package tree (CastTree, ConstructToken).
package construct

import (
	"github.com/salikh/colmcore/internal/langel"
	"github.com/salikh/colmcore/internal/patterntab"
	"github.com/salikh/colmcore/internal/tree"
)

// Bindings is a one-based array of tree pointers indexed by bindId;
// Bindings[0] is unused.
type Bindings []*tree.Tree

func constructIgnoreList(prg tree.Allocator, nodes *patterntab.Table, ignoreInd int) *tree.Kid {
	var first, last *tree.Kid
	for ignoreInd != patterntab.None {
		node, ok := nodes.At(ignoreInd)
		if !ok {
			break
		}
		ignTree := prg.AllocTree()
		ignTree.Refs = 1
		ignTree.ID = node.ID
		if len(node.Data) > 0 {
			ignTree.Tokdata = cloneHead(node.Data)
		}

		ignKid := prg.AllocKid()
		ignKid.Tree = ignTree
		if last == nil {
			first = ignKid
		} else {
			last.Next = ignKid
		}
		last = ignKid

		ignoreInd = node.Next
	}
	return first
}

// constructLeftIgnoreList and constructRightIgnoreList build the kid list
// for a pattern node's attached ignore list (constructLeftIgnoreList /
// constructRightIgnoreList).
func constructLeftIgnoreList(prg tree.Allocator, nodes *patterntab.Table, pat int) *tree.Kid {
	node, ok := nodes.At(pat)
	if !ok {
		return nil
	}
	return constructIgnoreList(prg, nodes, node.LeftIgnore)
}

func constructRightIgnoreList(prg tree.Allocator, nodes *patterntab.Table, pat int) *tree.Kid {
	node, ok := nodes.At(pat)
	if !ok {
		return nil
	}
	return constructIgnoreList(prg, nodes, node.RightIgnore)
}

// Tree builds a tree from pattern-table index pat, substituting bound
// subtrees from bindings where the node has a bindId whose binding is set,
// or allocating a fresh node from the table and recursively building its
// children otherwise (colm_construct_tree). selfKid mirrors the original's kid parameter,
// kept for signature fidelity with the spec though the construction logic
// does not read it.
func Tree(prg tree.Allocator, nodes *patterntab.Table, selfKid *tree.Kid, bindings Bindings, pat int) *tree.Tree {
	node, ok := nodes.At(pat)
	if !ok {
		return nil
	}

	if node.BindID > 0 && bindings[node.BindID] != nil {
		bound := bindings[node.BindID]

		if node.LeftIgnore != patterntab.None {
			ignore := constructLeftIgnoreList(prg, nodes, pat)
			leftIgnore := prg.AllocTree()
			leftIgnore.ID = langel.IDIgnore
			leftIgnore.Child = ignore
			bound = tree.PushLeftIgnore(prg, bound, leftIgnore)
		}

		if node.RightIgnore != patterntab.None {
			ignore := constructRightIgnoreList(prg, nodes, pat)
			rightIgnore := prg.AllocTree()
			rightIgnore.ID = langel.IDIgnore
			rightIgnore.Child = ignore
			bound = tree.PushRightIgnore(prg, bound, rightIgnore)
		}

		return bound
	}

	t := prg.AllocTree()
	t.ID = node.ID
	t.Refs = 1
	if len(node.Data) > 0 {
		t.Tokdata = cloneHead(node.Data)
	}
	t.ProdNum = node.ProdNum

	info := prg.LangElInfo(t.ID)
	attrs := tree.AllocAttrs(prg, info.ObjectLength)
	kids := Kid(prg, nodes, bindings, node.Child)
	t.Child = tree.KidListConcat(attrs, kids)

	// Right first, then left, so the final layout is left, right, attrs,
	// children once both are prepended.
	if rIgnore := constructRightIgnoreList(prg, nodes, pat); rIgnore != nil {
		wrapper := prg.AllocTree()
		wrapper.ID = langel.IDIgnore
		wrapper.Refs = 1
		wrapper.Child = rIgnore

		head := prg.AllocKid()
		head.Tree = wrapper
		head.Next = t.Child
		t.Child = head
		t.Flags |= tree.RightIgnore
	}
	if lIgnore := constructLeftIgnoreList(prg, nodes, pat); lIgnore != nil {
		wrapper := prg.AllocTree()
		wrapper.ID = langel.IDIgnore
		wrapper.Refs = 1
		wrapper.Child = lIgnore

		head := prg.AllocKid()
		head.Tree = wrapper
		head.Next = t.Child
		t.Child = head
		t.Flags |= tree.LeftIgnore
	}

	for i := 0; i < info.NumCaptureAttr; i++ {
		ci := pat + 1 + i
		cnode, ok := nodes.At(ci)
		if !ok {
			continue
		}
		ca := prg.CaptureAttrOffset(info.CaptureAttr + i)
		attr := prg.AllocTree()
		attr.ID = cnode.ID
		attr.Refs = 1
		if len(cnode.Data) > 0 {
			attr.Tokdata = cloneHead(cnode.Data)
		}
		tree.SetAttr(t, ca, attr)
	}

	return t
}

// Kid recursively builds a kid list from a pattern node's child/next
// chain (constructKid). A pat of patterntab.None returns nil.
func Kid(prg tree.Allocator, nodes *patterntab.Table, bindings Bindings, pat int) *tree.Kid {
	if pat == patterntab.None {
		return nil
	}
	if _, ok := nodes.At(pat); !ok {
		return nil
	}
	kid := prg.AllocKid()
	kid.Tree = Tree(prg, nodes, kid, bindings, pat)

	node, _ := nodes.At(pat)
	kid.Next = Kid(prg, nodes, bindings, node.Next)
	return kid
}

func cloneHead(data []byte) *tree.Head {
	cp := make([]byte, len(data))
	copy(cp, data)
	return (&tree.Head{Data: cp})
}
