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

// Package tree implements the mutable, reference-counted tree model:
// trees, kids, attribute and ignore-list layout, copy-on-write splitting,
// and the iterative free walk. It is the data model the stream, pattern,
// match, and printer layers build on.
package tree

import (
	"github.com/salikh/colmcore/internal/langel"
)

// Flags is the per-tree bitfield recording which ignore-list kids are
// present at the head of Child, and whether a synthetic ignore wrapper
// should be suppressed on printing.
type Flags uint8

const (
	LeftIgnore Flags = 1 << iota
	RightIgnore
	SuppressLeft
	SuppressRight
)

// Location is the optional source-location pointer a Head may carry.
type Location struct {
	Line   int
	Column int
	Byte   int
}

// Head is a length-prefixed, possibly-shared byte buffer. Multiple trees
// never share a single *Head mutably: every split and copy deep-copies it.
type Head struct {
	Data []byte
	Loc  *Location
}

func newHead(data []byte) *Head {
	if data == nil {
		return nil
	}
	cp := make([]byte, len(data))
	copy(cp, data)
	return &Head{Data: cp}
}

func (h *Head) dup() *Head {
	if h == nil {
		return nil
	}
	return newHead(h.Data)
}

// Len returns the byte length of the head, or 0 for a nil head.
func (h *Head) Len() int {
	if h == nil {
		return 0
	}
	return len(h.Data)
}

// Kid is a single cell in a tree's child list. Kids are never shared:
// each is owned by exactly one parent slot.
type Kid struct {
	Tree *Tree
	Next *Kid
}

// Tree is a node in the parse forest. Id selects the language element;
// for the two reserved specialised kinds (langel.IDPtr, langel.IDStr) the
// PtrValue/StrValue fields carry the embedded payload instead of Child.
type Tree struct {
	ID      langel.ID
	Flags   Flags
	Refs    int32
	Tokdata *Head
	ProdNum int32
	Child   *Kid

	// Valid only when ID == langel.IDPtr.
	PtrValue uintptr
	// Valid only when ID == langel.IDStr.
	StrValue *Head
}

// Allocator is the program-provided capability a tree operation needs:
// pool-backed alloc/free for trees and kids, and the language-element
// descriptor table. Accepting this interface (rather than a concrete
// *rtprogram.Program) keeps the tree package free of a dependency on the
// runtime-glue package, matching the "no hidden singletons, program is an
// explicit value" re-architecture called for by the design notes.
type Allocator interface {
	AllocTree() *Tree
	FreeTree(*Tree)
	AllocKid() *Kid
	FreeKid(*Kid)
	LangElInfo(id langel.ID) langel.Info
	// CaptureAttrOffset resolves an index into the program's global
	// capture-attribute table to the attribute offset it writes to.
	CaptureAttrOffset(idx int) int
}

// VMStack is the explicit work stack used instead of native recursion by
// the free and print walks: trees may be arbitrarily deep, and a native
// recursive free would overflow the Go stack on a pathological input.
type VMStack struct {
	stack []*Tree
}

func (s *VMStack) Push(t *Tree) {
	s.stack = append(s.stack, t)
}

func (s *VMStack) Pop() *Tree {
	n := len(s.stack) - 1
	t := s.stack[n]
	s.stack = s.stack[:n]
	return t
}

func (s *VMStack) Len() int {
	return len(s.stack)
}

// NewTerm allocates a bare terminal tree with refs=1 and object_length
// attribute slots, directly mirroring colm_construct_term.
func NewTerm(prg Allocator, id langel.ID, tokdata []byte) *Tree {
	t := prg.AllocTree()
	t.ID = id
	t.Refs = 1
	t.Tokdata = newHead(tokdata)
	t.Child = AllocAttrs(prg, prg.LangElInfo(id).ObjectLength)
	return t
}

// AllocAttrs allocates a linked list of length zero-initialised kid cells,
// used as the attribute prefix of a tree's child list (allocAttrs).
func AllocAttrs(prg Allocator, length int) *Kid {
	var cur *Kid
	for i := 0; i < length; i++ {
		next := cur
		cur = prg.AllocKid()
		cur.Next = next
	}
	return cur
}

// FreeAttrs returns every kid in an attribute list to the pool without
// touching the trees they reference (freeAttrs).
func FreeAttrs(prg Allocator, attrs *Kid) {
	for cur := attrs; cur != nil; {
		next := cur.Next
		prg.FreeKid(cur)
		cur = next
	}
}

// FreeKidList returns every kid cell in a list to the pool (freeKidList).
// Like FreeAttrs, it does not touch the referenced trees.
func FreeKidList(prg Allocator, kid *Kid) {
	for cur := kid; cur != nil; {
		next := cur.Next
		prg.FreeKid(cur)
		cur = next
	}
}

// KidListConcat appends list2 after list1, matching kidListConcat.
func KidListConcat(list1, list2 *Kid) *Kid {
	if list1 == nil {
		return list2
	}
	if list2 == nil {
		return list1
	}
	dest := list1
	for dest.Next != nil {
		dest = dest.Next
	}
	dest.Next = list2
	return list1
}

// ConstructPointer builds a PTR-tagged tree wrapping an opaque word value
// (colm_construct_pointer).
func ConstructPointer(prg Allocator, value uintptr) *Tree {
	t := prg.AllocTree()
	t.ID = langel.IDPtr
	t.PtrValue = value
	return t
}

// GetPointerVal returns the wrapped word of a PTR tree.
func GetPointerVal(t *Tree) uintptr {
	return t.PtrValue
}

// ConstructStr builds a STR-tagged tree wrapping a deep copy of data.
func ConstructStr(prg Allocator, data []byte) *Tree {
	t := prg.AllocTree()
	t.ID = langel.IDStr
	t.Refs = 1
	t.StrValue = newHead(data)
	return t
}
