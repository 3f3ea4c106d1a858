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

// Package langel holds the language-element descriptor table consumed by
// the tree, pattern, and printer layers. It has no dependency on the tree
// representation itself so that those packages can depend on it without a
// cycle.
package langel

// ID identifies a language element: a terminal, a nonterminal, or one of
// the reserved built-in kinds (pointer, string, ignore-list).
type ID int32

// Reserved language-element ids, matching LEL_ID_PTR / LEL_ID_STR /
// LEL_ID_IGNORE from the compiler-emitted descriptor table.
const (
	IDPtr    ID = -1
	IDStr    ID = -2
	IDIgnore ID = -3
)

// None is the sentinel used for absent pattern-node indices and absent
// child/next/ignore links ("-1" in the original table).
const None = -1

// Info is the per-language-element descriptor the compiler front-end
// emits: attribute count, ignore-ness, capture attributes, and printer
// hints (XML tag, list/repeat flattening, the first-nonterminal id
// boundary used by the printer to classify a kid as terminal or
// nonterminal).
type Info struct {
	ObjectLength    int
	Ignore          bool
	Repeat          bool
	List            bool
	NumCaptureAttr  int
	CaptureAttr     int
	XMLTag          string
	FirstNonTermID  ID
}

// CaptureAttr describes one capture-attribute binding: which attribute
// offset on the tree a capture group's constructed terminal is written to.
type CaptureAttr struct {
	Offset int
}

// Table is the descriptor table, indexed by ID. A program instance owns
// exactly one Table for the lifetime of a parse.
type Table struct {
	Info        []Info
	CaptureAttr []CaptureAttr
}

// Lookup returns the descriptor for id, or the zero Info if id is a
// reserved built-in (PTR/STR/IGNORE never have object slots).
func (t *Table) Lookup(id ID) Info {
	if id < 0 || int(id) >= len(t.Info) {
		return Info{}
	}
	return t.Info[id]
}
