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

// Package printer reconstructs source text (or a structured rendering,
// such as XML) from a tree, honouring ignore-suppression flags and trim
// modes. The walk is iterative rather than recursive (print_kid in the
// original) because trees produced by a long-running parse can be
// pathologically deep.
package printer

import (
	"github.com/salikh/colmcore/internal/langel"
	"github.com/salikh/colmcore/internal/tree"
)

// VisitType is the role a kid plays as print_kid visits it.
type VisitType int

const (
	// IgnoreWrapper is the synthetic IDIgnore tree introduced by
	// push_left_ignore/push_right_ignore/construct_tree; it is never
	// itself opened or printed, only walked for its IgnoreData children.
	IgnoreWrapper VisitType = iota
	// IgnoreData is a terminal inside an ignore list (whitespace, a
	// comment token).
	IgnoreData
	// Term is an ordinary terminal, printed via PrintTerm.
	Term
	// NonTerm is a non-terminal, opened, recursed into, and closed.
	NonTerm
)

func visitType(prg tree.Allocator, parent *tree.Tree, kid *tree.Kid) VisitType {
	t := kid.Tree
	if t.ID == langel.IDIgnore {
		return IgnoreWrapper
	}
	if parent != nil && parent.ID == langel.IDIgnore {
		return IgnoreData
	}
	info := prg.LangElInfo(t.ID)
	if t.ID < info.FirstNonTermID {
		return Term
	}
	return NonTerm
}

// Printer is the callback ABI a concrete rendering (plain text, XML)
// implements; PrintKid drives it in strict left-to-right source order.
type Printer interface {
	OpenTree(parent *tree.Tree, kid *tree.Kid)
	PrintTerm(kid *tree.Kid)
	CloseTree(parent *tree.Tree, kid *tree.Kid)
	Out(data []byte)
}

// Options configures a print walk.
type Options struct {
	// PrintIgnore, if false, suppresses all ignore-list output regardless
	// of Trim (used for a "data only" rendering).
	PrintIgnore bool
	// Trim suppresses leading ignore output until the first terminal has
	// been printed, and (via SuppressLeft/SuppressRight on synthetic
	// wrappers produced by a tree-trim pass) clips edited-away content.
	Trim bool
}

// frame is one pending unit of iterative work. phase 0 means "visit this
// kid from scratch, left-ignore first, then its Next siblings"; phase 3 is
// phase 0 for an ignore header kid, whose Next is the rest of its owner's
// child list and is therefore not walked as a sibling; phase 1 means "left-ignore (if
// any) has been pushed/handled, do the main visit"; phase 2 means
// "children have been walked, close and emit right-ignore".
type frame struct {
	kid    *tree.Kid
	parent *tree.Tree
	phase  int
}

// PrintTree walks kid (print_tree), flushing any ignore content trailing
// the last terminal once the walk completes — the original achieves this
// by wrapping the tree in a sentinel root kid; here the final flush after
// the loop serves the same purpose without needing a placeholder kid.
func PrintTree(prg tree.Allocator, p Printer, opts Options, kid *tree.Kid) {
	PrintKid(prg, p, opts, nil, kid)
}

// PrintKid walks a single kid (and its subtree), emitting through p per
// opts.
func PrintKid(prg tree.Allocator, p Printer, opts Options, parent *tree.Tree, kid *tree.Kid) {
	var leadingIgnore []*tree.Kid
	seenTerm := false

	stack := []frame{{kid, parent, 0}}
	for len(stack) > 0 {
		n := len(stack) - 1
		f := stack[n]
		stack = stack[:n]

		if f.kid == nil {
			continue
		}

		switch f.phase {
		case 0, 3:
			if f.phase == 0 && f.kid.Next != nil {
				stack = append(stack, frame{f.kid.Next, f.parent, 0})
			}
			stack = append(stack, frame{f.kid, f.parent, 1})
			if li := tree.LeftIgnoreKid(f.kid.Tree); li != nil {
				stack = append(stack, frame{li, f.kid.Tree, 3})
			}

		case 1:
			t := f.kid.Tree
			switch visitType(prg, f.parent, f.kid) {
			case IgnoreWrapper:
				// The wrapper itself joins the leading-ignore list (so its
				// own SUPPRESS_LEFT/SUPPRESS_RIGHT flags are visible to
				// flushLeadingIgnore) and, unlike IgnoreData, does not skip
				// the subtree: its children still need visiting.
				leadingIgnore = append(leadingIgnore, f.kid)
				child := t.Child
				if tree.LeftIgnoreKid(t) != nil {
					// Already visited as this wrapper's left-ignore header.
					child = child.Next
				}
				if child != nil {
					stack = append(stack, frame{child, t, 0})
				}

			case IgnoreData:
				leadingIgnore = append(leadingIgnore, f.kid)

			case Term:
				flushLeadingIgnore(p, opts, seenTerm, false, &leadingIgnore)
				p.OpenTree(f.parent, f.kid)
				p.PrintTerm(f.kid)
				p.CloseTree(f.parent, f.kid)
				seenTerm = true
				if ri := tree.RightIgnoreKid(t); ri != nil {
					stack = append(stack, frame{ri, t, 3})
				}

			case NonTerm:
				p.OpenTree(f.parent, f.kid)
				stack = append(stack, frame{f.kid, f.parent, 2})
				info := prg.LangElInfo(t.ID)
				if child := tree.FirstRealChild(t, info.ObjectLength); child != nil {
					stack = append(stack, frame{child, t, 0})
				}
			}

		case 2:
			t := f.kid.Tree
			p.CloseTree(f.parent, f.kid)
			if ri := tree.RightIgnoreKid(t); ri != nil {
				stack = append(stack, frame{ri, t, 3})
			}
		}
	}

	// Whatever is left in leadingIgnore trails the last terminal with no
	// further term to attach to; under Trim that trailing content is
	// exactly what must not print.
	flushLeadingIgnore(p, opts, seenTerm, true, &leadingIgnore)
}

// flushLeadingIgnore reverses the accumulated ignore-list scratch slice
// once (the walk reaches the text of a nested, earlier-pushed ignore list
// before the text of the list that displaced it, so after the reversal the
// most recently pushed list prints first), truncating at the first
// SUPPRESS_LEFT entry,
// then emits them unless Trim is suppressing output: before the first
// term when this is a mid-walk flush, or always when this is the final,
// trailing flush.
func flushLeadingIgnore(p Printer, opts Options, seenTerm, final bool, leadingIgnore *[]*tree.Kid) {
	list := *leadingIgnore
	*leadingIgnore = nil
	if len(list) == 0 {
		return
	}

	// Reverse in place.
	for i, j := 0, len(list)-1; i < j; i, j = i+1, j-1 {
		list[i], list[j] = list[j], list[i]
	}
	for i, k := range list {
		if k.Tree.Flags&tree.SuppressLeft != 0 {
			list = list[:i]
			break
		}
	}

	if !opts.PrintIgnore {
		return
	}
	if opts.Trim && final {
		return
	}
	if opts.Trim && !seenTerm {
		return
	}

	for _, k := range list {
		if k.Tree.Flags&tree.SuppressRight != 0 {
			break
		}
		if k.Tree.Tokdata != nil {
			p.Out(k.Tree.Tokdata.Data)
		}
	}
}
