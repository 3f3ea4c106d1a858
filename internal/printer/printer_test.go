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

package printer_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/salikh/colmcore/internal/langel"
	"github.com/salikh/colmcore/internal/printer"
	"github.com/salikh/colmcore/internal/rtprogram"
	"github.com/salikh/colmcore/internal/tree"
)

const (
	idNum   langel.ID = 2
	idList  langel.ID = 20
	idItem  langel.ID = 21
	firstNT langel.ID = 10
)

func newTestProgram() *rtprogram.Program {
	prg := rtprogram.New()
	info := make([]langel.Info, 32)
	info[idNum] = langel.Info{ObjectLength: 0, FirstNonTermID: firstNT}
	info[idList] = langel.Info{ObjectLength: 0, FirstNonTermID: firstNT, List: true, XMLTag: "list"}
	info[idItem] = langel.Info{ObjectLength: 0, FirstNonTermID: firstNT, XMLTag: "item"}
	prg.LangEls = langel.Table{Info: info}
	return prg
}

func ignoreWrapper(prg *rtprogram.Program, text string) *tree.Tree {
	kid := prg.AllocKid()
	kid.Tree = tree.NewTerm(prg, idNum, []byte(text))
	w := prg.AllocTree()
	w.ID = langel.IDIgnore
	w.Refs = 1
	w.Child = kid
	return w
}

// TestPrinterIgnoreMergeOrder is scenario 2's printing half: T with L2
// pushed after L1 prints L2's bytes, then L1's, then T's own tokdata.
func TestPrinterIgnoreMergeOrder(t *testing.T) {
	prg := newTestProgram()
	term := tree.NewTerm(prg, idNum, []byte("T"))
	term = tree.PushLeftIgnore(prg, term, ignoreWrapper(prg, "L1"))
	term = tree.PushLeftIgnore(prg, term, ignoreWrapper(prg, "L2"))

	kid := prg.AllocKid()
	kid.Tree = term

	var buf bytes.Buffer
	p := printer.NewTextPrinter(&buf)
	printer.PrintTree(prg, p, printer.Options{PrintIgnore: true}, kid)

	require.Equal(t, "L2L1T", buf.String())
}

// TestPrinterSuppressLeftChopsOlderIgnore checks that SUPPRESS_LEFT on the
// ignore-data terminal inside L1 chops that entry and everything older out
// of the printed leading-ignore run.
func TestPrinterSuppressLeftChopsOlderIgnore(t *testing.T) {
	prg := newTestProgram()
	term := tree.NewTerm(prg, idNum, []byte("T"))

	l1 := ignoreWrapper(prg, "L1")
	l1.Child.Tree.Flags |= tree.SuppressLeft
	term = tree.PushLeftIgnore(prg, term, l1)
	term = tree.PushLeftIgnore(prg, term, ignoreWrapper(prg, "L2"))

	kid := prg.AllocKid()
	kid.Tree = term

	var buf bytes.Buffer
	p := printer.NewTextPrinter(&buf)
	printer.PrintTree(prg, p, printer.Options{PrintIgnore: true}, kid)

	require.Equal(t, "L2T", buf.String(), "SUPPRESS_LEFT on L1's content must drop L1 (and anything older) from the printed run")
}

// TestPrinterSuppressRightStopsPrinting checks that SUPPRESS_RIGHT halts
// the leading-ignore print loop before emitting that entry (or anything
// after it in document order), without affecting what was already
// printed.
func TestPrinterSuppressRightStopsPrinting(t *testing.T) {
	prg := newTestProgram()
	term := tree.NewTerm(prg, idNum, []byte("T"))

	l1 := ignoreWrapper(prg, "L1")
	l1.Child.Tree.Flags |= tree.SuppressRight
	term = tree.PushLeftIgnore(prg, term, l1)
	term = tree.PushLeftIgnore(prg, term, ignoreWrapper(prg, "L2"))

	kid := prg.AllocKid()
	kid.Tree = term

	var buf bytes.Buffer
	p := printer.NewTextPrinter(&buf)
	printer.PrintTree(prg, p, printer.Options{PrintIgnore: true}, kid)

	require.Equal(t, "L2T", buf.String(), "SUPPRESS_RIGHT on L1's content must stop printing before L1 and anything after it")
}

// TestPrinterTrimSuppressesLeadingAndTrailingIgnore is the printer-trim
// property: with Trim=true, a freshly parsed document's leading ignore
// (before the first terminal) and trailing ignore (after the last
// terminal) are not printed.
func TestPrinterTrimSuppressesLeadingAndTrailingIgnore(t *testing.T) {
	prg := newTestProgram()
	term := tree.NewTerm(prg, idNum, []byte("T"))
	term = tree.PushLeftIgnore(prg, term, ignoreWrapper(prg, "  "))
	term = tree.PushRightIgnore(prg, term, ignoreWrapper(prg, "  "))

	kid := prg.AllocKid()
	kid.Tree = term

	var buf bytes.Buffer
	p := printer.NewTextPrinter(&buf)
	printer.PrintTree(prg, p, printer.Options{PrintIgnore: true, Trim: true}, kid)

	require.Equal(t, "T", buf.String())
}

// TestXMLFlattenRepeatChain is scenario 6: a list -> list -> list -> item
// chain, each list holding only the next, prints as a single <list>
// open/close around the one <item>.
func TestXMLFlattenRepeatChain(t *testing.T) {
	prg := newTestProgram()

	mkItem := func(text string) *tree.Tree {
		k := prg.AllocKid()
		k.Tree = tree.NewTerm(prg, idNum, []byte(text))
		it := prg.AllocTree()
		it.ID = idItem
		it.Refs = 1
		it.Child = k
		return it
	}
	mkList := func(items ...*tree.Tree) *tree.Tree {
		l := prg.AllocTree()
		l.ID = idList
		l.Refs = 1
		var first, last *tree.Kid
		for _, it := range items {
			k := prg.AllocKid()
			k.Tree = it
			if last == nil {
				first = k
			} else {
				last.Next = k
			}
			last = k
		}
		l.Child = first
		return l
	}

	innermost := mkList(mkItem("a"))
	middle := mkList(innermost)
	outer := mkList(middle)

	kid := prg.AllocKid()
	kid.Tree = outer

	var buf bytes.Buffer
	p := printer.NewXMLPrinter(prg, &buf)
	printer.PrintTree(prg, p, printer.Options{PrintIgnore: true}, kid)

	require.Equal(t, "<list><item>a</item></list>", buf.String())
}
