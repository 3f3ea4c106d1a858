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

package printer

import (
	"fmt"

	log "github.com/golang/glog"

	"github.com/salikh/colmcore/internal/langel"
	"github.com/salikh/colmcore/internal/tree"
)

// XMLPrinter renders a tree as XML, tagging non-terminals with their
// langel.Info.XMLTag (terminals print their escaped text untagged) and
// flattening a chain of same-id repeat/list wrappers down to a single
// enclosing tag (a list -> list -> list -> item chain, each list holding
// only the next, prints as one <list> around the <item>).
type XMLPrinter struct {
	w   Writer
	prg tree.Allocator
}

// NewXMLPrinter returns an XML printer writing to w, resolving tag names
// and repeat/list flags via prg's language-element table.
func NewXMLPrinter(prg tree.Allocator, w Writer) *XMLPrinter {
	return &XMLPrinter{w: w, prg: prg}
}

func (p *XMLPrinter) tagName(info langel.Info, id langel.ID) string {
	if info.XMLTag != "" {
		return info.XMLTag
	}
	return fmt.Sprintf("el%d", id)
}

// flattens reports whether kid's open/close tag should be suppressed
// because it is a repeat/list element that is the sole real child of a
// parent with the same id — the parent already emitted (or will emit) the
// one enclosing tag for the whole chain.
func (p *XMLPrinter) flattens(parent *tree.Tree, kid *tree.Kid) bool {
	if parent == nil || kid.Next != nil {
		return false
	}
	t := kid.Tree
	if parent.ID != t.ID {
		return false
	}
	info := p.prg.LangElInfo(t.ID)
	if !info.Repeat && !info.List {
		return false
	}
	pinfo := p.prg.LangElInfo(parent.ID)
	return tree.FirstRealChild(parent, pinfo.ObjectLength) == kid
}

func (p *XMLPrinter) OpenTree(parent *tree.Tree, kid *tree.Kid) {
	if p.flattens(parent, kid) {
		return
	}
	info := p.prg.LangElInfo(kid.Tree.ID)
	if kid.Tree.ID < info.FirstNonTermID {
		return
	}
	fmt.Fprintf(p.w, "<%s>", p.tagName(info, kid.Tree.ID))
}

func (p *XMLPrinter) CloseTree(parent *tree.Tree, kid *tree.Kid) {
	if p.flattens(parent, kid) {
		return
	}
	info := p.prg.LangElInfo(kid.Tree.ID)
	if kid.Tree.ID < info.FirstNonTermID {
		return
	}
	fmt.Fprintf(p.w, "</%s>", p.tagName(info, kid.Tree.ID))
}

func (p *XMLPrinter) PrintTerm(kid *tree.Kid) {
	t := kid.Tree
	switch t.ID {
	case langel.IDPtr:
		fmt.Fprintf(p.w, "#%x", t.PtrValue)
	case langel.IDStr:
		if t.StrValue != nil {
			p.Out(t.StrValue.Data)
		}
	default:
		if t.Tokdata != nil {
			p.Out(t.Tokdata.Data)
		}
	}
}

// Out XML-escapes data before writing it; only text content goes through
// Out, tag markup is written directly by OpenTree/CloseTree.
func (p *XMLPrinter) Out(data []byte) {
	for _, b := range data {
		var err error
		switch b {
		case '&':
			_, err = p.w.Write([]byte("&amp;"))
		case '<':
			_, err = p.w.Write([]byte("&lt;"))
		case '>':
			_, err = p.w.Write([]byte("&gt;"))
		case '"':
			_, err = p.w.Write([]byte("&quot;"))
		case '\'':
			_, err = p.w.Write([]byte("&apos;"))
		default:
			_, err = p.w.Write([]byte{b})
		}
		if err != nil {
			log.V(5).Infof("XMLPrinter.Out: write error: %v", err)
			return
		}
	}
}
