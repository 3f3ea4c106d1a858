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

// TextPrinter reconstructs source text verbatim: open/close are no-ops,
// and a terminal prints its tokdata, or the hex of a wrapped pointer, or
// the bytes of a wrapped string.
type TextPrinter struct {
	w Writer
}

// Writer is the minimal sink a concrete printer writes to; it has the
// same method set as io.Writer, so a *bytes.Buffer, an *os.File, or any
// io.Writer satisfies it directly.
type Writer interface {
	Write(p []byte) (int, error)
}

// NewTextPrinter returns a plain-text printer writing to w.
func NewTextPrinter(w Writer) *TextPrinter {
	return &TextPrinter{w: w}
}

func (p *TextPrinter) OpenTree(parent *tree.Tree, kid *tree.Kid)  {}
func (p *TextPrinter) CloseTree(parent *tree.Tree, kid *tree.Kid) {}

func (p *TextPrinter) PrintTerm(kid *tree.Kid) {
	t := kid.Tree
	switch t.ID {
	case langel.IDPtr:
		p.Out([]byte(fmt.Sprintf("#%x", t.PtrValue)))
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

func (p *TextPrinter) Out(data []byte) {
	// Write errors on the fd path are a diagnostic, not a tree-layer
	// error: the printer has no return value to surface them through.
	if _, err := p.w.Write(data); err != nil {
		log.V(5).Infof("TextPrinter.Out: write error: %v", err)
	}
}
