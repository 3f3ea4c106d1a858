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

package streamio

// ItemKind distinguishes the two payload shapes a template item can carry:
// literal input text to be scanned, or a named language element to be
// handed straight to the parser as a token.
type ItemKind int

const (
	// InputText is literal character data, scanned as if it were part of
	// the underlying input.
	InputText ItemKind = iota
	// FactorType is a named language-element token with an associated
	// bind id, delivered without going through the scanner.
	FactorType
)

// Item is one step of a pattern or constructor template: either a run of
// literal bytes, or a named language element carrying the bindId the
// matcher/constructor assigned it.
type Item struct {
	Kind   ItemKind
	Data   []byte
	BindID int
}

// templateStream is shared by PatternStream and ConstructorStream: both
// walk an ordered Item list, emitting InputText items as character data
// through the usual get_parse_block/consume_data path and FactorType
// items as named language elements through consume_lang_el; the two
// differ only in their type name.
type templateStream struct {
	queueMixin
	items []Item
	// pos indexes items; within items[pos] for an InputText item, off is
	// the byte offset already consumed.
	pos, off int
}

func (t *templateStream) currentText() ([]byte, bool) {
	for t.pos < len(t.items) {
		it := t.items[t.pos]
		if it.Kind != InputText {
			return nil, false
		}
		if t.off < len(it.Data) {
			return it.Data[t.off:], true
		}
		t.pos++
		t.off = 0
	}
	return nil, false
}

func (t *templateStream) GetParseBlock(skip int) (Op, []byte) {
	if d, ok := t.queueHeadData(skip); ok {
		return OpData, d
	}
	if !t.q.empty() {
		switch t.q.head.Kind {
		case RunBufToken:
			return OpTree, nil
		case RunBufIgnore:
			return OpIgnore, nil
		case RunBufSource:
			return t.q.head.Nested.GetParseBlock(skip)
		}
	}
	if data, ok := t.currentText(); ok {
		if skip >= len(data) {
			return OpEOF, nil
		}
		return OpData, data[skip:]
	}
	if t.pos < len(t.items) {
		return OpLangEl, nil
	}
	return OpEOF, nil
}

func (t *templateStream) GetData(offset int, dest []byte) int {
	data, ok := t.currentText()
	if !ok || offset >= len(data) {
		return 0
	}
	return copy(dest, data[offset:])
}

func (t *templateStream) ConsumeData(length int) int {
	consumed := t.consumeFromQueue(length)
	remain := length - consumed
	for remain > 0 {
		data, ok := t.currentText()
		if !ok {
			break
		}
		take := remain
		if take > len(data) {
			take = len(data)
		}
		t.off += take
		consumed += take
		remain -= take
	}
	return consumed
}

func (t *templateStream) UndoConsumeData(data []byte, length int) {
	t.PrependData(data[:length])
}

func (t *templateStream) ConsumeLangEl() (LangEl, bool) {
	if t.pos >= len(t.items) || t.items[t.pos].Kind != FactorType {
		return LangEl{}, false
	}
	it := t.items[t.pos]
	t.pos++
	return LangEl{BindID: it.BindID, Data: it.Data}, true
}

func (t *templateStream) UndoConsumeLangEl() {
	if t.pos > 0 {
		t.pos--
	}
}

// PatternStream walks a compiled match pattern's template items, feeding
// literal input text as character data and named language elements as
// pre-bound tokens — the source kind a "match" template (as opposed to a
// "construct" one) uses when re-presented to the parser.
type PatternStream struct {
	templateStream
}

// NewPatternStream builds a stream over a match pattern's item list.
func NewPatternStream(items []Item) *PatternStream {
	return &PatternStream{templateStream{items: items}}
}

// ConstructorStream is symmetric to PatternStream but walks a builder
// ("construct") template's item list instead of a match pattern's.
type ConstructorStream struct {
	templateStream
}

// NewConstructorStream builds a stream over a constructor template's item
// list.
func NewConstructorStream(items []Item) *ConstructorStream {
	return &ConstructorStream{templateStream{items: items}}
}
