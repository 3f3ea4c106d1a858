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

// MemoryStream feeds a fixed in-memory byte slice, the simplest of the
// source kinds (data/dlen/offset in spec terms). EOF is reached exactly
// when offset == len(data).
type MemoryStream struct {
	queueMixin
	data []byte
}

// NewMemoryStream wraps data (not copied) as a Stream.
func NewMemoryStream(data []byte) *MemoryStream {
	return &MemoryStream{data: data}
}

func (m *MemoryStream) GetParseBlock(skip int) (Op, []byte) {
	if d, ok := m.queueHeadData(skip); ok {
		return OpData, d
	}
	if !m.q.empty() {
		return m.nestedBlock(skip)
	}
	if skip >= len(m.data) {
		return OpEOF, nil
	}
	return OpData, m.data[skip:]
}

func (m *MemoryStream) nestedBlock(skip int) (Op, []byte) {
	switch m.q.head.Kind {
	case RunBufToken:
		return OpTree, nil
	case RunBufIgnore:
		return OpIgnore, nil
	case RunBufSource:
		return m.q.head.Nested.GetParseBlock(skip)
	}
	return OpEOF, nil
}

func (m *MemoryStream) GetData(offset int, dest []byte) int {
	if offset >= len(m.data) {
		return 0
	}
	return copy(dest, m.data[offset:])
}

func (m *MemoryStream) ConsumeData(length int) int {
	consumed := m.consumeFromQueue(length)
	remain := length - consumed
	if remain <= 0 {
		return consumed
	}
	take := remain
	if take > len(m.data) {
		take = len(m.data)
	}
	m.data = m.data[take:]
	return consumed + take
}

func (m *MemoryStream) UndoConsumeData(data []byte, length int) {
	m.data = append(append([]byte(nil), data[:length]...), m.data...)
}

func (m *MemoryStream) ConsumeLangEl() (LangEl, bool) { return LangEl{}, false }
func (m *MemoryStream) UndoConsumeLangEl()            {}
