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

import (
	log "github.com/golang/glog"

	"github.com/salikh/colmcore/internal/tree"
)

// queueMixin implements the source-kind-independent half of Stream: all
// prepend/append/undo bookkeeping and the tree-consuming side, all of
// which operate purely on the RunBuf queue regardless of what the
// underlying source is. Embedding it gives a concrete stream type these
// methods "for free" via Go method promotion; only the byte/LangEl
// consuming side (which must also consult the underlying source) is left
// for each concrete type to implement.
type queueMixin struct {
	q              queue
	eof            bool
	eofSent        bool
	eosSent        bool
	line, col, byt int
}

func (b *queueMixin) PrependData(data []byte) {
	rb := &RunBuf{Kind: RunBufData, Data: append([]byte(nil), data...)}
	rb.Length = len(rb.Data)
	b.q.pushFront(rb)
}

func (b *queueMixin) UndoPrependData(length int) []byte {
	if b.q.empty() {
		return nil
	}
	log.V(9).Infof("queueMixin.UndoPrependData: pushing back %d bytes", length)
	rb := b.q.popFront()
	return append([]byte(nil), rb.Data[rb.Offset:rb.Offset+length]...)
}

func (b *queueMixin) PrependTree(t *tree.Tree, ignore bool) {
	rb := &RunBuf{Kind: RunBufToken, Tree: t, Ignore: ignore}
	if ignore {
		rb.Kind = RunBufIgnore
	}
	b.q.pushFront(rb)
}

func (b *queueMixin) UndoPrependTree() (*tree.Tree, bool) {
	if b.q.empty() {
		return nil, false
	}
	if b.q.head.Kind != RunBufToken && b.q.head.Kind != RunBufIgnore {
		return nil, false
	}
	rb := b.q.popFront()
	return rb.Tree, rb.Kind == RunBufIgnore
}

func (b *queueMixin) PrependStream(s Stream) {
	b.q.pushFront(&RunBuf{Kind: RunBufSource, Nested: s})
}

func (b *queueMixin) UndoPrependStream() Stream {
	if b.q.empty() || b.q.head.Kind != RunBufSource {
		return nil
	}
	return b.q.popFront().Nested
}

func (b *queueMixin) AppendData(data []byte) {
	rb := &RunBuf{Kind: RunBufData, Data: append([]byte(nil), data...)}
	rb.Length = len(rb.Data)
	b.q.pushBack(rb)
}

func (b *queueMixin) UndoAppendData(length int) []byte {
	if b.q.empty() {
		return nil
	}
	rb := b.q.popBack()
	return append([]byte(nil), rb.Data[:length]...)
}

func (b *queueMixin) AppendTree(t *tree.Tree, ignore bool) {
	rb := &RunBuf{Kind: RunBufToken, Tree: t, Ignore: ignore}
	if ignore {
		rb.Kind = RunBufIgnore
	}
	b.q.pushBack(rb)
}

func (b *queueMixin) UndoAppendTree() (*tree.Tree, bool) {
	if b.q.empty() {
		return nil, false
	}
	if b.q.tail.Kind != RunBufToken && b.q.tail.Kind != RunBufIgnore {
		return nil, false
	}
	rb := b.q.popBack()
	return rb.Tree, rb.Kind == RunBufIgnore
}

func (b *queueMixin) AppendStream(s Stream) {
	b.q.pushBack(&RunBuf{Kind: RunBufSource, Nested: s})
}

func (b *queueMixin) UndoAppendStream() Stream {
	if b.q.empty() || b.q.tail.Kind != RunBufSource {
		return nil
	}
	return b.q.popBack().Nested
}

func (b *queueMixin) ConsumeTree() (*tree.Tree, bool) {
	for !b.q.empty() && b.q.head.Kind != RunBufToken && b.q.head.Kind != RunBufIgnore {
		// A data/source buffer is queued ahead of the token: the scanner
		// must drain it as characters first. The tree layer only calls
		// ConsumeTree when it already knows a token is next, so an empty
		// result here signals caller error, not EOF.
		return nil, false
	}
	if b.q.empty() {
		return nil, false
	}
	rb := b.q.popFront()
	return rb.Tree, true
}

func (b *queueMixin) UndoConsumeTree(t *tree.Tree, ignore bool) {
	b.PrependTree(t, ignore)
}

func (b *queueMixin) SetEOF()   { b.eof = true }
func (b *queueMixin) UnsetEOF() { b.eof = false; b.eofSent = false }

// queueHeadData returns the direct byte slice of the queue's head Data
// buffer past skip, if the head is a Data buffer with bytes left. Used by
// concrete GetParseBlock implementations to honour the drain-queue-first
// priority rule.
func (b *queueMixin) queueHeadData(skip int) ([]byte, bool) {
	if b.q.empty() || b.q.head.Kind != RunBufData {
		return nil, false
	}
	rb := b.q.head
	start := rb.Offset + skip
	if start >= rb.Length {
		return nil, false
	}
	return rb.Data[start:rb.Length], true
}

// consumeFromQueue advances length bytes from the front of the queue,
// spanning and discarding fully-consumed Data buffers, and reports how
// many bytes it was able to supply (which may be less than length if the
// queue runs out first; the caller then consults the underlying source
// for the remainder).
func (b *queueMixin) consumeFromQueue(length int) int {
	consumed := 0
	for consumed < length && !b.q.empty() && b.q.head.Kind == RunBufData {
		rb := b.q.head
		avail := rb.Length - rb.Offset
		take := length - consumed
		if take >= avail {
			consumed += avail
			b.q.popFront()
		} else {
			rb.Offset += take
			consumed += take
		}
	}
	return consumed
}
