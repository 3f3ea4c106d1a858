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

// Package streamio implements the polymorphic stream abstraction that
// feeds character bytes, pre-built trees, and named language-element
// tokens to the scanner, with full prepend/append/consume/undo support so
// the parser driver can backtrack. Every source kind (memory, file,
// pattern template, constructor template, accumulator) shares the same
// Stream interface and the same RunBuf-queue plumbing for prepended and
// appended content.
package streamio

import (
	"github.com/salikh/colmcore/internal/tree"
)

// BufSize is the default RunBuf/file-read chunk size (FSM_BUFSIZE in the
// original), used when a stream is opened without an explicit Config.
const BufSize = 8192

// Config sizes the chunk a stream reads from its underlying source in one
// go (FileStream.fill's read buffer; other source kinds already hold their
// whole backing slice and ignore this). Prepended/appended data is never
// truncated to this size — RunBuf.Data holds exactly what was handed to
// PrependData/AppendData regardless of Config.
type Config struct {
	// RunBufSize is the byte size of one fill of a file-backed stream's
	// read buffer. Zero means DefaultConfig's BufSize.
	RunBufSize int
}

// DefaultConfig returns the Config every zero-arg stream constructor
// (OpenFileStream, etc.) uses internally.
func DefaultConfig() Config {
	return Config{RunBufSize: BufSize}
}

func (c Config) runBufSize() int {
	if c.RunBufSize <= 0 {
		return BufSize
	}
	return c.RunBufSize
}

// Op is one of the stream read result codes.
type Op int

const (
	OpData   Op = 1
	OpEOD    Op = 2
	OpEOF    Op = 3
	OpEOS    Op = 4
	OpLangEl Op = 5
	OpTree   Op = 6
	OpIgnore Op = 7
)

// RunBufKind distinguishes what a RunBuf's payload actually is.
type RunBufKind int

const (
	RunBufData RunBufKind = iota
	RunBufToken
	RunBufIgnore
	RunBufSource
)

// RunBuf is the unit of stream queuing. A Data buffer carries raw bytes in
// Data[:Length] (sized to exactly what was queued, never truncated to
// BufSize); a Token/Ignore buffer carries a single pre-built Tree; a Source
// buffer carries a nested Stream (prependStream/appendStream). Offset is
// the consumed-prefix within Data for Data bufs.
type RunBuf struct {
	Kind   RunBufKind
	Data   []byte
	Length int
	Tree   *tree.Tree
	Ignore bool
	Nested Stream
	Offset int

	Prev, Next *RunBuf
}

// LangEl is a named language-element token consumed from a pattern- or
// constructor-backed stream.
type LangEl struct {
	BindID int
	Data   []byte
}

// Stream is the per-source-kind function table from spec.md §4.5,
// re-architected as a Go interface (a sum type over source kinds with a
// dispatcher) rather than the original's function-pointer struct.
type Stream interface {
	// GetParseBlock returns a direct slice into the stream's own buffer
	// (no copy) for the bytes available past skip, and the op code
	// describing what's there.
	GetParseBlock(skip int) (code Op, data []byte)
	// GetData copies up to len(dest) bytes starting at offset into dest,
	// returning the number of bytes copied.
	GetData(offset int, dest []byte) int

	ConsumeData(length int) int
	UndoConsumeData(data []byte, length int)

	ConsumeTree() (*tree.Tree, bool)
	UndoConsumeTree(t *tree.Tree, ignore bool)

	ConsumeLangEl() (LangEl, bool)
	UndoConsumeLangEl()

	PrependData(data []byte)
	UndoPrependData(length int) []byte
	PrependTree(t *tree.Tree, ignore bool)
	UndoPrependTree() (*tree.Tree, bool)
	PrependStream(s Stream)
	UndoPrependStream() Stream

	AppendData(data []byte)
	UndoAppendData(length int) []byte
	AppendTree(t *tree.Tree, ignore bool)
	UndoAppendTree() (*tree.Tree, bool)
	AppendStream(s Stream)
	UndoAppendStream() Stream

	SetEOF()
	UnsetEOF()
}

// queue is the deque of RunBufs used to hold prepended (front) and
// appended (back) content ahead of the underlying source. Priority rule:
// reads always drain the queue head first; only once it is empty does a
// stream consult its underlying source.
type queue struct {
	head, tail *RunBuf
}

func (q *queue) empty() bool { return q.head == nil }

func (q *queue) pushFront(rb *RunBuf) {
	rb.Prev = nil
	rb.Next = q.head
	if q.head != nil {
		q.head.Prev = rb
	} else {
		q.tail = rb
	}
	q.head = rb
}

func (q *queue) pushBack(rb *RunBuf) {
	rb.Next = nil
	rb.Prev = q.tail
	if q.tail != nil {
		q.tail.Next = rb
	} else {
		q.head = rb
	}
	q.tail = rb
}

func (q *queue) popFront() *RunBuf {
	rb := q.head
	if rb == nil {
		return nil
	}
	q.head = rb.Next
	if q.head != nil {
		q.head.Prev = nil
	} else {
		q.tail = nil
	}
	rb.Prev, rb.Next = nil, nil
	return rb
}

func (q *queue) popBack() *RunBuf {
	rb := q.tail
	if rb == nil {
		return nil
	}
	q.tail = rb.Prev
	if q.tail != nil {
		q.tail.Next = nil
	} else {
		q.head = nil
	}
	rb.Prev, rb.Next = nil, nil
	return rb
}
