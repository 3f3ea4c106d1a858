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

package streamio_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/salikh/colmcore/internal/streamio"
)

// TestStreamConsumeUndoInverse is the consume/undo inverse property: for
// any byte sequence read by ConsumeData(len), a following
// UndoConsumeData(b, len) restores the exact read position.
func TestStreamConsumeUndoInverse(t *testing.T) {
	data := bytes.Repeat([]byte("ab"), 4500) // 9000 bytes, more than one BufSize
	s := streamio.NewMemoryStream(append([]byte(nil), data...))

	buf := make([]byte, 500)
	n := s.GetData(0, buf)
	require.Equal(t, 500, n)
	saved := append([]byte(nil), buf...)

	consumed := s.ConsumeData(500)
	require.Equal(t, 500, consumed)

	_, block := s.GetParseBlock(0)
	require.True(t, len(block) > 0)
	require.Equal(t, data[500], block[0])

	s.UndoConsumeData(saved, 500)

	code, block2 := s.GetParseBlock(0)
	require.Equal(t, streamio.OpData, code)
	require.True(t, len(block2) >= 500)
	require.Equal(t, saved, block2[:500])
}

// TestStreamPrependOrder is the prepend/append order property: after
// prepend_data(a); prepend_data(b), reads yield b then a.
func TestStreamPrependOrder(t *testing.T) {
	s := streamio.NewMemoryStream([]byte("tail"))
	s.PrependData([]byte("a"))
	s.PrependData([]byte("b"))

	_, block := s.GetParseBlock(0)
	require.Equal(t, "b", string(block))

	s.ConsumeData(1)
	_, block = s.GetParseBlock(0)
	require.Equal(t, "a", string(block))

	s.ConsumeData(1)
	_, block = s.GetParseBlock(0)
	require.Equal(t, "tail", string(block))
}

// TestAccumulatorPause is scenario 5: an accumulator with 10 bytes and no
// EOF returns DATA(10) then EOD; after Feed(20 more) the next read
// returns the next 20 bytes.
func TestAccumulatorPause(t *testing.T) {
	a := streamio.NewAccumulatorStream()
	a.Feed([]byte(strings.Repeat("x", 10)))

	code, block := a.GetParseBlock(0)
	require.Equal(t, streamio.OpData, code)
	require.Len(t, block, 10)

	a.ConsumeData(10)
	code, _ = a.GetParseBlock(0)
	require.Equal(t, streamio.OpEOD, code, "accumulator with no more data and no SetEOF must report EOD, not EOF")

	a.Feed([]byte(strings.Repeat("y", 20)))
	code, block = a.GetParseBlock(0)
	require.Equal(t, streamio.OpData, code)
	require.Len(t, block, 20)

	a.SetEOF()
	a.ConsumeData(20)
	code, _ = a.GetParseBlock(0)
	require.Equal(t, streamio.OpEOF, code)
}

// TestMemoryStreamReportsEOF checks a drained memory stream reports EOF.
func TestMemoryStreamReportsEOF(t *testing.T) {
	s := streamio.NewMemoryStream([]byte("ab"))
	s.ConsumeData(2)
	code, _ := s.GetParseBlock(0)
	require.Equal(t, streamio.OpEOF, code)
}

// TestFileStreamReadsMemFS exercises the /memfs/ path end to end.
func TestFileStreamReadsMemFS(t *testing.T) {
	require.NoError(t, streamio.WriteMemFile("/memfs/test/input.txt", []byte("hello world")))

	fs, err := streamio.OpenFileStream("/memfs/test/input.txt")
	require.NoError(t, err)
	defer fs.Close()

	var got bytes.Buffer
	for {
		code, block := fs.GetParseBlock(0)
		if code == streamio.OpEOF {
			break
		}
		got.Write(block)
		fs.ConsumeData(len(block))
	}
	require.Equal(t, "hello world", got.String())
}

// TestPatternStreamEmitsTextAndLangEl checks the template-backed stream
// splits InputText items into character data and FactorType items into
// named language-element tokens.
func TestPatternStreamEmitsTextAndLangEl(t *testing.T) {
	items := []streamio.Item{
		{Kind: streamio.InputText, Data: []byte("pre")},
		{Kind: streamio.FactorType, BindID: 1, Data: []byte("TOK")},
		{Kind: streamio.InputText, Data: []byte("post")},
	}
	s := streamio.NewPatternStream(items)

	_, block := s.GetParseBlock(0)
	require.Equal(t, "pre", string(block))
	s.ConsumeData(3)

	code, _ := s.GetParseBlock(0)
	require.Equal(t, streamio.OpLangEl, code)
	le, ok := s.ConsumeLangEl()
	require.True(t, ok)
	require.Equal(t, 1, le.BindID)
	require.Equal(t, "TOK", string(le.Data))

	_, block = s.GetParseBlock(0)
	require.Equal(t, "post", string(block))
}
