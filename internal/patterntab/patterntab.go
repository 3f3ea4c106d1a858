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

// Package patterntab defines the pattern/constructor node table emitted by
// the (out-of-scope) grammar compiler and consumed by the construct and
// match packages. The table is immutable once built.
package patterntab

import (
	"fmt"

	"go.uber.org/multierr"

	"github.com/salikh/colmcore/internal/langel"
)

// None is the sentinel for an absent child/next/ignore index. An unbound
// node has BindID 0, not None.
const None = langel.None

// Node is one entry of the pattern-node table (PatCons): `{ id, prodNum,
// length, data, child, next, leftIgnore, rightIgnore, bindId, stop }`. The
// index fields are indices into the owning Table's Nodes slice; None means
// absent.
type Node struct {
	ID          langel.ID
	ProdNum     int32
	Data        []byte
	Child       int
	Next        int
	LeftIgnore  int
	RightIgnore int
	BindID      int
	Stop        bool
}

// Table is the dense, immutable pattern-node array plus the bindings size
// it was compiled against.
type Table struct {
	Nodes     []Node
	NumBindID int
}

// At returns the node at index i, or (Node{}, false) if i is None/out of
// range. Construction and matching both index through this accessor so
// the -1 sentinel is handled in exactly one place.
func (t *Table) At(i int) (Node, bool) {
	if i < 0 || i >= len(t.Nodes) {
		return Node{}, false
	}
	return t.Nodes[i], true
}

// Validate checks structural soundness of the table before it is handed to
// construct/match: every non-sentinel index must be in range, and every
// bindId must fall within [0, NumBindID] (0 meaning unbound). Errors are aggregated with
// multierr so a single bad compiler emission doesn't hide its siblings.
func (t *Table) Validate() error {
	var errs error
	n := len(t.Nodes)
	checkIdx := func(field string, i, idx int) {
		if idx == None {
			return
		}
		if idx < 0 || idx >= n {
			errs = multierr.Append(errs, fmt.Errorf("node %d: %s index %d out of range [0,%d)", i, field, idx, n))
		}
	}
	for i, node := range t.Nodes {
		checkIdx("child", i, node.Child)
		checkIdx("next", i, node.Next)
		checkIdx("leftIgnore", i, node.LeftIgnore)
		checkIdx("rightIgnore", i, node.RightIgnore)
		if node.BindID < 0 || node.BindID > t.NumBindID {
			errs = multierr.Append(errs, fmt.Errorf("node %d: bindId %d out of range [0,%d]", i, node.BindID, t.NumBindID))
		}
	}
	return errs
}
