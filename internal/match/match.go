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

// Package match implements structural pattern matching of an existing
// tree against a compiled pattern-node table, producing a bindings vector
// (matchPattern).
package match

import (
	"bytes"

	"github.com/salikh/colmcore/internal/construct"
	"github.com/salikh/colmcore/internal/patterntab"
	"github.com/salikh/colmcore/internal/tree"
)

// Match attempts to match pattern-table index pat (and, if checkNext is
// true, its sibling chain) against kid, filling bindings as it goes. The
// traversal order — node, then its children, then its next sibling — is
// exactly the order bindings are assigned in, and callers depend on that
// order (see patterntab/construct for the corresponding builder).
func Match(prg tree.Allocator, nodes *patterntab.Table, bindings construct.Bindings, pat int, kid *tree.Kid, checkNext bool) bool {
	node, ok := nodes.At(pat)
	if ok && kid != nil {
		if node.ID != kid.Tree.ID {
			return false
		}
		if node.Data != nil {
			if len(node.Data) != kid.Tree.Tokdata.Len() {
				return false
			}
			if len(node.Data) > 0 && !bytes.Equal(node.Data, kid.Tree.Tokdata.Data) {
				return false
			}
		}

		if node.BindID > 0 {
			bindings[node.BindID] = kid.Tree
		}

		if !node.Stop {
			info := prg.LangElInfo(kid.Tree.ID)
			childCheck := Match(prg, nodes, bindings, node.Child, tree.Child(kid.Tree, info.ObjectLength), true)
			if !childCheck {
				return false
			}
		}

		if checkNext {
			nextCheck := Match(prg, nodes, bindings, node.Next, kid.Next, true)
			if !nextCheck {
				return false
			}
		}

		return true
	}
	if !ok && kid == nil {
		return true
	}
	return false
}
