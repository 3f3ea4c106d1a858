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

package pool_test

import (
	"testing"

	"github.com/salikh/colmcore/internal/pool"
)

type node struct {
	X int
}

func TestGetReturnsZeroedNode(t *testing.T) {
	p := pool.New[node]()
	n := p.Get()
	n.X = 42
	p.Put(n)

	got := p.Get()
	if got.X != 0 {
		t.Errorf("Get after Put returned X = %d, want 0 (zeroed)", got.X)
	}
}

func TestGetReusesPutNode(t *testing.T) {
	p := pool.New[node]()
	n1 := p.Get()
	p.Put(n1)
	n2 := p.Get()
	if n1 != n2 {
		t.Errorf("Get did not reuse the node Put back onto the free list")
	}
}

func TestAllocatedAndOutstanding(t *testing.T) {
	p := pool.New[node]()
	a := p.Get()
	b := p.Get()
	if got := p.Allocated(); got != 2 {
		t.Fatalf("Allocated() = %d, want 2", got)
	}
	if got := p.Outstanding(); got != 2 {
		t.Fatalf("Outstanding() = %d, want 2", got)
	}
	p.Put(a)
	if got := p.Outstanding(); got != 1 {
		t.Errorf("Outstanding() after one Put = %d, want 1", got)
	}
	if got := p.Allocated(); got != 2 {
		t.Errorf("Allocated() after Put = %d, want 2 (Put does not shrink it)", got)
	}
	p.Put(b)
	if got := p.Outstanding(); got != 0 {
		t.Errorf("Outstanding() after both Put = %d, want 0", got)
	}
}
