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

// Package pool provides fixed-size slab allocators for the tree and kid
// nodes that churn constantly during parsing. A program instance owns one
// Pool per node kind; pools are never shared between programs and objects
// returned by Get are never handed back to a different pool.
package pool

// Pool is a free-list allocator for *T. Get returns a zeroed node, reusing
// a previously Put one when available. Object identity is stable between a
// Put and the matching Get: nothing else touches the backing array.
type Pool[T any] struct {
	free  []*T
	count int
}

// New creates an empty pool. Pools grow on demand; there is no fixed cap,
// only a fixed node size (the type parameter).
func New[T any]() *Pool[T] {
	return &Pool[T]{}
}

// NewWithCapacity creates a pool with n nodes pre-allocated onto the free
// list, so the first n Gets never hit the allocator. A program that knows
// its expected tree/kid churn in advance (rtprogram.Config's TreePoolSize/
// KidPoolSize) uses this to avoid the initial run of slab growth.
func NewWithCapacity[T any](n int) *Pool[T] {
	p := &Pool[T]{}
	if n <= 0 {
		return p
	}
	p.free = make([]*T, n)
	for i := range p.free {
		p.free[i] = new(T)
	}
	p.count = n
	return p
}

// Get returns a zeroed *T, either recycled from the free list or freshly
// allocated.
func (p *Pool[T]) Get() *T {
	n := len(p.free)
	if n == 0 {
		p.count++
		return new(T)
	}
	v := p.free[n-1]
	p.free = p.free[:n-1]
	*v = *new(T)
	return v
}

// Put returns v to the pool for reuse.
func (p *Pool[T]) Put(v *T) {
	p.free = append(p.free, v)
}

// Allocated reports the total number of distinct nodes this pool has ever
// constructed (not currently-in-use count). Used by tests to verify
// refcount soundness: after downref to zero, everything taken from the
// pool must have been returned.
func (p *Pool[T]) Allocated() int {
	return p.count
}

// Outstanding reports how many nodes are currently checked out (allocated
// minus those sitting on the free list).
func (p *Pool[T]) Outstanding() int {
	return p.count - len(p.free)
}
