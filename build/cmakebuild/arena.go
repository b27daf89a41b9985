// Copyright 2024 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package cmakebuild

// arena allocates T in contiguous chunks to reduce allocations.
// Pointers returned by new stay valid, since a chunk is never grown.
type arena[T any] struct {
	chunkSize int
	allocs    []T
	next      int
	n         int
}

// reserve sets chunk size to n.
func (a *arena[T]) reserve(n int) {
	a.chunkSize = n
}

// new returns a zero *T from arena.
func (a *arena[T]) new() *T {
	if a.next == len(a.allocs) {
		n := a.chunkSize
		if n <= 0 {
			n = 64
		}
		a.allocs = make([]T, n)
		a.next = 0
	}
	p := &a.allocs[a.next]
	a.next++
	a.n++
	return p
}

// len returns number of allocations in this arena.
func (a *arena[T]) len() int {
	return a.n
}
