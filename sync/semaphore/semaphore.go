// Copyright 2023 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package semaphore bounds concurrent work such as per build unit
// analysis and source file reads.
package semaphore

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/williamjshipman/cppsbom/o11y/trace"
)

// Semaphore is a named counting semaphore.
type Semaphore struct {
	name  string
	slots chan struct{}

	waiting  atomic.Int64
	maxWait  atomic.Int64
	acquired atomic.Int64
}

// New creates a semaphore that admits n holders at a time.
// n less than 1 admits one.
func New(name string, n int) *Semaphore {
	return &Semaphore{
		name:  name,
		slots: make(chan struct{}, max(n, 1)),
	}
}

// WaitAcquire blocks until a slot is free or ctx is done.
// The returned func releases the slot, and is a no-op on error.
func (s *Semaphore) WaitAcquire(ctx context.Context) (context.Context, func(), error) {
	w := s.waiting.Add(1)
	for {
		m := s.maxWait.Load()
		if w <= m || s.maxWait.CompareAndSwap(m, w) {
			break
		}
	}
	defer s.waiting.Add(-1)
	select {
	case s.slots <- struct{}{}:
		s.acquired.Add(1)
		return ctx, s.release, nil
	case <-ctx.Done():
		return ctx, func() {}, context.Cause(ctx)
	}
}

func (s *Semaphore) release() { <-s.slots }

// Name returns name of the semaphore.
func (s *Semaphore) Name() string { return s.name }

// Capacity returns how many holders are admitted at a time.
func (s *Semaphore) Capacity() int {
	if s == nil {
		return 0
	}
	return cap(s.slots)
}

// InUse returns number of slots currently held.
func (s *Semaphore) InUse() int { return len(s.slots) }

// Stats is a snapshot of semaphore usage.
type Stats struct {
	Name     string
	Capacity int
	// Acquired is total number of successful acquisitions.
	Acquired int64
	// MaxWaiting is the peak number of concurrent callers of WaitAcquire.
	MaxWaiting int64
}

func (st Stats) String() string {
	return fmt.Sprintf("%s: capacity=%d acquired=%d max_waiting=%d", st.Name, st.Capacity, st.Acquired, st.MaxWaiting)
}

// Stats returns usage of s so far.
func (s *Semaphore) Stats() Stats {
	return Stats{
		Name:       s.name,
		Capacity:   s.Capacity(),
		Acquired:   s.acquired.Load(),
		MaxWaiting: s.maxWait.Load(),
	}
}

// Do runs f while holding a slot, in a trace span named after the semaphore.
func (s *Semaphore) Do(ctx context.Context, f func(ctx context.Context) error) error {
	ctx, release, err := s.WaitAcquire(ctx)
	if err != nil {
		return err
	}
	defer release()
	ctx, span := trace.NewSpan(ctx, s.name)
	err = f(ctx)
	span.Close(err)
	return err
}
