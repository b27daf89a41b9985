// Copyright 2023 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package iometrics manages I/O metrics.
package iometrics

import (
	"fmt"
	"sync/atomic"
)

// IOMetrics holds I/O metrics.
type IOMetrics struct {
	name string

	stats    atomic.Int64
	statHits atomic.Int64
	notFound atomic.Int64

	rOps   atomic.Int64
	rBytes atomic.Int64
	rErrs  atomic.Int64
}

// New returns new iometrics for name.
func New(name string) *IOMetrics {
	return &IOMetrics{name: name}
}

// StatDone counts when a stat hits the filesystem.
// notFound reports the stat found nothing.
func (m *IOMetrics) StatDone(notFound bool) {
	if m == nil {
		return
	}
	m.stats.Add(1)
	if notFound {
		m.notFound.Add(1)
	}
}

// StatCached counts when a stat is served from cache.
func (m *IOMetrics) StatCached() {
	if m == nil {
		return
	}
	m.statHits.Add(1)
}

// ReadDone counts when a read operation is done.
// n is the number of bytes, and err is a read error.
func (m *IOMetrics) ReadDone(n int, err error) {
	if m == nil {
		return
	}
	m.rOps.Add(1)
	m.rBytes.Add(int64(n))
	if err != nil {
		m.rErrs.Add(1)
	}
}

// Name returns the name of the iometrics.
func (m *IOMetrics) Name() string {
	if m == nil {
		return "<nil>"
	}
	return m.name
}

// Stats holds iometrics.
type Stats struct {
	// Number of stats that reached the filesystem.
	Stats int64
	// Number of stats served from cache.
	StatHits int64
	// Number of stats that found no file.
	NotFound int64

	// Number of read operations.
	ROps int64
	// Number of read bytes.
	RBytes int64
	// Number of read errors.
	RErrs int64
}

func (s Stats) String() string {
	return fmt.Sprintf("stat=%d(cached=%d notfound=%d) read=%d(%dB err=%d)", s.Stats, s.StatHits, s.NotFound, s.ROps, s.RBytes, s.RErrs)
}

// Stats returns the snapshopt of the iometrics.
func (m *IOMetrics) Stats() Stats {
	if m == nil {
		return Stats{}
	}
	return Stats{
		Stats:    m.stats.Load(),
		StatHits: m.statHits.Load(),
		NotFound: m.notFound.Load(),
		ROps:     m.rOps.Load(),
		RBytes:   m.rBytes.Load(),
		RErrs:    m.rErrs.Load(),
	}
}
