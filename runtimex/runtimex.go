// Copyright 2024 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package runtimex provides NumCPU that counts all processor groups.
package runtimex

import (
	"runtime"
	"sync"
)

var numCPU = sync.OnceValue(func() int {
	n := getproccount()
	if n <= 0 {
		return runtime.NumCPU()
	}
	return n
})

// NumCPU returns the number of logical CPUs usable by the current process.
// On Windows, runtime.NumCPU only counts a single processor group
// (up to 64), so it asks GetActiveProcessorCount for all groups.
// Elsewhere it is runtime.NumCPU.
func NumCPU() int {
	return numCPU()
}
