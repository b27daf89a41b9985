// Copyright 2023 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package metadata provides key-value metadata of a scan, reported
// along with the dependencies.
package metadata

import (
	"encoding/json"
	"fmt"
	"runtime"
	"sort"
	"strconv"
	"sync"

	"github.com/williamjshipman/cppsbom/runtimex"
)

// wellKnownKeys are set by New and can't be overridden.
var wellKnownKeys = map[string]bool{
	"num_cpu": true,
	"goos":    true,
	"goarch":  true,
}

// Metadata contains key-value pairs such as
//   - num_cpu: number of CPUs
//   - goos: GOOS of the scanner
//   - goarch: GOARCH of the scanner
//
// and pairs set by Starlark config or subcommands.
// It is safe for concurrent use.
type Metadata struct {
	mu      *sync.Mutex
	entries map[string]string
}

// New returns Metadata with well-known keys.
func New() Metadata {
	return Metadata{
		mu: &sync.Mutex{},
		entries: map[string]string{
			"num_cpu": strconv.Itoa(runtimex.NumCPU()),
			"goos":    runtime.GOOS,
			"goarch":  runtime.GOARCH,
		},
	}
}

// Set sets value for key. Well-known keys can't be set.
func (md Metadata) Set(key, value string) error {
	if wellKnownKeys[key] {
		return fmt.Errorf("cannot override well-known key %q in metadata", key)
	}
	md.mu.Lock()
	defer md.mu.Unlock()
	md.entries[key] = value
	return nil
}

// Get returns value for key, or empty string if not set.
func (md Metadata) Get(key string) string {
	md.mu.Lock()
	defer md.mu.Unlock()
	return md.entries[key]
}

// SortedKeys returns keys in sorted order.
func (md Metadata) SortedKeys() []string {
	md.mu.Lock()
	keys := make([]string, 0, len(md.entries))
	for k := range md.entries {
		keys = append(keys, k)
	}
	md.mu.Unlock()
	sort.Strings(keys)
	return keys
}

// Size returns the number of key-value pairs.
func (md Metadata) Size() int {
	md.mu.Lock()
	defer md.mu.Unlock()
	return len(md.entries)
}

// MarshalJSON marshals md as a JSON object.
func (md Metadata) MarshalJSON() ([]byte, error) {
	md.mu.Lock()
	defer md.mu.Unlock()
	return json.Marshal(md.entries)
}
