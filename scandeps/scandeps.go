// Copyright 2023 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package scandeps

import (
	"context"

	log "github.com/golang/glog"
	"golang.org/x/sync/errgroup"

	"github.com/williamjshipman/cppsbom/o11y/clog"
	"github.com/williamjshipman/cppsbom/runtimex"
	"github.com/williamjshipman/cppsbom/sync/semaphore"
)

// Semaphore limits concurrent source file reads.
var Semaphore = semaphore.New("scandeps-read", runtimex.NumCPU()*2)

// FileReader reads files.
type FileReader interface {
	ReadFile(ctx context.Context, name string) ([]byte, error)
}

// Match is an occurrence of a directive value in a file.
type Match struct {
	// File is the file where the directive is found.
	File string
	// Value is the directive value without delimiters.
	// e.g. "foo.h" for `#include <foo.h>`.
	Value string
	// System is true for `#include <...>`.
	System bool
}

// Result is a result of Scan.
type Result struct {
	Includes   []Match
	Imports    []Match
	PragmaLibs []Match
	ProgIDs    []Match
	CLSIDs     []Match
}

func (r *Result) add(o Result) {
	r.Includes = append(r.Includes, o.Includes...)
	r.Imports = append(r.Imports, o.Imports...)
	r.PragmaLibs = append(r.PragmaLibs, o.PragmaLibs...)
	r.ProgIDs = append(r.ProgIDs, o.ProgIDs...)
	r.CLSIDs = append(r.CLSIDs, o.CLSIDs...)
}

// Scan scans files for directives.
// Matches are ordered by files, then by position in the file.
// Files that can't be read are skipped.
func Scan(ctx context.Context, fsys FileReader, files []string) Result {
	results := make([]Result, len(files))
	eg, ctx := errgroup.WithContext(ctx)
	for i, fname := range files {
		eg.Go(func() error {
			ctx, done, err := Semaphore.WaitAcquire(ctx)
			if err != nil {
				return err
			}
			defer done()
			buf, err := fsys.ReadFile(ctx, fname)
			if err != nil {
				if log.V(1) {
					clog.Infof(ctx, "skip unreadable %s: %v", fname, err)
				}
				return nil
			}
			results[i] = ScanFile(fname, buf)
			return nil
		})
	}
	err := eg.Wait()
	if err != nil {
		clog.Warningf(ctx, "scan canceled: %v", err)
	}
	var r Result
	for _, fr := range results {
		r.add(fr)
	}
	return r
}
