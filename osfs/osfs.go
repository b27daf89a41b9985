// Copyright 2024 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package osfs provides OS Filesystem access for scanning.
package osfs

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"time"

	log "github.com/golang/glog"

	"github.com/williamjshipman/cppsbom/o11y/clog"
	"github.com/williamjshipman/cppsbom/o11y/iometrics"
)

// OSFS provides OS Filesystem access.
// It counts metrics by iometrics.
//
// Stat results are cached for the lifetime of OSFS, so a scan sees
// a consistent snapshot of the filesystem; resolving the same path
// twice gives the same answer even if the file changes meanwhile.
// It is safe for concurrent use.
type OSFS struct {
	*iometrics.IOMetrics

	stats sync.Map // cleaned absolute path -> statEntry
}

type statEntry struct {
	exists bool
	isDir  bool
}

// New creates new OSFS.
func New(name string) *OSFS {
	return &OSFS{IOMetrics: iometrics.New(name)}
}

func logSlow(ctx context.Context, name string, dur time.Duration, err error) {
	buf := make([]byte, 4*1024)
	n := runtime.Stack(buf, false)
	clog.Warningf(ctx, "slow op %s: %s %v\n%s", name, dur, err, buf[:n])
}

func (ofs *OSFS) stat(ctx context.Context, name string) statEntry {
	name = filepath.Clean(name)
	if v, ok := ofs.stats.Load(name); ok {
		ofs.StatCached()
		return v.(statEntry)
	}
	started := time.Now()
	fi, err := os.Stat(name)
	if dur := time.Since(started); dur > 1*time.Minute {
		logSlow(ctx, name, dur, err)
	}
	var ent statEntry
	switch {
	case err == nil:
		ent = statEntry{exists: true, isDir: fi.IsDir()}
	case errors.Is(err, fs.ErrNotExist):
	default:
		if log.V(1) {
			clog.Infof(ctx, "stat %s: %v", name, err)
		}
	}
	ofs.StatDone(!ent.exists)
	v, _ := ofs.stats.LoadOrStore(name, ent)
	return v.(statEntry)
}

// Exists reports whether the named file exists and is a regular file
// (or a symlink to one).
func (ofs *OSFS) Exists(ctx context.Context, name string) bool {
	ent := ofs.stat(ctx, name)
	return ent.exists && !ent.isDir
}

// IsDir reports whether the named directory exists.
func (ofs *OSFS) IsDir(ctx context.Context, name string) bool {
	ent := ofs.stat(ctx, name)
	return ent.exists && ent.isDir
}

// ReadFile reads the named file.
func (ofs *OSFS) ReadFile(ctx context.Context, name string) ([]byte, error) {
	started := time.Now()
	buf, err := os.ReadFile(name)
	ofs.ReadDone(len(buf), err)
	if dur := time.Since(started); dur > 1*time.Minute {
		logSlow(ctx, name, dur, err)
	}
	return buf, err
}
