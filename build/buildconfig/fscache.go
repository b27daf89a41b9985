// Copyright 2023 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package buildconfig

import (
	"context"
	"sync"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/singleflight"

	"github.com/williamjshipman/cppsbom/build"
)

// fscache caches contents of files read by config during one Load,
// so `ctx.fs.read` of the same file from several modules reads it once.
type fscache struct {
	fs build.FileSystem

	group singleflight.Group
	mu    sync.Mutex
	files map[string][]byte // normalized path -> content
}

func newFSCache(fsys build.FileSystem) *fscache {
	return &fscache{
		fs:    fsys,
		files: make(map[string][]byte),
	}
}

// read returns the content of fname.
func (c *fscache) read(ctx context.Context, fname string) ([]byte, error) {
	key := build.NormalizePath(fname)
	c.mu.Lock()
	buf, ok := c.files[key]
	c.mu.Unlock()
	if ok {
		log.Debugf("fscache hit %s", fname)
		return buf, nil
	}
	v, err, _ := c.group.Do(key, func() (any, error) {
		buf, err := c.fs.ReadFile(ctx, fname)
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		c.files[key] = buf
		c.mu.Unlock()
		return buf, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]byte), nil
}
