// Copyright 2023 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package build

import (
	"path"
	"path/filepath"
	"strings"
)

// NormalizePath returns the canonical form of p used to compare paths:
// lower-cased, `/`-separated and without trailing separator.
func NormalizePath(p string) string {
	return path.Clean(strings.ToLower(toSlash(p)))
}

// toSlash converts both `\` and `/` separated paths into `/` separated,
// regardless of the host OS.
func toSlash(p string) string {
	return strings.ReplaceAll(p, `\`, "/")
}

// RelUnder returns p relative to dir, `/`-separated, if p is dir or
// lies under dir. Comparison is done on normalized paths.
func RelUnder(p, dir string) (string, bool) {
	np, nd := NormalizePath(p), NormalizePath(dir)
	if np == nd {
		return "", true
	}
	prefix := nd
	if !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}
	if !strings.HasPrefix(np, prefix) {
		return "", false
	}
	// keep original case when lower-casing didn't change the length.
	op := path.Clean(toSlash(p))
	if len(op) == len(np) {
		return op[len(prefix):], true
	}
	return np[len(prefix):], true
}

// IsUnder reports whether p is dir or lies under dir.
func IsUnder(p, dir string) bool {
	_, ok := RelUnder(p, dir)
	return ok
}

// joinPath joins name to dir, unless name is absolute.
// name may use either separator.
func joinPath(dir, name string) string {
	name = filepath.FromSlash(toSlash(name))
	if filepath.IsAbs(name) || dir == "" {
		return filepath.Clean(name)
	}
	return filepath.Join(dir, name)
}

// baseName returns the last element of p, which may use either separator.
func baseName(p string) string {
	return path.Base(toSlash(p))
}

// pathList is an ordered set of paths, deduplicated by normalized path.
type pathList struct {
	paths []string
	seen  map[string]bool
}

func (pl *pathList) add(p string) {
	if pl.seen == nil {
		pl.seen = make(map[string]bool)
	}
	k := NormalizePath(p)
	if pl.seen[k] {
		return
	}
	pl.seen[k] = true
	pl.paths = append(pl.paths, p)
}
