// Copyright 2023 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package buildconfig

import (
	"fmt"
	"path/filepath"

	"go.starlark.net/starlark"

	"github.com/williamjshipman/cppsbom/build"
)

// packList returns a Starlark list of strings.
func packList(list []string) *starlark.List {
	values := make([]starlark.Value, len(list))
	for i, s := range list {
		values[i] = starlark.String(s)
	}
	return starlark.NewList(values)
}

// unpackList returns strings in an iterable v, such as list or tuple.
func unpackList(v starlark.Value) ([]string, error) {
	iterable, ok := v.(starlark.Iterable)
	if !ok {
		return nil, fmt.Errorf("got %s; want list of strings", v.Type())
	}
	iter := iterable.Iterate()
	defer iter.Done()
	var list []string
	var elem starlark.Value
	for i := 0; iter.Next(&elem); i++ {
		s, ok := starlark.AsString(elem)
		if !ok {
			return nil, fmt.Errorf("got %s at %d; want string", elem.Type(), i)
		}
		list = append(list, s)
	}
	return list, nil
}

// absPaths returns cleaned absolute paths of list, resolving relative
// paths against root. Empty paths and paths that normalize to an
// earlier one are dropped.
func absPaths(root string, list []string) []string {
	seen := make(map[string]bool)
	var paths []string
	for _, p := range list {
		if p == "" {
			continue
		}
		p = filepath.FromSlash(p)
		if !filepath.IsAbs(p) {
			p = filepath.Join(root, p)
		}
		p = filepath.Clean(p)
		key := build.NormalizePath(p)
		if seen[key] {
			continue
		}
		seen[key] = true
		paths = append(paths, p)
	}
	return paths
}
