// Copyright 2023 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package build provides build units, their dependencies and
// the resolver of dependencies.
package build

import "slices"

// BuildUnit is a compilation target, i.e. a CMake target or
// a Visual Studio project.
type BuildUnit struct {
	// Name is the declared name, e.g. "foo" of `add_library(foo ...)`.
	Name string

	// Dir is the absolute directory where the unit is declared.
	Dir string

	// ID is the identifier, unique in a graph.
	ID string

	// Sources are absolute paths of the source files.
	Sources []string

	// IncludeDirs are absolute paths of include directories.
	IncludeDirs []string

	// LinkEntries are raw tokens of link libraries, resolved
	// by Resolver.
	LinkEntries []string
}

// AddSource adds a source file if not added yet.
func (u *BuildUnit) AddSource(fname string) {
	if slices.Contains(u.Sources, fname) {
		return
	}
	u.Sources = append(u.Sources, fname)
}

// AddIncludeDir adds an include directory if not added yet.
func (u *BuildUnit) AddIncludeDir(dir string) {
	if slices.Contains(u.IncludeDirs, dir) {
		return
	}
	u.IncludeDirs = append(u.IncludeDirs, dir)
}

// AddLinkEntry adds a link library token.
func (u *BuildUnit) AddLinkEntry(tok string) {
	u.LinkEntries = append(u.LinkEntries, tok)
}

// String returns the unit's identifier.
func (u *BuildUnit) String() string {
	if u == nil {
		return "<nil>"
	}
	return u.ID
}
