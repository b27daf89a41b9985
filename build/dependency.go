// Copyright 2023 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package build

import (
	"fmt"
	"strings"
)

// DepKind is a kind of dependency.
type DepKind int

const (
	// HeaderInclude is a header file included by `#include`.
	HeaderInclude DepKind = iota
	// ImportDirective is a type library imported by `#import`.
	ImportDirective
	// StaticLibrary is a library linked by target_link_libraries
	// or `#pragma comment(lib, ...)`.
	StaticLibrary
	// COM is a registered COM class referenced by ProgID or CLSID.
	COM
)

var depKindNames = [...]string{
	HeaderInclude:   "header_include",
	ImportDirective: "import_directive",
	StaticLibrary:   "static_library",
	COM:             "com",
}

func (k DepKind) String() string {
	if k < 0 || int(k) >= len(depKindNames) {
		return fmt.Sprintf("DepKind(%d)", int(k))
	}
	return depKindNames[k]
}

// MarshalText implements encoding.TextMarshaler.
func (k DepKind) MarshalText() ([]byte, error) {
	if k < 0 || int(k) >= len(depKindNames) {
		return nil, fmt.Errorf("unknown dependency kind %d", int(k))
	}
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *DepKind) UnmarshalText(b []byte) error {
	for i, n := range depKindNames {
		if n == string(b) {
			*k = DepKind(i)
			return nil
		}
	}
	return fmt.Errorf("unknown dependency kind %q", b)
}

// Dependency is a dependency of a build unit.
// Empty string fields mean "none".
type Dependency struct {
	ID   string  `json:"id"`
	Kind DepKind `json:"kind"`

	// SourcePath is the file that declares the dependency.
	SourcePath string `json:"source_path,omitempty"`

	// ResolvedPath is the file the dependency is resolved to.
	ResolvedPath string `json:"resolved_path,omitempty"`

	// Description is the raw value of an unresolved dependency,
	// or a description of a COM class.
	Description string `json:"description,omitempty"`

	// Metadata is `;`-joined key=value pairs. Used by COM.
	Metadata string `json:"metadata,omitempty"`

	// Internal is true if ResolvedPath is in the source tree
	// and out of third party roots.
	Internal bool `json:"internal,omitempty"`
}

type depKey struct {
	id   string
	kind DepKind
}

// DependencySet is an ordered set of dependencies, deduplicated by
// ID (case-insensitively) and Kind.
// The zero value is ready to use.
type DependencySet struct {
	deps  []Dependency
	index map[depKey]int
}

// Add adds d to the set.
// If the set has the same dependency, it keeps the first one, but fills
// its Description with d's if it is empty.
func (s *DependencySet) Add(d Dependency) {
	if s.index == nil {
		s.index = make(map[depKey]int)
	}
	k := depKey{id: strings.ToLower(d.ID), kind: d.Kind}
	if i, ok := s.index[k]; ok {
		if s.deps[i].Description == "" {
			s.deps[i].Description = d.Description
		}
		return
	}
	s.index[k] = len(s.deps)
	s.deps = append(s.deps, d)
}

// Len returns number of dependencies in the set.
func (s *DependencySet) Len() int {
	return len(s.deps)
}

// List returns dependencies in the order they were first added.
func (s *DependencySet) List() []Dependency {
	return append([]Dependency(nil), s.deps...)
}

// FilterInternal returns deps without internal dependencies.
func FilterInternal(deps []Dependency) []Dependency {
	var r []Dependency
	for _, d := range deps {
		if d.Internal {
			continue
		}
		r = append(r, d)
	}
	return r
}
