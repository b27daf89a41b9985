// Copyright 2024 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package cmakebuild builds a graph of build units from CMake projects.
//
// It doesn't evaluate CMake language. It follows add_subdirectory and
// include, and records targets defined by add_library and
// add_executable, and their sources, include directories and link
// libraries given by target_* commands with literal arguments.
package cmakebuild

import (
	"errors"
	"fmt"
	"maps"
	"sort"

	"github.com/williamjshipman/cppsbom/build"
	"github.com/williamjshipman/cppsbom/toolsupport/cmakeutil"
)

var (
	// ErrRootParse is an error when the root manifest can't be read or parsed.
	ErrRootParse = errors.New("failed to parse root manifest")

	// ErrDuplicateID is an error when two targets have the same identifier.
	ErrDuplicateID = errors.New("duplicate target identifier")
)

// FatalError is an error that aborts loading.
type FatalError struct {
	File string
	Line int
	Err  error
}

func (e *FatalError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s:%d: %v", e.File, e.Line, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.File, e.Err)
}

func (e *FatalError) Unwrap() error {
	return e.Err
}

// Diagnostic is a recoverable problem found while loading.
type Diagnostic struct {
	File    string `json:"file"`
	Line    int    `json:"line,omitempty"`
	Message string `json:"message"`
}

func (d Diagnostic) String() string {
	if d.Line > 0 {
		return fmt.Sprintf("%s:%d: %s", d.File, d.Line, d.Message)
	}
	return fmt.Sprintf("%s: %s", d.File, d.Message)
}

// Graph is a graph of build units in a CMake project.
// It is read-only after Load returns, so it is safe for concurrent use.
type Graph struct {
	// Root is the root directory.
	Root string

	// Project is the project name of the root manifest.
	Project string

	arena   arena[build.BuildUnit]
	units   []*build.BuildUnit
	byID    map[string]*build.BuildUnit
	byName  map[string][]*build.BuildUnit
	aliases map[string]string
	defs    map[string]string // id -> file:line

	files []string
	diags []Diagnostic
}

func newGraph(root string) *Graph {
	g := &Graph{
		Root:    root,
		byID:    make(map[string]*build.BuildUnit),
		byName:  make(map[string][]*build.BuildUnit),
		aliases: make(map[string]string),
		defs:    make(map[string]string),
	}
	g.arena.reserve(256)
	return g
}

// Units returns build units in the order they are defined.
func (g *Graph) Units() []*build.BuildUnit {
	return append([]*build.BuildUnit(nil), g.units...)
}

// Unit returns a build unit of id.
func (g *Graph) Unit(id string) (*build.BuildUnit, bool) {
	u, ok := g.byID[id]
	return u, ok
}

// Aliases returns a copy of the alias table, name to target name.
func (g *Graph) Aliases() map[string]string {
	return maps.Clone(g.aliases)
}

// Files returns manifest files processed, in order.
func (g *Graph) Files() []string {
	return append([]string(nil), g.files...)
}

// Diagnostics returns recoverable problems found while loading.
func (g *Graph) Diagnostics() []Diagnostic {
	return append([]Diagnostic(nil), g.diags...)
}

// LookupStatus is a status of Lookup.
type LookupStatus int

const (
	NotFound LookupStatus = iota
	Unique
	Ambiguous
)

func (s LookupStatus) String() string {
	switch s {
	case NotFound:
		return "not found"
	case Unique:
		return "unique"
	case Ambiguous:
		return "ambiguous"
	}
	return fmt.Sprintf("LookupStatus(%d)", int(s))
}

// Lookup is a result of Graph.Lookup.
// Unit is set only if Status is Unique.
type Lookup struct {
	Status LookupStatus
	Unit   *build.BuildUnit
}

// Lookup looks up a build unit by name referenced in dir.
//
// name is dereferenced through aliases once, so an alias of an alias
// is not resolved. If more than one unit has the name, the one
// defined in dir is used.
func (g *Graph) Lookup(name, dir string) Lookup {
	if !cmakeutil.IsLiteral(name) {
		return Lookup{Status: NotFound}
	}
	if target, ok := g.aliases[name]; ok {
		name = target
	}
	cands := g.byName[name]
	switch len(cands) {
	case 0:
		return Lookup{Status: NotFound}
	case 1:
		return Lookup{Status: Unique, Unit: cands[0]}
	}
	ndir := build.NormalizePath(dir)
	var found *build.BuildUnit
	n := 0
	for _, u := range cands {
		if build.NormalizePath(u.Dir) == ndir {
			found = u
			n++
		}
	}
	if n == 1 {
		return Lookup{Status: Unique, Unit: found}
	}
	return Lookup{Status: Ambiguous}
}

var _ build.UnitLookup = (*Graph)(nil)

// LookupUnit looks up a unique build unit by name referenced in dir.
func (g *Graph) LookupUnit(name, dir string) (*build.BuildUnit, bool) {
	l := g.Lookup(name, dir)
	return l.Unit, l.Status == Unique
}

// maxValidEditDistance is the max edit distance for suggestions.
const maxValidEditDistance = 3

// spellcheck returns a known unit or alias name closest to name.
func (g *Graph) spellcheck(name string) string {
	var names []string
	for n := range g.byName {
		names = append(names, n)
	}
	for n := range g.aliases {
		names = append(names, n)
	}
	sort.Strings(names)
	minDistance := maxValidEditDistance + 1
	var result string
	for _, n := range names {
		d := editDistance(n, name, maxValidEditDistance)
		if d < minDistance {
			minDistance = d
			result = n
		}
	}
	return result
}
