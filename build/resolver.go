// Copyright 2023 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package build

import (
	"context"
	"path"
	"path/filepath"
	"strings"

	log "github.com/golang/glog"

	"github.com/williamjshipman/cppsbom/o11y/clog"
	"github.com/williamjshipman/cppsbom/o11y/trace"
	"github.com/williamjshipman/cppsbom/scandeps"
	"github.com/williamjshipman/cppsbom/toolsupport/cmakeutil"
)

// FileSystem is a filesystem used to resolve dependencies.
type FileSystem interface {
	// Exists reports whether name is an existing regular file.
	Exists(ctx context.Context, name string) bool
	// IsDir reports whether name is an existing directory.
	IsDir(ctx context.Context, name string) bool
	ReadFile(ctx context.Context, name string) ([]byte, error)
}

// UnitLookup looks up a build unit by name referenced in dir.
type UnitLookup interface {
	LookupUnit(name, dir string) (*BuildUnit, bool)
}

// Resolver resolves dependencies of build units.
// It doesn't modify its fields or build units, so it can analyze
// multiple units concurrently.
type Resolver struct {
	FS FileSystem

	// Units resolves link entries that name other units.
	// nil if no units can be referenced.
	Units UnitLookup

	// COM resolves ProgIDs and CLSIDs. nil disables COM resolution.
	COM COMResolver

	// Root is the root directory of the source tree.
	Root string

	// ThirdPartyRoots are directories of third party code.
	ThirdPartyRoots []string
}

// libDirNames are subdirectories of a third party root searched for libraries.
var libDirNames = []string{"lib", "libs", "Lib", "Libs"}

// IncludeSearchPaths returns include search paths for u.
// They are u's directory, third party roots (and their include
// subdirectory) and u's existing include directories, in this order,
// deduplicated by normalized path.
func (r *Resolver) IncludeSearchPaths(ctx context.Context, u *BuildUnit) []string {
	var pl pathList
	pl.add(u.Dir)
	for _, root := range r.ThirdPartyRoots {
		pl.add(root)
		if dir := filepath.Join(root, "include"); r.FS.IsDir(ctx, dir) {
			pl.add(dir)
		}
	}
	for _, dir := range u.IncludeDirs {
		if r.FS.IsDir(ctx, dir) {
			pl.add(dir)
		}
	}
	return pl.paths
}

// LibrarySearchPaths returns library search paths for u.
// They are u's directory, third party roots and their existing
// lib, libs, Lib and Libs subdirectories.
func (r *Resolver) LibrarySearchPaths(ctx context.Context, u *BuildUnit) []string {
	var pl pathList
	pl.add(u.Dir)
	for _, root := range r.ThirdPartyRoots {
		pl.add(root)
		for _, name := range libDirNames {
			if dir := filepath.Join(root, name); r.FS.IsDir(ctx, dir) {
				pl.add(dir)
			}
		}
	}
	return pl.paths
}

// Analyze returns dependencies of u.
// It scans u's sources for directives, and resolves them and u's
// link entries. The result is deterministic for the same filesystem.
// It returns error only when ctx is canceled.
func (r *Resolver) Analyze(ctx context.Context, u *BuildUnit) ([]Dependency, error) {
	ctx = clog.With(ctx, "unit", u.ID)
	ctx, span := trace.NewSpan(ctx, "analyze:"+u.ID)
	a := &analyzer{
		r:        r,
		u:        u,
		includes: r.IncludeSearchPaths(ctx, u),
	}
	a.linkRoots = append([]string{u.Dir, r.Root}, r.LibrarySearchPaths(ctx, u)...)
	a.linkRoots = append(a.linkRoots, r.ThirdPartyRoots...)
	if log.V(1) {
		clog.Infof(ctx, "include search paths %q", a.includes)
		clog.Infof(ctx, "link search roots %q", a.linkRoots)
	}

	sr := scandeps.Scan(ctx, r.FS, u.Sources)
	for _, m := range sr.Includes {
		a.include(ctx, m)
	}
	for _, m := range sr.Imports {
		a.importDirective(ctx, m)
	}
	for _, tok := range u.LinkEntries {
		a.linkEntry(ctx, tok)
	}
	for _, m := range sr.PragmaLibs {
		a.pragmaLib(ctx, m)
	}
	if r.COM != nil {
		for _, m := range sr.ProgIDs {
			info, ok := r.COM.ResolveProgID(ctx, m.Value)
			a.com(ctx, m, info, ok)
		}
		for _, m := range sr.CLSIDs {
			info, ok := r.COM.ResolveCLSID(ctx, m.Value)
			a.com(ctx, m, info, ok)
		}
	}
	span.SetAttr("deps", a.deps.Len())
	err := context.Cause(ctx)
	span.Close(err)
	if err != nil {
		return nil, err
	}
	return a.deps.List(), nil
}

// Identify returns the identifier of a dependency resolved to p.
// It is "<root name>::<first path element>" for p under a third
// party root, the root relative path for p in the source tree,
// or the filename otherwise.
func (r *Resolver) Identify(p string) string {
	for _, root := range r.ThirdPartyRoots {
		rel, ok := RelUnder(p, root)
		if !ok {
			continue
		}
		name := baseName(path.Clean(toSlash(root)))
		first, _, _ := strings.Cut(rel, "/")
		if first == "" {
			return name
		}
		return name + "::" + first
	}
	if rel, ok := RelUnder(p, r.Root); ok && rel != "" {
		return rel
	}
	return baseName(p)
}

// IsInternal reports whether p is in the source tree and out of
// third party roots.
func (r *Resolver) IsInternal(p string) bool {
	if !IsUnder(p, r.Root) {
		return false
	}
	for _, root := range r.ThirdPartyRoots {
		if IsUnder(p, root) {
			return false
		}
	}
	return true
}

// analyzer holds the state of one Analyze call.
type analyzer struct {
	r         *Resolver
	u         *BuildUnit
	includes  []string
	linkRoots []string
	deps      DependencySet
}

func (a *analyzer) firstExisting(ctx context.Context, cands []string) (string, bool) {
	for _, c := range cands {
		if a.r.FS.Exists(ctx, c) {
			return c, true
		}
	}
	return "", false
}

func (a *analyzer) fileDep(kind DepKind, p, src string) Dependency {
	return Dependency{
		ID:           a.r.Identify(p),
		Kind:         kind,
		SourcePath:   src,
		ResolvedPath: p,
		Internal:     a.r.IsInternal(p),
	}
}

func (a *analyzer) include(ctx context.Context, m scandeps.Match) {
	var cands []string
	if !m.System {
		cands = append(cands, joinPath(filepath.Dir(m.File), m.Value))
	}
	for _, dir := range a.includes {
		cands = append(cands, joinPath(dir, m.Value))
	}
	cands = append(cands, joinPath(a.u.Dir, m.Value))
	p, ok := a.firstExisting(ctx, cands)
	if !ok {
		if log.V(1) {
			clog.Infof(ctx, "unresolved include %q in %s", m.Value, m.File)
		}
		return
	}
	a.deps.Add(a.fileDep(HeaderInclude, p, m.File))
}

func (a *analyzer) importDirective(ctx context.Context, m scandeps.Match) {
	p, ok := a.firstExisting(ctx, []string{
		joinPath(filepath.Dir(m.File), m.Value),
		joinPath(a.u.Dir, m.Value),
	})
	if !ok {
		a.deps.Add(Dependency{
			ID:         m.Value,
			Kind:       ImportDirective,
			SourcePath: m.File,
		})
		return
	}
	a.deps.Add(a.fileDep(ImportDirective, p, m.File))
}

func (a *analyzer) linkEntry(ctx context.Context, tok string) {
	if cmakeutil.IsFileShaped(tok) {
		a.libraryFile(ctx, tok, "", a.linkRoots)
		return
	}
	if a.r.Units != nil {
		if t, ok := a.r.Units.LookupUnit(tok, a.u.Dir); ok {
			a.deps.Add(Dependency{ID: t.ID, Kind: StaticLibrary})
			return
		}
	}
	a.deps.Add(Dependency{ID: tok, Kind: StaticLibrary})
}

func (a *analyzer) pragmaLib(ctx context.Context, m scandeps.Match) {
	if !strings.EqualFold(path.Ext(m.Value), ".lib") {
		if log.V(1) {
			clog.Infof(ctx, "ignore pragma lib %q in %s", m.Value, m.File)
		}
		return
	}
	roots := append([]string{filepath.Dir(m.File)}, a.linkRoots...)
	a.libraryFile(ctx, m.Value, m.File, roots)
}

// libraryFile resolves library file tok against roots, trying tok as is
// and its filename on each root.
func (a *analyzer) libraryFile(ctx context.Context, tok, src string, roots []string) {
	base := baseName(tok)
	var cands []string
	for _, root := range roots {
		cands = append(cands, joinPath(root, tok))
		if base != tok {
			cands = append(cands, joinPath(root, base))
		}
	}
	p, ok := a.firstExisting(ctx, cands)
	if !ok {
		if log.V(1) {
			clog.Infof(ctx, "unresolved library %q", tok)
		}
		a.deps.Add(Dependency{
			ID:          strings.TrimSuffix(base, path.Ext(base)),
			Kind:        StaticLibrary,
			SourcePath:  src,
			Description: tok,
		})
		return
	}
	a.deps.Add(a.fileDep(StaticLibrary, p, src))
}

func (a *analyzer) com(ctx context.Context, m scandeps.Match, info COMInfo, ok bool) {
	if !ok {
		if log.V(1) {
			clog.Infof(ctx, "COM class %q in %s is not registered", m.Value, m.File)
		}
		return
	}
	d := Dependency{
		ID:           m.Value,
		Kind:         COM,
		SourcePath:   m.File,
		ResolvedPath: info.ServerPath,
		Description:  info.Description,
		Metadata:     info.Metadata(),
	}
	if d.ResolvedPath != "" {
		d.Internal = a.r.IsInternal(d.ResolvedPath)
	}
	a.deps.Add(d)
}
