// Copyright 2024 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package cmakebuild

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	log "github.com/golang/glog"

	"github.com/williamjshipman/cppsbom/build"
	"github.com/williamjshipman/cppsbom/o11y/clog"
	"github.com/williamjshipman/cppsbom/o11y/trace"
	"github.com/williamjshipman/cppsbom/toolsupport/cmakeutil"
)

// DefaultManifest is the default manifest filename.
const DefaultManifest = "CMakeLists.txt"

// Option is an option of Load.
type Option struct {
	// Manifest is a manifest filename in each directory.
	// DefaultManifest if empty.
	Manifest string
}

// work is an entry of the load queue.
type work struct {
	// file is a manifest file or an included file.
	file string
	// dir is the directory where commands of file run.
	dir    string
	isRoot bool
}

type loader struct {
	fs       build.FileSystem
	manifest string
	g        *Graph

	queue   []work
	visited map[string]bool

	// includes is the stack of files being loaded, keyed by
	// normalized path, with the manifest at the bottom.
	includes []string
	// included records (file, dir) pairs already included.
	included map[string]bool
}

// Load loads the CMake project in root and returns its graph.
// It returns *FatalError if the root manifest can't be parsed or
// targets have duplicate identifiers. Other problems are recorded
// in Graph.Diagnostics.
func Load(ctx context.Context, fsys build.FileSystem, root string, opt Option) (*Graph, error) {
	ctx, span := trace.NewSpan(ctx, "load")
	manifest := opt.Manifest
	if manifest == "" {
		manifest = DefaultManifest
	}
	root = filepath.Clean(root)
	l := &loader{
		fs:       fsys,
		manifest: manifest,
		g:        newGraph(root),
		visited:  make(map[string]bool),
		included: make(map[string]bool),
	}
	l.queue = append(l.queue, work{
		file:   filepath.Join(root, manifest),
		dir:    root,
		isRoot: true,
	})
	err := l.run(ctx)
	span.SetAttr("units", l.g.arena.len())
	span.SetAttr("files", len(l.g.files))
	span.Close(err)
	if err != nil {
		return nil, err
	}
	return l.g, nil
}

func (l *loader) run(ctx context.Context) error {
	for len(l.queue) > 0 {
		if err := context.Cause(ctx); err != nil {
			return err
		}
		w := l.queue[0]
		l.queue = l.queue[1:]
		key := build.NormalizePath(w.file)
		if l.visited[key] {
			if log.V(1) {
				clog.Infof(ctx, "already visited %s", w.file)
			}
			continue
		}
		l.visited[key] = true
		l.includes = append(l.includes[:0], key)
		err := l.load(clog.With(ctx, "file", w.file), w)
		if err != nil {
			return err
		}
	}
	return nil
}

func (l *loader) load(ctx context.Context, w work) error {
	buf, err := l.fs.ReadFile(ctx, w.file)
	if err != nil {
		if w.isRoot {
			return &FatalError{File: w.file, Err: fmt.Errorf("%w: %w", ErrRootParse, err)}
		}
		l.diag(ctx, w.file, 0, "failed to read: %v", err)
		return nil
	}
	l.g.files = append(l.g.files, w.file)
	cmds, err := cmakeutil.Parse(w.dir, buf)
	if err != nil {
		var perr *cmakeutil.ParseError
		line := 0
		if errors.As(err, &perr) {
			line = perr.Line
		}
		if w.isRoot {
			return &FatalError{File: w.file, Line: line, Err: fmt.Errorf("%w: %w", ErrRootParse, err)}
		}
		l.diag(ctx, w.file, line, "parse error, %d commands before the error are used: %v", len(cmds), err)
	}
	if log.V(1) {
		clog.Infof(ctx, "%d commands in %s", len(cmds), w.file)
	}
	for _, cmd := range cmds {
		err := l.apply(ctx, w, cmd)
		if err != nil {
			return err
		}
	}
	return nil
}

// apply applies cmd. It returns only fatal errors.
func (l *loader) apply(ctx context.Context, w work, cmd cmakeutil.Command) error {
	switch strings.ToLower(cmd.Name) {
	case "add_subdirectory":
		l.addSubdirectory(ctx, w, cmd)
	case "include":
		return l.include(ctx, w, cmd)
	case "project":
		if w.isRoot && l.g.Project == "" && len(cmd.Args) > 0 && cmakeutil.IsLiteral(cmd.Args[0]) {
			l.g.Project = cmd.Args[0]
		}
	case "add_library":
		return l.addTarget(ctx, w, cmd, cmakeutil.LibraryTypes, true)
	case "add_executable":
		return l.addTarget(ctx, w, cmd, cmakeutil.ExecutableOptions, false)
	case "target_sources":
		l.targetEntries(ctx, w, cmd, cmakeutil.Visibility, func(u *build.BuildUnit, tok string) {
			u.AddSource(absPath(cmd.Dir, tok))
		})
	case "target_include_directories":
		l.targetEntries(ctx, w, cmd, cmakeutil.IncludeOptions, func(u *build.BuildUnit, tok string) {
			u.AddIncludeDir(absPath(cmd.Dir, tok))
		})
	case "target_link_libraries":
		l.targetEntries(ctx, w, cmd, cmakeutil.LinkQualifiers, func(u *build.BuildUnit, tok string) {
			u.AddLinkEntry(tok)
		})
	}
	return nil
}

func (l *loader) addSubdirectory(ctx context.Context, w work, cmd cmakeutil.Command) {
	if len(cmd.Args) == 0 {
		l.diag(ctx, w.file, cmd.Line, "add_subdirectory: no directory")
		return
	}
	arg := cmd.Args[0]
	if !cmakeutil.IsLiteral(arg) {
		l.diag(ctx, w.file, cmd.Line, "add_subdirectory: ignore non-literal directory %q", arg)
		return
	}
	dir := absPath(cmd.Dir, arg)
	fname := filepath.Join(dir, l.manifest)
	if !l.fs.Exists(ctx, fname) {
		l.diag(ctx, w.file, cmd.Line, "add_subdirectory: no %s in %s", l.manifest, dir)
		return
	}
	l.queue = append(l.queue, work{file: fname, dir: dir})
}

// include loads the included file in place, so its commands are
// applied before the rest of the includer's commands.
// A file is included at most once per directory.
func (l *loader) include(ctx context.Context, w work, cmd cmakeutil.Command) error {
	if len(cmd.Args) == 0 {
		return nil
	}
	arg := cmd.Args[0]
	if !cmakeutil.IsLiteral(arg) {
		l.diag(ctx, w.file, cmd.Line, "include: ignore non-literal file %q", arg)
		return nil
	}
	if !strings.ContainsAny(arg, `/\`) && !strings.HasSuffix(strings.ToLower(arg), ".cmake") {
		// CMake module, e.g. include(GNUInstallDirs).
		if log.V(1) {
			clog.Infof(ctx, "include: ignore module %s", arg)
		}
		return nil
	}
	fname := absPath(cmd.Dir, arg)
	if !l.fs.Exists(ctx, fname) {
		if slices.Contains(cmd.Args[1:], "OPTIONAL") {
			return nil
		}
		l.diag(ctx, w.file, cmd.Line, "include: no file %s", fname)
		return nil
	}
	key := build.NormalizePath(fname)
	if slices.Contains(l.includes, key) {
		l.diag(ctx, w.file, cmd.Line, "include: recursive include of %s", fname)
		return nil
	}
	once := key + "\x00" + build.NormalizePath(w.dir)
	if l.included[once] {
		if log.V(1) {
			clog.Infof(ctx, "include: already included %s in %s", fname, w.dir)
		}
		return nil
	}
	l.included[once] = true
	l.includes = append(l.includes, key)
	defer func() {
		l.includes = l.includes[:len(l.includes)-1]
	}()
	return l.load(clog.With(ctx, "include", fname), work{file: fname, dir: w.dir})
}

// addTarget handles add_library and add_executable.
func (l *loader) addTarget(ctx context.Context, w work, cmd cmakeutil.Command, options cmakeutil.KeywordSet, allowAlias bool) error {
	cmdName := strings.ToLower(cmd.Name)
	if len(cmd.Args) == 0 {
		l.diag(ctx, w.file, cmd.Line, "%s: no target name", cmdName)
		return nil
	}
	name := cmd.Args[0]
	if !cmakeutil.IsLiteral(name) {
		l.diag(ctx, w.file, cmd.Line, "%s: ignore non-literal target name %q", cmdName, name)
		return nil
	}
	args := cmd.Args[1:]
	if allowAlias && len(args) > 0 && args[0] == "ALIAS" {
		if len(args) >= 2 && cmakeutil.IsLiteral(args[1]) {
			l.g.aliases[name] = args[1]
			return nil
		}
		// Not an alias; define name with the remaining arguments.
		args = args[1:]
	}
	for len(args) > 0 && options[args[0]] {
		args = args[1:]
	}
	u := l.g.arena.new()
	u.Name = name
	u.Dir = cmd.Dir
	u.ID = unitID(l.g.Root, cmd.Dir, name)
	for _, arg := range args {
		if !cmakeutil.IsLiteral(arg) {
			l.diag(ctx, w.file, cmd.Line, "%s %s: ignore non-literal source %q", cmdName, name, arg)
			continue
		}
		u.AddSource(absPath(cmd.Dir, arg))
	}
	def := fmt.Sprintf("%s:%d", w.file, cmd.Line)
	if prev, ok := l.g.defs[u.ID]; ok {
		return &FatalError{
			File: w.file,
			Line: cmd.Line,
			Err:  fmt.Errorf("%w: %q already defined at %s", ErrDuplicateID, u.ID, prev),
		}
	}
	l.g.defs[u.ID] = def
	l.g.byID[u.ID] = u
	l.g.byName[name] = append(l.g.byName[name], u)
	l.g.units = append(l.g.units, u)
	if log.V(1) {
		clog.Infof(ctx, "%s: %s in %s", cmdName, u.ID, u.Dir)
	}
	return nil
}

// targetEntries handles target_* commands. add is called for each
// literal entry that is not in keywords.
func (l *loader) targetEntries(ctx context.Context, w work, cmd cmakeutil.Command, keywords cmakeutil.KeywordSet, add func(*build.BuildUnit, string)) {
	cmdName := strings.ToLower(cmd.Name)
	if len(cmd.Args) == 0 {
		l.diag(ctx, w.file, cmd.Line, "%s: no target name", cmdName)
		return
	}
	name := cmd.Args[0]
	if !cmakeutil.IsLiteral(name) {
		l.diag(ctx, w.file, cmd.Line, "%s: ignore non-literal target name %q", cmdName, name)
		return
	}
	r := l.g.Lookup(name, cmd.Dir)
	switch r.Status {
	case Unique:
	case Ambiguous:
		l.diag(ctx, w.file, cmd.Line, "%s: ambiguous target %q", cmdName, name)
		return
	default:
		msg := fmt.Sprintf("%s: unknown target %q", cmdName, name)
		if hint := l.g.spellcheck(name); hint != "" {
			msg += fmt.Sprintf(", did you mean %q?", hint)
		}
		l.diag(ctx, w.file, cmd.Line, "%s", msg)
		return
	}
	for _, arg := range cmd.Args[1:] {
		tok := cmakeutil.Classify(arg, keywords)
		switch tok.Kind {
		case cmakeutil.Keyword:
		case cmakeutil.Variable:
			l.diag(ctx, w.file, cmd.Line, "%s %s: ignore non-literal entry %q", cmdName, name, arg)
		default:
			add(r.Unit, tok.Value)
		}
	}
}

func (l *loader) diag(ctx context.Context, fname string, line int, format string, args ...any) {
	d := Diagnostic{
		File:    fname,
		Line:    line,
		Message: fmt.Sprintf(format, args...),
	}
	clog.Warningf(ctx, "%s", d)
	l.g.diags = append(l.g.diags, d)
}

// absPath returns absolute path of p in dir. p may use either separator.
func absPath(dir, p string) string {
	p = filepath.FromSlash(strings.ReplaceAll(p, `\`, "/"))
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(dir, p)
}

// unitID returns the identifier of a unit name defined in dir.
// It is the lower-cased name for root, or the lower-cased directory
// relative to root and the name joined by "::".
func unitID(root, dir, name string) string {
	rel, ok := build.RelUnder(dir, root)
	if !ok {
		r, err := filepath.Rel(root, dir)
		if err != nil {
			r = dir
		}
		rel = r
	}
	if rel == "" {
		return strings.ToLower(name)
	}
	return build.NormalizePath(rel) + "::" + strings.ToLower(name)
}
