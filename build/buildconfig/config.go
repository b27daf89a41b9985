// Copyright 2023 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package buildconfig provides the scan config written in Starlark.
//
// A config file defines `init(ctx)`, which returns `config(...)`:
//
//	def init(ctx):
//	    ctx.actions.metadata("team", "platform")
//	    return config(
//	        third_party_roots = ["third_party/zlib", "/opt/boost"],
//	        include_internal = False,
//	        manifest = "CMakeLists.txt",
//	        workers = 8,
//	    )
//
// ctx has
//
//	actions.metadata(key, value): sets key=value in metadata.
//	metadata: dict of metadata.
//	flags: dict of command line flags.
//	root: root directory of the scan.
//	fs: filesystem access under root. See starFS.
package buildconfig

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/charmbracelet/log"
	"go.starlark.net/starlark"
	"go.starlark.net/starlarkstruct"

	"github.com/williamjshipman/cppsbom/build"
	"github.com/williamjshipman/cppsbom/build/metadata"
)

const (
	// DefaultFilename is the config filename in the root directory.
	DefaultFilename = ".cppsbom.star"

	configEntryPoint = "init"
)

// Config is a scan config.
type Config struct {
	// ThirdPartyRoots are absolute paths of third party roots.
	ThirdPartyRoots []string

	// IncludeInternal is true to report internal dependencies.
	IncludeInternal bool

	// Manifest is the CMake manifest filename. Empty for default.
	Manifest string

	// Workers is the number of units analyzed concurrently.
	// 0 for default.
	Workers int

	// Metadata contains key-value metadata set by the config.
	Metadata metadata.Metadata
}

// InitError is an error of the entry point.
type InitError struct {
	fname string
	err   *starlark.EvalError
}

func (e InitError) Error() string {
	return fmt.Sprintf("failed to run %s in %s: %v", configEntryPoint, e.fname, e.err)
}

// Backtrace returns Starlark backtrace of the error.
func (e InitError) Backtrace() string {
	return e.err.Backtrace()
}

func (e InitError) Unwrap() error {
	return e.err
}

// Load loads config file fname and runs its `init` for root.
// flags are passed to `init` as ctx.flags.
func Load(ctx context.Context, fsys build.FileSystem, fname, root string, flags map[string]string) (*Config, error) {
	loader := &fileLoader{
		ctx:         ctx,
		fs:          fsys,
		dir:         filepath.Dir(fname),
		predeclared: builtinModule(),
	}
	thread := &starlark.Thread{
		Name: "load",
		Print: func(thread *starlark.Thread, msg string) {
			log.Infof("thread:%s %s", thread.Name, msg)
		},
		Load: loader.Load,
	}
	thread.SetLocal("modulename", filepath.Base(fname))
	globals, err := loader.exec(thread, filepath.Base(fname))
	if err != nil {
		log.Warnf("thread:%s failed to exec file %s: %v", thread.Name, fname, err)
		var eerr *starlark.EvalError
		if errors.As(err, &eerr) {
			log.Warnf("stacktrace:\n%s", eerr.Backtrace())
		}
		return nil, err
	}
	fun, ok := globals[configEntryPoint]
	if !ok {
		return nil, fmt.Errorf("%s is not defined in %s", configEntryPoint, fname)
	}
	if _, ok := fun.(starlark.Callable); !ok {
		return nil, fmt.Errorf("%s %s is not callable in %s", configEntryPoint, fun.Type(), fname)
	}

	md := metadata.New()
	initThread := &starlark.Thread{
		Name: configEntryPoint,
		Print: func(thread *starlark.Thread, msg string) {
			log.Infof("thread:%s %s", thread.Name, msg)
		},
		Load: func(*starlark.Thread, string) (starlark.StringDict, error) {
			return nil, fmt.Errorf("load is not allowed in %s", configEntryPoint)
		},
	}
	hctx := starlarkstruct.FromStringDict(starlark.String("ctx"), map[string]starlark.Value{
		"actions":  starInitActions(md),
		"metadata": starMetadata(md),
		"flags":    starFlags(flags),
		"root":     starlark.String(filepath.ToSlash(root)),
		"fs":       starFS(ctx, root, newFSCache(fsys)),
	})
	ret, err := starlark.Call(initThread, fun, []starlark.Value{hctx}, nil)
	if err != nil {
		log.Warnf("thread:%s failed to run %s: %v", initThread.Name, configEntryPoint, err)
		var eerr *starlark.EvalError
		if errors.As(err, &eerr) {
			log.Warnf("stacktrace:\n%s", eerr.Backtrace())
			return nil, InitError{fname: fname, err: eerr}
		}
		return nil, fmt.Errorf("failed to run %s: %w", configEntryPoint, err)
	}
	cfg, err := unpackConfig(ret, root)
	if err != nil {
		return nil, fmt.Errorf("%s in %s returned bad config: %w", configEntryPoint, fname, err)
	}
	cfg.Metadata = md
	log.Infof("config: third_party_roots=%q include_internal=%t manifest=%q workers=%d", cfg.ThirdPartyRoots, cfg.IncludeInternal, cfg.Manifest, cfg.Workers)
	return cfg, nil
}

// unpackConfig unpacks a value returned by `config(...)`.
func unpackConfig(v starlark.Value, root string) (*Config, error) {
	s, ok := v.(*starlarkstruct.Struct)
	if !ok || s.Constructor() != configConstructor {
		return nil, fmt.Errorf("got %s; want config", v.Type())
	}
	cfg := &Config{}
	roots, err := s.Attr(configFieldThirdPartyRoots)
	if err != nil {
		return nil, err
	}
	list, err := unpackList(roots)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", configFieldThirdPartyRoots, err)
	}
	cfg.ThirdPartyRoots = absPaths(root, list)
	if v, err := s.Attr(configFieldIncludeInternal); err == nil {
		cfg.IncludeInternal = bool(v.Truth())
	}
	if v, err := s.Attr(configFieldManifest); err == nil {
		cfg.Manifest, _ = starlark.AsString(v)
	}
	if v, err := s.Attr(configFieldWorkers); err == nil {
		n, err := starlark.AsInt32(v)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", configFieldWorkers, err)
		}
		cfg.Workers = n
	}
	return cfg, nil
}
