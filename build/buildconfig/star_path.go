// Copyright 2023 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package buildconfig

import (
	"fmt"
	"path/filepath"

	"go.starlark.net/starlark"
	"go.starlark.net/starlarkstruct"

	"github.com/williamjshipman/cppsbom/build"
)

// starPath returns path module. Results use `/` as separator.
//
//	base(fname)
//	dir(fname)
//	join(...)
//	rel(basepath, targetpath)
//	isabs(fname)
//	normalize(fname): lower-cased, `/`-separated path used to compare paths.
//	is_under(fname, dir)
func starPath() starlark.Value {
	pathModule := &starlarkstruct.Module{
		Name: "path",
		Members: starlark.StringDict{
			"base":      pathFunc("base", filepath.Base),
			"dir":       pathFunc("dir", filepath.Dir),
			"normalize": pathFunc("normalize", build.NormalizePath),
			"join":      starlark.NewBuiltin("join", starPathJoin),
			"rel":       starlark.NewBuiltin("rel", starPathRel),
			"isabs":     starlark.NewBuiltin("isabs", starPathIsAbs),
			"is_under":  starlark.NewBuiltin("is_under", starPathIsUnder),
		},
	}
	pathModule.Freeze()
	return pathModule
}

// pathFunc returns Starlark function `name(fname)` to return f(fname).
func pathFunc(name string, f func(string) string) *starlark.Builtin {
	return starlark.NewBuiltin(name, func(thread *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		var fname string
		err := starlark.UnpackArgs(name, args, kwargs, "fname", &fname)
		if err != nil {
			return starlark.None, err
		}
		return starlark.String(filepath.ToSlash(f(fname))), nil
	})
}

// Starlark function `path.join(...)` to return joined path name.
func starPathJoin(thread *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var elems []string
	for _, v := range args {
		s, ok := starlark.AsString(v)
		if !ok {
			return starlark.None, fmt.Errorf("join: for parameter elems: got %s, want string", v.Type())
		}
		elems = append(elems, s)
	}
	return starlark.String(filepath.ToSlash(filepath.Join(elems...))), nil
}

// Starlark function `path.rel(basepath, targetpath)` to return relative path of targetpath from basepath.
func starPathRel(thread *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var basepath, targetpath string
	err := starlark.UnpackArgs("rel", args, kwargs, "basepath", &basepath, "targetpath", &targetpath)
	if err != nil {
		return starlark.None, err
	}
	rel, err := filepath.Rel(basepath, targetpath)
	if err != nil {
		return starlark.None, err
	}
	return starlark.String(filepath.ToSlash(rel)), nil
}

// Starlark function `path.isabs(fname)` to return true if fname is absolute path.
func starPathIsAbs(thread *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var fname string
	err := starlark.UnpackArgs("isabs", args, kwargs, "fname", &fname)
	if err != nil {
		return starlark.None, err
	}
	return starlark.Bool(filepath.IsAbs(fname)), nil
}

// Starlark function `path.is_under(fname, dir)` to return true if fname is dir or under dir,
// ignoring case and separators.
func starPathIsUnder(thread *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var fname, dir string
	err := starlark.UnpackArgs("is_under", args, kwargs, "fname", &fname, "dir", &dir)
	if err != nil {
		return starlark.None, err
	}
	return starlark.Bool(build.IsUnder(fname, dir)), nil
}
