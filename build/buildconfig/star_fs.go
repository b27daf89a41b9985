// Copyright 2023 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package buildconfig

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"go.starlark.net/starlark"
	"go.starlark.net/starlarkstruct"
)

// starFS returns fs module. fname is relative to root, or absolute.
//
//	read(fname): reads a file.
//	is_dir(fname): check if fname is a dir.
//	exists(fname): check if fname is a file.
//	glob_dirs(dir, names): returns existing dir/name for names.
func starFS(ctx context.Context, root string, cache *fscache) starlark.Value {
	receiver := starFSReceiver{
		ctx:   ctx,
		root:  root,
		cache: cache,
	}
	return starlarkstruct.FromStringDict(starlark.String("fs"), map[string]starlark.Value{
		"read":      starlark.NewBuiltin("read", starFSRead).BindReceiver(receiver),
		"is_dir":    starlark.NewBuiltin("is_dir", starFSIsDir).BindReceiver(receiver),
		"exists":    starlark.NewBuiltin("exists", starFSExists).BindReceiver(receiver),
		"glob_dirs": starlark.NewBuiltin("glob_dirs", starFSGlobDirs).BindReceiver(receiver),
	})
}

type starFSReceiver struct {
	ctx   context.Context
	root  string
	cache *fscache
}

func (r starFSReceiver) String() string {
	return fmt.Sprintf("fs[%s]", r.root)
}

func (starFSReceiver) Type() string          { return "fs" }
func (starFSReceiver) Freeze()               {}
func (starFSReceiver) Truth() starlark.Bool  { return starlark.True }
func (starFSReceiver) Hash() (uint32, error) { return 0, errors.New("fs is not hashable") }

func (r starFSReceiver) path(fname string) string {
	fname = filepath.FromSlash(fname)
	if filepath.IsAbs(fname) {
		return fname
	}
	return filepath.Join(r.root, fname)
}

// unpackFSArgs unpacks the receiver and fname argument of fs functions.
func unpackFSArgs(fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starFSReceiver, string, error) {
	r, ok := fn.Receiver().(starFSReceiver)
	if !ok {
		return r, "", fmt.Errorf("unexpected receiver: %v", fn.Receiver())
	}
	var fname string
	err := starlark.UnpackArgs(fn.Name(), args, kwargs, "fname", &fname)
	if err != nil {
		return r, "", err
	}
	return r, r.path(fname), nil
}

// Starlark function `fs.read(fname)` to return contents of fname.
func starFSRead(thread *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	r, fname, err := unpackFSArgs(fn, args, kwargs)
	if err != nil {
		return starlark.None, err
	}
	buf, err := r.cache.read(r.ctx, fname)
	if err != nil {
		return starlark.None, err
	}
	return starlark.Bytes(buf), nil
}

// Starlark function `fs.is_dir(fname)` to check fname is a dir.
func starFSIsDir(thread *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	r, fname, err := unpackFSArgs(fn, args, kwargs)
	if err != nil {
		return starlark.None, err
	}
	return starlark.Bool(r.cache.fs.IsDir(r.ctx, fname)), nil
}

// Starlark function `fs.exists(fname)` to check fname is a file.
func starFSExists(thread *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	r, fname, err := unpackFSArgs(fn, args, kwargs)
	if err != nil {
		return starlark.None, err
	}
	return starlark.Bool(r.cache.fs.Exists(r.ctx, fname)), nil
}

// Starlark function `fs.glob_dirs(dir, names)` to return dir/name that
// are existing directories, in the order of names.
func starFSGlobDirs(thread *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	r, ok := fn.Receiver().(starFSReceiver)
	if !ok {
		return starlark.None, fmt.Errorf("unexpected receiver: %v", fn.Receiver())
	}
	var dir string
	var namesValue starlark.Value
	err := starlark.UnpackArgs("glob_dirs", args, kwargs, "dir", &dir, "names", &namesValue)
	if err != nil {
		return starlark.None, err
	}
	names, err := unpackList(namesValue)
	if err != nil {
		return starlark.None, fmt.Errorf("glob_dirs: names: %w", err)
	}
	var dirs []string
	for _, name := range names {
		p := filepath.ToSlash(filepath.Join(dir, name))
		if r.cache.fs.IsDir(r.ctx, r.path(p)) {
			dirs = append(dirs, p)
		}
	}
	return packList(dirs), nil
}
