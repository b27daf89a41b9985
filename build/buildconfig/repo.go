// Copyright 2023 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package buildconfig

import (
	"context"
	"fmt"
	"path"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"go.starlark.net/starlark"

	"github.com/williamjshipman/cppsbom/build"
)

// fileLoader is a Starlark module loader.
// Modules are loaded from files relative to the loading module,
// and must be in the directory of the config file.
type fileLoader struct {
	ctx         context.Context
	fs          build.FileSystem
	dir         string
	predeclared starlark.StringDict

	// modules loaded. nil value while loading.
	modules map[string]starlark.StringDict
}

// Load loads a Starlark module.
func (l *fileLoader) Load(thread *starlark.Thread, module string) (starlark.StringDict, error) {
	curname := thread.Local("modulename").(string)
	log.Debugf("load %s from %s", module, curname)
	if path.IsAbs(module) || strings.HasPrefix(module, "@") {
		return nil, fmt.Errorf("failed to load %q: only relative path is allowed", module)
	}
	fname := path.Join(path.Dir(curname), module)
	if fname == ".." || strings.HasPrefix(fname, "../") {
		return nil, fmt.Errorf("failed to load %q: out of config dir", module)
	}
	if l.modules == nil {
		l.modules = make(map[string]starlark.StringDict)
	}
	if m, ok := l.modules[fname]; ok {
		if m == nil {
			return nil, fmt.Errorf("failed to load %q: cycle in load graph", module)
		}
		return m, nil
	}
	l.modules[fname] = nil
	t := &starlark.Thread{
		Name: "module " + fname,
		Print: func(thread *starlark.Thread, msg string) {
			log.Infof("thread:%s %s", thread.Name, msg)
		},
		Load: l.Load,
	}
	t.SetLocal("modulename", fname)
	m, err := l.exec(t, fname)
	if err != nil {
		delete(l.modules, fname)
		return nil, err
	}
	l.modules[fname] = m
	return m, nil
}

// exec executes the module fname on thread.
func (l *fileLoader) exec(thread *starlark.Thread, fname string) (starlark.StringDict, error) {
	buf, err := l.fs.ReadFile(l.ctx, filepath.Join(l.dir, filepath.FromSlash(fname)))
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", fname, err)
	}
	return starlark.ExecFile(thread, fname, buf, l.predeclared)
}
