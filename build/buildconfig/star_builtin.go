// Copyright 2023 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package buildconfig

import (
	"runtime"

	starjson "go.starlark.net/lib/json"
	"go.starlark.net/starlark"
	"go.starlark.net/starlarkstruct"

	"github.com/williamjshipman/cppsbom/runtimex"
)

// builtinModule returns predeclared values of config files.
//
//	config(...): creates a config. See starConfig.
//	struct(**kwargs), module(name, **kwargs): struct and module.
//	json: json module.
//	path: path module. See starPath.
//	runtime: num_cpu, os and arch of the scanner.
func builtinModule() starlark.StringDict {
	runtimeModule := &starlarkstruct.Module{
		Name: "runtime",
		Members: starlark.StringDict{
			"num_cpu": starlark.MakeInt(runtimex.NumCPU()),
			"os":      starlark.String(runtime.GOOS),
			"arch":    starlark.String(runtime.GOARCH),
		},
	}
	runtimeModule.Freeze()

	return starlark.StringDict{
		"config":  starlark.NewBuiltin("config", starConfig),
		"struct":  starlark.NewBuiltin("struct", starlarkstruct.Make),
		"module":  starlark.NewBuiltin("module", starlarkstruct.MakeModule),
		"json":    starjson.Module,
		"path":    starPath(),
		"runtime": runtimeModule,
	}
}
