// Copyright 2023 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package buildconfig

import (
	"fmt"

	"go.starlark.net/starlark"
	"go.starlark.net/starlarkstruct"
)

const (
	// third party roots. list of string, root relative or absolute.
	configFieldThirdPartyRoots = "third_party_roots"
	// report internal dependencies. bool
	configFieldIncludeInternal = "include_internal"
	// manifest filename. string
	configFieldManifest = "manifest"
	// number of concurrent analysis. int
	configFieldWorkers = "workers"
)

var configConstructor = starlark.String("config")

// Starlark function `config(third_party_roots, include_internal, manifest, workers)`
// to create a config returned by `init`.
func starConfig(thread *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var roots starlark.Value = starlark.NewList(nil)
	var includeInternal bool
	var manifest string
	var workers int
	err := starlark.UnpackArgs("config", args, kwargs,
		configFieldThirdPartyRoots+"?", &roots,
		configFieldIncludeInternal+"?", &includeInternal,
		configFieldManifest+"?", &manifest,
		configFieldWorkers+"?", &workers)
	if err != nil {
		return starlark.None, err
	}
	if _, err := unpackList(roots); err != nil {
		return starlark.None, fmt.Errorf("config: %s: %w", configFieldThirdPartyRoots, err)
	}
	if workers < 0 {
		return starlark.None, fmt.Errorf("config: %s: got %d; want >= 0", configFieldWorkers, workers)
	}
	return starlarkstruct.FromStringDict(configConstructor, starlark.StringDict{
		configFieldThirdPartyRoots: roots,
		configFieldIncludeInternal: starlark.Bool(includeInternal),
		configFieldManifest:        starlark.String(manifest),
		configFieldWorkers:         starlark.MakeInt(workers),
	}), nil
}
