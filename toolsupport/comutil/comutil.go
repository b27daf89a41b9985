// Copyright 2024 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package comutil provides COM class resolvers.
package comutil

import (
	"context"

	"github.com/williamjshipman/cppsbom/build"
)

// None is a COM resolver that resolves nothing.
// It is used on platforms without COM registry.
type None struct{}

var _ build.COMResolver = None{}

// ResolveProgID always returns false.
func (None) ResolveProgID(context.Context, string) (build.COMInfo, bool) {
	return build.COMInfo{}, false
}

// ResolveCLSID always returns false.
func (None) ResolveCLSID(context.Context, string) (build.COMInfo, bool) {
	return build.COMInfo{}, false
}
