// Copyright 2024 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

//go:build !windows

package comutil

import "github.com/williamjshipman/cppsbom/build"

// New returns a COM resolver of the platform.
func New() build.COMResolver {
	return None{}
}
