// Copyright 2024 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package version

import (
	"bytes"
	"runtime/debug"
	"testing"
)

func TestPrintBuildInfo(t *testing.T) {
	buildInfo := &debug.BuildInfo{
		GoVersion: "go1.24.2",
		Deps: []*debug.Module{
			{Path: "go.starlark.net", Version: "v0.0.0-20250417143717-f57e51f710eb"},
		},
		Settings: []debug.BuildSetting{
			{Key: "GOOS", Value: "linux"},
			{Key: "vcs.revision", Value: "0123456789abcdef"},
			{Key: "vcs.modified", Value: "false"},
		},
	}
	for _, tc := range []struct {
		deps bool
		want string
	}{
		{
			want: "go\tgo1.24.2\nbuild\tvcs.revision=0123456789abcdef\nbuild\tvcs.modified=false\n",
		},
		{
			deps: true,
			want: "go\tgo1.24.2\nbuild\tvcs.revision=0123456789abcdef\nbuild\tvcs.modified=false\ndep\tgo.starlark.net\tv0.0.0-20250417143717-f57e51f710eb\n",
		},
	} {
		var buf bytes.Buffer
		printBuildInfo(&buf, buildInfo, tc.deps)
		if got := buf.String(); got != tc.want {
			t.Errorf("printBuildInfo(deps=%t)=%q; want %q", tc.deps, got, tc.want)
		}
	}
}
