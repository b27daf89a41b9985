// Copyright 2023 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package buildconfig

import (
	"testing"

	"go.starlark.net/starlark"
)

func TestStarPath(t *testing.T) {
	predeclared := starlark.StringDict{"path": starPath()}
	for _, tc := range []struct {
		expr string
		want starlark.Value
	}{
		{expr: `path.base("a/b/c.h")`, want: starlark.String("c.h")},
		{expr: `path.dir("a/b/c.h")`, want: starlark.String("a/b")},
		{expr: `path.join("a", "b", "../c")`, want: starlark.String("a/c")},
		{expr: `path.rel("a/b", "a/c/d")`, want: starlark.String("../c/d")},
		{expr: `path.normalize("Third_Party/ZLib/")`, want: starlark.String("third_party/zlib")},
		{expr: `path.is_under("/src/Third_Party/zlib/zlib.h", "/src/third_party")`, want: starlark.True},
		{expr: `path.is_under("/src/third_party_x", "/src/third_party")`, want: starlark.False},
		{expr: `path.isabs("a/b")`, want: starlark.False},
	} {
		thread := &starlark.Thread{Name: "test"}
		got, err := starlark.Eval(thread, "test.star", tc.expr, predeclared)
		if err != nil {
			t.Errorf("Eval(%q)=_, %v; want nil err", tc.expr, err)
			continue
		}
		if got != tc.want {
			t.Errorf("Eval(%q)=%v; want %v", tc.expr, got, tc.want)
		}
	}
}
