// Copyright 2023 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package build

import "testing"

func TestNormalizePath(t *testing.T) {
	for _, tc := range []struct {
		p    string
		want string
	}{
		{p: "/src/Foo/", want: "/src/foo"},
		{p: `C:\Src\Foo\`, want: "c:/src/foo"},
		{p: "/src/./foo/../bar", want: "/src/bar"},
		{p: "/", want: "/"},
		{p: "Sub/Nested", want: "sub/nested"},
	} {
		if got := NormalizePath(tc.p); got != tc.want {
			t.Errorf("NormalizePath(%q)=%q; want %q", tc.p, got, tc.want)
		}
	}
}

func TestRelUnder(t *testing.T) {
	for _, tc := range []struct {
		p, dir string
		want   string
		wantOK bool
	}{
		{p: "/src/Foo/bar.h", dir: "/src", want: "Foo/bar.h", wantOK: true},
		{p: "/SRC/foo/bar.h", dir: "/src/", want: "foo/bar.h", wantOK: true},
		{p: "/src", dir: "/src", want: "", wantOK: true},
		{p: "/srcx/foo.h", dir: "/src"},
		{p: "/foo.h", dir: "/src"},
		{p: "/foo.h", dir: "/", want: "foo.h", wantOK: true},
		{p: `C:\Proj\Third_Party\zlib\zlib.h`, dir: `c:\proj\third_party`, want: "zlib/zlib.h", wantOK: true},
	} {
		got, ok := RelUnder(tc.p, tc.dir)
		if got != tc.want || ok != tc.wantOK {
			t.Errorf("RelUnder(%q, %q)=%q, %t; want %q, %t", tc.p, tc.dir, got, ok, tc.want, tc.wantOK)
		}
		if IsUnder(tc.p, tc.dir) != tc.wantOK {
			t.Errorf("IsUnder(%q, %q)=%t; want %t", tc.p, tc.dir, !tc.wantOK, tc.wantOK)
		}
	}
}

func TestPathList(t *testing.T) {
	var pl pathList
	for _, p := range []string{"/src", "/src/Include", "/SRC/", "/src/include", "/src/lib"} {
		pl.add(p)
	}
	want := []string{"/src", "/src/Include", "/src/lib"}
	if len(pl.paths) != len(want) {
		t.Fatalf("pl.paths=%q; want %q", pl.paths, want)
	}
	for i := range want {
		if pl.paths[i] != want[i] {
			t.Errorf("pl.paths[%d]=%q; want %q", i, pl.paths[i], want[i])
		}
	}
}
