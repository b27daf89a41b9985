// Copyright 2023 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package build

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDependencySet(t *testing.T) {
	var s DependencySet
	s.Add(Dependency{ID: "zlib", Kind: StaticLibrary})
	s.Add(Dependency{ID: "ZLIB", Kind: StaticLibrary, Description: "zlib.lib", ResolvedPath: "/x/zlib.lib"})
	s.Add(Dependency{ID: "zlib", Kind: HeaderInclude, ResolvedPath: "/x/zlib.h"})
	s.Add(Dependency{ID: "Zlib", Kind: StaticLibrary, Description: "other"})
	s.Add(Dependency{ID: "foo", Kind: ImportDirective, Description: "first"})
	s.Add(Dependency{ID: "foo", Kind: ImportDirective, Description: "second"})

	want := []Dependency{
		{ID: "zlib", Kind: StaticLibrary, Description: "zlib.lib"},
		{ID: "zlib", Kind: HeaderInclude, ResolvedPath: "/x/zlib.h"},
		{ID: "foo", Kind: ImportDirective, Description: "first"},
	}
	if s.Len() != len(want) {
		t.Errorf("s.Len()=%d; want %d", s.Len(), len(want))
	}
	got := s.List()
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("s.List() diff -want +got:\n%s", diff)
	}

	got[0].ID = "modified"
	if s.List()[0].ID != "zlib" {
		t.Errorf("s.List() shares storage with the set")
	}
}

func TestDepKind_JSON(t *testing.T) {
	d := Dependency{ID: "Excel.Application", Kind: COM, Metadata: "view=64"}
	buf, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("json.Marshal(%v)=_, %v; want nil err", d, err)
	}
	want := `{"id":"Excel.Application","kind":"com","metadata":"view=64"}`
	if string(buf) != want {
		t.Errorf("json.Marshal(%v)=%s; want %s", d, buf, want)
	}
	var got Dependency
	err = json.Unmarshal(buf, &got)
	if err != nil {
		t.Fatalf("json.Unmarshal(%s)=%v; want nil err", buf, err)
	}
	if got != d {
		t.Errorf("json.Unmarshal(%s)=%v; want %v", buf, got, d)
	}

	if _, err := json.Marshal(Dependency{Kind: DepKind(42)}); err == nil {
		t.Errorf("json.Marshal(DepKind(42))=_, nil; want error")
	}
}

func TestCOMInfo_Metadata(t *testing.T) {
	for _, tc := range []struct {
		info COMInfo
		want string
	}{
		{},
		{
			info: COMInfo{CLSID: "{1}", View: "32"},
			want: "clsid={1};view=32",
		},
		{
			info: COMInfo{CLSID: "{1}", ProgID: "A.B", View: "64", ThreadingModel: "Both", ServerPath: "x.dll"},
			want: "clsid={1};progid=A.B;view=64;threading_model=Both",
		},
	} {
		if got := tc.info.Metadata(); got != tc.want {
			t.Errorf("%+v.Metadata()=%q; want %q", tc.info, got, tc.want)
		}
	}
}
