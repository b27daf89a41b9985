// Copyright 2024 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package cmakeutil

import "testing"

func TestClassify(t *testing.T) {
	for _, tc := range []struct {
		tok      string
		keywords KeywordSet
		want     Token
	}{
		{tok: "foo", want: Token{Value: "foo", Kind: Literal, Shape: PlainName}},
		{tok: "${FOO}", want: Token{Value: "${FOO}", Kind: Variable}},
		{tok: "$<CONFIG>", keywords: Visibility, want: Token{Value: "$<CONFIG>", Kind: Variable}},
		{tok: "PUBLIC", keywords: Visibility, want: Token{Value: "PUBLIC", Kind: Keyword}},
		{tok: "PUBLIC", want: Token{Value: "PUBLIC", Kind: Literal, Shape: PlainName}},
		{tok: "public", keywords: Visibility, want: Token{Value: "public", Kind: Literal, Shape: PlainName}},
		{tok: "debug", keywords: LinkQualifiers, want: Token{Value: "debug", Kind: Keyword}},
		{tok: "libs/libfoo.lib", want: Token{Value: "libs/libfoo.lib", Kind: Literal, Shape: FilePath}},
		{tok: `C:\lib\foo`, want: Token{Value: `C:\lib\foo`, Kind: Literal, Shape: FilePath}},
		{tok: "libbar.LIB", want: Token{Value: "libbar.LIB", Kind: Literal, Shape: FilePath}},
		{tok: "libz.so", want: Token{Value: "libz.so", Kind: Literal, Shape: FilePath}},
		{tok: "Boost::filesystem", want: Token{Value: "Boost::filesystem", Kind: Literal, Shape: PlainName}},
		{tok: "foo.cpp", want: Token{Value: "foo.cpp", Kind: Literal, Shape: PlainName}},
	} {
		got := Classify(tc.tok, tc.keywords)
		if got != tc.want {
			t.Errorf("Classify(%q)=%+v; want %+v", tc.tok, got, tc.want)
		}
	}
}

func TestKeywordSets(t *testing.T) {
	for _, kw := range []string{"PUBLIC", "PRIVATE", "INTERFACE", "SYSTEM", "BEFORE"} {
		if !IncludeOptions[kw] {
			t.Errorf("IncludeOptions[%q]=false; want true", kw)
		}
	}
	if Visibility["SYSTEM"] {
		t.Errorf("Union modified Visibility")
	}
	for _, kw := range []string{"STATIC", "SHARED", "MODULE", "OBJECT", "INTERFACE", "IMPORTED"} {
		if !LibraryTypes[kw] {
			t.Errorf("LibraryTypes[%q]=false; want true", kw)
		}
	}
	for _, kw := range []string{"WIN32", "MACOSX_BUNDLE", "EXCLUDE_FROM_ALL", "IMPORTED"} {
		if !ExecutableOptions[kw] {
			t.Errorf("ExecutableOptions[%q]=false; want true", kw)
		}
	}
}
