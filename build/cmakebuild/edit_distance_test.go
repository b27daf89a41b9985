// Copyright 2024 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package cmakebuild

import "testing"

func TestEditDistance(t *testing.T) {
	for _, tc := range []struct {
		s1, s2 string
		want   int
	}{
		{s1: "", s2: "foo", want: 3},
		{s1: "foo", s2: "", want: 3},
		{s1: "", s2: "", want: 0},
		{s1: "mylib", s2: "mylib", want: 0},
		{s1: "mylib", s2: "mylb", want: 1},
		{s1: "core_utils", s2: "core_util", want: 1},
		{s1: "kitten", s2: "sitting", want: 3},
	} {
		got := editDistance(tc.s1, tc.s2, 0)
		if got != tc.want {
			t.Errorf("editDistance(%q, %q, 0)=%d; want=%d", tc.s1, tc.s2, got, tc.want)
		}
	}
}

func TestEditDistance_Max(t *testing.T) {
	const max = 2
	got := editDistance("network_service", "base", max)
	if got != max+1 {
		t.Errorf("editDistance(_, _, %d)=%d; want=%d", max, got, max+1)
	}
	if got := editDistance("utl", "util", max); got != 1 {
		t.Errorf("editDistance(utl, util, %d)=%d; want=1", max, got)
	}
}
