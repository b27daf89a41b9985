// Copyright 2024 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package cmakeparse

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/williamjshipman/cppsbom/toolsupport/cmakeutil"
)

func TestRun(t *testing.T) {
	ctx := context.Background()
	fname := filepath.Join(t.TempDir(), "CMakeLists.txt")
	err := os.WriteFile(fname, []byte(`project(Demo)
add_library(foo STATIC foo.cpp ${EXTRA})
target_link_libraries(foo PRIVATE debug libbar.lib)
`), 0644)
	if err != nil {
		t.Fatal(err)
	}
	for _, tc := range []struct {
		name     string
		classify bool
		want     string
	}{
		{
			name: "plain",
			want: fname + `:1: project("Demo")
` + fname + `:2: add_library("foo" "STATIC" "foo.cpp" "${EXTRA}")
` + fname + `:3: target_link_libraries("foo" "PRIVATE" "debug" "libbar.lib")
`,
		},
		{
			name:     "classify",
			classify: true,
			want: fname + `:1: project("Demo":name)
` + fname + `:2: add_library("foo":name "STATIC":keyword "foo.cpp":name "${EXTRA}":variable)
` + fname + `:3: target_link_libraries("foo":name "PRIVATE":keyword "debug":keyword "libbar.lib":path)
`,
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			c := &run{classify: tc.classify}
			var buf bytes.Buffer
			err := c.run(ctx, &buf, []string{fname})
			if err != nil {
				t.Fatalf("run=%v; want nil err", err)
			}
			if diff := cmp.Diff(tc.want, buf.String()); diff != "" {
				t.Errorf("output diff -want +got:\n%s", diff)
			}
		})
	}
}

func TestRun_Errors(t *testing.T) {
	ctx := context.Background()
	c := &run{}
	err := c.run(ctx, &bytes.Buffer{}, nil)
	if !errors.Is(err, flag.ErrHelp) {
		t.Errorf("run(no files)=%v; want %v", err, flag.ErrHelp)
	}

	fname := filepath.Join(t.TempDir(), "CMakeLists.txt")
	err = os.WriteFile(fname, []byte("set(X 1)\nadd_library(foo\n"), 0644)
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	err = c.run(ctx, &buf, []string{fname})
	var perr *cmakeutil.ParseError
	if !errors.As(err, &perr) {
		t.Errorf("run=%v; want ParseError", err)
	}
	if got, want := buf.String(), fname+":1: set(\"X\" \"1\")\n"; got != want {
		t.Errorf("output=%q; want %q", got, want)
	}
}
