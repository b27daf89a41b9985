// Copyright 2024 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package scan

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/williamjshipman/cppsbom/build"
	"github.com/williamjshipman/cppsbom/build/buildconfig"
	"github.com/williamjshipman/cppsbom/build/cmakebuild"
)

func setupFiles(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for k, v := range files {
		fname := filepath.Join(dir, filepath.FromSlash(k))
		err := os.MkdirAll(filepath.Dir(fname), 0755)
		if err != nil {
			t.Fatal(err)
		}
		err = os.WriteFile(fname, []byte(v), 0644)
		if err != nil {
			t.Fatal(err)
		}
	}
}

type testReport struct {
	Project     string                  `json:"project"`
	Root        string                  `json:"root"`
	ScanID      string                  `json:"scan_id"`
	Metadata    map[string]string       `json:"metadata"`
	Units       []unitReport            `json:"units"`
	Diagnostics []cmakebuild.Diagnostic `json:"diagnostics"`
}

func readReport(t *testing.T, fname string) testReport {
	t.Helper()
	buf, err := os.ReadFile(fname)
	if err != nil {
		t.Fatal(err)
	}
	var rep testReport
	err = json.Unmarshal(buf, &rep)
	if err != nil {
		t.Fatalf("json.Unmarshal(%s)=%v", buf, err)
	}
	return rep
}

var demoProject = map[string]string{
	"CMakeLists.txt": `project(Demo)
add_library(core STATIC src/core.cpp)
target_include_directories(core PUBLIC include)
target_link_libraries(core PRIVATE ws2_32)
add_subdirectory(app)
`,
	"src/core.cpp":            "#include \"core.h\"\n#include <zlib.h>\n",
	"include/core.h":          "",
	"third_party/zlib/zlib.h": "",
	"app/CMakeLists.txt":      "add_executable(app main.cpp)\ntarget_link_libraries(app core ${EXTRA_LIBS})\n",
	"app/main.cpp":            "#include <zlib.h>\n",
}

func TestRun(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	setupFiles(t, dir, demoProject)
	out := filepath.Join(t.TempDir(), "deps.json")

	c := &run{dir: dir, output: out}
	c.opt.ThirdPartyRoots = buildconfig.StringsFlag{"third_party/zlib"}
	err := c.run(ctx)
	if err != nil {
		t.Fatalf("run=%v; want nil err", err)
	}
	rep := readReport(t, out)
	if rep.Project != "Demo" || rep.Root != dir {
		t.Errorf("project=%q root=%q; want %q %q", rep.Project, rep.Root, "Demo", dir)
	}
	if rep.ScanID == "" {
		t.Errorf("scan_id is empty")
	}
	if rep.Metadata["goos"] == "" {
		t.Errorf("metadata=%v; want goos", rep.Metadata)
	}
	zlibH := filepath.Join(dir, "third_party", "zlib", "zlib.h")
	want := []unitReport{
		{
			ID:   "core",
			Name: "core",
			Dir:  dir,
			Dependencies: []build.Dependency{
				{
					ID:           "zlib::zlib.h",
					Kind:         build.HeaderInclude,
					SourcePath:   filepath.Join(dir, "src", "core.cpp"),
					ResolvedPath: zlibH,
				},
				{ID: "ws2_32", Kind: build.StaticLibrary},
			},
		},
		{
			ID:   "app::app",
			Name: "app",
			Dir:  filepath.Join(dir, "app"),
			Dependencies: []build.Dependency{
				{
					ID:           "zlib::zlib.h",
					Kind:         build.HeaderInclude,
					SourcePath:   filepath.Join(dir, "app", "main.cpp"),
					ResolvedPath: zlibH,
				},
				{ID: "core", Kind: build.StaticLibrary},
			},
		},
	}
	if diff := cmp.Diff(want, rep.Units); diff != "" {
		t.Errorf("units diff -want +got:\n%s", diff)
	}
	if len(rep.Diagnostics) != 1 {
		t.Errorf("diagnostics=%v; want 1 for ${EXTRA_LIBS}", rep.Diagnostics)
	}
}

func TestRun_IncludeInternal(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	setupFiles(t, dir, demoProject)
	out := filepath.Join(t.TempDir(), "deps.json")

	c := &run{dir: dir, output: out}
	c.opt.IncludeInternal = true
	err := c.run(ctx)
	if err != nil {
		t.Fatalf("run=%v; want nil err", err)
	}
	rep := readReport(t, out)
	if len(rep.Units) == 0 {
		t.Fatalf("units=%v; want core", rep.Units)
	}
	want := build.Dependency{
		ID:           "include/core.h",
		Kind:         build.HeaderInclude,
		SourcePath:   filepath.Join(dir, "src", "core.cpp"),
		ResolvedPath: filepath.Join(dir, "include", "core.h"),
		Internal:     true,
	}
	if diff := cmp.Diff(want, rep.Units[0].Dependencies[0]); diff != "" {
		t.Errorf("first dependency diff -want +got:\n%s", diff)
	}
}

func TestRun_Fatal(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	setupFiles(t, dir, map[string]string{
		"CMakeLists.txt": "add_library(foo foo.cpp)\nadd_library(FOO bar.cpp)\n",
	})
	out := filepath.Join(t.TempDir(), "deps.json")
	c := &run{dir: dir, output: out}
	err := c.run(ctx)
	if !errors.Is(err, cmakebuild.ErrDuplicateID) {
		t.Errorf("run=%v; want %v", err, cmakebuild.ErrDuplicateID)
	}
	if _, err := os.Stat(out); err == nil {
		t.Errorf("%s exists; want no report on fatal error", out)
	}
}

func TestRun_NoDir(t *testing.T) {
	ctx := context.Background()
	c := &run{dir: filepath.Join(t.TempDir(), "missing")}
	err := c.run(ctx)
	if err == nil {
		t.Errorf("run=nil; want error for missing root")
	}
}
