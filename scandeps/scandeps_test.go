// Copyright 2023 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package scandeps

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/williamjshipman/cppsbom/osfs"
)

func TestScan(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	for fname, content := range map[string]string{
		"apps/apps.cc": `
#include <unistd.h>
#include "apps/apps.h"
#pragma comment(lib, "ws2_32.lib")
`,
		"apps/apps.h": `
#include <string>
#import "msxml6.dll"
`,
		"apps/com.cc": `
auto app = CreateObject("Excel.Application");
`,
	} {
		fname := filepath.Join(dir, fname)
		err := os.MkdirAll(filepath.Dir(fname), 0755)
		if err != nil {
			t.Fatal(err)
		}
		err = os.WriteFile(fname, []byte(content), 0644)
		if err != nil {
			t.Fatal(err)
		}
	}
	appsCC := filepath.Join(dir, "apps/apps.cc")
	appsH := filepath.Join(dir, "apps/apps.h")
	comCC := filepath.Join(dir, "apps/com.cc")
	missing := filepath.Join(dir, "apps/missing.cc")

	got := Scan(ctx, osfs.New("test"), []string{appsCC, missing, appsH, comCC, appsCC})
	want := Result{
		Includes: []Match{
			{File: appsCC, Value: "unistd.h", System: true},
			{File: appsCC, Value: "apps/apps.h"},
			{File: appsH, Value: "string", System: true},
			{File: appsCC, Value: "unistd.h", System: true},
			{File: appsCC, Value: "apps/apps.h"},
		},
		Imports: []Match{
			{File: appsH, Value: "msxml6.dll"},
		},
		PragmaLibs: []Match{
			{File: appsCC, Value: "ws2_32.lib"},
			{File: appsCC, Value: "ws2_32.lib"},
		},
		ProgIDs: []Match{
			{File: comCC, Value: "Excel.Application"},
		},
	}
	if diff := cmp.Diff(want, got, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("Scan diff -want +got:\n%s", diff)
	}
}

func TestScan_Empty(t *testing.T) {
	got := Scan(context.Background(), osfs.New("test"), nil)
	if diff := cmp.Diff(Result{}, got, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("Scan(nil) diff -want +got:\n%s", diff)
	}
}
