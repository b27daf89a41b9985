// Copyright 2024 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package osfs

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestOSFS(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	err := os.MkdirAll(filepath.Join(dir, "include"), 0755)
	if err != nil {
		t.Fatal(err)
	}
	err = os.WriteFile(filepath.Join(dir, "foo.h"), []byte("// foo\n"), 0644)
	if err != nil {
		t.Fatal(err)
	}

	fsys := New("test")
	for _, tc := range []struct {
		name   string
		exists bool
		isDir  bool
	}{
		{name: "foo.h", exists: true},
		{name: "include", isDir: true},
		{name: "missing.h"},
		{name: "include/../foo.h", exists: true},
	} {
		fname := filepath.Join(dir, tc.name)
		if got := fsys.Exists(ctx, fname); got != tc.exists {
			t.Errorf("Exists(%q)=%t; want %t", tc.name, got, tc.exists)
		}
		if got := fsys.IsDir(ctx, fname); got != tc.isDir {
			t.Errorf("IsDir(%q)=%t; want %t", tc.name, got, tc.isDir)
		}
	}

	buf, err := fsys.ReadFile(ctx, filepath.Join(dir, "foo.h"))
	if err != nil || string(buf) != "// foo\n" {
		t.Errorf("ReadFile(foo.h)=%q, %v; want %q, nil", buf, err, "// foo\n")
	}
	_, err = fsys.ReadFile(ctx, filepath.Join(dir, "missing.h"))
	if err == nil {
		t.Errorf("ReadFile(missing.h)=_, nil; want error")
	}

	st := fsys.Stats()
	if st.ROps != 2 || st.RErrs != 1 || st.RBytes != int64(len("// foo\n")) {
		t.Errorf("read stats=%v; want 2 reads, 1 error, %d bytes", st, len("// foo\n"))
	}
	if st.StatHits == 0 {
		t.Errorf("stat cache hits=0; want >0: %v", st)
	}
}

func TestOSFS_Snapshot(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	fname := filepath.Join(dir, "late.h")
	fsys := New("test")
	if fsys.Exists(ctx, fname) {
		t.Fatalf("Exists(%q)=true before create", fname)
	}
	err := os.WriteFile(fname, nil, 0644)
	if err != nil {
		t.Fatal(err)
	}
	if fsys.Exists(ctx, fname) {
		t.Errorf("Exists(%q)=true after create; want cached false", fname)
	}
}
