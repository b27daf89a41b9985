// Copyright 2023 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package metadata

import (
	"encoding/json"
	"runtime"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestMetadata(t *testing.T) {
	md := New()
	if got := md.Get("goos"); got != runtime.GOOS {
		t.Errorf("md.Get(goos)=%q; want %q", got, runtime.GOOS)
	}
	if err := md.Set("goos", "plan9"); err == nil {
		t.Errorf("md.Set(goos, plan9)=nil; want error")
	}
	if err := md.Set("project", "demo"); err != nil {
		t.Errorf("md.Set(project, demo)=%v; want nil", err)
	}
	want := []string{"goarch", "goos", "num_cpu", "project"}
	if diff := cmp.Diff(want, md.SortedKeys()); diff != "" {
		t.Errorf("md.SortedKeys() diff -want +got:\n%s", diff)
	}
	if md.Size() != 4 {
		t.Errorf("md.Size()=%d; want 4", md.Size())
	}

	buf, err := json.Marshal(md)
	if err != nil {
		t.Fatalf("json.Marshal(md)=_, %v; want nil err", err)
	}
	var got map[string]string
	if err := json.Unmarshal(buf, &got); err != nil {
		t.Fatalf("json.Unmarshal(%s)=%v", buf, err)
	}
	if got["project"] != "demo" || got["goarch"] != runtime.GOARCH {
		t.Errorf("json.Marshal(md)=%s; want project and goarch", buf)
	}
}
