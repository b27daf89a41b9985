// Copyright 2023 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package build

import (
	"context"
	"strings"
)

// COMInfo is registration info of a COM class.
type COMInfo struct {
	CLSID       string
	ProgID      string
	Description string

	// ServerPath is a path of the in-process server.
	ServerPath string

	// ThreadingModel is the registered threading model,
	// e.g. "Apartment", "Both".
	ThreadingModel string

	// View is the registry view where the class is found,
	// "64" or "32".
	View string
}

// Metadata returns COM flags as `;`-joined key=value pairs.
func (ci COMInfo) Metadata() string {
	var kv []string
	add := func(k, v string) {
		if v != "" {
			kv = append(kv, k+"="+v)
		}
	}
	add("clsid", ci.CLSID)
	add("progid", ci.ProgID)
	add("view", ci.View)
	add("threading_model", ci.ThreadingModel)
	return strings.Join(kv, ";")
}

// COMResolver resolves COM classes.
type COMResolver interface {
	// ResolveProgID resolves progID, e.g. "Excel.Application".
	ResolveProgID(ctx context.Context, progID string) (COMInfo, bool)

	// ResolveCLSID resolves clsid, e.g. "{00024500-0000-0000-C000-000000000046}".
	ResolveCLSID(ctx context.Context, clsid string) (COMInfo, bool)
}
