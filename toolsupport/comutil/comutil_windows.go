// Copyright 2024 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

//go:build windows

package comutil

import (
	"context"
	"sync"

	log "github.com/golang/glog"
	"golang.org/x/sys/windows/registry"

	"github.com/williamjshipman/cppsbom/build"
	"github.com/williamjshipman/cppsbom/o11y/clog"
)

// New returns a COM resolver of the platform.
func New() build.COMResolver {
	return &Registry{}
}

// Registry resolves COM classes in HKEY_CLASSES_ROOT, in 64-bit view
// then in 32-bit view. Results are cached.
type Registry struct {
	progIDs sync.Map // progID -> result
	clsids  sync.Map // clsid -> result
}

type result struct {
	info build.COMInfo
	ok   bool
}

var views = []struct {
	name   string
	access uint32
}{
	{name: "64", access: registry.WOW64_64KEY},
	{name: "32", access: registry.WOW64_32KEY},
}

// ResolveProgID resolves progID by its CLSID.
func (r *Registry) ResolveProgID(ctx context.Context, progID string) (build.COMInfo, bool) {
	if v, ok := r.progIDs.Load(progID); ok {
		res := v.(result)
		return res.info, res.ok
	}
	var res result
	clsid, err := readString(registry.CLASSES_ROOT, progID+`\CLSID`, "", 0)
	if err != nil {
		if log.V(1) {
			clog.Infof(ctx, "progid %s: %v", progID, err)
		}
	} else {
		res.info, res.ok = r.ResolveCLSID(ctx, clsid)
		res.info.ProgID = progID
	}
	v, _ := r.progIDs.LoadOrStore(progID, res)
	res = v.(result)
	return res.info, res.ok
}

// ResolveCLSID resolves clsid by its server registration.
func (r *Registry) ResolveCLSID(ctx context.Context, clsid string) (build.COMInfo, bool) {
	if v, ok := r.clsids.Load(clsid); ok {
		res := v.(result)
		return res.info, res.ok
	}
	var res result
	for _, view := range views {
		info, err := lookupCLSID(clsid, view.access)
		if err != nil {
			if log.V(1) {
				clog.Infof(ctx, "clsid %s in %s-bit view: %v", clsid, view.name, err)
			}
			continue
		}
		info.View = view.name
		res = result{info: info, ok: true}
		break
	}
	v, _ := r.clsids.LoadOrStore(clsid, res)
	res = v.(result)
	return res.info, res.ok
}

func lookupCLSID(clsid string, access uint32) (build.COMInfo, error) {
	k, err := registry.OpenKey(registry.CLASSES_ROOT, `CLSID\`+clsid, registry.QUERY_VALUE|access)
	if err != nil {
		return build.COMInfo{}, err
	}
	defer k.Close()
	info := build.COMInfo{CLSID: clsid}
	info.Description, _ = readString(k, "", "", access)
	info.ProgID, _ = readString(k, "ProgID", "", access)
	for _, server := range []string{"InprocServer32", "LocalServer32"} {
		p, err := readString(k, server, "", access)
		if err != nil {
			continue
		}
		info.ServerPath = p
		info.ThreadingModel, _ = readString(k, server, "ThreadingModel", access)
		break
	}
	return info, nil
}

// readString reads string value name of subkey path of k,
// expanding environment variables.
func readString(k registry.Key, path, name string, access uint32) (string, error) {
	sk := k
	if path != "" {
		var err error
		sk, err = registry.OpenKey(k, path, registry.QUERY_VALUE|access)
		if err != nil {
			return "", err
		}
		defer sk.Close()
	}
	s, typ, err := sk.GetStringValue(name)
	if err != nil {
		return "", err
	}
	if typ == registry.EXPAND_SZ {
		return registry.ExpandString(s)
	}
	return s, nil
}
