// Copyright 2023 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package ui

import (
	"os"

	log "github.com/golang/glog"
	"golang.org/x/sys/windows"
)

// origConsoleMode is the console mode before Init. 0 if unchanged.
var origConsoleMode uint32

// Init enables virtual terminal processing of the console,
// so SGR and cursor movement sequences work on Windows.
func Init() {
	h := windows.Handle(os.Stdout.Fd())
	var mode uint32
	if err := windows.GetConsoleMode(h, &mode); err != nil {
		// not a console, e.g. redirected to a file.
		if log.V(1) {
			log.Infof("GetConsoleMode: %v", err)
		}
		return
	}
	if mode&windows.ENABLE_VIRTUAL_TERMINAL_PROCESSING != 0 {
		return
	}
	if err := windows.SetConsoleMode(h, mode|windows.ENABLE_VIRTUAL_TERMINAL_PROCESSING); err != nil {
		log.Warningf("failed to enable virtual terminal processing: %v", err)
		return
	}
	origConsoleMode = mode
}

// Restore restores the console mode changed by Init.
func Restore() {
	if origConsoleMode == 0 {
		return
	}
	if err := windows.SetConsoleMode(windows.Handle(os.Stdout.Fd()), origConsoleMode); err != nil {
		log.Errorf("failed to restore console mode 0x%x: %v", origConsoleMode, err)
	}
}
