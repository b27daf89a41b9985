// Copyright 2023 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

//go:build !windows

package ui

// Init prepares the terminal. Terminals on this platform handle escape
// sequences as is.
func Init() {}

// Restore restores the terminal settings changed by Init.
func Restore() {}
