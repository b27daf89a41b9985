// Copyright 2023 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package scandeps provides a directive scanner of C/C++ sources.
// Compared with a preprocessor, it only recognizes a few forms
// line by line, and does not follow included files.
//
// It checks the following forms
//
//	#include "foo.h"
//	#include <foo.h>
//	#import "foo.tlb"
//	#pragma comment(lib, "foo.lib")
//
// and, on any other line, COM identifiers
//
//	{00000000-0000-0000-0000-000000000000}  (CLSID)
//	"Excel.Application"                      (ProgID)
//
// Macro includes (#include FOO_H) are not expanded, and `#if` is not
// evaluated, so every occurrence is reported.
//
// It is best-effort enrichment: unreadable files are skipped.
package scandeps
