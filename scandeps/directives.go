// Copyright 2023 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package scandeps

import (
	"bytes"
	"path"
	"regexp"
	"strings"
)

var (
	directiveRE = regexp.MustCompile(`^\s*#\s*(include|import|pragma)\b`)
	includeRE   = regexp.MustCompile(`^\s*#\s*include\s*([<"])([^<>"]+)[>"]`)
	importRE    = regexp.MustCompile(`^\s*#\s*import\s*"([^"]+)"`)
	pragmaLibRE = regexp.MustCompile(`^\s*#\s*pragma\s+comment\s*\(\s*lib\s*,\s*"([^"]+)"\s*\)`)

	clsidRE = regexp.MustCompile(`\{[0-9A-Fa-f]{8}-[0-9A-Fa-f]{4}-[0-9A-Fa-f]{4}-[0-9A-Fa-f]{4}-[0-9A-Fa-f]{12}\}`)
)

// ScanFile scans buf of fname for directives.
func ScanFile(fname string, buf []byte) Result {
	var r Result
	for len(buf) > 0 {
		var line []byte
		i := bytes.IndexByte(buf, '\n')
		if i < 0 {
			line = buf
			buf = nil
		} else {
			line = buf[:i]
			buf = buf[i+1:]
		}
		line = bytes.TrimSuffix(line, []byte("\r"))
		if directiveRE.Match(line) {
			scanDirective(&r, fname, line)
			continue
		}
		for _, m := range clsidRE.FindAll(line, -1) {
			r.CLSIDs = append(r.CLSIDs, Match{File: fname, Value: string(m)})
		}
		for _, s := range stringLiterals(line) {
			if len(s) < 3 || !IsProgID(s) {
				continue
			}
			r.ProgIDs = append(r.ProgIDs, Match{File: fname, Value: s})
		}
	}
	return r
}

func scanDirective(r *Result, fname string, line []byte) {
	if m := includeRE.FindSubmatch(line); m != nil {
		r.Includes = append(r.Includes, Match{
			File:   fname,
			Value:  strings.TrimSpace(string(m[2])),
			System: m[1][0] == '<',
		})
		return
	}
	if m := importRE.FindSubmatch(line); m != nil {
		r.Imports = append(r.Imports, Match{File: fname, Value: strings.TrimSpace(string(m[1]))})
		return
	}
	if m := pragmaLibRE.FindSubmatch(line); m != nil {
		r.PragmaLibs = append(r.PragmaLibs, Match{File: fname, Value: strings.TrimSpace(string(m[1]))})
	}
}

// stringLiterals returns contents of "..." in line.
// Backslash escapes are kept as is; an unclosed literal is dropped.
func stringLiterals(line []byte) []string {
	var lits []string
	for {
		i := bytes.IndexByte(line, '"')
		if i < 0 {
			return lits
		}
		line = line[i+1:]
		end := -1
		for j := 0; j < len(line); j++ {
			if line[j] == '\\' {
				j++
				continue
			}
			if line[j] == '"' {
				end = j
				break
			}
		}
		if end < 0 {
			return lits
		}
		lits = append(lits, string(line[:end]))
		line = line[end+1:]
	}
}

// codeExts are extensions of files that look like ProgIDs but are not.
var codeExts = map[string]bool{
	".h": true, ".hh": true, ".hpp": true, ".hxx": true, ".inl": true, ".ipp": true,
	".c": true, ".cc": true, ".cpp": true, ".cxx": true,
	".idl": true, ".odl": true, ".tlb": true, ".tlh": true, ".tli": true,
	".rc": true, ".rc2": true, ".def": true, ".manifest": true,
	".lib": true, ".dll": true, ".exe": true, ".ocx": true, ".obj": true,
	".txt": true, ".xml": true, ".json": true, ".ini": true, ".log": true,
}

// IsProgID reports whether s looks like a COM ProgID, e.g.
// "Excel.Application" or "Scripting.FileSystemObject.1".
func IsProgID(s string) bool {
	if !strings.Contains(s, ".") {
		return false
	}
	if strings.Contains(s, " ") || strings.Contains(s, "::") || strings.Contains(s, "/") {
		return false
	}
	if !isLetter(s[0]) {
		return false
	}
	parts := strings.Split(s, ".")
	if len(parts) < 2 {
		return false
	}
	for _, p := range parts {
		if p == "" {
			return false
		}
		for i := 0; i < len(p); i++ {
			if !isProgIDChar(p[i]) {
				return false
			}
		}
	}
	return !codeExts[strings.ToLower(path.Ext(s))]
}

func isLetter(ch byte) bool {
	return ('a' <= ch && ch <= 'z') || ('A' <= ch && ch <= 'Z')
}

func isProgIDChar(ch byte) bool {
	return isLetter(ch) || ('0' <= ch && ch <= '9') || ch == '_' || ch == '-'
}
