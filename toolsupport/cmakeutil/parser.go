// Copyright 2023 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package cmakeutil provides a parser of CMake build descriptions
// (CMakeLists.txt) restricted to command invocations.
//
// It does not evaluate the language: no variable expansion, no control
// flow, no function or macro definitions. A file is just an ordered
// sequence of `name(args...)` commands.
package cmakeutil

import (
	"fmt"
	"strings"
)

// Command is a command invocation in a CMake file.
type Command struct {
	// Name is the command name as written. CMake command names are
	// case-insensitive, so callers should compare lower-cased.
	Name string
	// Dir is the directory the command applies to.
	Dir string
	// Args are arguments, already split on `;`.
	Args []string
	// Line is 1-based line of the command name.
	Line int
}

// ParseError is an error in a CMake file.
type ParseError struct {
	Line    int
	Command string
	Msg     string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %s: %s", e.Line, e.Command, e.Msg)
}

// Parse parses buf as CMake file whose commands apply to dir.
// It returns commands parsed so far even if it returns an error.
func Parse(dir string, buf []byte) ([]Command, error) {
	l := &lexer{buf: buf, line: 1}
	var cmds []Command
	for {
		l.skipBlank()
		if l.eof() {
			return cmds, nil
		}
		if !identStartChar.contains(l.peek()) {
			if identChar.contains(l.peek()) {
				// digits run. e.g. "1st(": not a command name.
				l.ident()
				continue
			}
			l.advance()
			continue
		}
		line := l.line
		name := l.ident()
		l.skipBlank()
		if l.eof() || l.peek() != '(' {
			continue
		}
		l.advance()
		args, ok := parseArgs(l)
		if !ok {
			return cmds, &ParseError{
				Line:    line,
				Command: name,
				Msg:     "unbalanced parentheses",
			}
		}
		cmds = append(cmds, Command{
			Name: name,
			Dir:  dir,
			Args: args,
			Line: line,
		})
	}
}

// parseArgs parses arguments after `(` until the matching `)`.
// It returns false when buf ends before the matching `)`.
func parseArgs(l *lexer) ([]string, bool) {
	var args []string
	var tok []byte
	inTok := false
	quoted := false
	depth := 1
	flush := func() {
		if !inTok {
			return
		}
		args = appendListArg(args, string(tok))
		tok = tok[:0]
		inTok = false
	}
	for !l.eof() {
		ch := l.peek()
		if quoted {
			if ch == '"' {
				quoted = false
			} else {
				tok = append(tok, ch)
			}
			l.advance()
			continue
		}
		switch {
		case ch == '"':
			quoted = true
			inTok = true
		case ch == '#':
			if depth == 1 {
				flush()
			}
			l.skipComment()
			continue
		case ch == '(':
			depth++
			tok = append(tok, ch)
			inTok = true
		case ch == ')':
			depth--
			if depth == 0 {
				flush()
				l.advance()
				return args, true
			}
			tok = append(tok, ch)
			inTok = true
		case whitespaceChar.contains(ch):
			if depth == 1 {
				flush()
			} else {
				tok = append(tok, ch)
			}
		default:
			tok = append(tok, ch)
			inTok = true
		}
		l.advance()
	}
	return args, false
}

// appendListArg appends tok to args, splitting it as a CMake list.
func appendListArg(args []string, tok string) []string {
	if !strings.Contains(tok, ";") {
		if tok == "" {
			return args
		}
		return append(args, tok)
	}
	for _, s := range strings.Split(tok, ";") {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		args = append(args, s)
	}
	return args
}
