// Copyright 2023 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package cmakeutil

type charmap [8]uint32

func (m *charmap) set(ch byte) {
	(*m)[ch>>5] |= 1 << uint(ch&31)
}

func (m *charmap) contains(ch byte) bool {
	return (*m)[ch>>5]&(1<<uint(ch&31)) != 0
}

// [A-Za-z_]
var identStartChar charmap

// [A-Za-z0-9_]
var identChar charmap

var whitespaceChar charmap

func init() {
	for ch := byte('a'); ch <= 'z'; ch++ {
		identStartChar.set(ch)
		identChar.set(ch)
	}
	for ch := byte('A'); ch <= 'Z'; ch++ {
		identStartChar.set(ch)
		identChar.set(ch)
	}
	for ch := byte('0'); ch <= '9'; ch++ {
		identChar.set(ch)
	}
	identStartChar.set('_')
	identChar.set('_')

	for _, ch := range []byte(" \t\r\n\v\f") {
		whitespaceChar.set(ch)
	}
}

// lexer walks buf byte by byte, tracking the current line.
type lexer struct {
	buf  []byte
	pos  int
	line int
}

func (l *lexer) eof() bool {
	return l.pos >= len(l.buf)
}

func (l *lexer) peek() byte {
	return l.buf[l.pos]
}

// advance moves to the next byte.
func (l *lexer) advance() {
	if l.buf[l.pos] == '\n' {
		l.line++
	}
	l.pos++
}

// skipComment skips `#` to end of line. The newline itself is not consumed.
func (l *lexer) skipComment() {
	for !l.eof() && l.peek() != '\n' {
		l.pos++
	}
}

// skipBlank skips whitespaces and line comments.
func (l *lexer) skipBlank() {
	for !l.eof() {
		ch := l.peek()
		switch {
		case whitespaceChar.contains(ch):
			l.advance()
		case ch == '#':
			l.skipComment()
		default:
			return
		}
	}
}

// ident reads [A-Za-z0-9_]* from current position.
func (l *lexer) ident() string {
	s := l.pos
	for !l.eof() && identChar.contains(l.peek()) {
		l.pos++
	}
	return string(l.buf[s:l.pos])
}
