// Copyright 2024 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package cmakeutil

import (
	"path"
	"strings"
)

// Kind is a kind of command argument.
type Kind int

const (
	// Literal is an argument acted upon as is.
	Literal Kind = iota
	// Keyword is an argument recognized as a keyword of the command.
	Keyword
	// Variable is an argument containing an unexpanded `$` reference,
	// including generator expressions.
	Variable
)

func (k Kind) String() string {
	switch k {
	case Literal:
		return "literal"
	case Keyword:
		return "keyword"
	case Variable:
		return "variable"
	}
	return "unknown"
}

// Shape is a shape of literal argument.
type Shape int

const (
	// PlainName is a bare name such as a target name.
	PlainName Shape = iota
	// FilePath is a path or a library filename.
	FilePath
)

func (s Shape) String() string {
	switch s {
	case PlainName:
		return "name"
	case FilePath:
		return "path"
	}
	return "unknown"
}

// Token is a classified command argument.
type Token struct {
	Value string
	Kind  Kind
	Shape Shape
}

// KeywordSet is a set of keywords recognized by a command.
// Keywords are case-sensitive, as in CMake.
type KeywordSet map[string]bool

// NewKeywordSet returns a keyword set of keywords.
func NewKeywordSet(keywords ...string) KeywordSet {
	ks := make(KeywordSet, len(keywords))
	for _, k := range keywords {
		ks[k] = true
	}
	return ks
}

// Union returns a keyword set containing keywords of ks and others.
func (ks KeywordSet) Union(others ...KeywordSet) KeywordSet {
	u := make(KeywordSet, len(ks))
	for k := range ks {
		u[k] = true
	}
	for _, o := range others {
		for k := range o {
			u[k] = true
		}
	}
	return u
}

var (
	// LibraryTypes are keywords of add_library after the name.
	LibraryTypes = NewKeywordSet("STATIC", "SHARED", "MODULE", "OBJECT", "INTERFACE", "IMPORTED", "GLOBAL", "EXCLUDE_FROM_ALL")

	// ExecutableOptions are keywords of add_executable after the name.
	ExecutableOptions = NewKeywordSet("WIN32", "MACOSX_BUNDLE", "EXCLUDE_FROM_ALL", "IMPORTED", "GLOBAL")

	// Visibility are scope keywords of target_* commands.
	Visibility = NewKeywordSet("PUBLIC", "PRIVATE", "INTERFACE")

	// IncludeOptions are keywords of target_include_directories.
	IncludeOptions = Visibility.Union(NewKeywordSet("SYSTEM", "BEFORE", "AFTER"))

	// LinkQualifiers are keywords of target_link_libraries.
	LinkQualifiers = Visibility.Union(NewKeywordSet("debug", "optimized", "general", "LINK_PUBLIC", "LINK_PRIVATE", "LINK_INTERFACE_LIBRARIES"))
)

// LibraryExtensions are filename extensions of library files.
var LibraryExtensions = []string{".lib", ".a", ".dll", ".so", ".dylib"}

// Classify classifies tok with keywords of the command.
func Classify(tok string, keywords KeywordSet) Token {
	switch {
	case strings.Contains(tok, "$"):
		return Token{Value: tok, Kind: Variable}
	case keywords[tok]:
		return Token{Value: tok, Kind: Keyword}
	case IsFileShaped(tok):
		return Token{Value: tok, Kind: Literal, Shape: FilePath}
	}
	return Token{Value: tok, Kind: Literal, Shape: PlainName}
}

// IsLiteral reports whether tok has no unexpanded variable reference.
func IsLiteral(tok string) bool {
	return !strings.Contains(tok, "$")
}

// IsFileShaped reports whether tok is a path or a library filename
// rather than a bare target name.
func IsFileShaped(tok string) bool {
	if strings.ContainsAny(tok, `/\`) {
		return true
	}
	return HasLibraryExt(tok)
}

// HasLibraryExt reports whether fname ends with a library extension.
func HasLibraryExt(fname string) bool {
	ext := strings.ToLower(path.Ext(fname))
	for _, e := range LibraryExtensions {
		if ext == e {
			return true
		}
	}
	return false
}
