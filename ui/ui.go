// Copyright 2023 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package ui provides user interface functionalities, reporting
// scan progress and results to users.
package ui

import (
	"os"
	"strings"

	"golang.org/x/term"
)

// UI is a user interface.
type UI interface {
	// PrintLines prints message lines.
	// If msgs starts with "\n", it prints from the current line.
	// Otherwise, it replaces the last len(msgs) lines.
	PrintLines(msgs ...string)
	// NewSpinner returns a new spinner.
	NewSpinner() Spinner
	// Infof reports an informational message.
	Infof(format string, args ...any)
	// Warningf reports a warning.
	Warningf(format string, args ...any)
	// Errorf reports an error.
	Errorf(format string, args ...any)
}

// Default holds the default UI interface.
// Making changes to this variable after init is undefined behavior.
var Default UI

func init() {
	if term.IsTerminal(int(os.Stdout.Fd())) {
		termUI := &TermUI{}
		termUI.init()
		Default = termUI
		return
	}
	Default = LogUI{}
}

// IsTerminal returns whether currently using a terminal UI.
func IsTerminal() bool {
	_, ok := Default.(*TermUI)
	return ok
}

// elideMiddle shortens msg to fit in width columns by replacing
// its middle with "...". SGR escape sequences are dropped when msg is
// shortened, since a cut could split a colored span.
// Lines containing a newline are not shortened.
func elideMiddle(msg string, width int) string {
	const marker = "..."
	if width <= len(marker)+1 || strings.Contains(strings.TrimSuffix(msg, "\n"), "\n") {
		return msg
	}
	plain := StripANSIEscapeCodes(msg)
	if len(plain) < width {
		return msg
	}
	n := (width - len(marker) - 1) / 2
	return plain[:n] + marker + plain[len(plain)-n:]
}

// SGRCode is a code of SGR (select graphic rendition) parameters.
type SGRCode int

const (
	Bold SGRCode = iota
	Red
	Green
	Yellow
	Cyan
	Reset
)

func (s SGRCode) String() string {
	switch s {
	case Bold:
		return "\033[1m"
	case Red:
		return "\033[31;1m"
	case Green:
		return "\033[32m"
	case Yellow:
		return "\033[33m"
	case Cyan:
		return "\033[36m"
	}
	return "\033[0m"
}

// SGR formats s in SGR (select graphic rendition).
func SGR(n SGRCode, s string) string {
	return n.String() + s + Reset.String()
}

// StripANSIEscapeCodes strips CSI escape sequences such as SGR.
// Other escape characters are dropped.
func StripANSIEscapeCodes(s string) string {
	var sb strings.Builder
	for {
		i := strings.IndexByte(s, '\033')
		if i < 0 {
			sb.WriteString(s)
			return sb.String()
		}
		sb.WriteString(s[:i])
		s = s[i+1:]
		if !strings.HasPrefix(s, "[") {
			continue
		}
		// CSI ends with a final byte in [@A-Z[\]^_`a-z{|}~].
		j := strings.IndexFunc(s[1:], func(r rune) bool {
			return r >= '@' && r <= '~'
		})
		if j < 0 {
			return sb.String()
		}
		s = s[1+j+1:]
	}
}
