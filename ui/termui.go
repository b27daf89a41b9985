// Copyright 2023 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package ui

import (
	"fmt"
	"os"
	"strings"
	"time"

	"golang.org/x/term"
)

// spinnerChars are frames of the spinner.
const spinnerChars = `/-\|`

type termSpinner struct {
	msg     string
	started time.Time
	quit    chan struct{}
	done    chan struct{}
}

// Start starts the spinner.
func (s *termSpinner) Start(format string, args ...any) {
	s.started = time.Now()
	s.msg = fmt.Sprintf(format, args...)
	s.quit = make(chan struct{})
	s.done = make(chan struct{})
	fmt.Printf("%s... ", s.msg)
	go func() {
		defer close(s.done)
		ticker := time.NewTicker(500 * time.Millisecond)
		defer ticker.Stop()
		for i := 0; ; i++ {
			select {
			case <-s.quit:
				return
			case <-ticker.C:
				fmt.Printf("\b%c", spinnerChars[i%len(spinnerChars)])
			}
		}
	}()
}

func (s *termSpinner) finish() time.Duration {
	close(s.quit)
	<-s.done
	return time.Since(s.started)
}

// Stop stops the spinner. It erases the line if the operation
// succeeded within DurationThreshold.
func (s *termSpinner) Stop(err error) {
	d := s.finish()
	switch {
	case err != nil:
		fmt.Printf("\r\033[K%6s %s %s %v\n", FormatDuration(d), s.msg, SGR(Red, "failed"), err)
	case d < DurationThreshold:
		fmt.Print("\r\033[K")
	default:
		fmt.Printf("\r\033[K%6s %s\n", FormatDuration(d), s.msg)
	}
}

// Done finishes the spinner with message.
func (s *termSpinner) Done(format string, args ...any) {
	d := s.finish()
	fmt.Printf("\r\033[K%6s %s: %s\n", FormatDuration(d), s.msg, fmt.Sprintf(format, args...))
}

// TermUI is a terminal-based UI.
type TermUI struct {
	width int
}

func (t *TermUI) init() {
	t.width, _, _ = term.GetSize(int(os.Stdout.Fd()))
}

// PrintLines implements the UI interface.
// Lines are shortened in the middle to fit in the terminal width.
func (t *TermUI) PrintLines(msgs ...string) {
	var sb strings.Builder
	if len(msgs) > 0 && msgs[0] == "\n" {
		msgs = msgs[1:]
	} else if len(msgs) > 0 {
		sb.WriteString("\r\033[K")
		sb.WriteString(strings.Repeat("\033[A\r\033[K", len(msgs)-1))
	}
	first := true
	for _, msg := range msgs {
		if msg == "" {
			continue
		}
		if !first {
			sb.WriteByte('\n')
		}
		first = false
		sb.WriteString(elideMiddle(msg, t.width))
	}
	fmt.Fprint(os.Stdout, sb.String())
}

// NewSpinner returns a terminal-based spinner.
func (*TermUI) NewSpinner() Spinner {
	return &termSpinner{}
}

// Infof prints a message to stdout.
func (t *TermUI) Infof(format string, args ...any) {
	t.PrintLines("\n", fmt.Sprintf(format, args...)+"\n")
}

// Warningf prints a warning to stderr.
func (*TermUI) Warningf(format string, args ...any) {
	fmt.Fprintln(os.Stderr, SGR(Yellow, "warning: ")+fmt.Sprintf(format, args...))
}

// Errorf prints an error to stderr.
func (*TermUI) Errorf(format string, args ...any) {
	fmt.Fprintln(os.Stderr, SGR(Red, "error: ")+fmt.Sprintf(format, args...))
}
