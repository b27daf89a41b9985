// Copyright 2024 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package cmakeparse is cmakeparse subcommand for debugging the CMake parser.
package cmakeparse

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/maruel/subcommands"
	"go.chromium.org/luci/common/cli"

	"github.com/williamjshipman/cppsbom/toolsupport/cmakeutil"
)

const usage = `parse CMake files and print commands

 $ cppsbom cmakeparse [-classify] <file>...

It prints commands recognized in each file, one per line,
with arguments after list splitting.
With -classify, each argument is printed with its class.
`

// Cmd returns the Command for the `cmakeparse` subcommand provided by this package.
func Cmd() *subcommands.Command {
	return &subcommands.Command{
		UsageLine: "cmakeparse <file>...",
		ShortDesc: "parse CMake files",
		LongDesc:  usage,
		Advanced:  true,
		CommandRun: func() subcommands.CommandRun {
			c := &run{}
			c.init()
			return c
		},
	}
}

type run struct {
	subcommands.CommandRunBase

	classify bool
}

func (c *run) init() {
	c.Flags.BoolVar(&c.classify, "classify", false, "print class of each argument")
}

func (c *run) Run(a subcommands.Application, args []string, env subcommands.Env) int {
	ctx := cli.GetContext(a, c, env)
	err := c.run(ctx, os.Stdout, args)
	if err != nil {
		switch {
		case errors.Is(err, flag.ErrHelp):
			fmt.Fprintf(os.Stderr, "%v\n%s\n", err, usage)
		default:
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		return 1
	}
	return 0
}

func (c *run) run(ctx context.Context, w io.Writer, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("no files: %w", flag.ErrHelp)
	}
	var errs []error
	for _, fname := range args {
		if err := ctx.Err(); err != nil {
			return err
		}
		buf, err := os.ReadFile(fname)
		if err != nil {
			return err
		}
		dir, err := filepath.Abs(filepath.Dir(fname))
		if err != nil {
			return err
		}
		cmds, err := cmakeutil.Parse(dir, buf)
		for _, cmd := range cmds {
			fmt.Fprintf(w, "%s:%d: %s\n", fname, cmd.Line, c.format(cmd))
		}
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", fname, err))
		}
	}
	return errors.Join(errs...)
}

func (c *run) format(cmd cmakeutil.Command) string {
	args := make([]string, 0, len(cmd.Args))
	for _, arg := range cmd.Args {
		if !c.classify {
			args = append(args, fmt.Sprintf("%q", arg))
			continue
		}
		tok := cmakeutil.Classify(arg, keywords(cmd.Name))
		class := tok.Kind.String()
		if tok.Kind == cmakeutil.Literal {
			class = tok.Shape.String()
		}
		args = append(args, fmt.Sprintf("%q:%s", arg, class))
	}
	return fmt.Sprintf("%s(%s)", cmd.Name, strings.Join(args, " "))
}

// keywords returns the keyword set used by the graph builder for cmd.
func keywords(cmd string) cmakeutil.KeywordSet {
	switch strings.ToLower(cmd) {
	case "add_library":
		return cmakeutil.LibraryTypes
	case "add_executable":
		return cmakeutil.ExecutableOptions
	case "target_sources":
		return cmakeutil.Visibility
	case "target_include_directories":
		return cmakeutil.IncludeOptions
	case "target_link_libraries":
		return cmakeutil.LinkQualifiers
	}
	return nil
}
