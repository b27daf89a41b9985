// Copyright 2024 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package directives is directives subcommand for debugging the directive scanner.
package directives

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/maruel/subcommands"
	"go.chromium.org/luci/common/cli"

	"github.com/williamjshipman/cppsbom/osfs"
	"github.com/williamjshipman/cppsbom/scandeps"
	"github.com/williamjshipman/cppsbom/toolsupport/comutil"
)

const usage = `scan C/C++ sources and print directives

 $ cppsbom directives [-com] <file>...

It prints #include, #import, #pragma comment(lib) and COM
identifiers found in the files, without resolving them.
With -com, it also looks up COM identifiers in the registry.
`

// Cmd returns the Command for the `directives` subcommand provided by this package.
func Cmd() *subcommands.Command {
	return &subcommands.Command{
		UsageLine: "directives <file>...",
		ShortDesc: "scan sources for directives",
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

	com bool
}

func (c *run) init() {
	c.Flags.BoolVar(&c.com, "com", false, "look up COM identifiers in the registry")
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
	files := make([]string, 0, len(args))
	for _, arg := range args {
		fname, err := filepath.Abs(arg)
		if err != nil {
			return err
		}
		files = append(files, fname)
	}
	r := scandeps.Scan(ctx, osfs.New("directives"), files)
	if err := context.Cause(ctx); err != nil {
		return err
	}
	for _, m := range r.Includes {
		if m.System {
			fmt.Fprintf(w, "%s: include <%s>\n", m.File, m.Value)
			continue
		}
		fmt.Fprintf(w, "%s: include %q\n", m.File, m.Value)
	}
	for _, m := range r.Imports {
		fmt.Fprintf(w, "%s: import %q\n", m.File, m.Value)
	}
	for _, m := range r.PragmaLibs {
		fmt.Fprintf(w, "%s: pragma lib %q\n", m.File, m.Value)
	}
	com := comutil.New()
	for _, m := range r.ProgIDs {
		fmt.Fprintf(w, "%s: progid %q", m.File, m.Value)
		if c.com {
			if info, ok := com.ResolveProgID(ctx, m.Value); ok {
				fmt.Fprintf(w, " %s", info.Metadata())
			}
		}
		fmt.Fprintln(w)
	}
	for _, m := range r.CLSIDs {
		fmt.Fprintf(w, "%s: clsid %s", m.File, m.Value)
		if c.com {
			if info, ok := com.ResolveCLSID(ctx, m.Value); ok {
				fmt.Fprintf(w, " %s", info.Metadata())
			}
		}
		fmt.Fprintln(w)
	}
	return nil
}
