// Copyright 2024 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package targets is targets subcommand to list targets of a CMake project.
package targets

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/maruel/subcommands"
	"go.chromium.org/luci/common/cli"

	"github.com/williamjshipman/cppsbom/build/buildconfig"
	"github.com/williamjshipman/cppsbom/build/cmakebuild"
	"github.com/williamjshipman/cppsbom/osfs"
)

const usage = `list targets of a CMake project.

 $ cppsbom targets -C <dir> [-v]

It prints identifier and directory of each target, and with -v,
its sources, include directories and link entries.
Aliases and diagnostics found while loading are printed at the end.
`

// Cmd returns the Command for the `targets` subcommand provided by this package.
func Cmd() *subcommands.Command {
	return &subcommands.Command{
		UsageLine: "targets [-C <dir>] [-v]",
		ShortDesc: "list targets of a CMake project",
		LongDesc:  usage,
		CommandRun: func() subcommands.CommandRun {
			c := &run{}
			c.init()
			return c
		},
	}
}

type run struct {
	subcommands.CommandRunBase

	dir     string
	verbose bool
	opt     buildconfig.Option
}

func (c *run) init() {
	c.Flags.StringVar(&c.dir, "C", ".", "root directory of the CMake project")
	c.Flags.BoolVar(&c.verbose, "v", false, "show sources, include directories and link entries")
	c.opt.RegisterFlags(&c.Flags)
}

func (c *run) Run(a subcommands.Application, args []string, env subcommands.Env) int {
	ctx := cli.GetContext(a, c, env)
	if len(args) != 0 {
		fmt.Fprintf(a.GetErr(), "%s: position arguments not expected\n", a.GetName())
		return 1
	}
	err := c.run(ctx, os.Stdout)
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

func (c *run) run(ctx context.Context, w io.Writer) error {
	root, err := filepath.Abs(c.dir)
	if err != nil {
		return err
	}
	fsys := osfs.New("targets")
	cfg, err := c.opt.Config(ctx, fsys, root)
	if err != nil {
		return err
	}
	g, err := cmakebuild.Load(ctx, fsys, root, cmakebuild.Option{Manifest: cfg.Manifest})
	if err != nil {
		return err
	}
	for _, u := range g.Units() {
		fmt.Fprintf(w, "%s\t%s\n", u.ID, relPath(root, u.Dir))
		if !c.verbose {
			continue
		}
		for _, s := range u.Sources {
			fmt.Fprintf(w, "  src: %s\n", relPath(root, s))
		}
		for _, d := range u.IncludeDirs {
			fmt.Fprintf(w, "  include: %s\n", relPath(root, d))
		}
		for _, l := range u.LinkEntries {
			fmt.Fprintf(w, "  link: %s\n", l)
		}
	}
	aliases := g.Aliases()
	names := make([]string, 0, len(aliases))
	for name := range aliases {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(w, "%s -> %s\n", name, aliases[name])
	}
	for _, d := range g.Diagnostics() {
		fmt.Fprintf(w, "warning: %s\n", d)
	}
	return nil
}

func relPath(root, p string) string {
	rel, err := filepath.Rel(root, p)
	if err != nil {
		return p
	}
	return filepath.ToSlash(rel)
}
