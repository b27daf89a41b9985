// Copyright 2024 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package scan is scan subcommand to report dependencies of a CMake project.
package scan

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	log "github.com/golang/glog"
	"github.com/maruel/subcommands"
	"go.chromium.org/luci/common/cli"

	"github.com/williamjshipman/cppsbom/build"
	"github.com/williamjshipman/cppsbom/build/buildconfig"
	"github.com/williamjshipman/cppsbom/build/cmakebuild"
	"github.com/williamjshipman/cppsbom/o11y/clog"
	"github.com/williamjshipman/cppsbom/o11y/trace"
	"github.com/williamjshipman/cppsbom/osfs"
	"github.com/williamjshipman/cppsbom/runtimex"
	"github.com/williamjshipman/cppsbom/toolsupport/comutil"
	"github.com/williamjshipman/cppsbom/ui"
)

const usage = `scan a CMake project and report its dependencies.

 $ cppsbom scan -C <dir> [-third_party <dir>]... [-o <file>]

It loads CMakeLists.txt in <dir> and the directories added by
add_subdirectory, scans sources of each target for #include,
#import, #pragma comment(lib) and COM identifiers, and writes
the dependencies of the targets in JSON.

If <dir>/.cppsbom.star exists, it is loaded as config.
Flags override the config.
`

// Cmd returns the Command for the `scan` subcommand provided by this package.
func Cmd() *subcommands.Command {
	return &subcommands.Command{
		UsageLine: "scan [-C <dir>] [-o <file>]",
		ShortDesc: "scan a CMake project for dependencies",
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

	dir    string
	output string
	trace  bool
	opt    buildconfig.Option
}

func (c *run) init() {
	c.Flags.StringVar(&c.dir, "C", ".", "root directory of the CMake project")
	c.Flags.StringVar(&c.output, "o", "", "output filename. stdout if empty or -")
	c.Flags.BoolVar(&c.trace, "trace", false, "print duration of each scan phase")
	c.opt.RegisterFlags(&c.Flags)
}

func (c *run) Run(a subcommands.Application, args []string, env subcommands.Env) int {
	ctx := cli.GetContext(a, c, env)
	if len(args) != 0 {
		fmt.Fprintf(a.GetErr(), "%s: position arguments not expected\n", a.GetName())
		return 1
	}
	err := c.run(ctx)
	if err != nil {
		var initErr buildconfig.InitError
		switch {
		case errors.Is(err, flag.ErrHelp):
			fmt.Fprintf(os.Stderr, "%v\n%s\n", err, usage)
		case errors.As(err, &initErr):
			ui.Default.Errorf("%v", err)
			fmt.Fprint(os.Stderr, initErr.Backtrace())
		default:
			ui.Default.Errorf("%v", err)
		}
		return 1
	}
	return 0
}

func (c *run) run(ctx context.Context) (err error) {
	if c.dir == "" {
		return fmt.Errorf("no root directory: %w", flag.ErrHelp)
	}
	root, err := filepath.Abs(c.dir)
	if err != nil {
		return err
	}
	tc := trace.New(ctx)
	ctx = trace.NewContext(ctx, tc)
	ctx = clog.With(ctx, "scan", tc.ID())
	ctx, span := trace.NewSpan(ctx, "scan")
	defer func() { span.Close(err) }()
	clog.Infof(ctx, "scan %s", root)

	fsys := osfs.New("scan")
	if !fsys.IsDir(ctx, root) {
		return fmt.Errorf("root %s is not a directory", root)
	}
	cfg, err := c.opt.Config(ctx, fsys, root)
	if err != nil {
		return err
	}

	spin := ui.Default.NewSpinner()
	spin.Start("loading %s", root)
	graph, err := cmakebuild.Load(ctx, fsys, root, cmakebuild.Option{Manifest: cfg.Manifest})
	if err != nil {
		spin.Stop(err)
		return err
	}
	units := graph.Units()
	spin.Done("%d units in %d files", len(units), len(graph.Files()))

	r := &build.Resolver{
		FS:              fsys,
		Units:           graph,
		COM:             comutil.New(),
		Root:            root,
		ThirdPartyRoots: cfg.ThirdPartyRoots,
	}
	workers := cfg.Workers
	if workers <= 0 {
		workers = runtimex.NumCPU()
	}
	spin = ui.Default.NewSpinner()
	spin.Start("analyzing %d units", len(units))
	analyses, err := build.AnalyzeAll(ctx, r, units, workers)
	if err != nil {
		spin.Stop(err)
		return err
	}
	rep := newReport(graph, tc.ID(), cfg, analyses)
	spin.Done("%d dependencies", rep.numDeps())
	if log.V(1) {
		clog.Infof(ctx, "fs: %s", fsys.Stats())
	}

	err = rep.write(c.output)
	if err != nil {
		return err
	}
	for _, d := range rep.Diagnostics {
		ui.Default.Warningf("%s", d)
	}
	if c.output != "" && c.output != "-" {
		ui.Default.PrintLines("\n", fmt.Sprintf("%s units:%d deps:%d diagnostics:%d -> %s\n",
			ui.SGR(ui.Green, "scan finished"), len(rep.Units), rep.numDeps(), len(rep.Diagnostics), c.output))
	}
	if c.trace {
		span.Close(nil)
		printTrace(tc)
	}
	return nil
}

func printTrace(tc *trace.Context) {
	msgs := []string{"\n"}
	for _, sd := range tc.Spans() {
		name := sd.Name
		if sd.Parent != "" {
			name = sd.Parent + "/" + name
		}
		msgs = append(msgs, fmt.Sprintf("%10s %s\n", ui.FormatDuration(sd.Duration()), name))
	}
	ui.Default.PrintLines(msgs...)
}
