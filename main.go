// Copyright 2023 The Chromium Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// cppsbom reports dependencies of C++ build units for SBOMs.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"runtime"
	"runtime/debug"
	"strings"

	log "github.com/golang/glog"
	"github.com/maruel/subcommands"
	"go.chromium.org/luci/common/cli"
	"go.chromium.org/luci/common/system/signals"

	"github.com/williamjshipman/cppsbom/o11y/clog"
	"github.com/williamjshipman/cppsbom/subcmd/cmakeparse"
	"github.com/williamjshipman/cppsbom/subcmd/directives"
	"github.com/williamjshipman/cppsbom/subcmd/help"
	"github.com/williamjshipman/cppsbom/subcmd/scan"
	"github.com/williamjshipman/cppsbom/subcmd/targets"
	"github.com/williamjshipman/cppsbom/subcmd/version"
	"github.com/williamjshipman/cppsbom/ui"
)

const versionID = "v0.1.0"

func getApplication(ctx context.Context) *cli.Application {
	return &cli.Application{
		Name:  "cppsbom",
		Title: "C++ build dependency scanner for SBOMs",
		Context: func(context.Context) context.Context {
			return ctx
		},
		Commands: []*subcommands.Command{
			scan.Cmd(),
			targets.Cmd(),

			cmakeparse.Cmd(),
			directives.Cmd(),

			help.Cmd(),
			version.Cmd(versionID),
		},
	}
}

func main() {
	os.Exit(cppsbomMain())
}

func cppsbomMain() int {
	flag.Usage = func() {
		out := flag.CommandLine.Output()
		fmt.Fprintf(out, "Usage of %s:\n", os.Args[0])
		fmt.Fprintf(out, "global flags:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	ui.Init()
	defer ui.Restore()

	ctx, cancel := context.WithCancel(context.Background())
	defer signals.HandleInterrupt(cancel)()

	// Flush the log on exit to not lose any messages.
	defer clog.Close()

	// Print a stack trace when a panic occurs.
	defer func() {
		if r := recover(); r != nil {
			const size = 64 << 10
			buf := make([]byte, size)
			buf = buf[:runtime.Stack(buf, false)]
			log.Fatalf("panic: %v\n%s", r, buf)
		}
	}()

	// Print build information to the log.
	buildinfo, ok := debug.ReadBuildInfo()
	if ok {
		log.Infof("main module: %s %s", moduleInfo(&buildinfo.Main), vcsInfo(buildinfo))
		if log.V(1) {
			for _, m := range buildinfo.Deps {
				log.Infof("deps module: %s", moduleInfo(m))
			}
			for _, bs := range buildinfo.Settings {
				log.Infof("build %s=%s", bs.Key, bs.Value)
			}
		}
	}
	return subcommands.Run(getApplication(ctx), flag.Args())
}

func moduleInfo(m *debug.Module) string {
	if m == nil {
		return "<nil>"
	}
	return fmt.Sprintf("path:%s version:%s sum:%s replace:%s", m.Path, m.Version, m.Sum, moduleInfo(m.Replace))
}

func vcsInfo(buildinfo *debug.BuildInfo) string {
	m := make(map[string]string)
	for _, bs := range buildinfo.Settings {
		if strings.HasPrefix(bs.Key, "vcs.") {
			m[bs.Key] = bs.Value
		}
	}
	return fmt.Sprintf("vcs[revision=%s time=%s modified=%s]", m["vcs.revision"], m["vcs.time"], m["vcs.modified"])
}
