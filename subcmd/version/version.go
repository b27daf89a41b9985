// Copyright 2023 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package version provides version subcommand.
package version

import (
	"fmt"
	"io"
	"os"
	"runtime/debug"
	"strings"

	"github.com/maruel/subcommands"
	"go.chromium.org/luci/cipd/version"
)

// Cmd returns the Command for the `version` subcommand provided by this package.
func Cmd(ver string) *subcommands.Command {
	return &subcommands.Command{
		UsageLine: "version",
		ShortDesc: "prints the executable version",
		LongDesc:  "Prints the executable version, and the CIPD package the executable was installed from or the build info of the executable.",
		CommandRun: func() subcommands.CommandRun {
			r := &versionRun{version: ver}
			r.init()
			return r
		},
	}
}

type versionRun struct {
	subcommands.CommandRunBase
	version string
	deps    bool
}

func (c *versionRun) init() {
	c.Flags.BoolVar(&c.deps, "deps", false, "show dependency modules of the executable")
}

func (c *versionRun) Run(a subcommands.Application, args []string, env subcommands.Env) int {
	if len(args) != 0 {
		fmt.Fprintf(a.GetErr(), "%s: position arguments not expected\n", a.GetName())
		return 1
	}
	fmt.Println(c.version)
	ver, err := version.GetStartupVersion()
	if err != nil {
		// Note: this is some sort of catastrophic error. If the binary is not
		// installed via CIPD, err == nil && ver.InstanceID == "".
		fmt.Fprintf(os.Stderr, "cannot determine CIPD package version: %s\n", err)
		return 1
	}
	if ver.InstanceID != "" {
		fmt.Println()
		fmt.Printf("CIPD package name: %s\n", ver.PackageName)
		fmt.Printf("CIPD instance ID:  %s\n", ver.InstanceID)
		return 0
	}
	buildInfo, ok := debug.ReadBuildInfo()
	if !ok {
		return 0
	}
	printBuildInfo(os.Stdout, buildInfo, c.deps)
	return 0
}

func printBuildInfo(w io.Writer, buildInfo *debug.BuildInfo, deps bool) {
	if buildInfo.GoVersion != "" {
		fmt.Fprintf(w, "go\t%s\n", buildInfo.GoVersion)
	}
	for _, s := range buildInfo.Settings {
		if strings.HasPrefix(s.Key, "vcs.") {
			fmt.Fprintf(w, "build\t%s=%s\n", s.Key, s.Value)
		}
	}
	if !deps {
		return
	}
	for _, m := range buildInfo.Deps {
		fmt.Fprintf(w, "dep\t%s\t%s\n", m.Path, m.Version)
	}
}
