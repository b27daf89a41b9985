// Copyright 2023 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package help provides help subcommand.
package help

import (
	"flag"
	"fmt"

	"github.com/maruel/subcommands"

	"github.com/williamjshipman/cppsbom/build/buildconfig"
)

// Cmd returns the Command for the `help` subcommand provided by this package.
func Cmd() *subcommands.Command {
	return &subcommands.Command{
		UsageLine: "help [<command>|-advanced]",
		ShortDesc: "prints help about a command",
		LongDesc:  "Prints commands and globally-available flags or help about a specific command.\nUse -advanced to display all commands, including debugging commands such as cmakeparse.",
		CommandRun: func() subcommands.CommandRun {
			c := &run{}
			c.Flags.BoolVar(&c.advanced, "advanced", false, "show advanced commands")
			return c
		},
	}
}

type run struct {
	subcommands.CommandRunBase
	advanced bool
}

func (c *run) Run(a subcommands.Application, args []string, env subcommands.Env) int {
	if len(args) > 0 {
		return subcommands.CmdHelp.CommandRun().Run(a, args, env)
	}
	out := a.GetOut()
	subcommands.Usage(out, a, c.advanced)
	fmt.Fprintf(out, "Config file %s in the root directory is loaded if exists.\n\n", buildconfig.DefaultFilename)
	fmt.Fprintln(out, "Common flags accepted by all commands:")
	flag.CommandLine.SetOutput(out)
	flag.PrintDefaults()
	return 0
}
