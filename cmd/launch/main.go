// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command launch runs mobile and desktop apps through
// the app framework CLI and reports whether they launched.
package main

import (
	"cogentcore.org/launch/cli"
	"cogentcore.org/launch/cmd/launch/cmd"
	"cogentcore.org/launch/cmd/launch/config"
)

func main() {
	opts := cli.DefaultOptions("launch", "Launch runs apps through the app framework CLI and reports whether they launched.")
	opts.DefaultFiles = []string{".launch/config.toml"}
	opts.SearchUp = true
	run := cli.NewCmd(cmd.Run, "run the app on the configured platform and target")
	run.Root = true
	cli.Run(opts, &config.Config{},
		run,
		cli.NewCmd(cmd.Args, "print the arguments of the run command"),
		cli.NewCmd(cmd.Prewarm, "prewarm the packager bundle cache"),
	)
}
