// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cli

// Options contains the options passed to [Run]
// that control its behavior.
type Options struct {

	// AppName is the internal name of the app
	// (typically in kebab-case) (see also [Options.AppTitle])
	AppName string

	// AppTitle is the user-visible name of the app
	// (typically in Title Case) (see also [Options.AppName])
	AppTitle string

	// AppAbout is the description of the app.
	AppAbout string

	// Fatal is whether to, if there is an error in [Run],
	// print it and fatally exit the program through [os.Exit]
	// with an exit code of 1.
	Fatal bool

	// PrintSuccess is whether to print a message indicating
	// that a command was successful after it is run.
	PrintSuccess bool

	// DefaultFiles are the default configuration file paths,
	// which are opened in order if they exist. A file given with
	// the config flag replaces them.
	DefaultFiles []string

	// SearchUp indicates whether to search up the filesystem
	// for the default config files by checking the default
	// config file locations relative to each directory up the tree.
	SearchUp bool

	// NeedConfigFile indicates whether a configuration file
	// must be found for the command to run.
	NeedConfigFile bool
}

// DefaultOptions returns a new [Options] value
// with standard default values, based on the given
// app name and optional app about info.
func DefaultOptions(appName string, appAbout ...string) *Options {
	abt := ""
	if len(appAbout) > 0 {
		abt = appAbout[0]
	}
	return &Options{
		AppName:      appName,
		AppTitle:     strcaseTitle(appName),
		AppAbout:     abt,
		Fatal:        true,
		PrintSuccess: true,
		DefaultFiles: []string{"config.toml"},
	}
}
