// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package cli generates command line interfaces from config
// structs and command functions. Config values come from `default:`
// struct tags, then config files, then command line flags, with
// later sources overriding earlier ones.
package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"reflect"
	"strings"

	"cogentcore.org/launch/base/logx"
)

// Config is implemented by config objects that need to act on
// their final values before the command runs, such as setting
// the logging level.
type Config interface {
	// OnConfig is called with the name of the command to be run
	// once the config object has been fully set.
	OnConfig(cmd string) error
}

// ConfigFlags are the flags that name a config file to open
// instead of [Options.DefaultFiles].
var ConfigFlags = []string{"config", "cfg"}

// Run runs an app with the given options, configuration struct,
// and commands, using [os.Args] for its arguments. The configuration
// struct should be passed as a pointer. If [Options.Fatal] is set,
// errors are printed and the program exits with code 1.
func Run[T any](opts *Options, cfg T, cmds ...*Cmd[T]) error {
	err := RunArgs(opts, cfg, os.Args[1:], os.Stdout, cmds...)
	if err != nil && opts.Fatal {
		logx.PrintlnError("error: ", err)
		os.Exit(1)
	}
	return err
}

// RunArgs is like [Run], but with the given arguments, writing
// usage to the given writer, and never exiting. The first argument
// names the command if it does not start with a dash; otherwise the
// root command is run.
func RunArgs[T any](opts *Options, cfg T, args []string, out io.Writer, cmds ...*Cmd[T]) error {
	if reflect.TypeOf(cfg).Kind() != reflect.Pointer {
		return fmt.Errorf("cli.RunArgs: config must be a pointer, not %T", cfg)
	}
	name := ""
	if len(args) > 0 && !strings.HasPrefix(args[0], "-") {
		name, args = args[0], args[1:]
	}
	if name == "help" {
		fmt.Fprint(out, Usage(opts, cfg, cmds...))
		return nil
	}
	cmd := findCmd(cmds, name)
	if cmd == nil {
		if name == "" {
			fmt.Fprint(out, Usage(opts, cfg, cmds...))
			return nil
		}
		return fmt.Errorf("unknown command %q", name)
	}

	if err := Configure(opts, cfg, args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			fmt.Fprint(out, Usage(opts, cfg, cmds...))
			return nil
		}
		return err
	}
	if c, ok := any(cfg).(Config); ok {
		if err := c.OnConfig(cmd.Name); err != nil {
			return err
		}
	}
	if err := cmd.Func(cfg); err != nil {
		return fmt.Errorf("%s: %w", cmd.Name, err)
	}
	if opts.PrintSuccess {
		logx.PrintlnInfo(opts.AppName, " ", cmd.Name, " succeeded")
	}
	return nil
}

// Configure sets the given config object, which must be a pointer
// to a struct, from its `default:` struct tags, then from its config
// files, then from the given flag arguments. Positional arguments
// are an error.
func Configure(opts *Options, cfg any, args []string) error {
	if err := SetFromDefaults(cfg); err != nil {
		return err
	}
	files, err := configFileArgs(args)
	if err != nil {
		return err
	}
	if files == nil {
		wd, err := os.Getwd()
		if err != nil {
			return err
		}
		files = configFiles(opts, wd)
	}
	if opts.NeedConfigFile && len(files) == 0 {
		return fmt.Errorf("a config file is required; none found in %v", opts.DefaultFiles)
	}
	for _, f := range files {
		if err := OpenConfig(cfg, f); err != nil {
			return err
		}
	}

	fs := newFlagSet(opts.AppName, cfg, io.Discard)
	for _, cf := range ConfigFlags {
		fs.String(cf, "", "config file")
	}
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("unexpected arguments %q", fs.Args())
	}
	return nil
}

// configFileArgs returns the config files named with [ConfigFlags]
// in the given arguments, or nil if there are none.
func configFileArgs(args []string) ([]string, error) {
	fs := flag.NewFlagSet("config", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	var files []string
	for _, cf := range ConfigFlags {
		fs.Func(cf, "config file", func(s string) error {
			files = append(files, s)
			return nil
		})
	}
	for len(args) > 0 {
		a := args[0]
		args = args[1:]
		nm := strings.TrimLeft(a, "-")
		if nm == a || a == "--" {
			continue
		}
		key, _, hasValue := strings.Cut(nm, "=")
		if fs.Lookup(key) == nil {
			continue
		}
		pa := []string{a}
		if !hasValue && len(args) > 0 {
			pa = append(pa, args[0])
			args = args[1:]
		}
		if err := fs.Parse(pa); err != nil {
			return nil, err
		}
	}
	return files, nil
}
