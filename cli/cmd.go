// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cli

import (
	"reflect"
	"runtime"
	"strings"

	"github.com/iancoleman/strcase"
)

// Cmd represents a runnable command with configuration options.
// The type constraint is the type of the configuration
// information passed to the command.
type Cmd[T any] struct {

	// Func is the actual function that runs the command.
	// It takes configuration information and returns an error.
	Func func(T) error

	// Name is the name of the command.
	Name string

	// Doc is the documentation for the command.
	Doc string

	// Root is whether the command is the root command
	// (what is called when no subcommands are passed)
	Root bool
}

// NewCmd returns a new [Cmd] for the given function, named
// after the function in kebab-case, with the given documentation.
func NewCmd[T any](fun func(T) error, doc string) *Cmd[T] {
	return &Cmd[T]{Func: fun, Name: funcCmdName(fun), Doc: doc}
}

// funcCmdName returns the kebab-case command name for the given function.
func funcCmdName(fun any) string {
	fn := runtime.FuncForPC(reflect.ValueOf(fun).Pointer()).Name()
	// we need to get rid of package name and then convert to kebab
	strs := strings.Split(fn, ".")
	return strcase.ToKebab(strs[len(strs)-1])
}

// AddCmd adds the given command to the given set of commands
// if there is not already a command with the same name in the
// set of commands. Also, if [Cmd.Root] is set to true on the
// passed command, and there are no other root commands in the
// given set of commands, the passed command will be made the
// root command; otherwise, it will be made not the root command.
func AddCmd[T any](cmds []*Cmd[T], cmd *Cmd[T]) []*Cmd[T] {
	hasCmd := false
	hasRoot := false
	for _, c := range cmds {
		if c.Name == cmd.Name {
			hasCmd = true
		}
		if c.Root {
			hasRoot = true
		}
	}
	if hasCmd {
		return cmds
	}
	cmd.Root = cmd.Root && !hasRoot // we must both want root and be able to take root
	return append(cmds, cmd)
}

// findCmd returns the command with the given name, or the root
// command if the name is empty, or nil if there is none.
func findCmd[T any](cmds []*Cmd[T], name string) *Cmd[T] {
	for _, c := range cmds {
		if (name == "" && c.Root) || (name != "" && c.Name == name) {
			return c
		}
	}
	return nil
}

// strcaseTitle converts a kebab-case name to Title Case.
func strcaseTitle(name string) string {
	words := strings.Fields(strcase.ToDelimited(name, ' '))
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
