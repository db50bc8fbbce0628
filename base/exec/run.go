// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Adapted in part from: https://github.com/magefile/mage
// Copyright presumably by Nate Finch, primary contributor
// Apache License, Version 2.0, January 2004

package exec

import (
	"bytes"
	"errors"
	"os/exec"
	"strings"

	"github.com/mattn/go-shellwords"
)

// Output runs the command and returns the text from stdout.
func (c *Config) Output(cmd string, args ...string) (string, error) {
	nc := *c
	// need to use buf to capture output
	buf := &bytes.Buffer{}
	nc.StdIO.Out = buf
	_, err := nc.Exec(cmd, args...)
	if c.StdIO.Out != nil {
		c.StdIO.Out.Write(buf.Bytes())
	}
	return strings.TrimSuffix(buf.String(), "\n"), err
}

// Args returns a string parsed into separate args
// that can be passed into run commands, following
// shell quoting rules.
func Args(str string) ([]string, error) {
	return shellwords.Parse(str)
}

func asExitError(err error, target **exec.ExitError) bool {
	return errors.As(err, target)
}
