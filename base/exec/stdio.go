// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package exec

import (
	"io"
	"os"
)

// StdIO contains the standard input / output Reader / Writers
// used by called commands.
type StdIO struct {
	// Out is the writer to write the standard output of called commands to.
	// It can be set to nil to disable the writing of the standard output.
	Out io.Writer

	// Err is the writer to write the standard error of called commands to.
	// It can be set to nil to disable the writing of the standard error.
	Err io.Writer

	// In is the reader to use as the standard input.
	In io.Reader
}

// StdAll sets all to os.Std*
func (st *StdIO) StdAll() {
	st.Out = os.Stdout
	st.Err = os.Stderr
	st.In = os.Stdin
}
