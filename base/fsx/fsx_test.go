// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fsx

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileExists(t *testing.T) {
	dir := t.TempDir()
	fn := filepath.Join(dir, "file.txt")
	require.NoError(t, os.WriteFile(fn, []byte("x"), 0666))

	ok, err := FileExists(fn)
	assert.NoError(t, err)
	assert.True(t, ok)

	ok, err = FileExists(dir)
	assert.NoError(t, err)
	assert.False(t, ok)

	ok, err = FileExists(filepath.Join(dir, "missing.txt"))
	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestFindFileUp(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "a", "b")
	require.NoError(t, os.MkdirAll(sub, 0777))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "cfg"), 0777))
	fn := filepath.Join(dir, "cfg", "config.toml")
	require.NoError(t, os.WriteFile(fn, []byte(""), 0666))

	assert.Equal(t, "", FindFileUp(sub, "cfg/config.toml", false))
	assert.Equal(t, fn, FindFileUp(sub, "cfg/config.toml", true))
	assert.Equal(t, fn, FindFileUp(dir, "cfg/config.toml", false))
	assert.Equal(t, fn, FindFileUp("/nowhere", fn, false))
	assert.Equal(t, "", FindFileUp(sub, "cfg/missing.toml", true))

	assert.Equal(t, []string{fn}, FindFilesUp(sub, []string{"missing.toml", "cfg/config.toml"}, true))
	assert.Empty(t, FindFilesUp(sub, []string{"missing.toml"}, true))
}
