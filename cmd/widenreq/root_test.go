// Copyright 2016 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRootCmdRegistersSubcommands(t *testing.T) {
	root := newRootCmd()

	names := make(map[string]bool)
	for _, c := range root.Commands() {
		names[c.Name()] = true
	}

	assert.True(t, names["cache"])
	assert.True(t, names["list-dependencies"])
	assert.True(t, names["resolve"])
}

func TestRootCmdGlobalFlags(t *testing.T) {
	root := newRootCmd()

	for _, name := range []string{"cache-dir", "cache-age", "verbose", "quiet", "silent", "cargo-path"} {
		assert.NotNil(t, root.PersistentFlags().Lookup(name), "missing persistent flag %s", name)
	}
}

func TestCacheCmdHasSubcommands(t *testing.T) {
	flags := &globalFlags{}
	cache := newCacheCmd(flags)

	names := make(map[string]bool)
	for _, c := range cache.Commands() {
		names[c.Name()] = true
	}
	assert.True(t, names["clean"])
	assert.True(t, names["info"])
	assert.True(t, names["fetch"])
}
