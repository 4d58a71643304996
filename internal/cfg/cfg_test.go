// Copyright 2016 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cfg

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveCacheDirExplicitWins(t *testing.T) {
	got, err := ResolveCacheDir("/tmp/explicit")
	require.NoError(t, err)
	assert.Equal(t, "/tmp/explicit", got)
}

func TestResolveCacheDirDerivesFromHome(t *testing.T) {
	t.Setenv("HOME", "/home/gopher")
	got, err := ResolveCacheDir("")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/home/gopher", ".cache", AppName), got)
}

func TestCacheAgeFromHoursDefault(t *testing.T) {
	assert.Equal(t, DefaultCacheAge, CacheAgeFromHours(0))
	assert.Equal(t, 12*time.Hour, CacheAgeFromHours(12))
}
