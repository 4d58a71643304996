// Copyright 2016 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/golang/widenreq/internal/cfg"
	"github.com/golang/widenreq/internal/ui"
)

// globalFlags are the persistent flags shared by every subcommand
// (spec §6, "CLI surface").
type globalFlags struct {
	cacheDir  string
	cacheAge  int
	verbose   bool
	quiet     bool
	silent    bool
	cargoPath string
}

func newRootCmd() *cobra.Command {
	flags := &globalFlags{}

	root := &cobra.Command{
		Use:           "widenreq",
		Short:         "Compute the widest semver requirement per dependency that still builds and tests clean.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&flags.cacheDir, "cache-dir", "", "catalog cache directory (default $HOME/.cache/widenreq)")
	pf.IntVar(&flags.cacheAge, "cache-age", 48, "catalog cache freshness, in hours")
	pf.BoolVar(&flags.verbose, "verbose", false, "enable debug logging")
	pf.BoolVar(&flags.quiet, "quiet", false, "only log errors")
	pf.BoolVar(&flags.silent, "silent", false, "suppress all non-fatal output")
	pf.StringVar(&flags.cargoPath, "cargo-path", "cargo", "path to the build tool binary")

	root.AddCommand(
		newCacheCmd(flags),
		newListDependenciesCmd(flags),
		newResolveCmd(flags),
	)

	return root
}

func (f *globalFlags) config() (*cfg.Config, error) {
	dir, err := cfg.ResolveCacheDir(f.cacheDir)
	if err != nil {
		return nil, err
	}
	return &cfg.Config{
		CacheDir:  dir,
		CacheAge:  cfg.CacheAgeFromHours(f.cacheAge),
		Verbose:   f.verbose,
		Quiet:     f.quiet,
		Silent:    f.silent,
		CargoPath: f.cargoPath,
	}, nil
}

func (f *globalFlags) logger() *logrus.Entry {
	l := ui.New(f.verbose, f.quiet, f.silent)
	return logrus.NewEntry(l)
}
