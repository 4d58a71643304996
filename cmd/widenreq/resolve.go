// Copyright 2016 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/golang/widenreq/internal/fsutil"
	"github.com/golang/widenreq/internal/manifest"
	"github.com/golang/widenreq/internal/registry"
	"github.com/golang/widenreq/internal/resolve"
	"github.com/golang/widenreq/internal/validate"
)

func newResolveCmd(flags *globalFlags) *cobra.Command {
	var (
		includes []string
		features []string
		release  bool
		noTest   bool
	)

	cmd := &cobra.Command{
		Use:   "resolve [path]",
		Short: "Compute the widest requirement per dependency that still builds (and, by default, tests) clean.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.config()
			if err != nil {
				return err
			}
			cfg.Release = release
			cfg.NoTest = noTest
			cfg.Features = features
			cfg.Includes = includes
			log := flags.logger()

			start := ""
			if len(args) == 1 {
				start = args[0]
			}
			root, err := fsutil.FindRoot(start)
			if err != nil {
				return err
			}

			manifestPath := filepath.Join(root, manifest.FileName)
			packages, err := manifest.LoadTree(manifestPath)
			if err != nil {
				return err
			}
			packages, err = manifest.FilterByInclude(packages, cfg.Includes)
			if err != nil {
				return err
			}

			locked, err := manifest.ReadLock(filepath.Join(root, manifest.LockFileName))
			if err != nil {
				return err
			}

			disk := registry.NewDiskCache(cfg.CacheDir, cfg.CacheAge)
			fetcher := registry.NewHTTPFetcher(defaultIndexURL, "widenreq/0.1")
			client := registry.NewClient(fetcher, disk, time.Minute, 8, log)
			defer client.Close()

			names := dependencyNames(packages)
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
			defer cancel()
			cat, err := client.Populate(ctx, names)
			if err != nil {
				return err
			}

			mode := validate.ModeTest
			if cfg.NoTest {
				mode = validate.ModeBuild
			}

			driver := &resolve.Driver{
				Catalog:   cat,
				Validator: validate.NewExec(cfg.CargoPath, root, log),
				Mode:      mode,
				Opts: validate.Options{
					Features: cfg.Features,
					Release:  cfg.Release,
				},
				Log: log,
			}

			result, err := driver.Resolve(packages, locked)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, name := range sortedKeys(result) {
				fmt.Fprintf(out, "%s = %q\n", name, result[name].String())
			}
			return nil
		},
	}

	cmd.Flags().StringArrayVar(&includes, "include", nil, "only resolve packages matching this glob (repeatable)")
	cmd.Flags().StringArrayVarP(&features, "feature", "f", nil, "enable a feature flag during validation (repeatable)")
	cmd.Flags().BoolVar(&release, "release", false, "validate in release mode")
	cmd.Flags().BoolVar(&noTest, "no-test", false, "only build, skip running tests")

	return cmd
}

func dependencyNames(packages []manifest.Package) []string {
	seen := make(map[string]bool)
	var names []string
	for _, pkg := range packages {
		for _, list := range [][]manifest.Dependency{pkg.Runtime, pkg.BuildTime, pkg.DevTime} {
			for _, dep := range list {
				if dep.SourceControlled || seen[dep.Name] {
					continue
				}
				seen[dep.Name] = true
				names = append(names, dep.Name)
			}
		}
	}
	return names
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
