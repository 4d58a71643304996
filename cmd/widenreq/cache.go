// Copyright 2016 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/golang/widenreq/internal/registry"
)

const defaultIndexURL = "https://index.widenreq.io"

func newCacheCmd(flags *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect or clear the persistent catalog cache.",
	}

	var full bool
	clean := &cobra.Command{
		Use:   "clean",
		Short: "Remove cached catalog entries.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.config()
			if err != nil {
				return err
			}
			disk := registry.NewDiskCache(cfg.CacheDir, cfg.CacheAge)
			return disk.Clean(full, time.Now())
		},
	}
	clean.Flags().BoolVar(&full, "full", false, "remove every cached entry, not just stale ones")

	info := &cobra.Command{
		Use:   "info",
		Short: "Report how many dependencies are cached and where.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.config()
			if err != nil {
				return err
			}
			disk := registry.NewDiskCache(cfg.CacheDir, cfg.CacheAge)
			count, path, err := disk.Info()
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d cached dependencies at %s\n", count, path)
			return nil
		},
	}

	var force bool
	fetch := &cobra.Command{
		Use:   "fetch <name>",
		Short: "Fetch and cache a single dependency's published versions.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.config()
			if err != nil {
				return err
			}
			log := flags.logger()
			disk := registry.NewDiskCache(cfg.CacheDir, cfg.CacheAge)

			if force {
				// A zero TTL makes every cached entry stale, so the
				// fetch below goes to the registry.
				disk.TTL = 0
			}

			fetcher := registry.NewHTTPFetcher(defaultIndexURL, "widenreq/0.1")
			client := registry.NewClient(fetcher, disk, time.Minute, 1, log)
			defer client.Close()

			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			cat, err := client.Populate(ctx, []string{args[0]})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "fetched %d versions for %s\n", len(cat.Entries(args[0])), args[0])
			return nil
		},
	}
	fetch.Flags().BoolVar(&force, "force", false, "bypass the cache and refetch")

	cmd.AddCommand(clean, info, fetch)
	return cmd
}
