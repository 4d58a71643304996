// Copyright 2016 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/golang/widenreq/internal/fsutil"
	"github.com/golang/widenreq/internal/manifest"
)

func newListDependenciesCmd(flags *globalFlags) *cobra.Command {
	var includes []string

	cmd := &cobra.Command{
		Use:   "list-dependencies [path]",
		Short: "List the dependencies a resolve run would consider.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			start := ""
			if len(args) == 1 {
				start = args[0]
			}

			root, err := fsutil.FindRoot(start)
			if err != nil {
				return err
			}

			packages, err := manifest.LoadTree(filepath.Join(root, manifest.FileName))
			if err != nil {
				return err
			}
			packages, err = manifest.FilterByInclude(packages, includes)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			seen := make(map[string]bool)
			for _, pkg := range packages {
				for _, list := range [][]manifest.Dependency{pkg.Runtime, pkg.BuildTime, pkg.DevTime} {
					for _, dep := range list {
						if dep.SourceControlled || seen[dep.Name] {
							continue
						}
						seen[dep.Name] = true
						fmt.Fprintf(out, "%s %s\n", dep.Name, dep.RequiredVersion.String())
					}
				}
			}
			return nil
		},
	}

	cmd.Flags().StringArrayVar(&includes, "include", nil, "only list dependencies of packages matching this glob (repeatable)")
	return cmd
}
