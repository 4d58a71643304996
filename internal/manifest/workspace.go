// Copyright 2016 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package manifest

import (
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
	"github.com/pkg/errors"
)

// LoadTree parses the manifest at root, following its [workspace].members
// globs (if any) to produce the uniform package list spec §9 requires: a
// single-package tree and a workspace tree are indistinguishable to every
// caller downstream of this function.
func LoadTree(root string) ([]Package, error) {
	data, err := os.ReadFile(root)
	if err != nil {
		return nil, errors.Wrapf(err, "reading manifest %s", root)
	}

	var raw rawDocument
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, errors.Wrapf(err, "parsing manifest %s", root)
	}

	if raw.Workspace == nil {
		pkg, err := ReadPackage(root)
		if err != nil {
			return nil, err
		}
		return []Package{pkg}, nil
	}

	dir := filepath.Dir(root)
	var packages []Package
	for _, member := range raw.Workspace.Members {
		matches, err := filepath.Glob(filepath.Join(dir, member))
		if err != nil {
			return nil, errors.Wrapf(err, "expanding workspace member glob %q", member)
		}
		for _, m := range matches {
			manifestPath := filepath.Join(m, FileName)
			if _, err := os.Stat(manifestPath); err != nil {
				continue
			}
			pkg, err := ReadPackage(manifestPath)
			if err != nil {
				return nil, err
			}
			packages = append(packages, pkg)
		}
	}
	return packages, nil
}

// FilterByInclude keeps only packages whose name matches at least one of
// the given glob patterns. A nil or empty patterns list keeps everything
// (spec §6, "resolve [<path>] [--include <glob>]*").
func FilterByInclude(packages []Package, patterns []string) ([]Package, error) {
	if len(patterns) == 0 {
		return packages, nil
	}

	var out []Package
	for _, pkg := range packages {
		for _, pat := range patterns {
			ok, err := filepath.Match(pat, pkg.Name)
			if err != nil {
				return nil, errors.Wrapf(err, "invalid include pattern %q", pat)
			}
			if ok {
				out = append(out, pkg)
				break
			}
		}
	}
	return out, nil
}
