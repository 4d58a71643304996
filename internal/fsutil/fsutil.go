// Copyright 2016 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package fsutil locates the project root the CLI should operate on,
// adapting the teacher's GOPATH-rooted project search to a plain
// upward directory walk for the manifest file.
package fsutil

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/golang/widenreq/internal/manifest"
)

// FindRoot searches upward from start (the current working directory if
// start is empty) for a directory containing manifest.FileName, the way
// the build tool itself locates the package root.
func FindRoot(start string) (string, error) {
	if start == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", errors.Wrap(err, "getting working directory")
		}
		start = wd
	}

	abs, err := filepath.Abs(start)
	if err != nil {
		return "", errors.Wrapf(err, "resolving %s", start)
	}

	dir := abs
	for {
		ok, err := IsRegular(filepath.Join(dir, manifest.FileName))
		if err != nil {
			return "", err
		}
		if ok {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", errors.Errorf("no %s found in %s or any parent directory", manifest.FileName, abs)
		}
		dir = parent
	}
}

// IsDir reports whether path exists and is a directory.
func IsDir(path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, errors.Wrapf(err, "statting %s", path)
	}
	return info.IsDir(), nil
}

// IsRegular reports whether path exists and is a regular file.
func IsRegular(path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, errors.Wrapf(err, "statting %s", path)
	}
	return info.Mode().IsRegular(), nil
}
