// Copyright 2016 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package manifest

import (
	"os"

	"github.com/pelletier/go-toml/v2"
	"github.com/pkg/errors"

	"github.com/golang/widenreq/internal/catalog"
)

// LockFileName is the lock file's on-disk name.
const LockFileName = "widenreq.lock"

// LockedDependency is one (name, version) pair from the lock file.
type LockedDependency struct {
	Name    string
	Version catalog.Version
}

type rawLockEntry struct {
	Name    string `toml:"name"`
	Version string `toml:"version"`
}

type rawLock struct {
	Package []rawLockEntry `toml:"package"`
}

// ReadLock parses the lock file at path. Absence is non-fatal: callers
// should treat a missing lock file as "no seed information available",
// per spec §6 ("Lock file. Optional.").
func ReadLock(path string) ([]LockedDependency, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.Wrapf(err, "reading lock file %s", path)
	}

	var raw rawLock
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, errors.Wrapf(err, "parsing lock file %s", path)
	}

	out := make([]LockedDependency, 0, len(raw.Package))
	for _, e := range raw.Package {
		v, err := catalog.ParseVersion(e.Version)
		if err != nil {
			return nil, errors.Wrapf(err, "lock entry %s", e.Name)
		}
		out = append(out, LockedDependency{Name: e.Name, Version: v})
	}
	return out, nil
}
