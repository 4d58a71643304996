// Copyright 2016 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package seed implements the seed selector (component D, spec §4.D): for
// each dependency, it picks the one already-known-good version the
// interval searcher expands outward from.
package seed

import (
	"github.com/pkg/errors"

	"github.com/golang/widenreq/internal/catalog"
)

// NoUsableVersion is returned when a dependency has no unyanked version
// at all, whether or not it satisfies the requirement — the fatal case
// spec §4.D calls out explicitly.
type NoUsableVersion struct {
	Name string
}

func (e *NoUsableVersion) Error() string {
	return "no usable (non-yanked, matching) version for dependency " + e.Name
}

// Select picks the seed version for dependency name given its current
// requirement and the locked version from the lock file, if any.
//
// Preference order (spec §4.D):
//  1. The locked version, if it still satisfies req and isn't yanked.
//  2. The greatest non-yanked version satisfying req.
//  3. Failing that, the greatest non-yanked version overall — a
//     yank-repair fallback for when the locked/matching version was
//     yanked out from under the manifest since the lock was written.
//
// An empty result with a *NoUsableVersion error means the dependency has
// no usable version at all and resolution cannot proceed for it.
func Select(cat *catalog.Catalog, name string, req catalog.Requirement, locked *catalog.Version) (catalog.Version, error) {
	if locked != nil {
		if e, ok := cat.Find(name, *locked); ok && !e.Yanked && req.Matches(e.Version) {
			return e.Version, nil
		}
	}

	if v, ok := cat.GreatestMatching(name, req, false); ok {
		return v, nil
	}

	// Yank-repair: the requirement no longer has a non-yanked match (every
	// version it names was pulled). Fall back to the greatest non-yanked
	// version overall rather than failing outright; the Driver will widen
	// the requirement around it.
	if v, ok := cat.GreatestNonYanked(name); ok {
		return v, nil
	}

	return catalog.Version{}, errors.WithStack(&NoUsableVersion{Name: name})
}
