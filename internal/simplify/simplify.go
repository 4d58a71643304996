// Copyright 2016 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package simplify implements the requirement simplifier (component F,
// spec §4.F): it rewrites the raw interval the searcher discovered into
// the narrowest conventional form — '*', an exact pin, or a caret of
// some depth — that matches exactly the same subset of the catalog, and
// falls back to the raw two-sided interval when none does.
package simplify

import (
	"github.com/golang/widenreq/internal/catalog"
)

// Simplify rewrites raw into the simplest requirement that selects the
// same versions out of versions (the package's sorted, non-yanked
// candidate list). seed is the version the search expanded from; it plays
// no part in building candidate caret forms (those must be floored at
// the raw interval's own lower bound, per spec §4.F steps 3-5), but is
// accepted so callers can pass it through for future diagnostics.
func Simplify(raw catalog.Requirement, versions []catalog.Version, seed catalog.Version) catalog.Requirement {
	target := matchSet(raw, versions)

	if len(target) == len(versions) {
		return catalog.Any()
	}
	if len(target) == 1 {
		return catalog.Exact(target[0])
	}

	floor := target[0]
	for depth := 1; depth <= 3; depth++ {
		cand := catalog.Caret(floor, depth)
		if sameSet(matchSet(cand, versions), target) {
			return cand
		}
	}

	return raw
}

func matchSet(req catalog.Requirement, versions []catalog.Version) []catalog.Version {
	var out []catalog.Version
	for _, v := range versions {
		if req.Matches(v) {
			out = append(out, v)
		}
	}
	return out
}

// sameSet compares two version slices already drawn (in order) from the
// same sorted versions list, so index-wise equality is sufficient.
func sameSet(a, b []catalog.Version) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}
	return true
}
