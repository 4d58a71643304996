// Copyright 2016 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package interval implements the interval searcher (component E, spec
// §4.E): given a sorted, non-yanked version list and a known-good seed
// index, it discovers the maximal contiguous interval of versions that
// all pass a caller-supplied probe, using two independent binary
// searches (one per boundary) under the working hypothesis that the set
// of accepted versions is contiguous around the seed.
//
// The searcher does not validate that hypothesis. Versions lying between
// a passing probe and the seed are assumed to pass without being probed,
// so if contiguity is violated — some real-world bug-fix regression — the
// reported interval can include versions that would fail.
package interval

import (
	"github.com/pkg/errors"

	"github.com/golang/widenreq/internal/catalog"
)

// Probe is called with a candidate version and must report whether it
// passes. A non-nil error aborts the search immediately (a hard error,
// per spec §4.B/§4.C) and is returned unwrapped to the caller.
type Probe func(catalog.Version) (bool, error)

// Search runs the two-sided boundary search described in spec §4.E over
// versions (sorted ascending, non-yanked), starting from the known-good
// seed at index seedIdx, and returns the raw requirement expressing the
// interval it discovered. The caller's probe is assumed to already
// return true for versions[seedIdx] (the Driver's baseline check
// establishes this precondition before any search begins).
func Search(versions []catalog.Version, seedIdx int, probe Probe) (catalog.Requirement, error) {
	n := len(versions)
	if n == 0 {
		return catalog.Requirement{}, errors.New("interval: empty version list")
	}
	if seedIdx < 0 || seedIdx >= n {
		return catalog.Requirement{}, errors.Errorf("interval: seed index %d out of range [0,%d)", seedIdx, n)
	}

	if n == 1 {
		return catalog.Exact(versions[0]), nil
	}

	lo, err := searchLeft(versions, seedIdx, probe)
	if err != nil {
		return catalog.Requirement{}, err
	}
	hi, err := searchRight(versions, seedIdx, probe)
	if err != nil {
		return catalog.Requirement{}, err
	}

	if lo == 0 && hi == n-1 {
		return catalog.Any(), nil
	}
	return catalog.Range(versions[lo], versions[hi]), nil
}

// searchLeft finds the lowest index that still passes, starting from the
// known-good seed and working down. It issues at most ⌈log2(seedIdx+1)⌉+1
// probes.
func searchLeft(versions []catalog.Version, seedIdx int, probe Probe) (int, error) {
	validIdx := seedIdx
	invalidIdx := -1 // unset

	for {
		if invalidIdx == -1 {
			if validIdx == 0 {
				return validIdx, nil
			}
			ok, err := probe(versions[0])
			if err != nil {
				return 0, err
			}
			if ok {
				return 0, nil
			}
			invalidIdx = 0
			continue
		}

		if validIdx-invalidIdx <= 1 {
			return validIdx, nil
		}
		m := (invalidIdx + validIdx) / 2
		if m == validIdx || m == invalidIdx {
			return validIdx, nil
		}
		ok, err := probe(versions[m])
		if err != nil {
			return 0, err
		}
		if ok {
			validIdx = m
		} else {
			invalidIdx = m
		}
	}
}

// searchRight is searchLeft's mirror image: it works up from the seed
// toward the top of the list, biasing its midpoint toward the higher
// index (spec §4.E, "Right boundary search").
func searchRight(versions []catalog.Version, seedIdx int, probe Probe) (int, error) {
	n := len(versions)
	validIdx := seedIdx
	invalidIdx := -1 // unset

	for {
		if invalidIdx == -1 {
			if validIdx == n-1 {
				return validIdx, nil
			}
			ok, err := probe(versions[n-1])
			if err != nil {
				return 0, err
			}
			if ok {
				return n - 1, nil
			}
			invalidIdx = n - 1
			continue
		}

		if invalidIdx-validIdx <= 1 {
			return validIdx, nil
		}
		m := (invalidIdx + validIdx + 1) / 2
		if m == validIdx || m == invalidIdx {
			return validIdx, nil
		}
		ok, err := probe(versions[m])
		if err != nil {
			return 0, err
		}
		if ok {
			validIdx = m
		} else {
			invalidIdx = m
		}
	}
}
