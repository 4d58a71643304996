// Copyright 2016 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package registry

import (
	"os"
	"path/filepath"
	"time"

	"github.com/fxamacker/cbor/v2"
	"github.com/gofrs/flock"
	"github.com/pkg/errors"
)

// cachedEntry is one dependency's cached catalog data plus the time it
// was fetched, the unit the on-disk cache tracks freshness against
// (spec §6, "Persistent catalog cache").
type cachedEntry struct {
	Entries       []CatalogEntry `cbor:"entries"`
	LastFetchedAt time.Time      `cbor:"last_fetched_at"`
}

// DiskCache is the on-disk CBOR file mapping dependency name to its
// cached catalog data, guarded by an flock-based file lock so concurrent
// invocations of the CLI don't corrupt it.
type DiskCache struct {
	Path string
	TTL  time.Duration
}

// NewDiskCache returns a DiskCache rooted at dir/catalog.cbor.
func NewDiskCache(dir string, ttl time.Duration) *DiskCache {
	return &DiskCache{Path: filepath.Join(dir, "catalog.cbor"), TTL: ttl}
}

// Get returns the cached entries for name if present and not older than
// the TTL.
func (c *DiskCache) Get(name string) ([]CatalogEntry, bool, error) {
	all, err := c.load()
	if err != nil {
		return nil, false, err
	}
	e, ok := all[name]
	if !ok {
		return nil, false, nil
	}
	if time.Since(e.LastFetchedAt) > c.TTL {
		return nil, false, nil
	}
	return e.Entries, true, nil
}

// Put records freshly-fetched entries for name, stamped with the
// current time.
func (c *DiskCache) Put(name string, entries []CatalogEntry, now time.Time) error {
	lock := flock.New(c.Path + ".lock")
	if err := lock.Lock(); err != nil {
		return errors.Wrapf(err, "locking %s", c.Path)
	}
	defer lock.Unlock()

	all, err := c.loadLocked()
	if err != nil {
		return err
	}
	all[name] = cachedEntry{Entries: entries, LastFetchedAt: now}
	return c.saveLocked(all)
}

// Clean removes every cached entry, or only stale ones when full is
// false (spec's "cache clean [--full]" subcommand).
func (c *DiskCache) Clean(full bool, now time.Time) error {
	lock := flock.New(c.Path + ".lock")
	if err := lock.Lock(); err != nil {
		return errors.Wrapf(err, "locking %s", c.Path)
	}
	defer lock.Unlock()

	if full {
		if err := os.Remove(c.Path); err != nil && !os.IsNotExist(err) {
			return errors.Wrapf(err, "removing %s", c.Path)
		}
		return nil
	}

	all, err := c.loadLocked()
	if err != nil {
		return err
	}
	for name, e := range all {
		if now.Sub(e.LastFetchedAt) > c.TTL {
			delete(all, name)
		}
	}
	return c.saveLocked(all)
}

// Info reports the number of cached entries and the path backing them.
func (c *DiskCache) Info() (count int, path string, err error) {
	all, err := c.load()
	if err != nil {
		return 0, c.Path, err
	}
	return len(all), c.Path, nil
}

func (c *DiskCache) load() (map[string]cachedEntry, error) {
	lock := flock.New(c.Path + ".lock")
	if err := lock.RLock(); err != nil {
		return nil, errors.Wrapf(err, "locking %s", c.Path)
	}
	defer lock.Unlock()
	return c.loadLocked()
}

func (c *DiskCache) loadLocked() (map[string]cachedEntry, error) {
	b, err := os.ReadFile(c.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return make(map[string]cachedEntry), nil
		}
		return nil, errors.Wrapf(err, "reading %s", c.Path)
	}
	if len(b) == 0 {
		return make(map[string]cachedEntry), nil
	}

	var all map[string]cachedEntry
	if err := cbor.Unmarshal(b, &all); err != nil {
		return nil, errors.Wrapf(err, "decoding %s", c.Path)
	}
	return all, nil
}

func (c *DiskCache) saveLocked(all map[string]cachedEntry) error {
	if err := os.MkdirAll(filepath.Dir(c.Path), 0o755); err != nil {
		return errors.Wrapf(err, "creating %s", filepath.Dir(c.Path))
	}

	b, err := cbor.Marshal(all)
	if err != nil {
		return errors.Wrap(err, "encoding catalog cache")
	}
	if err := os.WriteFile(c.Path, b, 0o644); err != nil {
		return errors.Wrapf(err, "writing %s", c.Path)
	}
	return nil
}
