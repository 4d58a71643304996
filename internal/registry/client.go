// Copyright 2016 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package registry

import (
	"context"
	"time"

	"github.com/alitto/pond/v2"
	"github.com/cenkalti/backoff/v5"
	"github.com/jellydator/ttlcache/v3"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/golang/widenreq/internal/catalog"
)

// Client populates a catalog.Catalog from a Fetcher, layering an
// in-memory ttlcache fast path over the persistent DiskCache, retrying
// transient fetch failures, and bounding how many names are fetched
// concurrently (spec §5: "expected to perform parallel fetches with a
// bounded ... client").
type Client struct {
	Fetcher     Fetcher
	Disk        *DiskCache
	Concurrency int
	MaxTries    uint
	Log         *logrus.Entry

	mem *ttlcache.Cache[string, []CatalogEntry]
}

// NewClient wires up a Client. memTTL is typically much shorter than the
// disk cache's TTL — it only needs to survive one resolver run.
func NewClient(fetcher Fetcher, disk *DiskCache, memTTL time.Duration, concurrency int, log *logrus.Entry) *Client {
	mem := ttlcache.New[string, []CatalogEntry](ttlcache.WithTTL[string, []CatalogEntry](memTTL))
	go mem.Start()

	if concurrency <= 0 {
		concurrency = 8
	}
	return &Client{
		Fetcher:     fetcher,
		Disk:        disk,
		Concurrency: concurrency,
		MaxTries:    3,
		Log:         log,
		mem:         mem,
	}
}

// Close stops the in-memory cache's background eviction goroutine.
func (c *Client) Close() { c.mem.Stop() }

type fetchResult struct {
	name    string
	entries []CatalogEntry
}

// Populate fetches every name in names (deduplication is the caller's
// responsibility) and assembles the results into a catalog.Catalog.
func (c *Client) Populate(ctx context.Context, names []string) (*catalog.Catalog, error) {
	pool := pond.NewResultPool[fetchResult](c.Concurrency)
	group := pool.NewGroupContext(ctx)

	for _, name := range names {
		name := name
		group.SubmitErr(func() (fetchResult, error) {
			entries, err := c.fetchOne(ctx, name)
			return fetchResult{name: name, entries: entries}, err
		})
	}

	results, err := group.Wait()
	if err != nil {
		return nil, errors.Wrap(err, "populating catalog")
	}

	byName := make(map[string][]catalog.Entry, len(results))
	for _, r := range results {
		entries, err := toCatalogEntries(r.entries)
		if err != nil {
			return nil, errors.Wrapf(err, "decoding catalog entries for %s", r.name)
		}
		byName[r.name] = entries
	}
	return catalog.New(byName), nil
}

func (c *Client) fetchOne(ctx context.Context, name string) ([]CatalogEntry, error) {
	if item := c.mem.Get(name); item != nil {
		return item.Value(), nil
	}

	if cached, ok, err := c.Disk.Get(name); err != nil {
		return nil, err
	} else if ok {
		c.mem.Set(name, cached, ttlcache.DefaultTTL)
		return cached, nil
	}

	entries, err := backoff.Retry(ctx, func() ([]CatalogEntry, error) {
		return c.Fetcher.Fetch(ctx, name)
	}, backoff.WithBackOff(backoff.NewExponentialBackOff()), backoff.WithMaxTries(c.MaxTries))
	if err != nil {
		return nil, errors.Wrapf(err, "fetching %s", name)
	}

	if err := c.Disk.Put(name, entries, time.Now()); err != nil && c.Log != nil {
		c.Log.Warnf("caching %s: %v", name, err)
	}
	c.mem.Set(name, entries, ttlcache.DefaultTTL)
	return entries, nil
}

func toCatalogEntries(in []CatalogEntry) ([]catalog.Entry, error) {
	out := make([]catalog.Entry, len(in))
	for i, e := range in {
		v, err := catalog.ParseVersion(e.Version)
		if err != nil {
			return nil, errors.Wrapf(err, "parsing version %q", e.Version)
		}
		out[i] = catalog.Entry{
			Version:     v,
			Yanked:      e.Yanked,
			Checksum:    e.Checksum,
			PublishedAt: e.PublishedAt,
			Requires:    e.Dependencies,
		}
	}
	return out, nil
}
