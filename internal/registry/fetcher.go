// Copyright 2016 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package registry populates the resolver's catalog (component A) from
// an external package index. It sits entirely outside the resolver core
// (spec §4.A, §6): the core consumes a finished *catalog.Catalog and
// never performs network I/O itself.
package registry

import (
	"context"
	"net/http"
	"time"
)

// Fetcher retrieves the full published-version list for one dependency
// name from a package registry. Implementations must be safe for
// concurrent use — the Client drives a bounded pool of them.
type Fetcher interface {
	Fetch(ctx context.Context, name string) ([]CatalogEntry, error)
}

// CatalogEntry is the wire shape a Fetcher returns, ahead of being
// folded into a catalog.Entry (this package doesn't import internal/catalog
// to keep the registry/cache wire format independent of the core's
// in-memory types).
type CatalogEntry struct {
	Version      string    `cbor:"version"`
	Yanked       bool      `cbor:"yanked"`
	Checksum     string    `cbor:"checksum"`
	PublishedAt  time.Time `cbor:"published_at"`
	Dependencies []string  `cbor:"dependencies"`
}

// HTTPFetcher is the concrete, user-agent-identified registry client
// (spec §5: "a bounded user-agent-identified client"). The index API it
// speaks to is left to the caller via IndexURL; this type only owns the
// transport and decoding shape.
type HTTPFetcher struct {
	Client    *http.Client
	IndexURL  string // e.g. "https://index.example.com"
	UserAgent string
}

// NewHTTPFetcher returns an HTTPFetcher with sane defaults.
func NewHTTPFetcher(indexURL, userAgent string) *HTTPFetcher {
	return &HTTPFetcher{
		Client:    &http.Client{Timeout: 30 * time.Second},
		IndexURL:  indexURL,
		UserAgent: userAgent,
	}
}
