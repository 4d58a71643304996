// Copyright 2016 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package registry

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/pkg/errors"
)

// indexLine is one newline-delimited JSON record of a sparse registry
// index file, modeled on crates.io's index format: one line per
// published version of a crate.
type indexLine struct {
	Version string `json:"vers"`
	Yanked  bool   `json:"yanked"`
	Cksum   string `json:"cksum"`
	Deps    []struct {
		Name string `json:"name"`
	} `json:"deps"`
}

// Fetch implements Fetcher by requesting the sparse index path for name
// and decoding its newline-delimited JSON body.
func (f *HTTPFetcher) Fetch(ctx context.Context, name string) ([]CatalogEntry, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.IndexURL+"/"+indexPath(name), nil)
	if err != nil {
		return nil, errors.Wrapf(err, "building index request for %s", name)
	}
	req.Header.Set("User-Agent", f.UserAgent)

	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, "fetching index for %s", name)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.Errorf("registry returned %s fetching %s", resp.Status, name)
	}

	dec := json.NewDecoder(resp.Body)
	var out []CatalogEntry
	for dec.More() {
		var line indexLine
		if err := dec.Decode(&line); err != nil {
			return nil, errors.Wrapf(err, "decoding index line for %s", name)
		}
		deps := make([]string, len(line.Deps))
		for i, d := range line.Deps {
			deps[i] = d.Name
		}
		out = append(out, CatalogEntry{
			Version:      line.Version,
			Yanked:       line.Yanked,
			Checksum:     line.Cksum,
			Dependencies: deps,
		})
	}
	return out, nil
}

// indexPath mirrors the sparse-index convention of bucketing by name
// length/prefix (1/2/3-char names get their own shallow directories;
// everything else nests under its first two character pairs).
func indexPath(name string) string {
	switch len(name) {
	case 0:
		return name
	case 1:
		return "1/" + name
	case 2:
		return "2/" + name
	case 3:
		return "3/" + name[:1] + "/" + name
	default:
		return name[:2] + "/" + name[2:4] + "/" + name
	}
}
