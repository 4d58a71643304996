// Copyright 2016 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package seed

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/golang/widenreq/internal/catalog"
)

func mkCatalog(entries ...catalog.Entry) *catalog.Catalog {
	return catalog.New(map[string][]catalog.Entry{"serde": entries})
}

func entry(version string, yanked bool) catalog.Entry {
	return catalog.Entry{Version: catalog.MustParseVersion(version), Yanked: yanked}
}

func TestSelectPrefersValidLockedVersion(t *testing.T) {
	cat := mkCatalog(entry("1.0.0", false), entry("1.1.0", false), entry("1.2.0", false))
	req := catalog.Caret(catalog.MustParseVersion("1.0.0"), 1)
	locked := catalog.MustParseVersion("1.0.0")

	got, err := Select(cat, "serde", req, &locked)
	require.NoError(t, err)
	assert.Equal(t, "1.0.0", got.String())
}

func TestSelectFallsBackWhenLockedVersionYanked(t *testing.T) {
	cat := mkCatalog(entry("1.0.0", true), entry("1.1.0", false), entry("1.2.0", false))
	req := catalog.Any()
	locked := catalog.MustParseVersion("1.0.0")

	got, err := Select(cat, "serde", req, &locked)
	require.NoError(t, err)
	assert.Equal(t, "1.2.0", got.String())
}

func TestSelectUsesGreatestMatchingWithoutLock(t *testing.T) {
	cat := mkCatalog(entry("1.0.0", false), entry("1.1.0", false), entry("2.0.0", false))
	req := catalog.Caret(catalog.MustParseVersion("1.0.0"), 1)

	got, err := Select(cat, "serde", req, nil)
	require.NoError(t, err)
	assert.Equal(t, "1.1.0", got.String())
}

func TestSelectYankRepairFallsBackToGreatestNonYanked(t *testing.T) {
	// Every version satisfying req has since been yanked.
	cat := mkCatalog(entry("1.0.0", true), entry("1.1.0", true), entry("2.0.0", false))
	req := catalog.Caret(catalog.MustParseVersion("1.0.0"), 1)

	got, err := Select(cat, "serde", req, nil)
	require.NoError(t, err)
	assert.Equal(t, "2.0.0", got.String())
}

func TestSelectNoUsableVersion(t *testing.T) {
	cat := mkCatalog(entry("1.0.0", true), entry("1.1.0", true))
	req := catalog.Any()

	_, err := Select(cat, "serde", req, nil)
	require.Error(t, err)
	var nuv *NoUsableVersion
	assert.ErrorAs(t, err, &nuv)
}
