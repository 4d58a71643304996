// Copyright 2016 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func v(s string) Version { return MustParseVersion(s) }

func TestCatalogNonYankedSortedAscending(t *testing.T) {
	c := New(map[string][]Entry{
		"serde": {
			{Version: v("1.2.0")},
			{Version: v("1.0.0")},
			{Version: v("1.1.0"), Yanked: true},
			{Version: v("2.0.0")},
		},
	})

	got := c.NonYanked("serde")
	require.Len(t, got, 3)
	assert.Equal(t, "1.0.0", got[0].String())
	assert.Equal(t, "1.2.0", got[1].String())
	assert.Equal(t, "2.0.0", got[2].String())
}

func TestCatalogGreatestMatching(t *testing.T) {
	c := New(map[string][]Entry{
		"foo": {
			{Version: v("1.0.0")},
			{Version: v("1.5.0"), Yanked: true},
			{Version: v("1.4.0")},
		},
	})

	req := Caret(v("1.0.0"), 1)

	best, ok := c.GreatestMatching("foo", req, false)
	require.True(t, ok)
	assert.Equal(t, "1.4.0", best.String())

	best, ok = c.GreatestMatching("foo", req, true)
	require.True(t, ok)
	assert.Equal(t, "1.5.0", best.String())
}

func TestCatalogNamesSorted(t *testing.T) {
	c := New(map[string][]Entry{
		"zeta":  {{Version: v("1.0.0")}},
		"alpha": {{Version: v("1.0.0")}},
	})
	assert.Equal(t, []string{"alpha", "zeta"}, c.Names())
}
