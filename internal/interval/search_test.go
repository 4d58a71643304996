// Copyright 2016 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package interval

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/golang/widenreq/internal/catalog"
)

func vs(ss ...string) []catalog.Version {
	out := make([]catalog.Version, len(ss))
	for i, s := range ss {
		out[i] = catalog.MustParseVersion(s)
	}
	return out
}

// tableProbe reports true/false per version string and counts calls.
type tableProbe struct {
	pass  map[string]bool
	calls int
}

func (t *tableProbe) probe(v catalog.Version) (bool, error) {
	t.calls++
	return t.pass[v.String()], nil
}

func TestSearchFullAcceptance(t *testing.T) {
	versions := vs("1.0.0", "1.1.0", "1.2.0")
	p := &tableProbe{pass: map[string]bool{"1.0.0": true, "1.1.0": true, "1.2.0": true}}

	req, err := Search(versions, 1, p.probe)
	require.NoError(t, err)
	assert.Equal(t, "*", req.String())
}

func TestSearchCaretMajorInterval(t *testing.T) {
	versions := vs("1.0.0", "1.1.0", "1.2.0", "2.0.0")
	p := &tableProbe{pass: map[string]bool{
		"1.0.0": true, "1.1.0": true, "1.2.0": true, "2.0.0": false,
	}}

	req, err := Search(versions, 1, p.probe)
	require.NoError(t, err)
	assert.Equal(t, ">=1.0.0,<=1.2.0", req.String())
	for _, v := range []string{"1.0.0", "1.1.0", "1.2.0"} {
		assert.True(t, req.Matches(catalog.MustParseVersion(v)), v)
	}
	assert.False(t, req.Matches(catalog.MustParseVersion("2.0.0")))
}

func TestSearchExactPin(t *testing.T) {
	versions := vs("0.1.0", "0.2.0", "0.3.0")
	p := &tableProbe{pass: map[string]bool{"0.2.0": true}}

	req, err := Search(versions, 1, p.probe)
	require.NoError(t, err)
	assert.Equal(t, ">=0.2.0,<=0.2.0", req.String())
}

func TestSearchOneSidedUpper(t *testing.T) {
	versions := vs("1.0.0", "1.1.0", "1.2.0")
	p := &tableProbe{pass: map[string]bool{"1.0.0": true, "1.1.0": true, "1.2.0": true}}

	req, err := Search(versions, 0, p.probe)
	require.NoError(t, err)
	assert.Equal(t, "*", req.String())
}

func TestSearchSingleCandidate(t *testing.T) {
	versions := vs("1.0.0")
	p := &tableProbe{pass: map[string]bool{"1.0.0": true}}

	req, err := Search(versions, 0, p.probe)
	require.NoError(t, err)
	assert.Equal(t, "=1.0.0", req.String())
	assert.Zero(t, p.calls)
}

func TestSearchHardErrorPropagates(t *testing.T) {
	versions := vs("1.0.0", "1.1.0", "1.2.0")
	boom := func(catalog.Version) (bool, error) { return false, assert.AnError }

	_, err := Search(versions, 1, boom)
	require.Error(t, err)
}

func TestSearchProbeBudget(t *testing.T) {
	versions := vs("1.0.0", "1.1.0", "1.2.0", "1.3.0", "1.4.0", "1.5.0", "1.6.0", "1.7.0")
	p := &tableProbe{pass: map[string]bool{}}
	for _, v := range versions {
		p.pass[v.String()] = true
	}

	_, err := Search(versions, 3, p.probe)
	require.NoError(t, err)

	// At most 2*ceil(log2(n+1))+2 probes, per the invariant in spec §4.E.
	assert.LessOrEqual(t, p.calls, 2*4+2)
}
