// Copyright 2016 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package probe

import (
	"testing"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/golang/widenreq/internal/catalog"
	"github.com/golang/widenreq/internal/validate"
)

func TestProbeMemoizesPerVersion(t *testing.T) {
	fv := newFakeValidator()
	fv.allow("foo", "1.0.0")

	m := New("foo", fv, validate.ModeBuild, validate.Options{}).
		WithClock(clockwork.NewFakeClock()).WithCooldown(0)

	ok, err := m.Probe(catalog.MustParseVersion("1.0.0"))
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 1, fv.checks)

	// Second probe for the same version must not touch the validator.
	ok, err = m.Probe(catalog.MustParseVersion("1.0.0"))
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 1, fv.checks)
	assert.Equal(t, 1, m.Probes())
}

func TestProbeRecordsFailureWithoutReprobing(t *testing.T) {
	fv := newFakeValidator()
	m := New("foo", fv, validate.ModeBuild, validate.Options{}).
		WithClock(clockwork.NewFakeClock()).WithCooldown(0)

	ok, err := m.Probe(catalog.MustParseVersion("2.0.0"))
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = m.Probe(catalog.MustParseVersion("2.0.0"))
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, 1, fv.checks)
}

func TestProbeHardErrorDoesNotUpdateLedger(t *testing.T) {
	fv := newFakeValidator()
	fv.hardErr = assert.AnError

	m := New("foo", fv, validate.ModeBuild, validate.Options{}).
		WithClock(clockwork.NewFakeClock()).WithCooldown(0)

	_, err := m.Probe(catalog.MustParseVersion("1.0.0"))
	require.Error(t, err)

	// Ledger wasn't updated; a retry (with the hard error cleared) probes again.
	fv.hardErr = nil
	fv.allow("foo", "1.0.0")
	ok, err := m.Probe(catalog.MustParseVersion("1.0.0"))
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 2, fv.checks)
}
