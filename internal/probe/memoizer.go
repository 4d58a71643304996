// Copyright 2016 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package probe implements the per-dependency probe memoizer (component
// C, spec §4.C): it wraps a Validator with a verdict ledger and a
// mandatory inter-probe cooldown, so the interval searcher never issues
// the same (dependency, version) check twice.
package probe

import (
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/pkg/errors"

	"github.com/golang/widenreq/internal/catalog"
	"github.com/golang/widenreq/internal/validate"
)

// DefaultCooldown is the mandatory pause before each first-time probe,
// throttling the downstream build toolchain (spec §4.C, §9).
const DefaultCooldown = 500 * time.Millisecond

// Memoizer wraps a Validator for a single dependency. It is not safe for
// concurrent use — the resolver is single-threaded (spec §5) and a
// Memoizer is owned by exactly one dependency's search.
type Memoizer struct {
	name      string
	validator validate.Validator
	mode      validate.Mode
	opts      validate.Options
	cooldown  time.Duration
	clock     clockwork.Clock

	ledger map[string]bool // version string -> verdict
	probes int
}

// New returns a Memoizer for dependency name, using the default cooldown
// and the real wall clock.
func New(name string, v validate.Validator, mode validate.Mode, opts validate.Options) *Memoizer {
	return &Memoizer{
		name:      name,
		validator: v,
		mode:      mode,
		opts:      opts,
		cooldown:  DefaultCooldown,
		clock:     clockwork.NewRealClock(),
		ledger:    make(map[string]bool),
	}
}

// WithClock overrides the clock used for the cooldown sleep; tests use
// clockwork.NewFakeClock to avoid real sleeps.
func (m *Memoizer) WithClock(c clockwork.Clock) *Memoizer {
	m.clock = c
	return m
}

// WithCooldown overrides the cooldown duration.
func (m *Memoizer) WithCooldown(d time.Duration) *Memoizer {
	m.cooldown = d
	return m
}

// Probes returns the number of Validator.Check invocations made so far —
// the increment-only counter spec §4.C asks for.
func (m *Memoizer) Probes() int { return m.probes }

// Probe returns whether version v passes, consulting the ledger first. A
// hard error aborts and is surfaced to the caller without updating the
// ledger; the caller must not retry after a hard error.
func (m *Memoizer) Probe(v catalog.Version) (bool, error) {
	key := v.String()
	if verdict, ok := m.ledger[key]; ok {
		return verdict, nil
	}

	m.validator.Pin(m.name, v)
	m.clock.Sleep(m.cooldown)

	m.probes++
	err := m.validator.Check(m.mode, m.opts)
	if err == nil {
		m.ledger[key] = true
		return true, nil
	}

	var failure *validate.Failure
	if errors.As(err, &failure) {
		m.ledger[key] = false
		return false, nil
	}

	// Hard error: do not record a verdict, per spec §4.C.
	return false, err
}
