// Copyright 2016 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package validate defines the boundary between the resolver core and the
// external build tool: apply a version pin, then check the working tree
// (component B, spec §4.B).
package validate

import (
	"strconv"

	"github.com/golang/widenreq/internal/catalog"
)

// Mode selects what Check runs: a build-only pass, or build-plus-test.
type Mode uint8

const (
	// ModeBuild runs a build-only check.
	ModeBuild Mode = iota
	// ModeTest runs build-plus-test.
	ModeTest
)

// Options carries the build/test knobs threaded through every probe:
// package selection, feature flags, release mode, and test filters. This
// generalizes the Rust original's BuildOptions/TestOptions into one struct
// since every probe in a single resolver run shares the same options.
type Options struct {
	Packages []string
	Features []string
	Release  bool
	Tests    []string
}

// Failure is a validation failure: the build or test tool ran and reported
// a non-zero outcome. It is a recoverable signal ("this version does not
// work"), distinct from a hard error (I/O failure, tool missing), which
// Validator methods report as a plain error instead.
type Failure struct {
	ExitCode    int
	Diagnostics string
}

func (f *Failure) Error() string {
	return "validation failed with exit code " + strconv.Itoa(f.ExitCode)
}

// Validator is the abstract "apply a pin / run a check" boundary the
// resolver core consumes. Implementations may shell out to a real build
// tool (Exec, below) or be an in-memory fake for tests (see
// internal/resolve's test helpers).
type Validator interface {
	// Pin records that the working tree should build with dependency name
	// fixed at the exact concrete version. Idempotent; overwrites any prior
	// pin for that name.
	Pin(name string, version catalog.Version)

	// PinAll is the bulk form of Pin, applied before the baseline check.
	PinAll(seeds map[string]catalog.Version)

	// Check runs a build or build+test of the working tree under the
	// current pin set. A *Failure return means the build/test tool ran and
	// reported a non-zero outcome; any other non-nil error is a hard,
	// fatal infrastructure error.
	Check(mode Mode, opts Options) error

	// WriteRequirement persists a requirement expression into the
	// manifest for name.
	WriteRequirement(name string, req catalog.Requirement) error

	// Cleanup releases any scratch state. Best-effort: callers must not
	// rely on it running, or succeeding, after an aborted run.
	Cleanup()
}
