// Copyright 2016 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package probe

import (
	"github.com/golang/widenreq/internal/catalog"
	"github.com/golang/widenreq/internal/validate"
)

// fakeValidator is an in-memory Validator driven by a per-version
// accept/reject table, standing in for a real build-tool shellout in
// tests (SPEC_FULL.md §13).
type fakeValidator struct {
	pinned  map[string]catalog.Version
	accept  map[string]bool // dependency name + "@" + version -> verdict
	checks  int
	hardErr error // returned by every Check while set
}

func newFakeValidator() *fakeValidator {
	return &fakeValidator{
		pinned: make(map[string]catalog.Version),
		accept: make(map[string]bool),
	}
}

func (f *fakeValidator) Pin(name string, v catalog.Version) {
	f.pinned[name] = v
}

func (f *fakeValidator) PinAll(seeds map[string]catalog.Version) {
	for n, v := range seeds {
		f.pinned[n] = v
	}
}

func (f *fakeValidator) Check(mode validate.Mode, opts validate.Options) error {
	f.checks++
	if f.hardErr != nil {
		return f.hardErr
	}

	for name, v := range f.pinned {
		if !f.accept[name+"@"+v.String()] {
			return &validate.Failure{ExitCode: 1, Diagnostics: "simulated failure"}
		}
	}
	return nil
}

func (f *fakeValidator) WriteRequirement(name string, req catalog.Requirement) error {
	return nil
}

func (f *fakeValidator) Cleanup() {}

func (f *fakeValidator) allow(name, version string) {
	f.accept[name+"@"+version] = true
}
