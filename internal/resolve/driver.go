// Copyright 2016 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package resolve implements the Driver (component G, spec §4.G): it
// orchestrates the catalog, seed selector, probe memoizer, interval
// searcher, and simplifier across every declared dependency, and writes
// the resolved requirements back through the Validator.
package resolve

import (
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/golang/widenreq/internal/catalog"
	"github.com/golang/widenreq/internal/interval"
	"github.com/golang/widenreq/internal/manifest"
	"github.com/golang/widenreq/internal/probe"
	"github.com/golang/widenreq/internal/seed"
	"github.com/golang/widenreq/internal/simplify"
	"github.com/golang/widenreq/internal/validate"
)

// Driver ties components A-F together into one resolver run.
type Driver struct {
	Catalog   *catalog.Catalog
	Validator validate.Validator
	Mode      validate.Mode
	Opts      validate.Options
	Log       *logrus.Entry

	// Cooldown and Clock override the probe memoizer's defaults; tests set
	// a zero cooldown and a fake clock to run without real sleeps.
	Cooldown time.Duration
	Clock    clockwork.Clock
}

// declaration is one dependency as seen across every target package,
// reduced to the single requirement the seed selector and searcher need.
type declaration struct {
	name string
	req  catalog.Requirement
}

// Resolve runs the full sequence from spec §4.G over packages (already
// filtered to the workspace members the caller selected) and the parsed
// lock file (nil/empty if absent). It returns the simplified requirement
// for every dependency that was seeded and searched.
func (d *Driver) Resolve(packages []manifest.Package, locked []manifest.LockedDependency) (map[string]catalog.Requirement, error) {
	decls := d.collectDeclarations(packages)

	lockedByName := make(map[string]catalog.Version, len(locked))
	for _, l := range locked {
		lockedByName[l.Name] = l.Version
	}

	seeds := make(map[string]catalog.Version, len(decls))
	for _, decl := range decls {
		var lockedVersion *catalog.Version
		if v, ok := lockedByName[decl.name]; ok {
			lockedVersion = &v
		}
		v, err := seed.Select(d.Catalog, decl.name, decl.req, lockedVersion)
		if err != nil {
			return nil, errors.Wrapf(err, "seeding %s", decl.name)
		}
		seeds[decl.name] = v
	}

	d.Validator.PinAll(seeds)
	if err := d.Validator.Check(d.Mode, d.Opts); err != nil {
		var failure *validate.Failure
		if errors.As(err, &failure) {
			return nil, errors.Wrap(err, "default configuration does not build")
		}
		return nil, err
	}

	result := make(map[string]catalog.Requirement, len(seeds))
	for _, name := range d.Catalog.Names() {
		seedVersion, ok := seeds[name]
		if !ok {
			continue // not a declared dependency of this run
		}

		versions := d.Catalog.NonYanked(name)
		seedIdx, ok := indexOf(versions, seedVersion)
		if !ok {
			return nil, errors.Errorf("seed %s for %s is not in its own non-yanked version list", seedVersion, name)
		}

		mem := probe.New(name, d.Validator, d.Mode, d.Opts)
		if d.Clock != nil {
			mem = mem.WithClock(d.Clock)
		}
		if d.Cooldown > 0 || d.Clock != nil {
			mem = mem.WithCooldown(d.Cooldown)
		}

		raw, err := interval.Search(versions, seedIdx, mem.Probe)
		if err != nil {
			return nil, errors.Wrapf(err, "searching %s", name)
		}

		result[name] = simplify.Simplify(raw, versions, seedVersion)

		// Restore the pin to the seed before the next dependency's search
		// treats the working tree as its own isolated baseline (spec §4.G).
		d.Validator.Pin(name, seedVersion)
	}

	for name, req := range result {
		if err := d.Validator.WriteRequirement(name, req); err != nil {
			return nil, errors.Wrapf(err, "writing back %s", name)
		}
	}
	d.Validator.Cleanup()

	return result, nil
}

// collectDeclarations flattens every target package's runtime, build-time,
// and dev-time dependency lists into one set, skipping source-controlled
// dependencies with a warning (spec §6, §7). The first requirement seen
// for a given name wins; workspace members are expected to agree.
func (d *Driver) collectDeclarations(packages []manifest.Package) []declaration {
	seen := make(map[string]bool)
	var decls []declaration

	add := func(dep manifest.Dependency) {
		if dep.SourceControlled {
			if d.Log != nil {
				d.Log.Warnf("skipping source-control dependency %s", dep.Name)
			}
			return
		}
		if seen[dep.Name] {
			return
		}
		seen[dep.Name] = true
		decls = append(decls, declaration{name: dep.Name, req: dep.RequiredVersion})
	}

	for _, pkg := range packages {
		for _, dep := range pkg.Runtime {
			add(dep)
		}
		for _, dep := range pkg.BuildTime {
			add(dep)
		}
		for _, dep := range pkg.DevTime {
			add(dep)
		}
	}
	return decls
}

func indexOf(versions []catalog.Version, v catalog.Version) (int, bool) {
	for i, c := range versions {
		if c.Equal(v) {
			return i, true
		}
	}
	return 0, false
}
