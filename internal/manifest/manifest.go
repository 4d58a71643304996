// Copyright 2016 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package manifest parses and rewrites the TOML manifest (widenreq.toml,
// playing the role Cargo.toml plays for the original this spec was
// distilled from) and its companion lock file.
package manifest

import (
	"os"

	"github.com/pelletier/go-toml/v2"
	"github.com/pkg/errors"

	"github.com/golang/widenreq/internal/catalog"
)

// FileName is the manifest's on-disk name.
const FileName = "widenreq.toml"

// Dependency is one declared dependency, carrying everything spec §6
// ("Manifest declarations") names: name, required version, feature list,
// optional flag, and the source-control flag that excludes it from
// resolution entirely.
type Dependency struct {
	Name             string
	RequiredVersion  catalog.Requirement
	Features         []string
	Optional         bool
	SourceControlled bool
}

// Package is one parsed target package: name, concrete version, manifest
// path, and three dependency lists. The manifest parser produces a
// uniform []Package regardless of whether the tree is a workspace or a
// single package (spec §9) — workspace membership is flattened away here.
type Package struct {
	Name         string
	Version      catalog.Version
	ManifestPath string
	Runtime      []Dependency
	BuildTime    []Dependency
	DevTime      []Dependency
}

// rawDependency is the TOML wire shape for a dependency table entry.
type rawDependency struct {
	Version  string   `toml:"version,omitempty"`
	Features []string `toml:"features,omitempty"`
	Optional bool     `toml:"optional,omitempty"`
	Git      string   `toml:"git,omitempty"`
}

type rawPackage struct {
	Name    string `toml:"name"`
	Version string `toml:"version"`
}

type rawDocument struct {
	Package      rawPackage               `toml:"package"`
	Dependencies map[string]rawDependency `toml:"dependencies"`
	BuildDeps    map[string]rawDependency `toml:"build-dependencies"`
	DevDeps      map[string]rawDependency `toml:"dev-dependencies"`
	Workspace    *rawWorkspace            `toml:"workspace,omitempty"`
}

type rawWorkspace struct {
	Members []string `toml:"members,omitempty"`
}

// ReadPackage parses a single manifest file into a Package. Workspace
// member discovery is handled by LoadTree (workspace.go); ReadPackage always
// returns exactly one package for the file it's given.
func ReadPackage(path string) (Package, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Package{}, errors.Wrapf(err, "reading manifest %s", path)
	}

	var raw rawDocument
	if err := toml.Unmarshal(data, &raw); err != nil {
		return Package{}, errors.Wrapf(err, "parsing manifest %s", path)
	}

	v, err := catalog.ParseVersion(raw.Package.Version)
	if err != nil {
		return Package{}, errors.Wrapf(err, "parsing package version in %s", path)
	}

	pkg := Package{
		Name:         raw.Package.Name,
		Version:      v,
		ManifestPath: path,
	}

	pkg.Runtime, err = toDependencies(raw.Dependencies)
	if err != nil {
		return Package{}, errors.Wrapf(err, "parsing [dependencies] in %s", path)
	}
	pkg.BuildTime, err = toDependencies(raw.BuildDeps)
	if err != nil {
		return Package{}, errors.Wrapf(err, "parsing [build-dependencies] in %s", path)
	}
	pkg.DevTime, err = toDependencies(raw.DevDeps)
	if err != nil {
		return Package{}, errors.Wrapf(err, "parsing [dev-dependencies] in %s", path)
	}

	return pkg, nil
}

func toDependencies(raw map[string]rawDependency) ([]Dependency, error) {
	if len(raw) == 0 {
		return nil, nil
	}

	deps := make([]Dependency, 0, len(raw))
	for name, rd := range raw {
		req := catalog.Any()
		if rd.Version != "" {
			var err error
			req, err = catalog.ParseRequirement(rd.Version)
			if err != nil {
				// Fall back to treating it as a plain semver constraint
				// expression isn't possible here; surface the error, the
				// same way the teacher's toProps does for malformed
				// manifest constraints.
				return nil, errors.Wrapf(err, "dependency %s", name)
			}
		}

		deps = append(deps, Dependency{
			Name:             name,
			RequiredVersion:  req,
			Features:         rd.Features,
			Optional:         rd.Optional,
			SourceControlled: rd.Git != "",
		})
	}
	return deps, nil
}

// WriteRequirement rewrites a single dependency's version requirement in
// place in the manifest at path, preserving every other field and table.
func WriteRequirement(path, name string, req catalog.Requirement) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrapf(err, "reading manifest %s", path)
	}

	var doc map[string]any
	if err := toml.Unmarshal(data, &doc); err != nil {
		return errors.Wrapf(err, "parsing manifest %s", path)
	}

	deps, _ := doc["dependencies"].(map[string]any)
	rd, ok := deps[name].(map[string]any)
	if !ok {
		return errors.Errorf("dependency %s not found in %s", name, path)
	}
	rd["version"] = req.String()

	out, err := toml.Marshal(doc)
	if err != nil {
		return errors.Wrapf(err, "encoding manifest %s", path)
	}

	if err := os.WriteFile(path, out, 0o644); err != nil {
		return errors.Wrapf(err, "writing manifest %s", path)
	}
	return nil
}
