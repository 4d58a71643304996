// Copyright 2016 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package catalog holds the read-only mapping from dependency name to its
// published versions, as supplied by the registry client (component A).
package catalog

import (
	"fmt"
	"sort"

	"github.com/Masterminds/semver/v3"
	"github.com/pkg/errors"
)

// Version is a semantic-version triple plus an optional pre-release tag.
// Two versions are equal only when all components match; ordering follows
// standard semver precedence.
type Version struct {
	sv *semver.Version
}

// ParseVersion parses a semver string such as "1.2.3" or "1.2.3-rc.1".
func ParseVersion(s string) (Version, error) {
	sv, err := semver.NewVersion(s)
	if err != nil {
		return Version{}, errors.Wrapf(err, "parsing version %q", s)
	}
	return Version{sv: sv}, nil
}

// MustParseVersion is ParseVersion, panicking on error. Intended for
// constant-ish callers (tests, hardcoded fixtures).
func MustParseVersion(s string) Version {
	v, err := ParseVersion(s)
	if err != nil {
		panic(err)
	}
	return v
}

func newVersion(major, minor, patch uint64, pre string) Version {
	sv := semver.New(major, minor, patch, pre, "")
	return Version{sv: sv}
}

func (v Version) Major() uint64 { return v.sv.Major() }
func (v Version) Minor() uint64 { return v.sv.Minor() }
func (v Version) Patch() uint64 { return v.sv.Patch() }
func (v Version) Prerelease() string {
	return v.sv.Prerelease()
}

// IsZero reports whether v is the zero Version (no underlying semver.Version).
func (v Version) IsZero() bool { return v.sv == nil }

// Compare returns -1, 0, or 1 as v is less than, equal to, or greater than o.
func (v Version) Compare(o Version) int {
	return v.sv.Compare(o.sv)
}

// Less reports whether v orders strictly before o.
func (v Version) Less(o Version) bool { return v.Compare(o) < 0 }

// Equal reports whether v and o have identical major, minor, patch, and
// pre-release components.
func (v Version) Equal(o Version) bool { return v.Compare(o) == 0 }

func (v Version) String() string {
	if v.sv == nil {
		return ""
	}
	return v.sv.String()
}

// SortVersions sorts versions ascending, in place.
func SortVersions(vs []Version) {
	sort.Slice(vs, func(i, j int) bool { return vs[i].Less(vs[j]) })
}

var _ fmt.Stringer = Version{}
