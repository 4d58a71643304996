// Copyright 2016 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package catalog

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Op identifies a single comparator's operator.
type Op uint8

const (
	// OpAny matches every version ("*").
	OpAny Op = iota
	// OpGE is a lower, inclusive bound.
	OpGE
	// OpLE is an upper, inclusive bound.
	OpLE
	// OpEQ pins a single exact version.
	OpEQ
	// OpCaret is a caret requirement over 1, 2, or 3 components.
	OpCaret
)

// Comparator is one clause of a Requirement: (op, major, minor?, patch?, pre).
// HasMinor/HasPatch distinguish "^0" from "^0.0" from "^0.0.0", which admit
// different matched sets.
type Comparator struct {
	Op       Op
	Major    uint64
	Minor    uint64
	Patch    uint64
	HasMinor bool
	HasPatch bool
	Pre      string
}

// Requirement is an ordered, conjunctive list of comparators: Matches(v)
// holds iff v satisfies every comparator.
type Requirement struct {
	Comparators []Comparator
}

// Any is the universal requirement, matching every version in a catalog.
func Any() Requirement {
	return Requirement{Comparators: []Comparator{{Op: OpAny}}}
}

// Exact pins a single version.
func Exact(v Version) Requirement {
	return Requirement{Comparators: []Comparator{comparatorFromVersion(OpEQ, v)}}
}

// Caret builds a caret requirement over the given prefix length (1, 2, or 3
// components) of v. depth==1 emits "^major" (floor major.0.0), depth==2
// "^major.minor" (floor major.minor.0), depth==3 "^major.minor.patch" (floor
// the full triple) — components the depth omits are zeroed in the floor, not
// inherited from v, matching what ParseRequirement produces for the same
// text.
func Caret(v Version, depth int) Requirement {
	c := Comparator{Op: OpCaret, Major: v.Major(), Pre: v.Prerelease()}
	switch depth {
	case 1:
	case 2:
		c.Minor, c.HasMinor = v.Minor(), true
	case 3:
		c.Minor, c.HasMinor = v.Minor(), true
		c.Patch, c.HasPatch = v.Patch(), true
	default:
		panic(fmt.Sprintf("catalog: invalid caret depth %d", depth))
	}
	return Requirement{Comparators: []Comparator{c}}
}

// Range builds the two-sided ">=lo,<=hi" requirement the interval searcher
// (component E) emits before simplification.
func Range(lo, hi Version) Requirement {
	return Requirement{Comparators: []Comparator{
		comparatorFromVersion(OpGE, lo),
		comparatorFromVersion(OpLE, hi),
	}}
}

// GE builds a one-sided lower-bound-only requirement.
func GE(lo Version) Requirement {
	return Requirement{Comparators: []Comparator{comparatorFromVersion(OpGE, lo)}}
}

// LE builds a one-sided upper-bound-only requirement.
func LE(hi Version) Requirement {
	return Requirement{Comparators: []Comparator{comparatorFromVersion(OpLE, hi)}}
}

func comparatorFromVersion(op Op, v Version) Comparator {
	return Comparator{
		Op:       op,
		Major:    v.Major(),
		Minor:    v.Minor(),
		Patch:    v.Patch(),
		HasMinor: true,
		HasPatch: true,
		Pre:      v.Prerelease(),
	}
}

func (c Comparator) bound() Version {
	return newVersion(c.Major, c.Minor, c.Patch, c.Pre)
}

// Matches reports whether v satisfies every comparator in r.
func (r Requirement) Matches(v Version) bool {
	for _, c := range r.Comparators {
		if !c.matches(v) {
			return false
		}
	}
	return true
}

func (c Comparator) matches(v Version) bool {
	switch c.Op {
	case OpAny:
		return true
	case OpEQ:
		return v.Equal(c.bound())
	case OpGE:
		return !v.Less(c.bound())
	case OpLE:
		return !c.bound().Less(v)
	case OpCaret:
		return caretMatches(c, v)
	default:
		return false
	}
}

// caretMatches implements standard semver caret semantics: the leftmost
// nonzero component named by the comparator is held fixed, everything to
// its right may float upward, and components the comparator didn't name are
// unconstrained above the floor.
func caretMatches(c Comparator, v Version) bool {
	floor := c.bound()
	if v.Less(floor) {
		return false
	}

	switch {
	case !c.HasMinor: // ^major
		return v.Major() == c.Major
	case !c.HasPatch: // ^major.minor
		if c.Major > 0 {
			return v.Major() == c.Major
		}
		return v.Major() == 0 && v.Minor() == c.Minor
	default: // ^major.minor.patch
		if c.Major > 0 {
			return v.Major() == c.Major
		}
		if c.Minor > 0 {
			return v.Major() == 0 && v.Minor() == c.Minor
		}
		return v.Major() == 0 && v.Minor() == 0 && v.Patch() == c.Patch
	}
}

// String renders the canonical textual form used in manifests.
func (r Requirement) String() string {
	parts := make([]string, 0, len(r.Comparators))
	for _, c := range r.Comparators {
		parts = append(parts, c.String())
	}
	return strings.Join(parts, ",")
}

func (c Comparator) String() string {
	switch c.Op {
	case OpAny:
		return "*"
	case OpEQ:
		return "=" + c.bound().String()
	case OpGE:
		return ">=" + c.bound().String()
	case OpLE:
		return "<=" + c.bound().String()
	case OpCaret:
		switch {
		case !c.HasMinor:
			return "^" + strconv.FormatUint(c.Major, 10)
		case !c.HasPatch:
			return fmt.Sprintf("^%d.%d", c.Major, c.Minor)
		default:
			b := c.bound()
			return "^" + b.String()
		}
	default:
		return ""
	}
}

// ParseRequirement parses the comma-separated comparator syntax produced by
// String back into a Requirement. Supported per comparator: "*", "=x.y.z",
// ">=x.y.z", "<=x.y.z", "^x", "^x.y", "^x.y.z".
func ParseRequirement(s string) (Requirement, error) {
	s = strings.TrimSpace(s)
	if s == "" || s == "*" {
		return Any(), nil
	}

	fields := strings.Split(s, ",")
	req := Requirement{Comparators: make([]Comparator, 0, len(fields))}
	for _, f := range fields {
		f = strings.TrimSpace(f)
		c, err := parseComparator(f)
		if err != nil {
			return Requirement{}, errors.Wrapf(err, "parsing requirement %q", s)
		}
		req.Comparators = append(req.Comparators, c)
	}
	return req, nil
}

func parseComparator(f string) (Comparator, error) {
	switch {
	case f == "*":
		return Comparator{Op: OpAny}, nil
	case strings.HasPrefix(f, ">="):
		v, err := ParseVersion(strings.TrimPrefix(f, ">="))
		if err != nil {
			return Comparator{}, err
		}
		return comparatorFromVersion(OpGE, v), nil
	case strings.HasPrefix(f, "<="):
		v, err := ParseVersion(strings.TrimPrefix(f, "<="))
		if err != nil {
			return Comparator{}, err
		}
		return comparatorFromVersion(OpLE, v), nil
	case strings.HasPrefix(f, "="):
		v, err := ParseVersion(strings.TrimPrefix(f, "="))
		if err != nil {
			return Comparator{}, err
		}
		return comparatorFromVersion(OpEQ, v), nil
	case strings.HasPrefix(f, "^"):
		return parseCaret(strings.TrimPrefix(f, "^"))
	default:
		return Comparator{}, errors.Errorf("unrecognized comparator %q", f)
	}
}

func parseCaret(body string) (Comparator, error) {
	parts := strings.Split(body, ".")
	var major, minor, patch uint64
	var err error

	major, err = strconv.ParseUint(parts[0], 10, 64)
	if err != nil {
		return Comparator{}, errors.Wrapf(err, "invalid major in caret requirement %q", body)
	}
	c := Comparator{Op: OpCaret, Major: major}

	if len(parts) >= 2 {
		minor, err = strconv.ParseUint(parts[1], 10, 64)
		if err != nil {
			return Comparator{}, errors.Wrapf(err, "invalid minor in caret requirement %q", body)
		}
		c.Minor, c.HasMinor = minor, true
	}
	if len(parts) >= 3 {
		patch, err = strconv.ParseUint(parts[2], 10, 64)
		if err != nil {
			return Comparator{}, errors.Wrapf(err, "invalid patch in caret requirement %q", body)
		}
		c.Patch, c.HasPatch = patch, true
	}
	if len(parts) > 3 {
		return Comparator{}, errors.Errorf("too many components in caret requirement %q", body)
	}

	return c, nil
}
