// Copyright 2016 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequirementMatches(t *testing.T) {
	v := func(s string) Version { return MustParseVersion(s) }

	tests := []struct {
		name string
		req  Requirement
		in   []string
		out  []string
	}{
		{
			name: "any matches everything",
			req:  Any(),
			in:   []string{"0.0.1", "1.2.3", "9.9.9"},
		},
		{
			name: "exact matches only itself",
			req:  Exact(v("1.2.3")),
			in:   []string{"1.2.3"},
			out:  []string{"1.2.2", "1.2.4"},
		},
		{
			name: "caret major holds major fixed",
			req:  Caret(v("1.2.3"), 1),
			in:   []string{"1.2.3", "1.9.9"},
			out:  []string{"0.9.9", "2.0.0"},
		},
		{
			name: "caret major.minor.patch with zero major holds minor fixed",
			req:  Caret(v("0.2.3"), 3),
			in:   []string{"0.2.3", "0.2.9"},
			out:  []string{"0.2.2", "0.3.0", "1.0.0"},
		},
		{
			name: "caret with zero major and zero minor holds patch fixed",
			req:  Caret(v("0.0.3"), 3),
			in:   []string{"0.0.3"},
			out:  []string{"0.0.2", "0.0.4", "0.1.0"},
		},
		{
			name: "range is inclusive both ends",
			req:  Range(v("1.0.0"), v("1.2.0")),
			in:   []string{"1.0.0", "1.1.5", "1.2.0"},
			out:  []string{"0.9.9", "1.2.1"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, s := range tt.in {
				assert.Truef(t, tt.req.Matches(v(s)), "%s should match %s", tt.req, s)
			}
			for _, s := range tt.out {
				assert.Falsef(t, tt.req.Matches(v(s)), "%s should not match %s", tt.req, s)
			}
		})
	}
}

func TestRequirementStringRoundTrip(t *testing.T) {
	v := func(s string) Version { return MustParseVersion(s) }

	reqs := []Requirement{
		Any(),
		Exact(v("1.2.3")),
		Caret(v("1.2.3"), 1),
		Caret(v("1.2.3"), 2),
		Caret(v("1.2.3"), 3),
		Range(v("1.0.0"), v("2.0.0")),
	}

	for _, r := range reqs {
		s := r.String()
		got, err := ParseRequirement(s)
		require.NoError(t, err)
		assert.Equal(t, s, got.String(), "round trip through %q", s)
	}
}

func TestCaretStringForms(t *testing.T) {
	v := MustParseVersion("1.2.3")
	assert.Equal(t, "^1", Caret(v, 1).String())
	assert.Equal(t, "^1.2", Caret(v, 2).String())
	assert.Equal(t, "^1.2.3", Caret(v, 3).String())
}
