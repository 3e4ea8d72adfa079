/*
Copyright © 2026 the unitconv authors.
This file is part of unitconv.

unitconv is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

unitconv is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with unitconv.  If not, see <http://www.gnu.org/licenses/>.
*/

package unitconv

import (
	"errors"
	"testing"
)

func TestAddPresetIdempotent(t *testing.T) {
	r := newPresetRegistry(t, "all")
	n, fp := r.Len(), r.Fingerprint()
	edges := len(r.edges)
	for _, p := range append(PresetNames(), "temp") {
		if err := r.AddPreset(p); err != nil {
			t.Fatalf("%s: %v", p, err)
		}
	}
	if r.Len() != n || len(r.edges) != edges || r.Fingerprint() != fp {
		t.Errorf("reloading presets changed the registry: %d units (was %d), %d conversions (was %d)",
			r.Len(), n, len(r.edges), edges)
	}
}

func TestAddPresetUnknown(t *testing.T) {
	r := NewRegistry()
	err := r.AddPreset("imperial")
	if !errors.Is(err, ErrUnknownPreset) {
		t.Errorf("have error %v, want %v", err, ErrUnknownPreset)
	}
	if StatusCode(err) != StatusUnknownPreset {
		t.Errorf("status: have %d, want %d", StatusCode(err), StatusUnknownPreset)
	}
	if r.Len() != 0 {
		t.Errorf("unknown preset defined %d units", r.Len())
	}
}

func TestPresetContents(t *testing.T) {
	tests := []struct {
		preset  string
		units   int
		has     []string
		hasNone []string
	}{
		{
			preset:  "time",
			units:   16,
			has:     []string{"s", "ms", "ks", "min", "h", "d"},
			hasNone: []string{"m", "K"},
		},
		{
			preset:  "temp",
			units:   4,
			has:     []string{"F", "C", "K", "R"},
			hasNone: []string{"s"},
		},
		{
			preset:  "length",
			units:   18,
			has:     []string{"m", "cm", "km", "A", "in", "ft", "yd", "mi"},
			hasNone: []string{"m3"},
		},
		{
			preset: "energy",
			units:  39,
			has:    []string{"V", "kV", "eV", "neV", "J", "kJ"},
		},
		{
			// Loading volume must not load time instead.
			preset:  "volume",
			units:   16,
			has:     []string{"m3", "cm3", "ft3", "gal", "L"},
			hasNone: []string{"min", "s", "m"},
		},
	}
	for _, test := range tests {
		t.Run(test.preset, func(t *testing.T) {
			r := newPresetRegistry(t, test.preset)
			if r.Len() != test.units {
				t.Errorf("have %d units, want %d", r.Len(), test.units)
			}
			for _, name := range test.has {
				if _, ok := r.Find(name); !ok {
					t.Errorf("missing %s", name)
				}
			}
			for _, name := range test.hasNone {
				if _, ok := r.Find(name); ok {
					t.Errorf("unexpected %s", name)
				}
			}
		})
	}
}

func TestPresetDimensions(t *testing.T) {
	r := newPresetRegistry(t, "all")
	for _, u := range r.Units() {
		if u.Dims == nil {
			t.Errorf("%s has no dimensions", u.Name())
		}
	}
}
