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

	"github.com/ctessum/unit"
)

func TestParseDimensions(t *testing.T) {
	d, err := ParseDimensions(map[string]int{"kg": 1, "m": 2, "s": -2})
	if err != nil {
		t.Fatal(err)
	}
	if !d.Matches(unit.Joule) {
		t.Errorf("have %v, want %v", d, unit.Joule)
	}
	d, err = ParseDimensions(map[string]int{"m": 1, "s": 0})
	if err != nil {
		t.Fatal(err)
	}
	if !d.Matches(unit.Meter) {
		t.Errorf("zero powers should be dropped: have %v", d)
	}
	if _, err := ParseDimensions(map[string]int{"furlong": 1}); err == nil {
		t.Error("furlong is not an SI base unit")
	}
}

func TestDimensions(t *testing.T) {
	r := newPresetRegistry(t, "all")
	tests := []struct {
		expr string
		want unit.Dimensions
		ok   bool
	}{
		{expr: "km", want: unit.Meter, ok: true},
		{expr: "m/s", want: unit.MeterPerSecond, ok: true},
		{expr: "cm3", want: unit.Meter3, ok: true},
		{expr: "m3/s", want: unit.Meter3PerSecond, ok: true},
		{expr: "s-1", want: unit.Herz, ok: true},
		{
			expr: "cm2/Vs",
			want: unit.Dimensions{unit.MassDim: -1, unit.TimeDim: 2, unit.CurrentDim: 1},
			ok:   true,
		},
		{expr: "xyz", ok: false},
	}
	for _, test := range tests {
		d, ok := r.Dimensions(test.expr)
		if ok != test.ok {
			t.Errorf("%s: have ok=%v, want %v", test.expr, ok, test.ok)
			continue
		}
		if ok && !d.Matches(test.want) {
			t.Errorf("%s: have %v, want %v", test.expr, d, test.want)
		}
	}
}

func TestSetDimensions(t *testing.T) {
	r := NewRegistry()
	foo, _ := r.Define("foo", NoUnit)
	kfoo, _ := r.Define("kfoo", foo.ID)
	if err := r.SetDimensions(foo.ID, unit.Meter); err != nil {
		t.Fatal(err)
	}
	u, _ := r.Unit(kfoo.ID)
	if !u.Dims.Matches(unit.Meter) {
		t.Errorf("dimensions were not passed on: have %v", u.Dims)
	}
	if err := r.SetDimensions(kfoo.ID, unit.Meter); !errors.Is(err, ErrMalformedUnitExpression) {
		t.Errorf("have error %v, want %v", err, ErrMalformedUnitExpression)
	}
	if err := r.SetDimensions(10, unit.Meter); !errors.Is(err, ErrUnitNotFound) {
		t.Errorf("have error %v, want %v", err, ErrUnitNotFound)
	}
	if _, ok := r.Dimensions("kfoo"); !ok {
		t.Error("kfoo should have known dimensions")
	}
}

func TestFormatDimensions(t *testing.T) {
	tests := []struct {
		d    unit.Dimensions
		want string
	}{
		{d: Volt, want: "A^-1 kg m^2 s^-3"},
		{d: unit.Joule, want: "kg m^2 s^-2"},
		{d: unit.Meter, want: "m"},
		{d: unit.Dimensions{unit.TimeDim: 0}, want: ""},
		{d: nil, want: ""},
	}
	for _, test := range tests {
		// Map iteration order varies, so check several times.
		for i := 0; i < 20; i++ {
			if have := FormatDimensions(test.d); have != test.want {
				t.Fatalf("have %q, want %q", have, test.want)
			}
		}
	}
}
