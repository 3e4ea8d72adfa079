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
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/gonum/floats"
)

func newPresetRegistry(t *testing.T, presets ...string) *Registry {
	r := NewRegistry()
	for _, p := range presets {
		if err := r.AddPreset(p); err != nil {
			t.Fatal(err)
		}
	}
	return r
}

func TestConvertValue(t *testing.T) {
	r := newPresetRegistry(t, "all")
	tests := []struct {
		v        float64
		from, to string
		want     float64
	}{
		{v: 212, from: "F", to: "C", want: 100},
		{v: 32, from: "F", to: "C", want: 0},
		{v: -40, from: "F", to: "C", want: -40},
		{v: 100, from: "C", to: "K", want: 373.15},
		{v: 0, from: "K", to: "F", want: -459.67},
		{v: 32, from: "F", to: "R", want: 491.67},
		{v: 491.67, from: "R", to: "F", want: 32},
		{v: 0, from: "C", to: "R", want: 491.67},
		{v: 1, from: "mi", to: "km", want: 1.609344},
		{v: 1, from: "ft", to: "in", want: 12},
		{v: 3, from: "ft", to: "yd", want: 1},
		{v: 1, from: "A", to: "nm", want: 0.1},
		{v: 1, from: "h", to: "min", want: 60},
		{v: 1, from: "d", to: "h", want: 24},
		{v: 1500, from: "ms", to: "s", want: 1.5},
		{v: 1, from: "eV", to: "J", want: 1.602177e-19},
		{v: 1, from: "keV", to: "meV", want: 1e6},
		{v: 1, from: "m3", to: "L", want: 1000},
		{v: 1, from: "cm3", to: "m3", want: 1e-6},
		{v: 1, from: "ft3", to: "m3", want: 0.028316846592},
		{v: 1, from: "ft3", to: "gal", want: 7.48051},
		{v: 1, from: "gal", to: "L", want: 3.7854111013},
		{v: 1, from: "cm2/Vs", to: "m2/Vs", want: 1e-4},
		{v: 1, from: "m/s", to: "km/h", want: 3.6},
		{v: 1, from: "km/h", to: "m/s", want: 1 / 3.6},
		{v: 1, from: "mi2", to: "km2", want: 2.589988110336},
	}
	for _, test := range tests {
		t.Run(fmt.Sprintf("%g%s->%s", test.v, test.from, test.to), func(t *testing.T) {
			have, err := r.ConvertValue(test.v, test.from, test.to)
			if err != nil {
				t.Fatal(err)
			}
			if !floats.EqualWithinAbsOrRel(have, test.want, 1e-10, 1e-9) {
				t.Errorf("have %g, want %g", have, test.want)
			}
		})
	}
}

func TestConvertRoundTrip(t *testing.T) {
	r := newPresetRegistry(t, "all")
	pairs := [][2]string{
		{"F", "K"}, {"C", "R"}, {"in", "km"}, {"eV", "kJ"},
		{"gal", "cm3"}, {"d", "us"}, {"cm2/Vs", "m2/kVms"},
	}
	for _, p := range pairs {
		for _, v := range []float64{-12.5, 0, 1, 3.7e4} {
			mid, err := r.ConvertValue(v, p[0], p[1])
			if err != nil {
				t.Fatalf("%s -> %s: %v", p[0], p[1], err)
			}
			back, err := r.ConvertValue(mid, p[1], p[0])
			if err != nil {
				t.Fatalf("%s -> %s: %v", p[1], p[0], err)
			}
			if !floats.EqualWithinAbsOrRel(back, v, 1e-9, 1e-9) {
				t.Errorf("%g %s -> %s -> %s: have %g", v, p[0], p[1], p[0], back)
			}
		}
	}
}

func TestConvert(t *testing.T) {
	r := newPresetRegistry(t, "all")
	tests := []struct {
		value, target string
		showUnits     bool
		want          string
		status        int
	}{
		{value: "5J", target: "neV", showUnits: true, want: "3.12075e+28neV"},
		{value: "5J", target: "neV", want: "3.12075e+28"},
		{value: "212F", target: "C", showUnits: true, want: "100C"},
		{value: "2.5m", target: "m", showUnits: true, want: "2.5m"},
		{value: "42", target: "m", showUnits: true, want: "42m"},
		{value: "42", target: "m", want: "42"},
		{value: "5", target: "xyz", showUnits: true, want: "5", status: StatusUnitNotFound},
		{value: "5", target: "", showUnits: true, want: "5", status: StatusUnitNotFound},
		{value: "1.23456789m", target: "m", showUnits: true, want: "1.23456789m"},
		{value: "1.23456789m", target: "m", want: "1.23456789"},
		{value: " 7.000 cm2/Vs ", target: "cm2/Vs", showUnits: true, want: "7.000cm2/Vs"},
		{value: "12345678.9xyz", target: "xyz", showUnits: true, want: "12345678.9xyz"},
		{value: "5xyz", target: "m", showUnits: true, want: "5xyz", status: StatusUnitNotFound},
		{value: "5m", target: "xyz", showUnits: true, want: "5m", status: StatusUnitNotFound},
		{value: "5m", target: "s", showUnits: true, want: "5m", status: StatusNoConversionPath},
		{value: "abc", target: "m", showUnits: true, want: "abc", status: StatusMalformedUnitExpression},
		{value: "1C2", target: "K2", showUnits: true, want: "1C2", status: StatusIncompatibleShape},
	}
	for _, test := range tests {
		t.Run(test.value+"->"+test.target, func(t *testing.T) {
			have, err := r.Convert(test.value, test.target, test.showUnits)
			if have != test.want {
				t.Errorf("have %q, want %q", have, test.want)
			}
			if s := StatusCode(err); s != test.status {
				t.Errorf("status: have %d, want %d (error %v)", s, test.status, err)
			}
		})
	}
}

func TestConvertPrecision(t *testing.T) {
	r := newPresetRegistry(t, "length")
	r.Precision = 3
	if have, _ := r.Convert("1in", "m", true); have != "0.0254m" {
		t.Errorf("have %q, want 0.0254m", have)
	}
	if have, _ := r.Convert("2mi", "m", false); have != "3.22e+03" {
		t.Errorf("have %q, want 3.22e+03", have)
	}
	r.Precision = -1
	if have, _ := r.Convert("2mi", "m", false); have != "3218.688" {
		t.Errorf("have %q, want 3218.688", have)
	}
}

func TestConvertFailureKeepsValue(t *testing.T) {
	r := newPresetRegistry(t, "all")
	fp := r.Fingerprint()
	for _, c := range [][2]string{{"m", "s"}, {"C2", "K2"}, {"xyz", "m"}, {"J", "V"}} {
		v, err := r.ConvertValue(7.5, c[0], c[1])
		if err == nil {
			t.Errorf("%s -> %s should fail", c[0], c[1])
		}
		if v != 7.5 {
			t.Errorf("%s -> %s: failed conversion returned %g instead of the input", c[0], c[1], v)
		}
		var ce *ConversionError
		if !errors.As(err, &ce) || ce.Op != "convert" {
			t.Errorf("%s -> %s: error %v is not a ConversionError", c[0], c[1], err)
		}
	}
	if r.Fingerprint() != fp {
		t.Error("failed conversions changed the registry")
	}
	if v, err := r.ConvertValue(1, "km", "m"); err != nil || v != 1000 {
		t.Errorf("registry unusable after failures: %g, %v", v, err)
	}
}

func TestConvertIdentical(t *testing.T) {
	r := NewRegistry()
	// Identical units are never looked up.
	if v, err := r.ConvertValue(3, "xyz", "xyz"); err != nil || v != 3 {
		t.Errorf("have %g, %v", v, err)
	}
}

func TestConvertUnmatchedSource(t *testing.T) {
	r := NewRegistry()
	for _, name := range []string{"m", "s"} {
		if _, err := r.Define(name, NoUnit); err != nil {
			t.Fatal(err)
		}
	}
	// Without dimensions the resolver must notice the leftover s⁻¹.
	if _, err := r.ConvertValue(1, "m/s", "m"); !errors.Is(err, ErrNoConversionPath) {
		t.Errorf("have error %v, want %v", err, ErrNoConversionPath)
	}
	if _, err := r.ConvertValue(1, "m", "m/s"); !errors.Is(err, ErrNoConversionPath) {
		t.Errorf("have error %v, want %v", err, ErrNoConversionPath)
	}
}

func TestConvertStrict(t *testing.T) {
	r := newPresetRegistry(t, "length")
	if v, err := r.ConvertValue(1, "kmx", "m"); err != nil || v != 1000 {
		t.Errorf("lenient: have %g, %v", v, err)
	}
	r.Strict = true
	if _, err := r.ConvertValue(1, "kmx", "m"); !errors.Is(err, ErrMalformedUnitExpression) {
		t.Errorf("strict: have error %v, want %v", err, ErrMalformedUnitExpression)
	}
	if have, err := r.Convert("5", "kmx", true); have != "5" || !errors.Is(err, ErrMalformedUnitExpression) {
		t.Errorf("strict target of a bare number: have %q, %v", have, err)
	}
}

func TestConvertNumeric(t *testing.T) {
	r := newPresetRegistry(t, "length")
	km, _ := r.Find("km")
	m, _ := r.Find("m")
	ft, _ := r.Find("ft")
	if v, err := r.ConvertNumeric(1, km.ID, m.ID); err != nil || v != 1000 {
		t.Errorf("km -> m: have %g, %v", v, err)
	}
	if v, err := r.ConvertNumeric(1, km.ID, ft.ID); err != nil || !floats.EqualWithinAbsOrRel(v, 3280.839895013123, 1e-9, 1e-9) {
		t.Errorf("km -> ft: have %g, %v", v, err)
	}
	if _, err := r.ConvertNumeric(1, km.ID, 1000); !errors.Is(err, ErrUnitNotFound) {
		t.Errorf("have error %v, want %v", err, ErrUnitNotFound)
	}
}

func TestOpaqueConversion(t *testing.T) {
	r := NewRegistry()
	apple, _ := r.Define("apple", NoUnit)
	pear, _ := r.Define("pear", NoUnit)
	scale := func(data interface{}, v float64) float64 { return v * data.(float64) }
	err := r.DefineConversion(apple.ID, pear.ID, Opaque{
		Forward: scale, ForwardData: 2.0,
		Backward: scale, BackwardData: 0.5,
	})
	if err != nil {
		t.Fatal(err)
	}
	if v, err := r.ConvertValue(3, "apple", "pear"); err != nil || v != 6 {
		t.Errorf("apple -> pear: have %g, %v", v, err)
	}
	if v, err := r.ConvertValue(3, "pear", "apple"); err != nil || v != 1.5 {
		t.Errorf("pear -> apple: have %g, %v", v, err)
	}
	if v, err := r.ConvertValue(3, "apple2", "pear2"); err != nil || v != 12 {
		t.Errorf("apple2 -> pear2: have %g, %v", v, err)
	}
}

func TestConvertConcurrent(t *testing.T) {
	r := newPresetRegistry(t, "length", "time")
	var wg sync.WaitGroup
	errs := make(chan error, 64)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				v, err := r.ConvertValue(float64(j), "km/h", "m/s")
				if err != nil {
					errs <- err
					return
				}
				if !floats.EqualWithinAbsOrRel(v, float64(j)/3.6, 1e-9, 1e-9) {
					errs <- fmt.Errorf("%d km/h: have %g m/s", j, v)
					return
				}
			}
		}(i)
	}
	wg.Add(1)
	go func() {
		defer wg.Done()
		for j := 0; j < 50; j++ {
			if _, err := r.Define(fmt.Sprintf("unit%c", 'a'+j%26), NoUnit); err != nil {
				errs <- err
				return
			}
		}
	}()
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Error(err)
	}
}

func TestMakeBasis(t *testing.T) {
	r := newPresetRegistry(t, "length", "temperature")
	tests := []struct {
		v    float64
		unit string
		want float64
	}{
		{v: 250, unit: "cm", want: 2.5},
		{v: 3, unit: "km", want: 3000},
		{v: 7, unit: "ft", want: 7},
		{v: 100, unit: "C", want: 100},
	}
	for _, test := range tests {
		u, ok := r.Find(test.unit)
		if !ok {
			t.Fatalf("missing unit %s", test.unit)
		}
		if have, err := r.MakeBasis(test.v, u.ID); err != nil || have != test.want {
			t.Errorf("%g %s: have %g, %v; want %g", test.v, test.unit, have, err, test.want)
		}
	}
	if _, err := r.MakeBasis(1, 10000); !errors.Is(err, ErrUnitNotFound) {
		t.Errorf("have error %v, want %v", err, ErrUnitNotFound)
	}

	r = NewRegistry()
	foo, _ := r.Define("foo", NoUnit)
	kfoo, _ := r.Define("kfoo", foo.ID)
	if v, err := r.MakeBasis(2, kfoo.ID); !errors.Is(err, ErrNoConversionPath) || v != 2 {
		t.Errorf("have %g, %v; want 2, %v", v, err, ErrNoConversionPath)
	}
}

func TestConvertDimensionMismatch(t *testing.T) {
	r := newPresetRegistry(t, "energy")
	for i := 0; i < 10; i++ {
		_, err := r.ConvertValue(1, "V", "J")
		if !errors.Is(err, ErrNoConversionPath) {
			t.Fatalf("have error %v, want %v", err, ErrNoConversionPath)
		}
		if want := "[A^-1 kg m^2 s^-3] and [kg m^2 s^-2]"; !strings.Contains(err.Error(), want) {
			t.Fatalf("error %q does not contain %q", err, want)
		}
	}
}
