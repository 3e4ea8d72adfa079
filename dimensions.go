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
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/ctessum/unit"
)

// Volt is a unit of electric potential [kg m2 s-3 A-1].
var Volt = unit.Dimensions{
	unit.MassDim:    1,
	unit.LengthDim:  2,
	unit.TimeDim:    -3,
	unit.CurrentDim: -1,
}

// siDimensions maps SI base unit symbols to their dimensions.
var siDimensions = map[string]unit.Dimension{
	"A":   unit.CurrentDim,
	"m":   unit.LengthDim,
	"cd":  unit.LuminousIntensityDim,
	"kg":  unit.MassDim,
	"K":   unit.TemperatureDim,
	"s":   unit.TimeDim,
	"rad": unit.AngleDim,
}

// ParseDimensions converts powers of SI base unit symbols, e.g.
// {"kg": 1, "m": 2, "s": -2}, into dimensions.
func ParseDimensions(powers map[string]int) (unit.Dimensions, error) {
	d := make(unit.Dimensions)
	keys := make([]string, 0, len(powers))
	for k := range powers {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		dim, ok := siDimensions[k]
		if !ok {
			return nil, fmt.Errorf("unitconv: %q is not an SI base unit", k)
		}
		if p := powers[k]; p != 0 {
			d[dim] += p
		}
	}
	return d, nil
}

// FormatDimensions writes d as powers of base unit symbols in
// alphabetical order, e.g. "A^-1 kg m^2 s^-3" for Volt. Unlike
// d.String, the result does not depend on map iteration order.
func FormatDimensions(d unit.Dimensions) string {
	type atom struct {
		symbol string
		pow    int
	}
	atoms := make([]atom, 0, len(d))
	for dim, pow := range d {
		if pow != 0 {
			atoms = append(atoms, atom{dim.String(), pow})
		}
	}
	sort.Slice(atoms, func(i, j int) bool { return atoms[i].symbol < atoms[j].symbol })
	s := make([]string, len(atoms))
	for i, a := range atoms {
		s[i] = a.symbol
		if a.pow != 1 {
			s[i] += fmt.Sprintf("^%d", a.pow)
		}
	}
	return strings.Join(s, " ")
}

// SetDimensions records the physical dimensions of the basis unit id.
// Units that reduce to it take on the same dimensions.
func (r *Registry) SetDimensions(id UnitID, d unit.Dimensions) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.setDimensions(id, d)
}

// setDimensions must be called with r.mu held.
func (r *Registry) setDimensions(id UnitID, d unit.Dimensions) error {
	if !r.valid(id) {
		return newError("set dimensions", "", wrapf(ErrUnitNotFound, "unit id %d", id))
	}
	if !r.units[id].IsBasis() {
		return newError("set dimensions", r.units[id].Name(), wrapf(ErrMalformedUnitExpression, "not a basis unit"))
	}
	r.units[id].Dims = d
	for i := range r.units {
		if r.units[i].Basis == id {
			r.units[i].Dims = d
		}
	}
	return nil
}

// Dimensions returns the physical dimensions of the unit expression
// expr. It reports false if any unit in expr has unknown dimensions or a
// non-integer exponent.
func (r *Registry) Dimensions(expr string) (unit.Dimensions, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p := r.parse(expr)
	if len(p.terms) == 0 {
		return nil, false
	}
	return r.termDimensions(p.terms)
}

// termDimensions must be called with r.mu held.
func (r *Registry) termDimensions(terms []Term) (unit.Dimensions, bool) {
	d := make(unit.Dimensions)
	for _, t := range terms {
		ud := r.units[t.Unit].Dims
		if ud == nil || t.Exponent != math.Trunc(t.Exponent) {
			return nil, false
		}
		for k, v := range ud {
			d[k] += v * int(t.Exponent)
		}
	}
	for k, v := range d {
		if v == 0 {
			delete(d, k)
		}
	}
	return d, true
}
