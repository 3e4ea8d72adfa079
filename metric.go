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
	"math"

	"github.com/sirupsen/logrus"
)

// MetricPrefix is an SI prefix generated by MakeMetric.
type MetricPrefix struct {
	Name   string
	Symbol string
	Power  int // power of ten
}

// MetricPrefixes are the prefixes generated by MakeMetric.
var MetricPrefixes = []MetricPrefix{
	{Name: "centi", Symbol: "c", Power: -2},
	{Name: "milli", Symbol: "m", Power: -3},
	{Name: "micro", Symbol: "u", Power: -6},
	{Name: "nano", Symbol: "n", Power: -9},
	{Name: "pico", Symbol: "p", Power: -12},
	{Name: "femto", Symbol: "f", Power: -15},
	{Name: "atto", Symbol: "a", Power: -18},
	{Name: "kilo", Symbol: "k", Power: 3},
	{Name: "mega", Symbol: "M", Power: 6},
	{Name: "giga", Symbol: "G", Power: 9},
	{Name: "tera", Symbol: "T", Power: 12},
	{Name: "peta", Symbol: "P", Power: 15},
}

// conversion returns the conversion from a unit with prefix p to its
// basis. The functions receive the declared exponent of the prefixed
// unit, so that, e.g., cm3 -> m3 scales by (10⁻²)³.
func (p MetricPrefix) conversion() Parametric {
	power := float64(p.Power)
	return Parametric{
		Forward:  func(v, e float64) float64 { return pow10(v, power*e) },
		Backward: func(v, e float64) float64 { return pow10(v, -power*e) },
	}
}

// pow10 returns v * 10ⁿ. Negative powers divide by 10⁻ⁿ, which keeps
// results such as 5 m -> km exactly equal to 5/1000.
func pow10(v, n float64) float64 {
	if n >= 0 {
		return v * math.Pow(10, n)
	}
	return v / math.Pow(10, -n)
}

// MakeMetric defines the metric-prefixed variants of basis (cm, mm, km,
// and so on for "m") and the conversions between each of them and basis.
// Conversions between two prefixed variants go through basis.
func (r *Registry) MakeMetric(basis UnitID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.makeMetric(basis)
}

// makeMetric must be called with r.mu held. Prefixes that cannot be
// defined are skipped; the first such error is returned.
func (r *Registry) makeMetric(basis UnitID) error {
	if !r.valid(basis) {
		return newError("make metric", "", wrapf(ErrUnitNotFound, "unit id %d", basis))
	}
	b := r.units[basis]
	if !b.IsBasis() {
		return newError("make metric", b.Name(), wrapf(ErrMalformedUnitExpression, "not a basis unit"))
	}
	var firstErr error
	for _, p := range MetricPrefixes {
		name := unitName(p.Symbol+b.Symbol, b.Exponent)
		u, err := r.define(name, basis, false)
		if err == nil {
			err = r.defineConversion(u.ID, basis, p.conversion())
		}
		if err != nil {
			r.Log.WithFields(logrus.Fields{
				"basis":  b.Name(),
				"prefix": p.Name,
			}).WithError(err).Debug("unitconv: skipping metric prefix")
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	r.units[basis].Metric = true
	return firstErr
}
