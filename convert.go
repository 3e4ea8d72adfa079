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
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
)

// Convert converts value, a number followed by a unit expression such as
// "5J" or "300K", to the units in target, e.g. "neV", and formats the
// result with r.Precision significant digits. If showUnits is true the
// target units are appended to the number.
//
// A value without units, or with units identical to target, is returned
// with its number exactly as written. The target must still name known
// units when value has none.
// On failure the original value is returned unchanged along with the
// error, so that callers always have something to show.
func (r *Registry) Convert(value, target string, showUnits bool) (string, error) {
	v, from, ok := splitValue(value)
	if !ok {
		return value, newError("convert", value, wrapf(ErrMalformedUnitExpression, "value does not start with a number"))
	}
	target = strings.TrimSpace(target)
	if from == "" || from == target {
		if from == "" {
			if err := r.checkTarget(target); err != nil {
				return value, err
			}
		}
		num := strings.TrimSpace(value)
		num = strings.TrimSpace(num[:len(num)-len(from)])
		if showUnits {
			return num + target, nil
		}
		return num, nil
	}
	result, err := r.ConvertValue(v, from, target)
	if err != nil {
		return value, err
	}
	return r.Format(result, target, showUnits), nil
}

// checkTarget returns an error if target does not describe registered
// units.
func (r *Registry) checkTarget(target string) error {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p := r.parse(target)
	if len(p.terms) == 0 {
		return newError("convert", target, wrapf(ErrUnitNotFound, "%q", target))
	}
	if r.Strict && len(p.dropped) > 0 {
		return newError("convert", target, wrapf(ErrMalformedUnitExpression, "unrecognized %q", strings.Join(p.dropped, ", ")))
	}
	return nil
}

// Format formats v with r.Precision significant digits, followed by
// units if showUnits is true.
func (r *Registry) Format(v float64, units string, showUnits bool) string {
	s := strconv.FormatFloat(v, 'g', r.Precision, 64)
	if showUnits {
		return s + units
	}
	return s
}

// ConvertValue converts v from the unit expression from to the unit
// expression to. On failure it returns v unchanged along with the error.
func (r *Registry) ConvertValue(v float64, from, to string) (float64, error) {
	if from == to {
		return v, nil
	}
	input := from + "->" + to

	r.mu.RLock()
	defer r.mu.RUnlock()

	fp, tp := r.parse(from), r.parse(to)
	if len(fp.terms) == 0 {
		return v, newError("convert", input, wrapf(ErrUnitNotFound, "%q", from))
	}
	if len(tp.terms) == 0 {
		return v, newError("convert", input, wrapf(ErrUnitNotFound, "%q", to))
	}
	if r.Strict && len(fp.dropped)+len(tp.dropped) > 0 {
		dropped := append(append([]string(nil), fp.dropped...), tp.dropped...)
		return v, newError("convert", input, wrapf(ErrMalformedUnitExpression, "unrecognized %q", strings.Join(dropped, ", ")))
	}
	if fd, ok := r.termDimensions(fp.terms); ok {
		if td, ok := r.termDimensions(tp.terms); ok && !fd.Matches(td) {
			return v, newError("convert", input, wrapf(ErrNoConversionPath, "dimensions [%s] and [%s] differ", FormatDimensions(fd), FormatDimensions(td)))
		}
	}
	result, err := r.resolve(fp.terms, tp.terms, v)
	if err != nil {
		r.Log.WithFields(logrus.Fields{
			"from": from,
			"to":   to,
		}).WithError(err).Debug("unitconv: conversion failed")
		return v, newError("convert", input, err)
	}
	return result, nil
}

// ConvertNumeric converts v from one registered unit to another.
func (r *Registry) ConvertNumeric(v float64, from, to UnitID) (float64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if !r.valid(from) || !r.valid(to) {
		return v, newError("convert", "", wrapf(ErrUnitNotFound, "unit ids %d and %d", from, to))
	}
	if from == to {
		return v, nil
	}
	input := r.units[from].Name() + "->" + r.units[to].Name()
	result, err := r.resolve([]Term{{Unit: from, Exponent: 1}}, []Term{{Unit: to, Exponent: 1}}, v)
	if err != nil {
		return v, newError("convert", input, err)
	}
	return result, nil
}

// MakeBasis converts v from the unit id to the basis of that unit. Basis
// units return v unchanged.
func (r *Registry) MakeBasis(v float64, id UnitID) (float64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if !r.valid(id) {
		return v, newError("make basis", "", wrapf(ErrUnitNotFound, "unit id %d", id))
	}
	u := r.units[id]
	p, ok := r.toBasis(id, 1)
	if !ok {
		return v, newError("make basis", u.Name(), wrapf(ErrNoConversionPath, "no conversion to %q", r.units[u.Basis].Name()))
	}
	result, err := p.apply(v, 1)
	if err != nil {
		return v, newError("make basis", u.Name(), err)
	}
	return result, nil
}
