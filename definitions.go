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
	"io"
	"math"

	"github.com/BurntSushi/toml"
	"github.com/Knetic/govaluate"
	"github.com/sirupsen/logrus"
)

// Definitions is the TOML form of a set of units and conversions, e.g.:
//
//	[[Unit]]
//	Name = "furlong"
//	Basis = "m"
//
//	[[Conversion]]
//	From = "furlong"
//	To = "m"
//	Factor = 201.168
type Definitions struct {
	Unit       []UnitDefinition
	Conversion []ConversionDefinition
}

// UnitDefinition describes one unit in a definitions file.
type UnitDefinition struct {
	// Name is the unit name, with an optional trailing exponent.
	Name string

	// Basis is the name of the basis unit. If it is empty the unit is
	// itself a basis.
	Basis string

	// Metric specifies whether to generate metric-prefixed variants.
	// Only basis units can be metric.
	Metric bool

	CaseInsensitive bool

	// Dims gives the dimensions of a basis unit as powers of SI base
	// unit symbols, e.g. {kg = 1, m = 2, s = -2}.
	Dims map[string]int
}

// ConversionDefinition describes a conversion between two units. It is
// either linear, to = from*Factor + Offset, or given by a pair of
// expressions in the variable x, e.g.
//
//	Forward = "10 * log10(x)"
//	Backward = "10 ** (x / 10)"
//
// Expressions may use the functions exp, log, log10 and sqrt. When they
// are set, Factor and Offset are ignored.
type ConversionDefinition struct {
	From, To          string
	Factor, Offset    float64
	Forward, Backward string
}

// LoadDefinitions reads TOML unit and conversion definitions from f and
// adds them to r. Units are defined in file order, followed by the
// conversions. Loading stops at the first entry that cannot be defined;
// earlier entries remain defined.
func (r *Registry) LoadDefinitions(f io.Reader) error {
	var d Definitions
	if _, err := toml.DecodeReader(f, &d); err != nil {
		return fmt.Errorf("unitconv: reading definitions: %v", err)
	}
	return r.AddDefinitions(&d)
}

// AddDefinitions adds the units and conversions in d to r.
func (r *Registry) AddDefinitions(d *Definitions) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, ud := range d.Unit {
		if err := r.addUnitDefinition(ud); err != nil {
			return fmt.Errorf("unitconv: unit %d (%q): %w", i+1, ud.Name, err)
		}
	}
	for i, cd := range d.Conversion {
		if err := r.addConversionDefinition(cd); err != nil {
			return fmt.Errorf("unitconv: conversion %d (%s->%s): %w", i+1, cd.From, cd.To, err)
		}
	}
	r.Log.WithFields(logrus.Fields{
		"units":       len(d.Unit),
		"conversions": len(d.Conversion),
	}).Debug("unitconv: loaded definitions")
	return nil
}

// addUnitDefinition must be called with r.mu held.
func (r *Registry) addUnitDefinition(ud UnitDefinition) error {
	basis := NoUnit
	if ud.Basis != "" {
		var ok bool
		if basis, ok = r.lookup(ud.Basis); !ok {
			return newError("define", ud.Name, wrapf(ErrUnitNotFound, "basis %q", ud.Basis))
		}
	}
	u, err := r.define(ud.Name, basis, ud.CaseInsensitive)
	if err != nil {
		return err
	}
	if len(ud.Dims) > 0 {
		dims, err := ParseDimensions(ud.Dims)
		if err != nil {
			return err
		}
		if err := r.setDimensions(u.ID, dims); err != nil {
			return err
		}
	}
	if ud.Metric && !r.units[u.ID].Metric {
		return r.makeMetric(u.ID)
	}
	return nil
}

// addConversionDefinition must be called with r.mu held.
func (r *Registry) addConversionDefinition(cd ConversionDefinition) error {
	from, ok := r.lookup(cd.From)
	if !ok {
		return newError("define conversion", cd.From, ErrUnitNotFound)
	}
	to, ok := r.lookup(cd.To)
	if !ok {
		return newError("define conversion", cd.To, ErrUnitNotFound)
	}
	input := cd.From + "->" + cd.To
	if cd.Forward != "" || cd.Backward != "" {
		c, err := expressionConversion(cd.Forward, cd.Backward)
		if err != nil {
			return newError("define conversion", input, wrapf(ErrIncompatibleShape, "%v", err))
		}
		return r.defineConversion(from, to, c)
	}
	if cd.Factor == 0 {
		return newError("define conversion", input, wrapf(ErrIncompatibleShape, "factor must not be zero"))
	}
	return r.defineConversion(from, to, Affine(cd.Factor, cd.Offset))
}

// expressionFunctions are the functions available to conversion
// expressions.
var expressionFunctions = map[string]govaluate.ExpressionFunction{
	"exp":   unaryFunction("exp", math.Exp),
	"log":   unaryFunction("log", math.Log),
	"log10": unaryFunction("log10", math.Log10),
	"sqrt":  unaryFunction("sqrt", math.Sqrt),
}

func unaryFunction(name string, f func(float64) float64) govaluate.ExpressionFunction {
	return func(arg ...interface{}) (interface{}, error) {
		if len(arg) != 1 {
			return nil, fmt.Errorf("unitconv: got %d arguments for function '%s', but needs 1", len(arg), name)
		}
		x, ok := arg[0].(float64)
		if !ok {
			return nil, fmt.Errorf("unitconv: function '%s' needs a number but got %v", name, arg[0])
		}
		return f(x), nil
	}
}

// expressionConversion compiles a pair of conversion expressions into a
// Scale conversion.
func expressionConversion(forward, backward string) (Scale, error) {
	if forward == "" || backward == "" {
		return Scale{}, fmt.Errorf("both Forward and Backward expressions are needed")
	}
	f, err := compileExpression(forward)
	if err != nil {
		return Scale{}, err
	}
	b, err := compileExpression(backward)
	if err != nil {
		return Scale{}, err
	}
	return Scale{Forward: f, Backward: b}, nil
}

// compileExpression compiles expr, a function of x. Evaluation errors
// give NaN.
func compileExpression(expr string) (func(float64) float64, error) {
	e, err := govaluate.NewEvaluableExpressionWithFunctions(expr, expressionFunctions)
	if err != nil {
		return nil, fmt.Errorf("expression %q: %v", expr, err)
	}
	for _, v := range e.Vars() {
		if v != "x" {
			return nil, fmt.Errorf("expression %q: unknown variable %q", expr, v)
		}
	}
	eval := func(x float64) (float64, error) {
		out, err := e.Evaluate(map[string]interface{}{"x": x})
		if err != nil {
			return math.NaN(), err
		}
		y, ok := out.(float64)
		if !ok {
			return math.NaN(), fmt.Errorf("expression %q gives %v, not a number", expr, out)
		}
		return y, nil
	}
	if _, err := eval(1); err != nil {
		return nil, err
	}
	return func(x float64) float64 {
		y, _ := eval(x)
		return y
	}, nil
}
