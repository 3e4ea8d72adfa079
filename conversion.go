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
)

// Conversion holds the pair of functions that carry a value across an edge
// between two units. It is implemented by Scale, Parametric and Opaque,
// exactly one of which describes any given edge.
type Conversion interface {
	// forward converts from the edge's "from" unit to its "to" unit.
	// context is the declared exponent of the "from" unit.
	forward(v, context float64) float64
	// backward converts from the "to" unit to the "from" unit.
	backward(v, context float64) float64
	valid() bool
}

// Scale is a conversion given by one-argument functions, e.g.
// Fahrenheit to Celsius or inches to meters.
type Scale struct {
	Forward, Backward func(float64) float64
}

func (c Scale) forward(v, _ float64) float64  { return c.Forward(v) }
func (c Scale) backward(v, _ float64) float64 { return c.Backward(v) }
func (c Scale) valid() bool                   { return c.Forward != nil && c.Backward != nil }

// Parametric is a conversion whose functions also receive the declared
// exponent of the edge's "from" unit, which lets one pair of functions
// serve, e.g., both cm->m and cm3->m3.
type Parametric struct {
	Forward, Backward func(value, exponent float64) float64
}

func (c Parametric) forward(v, e float64) float64  { return c.Forward(v, e) }
func (c Parametric) backward(v, e float64) float64 { return c.Backward(v, e) }
func (c Parametric) valid() bool                   { return c.Forward != nil && c.Backward != nil }

// Opaque is a conversion whose functions receive caller-supplied data.
type Opaque struct {
	Forward      func(data interface{}, value float64) float64
	ForwardData  interface{}
	Backward     func(data interface{}, value float64) float64
	BackwardData interface{}
}

func (c Opaque) forward(v, _ float64) float64  { return c.Forward(c.ForwardData, v) }
func (c Opaque) backward(v, _ float64) float64 { return c.Backward(c.BackwardData, v) }
func (c Opaque) valid() bool                   { return c.Forward != nil && c.Backward != nil }

// Factor returns a Scale conversion that multiplies by f going forward.
func Factor(f float64) Scale {
	return Scale{
		Forward:  func(v float64) float64 { return v * f },
		Backward: func(v float64) float64 { return v / f },
	}
}

// Affine returns a Scale conversion computing v*f + offset going forward.
func Affine(f, offset float64) Scale {
	if offset == 0 {
		return Factor(f)
	}
	return Scale{
		Forward:  func(v float64) float64 { return v*f + offset },
		Backward: func(v float64) float64 { return (v - offset) / f },
	}
}

// edge is a registered conversion between two units. It is stored once in
// the registry and indexed from both of its ends.
type edge struct {
	from, to UnitID
	context  float64
	conv     Conversion
}

// other returns the end of e that is not u.
func (e *edge) other(u UnitID) UnitID {
	if e.from == u {
		return e.to
	}
	return e.from
}

// connects returns whether e joins a and b, in either direction.
func (e *edge) connects(a, b UnitID) bool {
	return (e.from == a && e.to == b) || (e.from == b && e.to == a)
}

// maxRepeat bounds the integer powers that are applied by repetition.
const maxRepeat = 64

// apply carries v across e starting from unit start, for a term raised to
// the power t.
//
// With t == 1 the conversion function is called once. Otherwise the
// function must pass through the origin (a pure scale factor): integer
// powers are applied by calling the function (or its inverse, for negative
// powers) |t| times so that power-of-ten factors stay exact, and other
// powers use the factor f(1) raised to t.
func (e *edge) apply(start UnitID, v, t float64) (float64, error) {
	f, inv := e.directions(start)
	if t == 1 {
		return f(v), nil
	}
	if f(0) != 0 || inv(0) != 0 {
		return v, wrapf(ErrIncompatibleShape, "cannot raise an offset conversion to the power %s", formatExponent(t))
	}
	if t == math.Trunc(t) && math.Abs(t) <= maxRepeat {
		g, n := f, int(t)
		if t < 0 {
			g, n = inv, int(-t)
		}
		for i := 0; i < n; i++ {
			v = g(v)
		}
		return v, nil
	}
	return v * math.Pow(f(1), t), nil
}

// directions returns the functions that carry a value away from start
// and back to it.
func (e *edge) directions(start UnitID) (away, back func(float64) float64) {
	fwd := func(v float64) float64 { return e.conv.forward(v, e.context) }
	bwd := func(v float64) float64 { return e.conv.backward(v, e.context) }
	if start == e.from {
		return fwd, bwd
	}
	return bwd, fwd
}
