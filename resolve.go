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
	"strings"
)

// step is one conversion along a path between two units.
type step struct {
	edge  *edge
	start UnitID
}

// path is a sequence of conversions that turns one term into another.
type path []step

func (p path) apply(v, t float64) (float64, error) {
	for _, s := range p {
		var err error
		if v, err = s.edge.apply(s.start, v, t); err != nil {
			return v, err
		}
	}
	return v, nil
}

// applicable returns whether e can carry a term raised to the power t.
func (e *edge) applicable(start UnitID, t float64) bool {
	if t == 1 {
		return true
	}
	f, inv := e.directions(start)
	return f(0) == 0 && inv(0) == 0
}

// effective returns the basis of u, or u itself if it is a basis.
func (r *Registry) effective(u UnitID) UnitID {
	if b := r.units[u].Basis; b != NoUnit {
		return b
	}
	return u
}

// toBasis returns the step from u to its basis, if u has one.
func (r *Registry) toBasis(u UnitID, t float64) (path, bool) {
	b := r.units[u].Basis
	if b == NoUnit {
		return nil, true
	}
	e, ok := r.edgeBetween(u, b)
	if !ok || !e.applicable(u, t) {
		return nil, false
	}
	return path{{edge: e, start: u}}, true
}

// fromBasis returns the step from the basis of u to u, if u has one.
func (r *Registry) fromBasis(u UnitID, t float64) (path, bool) {
	b := r.units[u].Basis
	if b == NoUnit {
		return nil, true
	}
	e, ok := r.edgeBetween(u, b)
	if !ok || !e.applicable(b, t) {
		return nil, false
	}
	return path{{edge: e, start: b}}, true
}

// intraBasis plans the conversion between two units that share a basis:
// through the basis, as in cm -> m -> mm.
func (r *Registry) intraBasis(from, to UnitID, t float64) (path, bool) {
	if from == to {
		return path{}, true
	}
	if e, ok := r.edgeBetween(from, to); ok && e.applicable(from, t) {
		return path{{edge: e, start: from}}, true
	}
	down, ok := r.toBasis(from, t)
	if !ok {
		return nil, false
	}
	up, ok := r.fromBasis(to, t)
	if !ok {
		return nil, false
	}
	return append(down, up...), true
}

// interBasis plans the conversion between two units with different bases:
// from the source unit to its basis, across to the basis of the target,
// and up to the target unit. The crossing uses a direct conversion when
// one exists, or else the shortest chain of conversions between basis
// units.
func (r *Registry) interBasis(from, to UnitID, t float64) (path, bool) {
	ef, et := r.effective(from), r.effective(to)
	down, ok := r.toBasis(from, t)
	if !ok {
		return nil, false
	}
	across, ok := r.basisChain(ef, et, t)
	if !ok {
		return nil, false
	}
	up, ok := r.fromBasis(to, t)
	if !ok {
		return nil, false
	}
	p := append(down, across...)
	return append(p, up...), true
}

// basisChain finds the shortest chain of conversions from basis unit a to
// basis unit b that passes only through basis units.
func (r *Registry) basisChain(a, b UnitID, t float64) (path, bool) {
	if a == b {
		return path{}, true
	}
	if e, ok := r.edgeBetween(a, b); ok && e.applicable(a, t) {
		return path{{edge: e, start: a}}, true
	}
	prev := map[UnitID]step{a: {}}
	queue := []UnitID{a}
	for len(queue) > 0 {
		u := queue[0]
		queue = queue[1:]
		for _, ei := range r.adj[u] {
			e := &r.edges[ei]
			v := e.other(u)
			if _, seen := prev[v]; seen || !r.units[v].IsBasis() || !e.applicable(u, t) {
				continue
			}
			prev[v] = step{edge: e, start: u}
			if v == b {
				var p path
				for w := b; w != a; w = prev[w].start {
					p = append(path{prev[w]}, p...)
				}
				return p, true
			}
			queue = append(queue, v)
		}
	}
	return nil, false
}

// resolve converts v from the units described by from to the units
// described by to.
//
// In the first pass, each target term is paired with a source term that
// has the same exponent and the same basis, and the two are converted
// through that basis. In the second pass the remaining target terms are
// paired with remaining source terms of equal exponent that can be
// converted across bases. Each source term is used at most once, and the
// call fails unless every term on both sides is paired.
func (r *Registry) resolve(from, to []Term, v float64) (float64, error) {
	from = append([]Term(nil), from...)
	to = append([]Term(nil), to...)
	orig := v

	// Pass 1: units sharing a basis.
	for ti := 0; ti < len(to); {
		matched := false
		for fi := range from {
			f, t := from[fi], to[ti]
			if f.Exponent != t.Exponent || r.effective(f.Unit) != r.effective(t.Unit) {
				continue
			}
			p, ok := r.intraBasis(f.Unit, t.Unit, t.Exponent)
			if !ok {
				continue
			}
			nv, err := p.apply(v, t.Exponent)
			if err != nil {
				return orig, err
			}
			v = nv
			from = append(from[:fi], from[fi+1:]...)
			to = append(to[:ti], to[ti+1:]...)
			matched = true
			break
		}
		if !matched {
			ti++
		}
	}

	// Pass 2: units with different bases.
	paths := make(map[[2]int]path)
	canConvert := func(fi, ti int) bool {
		if from[fi].Exponent != to[ti].Exponent {
			return false
		}
		if _, ok := paths[[2]int{fi, ti}]; ok {
			return true
		}
		p, ok := r.interBasis(from[fi].Unit, to[ti].Unit, to[ti].Exponent)
		if ok {
			paths[[2]int{fi, ti}] = p
		}
		return ok
	}
	match := make([]int, len(from)) // target index for each source term
	for i := range match {
		match[i] = -1
	}
	// assign finds a source term for target ti, moving earlier
	// assignments to other sources where needed.
	var assign func(ti int, seen []bool) bool
	assign = func(ti int, seen []bool) bool {
		for fi := range from {
			if seen[fi] || !canConvert(fi, ti) {
				continue
			}
			seen[fi] = true
			if match[fi] < 0 || assign(match[fi], seen) {
				match[fi] = ti
				return true
			}
		}
		return false
	}
	var unmatched []string
	shape := false
	for ti := range to {
		if !assign(ti, make([]bool, len(from))) {
			unmatched = append(unmatched, r.termName(to[ti]))
			shape = shape || r.offsetOnly(from, to[ti])
		}
	}
	for fi, ti := range match {
		if ti < 0 {
			unmatched = append(unmatched, r.termName(from[fi]))
		}
	}
	if shape {
		return orig, wrapf(ErrIncompatibleShape, "offset conversion raised to a power: %s", strings.Join(unmatched, ", "))
	}
	if len(unmatched) > 0 {
		return orig, wrapf(ErrNoConversionPath, "unmatched %s", strings.Join(unmatched, ", "))
	}
	for ti := range to {
		for fi, mt := range match {
			if mt != ti {
				continue
			}
			nv, err := paths[[2]int{fi, ti}].apply(v, to[ti].Exponent)
			if err != nil {
				return orig, err
			}
			v = nv
		}
	}
	return v, nil
}

// offsetOnly returns whether target could be reached from one of the
// source terms of the same exponent if it were not raised to a power,
// meaning that an offset conversion such as C -> K is in the way.
func (r *Registry) offsetOnly(from []Term, target Term) bool {
	if target.Exponent == 1 {
		return false
	}
	for _, f := range from {
		if f.Exponent != target.Exponent {
			continue
		}
		if r.effective(f.Unit) == r.effective(target.Unit) {
			if _, ok := r.intraBasis(f.Unit, target.Unit, 1); ok {
				return true
			}
		} else if _, ok := r.interBasis(f.Unit, target.Unit, 1); ok {
			return true
		}
	}
	return false
}

// termName writes t the way it would be parsed: "cm2" for centimeters
// squared, and "(m3)2" for a unit declared with an exponent and raised to
// another.
func (r *Registry) termName(t Term) string {
	u := r.units[t.Unit]
	switch {
	case t.Exponent == 1:
		return u.Name()
	case u.Exponent == 1:
		return unitName(u.Symbol, t.Exponent)
	}
	return fmt.Sprintf("(%s)%s", u.Name(), formatExponent(t.Exponent))
}
