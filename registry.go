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
	"sort"
	"strings"
	"sync"

	"github.com/ctessum/unit"
	"github.com/golang/groupcache/lru"
	"github.com/sirupsen/logrus"
	"github.com/spatialmodel/unitconv/internal/hash"
)

// parseCacheSize is the number of parsed unit expressions kept by each
// registry.
const parseCacheSize = 512

// Registry holds unit definitions and the conversions between them.
// Its methods may be called concurrently: definitions take an exclusive
// lock and lookups and conversions share a read lock.
type Registry struct {
	// Log receives diagnostic messages.
	Log logrus.FieldLogger

	// Precision is the number of significant digits Convert uses when
	// formatting results. A negative value uses the smallest number of
	// digits that represents the value exactly.
	Precision int

	// Strict makes ConvertValue and Convert fail when part of a unit
	// expression matches no registered unit, instead of ignoring it.
	Strict bool

	mu     sync.RWMutex
	units  []Unit
	adj    [][]int // indices into edges, per unit
	edges  []edge
	names  map[string]UnitID
	folded map[string]UnitID // lower-cased names of case-insensitive units

	cacheMu sync.Mutex
	cache   *lru.Cache
}

// NewRegistry returns an empty registry. Use AddPreset to load the
// standard unit families.
func NewRegistry() *Registry {
	return &Registry{
		Log:       logrus.StandardLogger(),
		Precision: 6,
		names:     make(map[string]UnitID),
		folded:    make(map[string]UnitID),
		cache:     lru.New(parseCacheSize),
	}
}

// Define registers the unit called name, which reduces to basis (NoUnit
// for a new basis unit). A trailing number in name is the unit's exponent
// and a leading "/" negates it, so "m3" and "/s" define m³ and s⁻¹.
//
// Defining a name that already exists with the same basis returns the
// existing unit. Defining it with a different basis fails with
// ErrDuplicateDefinition.
func (r *Registry) Define(name string, basis UnitID) (Unit, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.define(name, basis, false)
}

// DefineCaseInsensitive is like Define, but the new unit also matches
// names that differ from it only in case. Redefining a unit with a
// different case sensitivity fails with ErrDuplicateDefinition.
func (r *Registry) DefineCaseInsensitive(name string, basis UnitID) (Unit, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.define(name, basis, true)
}

// DefineMetric is like Define, and then generates the metric-prefixed
// variants of the new unit.
func (r *Registry) DefineMetric(name string, basis UnitID) (Unit, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, err := r.define(name, basis, false)
	if err != nil {
		return u, err
	}
	if err := r.makeMetric(u.ID); err != nil {
		return u, err
	}
	return r.units[u.ID], nil
}

// DefineUnit registers symbol with the basis called basisName, or as a
// basis unit if basisName is empty, and returns its id.
func (r *Registry) DefineUnit(symbol, basisName string) (UnitID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	basis := NoUnit
	if basisName != "" {
		var ok bool
		if basis, ok = r.lookup(basisName); !ok {
			return NoUnit, newError("define", symbol, wrapf(ErrUnitNotFound, "basis %q", basisName))
		}
	}
	u, err := r.define(symbol, basis, false)
	if err != nil {
		return NoUnit, err
	}
	return u.ID, nil
}

// define must be called with r.mu held.
func (r *Registry) define(name string, basis UnitID, caseInsensitive bool) (Unit, error) {
	symbol, exponent, err := splitName(name)
	if err == ErrMalformedExponent {
		r.Log.WithFields(logrus.Fields{
			"unit": name,
		}).Debug("unitconv: malformed exponent; assuming 1")
	}
	if !validSymbol(symbol) {
		return Unit{}, newError("define", name, ErrMalformedUnitExpression)
	}
	u := Unit{
		Symbol:          symbol,
		Exponent:        exponent,
		Basis:           basis,
		CaseInsensitive: caseInsensitive,
	}
	if basis != NoUnit {
		if !r.valid(basis) {
			return Unit{}, newError("define", name, wrapf(ErrUnitNotFound, "basis id %d", basis))
		}
		b := r.units[basis]
		if b.Name() == u.Name() {
			return Unit{}, newError("define", name, wrapf(ErrMalformedUnitExpression, "a unit cannot be its own basis"))
		}
		if !b.IsBasis() {
			return Unit{}, newError("define", name, wrapf(ErrMalformedUnitExpression, "%q is not a basis unit", b.Name()))
		}
		u.Dims = b.Dims
	}

	if id, ok := r.names[u.Name()]; ok {
		existing := r.units[id]
		if existing.Basis != basis {
			return Unit{}, newError("define", name, ErrDuplicateDefinition)
		}
		if existing.CaseInsensitive != caseInsensitive {
			return Unit{}, newError("define", name, wrapf(ErrDuplicateDefinition, "case sensitivity differs"))
		}
	} else if id, ok := r.folded[strings.ToLower(u.Name())]; ok && caseInsensitive {
		return Unit{}, newError("define", name, wrapf(ErrDuplicateDefinition, "matches %q", r.units[id].Name()))
	}

	id, isNew := r.insert(u)
	if !isNew {
		r.Log.WithFields(logrus.Fields{
			"unit": u.Name(),
		}).Debug("unitconv: unit already defined")
	}
	return r.units[id], nil
}

// insert adds u to the registry unless a unit with the same name already
// exists, and returns the id of the registered unit and whether it is new.
// It must be called with r.mu held.
func (r *Registry) insert(u Unit) (UnitID, bool) {
	name := u.Name()
	if id, ok := r.names[name]; ok {
		return id, false
	}
	u.ID = UnitID(len(r.units))
	r.units = append(r.units, u)
	r.adj = append(r.adj, nil)
	r.names[name] = u.ID
	if u.CaseInsensitive {
		r.folded[strings.ToLower(name)] = u.ID
	}
	r.purgeCache()
	return u.ID, true
}

// Find returns the unit registered under name. A name starting with "/"
// refers to the unit with the negated exponent, so "/s" finds "s-1".
func (r *Registry) Find(name string) (Unit, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.lookup(name)
	if !ok {
		return Unit{}, false
	}
	return r.units[id], true
}

// lookup must be called with r.mu held.
func (r *Registry) lookup(name string) (UnitID, bool) {
	if strings.HasPrefix(name, "/") {
		symbol, exponent, _ := splitName(name)
		name = unitName(symbol, exponent)
	}
	if id, ok := r.names[name]; ok {
		return id, true
	}
	if len(r.folded) > 0 {
		if id, ok := r.folded[strings.ToLower(name)]; ok {
			return id, true
		}
	}
	return NoUnit, false
}

// Unit returns the unit with the given id.
func (r *Registry) Unit(id UnitID) (Unit, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if !r.valid(id) {
		return Unit{}, false
	}
	return r.units[id], true
}

// Units returns all registered units, sorted by name.
func (r *Registry) Units() []Unit {
	r.mu.RLock()
	o := make([]Unit, len(r.units))
	copy(o, r.units)
	r.mu.RUnlock()
	sort.Slice(o, func(i, j int) bool { return o[i].Name() < o[j].Name() })
	return o
}

// Len returns the number of registered units.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.units)
}

func (r *Registry) valid(id UnitID) bool {
	return id >= 0 && int(id) < len(r.units)
}

// DefineConversion registers c as the conversion between from and to.
// The conversion is usable in both directions. Declaring a second
// conversion between the same two units has no effect.
func (r *Registry) DefineConversion(from, to UnitID, c Conversion) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.defineConversion(from, to, c)
}

// defineConversion must be called with r.mu held.
func (r *Registry) defineConversion(from, to UnitID, c Conversion) error {
	if !r.valid(from) || !r.valid(to) {
		return newError("define conversion", "", wrapf(ErrUnitNotFound, "unit ids %d and %d", from, to))
	}
	input := r.units[from].Name() + "->" + r.units[to].Name()
	if c == nil || !c.valid() {
		return newError("define conversion", input, wrapf(ErrIncompatibleShape, "missing conversion function"))
	}
	if from == to {
		return newError("define conversion", input, wrapf(ErrIncompatibleShape, "a unit cannot convert to itself"))
	}
	if _, ok := r.edgeBetween(from, to); ok {
		r.Log.WithFields(logrus.Fields{
			"from": r.units[from].Name(),
			"to":   r.units[to].Name(),
		}).Debug("unitconv: conversion already defined")
		return nil
	}
	r.edges = append(r.edges, edge{
		from:    from,
		to:      to,
		context: r.units[from].Exponent,
		conv:    c,
	})
	i := len(r.edges) - 1
	r.adj[from] = append(r.adj[from], i)
	r.adj[to] = append(r.adj[to], i)
	return nil
}

// edgeBetween returns the conversion joining a and b.
func (r *Registry) edgeBetween(a, b UnitID) (*edge, bool) {
	list := r.adj[a]
	if len(r.adj[b]) < len(list) {
		list = r.adj[b]
	}
	for _, i := range list {
		if e := &r.edges[i]; e.connects(a, b) {
			return e, true
		}
	}
	return nil, false
}

type unitSnapshot struct {
	Name, Basis             string
	Metric, CaseInsensitive bool
	Dims                    unit.Dimensions
	Conversions             []string
}

// Fingerprint returns a key that identifies the registry's current set
// of units and conversions. Registries with the same definitions have the
// same fingerprint regardless of definition order.
func (r *Registry) Fingerprint() string {
	r.mu.RLock()
	snap := make([]unitSnapshot, len(r.units))
	for i, u := range r.units {
		s := unitSnapshot{
			Name:            u.Name(),
			Metric:          u.Metric,
			CaseInsensitive: u.CaseInsensitive,
			Dims:            u.Dims,
		}
		if !u.IsBasis() {
			s.Basis = r.units[u.Basis].Name()
		}
		for _, ei := range r.adj[i] {
			e := r.edges[ei]
			s.Conversions = append(s.Conversions, r.units[e.from].Name()+">"+r.units[e.to].Name())
		}
		sort.Strings(s.Conversions)
		snap[i] = s
	}
	r.mu.RUnlock()
	sort.Slice(snap, func(i, j int) bool { return snap[i].Name < snap[j].Name })
	return hash.Key(snap)
}
