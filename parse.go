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
	"unicode"
	"unicode/utf8"

	"github.com/golang/groupcache/lru"
	"github.com/sirupsen/logrus"
)

// Term is one registered unit, raised to a power, within a compound unit
// expression.
type Term struct {
	Unit     UnitID
	Exponent float64
}

// parsed is a cached parse result.
type parsed struct {
	terms []Term
	// dropped holds the fragments that matched no unit.
	dropped []string
}

// Parse splits a compound unit expression such as "cm2/Vs" into terms.
//
// The expression is read from the end. A trailing number is the exponent
// of the unit before it, and a "/" negates the exponent of every term
// already read. Each run of letters is matched against the registry by
// trying ever shorter endings of the run, so "cm2/Vs" gives cm², V⁻¹ and
// s⁻¹. Letters that match no unit are dropped; use ParseStrict to treat
// them as an error instead.
//
// Terms are returned in the order they appear in the expression.
func (r *Registry) Parse(expr string) []Term {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.parse(expr).terms
}

// ParseStrict is like Parse but returns ErrMalformedUnitExpression when
// any part of expr does not match a registered unit.
func (r *Registry) ParseStrict(expr string) ([]Term, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p := r.parse(expr)
	if len(p.dropped) > 0 {
		return nil, newError("parse", expr, wrapf(ErrMalformedUnitExpression, "unrecognized %q", strings.Join(p.dropped, ", ")))
	}
	return p.terms, nil
}

// parse must be called with r.mu held. The returned terms belong to the
// caller.
func (r *Registry) parse(expr string) parsed {
	r.cacheMu.Lock()
	if v, ok := r.cache.Get(expr); ok {
		r.cacheMu.Unlock()
		p := v.(parsed)
		return parsed{terms: copyTerms(p.terms), dropped: p.dropped}
	}
	r.cacheMu.Unlock()

	p := r.scan(expr)

	r.cacheMu.Lock()
	r.cache.Add(expr, parsed{terms: copyTerms(p.terms), dropped: p.dropped})
	r.cacheMu.Unlock()
	return p
}

func copyTerms(t []Term) []Term {
	o := make([]Term, len(t))
	copy(o, t)
	return o
}

// scan does the work of parse.
func (r *Registry) scan(expr string) parsed {
	var p parsed
	// Terms are collected back to front and reversed at the end.
	var rev []Term
	s := expr
	for len(s) > 0 {
		if strings.HasSuffix(s, "/") {
			s = s[:len(s)-1]
			for i := range rev {
				rev[i].Exponent = -rev[i].Exponent
			}
			continue
		}
		rest, exponent, err := trailingExponent(s)
		if err == ErrMalformedExponent {
			r.Log.WithFields(logrus.Fields{
				"expression": expr,
			}).Debug("unitconv: malformed exponent; assuming 1")
		}
		n := trailingLetters(rest)
		if n == 0 {
			if rest == "" {
				// Only a number was left.
				p.dropped = append(p.dropped, s)
				break
			}
			c, size := utf8.DecodeLastRuneInString(rest)
			if !unicode.IsSpace(c) {
				p.dropped = append(p.dropped, rest[len(rest)-size:])
			}
			s = rest[:len(rest)-size]
			continue
		}
		candidate := rest[len(rest)-n:]
		s = rest[:len(rest)-n]
		for candidate != "" {
			if t, start, ok := r.matchEnding(candidate, exponent); ok {
				rev = append(rev, t)
				// The unmatched beginning of the run is read again.
				s += candidate[:start]
				break
			}
			_, size := utf8.DecodeLastRuneInString(candidate)
			p.dropped = append(p.dropped, candidate[len(candidate)-size:])
			candidate = candidate[:len(candidate)-size]
		}
	}
	if len(p.dropped) > 0 {
		r.Log.WithFields(logrus.Fields{
			"expression": expr,
			"dropped":    p.dropped,
		}).Debug("unitconv: ignoring unrecognized units")
	}
	p.terms = make([]Term, len(rev))
	for i, t := range rev {
		p.terms[len(rev)-1-i] = t
	}
	return p
}

// matchEnding finds the longest ending of the letter run candidate that
// names a registered unit, and returns the resulting term and the byte
// offset in candidate where the match starts. A unit declared with the
// exponent itself ("m3") is preferred over the bare symbol ("m") raised
// to that exponent.
func (r *Registry) matchEnding(candidate string, exponent float64) (Term, int, bool) {
	for start := 0; start < len(candidate); {
		ending := candidate[start:]
		if exponent != 1 {
			if id, ok := r.lookup(unitName(ending, exponent)); ok && r.units[id].Exponent == exponent {
				return Term{Unit: id, Exponent: 1}, start, true
			}
		}
		if id, ok := r.lookup(ending); ok && r.units[id].Exponent == 1 {
			return Term{Unit: id, Exponent: exponent}, start, true
		}
		_, size := utf8.DecodeRuneInString(ending)
		start += size
	}
	return Term{}, 0, false
}

// FormatTerms returns terms as a space-separated list such as
// "cm2 V-1 s-1".
func (r *Registry) FormatTerms(terms []Term) string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s := make([]string, 0, len(terms))
	for _, t := range terms {
		if !r.valid(t.Unit) {
			continue
		}
		s = append(s, r.termName(t))
	}
	return strings.Join(s, " ")
}

// purgeCache forgets all parse results. It must be called with r.mu
// held for writing, since new units change how expressions are read.
func (r *Registry) purgeCache() {
	r.cacheMu.Lock()
	r.cache = lru.New(parseCacheSize)
	r.cacheMu.Unlock()
}

// splitValue separates a number from the units that follow it, as in
// "3.12075e+28neV". It reports false if s does not start with a number.
func splitValue(s string) (float64, string, bool) {
	s = strings.TrimSpace(s)
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	digits := 0
	for i < len(s) && isDigit(s[i]) {
		i++
		digits++
	}
	if i < len(s) && s[i] == '.' {
		i++
		for i < len(s) && isDigit(s[i]) {
			i++
			digits++
		}
	}
	if digits == 0 {
		return 0, s, false
	}
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		// Only an exponent with digits belongs to the number: "5eV" is
		// five electron volts.
		j := i + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		k := j
		for k < len(s) && isDigit(s[k]) {
			k++
		}
		if k > j {
			i = k
		}
	}
	v, err := strconv.ParseFloat(s[:i], 64)
	if err != nil {
		return 0, s, false
	}
	return v, strings.TrimSpace(s[i:]), true
}
