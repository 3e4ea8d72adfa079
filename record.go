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

	"github.com/ctessum/unit"
)

// UnitID is the index of a unit in the Registry that owns it.
type UnitID int

// NoUnit is the UnitID of a missing unit. A Unit whose Basis is NoUnit
// is itself a basis.
const NoUnit UnitID = -1

// Unit is a registered unit. Units are values: the registry keeps the
// authoritative copy and hands out copies.
type Unit struct {
	ID UnitID

	// Symbol is the bare unit text, e.g. "m" or "eV".
	Symbol string

	// Exponent is the power the symbol is declared with, e.g. 3 for "m3".
	Exponent float64

	// Basis is the unit this one reduces to, or NoUnit if this unit
	// is a basis.
	Basis UnitID

	// Metric units have had prefixed variants generated by MakeMetric.
	Metric bool

	// CaseInsensitive units also match names that differ only in case.
	CaseInsensitive bool

	// Dims holds the physical dimensions of the unit, if known. It must
	// not be modified.
	Dims unit.Dimensions
}

// Name returns the registry key of u: the symbol, followed by the
// exponent when it is not 1.
func (u Unit) Name() string {
	return unitName(u.Symbol, u.Exponent)
}

// IsBasis returns whether u is a basis unit.
func (u Unit) IsBasis() bool { return u.Basis == NoUnit }

func (u Unit) String() string { return u.Name() }

func unitName(symbol string, exponent float64) string {
	if exponent == 1 {
		return symbol
	}
	return symbol + formatExponent(exponent)
}

func formatExponent(e float64) string {
	return strconv.FormatFloat(e, 'g', -1, 64)
}

// splitName separates a unit name into its symbol and exponent. A leading
// "/" negates the exponent. A trailing sign without digits is malformed;
// it is removed and the exponent is taken to be 1, and ErrMalformedExponent
// is returned alongside the usable result.
func splitName(name string) (symbol string, exponent float64, err error) {
	s := name
	negate := false
	if strings.HasPrefix(s, "/") {
		negate = true
		s = s[1:]
	}
	symbol, exponent, err = trailingExponent(s)
	if negate {
		exponent = -exponent
	}
	return symbol, exponent, err
}

// trailingExponent reads an optionally signed run of digits from the end
// of s.
func trailingExponent(s string) (rest string, exponent float64, err error) {
	i := len(s)
	for i > 0 && isDigit(s[i-1]) {
		i--
	}
	digits := s[i:]
	sign := ""
	if i > 0 && (s[i-1] == '+' || s[i-1] == '-') {
		sign = s[i-1 : i]
		i--
	}
	if digits == "" {
		if sign != "" {
			return s[:i], 1, ErrMalformedExponent
		}
		return s, 1, nil
	}
	e, perr := strconv.ParseFloat(sign+digits, 64)
	if perr != nil {
		return s[:i], 1, ErrMalformedExponent
	}
	if e == 0 {
		// A zero power would make the unit vanish.
		return s[:i], 1, ErrMalformedExponent
	}
	return s[:i], e, nil
}

func isDigit(b byte) bool { return '0' <= b && b <= '9' }

// validSymbol returns whether s is a non-empty run of letters.
func validSymbol(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}

// trailingLetters returns the length in bytes of the run of letters at the
// end of s.
func trailingLetters(s string) int {
	n := 0
	for len(s) > n {
		r, size := utf8.DecodeLastRuneInString(s[:len(s)-n])
		if !unicode.IsLetter(r) {
			break
		}
		n += size
	}
	return n
}
