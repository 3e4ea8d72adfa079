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
)

// These are the kinds of failure reported by the registry. Callers can
// test for them with errors.Is.
var (
	// ErrUnitNotFound is returned when a unit name or id is not registered.
	ErrUnitNotFound = errors.New("unit not found")

	// ErrDuplicateDefinition is returned when a name is already registered
	// with a different basis.
	ErrDuplicateDefinition = errors.New("duplicate unit definition")

	// ErrNoConversionPath is returned when the units parse but no chain of
	// conversions connects them.
	ErrNoConversionPath = errors.New("no conversion path")

	// ErrMalformedExponent marks a trailing exponent that could not be read.
	// It is never returned from a conversion; the exponent is taken to be 1.
	ErrMalformedExponent = errors.New("malformed exponent")

	// ErrIncompatibleShape is returned when a conversion function cannot be
	// applied to a term, e.g. a temperature offset raised to a power.
	ErrIncompatibleShape = errors.New("incompatible conversion shape")

	// ErrMalformedUnitExpression is returned for empty or unparsable unit
	// text, and by strict parsing when characters would be dropped.
	ErrMalformedUnitExpression = errors.New("malformed unit expression")

	// ErrUnknownPreset is returned by AddPreset for an unknown bundle name.
	ErrUnknownPreset = errors.New("unknown preset")
)

// ConversionError describes a failed registry operation.
type ConversionError struct {
	// Op is the operation that failed, e.g. "convert" or "define".
	Op string
	// Input is the text the operation was working on.
	Input string
	Err   error
}

func (e *ConversionError) Error() string {
	if e.Input == "" {
		return fmt.Sprintf("unitconv: %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("unitconv: %s %q: %v", e.Op, e.Input, e.Err)
}

// Unwrap returns the underlying error.
func (e *ConversionError) Unwrap() error { return e.Err }

func newError(op, input string, err error) error {
	return &ConversionError{Op: op, Input: input, Err: err}
}

// wrapf adds detail to one of the sentinel errors while keeping it
// visible to errors.Is.
func wrapf(err error, format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", err, fmt.Sprintf(format, args...))
}

// Status codes returned by StatusCode.
const (
	StatusOK = iota
	StatusUnitNotFound
	StatusDuplicateDefinition
	StatusNoConversionPath
	StatusMalformedExponent
	StatusIncompatibleShape
	StatusMalformedUnitExpression
	StatusUnknownPreset
	StatusUnknown
)

// StatusCode maps err to the integer status used by callers that cannot
// handle Go errors: 0 for success and a non-zero value for each kind of
// failure.
func StatusCode(err error) int {
	switch {
	case err == nil:
		return StatusOK
	case errors.Is(err, ErrUnitNotFound):
		return StatusUnitNotFound
	case errors.Is(err, ErrDuplicateDefinition):
		return StatusDuplicateDefinition
	case errors.Is(err, ErrNoConversionPath):
		return StatusNoConversionPath
	case errors.Is(err, ErrMalformedExponent):
		return StatusMalformedExponent
	case errors.Is(err, ErrIncompatibleShape):
		return StatusIncompatibleShape
	case errors.Is(err, ErrMalformedUnitExpression):
		return StatusMalformedUnitExpression
	case errors.Is(err, ErrUnknownPreset):
		return StatusUnknownPreset
	default:
		return StatusUnknown
	}
}
