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

// Package unitconv converts numeric values between physical units.
//
// A Registry holds unit definitions, each of which reduces to a basis unit,
// and the conversions between them. Compound unit expressions such as
// "cm2/Vs" are split into terms and converted term by term, first between
// units that share a basis and then across bases:
//
//	r := unitconv.NewRegistry()
//	if err := r.AddPreset("all"); err != nil {
//		log.Fatal(err)
//	}
//	s, err := r.Convert("5J", "neV", true) // "3.12075e+28neV"
package unitconv

// Version gives the version of this software.
const Version = "1.0.0"
