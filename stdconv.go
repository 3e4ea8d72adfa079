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

// Standard conversion constants.
const (
	// JoulesPerElectronVolt is the energy of one electron volt [J].
	JoulesPerElectronVolt = 1.602177e-19

	metersPerAngstrom = 1e-10
	metersPerInch     = 0.0254
	metersPerFoot     = 0.3048
	metersPerYard     = 0.9144
	metersPerMile     = 1609.344

	cubicMetersPerCubicFoot = metersPerFoot * metersPerFoot * metersPerFoot
	gallonsPerCubicMeter    = 264.1721
	gallonsPerCubicFoot     = 7.48051
	litersPerCubicMeter     = 1e3

	secondsPerMinute = 60
	secondsPerHour   = 3600
	secondsPerDay    = 86400
)

// Temperature conversions. These include offsets, so they cannot be
// applied to temperatures raised to a power.

func fahrenheitToCelsius(f float64) float64 { return (f - 32) / (9.0 / 5.0) }
func celsiusToFahrenheit(c float64) float64 { return c*(9.0/5.0) + 32 }
func celsiusToKelvin(c float64) float64     { return c + 273.15 }
func kelvinToCelsius(k float64) float64     { return k - 273.15 }
func fahrenheitToKelvin(f float64) float64  { return (f + 459.67) * (5.0 / 9.0) }
func kelvinToFahrenheit(k float64) float64  { return k*(9.0/5.0) - 459.67 }
func rankineToKelvin(r float64) float64     { return r * (5.0 / 9.0) }
func kelvinToRankine(k float64) float64     { return k * (9.0 / 5.0) }

var (
	fahrenheitCelsius = Scale{Forward: fahrenheitToCelsius, Backward: celsiusToFahrenheit}
	celsiusKelvin     = Scale{Forward: celsiusToKelvin, Backward: kelvinToCelsius}
	fahrenheitKelvin  = Scale{Forward: fahrenheitToKelvin, Backward: kelvinToFahrenheit}
	rankineKelvin     = Scale{Forward: rankineToKelvin, Backward: kelvinToRankine}
)
