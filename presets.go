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
	"github.com/ctessum/unit"
	"github.com/sirupsen/logrus"
)

// presetOrder lists the preset bundles in the order "all" loads them.
var presetOrder = []string{"time", "temperature", "length", "energy", "volume"}

var presets = map[string]func(*builder){
	"time":        presetTime,
	"temperature": presetTemperature,
	"temp":        presetTemperature,
	"length":      presetLength,
	"energy":      presetEnergy,
	"volume":      presetVolume,
}

// PresetNames returns the bundle names accepted by AddPreset.
func PresetNames() []string {
	return append(append([]string(nil), presetOrder...), "all")
}

// AddPreset defines a standard family of units and the conversions
// between them. The bundles are "time", "temperature" (or "temp"),
// "length", "energy", "volume", and "all". Adding a bundle more than once
// has no further effect.
func (r *Registry) AddPreset(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	var bundles []string
	switch {
	case name == "all":
		bundles = presetOrder
	case presets[name] != nil:
		bundles = []string{name}
	default:
		return newError("add preset", name, ErrUnknownPreset)
	}
	for _, p := range bundles {
		b := &builder{r: r}
		presets[p](b)
		if b.err != nil {
			return newError("add preset", p, b.err)
		}
		r.Log.WithFields(logrus.Fields{
			"preset": p,
			"units":  len(r.units),
		}).Debug("unitconv: loaded preset")
	}
	return nil
}

// builder defines units and conversions with r.mu held, remembering the
// first error so that preset definitions read as a flat list.
type builder struct {
	r   *Registry
	err error
}

// basis defines a basis unit with dimensions d, and its metric variants
// if metric is true.
func (b *builder) basis(name string, d unit.Dimensions, metric bool) UnitID {
	if b.err != nil {
		return NoUnit
	}
	u, err := b.r.define(name, NoUnit, false)
	if err != nil {
		b.err = err
		return NoUnit
	}
	if err := b.r.setDimensions(u.ID, d); err != nil {
		b.err = err
		return NoUnit
	}
	if metric && !b.r.units[u.ID].Metric {
		if err := b.r.makeMetric(u.ID); err != nil {
			b.err = err
		}
	}
	return u.ID
}

// conv defines the conversion between two units.
func (b *builder) conv(from, to UnitID, c Conversion) {
	if b.err != nil {
		return
	}
	b.err = b.r.defineConversion(from, to, c)
}

func presetTime(b *builder) {
	s := b.basis("s", unit.Second, true)
	minute := b.basis("min", unit.Second, false)
	h := b.basis("h", unit.Second, false)
	d := b.basis("d", unit.Second, false)

	b.conv(minute, s, Factor(secondsPerMinute))
	b.conv(h, s, Factor(secondsPerHour))
	b.conv(d, s, Factor(secondsPerDay))
}

func presetTemperature(b *builder) {
	f := b.basis("F", unit.Kelvin, false)
	c := b.basis("C", unit.Kelvin, false)
	k := b.basis("K", unit.Kelvin, false)
	r := b.basis("R", unit.Kelvin, false)

	b.conv(f, c, fahrenheitCelsius)
	b.conv(c, k, celsiusKelvin)
	b.conv(f, k, fahrenheitKelvin)
	b.conv(r, k, rankineKelvin)
}

func presetLength(b *builder) {
	m := b.basis("m", unit.Meter, true)
	a := b.basis("A", unit.Meter, false)
	in := b.basis("in", unit.Meter, false)
	ft := b.basis("ft", unit.Meter, false)
	yd := b.basis("yd", unit.Meter, false)
	mi := b.basis("mi", unit.Meter, false)

	b.conv(a, m, Factor(metersPerAngstrom))
	b.conv(in, m, Factor(metersPerInch))
	b.conv(ft, m, Factor(metersPerFoot))
	b.conv(yd, m, Factor(metersPerYard))
	b.conv(mi, m, Factor(metersPerMile))
}

func presetEnergy(b *builder) {
	b.basis("V", Volt, true)
	ev := b.basis("eV", unit.Joule, true)
	j := b.basis("J", unit.Joule, true)

	b.conv(ev, j, Factor(JoulesPerElectronVolt))
}

func presetVolume(b *builder) {
	m3 := b.basis("m3", unit.Meter3, true)
	ft3 := b.basis("ft3", unit.Meter3, false)
	gal := b.basis("gal", unit.Meter3, false)
	l := b.basis("L", unit.Meter3, false)

	b.conv(ft3, m3, Factor(cubicMetersPerCubicFoot))
	b.conv(m3, gal, Factor(gallonsPerCubicMeter))
	b.conv(ft3, gal, Factor(gallonsPerCubicFoot))
	b.conv(m3, l, Factor(litersPerCubicMeter))
}
