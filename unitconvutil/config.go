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

package unitconvutil

import (
	"fmt"
	"os"

	"github.com/lnashier/viper"
	"github.com/sirupsen/logrus"
	"github.com/spatialmodel/unitconv"
	"github.com/spf13/cast"
)

// RegistryFromConfig creates a unit registry holding the presets and
// definitions specified in cfg.
func RegistryFromConfig(cfg *viper.Viper, log logrus.FieldLogger) (*unitconv.Registry, error) {
	presets, err := cast.ToStringSliceE(cfg.Get("presets"))
	if err != nil {
		return nil, fmt.Errorf("unitconv: reading 'presets': %v", err)
	}
	r := unitconv.NewRegistry()
	r.Log = log
	if cfg.IsSet("precision") {
		r.Precision = cfg.GetInt("precision")
	}
	r.Strict = cfg.GetBool("strict")
	for _, p := range expandStringSlice(presets) {
		if err := r.AddPreset(p); err != nil {
			return nil, err
		}
	}
	if f := os.ExpandEnv(cfg.GetString("definitions")); f != "" {
		if err := loadDefinitions(r, f); err != nil {
			return nil, err
		}
	}
	log.WithFields(logrus.Fields{
		"presets": presets,
		"units":   r.Len(),
	}).Debug("unitconv: registry ready")
	return r, nil
}

func loadDefinitions(r *unitconv.Registry, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("unitconv: opening definitions file: %v", err)
	}
	defer f.Close()
	return r.LoadDefinitions(f)
}

// expandStringSlice expands the environment variables in a slice of strings.
func expandStringSlice(s []string) []string {
	for i := 0; i < len(s); i++ {
		s[i] = os.ExpandEnv(s[i])
	}
	return s
}
