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

// Package unitconvutil holds the command-line interface for unitconv.
package unitconvutil

import (
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/lnashier/viper"
	"github.com/sirupsen/logrus"
	"github.com/spatialmodel/unitconv"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Cfg holds configuration information.
var Cfg *viper.Viper

var options []struct {
	name, usage, shorthand string
	defaultVal             interface{}
	flagsets               []*pflag.FlagSet
}

func init() {
	// Options are the configuration options available to unitconv.
	options = []struct {
		name, usage, shorthand string
		defaultVal             interface{}
		flagsets               []*pflag.FlagSet
	}{
		{
			name: "config",
			usage: `
              config specifies the configuration file location.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "presets",
			usage: `
              presets specifies the standard unit families to load. The
              choices are time, temperature, length, energy, volume, and all.`,
			shorthand:  "p",
			defaultVal: []string{"all"},
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "definitions",
			usage: `
              definitions specifies the location of a TOML file with
              additional unit and conversion definitions. It can contain
              environment variables.`,
			shorthand:  "d",
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "precision",
			usage: `
              precision specifies the number of significant digits in
              converted values. A negative value prints as many digits as
              are needed to represent each value exactly.`,
			defaultVal: 6,
			flagsets:   []*pflag.FlagSet{convertCmd.Flags()},
		},
		{
			name: "showunits",
			usage: `
              showunits specifies whether to print the target units after
              each converted value.`,
			defaultVal: true,
			flagsets:   []*pflag.FlagSet{convertCmd.Flags()},
		},
		{
			name: "strict",
			usage: `
              strict specifies whether unit expressions containing text
              that does not match any unit should be rejected rather than
              partially converted.`,
			shorthand:  "s",
			defaultVal: false,
			flagsets:   []*pflag.FlagSet{convertCmd.Flags(), parseCmd.Flags()},
		},
		{
			name: "loglevel",
			usage: `
              loglevel specifies the level of log messages to print: one of
              panic, fatal, error, warning, info, or debug.`,
			defaultVal: "info",
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
	}

	Cfg = viper.New()

	// Set the prefix for configuration environment variables.
	Cfg.SetEnvPrefix("UNITCONV")

	for _, option := range options {
		for i, set := range option.flagsets {
			if i != 0 { // We don't want to create the same flag twice.
				set.AddFlag(option.flagsets[0].Lookup(option.name))
				continue
			}
			switch option.defaultVal.(type) {
			case string:
				if option.shorthand == "" {
					set.String(option.name, option.defaultVal.(string), option.usage)
				} else {
					set.StringP(option.name, option.shorthand, option.defaultVal.(string), option.usage)
				}
			case []string:
				if option.shorthand == "" {
					set.StringSlice(option.name, option.defaultVal.([]string), option.usage)
				} else {
					set.StringSliceP(option.name, option.shorthand, option.defaultVal.([]string), option.usage)
				}
			case bool:
				if option.shorthand == "" {
					set.Bool(option.name, option.defaultVal.(bool), option.usage)
				} else {
					set.BoolP(option.name, option.shorthand, option.defaultVal.(bool), option.usage)
				}
			case int:
				if option.shorthand == "" {
					set.Int(option.name, option.defaultVal.(int), option.usage)
				} else {
					set.IntP(option.name, option.shorthand, option.defaultVal.(int), option.usage)
				}
			default:
				panic("invalid argument type")
			}
			Cfg.BindPFlag(option.name, set.Lookup(option.name))
		}
	}
}

func init() {
	// Link the commands together.
	Root.AddCommand(versionCmd)
	Root.AddCommand(convertCmd)
	Root.AddCommand(parseCmd)
	Root.AddCommand(listCmd)
	Root.AddCommand(presetsCmd)

	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339Nano,
		DisableSorting:  true,
	})
}

// setConfig finds and reads in the configuration file, if there is one,
// and sets the logging level.
func setConfig() error {
	if cfgpath := Cfg.GetString("config"); cfgpath != "" {
		Cfg.SetConfigFile(cfgpath)
		if err := Cfg.ReadInConfig(); err != nil {
			return fmt.Errorf("unitconv: problem reading configuration file: %v", err)
		}
	}
	level, err := logrus.ParseLevel(Cfg.GetString("loglevel"))
	if err != nil {
		return fmt.Errorf("unitconv: invalid loglevel: %v", err)
	}
	logrus.SetLevel(level)
	return nil
}

// Root is the main command.
var Root = &cobra.Command{
	Use:   "unitconv",
	Short: "A physical unit converter.",
	Long: `unitconv converts numeric values between physical units, including
compound units such as cm2/Vs. Use the subcommands specified below to access
the converter functionality.

Refer to the subcommand documentation for configuration options and default settings.
Configuration can be changed by using a configuration file (and providing the
path to the file using the --config flag), by using command-line arguments,
or by setting environment variables in the format 'UNITCONV_var' where 'var' is the
name of the variable to be set.
Refer to https://github.com/spf13/viper for additional configuration information.`,
	DisableAutoGenTag: true,
	PersistentPreRunE: func(*cobra.Command, []string) error { return setConfig() },
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Long:  "version prints the version number of this version of unitconv.",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "unitconv v%s\n", unitconv.Version)
	},
	DisableAutoGenTag: true,
}

var convertCmd = &cobra.Command{
	Use:   "convert VALUE TARGET [VALUE TARGET...]",
	Short: "Convert values between units.",
	Long: `convert converts each VALUE, a number followed by its units such as
5J or 300K, to the units given by the TARGET that follows it, and prints one
result per line. A value that cannot be converted is printed unchanged and
the command exits with an error.`,
	Example: `  unitconv convert 5J neV
  unitconv convert 212F C 1mi km`,
	Args: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 || len(args)%2 != 0 {
			return fmt.Errorf("unitconv: convert requires pairs of VALUE and TARGET arguments but got %d arguments", len(args))
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := RegistryFromConfig(Cfg, logrus.StandardLogger())
		if err != nil {
			return err
		}
		showUnits := Cfg.GetBool("showunits")
		var failed []string
		for i := 0; i < len(args); i += 2 {
			s, err := r.Convert(args[i], args[i+1], showUnits)
			if err != nil {
				failed = append(failed, err.Error())
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s\n", s)
		}
		if len(failed) > 0 {
			return fmt.Errorf("unitconv: %d of %d conversions failed:\n%s",
				len(failed), len(args)/2, strings.Join(failed, "\n"))
		}
		return nil
	},
	DisableAutoGenTag: true,
}

var parseCmd = &cobra.Command{
	Use:   "parse EXPR...",
	Short: "Show how unit expressions are read.",
	Long: `parse prints the units and exponents that each unit expression is
split into, e.g. cm2/Vs gives cm2 V-1 s-1.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := RegistryFromConfig(Cfg, logrus.StandardLogger())
		if err != nil {
			return err
		}
		for _, expr := range args {
			var terms []unitconv.Term
			if r.Strict {
				if terms, err = r.ParseStrict(expr); err != nil {
					return err
				}
			} else {
				terms = r.Parse(expr)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", expr, r.FormatTerms(terms))
		}
		return nil
	},
	DisableAutoGenTag: true,
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the defined units.",
	Long: `list prints every defined unit along with its basis unit and its
physical dimensions, if known.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := RegistryFromConfig(Cfg, logrus.StandardLogger())
		if err != nil {
			return err
		}
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 8, 2, ' ', 0)
		fmt.Fprintln(w, "UNIT\tBASIS\tDIMENSIONS")
		for _, u := range r.Units() {
			basis := "-"
			if b, ok := r.Unit(u.Basis); ok {
				basis = b.Name()
			}
			dims := "-"
			if u.Dims != nil {
				dims = unitconv.FormatDimensions(u.Dims)
			}
			fmt.Fprintf(w, "%s\t%s\t%s\n", u.Name(), basis, dims)
		}
		return w.Flush()
	},
	DisableAutoGenTag: true,
}

var presetsCmd = &cobra.Command{
	Use:   "presets",
	Short: "List the standard unit families.",
	Long:  "presets prints the names of the unit families that can be given to --presets.",
	Run: func(cmd *cobra.Command, args []string) {
		for _, p := range unitconv.PresetNames() {
			fmt.Fprintf(cmd.OutOrStdout(), "%s\n", p)
		}
	},
	DisableAutoGenTag: true,
}
