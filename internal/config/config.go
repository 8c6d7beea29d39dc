/*
Copyright © 2026 Benny Powers <web@bennypowers.com>

This program is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

This program is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with this program. If not, see <http://www.gnu.org/licenses/>.
*/

// Package config maps command-line flags, environment variables and
// config files onto detective settings.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"bennypowers.dev/detective/detective"
)

// Configuration keys. Flags of the same name are bound to them.
const (
	KeyWord                   = "word"
	KeyIncludeImport          = "include-import"
	KeyIncludeRequire         = "include-require"
	KeyIncludeGenerated       = "include-generated"
	KeyAttachExpressionSource = "attach-expression-source"
	KeyNodeRepresentation     = "node-representation"
	KeyLower                  = "lower"
	KeyOutput                 = "output"
	KeyVerbose                = "verbose"
	KeyPackage                = "package"
)

// EnvPrefix prefixes environment variables, e.g. DETECTIVE_WORD.
const EnvPrefix = "DETECTIVE"

// Config is the effective configuration of a command run.
type Config struct {
	Options detective.Options
	// Lower runs the module lowering pass before detection.
	Lower   bool
	Output  string
	Verbose bool
	Package string
}

// Init prepares v to read configuration. When cfgFile is empty, a
// .detective.{yaml,json,toml} in the working directory is used if present.
func Init(v *viper.Viper, cfgFile string) error {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName(".detective")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile == "" && errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("reading config: %w", err)
	}
	return nil
}

// Load returns the configuration held by v. The inclusion flags stay
// unset unless a source sets them, so detective applies its defaults.
func Load(v *viper.Viper) *Config {
	cfg := &Config{
		Options: detective.Options{
			Word:                   v.GetString(KeyWord),
			IncludeGenerated:       v.GetBool(KeyIncludeGenerated),
			AttachExpressionSource: v.GetBool(KeyAttachExpressionSource),
			NodeRepresentation:     v.GetBool(KeyNodeRepresentation),
		},
		Lower:   v.GetBool(KeyLower),
		Output:  v.GetString(KeyOutput),
		Verbose: v.GetBool(KeyVerbose),
		Package: v.GetString(KeyPackage),
	}
	if v.IsSet(KeyIncludeImport) {
		cfg.Options.IncludeImport = detective.Bool(v.GetBool(KeyIncludeImport))
	}
	if v.IsSet(KeyIncludeRequire) {
		cfg.Options.IncludeRequire = detective.Bool(v.GetBool(KeyIncludeRequire))
	}
	return cfg
}
