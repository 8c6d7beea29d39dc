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

// Command detective lists the module dependencies of JavaScript,
// TypeScript and HTML sources.
package main

import (
	"errors"
	"fmt"
	"os"
	"runtime/pprof"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"bennypowers.dev/detective/cmd/detect"
	"bennypowers.dev/detective/cmd/graph"
	"bennypowers.dev/detective/cmd/version"
	"bennypowers.dev/detective/detective"
	"bennypowers.dev/detective/internal/config"
)

var (
	cfgFile        string
	cpuprofile     string
	cpuprofileFile *os.File
	rootCmd        = &cobra.Command{
		Use:   "detective",
		Short: "Find the module dependencies of source files",
		Long: `detective finds import declarations and require-like calls in
JavaScript, TypeScript and HTML files, including requires whose argument is
only known at runtime.

Options can also be set in .detective.yaml or with DETECTIVE_* environment
variables, e.g. DETECTIVE_WORD=__dereq__.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := config.Init(viper.GetViper(), cfgFile); err != nil {
				return err
			}
			if cpuprofile != "" {
				f, err := os.Create(cpuprofile)
				if err != nil {
					return fmt.Errorf("could not create CPU profile: %w", err)
				}
				cpuprofileFile = f
				if err := pprof.StartCPUProfile(f); err != nil {
					closeErr := f.Close()
					return errors.Join(
						fmt.Errorf("could not start CPU profile: %w", err),
						closeErr,
					)
				}
			}
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if cpuprofileFile != nil {
				pprof.StopCPUProfile()
				if err := cpuprofileFile.Close(); err != nil {
					return fmt.Errorf("closing CPU profile: %w", err)
				}
			}
			return nil
		},
	}
)

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "Config file (default: .detective.yaml if present)")
	flags.StringVar(&cpuprofile, "cpuprofile", "", "Write CPU profile to file")

	flags.StringP(config.KeyPackage, "p", ".", "Package directory")
	flags.StringP(config.KeyOutput, "o", "", "Output file (default: stdout)")
	flags.BoolP(config.KeyVerbose, "v", false, "Log diagnostics to stderr")

	flags.String(config.KeyWord, detective.DefaultWord, "Name of the require-like function")
	flags.Bool(config.KeyIncludeImport, true, "Record import declarations")
	flags.Bool(config.KeyIncludeRequire, true, "Record require-like calls")
	flags.Bool(config.KeyIncludeGenerated, false, "Record calls generated by lowering (duplicates lowered imports)")
	flags.Bool(config.KeyAttachExpressionSource, false, "Attach source text to dynamic expressions")
	flags.Bool(config.KeyNodeRepresentation, false, "Record syntax tree nodes instead of values and locations")
	flags.Bool(config.KeyLower, false, "Lower import declarations to generated require calls before detection")

	for _, key := range []string{
		config.KeyPackage,
		config.KeyOutput,
		config.KeyVerbose,
		config.KeyWord,
		config.KeyIncludeImport,
		config.KeyIncludeRequire,
		config.KeyIncludeGenerated,
		config.KeyAttachExpressionSource,
		config.KeyNodeRepresentation,
		config.KeyLower,
	} {
		_ = viper.BindPFlag(key, flags.Lookup(key))
	}

	rootCmd.AddCommand(detect.Cmd)
	rootCmd.AddCommand(graph.Cmd)
	rootCmd.AddCommand(version.Cmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
