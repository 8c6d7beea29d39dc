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

// Package graph provides the graph command for detective.
package graph

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"bennypowers.dev/detective/analyze"
	"bennypowers.dev/detective/fs"
	"bennypowers.dev/detective/internal/config"
	"bennypowers.dev/detective/internal/logging"
	"bennypowers.dev/detective/internal/output"
	"bennypowers.dev/detective/packagejson"
)

// Cmd is the graph cobra command that follows local dependencies from
// entry modules and reports the packages they reach.
var Cmd = &cobra.Command{
	Use:   "graph [entry...]",
	Short: "Trace the dependency graph of entry modules",
	Long: `Trace the module graph reachable from entry modules or HTML pages.

Relative and root-absolute specifiers are followed. Bare specifiers are
collected and checked against the nearest package.json. Requires with
computed arguments are listed with their source so they can be reviewed.

Without arguments, the entry is read from the "module" or "main" field of
the package.json in the package directory.`,
	Example: `  # Trace the package entry
  detective graph

  # Trace an HTML page and the scripts it loads
  detective graph index.html

  # Include the duplicates a lowering pass would introduce
  detective graph src/index.js --lower --include-generated`,
	RunE: run,
}

func run(cmd *cobra.Command, args []string) error {
	osfs := fs.NewOSFileSystem()
	cfg := config.Load(viper.GetViper())

	absRoot, err := filepath.Abs(cfg.Package)
	if err != nil {
		return fmt.Errorf("invalid package directory: %w", err)
	}

	cache := packagejson.NewCache()
	entries, err := entrypoints(osfs, cache, absRoot, args)
	if err != nil {
		return err
	}

	analyzer := analyze.New(osfs, &cfg.Options).
		WithLowering(cfg.Lower).
		WithLogger(logging.New(cfg.Verbose))

	graph, err := analyzer.Graph(absRoot, entries...)
	if err != nil {
		return fmt.Errorf("failed to trace: %w", err)
	}

	issues := graph.ValidateImports(osfs, absRoot, cache)
	for _, issue := range issues {
		fmt.Fprintf(os.Stderr, "Warning: %s:%d\n", issue.File, issue.Line)
		fmt.Fprintf(os.Stderr, "  Import %q references %s %q\n", issue.Specifier, issue.IssueType, issue.Package)
	}
	for _, err := range graph.Errors {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}

	return output.JSON(osfs, cfg.Output, graph.Summarize(absRoot, issues))
}

func entrypoints(osfs fs.FileSystem, cache *packagejson.Cache, absRoot string, args []string) ([]string, error) {
	if len(args) == 0 {
		pkg, err := cache.Load(osfs, filepath.Join(absRoot, "package.json"))
		if err != nil {
			return nil, fmt.Errorf("no entry given and no package.json in %s: %w", absRoot, err)
		}
		return []string{filepath.Join(absRoot, pkg.Entry())}, nil
	}

	entries := make([]string, 0, len(args))
	for _, arg := range args {
		absPath, err := filepath.Abs(arg)
		if err != nil {
			return nil, fmt.Errorf("invalid file path %q: %w", arg, err)
		}
		entries = append(entries, absPath)
	}
	return entries, nil
}
