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

// Package detect provides the detect command for detective.
package detect

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"bennypowers.dev/detective/analyze"
	"bennypowers.dev/detective/fs"
	"bennypowers.dev/detective/internal/config"
	"bennypowers.dev/detective/internal/logging"
	"bennypowers.dev/detective/internal/output"
)

// Cmd is the detect cobra command that lists the module dependencies of
// JavaScript, TypeScript and HTML files.
var Cmd = &cobra.Command{
	Use:   "detect [file...]",
	Short: "List the module dependencies of source files",
	Long: `Detect import declarations and require-like calls in source files.

Literal specifiers are listed under "strings". Calls whose argument is
computed at runtime are listed under "expressions" with their location.

For a single file, outputs the file's metadata as JSON.
For multiple files (via arguments or --glob), outputs NDJSON with one result per line.`,
	Example: `  # Detect dependencies of one file
  detective detect src/index.js

  # Attach the source text of dynamic requires
  detective detect src/index.js --attach-expression-source

  # Treat __dereq__ as the require function
  detective detect bundle.js --word __dereq__

  # Every file under src, in parallel
  detective detect --glob "src/**/*.{js,ts}" -j 8

  # Human-readable listing
  detective detect src/*.js --format text`,
	RunE: run,
}

func init() {
	Cmd.Flags().StringP("format", "f", "json", "Output format (json, ndjson, text)")
	Cmd.Flags().String("glob", "", "Glob pattern to match source files (e.g., \"src/**/*.js\")")
	Cmd.Flags().IntP("jobs", "j", 0, "Number of parallel workers (default: number of CPUs)")
}

func run(cmd *cobra.Command, args []string) error {
	osfs := fs.NewOSFileSystem()
	cfg := config.Load(viper.GetViper())

	globPattern, _ := cmd.Flags().GetString("glob")
	files, err := collectFiles(args, globPattern)
	if err != nil {
		return err
	}

	format, _ := cmd.Flags().GetString("format")
	switch format {
	case "json", "ndjson", "text":
	default:
		return fmt.Errorf("invalid format %q: must be one of json, ndjson, text", format)
	}

	analyzer := analyze.New(osfs, &cfg.Options).
		WithLowering(cfg.Lower).
		WithLogger(logging.New(cfg.Verbose))

	if len(files) == 1 && format == "json" {
		result, err := analyzer.File(files[0])
		if err != nil {
			return fmt.Errorf("failed to analyze: %w", err)
		}
		return output.JSON(osfs, cfg.Output, result)
	}

	parallel, _ := cmd.Flags().GetInt("jobs")
	results := analyzer.Batch(files, parallel)
	if format == "text" {
		return writeText(osfs, cfg.Output, files, results)
	}
	return writeNDJSON(osfs, cfg.Output, results)
}

// collectFiles gathers files from args and the glob pattern, deduplicating
// by absolute path and keeping the order they were given in.
func collectFiles(args []string, globPattern string) ([]string, error) {
	seen := make(map[string]struct{})
	var files []string

	add := func(p string) error {
		absPath, err := filepath.Abs(p)
		if err != nil {
			return fmt.Errorf("invalid file path %q: %w", p, err)
		}
		if _, exists := seen[absPath]; !exists {
			seen[absPath] = struct{}{}
			files = append(files, absPath)
		}
		return nil
	}

	for _, arg := range args {
		if err := add(arg); err != nil {
			return nil, err
		}
	}

	if globPattern != "" {
		matches, err := doublestar.FilepathGlob(globPattern, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("invalid glob pattern: %w", err)
		}
		for _, match := range matches {
			if err := add(match); err != nil {
				return nil, err
			}
		}
	}

	if len(files) == 0 {
		return nil, fmt.Errorf("no files to analyze: provide file arguments or use --glob")
	}
	return files, nil
}

func writeNDJSON(osfs fs.FileSystem, outputPath string, results <-chan analyze.BatchResult) error {
	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	var errorCount, totalCount int

	for result := range results {
		totalCount++
		if result.Error != "" {
			errorCount++
			fmt.Fprintf(os.Stderr, "Warning: %s: %s\n", result.File, result.Error)
		}
		if err := encoder.Encode(result); err != nil {
			fmt.Fprintf(os.Stderr, "Error encoding result for %s: %v\n", result.File, err)
		}
		if outputPath == "" {
			_, _ = os.Stdout.Write(buf.Bytes())
			buf.Reset()
		}
	}

	if outputPath != "" {
		if err := osfs.WriteFile(outputPath, buf.Bytes(), 0644); err != nil {
			return err
		}
	}
	if errorCount == totalCount {
		return fmt.Errorf("all %d files failed to analyze", errorCount)
	}
	return nil
}

func writeText(osfs fs.FileSystem, outputPath string, files []string, results <-chan analyze.BatchResult) error {
	byFile := make(map[string]analyze.BatchResult, len(files))
	for result := range results {
		byFile[result.File] = result
	}

	var buf bytes.Buffer
	var errorCount int
	for _, file := range files {
		result := byFile[file]
		if result.Error != "" {
			errorCount++
			fmt.Fprintf(os.Stderr, "Warning: %s: %s\n", file, result.Error)
			continue
		}
		output.Text(&buf, file, result.Requires)
	}

	if outputPath != "" {
		if err := osfs.WriteFile(outputPath, buf.Bytes(), 0644); err != nil {
			return err
		}
	} else {
		_, _ = os.Stdout.Write(buf.Bytes())
	}
	if errorCount == len(files) {
		return fmt.Errorf("all %d files failed to analyze", errorCount)
	}
	return nil
}
