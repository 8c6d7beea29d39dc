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
package analyze

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"

	"bennypowers.dev/detective/detective"
	"bennypowers.dev/detective/fs"
	"bennypowers.dev/detective/packagejson"
	"bennypowers.dev/detective/parse"
)

// ErrUnresolved is returned when a local specifier names no file.
var ErrUnresolved = errors.New("cannot resolve module")

// resolveExtensions are tried in order when a local specifier has no file
// of its exact name.
var resolveExtensions = []string{".js", ".mjs", ".cjs", ".jsx", ".ts", ".tsx", ".mts", ".cts"}

// ModuleGraph represents the dependency graph reachable from a set of
// entrypoints through local specifiers.
type ModuleGraph struct {
	// Entrypoints are the starting modules.
	Entrypoints []string

	// Modules maps module paths to their analysis.
	Modules map[string]*Module

	// Errors collects non-fatal errors encountered while building.
	Errors []error

	bareSpecifiers map[string]bool
	builtins       map[string]bool
}

// Module is one analyzed file in the graph.
type Module struct {
	Path    string
	Imports []Import
	// Dynamic holds require-like calls whose argument is computed.
	Dynamic []Dynamic
}

// Import is a statically known dependency of a module.
type Import struct {
	Specifier string
	Line      int  // 0 for generated calls
	Generated bool // from a lowered import
}

// Dynamic is a dependency whose specifier is only known at runtime.
type Dynamic struct {
	Line int
	Code string
}

// Graph builds the module graph starting at entries. Relative specifiers
// resolve against the importing module, absolute ones against rootDir.
// HTML entries contribute their inline scripts and every external
// JavaScript <script src>.
func (a *Analyzer) Graph(rootDir string, entries ...string) (*ModuleGraph, error) {
	graph := &ModuleGraph{
		Modules:        make(map[string]*Module),
		bareSpecifiers: make(map[string]bool),
		builtins:       make(map[string]bool),
	}

	// The graph needs positions and source text regardless of how the
	// caller wants metadata represented.
	opts := detective.Options{}
	if a.opts != nil {
		opts = *a.opts
	}
	opts.NodeRepresentation = true
	opts.AttachExpressionSource = true
	g := &graphBuilder{analyzer: a.WithOptions(&opts), rootDir: rootDir, graph: graph}

	for _, entry := range entries {
		if err := g.entry(entry); err != nil {
			return nil, err
		}
	}
	return graph, nil
}

type graphBuilder struct {
	analyzer *Analyzer
	rootDir  string
	graph    *ModuleGraph
}

func (g *graphBuilder) entry(path string) error {
	lang, err := parse.LanguageFor(path)
	if err != nil {
		return err
	}
	g.graph.Entrypoints = append(g.graph.Entrypoints, path)
	if err := g.trace(path); err != nil {
		return err
	}
	if lang != parse.HTML {
		return nil
	}

	content, err := g.analyzer.fs.ReadFile(path)
	if err != nil {
		return err
	}
	scripts, err := parse.ParseHTML(content)
	if err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}
	for _, script := range scripts {
		if script.Src == "" || !script.IsJavaScript() {
			continue
		}
		kind := Classify(script.Src)
		if kind != Relative && kind != Absolute && kind != Bare {
			continue
		}
		src := g.resolvePath(filepath.Dir(path), script.Src)
		g.graph.Entrypoints = append(g.graph.Entrypoints, src)
		g.follow(src)
	}
	return nil
}

// trace analyzes a module and recursively its local dependencies.
func (g *graphBuilder) trace(path string) error {
	if _, seen := g.graph.Modules[path]; seen {
		return nil
	}

	result, err := g.analyzer.File(path)
	if err != nil {
		return err
	}
	mod := newModule(path, detective.Metadata(result))
	g.graph.Modules[path] = mod
	g.analyzer.logger.Debug("traced module",
		zap.String("path", path),
		zap.Int("imports", len(mod.Imports)),
		zap.Int("dynamic", len(mod.Dynamic)))

	dir := filepath.Dir(path)
	for _, imp := range mod.Imports {
		switch Classify(imp.Specifier) {
		case Relative:
			g.follow(g.resolvePath(dir, imp.Specifier))
		case Absolute:
			g.follow(g.resolvePath(g.rootDir, imp.Specifier))
		case Bare:
			g.graph.bareSpecifiers[imp.Specifier] = true
		case Builtin:
			g.graph.builtins[imp.Specifier] = true
		}
	}
	return nil
}

// follow resolves and traces a dependency, recording failures on the graph.
func (g *graphBuilder) follow(path string) {
	resolved, err := resolveFile(g.analyzer.fs, path)
	if err != nil {
		g.graph.Errors = append(g.graph.Errors, err)
		return
	}
	if err := g.trace(resolved); err != nil {
		g.graph.Errors = append(g.graph.Errors, fmt.Errorf("tracing %s: %w", resolved, err))
	}
}

// resolvePath joins a specifier to a base directory. Web-style absolute
// specifiers resolve against the root.
func (g *graphBuilder) resolvePath(baseDir, specifier string) string {
	if strings.HasPrefix(specifier, "/") {
		return filepath.Join(g.rootDir, specifier)
	}
	return filepath.Join(baseDir, specifier)
}

// resolveFile finds the file a local specifier refers to: the path itself,
// the path with a known extension, or an index file in the directory.
func resolveFile(fsys fs.FileSystem, path string) (string, error) {
	if fs.IsFile(fsys, path) {
		return path, nil
	}
	for _, ext := range resolveExtensions {
		if fs.IsFile(fsys, path+ext) {
			return path + ext, nil
		}
	}
	for _, ext := range resolveExtensions {
		index := filepath.Join(path, "index"+ext)
		if fs.IsFile(fsys, index) {
			return index, nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrUnresolved, path)
}

func newModule(path string, md *detective.Requires) *Module {
	mod := &Module{Path: path}
	if md == nil {
		return mod
	}
	for _, entry := range md.Strings {
		imp := Import{Specifier: entry.Specifier()}
		if n := entry.Node; n != nil {
			imp.Generated = n.Generated
			if n.Loc != nil {
				imp.Line = n.Loc.Start.Line
			}
		}
		mod.Imports = append(mod.Imports, imp)
	}
	for _, entry := range md.Expressions {
		dyn := Dynamic{Code: entry.Code}
		if n := entry.Node; n != nil && n.Loc != nil {
			dyn.Line = n.Loc.Start.Line
		} else if entry.Loc != nil {
			dyn.Line = entry.Loc.Start.Line
		}
		mod.Dynamic = append(mod.Dynamic, dyn)
	}
	return mod
}

// BareSpecifiers returns a sorted slice of all bare specifiers found.
func (g *ModuleGraph) BareSpecifiers() []string {
	return sortedKeys(g.bareSpecifiers)
}

// Builtins returns a sorted slice of the Node.js core modules required.
func (g *ModuleGraph) Builtins() []string {
	return sortedKeys(g.builtins)
}

// PackageNames extracts sorted package names from bare specifiers.
// e.g., "lit/decorators.js" -> "lit"
func (g *ModuleGraph) PackageNames() []string {
	packages := make(map[string]bool)
	for spec := range g.bareSpecifiers {
		packages[packagejson.PackageName(spec)] = true
	}
	return sortedKeys(packages)
}

// Paths returns the sorted paths of all modules in the graph.
func (g *ModuleGraph) Paths() []string {
	paths := make([]string, 0, len(g.Modules))
	for p := range g.Modules {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

func sortedKeys(set map[string]bool) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
