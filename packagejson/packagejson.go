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
// Package packagejson reads the parts of package.json detective uses to
// judge bare module specifiers.
package packagejson

import (
	"encoding/json"
	"fmt"
	"path"
	"strings"

	"bennypowers.dev/detective/fs"
)

// PackageJSON represents the subset of package.json relevant for
// dependency checks.
type PackageJSON struct {
	Name                 string            `json:"name"`
	Version              string            `json:"version"`
	Main                 string            `json:"main,omitempty"`
	Module               string            `json:"module,omitempty"`
	Dependencies         map[string]string `json:"dependencies,omitempty"`
	DevDependencies      map[string]string `json:"devDependencies,omitempty"`
	PeerDependencies     map[string]string `json:"peerDependencies,omitempty"`
	OptionalDependencies map[string]string `json:"optionalDependencies,omitempty"`
}

// DependencyKind classifies how a package is declared.
type DependencyKind int

const (
	// Undeclared means the package is not listed in any dependency field.
	Undeclared DependencyKind = iota
	Dependency
	DevDependency
	PeerDependency
	OptionalDependency
)

// Parse parses package.json data.
func Parse(data []byte) (*PackageJSON, error) {
	var pkg PackageJSON
	if err := json.Unmarshal(data, &pkg); err != nil {
		return nil, fmt.Errorf("parsing package.json: %w", err)
	}
	return &pkg, nil
}

// ParseFile parses a package.json file.
func ParseFile(fs fs.FileSystem, path string) (*PackageJSON, error) {
	data, err := fs.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Lookup reports how name is declared. Runtime fields take precedence over
// devDependencies.
func (pkg *PackageJSON) Lookup(name string) DependencyKind {
	switch {
	case has(pkg.Dependencies, name):
		return Dependency
	case has(pkg.PeerDependencies, name):
		return PeerDependency
	case has(pkg.OptionalDependencies, name):
		return OptionalDependency
	case has(pkg.DevDependencies, name):
		return DevDependency
	default:
		return Undeclared
	}
}

// Entry returns the package's entry module relative to its directory,
// preferring "module" over "main" and falling back to index.js.
func (pkg *PackageJSON) Entry() string {
	for _, candidate := range []string{pkg.Module, pkg.Main} {
		if candidate != "" {
			return strings.TrimPrefix(path.Clean(candidate), "./")
		}
	}
	return "index.js"
}

func has(deps map[string]string, name string) bool {
	_, ok := deps[name]
	return ok
}

// PackageName extracts the package name from a bare specifier.
// "lit/decorators.js" gives "lit", "@scope/pkg/x.js" gives "@scope/pkg".
func PackageName(specifier string) string {
	if strings.HasPrefix(specifier, "@") {
		parts := strings.SplitN(specifier, "/", 3)
		if len(parts) >= 2 {
			return path.Join(parts[0], parts[1])
		}
		return specifier
	}
	parts := strings.SplitN(specifier, "/", 2)
	return parts[0]
}
