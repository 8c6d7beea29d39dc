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
	"fmt"
	"path/filepath"
	"strings"

	"bennypowers.dev/detective/fs"
	"bennypowers.dev/detective/packagejson"
)

// IssueType classifies the type of import issue.
type IssueType int

const (
	// TransitiveDep indicates the package is in node_modules but not declared.
	TransitiveDep IssueType = iota
	// DevDep indicates the package is only a devDependency.
	DevDep
	// NotInstalled indicates the package is neither declared nor installed.
	NotInstalled
)

// String returns a human-readable description of the issue type.
func (t IssueType) String() string {
	switch t {
	case TransitiveDep:
		return "transitive dependency"
	case DevDep:
		return "devDependency"
	case NotInstalled:
		return "not installed"
	default:
		return "unknown"
	}
}

// MarshalText encodes the issue type by its description.
func (t IssueType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText decodes an issue type from its description.
func (t *IssueType) UnmarshalText(text []byte) error {
	for _, candidate := range []IssueType{TransitiveDep, DevDep, NotInstalled} {
		if candidate.String() == string(text) {
			*t = candidate
			return nil
		}
	}
	return fmt.Errorf("unknown issue type %q", text)
}

// ImportIssue is a bare specifier that the package does not declare as a
// runtime dependency.
type ImportIssue struct {
	File      string    `json:"file"`
	Line      int       `json:"line,omitempty"`
	Specifier string    `json:"specifier"`
	Package   string    `json:"package"`
	IssueType IssueType `json:"issue_type"`
}

// ValidateImports checks every bare specifier of the graph's own modules
// against the nearest package.json above each module, up to rootDir.
// Modules inside node_modules or outside any package are skipped, as are
// generated imports, which duplicate an import already checked, and
// imports of the package itself.
func (g *ModuleGraph) ValidateImports(fsys fs.FileSystem, rootDir string, cache *packagejson.Cache) []ImportIssue {
	var issues []ImportIssue

	for _, p := range g.Paths() {
		mod := g.Modules[p]
		if strings.Contains(filepath.ToSlash(mod.Path), "/node_modules/") {
			continue
		}
		pkgDir, pkg := nearestPackage(fsys, cache, filepath.Dir(mod.Path), rootDir)
		if pkg == nil {
			continue
		}

		for _, imp := range mod.Imports {
			if imp.Generated || Classify(imp.Specifier) != Bare {
				continue
			}

			pkgName := packagejson.PackageName(imp.Specifier)
			if pkgName == pkg.Name {
				continue
			}

			issue := ImportIssue{
				File:      mod.Path,
				Line:      imp.Line,
				Specifier: imp.Specifier,
				Package:   pkgName,
			}

			switch pkg.Lookup(pkgName) {
			case packagejson.Dependency, packagejson.PeerDependency, packagejson.OptionalDependency:
				continue
			case packagejson.DevDependency:
				issue.IssueType = DevDep
			default:
				if installed(fsys, pkgName, pkgDir, rootDir) {
					issue.IssueType = TransitiveDep
				} else {
					issue.IssueType = NotInstalled
				}
			}
			issues = append(issues, issue)
		}
	}

	return issues
}

// nearestPackage walks up from dir to rootDir and returns the first
// directory holding a parseable package.json.
func nearestPackage(fsys fs.FileSystem, cache *packagejson.Cache, dir, rootDir string) (string, *packagejson.PackageJSON) {
	for {
		if pkg, err := cache.Load(fsys, filepath.Join(dir, "package.json")); err == nil {
			return dir, pkg
		}
		if dir == rootDir || !within(dir, rootDir) {
			return "", nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil
		}
		dir = parent
	}
}

// installed reports whether pkgName is in node_modules of the package
// directory or of the root, where workspaces hoist dependencies.
func installed(fsys fs.FileSystem, pkgName, pkgDir, rootDir string) bool {
	for _, dir := range []string{pkgDir, rootDir} {
		if fsys.Exists(filepath.Join(dir, "node_modules", pkgName)) {
			return true
		}
	}
	return false
}

func within(path, dir string) bool {
	rel, err := filepath.Rel(dir, path)
	return err == nil && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
