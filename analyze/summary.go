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

import "path/filepath"

// GraphSummary is the portable JSON form of a module graph. Paths are
// relative to the root directory.
type GraphSummary struct {
	Entrypoints    []string          `json:"entrypoints"`
	Modules        []string          `json:"modules"`
	BareSpecifiers []string          `json:"bare_specifiers"`
	Packages       []string          `json:"packages"`
	Builtins       []string          `json:"builtins,omitempty"`
	Dynamic        []DynamicLocation `json:"dynamic,omitempty"`
	Issues         []ImportIssue     `json:"issues,omitempty"`
	Errors         []string          `json:"errors,omitempty"`
}

// DynamicLocation places a dynamic dependency in a module.
type DynamicLocation struct {
	File string `json:"file"`
	Line int    `json:"line"`
	Code string `json:"code"`
}

// Summarize converts the graph and its validation issues into a summary.
func (g *ModuleGraph) Summarize(rootDir string, issues []ImportIssue) *GraphSummary {
	relativize := func(absPath string) string {
		if rel, err := filepath.Rel(rootDir, absPath); err == nil {
			return filepath.ToSlash(rel)
		}
		return absPath
	}

	summary := &GraphSummary{
		Entrypoints:    []string{},
		Modules:        []string{},
		BareSpecifiers: g.BareSpecifiers(),
		Packages:       g.PackageNames(),
		Builtins:       g.Builtins(),
	}
	for _, ep := range g.Entrypoints {
		summary.Entrypoints = append(summary.Entrypoints, relativize(ep))
	}
	for _, p := range g.Paths() {
		summary.Modules = append(summary.Modules, relativize(p))
		for _, dyn := range g.Modules[p].Dynamic {
			summary.Dynamic = append(summary.Dynamic, DynamicLocation{
				File: relativize(p),
				Line: dyn.Line,
				Code: dyn.Code,
			})
		}
	}
	for _, issue := range issues {
		issue.File = relativize(issue.File)
		summary.Issues = append(summary.Issues, issue)
	}
	for _, err := range g.Errors {
		summary.Errors = append(summary.Errors, err.Error())
	}
	return summary
}
