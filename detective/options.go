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

// Package detective finds module dependencies in a syntax tree: specifiers
// of import declarations, and the arguments of calls to a require-like
// function. Literal arguments are recorded by value; any other argument is
// recorded by its source location so callers can see dependencies that are
// only computed at runtime.
//
// The package does not parse or transform code. A host walks the tree with
// the callbacks from [Visitors] and reads the outcome with [Metadata].
package detective

// DefaultWord is the callee name treated as require-like when none is set.
const DefaultWord = "require"

// Options configures detection for one traversal. A nil *Options is valid
// and means every setting takes its default.
type Options struct {
	// Word is the identifier treated as the require-like call.
	// Defaults to "require".
	Word string `json:"word,omitempty"`
	// IncludeImport enables recording import declarations. Only an
	// explicit false disables it.
	IncludeImport *bool `json:"includeImport,omitempty"`
	// IncludeRequire enables recording require-like calls. Only an
	// explicit false disables it.
	IncludeRequire *bool `json:"includeRequire,omitempty"`
	// IncludeGenerated records calls whose argument was synthesized by an
	// earlier transformation. This duplicates dependencies that were
	// lowered from imports.
	IncludeGenerated bool `json:"includeGenerated,omitempty"`
	// AttachExpressionSource attaches the source text of dynamic
	// expressions as Code.
	AttachExpressionSource bool `json:"attachExpressionSource,omitempty"`
	// NodeRepresentation stores tree nodes instead of values and
	// locations.
	NodeRepresentation bool `json:"nodeRepresentation,omitempty"`
}

// Bool returns a pointer to b, for the tri-state fields of Options.
func Bool(b bool) *bool {
	return &b
}

// Word returns the effective require-like identifier.
func Word(opts *Options) string {
	if opts == nil || opts.Word == "" {
		return DefaultWord
	}
	return opts.Word
}

// IncludeImport reports whether import declarations are recorded.
func IncludeImport(opts *Options) bool {
	return opts == nil || opts.IncludeImport == nil || *opts.IncludeImport
}

// IncludeRequire reports whether require-like calls are recorded.
func IncludeRequire(opts *Options) bool {
	return opts == nil || opts.IncludeRequire == nil || *opts.IncludeRequire
}

// IncludeGenerated reports whether generated call arguments are recorded.
func IncludeGenerated(opts *Options) bool {
	return opts != nil && opts.IncludeGenerated
}

// AttachExpressionSource reports whether dynamic expressions carry their
// source text.
func AttachExpressionSource(opts *Options) bool {
	return opts != nil && opts.AttachExpressionSource
}

// NodeRepresentation reports whether entries reference tree nodes.
func NodeRepresentation(opts *Options) bool {
	return opts != nil && opts.NodeRepresentation
}
