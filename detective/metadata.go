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
package detective

import (
	"encoding/json"

	"bennypowers.dev/detective/ast"
)

// EntryKind tags which variant an entry holds.
type EntryKind int

const (
	// ValueEntry holds a literal value, or for expressions a location.
	ValueEntry EntryKind = iota
	// NodeEntry references the originating tree node.
	NodeEntry
)

// StringEntry is a statically known module specifier.
type StringEntry struct {
	Kind  EntryKind
	Value string
	Node  *ast.Node
}

// Specifier returns the entry's specifier regardless of its variant.
func (e StringEntry) Specifier() string {
	if e.Kind == NodeEntry && e.Node != nil {
		return e.Node.Value
	}
	return e.Value
}

// MarshalJSON encodes a value entry as a bare string and a node entry as
// the node.
func (e StringEntry) MarshalJSON() ([]byte, error) {
	if e.Kind == NodeEntry {
		return json.Marshal(e.Node)
	}
	return json.Marshal(e.Value)
}

// ExpressionEntry is a require-like call argument that is not a literal.
type ExpressionEntry struct {
	Kind EntryKind
	// Start and End are byte offsets of the expression in the original
	// source. Both are zero for generated expressions.
	Start int
	End   int
	// Loc is set when the tree carries line and column positions.
	Loc *ast.SourceLocation
	// Code is the source text of the expression, when requested.
	Code string
	Node *ast.Node
}

type location struct {
	Start int                 `json:"start"`
	End   int                 `json:"end"`
	Code  string              `json:"code,omitempty"`
	Loc   *ast.SourceLocation `json:"loc,omitempty"`
}

type nodeWithCode struct {
	*ast.Node
	Code string `json:"code,omitempty"`
}

// MarshalJSON encodes a location entry as {start, end, code, loc} and a
// node entry as the node with code attached.
func (e ExpressionEntry) MarshalJSON() ([]byte, error) {
	if e.Kind == NodeEntry {
		return json.Marshal(nodeWithCode{Node: e.Node, Code: e.Code})
	}
	return json.Marshal(location{Start: e.Start, End: e.End, Code: e.Code, Loc: e.Loc})
}

// Requires is the record of dependencies detected in one file. Both
// sequences are in source order.
type Requires struct {
	Strings     []StringEntry     `json:"strings"`
	Expressions []ExpressionEntry `json:"expressions"`
}

// Specifiers returns the values of all string entries in order.
func (m *Requires) Specifiers() []string {
	if m == nil {
		return nil
	}
	specs := make([]string, 0, len(m.Strings))
	for _, e := range m.Strings {
		specs = append(specs, e.Specifier())
	}
	return specs
}

// FileMetadata is the slot a traversal attaches its results to.
type FileMetadata struct {
	Requires *Requires `json:"requires,omitempty"`
}

// File is the per-traversal context: the original source and the metadata
// slot the detectors write to. Files must not be shared between concurrent
// traversals.
type File struct {
	Name     string
	Code     []byte
	Metadata FileMetadata
}

// Result returns the finished traversal result for f.
func (f *File) Result() *Result {
	return &Result{Filename: f.Name, Metadata: f.Metadata}
}

// State is passed to each detector invocation during a traversal.
type State struct {
	File *File
	Opts *Options
}

// NewState returns the state for traversing a file with the given source
// text and options.
func NewState(name string, code []byte, opts *Options) *State {
	return &State{File: &File{Name: name, Code: code}, Opts: opts}
}

// Result is a completed traversal.
type Result struct {
	Filename string       `json:"file"`
	Metadata FileMetadata `json:"metadata"`
}

// Metadata returns the dependencies recorded for result, or nil when no
// detector wrote anything.
func Metadata(result *Result) *Requires {
	if result == nil {
		return nil
	}
	return result.Metadata.Requires
}

// requireMetadata returns the record attached to the traversal, creating
// it on first use.
func requireMetadata(state *State) *Requires {
	md := &state.File.Metadata
	if md.Requires == nil {
		md.Requires = &Requires{
			Strings:     []StringEntry{},
			Expressions: []ExpressionEntry{},
		}
	}
	return md.Requires
}
