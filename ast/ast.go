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

// Package ast defines the language-neutral syntax tree that detective's
// host packages build from parser output and walk in document order.
package ast

// Kind discriminates the node shapes the tree distinguishes.
type Kind int

const (
	// Other is any node the detectors have no interest in.
	Other Kind = iota
	Program
	ImportDeclaration
	CallExpression
	Identifier
	StringLiteral
	ExpressionStatement
)

var kindNames = [...]string{
	Other:               "Other",
	Program:             "Program",
	ImportDeclaration:   "ImportDeclaration",
	CallExpression:      "CallExpression",
	Identifier:          "Identifier",
	StringLiteral:       "StringLiteral",
	ExpressionStatement: "ExpressionStatement",
}

// String returns the node kind name.
func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "Unknown"
	}
	return kindNames[k]
}

// MarshalText encodes the kind by name.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Position is a line and column pair. Lines are 1-indexed, columns are
// 0-indexed byte offsets within the line.
type Position struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

// SourceLocation spans two positions in the original source.
type SourceLocation struct {
	Start Position `json:"start"`
	End   Position `json:"end"`
}

// Node is a single syntax tree node.
//
// Start and End are byte offsets into the original source text. Generated
// nodes were synthesized by a transformation pass and have neither a span
// nor a location.
type Node struct {
	Kind Kind   `json:"kind"`
	Type string `json:"type,omitempty"` // grammar node type, e.g. "binary_expression"

	Name  string `json:"name,omitempty"`  // Identifier
	Value string `json:"value,omitempty"` // StringLiteral

	Start     int             `json:"start"`
	End       int             `json:"end"`
	Loc       *SourceLocation `json:"loc,omitempty"`
	Generated bool            `json:"generated,omitempty"`

	Source    *Node   `json:"source,omitempty"`    // ImportDeclaration
	Callee    *Node   `json:"callee,omitempty"`    // CallExpression
	Arguments []*Node `json:"arguments,omitempty"` // CallExpression

	// Children holds every child in source order. Source, Callee and
	// Arguments point at entries of Children.
	Children []*Node `json:"-"`
}

// IsIdentifier reports whether n is a plain identifier.
func (n *Node) IsIdentifier() bool {
	return n != nil && n.Kind == Identifier
}

// IsStringLiteral reports whether n is a string literal with a static value.
func (n *Node) IsStringLiteral() bool {
	return n != nil && n.Kind == StringLiteral
}

// HasSpan reports whether n maps back to a range of the original source.
func (n *Node) HasSpan() bool {
	return n != nil && !n.Generated && n.End >= n.Start
}

// Argument returns the i-th call argument, or nil.
func (n *Node) Argument(i int) *Node {
	if n == nil || i < 0 || i >= len(n.Arguments) {
		return nil
	}
	return n.Arguments[i]
}
