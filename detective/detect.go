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

import "bennypowers.dev/detective/ast"

// Visitors returns the detector callbacks keyed by the node kinds they
// handle, for use with [ast.Walk].
func Visitors() ast.Visitors[*State] {
	return ast.Visitors[*State]{
		ast.ImportDeclaration: ImportDeclaration,
		ast.CallExpression:    CallExpression,
	}
}

// Detect walks root once with the detectors and returns the result.
func Detect(root *ast.Node, name string, code []byte, opts *Options) *Result {
	state := NewState(name, code, opts)
	ast.Walk(root, Visitors(), state)
	return state.File.Result()
}

// ImportDeclaration records the specifier of an import declaration.
func ImportDeclaration(node *ast.Node, state *State) {
	if !IncludeImport(state.Opts) || node.Source == nil {
		return
	}
	addString(state, node.Source)
}

// CallExpression records the first argument of a call to the require-like
// identifier. Literal arguments are recorded as strings, anything else as
// an expression.
func CallExpression(node *ast.Node, state *State) {
	if !IncludeRequire(state.Opts) {
		return
	}
	callee := node.Callee
	if !callee.IsIdentifier() || callee.Name != Word(state.Opts) {
		return
	}
	arg := node.Argument(0)
	if arg == nil {
		return
	}
	if arg.Generated && !IncludeGenerated(state.Opts) {
		return
	}
	if arg.IsStringLiteral() {
		addString(state, arg)
		return
	}
	addExpression(state, arg)
}

func addString(state *State, literal *ast.Node) {
	entry := StringEntry{Value: literal.Value}
	if NodeRepresentation(state.Opts) {
		entry = StringEntry{Kind: NodeEntry, Node: literal}
	}
	md := requireMetadata(state)
	md.Strings = append(md.Strings, entry)
}

func addExpression(state *State, expr *ast.Node) {
	var entry ExpressionEntry
	if NodeRepresentation(state.Opts) {
		entry = ExpressionEntry{Kind: NodeEntry, Node: expr}
	} else if expr.HasSpan() {
		entry = ExpressionEntry{Start: expr.Start, End: expr.End, Loc: expr.Loc}
	}
	if AttachExpressionSource(state.Opts) {
		entry.Code = sourceText(state.File.Code, expr)
	}
	md := requireMetadata(state)
	md.Expressions = append(md.Expressions, entry)
}

// sourceText slices the original source covered by n. Generated nodes and
// spans outside the source yield "".
func sourceText(code []byte, n *ast.Node) string {
	if !n.HasSpan() || n.Start < 0 || n.End > len(code) {
		return ""
	}
	return string(code[n.Start:n.End])
}
