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

// Package lower rewrites ES module syntax into CommonJS calls, the way a
// compile-to-CommonJS pass does before bundling. Everything it inserts is
// marked generated; original nodes are left in place.
package lower

import "bennypowers.dev/detective/ast"

// DefaultWord is the function the lowered calls invoke.
const DefaultWord = "require"

// Modules appends one generated `require("<specifier>")` statement to the
// end of program for each import declaration, in source order, and
// returns the number of statements added.
func Modules(program *ast.Node) int {
	return ModulesTo(program, DefaultWord)
}

// ModulesTo is Modules with a custom callee name.
func ModulesTo(program *ast.Node, word string) int {
	if program == nil || program.Kind != ast.Program {
		return 0
	}

	var lowered []*ast.Node
	ast.Inspect(program, func(n *ast.Node) bool {
		if n.Kind == ast.ImportDeclaration && n.Source != nil && !n.Generated {
			lowered = append(lowered, Require(word, n.Source.Value))
		}
		return true
	})

	program.Children = append(program.Children, lowered...)
	return len(lowered)
}

// Require builds a generated `word("specifier")` expression statement.
func Require(word, specifier string) *ast.Node {
	callee := &ast.Node{Kind: ast.Identifier, Type: "identifier", Name: word, Generated: true}
	arg := &ast.Node{Kind: ast.StringLiteral, Type: "string", Value: specifier, Generated: true}
	call := &ast.Node{
		Kind:      ast.CallExpression,
		Type:      "call_expression",
		Generated: true,
		Callee:    callee,
		Arguments: []*ast.Node{arg},
		Children:  []*ast.Node{callee, arg},
	}
	return &ast.Node{
		Kind:      ast.ExpressionStatement,
		Type:      "expression_statement",
		Generated: true,
		Children:  []*ast.Node{call},
	}
}
