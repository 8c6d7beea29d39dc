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
package lower_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bennypowers.dev/detective/ast"
	"bennypowers.dev/detective/lower"
	"bennypowers.dev/detective/parse"
)

func TestModules(t *testing.T) {
	root, err := parse.ParseJavaScript([]byte("import a from 'a';\nrequire('x');\nimport 'b';\n"))
	require.NoError(t, err)
	before := len(root.Children)

	n := lower.Modules(root)

	assert.Equal(t, 2, n)
	require.Len(t, root.Children, before+2)

	for i, want := range []string{"a", "b"} {
		stmt := root.Children[before+i]
		assert.Equal(t, ast.ExpressionStatement, stmt.Kind)
		assert.True(t, stmt.Generated)
		assert.False(t, stmt.HasSpan())

		require.Len(t, stmt.Children, 1)
		call := stmt.Children[0]
		assert.Equal(t, ast.CallExpression, call.Kind)
		assert.Equal(t, "require", call.Callee.Name)

		arg := call.Argument(0)
		require.NotNil(t, arg)
		assert.True(t, arg.IsStringLiteral())
		assert.True(t, arg.Generated)
		assert.Equal(t, want, arg.Value)
		assert.Nil(t, arg.Loc)
	}

	imports := 0
	ast.Inspect(root, func(n *ast.Node) bool {
		if n.Kind == ast.ImportDeclaration {
			imports++
		}
		return true
	})
	assert.Equal(t, 2, imports, "import declarations stay in the tree")
}

func TestModulesTo(t *testing.T) {
	root, err := parse.ParseJavaScript([]byte("import 'a';\n"))
	require.NoError(t, err)

	require.Equal(t, 1, lower.ModulesTo(root, "__dereq__"))
	call := root.Children[len(root.Children)-1].Children[0]
	assert.Equal(t, "__dereq__", call.Callee.Name)
}

func TestModulesWithoutImports(t *testing.T) {
	root, err := parse.ParseJavaScript([]byte("require('x');\n"))
	require.NoError(t, err)
	before := len(root.Children)

	assert.Zero(t, lower.Modules(root))
	assert.Len(t, root.Children, before)
}

func TestModulesIgnoresNonPrograms(t *testing.T) {
	assert.Zero(t, lower.Modules(nil))
	assert.Zero(t, lower.Modules(&ast.Node{Kind: ast.ExpressionStatement}))
}

func TestModulesLowersOnlyOriginalImports(t *testing.T) {
	root, err := parse.ParseJavaScript([]byte("import 'a';\n"))
	require.NoError(t, err)

	assert.Equal(t, 1, lower.Modules(root))
	assert.Equal(t, 1, lower.Modules(root))
	assert.Len(t, root.Children, 3)
}
