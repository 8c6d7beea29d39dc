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
package output_test

import (
	"bytes"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"

	"bennypowers.dev/detective/ast"
	"bennypowers.dev/detective/detective"
	"bennypowers.dev/detective/internal/output"
)

func TestText(t *testing.T) {
	color.NoColor = true

	md := &detective.Requires{
		Strings: []detective.StringEntry{{Value: "lit"}, {Value: "./a.js"}},
		Expressions: []detective.ExpressionEntry{
			{Start: 10, End: 14, Code: "name", Loc: &ast.SourceLocation{
				Start: ast.Position{Line: 2, Column: 8},
			}},
			{Start: 20, End: 25},
			{},
		},
	}

	var buf bytes.Buffer
	output.Text(&buf, "src/index.js", md)

	assert.Equal(t, "src/index.js\n"+
		"  lit\n"+
		"  ./a.js\n"+
		"  <dynamic 2:8> name\n"+
		"  <dynamic [20:25]>\n"+
		"  <dynamic [0:0]>\n", buf.String())
}

func TestTextWithoutDependencies(t *testing.T) {
	color.NoColor = true

	var buf bytes.Buffer
	output.Text(&buf, "empty.js", nil)
	assert.Equal(t, "empty.js\n  (no dependencies)\n", buf.String())
}

func TestTextNodeEntries(t *testing.T) {
	color.NoColor = true

	lit := &ast.Node{Kind: ast.StringLiteral, Value: "lit"}
	expr := &ast.Node{Kind: ast.Other, Start: 3, End: 7, Loc: &ast.SourceLocation{
		Start: ast.Position{Line: 1, Column: 3},
	}}
	md := &detective.Requires{
		Strings:     []detective.StringEntry{{Kind: detective.NodeEntry, Node: lit}},
		Expressions: []detective.ExpressionEntry{{Kind: detective.NodeEntry, Node: expr}},
	}

	var buf bytes.Buffer
	output.Text(&buf, "a.js", md)
	assert.Equal(t, "a.js\n  lit\n  <dynamic 1:3>\n", buf.String())
}
