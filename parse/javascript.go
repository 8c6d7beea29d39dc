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
package parse

import (
	ts "github.com/tree-sitter/go-tree-sitter"

	"bennypowers.dev/detective/ast"
)

// Parse parses source code in the given script language and returns the
// Program node. Syntax errors do not fail the parse: tree-sitter recovers
// and the unparseable ranges appear as nodes of type "ERROR".
func Parse(lang Language, code []byte) (*ast.Node, error) {
	if lang == HTML {
		return nil, ErrUnsupportedLanguage
	}
	tree, err := parseTree(lang, code)
	if err != nil {
		return nil, err
	}
	defer tree.Close()

	c := converter{code: code}
	root := c.convert(tree.RootNode())
	if root == nil {
		return nil, ErrParse
	}
	return root, nil
}

// ParseJavaScript parses JavaScript (including JSX) source.
func ParseJavaScript(code []byte) (*ast.Node, error) {
	return Parse(JavaScript, code)
}

// ParseTypeScript parses TypeScript source.
func ParseTypeScript(code []byte) (*ast.Node, error) {
	return Parse(TypeScript, code)
}

// converter turns a tree-sitter tree into a detective tree.
type converter struct {
	code []byte
}

func (c *converter) convert(n *ts.Node) *ast.Node {
	switch n.Kind() {
	case "comment", "html_comment":
		return nil
	case "parenthesized_expression":
		// Parentheses are not nodes of their own; the inner expression
		// keeps its own span.
		if inner := c.namedChildren(n); len(inner) == 1 {
			return inner[0]
		}
	}

	node := &ast.Node{
		Kind:  ast.Other,
		Type:  n.Kind(),
		Start: int(n.StartByte()),
		End:   int(n.EndByte()),
		Loc:   location(n),
	}

	switch n.Kind() {
	case "program":
		node.Kind = ast.Program
		node.Children = c.namedChildren(n)

	case "import_statement":
		node.Kind = ast.ImportDeclaration
		node.Children = c.namedChildren(n)
		if src := n.ChildByFieldName("source"); src != nil {
			node.Source = find(node.Children, src)
		}

	case "call_expression":
		c.convertCall(n, node)

	case "identifier":
		node.Kind = ast.Identifier
		node.Name = n.Utf8Text(c.code)

	case "string":
		node.Kind = ast.StringLiteral
		node.Value = stringValue(n.Utf8Text(c.code))

	case "template_string":
		if c.hasSubstitution(n) {
			node.Children = c.namedChildren(n)
			break
		}
		node.Kind = ast.StringLiteral
		node.Value = stringValue(n.Utf8Text(c.code))

	case "expression_statement":
		node.Kind = ast.ExpressionStatement
		node.Children = c.namedChildren(n)

	default:
		node.Children = c.namedChildren(n)
	}

	return node
}

// convertCall fills in a call expression. Tagged templates and optional
// calls share the call_expression node type but are different constructs,
// so they stay Other.
func (c *converter) convertCall(n *ts.Node, node *ast.Node) {
	fn := n.ChildByFieldName("function")
	args := n.ChildByFieldName("arguments")

	if args == nil || args.Kind() != "arguments" || c.isOptionalCall(n) {
		node.Children = c.namedChildren(n)
		return
	}

	node.Kind = ast.CallExpression
	for i := uint(0); i < n.NamedChildCount(); i++ {
		child := n.NamedChild(i)
		if sameNode(child, args) {
			node.Arguments = c.namedChildren(args)
			node.Children = append(node.Children, node.Arguments...)
			continue
		}
		converted := c.convert(child)
		if converted == nil {
			continue
		}
		if fn != nil && sameNode(child, fn) {
			node.Callee = converted
		}
		node.Children = append(node.Children, converted)
	}
}

func (c *converter) isOptionalCall(n *ts.Node) bool {
	for i := uint(0); i < n.ChildCount(); i++ {
		switch n.Child(i).Kind() {
		case "?.", "optional_chain":
			return true
		}
	}
	return false
}

func (c *converter) hasSubstitution(n *ts.Node) bool {
	for i := uint(0); i < n.NamedChildCount(); i++ {
		if n.NamedChild(i).Kind() == "template_substitution" {
			return true
		}
	}
	return false
}

// namedChildren converts the named children of n, dropping comments.
func (c *converter) namedChildren(n *ts.Node) []*ast.Node {
	count := n.NamedChildCount()
	if count == 0 {
		return nil
	}
	children := make([]*ast.Node, 0, count)
	for i := uint(0); i < count; i++ {
		if child := c.convert(n.NamedChild(i)); child != nil {
			children = append(children, child)
		}
	}
	return children
}

// find returns the converted node among children that covers the same
// range as target.
func find(children []*ast.Node, target *ts.Node) *ast.Node {
	start, end := int(target.StartByte()), int(target.EndByte())
	for _, child := range children {
		if child.Start == start && child.End == end {
			return child
		}
	}
	return nil
}

func sameNode(a, b *ts.Node) bool {
	return a.StartByte() == b.StartByte() && a.EndByte() == b.EndByte() && a.Kind() == b.Kind()
}

func location(n *ts.Node) *ast.SourceLocation {
	start, end := n.StartPosition(), n.EndPosition()
	return &ast.SourceLocation{
		Start: ast.Position{Line: int(start.Row) + 1, Column: int(start.Column)},
		End:   ast.Position{Line: int(end.Row) + 1, Column: int(end.Column)},
	}
}
