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
	"strings"

	ts "github.com/tree-sitter/go-tree-sitter"

	"bennypowers.dev/detective/ast"
)

// Script represents a <script> element found in HTML.
type Script struct {
	Type   string // The type attribute (e.g., "module")
	Src    string // The src attribute (external script)
	Inline bool   // True if script has inline content
	// Root is the parsed inline content. Its offsets and positions refer
	// to the enclosing HTML document.
	Root *ast.Node
}

// IsJavaScript reports whether the script's type attribute denotes
// executable JavaScript.
func (s Script) IsJavaScript() bool {
	switch strings.ToLower(strings.TrimSpace(s.Type)) {
	case "", "module", "text/javascript", "application/javascript", "javascript":
		return true
	}
	return false
}

// ParseHTML parses an HTML document and returns its script elements in
// document order. Inline JavaScript is parsed as well; syntax errors inside
// a script are tolerated the same way Parse tolerates them.
func ParseHTML(content []byte) ([]Script, error) {
	tree, err := parseTree(HTML, content)
	if err != nil {
		return nil, err
	}
	defer tree.Close()

	var scripts []Script
	var visit func(n *ts.Node) error
	visit = func(n *ts.Node) error {
		if n.Kind() == "script_element" {
			script, err := scriptElement(n, content)
			if err != nil {
				return err
			}
			scripts = append(scripts, script)
			return nil
		}
		for i := uint(0); i < n.NamedChildCount(); i++ {
			if err := visit(n.NamedChild(i)); err != nil {
				return err
			}
		}
		return nil
	}

	if err := visit(tree.RootNode()); err != nil {
		return nil, err
	}
	return scripts, nil
}

func scriptElement(n *ts.Node, content []byte) (Script, error) {
	var script Script
	var raw *ts.Node

	for i := uint(0); i < n.NamedChildCount(); i++ {
		child := n.NamedChild(i)
		switch child.Kind() {
		case "start_tag":
			for j := uint(0); j < child.NamedChildCount(); j++ {
				attr := child.NamedChild(j)
				if attr.Kind() != "attribute" {
					continue
				}
				name, value := attribute(attr, content)
				switch strings.ToLower(name) {
				case "type":
					script.Type = value
				case "src":
					script.Src = value
				}
			}
		case "raw_text":
			raw = child
		}
	}

	if raw == nil || script.Src != "" || strings.TrimSpace(raw.Utf8Text(content)) == "" {
		return script, nil
	}
	script.Inline = true
	if !script.IsJavaScript() {
		return script, nil
	}

	root, err := Parse(JavaScript, []byte(raw.Utf8Text(content)))
	if err != nil {
		return script, err
	}
	start := raw.StartPosition()
	rebase(root, int(raw.StartByte()), int(start.Row), int(start.Column))
	script.Root = root
	return script, nil
}

func attribute(n *ts.Node, content []byte) (name, value string) {
	for i := uint(0); i < n.NamedChildCount(); i++ {
		child := n.NamedChild(i)
		switch child.Kind() {
		case "attribute_name":
			name = child.Utf8Text(content)
		case "attribute_value":
			value = child.Utf8Text(content)
		case "quoted_attribute_value":
			if child.NamedChildCount() > 0 {
				value = child.NamedChild(0).Utf8Text(content)
			}
		}
	}
	return name, value
}

// rebase shifts a tree parsed from a slice of a larger document so that
// offsets and positions refer to the document. Only the first line of the
// slice is shifted by column.
func rebase(root *ast.Node, offset, row, column int) {
	shift := func(p *ast.Position) {
		if p.Line == 1 {
			p.Column += column
		}
		p.Line += row
	}
	ast.Inspect(root, func(n *ast.Node) bool {
		if n.Generated {
			return true
		}
		n.Start += offset
		n.End += offset
		if n.Loc != nil {
			shift(&n.Loc.Start)
			shift(&n.Loc.End)
		}
		return true
	})
}
