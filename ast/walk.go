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
package ast

// Visitor is invoked for a node of the kind it is registered against.
type Visitor[S any] func(n *Node, state S)

// Visitors is a callback table keyed by node kind.
type Visitors[S any] map[Kind]Visitor[S]

// Inspect traverses the tree rooted at root in pre-order, left to right.
// If f returns false, the children of that node are skipped.
func Inspect(root *Node, f func(*Node) bool) {
	if root == nil {
		return
	}
	stack := []*Node{root}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !f(n) {
			continue
		}
		for i := len(n.Children) - 1; i >= 0; i-- {
			if n.Children[i] != nil {
				stack = append(stack, n.Children[i])
			}
		}
	}
}

// Walk performs a single pre-order, left-to-right pass over the tree,
// calling the visitor registered for each node's kind. Visitors run
// synchronously in document order and share state for the whole pass.
func Walk[S any](root *Node, visitors Visitors[S], state S) {
	Inspect(root, func(n *Node) bool {
		if visit, ok := visitors[n.Kind]; ok {
			visit(n, state)
		}
		return true
	})
}
