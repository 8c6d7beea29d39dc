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

// Package output provides shared output utilities for detective commands.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"

	"bennypowers.dev/detective/detective"
	"bennypowers.dev/detective/fs"
)

// Write sends data to the file at path, or to stdout when path is empty.
// A trailing newline is added.
func Write(osfs fs.FileSystem, path string, data []byte) error {
	data = append(data, '\n')
	if path != "" {
		return osfs.WriteFile(path, data, 0644)
	}
	_, err := os.Stdout.Write(data)
	return err
}

// JSON writes v as indented JSON to path or stdout.
func JSON(osfs fs.FileSystem, path string, v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding output: %w", err)
	}
	return Write(osfs, path, out)
}

var (
	fileColor       = color.New(color.Bold)
	stringColor     = color.New(color.FgGreen)
	expressionColor = color.New(color.FgYellow)
	mutedColor      = color.New(color.Faint)
)

// Text writes a human-readable listing of a file's dependencies: string
// specifiers first, then dynamic expressions with their position.
func Text(w io.Writer, file string, md *detective.Requires) {
	fileColor.Fprintln(w, file)
	if md == nil || (len(md.Strings) == 0 && len(md.Expressions) == 0) {
		mutedColor.Fprintln(w, "  (no dependencies)")
		return
	}
	for _, s := range md.Strings {
		stringColor.Fprintf(w, "  %s\n", s.Specifier())
	}
	for _, e := range md.Expressions {
		expressionColor.Fprintf(w, "  %s", describe(e))
		fmt.Fprintln(w)
	}
}

func describe(e detective.ExpressionEntry) string {
	start, end, loc := e.Start, e.End, e.Loc
	if e.Kind == detective.NodeEntry && e.Node != nil {
		start, end, loc = e.Node.Start, e.Node.End, e.Node.Loc
	}
	where := fmt.Sprintf("[%d:%d]", start, end)
	if loc != nil {
		where = fmt.Sprintf("%d:%d", loc.Start.Line, loc.Start.Column)
	}
	if e.Code != "" {
		return fmt.Sprintf("<dynamic %s> %s", where, e.Code)
	}
	return fmt.Sprintf("<dynamic %s>", where)
}
