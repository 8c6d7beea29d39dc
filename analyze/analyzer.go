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

// Package analyze runs detective over files on disk: single files, batches
// processed by a worker pool, and dependency graphs that follow relative
// specifiers from an entry module.
package analyze

import (
	"fmt"

	"go.uber.org/zap"

	"bennypowers.dev/detective/ast"
	"bennypowers.dev/detective/detective"
	"bennypowers.dev/detective/fs"
	"bennypowers.dev/detective/lower"
	"bennypowers.dev/detective/parse"
)

// Analyzer parses source files and runs detection over them. An Analyzer
// is safe for concurrent use; every file gets its own traversal state.
type Analyzer struct {
	fs     fs.FileSystem
	opts   *detective.Options
	lower  bool
	logger *zap.Logger
}

// New creates an Analyzer that reads through fs and detects with opts.
// A nil opts uses detective's defaults.
func New(fs fs.FileSystem, opts *detective.Options) *Analyzer {
	return &Analyzer{
		fs:     fs,
		opts:   opts,
		logger: zap.NewNop(),
	}
}

// WithLowering returns a new Analyzer that lowers import declarations to
// generated require calls before detection.
func (a *Analyzer) WithLowering(enabled bool) *Analyzer {
	clone := *a
	clone.lower = enabled
	return &clone
}

// WithLogger returns a new Analyzer that logs diagnostics to logger.
func (a *Analyzer) WithLogger(logger *zap.Logger) *Analyzer {
	clone := *a
	clone.logger = logger
	return &clone
}

// WithOptions returns a new Analyzer that detects with opts.
func (a *Analyzer) WithOptions(opts *detective.Options) *Analyzer {
	clone := *a
	clone.opts = opts
	return &clone
}

// File reads and analyzes the file at path.
func (a *Analyzer) File(path string) (*detective.Result, error) {
	code, err := a.fs.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return a.Source(path, code)
}

// Source analyzes code as if read from a file called name. The extension
// of name selects the parser.
func (a *Analyzer) Source(name string, code []byte) (*detective.Result, error) {
	lang, err := parse.LanguageFor(name)
	if err != nil {
		return nil, err
	}

	root, err := a.tree(lang, code)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", name, err)
	}

	result := detective.Detect(root, name, code, a.opts)

	md := detective.Metadata(result)
	if md == nil {
		a.logger.Debug("no dependencies detected", zap.String("file", name))
	} else {
		a.logger.Debug("detected dependencies",
			zap.String("file", name),
			zap.Stringer("language", lang),
			zap.Int("strings", len(md.Strings)),
			zap.Int("expressions", len(md.Expressions)))
	}
	return result, nil
}

// tree parses code and applies lowering. HTML documents become a single
// program whose children are the inline scripts, in document order.
func (a *Analyzer) tree(lang parse.Language, code []byte) (*ast.Node, error) {
	if lang != parse.HTML {
		root, err := parse.Parse(lang, code)
		if err != nil {
			return nil, err
		}
		a.lowerProgram(root)
		return root, nil
	}

	scripts, err := parse.ParseHTML(code)
	if err != nil {
		return nil, err
	}
	document := &ast.Node{Kind: ast.Program, Type: "document", End: len(code)}
	for _, script := range scripts {
		if script.Root == nil {
			continue
		}
		a.lowerProgram(script.Root)
		document.Children = append(document.Children, script.Root)
	}
	return document, nil
}

// lowerProgram emits CommonJS require calls whatever word detection
// matches, as a module transform would. Under a custom word the lowered
// calls are therefore never recorded.
func (a *Analyzer) lowerProgram(program *ast.Node) {
	if !a.lower {
		return
	}
	if n := lower.Modules(program); n > 0 {
		a.logger.Debug("lowered imports", zap.Int("count", n))
	}
}
