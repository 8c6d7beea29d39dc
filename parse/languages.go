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

// Package parse builds detective syntax trees from JavaScript, TypeScript
// and HTML sources using tree-sitter.
package parse

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	ts "github.com/tree-sitter/go-tree-sitter"
	tsHtml "github.com/tree-sitter/tree-sitter-html/bindings/go"
	tsTypescript "github.com/tree-sitter/tree-sitter-typescript/bindings/go"
)

var (
	// ErrUnsupportedLanguage is returned for files no grammar handles.
	ErrUnsupportedLanguage = errors.New("unsupported language")
	// ErrParse is returned when tree-sitter produces no tree.
	ErrParse = errors.New("failed to parse content")
)

// Language selects the grammar used to parse a source file.
type Language int

const (
	// JavaScript covers plain JavaScript and JSX. It is parsed with the TSX
	// grammar, which accepts both.
	JavaScript Language = iota
	TypeScript
	TSX
	HTML
)

func (l Language) String() string {
	switch l {
	case JavaScript:
		return "javascript"
	case TypeScript:
		return "typescript"
	case TSX:
		return "tsx"
	case HTML:
		return "html"
	default:
		return "unknown"
	}
}

var extensions = map[string]Language{
	".js":   JavaScript,
	".mjs":  JavaScript,
	".cjs":  JavaScript,
	".jsx":  JavaScript,
	".tsx":  TSX,
	".ts":   TypeScript,
	".mts":  TypeScript,
	".cts":  TypeScript,
	".html": HTML,
	".htm":  HTML,
}

// LanguageFor returns the language of a file by its extension.
func LanguageFor(name string) (Language, error) {
	lang, ok := extensions[strings.ToLower(filepath.Ext(name))]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrUnsupportedLanguage, name)
	}
	return lang, nil
}

// Extensions returns the file extensions LanguageFor recognizes.
func Extensions() []string {
	exts := make([]string, 0, len(extensions))
	for ext := range extensions {
		exts = append(exts, ext)
	}
	return exts
}

// languages holds pre-initialized tree-sitter language grammars.
var languages = struct {
	html       *ts.Language
	typescript *ts.Language
	tsx        *ts.Language
}{
	ts.NewLanguage(tsHtml.Language()),
	ts.NewLanguage(tsTypescript.LanguageTypescript()),
	ts.NewLanguage(tsTypescript.LanguageTSX()),
}

func newParserPool(name string, lang *ts.Language) *sync.Pool {
	return &sync.Pool{
		New: func() any {
			parser := ts.NewParser()
			if err := parser.SetLanguage(lang); err != nil {
				panic("failed to set " + name + " language: " + err.Error())
			}
			return parser
		},
	}
}

// Parser pools for reuse. A parser is used by one goroutine at a time.
var parserPools = map[Language]*sync.Pool{
	JavaScript: newParserPool("TSX", languages.tsx),
	TypeScript: newParserPool("TypeScript", languages.typescript),
	TSX:        newParserPool("TSX", languages.tsx),
	HTML:       newParserPool("HTML", languages.html),
}

// getParser retrieves a parser for lang from its pool.
func getParser(lang Language) *ts.Parser {
	return parserPools[lang].Get().(*ts.Parser)
}

// putParser returns a parser to its pool.
func putParser(lang Language, p *ts.Parser) {
	p.Reset()
	parserPools[lang].Put(p)
}

// parseTree runs tree-sitter over content. The caller closes the tree.
func parseTree(lang Language, content []byte) (*ts.Tree, error) {
	parser := getParser(lang)
	defer putParser(lang, parser)

	tree := parser.Parse(content, nil)
	if tree == nil {
		return nil, fmt.Errorf("%w as %s", ErrParse, lang)
	}
	return tree, nil
}
