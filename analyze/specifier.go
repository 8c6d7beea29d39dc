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
package analyze

import (
	"regexp"
	"strings"

	"bennypowers.dev/detective/packagejson"
)

// nodeBuiltinModules lists the top-level Node.js core modules, which are
// never npm dependencies.
var nodeBuiltinModules = map[string]bool{
	"assert":              true,
	"async_hooks":         true,
	"buffer":              true,
	"child_process":       true,
	"cluster":             true,
	"console":             true,
	"constants":           true,
	"crypto":              true,
	"dgram":               true,
	"diagnostics_channel": true,
	"dns":                 true,
	"domain":              true,
	"events":              true,
	"fs":                  true,
	"http":                true,
	"http2":               true,
	"https":               true,
	"inspector":           true,
	"module":              true,
	"net":                 true,
	"os":                  true,
	"path":                true,
	"perf_hooks":          true,
	"process":             true,
	"punycode":            true,
	"querystring":         true,
	"readline":            true,
	"repl":                true,
	"stream":              true,
	"string_decoder":      true,
	"sys":                 true,
	"timers":              true,
	"tls":                 true,
	"trace_events":        true,
	"tty":                 true,
	"url":                 true,
	"util":                true,
	"v8":                  true,
	"vm":                  true,
	"wasi":                true,
	"worker_threads":      true,
	"zlib":                true,
}

var schemePattern = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9+.-]*:`)

// SpecifierKind classifies a module specifier.
type SpecifierKind int

const (
	// Relative specifiers start with ./ or ../
	Relative SpecifierKind = iota
	// Absolute specifiers start with / and resolve against the root.
	Absolute
	// Bare specifiers name a package, e.g. "lit" or "@scope/pkg/x.js".
	Bare
	// Builtin specifiers name a Node.js core module, with or without the
	// node: scheme.
	Builtin
	// URL specifiers carry a scheme, e.g. https: or data:.
	URL
	// Empty is the empty specifier.
	Empty
)

// Classify returns the kind of specifier.
func Classify(specifier string) SpecifierKind {
	switch {
	case specifier == "":
		return Empty
	case strings.HasPrefix(specifier, "./"), strings.HasPrefix(specifier, "../"),
		specifier == ".", specifier == "..":
		return Relative
	case strings.HasPrefix(specifier, "/"):
		return Absolute
	case strings.HasPrefix(specifier, "node:"):
		return Builtin
	case schemePattern.MatchString(specifier):
		return URL
	case nodeBuiltinModules[packagejson.PackageName(specifier)]:
		return Builtin
	default:
		return Bare
	}
}
