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
package analyze_test

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bennypowers.dev/detective/analyze"
	"bennypowers.dev/detective/packagejson"
	"bennypowers.dev/detective/testutil"
)

func TestGraphSummary(t *testing.T) {
	mfs := testutil.NewFixtureFS(t, "graph/app", "/app")

	graph, err := analyze.New(mfs, nil).Graph("/app", "/app/src/index.js")
	require.NoError(t, err)

	issues := graph.ValidateImports(mfs, "/app", packagejson.NewCache())
	actual, err := json.MarshalIndent(graph.Summarize("/app", issues), "", "  ")
	require.NoError(t, err)

	expected := testutil.LoadGoldenFile(t, "graph/app/expected.json")
	if expected == nil {
		testutil.UpdateGoldenFile(t, "graph/app/expected.json", append(actual, '\n'))
		return
	}
	assert.JSONEq(t, string(expected), string(actual))
}

func TestGraphModules(t *testing.T) {
	mfs := testutil.NewFixtureFS(t, "graph/app", "/app")

	graph, err := analyze.New(mfs, nil).Graph("/app", "/app/src/index.js")
	require.NoError(t, err)

	index := graph.Modules["/app/src/index.js"]
	require.NotNil(t, index)
	require.Len(t, index.Imports, 4)
	assert.Equal(t, analyze.Import{Specifier: "lit", Line: 1}, index.Imports[0])
	assert.Equal(t, analyze.Import{Specifier: "node:fs", Line: 4}, index.Imports[3])
	assert.Equal(t, []analyze.Dynamic{{Line: 5, Code: "'./plugins/' + name"}}, index.Dynamic)

	require.Len(t, graph.Errors, 1)
	assert.True(t, errors.Is(graph.Errors[0], analyze.ErrUnresolved))
}

func TestGraphLowered(t *testing.T) {
	mfs := testutil.NewFixtureFS(t, "graph/app", "/app")

	graph, err := analyze.New(mfs, nil).
		WithLowering(true).
		Graph("/app", "/app/src/lib/util.js")
	require.NoError(t, err)

	// Lowered calls are skipped unless generated nodes are included.
	util := graph.Modules["/app/src/lib/util.js"]
	require.NotNil(t, util)
	for _, imp := range util.Imports {
		assert.False(t, imp.Generated)
	}
	assert.Len(t, util.Imports, 4)
}

func TestGraphHTMLEntry(t *testing.T) {
	mfs := testutil.NewFixtureFS(t, "graph/site", "/site")

	graph, err := analyze.New(mfs, nil).Graph("/site", "/site/index.html")
	require.NoError(t, err)

	summary := graph.Summarize("/site", nil)
	assert.Equal(t, []string{"index.html", "main.js"}, summary.Entrypoints)
	assert.Equal(t, []string{"dep.js", "index.html", "inline.js", "main.js"}, summary.Modules)
	assert.Empty(t, summary.Errors)
	assert.Equal(t, []analyze.DynamicLocation{
		{File: "inline.js", Line: 1, Code: "`./${name}.js`"},
	}, summary.Dynamic)
}

func TestGraphUnsupportedEntry(t *testing.T) {
	mfs := testutil.NewFixtureFS(t, "graph/app", "/app")

	_, err := analyze.New(mfs, nil).Graph("/app", "/app/package.json")
	assert.Error(t, err)
}

func TestGraphMissingEntry(t *testing.T) {
	mfs := testutil.NewFixtureFS(t, "graph/app", "/app")

	_, err := analyze.New(mfs, nil).Graph("/app", "/app/src/nope.js")
	assert.Error(t, err)
}

func TestPackageNames(t *testing.T) {
	mfs := testutil.NewFixtureFS(t, "graph/app", "/app")

	graph, err := analyze.New(mfs, nil).Graph("/app", "/app/src/index.js")
	require.NoError(t, err)

	assert.Equal(t, []string{"app", "dayjs", "lit", "ms", "vitest"}, graph.PackageNames())
	assert.Equal(t, []string{"node:fs"}, graph.Builtins())
}
