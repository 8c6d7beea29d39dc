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
package main

import (
	"bufio"
	"bytes"
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bennypowers.dev/detective/analyze"
)

const binaryName = "detective_test"

func TestMain(m *testing.M) {
	wd := mustGetwd()
	cmd := exec.Command("go", "build", "-o", binaryName, ".")
	cmd.Dir = wd
	if out, err := cmd.CombinedOutput(); err != nil {
		panic("failed to build test binary: " + err.Error() + "\n" + string(out))
	}
	code := m.Run()
	_ = os.Remove(filepath.Join(wd, binaryName))
	os.Exit(code)
}

func mustGetwd() string {
	wd, err := os.Getwd()
	if err != nil {
		panic(err)
	}
	return wd
}

func runCLI(t *testing.T, args ...string) (stdout, stderr string, exitCode int) {
	t.Helper()
	cmd := exec.Command(filepath.Join(mustGetwd(), binaryName), args...)

	var stdoutBuf, stderrBuf bytes.Buffer
	cmd.Stdout = &stdoutBuf
	cmd.Stderr = &stderrBuf

	err := cmd.Run()
	if err != nil {
		exitErr, ok := err.(*exec.ExitError)
		if !ok {
			t.Fatalf("Failed to run CLI: %v", err)
		}
		exitCode = exitErr.ExitCode()
	}
	return stdoutBuf.String(), stderrBuf.String(), exitCode
}

type detectOutput struct {
	File     string `json:"file"`
	Metadata struct {
		Requires *struct {
			Strings     []string          `json:"strings"`
			Expressions []json.RawMessage `json:"expressions"`
		} `json:"requires"`
	} `json:"metadata"`
}

func detectFixture(t *testing.T, args ...string) detectOutput {
	t.Helper()
	fixture := filepath.Join("testdata", "detect", "fixture", "module.js")

	stdout, stderr, code := runCLI(t, append([]string{"detect", fixture}, args...)...)
	require.Equal(t, 0, code, "stderr: %s", stderr)

	var out detectOutput
	require.NoError(t, json.Unmarshal([]byte(stdout), &out), "stdout: %s", stdout)
	return out
}

func TestDetect(t *testing.T) {
	out := detectFixture(t)

	assert.True(t, filepath.IsAbs(out.File))
	require.NotNil(t, out.Metadata.Requires)
	assert.Equal(t, []string{"b", "foo"}, out.Metadata.Requires.Strings)
	require.Len(t, out.Metadata.Requires.Expressions, 1)
	assert.JSONEq(t, `{
		"start": 77,
		"end": 90,
		"loc": {"start": {"line": 6, "column": 16}, "end": {"line": 6, "column": 29}}
	}`, string(out.Metadata.Requires.Expressions[0]))
}

func TestDetectFlags(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want []string
	}{
		{"alternate word", []string{"--lower", "--word", "__dereq__"}, []string{"b", "baz"}},
		{"include generated", []string{"--lower", "--include-generated"}, []string{"b", "foo", "b"}},
		{"imports excluded", []string{"--include-import=false"}, []string{"foo"}},
		{"requires excluded", []string{"--include-require=false"}, []string{"b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := detectFixture(t, tt.args...)
			require.NotNil(t, out.Metadata.Requires)
			assert.Equal(t, tt.want, out.Metadata.Requires.Strings)
		})
	}
}

func TestDetectNothingIncluded(t *testing.T) {
	out := detectFixture(t, "--include-import=false", "--include-require=false")
	assert.Nil(t, out.Metadata.Requires)
}

func TestDetectEnvironment(t *testing.T) {
	t.Setenv("DETECTIVE_INCLUDE_IMPORT", "false")

	out := detectFixture(t)
	require.NotNil(t, out.Metadata.Requires)
	assert.Equal(t, []string{"foo"}, out.Metadata.Requires.Strings)
}

func TestDetectGlobNDJSON(t *testing.T) {
	pattern := filepath.Join("testdata", "graph", "app", "src", "**", "*.js")

	stdout, stderr, code := runCLI(t, "detect", "--glob", pattern, "-j", "2")
	require.Equal(t, 0, code, "stderr: %s", stderr)

	var results []analyze.BatchResult
	scanner := bufio.NewScanner(strings.NewReader(stdout))
	for scanner.Scan() {
		var line struct {
			File  string `json:"file"`
			Error string `json:"error"`
		}
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &line))
		results = append(results, analyze.BatchResult{File: line.File, Error: line.Error})
	}
	require.Len(t, results, 3)
	for _, r := range results {
		assert.Empty(t, r.Error)
		assert.Contains(t, r.File, filepath.Join("graph", "app", "src"))
	}
}

func TestDetectText(t *testing.T) {
	fixture := filepath.Join("testdata", "detect", "fixture", "module.js")

	stdout, stderr, code := runCLI(t, "detect", fixture, "--format", "text", "--attach-expression-source")
	require.Equal(t, 0, code, "stderr: %s", stderr)

	assert.Contains(t, stdout, "module.js\n")
	assert.Contains(t, stdout, "  b\n  foo\n")
	assert.Contains(t, stdout, "<dynamic 6:16> 'foo' + 'bar'")
}

func TestDetectOutputFile(t *testing.T) {
	fixture := filepath.Join("testdata", "detect", "fixture", "module.js")
	outPath := filepath.Join(t.TempDir(), "out.json")

	stdout, stderr, code := runCLI(t, "detect", fixture, "-o", outPath)
	require.Equal(t, 0, code, "stderr: %s", stderr)
	assert.Empty(t, stdout)

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"requires"`)
}

func TestDetectErrors(t *testing.T) {
	tests := []struct {
		name   string
		args   []string
		stderr string
	}{
		{"no files", []string{"detect"}, "no files to analyze"},
		{"invalid format", []string{"detect", "main.go", "--format", "xml"}, "invalid format"},
		{"unsupported file", []string{"detect", "main.go"}, "unsupported language"},
		{"missing file", []string{"detect", "nope.js"}, "failed to analyze"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, stderr, code := runCLI(t, tt.args...)
			assert.Equal(t, 1, code)
			assert.Contains(t, stderr, tt.stderr)
		})
	}
}

func TestGraph(t *testing.T) {
	stdout, stderr, code := runCLI(t, "graph", "--package", filepath.Join("testdata", "graph", "app"))
	require.Equal(t, 0, code, "stderr: %s", stderr)

	var summary analyze.GraphSummary
	require.NoError(t, json.Unmarshal([]byte(stdout), &summary), "stdout: %s", stdout)

	assert.Equal(t, []string{"src/index.js"}, summary.Entrypoints)
	assert.Equal(t, []string{"src/index.js", "src/lib/index.js", "src/lib/util.js"}, summary.Modules)
	assert.Equal(t, []string{"app", "dayjs", "lit", "ms", "vitest"}, summary.Packages)
	assert.Len(t, summary.Issues, 3)
	assert.Len(t, summary.Errors, 1)

	assert.Contains(t, stderr, `Import "dayjs" references not installed "dayjs"`)
	assert.Contains(t, stderr, "cannot resolve module")
}

func TestGraphHTML(t *testing.T) {
	site := filepath.Join("testdata", "graph", "site")

	stdout, stderr, code := runCLI(t, "graph", "--package", site, filepath.Join(site, "index.html"))
	require.Equal(t, 0, code, "stderr: %s", stderr)

	var summary analyze.GraphSummary
	require.NoError(t, json.Unmarshal([]byte(stdout), &summary))
	assert.Equal(t, []string{"dep.js", "index.html", "inline.js", "main.js"}, summary.Modules)
}

func TestGraphWithoutPackage(t *testing.T) {
	_, stderr, code := runCLI(t, "graph", "--package", t.TempDir())
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "no entry given")
}

func TestVersion(t *testing.T) {
	stdout, _, code := runCLI(t, "version")
	require.Equal(t, 0, code)
	assert.True(t, strings.HasPrefix(stdout, "detective "))

	stdout, _, code = runCLI(t, "version", "--format", "json")
	require.Equal(t, 0, code)
	var info map[string]string
	require.NoError(t, json.Unmarshal([]byte(stdout), &info))
	assert.Contains(t, info, "version")

	_, stderr, code := runCLI(t, "version", "--format", "yaml")
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "invalid format")
}

func TestHelp(t *testing.T) {
	stdout, _, code := runCLI(t, "--help")
	require.Equal(t, 0, code)
	for _, sub := range []string{"detect", "graph", "version"} {
		assert.Contains(t, stdout, sub)
	}
}

func TestUnknownCommand(t *testing.T) {
	_, stderr, code := runCLI(t, "nope")
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "unknown command")
}
