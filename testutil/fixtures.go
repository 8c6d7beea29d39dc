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
// Package testutil loads fixtures and golden files from the repository's
// testdata directory.
package testutil

import (
	"flag"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"bennypowers.dev/detective/internal/mapfs"
)

// update rewrites golden files with actual output when -update is set.
var update = flag.Bool("update", false, "update golden files with actual output")

// candidates lists where testdata may live relative to the package under
// test: the module root, or one or two directories below it.
func candidates(rel string) []string {
	return []string{
		filepath.Join("testdata", rel),
		filepath.Join("..", "testdata", rel),
		filepath.Join("..", "..", "testdata", rel),
	}
}

// FixturePath returns the on-disk path of a file or directory in testdata.
func FixturePath(t *testing.T, rel string) string {
	t.Helper()
	for _, p := range candidates(rel) {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	t.Fatalf("fixture %s not found", rel)
	return ""
}

// NewFixtureFS copies a testdata directory into an in-memory filesystem,
// mounted at rootPath.
func NewFixtureFS(t *testing.T, fixtureDir string, rootPath string) *mapfs.MapFileSystem {
	t.Helper()

	dir := FixturePath(t, fixtureDir)
	mfs := mapfs.New()
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		content, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		mfs.AddFile(filepath.Join(rootPath, rel), string(content), 0644)
		return nil
	})
	if err != nil {
		t.Fatalf("loading fixtures from %s: %v", fixtureDir, err)
	}
	return mfs
}

// LoadFixtureFile reads a single file from testdata.
func LoadFixtureFile(t *testing.T, rel string) []byte {
	t.Helper()
	content, err := os.ReadFile(FixturePath(t, rel))
	if err != nil {
		t.Fatalf("reading fixture %s: %v", rel, err)
	}
	return content
}

// LoadGoldenFile reads expected output from testdata. Under -update it
// returns nil so the caller records actual output instead.
func LoadGoldenFile(t *testing.T, rel string) []byte {
	t.Helper()
	if *update {
		return nil
	}
	return LoadFixtureFile(t, rel)
}

// UpdateGoldenFile writes actual output over the golden file under -update.
func UpdateGoldenFile(t *testing.T, rel string, actual []byte) {
	t.Helper()
	if !*update {
		return
	}
	target := candidates(rel)[0]
	for _, p := range candidates(rel) {
		if _, err := os.Stat(filepath.Dir(p)); err == nil {
			target = p
			break
		}
	}
	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		t.Fatalf("creating directory for %s: %v", rel, err)
	}
	if err := os.WriteFile(target, actual, 0644); err != nil {
		t.Fatalf("writing golden file %s: %v", rel, err)
	}
	t.Logf("updated golden file %s", target)
}
